package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"donorbook/internal/domain"
)

func (a *App) ListDonors(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("with") == "last_payment" {
		items, err := a.Donors.ListWithLastPayment(r.Context())
		if err != nil {
			a.fail(w, r, err)
			return
		}
		a.json(w, http.StatusOK, map[string]any{"items": items})
		return
	}
	items, err := a.Donors.List(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) GetDonor(w http.ResponseWriter, r *http.Request) {
	donor, err := a.Donors.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, donor)
}

func (a *App) CreateDonor(w http.ResponseWriter, r *http.Request) {
	var in domain.DonorInput
	if !a.decode(w, r, &in) {
		return
	}
	donor, err := a.Donors.Create(r.Context(), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, donor)
}

type bulkDonorsRequest struct {
	Donors []domain.DonorInput `json:"donors"`
}

func (a *App) CreateDonorsBulk(w http.ResponseWriter, r *http.Request) {
	var req bulkDonorsRequest
	if !a.decode(w, r, &req) {
		return
	}
	count, err := a.Donors.CreateBulk(r.Context(), req.Donors)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]int{"count": count})
}

func (a *App) UpdateDonor(w http.ResponseWriter, r *http.Request) {
	var patch domain.DonorPatch
	if !a.decode(w, r, &patch) {
		return
	}
	donor, err := a.Donors.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, donor)
}

func (a *App) DeleteDonor(w http.ResponseWriter, r *http.Request) {
	if err := a.Donors.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
