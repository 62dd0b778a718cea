package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"donorbook/internal/domain"
)

// monthParam reads ?month=, defaulting to the current month.
func (a *App) monthParam(r *http.Request) string {
	if m := r.URL.Query().Get("month"); m != "" {
		return m
	}
	return a.Payments.CurrentMonth().String()
}

func (a *App) ListPayments(w http.ResponseWriter, r *http.Request) {
	items, err := a.Payments.PaymentsByMonth(r.Context(), a.monthParam(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) PaymentStatus(w http.ResponseWriter, r *http.Request) {
	month := a.monthParam(r)
	items, err := a.Payments.DonorsWithPaymentStatus(r.Context(), month)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"month": month, "items": items})
}

func (a *App) CurrentMonth(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"month": a.Payments.CurrentMonth()})
}

func (a *App) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var in domain.CreatePaymentInput
	if !a.decode(w, r, &in) {
		return
	}
	payment, err := a.Payments.CreatePayment(r.Context(), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, payment)
}

func (a *App) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	var patch domain.PaymentPatch
	if !a.decode(w, r, &patch) {
		return
	}
	payment, err := a.Payments.UpdatePayment(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, payment)
}

func (a *App) MarkPaymentPaid(w http.ResponseWriter, r *http.Request) {
	payment, err := a.Payments.MarkAsPaid(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, payment)
}

type generateRequest struct {
	Month string `json:"month"`
}

func (a *App) GeneratePayments(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !a.decode(w, r, &req) {
		return
	}
	res, err := a.Payments.GenerateMonthlyPayments(r.Context(), req.Month)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, res)
}
