package handlers

import (
	"net/http"

	"donorbook/internal/service"
)

func (a *App) MonthlyStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.Stats.MonthlyStats(r.Context(), a.monthParam(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, stats)
}

func (a *App) AllTimeStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.Stats.AllTimeStats(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, stats)
}

func (a *App) LastPayments(w http.ResponseWriter, r *http.Request) {
	months, ok, err := queryInt(r, "months")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if !ok {
		months = service.DefaultTrendMonths
	}
	items, err := a.Stats.LastPaymentsByMonth(r.Context(), months)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) ExpenseTotal(w http.ResponseWriter, r *http.Request) {
	total, err := a.Stats.ExpenseTotalByMonth(r.Context(), a.monthParam(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, total)
}

func (a *App) PaymentStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.Stats.PaymentStatsByMonth(r.Context(), a.monthParam(r))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, stats)
}
