package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"donorbook/internal/domain"
)

// expenseRequest accepts dates either as RFC 3339 timestamps or as plain
// YYYY-MM-DD calendar dates.
type expenseRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    *string          `json:"category"`
	Date        *string          `json:"date"`
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidDate
	}
	return t, nil
}

func (req expenseRequest) patch() (domain.ExpensePatch, error) {
	patch := domain.ExpensePatch{
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
	}
	if req.Date != nil {
		d, err := parseDate(*req.Date)
		if err != nil {
			return patch, err
		}
		patch.Date = &d
	}
	return patch, nil
}

func (req expenseRequest) input() (domain.ExpenseInput, error) {
	var in domain.ExpenseInput
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.Amount != nil {
		in.Amount = *req.Amount
	}
	if req.Category != nil {
		in.Category = *req.Category
	}
	if req.Date == nil {
		return in, domain.ErrInvalidDate
	}
	d, err := parseDate(*req.Date)
	if err != nil {
		return in, err
	}
	in.Date = d
	return in, nil
}

func queryInt(r *http.Request, key string) (int, bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, domain.Invalid(key + " must be an integer")
	}
	return n, true, nil
}

// ListExpenses serves three shapes: ?month=YYYY-MM lists one month,
// page/page_size/year parameters return a page, otherwise everything.
func (a *App) ListExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if m := q.Get("month"); len(m) == len(domain.MonthLayout) {
		items, err := a.Expenses.ListByMonth(r.Context(), m)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		a.json(w, http.StatusOK, map[string]any{"items": items})
		return
	}

	var filter domain.ExpenseFilter
	paged := false
	for _, p := range []struct {
		key string
		dst *int
	}{
		{"page", &filter.Page},
		{"page_size", &filter.PageSize},
		{"year", &filter.Year},
		{"month", &filter.Month},
	} {
		n, ok, err := queryInt(r, p.key)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		if ok {
			*p.dst = n
			paged = true
		}
	}

	if !paged {
		items, err := a.Expenses.List(r.Context())
		if err != nil {
			a.fail(w, r, err)
			return
		}
		a.json(w, http.StatusOK, map[string]any{"items": items})
		return
	}

	page, err := a.Expenses.ListPaged(r.Context(), filter)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, page)
}

func (a *App) ExpenseCategories(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"items": a.Expenses.Categories()})
}

func (a *App) GetExpense(w http.ResponseWriter, r *http.Request) {
	e, err := a.Expenses.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, e)
}

func (a *App) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !a.decode(w, r, &req) {
		return
	}
	in, err := req.input()
	if err != nil {
		a.fail(w, r, err)
		return
	}
	e, err := a.Expenses.Create(r.Context(), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, e)
}

func (a *App) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !a.decode(w, r, &req) {
		return
	}
	patch, err := req.patch()
	if err != nil {
		a.fail(w, r, err)
		return
	}
	e, err := a.Expenses.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, e)
}

func (a *App) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := a.Expenses.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
