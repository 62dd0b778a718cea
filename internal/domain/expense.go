package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultExpenseCategories is the closed set used when none is configured.
var DefaultExpenseCategories = []string{
	"Food",
	"Utilities",
	"Rent",
	"Transport",
	"Medical",
	"Education",
	"Other",
}

// Expense is a miscellaneous organizational spend.
type Expense struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ExpenseInput carries the fields accepted when recording an expense.
type ExpenseInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
}

// ExpensePatch is a partial expense update.
type ExpensePatch struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    *string          `json:"category"`
	Date        *time.Time       `json:"date"`
}

// ExpenseFilter selects a page of expenses. Year alone filters a calendar
// year, Year with Month a calendar month.
type ExpenseFilter struct {
	Page     int
	PageSize int
	Year     int
	Month    int
}

// DateRange is an inclusive time window.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Range resolves the filter's date window; ok is false when unfiltered.
func (f ExpenseFilter) Range() (DateRange, bool) {
	switch {
	case f.Year != 0 && f.Month != 0:
		m := Month{Year: f.Year, Month: time.Month(f.Month)}
		return DateRange{From: m.Start(), To: m.End()}, true
	case f.Year != 0:
		from := time.Date(f.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return DateRange{From: from, To: from.AddDate(1, 0, 0).Add(-time.Second)}, true
	}
	return DateRange{}, false
}

// Offset is the number of rows skipped before the page.
func (f ExpenseFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// ExpensePage is one page of expenses plus totals over the whole filter.
type ExpensePage struct {
	Items       []Expense       `json:"items"`
	Total       int             `json:"total"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Page        int             `json:"page"`
	PageSize    int             `json:"pageSize"`
}
