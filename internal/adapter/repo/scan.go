package repo

import (
	"fmt"

	"github.com/jackc/pgx/v5"

	"donorbook/internal/domain"
	"donorbook/internal/infra"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDonor(row rowScanner) (*domain.Donor, error) {
	var d domain.Donor
	if err := row.Scan(&d.ID, &d.Name, &d.Contact, &d.MonthlyAmount, &d.IsActive, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

func scanPayment(row rowScanner) (*domain.MonthlyPayment, error) {
	var (
		p      domain.MonthlyPayment
		month  string
		status string
	)
	if err := row.Scan(&p.ID, &p.DonorID, &month, &p.Amount, &status, &p.PaidAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	m, err := domain.ParseMonth(month)
	if err != nil {
		return nil, fmt.Errorf("payment %s has malformed month %q", p.ID, month)
	}
	p.Month = m
	p.Status = domain.PaymentStatus(status)
	return &p, nil
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var e domain.Expense
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Amount, &e.Category, &e.Date, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// collect drains rows through scan, closing them in every case.
func collect[T any](rows pgx.Rows, scan func(rowScanner) (*T, error)) ([]T, error) {
	defer rows.Close()
	items := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// notFound maps pgx.ErrNoRows and malformed ids to the given domain error.
func notFound(err error, nf error) error {
	if infra.IsNoRows(err) || infra.IsInvalidText(err) {
		return nf
	}
	return err
}
