// Package export renders a month's bookkeeping as a zip of CSV files.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"donorbook/internal/domain"
	"donorbook/pkg/zip"
)

const (
	PaymentsFile = "payments.csv"
	ExpensesFile = "expenses.csv"
)

// PaymentStatusLister yields every active donor with its payment for a month.
type PaymentStatusLister interface {
	StatusForMonth(ctx context.Context, month domain.Month) ([]domain.DonorPaymentStatus, error)
}

// ExpenseLister yields the expenses dated inside a month.
type ExpenseLister interface {
	ListByMonth(ctx context.Context, month string) ([]domain.Expense, error)
}

type Builder struct {
	payments PaymentStatusLister
	expenses ExpenseLister
	now      func() time.Time
}

func NewBuilder(payments PaymentStatusLister, expenses ExpenseLister, now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{payments: payments, expenses: expenses, now: now}
}

// FileName is the archive name used for downloads and on disk.
func FileName(month domain.Month) string {
	return fmt.Sprintf("donorbook-%s.zip", month)
}

// ArchiveKey places a month archive under its year directory.
func ArchiveKey(month domain.Month) string {
	return fmt.Sprintf("%04d/%s", month.Year, FileName(month))
}

// Month builds the zip archive for month.
func (b *Builder) Month(ctx context.Context, month domain.Month) ([]byte, error) {
	statuses, err := b.payments.StatusForMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("export payments: %w", err)
	}
	expenses, err := b.expenses.ListByMonth(ctx, month.String())
	if err != nil {
		return nil, fmt.Errorf("export expenses: %w", err)
	}

	paymentsCSV, err := PaymentsCSV(month, statuses)
	if err != nil {
		return nil, err
	}
	expensesCSV, err := ExpensesCSV(expenses)
	if err != nil {
		return nil, err
	}

	modified := b.now()
	return zip.Archive([]zip.File{
		{Name: PaymentsFile, Data: paymentsCSV, Modified: modified},
		{Name: ExpensesFile, Data: expensesCSV, Modified: modified},
	})
}

// PaymentsCSV writes one row per donor. Donors without a payment row are
// listed as UNPAID with empty payment columns.
func PaymentsCSV(month domain.Month, statuses []domain.DonorPaymentStatus) ([]byte, error) {
	rows := [][]string{{"month", "donor_id", "donor_name", "monthly_amount", "payment_id", "amount", "status", "paid_at"}}
	for _, s := range statuses {
		row := []string{month.String(), s.Donor.ID, s.Donor.Name, s.Donor.MonthlyAmount.StringFixed(2)}
		if p := s.Payment; p != nil {
			row = append(row, p.ID, p.Amount.StringFixed(2), string(p.Status), formatTime(p.PaidAt))
		} else {
			row = append(row, "", "", string(domain.PaymentStatusUnpaid), "")
		}
		rows = append(rows, row)
	}
	return writeCSV(rows)
}

func ExpensesCSV(expenses []domain.Expense) ([]byte, error) {
	rows := [][]string{{"id", "date", "title", "category", "amount", "description"}}
	for _, e := range expenses {
		desc := ""
		if e.Description != nil {
			desc = *e.Description
		}
		rows = append(rows, []string{e.ID, e.Date.Format(time.DateOnly), e.Title, e.Category, e.Amount.StringFixed(2), desc})
	}
	return writeCSV(rows)
}

func writeCSV(rows [][]string) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
