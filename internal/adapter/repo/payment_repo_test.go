package repo

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"donorbook/internal/domain"
	"donorbook/internal/sqlinline"
)

func paymentRow(id, donorID, month, status string, amount int64, paidAt *time.Time) func(dest ...any) error {
	return func(dest ...any) error {
		*dest[0].(*string) = id
		*dest[1].(*string) = donorID
		*dest[2].(*string) = month
		*dest[3].(*decimal.Decimal) = decimal.NewFromInt(amount)
		*dest[4].(*string) = status
		*dest[5].(**time.Time) = paidAt
		return nil
	}
}

func TestPaymentCreateMapsUniqueViolation(t *testing.T) {
	exec := &stubExecutor{execErr: &pgconn.PgError{Code: "23505"}}
	repo := NewPaymentRepository(exec)
	p := &domain.MonthlyPayment{ID: "p1", DonorID: "d1", Month: domain.Month{Year: 2024, Month: time.May}, Amount: decimal.NewFromInt(10), Status: domain.PaymentStatusUnpaid}
	if err := repo.Create(context.Background(), p); err != domain.ErrDuplicatePayment {
		t.Fatalf("expected ErrDuplicatePayment, got %v", err)
	}
	if got := exec.calls[0].args[2]; got != "2024-05" {
		t.Fatalf("month argument = %v", got)
	}
}

func TestPaymentInsertIfAbsent(t *testing.T) {
	exec := &stubExecutor{execTag: pgconn.NewCommandTag("INSERT 0 0")}
	repo := NewPaymentRepository(exec)
	p := &domain.MonthlyPayment{ID: "p1", DonorID: "d1", Month: domain.Month{Year: 2024, Month: time.May}}

	inserted, err := repo.InsertIfAbsent(context.Background(), p)
	if err != nil || inserted {
		t.Fatalf("conflicting insert: inserted=%v err=%v", inserted, err)
	}
	if exec.calls[0].query != sqlinline.QInsertPaymentIfAbsent {
		t.Fatal("expected the insert-or-skip statement")
	}

	exec.execTag = pgconn.NewCommandTag("INSERT 0 1")
	inserted, err = repo.InsertIfAbsent(context.Background(), p)
	if err != nil || !inserted {
		t.Fatalf("fresh insert: inserted=%v err=%v", inserted, err)
	}
}

func TestPaymentGetByIDNotFound(t *testing.T) {
	repo := NewPaymentRepository(&stubExecutor{})
	if _, err := repo.GetByID(context.Background(), "missing"); err != domain.ErrPaymentNotFound {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
}

func TestPaymentListByMonthScansRows(t *testing.T) {
	paid := time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC)
	rows := &sliceRows{rows: []func(dest ...any) error{
		paymentRow("p1", "d1", "2024-05", "PAID", 50, &paid),
		paymentRow("p2", "d2", "2024-05", "UNPAID", 20, nil),
	}}
	repo := NewPaymentRepository(&stubExecutor{rows: rows})

	items, err := repo.ListByMonth(context.Background(), domain.Month{Year: 2024, Month: time.May})
	if err != nil {
		t.Fatalf("ListByMonth error: %v", err)
	}
	if len(items) != 2 || !items[0].IsPaid() || items[1].PaidAt != nil {
		t.Fatalf("unexpected items: %+v", items)
	}
	if items[0].Month.String() != "2024-05" {
		t.Fatalf("month = %s", items[0].Month)
	}
	if !rows.closed {
		t.Fatal("rows not closed")
	}
}

func TestPaymentLastPaidByDonorKeysByDonor(t *testing.T) {
	paid := time.Date(2024, 4, 3, 9, 0, 0, 0, time.UTC)
	rows := &sliceRows{rows: []func(dest ...any) error{
		paymentRow("p1", "d1", "2024-04", "PAID", 50, &paid),
	}}
	repo := NewPaymentRepository(&stubExecutor{rows: rows})

	got, err := repo.LastPaidByDonor(context.Background())
	if err != nil {
		t.Fatalf("LastPaidByDonor error: %v", err)
	}
	if p, ok := got["d1"]; !ok || p.ID != "p1" {
		t.Fatalf("unexpected map: %+v", got)
	}
}

func TestPaymentUpdateMissing(t *testing.T) {
	repo := NewPaymentRepository(&stubExecutor{execTag: pgconn.NewCommandTag("UPDATE 0")})
	if err := repo.Update(context.Background(), &domain.MonthlyPayment{ID: "x"}); err != domain.ErrPaymentNotFound {
		t.Fatalf("expected ErrPaymentNotFound, got %v", err)
	}
}

func TestPaymentSumPaidByMonth(t *testing.T) {
	exec := &stubExecutor{row: simpleRow{scan: func(dest ...any) error {
		*dest[0].(*decimal.Decimal) = decimal.RequireFromString("125.50")
		return nil
	}}}
	repo := NewPaymentRepository(exec)
	total, err := repo.SumPaidByMonth(context.Background(), domain.Month{Year: 2024, Month: time.May})
	if err != nil {
		t.Fatalf("SumPaidByMonth error: %v", err)
	}
	if !total.Equal(decimal.RequireFromString("125.5")) {
		t.Fatalf("total = %s", total)
	}
}

func TestPaymentMalformedIDIsNotFound(t *testing.T) {
	badUUID := &pgconn.PgError{Code: "22P02"}
	repo := NewPaymentRepository(&stubExecutor{
		row:     simpleRow{scan: func(dest ...any) error { return badUUID }},
		execErr: badUUID,
	})
	if _, err := repo.GetByID(context.Background(), "abc"); err != domain.ErrPaymentNotFound {
		t.Fatalf("GetByID: expected ErrPaymentNotFound, got %v", err)
	}
	if err := repo.Update(context.Background(), &domain.MonthlyPayment{ID: "abc"}); err != domain.ErrPaymentNotFound {
		t.Fatalf("Update: expected ErrPaymentNotFound, got %v", err)
	}
}
