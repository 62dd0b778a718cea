package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donorbook/internal/domain"
)

func TestMonthlyStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.donor(t, "Amina", 50)
	b := f.donor(t, "Bilal", 30)
	f.donor(t, "Chen", 20)

	_, err := f.payments.GenerateMonthlyPayments(ctx, "2024-05")
	require.NoError(t, err)
	status, err := f.payments.DonorsWithPaymentStatus(ctx, "2024-05")
	require.NoError(t, err)
	for _, row := range status {
		if row.Donor.ID == a.ID || row.Donor.ID == b.ID {
			_, err := f.payments.MarkAsPaid(ctx, row.Payment.ID)
			require.NoError(t, err)
		}
	}

	_, err = f.expenses.Create(ctx, domain.ExpenseInput{Title: "Rent", Amount: dec("25.50"), Category: "rent", Date: time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	_, err = f.expenses.Create(ctx, domain.ExpenseInput{Title: "Old", Amount: dec("100"), Category: "Other", Date: time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	stats, err := f.stats.MonthlyStats(ctx, "2024-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-05", stats.Month.String())
	assert.True(t, stats.TotalDonations.Equal(dec("80")), stats.TotalDonations.String())
	assert.True(t, stats.TotalExpenses.Equal(dec("25.5")), stats.TotalExpenses.String())
	assert.True(t, stats.NetBalance.Equal(dec("54.5")), stats.NetBalance.String())
	assert.Equal(t, 2, stats.PaidCount)
	assert.Equal(t, 1, stats.UnpaidDonorsCount)
}

func TestMonthlyStatsCountsDonorsWithoutRowsAsUnpaid(t *testing.T) {
	f := newFixture(t)
	f.donor(t, "Amina", 50)
	f.donor(t, "Bilal", 30)

	stats, err := f.stats.MonthlyStats(context.Background(), "2024-06")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.UnpaidDonorsCount)
	assert.Equal(t, 0, stats.PaidCount)
	assert.True(t, stats.TotalDonations.IsZero())
}

func TestMonthlyStatsRejectsBadMonth(t *testing.T) {
	f := newFixture(t)
	_, err := f.stats.MonthlyStats(context.Background(), "2024-00")
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)
}

func TestAllTimeStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	d := f.donor(t, "Amina", 50)
	_, err := f.payments.CreatePayment(ctx, domain.CreatePaymentInput{DonorID: d.ID, Month: "2024-01", Amount: dec("40"), Status: statusPtr(domain.PaymentStatusPaid)})
	require.NoError(t, err)
	_, err = f.payments.CreatePayment(ctx, domain.CreatePaymentInput{DonorID: d.ID, Month: "2024-02", Amount: dec("40")})
	require.NoError(t, err)
	_, err = f.expenses.Create(ctx, domain.ExpenseInput{Title: "Bus", Amount: dec("15"), Category: "Transport", Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)

	stats, err := f.stats.AllTimeStats(ctx)
	require.NoError(t, err)
	assert.True(t, stats.TotalDonations.Equal(dec("40")))
	assert.True(t, stats.TotalExpenses.Equal(dec("15")))
	assert.True(t, stats.AvailableBalance.Equal(dec("25")))
}

func TestLastPaymentsByMonth(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.donor(t, "Amina", 50)
	b := f.donor(t, "Bilal", 30)

	early := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	late := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	march := domain.Month{Year: 2024, Month: time.March}
	require.NoError(t, f.store.Payments().Create(ctx, &domain.MonthlyPayment{ID: "p1", DonorID: a.ID, Month: march, Amount: dec("50"), Status: domain.PaymentStatusPaid, PaidAt: &late}))
	require.NoError(t, f.store.Payments().Create(ctx, &domain.MonthlyPayment{ID: "p2", DonorID: b.ID, Month: march, Amount: dec("30"), Status: domain.PaymentStatusPaid, PaidAt: &early}))

	entries, err := f.stats.LastPaymentsByMonth(ctx, DefaultTrendMonths)
	require.NoError(t, err)
	require.Len(t, entries, 6)
	want := []string{"2024-05", "2024-04", "2024-03", "2024-02", "2024-01", "2023-12"}
	for i, e := range entries {
		assert.Equal(t, want[i], e.Month.String())
	}
	require.NotNil(t, entries[2].LastPaymentDate)
	assert.True(t, entries[2].LastPaymentDate.Equal(late))
	assert.True(t, entries[2].Amount.Equal(dec("50")))
	assert.Nil(t, entries[0].LastPaymentDate)
	assert.True(t, entries[0].Amount.IsZero())

	_, err = f.stats.LastPaymentsByMonth(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidMonths)
}

func TestLastPaymentsByMonthBounded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	entries, err := f.stats.LastPaymentsByMonth(ctx, MaxTrendMonths)
	require.NoError(t, err)
	require.Len(t, entries, MaxTrendMonths)
	assert.Equal(t, "2014-06", entries[MaxTrendMonths-1].Month.String())

	_, err = f.stats.LastPaymentsByMonth(ctx, MaxTrendMonths+1)
	assert.ErrorIs(t, err, domain.ErrInvalidMonths)
	_, err = f.stats.LastPaymentsByMonth(ctx, 2_000_000)
	assert.ErrorIs(t, err, domain.ErrInvalidMonths)
}

func TestPaymentStatsByMonth(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.donor(t, "Amina", 50)
	f.donor(t, "Bilal", 30)
	_, err := f.payments.GenerateMonthlyPayments(ctx, "2024-05")
	require.NoError(t, err)
	p, err := f.store.Payments().GetByDonorAndMonth(ctx, a.ID, domain.Month{Year: 2024, Month: time.May})
	require.NoError(t, err)
	_, err = f.payments.MarkAsPaid(ctx, p.ID)
	require.NoError(t, err)

	stats, err := f.stats.PaymentStatsByMonth(ctx, "2024-05")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.PaidCount)
	assert.Equal(t, 1, stats.PendingCount)
	assert.True(t, stats.TotalDonations.Equal(dec("50")))

	total, err := f.stats.ExpenseTotalByMonth(ctx, "2024-05")
	require.NoError(t, err)
	assert.True(t, total.Total.IsZero())
}

type failingExpenses struct {
	domain.ExpenseRepository
}

func (failingExpenses) SumBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return decimal.Zero, errors.New("db down")
}

func TestMonthlyStatsPropagatesSubQueryFailure(t *testing.T) {
	f := newFixture(t)
	deps := f.deps
	deps.Expenses = failingExpenses{f.store.Expenses()}

	_, err := NewStatsService(deps).MonthlyStats(context.Background(), "2024-05")
	require.Error(t, err)
	assert.Equal(t, domain.KindUnknown, domain.KindOf(err))
}
