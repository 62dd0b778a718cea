package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"donorbook/internal/domain"
)

// DefaultTrendMonths is the trend length used when the caller gives none.
const DefaultTrendMonths = 6

// MaxTrendMonths bounds the trend length; each month is one query.
const MaxTrendMonths = 120

// StatsService derives financial summaries. The sub-sums of one summary are
// read concurrently and are not a consistent snapshot.
type StatsService struct {
	donors   domain.DonorRepository
	payments domain.PaymentRepository
	expenses domain.ExpenseRepository
	now      func() time.Time
}

func NewStatsService(d Deps) *StatsService {
	return &StatsService{
		donors:   d.Donors,
		payments: d.Payments,
		expenses: d.Expenses,
		now:      d.clock(),
	}
}

// MonthlyStats summarizes one month.
func (s *StatsService) MonthlyStats(ctx context.Context, month string) (*domain.MonthlyStats, error) {
	m, err := domain.ParseMonth(month)
	if err != nil {
		return nil, err
	}
	return s.Monthly(ctx, m)
}

// Monthly is MonthlyStats for an already parsed month.
func (s *StatsService) Monthly(ctx context.Context, m domain.Month) (*domain.MonthlyStats, error) {
	var (
		donations decimal.Decimal
		expenses  decimal.Decimal
		paidCount int
		active    []domain.Donor
		paidIDs   []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		donations, err = s.payments.SumPaidByMonth(gctx, m)
		return err
	})
	g.Go(func() (err error) {
		paidCount, err = s.payments.CountByMonthAndStatus(gctx, m, domain.PaymentStatusPaid)
		return err
	})
	g.Go(func() (err error) {
		active, err = s.donors.ListActive(gctx)
		return err
	})
	g.Go(func() (err error) {
		paidIDs, err = s.payments.PaidDonorIDs(gctx, m)
		return err
	})
	g.Go(func() (err error) {
		from, to := m.Window()
		expenses, err = s.expenses.SumBetween(gctx, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("monthly stats %s: %w", m, err)
	}

	paid := make(map[string]struct{}, len(paidIDs))
	for _, id := range paidIDs {
		paid[id] = struct{}{}
	}
	unpaid := 0
	for _, d := range active {
		if _, ok := paid[d.ID]; !ok {
			unpaid++
		}
	}

	return &domain.MonthlyStats{
		Month:             m,
		TotalDonations:    donations,
		TotalExpenses:     expenses,
		NetBalance:        donations.Sub(expenses),
		PaidCount:         paidCount,
		UnpaidDonorsCount: unpaid,
	}, nil
}

// AllTimeStats sums every paid donation and every expense.
func (s *StatsService) AllTimeStats(ctx context.Context) (*domain.AllTimeStats, error) {
	var donations, expenses decimal.Decimal

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		donations, err = s.payments.SumAllPaid(gctx)
		return err
	})
	g.Go(func() (err error) {
		expenses, err = s.expenses.SumAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("all-time stats: %w", err)
	}

	return &domain.AllTimeStats{
		TotalDonations:   donations,
		TotalExpenses:    expenses,
		AvailableBalance: donations.Sub(expenses),
	}, nil
}

// LastPaymentsByMonth returns monthsBack entries starting at the current
// month and walking backwards. Each carries the month's latest paid payment.
func (s *StatsService) LastPaymentsByMonth(ctx context.Context, monthsBack int) ([]domain.LastPaymentByMonth, error) {
	if monthsBack < 1 || monthsBack > MaxTrendMonths {
		return nil, domain.ErrInvalidMonths
	}

	current := domain.MonthOf(s.now())
	out := make([]domain.LastPaymentByMonth, monthsBack)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < monthsBack; i++ {
		i := i
		m := current.AddMonths(-i)
		g.Go(func() error {
			entry := domain.LastPaymentByMonth{Month: m, Amount: decimal.Zero}
			p, err := s.payments.LastPaidInMonth(gctx, m)
			switch {
			case err == nil:
				entry.LastPaymentDate = p.PaidAt
				entry.Amount = p.Amount
			case domain.KindOf(err) != domain.KindNotFound:
				return err
			}
			out[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("last payments by month: %w", err)
	}
	return out, nil
}

// ExpenseTotalByMonth sums expenses dated inside the month window.
func (s *StatsService) ExpenseTotalByMonth(ctx context.Context, month string) (*domain.ExpenseTotal, error) {
	m, err := domain.ParseMonth(month)
	if err != nil {
		return nil, err
	}
	from, to := m.Window()
	total, err := s.expenses.SumBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("expense total %s: %w", m, err)
	}
	return &domain.ExpenseTotal{Month: m, Total: total}, nil
}

// PaymentStatsByMonth counts and sums the month's payment rows.
func (s *StatsService) PaymentStatsByMonth(ctx context.Context, month string) (*domain.PaymentStats, error) {
	m, err := domain.ParseMonth(month)
	if err != nil {
		return nil, err
	}

	var (
		total         decimal.Decimal
		paid, pending int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		total, err = s.payments.SumPaidByMonth(gctx, m)
		return err
	})
	g.Go(func() (err error) {
		paid, err = s.payments.CountByMonthAndStatus(gctx, m, domain.PaymentStatusPaid)
		return err
	})
	g.Go(func() (err error) {
		pending, err = s.payments.CountByMonthAndStatus(gctx, m, domain.PaymentStatusUnpaid)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("payment stats %s: %w", m, err)
	}

	return &domain.PaymentStats{Month: m, TotalDonations: total, PaidCount: paid, PendingCount: pending}, nil
}
