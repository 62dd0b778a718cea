// Package worker runs the scheduled monthly bookkeeping cycle.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"donorbook/internal/domain"
	"donorbook/internal/export"
	"donorbook/internal/infra"
	"donorbook/internal/notify"
)

type Generator interface {
	Generate(ctx context.Context, month domain.Month) (*domain.GenerateResult, error)
	StatusForMonth(ctx context.Context, month domain.Month) ([]domain.DonorPaymentStatus, error)
}

type StatsSource interface {
	Monthly(ctx context.Context, month domain.Month) (*domain.MonthlyStats, error)
}

type ExpenseSource interface {
	ListByMonth(ctx context.Context, month string) ([]domain.Expense, error)
}

type Archiver interface {
	Month(ctx context.Context, month domain.Month) ([]byte, error)
}

type ArchiveStore interface {
	Write(ctx context.Context, key string, data []byte) (string, error)
}

type StatementSender interface {
	SendStatement(ctx context.Context, st notify.Statement, archiveName string, archive []byte) error
}

// MonthlyJob generates the new month's payment rows, then archives and mails
// the month that just closed. Store and Mailer are optional.
type MonthlyJob struct {
	Payments     Generator
	Stats        StatsSource
	Expenses     ExpenseSource
	Exports      Archiver
	Store        ArchiveStore
	Mailer       StatementSender
	Organization string
	Logger       infra.Logger
}

// Run executes one cycle relative to now. Generation failure aborts the
// run; archive and mail failures are reported together after both ran.
func (j *MonthlyJob) Run(ctx context.Context, now time.Time) error {
	current := domain.MonthOf(now)
	res, err := j.Payments.Generate(ctx, current)
	switch {
	case err == nil:
		j.Logger.Info().Str("month", current.String()).Int("count", res.Count).Msg("worker: payments generated")
	case errors.Is(err, domain.ErrNoActiveDonors):
		j.Logger.Warn().Str("month", current.String()).Msg("worker: no active donors")
	default:
		return fmt.Errorf("generate %s: %w", current, err)
	}

	closed := current.AddMonths(-1)
	if j.Store == nil && j.Mailer == nil {
		return nil
	}
	archive, err := j.Exports.Month(ctx, closed)
	if err != nil {
		return fmt.Errorf("export %s: %w", closed, err)
	}

	var errs []error
	if j.Store != nil {
		key, err := j.Store.Write(ctx, export.ArchiveKey(closed), archive)
		if err != nil {
			errs = append(errs, fmt.Errorf("archive %s: %w", closed, err))
		} else {
			j.Logger.Info().Str("month", closed.String()).Str("key", key).Msg("worker: month archived")
		}
	}
	if j.Mailer != nil {
		if err := j.mail(ctx, closed, archive); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (j *MonthlyJob) mail(ctx context.Context, month domain.Month, archive []byte) error {
	stats, err := j.Stats.Monthly(ctx, month)
	if err != nil {
		return fmt.Errorf("statement stats: %w", err)
	}
	donors, err := j.Payments.StatusForMonth(ctx, month)
	if err != nil {
		return fmt.Errorf("statement donors: %w", err)
	}
	expenses, err := j.Expenses.ListByMonth(ctx, month.String())
	if err != nil {
		return fmt.Errorf("statement expenses: %w", err)
	}
	st := notify.Statement{
		Organization: j.Organization,
		Stats:        *stats,
		Donors:       donors,
		Expenses:     expenses,
	}
	return j.Mailer.SendStatement(ctx, st, export.FileName(month), archive)
}

// Schedule registers job on a cron schedule evaluated in loc. The returned
// scheduler is not started.
func Schedule(spec string, loc *time.Location, job *MonthlyJob, timeout time.Duration) (*cron.Cron, error) {
	if loc == nil {
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := job.Run(ctx, time.Now().In(loc)); err != nil {
			job.Logger.Error().Err(err).Msg("worker: monthly run failed")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", spec, err)
	}
	return c, nil
}
