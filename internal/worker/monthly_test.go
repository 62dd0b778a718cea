package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donorbook/internal/adapter/memory"
	"donorbook/internal/domain"
	"donorbook/internal/export"
	"donorbook/internal/notify"
	"donorbook/internal/service"
	"donorbook/internal/storage"
)

type capturedMail struct {
	st      notify.Statement
	name    string
	archive []byte
}

type fakeMailer struct {
	sent []capturedMail
	err  error
}

func (m *fakeMailer) SendStatement(_ context.Context, st notify.Statement, name string, archive []byte) error {
	m.sent = append(m.sent, capturedMail{st: st, name: name, archive: archive})
	return m.err
}

type fixture struct {
	job      *MonthlyJob
	donors   *service.DonorService
	payments *service.PaymentService
	store    *storage.FileStore
	mailer   *fakeMailer
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	mem := memory.NewStore()
	deps := service.Deps{
		Donors:   mem.Donors(),
		Payments: mem.Payments(),
		Expenses: mem.Expenses(),
		Users:    mem.Users(),
		Now:      func() time.Time { return now },
		Logger:   zerolog.Nop(),
	}
	payments := service.NewPaymentService(deps)
	expenses := service.NewExpenseService(deps, service.NewCategories(nil))
	files, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	mailer := &fakeMailer{}
	return &fixture{
		job: &MonthlyJob{
			Payments:     payments,
			Stats:        service.NewStatsService(deps),
			Expenses:     expenses,
			Exports:      export.NewBuilder(payments, expenses, deps.Now),
			Store:        files,
			Mailer:       mailer,
			Organization: "Hope House",
			Logger:       zerolog.Nop(),
		},
		donors:   service.NewDonorService(deps),
		payments: payments,
		store:    files,
		mailer:   mailer,
	}
}

func TestMonthlyJobRun(t *testing.T) {
	now := time.Date(2024, time.June, 1, 6, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	ctx := context.Background()

	_, err := f.donors.Create(ctx, domain.DonorInput{Name: "Alice", MonthlyAmount: decimal.NewFromInt(100)})
	require.NoError(t, err)

	require.NoError(t, f.job.Run(ctx, now))

	june, err := f.payments.PaymentsByMonth(ctx, "2024-06")
	require.NoError(t, err)
	assert.Len(t, june, 1)

	keys, err := f.store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024/donorbook-2024-05.zip"}, keys)

	require.Len(t, f.mailer.sent, 1)
	mail := f.mailer.sent[0]
	assert.Equal(t, "2024-05", mail.st.Stats.Month.String())
	assert.Equal(t, "Hope House", mail.st.Organization)
	assert.Equal(t, "donorbook-2024-05.zip", mail.name)
	assert.NotEmpty(t, mail.archive)

	// A second run is idempotent for generation.
	require.NoError(t, f.job.Run(ctx, now))
	june, err = f.payments.PaymentsByMonth(ctx, "2024-06")
	require.NoError(t, err)
	assert.Len(t, june, 1)
}

func TestMonthlyJobWithoutDonors(t *testing.T) {
	now := time.Date(2024, time.January, 1, 6, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	f.job.Mailer = nil

	require.NoError(t, f.job.Run(context.Background(), now))

	keys, err := f.store.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2023/donorbook-2023-12.zip"}, keys)
}

func TestMonthlyJobReportsMailFailure(t *testing.T) {
	now := time.Date(2024, time.June, 1, 6, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	boom := errors.New("smtp down")
	f.mailer.err = boom

	err := f.job.Run(context.Background(), now)
	require.ErrorIs(t, err, boom)

	keys, listErr := f.store.List(context.Background())
	require.NoError(t, listErr)
	assert.Len(t, keys, 1)
}

func TestScheduleRejectsBadSpec(t *testing.T) {
	_, err := Schedule("not a cron", time.UTC, &MonthlyJob{}, time.Minute)
	require.Error(t, err)

	c, err := Schedule("0 6 1 * *", nil, &MonthlyJob{}, time.Minute)
	require.NoError(t, err)
	require.Len(t, c.Entries(), 1)
}
