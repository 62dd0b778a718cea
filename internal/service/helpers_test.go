package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"donorbook/internal/adapter/memory"
	"donorbook/internal/domain"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, evt domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return p.err
}

func (p *recordingPublisher) types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.EventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store    *memory.Store
	clock    *clock
	events   *recordingPublisher
	deps     Deps
	payments *PaymentService
	stats    *StatsService
	donors   *DonorService
	expenses *ExpenseService
	auth     *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	clk := &clock{now: time.Date(2024, time.May, 15, 10, 30, 0, 0, time.UTC)}
	pub := &recordingPublisher{}
	deps := Deps{
		Donors:   store.Donors(),
		Payments: store.Payments(),
		Expenses: store.Expenses(),
		Users:    store.Users(),
		Events:   pub,
		Now:      clk.Now,
		Logger:   zerolog.Nop(),
	}
	return &fixture{
		store:    store,
		clock:    clk,
		events:   pub,
		deps:     deps,
		payments: NewPaymentService(deps),
		stats:    NewStatsService(deps),
		donors:   NewDonorService(deps),
		expenses: NewExpenseService(deps, NewCategories(nil)),
		auth:     NewAuthService(deps),
	}
}

func (f *fixture) donor(t *testing.T, name string, amount int64) *domain.Donor {
	t.Helper()
	d, err := f.donors.Create(context.Background(), domain.DonorInput{Name: name, MonthlyAmount: decimal.NewFromInt(amount)})
	require.NoError(t, err)
	return d
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func statusPtr(s domain.PaymentStatus) *domain.PaymentStatus {
	return &s
}
