// Package bootstrap assembles repositories and services from configuration
// for the api, worker and donorctl binaries.
package bootstrap

import (
	"context"
	"fmt"

	"donorbook/internal/adapter/memory"
	"donorbook/internal/adapter/repo"
	"donorbook/internal/events"
	"donorbook/internal/export"
	"donorbook/internal/infra"
	"donorbook/internal/infra/credentials"
	"donorbook/internal/service"
)

// Runtime is the wired application core.
type Runtime struct {
	Config   *infra.Config
	Logger   infra.Logger
	Deps     service.Deps
	Donors   *service.DonorService
	Payments *service.PaymentService
	Expenses *service.ExpenseService
	Stats    *service.StatsService
	Auth     *service.AuthService
	Exports  *export.Builder

	closers []func()
}

// Close releases the database pool and broker connection, newest first.
func (r *Runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
	r.closers = nil
}

// Open connects the configured data backend and, when AMQP_URL is set, the
// event publisher.
func Open(ctx context.Context, cfg *infra.Config, logger infra.Logger) (*Runtime, error) {
	rt := &Runtime{Config: cfg, Logger: logger}
	deps := service.Deps{Now: cfg.Now, Logger: logger}

	switch cfg.DataBackend {
	case infra.BackendMemory:
		store := memory.NewStore()
		deps.Donors = store.Donors()
		deps.Payments = store.Payments()
		deps.Expenses = store.Expenses()
		deps.Users = store.Users()
		logger.Warn().Msg("using in-memory backend, data is lost on exit")
	default:
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		rt.closers = append(rt.closers, pool.Close)
		runner := infra.NewSQLRunner(pool, logger)
		deps.Donors = repo.NewDonorRepository(runner)
		deps.Payments = repo.NewPaymentRepository(runner)
		deps.Expenses = repo.NewExpenseRepository(runner)
		deps.Users = credentials.NewStore(runner)
	}

	if cfg.AMQPURL != "" {
		pub, err := events.Dial(cfg.AMQPURL, cfg.AMQPExchange, logger)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("connect event bus: %w", err)
		}
		rt.closers = append(rt.closers, func() { _ = pub.Close() })
		deps.Events = pub
	}

	rt.wire(deps)
	return rt, nil
}

// New wires services over explicit dependencies.
func New(cfg *infra.Config, deps service.Deps) *Runtime {
	rt := &Runtime{Config: cfg, Logger: deps.Logger}
	rt.wire(deps)
	return rt
}

func (r *Runtime) wire(deps service.Deps) {
	var categories []string
	if r.Config != nil {
		categories = r.Config.ExpenseCategories
	}
	r.Deps = deps
	r.Donors = service.NewDonorService(deps)
	r.Payments = service.NewPaymentService(deps)
	r.Expenses = service.NewExpenseService(deps, service.NewCategories(categories))
	r.Stats = service.NewStatsService(deps)
	r.Auth = service.NewAuthService(deps)
	r.Exports = export.NewBuilder(r.Payments, r.Expenses, deps.Now)
}
