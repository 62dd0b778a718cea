// Package service holds the bookkeeping rules: payment lifecycle, donor and
// expense intake, staff authentication and the stats aggregations.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"donorbook/internal/domain"
	"donorbook/internal/infra"
)

// Deps wires repositories and collaborators into the services. Events may be
// nil; Now defaults to time.Now in UTC.
type Deps struct {
	Donors   domain.DonorRepository
	Payments domain.PaymentRepository
	Expenses domain.ExpenseRepository
	Users    domain.UserRepository
	Events   domain.EventPublisher
	Now      func() time.Time
	Logger   infra.Logger
}

func (d Deps) clock() func() time.Time {
	if d.Now != nil {
		return d.Now
	}
	return func() time.Time { return time.Now().UTC() }
}

// emitter publishes domain events without ever failing the caller.
type emitter struct {
	pub    domain.EventPublisher
	now    func() time.Time
	logger infra.Logger
}

func newEmitter(d Deps) emitter {
	return emitter{pub: d.Events, now: d.clock(), logger: d.Logger}
}

func (e emitter) emit(ctx context.Context, typ domain.EventType, payload any) {
	if e.pub == nil {
		return
	}
	evt := domain.Event{
		ID:         uuid.NewString(),
		Type:       typ,
		OccurredAt: e.now(),
		Payload:    payload,
	}
	if err := e.pub.Publish(ctx, evt); err != nil {
		e.logger.Warn().Err(err).Str("event", string(typ)).Msg("publish event failed")
	}
}
