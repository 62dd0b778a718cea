package domain

import (
	"context"
	"time"
)

// EventType names a bookkeeping event published to subscribers.
type EventType string

const (
	EventPaymentCreated    EventType = "payment.created"
	EventPaymentUpdated    EventType = "payment.updated"
	EventPaymentPaid       EventType = "payment.paid"
	EventPaymentsGenerated EventType = "payments.generated"
	EventExpenseCreated    EventType = "expense.created"
)

// Event is the envelope delivered to the event bus.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// EventPublisher delivers events. Implementations must be safe for concurrent use.
type EventPublisher interface {
	Publish(ctx context.Context, evt Event) error
}
