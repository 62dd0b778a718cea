package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus enumerates the lifecycle states of a monthly payment.
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "UNPAID"
	PaymentStatusPaid   PaymentStatus = "PAID"
)

// Valid reports whether s is a known status.
func (s PaymentStatus) Valid() bool {
	return s == PaymentStatusUnpaid || s == PaymentStatusPaid
}

// ParsePaymentStatus validates a wire status string.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if !status.Valid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// MonthlyPayment is one donor's pledged amount for one calendar month.
// At most one exists per (DonorID, Month).
type MonthlyPayment struct {
	ID        string          `json:"id"`
	DonorID   string          `json:"donorId"`
	Month     Month           `json:"month"`
	Amount    decimal.Decimal `json:"amount"`
	Status    PaymentStatus   `json:"status"`
	PaidAt    *time.Time      `json:"paidAt"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// IsPaid reports whether the payment is in PAID status.
func (p MonthlyPayment) IsPaid() bool {
	return p.Status == PaymentStatusPaid
}

// ApplyStatus moves the payment to status, stamping or clearing PaidAt on a
// transition. Re-applying the current status is a no-op.
func (p *MonthlyPayment) ApplyStatus(status PaymentStatus, now time.Time) {
	if p.Status == status {
		return
	}
	switch status {
	case PaymentStatusPaid:
		paidAt := now
		p.PaidAt = &paidAt
	case PaymentStatusUnpaid:
		p.PaidAt = nil
	}
	p.Status = status
}

// CreatePaymentInput is the ad hoc payment entry request.
type CreatePaymentInput struct {
	DonorID string          `json:"donorId"`
	Month   string          `json:"month"`
	Amount  decimal.Decimal `json:"amount"`
	Status  *PaymentStatus  `json:"status"`
}

// PaymentPatch is a partial payment update.
type PaymentPatch struct {
	Amount *decimal.Decimal `json:"amount"`
	Status *PaymentStatus   `json:"status"`
}

// DonorSummary is the donor projection shown next to a payment.
type DonorSummary struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Contact       *string         `json:"contact"`
	MonthlyAmount decimal.Decimal `json:"monthlyAmount"`
}

// DonorPaymentStatus pairs an active donor with its payment for a month, if one exists.
type DonorPaymentStatus struct {
	Donor   DonorSummary    `json:"donor"`
	Payment *MonthlyPayment `json:"payment"`
}

// GenerateResult reports how many payment rows a generation run created.
type GenerateResult struct {
	Month Month `json:"month"`
	Count int   `json:"count"`
}
