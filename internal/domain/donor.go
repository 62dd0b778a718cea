package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donor is a person or entity pledging a recurring monthly contribution.
type Donor struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Contact       *string         `json:"contact"`
	MonthlyAmount decimal.Decimal `json:"monthlyAmount"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// DonorInput carries the fields accepted on donor intake.
type DonorInput struct {
	Name          string          `json:"name"`
	Contact       string          `json:"contact"`
	MonthlyAmount decimal.Decimal `json:"monthlyAmount"`
}

// DonorPatch is a partial donor update; nil fields are left untouched.
type DonorPatch struct {
	Name          *string          `json:"name"`
	Contact       *string          `json:"contact"`
	MonthlyAmount *decimal.Decimal `json:"monthlyAmount"`
	IsActive      *bool            `json:"isActive"`
}

// LastPayment summarizes a donor's most recent paid month.
type LastPayment struct {
	Month  Month      `json:"month"`
	PaidAt *time.Time `json:"paidAt"`
}

// DonorWithLastPayment pairs a donor with its most recent PAID payment, if any.
type DonorWithLastPayment struct {
	Donor
	LastPayment *LastPayment `json:"lastPayment,omitempty"`
}
