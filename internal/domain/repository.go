package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DonorRepository persists donors.
type DonorRepository interface {
	Create(ctx context.Context, donor *Donor) error
	CreateMany(ctx context.Context, donors []Donor) (int, error)
	GetByID(ctx context.Context, id string) (*Donor, error)
	// List returns every donor ordered by name.
	List(ctx context.Context) ([]Donor, error)
	// ListActive returns active donors ordered by name.
	ListActive(ctx context.Context) ([]Donor, error)
	CountActive(ctx context.Context) (int, error)
	Update(ctx context.Context, donor *Donor) error
	Delete(ctx context.Context, id string) error
}

// PaymentRepository persists monthly payments.
type PaymentRepository interface {
	// Create inserts p and returns ErrDuplicatePayment when (donor, month) exists.
	Create(ctx context.Context, p *MonthlyPayment) error
	// InsertIfAbsent inserts p unless (donor, month) exists and reports whether it did.
	InsertIfAbsent(ctx context.Context, p *MonthlyPayment) (bool, error)
	GetByID(ctx context.Context, id string) (*MonthlyPayment, error)
	GetByDonorAndMonth(ctx context.Context, donorID string, month Month) (*MonthlyPayment, error)
	// ListByMonth returns the month's payments ordered by amount descending.
	ListByMonth(ctx context.Context, month Month) ([]MonthlyPayment, error)
	// LastPaidByDonor maps donor id to its most recent PAID payment by month.
	LastPaidByDonor(ctx context.Context) (map[string]MonthlyPayment, error)
	// LastPaidInMonth returns the PAID payment with the latest PaidAt, or ErrNotFound.
	LastPaidInMonth(ctx context.Context, month Month) (*MonthlyPayment, error)
	Update(ctx context.Context, p *MonthlyPayment) error
	SumPaidByMonth(ctx context.Context, month Month) (decimal.Decimal, error)
	CountByMonthAndStatus(ctx context.Context, month Month, status PaymentStatus) (int, error)
	PaidDonorIDs(ctx context.Context, month Month) ([]string, error)
	SumAllPaid(ctx context.Context) (decimal.Decimal, error)
}

// ExpenseRepository persists expenses.
type ExpenseRepository interface {
	Create(ctx context.Context, e *Expense) error
	GetByID(ctx context.Context, id string) (*Expense, error)
	// List returns every expense ordered by date descending.
	List(ctx context.Context) ([]Expense, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]Expense, error)
	ListPage(ctx context.Context, filter ExpenseFilter) (*ExpensePage, error)
	Update(ctx context.Context, e *Expense) error
	Delete(ctx context.Context, id string) error
	SumBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	SumAll(ctx context.Context) (decimal.Decimal, error)
}

// UserRepository persists staff credentials.
type UserRepository interface {
	Create(ctx context.Context, user *StaffUser) error
	GetByID(ctx context.Context, id string) (*StaffUser, error)
	GetByUsername(ctx context.Context, username string) (*StaffUser, error)
	SetPassword(ctx context.Context, username, passwordHash string) error
}
