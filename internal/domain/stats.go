package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStats aggregates the payment rows of one month.
type PaymentStats struct {
	Month          Month           `json:"month"`
	TotalDonations decimal.Decimal `json:"totalDonations"`
	PaidCount      int             `json:"paidCount"`
	PendingCount   int             `json:"pendingCount"`
}

// MonthlyStats is the monthly dashboard summary.
type MonthlyStats struct {
	Month             Month           `json:"month"`
	TotalDonations    decimal.Decimal `json:"totalDonations"`
	TotalExpenses     decimal.Decimal `json:"totalExpenses"`
	NetBalance        decimal.Decimal `json:"netBalance"`
	PaidCount         int             `json:"paidCount"`
	UnpaidDonorsCount int             `json:"unpaidDonorsCount"`
}

// AllTimeStats sums every paid donation and every expense on record.
type AllTimeStats struct {
	TotalDonations   decimal.Decimal `json:"totalDonations"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	AvailableBalance decimal.Decimal `json:"availableBalance"`
}

// LastPaymentByMonth is one entry of the recent payment trend. A month with
// no paid payment has a nil LastPaymentDate and a zero Amount.
type LastPaymentByMonth struct {
	Month           Month           `json:"month"`
	LastPaymentDate *time.Time      `json:"lastPaymentDate"`
	Amount          decimal.Decimal `json:"amount"`
}

// ExpenseTotal is the summed expense amount of a month.
type ExpenseTotal struct {
	Month Month           `json:"month"`
	Total decimal.Decimal `json:"total"`
}
