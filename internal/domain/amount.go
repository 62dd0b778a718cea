package domain

import "github.com/shopspring/decimal"

// AmountScale is the number of decimal places a stored amount keeps.
const AmountScale = 2

// maxAmount is the first value that no longer fits numeric(12, 2).
var maxAmount = decimal.New(1, 10)

// ValidateAmount checks that amount is positive, has at most two decimal
// places and fits the ledger's numeric(12, 2) columns.
func ValidateAmount(amount decimal.Decimal) error {
	switch {
	case !amount.IsPositive():
		return ErrInvalidAmount
	case !amount.Equal(amount.Truncate(AmountScale)):
		return ErrAmountScale
	case amount.GreaterThanOrEqual(maxAmount):
		return ErrAmountTooLarge
	}
	return nil
}
