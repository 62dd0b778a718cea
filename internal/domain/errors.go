package domain

import "errors"

// ErrorKind classifies client-safe errors so transports can pick a status code.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalid
	KindNotFound
	KindConflict
	KindUnauthorized
)

// Error is a business error whose message is safe to show to callers.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Invalid builds an input validation error with a custom message.
func Invalid(msg string) *Error {
	return newError(KindInvalid, msg)
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}

var (
	ErrNotFound     = newError(KindNotFound, "not found")
	ErrUnauthorized = newError(KindUnauthorized, "unauthorized")

	ErrIDRequired       = newError(KindInvalid, "id is required")
	ErrDonorIDRequired  = newError(KindInvalid, "donor ID is required")
	ErrInvalidMonth     = newError(KindInvalid, "invalid month format, expected YYYY-MM")
	ErrInvalidAmount    = newError(KindInvalid, "amount must be > 0")
	ErrAmountScale      = newError(KindInvalid, "amount must have at most 2 decimal places")
	ErrAmountTooLarge   = newError(KindInvalid, "amount must be less than 10000000000")
	ErrInvalidStatus    = newError(KindInvalid, "status must be PAID or UNPAID")
	ErrNameRequired     = newError(KindInvalid, "donor name is required")
	ErrTitleRequired    = newError(KindInvalid, "expense title is required")
	ErrCategoryRequired = newError(KindInvalid, "expense category is required")
	ErrInvalidCategory  = newError(KindInvalid, "unknown expense category")
	ErrInvalidDate      = newError(KindInvalid, "invalid date")
	ErrInvalidMonths    = newError(KindInvalid, "months must be between 1 and 120")
	ErrPageOutOfRange   = newError(KindInvalid, "page is out of range")
	ErrEmptyBatch       = newError(KindInvalid, "at least one donor is required")

	ErrDonorNotFound   = newError(KindNotFound, "donor not found")
	ErrPaymentNotFound = newError(KindNotFound, "payment not found")
	ErrExpenseNotFound = newError(KindNotFound, "expense not found")
	ErrNoActiveDonors  = newError(KindNotFound, "no active donors found")

	ErrDuplicatePayment = newError(KindConflict, "payment already exists for this donor and month")
	ErrAlreadyPaid      = newError(KindConflict, "payment is already marked as paid")
	ErrDuplicateUser    = newError(KindConflict, "username already taken")

	ErrInvalidCredentials = newError(KindUnauthorized, "invalid credentials")
)
