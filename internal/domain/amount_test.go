package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAmount(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"25", nil},
		{"0.01", nil},
		{"100.50", nil},
		{"9999999999.99", nil},
		{"0", ErrInvalidAmount},
		{"-5", ErrInvalidAmount},
		{"0.001", ErrAmountScale},
		{"100.555", ErrAmountScale},
		{"10000000000", ErrAmountTooLarge},
		{"1e12", ErrAmountTooLarge},
	}
	for _, tc := range cases {
		if got := ValidateAmount(decimal.RequireFromString(tc.in)); got != tc.want {
			t.Fatalf("ValidateAmount(%s) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
