package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// priceEpsilon is the tolerance used when comparing a caller-declared price
// against the catalog price. Differences within a cent are treated as
// rounding noise, anything larger is a real price drift.
var priceEpsilon = decimal.NewFromFloat(0.01)

// Money is a value object representing a fixed-point currency amount.
// It wraps github.com/shopspring/decimal to avoid the rounding errors of
// binary floating point when summing order totals.
//
// Money is immutable; arithmetic methods return new values. The zero value
// represents zero currency and is valid, so Money can be summed starting
// from ZeroMoney().
//
// Example usage:
//
//	price, err := kernel.NewMoneyFromString("19.99")
//	if err != nil {
//	    // handle invalid amount
//	}
//	total := price.Mul(3) // 59.97
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns a Money value of zero, suitable as the start of a sum.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney creates a Money value from a decimal amount.
// Negative amounts are rejected: prices and totals in this domain are
// never negative.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Money{amount: amount}, nil
}

// NewMoneyFromString parses a Money value from its decimal string form.
// Used when reconstructing amounts from persistence or API payloads.
func NewMoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(amount)
}

// Amount returns the underlying decimal amount.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Add returns the sum of two Money values.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Mul returns the Money value multiplied by an integer quantity.
func (m Money) Mul(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// IsEqual reports whether two Money values represent the same amount.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// WithinEpsilon reports whether the other amount is within the rounding
// tolerance of this one. Used to compare guest-declared prices against the
// locked catalog price.
func (m Money) WithinEpsilon(other Money) bool {
	return m.amount.Sub(other.amount).Abs().LessThanOrEqual(priceEpsilon)
}

// String returns the decimal string form of the amount.
func (m Money) String() string {
	return m.amount.String()
}
