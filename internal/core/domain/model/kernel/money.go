package kernel

import (
	"fmt"
	"math"

	"pressing/internal/pkg/errs"
)

// Money is a value object representing a monetary amount in euro cents.
// Integer arithmetic avoids the rounding drift of floating-point euros;
// amounts are converted to decimal euros only at the presentation boundary.
//
// The zero value is a valid amount of zero cents. Money is immutable:
// every operation returns a new value.
type Money struct {
	cents int64
}

// NewMoney creates a Money amount from euro cents.
// Negative amounts are rejected: order totals, discounts, and payouts
// are never negative in this domain.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("%d cents is negative", cents))
	}
	return Money{cents: cents}, nil
}

// MoneyFromEuros creates a Money amount from a decimal euro value,
// rounding to the nearest cent.
func MoneyFromEuros(euros float64) (Money, error) {
	return NewMoney(int64(math.Round(euros * 100)))
}

// Cents returns the amount in euro cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Euros returns the amount as decimal euros.
func (m Money) Euros() float64 {
	return float64(m.cents) / 100
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// SubFloored returns m minus other, floored at zero.
// Used for fixed discounts so a generous code can never make a total negative.
func (m Money) SubFloored(other Money) Money {
	if other.cents >= m.cents {
		return Money{}
	}
	return Money{cents: m.cents - other.cents}
}

// Percent returns the given percentage of the amount, rounded to the nearest cent.
func (m Money) Percent(percent float64) Money {
	return Money{cents: int64(math.Round(float64(m.cents) * percent / 100))}
}

// MulWeight returns the amount multiplied by a weight in kilograms,
// rounded to the nearest cent. Used for per-kg pricing.
func (m Money) MulWeight(weightKg float64) Money {
	return Money{cents: int64(math.Round(float64(m.cents) * weightKg))}
}

// IsZero reports whether the amount is zero cents.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsEqual reports whether two amounts are the same number of cents.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String formats the amount as decimal euros, e.g. "18.00".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
