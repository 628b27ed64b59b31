package kernel

import (
	"fmt"

	"labos/internal/pkg/errs"
)

// Money is a monetary amount in integer centavos. Integer arithmetic keeps
// the billing invariants (final = total - discount, order total = sum of item
// totals) exact through every recomputation; no floating point is involved.
//
// A zero amount is valid (free exams and absent discounts are real cases);
// negative amounts are not representable.
type Money struct {
	centavos int64
}

// NewMoney creates a Money amount from centavos.
// Returns ValueIsInvalidError for negative input.
func NewMoney(centavos int64) (Money, error) {
	if centavos < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d centavos is negative", centavos))
	}
	return Money{centavos: centavos}, nil
}

// Zero returns the zero amount.
func Zero() Money {
	return Money{}
}

// Centavos returns the raw amount in centavos.
func (m Money) Centavos() int64 {
	return m.centavos
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{centavos: m.centavos + other.centavos}
}

// Sub returns m - other, or an error when the result would be negative.
func (m Money) Sub(other Money) (Money, error) {
	if other.centavos > m.centavos {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("cannot subtract %d centavos from %d", other.centavos, m.centavos))
	}
	return Money{centavos: m.centavos - other.centavos}, nil
}

// MulInt returns m multiplied by a non-negative quantity.
func (m Money) MulInt(qty int) (Money, error) {
	if qty < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is negative", qty))
	}
	return Money{centavos: m.centavos * int64(qty)}, nil
}

// Percent returns the given percentage of m, truncated to whole centavos.
// Used for convenio discount rules expressed as percentages.
func (m Money) Percent(pct int) (Money, error) {
	if pct < 0 || pct > 100 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("percent",
			fmt.Errorf("%d is not between 0 and 100", pct))
	}
	return Money{centavos: m.centavos * int64(pct) / 100}, nil
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.centavos == 0
}

// LessThan reports whether m is strictly smaller than other.
func (m Money) LessThan(other Money) bool {
	return m.centavos < other.centavos
}

// IsEqual reports whether two amounts are the same.
func (m Money) IsEqual(other Money) bool {
	return m.centavos == other.centavos
}

// String formats the amount as reais with two decimal places.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.centavos/100, m.centavos%100)
}
