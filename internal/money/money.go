package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a monetary amount carrying exactly two fractional digits. Every
// constructor and arithmetic helper rounds half-up to two decimal places, so a
// Money value is always representable on a policy document as-is.
type Money struct {
	d decimal.Decimal
}

// Zero returns the zero amount.
func Zero() Money {
	return Money{d: decimal.Zero.Round(2)}
}

// FromDecimal converts an arbitrary-precision decimal into Money, rounding
// half-up at two decimal places.
func FromDecimal(d decimal.Decimal) Money {
	return Money{d: d.Round(2)}
}

// Parse reads a decimal string such as "207.20" into Money.
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, fmt.Errorf("money: parse %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

// MustParse is Parse for literals known to be valid. It panics on error and is
// intended for table construction and tests.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{d: m.d.Add(o.d)}
}

// Sub returns m - o.
func (m Money) Sub(o Money) Money {
	return Money{d: m.d.Sub(o.d)}
}

// MulRound multiplies by an arbitrary factor and rounds the product half-up to
// two decimal places. This is the single rounding step used by surcharge
// composition, add-on proration and breakdown rescaling.
func (m Money) MulRound(factor decimal.Decimal) Money {
	return FromDecimal(m.d.Mul(factor))
}

// Ratio returns m / o at full division precision without rounding to cents.
// Callers feed the result back through MulRound.
func (m Money) Ratio(o Money) decimal.Decimal {
	return m.d.Div(o.d)
}

// Cmp compares two amounts: -1 if m < o, 0 if equal, +1 if m > o.
func (m Money) Cmp(o Money) int {
	return m.d.Cmp(o.d)
}

// Equal reports exact equality at two decimal places.
func (m Money) Equal(o Money) bool {
	return m.d.Equal(o.d)
}

// Within reports whether |m - o| <= tol.
func (m Money) Within(o, tol Money) bool {
	return m.d.Sub(o.d).Abs().Cmp(tol.d) <= 0
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.d.IsPositive()
}

// Decimal exposes the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.d
}

// String renders the amount with exactly two decimal places.
func (m Money) String() string {
	return m.d.StringFixed(2)
}

// DisplayEuro renders the amount the way contract documents expect it,
// with a trailing euro sign.
func (m Money) DisplayEuro() string {
	return m.String() + "€"
}

// MarshalJSON encodes the amount as a fixed two-decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts either a JSON string or a bare number.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
