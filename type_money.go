package clip

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value, a price or a total value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M creates a Money in the given currency. An empty currency is a weak
// currency that adopts the currency of the other operand in Add and Sub.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// ValidateCurrency checks that code is a known ISO 4217 currency.
func ValidateCurrency(code string) error {
	if money.GetCurrency(code) == nil {
		return fmt.Errorf("unknown currency %q", code)
	}
	return nil
}

// String returns the money formatted according to its currency.
func (m Money) String() string {
	cur := money.GetCurrency(m.cur)
	if cur == nil {
		return m.value.StringFixed(2)
	}
	minor := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}

func (m Money) Currency() string         { return m.cur }
func (m Money) IsZero() bool             { return m.value.IsZero() }
func (m Money) IsPositive() bool         { return m.value.IsPositive() }
func (m Money) GreaterThan(n Money) bool { return m.value.GreaterThan(n.value) }
func (m Money) Mul(q Quantity) Money     { return Money{value: m.value.Mul(q.value), cur: m.cur} }
func (m Money) Div(q Quantity) Money     { return Money{value: m.value.Div(q.value), cur: m.cur} }

// Equal reports whether both amounts are equal. An empty currency matches any currency.
func (m Money) Equal(n Money) bool {
	return m.value.Equal(n.value) && (m.cur == n.cur || m.cur == "" || n.cur == "")
}

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}

// MarshalJSON writes the amount as a bare JSON number, the currency is
// carried by the enclosing portfolio.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.value.String()), nil
}
