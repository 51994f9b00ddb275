package collection

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the single currency the collection is accounted in.
// Multi-currency support is out of scope.
const Currency = money.USD

// newDecimal is a convenient factory for decimal.Decimal.
func newDecimal[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// Money represents a monetary value, kept exact as a decimal.
type Money struct {
	value decimal.Decimal
}

// ParseMoney parses a decimal amount like "12.34".
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{value: d}, nil
}

// M builds a Money from any numeric value.
func M[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool           { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }

// MulQty scales the amount by an integer quantity of units.
func (m Money) MulQty(qty int64) Money {
	return Money{value: m.value.Mul(decimal.NewFromInt(qty))}
}

// DivQty divides the amount by an integer quantity of units.
func (m Money) DivQty(qty int64) Money {
	return Money{value: m.value.Div(decimal.NewFromInt(qty))}
}

// Div returns the ratio between two amounts as a plain decimal.
func (m Money) Div(n Money) decimal.Decimal { return m.value.Div(n.value) }

// String renders the amount with the currency formatter, e.g. "$1,234.50".
func (m Money) String() string {
	cur := money.GetCurrency(Currency)
	dec := m.value.Shift(int32(cur.Fraction))
	return money.New(dec.Round(0).IntPart(), Currency).Display()
}

// SignedString is like String but prefixes positive amounts with '+' and
// renders zero as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) MarshalJSON() ([]byte, error) {
	return m.value.MarshalJSON()
}

func (m *Money) UnmarshalJSON(decimalBytes []byte) error {
	return m.value.UnmarshalJSON(decimalBytes)
}
