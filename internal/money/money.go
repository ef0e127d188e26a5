// Package money provides an exact decimal amount type. All monetary
// arithmetic in spendwise goes through Money; floats only appear when a value
// is handed to a presentation layer.
package money

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Money is an immutable decimal amount.
type Money struct {
	d decimal.Decimal
}

func Zero() Money {
	return Money{}
}

func New(d decimal.Decimal) Money {
	return Money{d: d}
}

func FromInt(v int64) Money {
	return Money{d: decimal.NewFromInt(v)}
}

// Parse reads a decimal string such as "12.50".
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("money.Parse %q: %w", s, err)
	}
	return Money{d: d}, nil
}

// MustParse is Parse for literals; it panics on malformed input.
func MustParse(s string) Money {
	return Money{d: decimal.RequireFromString(s)}
}

// Sum adds all values, returning zero for no input.
func Sum(values ...Money) Money {
	total := Zero()
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

func (m Money) Add(o Money) Money { return Money{d: m.d.Add(o.d)} }
func (m Money) Sub(o Money) Money { return Money{d: m.d.Sub(o.d)} }

// Mul scales the amount by a plain factor.
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{d: m.d.Mul(factor)}
}

// Ratio returns m/o, or zero when o is zero.
func (m Money) Ratio(o Money) decimal.Decimal {
	if o.d.IsZero() {
		return decimal.Zero
	}
	return m.d.Div(o.d)
}

// Percent returns m/o*100, or zero when o is not positive.
func (m Money) Percent(o Money) decimal.Decimal {
	if !o.IsPositive() {
		return decimal.Zero
	}
	return m.d.Div(o.d).Mul(hundred)
}

// ClampZero returns max(m, 0).
func (m Money) ClampZero() Money {
	if m.d.IsNegative() {
		return Zero()
	}
	return m
}

func (m Money) Cmp(o Money) int { return m.d.Cmp(o.d) }
func (m Money) Equal(o Money) bool { return m.d.Equal(o.d) }
func (m Money) GreaterThan(o Money) bool { return m.d.GreaterThan(o.d) }
func (m Money) LessThan(o Money) bool { return m.d.LessThan(o.d) }
func (m Money) IsZero() bool { return m.d.IsZero() }
func (m Money) IsNegative() bool { return m.d.IsNegative() }
func (m Money) IsPositive() bool { return m.d.IsPositive() }
func (m Money) Decimal() decimal.Decimal { return m.d }

// Cents is the number of decimal places amounts are entered and shown with.
const Cents = 2

// FitsCents reports whether m has no digits beyond Cents decimal places.
// Trailing zeros do not count.
func (m Money) FitsCents() bool { return m.d.Equal(m.d.Truncate(Cents)) }
func (m Money) String() string { return m.d.String() }
func (m Money) StringFixed(p int32) string { return m.d.StringFixed(p) }

// Float64 is for charts and spreadsheets only.
func (m Money) Float64() float64 {
	f, _ := m.d.Float64()
	return f
}

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.d.String())
}

// UnmarshalJSON accepts both "12.50" and 12.50. null leaves m unchanged.
func (m *Money) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	raw := string(data)
	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("money.UnmarshalJSON: %w", err)
		}
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("money.UnmarshalJSON: %w", err)
	}
	m.d = d
	return nil
}

// Scan implements sql.Scanner for numeric columns.
func (m *Money) Scan(value any) error {
	return m.d.Scan(value)
}

// Value implements driver.Valuer.
func (m Money) Value() (driver.Value, error) {
	return m.d.Value()
}
