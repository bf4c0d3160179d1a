package decimal

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrInvalidAmount is returned when a string cannot be read as a rupee amount.
var ErrInvalidAmount = errors.New("invalid amount")

// RupeeSymbol prefixes formatted amounts.
const RupeeSymbol = "₹"

// en-IN groups digits as 12,34,56,789.
var indianPrinter = message.NewPrinter(language.MustParse("en-IN"))

// Money represents a rupee amount with exact decimal precision
type Money struct {
	decimal.Decimal
}

// NewMoney creates a new Money instance from a whole rupee amount
func NewMoney(rupees int64) Money {
	return Money{decimal.NewFromInt(rupees)}
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// NewMoneyFromString parses user input such as "25,00,000", "₹12,75,000" or "1_300_000.50".
// Grouping separators, underscores, spaces and a leading rupee sign are ignored.
func NewMoneyFromString(value string) (Money, error) {
	s := strings.TrimSpace(value)
	s = strings.TrimPrefix(s, RupeeSymbol)
	s = strings.TrimPrefix(s, "Rs.")
	s = strings.TrimPrefix(s, "INR")
	s = strings.NewReplacer(",", "", "_", "", " ", "").Replace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errors.Join(ErrInvalidAmount, err)
	}
	return Money{d}, nil
}

// Round rounds to whole rupees (half away from zero)
func (m Money) Round() Money {
	return Money{m.Decimal.Round(0)}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// String returns the amount with two decimal places and no grouping
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Grouped returns the whole-rupee amount with Indian digit grouping, without a symbol.
func (m Money) Grouped() string {
	r := m.Round()
	neg := r.IsNegative()
	s := indianPrinter.Sprintf("%d", r.Abs().IntPart())
	if neg {
		return "-" + s
	}
	return s
}

// Format renders the amount as whole rupees, e.g. ₹25,00,000
func (m Money) Format() string {
	g := m.Grouped()
	if strings.HasPrefix(g, "-") {
		return "-" + RupeeSymbol + g[1:]
	}
	return RupeeSymbol + g
}
