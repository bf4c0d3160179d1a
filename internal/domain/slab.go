package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var lakh = decimal.NewFromInt(100000)

// SlabBracket is one contiguous income range taxed at a fixed marginal rate.
// A nil Upper marks the open-ended top bracket.
type SlabBracket struct {
	Lower decimal.Decimal  `yaml:"lower" json:"lower"`
	Upper *decimal.Decimal `yaml:"upper,omitempty" json:"upper,omitempty"`
	Rate  decimal.Decimal  `yaml:"rate" json:"rate"`
}

// NewSlab creates a bounded bracket from whole rupee bounds
func NewSlab(lower, upper int64, rate string) SlabBracket {
	u := decimal.NewFromInt(upper)
	return SlabBracket{Lower: decimal.NewFromInt(lower), Upper: &u, Rate: decimal.RequireFromString(rate)}
}

// NewTopSlab creates the unbounded top bracket
func NewTopSlab(lower int64, rate string) SlabBracket {
	return SlabBracket{Lower: decimal.NewFromInt(lower), Rate: decimal.RequireFromString(rate)}
}

// Unbounded reports whether the bracket extends to infinity.
func (b SlabBracket) Unbounded() bool { return b.Upper == nil }

// Width returns Upper-Lower; ok is false for the unbounded bracket.
func (b SlabBracket) Width() (width decimal.Decimal, ok bool) {
	if b.Unbounded() {
		return decimal.Zero, false
	}
	return b.Upper.Sub(b.Lower), true
}

// TaxableAmount is the part of income falling inside the bracket:
// max(0, min(income, Upper) - Lower).
func (b SlabBracket) TaxableAmount(income decimal.Decimal) decimal.Decimal {
	top := income
	if !b.Unbounded() {
		top = decimal.Min(income, *b.Upper)
	}
	return decimal.Max(decimal.Zero, top.Sub(b.Lower))
}

// Contains reports whether the closed range [Lower, Upper] intersects [0, income].
func (b SlabBracket) Contains(income decimal.Decimal) bool {
	return b.Lower.LessThanOrEqual(income)
}

// Label renders the range in lakhs, e.g. "4L - 8L" or "24L+".
func (b SlabBracket) Label() string {
	if b.Unbounded() {
		return formatLakhs(b.Lower) + "+"
	}
	return formatLakhs(b.Lower) + " - " + formatLakhs(*b.Upper)
}

func formatLakhs(d decimal.Decimal) string {
	if d.IsZero() {
		return "0"
	}
	return d.Div(lakh).String() + "L"
}

// SlabTable is the ordered list of brackets, lowest first.
type SlabTable []SlabBracket

// Validate checks the table is contiguous, starts at 0, ends unbounded and is progressive.
func (t SlabTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: no brackets", ErrInvalidSlabTable)
	}
	if !t[0].Lower.IsZero() {
		return fmt.Errorf("%w: first bracket must start at 0, got %s", ErrInvalidSlabTable, t[0].Lower)
	}
	one := decimal.NewFromInt(1)
	for i, b := range t {
		if b.Rate.IsNegative() || b.Rate.GreaterThanOrEqual(one) {
			return fmt.Errorf("%w: bracket %d rate %s outside [0,1)", ErrInvalidSlabTable, i, b.Rate)
		}
		last := i == len(t)-1
		if b.Unbounded() != last {
			if last {
				return fmt.Errorf("%w: last bracket must be unbounded", ErrInvalidSlabTable)
			}
			return fmt.Errorf("%w: bracket %d is unbounded but not last", ErrInvalidSlabTable, i)
		}
		if !last && b.Upper.LessThanOrEqual(b.Lower) {
			return fmt.Errorf("%w: bracket %d upper %s not above lower %s", ErrInvalidSlabTable, i, b.Upper, b.Lower)
		}
		if i > 0 {
			prev := t[i-1]
			if !prev.Upper.Equal(b.Lower) {
				return fmt.Errorf("%w: bracket %d starts at %s, previous ends at %s", ErrInvalidSlabTable, i, b.Lower, prev.Upper)
			}
			if b.Rate.LessThan(prev.Rate) {
				return fmt.Errorf("%w: bracket %d rate %s below previous %s", ErrInvalidSlabTable, i, b.Rate, prev.Rate)
			}
		}
	}
	return nil
}

// TopRate returns the marginal rate of the unbounded bracket.
func (t SlabTable) TopRate() decimal.Decimal {
	if len(t) == 0 {
		return decimal.Zero
	}
	return t[len(t)-1].Rate
}
