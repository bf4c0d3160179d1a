package calculation

import (
	"github.com/rpgo/income-tax-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// SlabRows builds the slab presentation table for income. Reference columns
// come from the rules themselves; per-income columns are copied from
// breakdown, matched by range label.
func (te *TaxEngine) SlabRows(income decimal.Decimal, breakdown []domain.BracketContribution) []domain.SlabRow {
	byLabel := make(map[string]domain.BracketContribution, len(breakdown))
	for _, c := range breakdown {
		byLabel[c.RangeLabel] = c
	}

	rows := make([]domain.SlabRow, 0, len(te.Rules.Slabs))
	cumulative := decimal.Zero
	for _, b := range te.Rules.Slabs {
		row := domain.SlabRow{
			RangeLabel:    b.Label(),
			Lower:         b.Lower,
			Upper:         b.Upper,
			RatePercent:   b.Rate.Mul(hundred),
			TaxableAmount: decimal.Zero,
			Tax:           decimal.Zero,
			Applicable:    b.Contains(income),
		}
		if width, ok := b.Width(); ok {
			ref := width.Mul(b.Rate)
			cumulative = cumulative.Add(ref)
			cum := cumulative
			row.ReferenceTax = &ref
			row.ReferenceCumulative = &cum
		}
		if c, ok := byLabel[row.RangeLabel]; ok {
			row.TaxableAmount = c.TaxableAmount
			row.Tax = c.Tax
		}
		rows = append(rows, row)
	}
	return rows
}

// ReferenceTable is the slab table with no income applied.
func (te *TaxEngine) ReferenceTable() []domain.SlabRow {
	rows := te.SlabRows(decimal.Zero, nil)
	for i := range rows {
		rows[i].Applicable = false
	}
	return rows
}
