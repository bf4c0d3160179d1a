package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/income-tax-calculator/internal/domain"
)

// ConsoleFormatter renders a plain-text report for terminals.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

func (c ConsoleFormatter) Format(report *domain.Report) ([]byte, error) {
	var buf bytes.Buffer
	r := report.Result

	fmt.Fprintln(&buf, "INCOME TAX SUMMARY")
	fmt.Fprintln(&buf, "==================")
	fmt.Fprintf(&buf, "Rules:              %s\n", report.RulesName)
	fmt.Fprintf(&buf, "Category:           %s\n", r.Category)
	fmt.Fprintf(&buf, "Income:             %s\n", FormatCurrency(r.Income))
	fmt.Fprintf(&buf, "Rebate line:        %s\n", FormatCurrency(r.Exemption))
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Slab tax:           %s\n", FormatCurrency(r.SlabTax))
	if r.MarginalRelief.IsPositive() {
		fmt.Fprintf(&buf, "Marginal relief:   -%s\n", FormatCurrency(r.MarginalRelief))
	}
	fmt.Fprintf(&buf, "Total tax:          %s\n", FormatCurrency(r.TotalTax))
	fmt.Fprintf(&buf, "Cess (%s):          %s\n", FormatRate(report.CessRate), FormatCurrency(r.Cess))
	fmt.Fprintf(&buf, "Disposable income:  %s\n", FormatCurrency(r.DisposableIncome))
	fmt.Fprintf(&buf, "Effective rate:     %s\n", FormatPercentage(r.EffectiveRate))

	if len(r.Breakdown) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "BREAKDOWN")
		fmt.Fprintf(&buf, "%-12s %6s %14s %12s\n", "Slab", "Rate", "Taxable", "Tax")
		for _, b := range r.Breakdown {
			fmt.Fprintf(&buf, "%-12s %6s %14s %12s\n", b.RangeLabel, FormatRate(b.Rate), FormatCurrency(b.TaxableAmount), FormatCurrency(b.Tax))
		}
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "APPLICABLE TAX SLABS")
	writeSlabTable(&buf, report.Slabs)

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "INSIGHTS")
	for _, msg := range GenerateInsights(report) {
		fmt.Fprintf(&buf, "• %s\n", msg)
	}
	return buf.Bytes(), nil
}

// writeSlabTable prints the slab table, marking applicable rows with '*'.
func writeSlabTable(buf *bytes.Buffer, rows []domain.SlabRow) {
	fmt.Fprintf(buf, "  %-12s %6s %14s %16s\n", "Income Slab", "Rate", "Slab Tax", "Cumulative Tax")
	for _, row := range rows {
		mark := " "
		if row.Applicable {
			mark = "*"
		}
		fmt.Fprintf(buf, "%s %-12s %6s %14s %16s\n", mark, row.RangeLabel, FormatPercentage(row.RatePercent),
			FormatOptionalCurrency(row.ReferenceTax), FormatOptionalCurrency(row.ReferenceCumulative))
	}
}

// FormatSlabTable renders just the slab table.
func FormatSlabTable(rows []domain.SlabRow) []byte {
	var buf bytes.Buffer
	writeSlabTable(&buf, rows)
	return buf.Bytes()
}
