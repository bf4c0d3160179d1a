package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/income-tax-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVFormatter writes the slab table with per-income amounts, one row per slab,
// followed by the summary totals.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string      { return "csv" }
func (c CSVFormatter) Extension() string { return "csv" }

func (c CSVFormatter) Format(report *domain.Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Slab", "RatePercent", "ReferenceTax", "ReferenceCumulative", "TaxableAmount", "Tax", "Applicable"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range report.Slabs {
		rec := []string{
			row.RangeLabel,
			row.RatePercent.String(),
			optionalFixed(row.ReferenceTax),
			optionalFixed(row.ReferenceCumulative),
			row.TaxableAmount.StringFixed(2),
			row.Tax.StringFixed(2),
			strconv.FormatBool(row.Applicable),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}

	r := report.Result
	summary := [][]string{
		{},
		{"Income", r.Income.StringFixed(2)},
		{"Category", string(r.Category)},
		{"SlabTax", r.SlabTax.StringFixed(2)},
		{"MarginalRelief", r.MarginalRelief.StringFixed(2)},
		{"TotalTax", r.TotalTax.StringFixed(2)},
		{"Cess", r.Cess.StringFixed(2)},
		{"DisposableIncome", r.DisposableIncome.StringFixed(2)},
		{"EffectiveRate", r.EffectiveRate.StringFixed(2)},
	}
	for _, rec := range summary {
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// BatchCSV writes one summary row per result, in order.
func BatchCSV(results []*domain.TaxResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Income", "Category", "SlabTax", "MarginalRelief", "TotalTax", "Cess", "DisposableIncome", "EffectiveRate"}); err != nil {
		return nil, err
	}
	for _, r := range results {
		rec := []string{
			r.Income.StringFixed(2),
			string(r.Category),
			r.SlabTax.StringFixed(2),
			r.MarginalRelief.StringFixed(2),
			r.TotalTax.StringFixed(2),
			r.Cess.StringFixed(2),
			r.DisposableIncome.StringFixed(2),
			r.EffectiveRate.StringFixed(2),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func optionalFixed(v *decimal.Decimal) string {
	if v == nil {
		return ""
	}
	return v.StringFixed(2)
}
