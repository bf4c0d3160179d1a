package output

import (
	"fmt"

	"github.com/rpgo/income-tax-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	slabsSheet   = "Slabs"
)

// XLSXFormatter produces a workbook with a Summary sheet and a Slabs sheet.
// Applicable slabs are highlighted.
type XLSXFormatter struct{}

func (x XLSXFormatter) Name() string      { return "xlsx" }
func (x XLSXFormatter) Extension() string { return "xlsx" }

func (x XLSXFormatter) Format(report *domain.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(slabsSheet); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, report); err != nil {
		return nil, fmt.Errorf("summary sheet: %w", err)
	}
	if err := writeSlabsSheet(f, report.Slabs); err != nil {
		return nil, fmt.Errorf("slabs sheet: %w", err)
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, report *domain.Report) error {
	r := report.Result
	rows := [][]any{
		{"Rules", report.RulesName},
		{"Category", string(r.Category)},
		{"Income", r.Income.InexactFloat64()},
		{"Rebate line", r.Exemption.InexactFloat64()},
		{"Slab tax", r.SlabTax.InexactFloat64()},
		{"Marginal relief", r.MarginalRelief.InexactFloat64()},
		{"Total tax", r.TotalTax.InexactFloat64()},
		{"Cess", r.Cess.InexactFloat64()},
		{"Disposable income", r.DisposableIncome.InexactFloat64()},
		{"Effective rate (%)", r.EffectiveRate.Round(2).InexactFloat64()},
		{"Tax-saving potential", r.TaxSavingPotential.InexactFloat64()},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 22); err != nil {
		return err
	}
	return addDistributionChart(f, r)
}

// addDistributionChart plots tax paid (tax plus cess) against what remains.
func addDistributionChart(f *excelize.File, r domain.TaxResult) error {
	rows := [][]any{
		{"Tax paid", r.TotalLiability().InexactFloat64()},
		{"Remaining income", r.DisposableIncome.InexactFloat64()},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(4, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}
	return f.AddChart(summarySheet, "D4", &excelize.Chart{
		Type: excelize.Doughnut,
		Series: []excelize.ChartSeries{{
			Name:       "Tax Distribution",
			Categories: summarySheet + "!$D$1:$D$2",
			Values:     summarySheet + "!$E$1:$E$2",
		}},
		Title:    []excelize.RichTextRun{{Text: "Tax Distribution"}},
		HoleSize: 40,
	})
}

func writeSlabsSheet(f *excelize.File, rows []domain.SlabRow) error {
	header := []any{"Income Slab", "Tax Rate (%)", "Slab Tax", "Cumulative Tax", "Taxable Amount", "Tax", "Applicable"}
	if err := f.SetSheetRow(slabsSheet, "A1", &header); err != nil {
		return err
	}
	highlight, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#2863B0"}, Pattern: 1},
		Font: &excelize.Font{Color: "#FFFFFF"},
	})
	if err != nil {
		return err
	}

	for i, row := range rows {
		values := []any{
			row.RangeLabel,
			row.RatePercent.InexactFloat64(),
			optionalFloat(row.ReferenceTax),
			optionalFloat(row.ReferenceCumulative),
			row.TaxableAmount.InexactFloat64(),
			row.Tax.InexactFloat64(),
			row.Applicable,
		}
		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(slabsSheet, start, &values); err != nil {
			return err
		}
		if row.Applicable {
			end, err := excelize.CoordinatesToCellName(len(values), i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(slabsSheet, start, end, highlight); err != nil {
				return err
			}
		}
	}
	return f.SetColWidth(slabsSheet, "A", "G", 16)
}

func optionalFloat(v *decimal.Decimal) any {
	if v == nil {
		return "-"
	}
	return v.InexactFloat64()
}
