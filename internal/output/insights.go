package output

import (
	"fmt"

	"github.com/rpgo/income-tax-calculator/internal/domain"
	money "github.com/rpgo/income-tax-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// Insight is a single observation about a computed result.
type Insight struct {
	Key     string
	Message string
}

// AnalyzeResult derives the user-facing observations shown under a report.
// Extracted from formatter logic for testability.
func AnalyzeResult(report *domain.Report) []Insight {
	r := report.Result
	var out []Insight

	out = append(out, Insight{"effective_rate", fmt.Sprintf("Your effective tax rate is %s of your total income.", FormatPercentage(r.EffectiveRate))})

	income := money.NewMoneyFromDecimal(r.Income)
	exemption := money.NewMoneyFromDecimal(r.Exemption)
	switch {
	case r.Rebated():
		out = append(out, Insight{"rebate", fmt.Sprintf("Income is within the %s rebate line for %s; no tax is due (headroom %s).",
			exemption.Format(), r.Category, exemption.Sub(income).Format())})
	case r.MarginalRelief.IsPositive():
		out = append(out, Insight{"marginal_relief", fmt.Sprintf("Marginal relief of %s applies: tax is limited to the %s earned above the rebate line.",
			FormatCurrency(r.MarginalRelief), income.Sub(exemption).Format())})
	}

	if top := topSlab(report.Slabs); top != nil {
		out = append(out, Insight{"top_slab", fmt.Sprintf("Your highest applicable slab is %s at %s.", top.RangeLabel, FormatPercentage(top.RatePercent))})
	}

	out = append(out,
		Insight{"investments", "Consider tax-saving investments like NPS, PPF, and ELSS."},
		Insight{"brackets", "Higher income moves you into higher tax brackets; plan accordingly."},
	)

	if r.TaxSavingPotential.IsPositive() {
		out = append(out, Insight{"saving", fmt.Sprintf("Tax-saving investments could save up to %s in taxes.", FormatCurrency(r.TaxSavingPotential))})
	}
	return out
}

// GenerateInsights returns just the messages.
func GenerateInsights(report *domain.Report) []string {
	insights := AnalyzeResult(report)
	msgs := make([]string, 0, len(insights))
	for _, i := range insights {
		msgs = append(msgs, i.Message)
	}
	return msgs
}

// withInsights returns a shallow copy with Insights populated.
func withInsights(report *domain.Report) *domain.Report {
	cp := *report
	cp.Insights = GenerateInsights(report)
	return &cp
}

func topSlab(rows []domain.SlabRow) *domain.SlabRow {
	var top *domain.SlabRow
	for i := range rows {
		if rows[i].Applicable && rows[i].RatePercent.GreaterThan(decimal.Zero) {
			top = &rows[i]
		}
	}
	return top
}
