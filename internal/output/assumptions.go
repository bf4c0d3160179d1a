package output

import (
	"fmt"

	"github.com/rpgo/income-tax-calculator/internal/domain"
)

// GenerateAssumptions lists the rule values behind a report.
func GenerateAssumptions(report *domain.Report) []string {
	r := report.Result
	return []string{
		fmt.Sprintf("Rules: %s", report.RulesName),
		fmt.Sprintf("Rebate line for %s: %s (income at or below pays no tax)", r.Category, FormatCurrency(r.Exemption)),
		"Slabs apply to the whole income once it crosses the rebate line",
		"Tax is capped at the income above the rebate line (marginal relief)",
		fmt.Sprintf("Health & education cess: %s of tax", FormatRate(report.CessRate)),
	}
}
