package output

import (
	money "github.com/rpgo/income-tax-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as whole rupees with Indian grouping.
func FormatCurrency(amount decimal.Decimal) string {
	return money.NewMoneyFromDecimal(amount).Format()
}

// FormatOptionalCurrency renders nil as "-".
func FormatOptionalCurrency(amount *decimal.Decimal) string {
	if amount == nil {
		return "-"
	}
	return FormatCurrency(*amount)
}

// FormatPercentage formats a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate renders a fraction as a whole-number-or-decimal percent, e.g. 0.05 -> "5%".
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String() + "%"
}
