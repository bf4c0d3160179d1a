package domain

import (
	"github.com/shopspring/decimal"

	money "github.com/rpgo/income-tax-calculator/pkg/decimal"
)

// BracketContribution records the tax raised by one slab.
type BracketContribution struct {
	RangeLabel    string          `json:"range_label" yaml:"range_label"`
	Rate          decimal.Decimal `json:"rate" yaml:"rate"`
	TaxableAmount decimal.Decimal `json:"taxable_amount" yaml:"taxable_amount"`
	Tax           decimal.Decimal `json:"tax" yaml:"tax"`
}

// Summary is the take-home view of a computed tax.
type Summary struct {
	DisposableIncome decimal.Decimal `json:"disposable_income" yaml:"disposable_income"`
	EffectiveRate    decimal.Decimal `json:"effective_rate" yaml:"effective_rate"` // percent
	TotalTax         decimal.Decimal `json:"total_tax" yaml:"total_tax"`
}

// TaxResult is the full outcome for one (income, category) request.
//
// SlabTax is the sum of Breakdown before the marginal relief cap;
// TotalTax = SlabTax - MarginalRelief.
type TaxResult struct {
	Income             decimal.Decimal       `json:"income" yaml:"income"`
	Category           Category              `json:"category" yaml:"category"`
	Exemption          decimal.Decimal       `json:"exemption" yaml:"exemption"`
	SlabTax            decimal.Decimal       `json:"slab_tax" yaml:"slab_tax"`
	MarginalRelief     decimal.Decimal       `json:"marginal_relief" yaml:"marginal_relief"`
	TotalTax           decimal.Decimal       `json:"total_tax" yaml:"total_tax"`
	Breakdown          []BracketContribution `json:"breakdown" yaml:"breakdown"`
	Cess               decimal.Decimal       `json:"cess" yaml:"cess"`
	DisposableIncome   decimal.Decimal       `json:"disposable_income" yaml:"disposable_income"`
	EffectiveRate      decimal.Decimal       `json:"effective_rate" yaml:"effective_rate"`
	TaxSavingPotential decimal.Decimal       `json:"tax_saving_potential" yaml:"tax_saving_potential"`
}

// TotalLiability is tax plus cess.
func (r *TaxResult) TotalLiability() decimal.Decimal {
	return money.NewMoneyFromDecimal(r.TotalTax).Add(money.NewMoneyFromDecimal(r.Cess)).Decimal
}

// Rebated reports whether the income fell at or under the rebate line.
func (r *TaxResult) Rebated() bool {
	return r.Income.LessThanOrEqual(r.Exemption)
}

// SlabRow is one line of the slab presentation table. Reference columns
// describe a fully used bracket and are nil for the open-ended top slab.
type SlabRow struct {
	RangeLabel          string           `json:"range_label" yaml:"range_label"`
	Lower               decimal.Decimal  `json:"lower" yaml:"lower"`
	Upper               *decimal.Decimal `json:"upper,omitempty" yaml:"upper,omitempty"`
	RatePercent         decimal.Decimal  `json:"rate_percent" yaml:"rate_percent"`
	ReferenceTax        *decimal.Decimal `json:"reference_tax,omitempty" yaml:"reference_tax,omitempty"`
	ReferenceCumulative *decimal.Decimal `json:"reference_cumulative,omitempty" yaml:"reference_cumulative,omitempty"`
	TaxableAmount       decimal.Decimal  `json:"taxable_amount" yaml:"taxable_amount"`
	Tax                 decimal.Decimal  `json:"tax" yaml:"tax"`
	Applicable          bool             `json:"applicable" yaml:"applicable"`
}

// Report bundles a result with the table and rule metadata renderers need.
type Report struct {
	RulesName string          `json:"rules" yaml:"rules"`
	CessRate  decimal.Decimal `json:"cess_rate" yaml:"cess_rate"`
	Result    TaxResult       `json:"result" yaml:"result"`
	Slabs     []SlabRow       `json:"slabs" yaml:"slabs"`
	Insights  []string        `json:"insights,omitempty" yaml:"insights,omitempty"`
}
