package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ExemptionPolicy maps each category to its rebate threshold.
type ExemptionPolicy map[Category]decimal.Decimal

// Threshold returns the rebate threshold for c.
func (p ExemptionPolicy) Threshold(c Category) (decimal.Decimal, error) {
	if !c.Valid() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidCategory, string(c))
	}
	v, ok := p[c]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no rebate threshold for %s", ErrInvalidRules, c)
	}
	return v, nil
}

// Validate requires a non-negative threshold for every category and nothing else.
func (p ExemptionPolicy) Validate() error {
	for _, c := range Categories() {
		v, ok := p[c]
		if !ok {
			return fmt.Errorf("%w: missing rebate threshold for %s", ErrInvalidRules, c)
		}
		if v.IsNegative() {
			return fmt.Errorf("%w: rebate threshold for %s is negative", ErrInvalidRules, c)
		}
	}
	for c := range p {
		if !c.Valid() {
			return fmt.Errorf("%w: unknown category %q in exemptions", ErrInvalidRules, string(c))
		}
	}
	return nil
}

// SavingsConfig bounds the illustrative tax-saving figure shown to users.
type SavingsConfig struct {
	MaxDeductibleInvestment decimal.Decimal `yaml:"max_deductible_investment" json:"max_deductible_investment"`
	TopMarginalRate         decimal.Decimal `yaml:"top_marginal_rate" json:"top_marginal_rate"`
}

// TaxRules is the single source of slab, rebate and cess constants shared by
// the engine and the slab presentation table.
type TaxRules struct {
	Name       string          `yaml:"name" json:"name"`
	Slabs      SlabTable       `yaml:"slabs" json:"slabs"`
	Exemptions ExemptionPolicy `yaml:"exemptions" json:"exemptions"`
	CessRate   decimal.Decimal `yaml:"cess_rate" json:"cess_rate"`
	Savings    SavingsConfig   `yaml:"savings" json:"savings"`
}

// Validate checks every part of the rules.
func (r *TaxRules) Validate() error {
	if err := r.Slabs.Validate(); err != nil {
		return err
	}
	if err := r.Exemptions.Validate(); err != nil {
		return err
	}
	if r.CessRate.IsNegative() || r.CessRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: cess rate %s outside [0,1)", ErrInvalidRules, r.CessRate)
	}
	if r.Savings.MaxDeductibleInvestment.IsNegative() {
		return fmt.Errorf("%w: max deductible investment cannot be negative", ErrInvalidRules)
	}
	if r.Savings.TopMarginalRate.IsNegative() || r.Savings.TopMarginalRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: savings top marginal rate %s outside [0,1]", ErrInvalidRules, r.Savings.TopMarginalRate)
	}
	return nil
}

// DefaultRules returns the FY 2025-26 new-regime slabs with the 87A rebate lines.
func DefaultRules() TaxRules {
	return TaxRules{
		Name: "FY 2025-26 (new regime)",
		Slabs: SlabTable{
			NewSlab(0, 400000, "0"),
			NewSlab(400000, 800000, "0.05"),
			NewSlab(800000, 1200000, "0.10"),
			NewSlab(1200000, 1600000, "0.15"),
			NewSlab(1600000, 2000000, "0.20"),
			NewSlab(2000000, 2400000, "0.25"),
			NewTopSlab(2400000, "0.30"),
		},
		Exemptions: ExemptionPolicy{
			CategorySalaried: decimal.NewFromInt(1275000), // 12L rebate + 75k standard deduction
			CategoryOthers:   decimal.NewFromInt(1200000),
		},
		CessRate: decimal.RequireFromString("0.04"),
		Savings: SavingsConfig{
			MaxDeductibleInvestment: decimal.NewFromInt(150000),
			TopMarginalRate:         decimal.RequireFromString("0.30"),
		},
	}
}
