package calculation

import (
	"fmt"

	"github.com/rpgo/income-tax-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Rebate is a cliff: income at or below the category threshold pays nothing.
//    Above it the slabs apply to the whole income, not to income - threshold.
//
// 2. Marginal relief: tax never exceeds income - threshold.
//
// 3. Cess is a flat percentage of the capped tax.
//
// 4. No rounding is applied to tax amounts; renderers round for display.

var hundred = decimal.NewFromInt(100)

// Request is one (income, category) pair to evaluate.
type Request struct {
	Income   decimal.Decimal `json:"income" yaml:"income"`
	Category domain.Category `json:"category" yaml:"category"`
}

// TaxComputation is the outcome of applying the slab table to one income.
type TaxComputation struct {
	SlabTax        decimal.Decimal
	MarginalRelief decimal.Decimal
	Tax            decimal.Decimal
	Breakdown      []domain.BracketContribution
}

// TaxEngine computes tax liability from a set of rules. It holds no mutable
// state and is safe for concurrent use.
type TaxEngine struct {
	Rules      domain.TaxRules
	Exemptions *ExemptionResolver
	Logger     Logger
}

// NewTaxEngine creates an engine over the default rules
func NewTaxEngine() *TaxEngine {
	rules := domain.DefaultRules()
	return &TaxEngine{
		Rules:      rules,
		Exemptions: NewExemptionResolver(rules.Exemptions),
		Logger:     NopLogger{},
	}
}

// NewTaxEngineWithRules creates an engine over validated custom rules
func NewTaxEngineWithRules(rules domain.TaxRules, logger Logger) (*TaxEngine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NopLogger{}
	}
	return &TaxEngine{
		Rules:      rules,
		Exemptions: NewExemptionResolver(rules.Exemptions),
		Logger:     logger,
	}, nil
}

// ComputeTax applies the rebate, the slab table and the marginal relief cap.
func (te *TaxEngine) ComputeTax(income, exemption decimal.Decimal) (TaxComputation, error) {
	if income.IsNegative() {
		return TaxComputation{}, fmt.Errorf("%w: %s is negative", domain.ErrInvalidIncome, income)
	}
	if exemption.IsNegative() {
		return TaxComputation{}, fmt.Errorf("%w: rebate threshold %s is negative", domain.ErrInvalidRules, exemption)
	}

	result := TaxComputation{
		SlabTax:        decimal.Zero,
		MarginalRelief: decimal.Zero,
		Tax:            decimal.Zero,
		Breakdown:      []domain.BracketContribution{},
	}
	if income.LessThanOrEqual(exemption) {
		return result, nil
	}

	for _, bracket := range te.Rules.Slabs {
		if income.LessThanOrEqual(bracket.Lower) {
			break
		}
		inBracket := bracket.TaxableAmount(income)
		tax := inBracket.Mul(bracket.Rate)
		if tax.IsZero() {
			continue
		}
		result.SlabTax = result.SlabTax.Add(tax)
		result.Breakdown = append(result.Breakdown, domain.BracketContribution{
			RangeLabel:    bracket.Label(),
			Rate:          bracket.Rate,
			TaxableAmount: inBracket,
			Tax:           tax,
		})
	}

	excess := income.Sub(exemption)
	result.Tax = decimal.Min(result.SlabTax, excess)
	result.MarginalRelief = result.SlabTax.Sub(result.Tax)
	if result.MarginalRelief.IsPositive() {
		te.Logger.Debugf("marginal relief %s applied: slab tax %s capped at %s", result.MarginalRelief, result.SlabTax, excess)
	}
	return result, nil
}

// ComputeCess returns tax * rate.
func ComputeCess(tax, rate decimal.Decimal) (decimal.Decimal, error) {
	if tax.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s is negative", domain.ErrInvalidTax, tax)
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("%w: cess rate %s outside [0,1)", domain.ErrInvalidRules, rate)
	}
	return tax.Mul(rate), nil
}

// ComposeSummary derives take-home income and the effective rate. A zero
// income has an effective rate of 0.
func ComposeSummary(income, tax, cess decimal.Decimal) domain.Summary {
	liability := tax.Add(cess)
	rate := decimal.Zero
	if income.IsPositive() {
		rate = liability.Div(income).Mul(hundred)
	}
	return domain.Summary{
		DisposableIncome: income.Sub(liability),
		EffectiveRate:    rate,
		TotalTax:         tax,
	}
}

// TaxSavingPotential is the illustrative min(max investment, income * top rate).
func (te *TaxEngine) TaxSavingPotential(income decimal.Decimal) decimal.Decimal {
	s := te.Rules.Savings
	return decimal.Min(s.MaxDeductibleInvestment, income.Mul(s.TopMarginalRate))
}

// Calculate validates the request and runs the full pipeline.
func (te *TaxEngine) Calculate(req Request) (*domain.TaxResult, error) {
	if req.Income.IsNegative() {
		return nil, fmt.Errorf("%w: %s is negative", domain.ErrInvalidIncome, req.Income)
	}
	exemption, err := te.Exemptions.Resolve(req.Category)
	if err != nil {
		return nil, err
	}

	comp, err := te.ComputeTax(req.Income, exemption)
	if err != nil {
		return nil, err
	}
	cess, err := ComputeCess(comp.Tax, te.Rules.CessRate)
	if err != nil {
		return nil, err
	}
	summary := ComposeSummary(req.Income, comp.Tax, cess)

	te.Logger.Debugf("computed tax for %s income %s: tax=%s cess=%s", req.Category, req.Income, comp.Tax, cess)

	return &domain.TaxResult{
		Income:             req.Income,
		Category:           req.Category,
		Exemption:          exemption,
		SlabTax:            comp.SlabTax,
		MarginalRelief:     comp.MarginalRelief,
		TotalTax:           comp.Tax,
		Breakdown:          comp.Breakdown,
		Cess:               cess,
		DisposableIncome:   summary.DisposableIncome,
		EffectiveRate:      summary.EffectiveRate,
		TaxSavingPotential: te.TaxSavingPotential(req.Income),
	}, nil
}

// CalculateFor parses a category name and calculates.
func (te *TaxEngine) CalculateFor(income decimal.Decimal, category string) (*domain.TaxResult, error) {
	c, err := domain.ParseCategory(category)
	if err != nil {
		return nil, err
	}
	return te.Calculate(Request{Income: income, Category: c})
}

// BuildReport calculates and attaches the slab table for renderers.
func (te *TaxEngine) BuildReport(req Request) (*domain.Report, error) {
	result, err := te.Calculate(req)
	if err != nil {
		return nil, err
	}
	return &domain.Report{
		RulesName: te.Rules.Name,
		CessRate:  te.Rules.CessRate,
		Result:    *result,
		Slabs:     te.SlabRows(req.Income, result.Breakdown),
	}, nil
}
