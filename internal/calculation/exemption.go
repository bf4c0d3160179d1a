package calculation

import (
	"github.com/rpgo/income-tax-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ExemptionResolver turns a category into its rebate threshold.
type ExemptionResolver struct {
	Policy domain.ExemptionPolicy
}

// NewExemptionResolver creates a resolver over the given policy
func NewExemptionResolver(policy domain.ExemptionPolicy) *ExemptionResolver {
	return &ExemptionResolver{Policy: policy}
}

// Resolve returns the rebate threshold for category. Unknown categories
// fail with domain.ErrInvalidCategory rather than falling back to a default.
func (er *ExemptionResolver) Resolve(category domain.Category) (decimal.Decimal, error) {
	return er.Policy.Threshold(category)
}

// ResolveName parses a category name and resolves it.
func (er *ExemptionResolver) ResolveName(name string) (domain.Category, decimal.Decimal, error) {
	c, err := domain.ParseCategory(name)
	if err != nil {
		return "", decimal.Zero, err
	}
	v, err := er.Resolve(c)
	return c, v, err
}
