package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, in := range []string{"Salaried", "salaried", " SALARIED "} {
		c, err := ParseCategory(in)
		require.NoError(t, err)
		assert.Equal(t, CategorySalaried, c)
	}

	c, err := ParseCategory("others")
	require.NoError(t, err)
	assert.Equal(t, CategoryOthers, c)

	for _, in := range []string{"", "Business", "Salary"} {
		_, err := ParseCategory(in)
		assert.True(t, errors.Is(err, ErrInvalidCategory), "input %q: %v", in, err)
	}
}

func TestExemptionPolicy_Threshold(t *testing.T) {
	policy := DefaultRules().Exemptions

	v, err := policy.Threshold(CategorySalaried)
	require.NoError(t, err)
	assert.True(t, v.Equal(decimal.NewFromInt(1275000)))

	v, err = policy.Threshold(CategoryOthers)
	require.NoError(t, err)
	assert.True(t, v.Equal(decimal.NewFromInt(1200000)))

	_, err = policy.Threshold(Category("Pensioner"))
	assert.True(t, errors.Is(err, ErrInvalidCategory))

	_, err = ExemptionPolicy{CategoryOthers: decimal.Zero}.Threshold(CategorySalaried)
	assert.True(t, errors.Is(err, ErrInvalidRules))
}

func TestTaxRules_Validate(t *testing.T) {
	rules := DefaultRules()
	require.NoError(t, rules.Validate())

	testCases := []struct {
		desc   string
		mutate func(r *TaxRules)
		target error
	}{
		{"bad slabs", func(r *TaxRules) { r.Slabs = nil }, ErrInvalidSlabTable},
		{"missing category", func(r *TaxRules) { delete(r.Exemptions, CategoryOthers) }, ErrInvalidRules},
		{"negative threshold", func(r *TaxRules) { r.Exemptions[CategorySalaried] = decimal.NewFromInt(-1) }, ErrInvalidRules},
		{"unknown category", func(r *TaxRules) { r.Exemptions["Pensioner"] = decimal.NewFromInt(10) }, ErrInvalidRules},
		{"cess too high", func(r *TaxRules) { r.CessRate = decimal.NewFromInt(1) }, ErrInvalidRules},
		{"negative cess", func(r *TaxRules) { r.CessRate = decimal.NewFromInt(-1) }, ErrInvalidRules},
		{"negative savings cap", func(r *TaxRules) { r.Savings.MaxDeductibleInvestment = decimal.NewFromInt(-5) }, ErrInvalidRules},
		{"savings rate above one", func(r *TaxRules) { r.Savings.TopMarginalRate = decimal.NewFromInt(2) }, ErrInvalidRules},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			r := DefaultRules()
			tc.mutate(&r)
			err := r.Validate()
			assert.True(t, errors.Is(err, tc.target), "unexpected error: %v", err)
		})
	}
}

func TestErrorCode(t *testing.T) {
	_, err := ParseCategory("x")
	assert.Equal(t, "INVALID_CATEGORY", ErrorCode(err))
	assert.Equal(t, "INVALID_INCOME", ErrorCode(ErrInvalidIncome))
	assert.Equal(t, "INVALID_TAX", ErrorCode(ErrInvalidTax))
	assert.Equal(t, "INVALID_SLAB_TABLE", ErrorCode(ErrInvalidSlabTable))
	assert.Equal(t, "INVALID_RULES", ErrorCode(ErrInvalidRules))
	assert.Equal(t, "INTERNAL_ERROR", ErrorCode(errors.New("boom")))
}

func TestTaxResult_Helpers(t *testing.T) {
	r := TaxResult{
		Income:    decimal.NewFromInt(1275000),
		Exemption: decimal.NewFromInt(1275000),
		TotalTax:  decimal.NewFromInt(100),
		Cess:      decimal.NewFromInt(4),
	}
	assert.True(t, r.Rebated())
	assert.True(t, r.TotalLiability().Equal(decimal.NewFromInt(104)))
}
