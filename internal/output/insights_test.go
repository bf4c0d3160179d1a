package output

import (
	"testing"

	"github.com/rpgo/income-tax-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
)

func insightKeys(insights []Insight) []string {
	keys := make([]string, 0, len(insights))
	for _, i := range insights {
		keys = append(keys, i.Key)
	}
	return keys
}

func TestAnalyzeResult(t *testing.T) {
	testCases := []struct {
		desc     string
		income   int64
		category domain.Category
		keys     []string
	}{
		{
			desc:     "rebated income",
			income:   1000000,
			category: domain.CategorySalaried,
			keys:     []string{"effective_rate", "rebate", "top_slab", "investments", "brackets", "saving"},
		},
		{
			desc:     "marginal relief",
			income:   1300000,
			category: domain.CategorySalaried,
			keys:     []string{"effective_rate", "marginal_relief", "top_slab", "investments", "brackets", "saving"},
		},
		{
			desc:     "full slab tax",
			income:   2500000,
			category: domain.CategoryOthers,
			keys:     []string{"effective_rate", "top_slab", "investments", "brackets", "saving"},
		},
		{
			desc:     "zero income",
			income:   0,
			category: domain.CategoryOthers,
			keys:     []string{"effective_rate", "rebate", "investments", "brackets"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			insights := AnalyzeResult(buildTestReport(t, tc.income, tc.category))
			assert.Equal(t, tc.keys, insightKeys(insights))
		})
	}
}

func TestAnalyzeResult_TopSlab(t *testing.T) {
	insights := AnalyzeResult(buildTestReport(t, 2500000, domain.CategorySalaried))
	for _, i := range insights {
		if i.Key == "top_slab" {
			assert.Contains(t, i.Message, "24L+ at 30.00%")
			return
		}
	}
	t.Fatal("top_slab insight missing")
}

func TestAnalyzeResult_Messages(t *testing.T) {
	messages := GenerateInsights(buildTestReport(t, 1000000, domain.CategorySalaried))
	assert.Contains(t, messages, "Income is within the ₹12,75,000 rebate line for Salaried; no tax is due (headroom ₹2,75,000).")
	assert.Contains(t, messages, "Consider tax-saving investments like NPS, PPF, and ELSS.")
	assert.Contains(t, messages, "Higher income moves you into higher tax brackets; plan accordingly.")
	assert.Contains(t, messages, "Tax-saving investments could save up to ₹1,50,000 in taxes.")

	messages = GenerateInsights(buildTestReport(t, 1300000, domain.CategorySalaried))
	assert.Contains(t, messages, "Marginal relief of ₹50,000 applies: tax is limited to the ₹25,000 earned above the rebate line.")
}

func TestGenerateAssumptions(t *testing.T) {
	assumptions := GenerateAssumptions(buildTestReport(t, 1300000, domain.CategorySalaried))
	assert.NotEmpty(t, assumptions)
}
