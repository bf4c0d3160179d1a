package calculation

import (
	"context"
	"errors"
	"testing"

	"github.com/rpgo/income-tax-calculator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestCalculateBatch_PreservesOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	engine := NewTaxEngine()
	var reqs []Request
	for v := int64(0); v < 200; v++ {
		c := domain.CategorySalaried
		if v%2 == 1 {
			c = domain.CategoryOthers
		}
		reqs = append(reqs, Request{Income: d(1000000 + v*10000), Category: c})
	}

	results, err := engine.CalculateBatch(context.Background(), reqs, 4)
	require.NoError(t, err)
	require.Len(t, results, len(reqs))
	for i, res := range results {
		single, err := engine.Calculate(reqs[i])
		require.NoError(t, err)
		assert.True(t, res.Income.Equal(reqs[i].Income))
		assert.Equal(t, reqs[i].Category, res.Category)
		assert.True(t, res.TotalTax.Equal(single.TotalTax))
	}
}

func TestCalculateBatch_FailsOnInvalidRequest(t *testing.T) {
	defer goleak.VerifyNone(t)

	engine := NewTaxEngine()
	reqs := []Request{
		{Income: d(1300000), Category: domain.CategorySalaried},
		{Income: d(-1), Category: domain.CategorySalaried},
	}
	_, err := engine.CalculateBatch(context.Background(), reqs, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidIncome))
	assert.Contains(t, err.Error(), "request 2")
}

func TestCalculateBatch_CancelledContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewTaxEngine().CalculateBatch(ctx, []Request{{Income: d(1), Category: domain.CategoryOthers}}, 1)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCalculateBatch_Empty(t *testing.T) {
	results, err := NewTaxEngine().CalculateBatch(context.Background(), nil, 2)
	require.NoError(t, err)
	assert.Empty(t, results)
}
