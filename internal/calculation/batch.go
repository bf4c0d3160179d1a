package calculation

import (
	"context"
	"fmt"

	"github.com/rpgo/income-tax-calculator/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchWorkers bounds CalculateBatch when no limit is given.
const DefaultBatchWorkers = 8

// CalculateBatch evaluates requests concurrently and returns results in input
// order. The first failing request cancels the rest.
func (te *TaxEngine) CalculateBatch(ctx context.Context, reqs []Request, workers int) ([]*domain.TaxResult, error) {
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}
	results := make([]*domain.TaxResult, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := te.Calculate(req)
			if err != nil {
				return fmt.Errorf("request %d: %w", i+1, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	te.Logger.Infof("batch of %d requests computed", len(reqs))
	return results, nil
}
