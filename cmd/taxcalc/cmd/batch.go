package cmd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpgo/income-tax-calculator/internal/calculation"
	"github.com/rpgo/income-tax-calculator/internal/domain"
	"github.com/rpgo/income-tax-calculator/internal/output"
	money "github.com/rpgo/income-tax-calculator/pkg/decimal"
)

func newBatchCommand(a *app) *cobra.Command {
	var (
		workers int
		outFile string
	)

	cmd := &cobra.Command{
		Use:   "batch FILE",
		Short: "Compute tax for every row of a CSV file",
		Long: `Read income,category rows from a CSV file and print one summary row each.
A header row is optional. Category defaults to Salaried when the column is absent.

Examples:
  taxcalc batch incomes.csv
  taxcalc batch --workers 4 --output results.csv incomes.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			reqs, err := readBatchRequests(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			if workers <= 0 {
				workers = a.settings.BatchWorkers
			}
			a.logger.Debug("batch started", zap.Int("requests", len(reqs)), zap.Int("workers", workers))

			results, err := a.engine.CalculateBatch(cmd.Context(), reqs, workers)
			if err != nil {
				return err
			}
			data, err := output.BatchCSV(results)
			if err != nil {
				return err
			}

			if outFile != "" {
				if err := os.WriteFile(outFile, data, 0644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d results written to %s\n", len(results), outFile)
				return nil
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent calculations (default: $TAXCALC_BATCH_WORKERS or 8)")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "write results to this CSV file")
	return cmd
}

// readBatchRequests parses income,category rows. Blank lines are skipped by
// the csv reader; a first row whose income column reads "income" is a header.
func readBatchRequests(r io.Reader) ([]calculation.Request, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var reqs []calculation.Request
	for line := 1; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(rec[0]), "income") {
			continue
		}

		m, err := money.NewMoneyFromString(rec[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %q", line, domain.ErrInvalidIncome, rec[0])
		}
		category := domain.CategorySalaried
		if len(rec) > 1 && strings.TrimSpace(rec[1]) != "" {
			category, err = domain.ParseCategory(rec[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
		reqs = append(reqs, calculation.Request{Income: m.Decimal, Category: category})
	}
	if len(reqs) == 0 {
		return nil, errors.New("no rows to compute")
	}
	return reqs, nil
}
