package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/income-tax-calculator/internal/calculation"
	"github.com/rpgo/income-tax-calculator/internal/domain"
	"github.com/rpgo/income-tax-calculator/internal/output"
	money "github.com/rpgo/income-tax-calculator/pkg/decimal"
)

func newComputeCommand(a *app) *cobra.Command {
	var (
		income   string
		category string
		format   string
		outFile  string
	)

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute tax for one income",
		Long: `Compute tax, cess and the take-home summary for one income.

Income accepts Indian or western digit grouping ("25,00,000", "2,500,000").

Examples:
  taxcalc compute --income 1300000
  taxcalc compute --income 1250000 --category Others --format json
  taxcalc compute --income 2500000 --format xlsx --output report.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := money.NewMoneyFromString(income)
			if err != nil {
				return fmt.Errorf("%w: %q", domain.ErrInvalidIncome, income)
			}
			cat, err := domain.ParseCategory(category)
			if err != nil {
				return err
			}

			report, err := a.engine.BuildReport(calculation.Request{Income: m.Decimal, Category: cat})
			if err != nil {
				return err
			}

			// Binary formats always go to a file.
			if outFile != "" || output.NormalizeFormatName(format) == "xlsx" {
				path, err := output.GenerateReport(report, format, outFile)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
				return nil
			}

			data, err := output.RenderReport(report, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&income, "income", "i", "", "annual income in rupees")
	cmd.Flags().StringVarP(&category, "category", "c", string(domain.CategorySalaried), "taxpayer category (Salaried, Others)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, json, csv, yaml, html, xlsx)")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "write the report to this file")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}
