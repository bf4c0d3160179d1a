package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/income-tax-calculator/internal/calculation"
	"github.com/rpgo/income-tax-calculator/internal/domain"
	"github.com/rpgo/income-tax-calculator/internal/output"
	money "github.com/rpgo/income-tax-calculator/pkg/decimal"
)

func newSlabsCommand(a *app) *cobra.Command {
	var (
		income   string
		category string
	)

	cmd := &cobra.Command{
		Use:   "slabs",
		Short: "Print the slab table",
		Long: `Print each slab with its rate, the tax a fully used slab raises and the
running total. With --income, slabs that income reaches are marked '*'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n\n", a.engine.Rules.Name)

			if income == "" {
				_, err := out.Write(output.FormatSlabTable(a.engine.ReferenceTable()))
				return err
			}

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
			_, err = out.Write(output.FormatSlabTable(report.Slabs))
			return err
		},
	}

	cmd.Flags().StringVarP(&income, "income", "i", "", "highlight the slabs this income reaches")
	cmd.Flags().StringVarP(&category, "category", "c", string(domain.CategorySalaried), "taxpayer category (Salaried, Others)")
	return cmd
}
