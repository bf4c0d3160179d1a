package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rpgo/income-tax-calculator/internal/config"
)

func newRulesCommand(a *app) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the effective tax rules as YAML",
		Long: `Print the rules in effect after applying --rules or $TAXCALC_RULES_FILE.
The output is a valid rules file and can be edited and passed back with --rules.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if outFile != "" {
				if err := config.SaveRules(&a.engine.Rules, outFile); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Rules written to %s\n", outFile)
				return nil
			}
			data, err := config.MarshalRules(&a.engine.Rules)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&outFile, "output", "o", "", "write the rules to this file")
	return cmd
}
