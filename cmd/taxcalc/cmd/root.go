// Package cmd provides the CLI commands for taxcalc.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rpgo/income-tax-calculator/internal/calculation"
	"github.com/rpgo/income-tax-calculator/internal/config"
	"github.com/rpgo/income-tax-calculator/internal/logging"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "0.1.0"

// app carries state shared by subcommands once the root pre-run has loaded it.
type app struct {
	rulesFile string
	verbose   bool

	settings *config.Settings
	logger   *zap.Logger
	engine   *calculation.TaxEngine
}

// NewRootCommand builds the full command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "taxcalc",
		Short: "Compute income tax under slab-based rules",
		Long: `taxcalc computes income tax from a progressive slab table with a
category rebate, marginal relief and cess.

Examples:
  taxcalc compute --income 1300000 --category Salaried
  taxcalc compute --income "25,00,000" --format json
  taxcalc slabs --income 1300000
  taxcalc batch incomes.csv
  taxcalc serve --addr :8080`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.rulesFile, "rules", "", "tax rules YAML file (default: built-in rules, or $TAXCALC_RULES_FILE)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newComputeCommand(a),
		newBatchCommand(a),
		newSlabsCommand(a),
		newServeCommand(a),
		newRulesCommand(a),
		newVersionCommand(),
	)
	return root
}

// Execute runs the CLI
func Execute() error {
	return NewRootCommand().Execute()
}

// setup loads settings, logging and rules. Flags override the environment.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}
	a.settings = settings

	logCfg := logging.DefaultConfig()
	logCfg.Level = settings.LogLevel
	logCfg.Format = settings.LogFormat
	logCfg.Output = settings.LogOutput
	if a.verbose {
		logCfg.Level = "debug"
		logCfg.Development = true
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	a.logger = logger

	rulesFile := a.rulesFile
	if rulesFile == "" {
		rulesFile = settings.RulesFile
	}
	rules, err := config.NewRulesParser().LoadOrDefault(rulesFile)
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}
	engine, err := calculation.NewTaxEngineWithRules(*rules, logging.NewCalculationLogger(logger))
	if err != nil {
		return err
	}
	a.engine = engine
	logger.Debug("rules loaded", zap.String("name", rules.Name), zap.String("file", rulesFile))
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taxcalc version %s\n", Version)
		},
	}
}
