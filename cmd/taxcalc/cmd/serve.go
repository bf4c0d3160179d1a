package cmd

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rpgo/income-tax-calculator/internal/calculation"
	"github.com/rpgo/income-tax-calculator/internal/config"
	"github.com/rpgo/income-tax-calculator/internal/domain"
	"github.com/rpgo/income-tax-calculator/internal/logging"
	"github.com/rpgo/income-tax-calculator/internal/server"
)

func newServeCommand(a *app) *cobra.Command {
	var (
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tax API over HTTP",
		Long: `Start the HTTP API.

Routes:
  POST /api/v1/tax      {"income": 1300000, "category": "Salaried"}
  GET  /api/v1/tax      ?income=&category=
  GET  /api/v1/slabs    ?income=&category=
  GET  /api/v1/rules
  GET  /healthz

With --watch, edits to the rules file are picked up without a restart.
Edits that fail validation are logged and the previous rules stay in effect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.settings.Addr
			}
			rulesFile := a.rulesFile
			if rulesFile == "" {
				rulesFile = a.settings.RulesFile
			}
			if watch && rulesFile == "" {
				return errors.New("--watch needs a rules file (--rules or $TAXCALC_RULES_FILE)")
			}
			if !a.verbose {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.NewServer(a.engine, a.logger)
			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error { return srv.Run(gctx, addr) })
			if watch {
				w := config.NewRulesWatcher(rulesFile,
					func(rules *domain.TaxRules) {
						engine, err := calculation.NewTaxEngineWithRules(*rules, logging.NewCalculationLogger(a.logger))
						if err != nil {
							a.logger.Warn("rejected reloaded rules", zap.Error(err))
							return
						}
						srv.SetEngine(engine)
					},
					func(err error) {
						a.logger.Warn("rules reload failed", zap.String("file", rulesFile), zap.Error(err))
					},
				)
				g.Go(func() error { return w.Run(gctx) })
			}
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: $TAXCALC_ADDR or :8080)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the rules file when it changes")
	return cmd
}
