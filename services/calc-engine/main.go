// Command calc-engine values small businesses from the command line.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"business_valuation/pkg/core/config"
	"business_valuation/pkg/core/industry"
	"business_valuation/pkg/core/logging"
	"business_valuation/pkg/core/store"
	"business_valuation/pkg/core/valuation"
)

var (
	configPath   string
	catalogPath  string
	logLevel     string
	outputFormat string

	cfg    config.Config
	logger *zap.Logger
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "calc-engine",
		Short: "Value small businesses from listings or financial summaries",
		Long: `calc-engine runs the business valuation engine locally.

Subcommands:
  value       - Value a business described in a JSON or Hjson file
  quick       - Revenue-only preview range
  industries  - List supported industries
  listing     - Import and value a business-for-sale listing
  batch       - Value many businesses from one file
  report      - Render a saved valuation`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			if catalogPath != "" {
				cfg.Catalog.OverridesPath = catalogPath
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			logger, err = logging.New(cfg.Log.Level, cfg.Log.Development)
			return err
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: config/valuation.yaml or VALUATION_CONFIG)")
	root.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Industry override YAML")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	root.PersistentFlags().StringVarP(&outputFormat, "format", "f", "text", "Output format: json, md, text or html")

	root.AddCommand(newValueCmd())
	root.AddCommand(newQuickCmd())
	root.AddCommand(newIndustriesCmd())
	root.AddCommand(newListingCmd())
	root.AddCommand(newBatchCmd())
	root.AddCommand(newReportCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newEngine builds an engine over the configured catalog.
func newEngine() (*valuation.Engine, error) {
	catalog := industry.Default()
	if cfg.Catalog.OverridesPath != "" {
		c, err := industry.LoadOverrides(cfg.Catalog.OverridesPath)
		if err != nil {
			return nil, err
		}
		catalog = c
	}
	return valuation.NewEngine(catalog), nil
}

// openStore returns the configured store. Postgres is used only when a
// database URL is set and reachable.
func openStore(ctx context.Context) (*store.ValuationStore, error) {
	if cfg.Store.DatabaseURL != "" {
		if err := store.InitDB(ctx, cfg.Store.DatabaseURL); err != nil {
			logger.Warn("database unavailable, using file store", zap.Error(err))
		}
	}
	s := store.NewValuationStore(store.GetPool(), cfg.Store.Dir, logger)
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("store: %w", err)
	}
	return s, nil
}
