package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	apiconfig "business_valuation/pkg/api/config"
	apivaluation "business_valuation/pkg/api/valuation"
	"business_valuation/pkg/core/commentary"
	"business_valuation/pkg/core/config"
	"business_valuation/pkg/core/industry"
	"business_valuation/pkg/core/ingest"
	"business_valuation/pkg/core/llm"
	"business_valuation/pkg/core/logging"
	"business_valuation/pkg/core/prompt"
	"business_valuation/pkg/core/store"
	"business_valuation/pkg/core/valuation"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog := industry.Default()
	if cfg.Catalog.OverridesPath != "" {
		c, err := industry.LoadOverrides(cfg.Catalog.OverridesPath)
		if err != nil {
			return err
		}
		catalog = c
		logger.Info("loaded industry overrides", zap.String("path", cfg.Catalog.OverridesPath), zap.Int("industries", c.Len()))
	}
	engine := valuation.NewEngine(catalog)

	valuations, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := apivaluation.Options{
		Engine:            engine,
		Store:             valuations,
		Listings:          ingest.NewListingFetcher(cfg.Listing.FetchTimeout, cfg.Listing.UserAgent, logger, ingest.AllowPrivateHosts(cfg.Listing.AllowPrivateHosts)),
		CommentaryTimeout: cfg.Commentary.Timeout,
		BatchConcurrency:  cfg.Batch.Concurrency,
		MaxBatchInputs:    cfg.Batch.MaxInputs,
		Logger:            logger,
	}
	if gen := newCommentary(ctx, cfg, logger); gen != nil {
		opts.Commentary = gen
	}

	mux := http.NewServeMux()
	apivaluation.NewHandler(opts).Register(mux)
	apiconfig.NewHandler(apiconfig.Response{
		Store:          valuations.Backend(),
		Industries:     catalog.Len(),
		ReferenceYear:  engine.ReferenceYear(),
		MaxBatchInputs: cfg.Batch.MaxInputs,
		Commentary: apiconfig.CommentaryStatus{
			Enabled:  opts.Commentary != nil,
			Provider: cfg.Commentary.Provider,
			Model:    cfg.Commentary.Model,
		},
	}).Register(mux)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("API server starting",
			zap.String("addr", cfg.Server.Addr),
			zap.String("store", valuations.Backend()),
			zap.Int("industries", catalog.Len()),
			zap.Bool("commentary", opts.Commentary != nil))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore uses Postgres when a database URL is configured and reachable,
// and the file store otherwise.
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (*store.ValuationStore, error) {
	if cfg.Store.DatabaseURL != "" {
		if err := store.InitDB(ctx, cfg.Store.DatabaseURL); err != nil {
			logger.Warn("database unavailable, using file store", zap.Error(err))
		}
	}
	s := store.NewValuationStore(store.GetPool(), cfg.Store.Dir, logger)
	if err := s.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// newCommentary returns nil when commentary is disabled or misconfigured.
func newCommentary(ctx context.Context, cfg config.Config, logger *zap.Logger) *commentary.Generator {
	if !cfg.CommentaryReady() {
		return nil
	}
	provider, err := llm.NewProvider(ctx, cfg.Commentary.Provider, cfg.Commentary.APIKey, cfg.Commentary.Model)
	if err != nil {
		logger.Warn("commentary disabled", zap.Error(err))
		return nil
	}
	prompts := prompt.Get()
	if cfg.Commentary.PromptsDir != "" {
		n, err := prompt.LoadFromDirectory(prompts, cfg.Commentary.PromptsDir)
		if err != nil {
			logger.Warn("prompt overrides not loaded", zap.Error(err))
		} else {
			logger.Info("loaded prompt overrides", zap.Int("count", n))
		}
	}
	return commentary.NewGenerator(provider, prompts, cfg.Commentary.Model, logger)
}
