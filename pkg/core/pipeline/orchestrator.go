// Package pipeline runs valuations end to end: listing import, valuation,
// persistence, and concurrent batches.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"business_valuation/pkg/core/ingest"
	"business_valuation/pkg/core/store"
	"business_valuation/pkg/core/valuation"
)

// ListingSource retrieves and parses a business-for-sale listing.
// Implementations may fetch from:
// - Live listing sites (ingest.ListingFetcher)
// - Saved HTML in tests or tooling
type ListingSource interface {
	Fetch(ctx context.Context, url, industryHint string) (*ingest.ListingImport, error)
}

// Valuer computes a valuation. *valuation.Engine satisfies it.
type Valuer interface {
	Calculate(in valuation.ValuationInput) valuation.ValuationOutput
}

// Repository persists valuation runs. *store.ValuationStore satisfies it.
type Repository interface {
	Save(ctx context.Context, rec *store.ValuationRecord) error
}

// Result is the outcome of one listing run.
type Result struct {
	Listing  *ingest.ListingImport     `json:"listing,omitempty"`
	Output   valuation.ValuationOutput `json:"output"`
	RecordID string                    `json:"id,omitempty"`
}

// Orchestrator wires a listing source, a valuer and an optional repository.
type Orchestrator struct {
	source ListingSource
	valuer Valuer
	repo   Repository
	logger *zap.Logger
}

// NewOrchestrator creates an orchestrator. source and repo may be nil: runs
// that need a missing collaborator fail, and results are not persisted
// without a repository.
func NewOrchestrator(source ListingSource, valuer Valuer, repo Repository, logger *zap.Logger) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		source: source,
		valuer: valuer,
		repo:   repo,
		logger: logger.Named("pipeline"),
	}
}

// RunListing fetches the listing at url, values it and saves the run.
func (p *Orchestrator) RunListing(ctx context.Context, url, industryHint string) (*Result, error) {
	if p.source == nil {
		return nil, errors.New("no listing source configured")
	}
	start := time.Now()

	imp, err := p.source.Fetch(ctx, url, industryHint)
	if err != nil {
		return nil, fmt.Errorf("listing import failed: %w", err)
	}
	for _, w := range imp.Warnings {
		p.logger.Warn("listing import warning", zap.String("url", url), zap.String("warning", w))
	}

	res, err := p.ValueAndSave(ctx, imp.Input)
	if err != nil {
		return nil, err
	}
	res.Listing = imp

	p.logger.Info("listing valued",
		zap.String("url", url),
		zap.String("industry", res.Output.IndustryData.IndustryKey),
		zap.Float64("mid", res.Output.ValuationRange.Mid),
		zap.String("id", res.RecordID),
		zap.Duration("elapsed", time.Since(start)))
	return res, nil
}

// ValueAndSave values in and persists the run when a repository is set.
func (p *Orchestrator) ValueAndSave(ctx context.Context, in valuation.ValuationInput) (*Result, error) {
	res := &Result{Output: p.valuer.Calculate(in)}
	if p.repo == nil {
		return res, nil
	}
	rec := &store.ValuationRecord{Input: in, Output: res.Output}
	if err := p.repo.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("storage failed: %w", err)
	}
	res.RecordID = rec.ID
	return res, nil
}

// RunBatch values inputs with at most concurrency workers. Outputs are in
// input order. A cancelled context stops items that have not started.
func (p *Orchestrator) RunBatch(ctx context.Context, inputs []valuation.ValuationInput, concurrency int) ([]valuation.ValuationOutput, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	outputs := make([]valuation.ValuationOutput, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outputs[i] = p.valuer.Calculate(inputs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch cancelled: %w", err)
	}

	p.logger.Debug("batch valued", zap.Int("count", len(inputs)), zap.Int("concurrency", concurrency))
	return outputs, nil
}
