package valuation

import (
	"math"
	"sync"
	"time"

	"business_valuation/pkg/core/industry"
)

// Engine runs the full valuation pipeline against one industry catalog.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	catalog       *industry.Catalog
	referenceYear int
}

// Option configures an Engine.
type Option func(*Engine)

// WithReferenceYear fixes the year used to compute business age.
func WithReferenceYear(year int) Option {
	return func(e *Engine) { e.referenceYear = year }
}

// NewEngine creates an engine over catalog (industry.Default() when nil).
// The reference year defaults to the current calendar year and does not
// change for the lifetime of the engine.
func NewEngine(catalog *industry.Catalog, opts ...Option) *Engine {
	if catalog == nil {
		catalog = industry.Default()
	}
	e := &Engine{catalog: catalog, referenceYear: time.Now().Year()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the catalog the engine resolves industries against.
func (e *Engine) Catalog() *industry.Catalog { return e.catalog }

// ReferenceYear returns the year business age is measured against.
func (e *Engine) ReferenceYear() int { return e.referenceYear }

// Calculate values a business. Every stage runs for every input; missing
// data falls back to documented defaults, so there is no error return.
func (e *Engine) Calculate(in ValuationInput) ValuationOutput {
	data := e.catalog.Lookup(in.Industry)

	norm := Normalize(in)
	risk := AssessRisk(in, e.referenceYear)

	multiples := AdjustMultiples(data, risk.NetMultipleChange)
	multiples.Primary = SelectMethod(in, norm)

	rng := CalculateRange(multiples.Primary, norm, in, multiples)
	quality := ScoreDealQuality(in, rng, e.referenceYear)
	mispricing := AnalyzeMispricing(in.AskingPrice, rng)

	n := NarrativeInput{
		Input:         in,
		Industry:      data,
		Normalization: norm,
		Risk:          risk,
		Multiples:     multiples,
		Range:         rng,
		DealQuality:   quality,
		Mispricing:    mispricing,
	}

	return ValuationOutput{
		ValuationRange:             rng,
		MultiplesUsed:              multiples,
		Normalization:              norm,
		RiskAssessment:             risk,
		DealQualityScore:           quality.Score,
		Grade:                      quality.Grade,
		DealQuality:                quality,
		Mispricing:                 mispricing,
		Methodology:                BuildMethodology(n),
		KeyStrengths:               BuildStrengths(n),
		RedFlags:                   BuildRedFlags(n),
		NegotiationRecommendations: BuildNegotiationTips(n),
		IndustryData:               data,
	}
}

// QuickEstimate is a preview: revenue × RevenueSDEMargin × the unadjusted
// industry SDE band. No risk, scoring or tangible assets.
func (e *Engine) QuickEstimate(revenue float64, industryText string) ValuationRange {
	data := e.catalog.Lookup(industryText)
	sde := revenue * RevenueSDEMargin
	return ValuationRange{
		Low:  math.Round(sde * data.SDE.Low),
		Mid:  math.Round(sde * data.SDE.Mid),
		High: math.Round(sde * data.SDE.High),
	}
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// DefaultEngine returns the process-wide engine over industry.Default().
func DefaultEngine() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = NewEngine(industry.Default())
	})
	return defaultEngine
}

// CalculateValuation values a business with the default engine.
func CalculateValuation(in ValuationInput) ValuationOutput {
	return DefaultEngine().Calculate(in)
}

// QuickEstimate previews a value range with the default engine.
func QuickEstimate(revenue float64, industryText string) ValuationRange {
	return DefaultEngine().QuickEstimate(revenue, industryText)
}
