// Package commentary asks a language model for buyer-facing commentary on a
// finished valuation. Commentary is advisory; it never changes the numbers.
package commentary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"business_valuation/pkg/core/llm"
	"business_valuation/pkg/core/prompt"
	"business_valuation/pkg/core/utils"
	"business_valuation/pkg/core/valuation"
)

// ErrEmptyCommentary is returned when the model answers without a headline.
var ErrEmptyCommentary = errors.New("model returned empty commentary")

// Commentary is the model's take on a valuation.
type Commentary struct {
	Headline       string   `json:"headline"`
	BuyerQuestions []string `json:"buyer_questions"`
	DiligenceItems []string `json:"diligence_items"`
	Model          string   `json:"model,omitempty"`
}

// Generator builds prompts from valuation outputs and parses the replies.
type Generator struct {
	provider llm.Provider
	prompts  *prompt.Registry
	model    string
	logger   *zap.Logger
}

// NewGenerator creates a generator. A nil registry uses the global prompt
// registry; model may be empty to use the provider default.
func NewGenerator(provider llm.Provider, prompts *prompt.Registry, model string, logger *zap.Logger) *Generator {
	if prompts == nil {
		prompts = prompt.Get()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{provider: provider, prompts: prompts, model: model, logger: logger.Named("commentary")}
}

// Generate returns commentary for out.
func (g *Generator) Generate(ctx context.Context, out valuation.ValuationOutput) (*Commentary, error) {
	pt, err := g.prompts.GetPrompt(prompt.PromptIDs.CommentaryDealReview)
	if err != nil {
		return nil, err
	}
	userPrompt, err := prompt.RenderUserPrompt(pt, promptContext(out))
	if err != nil {
		return nil, fmt.Errorf("failed to render commentary prompt: %w", err)
	}

	raw, err := g.provider.GenerateResponse(ctx, userPrompt, pt.SystemPrompt, llm.Options{
		Model:       g.model,
		Temperature: llm.Float32(0.3),
		JSON:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("commentary generation failed: %w", err)
	}

	c, err := Parse(raw)
	if err != nil {
		g.logger.Warn("unparseable commentary", zap.Error(err), zap.Int("bytes", len(raw)))
		return nil, err
	}
	c.Model = g.model
	return c, nil
}

// Parse decodes a model reply, tolerating code fences and minor JSON damage.
func Parse(raw string) (*Commentary, error) {
	var c Commentary
	if err := utils.DecodeLenient([]byte(utils.StripCodeFence(raw)), &c); err != nil {
		return nil, fmt.Errorf("failed to parse commentary: %w", err)
	}
	c.Headline = strings.TrimSpace(c.Headline)
	if c.Headline == "" {
		return nil, ErrEmptyCommentary
	}
	c.BuyerQuestions = compact(c.BuyerQuestions)
	c.DiligenceItems = compact(c.DiligenceItems)
	return &c, nil
}

// promptContext flattens the output into template variables. Values are
// preformatted so the same output always yields the same prompt.
func promptContext(out valuation.ValuationOutput) *prompt.PromptExecutionContext {
	risks := make([]string, 0, len(out.RiskAssessment.Adjustments))
	for _, a := range out.RiskAssessment.Adjustments {
		risks = append(risks, fmt.Sprintf("%s (%s): %s", a.Description, valuation.FormatSignedMultiple(a.Impact), a.Severity))
	}

	asking, pricing := "", ""
	if m := out.Mispricing; m != nil {
		asking = valuation.FormatCurrency(m.AskingPrice)
		pricing = fmt.Sprintf("%s, %+.1f%% vs. mid", m.Label, m.DifferencePercent)
	}

	industryName := out.IndustryData.IndustryName
	if industryName == "" {
		industryName = out.IndustryData.IndustryKey
	}

	return prompt.NewContext().
		Set("Industry", industryName).
		Set("Method", strings.ToUpper(string(out.MultiplesUsed.Primary))).
		Set("Low", valuation.FormatCurrency(out.ValuationRange.Low)).
		Set("Mid", valuation.FormatCurrency(out.ValuationRange.Mid)).
		Set("High", valuation.FormatCurrency(out.ValuationRange.High)).
		Set("SDE", valuation.FormatCurrency(out.Normalization.NormalizedSDE)).
		Set("EBITDA", valuation.FormatCurrency(out.Normalization.NormalizedEBITDA)).
		Set("Score", out.DealQualityScore).
		Set("Grade", string(out.Grade)).
		Set("Asking", asking).
		Set("Pricing", pricing).
		Set("Risks", risks).
		Set("Strengths", out.KeyStrengths).
		Set("RedFlags", out.RedFlags)
}

func compact(items []string) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			result = append(result, s)
		}
	}
	return result
}
