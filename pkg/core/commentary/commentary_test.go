package commentary

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"business_valuation/pkg/core/industry"
	"business_valuation/pkg/core/llm"
	"business_valuation/pkg/core/valuation"
)

type MockProvider struct {
	GenerateFunc func(ctx context.Context, prompt, systemPrompt string, opts llm.Options) (string, error)
	prompts      []string
}

func (m *MockProvider) GenerateResponse(ctx context.Context, prompt, systemPrompt string, opts llm.Options) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt, systemPrompt, opts)
	}
	return `{"headline": "Fairly priced HVAC business", "buyer_questions": ["Why sell now?"], "diligence_items": ["Three years of tax returns"]}`, nil
}

func sampleOutput() valuation.ValuationOutput {
	engine := valuation.NewEngine(industry.Default(), valuation.WithReferenceYear(2026))
	return engine.Calculate(valuation.ValuationInput{
		Industry:              "hvac",
		SDE:                   valuation.Float(200_000),
		AskingPrice:           valuation.Float(650_000),
		CustomerConcentration: valuation.Float(0.4),
	})
}

func TestGenerate(t *testing.T) {
	mock := &MockProvider{}
	g := NewGenerator(mock, nil, "test-model", nil)

	c, err := g.Generate(context.Background(), sampleOutput())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	want := &Commentary{
		Headline:       "Fairly priced HVAC business",
		BuyerQuestions: []string{"Why sell now?"},
		DiligenceItems: []string{"Three years of tax returns"},
		Model:          "test-model",
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("commentary mismatch (-want +got):\n%s", diff)
	}

	p := mock.prompts[0]
	for _, s := range []string{"HVAC Services", "$550,000 (mid)", "Asking price: $650,000", "concentration"} {
		if !strings.Contains(p, s) {
			t.Errorf("prompt missing %q:\n%s", s, p)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	mock := &MockProvider{}
	g := NewGenerator(mock, nil, "", nil)
	out := sampleOutput()
	for i := 0; i < 2; i++ {
		if _, err := g.Generate(context.Background(), out); err != nil {
			t.Fatal(err)
		}
	}
	if mock.prompts[0] != mock.prompts[1] {
		t.Error("same output should produce the same prompt")
	}
}

func TestGenerateRequestsJSON(t *testing.T) {
	mock := &MockProvider{
		GenerateFunc: func(ctx context.Context, prompt, systemPrompt string, opts llm.Options) (string, error) {
			if !opts.JSON {
				t.Error("expected JSON mode")
			}
			if systemPrompt == "" {
				t.Error("expected a system prompt")
			}
			return "```json\n{\"headline\": \"ok\", \"buyer_questions\": [\"a\", \" \"],}\n```", nil
		},
	}
	c, err := NewGenerator(mock, nil, "", nil).Generate(context.Background(), sampleOutput())
	if err != nil {
		t.Fatalf("fenced, trailing-comma reply should parse: %v", err)
	}
	if len(c.BuyerQuestions) != 1 || len(c.DiligenceItems) != 0 {
		t.Errorf("unexpected lists: %+v", c)
	}
}

func TestGenerateErrors(t *testing.T) {
	boom := errors.New("quota exceeded")
	failing := &MockProvider{
		GenerateFunc: func(context.Context, string, string, llm.Options) (string, error) {
			return "", boom
		},
	}
	if _, err := NewGenerator(failing, nil, "", nil).Generate(context.Background(), sampleOutput()); !errors.Is(err, boom) {
		t.Errorf("expected provider error, got %v", err)
	}

	empty := &MockProvider{
		GenerateFunc: func(context.Context, string, string, llm.Options) (string, error) {
			return `{"headline": "  "}`, nil
		},
	}
	if _, err := NewGenerator(empty, nil, "", nil).Generate(context.Background(), sampleOutput()); !errors.Is(err, ErrEmptyCommentary) {
		t.Errorf("expected ErrEmptyCommentary, got %v", err)
	}
}
