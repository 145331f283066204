// Package llm wraps the language model backends used for optional
// valuation commentary.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingAPIKey is returned when a provider is built without credentials.
var ErrMissingAPIKey = errors.New("llm api key not configured")

// Options tune a single request. Zero values use provider defaults.
type Options struct {
	Model       string
	Temperature *float32
	JSON        bool // ask for a JSON response body
	MaxTokens   int
}

// Provider is the interface for all LLM providers.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, opts Options) (string, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, prompt string, systemPrompt string, opts Options) (string, error)

func (f ProviderFunc) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, opts Options) (string, error) {
	return f(ctx, prompt, systemPrompt, opts)
}

// Provider names accepted by NewProvider.
const (
	NameGemini   = "gemini"
	NameDeepSeek = "deepseek"
)

// NewProvider builds the named provider. model may be empty.
func NewProvider(ctx context.Context, name, apiKey, model string) (Provider, error) {
	switch strings.ToLower(name) {
	case "", NameGemini:
		return NewGeminiProvider(ctx, apiKey, model)
	case NameDeepSeek:
		return NewDeepSeekProvider(apiKey, model)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", name)
	}
}

// Float32 returns a pointer to v, for Options.Temperature.
func Float32(v float32) *float32 { return &v }
