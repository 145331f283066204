package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	DefaultDeepSeekModel = "deepseek-chat"
	deepSeekEndpoint     = "https://api.deepseek.com/chat/completions"
)

// DeepSeekProvider talks to the DeepSeek chat completions API.
type DeepSeekProvider struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

var _ Provider = (*DeepSeekProvider)(nil)

// NewDeepSeekProvider creates a provider using the public endpoint.
func NewDeepSeekProvider(apiKey, model string) (*DeepSeekProvider, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultDeepSeekModel
	}
	return &DeepSeekProvider{
		apiKey:     apiKey,
		model:      model,
		endpoint:   deepSeekEndpoint,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}, nil
}

type chatRequest struct {
	Messages       []chatMessage   `json:"messages"`
	Model          string          `json:"model"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Stream         bool            `json:"stream"`
	Temperature    *float32        `json:"temperature,omitempty"`
}

type chatMessage struct {
	Content string `json:"content"`
	Role    string `json:"role"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *DeepSeekProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, opts Options) (string, error) {
	reqBody := chatRequest{
		Model:       p.model,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	if opts.Model != "" {
		reqBody.Model = opts.Model
	}
	if systemPrompt != "" {
		reqBody.Messages = append(reqBody.Messages, chatMessage{Content: systemPrompt, Role: "system"})
	}
	reqBody.Messages = append(reqBody.Messages, chatMessage{Content: prompt, Role: "user"})
	if opts.JSON {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("deepseek marshal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("deepseek request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	res, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepseek api call: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("deepseek read body: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deepseek api error: status=%d body=%s", res.StatusCode, string(body))
	}

	var response chatResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("deepseek unmarshal: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("deepseek returned no choices: %s", string(body))
	}
	return response.Choices[0].Message.Content, nil
}
