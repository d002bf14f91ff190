package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"trading-plan/internal/llm"
	"trading-plan/internal/trace"
	"trading-plan/internal/types"

	"github.com/go-resty/resty/v2"
)

const DefaultEndpoint = "https://api.openai.com/v1/chat/completions"

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generator asks an OpenAI-compatible chat completion endpoint for a strategy.
type Generator struct {
	s        llm.Settings
	endpoint string
	client   *resty.Client
}

func NewGenerator(s llm.Settings) *Generator {
	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Generator{s: s, endpoint: endpoint, client: resty.New()}
}

func (g *Generator) Generate(ctx context.Context, prices types.Prices) (string, error) {
	ctx, span := trace.StartSpan(ctx, "openai-api-call")
	defer span.End()

	if g.s.APIKey == "" {
		return "", errors.New("OPENAI_API_KEY missing")
	}

	body := chatRequest{
		Model: g.s.Model,
		Messages: []message{
			{Role: "system", Content: g.s.System},
			{Role: "user", Content: llm.BuildPrompt(prices)},
		},
		Temperature: g.s.Temperature,
		MaxTokens:   g.s.MaxTokens,
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetAuthToken(g.s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(g.endpoint)
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", &llm.UpstreamError{Provider: "ChatGPT", StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	var r chatResponse
	if err := json.Unmarshal(resp.Body(), &r); err != nil {
		return "", fmt.Errorf("failed to parse openai response: %w", err)
	}
	if len(r.Choices) == 0 {
		return "", errors.New("openai response has no choices")
	}

	return r.Choices[0].Message.Content, nil
}
