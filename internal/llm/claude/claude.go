package claude

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"trading-plan/internal/llm"
	"trading-plan/internal/trace"
	"trading-plan/internal/types"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultEndpoint = "https://api.anthropic.com/v1/messages"
	apiVersion      = "2023-06-01"
)

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model       string    `json:"model"`
	System      string    `json:"system,omitempty"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Generator implements StrategyGenerator on the Anthropic Messages API
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
	ctx, span := trace.StartSpan(ctx, "claude-api-call")
	defer span.End()

	if g.s.APIKey == "" {
		return "", errors.New("CLAUDE_API_KEY missing")
	}

	body := messagesRequest{
		Model:       g.s.Model,
		System:      g.s.System,
		Messages:    []message{{Role: "user", Content: llm.BuildPrompt(prices)}},
		MaxTokens:   g.s.MaxTokens,
		Temperature: g.s.Temperature,
	}

	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("x-api-key", g.s.APIKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(g.endpoint)
	if err != nil {
		return "", fmt.Errorf("claude request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", &llm.UpstreamError{Provider: "Claude", StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	var r messagesResponse
	if err := json.Unmarshal(resp.Body(), &r); err != nil {
		return "", fmt.Errorf("failed to parse claude response: %w", err)
	}

	// Text blocks are concatenated; other block types are ignored.
	var sb strings.Builder
	for _, c := range r.Content {
		if c.Type == "text" {
			sb.WriteString(c.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("claude response has no text content")
	}
	return sb.String(), nil
}
