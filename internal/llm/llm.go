// Package llm holds what every strategy generator shares: the prompt
// template, request settings and the upstream error type.
package llm

import (
	"fmt"

	"trading-plan/internal/store"
	"trading-plan/internal/types"
)

const promptTemplate = "Using the following stock prices: %s, " +
	"please develop a momentum-based trading strategy for a tech portfolio. " +
	"Include clear entry and exit criteria, risk management guidelines, and performance expectations. " +
	"Output the strategy in a structured, easy-to-follow format."

// BuildPrompt renders the user message for the given prices.
func BuildPrompt(prices types.Prices) string {
	return fmt.Sprintf(promptTemplate, prices.String())
}

// Settings are the request parameters sent with every generation call.
type Settings struct {
	APIKey      string
	Model       string
	System      string
	Temperature float64
	MaxTokens   int
	Endpoint    string
}

// SettingsFromConfig copies the llm section of cfg.
func SettingsFromConfig(cfg *store.Config) Settings {
	return Settings{
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		System:      cfg.LLM.System,
		Temperature: cfg.LLMTemperature(),
		MaxTokens:   cfg.LLM.MaxTokens,
		Endpoint:    cfg.LLM.Endpoint,
	}
}

// UpstreamError is returned when the text-generation API answers with a
// non-success status.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API call failed: %d %s", e.Provider, e.StatusCode, e.Body)
}
