package noop

import (
	"context"
	"fmt"

	"trading-plan/internal/logger"
	"trading-plan/internal/types"
)

// Generator is the offline fallback used when no LLM provider is configured.
// It never touches the network.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(ctx context.Context, prices types.Prices) (string, error) {
	logger.Debug(ctx, "Noop generator called - returning placeholder strategy", "tickers", len(prices))
	return fmt.Sprintf("No LLM provider configured; strategy generation skipped for %d tickers.", len(prices)), nil
}
