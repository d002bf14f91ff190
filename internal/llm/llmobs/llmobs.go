package llmobs

import (
	"context"
	"time"

	"trading-plan/internal/interfaces"
	"trading-plan/internal/logger"
	"trading-plan/internal/trace"
	"trading-plan/internal/types"
)

// observableGenerator wraps a StrategyGenerator with observability (logging & tracing)
type observableGenerator struct {
	generator interfaces.StrategyGenerator
}

// Compile-time interface check
var _ interfaces.StrategyGenerator = (*observableGenerator)(nil)

// Wrap wraps a generator with observability middleware
func Wrap(generator interfaces.StrategyGenerator) interfaces.StrategyGenerator {
	return &observableGenerator{
		generator: generator,
	}
}

// Generate requests a strategy with observability
func (og *observableGenerator) Generate(ctx context.Context, prices types.Prices) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Generate")
	defer span.End()

	start := time.Now()

	// Use DebugSkip(1) to report the actual caller, not this middleware wrapper
	logger.DebugSkip(ctx, 1, "Requesting trading strategy",
		"tickers", len(prices),
	)

	strategy, err := og.generator.Generate(ctx, prices)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to generate trading strategy", err,
			"tickers", len(prices),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return "", err
	}

	logger.InfoSkip(ctx, 1, "Trading strategy received",
		"tickers", len(prices),
		"chars", len(strategy),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return strategy, nil
}
