package sheetsobs

import (
	"context"
	"time"

	"trading-plan/internal/interfaces"
	"trading-plan/internal/logger"
	"trading-plan/internal/trace"
	"trading-plan/internal/types"
)

// observableSource wraps a PriceSource with logging and tracing
type observableSource struct {
	source interfaces.PriceSource
}

var _ interfaces.PriceSource = (*observableSource)(nil)

func Wrap(source interfaces.PriceSource) interfaces.PriceSource {
	return &observableSource{source: source}
}

func (o *observableSource) FetchPrices(ctx context.Context) (types.Prices, error) {
	ctx, span := trace.StartSpan(ctx, "sheets.FetchPrices")
	defer span.End()

	start := time.Now()
	logger.DebugSkip(ctx, 1, "Fetching stock prices from sheet")

	prices, err := o.source.FetchPrices(ctx)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to fetch stock prices", err,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return prices, err
	}

	logger.InfoSkip(ctx, 1, "Stock prices retrieved",
		"count", len(prices),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return prices, nil
}
