package interfaces

import (
	"context"

	"trading-plan/internal/types"
)

// PriceSource returns the current ticker/price table. An empty table with a
// nil error means the source holds no data.
type PriceSource interface {
	FetchPrices(ctx context.Context) (types.Prices, error)
}
