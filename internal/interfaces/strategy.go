package interfaces

import (
	"context"

	"trading-plan/internal/types"
)

type StrategyGenerator interface {
	Generate(ctx context.Context, prices types.Prices) (string, error)
}
