package risk

import (
	"context"
	"math"

	"trading-plan/internal/logger"
	"trading-plan/internal/types"
)

// Options adjusts how Calculator.Process treats a trade.
type Options struct {
	// ScaleByRiskPercentage uses the record's risk_percentage instead of the
	// fixed 1%. Off by default, which keeps CalculateRisk's result.
	ScaleByRiskPercentage bool
	// AllowShort accepts a negative position size as a short and sizes the
	// risk on its absolute value. Otherwise negative sizes are rejected.
	AllowShort bool
}

type Calculator struct {
	opts Options
}

func NewCalculator(opts Options) *Calculator {
	return &Calculator{opts: opts}
}

// Process validates, parses and sizes one trade map.
func (c *Calculator) Process(ctx context.Context, data map[string]any) (types.RiskResult, error) {
	if err := ValidateTradeData(data); err != nil {
		return types.RiskResult{}, err
	}
	tr, err := ParseTradeRecord(data)
	if err != nil {
		return types.RiskResult{}, err
	}

	size := tr.PositionSize
	if size < 0 {
		if !c.opts.AllowShort {
			return types.RiskResult{}, &ValidationError{Field: "position_size", Reason: "negative value not allowed"}
		}
		size = math.Abs(size)
	}

	fraction := DefaultRiskFraction
	if c.opts.ScaleByRiskPercentage {
		if tr.RiskPercentage < 0 {
			return types.RiskResult{}, &ValidationError{Field: "risk_percentage", Reason: "negative value not allowed"}
		}
		fraction = tr.RiskPercentage
	}

	res := types.RiskResult{
		Trade:        tr,
		RiskPerUnit:  math.Abs(tr.EntryPrice - tr.StopLoss),
		RiskFraction: fraction,
		RiskAmount:   riskAmount(tr.EntryPrice, tr.StopLoss, size, fraction),
	}
	logger.Risk(ctx, tr.Symbol, res.RiskAmount,
		"entry_price", tr.EntryPrice,
		"stop_loss", tr.StopLoss,
		"position_size", tr.PositionSize,
		"risk_fraction", fraction,
	)
	return res, nil
}
