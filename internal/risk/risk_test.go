package risk

import (
	"context"
	"math"
	"testing"

	"trading-plan/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateRisk(t *testing.T) {
	tr := types.TradeRecord{Symbol: "AAPL", EntryPrice: 100, StopLoss: 90, PositionSize: 1000}
	assert.Equal(t, 100.0, CalculateRisk(tr))
}

func TestCalculateRiskZeroSpread(t *testing.T) {
	for _, size := range []float64{0, 1, 250, 1e6} {
		tr := types.TradeRecord{EntryPrice: 42.5, StopLoss: 42.5, PositionSize: size}
		assert.Zero(t, CalculateRisk(tr), "size %v", size)
	}
}

func TestCalculateRiskSymmetric(t *testing.T) {
	pairs := [][2]float64{{100, 90}, {12.34, 11.1}, {0.5, 3}, {1500, 1499.99}}
	for _, p := range pairs {
		a := types.TradeRecord{EntryPrice: p[0], StopLoss: p[1], PositionSize: 300}
		b := types.TradeRecord{EntryPrice: p[1], StopLoss: p[0], PositionSize: 300}
		assert.Equal(t, CalculateRisk(a), CalculateRisk(b))
	}
}

func TestCalculateRiskIgnoresRiskPercentage(t *testing.T) {
	tr := types.TradeRecord{EntryPrice: 100, StopLoss: 90, PositionSize: 1000, RiskPercentage: 0.05}
	assert.Equal(t, 100.0, CalculateRisk(tr))
}

func TestValidateTradeData(t *testing.T) {
	tests := []struct {
		name  string
		data  any
		field string
	}{
		{"empty", map[string]any{}, "symbol"},
		{"no entry", map[string]any{"symbol": "AAPL"}, "entry_price"},
		{"no stop", map[string]any{"symbol": "AAPL", "entry_price": 1}, "stop_loss"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTradeData(tt.data)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidateTradeDataNotMapping(t *testing.T) {
	for _, data := range []any{nil, "AAPL", []string{"symbol"}, 12} {
		var verr *ValidationError
		require.ErrorAs(t, ValidateTradeData(data), &verr)
		assert.Empty(t, verr.Field)
	}
}

func TestValidateTradeDataAcceptsExtraFields(t *testing.T) {
	data := map[string]any{
		"symbol":      "MSFT",
		"entry_price": "not checked",
		"stop_loss":   nil,
		"notes":       "breakout",
		"target":      450.0,
	}
	assert.NoError(t, ValidateTradeData(data))
}

func TestParseTradeRecord(t *testing.T) {
	tr, err := ParseTradeRecord(map[string]any{
		"symbol":        "NVDA",
		"entry_price":   "120.5",
		"stop_loss":     118,
		"position_size": int64(40),
	})
	require.NoError(t, err)
	assert.Equal(t, "NVDA", tr.Symbol)
	assert.Equal(t, 120.5, tr.EntryPrice)
	assert.Equal(t, 118.0, tr.StopLoss)
	assert.Equal(t, 40.0, tr.PositionSize)
	assert.Equal(t, DefaultRiskFraction, tr.RiskPercentage)
}

func TestParseTradeRecordConversionError(t *testing.T) {
	tests := []struct {
		name  string
		data  map[string]any
		field string
	}{
		{"non numeric string", map[string]any{"entry_price": "abc", "stop_loss": 1, "position_size": 1}, "entry_price"},
		{"bool", map[string]any{"entry_price": 1, "stop_loss": true, "position_size": 1}, "stop_loss"},
		{"missing size", map[string]any{"entry_price": 1, "stop_loss": 1}, "position_size"},
		{"bad pct", map[string]any{"entry_price": 1, "stop_loss": 1, "position_size": 1, "risk_percentage": "x"}, "risk_percentage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTradeRecord(tt.data)
			var cerr *ConversionError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.field, cerr.Field)
		})
	}
}

func TestCalculatorProcess(t *testing.T) {
	trade := map[string]any{
		"symbol":          "AAPL",
		"entry_price":     100.0,
		"stop_loss":       90.0,
		"position_size":   1000.0,
		"risk_percentage": 0.02,
	}

	res, err := NewCalculator(Options{}).Process(context.Background(), trade)
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.RiskAmount)
	assert.Equal(t, 10.0, res.RiskPerUnit)
	assert.Equal(t, DefaultRiskFraction, res.RiskFraction)

	res, err = NewCalculator(Options{ScaleByRiskPercentage: true}).Process(context.Background(), trade)
	require.NoError(t, err)
	assert.Equal(t, 200.0, res.RiskAmount)
	assert.Equal(t, 0.02, res.RiskFraction)
}

func TestCalculatorNegativePositionSize(t *testing.T) {
	trade := map[string]any{"symbol": "TSLA", "entry_price": 200, "stop_loss": 210, "position_size": -50}

	_, err := NewCalculator(Options{}).Process(context.Background(), trade)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "position_size", verr.Field)

	res, err := NewCalculator(Options{AllowShort: true}).Process(context.Background(), trade)
	require.NoError(t, err)
	assert.Equal(t, 5.0, res.RiskAmount)
	assert.Equal(t, -50.0, res.Trade.PositionSize)
}

func TestCalculatorRejectsInvalid(t *testing.T) {
	_, err := NewCalculator(Options{}).Process(context.Background(), map[string]any{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "symbol", verr.Field)
}

func TestCalculatorRejectsNonFiniteStrings(t *testing.T) {
	for _, v := range []string{"NaN", "Inf", "-inf", "+Infinity"} {
		t.Run(v, func(t *testing.T) {
			trade := map[string]any{"symbol": "X", "entry_price": v, "stop_loss": 90, "position_size": 10}
			var res types.RiskResult
			var err error
			require.NotPanics(t, func() {
				res, err = NewCalculator(Options{}).Process(context.Background(), trade)
			})
			var cerr *ConversionError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, "entry_price", cerr.Field)
			assert.Zero(t, res.RiskAmount)
		})
	}
}

func TestCalculatorRejectsNonFiniteFloats(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		trade := map[string]any{"symbol": "X", "entry_price": 100.0, "stop_loss": 90.0, "position_size": v}
		require.NotPanics(t, func() {
			_, err := NewCalculator(Options{ScaleByRiskPercentage: true}).Process(context.Background(), trade)
			var cerr *ConversionError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, "position_size", cerr.Field)
		})
	}
}

func TestCalculateRiskNonFiniteRecord(t *testing.T) {
	tr := types.TradeRecord{EntryPrice: math.NaN(), StopLoss: 90, PositionSize: 10}
	require.NotPanics(t, func() {
		assert.True(t, math.IsNaN(CalculateRisk(tr)))
	})
	tr = types.TradeRecord{EntryPrice: 100, StopLoss: 90, PositionSize: math.Inf(1)}
	assert.True(t, math.IsNaN(CalculateRisk(tr)))
}
