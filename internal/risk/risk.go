// Package risk sizes the currency risk of a single trade.
package risk

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"trading-plan/internal/types"

	"github.com/shopspring/decimal"
)

// DefaultRiskFraction is the fixed 1% applied to every trade unless the
// calculator is told to scale by the record's own risk_percentage.
const DefaultRiskFraction = 0.01

var requiredFields = []string{"symbol", "entry_price", "stop_loss"}

// ValidationError names the field that made a trade record unusable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, e.Field)
}

// ConversionError reports a field whose value could not be read as a number.
type ConversionError struct {
	Field string
	Value any
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("cannot convert %s=%v to a number", e.Field, e.Value)
}

// ValidateTradeData checks that data is a map carrying symbol, entry_price
// and stop_loss. Values are not inspected.
func ValidateTradeData(data any) error {
	m, ok := data.(map[string]any)
	if !ok {
		return &ValidationError{Reason: "trading data must be a mapping"}
	}
	for _, f := range requiredFields {
		if _, ok := m[f]; !ok {
			return &ValidationError{Field: f, Reason: "missing required field"}
		}
	}
	return nil
}

// ParseTradeRecord converts a loosely typed trade map into a TradeRecord.
// risk_percentage is optional and defaults to DefaultRiskFraction.
func ParseTradeRecord(data map[string]any) (types.TradeRecord, error) {
	var (
		tr  types.TradeRecord
		err error
	)
	if s, ok := data["symbol"]; ok && s != nil {
		tr.Symbol = fmt.Sprint(s)
	}
	if tr.EntryPrice, err = toFloat(data, "entry_price"); err != nil {
		return tr, err
	}
	if tr.StopLoss, err = toFloat(data, "stop_loss"); err != nil {
		return tr, err
	}
	if tr.PositionSize, err = toFloat(data, "position_size"); err != nil {
		return tr, err
	}
	tr.RiskPercentage = DefaultRiskFraction
	if _, ok := data["risk_percentage"]; ok {
		if tr.RiskPercentage, err = toFloat(data, "risk_percentage"); err != nil {
			return tr, err
		}
	}
	return tr, nil
}

func toFloat(data map[string]any, field string) (float64, error) {
	v, ok := data[field]
	if !ok {
		return 0, &ConversionError{Field: field, Value: nil}
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, &ConversionError{Field: field, Value: v}
		}
		f = parsed
	default:
		return 0, &ConversionError{Field: field, Value: v}
	}
	if !finite(f) {
		return 0, &ConversionError{Field: field, Value: v}
	}
	return f, nil
}

func finite(fs ...float64) bool {
	for _, f := range fs {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// CalculateRisk returns |entry - stop| * position_size * 0.01.
// The record's RiskPercentage is deliberately not used here. A record holding
// NaN or an infinity yields NaN.
func CalculateRisk(trade types.TradeRecord) float64 {
	return riskAmount(trade.EntryPrice, trade.StopLoss, trade.PositionSize, DefaultRiskFraction)
}

func riskAmount(entry, stop, size, fraction float64) float64 {
	if !finite(entry, stop, size, fraction) {
		return math.NaN()
	}
	perUnit := decimal.NewFromFloat(entry).Sub(decimal.NewFromFloat(stop)).Abs()
	return perUnit.
		Mul(decimal.NewFromFloat(size)).
		Mul(decimal.NewFromFloat(fraction)).
		InexactFloat64()
}
