package types

import (
	"fmt"
	"sort"
	"strings"
)

// MissingPrice is stored for a ticker whose row has no price cell.
const MissingPrice = "N/A"

// Prices maps ticker symbol to the price string read from the sheet.
type Prices map[string]string

// Tickers returns the keys in sorted order.
func (p Prices) Tickers() []string {
	out := make([]string, 0, len(p))
	for t := range p {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// String renders the prices as {AAPL: 150, MSFT: N/A}, sorted by ticker.
func (p Prices) String() string {
	parts := make([]string, 0, len(p))
	for _, t := range p.Tickers() {
		parts = append(parts, fmt.Sprintf("%s: %s", t, p[t]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

type TradeRecord struct {
	Symbol         string  `json:"symbol"`
	EntryPrice     float64 `json:"entry_price"`
	StopLoss       float64 `json:"stop_loss"`
	PositionSize   float64 `json:"position_size"`
	RiskPercentage float64 `json:"risk_percentage"`
}

type RiskResult struct {
	Trade        TradeRecord `json:"trade"`
	RiskPerUnit  float64     `json:"risk_per_unit"`
	RiskFraction float64     `json:"risk_fraction"`
	RiskAmount   float64     `json:"risk_amount"`
}
