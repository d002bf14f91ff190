package plan

import (
	"fmt"
	"io"
	"strconv"

	"trading-plan/internal/types"

	"github.com/charmbracelet/lipgloss"
)

const noDataMessage = "No stock data retrieved. Check your sheet and range settings."

// Report writes the human-readable run output. Styling is dropped
// automatically when w is not a terminal.
type Report struct {
	w       io.Writer
	heading lipgloss.Style
	warn    lipgloss.Style
}

func NewReport(w io.Writer) *Report {
	r := lipgloss.NewRenderer(w)
	return &Report{
		w:       w,
		heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#3B82F6")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
	}
}

func (r *Report) NoData() {
	fmt.Fprintln(r.w, r.warn.Render(noDataMessage))
}

func (r *Report) Prices(prices types.Prices) {
	fmt.Fprintln(r.w, r.heading.Render("Retrieved Stock Prices:"))
	for _, t := range prices.Tickers() {
		fmt.Fprintf(r.w, "  %s: %s\n", t, prices[t])
	}
}

func (r *Report) RiskHeader() {
	fmt.Fprintln(r.w, "\n"+r.heading.Render("Trade Risk:"))
}

func (r *Report) Risk(res types.RiskResult) {
	tr := res.Trade
	fmt.Fprintf(r.w, "  %s: risk %.2f (entry %s, stop %s, size %s, risk fraction %s%%)\n",
		tr.Symbol, res.RiskAmount,
		formatNumber(tr.EntryPrice), formatNumber(tr.StopLoss), formatNumber(tr.PositionSize),
		formatNumber(res.RiskFraction*100),
	)
}

func (r *Report) RiskError(symbol string, err error) {
	if symbol == "" {
		symbol = "<unknown>"
	}
	fmt.Fprintf(r.w, "  %s: %s\n", symbol, r.warn.Render("error: "+err.Error()))
}

func (r *Report) Strategy(text string) {
	fmt.Fprintln(r.w, "\n"+r.heading.Render("Generated Trading Strategy:")+"\n")
	fmt.Fprintln(r.w, text)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
