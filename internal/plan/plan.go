// Package plan runs one pass of the assistant: fetch prices, size any
// configured trades, generate a strategy and print the result.
package plan

import (
	"context"
	"errors"
	"fmt"
	"io"

	"trading-plan/internal/interfaces"
	"trading-plan/internal/logger"
	"trading-plan/internal/risk"
	"trading-plan/internal/sheets"
	"trading-plan/internal/types"
)

type Planner struct {
	source    interfaces.PriceSource
	generator interfaces.StrategyGenerator
	calc      *risk.Calculator
	trades    []map[string]any
	report    *Report
}

func New(source interfaces.PriceSource, generator interfaces.StrategyGenerator, out io.Writer) *Planner {
	return &Planner{
		source:    source,
		generator: generator,
		report:    NewReport(out),
	}
}

// WithTrades enables the risk step for the given trade maps.
func (p *Planner) WithTrades(calc *risk.Calculator, trades []map[string]any) *Planner {
	p.calc = calc
	p.trades = trades
	return p
}

// Run executes the plan once. Price source failures are logged and the run
// continues with whatever prices came back. An empty but successful fetch
// ends the run without calling the generator. Generator errors are returned.
func (p *Planner) Run(ctx context.Context) error {
	op := logger.StartOperation(ctx, "plan.Run")
	ctx = op.GetContext()

	prices, err := p.source.FetchPrices(ctx)
	switch {
	case err != nil:
		p.logFetchError(ctx, err)
		if prices == nil {
			prices = types.Prices{}
		}
		if len(prices) > 0 {
			p.report.Prices(prices)
		}
	case len(prices) == 0:
		logger.Warn(ctx, "No stock data retrieved")
		p.report.NoData()
		op.End("tickers", 0)
		return nil
	default:
		p.report.Prices(prices)
	}

	p.runRisk(ctx)

	strategy, err := p.generator.Generate(ctx, prices)
	if err != nil {
		op.EndWithError(err)
		return fmt.Errorf("generate trading strategy: %w", err)
	}
	p.report.Strategy(strategy)

	op.End("tickers", len(prices))
	return nil
}

// logFetchError records which kind of failure the run is continuing past.
// The failure itself is logged at error level by sheetsobs.
func (p *Planner) logFetchError(ctx context.Context, err error) {
	kind := "Unexpected error fetching prices"
	switch {
	case errors.Is(err, sheets.ErrAuthentication), errors.Is(err, sheets.ErrHTTP):
		kind = "Google API error"
	case errors.Is(err, sheets.ErrTimeout):
		kind = "Connection timeout"
	}
	logger.Warn(ctx, kind+", continuing with retrieved prices", "error", err)
}

func (p *Planner) runRisk(ctx context.Context) {
	if p.calc == nil || len(p.trades) == 0 {
		return
	}
	p.report.RiskHeader()
	for _, trade := range p.trades {
		res, err := p.calc.Process(ctx, trade)
		if err != nil {
			var symbol string
			if v, ok := trade["symbol"]; ok && v != nil {
				symbol = fmt.Sprint(v)
			}
			logger.ErrorWithErr(ctx, "Trade rejected", err, "symbol", symbol)
			p.report.RiskError(symbol, err)
			continue
		}
		p.report.Risk(res)
	}
}
