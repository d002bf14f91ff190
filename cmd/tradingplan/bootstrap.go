package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"trading-plan/internal/interfaces"
	"trading-plan/internal/llm"
	"trading-plan/internal/llm/claude"
	"trading-plan/internal/llm/llmobs"
	"trading-plan/internal/llm/noop"
	"trading-plan/internal/llm/openai"
	"trading-plan/internal/logger"
	"trading-plan/internal/plan"
	"trading-plan/internal/risk"
	"trading-plan/internal/sheets"
	"trading-plan/internal/sheets/sheetsobs"
	"trading-plan/internal/store"
	"trading-plan/internal/trace"

	"github.com/joho/godotenv"
)

// initializeSystem loads .env and settings, then starts logging and tracing.
// The logger is started even when the settings fail so the failure is recorded.
func initializeSystem(ctx context.Context, configPath string) (*store.Config, error) {
	_ = godotenv.Load()

	cfg, cfgErr := store.LoadConfig(configPath)

	logFile := store.DefaultLogFile
	if cfgErr == nil {
		logFile = cfg.Log.File
	}
	if err := logger.Init(logFile); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	if cfgErr != nil {
		logger.ErrorWithErr(ctx, "Failed to load configuration", cfgErr, "path", configPath)
		return nil, cfgErr
	}

	cfg.LLM.APIKey = os.Getenv(apiKeyEnv(cfg.LLM.Provider))
	return cfg, nil
}

func shutdownSystem() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = trace.Shutdown(ctx)
	_ = logger.Close()
}

func apiKeyEnv(provider string) string {
	if provider == "CLAUDE" {
		return "CLAUDE_API_KEY"
	}
	return "OPENAI_API_KEY"
}

// initializePriceSource returns the sheet-backed price source with observability
func initializePriceSource(cfg *store.Config) interfaces.PriceSource {
	return sheetsobs.Wrap(sheets.NewSource(sheets.ParamsFromConfig(cfg)))
}

// initializeGenerator returns the configured strategy generator with observability
func initializeGenerator(ctx context.Context, cfg *store.Config) interfaces.StrategyGenerator {
	var gen interfaces.StrategyGenerator

	settings := llm.SettingsFromConfig(cfg)
	switch cfg.LLM.Provider {
	case "OPENAI":
		gen = openai.NewGenerator(settings)
	case "CLAUDE":
		gen = claude.NewGenerator(settings)
	default:
		gen = noop.NewGenerator()
		logger.Warn(ctx, "No LLM provider configured - using Noop generator")
	}

	return llmobs.Wrap(gen)
}

func riskOptions(cfg *store.Config) risk.Options {
	return risk.Options{
		ScaleByRiskPercentage: cfg.Risk.ScaleByRiskPercentage,
		AllowShort:            cfg.Risk.AllowShort,
	}
}

// planRunner is swapped in tests.
var planRunner = runPlan

// runPlan wires every component from cfg and runs one pass.
func runPlan(ctx context.Context, cfg *store.Config, out io.Writer) error {
	logger.Info(ctx, "Starting trading plan",
		"spreadsheet_id", cfg.GoogleSheets.SpreadsheetID,
		"range", cfg.GoogleSheets.Range,
		"provider", cfg.LLM.Provider,
		"model", cfg.LLM.Model,
	)

	p := plan.New(initializePriceSource(cfg), initializeGenerator(ctx, cfg), out).
		WithTrades(risk.NewCalculator(riskOptions(cfg)), cfg.Trades)

	return p.Run(ctx)
}
