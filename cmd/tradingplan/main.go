package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"trading-plan/internal/plan"
	"trading-plan/internal/risk"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Failures are reported once here; the exit status stays zero.
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Println("Error:", err)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "tradingplan",
		Short: "Generate a momentum trading strategy from spreadsheet prices",
		Long: `tradingplan reads ticker/price pairs from a Google Sheet, sizes any
configured trades, and asks a language model for a momentum-based strategy.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := initializeSystem(ctx, configPath)
			defer shutdownSystem()
			if err != nil {
				return err
			}
			return planRunner(ctx, cfg, cmd.OutOrStdout())
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Configuration file path")
	rootCmd.AddCommand(newRiskCmd())

	return rootCmd
}

func newRiskCmd() *cobra.Command {
	var (
		symbol   string
		entry    float64
		stopLoss float64
		size     float64
		riskPct  float64
		opts     risk.Options
	)

	cmd := &cobra.Command{
		Use:     "risk",
		Short:   "Calculate the risk amount for a single trade",
		Example: `  tradingplan risk --symbol AAPL --entry 100 --stop 90 --size 1000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			trade := map[string]any{
				"symbol":          symbol,
				"entry_price":     entry,
				"stop_loss":       stopLoss,
				"position_size":   size,
				"risk_percentage": riskPct,
			}
			res, err := risk.NewCalculator(opts).Process(cmd.Context(), trade)
			if err != nil {
				return err
			}
			report := plan.NewReport(cmd.OutOrStdout())
			report.RiskHeader()
			report.Risk(res)
			return nil
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "Ticker symbol")
	cmd.Flags().Float64Var(&entry, "entry", 0, "Entry price")
	cmd.Flags().Float64Var(&stopLoss, "stop", 0, "Stop-loss price")
	cmd.Flags().Float64Var(&size, "size", 0, "Position size in units")
	cmd.Flags().Float64Var(&riskPct, "risk-pct", risk.DefaultRiskFraction, "Risk fraction, used with --scale")
	cmd.Flags().BoolVar(&opts.ScaleByRiskPercentage, "scale", false, "Scale by --risk-pct instead of the fixed 1%")
	cmd.Flags().BoolVar(&opts.AllowShort, "allow-short", false, "Accept a negative size as a short position")
	_ = cmd.MarkFlagRequired("symbol")
	_ = cmd.MarkFlagRequired("entry")
	_ = cmd.MarkFlagRequired("stop")
	_ = cmd.MarkFlagRequired("size")

	return cmd
}
