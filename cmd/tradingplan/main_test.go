package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"trading-plan/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRiskCommand(t *testing.T) {
	out, err := runCmd(t, "risk", "--symbol", "AAPL", "--entry", "100", "--stop", "90", "--size", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, "AAPL: risk 100.00")
}

func TestRiskCommandScaled(t *testing.T) {
	out, err := runCmd(t, "risk", "--symbol", "AAPL", "--entry", "100", "--stop", "90", "--size", "1000",
		"--risk-pct", "0.02", "--scale")
	require.NoError(t, err)
	assert.Contains(t, out, "AAPL: risk 200.00")
}

func TestRiskCommandRejectsNegativeSize(t *testing.T) {
	_, err := runCmd(t, "risk", "--symbol", "TSLA", "--entry", "200", "--stop", "210", "--size", "-5")
	assert.ErrorContains(t, err, "position_size")

	out, err := runCmd(t, "risk", "--symbol", "TSLA", "--entry", "200", "--stop", "210", "--size", "-5", "--allow-short")
	require.NoError(t, err)
	assert.Contains(t, out, "TSLA: risk 0.50")
}

func TestRiskCommandRequiresFlags(t *testing.T) {
	_, err := runCmd(t, "risk", "--symbol", "AAPL")
	assert.Error(t, err)
}

func TestAPIKeyEnv(t *testing.T) {
	assert.Equal(t, "OPENAI_API_KEY", apiKeyEnv("OPENAI"))
	assert.Equal(t, "CLAUDE_API_KEY", apiKeyEnv("CLAUDE"))
	assert.Equal(t, "OPENAI_API_KEY", apiKeyEnv("NOOP"))
}

func TestRiskOptions(t *testing.T) {
	cfg := &store.Config{}
	cfg.Risk.ScaleByRiskPercentage = true
	opts := riskOptions(cfg)
	assert.True(t, opts.ScaleByRiskPercentage)
	assert.False(t, opts.AllowShort)
}

func TestRiskCommandRejectsNonFinite(t *testing.T) {
	for _, v := range []string{"NaN", "Inf", "-Inf"} {
		require.NotPanics(t, func() {
			_, err := runCmd(t, "risk", "--symbol", "X", "--entry", v, "--stop", "90", "--size", "10")
			assert.ErrorContains(t, err, "entry_price")
		})
	}
}

// inTempDir runs the test from an empty directory so the log file and .env
// lookups stay out of the package tree.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		shutdownSystem()
		_ = os.Chdir(wd)
	})
	return dir
}

func stubPlanRunner(t *testing.T) *int {
	t.Helper()
	calls := 0
	orig := planRunner
	planRunner = func(context.Context, *store.Config, io.Writer) error {
		calls++
		return nil
	}
	t.Cleanup(func() { planRunner = orig })
	return &calls
}

func TestRootCommandConfigLoadFailure(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("google_sheets: [oops"), 0o600))

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.yaml")},
		{"invalid yaml", filepath.Join(dir, "bad.yaml")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := stubPlanRunner(t)

			_, err := runCmd(t, "--config", tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, store.ErrConfigLoad)
			assert.Zero(t, *calls)
		})
	}

	b, err := os.ReadFile(filepath.Join(dir, store.DefaultLogFile))
	require.NoError(t, err)
	assert.Contains(t, string(b), "Failed to load configuration")
}

func TestRootCommandRunsPlan(t *testing.T) {
	dir := inTempDir(t)
	path := filepath.Join(dir, "config.yaml")
	doc := "google_sheets:\n  service_account_file: c.json\n  spreadsheet_id: s\nlog:\n  file: " +
		filepath.Join(dir, "run.log") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	calls := stubPlanRunner(t)

	_, err := runCmd(t, "--config", path)
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)
}
