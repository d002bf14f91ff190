package llmobs

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"trading-plan/internal/logger"
	"trading-plan/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	out string
	err error
}

func (s stubGenerator) Generate(context.Context, types.Prices) (string, error) {
	return s.out, s.err
}

func TestWrapPassesThrough(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter(logger.LogConfig{Level: "INFO"}, &buf)

	out, err := Wrap(stubGenerator{out: "plan"}).Generate(context.Background(), types.Prices{"A": "1"})
	require.NoError(t, err)
	assert.Equal(t, "plan", out)
	assert.Contains(t, buf.String(), "Trading strategy received")
}

func TestWrapLogsErrors(t *testing.T) {
	var buf bytes.Buffer
	logger.InitWithWriter(logger.LogConfig{Level: "INFO"}, &buf)

	boom := errors.New("boom")
	_, err := Wrap(stubGenerator{err: boom}).Generate(context.Background(), types.Prices{})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "Failed to generate trading strategy")
	assert.Contains(t, buf.String(), "boom")
}
