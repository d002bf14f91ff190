package noop

import (
	"context"
	"testing"

	"trading-plan/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	out, err := NewGenerator().Generate(context.Background(), types.Prices{"AAPL": "1", "MSFT": "2"})
	require.NoError(t, err)
	assert.Contains(t, out, "2 tickers")
}
