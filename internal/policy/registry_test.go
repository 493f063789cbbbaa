package policy

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"harvest-backtest/internal/model"
)

func TestNames(t *testing.T) {
	names := Names()
	assert.Len(t, names, 10)
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "schedule")
	assert.Contains(t, names, "breakout-forecast")
	assert.Contains(t, names, "mpc")
}

func TestBuild(t *testing.T) {
	for _, name := range Names() {
		pol, err := Build(name, nil)
		require.NoError(t, err)
		assert.Equal(t, name, pol.Name())
	}

	_, err := Build("martingale", nil)
	require.ErrorIs(t, err, model.ErrConfiguration)
}

func TestBuild_ParamsWired(t *testing.T) {
	pol, err := Build("fraction", map[string]any{
		"fraction":       0.5,
		"frequency_days": 3,
	})
	require.NoError(t, err)

	ctx := baseCtx()
	ctx.Inventory = 8
	d := pol.Decide(ctx)
	assert.InDelta(t, 4.0, d.Amount, 1e-12)

	ctx.DaysSinceLastSale = 2
	assert.Equal(t, model.ActionHold, pol.Decide(ctx).Action)
}

func TestBuild_YAMLNumbersCoerce(t *testing.T) {
	// YAML decodes whole numbers as int; both shapes must work.
	pol, err := Build("schedule", map[string]any{
		"sale_frequency_days": 3,
		"min_batch_tons":      2.0,
	})
	require.NoError(t, err)

	ctx := baseCtx()
	ctx.Inventory = 1.9
	assert.Equal(t, "accumulating", pol.Decide(ctx).Reason)
	ctx.Inventory = 2.1
	assert.Equal(t, model.ActionSell, pol.Decide(ctx).Action)
}
