package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"harvest-backtest/internal/model"
)

func TestScheduleStrategy_AccumulatesToMinBatch(t *testing.T) {
	s := NewScheduleStrategy(ScheduleParams{})

	ctx := baseCtx()
	ctx.Inventory = 4.9
	d := s.Decide(ctx)
	assert.Equal(t, model.ActionHold, d.Action)
	assert.Equal(t, "accumulating", d.Reason)

	ctx.Inventory = 5.2
	d = s.Decide(ctx)
	assert.Equal(t, model.ActionSell, d.Action)
	assert.Equal(t, ctx.Inventory, d.Amount, "schedule liquidates everything")
	assert.Equal(t, "scheduled_liquidation", d.Reason)
}

func TestScheduleStrategy_FrequencyGate(t *testing.T) {
	s := NewScheduleStrategy(ScheduleParams{SaleFrequencyDays: 7, MinBatchTons: 1})

	ctx := baseCtx()
	ctx.DaysSinceLastSale = 4
	d := s.Decide(ctx)
	assert.Equal(t, "awaiting_schedule", d.Reason)

	ctx.DaysSinceLastSale = 7
	d = s.Decide(ctx)
	assert.Equal(t, model.ActionSell, d.Action)
}

func TestScheduleStrategy_Defaults(t *testing.T) {
	s := NewScheduleStrategy(ScheduleParams{SaleFrequencyDays: -1, MinBatchTons: -1})

	// Defaults kick in: min batch 5, frequency 7.
	ctx := baseCtx()
	ctx.Inventory = 4.99
	assert.Equal(t, "accumulating", s.Decide(ctx).Reason)
}

func TestFractionStrategy(t *testing.T) {
	s := NewFractionStrategy(FractionParams{Fraction: 0.25, FrequencyDays: 7})

	ctx := baseCtx()
	ctx.Inventory = 8
	d := s.Decide(ctx)
	assert.Equal(t, model.ActionSell, d.Action)
	assert.InDelta(t, 2.0, d.Amount, 1e-12)
	assert.Equal(t, "fixed_fraction", d.Reason)

	ctx.DaysSinceLastSale = 6
	assert.Equal(t, "awaiting_schedule", s.Decide(ctx).Reason)

	ctx.DaysSinceLastSale = NeverSold
	ctx.Inventory = 0
	assert.Equal(t, "empty", s.Decide(ctx).Reason)
}

func TestFractionStrategy_InvalidFractionDefaults(t *testing.T) {
	s := NewFractionStrategy(FractionParams{Fraction: 1.5})
	ctx := baseCtx()
	ctx.Inventory = 8
	d := s.Decide(ctx)
	assert.InDelta(t, 2.0, d.Amount, 1e-12, "out-of-range fraction falls back to 0.25")
}
