package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"harvest-backtest/internal/model"
)

func TestBreakoutStrategy_SellsOnBreakout(t *testing.T) {
	s := NewBreakoutStrategy(BreakoutParams{})

	// 20 flat days then a 10% jump: price clears the MA by more than 5%.
	ctx := baseCtx()
	ctx.History = append(flatHistory(20, 100), 110)
	ctx.Price = 110
	ctx.DaysSinceLastSale = 10

	d := s.Decide(ctx)
	assert.Equal(t, model.ActionSell, d.Action)
	assert.Equal(t, "breakout_sell", d.Reason)
	// The jump makes momentum overbought; history is too short for a
	// trend reading, so the overbought-only tier applies.
	assert.InDelta(t, ctx.Inventory*0.30, d.Amount, 1e-12)
}

func TestBreakoutStrategy_HoldsBelowThreshold(t *testing.T) {
	s := NewBreakoutStrategy(BreakoutParams{})

	ctx := baseCtx()
	ctx.History = append(flatHistory(20, 100), 104)
	ctx.Price = 104
	ctx.DaysSinceLastSale = 10

	d := s.Decide(ctx)
	assert.Equal(t, model.ActionHold, d.Action)
	assert.Equal(t, "no_breakout", d.Reason)
}

func TestBreakoutStrategy_Gates(t *testing.T) {
	s := NewBreakoutStrategy(BreakoutParams{})

	ctx := baseCtx()
	ctx.History = flatHistory(5, 100)
	ctx.DaysSinceLastSale = 3
	assert.Equal(t, "cooldown", s.Decide(ctx).Reason)

	ctx.DaysSinceLastSale = 10
	ctx.Inventory = 0
	assert.Equal(t, "empty", s.Decide(ctx).Reason)

	ctx.Inventory = 10
	assert.Equal(t, "insufficient_history", s.Decide(ctx).Reason)
}

func TestBreakoutStrategy_FallbackSale(t *testing.T) {
	s := NewBreakoutStrategy(BreakoutParams{})

	ctx := baseCtx()
	ctx.History = flatHistory(40, 100)
	ctx.DaysSinceLastSale = 30

	d := s.Decide(ctx)
	assert.Equal(t, model.ActionSell, d.Action)
	assert.Equal(t, "fallback_sale", d.Reason)
	assert.InDelta(t, ctx.Inventory*0.25, d.Amount, 1e-12)
}

func TestTierFraction(t *testing.T) {
	// Flat series: neither overbought nor trending.
	assert.Equal(t, 0.20, tierFraction(flatHistory(40, 100), 14, 14))

	// Monotone rise long enough for a trend reading: overbought and strong.
	assert.Equal(t, 0.35, tierFraction(risingHistory(40, 100, 2), 14, 14))

	// Short jump: overbought without a trend reading.
	assert.Equal(t, 0.30, tierFraction(append(flatHistory(20, 100), 110), 14, 14))
}

func TestCrossoverStrategy_BearishSells(t *testing.T) {
	s := NewCrossoverStrategy(CrossoverParams{})

	// Flat at the MA, then a drop below it.
	ctx := baseCtx()
	ctx.History = append(flatHistory(21, 100), 90)
	ctx.Price = 90
	ctx.DaysSinceLastSale = 10

	d := s.Decide(ctx)
	assert.Equal(t, model.ActionSell, d.Action)
	assert.Equal(t, "bearish_crossover", d.Reason)
	// A single down day reads neither overbought nor trending.
	assert.InDelta(t, ctx.Inventory*0.20, d.Amount, 1e-12)
}

func TestCrossoverStrategy_BullishHolds(t *testing.T) {
	s := NewCrossoverStrategy(CrossoverParams{})

	ctx := baseCtx()
	ctx.History = append(flatHistory(21, 100), 110)
	ctx.Price = 110
	ctx.DaysSinceLastSale = 10

	d := s.Decide(ctx)
	assert.Equal(t, model.ActionHold, d.Action)
	assert.Equal(t, "bullish_crossover", d.Reason)
}

func TestCrossoverStrategy_InsufficientHistory(t *testing.T) {
	s := NewCrossoverStrategy(CrossoverParams{})

	ctx := baseCtx()
	ctx.History = flatHistory(20, 100)
	ctx.DaysSinceLastSale = 10
	assert.Equal(t, "insufficient_history", s.Decide(ctx).Reason)
}
