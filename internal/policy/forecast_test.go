package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"harvest-backtest/internal/model"
)

func TestClassifyConfidence_Boundaries(t *testing.T) {
	conf := ConfidenceParams{}.normalize()

	assert.Equal(t, confidenceHigh, classifyConfidence(0.0499, conf))
	// Boundaries fall to the less-confident side.
	assert.Equal(t, confidenceMedium, classifyConfidence(0.05, conf))
	assert.Equal(t, confidenceMedium, classifyConfidence(0.1499, conf))
	assert.Equal(t, confidenceLow, classifyConfidence(0.15, conf))
	assert.Equal(t, confidenceLow, classifyConfidence(1.0, conf))
}

func TestComputeNetBenefit(t *testing.T) {
	ctx := baseCtx()
	ctx.Costs = freeCosts()
	// Medians per horizon: 98, 104, 101. Best is h=1.
	ctx.Ensemble = mustEnsemble(t, [][]float64{
		{98, 104, 101},
		{98, 104, 101},
		{98, 104, 101},
	})

	nb, ok := computeNetBenefit(ctx)
	require.True(t, ok)
	assert.Equal(t, 1, nb.BestHorizon)
	assert.InDelta(t, 104.0, nb.BestMedian, 1e-12)
	assert.InDelta(t, 104.0, nb.BestEV, 1e-12)
	assert.InDelta(t, 100.0, nb.TodayEV, 1e-12)
	assert.InDelta(t, 4.0, nb.Pct, 1e-12)
}

func TestComputeNetBenefit_CostsShiftTheOptimum(t *testing.T) {
	ctx := baseCtx()
	ctx.Costs = model.CostParams{
		StorageRatePerDay: 0.01, // 1/day on a price of 100
		TransactionRate:   0,
		MaxHoldingDays:    365,
	}
	// Flat forecast: storage accrual makes every wait strictly worse.
	ctx.Ensemble = mustEnsemble(t, [][]float64{
		{100, 100, 100},
		{100, 100, 100},
	})

	nb, ok := computeNetBenefit(ctx)
	require.True(t, ok)
	assert.Equal(t, 0, nb.BestHorizon)
	assert.InDelta(t, 99.0, nb.BestEV, 1e-12)
	assert.InDelta(t, -1.0, nb.Pct, 1e-12)
}

func TestComputeNetBenefit_MissingEnsemble(t *testing.T) {
	ctx := baseCtx()
	ctx.Ensemble = nil
	_, ok := computeNetBenefit(ctx)
	assert.False(t, ok)

	ctx.Ensemble = mustEnsemble(t, [][]float64{{100}})
	ctx.Price = 0
	_, ok = computeNetBenefit(ctx)
	assert.False(t, ok)
}

func TestGateWithBaseline_HighConfidence(t *testing.T) {
	ctx := baseCtx()
	baseline := model.Sell(2.5, "breakout_sell")
	conf := ConfidenceParams{}.normalize()

	d := gateWithBaseline(ctx, baseline, netBenefit{Pct: 2.5}, 0.01, conf)
	assert.Equal(t, model.ActionHold, d.Action)
	assert.Equal(t, "forecast_strong_up", d.Reason)

	d = gateWithBaseline(ctx, baseline, netBenefit{Pct: 1.0}, 0.01, conf)
	assert.Equal(t, "forecast_hedge", d.Reason)
	assert.InDelta(t, ctx.Inventory*0.15, d.Amount, 1e-12)

	d = gateWithBaseline(ctx, baseline, netBenefit{Pct: -2.5}, 0.01, conf)
	assert.Equal(t, "forecast_strong_down", d.Reason)
	assert.InDelta(t, ctx.Inventory*0.40, d.Amount, 1e-12)

	d = gateWithBaseline(ctx, baseline, netBenefit{Pct: -1.0}, 0.01, conf)
	assert.Equal(t, "forecast_down", d.Reason)
	assert.InDelta(t, ctx.Inventory*0.25, d.Amount, 1e-12)

	// Directionless forecast defers to the baseline.
	d = gateWithBaseline(ctx, baseline, netBenefit{Pct: 0.2}, 0.01, conf)
	assert.Equal(t, baseline, d)
}

func TestGateWithBaseline_MediumConfidence(t *testing.T) {
	ctx := baseCtx()
	conf := ConfidenceParams{}.normalize()

	// Baseline sells into an upward forecast: halve the batch.
	baseline := model.Sell(2.0, "breakout_sell")
	d := gateWithBaseline(ctx, baseline, netBenefit{Pct: 1.0}, 0.10, conf)
	assert.Equal(t, model.ActionSell, d.Action)
	assert.InDelta(t, 1.0, d.Amount, 1e-12)
	assert.Equal(t, "forecast_halved_breakout_sell", d.Reason)

	// Baseline holds into a downward forecast: small cautious sale.
	baseline = model.Hold("no_breakout")
	d = gateWithBaseline(ctx, baseline, netBenefit{Pct: -1.0}, 0.10, conf)
	assert.Equal(t, "forecast_cautious_sell", d.Reason)
	assert.InDelta(t, ctx.Inventory*0.10, d.Amount, 1e-12)

	// Agreement passes through untouched.
	baseline = model.Sell(2.0, "breakout_sell")
	d = gateWithBaseline(ctx, baseline, netBenefit{Pct: -1.0}, 0.10, conf)
	assert.Equal(t, baseline, d)
}

func TestGateWithBaseline_LowConfidence(t *testing.T) {
	ctx := baseCtx()
	conf := ConfidenceParams{}.normalize()
	baseline := model.Sell(2.0, "breakout_sell")

	d := gateWithBaseline(ctx, baseline, netBenefit{Pct: -5.0}, 0.5, conf)
	assert.Equal(t, baseline, d, "noisy forecasts never override the baseline")
}

// The paired policies must be indistinguishable from their baselines on
// days without a usable forecast.
func TestPairedPolicies_FallbackMatchesBaseline(t *testing.T) {
	contexts := []Context{}
	for day := 0; day < 60; day++ {
		ctx := baseCtx()
		ctx.Day = day
		ctx.History = risingHistory(day+1, 100, 0.5)
		ctx.Price = ctx.History[len(ctx.History)-1]
		ctx.Inventory = 10 + float64(day)
		ctx.DaysSinceLastSale = day % 40
		ctx.Ensemble = nil
		contexts = append(contexts, ctx)
	}

	breakout := NewBreakoutStrategy(BreakoutParams{})
	pairedBreakout := NewBreakoutForecastStrategy(BreakoutParams{}, ConfidenceParams{})
	for _, ctx := range contexts {
		assert.Equal(t, breakout.Decide(ctx), pairedBreakout.Decide(ctx))
	}

	crossover := NewCrossoverStrategy(CrossoverParams{})
	pairedCrossover := NewCrossoverForecastStrategy(CrossoverParams{}, ConfidenceParams{})
	for _, ctx := range contexts {
		assert.Equal(t, crossover.Decide(ctx), pairedCrossover.Decide(ctx))
	}
}

func TestBreakoutForecast_HighConfidenceOverride(t *testing.T) {
	s := NewBreakoutForecastStrategy(BreakoutParams{}, ConfidenceParams{})

	// Baseline would sell the breakout, but a tight, strongly-up ensemble
	// overrides to hold.
	ctx := baseCtx()
	ctx.Costs = freeCosts()
	ctx.History = append(flatHistory(20, 100), 110)
	ctx.Price = 110
	ctx.DaysSinceLastSale = 10
	ctx.Ensemble = mustEnsemble(t, [][]float64{
		{115, 116},
		{115, 116},
		{115, 116},
	})

	d := s.Decide(ctx)
	assert.Equal(t, model.ActionHold, d.Action)
	assert.Equal(t, "forecast_strong_up", d.Reason)
}

// A fresh sale gates the forecast overrides too: even a tight, strongly
// bearish ensemble cannot sell again inside the cooldown window.
func TestPairedPolicies_CooldownGatesForecastOverride(t *testing.T) {
	ctx := baseCtx()
	ctx.Costs = freeCosts()
	ctx.DaysSinceLastSale = 2
	ctx.Ensemble = mustEnsemble(t, [][]float64{
		{90, 90},
		{90, 90},
		{90, 90},
	})

	d := NewBreakoutForecastStrategy(BreakoutParams{}, ConfidenceParams{}).Decide(ctx)
	assert.Equal(t, model.ActionHold, d.Action)
	assert.Equal(t, "cooldown", d.Reason)

	d = NewCrossoverForecastStrategy(CrossoverParams{}, ConfidenceParams{}).Decide(ctx)
	assert.Equal(t, model.ActionHold, d.Action)
	assert.Equal(t, "cooldown", d.Reason)

	// One day past the window the override fires again.
	ctx.DaysSinceLastSale = 7
	d = NewBreakoutForecastStrategy(BreakoutParams{}, ConfidenceParams{}).Decide(ctx)
	assert.Equal(t, model.ActionSell, d.Action)
	assert.Equal(t, "forecast_strong_down", d.Reason)
}

func TestEnsembleCVAt(t *testing.T) {
	assert.Equal(t, 1.0, ensembleCVAt(nil, 0))

	e := mustEnsemble(t, [][]float64{{100}, {100}})
	assert.Equal(t, 0.0, ensembleCVAt(e, 0))
	assert.Equal(t, 1.0, ensembleCVAt(e, 1), "out-of-range horizon fails safe")
	assert.Equal(t, 1.0, ensembleCVAt(e, -1))
}
