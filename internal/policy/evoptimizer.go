package policy

import (
	"harvest-backtest/internal/indicator"
	"harvest-backtest/internal/model"
)

// EVParams configures the expected-value optimizer policy.
type EVParams struct {
	CooldownDays          int
	FallbackFrequencyDays int
	FallbackFraction      float64
	TrendPeriod           int
	// TrendThreshold is the ADX level required to hold with full
	// confidence rather than keep a small hedge.
	TrendThreshold float64
}

func (p EVParams) normalize() EVParams {
	if p.CooldownDays <= 0 {
		p.CooldownDays = 7
	}
	if p.FallbackFrequencyDays <= 0 {
		p.FallbackFrequencyDays = 14
	}
	if p.FallbackFraction <= 0 || p.FallbackFraction > 1 {
		p.FallbackFraction = 0.25
	}
	if p.TrendPeriod <= 0 {
		p.TrendPeriod = 14
	}
	if p.TrendThreshold <= 0 {
		p.TrendThreshold = indicator.TrendStrong
	}
	return p
}

// Net-benefit and CV cutoffs for the five EV tiers.
const (
	evPositivePct = 0.5
	evNegativePct = -0.3
	evCVTight     = 0.05
	evCVLoose     = 0.10
)

// EVStrategy ignores any rule-based baseline and acts directly on the
// net-benefit signal, ensemble confidence and trend strength. Five
// tiers: fully-confident hold, small hedge 10%, marginal hedge 15%,
// mild negative 25%, strong negative 35%.
type EVStrategy struct {
	Params EVParams

	initialized bool
	params      EVParams
}

func NewEVStrategy(params EVParams) *EVStrategy {
	return &EVStrategy{Params: params}
}

func (s *EVStrategy) Name() string { return "ev" }

func (s *EVStrategy) Decide(ctx Context) model.Decision {
	if !s.initialized {
		s.params = s.Params.normalize()
		s.initialized = true
	}
	p := s.params

	if d, ok := forcedExit(ctx); ok {
		return d
	}
	if underCooldown(ctx, p.CooldownDays) {
		return model.Hold("cooldown")
	}
	if ctx.Inventory <= 0 {
		return model.Hold("empty")
	}

	nb, ok := computeNetBenefit(ctx)
	if !ok {
		return periodicFallback(ctx, p.FallbackFrequencyDays, p.FallbackFraction)
	}
	cv := ensembleCVAt(ctx.Ensemble, nb.BestHorizon)
	trend := indicator.TrendStrength(ctx.History, p.TrendPeriod)

	switch {
	case nb.Pct >= evPositivePct && cv < evCVTight:
		if trend.ADX >= p.TrendThreshold {
			return model.Hold("ev_hold_confident")
		}
		return model.Sell(ctx.Inventory*0.10, "ev_small_hedge")
	case nb.Pct >= evPositivePct && cv < evCVLoose:
		return model.Sell(ctx.Inventory*0.10, "ev_small_hedge")
	case nb.Pct >= 0:
		return model.Sell(ctx.Inventory*0.15, "ev_marginal_hedge")
	case nb.Pct >= evNegativePct:
		return model.Sell(ctx.Inventory*0.25, "ev_mild_negative")
	default:
		return model.Sell(ctx.Inventory*0.35, "ev_strong_negative")
	}
}

// periodicFallback is the shared no-forecast behavior of the unpaired
// forecast policies: a default sale on a fixed cadence.
func periodicFallback(ctx Context, frequencyDays int, fraction float64) model.Decision {
	if ctx.Inventory <= 0 {
		return model.Hold("empty")
	}
	if ctx.DaysSinceLastSale >= frequencyDays {
		return model.Sell(ctx.Inventory*fraction, "no_forecast_fallback")
	}
	return model.Hold("no_forecast")
}
