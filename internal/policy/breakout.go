package policy

import (
	"math"

	"harvest-backtest/internal/indicator"
	"harvest-backtest/internal/model"
)

// BreakoutParams configures the threshold-breakout policy.
type BreakoutParams struct {
	MAWindowDays int
	// ThresholdPct is the required premium over the moving average,
	// e.g. 0.05 for 5%.
	ThresholdPct       float64
	CooldownDays       int
	BaselineFraction   float64
	MaxDaysWithoutSale int
	MomentumPeriod     int
	TrendPeriod        int
}

func (p BreakoutParams) normalize() BreakoutParams {
	if p.MAWindowDays <= 0 {
		p.MAWindowDays = 20
	}
	if p.ThresholdPct <= 0 {
		p.ThresholdPct = 0.05
	}
	if p.CooldownDays <= 0 {
		p.CooldownDays = 7
	}
	if p.BaselineFraction <= 0 || p.BaselineFraction > 1 {
		p.BaselineFraction = 0.25
	}
	if p.MaxDaysWithoutSale <= 0 {
		p.MaxDaysWithoutSale = 30
	}
	if p.MomentumPeriod <= 0 {
		p.MomentumPeriod = 14
	}
	if p.TrendPeriod <= 0 {
		p.TrendPeriod = 14
	}
	return p
}

// BreakoutStrategy sells into strength: when price clears the trailing
// moving average by ThresholdPct, it sells a batch sized by how stretched
// momentum and trend look.
type BreakoutStrategy struct {
	Params BreakoutParams

	initialized bool
	params      BreakoutParams
}

func NewBreakoutStrategy(params BreakoutParams) *BreakoutStrategy {
	return &BreakoutStrategy{Params: params}
}

func (s *BreakoutStrategy) Name() string { return "breakout" }

func (s *BreakoutStrategy) Decide(ctx Context) model.Decision {
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
	if ctx.DaysSinceLastSale >= p.MaxDaysWithoutSale {
		return model.Sell(ctx.Inventory*p.BaselineFraction, "fallback_sale")
	}

	ma := indicator.SMA(ctx.History, p.MAWindowDays)
	if math.IsNaN(ma) {
		return model.Hold("insufficient_history")
	}
	if ctx.Price <= ma*(1+p.ThresholdPct) {
		return model.Hold("no_breakout")
	}

	frac := tierFraction(ctx.History, p.MomentumPeriod, p.TrendPeriod)
	return model.Sell(ctx.Inventory*frac, "breakout_sell")
}

// tierFraction sizes a momentum-driven sale. Four tiers keyed on whether
// the oscillator is overbought and whether the trend reads strong:
// both 35%, overbought only 30%, strong trend only 25%, neither 20%.
func tierFraction(history []float64, momentumPeriod, trendPeriod int) float64 {
	overbought := indicator.Momentum(history, momentumPeriod) >= indicator.MomentumOverbought
	strong := indicator.TrendStrength(history, trendPeriod).ADX >= indicator.TrendStrong

	switch {
	case overbought && strong:
		return 0.35
	case overbought:
		return 0.30
	case strong:
		return 0.25
	default:
		return 0.20
	}
}
