package policy

import (
	"math"

	"harvest-backtest/internal/indicator"
	"harvest-backtest/internal/model"
)

// CrossoverParams configures the crossover-reversal policy.
type CrossoverParams struct {
	MAWindowDays       int
	CooldownDays       int
	BaselineFraction   float64
	MaxDaysWithoutSale int
	MomentumPeriod     int
	TrendPeriod        int
}

func (p CrossoverParams) normalize() CrossoverParams {
	if p.MAWindowDays <= 0 {
		p.MAWindowDays = 20
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

// CrossoverStrategy sells when price crosses below its trailing moving
// average (a bearish reversal) and holds unconditionally on bullish
// upward crossovers.
type CrossoverStrategy struct {
	Params CrossoverParams

	initialized bool
	params      CrossoverParams
}

func NewCrossoverStrategy(params CrossoverParams) *CrossoverStrategy {
	return &CrossoverStrategy{Params: params}
}

func (s *CrossoverStrategy) Name() string { return "crossover" }

func (s *CrossoverStrategy) Decide(ctx Context) model.Decision {
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

	// Need yesterday's price and a full MA window for both days.
	if len(ctx.History) < p.MAWindowDays+1 {
		return model.Hold("insufficient_history")
	}
	ma := indicator.SMA(ctx.History, p.MAWindowDays)
	prevMA := indicator.SMA(ctx.History[:len(ctx.History)-1], p.MAWindowDays)
	if math.IsNaN(ma) || math.IsNaN(prevMA) {
		return model.Hold("insufficient_history")
	}
	prevPrice := ctx.History[len(ctx.History)-2]

	bearish := prevPrice >= prevMA && ctx.Price < ma
	bullish := prevPrice <= prevMA && ctx.Price > ma

	switch {
	case bearish:
		frac := tierFraction(ctx.History, p.MomentumPeriod, p.TrendPeriod)
		return model.Sell(ctx.Inventory*frac, "bearish_crossover")
	case bullish:
		return model.Hold("bullish_crossover")
	default:
		return model.Hold("no_crossover")
	}
}
