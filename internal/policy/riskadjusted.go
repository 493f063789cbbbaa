package policy

import (
	"harvest-backtest/internal/indicator"
	"harvest-backtest/internal/model"
)

// RiskAdjustedParams configures the mean-variance policy.
type RiskAdjustedParams struct {
	// MinReturnPct is the expected return required before holding is
	// even considered.
	MinReturnPct float64
	// CV cutoffs for the low/medium/high/very-high risk tiers.
	CVLow    float64
	CVMedium float64
	CVHigh   float64
	// TrendThreshold is the ADX confirmation required for the zero-sell
	// tier.
	TrendThreshold        float64
	TrendPeriod           int
	CooldownDays          int
	FallbackFrequencyDays int
	FallbackFraction      float64
}

func (p RiskAdjustedParams) normalize() RiskAdjustedParams {
	if p.MinReturnPct <= 0 {
		p.MinReturnPct = 3.0
	}
	if p.CVLow <= 0 {
		p.CVLow = 0.05
	}
	if p.CVMedium <= 0 {
		p.CVMedium = 0.10
	}
	if p.CVHigh <= 0 {
		p.CVHigh = 0.20
	}
	if p.TrendThreshold <= 0 {
		p.TrendThreshold = indicator.TrendStrong
	}
	if p.TrendPeriod <= 0 {
		p.TrendPeriod = 14
	}
	if p.CooldownDays <= 0 {
		p.CooldownDays = 7
	}
	if p.FallbackFrequencyDays <= 0 {
		p.FallbackFrequencyDays = 14
	}
	if p.FallbackFraction <= 0 || p.FallbackFraction > 1 {
		p.FallbackFraction = 0.25
	}
	return p
}

// RiskAdjustedStrategy holds only when the expected return clears a
// minimum and the net benefit is positive, then sizes the sale by how
// noisy the ensemble is: low risk holds, very high risk sells 35%.
type RiskAdjustedStrategy struct {
	Params RiskAdjustedParams

	initialized bool
	params      RiskAdjustedParams
}

func NewRiskAdjustedStrategy(params RiskAdjustedParams) *RiskAdjustedStrategy {
	return &RiskAdjustedStrategy{Params: params}
}

func (s *RiskAdjustedStrategy) Name() string { return "risk-adjusted" }

func (s *RiskAdjustedStrategy) Decide(ctx Context) model.Decision {
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

	// Negative net benefit is the harsher failure: timing cannot beat
	// selling now, so get out faster than on a merely thin return.
	if nb.Pct <= 0 {
		return model.Sell(ctx.Inventory*0.35, "negative_net_benefit")
	}
	expectedReturnPct := 100 * (nb.BestMedian - ctx.Price) / ctx.Price
	if expectedReturnPct < p.MinReturnPct {
		return model.Sell(ctx.Inventory*0.25, "insufficient_return")
	}

	cv := ensembleCVAt(ctx.Ensemble, nb.BestHorizon)
	switch {
	case cv < p.CVLow:
		if indicator.TrendStrength(ctx.History, p.TrendPeriod).ADX > p.TrendThreshold {
			return model.Hold("low_risk_hold")
		}
		return model.Sell(ctx.Inventory*0.10, "low_risk_unconfirmed")
	case cv < p.CVMedium:
		return model.Sell(ctx.Inventory*0.10, "medium_risk")
	case cv < p.CVHigh:
		return model.Sell(ctx.Inventory*0.25, "high_risk")
	default:
		return model.Sell(ctx.Inventory*0.35, "very_high_risk")
	}
}
