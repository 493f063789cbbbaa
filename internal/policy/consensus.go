package policy

import "harvest-backtest/internal/model"

// ConsensusParams configures the ensemble-consensus policy.
type ConsensusParams struct {
	// EvalHorizonDays is the horizon day (1-based) at which paths are
	// counted, clamped to the ensemble's horizon.
	EvalHorizonDays int
	// MinReturnPct is the path return required to count as bullish.
	MinReturnPct          float64
	CooldownDays          int
	FallbackFrequencyDays int
	FallbackFraction      float64
	Confidence            ConfidenceParams
}

func (p ConsensusParams) normalize() ConsensusParams {
	if p.EvalHorizonDays <= 0 {
		p.EvalHorizonDays = 14
	}
	if p.MinReturnPct <= 0 {
		p.MinReturnPct = 3.0
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
	p.Confidence = p.Confidence.normalize()
	return p
}

// ConsensusStrategy votes the ensemble: the fraction of sampled paths
// whose return at the evaluation horizon clears MinReturnPct decides the
// tier, from hold (very strong agreement) down to a 35% bearish sale.
type ConsensusStrategy struct {
	Params ConsensusParams

	initialized bool
	params      ConsensusParams
}

func NewConsensusStrategy(params ConsensusParams) *ConsensusStrategy {
	return &ConsensusStrategy{Params: params}
}

func (s *ConsensusStrategy) Name() string { return "consensus" }

func (s *ConsensusStrategy) Decide(ctx Context) model.Decision {
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

	ens := ctx.Ensemble
	if ens == nil || ens.Horizon() == 0 || ctx.Price <= 0 {
		return periodicFallback(ctx, p.FallbackFrequencyDays, p.FallbackFraction)
	}

	h := p.EvalHorizonDays - 1
	if h >= ens.Horizon() {
		h = ens.Horizon() - 1
	}
	bullish := 0
	for i := 0; i < ens.Samples(); i++ {
		ret := 100 * (ens.At(i, h) - ctx.Price) / ctx.Price
		if ret > p.MinReturnPct {
			bullish++
		}
	}
	frac := float64(bullish) / float64(ens.Samples())
	cv := ensembleCVAt(ens, h)

	switch {
	case frac >= 0.85:
		return model.Hold("consensus_very_strong")
	case frac >= 0.70:
		if classifyConfidence(cv, p.Confidence) == confidenceHigh {
			return model.Hold("consensus_strong")
		}
		return model.Sell(ctx.Inventory*0.15, "consensus_strong_gradual")
	case frac >= 0.60:
		return model.Sell(ctx.Inventory*0.15, "consensus_moderate")
	case frac < 0.30:
		return model.Sell(ctx.Inventory*0.35, "consensus_bearish")
	default:
		return model.Sell(ctx.Inventory*0.25, "consensus_weak")
	}
}
