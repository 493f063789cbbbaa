package policy

import "harvest-backtest/internal/model"

// BreakoutForecastStrategy pairs the threshold-breakout baseline with
// ensemble-gated overrides. With no ensemble, or one too noisy to trust,
// it behaves exactly like its baseline so the two stay comparable.
type BreakoutForecastStrategy struct {
	Params     BreakoutParams
	Confidence ConfidenceParams

	initialized bool
	params      BreakoutParams
	conf        ConfidenceParams
	base        *BreakoutStrategy
}

func NewBreakoutForecastStrategy(params BreakoutParams, conf ConfidenceParams) *BreakoutForecastStrategy {
	return &BreakoutForecastStrategy{Params: params, Confidence: conf}
}

func (s *BreakoutForecastStrategy) Name() string { return "breakout-forecast" }

func (s *BreakoutForecastStrategy) Decide(ctx Context) model.Decision {
	if !s.initialized {
		s.params = s.Params.normalize()
		s.conf = s.Confidence.normalize()
		s.base = NewBreakoutStrategy(s.params)
		s.initialized = true
	}

	if d, ok := forcedExit(ctx); ok {
		return d
	}
	// Cooldown gates the forecast overrides too, not just the baseline.
	if underCooldown(ctx, s.params.CooldownDays) {
		return model.Hold("cooldown")
	}

	baseline := s.base.Decide(ctx)
	nb, ok := computeNetBenefit(ctx)
	if !ok {
		return baseline
	}
	cv := ensembleCVAt(ctx.Ensemble, nb.BestHorizon)
	return gateWithBaseline(ctx, baseline, nb, cv, s.conf)
}
