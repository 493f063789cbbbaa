package policy

import "harvest-backtest/internal/model"

// CrossoverForecastStrategy pairs the crossover-reversal baseline with
// ensemble-gated overrides, same blend rules as the breakout pairing.
type CrossoverForecastStrategy struct {
	Params     CrossoverParams
	Confidence ConfidenceParams

	initialized bool
	params      CrossoverParams
	conf        ConfidenceParams
	base        *CrossoverStrategy
}

func NewCrossoverForecastStrategy(params CrossoverParams, conf ConfidenceParams) *CrossoverForecastStrategy {
	return &CrossoverForecastStrategy{Params: params, Confidence: conf}
}

func (s *CrossoverForecastStrategy) Name() string { return "crossover-forecast" }

func (s *CrossoverForecastStrategy) Decide(ctx Context) model.Decision {
	if !s.initialized {
		s.params = s.Params.normalize()
		s.conf = s.Confidence.normalize()
		s.base = NewCrossoverStrategy(s.params)
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
