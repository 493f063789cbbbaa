package policy

import "harvest-backtest/internal/model"

// FractionParams configures the fixed-fraction disposal policy.
type FractionParams struct {
	// Fraction of current inventory sold each cycle, e.g. 0.25.
	Fraction      float64
	FrequencyDays int
}

func (p FractionParams) normalize() FractionParams {
	if p.Fraction <= 0 || p.Fraction > 1 {
		p.Fraction = 0.25
	}
	if p.FrequencyDays <= 0 {
		p.FrequencyDays = 7
	}
	return p
}

// FractionStrategy is a systematic decay schedule: it sells a fixed
// fraction of whatever is on hand every FrequencyDays, regardless of
// price.
type FractionStrategy struct {
	Params FractionParams

	initialized bool
	params      FractionParams
}

func NewFractionStrategy(params FractionParams) *FractionStrategy {
	return &FractionStrategy{Params: params}
}

func (s *FractionStrategy) Name() string { return "fraction" }

func (s *FractionStrategy) Decide(ctx Context) model.Decision {
	if !s.initialized {
		s.params = s.Params.normalize()
		s.initialized = true
	}

	if d, ok := forcedExit(ctx); ok {
		return d
	}
	if ctx.Inventory <= 0 {
		return model.Hold("empty")
	}
	if ctx.DaysSinceLastSale < s.params.FrequencyDays {
		return model.Hold("awaiting_schedule")
	}
	return model.Sell(ctx.Inventory*s.params.Fraction, "fixed_fraction")
}
