package policy

import "harvest-backtest/internal/model"

// ScheduleParams configures the scheduled full-liquidation policy:
// accumulate until MinBatchTons is on hand, then sell everything every
// SaleFrequencyDays.
type ScheduleParams struct {
	SaleFrequencyDays int
	MinBatchTons      float64
}

func (p ScheduleParams) normalize() ScheduleParams {
	if p.SaleFrequencyDays <= 0 {
		p.SaleFrequencyDays = 7
	}
	if p.MinBatchTons <= 0 {
		p.MinBatchTons = 5.0
	}
	return p
}

// ScheduleStrategy sells 100% of inventory on a fixed cadence, price-blind.
type ScheduleStrategy struct {
	Params ScheduleParams

	initialized bool
	params      ScheduleParams
}

func NewScheduleStrategy(params ScheduleParams) *ScheduleStrategy {
	return &ScheduleStrategy{Params: params}
}

func (s *ScheduleStrategy) Name() string { return "schedule" }

func (s *ScheduleStrategy) Decide(ctx Context) model.Decision {
	if !s.initialized {
		s.params = s.Params.normalize()
		s.initialized = true
	}

	if d, ok := forcedExit(ctx); ok {
		return d
	}
	if ctx.Inventory < s.params.MinBatchTons {
		return model.Hold("accumulating")
	}
	if ctx.DaysSinceLastSale < s.params.SaleFrequencyDays {
		return model.Hold("awaiting_schedule")
	}
	return model.Sell(ctx.Inventory, "scheduled_liquidation")
}
