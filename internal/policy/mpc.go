package policy

import (
	"harvest-backtest/internal/model"
	"harvest-backtest/internal/optimizer"
)

// Terminal-value strategies for the rolling-horizon optimizer.
const (
	TerminalDecay  = "decay"
	TerminalShadow = "shadow"
)

// MPCParams configures the receding-horizon policy.
type MPCParams struct {
	// HorizonDays caps the optimization window; the ensemble horizon
	// may shorten it further.
	HorizonDays int
	// TerminalStrategy is TerminalDecay or TerminalShadow.
	TerminalStrategy string
	// DecayFactor discounts the window's last price as the per-ton
	// terminal bonus (decay strategy, and the shadow strategy's seed).
	DecayFactor float64
	// Alpha is the exponential-smoothing weight on the newest dual
	// estimate (shadow strategy).
	Alpha                 float64
	FallbackFrequencyDays int
	FallbackFraction      float64
}

func (p MPCParams) normalize() MPCParams {
	if p.HorizonDays <= 0 {
		p.HorizonDays = 30
	}
	if p.TerminalStrategy != TerminalShadow {
		p.TerminalStrategy = TerminalDecay
	}
	if p.DecayFactor <= 0 || p.DecayFactor > 1 {
		p.DecayFactor = 0.95
	}
	if p.Alpha <= 0 || p.Alpha > 1 {
		p.Alpha = 0.3
	}
	if p.FallbackFrequencyDays <= 0 {
		p.FallbackFrequencyDays = 14
	}
	if p.FallbackFraction <= 0 || p.FallbackFraction > 1 {
		p.FallbackFraction = 0.25
	}
	return p
}

// MPCStrategy re-plans daily: it solves a bounded-horizon LP over the
// ensemble's mean path and executes only the first day's sell amount.
// Later horizon days are discarded, not queued. A failed solve is a
// normal hold, never an abort.
type MPCStrategy struct {
	Params MPCParams

	initialized bool
	params      MPCParams

	// smoothedShadow is the exponentially smoothed dual of the terminal
	// inventory constraint from previous solves. Private to one run.
	smoothedShadow float64
	hasShadow      bool
}

func NewMPCStrategy(params MPCParams) *MPCStrategy {
	return &MPCStrategy{Params: params}
}

func (s *MPCStrategy) Name() string { return "mpc" }

func (s *MPCStrategy) Decide(ctx Context) model.Decision {
	if !s.initialized {
		s.params = s.Params.normalize()
		s.initialized = true
	}
	p := s.params

	if d, ok := forcedExit(ctx); ok {
		return d
	}
	if ctx.Ensemble == nil || ctx.Ensemble.Horizon() == 0 {
		return periodicFallback(ctx, p.FallbackFrequencyDays, p.FallbackFraction)
	}
	if ctx.Inventory <= 0 && ctx.Harvest == nil {
		return model.Hold("empty")
	}

	prices := ctx.Ensemble.MeanPath()
	if len(prices) > p.HorizonDays {
		prices = prices[:p.HorizonDays]
	}
	h := len(prices)

	inflows := make([]float64, h)
	if ctx.Harvest != nil {
		for t := 0; t < h; t++ {
			inflows[t] = ctx.Harvest.Inflow(ctx.Day + 1 + t)
		}
	}

	problem := optimizer.Problem{
		Prices:              prices,
		Inflows:             inflows,
		InitialInventory:    ctx.Inventory,
		StorageRatePerDay:   ctx.Costs.StorageRatePerDay,
		TransactionRate:     ctx.Costs.TransactionRate,
		TerminalValuePerTon: s.terminalValue(prices),
	}

	plan, err := optimizer.Solve(problem)
	if err != nil {
		return model.Hold("solver_failure")
	}
	s.updateShadow(problem, plan.Objective)

	amount := plan.Sells[0]
	if amount > ctx.Inventory {
		amount = ctx.Inventory
	}
	if amount <= 1e-9 {
		return model.Hold("mpc_hold")
	}
	return model.Sell(amount, "mpc_plan")
}

func (s *MPCStrategy) terminalValue(prices []float64) float64 {
	decayed := prices[len(prices)-1] * s.params.DecayFactor
	if s.params.TerminalStrategy == TerminalShadow && s.hasShadow {
		return s.smoothedShadow
	}
	return decayed
}

func (s *MPCStrategy) updateShadow(problem optimizer.Problem, objective float64) {
	if s.params.TerminalStrategy != TerminalShadow {
		return
	}
	dual, err := optimizer.TerminalDual(problem, objective)
	if err != nil {
		return
	}
	if !s.hasShadow {
		s.smoothedShadow = dual
		s.hasShadow = true
		return
	}
	s.smoothedShadow = s.params.Alpha*dual + (1-s.params.Alpha)*s.smoothedShadow
}
