package policy

import (
	"time"

	"harvest-backtest/internal/model"
)

// NeverSold is the DaysSinceLastSale value before any sale has happened.
// Large enough to clear any frequency or cooldown gate.
const NeverSold = 1 << 20

// Context is the read-only view of simulation state handed to a policy
// each day. The engine owns the underlying state; policies must not
// mutate History or Ensemble.
type Context struct {
	// Day is the 0-based simulation day (series position). "Days" in all
	// gates below count series positions, not calendar gaps.
	Day  int
	Date time.Time

	Price     float64
	Inventory float64

	// History holds every price up to and including today.
	History []float64

	// Ensemble may be nil on days without a forecast.
	Ensemble *model.Ensemble

	// HoldingDays counts days since the current harvest season began;
	// -1 before any inflow has occurred.
	HoldingDays int

	// DaysSinceLastSale is NeverSold until the first executed sale.
	DaysSinceLastSale int

	Costs model.CostParams

	// Harvest gives forward inflow visibility; only the MPC policy uses it.
	Harvest *model.HarvestSchedule
}

// Policy decides, once per simulated day, how much inventory to sell.
type Policy interface {
	Name() string
	Decide(ctx Context) model.Decision
}

// forcedExit is the cross-cutting liquidation deadline check. Every
// policy applies it before any of its own logic: once the holding age
// reaches MaxHoldingDays all remaining inventory is sold, no exceptions.
func forcedExit(ctx Context) (model.Decision, bool) {
	if ctx.HoldingDays < 0 || ctx.HoldingDays < ctx.Costs.MaxHoldingDays {
		return model.Decision{}, false
	}
	if ctx.Inventory <= 0 {
		return model.Hold("forced_liquidation"), true
	}
	return model.Sell(ctx.Inventory, "forced_liquidation"), true
}

// underCooldown reports whether the policy is still inside its post-sale
// cooldown window.
func underCooldown(ctx Context, cooldownDays int) bool {
	return cooldownDays > 0 && ctx.DaysSinceLastSale < cooldownDays
}
