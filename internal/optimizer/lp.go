// Package optimizer formulates and solves the bounded-horizon selling
// problem as a linear program in standard form.
//
// Variables, 2H of them for an H-day horizon: sell[0..H-1] and
// end-of-day inventory inv[0..H-1]. One equality constraint per day
// enforces inventory balance,
//
//	sell[t] + inv[t] - inv[t-1] = inflow[t]
//
// with the current on-hand inventory standing in for inv[-1]. All
// variables are >= 0 (no short selling, no negative stock).
//
// The objective maximizes net sale proceeds minus storage accrual plus a
// terminal value on inv[H-1]. Without the terminal term the optimum
// always drains inventory to zero by the end of the window, because
// carried stock is worthless past the horizon; the terminal value is
// what keeps the receding-horizon controller from over-selling.
package optimizer

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"harvest-backtest/internal/model"
)

// ErrSolver marks an infeasible or failed solve. Callers treat it as a
// normal single-day outcome (hold), never as a run abort.
var ErrSolver = errors.New("solver failure")

// Problem is one day's horizon formulation.
type Problem struct {
	// Prices is the forecast price per horizon day.
	Prices []float64
	// Inflows is the harvest increment per horizon day.
	Inflows []float64
	// InitialInventory is the on-hand stock at the start of the window.
	InitialInventory float64

	StorageRatePerDay float64
	TransactionRate   float64

	// TerminalValuePerTon is the per-unit bonus on inventory remaining
	// at the end of the window.
	TerminalValuePerTon float64
}

func (p Problem) validate() error {
	if len(p.Prices) == 0 {
		return fmt.Errorf("%w: empty horizon", model.ErrConfiguration)
	}
	if len(p.Inflows) != len(p.Prices) {
		return fmt.Errorf("%w: %d inflows for %d prices", model.ErrConfiguration, len(p.Inflows), len(p.Prices))
	}
	if p.InitialInventory < 0 {
		return fmt.Errorf("%w: negative initial inventory", model.ErrConfiguration)
	}
	return nil
}

// Plan is a solved horizon schedule. Only Sells[0] is ever executed; the
// rest is discarded when the controller re-solves tomorrow.
type Plan struct {
	Sells     []float64
	Inventory []float64
	// Objective is the maximized net value over the window.
	Objective float64
}

// Solve runs the simplex method on the standard-form program.
func Solve(p Problem) (*Plan, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	h := len(p.Prices)

	// Minimize c^T x: negate revenue, keep storage as a positive cost.
	c := make([]float64, 2*h)
	for t := 0; t < h; t++ {
		c[t] = -p.Prices[t] * (1 - p.TransactionRate)
		c[h+t] = p.Prices[t] * p.StorageRatePerDay
	}
	c[2*h-1] -= p.TerminalValuePerTon

	a := mat.NewDense(h, 2*h, nil)
	b := make([]float64, h)
	for t := 0; t < h; t++ {
		a.Set(t, t, 1)
		a.Set(t, h+t, 1)
		if t > 0 {
			a.Set(t, h+t-1, -1)
		}
		b[t] = p.Inflows[t]
	}
	b[0] += p.InitialInventory

	optF, optX, err := lp.Simplex(c, a, b, 0, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSolver, err)
	}

	return &Plan{
		Sells:     optX[:h],
		Inventory: optX[h:],
		Objective: -optF,
	}, nil
}

// dualEpsilon perturbs the final balance constraint when estimating the
// terminal dual by finite difference.
const dualEpsilon = 1e-4

// TerminalDual estimates the marginal value of one extra ton arriving on
// the window's last day: the dual of the terminal inventory-balance
// constraint. The simplex solver does not expose duals, so it is
// measured directly by re-solving with the last right-hand side nudged.
func TerminalDual(p Problem, baseObjective float64) (float64, error) {
	perturbed := p
	perturbed.Inflows = append([]float64(nil), p.Inflows...)
	perturbed.Inflows[len(perturbed.Inflows)-1] += dualEpsilon

	plan, err := Solve(perturbed)
	if err != nil {
		return 0, err
	}
	return (plan.Objective - baseObjective) / dualEpsilon, nil
}
