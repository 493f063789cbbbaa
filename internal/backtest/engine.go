package backtest

import (
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"harvest-backtest/internal/model"
	"harvest-backtest/internal/policy"
)

// ErrInvariant marks a state-invariant violation: oversell, negative
// inventory, broken mass balance. These indicate a bug in policy or cost
// logic and halt the run with a diagnostic instead of silently clamping.
var ErrInvariant = errors.New("state invariant violation")

// massTolerance bounds accepted float drift in the mass-balance check.
const massTolerance = 1e-6

// Input bundles the read-only data for one run. Ensembles are keyed by
// simulation day index; days without a forecast simply have no entry.
type Input struct {
	Series    []model.PricePoint
	Ensembles map[int]*model.Ensemble
	Schedule  *model.HarvestSchedule
}

// Engine drives the daily simulation loop. The loop is strictly
// sequential: each day's decision depends on the previous day's state.
// Concurrency belongs one level up, across independent runs.
type Engine struct {
	logger zerolog.Logger
}

func New() *Engine {
	return &Engine{logger: zerolog.Nop()}
}

func NewWithLogger(logger zerolog.Logger) *Engine {
	return &Engine{logger: logger}
}

// Run executes a backtest of one policy over one price series.
func (e *Engine) Run(input Input, stock *model.Stock, pol policy.Policy) (*Result, error) {
	if stock == nil {
		return nil, fmt.Errorf("stock is nil")
	}
	if pol == nil {
		return nil, fmt.Errorf("policy is nil")
	}
	if input.Schedule == nil {
		return nil, fmt.Errorf("harvest schedule is nil")
	}
	if len(input.Series) == 0 {
		return nil, fmt.Errorf("no price data")
	}

	ledger := make([]LedgerRow, 0, len(input.Series))
	history := make([]float64, 0, len(input.Series))
	costs := stock.Params.Costs

	var (
		cumHarvest float64
		cumSales   float64
		cumNet     float64
		totalTx    float64
		totalStore float64
		trades     int

		lastSaleDay  = -1
		harvestStart = -1
	)

	for i, pt := range input.Series {
		inflow := input.Schedule.Inflow(i)
		stock.AddHarvest(inflow)
		cumHarvest += inflow
		if harvestStart < 0 && inflow > 0 {
			harvestStart = i
		}
		holdingDays := -1
		if harvestStart >= 0 {
			holdingDays = i - harvestStart
		}

		// Storage accrues on the inventory held going into the day,
		// after inflow and before any sale is netted.
		storage := stock.AccrueStorage(pt.Price)
		totalStore += storage
		cumNet -= storage

		history = append(history, pt.Price)
		invStart := stock.State.Tons

		daysSinceSale := policy.NeverSold
		if lastSaleDay >= 0 {
			daysSinceSale = i - lastSaleDay
		}

		decision := pol.Decide(policy.Context{
			Day:               i,
			Date:              pt.Date,
			Price:             pt.Price,
			Inventory:         invStart,
			History:           history,
			Ensemble:          input.Ensembles[i],
			HoldingDays:       holdingDays,
			DaysSinceLastSale: daysSinceSale,
			Costs:             costs,
			Harvest:           input.Schedule,
		})

		row := LedgerRow{
			Index:          i,
			Date:           pt.Date,
			Price:          pt.Price,
			HarvestTons:    inflow,
			Action:         decision.Action,
			Reason:         decision.Reason,
			RequestedTons:  decision.Amount,
			StorageCost:    storage,
			InventoryStart: invStart,
		}

		if decision.Action == model.ActionSell && decision.Amount > 0 {
			res, err := stock.ApplySale(decision.Amount, pt.Price)
			if err != nil {
				return nil, fmt.Errorf("%w: day %d (%s): %v", ErrInvariant, i, pol.Name(), err)
			}
			cumSales += res.Amount
			cumNet += res.NetProceeds
			totalTx += res.TransactionCost
			trades++
			lastSaleDay = i

			row.SoldTons = res.Amount
			row.GrossProceeds = res.GrossProceeds
			row.TransactionCost = res.TransactionCost
			row.NetProceeds = res.NetProceeds
		}

		row.InventoryEnd = stock.State.Tons
		row.CumNet = cumNet
		ledger = append(ledger, row)

		if stock.State.Tons < 0 {
			return nil, fmt.Errorf("%w: day %d: negative inventory %.9f", ErrInvariant, i, stock.State.Tons)
		}
		if math.Abs(cumHarvest-(cumSales+stock.State.Tons)) > massTolerance {
			return nil, fmt.Errorf("%w: day %d: mass balance broken: harvest %.9f != sales %.9f + inventory %.9f",
				ErrInvariant, i, cumHarvest, cumSales, stock.State.Tons)
		}
		if holdingDays >= costs.MaxHoldingDays {
			if stock.State.Tons > massTolerance {
				return nil, fmt.Errorf("%w: day %d: %.6f tons held past the liquidation deadline",
					ErrInvariant, i, stock.State.Tons)
			}
			// The holding clock restarts with the next inflow.
			harvestStart = -1
		}
	}

	summary := Summary{
		Commodity:            stock.Params.Name,
		Policy:               pol.Name(),
		Days:                 len(input.Series),
		StartDate:            input.Series[0].Date,
		EndDate:              input.Series[len(input.Series)-1].Date,
		TradeCount:           trades,
		NetEarnings:          cumNet,
		TotalTransactionCost: totalTx,
		TotalStorageCost:     totalStore,
		TotalHarvestTons:     cumHarvest,
		TotalSalesTons:       cumSales,
		FinalInventory:       stock.State.Tons,
	}

	e.logger.Info().
		Str("commodity", summary.Commodity).
		Str("policy", summary.Policy).
		Int("days", summary.Days).
		Int("trades", summary.TradeCount).
		Float64("net_earnings", summary.NetEarnings).
		Float64("final_inventory", summary.FinalInventory).
		Msg("backtest complete")

	return &Result{Ledger: ledger, Summary: summary}, nil
}
