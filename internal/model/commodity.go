package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrConfiguration marks invalid run configuration. Surfaced before any
// simulation starts; never used for runtime conditions.
var ErrConfiguration = errors.New("invalid configuration")

// CostParams defines the economics of holding and selling inventory.
// Units:
// - StorageRatePerDay: fraction of inventory value accrued per day (e.g. 0.00005)
// - TransactionRate: fraction of sale value levied per sale (e.g. 0.0001)
// - MaxHoldingDays: hard liquidation deadline, counted from harvest start
type CostParams struct {
	StorageRatePerDay float64
	TransactionRate   float64
	MaxHoldingDays    int
}

func (p CostParams) Validate() error {
	if p.StorageRatePerDay < 0 {
		return fmt.Errorf("%w: StorageRatePerDay must be >= 0", ErrConfiguration)
	}
	if p.TransactionRate < 0 {
		return fmt.Errorf("%w: TransactionRate must be >= 0", ErrConfiguration)
	}
	if p.MaxHoldingDays <= 0 {
		return fmt.Errorf("%w: MaxHoldingDays must be > 0", ErrConfiguration)
	}
	return nil
}

// CommodityParams bundles everything fixed about one commodity for a run.
type CommodityParams struct {
	Name string
	// Unit describes the price denomination, e.g. "cents/lb".
	Unit string
	// AnnualVolumeTons is the total harvest inflow per harvest year.
	AnnualVolumeTons float64
	Windows          []HarvestWindow
	Costs            CostParams
}

func (p CommodityParams) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: commodity name is required", ErrConfiguration)
	}
	if p.AnnualVolumeTons <= 0 {
		return fmt.Errorf("%w: AnnualVolumeTons must be > 0", ErrConfiguration)
	}
	if len(p.Windows) == 0 {
		return fmt.Errorf("%w: at least one harvest window is required", ErrConfiguration)
	}
	for _, w := range p.Windows {
		if err := w.Validate(); err != nil {
			return err
		}
	}
	return p.Costs.Validate()
}

// StockState captures mutable state.
type StockState struct {
	// Tons on hand. Never negative.
	Tons float64
}

// Stock is a convenience wrapper bundling params + state.
type Stock struct {
	Params CommodityParams
	State  StockState
}

func NewStock(params CommodityParams) (*Stock, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Stock{Params: params}, nil
}

// SaleResult captures what happened in one executed sale.
type SaleResult struct {
	Amount          float64
	GrossProceeds   float64
	TransactionCost float64
	NetProceeds     float64
	TonsStart       float64
	TonsEnd         float64
}

// saleTolerance absorbs float noise when a policy sells "everything".
const saleTolerance = 1e-9

// AddHarvest applies one day's inflow.
func (s *Stock) AddHarvest(tons float64) {
	if tons <= 0 {
		return
	}
	s.State.Tons += tons
}

// AccrueStorage charges one day of storage on the current holding and
// returns the cost. Accrual happens on the inventory held going into the
// day, before that day's sale is netted.
func (s *Stock) AccrueStorage(price float64) float64 {
	return StorageCost(s.State.Tons, price, s.Params.Costs.StorageRatePerDay, 1)
}

// ApplySale executes a sale at the given price, enforcing the inventory
// bound. Oversell is an invariant violation, not something to clamp: it
// means a policy is buggy and the run must halt.
func (s *Stock) ApplySale(amount, price float64) (SaleResult, error) {
	if amount < 0 {
		return SaleResult{}, fmt.Errorf("negative sale amount %.6f", amount)
	}
	if amount > s.State.Tons+saleTolerance {
		return SaleResult{}, fmt.Errorf("sale amount %.6f exceeds inventory %.6f", amount, s.State.Tons)
	}
	amount = math.Min(amount, s.State.Tons)

	res := SaleResult{
		Amount:    amount,
		TonsStart: s.State.Tons,
	}
	res.GrossProceeds = amount * price
	res.TransactionCost = TransactionCost(amount, price, s.Params.Costs.TransactionRate)
	res.NetProceeds = res.GrossProceeds - res.TransactionCost

	s.State.Tons -= amount
	if s.State.Tons < 0 {
		s.State.Tons = 0
	}
	res.TonsEnd = s.State.Tons
	return res, nil
}
