package backtest

import (
	"time"

	"harvest-backtest/internal/model"
)

// LedgerRow is one row of per-day output.
// This is the primary artifact for "what happened" in a backtest.
type LedgerRow struct {
	Index int
	Date  time.Time

	Price float64

	HarvestTons float64

	Action model.Action
	Reason string

	RequestedTons float64
	SoldTons      float64

	GrossProceeds   float64
	TransactionCost float64
	StorageCost     float64
	NetProceeds     float64

	InventoryStart float64
	InventoryEnd   float64

	CumNet float64
}

// Summary aggregates a run for the persistence/reporting collaborators.
type Summary struct {
	Commodity string
	Policy    string

	Days       int
	StartDate  time.Time
	EndDate    time.Time
	TradeCount int

	NetEarnings          float64
	TotalTransactionCost float64
	TotalStorageCost     float64

	TotalHarvestTons float64
	TotalSalesTons   float64
	FinalInventory   float64
}

type Result struct {
	Ledger  []LedgerRow
	Summary Summary
}
