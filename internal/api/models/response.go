package models

import "time"

// BacktestResponse represents the response from a backtest run
type BacktestResponse struct {
	Status  string          `json:"status"`
	Summary BacktestSummary `json:"summary"`
	Ledger  []LedgerRow     `json:"ledger,omitempty"`
}

// BacktestSummary contains aggregated backtest results
type BacktestSummary struct {
	Commodity            string     `json:"commodity"`
	Policy               string     `json:"policy"`
	Days                 int        `json:"days"`
	Window               TimeWindow `json:"window"`
	TradeCount           int        `json:"trade_count"`
	NetEarnings          float64    `json:"net_earnings"`
	TotalTransactionCost float64    `json:"total_transaction_cost"`
	TotalStorageCost     float64    `json:"total_storage_cost"`
	TotalHarvestTons     float64    `json:"total_harvest_tons"`
	TotalSalesTons       float64    `json:"total_sales_tons"`
	FinalInventoryTons   float64    `json:"final_inventory_tons"`
}

// TimeWindow represents a time range
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// LedgerRow represents one day in the backtest ledger
type LedgerRow struct {
	Index           int       `json:"index"`
	Date            time.Time `json:"date"`
	Price           float64   `json:"price"`
	HarvestTons     float64   `json:"harvest_tons"`
	Action          string    `json:"action"` // "SELL", "HOLD"
	Reason          string    `json:"reason"`
	RequestedTons   float64   `json:"requested_tons"`
	SoldTons        float64   `json:"sold_tons"`
	GrossProceeds   float64   `json:"gross_proceeds"`
	TransactionCost float64   `json:"transaction_cost"`
	StorageCost     float64   `json:"storage_cost"`
	NetProceeds     float64   `json:"net_proceeds"`
	InventoryStart  float64   `json:"inventory_start"`
	InventoryEnd    float64   `json:"inventory_end"`
	CumNet          float64   `json:"cum_net"`
}

// CompareBacktestResponse represents the response from a comparison
type CompareBacktestResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation
type ComparisonResult struct {
	Name    string          `json:"name"`
	Summary BacktestSummary `json:"summary"`
}

// RankResponse represents the response from ranking policies
type RankResponse struct {
	Rankings []Ranking `json:"rankings"`
}

// Ranking represents one ranked policy
type Ranking struct {
	Rank        int     `json:"rank"`
	Policy      string  `json:"policy"`
	NetEarnings float64 `json:"net_earnings"`
	TradeCount  int     `json:"trade_count"`
	FinalTons   float64 `json:"final_tons"`
}

// CommodityInfo represents information about a commodity preset
type CommodityInfo struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Unit             string  `json:"unit"`
	AnnualVolumeTons float64 `json:"annual_volume_tons"`
	MaxHoldingDays   int     `json:"max_holding_days"`
}

// PolicyInfo represents information about a policy
type PolicyInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a policy parameter
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "string"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// DatasetInfo represents one dataset file in the data directory
type DatasetInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"` // "prices" or "ensembles"
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
