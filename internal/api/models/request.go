package models

// BacktestRequest represents the request body for running a backtest
type BacktestRequest struct {
	DataSource DataSourceConfig `json:"data_source" binding:"required"`
	Config     BacktestConfig   `json:"config" binding:"required"`
	Options    BacktestOptions  `json:"options,omitempty"`
}

// DataSourceConfig names dataset files inside the server's data directory
type DataSourceConfig struct {
	PriceFile string `json:"price_file" binding:"required"`
	// EnsembleFile is optional; without it only rule-based behavior and
	// the forecast policies' fallbacks are exercised.
	EnsembleFile string `json:"ensemble_file,omitempty"`
}

// BacktestConfig contains commodity and policy configuration
type BacktestConfig struct {
	// CommodityID selects a bundled preset; Commodity fields override it.
	CommodityID string          `json:"commodity_id,omitempty"`
	Commodity   CommodityConfig `json:"commodity,omitempty"`
	Policy      PolicyConfig    `json:"policy" binding:"required"`
}

// CommodityConfig defines commodity parameters
type CommodityConfig struct {
	Name              string         `json:"name,omitempty"`
	Unit              string         `json:"unit,omitempty"`
	AnnualVolumeTons  float64        `json:"annual_volume_tons,omitempty"`
	HarvestWindows    []WindowConfig `json:"harvest_windows,omitempty"`
	StorageRatePerDay float64        `json:"storage_rate_per_day,omitempty"`
	TransactionRate   float64        `json:"transaction_rate,omitempty"`
	MaxHoldingDays    int            `json:"max_holding_days,omitempty"`
}

// WindowConfig is a harvest window in day-of-year terms
type WindowConfig struct {
	StartDay int `json:"start_day"`
	EndDay   int `json:"end_day"`
}

// PolicyConfig defines a policy and its parameters
type PolicyConfig struct {
	Name   string         `json:"name" binding:"required"`
	Params map[string]any `json:"params,omitempty"`
}

// BacktestOptions contains optional backtest parameters
type BacktestOptions struct {
	LimitDays     int  `json:"limit_days,omitempty"`     // 0 = all
	IncludeLedger bool `json:"include_ledger,omitempty"` // default: false
}

// CompareBacktestRequest represents a request to compare multiple backtests
type CompareBacktestRequest struct {
	DataSource DataSourceConfig    `json:"data_source" binding:"required"`
	BaseConfig BacktestConfig      `json:"base_config" binding:"required"`
	Variations []BacktestVariation `json:"variations" binding:"required"`
}

// BacktestVariation defines a variation to test
type BacktestVariation struct {
	Name   string         `json:"name" binding:"required"`
	Config BacktestConfig `json:"config" binding:"required"`
}

// RankRequest represents a request to rank policies over one dataset
type RankRequest struct {
	PriceFile    string `form:"price_file" binding:"required"`
	EnsembleFile string `form:"ensemble_file,omitempty"`
	CommodityID  string `form:"commodity_id,omitempty"`
	Limit        int    `form:"limit,omitempty"` // default: all
}
