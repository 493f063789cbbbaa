package data

import "harvest-backtest/internal/model"

// CommodityPreset is a built-in commodity configuration served by the
// API and CLI. Values are indicative, not market data.
type CommodityPreset struct {
	ID     string
	Params model.CommodityParams
}

// Presets returns the bundled commodity configurations.
func Presets() []CommodityPreset {
	return []CommodityPreset{
		{
			ID: "coffee",
			Params: model.CommodityParams{
				Name:             "Coffee",
				Unit:             "cents/lb",
				AnnualVolumeTons: 50,
				Windows:          []model.HarvestWindow{{StartDay: 0, EndDay: 152}},
				Costs: model.CostParams{
					StorageRatePerDay: 0.00005,
					TransactionRate:   0.0001,
					MaxHoldingDays:    365,
				},
			},
		},
		{
			ID: "cocoa",
			Params: model.CommodityParams{
				Name:             "Cocoa",
				Unit:             "usd/ton",
				AnnualVolumeTons: 120,
				// Main crop plus mid crop.
				Windows: []model.HarvestWindow{
					{StartDay: 274, EndDay: 364},
					{StartDay: 121, EndDay: 181},
				},
				Costs: model.CostParams{
					StorageRatePerDay: 0.00004,
					TransactionRate:   0.00015,
					MaxHoldingDays:    300,
				},
			},
		},
		{
			ID: "wheat",
			Params: model.CommodityParams{
				Name:             "Wheat",
				Unit:             "cents/bu",
				AnnualVolumeTons: 400,
				Windows:          []model.HarvestWindow{{StartDay: 151, EndDay: 242}},
				Costs: model.CostParams{
					StorageRatePerDay: 0.00003,
					TransactionRate:   0.0001,
					MaxHoldingDays:    365,
				},
			},
		},
	}
}

// PresetByID looks up a bundled commodity.
func PresetByID(id string) (CommodityPreset, bool) {
	for _, p := range Presets() {
		if p.ID == id {
			return p, true
		}
	}
	return CommodityPreset{}, false
}
