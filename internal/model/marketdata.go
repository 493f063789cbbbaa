package model

import "time"

// PriceSeriesResponse matches the JSON shape of a price dataset file.
//
// Example:
// {
//   "commodity": "Coffee",
//   "unit": "cents/lb",
//   "data": [ {"date": "...", "price": 182.5}, ... ]
// }
type PriceSeriesResponse struct {
	Commodity string       `json:"commodity"`
	Unit      string       `json:"unit"`
	Data      []PricePoint `json:"data"`
}

// PricePoint represents one daily observation. Dates are RFC3339 strings
// in the JSON; gaps between trading days are tolerated, simulation days
// count series positions.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// Prices extracts the price column in series order.
func (r *PriceSeriesResponse) Prices() []float64 {
	out := make([]float64, len(r.Data))
	for i, p := range r.Data {
		out[i] = p.Price
	}
	return out
}

// EnsembleFile matches the JSON shape of a forecast ensemble dataset:
// one sample_count x horizon_days matrix per forecast date.
type EnsembleFile struct {
	Commodity string          `json:"commodity"`
	Forecasts []EnsembleEntry `json:"forecasts"`
}

type EnsembleEntry struct {
	Date    time.Time   `json:"date"`
	Samples [][]float64 `json:"samples"`
}
