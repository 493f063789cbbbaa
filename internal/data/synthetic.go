package data

import (
	"math"
	"math/rand"
	"time"

	"harvest-backtest/internal/model"
)

// SyntheticConfig drives the offline dataset generator used by the demo
// and manual testing. Real datasets come from the external pipeline;
// this produces files of the same shape.
type SyntheticConfig struct {
	Commodity  string
	Unit       string
	Start      time.Time
	Days       int
	StartPrice float64
	// Drift and Vol are daily GBM parameters.
	Drift float64
	Vol   float64
	Seed  int64
}

func (c SyntheticConfig) normalize() SyntheticConfig {
	if c.Commodity == "" {
		c.Commodity = "Coffee"
	}
	if c.Unit == "" {
		c.Unit = "cents/lb"
	}
	if c.Start.IsZero() {
		c.Start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	if c.Days <= 0 {
		c.Days = 365
	}
	if c.StartPrice <= 0 {
		c.StartPrice = 180
	}
	if c.Vol <= 0 {
		c.Vol = 0.01
	}
	return c
}

// GeneratePriceSeries draws a single GBM price path, one point per day.
func GeneratePriceSeries(cfg SyntheticConfig) *model.PriceSeriesResponse {
	cfg = cfg.normalize()
	rng := rand.New(rand.NewSource(cfg.Seed))

	data := make([]model.PricePoint, cfg.Days)
	price := cfg.StartPrice
	for i := 0; i < cfg.Days; i++ {
		data[i] = model.PricePoint{
			Date:  cfg.Start.AddDate(0, 0, i),
			Price: price,
		}
		price *= math.Exp(cfg.Drift - cfg.Vol*cfg.Vol/2 + cfg.Vol*rng.NormFloat64())
	}

	return &model.PriceSeriesResponse{
		Commodity: cfg.Commodity,
		Unit:      cfg.Unit,
		Data:      data,
	}
}

// GenerateEnsembleFile produces a forecast ensemble every `everyDays`
// series days: `samples` GBM continuations of `horizon` days from each
// forecast date's price.
func GenerateEnsembleFile(series *model.PriceSeriesResponse, everyDays, samples, horizon int, vol float64, seed int64) *model.EnsembleFile {
	if everyDays <= 0 {
		everyDays = 7
	}
	if samples <= 0 {
		samples = 100
	}
	if horizon <= 0 {
		horizon = 30
	}
	if vol <= 0 {
		vol = 0.01
	}
	rng := rand.New(rand.NewSource(seed))

	file := &model.EnsembleFile{Commodity: series.Commodity}
	for i := 0; i < len(series.Data); i += everyDays {
		entry := model.EnsembleEntry{
			Date:    series.Data[i].Date,
			Samples: make([][]float64, samples),
		}
		for s := 0; s < samples; s++ {
			path := make([]float64, horizon)
			price := series.Data[i].Price
			for h := 0; h < horizon; h++ {
				price *= math.Exp(-vol*vol/2 + vol*rng.NormFloat64())
				path[h] = price
			}
			entry.Samples[s] = path
		}
		file.Forecasts = append(file.Forecasts, entry)
	}
	return file
}
