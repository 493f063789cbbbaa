package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"harvest-backtest/internal/data"
)

// Generates synthetic price and ensemble dataset files with the same JSON
// shape the external forecasting pipeline produces, so the CLI and API can
// be exercised without real market data.
func main() {
	var (
		commodity  = flag.String("commodity", "Coffee", "Commodity name written into the files")
		unit       = flag.String("unit", "cents/lb", "Price unit")
		startDate  = flag.String("start", "2024-01-01", "Series start date (YYYY-MM-DD)")
		days       = flag.Int("days", 365, "Number of daily price points")
		startPrice = flag.Float64("price", 180, "Starting price level")
		drift      = flag.Float64("drift", 0.0002, "Daily GBM drift")
		vol        = flag.Float64("vol", 0.012, "Daily GBM volatility")
		everyDays  = flag.Int("forecast-every", 7, "Days between forecast ensembles")
		samples    = flag.Int("samples", 100, "Sample paths per ensemble")
		horizon    = flag.Int("horizon", 30, "Forecast horizon in days")
		seed       = flag.Int64("seed", 42, "RNG seed")
		outDir     = flag.String("out", "datasets", "Output directory")
	)
	flag.Parse()

	start, err := time.Parse("2006-01-02", *startDate)
	if err != nil {
		log.Fatalf("invalid --start date: %v", err)
	}

	series := data.GeneratePriceSeries(data.SyntheticConfig{
		Commodity:  *commodity,
		Unit:       *unit,
		Start:      start,
		Days:       *days,
		StartPrice: *startPrice,
		Drift:      *drift,
		Vol:        *vol,
		Seed:       *seed,
	})

	ensembles := data.GenerateEnsembleFile(series, *everyDays, *samples, *horizon, *vol, *seed+1)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("failed to create output dir: %v", err)
	}

	slug := slugify(*commodity)
	pricePath := filepath.Join(*outDir, fmt.Sprintf("%s_prices.json", slug))
	ensemblePath := filepath.Join(*outDir, fmt.Sprintf("%s_ensembles.json", slug))

	if err := writeJSON(pricePath, series); err != nil {
		log.Fatalf("failed to write prices: %v", err)
	}
	if err := writeJSON(ensemblePath, ensembles); err != nil {
		log.Fatalf("failed to write ensembles: %v", err)
	}

	fmt.Printf("Wrote %d price points to %s\n", len(series.Data), pricePath)
	fmt.Printf("Wrote %d forecast ensembles (%dx%d) to %s\n",
		len(ensembles.Forecasts), *samples, *horizon, ensemblePath)
}

func writeJSON(path string, v any) error {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

func slugify(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ' || r == '-' || r == '_':
			out = append(out, '_')
		}
	}
	return string(out)
}
