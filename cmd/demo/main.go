package main

import (
	"flag"
	"fmt"
	"time"

	"harvest-backtest/internal/backtest"
	"harvest-backtest/internal/config"
	"harvest-backtest/internal/data"
	"harvest-backtest/internal/model"
	"harvest-backtest/internal/policy"
)

// Demo:
// - Generate a synthetic price path and forecast ensembles
// - Set up the coffee commodity preset
// - Run one rule-based and one forecast-aware policy to show how the
//   pieces fit together
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	days := flag.Int("days", 365, "Number of days to simulate")
	seed := flag.Int64("seed", 7, "RNG seed for the synthetic data")
	outCSV := flag.String("out", "", "Optional path to write ledger CSV (e.g. results/ledger.csv)")
	flag.Parse()

	series := data.GeneratePriceSeries(data.SyntheticConfig{
		Days: *days,
		Seed: *seed,
	})
	ensembleFile := data.GenerateEnsembleFile(series, 7, 100, 30, 0.012, *seed+1)

	// Defaults (can be overridden via --config).
	preset, _ := data.PresetByID("coffee")
	params := preset.Params
	polName := "breakout-forecast"
	polParams := map[string]any{}

	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		params = cfg.Commodity.ToModelParams()
		polName = cfg.Policy.Name
		polParams = cfg.Policy.Params
	}

	schedule, err := model.NewHarvestSchedule(params.Windows, params.AnnualVolumeTons)
	if err != nil {
		panic(err)
	}
	ensembles, err := data.EnsemblesByDay(series.Data, ensembleFile)
	if err != nil {
		panic(err)
	}
	stock, err := model.NewStock(params)
	if err != nil {
		panic(err)
	}
	pol, err := policy.Build(polName, polParams)
	if err != nil {
		panic(err)
	}

	input := backtest.Input{Series: series.Data, Ensembles: ensembles, Schedule: schedule}

	engine := backtest.New()
	result, err := engine.Run(input, stock, pol)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Simulated %d days for %s (%s)\n", len(series.Data), params.Name, params.Unit)
	fmt.Printf("Policy=%s\n\n", pol.Name())

	shown := 0
	for _, r := range result.Ledger {
		if r.Action != model.ActionSell {
			continue
		}
		fmt.Printf(
			"%s price=%7.2f  sold=%7.3ft  reason=%-24s  net=%9.2f  inv=%.3f->%.3f  cum=%10.2f\n",
			r.Date.Format(time.DateOnly),
			r.Price,
			r.SoldTons,
			r.Reason,
			r.NetProceeds,
			r.InventoryStart,
			r.InventoryEnd,
			r.CumNet,
		)
		shown++
		if shown >= 20 {
			break
		}
	}

	if *outCSV != "" {
		if err := backtest.WriteLedgerCSV(*outCSV, result.Ledger); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote CSV: %s\n", *outCSV)
	}

	s := result.Summary
	fmt.Printf("\nDone. Trades=%d Net=$%.2f Storage=$%.2f Final inventory=%.3ft\n",
		s.TradeCount, s.NetEarnings, s.TotalStorageCost, s.FinalInventory)
}
