package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"harvest-backtest/internal/analysis"
	"harvest-backtest/internal/backtest"
	"harvest-backtest/internal/config"
	"harvest-backtest/internal/data"
	"harvest-backtest/internal/model"
	"harvest-backtest/internal/policy"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "backtest":
		cmdBacktest(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	case "compare":
		cmdCompare(os.Args[2:])
	case "potential":
		cmdPotential(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli backtest --prices datasets/coffee_prices.json --config examples/config.yaml --out results/ledger.csv")
	fmt.Println("  cli rank --prices datasets/coffee_prices.json --commodity coffee")
	fmt.Println("  cli compare --prices datasets/coffee_prices.json --configs examples/config.yaml,examples/mpc.yaml")
	fmt.Println("  cli potential --prices datasets/coffee_prices.json --commodity coffee")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - backtest outputs a CSV ledger with action=SELL/HOLD per day")
	fmt.Println("  - rank backtests every registered policy over the same data")
	fmt.Println("  - potential computes a perfect-foresight upper bound for a dataset")
}

func cmdBacktest(args []string) {
	fs := flag.NewFlagSet("backtest", flag.ExitOnError)
	pricesPath := fs.String("prices", "", "Path to price series JSON")
	ensemblePath := fs.String("ensembles", "", "Optional path to ensemble forecast JSON")
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "results/ledger.csv", "Output CSV path")
	n := fs.Int("n", 0, "Optional: limit to first N days (0=all)")
	_ = fs.Parse(args)

	if *pricesPath == "" || *cfgPath == "" {
		fmt.Println("--prices and --config are required")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		panic(err)
	}

	input, stock, err := loadRun(*pricesPath, *ensemblePath, cfg.Commodity.ToModelParams(), *n)
	if err != nil {
		panic(err)
	}

	pol, err := policy.Build(cfg.Policy.Name, cfg.Policy.Params)
	if err != nil {
		panic(err)
	}

	engine := backtest.New()
	res, err := engine.Run(input, stock, pol)
	if err != nil {
		panic(err)
	}

	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := backtest.WriteLedgerCSV(*outPath, res.Ledger); err != nil {
		panic(err)
	}

	s := res.Summary
	fmt.Printf("Wrote %d rows to %s\n", len(res.Ledger), *outPath)
	fmt.Printf("Policy=%s Trades=%d Net=$%.2f Storage=$%.2f Tx=$%.2f Final=%.3ft\n",
		s.Policy, s.TradeCount, s.NetEarnings, s.TotalStorageCost, s.TotalTransactionCost, s.FinalInventory)
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	pricesPath := fs.String("prices", "", "Path to price series JSON")
	ensemblePath := fs.String("ensembles", "", "Optional path to ensemble forecast JSON")
	commodityID := fs.String("commodity", "coffee", "Commodity preset ID")
	_ = fs.Parse(args)

	if *pricesPath == "" {
		fmt.Println("--prices is required")
		os.Exit(2)
	}

	preset, ok := data.PresetByID(*commodityID)
	if !ok {
		fmt.Printf("unknown commodity: %q\n", *commodityID)
		os.Exit(2)
	}

	input, _, err := loadRun(*pricesPath, *ensemblePath, preset.Params, 0)
	if err != nil {
		panic(err)
	}

	specs := make([]analysis.PolicySpec, 0)
	for _, name := range policy.Names() {
		specs = append(specs, analysis.PolicySpec{Name: name})
	}

	ranked, err := analysis.RankPolicies(input, preset.Params, specs)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%-4s %-20s %-8s %-12s %-10s %-10s %-10s\n", "rank", "policy", "trades", "net$", "storage$", "tx$", "final_t")
	for i, r := range ranked {
		fmt.Printf("%-4d %-20s %-8d %-12.2f %-10.2f %-10.2f %-10.3f\n",
			i+1,
			r.Policy,
			r.TradeCount,
			r.NetEarnings,
			r.TotalStorageCost,
			r.TotalTransactionCost,
			r.FinalInventory,
		)
	}
}

func cmdCompare(args []string) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)
	pricesPath := fs.String("prices", "", "Path to price series JSON")
	ensemblePath := fs.String("ensembles", "", "Optional path to ensemble forecast JSON")
	cfgPaths := fs.String("configs", "", "Comma-separated YAML config paths")
	_ = fs.Parse(args)

	if *pricesPath == "" || *cfgPaths == "" {
		fmt.Println("--prices and --configs are required")
		os.Exit(2)
	}

	fmt.Printf("%-30s %-20s %-8s %-12s %-10s\n", "config", "policy", "trades", "net$", "final_t")
	for _, p := range splitPaths(*cfgPaths) {
		cfg, err := config.Load(p)
		if err != nil {
			panic(err)
		}

		input, stock, err := loadRun(*pricesPath, *ensemblePath, cfg.Commodity.ToModelParams(), 0)
		if err != nil {
			panic(err)
		}

		pol, err := policy.Build(cfg.Policy.Name, cfg.Policy.Params)
		if err != nil {
			panic(err)
		}

		res, err := backtest.New().Run(input, stock, pol)
		if err != nil {
			panic(err)
		}

		s := res.Summary
		fmt.Printf("%-30s %-20s %-8d %-12.2f %-10.3f\n",
			filepath.Base(p), s.Policy, s.TradeCount, s.NetEarnings, s.FinalInventory)
	}
}

func cmdPotential(args []string) {
	fs := flag.NewFlagSet("potential", flag.ExitOnError)
	pricesPath := fs.String("prices", "", "Path to price series JSON")
	commodityID := fs.String("commodity", "coffee", "Commodity preset ID")
	_ = fs.Parse(args)

	if *pricesPath == "" {
		fmt.Println("--prices is required")
		os.Exit(2)
	}

	preset, ok := data.PresetByID(*commodityID)
	if !ok {
		fmt.Printf("unknown commodity: %q\n", *commodityID)
		os.Exit(2)
	}

	resp, err := data.LoadPriceSeriesJSON(*pricesPath)
	if err != nil {
		panic(err)
	}
	schedule, err := model.NewHarvestSchedule(preset.Params.Windows, preset.Params.AnnualVolumeTons)
	if err != nil {
		panic(err)
	}

	p := analysis.ComputePotential(resp, schedule, preset.Params.Costs)
	fmt.Printf("commodity=%s count=%d window=%s..%s\n",
		p.Commodity, p.Count, p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"))
	fmt.Printf("price min/mean/max = %.2f / %.2f / %.2f  p95-p05 spread = %.2f\n",
		p.MinPrice, p.MeanPrice, p.MaxPrice, p.SpreadP95P05)
	fmt.Printf("oracle net (perfect foresight upper bound) = $%.2f\n", p.OracleNet)
}

func loadRun(pricesPath, ensemblePath string, params model.CommodityParams, n int) (backtest.Input, *model.Stock, error) {
	resp, err := data.LoadPriceSeriesJSON(pricesPath)
	if err != nil {
		return backtest.Input{}, nil, err
	}
	series := resp.Data
	if n > 0 && n < len(series) {
		series = series[:n]
	}

	ensembles := map[int]*model.Ensemble{}
	if ensemblePath != "" {
		file, err := data.LoadEnsembleJSON(ensemblePath)
		if err != nil {
			return backtest.Input{}, nil, err
		}
		ensembles, err = data.EnsemblesByDay(series, file)
		if err != nil {
			return backtest.Input{}, nil, err
		}
	}

	schedule, err := model.NewHarvestSchedule(params.Windows, params.AnnualVolumeTons)
	if err != nil {
		return backtest.Input{}, nil, err
	}
	stock, err := model.NewStock(params)
	if err != nil {
		return backtest.Input{}, nil, err
	}

	return backtest.Input{Series: series, Ensembles: ensembles, Schedule: schedule}, stock, nil
}

func splitPaths(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
