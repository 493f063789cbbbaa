package analysis

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"harvest-backtest/internal/backtest"
	"harvest-backtest/internal/model"
	"harvest-backtest/internal/policy"
)

// PolicyRank is one policy's full-run summary, ordered by net earnings.
type PolicyRank struct {
	backtest.Summary
}

// PolicySpec names a policy variant to rank, with optional params.
type PolicySpec struct {
	Name   string
	Params map[string]any
}

// RankPolicies backtests each policy over the same input and sorts
// descending by net earnings. Runs share only the read-only input; each
// gets a private stock and policy instance, so they execute in parallel.
func RankPolicies(input backtest.Input, commodity model.CommodityParams, specs []PolicySpec) ([]PolicyRank, error) {
	results := make([]PolicyRank, len(specs))

	var g errgroup.Group
	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			pol, err := policy.Build(spec.Name, spec.Params)
			if err != nil {
				return err
			}
			stock, err := model.NewStock(commodity)
			if err != nil {
				return err
			}
			res, err := backtest.New().Run(input, stock, pol)
			if err != nil {
				return err
			}
			results[i] = PolicyRank{Summary: res.Summary}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].NetEarnings > results[j].NetEarnings
	})
	return results, nil
}
