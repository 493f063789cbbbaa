package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"harvest-backtest/internal/backtest"
	"harvest-backtest/internal/model"
)

func rankFixture(t *testing.T) (backtest.Input, model.CommodityParams) {
	t.Helper()
	params := model.CommodityParams{
		Name:             "Coffee",
		Unit:             "cents/lb",
		AnnualVolumeTons: 50,
		Windows:          []model.HarvestWindow{{StartDay: 0, EndDay: 152}},
		Costs: model.CostParams{
			StorageRatePerDay: 0.00005,
			TransactionRate:   0.0001,
			MaxHoldingDays:    365,
		},
	}
	schedule, err := model.NewHarvestSchedule(params.Windows, params.AnnualVolumeTons)
	require.NoError(t, err)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make([]model.PricePoint, 90)
	for i := range series {
		// A gentle sawtooth so strategies actually diverge.
		price := 100 + float64(i%20)
		series[i] = model.PricePoint{Date: start.AddDate(0, 0, i), Price: price}
	}
	return backtest.Input{Series: series, Schedule: schedule}, params
}

func TestRankPolicies(t *testing.T) {
	input, params := rankFixture(t)

	specs := []PolicySpec{
		{Name: "schedule"},
		{Name: "fraction"},
		{Name: "breakout"},
		{Name: "crossover"},
	}
	ranked, err := RankPolicies(input, params, specs)
	require.NoError(t, err)
	require.Len(t, ranked, 4)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].NetEarnings, ranked[i].NetEarnings, "descending by net earnings")
	}
	for _, r := range ranked {
		assert.Equal(t, "Coffee", r.Commodity)
		assert.Equal(t, 90, r.Days)
	}
}

func TestRankPolicies_UnknownPolicy(t *testing.T) {
	input, params := rankFixture(t)

	_, err := RankPolicies(input, params, []PolicySpec{{Name: "martingale"}})
	require.ErrorIs(t, err, model.ErrConfiguration)
}

func TestRankPolicies_ParamsApply(t *testing.T) {
	input, params := rankFixture(t)

	ranked, err := RankPolicies(input, params, []PolicySpec{
		{Name: "fraction", Params: map[string]any{"fraction": 0.5, "frequency_days": 3}},
	})
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Greater(t, ranked[0].TradeCount, 10)
}
