package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"harvest-backtest/internal/model"
)

func TestComputePotential(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	data := make([]model.PricePoint, 100)
	for i := range data {
		data[i] = model.PricePoint{Date: start.AddDate(0, 0, i), Price: 100 + float64(i)}
	}
	resp := &model.PriceSeriesResponse{Commodity: "Coffee", Unit: "cents/lb", Data: data}

	schedule, err := model.NewHarvestSchedule([]model.HarvestWindow{{StartDay: 0, EndDay: 99}}, 100)
	require.NoError(t, err)
	costs := model.CostParams{StorageRatePerDay: 0, TransactionRate: 0, MaxHoldingDays: 365}

	p := ComputePotential(resp, schedule, costs)

	assert.Equal(t, "Coffee", p.Commodity)
	assert.Equal(t, 100, p.Count)
	assert.Equal(t, data[0].Date, p.Start)
	assert.Equal(t, data[99].Date, p.End)
	assert.Equal(t, 100.0, p.MinPrice)
	assert.Equal(t, 199.0, p.MaxPrice)
	assert.InDelta(t, 149.5, p.MeanPrice, 1e-9)
	assert.InDelta(t, p.P95Price-p.P05Price, p.SpreadP95P05, 1e-12)

	// Perfect foresight on a rising series with free storage: every ton
	// waits for the final day's price.
	assert.InDelta(t, 100*199.0, p.OracleNet, 1e-3)
}

func TestComputePotential_Empty(t *testing.T) {
	p := ComputePotential(nil, nil, model.CostParams{})
	assert.Equal(t, 0, p.Count)
	assert.Equal(t, 0.0, p.OracleNet)
}

func TestPercentileSorted(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50}
	assert.Equal(t, 10.0, percentileSorted(sorted, 0))
	assert.Equal(t, 50.0, percentileSorted(sorted, 1))
	assert.Equal(t, 30.0, percentileSorted(sorted, 0.5))
	// Linear interpolation between ranks.
	assert.InDelta(t, 15.0, percentileSorted(sorted, 0.125), 1e-12)
	assert.Equal(t, 0.0, percentileSorted(nil, 0.5))
}
