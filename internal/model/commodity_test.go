package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() CommodityParams {
	return CommodityParams{
		Name:             "Coffee",
		Unit:             "cents/lb",
		AnnualVolumeTons: 50,
		Windows:          []HarvestWindow{{StartDay: 0, EndDay: 152}},
		Costs: CostParams{
			StorageRatePerDay: 0.00005,
			TransactionRate:   0.0001,
			MaxHoldingDays:    365,
		},
	}
}

func TestNewStock_ValidatesParams(t *testing.T) {
	_, err := NewStock(testParams())
	require.NoError(t, err)

	bad := testParams()
	bad.AnnualVolumeTons = 0
	_, err = NewStock(bad)
	require.ErrorIs(t, err, ErrConfiguration)

	bad = testParams()
	bad.Costs.MaxHoldingDays = 0
	_, err = NewStock(bad)
	require.ErrorIs(t, err, ErrConfiguration)

	bad = testParams()
	bad.Windows = nil
	_, err = NewStock(bad)
	require.ErrorIs(t, err, ErrConfiguration)

	bad = testParams()
	bad.Costs.StorageRatePerDay = -0.01
	_, err = NewStock(bad)
	require.ErrorIs(t, err, ErrConfiguration)

	bad = testParams()
	bad.Costs.TransactionRate = -0.01
	_, err = NewStock(bad)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestStock_AddHarvest(t *testing.T) {
	stock, err := NewStock(testParams())
	require.NoError(t, err)

	stock.AddHarvest(2.5)
	stock.AddHarvest(1.5)
	assert.InDelta(t, 4.0, stock.State.Tons, 1e-12)

	// Non-positive inflow is a no-op.
	stock.AddHarvest(0)
	stock.AddHarvest(-1)
	assert.InDelta(t, 4.0, stock.State.Tons, 1e-12)
}

func TestStock_ApplySale(t *testing.T) {
	stock, err := NewStock(testParams())
	require.NoError(t, err)
	stock.AddHarvest(10)

	res, err := stock.ApplySale(4, 200)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, res.Amount, 1e-12)
	assert.InDelta(t, 800.0, res.GrossProceeds, 1e-9)
	assert.InDelta(t, 800.0*0.0001, res.TransactionCost, 1e-9)
	assert.InDelta(t, res.GrossProceeds-res.TransactionCost, res.NetProceeds, 1e-9)
	assert.InDelta(t, 10.0, res.TonsStart, 1e-12)
	assert.InDelta(t, 6.0, res.TonsEnd, 1e-12)
	assert.InDelta(t, 6.0, stock.State.Tons, 1e-12)
}

func TestStock_ApplySale_OversellFails(t *testing.T) {
	stock, err := NewStock(testParams())
	require.NoError(t, err)
	stock.AddHarvest(5)

	_, err = stock.ApplySale(5.01, 200)
	require.Error(t, err)
	assert.InDelta(t, 5.0, stock.State.Tons, 1e-12, "failed sale must not mutate state")

	_, err = stock.ApplySale(-1, 200)
	require.Error(t, err)
}

func TestStock_ApplySale_SellAllWithinTolerance(t *testing.T) {
	stock, err := NewStock(testParams())
	require.NoError(t, err)
	stock.AddHarvest(5)

	// A "sell everything" request can carry float noise above the holding.
	res, err := stock.ApplySale(5+1e-12, 200)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, res.Amount, 1e-9)
	assert.Equal(t, 0.0, stock.State.Tons)
}

func TestCostFunctions(t *testing.T) {
	assert.InDelta(t, 10*200*0.00005*3, StorageCost(10, 200, 0.00005, 3), 1e-12)
	assert.Equal(t, 0.0, StorageCost(0, 200, 0.00005, 3))
	assert.Equal(t, 0.0, StorageCost(10, 200, 0.00005, 0))

	assert.InDelta(t, 4*200*0.0001, TransactionCost(4, 200, 0.0001), 1e-12)
	assert.Equal(t, 0.0, TransactionCost(0, 200, 0.0001))
}

func TestAccrueStorage_ChargesCurrentHolding(t *testing.T) {
	stock, err := NewStock(testParams())
	require.NoError(t, err)

	assert.Equal(t, 0.0, stock.AccrueStorage(200), "empty stock accrues nothing")

	stock.AddHarvest(10)
	got := stock.AccrueStorage(200)
	assert.InDelta(t, 10*200*0.00005, got, 1e-12)
}
