package analysis

import (
	"math"
	"sort"
	"time"

	"harvest-backtest/internal/model"
	"harvest-backtest/internal/optimizer"
)

// SalePotential is a dataset-level summary you can use for ranking.
// It combines raw price stats with an "oracle" net result: the LP solved
// once over the whole series with perfect foresight, an upper bound no
// causal policy can beat.
type SalePotential struct {
	Commodity string
	Unit      string

	Start time.Time
	End   time.Time

	Count int

	MinPrice  float64
	MaxPrice  float64
	MeanPrice float64
	P05Price  float64
	P95Price  float64

	SpreadP95P05 float64

	// OracleNet values the window's harvest under perfect foresight.
	// No terminal bonus: the deadline is real at the end of the data.
	OracleNet float64
}

func ComputePotential(resp *model.PriceSeriesResponse, schedule *model.HarvestSchedule, costs model.CostParams) SalePotential {
	p := SalePotential{}
	if resp == nil || len(resp.Data) == 0 {
		return p
	}
	p.Commodity = resp.Commodity
	p.Unit = resp.Unit
	p.Count = len(resp.Data)
	p.Start = resp.Data[0].Date
	p.End = resp.Data[len(resp.Data)-1].Date

	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	vals := make([]float64, 0, len(resp.Data))
	for _, pt := range resp.Data {
		v := pt.Price
		vals = append(vals, v)
		sum += v
		if v < minv {
			minv = v
		}
		if v > maxv {
			maxv = v
		}
	}
	sort.Float64s(vals)
	p.MinPrice = minv
	p.MaxPrice = maxv
	p.MeanPrice = sum / float64(len(vals))
	p.P05Price = percentileSorted(vals, 0.05)
	p.P95Price = percentileSorted(vals, 0.95)
	p.SpreadP95P05 = p.P95Price - p.P05Price

	p.OracleNet = oracleNet(resp, schedule, costs)
	return p
}

func oracleNet(resp *model.PriceSeriesResponse, schedule *model.HarvestSchedule, costs model.CostParams) float64 {
	if schedule == nil {
		return 0
	}
	prices := resp.Prices()
	inflows := make([]float64, len(prices))
	for i := range inflows {
		inflows[i] = schedule.Inflow(i)
	}
	plan, err := optimizer.Solve(optimizer.Problem{
		Prices:            prices,
		Inflows:           inflows,
		StorageRatePerDay: costs.StorageRatePerDay,
		TransactionRate:   costs.TransactionRate,
	})
	if err != nil {
		return 0
	}
	return plan.Objective
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	idx := q * float64(len(sorted)-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
