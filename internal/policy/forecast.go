package policy

import (
	"harvest-backtest/internal/indicator"
	"harvest-backtest/internal/model"
)

// ConfidenceParams sets the CV cutoffs for the three confidence tiers.
type ConfidenceParams struct {
	// HighCutoff: cv strictly below this is HIGH confidence.
	HighCutoff float64
	// MediumCutoff: cv at or above this is LOW confidence.
	MediumCutoff float64
}

func (p ConfidenceParams) normalize() ConfidenceParams {
	if p.HighCutoff <= 0 {
		p.HighCutoff = 0.05
	}
	if p.MediumCutoff <= 0 {
		p.MediumCutoff = 0.15
	}
	return p
}

type confidenceTier int

const (
	confidenceHigh confidenceTier = iota
	confidenceMedium
	confidenceLow
)

// classifyConfidence buckets a CV. Boundaries fall to the less-confident
// side: cv equal to HighCutoff is MEDIUM, cv equal to MediumCutoff is LOW.
func classifyConfidence(cv float64, p ConfidenceParams) confidenceTier {
	switch {
	case cv < p.HighCutoff:
		return confidenceHigh
	case cv < p.MediumCutoff:
		return confidenceMedium
	default:
		return confidenceLow
	}
}

// Net-benefit direction thresholds, in percent of current price.
const (
	strongUpPct   = 2.0
	moderateUpPct = 0.5
)

// netBenefit summarizes how much better the best-timed future sale looks
// versus selling today, net of storage and transaction costs.
type netBenefit struct {
	// Pct is 100 * (bestEV - todayEV) / price.
	Pct     float64
	BestEV  float64
	TodayEV float64
	// BestHorizon is the 0-based horizon day achieving BestEV.
	BestHorizon int
	// BestMedian is the ensemble median price at BestHorizon.
	BestMedian float64
}

// computeNetBenefit scans every horizon day of the ensemble. For horizon
// day h the per-ton expected value is the ensemble median minus storage
// accrued over h+1 days (valued at today's price) minus the transaction
// cost on the future sale. Selling today costs only the transaction fee.
func computeNetBenefit(ctx Context) (netBenefit, bool) {
	ens := ctx.Ensemble
	if ens == nil || ens.Horizon() == 0 || ctx.Price <= 0 {
		return netBenefit{}, false
	}

	nb := netBenefit{
		TodayEV:     ctx.Price - model.TransactionCost(1, ctx.Price, ctx.Costs.TransactionRate),
		BestHorizon: -1,
	}
	for h := 0; h < ens.Horizon(); h++ {
		median := ens.MedianAt(h)
		ev := median -
			model.StorageCost(1, ctx.Price, ctx.Costs.StorageRatePerDay, h+1) -
			model.TransactionCost(1, median, ctx.Costs.TransactionRate)
		if nb.BestHorizon < 0 || ev > nb.BestEV {
			nb.BestEV = ev
			nb.BestHorizon = h
			nb.BestMedian = median
		}
	}
	nb.Pct = 100 * (nb.BestEV - nb.TodayEV) / ctx.Price
	return nb, true
}

// gateWithBaseline applies the 3-tier confidence blend between a
// forecast signal and the paired rule-based baseline's decision.
//
// HIGH confidence overrides the baseline with the forecast direction;
// a directionless forecast defers to the baseline so the pairing stays
// fair. MEDIUM blends only where the two disagree. LOW follows the
// baseline verbatim.
func gateWithBaseline(ctx Context, baseline model.Decision, nb netBenefit, cv float64, conf ConfidenceParams) model.Decision {
	switch classifyConfidence(cv, conf) {
	case confidenceHigh:
		switch {
		case nb.Pct >= strongUpPct:
			return model.Hold("forecast_strong_up")
		case nb.Pct >= moderateUpPct:
			return model.Sell(ctx.Inventory*0.15, "forecast_hedge")
		case nb.Pct <= -strongUpPct:
			return model.Sell(ctx.Inventory*0.40, "forecast_strong_down")
		case nb.Pct <= -moderateUpPct:
			return model.Sell(ctx.Inventory*0.25, "forecast_down")
		default:
			return baseline
		}

	case confidenceMedium:
		if baseline.Action == model.ActionSell && nb.Pct >= moderateUpPct {
			return model.Sell(baseline.Amount/2, "forecast_halved_"+baseline.Reason)
		}
		if baseline.Action == model.ActionHold && nb.Pct <= -moderateUpPct {
			return model.Sell(ctx.Inventory*0.10, "forecast_cautious_sell")
		}
		return baseline

	default:
		return baseline
	}
}

// ensembleCVAt measures uncertainty at one horizon day, failing safe to
// maximum uncertainty when the ensemble is missing.
func ensembleCVAt(ens *model.Ensemble, h int) float64 {
	if ens == nil || h < 0 || h >= ens.Horizon() {
		return indicator.MaxUncertainty
	}
	return indicator.EnsembleCV(ens.HorizonSamples(h))
}
