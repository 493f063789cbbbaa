// Package indicator implements the signal helpers used by the decision
// policies:
//   - SMA(prices, n)            – trailing simple moving average
//   - Momentum(prices, period)  – RSI-style bounded oscillator in [0,100]
//   - TrendStrength(prices, p)  – ADX-style trend strength + signed bias
//   - EnsembleCV(samples)       – forecast-ensemble coefficient of variation
//
// Notes
//   - All functions are stateless and read-only over their inputs.
//   - Insufficient history never errors; each function returns its
//     documented neutral value so the daily loop keeps running.
package indicator

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Oscillator bounds and neutral defaults.
const (
	MomentumNeutral    = 50.0
	MomentumMax        = 100.0
	MomentumOverbought = 70.0

	TrendNeutral = 20.0
	TrendStrong  = 25.0

	// MaxUncertainty is the fail-safe CV when an ensemble cannot be
	// measured: treat the forecast as worthless rather than trusted.
	MaxUncertainty = 1.0
)

// SMA returns the trailing n-period simple moving average of the most
// recent prices. Returns NaN when fewer than n observations exist.
func SMA(prices []float64, n int) float64 {
	if n <= 0 || len(prices) < n {
		return math.NaN()
	}
	sum := 0.0
	for _, p := range prices[len(prices)-n:] {
		sum += p
	}
	return sum / float64(n)
}

// Momentum computes an RSI-style oscillator over the most recent period+1
// prices: the ratio of average gains to average losses mapped into
// [0,100]. Fewer than period+1 observations yields the neutral midpoint;
// a window with zero average loss yields the maximum.
func Momentum(prices []float64, period int) float64 {
	if period <= 0 || len(prices) < period+1 {
		return MomentumNeutral
	}
	window := prices[len(prices)-(period+1):]

	var gain, loss float64
	for i := 1; i < len(window); i++ {
		d := window[i] - window[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	avgGain := gain / float64(period)
	avgLoss := loss / float64(period)
	if avgLoss == 0 {
		return MomentumMax
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// Trend is the output of TrendStrength.
type Trend struct {
	// ADX in [0,100]; higher means a stronger trend in either direction.
	ADX float64
	// Direction is the signed directional bias (+DI minus -DI).
	Direction float64
}

// TrendStrength computes an ADX-style trend strength from a close-only
// series (price stands in for high and low). Requires 2*period+1 prices;
// otherwise returns the neutral low value with no directional bias.
func TrendStrength(prices []float64, period int) Trend {
	neutral := Trend{ADX: TrendNeutral}
	if period <= 0 || len(prices) < 2*period+1 {
		return neutral
	}
	window := prices[len(prices)-(2*period+1):]

	// Directional movement from close-to-close deltas. With price as a
	// stand-in for high/low, true range collapses to |delta|.
	n := len(window) - 1
	plusDM := make([]float64, n)
	minusDM := make([]float64, n)
	tr := make([]float64, n)
	for i := 1; i < len(window); i++ {
		d := window[i] - window[i-1]
		if d > 0 {
			plusDM[i-1] = d
		} else {
			minusDM[i-1] = -d
		}
		tr[i-1] = math.Abs(d)
	}

	dx := make([]float64, 0, period+1)
	var lastPlusDI, lastMinusDI float64
	for end := period; end <= n; end++ {
		var sumTR, sumPlus, sumMinus float64
		for i := end - period; i < end; i++ {
			sumTR += tr[i]
			sumPlus += plusDM[i]
			sumMinus += minusDM[i]
		}
		if sumTR == 0 {
			continue
		}
		plusDI := 100 * sumPlus / sumTR
		minusDI := 100 * sumMinus / sumTR
		lastPlusDI, lastMinusDI = plusDI, minusDI
		if plusDI+minusDI == 0 {
			continue
		}
		dx = append(dx, 100*math.Abs(plusDI-minusDI)/(plusDI+minusDI))
	}
	if len(dx) == 0 {
		return neutral
	}

	sum := 0.0
	for _, v := range dx {
		sum += v
	}
	return Trend{
		ADX:       sum / float64(len(dx)),
		Direction: lastPlusDI - lastMinusDI,
	}
}

// EnsembleCV measures forecast uncertainty as population std dev over
// median for the sampled outcomes at one horizon day. An empty ensemble
// or a non-positive median reports maximum uncertainty: the failure mode
// is "don't trust the forecast", never a division error.
func EnsembleCV(samples []float64) float64 {
	if len(samples) == 0 {
		return MaxUncertainty
	}
	med := Median(samples)
	if med <= 0 {
		return MaxUncertainty
	}
	return stat.PopStdDev(samples, nil) / med
}

// Median of a sample set. Does not reorder the input.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
