package model

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Ensemble is a dense sampleCount x horizonDays matrix of simulated future
// prices, one row per independently drawn price path. Immutable after
// construction; policies only ever read it.
type Ensemble struct {
	m       *mat.Dense
	samples int
	horizon int
}

// NewEnsemble wraps row-major data of shape samples x horizon.
func NewEnsemble(samples, horizon int, data []float64) (*Ensemble, error) {
	if samples <= 0 || horizon <= 0 {
		return nil, fmt.Errorf("%w: ensemble shape %dx%d", ErrConfiguration, samples, horizon)
	}
	if len(data) != samples*horizon {
		return nil, fmt.Errorf("%w: ensemble data length %d != %d", ErrConfiguration, len(data), samples*horizon)
	}
	return &Ensemble{m: mat.NewDense(samples, horizon, data), samples: samples, horizon: horizon}, nil
}

// EnsembleFromRows builds an ensemble from per-path slices. Ragged rows
// are rejected; the matrix must be rectangular.
func EnsembleFromRows(rows [][]float64) (*Ensemble, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty ensemble", ErrConfiguration)
	}
	horizon := len(rows[0])
	data := make([]float64, 0, len(rows)*horizon)
	for i, r := range rows {
		if len(r) != horizon {
			return nil, fmt.Errorf("%w: ensemble row %d has length %d, want %d", ErrConfiguration, i, len(r), horizon)
		}
		data = append(data, r...)
	}
	return NewEnsemble(len(rows), horizon, data)
}

func (e *Ensemble) Samples() int { return e.samples }
func (e *Ensemble) Horizon() int { return e.horizon }

// At returns the price of path s at horizon day h.
func (e *Ensemble) At(s, h int) float64 {
	return e.m.At(s, h)
}

// HorizonSamples returns a copy of the sampled outcomes at horizon day h.
func (e *Ensemble) HorizonSamples(h int) []float64 {
	return mat.Col(nil, h, e.m)
}

// MedianAt is the median sampled price at horizon day h.
func (e *Ensemble) MedianAt(h int) float64 {
	return medianOf(e.HorizonSamples(h))
}

// MeanPath collapses the ensemble into a single expected path, one mean
// per horizon day. Used as the MPC forecast window.
func (e *Ensemble) MeanPath() []float64 {
	out := make([]float64, e.horizon)
	for h := 0; h < e.horizon; h++ {
		sum := 0.0
		for s := 0; s < e.samples; s++ {
			sum += e.m.At(s, h)
		}
		out[h] = sum / float64(e.samples)
	}
	return out
}

func medianOf(xs []float64) float64 {
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
