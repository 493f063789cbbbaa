package model

import "fmt"

// DaysPerYear fixes the length of a harvest year. The schedule repeats
// with this period in multi-year simulations.
const DaysPerYear = 365

// HarvestWindow is a closed day-of-year range [StartDay, EndDay] during
// which inflow accrues. Days are 0-based.
type HarvestWindow struct {
	StartDay int
	EndDay   int
}

func (w HarvestWindow) Validate() error {
	if w.StartDay < 0 || w.EndDay >= DaysPerYear {
		return fmt.Errorf("%w: harvest window [%d,%d] outside year", ErrConfiguration, w.StartDay, w.EndDay)
	}
	if w.Length() <= 0 {
		return fmt.Errorf("%w: harvest window [%d,%d] has zero length", ErrConfiguration, w.StartDay, w.EndDay)
	}
	return nil
}

func (w HarvestWindow) Length() int {
	return w.EndDay - w.StartDay + 1
}

func (w HarvestWindow) Contains(dayOfYear int) bool {
	return dayOfYear >= w.StartDay && dayOfYear <= w.EndDay
}

// HarvestSchedule maps simulation days to daily inflow. Built once per
// commodity configuration; immutable afterwards.
type HarvestSchedule struct {
	daily  []float64
	volume float64
	first  int
}

// NewHarvestSchedule spreads the annual volume uniformly across each
// window (volume is split across windows proportionally to their length,
// so the per-day increment is identical everywhere inflow occurs).
func NewHarvestSchedule(windows []HarvestWindow, annualVolume float64) (*HarvestSchedule, error) {
	if annualVolume <= 0 {
		return nil, fmt.Errorf("%w: annual volume must be > 0", ErrConfiguration)
	}
	if len(windows) == 0 {
		return nil, fmt.Errorf("%w: at least one harvest window is required", ErrConfiguration)
	}

	totalDays := 0
	for _, w := range windows {
		if err := w.Validate(); err != nil {
			return nil, err
		}
		totalDays += w.Length()
	}
	for i := range windows {
		for j := i + 1; j < len(windows); j++ {
			if windows[i].Contains(windows[j].StartDay) || windows[j].Contains(windows[i].StartDay) {
				return nil, fmt.Errorf("%w: harvest windows overlap", ErrConfiguration)
			}
		}
	}

	perDay := annualVolume / float64(totalDays)
	daily := make([]float64, DaysPerYear)
	first := DaysPerYear
	for _, w := range windows {
		if w.StartDay < first {
			first = w.StartDay
		}
		for d := w.StartDay; d <= w.EndDay; d++ {
			daily[d] = perDay
		}
	}

	return &HarvestSchedule{daily: daily, volume: annualVolume, first: first}, nil
}

// Inflow returns the increment for an absolute simulation day. The yearly
// pattern repeats, advancing day indices monotonically.
func (s *HarvestSchedule) Inflow(day int) float64 {
	if day < 0 {
		return 0
	}
	return s.daily[day%DaysPerYear]
}

// FirstInflowDay is the day-of-year on which harvest begins.
func (s *HarvestSchedule) FirstInflowDay() int {
	return s.first
}

// AnnualVolume is the total inflow per harvest year.
func (s *HarvestSchedule) AnnualVolume() float64 {
	return s.volume
}

// CumulativeInflow sums inflow over days [0, day].
func (s *HarvestSchedule) CumulativeInflow(day int) float64 {
	total := 0.0
	for d := 0; d <= day; d++ {
		total += s.Inflow(d)
	}
	return total
}
