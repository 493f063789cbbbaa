package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHarvestSchedule_UniformInflow(t *testing.T) {
	s, err := NewHarvestSchedule([]HarvestWindow{{StartDay: 0, EndDay: 152}}, 50)
	require.NoError(t, err)

	perDay := 50.0 / 153.0
	assert.InDelta(t, perDay, s.Inflow(0), 1e-12)
	assert.InDelta(t, perDay, s.Inflow(152), 1e-12)
	assert.Equal(t, 0.0, s.Inflow(153))
	assert.Equal(t, 0.0, s.Inflow(364))
	assert.Equal(t, 0, s.FirstInflowDay())
	assert.InDelta(t, 50.0, s.AnnualVolume(), 1e-12)
}

func TestNewHarvestSchedule_RepeatsYearly(t *testing.T) {
	s, err := NewHarvestSchedule([]HarvestWindow{{StartDay: 10, EndDay: 19}}, 100)
	require.NoError(t, err)

	assert.Equal(t, 0.0, s.Inflow(0))
	assert.InDelta(t, 10.0, s.Inflow(15), 1e-12)
	// Same day-of-year, one year later.
	assert.InDelta(t, s.Inflow(15), s.Inflow(15+DaysPerYear), 1e-12)
	assert.Equal(t, 0.0, s.Inflow(-1))
}

func TestNewHarvestSchedule_MultipleWindows(t *testing.T) {
	s, err := NewHarvestSchedule([]HarvestWindow{
		{StartDay: 274, EndDay: 364},
		{StartDay: 121, EndDay: 181},
	}, 120)
	require.NoError(t, err)

	totalDays := (364 - 274 + 1) + (181 - 121 + 1)
	perDay := 120.0 / float64(totalDays)
	assert.InDelta(t, perDay, s.Inflow(121), 1e-12)
	assert.InDelta(t, perDay, s.Inflow(300), 1e-12)
	assert.Equal(t, 0.0, s.Inflow(200))
	assert.Equal(t, 121, s.FirstInflowDay())

	// Full year sums back to the annual volume.
	assert.InDelta(t, 120.0, s.CumulativeInflow(DaysPerYear-1), 1e-9)
}

func TestNewHarvestSchedule_Rejections(t *testing.T) {
	_, err := NewHarvestSchedule([]HarvestWindow{{StartDay: 0, EndDay: 10}}, 0)
	require.ErrorIs(t, err, ErrConfiguration)

	_, err = NewHarvestSchedule(nil, 50)
	require.ErrorIs(t, err, ErrConfiguration)

	// Zero-length window.
	_, err = NewHarvestSchedule([]HarvestWindow{{StartDay: 10, EndDay: 9}}, 50)
	require.ErrorIs(t, err, ErrConfiguration)

	// Outside the year.
	_, err = NewHarvestSchedule([]HarvestWindow{{StartDay: -1, EndDay: 10}}, 50)
	require.ErrorIs(t, err, ErrConfiguration)
	_, err = NewHarvestSchedule([]HarvestWindow{{StartDay: 300, EndDay: 365}}, 50)
	require.ErrorIs(t, err, ErrConfiguration)

	// Overlapping windows.
	_, err = NewHarvestSchedule([]HarvestWindow{
		{StartDay: 0, EndDay: 100},
		{StartDay: 50, EndDay: 150},
	}, 50)
	require.ErrorIs(t, err, ErrConfiguration)
}
