package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTDACalculator_S1_WeeklyDoseJuneJulyBridge replicates S1: a weekly
// 200mg Tuesday 08:30 regimen (20-min infusion) from 2017-06-01 to
// 2017-07-01, followed by a weekly 400mg Wednesday 11:30 regimen (10-min
// infusion) from 2017-07-01 to 2017-07-16, sampled at five instants
// straddling the June/July boundary.
func TestTDACalculator_S1_WeeklyDoseJuneJulyBridge(t *testing.T) {
	june := WeeklyDose{
		DailyDose: DailyDose{
			Dose:         200,
			DoseUnit:     "mg",
			Route:        infusionRoute(),
			InfusionTime: NewDuration(20 * time.Minute),
			At:           NewTimeOfDay(8, 30, 0),
		},
		Day: Tuesday,
	}
	july := WeeklyDose{
		DailyDose: DailyDose{
			Dose:         400,
			DoseUnit:     "mg",
			Route:        infusionRoute(),
			InfusionTime: NewDuration(10 * time.Minute),
			At:           NewTimeOfDay(11, 30, 0),
		},
		Day: Wednesday,
	}

	history := NewDosageHistory()
	require.NoError(t, history.AddTimeRange(NewDosageTimeRange(
		at(2017, 6, 1, 0), at(2017, 7, 1, 0), DosageLoop{Child: june})))
	require.NoError(t, history.AddTimeRange(NewDosageTimeRange(
		at(2017, 7, 1, 0), at(2017, 7, 16, 0), DosageLoop{Child: july})))

	samples := []Instant{
		NewInstant(time.Date(2017, 6, 6, 3, 0, 0, 0, time.UTC)),
		NewInstant(time.Date(2017, 6, 8, 8, 30, 0, 0, time.UTC)),
		NewInstant(time.Date(2017, 6, 25, 10, 0, 0, 0, time.UTC)),
		NewInstant(time.Date(2017, 7, 5, 11, 30, 0, 0, time.UTC)),
		NewInstant(time.Date(2017, 7, 12, 12, 0, 0, 0, time.UTC)),
	}

	durations, err := TDACalculator{}.CalculateDurations(samples, history)
	require.NoError(t, err)
	require.Len(t, durations, 5)

	expected := []float64{-5.5, 48.0, 121.5, 0.0, 0.5}
	for i, want := range expected {
		assert.InDelta(t, want, durations[i].Hours(), 1e-9, "sample %d", i)
	}
}

func TestTDACalculator_RejectsEmptyHistory(t *testing.T) {
	_, err := TDACalculator{}.CalculateDurations(nil, NewDosageHistory())
	require.Error(t, err)
	assert.Equal(t, InvalidPrecondition, StatusOf(err))
}
