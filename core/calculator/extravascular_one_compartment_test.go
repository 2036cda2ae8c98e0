package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sotalya/tducore/core"
)

func TestOneCompartmentExtravascular_ConcentrationRisesThenFalls(t *testing.T) {
	event := core.IntakeEvent{
		Dose:           100,
		Interval:       core.NewDuration(24 * time.Hour),
		NumberOfPoints: 25,
	}
	parameters := core.ParameterList{
		{Name: "V", Value: 50},
		{Name: "Ke", Value: 0.1},
		{Name: "Ka", Value: 1.5},
	}

	c := newOneCompartmentExtravascular()
	require.True(t, c.CheckInputs(event, parameters))
	c.PrepareComputations(event, parameters)

	times := sampleTimes(event.Interval, event.NumberOfPoints)
	c.ComputeLogarithms(event, parameters, times)

	concentrations, outResiduals, err := c.ComputeConcentrations(core.Residuals{0, 0})
	require.NoError(t, err)
	require.Len(t, outResiduals, 2)

	assert.Zero(t, concentrations[0])
	peak := 0
	for i, v := range concentrations {
		if v > concentrations[peak] {
			peak = i
		}
	}
	assert.Greater(t, peak, 0)
	assert.Less(t, peak, len(concentrations)-1)
	assert.Less(t, concentrations[len(concentrations)-1], concentrations[peak])
}

func TestOneCompartmentExtravascular_RejectsEqualRates(t *testing.T) {
	event := core.IntakeEvent{Dose: 100, Interval: core.NewDuration(time.Hour), NumberOfPoints: 10}
	parameters := core.ParameterList{{Name: "V", Value: 50}, {Name: "Ke", Value: 1}, {Name: "Ka", Value: 1}}

	c := newOneCompartmentExtravascular()
	assert.False(t, c.CheckInputs(event, parameters))
}
