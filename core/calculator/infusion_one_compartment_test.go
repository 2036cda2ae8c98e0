package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sotalya/tducore/core"
)

func TestOneCompartmentInfusion_PeaksAtEndOfInfusion(t *testing.T) {
	event := core.IntakeEvent{
		Dose:           500,
		Interval:       core.NewDuration(12 * time.Hour),
		InfusionTime:   core.NewDuration(2 * time.Hour),
		NumberOfPoints: 13,
	}
	parameters := core.ParameterList{{Name: "V", Value: 40}, {Name: "Ke", Value: 0.2}}

	c := newOneCompartmentInfusion()
	require.True(t, c.CheckInputs(event, parameters))
	c.PrepareComputations(event, parameters)

	times := sampleTimes(event.Interval, event.NumberOfPoints)
	c.ComputeLogarithms(event, parameters, times)

	concentrations, outResiduals, err := c.ComputeConcentrations(core.Residuals{0})
	require.NoError(t, err)
	require.Len(t, outResiduals, 1)

	peak := 0
	for i, v := range concentrations {
		if v > concentrations[peak] {
			peak = i
		}
	}
	// With step = 1h and Tinf = 2h, index 2 is the end-of-infusion sample.
	assert.Equal(t, 2, peak)
	assert.Less(t, concentrations[len(concentrations)-1], concentrations[peak])
}

func TestOneCompartmentInfusion_RejectsZeroInfusionTime(t *testing.T) {
	event := core.IntakeEvent{Dose: 500, Interval: core.NewDuration(time.Hour), NumberOfPoints: 10}
	parameters := core.ParameterList{{Name: "V", Value: 40}, {Name: "Ke", Value: 0.2}}

	c := newOneCompartmentInfusion()
	assert.False(t, c.CheckInputs(event, parameters))
}
