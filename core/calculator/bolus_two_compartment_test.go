package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sotalya/tducore/core"
)

func TestTwoCompartmentBolus_ConcentrationDecaysMonotonically(t *testing.T) {
	event := core.IntakeEvent{
		Dose:           250,
		Interval:       core.NewDuration(24 * time.Hour),
		NumberOfPoints: 25,
	}
	parameters := core.ParameterList{
		{Name: "V", Value: 40},
		{Name: "k10", Value: 0.3},
		{Name: "k12", Value: 0.15},
		{Name: "k21", Value: 0.1},
	}

	c := newTwoCompartmentBolus()
	require.True(t, c.CheckInputs(event, parameters))
	c.PrepareComputations(event, parameters)
	assert.Greater(t, c.alpha, c.beta)

	times := sampleTimes(event.Interval, event.NumberOfPoints)
	c.ComputeLogarithms(event, parameters, times)

	concentrations, outResiduals, err := c.ComputeConcentrations(core.Residuals{0, 0})
	require.NoError(t, err)
	require.Len(t, outResiduals, 2)

	for i := 1; i < len(concentrations); i++ {
		assert.LessOrEqual(t, concentrations[i], concentrations[i-1])
	}
}

func TestTwoCompartmentBolus_RejectsTooFewParameters(t *testing.T) {
	event := core.IntakeEvent{Dose: 250, Interval: core.NewDuration(time.Hour), NumberOfPoints: 10}
	c := newTwoCompartmentBolus()
	assert.False(t, c.CheckInputs(event, core.ParameterList{{Name: "V", Value: 40}}))
}
