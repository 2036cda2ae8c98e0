package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sotalya/tducore/core"
)

func TestOneCompartmentBolus_S5Residual(t *testing.T) {
	// S5: D=250mg, V=347L, Ke=14.3/347 h^-1, single bolus, 24h interval,
	// 250 points; final residual = (D/V)*exp(-Ke*24) within 1e-10 relative.
	const dose = 250.0
	const volume = 347.0
	const ke = 14.3 / 347.0
	const nbPoints = 250

	event := core.IntakeEvent{
		EventTime:      core.NewInstant(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		Dose:           dose,
		Interval:       core.NewDuration(24 * time.Hour),
		NumberOfPoints: nbPoints,
	}
	parameters := core.ParameterList{
		{Name: "V", Value: volume},
		{Name: "Ke", Value: ke},
	}

	c := newOneCompartmentBolus()
	require.True(t, c.CheckInputs(event, parameters))
	c.PrepareComputations(event, parameters)

	times := sampleTimes(event.Interval, nbPoints)
	c.ComputeLogarithms(event, parameters, times)

	concentrations, outResiduals, err := c.ComputeConcentrations(core.Residuals{0})
	require.NoError(t, err)
	require.Len(t, concentrations, nbPoints)
	require.Len(t, outResiduals, 1)

	expected := (dose / volume) * math.Exp(-ke*24)
	assert.InEpsilon(t, expected, outResiduals[0], 1e-10)
}

func TestOneCompartmentBolus_RejectsNegativeDose(t *testing.T) {
	event := core.IntakeEvent{Dose: -1, Interval: core.NewDuration(time.Hour), NumberOfPoints: 10}
	parameters := core.ParameterList{{Name: "V", Value: 10}, {Name: "Ke", Value: 1}}

	c := newOneCompartmentBolus()
	assert.False(t, c.CheckInputs(event, parameters))
}

func TestOneCompartmentBolus_RejectsTooFewParameters(t *testing.T) {
	event := core.IntakeEvent{Dose: 100, Interval: core.NewDuration(time.Hour), NumberOfPoints: 10}
	c := newOneCompartmentBolus()
	assert.False(t, c.CheckInputs(event, core.ParameterList{{Name: "V", Value: 10}}))
}

func TestOneCompartmentBolus_ComputeConcentration_LastCycleZeroResidual(t *testing.T) {
	event := core.IntakeEvent{
		Dose:     100,
		Interval: core.Duration{}, // zero interval marks the final cycle
	}
	parameters := core.ParameterList{{Name: "V", Value: 10}, {Name: "Ke", Value: 1}}

	c := newOneCompartmentBolus()
	event.NumberOfPoints = 1
	require.True(t, c.CheckInputs(core.IntakeEvent{Dose: 100, Interval: core.NewDuration(time.Hour), NumberOfPoints: 1}, parameters))
	// CheckInputs rejects a zero interval, so set the cached interval to zero
	// directly to exercise the m_Int==0 special case.
	c.interval = 0

	_, outResiduals, err := c.ComputeConcentration(0, core.Residuals{0})
	require.NoError(t, err)
	require.Len(t, outResiduals, 1)
	assert.Zero(t, outResiduals[0])
}
