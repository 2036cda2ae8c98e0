package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLeaf_AcceptsValidLeaf(t *testing.T) {
	err := ValidateLeaf(100, NewDuration(12*time.Hour), oralRoute())
	assert.NoError(t, err)
}

func TestValidateLeaf_RejectsNegativeDose(t *testing.T) {
	err := ValidateLeaf(-1, NewDuration(12*time.Hour), oralRoute())
	require.Error(t, err)
	var verrs *ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.HasErrors())
}

func TestValidateLeaf_RejectsNonPositiveInterval(t *testing.T) {
	err := ValidateLeaf(10, Duration{}, oralRoute())
	require.Error(t, err)
}

func TestValidateLeaf_RejectsUndefinedRoute(t *testing.T) {
	err := ValidateLeaf(10, NewDuration(time.Hour), FormulationAndRoute{})
	require.Error(t, err)
}

func TestValidateLastingDose_RejectsInfusionTimeExceedingInterval(t *testing.T) {
	d := LastingDose{
		Dose:         10,
		Route:        oralRoute(),
		Interval:     NewDuration(time.Hour),
		InfusionTime: NewDuration(2 * time.Hour),
	}
	err := ValidateLastingDose(d)
	require.Error(t, err)
	assert.Equal(t, InvalidPrecondition, StatusOf(err))
}

func TestValidateLastingDose_AcceptsInfusionTimeWithinInterval(t *testing.T) {
	d := LastingDose{
		Dose:         10,
		Route:        oralRoute(),
		Interval:     NewDuration(2 * time.Hour),
		InfusionTime: NewDuration(time.Hour),
	}
	assert.NoError(t, ValidateLastingDose(d))
}

func TestValidateDosage_AcceptsValidComposite(t *testing.T) {
	child := LastingDose{Dose: 1, Route: oralRoute(), Interval: NewDuration(4 * time.Hour)}
	loop := DosageLoop{Child: DosageRepeat{Child: child, Count: 3}}
	assert.NoError(t, ValidateDosage(loop))
}

func TestValidateDosage_RejectsInvalidLeafNestedInComposite(t *testing.T) {
	child := LastingDose{Dose: -5, Route: oralRoute(), Interval: NewDuration(4 * time.Hour)}
	seq := DosageSequence{Children: []BoundedDosage{child}}

	err := ValidateDosage(seq)
	require.Error(t, err)
	var verrs *ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.True(t, verrs.HasErrors())
}
