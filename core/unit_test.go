package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_IdentityAlwaysSucceeds(t *testing.T) {
	v, err := Convert(42, "mg", "mg")
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)
}

func TestConvert_WeightDimension(t *testing.T) {
	v, err := Convert(1, "g", "mg")
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, v, 1e-9)
}

func TestConvert_ConcentrationFactorMatchesSpecNotOriginalTypo(t *testing.T) {
	// mg/l -> ug/l factor is 1000, inverse 0.001 -- the corrected value, not
	// the original C++'s inconsistent 0.0001.
	v, err := Convert(1, "mg/l", "µg/l")
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, v, 1e-9)

	back, err := Convert(v, "µg/l", "mg/l")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, back, 1e-9)
}

func TestConvert_RejectsCrossDimension(t *testing.T) {
	_, err := Convert(1, "mg", "h")
	require.Error(t, err)
	assert.Equal(t, UnitConversionError, StatusOf(err))
}

func TestConvert_RejectsUnregisteredPair(t *testing.T) {
	_, err := Convert(1, "mg", "mol")
	require.Error(t, err)
}

func TestRegisterConversion_ExtendsTable(t *testing.T) {
	RegisterConversion("mg", "mol", 0.0025)
	v, err := Convert(1, "mg", "mol")
	require.NoError(t, err)
	assert.InDelta(t, 0.0025, v, 1e-12)
}

func TestQuantity_ConvertedTo(t *testing.T) {
	q := NewQuantity(2, "g")
	converted, err := q.ConvertedTo("mg")
	require.NoError(t, err)
	assert.Equal(t, Unit("mg"), converted.Unit)
	assert.InDelta(t, 2000.0, converted.Value, 1e-9)
}
