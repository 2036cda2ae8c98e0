package core

import "fmt"

// Unit is an opaque unit string, e.g. "mg", "mg/l", "h". It is looked up in
// the process-wide conversion registry to convert quantities between units
// of the same dimension.
type Unit string

// Dimension tags the physical quantity a Unit measures, used to reject
// nonsensical conversions (e.g. weight to time) even when no explicit
// conversion factor has been registered for the pair.
type Dimension int

const (
	DimensionNone Dimension = iota
	DimensionWeight
	DimensionTime
	DimensionConcentration
)

var unitDimensions = map[Unit]Dimension{
	"mg":    DimensionWeight,
	"g":     DimensionWeight,
	"µg":    DimensionWeight,
	"ug":    DimensionWeight,
	"h":     DimensionTime,
	"min":   DimensionTime,
	"s":     DimensionTime,
	"d":     DimensionTime,
	"mg/l":  DimensionConcentration,
	"µg/l":  DimensionConcentration,
	"ug/l":  DimensionConcentration,
}

// DimensionOf returns the dimension tag registered for u, or DimensionNone
// if u is not a known unit.
func DimensionOf(u Unit) Dimension {
	return unitDimensions[u]
}

// conversionKey builds the registry key "from-to" used by the factor table.
func conversionKey(from, to Unit) string {
	return string(from) + "-" + string(to)
}

// conversionFactors is the process-wide, read-only-after-init conversion
// registry. It is a plain map rather than a struct with a mutex: per §5,
// the table is populated once at startup (by the literal below and optionally
// RegisterConversion) and only ever read concurrently afterwards.
var conversionFactors = map[string]float64{
	conversionKey("mg", "g"):    0.001,
	conversionKey("g", "mg"):    1000,
	conversionKey("mg", "µg"):   1000,
	conversionKey("µg", "mg"):   0.001,
	conversionKey("mg", "ug"):   1000,
	conversionKey("ug", "mg"):   0.001,
	conversionKey("mg/l", "µg/l"): 1000,
	conversionKey("µg/l", "mg/l"): 0.001,
	conversionKey("mg/l", "ug/l"): 1000,
	conversionKey("ug/l", "mg/l"): 0.001,
	conversionKey("h", "min"):   60,
	conversionKey("min", "h"):   1.0 / 60,
	conversionKey("h", "s"):     3600,
	conversionKey("s", "h"):     1.0 / 3600,
	conversionKey("d", "h"):     24,
	conversionKey("h", "d"):     1.0 / 24,
}

// RegisterConversion extends the conversion registry with a new factor so
// the value v measured in "from" equals v*factor measured in "to". This is
// the extension point spec.md §9 calls for: a drug-model library can
// register additional unit pairs (e.g. a new salt form's molar mass
// conversion) without modifying core.
func RegisterConversion(from, to Unit, factor float64) {
	conversionFactors[conversionKey(from, to)] = factor
}

// Convert converts value from one unit to another. Identity conversions
// (from == to) always succeed. Any other pair must be registered, and both
// units must share a dimension (when both are known dimensions); otherwise
// Convert returns UnitConversionError.
func Convert(value float64, from, to Unit) (float64, error) {
	if from == to {
		return value, nil
	}
	df, dt := DimensionOf(from), DimensionOf(to)
	if df != DimensionNone && dt != DimensionNone && df != dt {
		return 0, newError(UnitConversionError, fmt.Sprintf("cannot convert across dimensions: %q (%v) to %q (%v)", from, df, to, dt))
	}
	factor, ok := conversionFactors[conversionKey(from, to)]
	if !ok {
		return 0, newError(UnitConversionError, fmt.Sprintf("no registered conversion from %q to %q", from, to))
	}
	return value * factor, nil
}

// Quantity is a strongly-typed numeric value paired with its unit.
type Quantity struct {
	Value float64
	Unit  Unit
}

// NewQuantity constructs a Quantity.
func NewQuantity(value float64, unit Unit) Quantity {
	return Quantity{Value: value, Unit: unit}
}

// ConvertedTo returns a new Quantity expressing q's value in toUnit.
func (q Quantity) ConvertedTo(toUnit Unit) (Quantity, error) {
	v, err := Convert(q.Value, q.Unit, toUnit)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: v, Unit: toUnit}, nil
}
