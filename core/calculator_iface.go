package core

// Parameter is one named numerical input to a PK calculator kernel (e.g.
// volume of distribution "V", elimination rate constant "Ke"). Kernels
// validate and cache these in CheckInputs.
type Parameter struct {
	Name  string
	Value float64
}

// ParameterList is an ordered list of Parameter, indexed positionally by
// each calculator kernel (spec.md §4.3: "validates parameter count").
type ParameterList []Parameter

// Calculator is implemented once per (compartment count, absorption model)
// pair. Per spec.md §4.3, instances are stateless between intakes but
// cache per-intake state between the four calls below, so a single
// instance must not be reused concurrently (spec.md §5).
type Calculator interface {
	// CheckInputs validates parameter count and the non-negativity/
	// finiteness of dose, volume, rate constants, point count, and
	// interval, caching them on the calculator instance. Returns false if
	// any check fails.
	CheckInputs(event IntakeEvent, parameters ParameterList) bool

	// PrepareComputations derives model-specific quantities ahead of
	// ComputeLogarithms. A no-op for the simplest models.
	PrepareComputations(event IntakeEvent, parameters ParameterList)

	// ComputeLogarithms precomputes exp(-k*t) vectors over the sample
	// times -- the dominant per-intake cost, pulled out so repeated
	// evaluations within one intake share the work.
	ComputeLogarithms(event IntakeEvent, parameters ParameterList, times []float64)

	// ComputeConcentrations produces the full concentration trajectory for
	// the intake's sampled times and the final residual(s) to hand to the
	// next intake.
	ComputeConcentrations(inResiduals Residuals) (concentrations []float64, outResiduals Residuals, err error)

	// ComputeConcentration is the single-point variant used for ad hoc
	// sample-time evaluations.
	ComputeConcentration(atTime float64, inResiduals Residuals) (concentration float64, outResiduals Residuals, err error)
}

// CompartmentModel names the number of kinetic compartments a Calculator
// models.
type CompartmentModel int

const (
	OneCompartment CompartmentModel = 1
	TwoCompartment CompartmentModel = 2
)

// NewCalculatorFunc is a factory function for creating Calculator
// implementations, set by core/calculator's init() via registration. This
// breaks the import cycle between core (which defines Calculator) and
// core/calculator (which implements it) -- the same pattern the teacher
// codebase uses to keep its latency-model interface decoupled from its
// implementations.
//
// Production callers should import core/calculator and use
// calculator.New() directly. Test code in package core uses
// MustNewCalculator to avoid importing core/calculator.
var NewCalculatorFunc func(model CompartmentModel, absorption AbsorptionModel) (Calculator, error)

// MustNewCalculator calls NewCalculatorFunc with a nil guard, panicking
// with an actionable message if the factory has not been registered
// (missing core/calculator import).
func MustNewCalculator(model CompartmentModel, absorption AbsorptionModel) Calculator {
	if NewCalculatorFunc == nil {
		panic("core.NewCalculatorFunc not registered: import core/calculator to register it " +
			"(add: import _ \"github.com/sotalya/tducore/core/calculator\")")
	}
	c, err := NewCalculatorFunc(model, absorption)
	if err != nil {
		panic(err)
	}
	return c
}
