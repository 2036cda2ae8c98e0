package calculator

import (
	"fmt"

	"github.com/sotalya/tducore/core"
)

func init() {
	core.NewCalculatorFunc = New
}

// New returns the Calculator implementation for the given (compartment
// count, absorption model) pair, or an error if the combination is
// unsupported.
func New(model core.CompartmentModel, absorption core.AbsorptionModel) (core.Calculator, error) {
	switch {
	case model == core.OneCompartment && absorption == core.AbsorptionIntravascular:
		return newOneCompartmentBolus(), nil
	case model == core.OneCompartment && absorption == core.AbsorptionBolus:
		return newOneCompartmentBolus(), nil
	case model == core.OneCompartment && absorption == core.AbsorptionExtravascular:
		return newOneCompartmentExtravascular(), nil
	case model == core.OneCompartment && absorption == core.AbsorptionInfusion:
		return newOneCompartmentInfusion(), nil
	case model == core.TwoCompartment && (absorption == core.AbsorptionIntravascular || absorption == core.AbsorptionBolus):
		return newTwoCompartmentBolus(), nil
	default:
		return nil, &core.Error{
			Status:  core.InvalidPrecondition,
			Message: fmt.Sprintf("no calculator registered for compartment model %d, absorption model %s", model, absorption),
		}
	}
}
