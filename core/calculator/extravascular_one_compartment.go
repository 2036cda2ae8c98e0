package calculator

import (
	"github.com/sirupsen/logrus"

	"github.com/sotalya/tducore/core"
)

// OneCompartmentExtravascular implements the one-compartment, first-order
// absorption model. The ported bolus kernel (onecompartmentbolus.cpp) only
// covers AbsorptionIntravascular; this kernel generalizes its "precompute
// exponentials, apply an affine combination with residuals" shape (spec.md
// §4.3) to the extravascular case, carrying two residuals forward: the
// central concentration and the remaining depot (gut) amount.
//
//	Ad(t) = (D + Ad0) * exp(-Ka*t)
//	C(t)  = Ka/(V*(Ka-Ke)) * (D+Ad0) * (exp(-Ke*t) - exp(-Ka*t)) + C0*exp(-Ke*t)
type OneCompartmentExtravascular struct {
	dose     float64
	volume   float64
	ke       float64
	ka       float64
	nbPoints int
	interval float64

	logKe []float64
	logKa []float64
}

func newOneCompartmentExtravascular() *OneCompartmentExtravascular {
	return &OneCompartmentExtravascular{}
}

// CheckInputs validates and caches dose, volume, Ke, Ka, point count, and
// interval.
func (c *OneCompartmentExtravascular) CheckInputs(event core.IntakeEvent, parameters core.ParameterList) bool {
	if len(parameters) < 3 {
		logrus.Warn("one-compartment extravascular: expected 3 parameters (V, Ke, Ka)")
		return false
	}
	c.dose = event.Dose
	c.volume = parameters[0].Value
	c.ke = parameters[1].Value
	c.ka = parameters[2].Value
	c.nbPoints = event.NumberOfPoints
	c.interval = event.Interval.Hours()

	var failures []string
	ok := true
	ok = checkValue(ok, &failures, c.dose >= 0, "dose is negative")
	ok = checkValue(ok, &failures, finite(c.dose), "dose is not finite")
	ok = checkValue(ok, &failures, c.volume > 0, "volume is not greater than zero")
	ok = checkValue(ok, &failures, finite(c.volume), "volume is not finite")
	ok = checkValue(ok, &failures, c.ke > 0, "elimination rate is not greater than zero")
	ok = checkValue(ok, &failures, finite(c.ke), "elimination rate is not finite")
	ok = checkValue(ok, &failures, c.ka > 0, "absorption rate is not greater than zero")
	ok = checkValue(ok, &failures, finite(c.ka), "absorption rate is not finite")
	ok = checkValue(ok, &failures, c.ka != c.ke, "absorption rate equals elimination rate")
	ok = checkValue(ok, &failures, c.nbPoints >= 0, "number of points is negative")
	ok = checkValue(ok, &failures, c.interval > 0, "interval is not greater than zero")

	if !ok {
		logrus.WithField("failures", failures).Warn("one-compartment extravascular: invalid inputs")
	}
	return ok
}

func (c *OneCompartmentExtravascular) PrepareComputations(event core.IntakeEvent, parameters core.ParameterList) {
}

func (c *OneCompartmentExtravascular) ComputeLogarithms(event core.IntakeEvent, parameters core.ParameterList, times []float64) {
	c.logKe = exponentials(c.ke, times)
	c.logKa = exponentials(c.ka, times)
}

func (c *OneCompartmentExtravascular) residuals(inResiduals core.Residuals) (centralResidual, depotResidual float64) {
	if len(inResiduals) > 0 {
		centralResidual = inResiduals[0]
	}
	if len(inResiduals) > 1 {
		depotResidual = inResiduals[1]
	}
	return
}

func (c *OneCompartmentExtravascular) concentrationAt(expKe, expKa, centralResidual, depotAmount float64) float64 {
	coeff := c.ka / (c.volume * (c.ka - c.ke)) * depotAmount
	return coeff*(expKe-expKa) + centralResidual*expKe
}

func (c *OneCompartmentExtravascular) ComputeConcentrations(inResiduals core.Residuals) ([]float64, core.Residuals, error) {
	centralResidual, depotResidual := c.residuals(inResiduals)
	depotAmount := c.dose + depotResidual

	concentrations := make([]float64, len(c.logKe))
	for i := range concentrations {
		concentrations[i] = c.concentrationAt(c.logKe[i], c.logKa[i], centralResidual, depotAmount)
	}

	lastCentral := 0.0
	lastDepotExp := 1.0
	if len(concentrations) > 0 {
		lastCentral = concentrations[len(concentrations)-1]
		lastDepotExp = c.logKa[len(c.logKa)-1]
	}
	if lastCentral < 0 {
		return nil, nil, computationError("one-compartment extravascular: final concentration is negative")
	}
	return concentrations, core.Residuals{lastCentral, depotAmount * lastDepotExp}, nil
}

func (c *OneCompartmentExtravascular) ComputeConcentration(atTime float64, inResiduals core.Residuals) (float64, core.Residuals, error) {
	centralResidual, depotResidual := c.residuals(inResiduals)
	depotAmount := c.dose + depotResidual

	point := c.concentrationAt(exponentialAt(c.ke, atTime), exponentialAt(c.ka, atTime), centralResidual, depotAmount)

	expKeEnd := exponentialAt(c.ke, c.interval)
	expKaEnd := exponentialAt(c.ka, c.interval)
	residualCentral := c.concentrationAt(expKeEnd, expKaEnd, centralResidual, depotAmount)
	residualDepot := depotAmount * expKaEnd
	if c.interval == 0 {
		residualCentral, residualDepot = 0, 0
	}
	if residualCentral < 0 {
		return 0, nil, computationError("one-compartment extravascular: final concentration is negative")
	}
	return point, core.Residuals{residualCentral, residualDepot}, nil
}
