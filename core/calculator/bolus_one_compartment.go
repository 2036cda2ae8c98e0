package calculator

import (
	"github.com/sirupsen/logrus"

	"github.com/sotalya/tducore/core"
)

// OneCompartmentBolus implements C(t) = (D/V + R_in) * exp(-Ke*t), the
// one-compartment intravascular bolus model (spec.md §4.3). Grounded on
// original_source/src/tucucore/onecompartmentbolus.cpp.
type OneCompartmentBolus struct {
	dose      float64
	volume    float64
	ke        float64
	nbPoints  int
	interval  float64
	logarithm []float64
}

func newOneCompartmentBolus() *OneCompartmentBolus {
	return &OneCompartmentBolus{}
}

// CheckInputs validates and caches dose, volume, Ke, point count, and
// interval. Mirrors OneCompartmentBolus::checkInputs's accumulate-then-
// report style rather than failing on the first bad field.
func (c *OneCompartmentBolus) CheckInputs(event core.IntakeEvent, parameters core.ParameterList) bool {
	if len(parameters) < 2 {
		logrus.Warn("one-compartment bolus: expected 2 parameters (V, Ke)")
		return false
	}
	c.dose = event.Dose
	c.volume = parameters[0].Value
	c.ke = parameters[1].Value
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
	ok = checkValue(ok, &failures, c.nbPoints >= 0, "number of points is negative")
	ok = checkValue(ok, &failures, c.interval > 0, "interval is not greater than zero")

	if !ok {
		logrus.WithField("failures", failures).Warn("one-compartment bolus: invalid inputs")
	}
	return ok
}

// PrepareComputations is a no-op: the bolus model needs no derived
// quantities ahead of ComputeLogarithms.
func (c *OneCompartmentBolus) PrepareComputations(event core.IntakeEvent, parameters core.ParameterList) {
}

// ComputeLogarithms precomputes exp(-Ke*t) over the sampled times.
func (c *OneCompartmentBolus) ComputeLogarithms(event core.IntakeEvent, parameters core.ParameterList, times []float64) {
	c.logarithm = exponentials(c.ke, times)
}

// ComputeConcentrations returns the trajectory (D/V + R_in) * exp(-Ke*t) and
// the final sample as the next residual.
func (c *OneCompartmentBolus) ComputeConcentrations(inResiduals core.Residuals) ([]float64, core.Residuals, error) {
	inResidual := 0.0
	if len(inResiduals) > 0 {
		inResidual = inResiduals[0]
	}
	base := c.dose/c.volume + inResidual

	concentrations := make([]float64, len(c.logarithm))
	for i, exp := range c.logarithm {
		concentrations[i] = base * exp
	}

	last := 0.0
	if len(concentrations) > 0 {
		last = concentrations[len(concentrations)-1]
	}
	if last < 0 {
		return nil, nil, computationError("one-compartment bolus: final concentration is negative")
	}
	return concentrations, core.Residuals{last}, nil
}

// ComputeConcentration evaluates a single point atTime (hours since the
// intake's start), returning the residual at the end of the full interval.
// interval == 0 marks the last cycle, so the forwarded residual is zero,
// matching the original's m_Int == 0 special case.
func (c *OneCompartmentBolus) ComputeConcentration(atTime float64, inResiduals core.Residuals) (float64, core.Residuals, error) {
	inResidual := 0.0
	if len(inResiduals) > 0 {
		inResidual = inResiduals[0]
	}
	base := c.dose/c.volume + inResidual

	point := base * exponentialAt(c.ke, atTime)

	residual := base * exponentialAt(c.ke, c.interval)
	if c.interval == 0 {
		residual = 0
	}
	if residual < 0 {
		return 0, nil, computationError("one-compartment bolus: final concentration is negative")
	}
	return point, core.Residuals{residual}, nil
}
