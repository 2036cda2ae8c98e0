package calculator

import (
	"github.com/sirupsen/logrus"

	"github.com/sotalya/tducore/core"
)

// OneCompartmentInfusion implements the one-compartment constant-rate
// infusion model: during the infusion window [0, Tinf], concentration rises
// toward steady state; afterward it decays exponentially from the
// end-of-infusion concentration, the same affine-combination-of-exponentials
// shape as the bolus kernel (spec.md §4.3).
//
//	rate = D / Tinf
//	C(t) = rate/(V*Ke) * (1 - exp(-Ke*t)) + R_in*exp(-Ke*t)   for t <= Tinf
//	C(t) = C(Tinf) * exp(-Ke*(t-Tinf))                         for t >  Tinf
type OneCompartmentInfusion struct {
	dose         float64
	volume       float64
	ke           float64
	infusionTime float64
	nbPoints     int
	interval     float64

	logarithm []float64
}

func newOneCompartmentInfusion() *OneCompartmentInfusion {
	return &OneCompartmentInfusion{}
}

func (c *OneCompartmentInfusion) CheckInputs(event core.IntakeEvent, parameters core.ParameterList) bool {
	if len(parameters) < 2 {
		logrus.Warn("one-compartment infusion: expected 2 parameters (V, Ke)")
		return false
	}
	c.dose = event.Dose
	c.volume = parameters[0].Value
	c.ke = parameters[1].Value
	c.infusionTime = event.InfusionTime.Hours()
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
	ok = checkValue(ok, &failures, c.infusionTime > 0, "infusion time is not greater than zero")
	ok = checkValue(ok, &failures, c.nbPoints >= 0, "number of points is negative")
	ok = checkValue(ok, &failures, c.interval > 0, "interval is not greater than zero")

	if !ok {
		logrus.WithField("failures", failures).Warn("one-compartment infusion: invalid inputs")
	}
	return ok
}

func (c *OneCompartmentInfusion) PrepareComputations(event core.IntakeEvent, parameters core.ParameterList) {
}

func (c *OneCompartmentInfusion) ComputeLogarithms(event core.IntakeEvent, parameters core.ParameterList, times []float64) {
	c.logarithm = exponentials(c.ke, times)
}

func (c *OneCompartmentInfusion) concentrationAt(t, expKeT, inResidual float64) float64 {
	rate := c.dose / c.infusionTime
	if t <= c.infusionTime {
		return rate/(c.volume*c.ke)*(1-expKeT) + inResidual*expKeT
	}
	endConc := rate/(c.volume*c.ke)*(1-exponentialAt(c.ke, c.infusionTime)) + inResidual*exponentialAt(c.ke, c.infusionTime)
	return endConc * exponentialAt(c.ke, t-c.infusionTime)
}

func (c *OneCompartmentInfusion) ComputeConcentrations(inResiduals core.Residuals) ([]float64, core.Residuals, error) {
	inResidual := 0.0
	if len(inResiduals) > 0 {
		inResidual = inResiduals[0]
	}

	concentrations := make([]float64, len(c.logarithm))
	step := c.interval / float64(max(len(c.logarithm)-1, 1))
	for i := range concentrations {
		t := step * float64(i)
		concentrations[i] = c.concentrationAt(t, c.logarithm[i], inResidual)
	}

	last := 0.0
	if len(concentrations) > 0 {
		last = concentrations[len(concentrations)-1]
	}
	if last < 0 {
		return nil, nil, computationError("one-compartment infusion: final concentration is negative")
	}
	return concentrations, core.Residuals{last}, nil
}

func (c *OneCompartmentInfusion) ComputeConcentration(atTime float64, inResiduals core.Residuals) (float64, core.Residuals, error) {
	inResidual := 0.0
	if len(inResiduals) > 0 {
		inResidual = inResiduals[0]
	}

	point := c.concentrationAt(atTime, exponentialAt(c.ke, atTime), inResidual)
	residual := c.concentrationAt(c.interval, exponentialAt(c.ke, c.interval), inResidual)
	if c.interval == 0 {
		residual = 0
	}
	if residual < 0 {
		return 0, nil, computationError("one-compartment infusion: final concentration is negative")
	}
	return point, core.Residuals{residual}, nil
}
