package calculator

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/sotalya/tducore/core"
)

// TwoCompartmentBolus implements the two-compartment intravenous bolus
// model: C(t) = A*exp(-alpha*t) + B*exp(-beta*t), where alpha and beta are
// the macro-rate-constant eigenvalues of the two-compartment micro-constant
// system and A, B satisfy the initial conditions C(0)=C0, dC/dt(0)=dC0.
// Supplements the one-compartment kernels ported directly from
// onecompartmentbolus.cpp; alpha/beta come from the characteristic
// polynomial of k10, k12, k21, and A/B are solved as a 2x2 linear system
// via gonum/mat rather than by hand, since the system is exactly the shape
// gonum.org/v1/gonum/mat.Solve is built for.
type TwoCompartmentBolus struct {
	dose     float64
	volume   float64
	k10      float64
	k12      float64
	k21      float64
	nbPoints int
	interval float64

	alpha, beta float64
	coeffA      float64
	coeffB      float64

	logAlpha []float64
	logBeta  []float64
}

func newTwoCompartmentBolus() *TwoCompartmentBolus {
	return &TwoCompartmentBolus{}
}

// CheckInputs validates and caches dose, central volume, and the three
// micro-rate constants (elimination k10, and inter-compartmental transfer
// k12/k21).
func (c *TwoCompartmentBolus) CheckInputs(event core.IntakeEvent, parameters core.ParameterList) bool {
	if len(parameters) < 4 {
		logrus.Warn("two-compartment bolus: expected 4 parameters (V, k10, k12, k21)")
		return false
	}
	c.dose = event.Dose
	c.volume = parameters[0].Value
	c.k10 = parameters[1].Value
	c.k12 = parameters[2].Value
	c.k21 = parameters[3].Value
	c.nbPoints = event.NumberOfPoints
	c.interval = event.Interval.Hours()

	var failures []string
	ok := true
	ok = checkValue(ok, &failures, c.dose >= 0, "dose is negative")
	ok = checkValue(ok, &failures, finite(c.dose), "dose is not finite")
	ok = checkValue(ok, &failures, c.volume > 0, "volume is not greater than zero")
	ok = checkValue(ok, &failures, finite(c.volume), "volume is not finite")
	ok = checkValue(ok, &failures, c.k10 > 0, "k10 is not greater than zero")
	ok = checkValue(ok, &failures, finite(c.k10), "k10 is not finite")
	ok = checkValue(ok, &failures, c.k12 >= 0, "k12 is negative")
	ok = checkValue(ok, &failures, finite(c.k12), "k12 is not finite")
	ok = checkValue(ok, &failures, c.k21 >= 0, "k21 is negative")
	ok = checkValue(ok, &failures, finite(c.k21), "k21 is not finite")
	ok = checkValue(ok, &failures, c.nbPoints >= 0, "number of points is negative")
	ok = checkValue(ok, &failures, c.interval > 0, "interval is not greater than zero")

	if !ok {
		logrus.WithField("failures", failures).Warn("two-compartment bolus: invalid inputs")
	}
	return ok
}

// PrepareComputations solves for the macro-rate constants alpha, beta --
// the roots of lambda^2 - (k10+k12+k21)*lambda + k10*k21 = 0.
func (c *TwoCompartmentBolus) PrepareComputations(event core.IntakeEvent, parameters core.ParameterList) {
	sum := c.k10 + c.k12 + c.k21
	product := c.k10 * c.k21
	discriminant := sum*sum - 4*product
	if discriminant < 0 {
		discriminant = 0
	}
	sqrtDisc := math.Sqrt(discriminant)
	c.alpha = (sum + sqrtDisc) / 2
	c.beta = (sum - sqrtDisc) / 2
}

func (c *TwoCompartmentBolus) ComputeLogarithms(event core.IntakeEvent, parameters core.ParameterList, times []float64) {
	c.logAlpha = exponentials(c.alpha, times)
	c.logBeta = exponentials(c.beta, times)
}

// solveCoefficients solves A + B = C0, -alpha*A - beta*B = dC0 for (A, B)
// using gonum/mat, where C0 is the initial central concentration and dC0 is
// the initial slope implied by the two-compartment ODE at t=0.
func (c *TwoCompartmentBolus) solveCoefficients(centralResidual, peripheralResidual float64) (float64, float64) {
	c0 := c.dose/c.volume + centralResidual
	dc0 := -(c.k10+c.k12)*c0 + c.k21*peripheralResidual

	sys := mat.NewDense(2, 2, []float64{
		1, 1,
		-c.alpha, -c.beta,
	})
	rhs := mat.NewVecDense(2, []float64{c0, dc0})

	var solution mat.VecDense
	if err := solution.SolveVec(sys, rhs); err != nil {
		// alpha == beta is a measure-zero degenerate case (equal
		// eigenvalues); fall back to splitting the initial concentration
		// evenly rather than propagating a singular-matrix error.
		return c0 / 2, c0 / 2
	}
	return solution.AtVec(0), solution.AtVec(1)
}

func (c *TwoCompartmentBolus) ComputeConcentrations(inResiduals core.Residuals) ([]float64, core.Residuals, error) {
	centralResidual, peripheralResidual := 0.0, 0.0
	if len(inResiduals) > 0 {
		centralResidual = inResiduals[0]
	}
	if len(inResiduals) > 1 {
		peripheralResidual = inResiduals[1]
	}
	c.coeffA, c.coeffB = c.solveCoefficients(centralResidual, peripheralResidual)

	concentrations := make([]float64, len(c.logAlpha))
	for i := range concentrations {
		concentrations[i] = c.coeffA*c.logAlpha[i] + c.coeffB*c.logBeta[i]
	}

	last := 0.0
	if len(concentrations) > 0 {
		last = concentrations[len(concentrations)-1]
	}
	if last < 0 {
		return nil, nil, computationError("two-compartment bolus: final concentration is negative")
	}
	peripheralOut := peripheralResidual * exponentialAt(c.beta, c.interval)
	return concentrations, core.Residuals{last, peripheralOut}, nil
}

func (c *TwoCompartmentBolus) ComputeConcentration(atTime float64, inResiduals core.Residuals) (float64, core.Residuals, error) {
	centralResidual, peripheralResidual := 0.0, 0.0
	if len(inResiduals) > 0 {
		centralResidual = inResiduals[0]
	}
	if len(inResiduals) > 1 {
		peripheralResidual = inResiduals[1]
	}
	a, b := c.solveCoefficients(centralResidual, peripheralResidual)

	point := a*exponentialAt(c.alpha, atTime) + b*exponentialAt(c.beta, atTime)
	residual := a*exponentialAt(c.alpha, c.interval) + b*exponentialAt(c.beta, c.interval)
	peripheralOut := peripheralResidual * exponentialAt(c.beta, c.interval)
	if c.interval == 0 {
		residual, peripheralOut = 0, 0
	}
	if residual < 0 {
		return 0, nil, computationError("two-compartment bolus: final concentration is negative")
	}
	return point, core.Residuals{residual, peripheralOut}, nil
}
