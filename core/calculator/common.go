package calculator

import (
	"fmt"
	"math"

	"github.com/sotalya/tducore/core"
)

// checkValue mirrors the original checkValue(condition, message) idiom from
// the ported C++ kernels: it logs nothing itself, it just folds a labeled
// boolean into an accumulating bOK, so CheckInputs can report exactly which
// precondition failed without short-circuiting on the first one.
func checkValue(ok bool, failures *[]string, condition bool, message string) bool {
	if !condition {
		*failures = append(*failures, message)
	}
	return ok && condition
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// exponentials applies exp(-rate*t) over every sample time, the shared shape
// of ComputeLogarithms across every one- and two-compartment kernel.
func exponentials(rate float64, times []float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = math.Exp(-rate * t)
	}
	return out
}

// exponentialAt evaluates exp(-rate*t) for a single point, used by the
// ComputeConcentration single-sample variant.
func exponentialAt(rate, t float64) float64 {
	return math.Exp(-rate * t)
}

// computationError builds a *core.Error tagged core.CalculationError, the
// status a kernel reports when a post-condition (e.g. non-negative
// concentration) is violated.
func computationError(format string, args ...any) error {
	return &core.Error{Status: core.CalculationError, Message: fmt.Sprintf(format, args...)}
}

// sampleTimes builds the nominal [0, interval] sample grid of nbPoints evenly
// spaced times for an intake ({0} when nbPoints <= 1). No kernel calls it:
// core.Calculator.ComputeLogarithms takes its times from the caller, and the
// kernel tests use sampleTimes to build that argument.
func sampleTimes(interval core.Duration, nbPoints int) []float64 {
	if nbPoints <= 1 {
		return []float64{0}
	}
	times := make([]float64, nbPoints)
	step := interval.Hours() / float64(nbPoints-1)
	for i := range times {
		times[i] = step * float64(i)
	}
	return times
}
