// Package calculator implements core.Calculator for each supported
// (compartment count, absorption model) pair. It registers its
// constructor into core.NewCalculatorFunc on import, mirroring the
// inference-sim-inference-sim latency-model registration pattern: the
// interface lives in core, the implementations live here, and an init()
// closes the loop without an import cycle.
//
// Every kernel follows the same state machine (core.Calculator):
// CheckInputs caches and validates the intake's parameters, PrepareComputations
// derives model-specific quantities, ComputeLogarithms precomputes
// exponential terms over the sample times, and ComputeConcentrations /
// ComputeConcentration apply them. A kernel instance is not safe for
// concurrent use across intakes; callers needing concurrency create one
// instance per goroutine.
package calculator
