// Package core provides the computational pipeline of a therapeutic drug
// monitoring engine: dosage algebra, dosage history, intake extraction, and
// the time-after-dose calculator. PK calculator kernels that turn an intake
// into a concentration trajectory live in the core/calculator subpackage.
//
// # Reading Guide
//
// Start with these files to understand the pipeline:
//   - time.go: Instant, Duration, TimeOfDay, DayOfWeek primitives
//   - unit.go: unit conversion registry and Quantity
//   - dosage.go: the Dosage sum type (LastingDose, DailyDose, ... DosageSteadyState)
//   - history.go: DosageTimeRange and DosageHistory, including MergeDosage
//   - intake.go: IntakeEvent, IntakeSeries, Residuals
//   - extractor.go: Extractor, the windowing engine that walks a history
//   - tda.go: the time-after-dose calculator built on top of Extractor
//
// # Architecture
//
// core defines the Dosage sum type and the Extractor that walks it; PK
// kernels live in core/calculator and register themselves into core via an
// init()-time factory hook (NewCalculatorFunc), the same pattern used to
// keep an interface's owner decoupled from its implementations: production
// code imports core/calculator for the side effect of registration, and
// core itself never imports it.
package core
