package core

import "sort"

// IntakeEvent is one flat administration record produced by Extractor. It
// carries everything a PK calculator needs to compute a concentration
// trajectory for a single intake (spec.md §3, "IntakeEvent").
type IntakeEvent struct {
	// EventTime is the instant the dose is administered.
	EventTime Instant
	// Offset is the (possibly zero) offset within a compound infusion.
	Offset Duration
	// Dose is already converted to Unit.
	Dose float64
	Unit Unit
	// Interval is the time to the next event in this cycle.
	Interval Duration
	// Route is the formulation/route of administration.
	Route FormulationAndRoute
	// AbsorptionModel is the effective absorption model for this intake
	// (may differ from Route.AbsorptionModel -- see the zero-infusion
	// downgrade rule in extractor.go).
	AbsorptionModel AbsorptionModel
	// InfusionTime is the duration of the infusion, if any.
	InfusionTime Duration
	// NumberOfPoints is the requested sample density for this intake:
	// floor(intervalHours * pointsPerHour) + 1.
	NumberOfPoints int
}

// Equal reports whether two intake events describe the same administration
// record. Used by the extractor to locate an entry matching a
// skippedIntakes entry by value.
func (e IntakeEvent) Equal(o IntakeEvent) bool {
	return e.EventTime.Equal(o.EventTime) &&
		e.Offset == o.Offset &&
		e.Dose == o.Dose &&
		e.Unit == o.Unit &&
		e.Interval == o.Interval &&
		e.Route.Equal(o.Route) &&
		e.AbsorptionModel == o.AbsorptionModel &&
		e.InfusionTime == o.InfusionTime &&
		e.NumberOfPoints == o.NumberOfPoints
}

// IntakeSeries is a sorted sequence of intake events, totally ordered by
// event instant (ties keep insertion order -- see sortStable).
type IntakeSeries []IntakeEvent

// sortStable re-establishes the total order by event instant, preserving
// relative order among events sharing an instant. Extractor calls this
// after every recursion frame that can have appended events out of order.
func (s IntakeSeries) sortStable() {
	sort.SliceStable(s, func(i, j int) bool {
		return s[i].EventTime.Before(s[j].EventTime)
	})
}

// Residuals is the PK state (per compartment) carried forward between
// intakes. Its length equals the compartment count of the chosen model.
type Residuals []float64
