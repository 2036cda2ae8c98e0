package core

import "time"

// Dosage is the recursive sum type describing a structured treatment
// regimen (spec.md §3, "Dosage (sum type)"). Rather than a per-variant
// method table reached through virtual dispatch, extraction logic lives
// entirely in extractDosage, which type-switches on the concrete
// variant -- see extractor.go. Dosage itself only exposes the handful of
// properties every variant can answer without knowing about windowing.
type Dosage interface {
	// TimeStep returns the nominal inter-dose interval: for a sequence, the
	// sum of children's time steps; for steady-state/loop, its child's step.
	TimeStep() Duration

	// FirstIntakeInterval returns the first administration instant at or
	// after from, respecting phase (time-of-day, day-of-week, ...).
	FirstIntakeInterval(from Instant) Instant

	// LastFormulationAndRoute returns the route of the last leaf reachable
	// from this dosage, used when inserting history gap fillers.
	LastFormulationAndRoute() FormulationAndRoute

	// FormulationAndRouteList returns the union of routes across all
	// leaves reachable from this dosage.
	FormulationAndRouteList() []FormulationAndRoute

	// Clone returns a deep copy. Composite variants exclusively own their
	// children, so a clone must recursively clone them too; this is what
	// lets DosageHistory.MergeDosage capture the preceding range's route in
	// an independent gap-filler dosage.
	Clone() Dosage
}

// BoundedDosage is a Dosage with a finite, well-defined time step -- the
// kind of dosage DosageRepeat, DosageSequence, ParallelDosageSequence,
// DosageLoop, and DosageSteadyState may hold as a child. DosageLoop and
// DosageSteadyState are themselves unbounded (they run until the query
// window ends) and so do not implement BoundedDosage.
type BoundedDosage interface {
	Dosage
	bounded()
}

// LastingDose repeats a single dose every Interval, starting immediately at
// the extraction window's start.
type LastingDose struct {
	Dose         float64
	DoseUnit     Unit
	Route        FormulationAndRoute
	InfusionTime Duration
	Interval     Duration
}

func (d LastingDose) bounded() {}

func (d LastingDose) TimeStep() Duration { return d.Interval }

func (d LastingDose) FirstIntakeInterval(from Instant) Instant { return from }

func (d LastingDose) LastFormulationAndRoute() FormulationAndRoute { return d.Route }

func (d LastingDose) FormulationAndRouteList() []FormulationAndRoute {
	return []FormulationAndRoute{d.Route}
}

func (d LastingDose) Clone() Dosage { return d }

// DailyDose administers one dose per day at a fixed wall-clock time.
type DailyDose struct {
	Dose         float64
	DoseUnit     Unit
	Route        FormulationAndRoute
	InfusionTime Duration
	At           TimeOfDay
}

func (d DailyDose) bounded() {}

func (d DailyDose) TimeStep() Duration { return NewDuration(24 * time.Hour) }

func (d DailyDose) FirstIntakeInterval(from Instant) Instant {
	return atTimeOfDay(from, d.At)
}

func (d DailyDose) LastFormulationAndRoute() FormulationAndRoute { return d.Route }

func (d DailyDose) FormulationAndRouteList() []FormulationAndRoute {
	return []FormulationAndRoute{d.Route}
}

func (d DailyDose) Clone() Dosage { return d }

// WeeklyDose administers one dose per week on a fixed day of week and
// wall-clock time.
type WeeklyDose struct {
	DailyDose
	Day DayOfWeek
}

func (d WeeklyDose) TimeStep() Duration { return NewDuration(7 * 24 * time.Hour) }

func (d WeeklyDose) FirstIntakeInterval(from Instant) Instant {
	return nextDayOfWeekAtTime(from, d.Day, d.At)
}

func (d WeeklyDose) Clone() Dosage { return d }

// DosageRepeat applies a bounded child dosage N consecutive times.
type DosageRepeat struct {
	Child BoundedDosage
	Count int
}

func (d DosageRepeat) bounded() {}

func (d DosageRepeat) TimeStep() Duration { return d.Child.TimeStep() }

func (d DosageRepeat) FirstIntakeInterval(from Instant) Instant {
	return d.Child.FirstIntakeInterval(from)
}

func (d DosageRepeat) LastFormulationAndRoute() FormulationAndRoute {
	return d.Child.LastFormulationAndRoute()
}

func (d DosageRepeat) FormulationAndRouteList() []FormulationAndRoute {
	return d.Child.FormulationAndRouteList()
}

func (d DosageRepeat) Clone() Dosage {
	return DosageRepeat{Child: d.Child.Clone().(BoundedDosage), Count: d.Count}
}

// DosageSequence concatenates a list of bounded child dosages.
type DosageSequence struct {
	Children []BoundedDosage
}

func (d DosageSequence) bounded() {}

func (d DosageSequence) TimeStep() Duration {
	steps := make([]Duration, 0, len(d.Children))
	for _, c := range d.Children {
		steps = append(steps, c.TimeStep())
	}
	return SumDurations(steps...)
}

func (d DosageSequence) FirstIntakeInterval(from Instant) Instant {
	if len(d.Children) == 0 {
		return from
	}
	return d.Children[0].FirstIntakeInterval(from)
}

func (d DosageSequence) LastFormulationAndRoute() FormulationAndRoute {
	if len(d.Children) == 0 {
		return FormulationAndRoute{}
	}
	return d.Children[len(d.Children)-1].LastFormulationAndRoute()
}

func (d DosageSequence) FormulationAndRouteList() []FormulationAndRoute {
	var out []FormulationAndRoute
	for _, c := range d.Children {
		out = MergeFormulationAndRouteList(out, c.FormulationAndRouteList())
	}
	return out
}

func (d DosageSequence) Clone() Dosage {
	children := make([]BoundedDosage, len(d.Children))
	for i, c := range d.Children {
		children[i] = c.Clone().(BoundedDosage)
	}
	return DosageSequence{Children: children}
}

// ParallelDosageSequence runs a list of bounded child dosages concurrently,
// each shifted by its own offset from the window start.
type ParallelDosageSequence struct {
	Children []BoundedDosage
	Offsets  []Duration
}

func (d ParallelDosageSequence) bounded() {}

func (d ParallelDosageSequence) TimeStep() Duration {
	if len(d.Children) == 0 {
		return Duration{}
	}
	return d.Children[0].TimeStep()
}

func (d ParallelDosageSequence) FirstIntakeInterval(from Instant) Instant {
	if len(d.Children) == 0 {
		return from
	}
	return d.Children[0].FirstIntakeInterval(from)
}

func (d ParallelDosageSequence) LastFormulationAndRoute() FormulationAndRoute {
	if len(d.Children) == 0 {
		return FormulationAndRoute{}
	}
	return d.Children[len(d.Children)-1].LastFormulationAndRoute()
}

func (d ParallelDosageSequence) FormulationAndRouteList() []FormulationAndRoute {
	var out []FormulationAndRoute
	for _, c := range d.Children {
		out = MergeFormulationAndRouteList(out, c.FormulationAndRouteList())
	}
	return out
}

func (d ParallelDosageSequence) Clone() Dosage {
	children := make([]BoundedDosage, len(d.Children))
	for i, c := range d.Children {
		children[i] = c.Clone().(BoundedDosage)
	}
	offsets := make([]Duration, len(d.Offsets))
	copy(offsets, d.Offsets)
	return ParallelDosageSequence{Children: children, Offsets: offsets}
}

// DosageLoop repeats a bounded child dosage indefinitely, until the
// extraction window's end.
type DosageLoop struct {
	Child BoundedDosage
}

func (d DosageLoop) TimeStep() Duration { return d.Child.TimeStep() }

func (d DosageLoop) FirstIntakeInterval(from Instant) Instant {
	return d.Child.FirstIntakeInterval(from)
}

func (d DosageLoop) LastFormulationAndRoute() FormulationAndRoute {
	return d.Child.LastFormulationAndRoute()
}

func (d DosageLoop) FormulationAndRouteList() []FormulationAndRoute {
	return d.Child.FormulationAndRouteList()
}

func (d DosageLoop) Clone() Dosage {
	return DosageLoop{Child: d.Child.Clone().(BoundedDosage)}
}

// DosageSteadyState repeats a bounded child dosage, assumed to have already
// run long enough that its cycle-to-cycle profile is invariant. Anchor
// records the regimen's true start for bookkeeping, but extraction ignores
// it: the query window alone drives phase (spec.md §3 and §4.2).
type DosageSteadyState struct {
	Child  BoundedDosage
	Anchor Instant
}

func (d DosageSteadyState) TimeStep() Duration { return d.Child.TimeStep() }

func (d DosageSteadyState) FirstIntakeInterval(from Instant) Instant {
	return d.Child.FirstIntakeInterval(from)
}

func (d DosageSteadyState) LastFormulationAndRoute() FormulationAndRoute {
	return d.Child.LastFormulationAndRoute()
}

func (d DosageSteadyState) FormulationAndRouteList() []FormulationAndRoute {
	return d.Child.FormulationAndRouteList()
}

func (d DosageSteadyState) Clone() Dosage {
	return DosageSteadyState{Child: d.Child.Clone().(BoundedDosage), Anchor: d.Anchor}
}
