package core

// DosageTimeRange owns one Dosage and the [Start, End) window over which it
// applies. End may be undefined, meaning the range is open-ended. Two
// auxiliary sets let a clinician override the regimen's planned schedule
// without rebuilding the dosage tree: AddedIntakes forces unplanned doses
// into the window, SkippedIntakes suppresses planned ones.
type DosageTimeRange struct {
	Start, End     Instant
	Dosage         Dosage
	AddedIntakes   []IntakeEvent
	SkippedIntakes []IntakeEvent
}

// NewDosageTimeRange constructs a time range with no added or skipped
// intakes.
func NewDosageTimeRange(start, end Instant, dosage Dosage) DosageTimeRange {
	return DosageTimeRange{Start: start, End: end, Dosage: dosage}
}

// isSteadyState reports whether r's dosage is a DosageSteadyState, the one
// variant whose own Start/End do not drive extraction phase (spec.md §3's
// DosageTimeRange invariant).
func (r DosageTimeRange) isSteadyState() bool {
	_, ok := r.Dosage.(DosageSteadyState)
	return ok
}

// overlaps reports whether two time ranges' [Start, End) windows intersect,
// treating an undefined End as +infinity.
func overlaps(a, b DosageTimeRange) bool {
	aEnd, bEnd := a.End, b.End
	if aEnd.IsUndefined() && bEnd.IsUndefined() {
		return true
	}
	if aEnd.IsUndefined() {
		return a.Start.Before(bEnd)
	}
	if bEnd.IsUndefined() {
		return b.Start.Before(aEnd)
	}
	return a.Start.Before(bEnd) && b.Start.Before(aEnd)
}

// DosageHistory is an insertion-ordered, non-overlapping sequence of time
// ranges sorted by start. The only ways to mutate it, AddTimeRange and
// MergeDosage, maintain that invariant (spec.md §3, "DosageHistory").
type DosageHistory struct {
	ranges []DosageTimeRange
}

// NewDosageHistory constructs an empty history.
func NewDosageHistory() *DosageHistory {
	return &DosageHistory{}
}

// Ranges returns the time ranges in insertion (== start) order. The
// returned slice must not be mutated by the caller.
func (h *DosageHistory) Ranges() []DosageTimeRange {
	return h.ranges
}

// IsEmpty reports whether the history holds no time ranges.
func (h *DosageHistory) IsEmpty() bool {
	return len(h.ranges) == 0
}

// FirstStart returns the start of the earliest time range, or
// UndefinedInstant if the history is empty.
func (h *DosageHistory) FirstStart() Instant {
	if h.IsEmpty() {
		return UndefinedInstant
	}
	return h.ranges[0].Start
}

// LastEnd returns the end of the latest time range, or UndefinedInstant if
// the history is empty or the last range is open-ended.
func (h *DosageHistory) LastEnd() Instant {
	if h.IsEmpty() {
		return UndefinedInstant
	}
	return h.ranges[len(h.ranges)-1].End
}

// AddTimeRange appends r to the history. The caller must ensure r does not
// overlap any existing range; AddTimeRange returns InvariantViolation if it
// does, rather than silently corrupting the sorted-non-overlapping
// invariant.
func (h *DosageHistory) AddTimeRange(r DosageTimeRange) error {
	if err := ValidateDosage(r.Dosage); err != nil {
		return wrapError(InvalidPrecondition, "AddTimeRange: invalid dosage", err)
	}
	for _, existing := range h.ranges {
		if overlaps(existing, r) {
			return newError(InvariantViolation, "AddTimeRange: new range overlaps an existing range")
		}
	}
	h.ranges = append(h.ranges, r)
	return nil
}

// MergeDosage enforces the non-overlap invariant around a new range by (i)
// dropping every existing range whose start is at or after the new range's
// start, (ii) truncating any surviving range whose end extends past the
// new range's start, (iii) inserting a zero-dose LastingDose gap filler
// (same route as the preceding range) if truncation leaves a gap before the
// new range, and (iv) appending the new range, which is always last in the
// history afterward. Grounded on
// original_source/src/tucucore/dosage.cpp's DosageHistory::mergeDosage.
func (h *DosageHistory) MergeDosage(newRange DosageTimeRange) error {
	newStart := newRange.Start

	kept := h.ranges[:0:0]
	for _, existing := range h.ranges {
		if !existing.Start.Before(newStart) {
			continue
		}
		if existing.End.IsUndefined() || existing.End.After(newStart) {
			existing.End = newStart
		}
		kept = append(kept, existing)
	}
	h.ranges = kept

	if len(h.ranges) > 0 {
		last := h.ranges[len(h.ranges)-1]
		if last.End.Before(newStart) {
			gapDuration := newStart.Sub(last.End)
			filler := LastingDose{
				Dose:         0,
				DoseUnit:     "mg",
				Route:        last.Dosage.LastFormulationAndRoute(),
				InfusionTime: Duration{},
				Interval:     gapDuration,
			}
			gapRange := NewDosageTimeRange(last.End, last.End.Add(gapDuration), DosageRepeat{Child: filler, Count: 1})
			if err := h.AddTimeRange(gapRange); err != nil {
				return err
			}
		}
	}

	return h.AddTimeRange(newRange)
}

// LastFormulationAndRoute returns the route of the last leaf in the last
// time range, or an undefined FormulationAndRoute if the history is empty.
func (h *DosageHistory) LastFormulationAndRoute() FormulationAndRoute {
	if h.IsEmpty() {
		return FormulationAndRoute{}
	}
	return h.ranges[len(h.ranges)-1].Dosage.LastFormulationAndRoute()
}

// FormulationAndRouteList returns the union of routes across every time
// range in the history, in first-seen order.
func (h *DosageHistory) FormulationAndRouteList() []FormulationAndRoute {
	var out []FormulationAndRoute
	for _, r := range h.ranges {
		out = MergeFormulationAndRouteList(out, r.Dosage.FormulationAndRouteList())
	}
	return out
}
