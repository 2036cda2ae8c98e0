package core

import "github.com/sirupsen/logrus"

// ExtractionOption controls how a leaf dosage's cycle is truncated at the
// query window's end.
type ExtractionOption int

const (
	// EndofDate truncates the cycle at the window end: interval =
	// min(timeStep, end-start).
	EndofDate ExtractionOption = iota
	// ForceCycle always emits the full nominal cycle, even past the
	// window end.
	ForceCycle
)

func (o ExtractionOption) String() string {
	if o == ForceCycle {
		return "ForceCycle"
	}
	return "EndofDate"
}

// Extractor walks a DosageHistory over a [start, end) window and emits a
// sorted sequence of intake events (spec.md §4.2). It holds no state of its
// own; per spec.md §5, a caller may run independent extractions
// concurrently as long as they do not share a mutable IntakeSeries.
type Extractor struct{}

// Extract is the history-level entry point. It walks every DosageTimeRange
// in order, forcing ExtractionOption EndofDate on every range but the last
// (only the final range may honor a caller-requested ForceCycle), then
// sorts the accumulated series by event instant.
//
// Preconditions: start is defined; end is undefined or start < end.
// Postcondition: series = series(in) U extracted, sorted, every emitted
// event's time in [start, end) (modulo the ForceCycle extension).
func (Extractor) Extract(history *DosageHistory, start, end Instant, pointsPerHour float64, toUnit Unit, series *IntakeSeries, option ExtractionOption) error {
	if err := checkPreconditions(start, end); err != nil {
		return wrapError(IntakeExtractionError, "extract dosage history", err)
	}

	ranges := history.Ranges()
	for i, r := range ranges {
		effective := option
		if i != len(ranges)-1 {
			effective = EndofDate
		}
		if _, err := extractTimeRange(r, start, end, pointsPerHour, toUnit, series, effective); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"rangeIndex": i,
				"start":      start.String(),
				"end":        end.String(),
			}).Debug("intake extraction failed for time range")
			return wrapError(IntakeExtractionError, "extract dosage history", err)
		}
	}

	series.sortStable()
	return nil
}

// checkPreconditions implements the EXTRACT_PRECONDITIONS check shared by
// every recursion level in the original extractor.
func checkPreconditions(start, end Instant) error {
	if start.IsUndefined() {
		return newError(InvalidPrecondition, "start time is undefined")
	}
	if !end.IsUndefined() && !start.Before(end) {
		return newError(InvalidPrecondition, "start is not before end")
	}
	return nil
}

// instantBefore treats an undefined end as +infinity: every defined instant
// is "before" it.
func instantBefore(t, end Instant) bool {
	if end.IsUndefined() {
		return true
	}
	return t.Before(end)
}

// instantAfter treats an undefined end as +infinity: no instant is ever
// "after" it.
func instantAfter(t, end Instant) bool {
	if end.IsUndefined() {
		return false
	}
	return t.After(end)
}

// extractTimeRange is the range-level entry point: it computes the
// effective subwindow, dispatches to the dosage tree, then applies
// addedIntakes/skippedIntakes and evicts fully-decayed events.
func extractTimeRange(r DosageTimeRange, start, end Instant, pointsPerHour float64, toUnit Unit, series *IntakeSeries, option ExtractionOption) (int, error) {
	if err := checkPreconditions(start, end); err != nil {
		return 0, err
	}

	iStart := r.Start
	if r.isSteadyState() {
		iStart = start
	}

	var iEnd Instant
	switch {
	case end.IsUndefined():
		iEnd = r.End
	case r.End.IsUndefined():
		iEnd = end
	default:
		iEnd = Min(end, r.End)
	}

	if iStart.Equal(iEnd) {
		return 0, nil
	}

	nbIntakes := 0
	if iEnd.IsUndefined() || !iEnd.Before(iStart) {
		n, err := extractDosage(r.Dosage, iStart, iEnd, pointsPerHour, toUnit, series, option)
		if err != nil {
			return 0, err
		}
		nbIntakes = n
	}

	for _, added := range r.AddedIntakes {
		if !added.EventTime.Before(start) && instantBefore(added.EventTime, end) {
			*series = append(*series, added)
		}
	}

	for _, skipped := range r.SkippedIntakes {
		if !skipped.EventTime.Before(start) && instantBefore(skipped.EventTime, end) {
			*series = removeMatching(*series, skipped)
		}
	}

	*series = evictDecayed(*series, start)
	series.sortStable()

	return nbIntakes, nil
}

// removeMatching drops the first event equal to target, swap-and-pop style
// (order is re-imposed by the caller's subsequent sort).
func removeMatching(series IntakeSeries, target IntakeEvent) IntakeSeries {
	for i, ev := range series {
		if ev.Equal(target) {
			last := len(series) - 1
			series[i] = series[last]
			return series[:last]
		}
	}
	return series
}

// evictDecayed drops every event whose dose has entirely decayed before the
// window start: eventTime + interval < start.
func evictDecayed(series IntakeSeries, start Instant) IntakeSeries {
	out := series[:0]
	for _, ev := range series {
		if ev.EventTime.Add(ev.Interval).Before(start) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// extractDosage is the single type-switch that replaces per-variant virtual
// dispatch (spec.md §9's design rationale): every Dosage variant's
// windowing rule is decided here, in one auditable place.
func extractDosage(d Dosage, start, end Instant, pointsPerHour float64, toUnit Unit, series *IntakeSeries, option ExtractionOption) (int, error) {
	switch dd := d.(type) {
	case LastingDose:
		return extractLeaf(dd.Dose, dd.DoseUnit, dd.Route, dd.InfusionTime, dd.Interval, start, end, pointsPerHour, toUnit, series, option)
	case DailyDose:
		return extractLeaf(dd.Dose, dd.DoseUnit, dd.Route, dd.InfusionTime, dd.TimeStep(), start, end, pointsPerHour, toUnit, series, option)
	case WeeklyDose:
		return extractLeaf(dd.Dose, dd.DoseUnit, dd.Route, dd.InfusionTime, dd.TimeStep(), start, end, pointsPerHour, toUnit, series, option)
	case DosageRepeat:
		return extractRepeat(dd, start, end, pointsPerHour, toUnit, series, option)
	case DosageSequence:
		return extractSequence(dd, start, end, pointsPerHour, toUnit, series, option)
	case ParallelDosageSequence:
		return extractParallel(dd, start, end, pointsPerHour, toUnit, series, option)
	case DosageLoop:
		return extractLoop(dd, start, end, pointsPerHour, toUnit, series, option)
	case DosageSteadyState:
		return extractSteadyState(dd, start, end, pointsPerHour, toUnit, series, option)
	default:
		return 0, newError(InvalidPrecondition, "unknown dosage variant")
	}
}

// extractLeaf is shared by LastingDose, DailyDose, and WeeklyDose: the
// three variants that directly emit one IntakeEvent rather than recursing.
func extractLeaf(dose float64, doseUnit Unit, route FormulationAndRoute, infusionTime, timeStep Duration, start, end Instant, pointsPerHour float64, toUnit Unit, series *IntakeSeries, option ExtractionOption) (int, error) {
	var interval Duration
	if option == ForceCycle || end.IsUndefined() {
		interval = timeStep
	} else {
		interval = MinDuration(timeStep, end.Sub(start))
	}

	converted, err := Convert(dose, doseUnit, toUnit)
	if err != nil {
		return 0, err
	}

	absorption := route.AbsorptionModel
	if absorption == AbsorptionInfusion && infusionTime.IsZero() {
		absorption = AbsorptionIntravascular
	}

	points := int(interval.Hours()*pointsPerHour) + 1

	*series = append(*series, IntakeEvent{
		EventTime:       start,
		Dose:            converted,
		Unit:            toUnit,
		Interval:        interval,
		Route:           route,
		AbsorptionModel: absorption,
		InfusionTime:    infusionTime,
		NumberOfPoints:  points,
	})
	return 1, nil
}

func extractRepeat(d DosageRepeat, start, end Instant, pointsPerHour float64, toUnit Unit, series *IntakeSeries, option ExtractionOption) (int, error) {
	if err := checkPreconditions(start, end); err != nil {
		return 0, err
	}
	nbIntakes := 0
	currentTime := d.Child.FirstIntakeInterval(start)
	for i := 0; i < d.Count && instantBefore(currentTime, end); i++ {
		n, err := extractDosage(d.Child, currentTime, end, pointsPerHour, toUnit, series, option)
		if err != nil {
			return nbIntakes, err
		}
		nbIntakes += n
		currentTime = currentTime.Add(d.Child.TimeStep())
	}
	series.sortStable()
	return nbIntakes, nil
}

func extractSequence(d DosageSequence, start, end Instant, pointsPerHour float64, toUnit Unit, series *IntakeSeries, option ExtractionOption) (int, error) {
	if err := checkPreconditions(start, end); err != nil {
		return 0, err
	}
	if len(d.Children) == 0 {
		return 0, nil
	}
	nbIntakes := 0
	currentTime := d.Children[0].FirstIntakeInterval(start)
	for _, child := range d.Children {
		n, err := extractDosage(child, currentTime, end, pointsPerHour, toUnit, series, option)
		if err != nil {
			return nbIntakes, err
		}
		nbIntakes += n
		currentTime = currentTime.Add(child.TimeStep())
		if instantAfter(currentTime, end) {
			break
		}
	}
	series.sortStable()
	return nbIntakes, nil
}

func extractParallel(d ParallelDosageSequence, start, end Instant, pointsPerHour float64, toUnit Unit, series *IntakeSeries, option ExtractionOption) (int, error) {
	if err := checkPreconditions(start, end); err != nil {
		return 0, err
	}
	nbIntakes := 0
	for i, child := range d.Children {
		offset := Duration{}
		if i < len(d.Offsets) {
			offset = d.Offsets[i]
		}
		newStart := child.FirstIntakeInterval(start.Add(offset))
		if instantBefore(newStart, end) {
			n, err := extractDosage(child, newStart, end, pointsPerHour, toUnit, series, option)
			if err != nil {
				return nbIntakes, err
			}
			nbIntakes += n
		}
	}
	series.sortStable()
	return nbIntakes, nil
}

func extractLoop(d DosageLoop, start, end Instant, pointsPerHour float64, toUnit Unit, series *IntakeSeries, option ExtractionOption) (int, error) {
	if err := checkPreconditions(start, end); err != nil {
		return 0, err
	}
	if end.IsUndefined() {
		// Deviation from the original: rather than falling back to
		// wall-clock "now" (a determinism hazard spec.md §9 flags
		// explicitly), an unbounded loop is a precondition failure here.
		return 0, newError(InvalidPrecondition, "DosageLoop requires a defined window end")
	}
	nbIntakes := 0
	currentTime := d.Child.FirstIntakeInterval(start)
	for currentTime.Before(end) {
		n, err := extractDosage(d.Child, currentTime, end, pointsPerHour, toUnit, series, option)
		if err != nil {
			return nbIntakes, err
		}
		nbIntakes += n
		currentTime = currentTime.Add(d.Child.TimeStep())
	}
	series.sortStable()
	return nbIntakes, nil
}

func extractSteadyState(d DosageSteadyState, start, end Instant, pointsPerHour float64, toUnit Unit, series *IntakeSeries, option ExtractionOption) (int, error) {
	if err := checkPreconditions(start, end); err != nil {
		return 0, err
	}
	if end.IsUndefined() {
		return 0, newError(InvalidPrecondition, "DosageSteadyState requires a defined window end")
	}
	nbIntakes := 0
	currentTime := d.Child.FirstIntakeInterval(start)
	for currentTime.Before(end) {
		n, err := extractDosage(d.Child, currentTime, end, pointsPerHour, toUnit, series, option)
		if err != nil {
			return nbIntakes, err
		}
		nbIntakes += n
		currentTime = currentTime.Add(d.Child.TimeStep())
	}
	series.sortStable()
	return nbIntakes, nil
}
