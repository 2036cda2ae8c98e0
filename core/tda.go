package core

import "sort"

// tdaPointsPerHour is the nominal sample density used when extracting
// intakes purely to locate them relative to samples: TDACalculator does not
// need a concentration trajectory, just event instants, so a coarse
// density suffices. Grounded on
// original_source/src/tucucore/tdacalculator.cpp, which hardcodes 1.
const tdaPointsPerHour = 1.0

// TDACalculator computes, for each sample instant, the signed duration
// from the nearest preceding intake (or the nearest succeeding one, if no
// intake precedes the sample). Negative durations denote samples taken
// before any dose (spec.md §4.4).
type TDACalculator struct{}

// CalculateDurations extracts the full intake series spanning history
// (from its first range's start to its last range's end) and binary-searches
// the surrounding intakes for each sample.
func (TDACalculator) CalculateDurations(samples []Instant, history *DosageHistory) ([]Duration, error) {
	if history.IsEmpty() {
		return nil, newError(InvalidPrecondition, "dosage history has no time ranges")
	}

	var intakes IntakeSeries
	extractor := Extractor{}
	// TDA only needs event instants, not converted doses, so target "mg" --
	// the dose unit every leaf is expressed in -- rather than a
	// concentration unit a weight dose could never legally convert to.
	if err := extractor.Extract(history, history.FirstStart(), history.LastEnd(), tdaPointsPerHour, "mg", &intakes, EndofDate); err != nil {
		return nil, wrapError(IntakeExtractionError, "calculate time-after-dose durations", err)
	}

	durations := make([]Duration, len(samples))
	for i, sample := range samples {
		durations[i] = nearestIntakeOffset(intakes, sample)
	}
	return durations, nil
}

// nearestIntakeOffset returns sample - (the last intake at or before
// sample), or sample - (the first intake) if no intake precedes it.
func nearestIntakeOffset(intakes IntakeSeries, sample Instant) Duration {
	if len(intakes) == 0 {
		return Duration{}
	}
	// idx is the first intake strictly after sample.
	idx := sort.Search(len(intakes), func(i int) bool {
		return intakes[i].EventTime.After(sample)
	})
	if idx == 0 {
		return sample.Sub(intakes[0].EventTime)
	}
	return sample.Sub(intakes[idx-1].EventTime)
}
