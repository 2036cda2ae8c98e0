package core

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// leafInvariants is the struct-tag projection of the invariants spec.md §3
// requires of every dosage leaf: dose >= 0, a positive interval, and a
// valid formulation/route. Grounded on the go-radx pack's
// fhir/validation/validator.go accumulator pattern, adapted to wrap
// go-playground/validator instead of hand-rolled field checks.
type leafInvariants struct {
	Dose     float64 `validate:"gte=0"`
	Interval float64 `validate:"gt=0"`
	Route    int     `validate:"ne=0"`
}

var invariantValidator = validator.New()

// ValidationErrors collects every invariant violation found for a single
// dosage leaf, rather than failing fast on the first one -- useful when
// reporting a malformed dosage tree back to a query importer.
type ValidationErrors struct {
	errors []string
}

// Add appends a formatted validation error.
func (e *ValidationErrors) Add(format string, args ...any) {
	e.errors = append(e.errors, fmt.Sprintf(format, args...))
}

// HasErrors reports whether any invariant violation was recorded.
func (e *ValidationErrors) HasErrors() bool {
	return len(e.errors) > 0
}

func (e *ValidationErrors) Error() string {
	if len(e.errors) == 0 {
		return "no validation errors"
	}
	return fmt.Sprintf("%d dosage invariant violation(s): %s", len(e.errors), strings.Join(e.errors, "; "))
}

// ValidateLeaf checks a dosage leaf's invariants: dose >= 0, interval > 0,
// and a non-undefined formulation/route. It returns nil if leaf is valid,
// or a *ValidationErrors otherwise.
func ValidateLeaf(dose float64, interval Duration, route FormulationAndRoute) error {
	routeTag := 1
	if route.IsUndefined() {
		routeTag = 0
	}
	payload := leafInvariants{Dose: dose, Interval: interval.Hours(), Route: routeTag}

	verrs := &ValidationErrors{}
	if err := invariantValidator.Struct(payload); err != nil {
		var fieldErrs validator.ValidationErrors
		if ok := errorsAsValidationErrors(err, &fieldErrs); ok {
			for _, fe := range fieldErrs {
				verrs.Add("%s failed %q constraint (value=%v)", fe.Field(), fe.Tag(), fe.Value())
			}
		} else {
			verrs.Add("%v", err)
		}
	}
	if verrs.HasErrors() {
		return verrs
	}
	return nil
}

func errorsAsValidationErrors(err error, target *validator.ValidationErrors) bool {
	if fe, ok := err.(validator.ValidationErrors); ok {
		*target = fe
		return true
	}
	return false
}

// ValidateLastingDose validates a LastingDose's invariants, including the
// spec.md §3 rule that InfusionTime must not exceed Interval.
func ValidateLastingDose(d LastingDose) error {
	if err := ValidateLeaf(d.Dose, d.Interval, d.Route); err != nil {
		return err
	}
	if d.InfusionTime.Compare(d.Interval) > 0 {
		return newError(InvalidPrecondition, "LastingDose: infusion time exceeds interval")
	}
	return nil
}

// ValidateDosage walks a Dosage tree and validates every leaf's invariants,
// accumulating every violation found instead of failing on the first.
// AddTimeRange and MergeDosage call this before accepting a new range, so a
// malformed dosage tree (negative dose, non-positive interval, undefined
// route, infusion time exceeding interval) is rejected at the history
// boundary rather than silently reaching the extractor.
func ValidateDosage(d Dosage) error {
	verrs := &ValidationErrors{}
	collectDosageErrors(d, verrs)
	if verrs.HasErrors() {
		return verrs
	}
	return nil
}

func collectDosageErrors(d Dosage, verrs *ValidationErrors) {
	switch v := d.(type) {
	case LastingDose:
		if err := ValidateLeaf(v.Dose, v.Interval, v.Route); err != nil {
			verrs.Add("%v", err)
		}
		if v.InfusionTime.Compare(v.Interval) > 0 {
			verrs.Add("LastingDose: infusion time exceeds interval")
		}
	case DailyDose:
		collectDailyDoseErrors(v, v.TimeStep(), verrs)
	case WeeklyDose:
		collectDailyDoseErrors(v.DailyDose, v.TimeStep(), verrs)
	case DosageRepeat:
		collectDosageErrors(v.Child, verrs)
	case DosageSequence:
		for _, c := range v.Children {
			collectDosageErrors(c, verrs)
		}
	case ParallelDosageSequence:
		for _, c := range v.Children {
			collectDosageErrors(c, verrs)
		}
	case DosageLoop:
		collectDosageErrors(v.Child, verrs)
	case DosageSteadyState:
		collectDosageErrors(v.Child, verrs)
	}
}

// collectDailyDoseErrors validates a DailyDose (or the embedded DailyDose of
// a WeeklyDose) against the caller-supplied recurrence step, since neither
// carries an explicit Interval field the way LastingDose does.
func collectDailyDoseErrors(d DailyDose, step Duration, verrs *ValidationErrors) {
	if err := ValidateLeaf(d.Dose, step, d.Route); err != nil {
		verrs.Add("%v", err)
	}
	if d.InfusionTime.Compare(step) > 0 {
		verrs.Add("daily dose: infusion time exceeds interval")
	}
}
