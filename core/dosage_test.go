package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func oralRoute() FormulationAndRoute {
	return NewFormulationAndRoute(FormulationTablet, RouteOral, AbsorptionExtravascular)
}

func TestLastingDose_TimeStepAndFirstIntake(t *testing.T) {
	d := LastingDose{Dose: 100, DoseUnit: "mg", Route: oralRoute(), Interval: NewDuration(12 * time.Hour)}
	from := NewInstant(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC))

	assert.Equal(t, 12.0, d.TimeStep().Hours())
	assert.True(t, d.FirstIntakeInterval(from).Equal(from))
}

func TestDailyDose_TimeStepIs24Hours(t *testing.T) {
	d := DailyDose{Dose: 50, DoseUnit: "mg", Route: oralRoute(), At: NewTimeOfDay(8, 0, 0)}
	assert.Equal(t, 24.0, d.TimeStep().Hours())
}

func TestWeeklyDose_TimeStepIs7Days(t *testing.T) {
	d := WeeklyDose{
		DailyDose: DailyDose{Dose: 50, DoseUnit: "mg", Route: oralRoute(), At: NewTimeOfDay(8, 0, 0)},
		Day:       Monday,
	}
	assert.Equal(t, 24.0*7, d.TimeStep().Hours())
}

func TestDosageSequence_TimeStepSumsChildren(t *testing.T) {
	a := LastingDose{Dose: 1, Route: oralRoute(), Interval: NewDuration(time.Hour)}
	b := LastingDose{Dose: 1, Route: oralRoute(), Interval: NewDuration(2 * time.Hour)}
	seq := DosageSequence{Children: []BoundedDosage{a, b}}
	assert.Equal(t, 3.0, seq.TimeStep().Hours())
}

func TestDosageSequence_LastFormulationAndRouteIsLastChild(t *testing.T) {
	ivRoute := NewFormulationAndRoute(FormulationParenteralSolution, RouteIntravenous, AbsorptionIntravascular)
	a := LastingDose{Dose: 1, Route: oralRoute(), Interval: NewDuration(time.Hour)}
	b := LastingDose{Dose: 1, Route: ivRoute, Interval: NewDuration(time.Hour)}
	seq := DosageSequence{Children: []BoundedDosage{a, b}}
	assert.True(t, seq.LastFormulationAndRoute().Equal(ivRoute))
}

func TestParallelDosageSequence_TimeStepIsFirstChild(t *testing.T) {
	a := LastingDose{Dose: 1, Route: oralRoute(), Interval: NewDuration(6 * time.Hour)}
	b := LastingDose{Dose: 1, Route: oralRoute(), Interval: NewDuration(8 * time.Hour)}
	par := ParallelDosageSequence{Children: []BoundedDosage{a, b}, Offsets: []Duration{{}, NewDuration(time.Hour)}}
	assert.Equal(t, 6.0, par.TimeStep().Hours())
}

func TestDosageRepeat_CloneIsDeep(t *testing.T) {
	child := LastingDose{Dose: 1, Route: oralRoute(), Interval: NewDuration(time.Hour)}
	repeat := DosageRepeat{Child: child, Count: 3}
	clone := repeat.Clone().(DosageRepeat)
	assert.Equal(t, repeat.Count, clone.Count)
	assert.Equal(t, repeat.Child, clone.Child)
}

func TestDosageLoop_FormulationAndRouteListDelegatesToChild(t *testing.T) {
	child := LastingDose{Dose: 1, Route: oralRoute(), Interval: NewDuration(time.Hour)}
	loop := DosageLoop{Child: child}
	list := loop.FormulationAndRouteList()
	assert.Len(t, list, 1)
	assert.True(t, list[0].Equal(oralRoute()))
}

func TestMergeFormulationAndRouteList_Dedupes(t *testing.T) {
	route := oralRoute()
	out := MergeFormulationAndRouteList(nil, []FormulationAndRoute{route, route})
	assert.Len(t, out, 1)
}
