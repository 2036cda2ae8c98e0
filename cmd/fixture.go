package cmd

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sotalya/tducore/core"
)

// fixture is the on-disk YAML shape accepted by the extract command: a drug
// model plus parameters, a list of dosage time ranges, and the extraction
// window to compute over. It exists purely as a CLI convenience for
// exercising the core pipeline end to end; production callers build
// core.DosageHistory values directly (see query.QueryData).
type fixture struct {
	Drug struct {
		Model      int `yaml:"model"`
		Parameters []struct {
			Name  string  `yaml:"name"`
			Value float64 `yaml:"value"`
		} `yaml:"parameters"`
	} `yaml:"drug"`
	Ranges []struct {
		Start  string `yaml:"start"`
		End    string `yaml:"end"`
		Dosage struct {
			Dose          float64 `yaml:"dose"`
			Unit          string  `yaml:"unit"`
			IntervalHours float64 `yaml:"interval_hours"`
			InfusionHours float64 `yaml:"infusion_hours"`
			Formulation   string  `yaml:"formulation"`
			Route         string  `yaml:"route"`
			Absorption    string  `yaml:"absorption"`
		} `yaml:"dosage"`
	} `yaml:"ranges"`
	Window struct {
		Start         string  `yaml:"start"`
		End           string  `yaml:"end"`
		PointsPerHour float64 `yaml:"points_per_hour"`
		ToUnit        string  `yaml:"to_unit"`
	} `yaml:"window"`
}

type loadedFixture struct {
	History       *core.DosageHistory
	Model         core.CompartmentModel
	Parameters    core.ParameterList
	WindowStart   core.Instant
	WindowEnd     core.Instant
	PointsPerHour float64
	ToUnit        core.Unit
}

func loadFixture(path string) (*loadedFixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	var f fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}

	history := core.NewDosageHistory()
	for _, r := range f.Ranges {
		start, err := parseInstant(r.Start)
		if err != nil {
			return nil, fmt.Errorf("range start: %w", err)
		}
		end, err := parseOptionalInstant(r.End)
		if err != nil {
			return nil, fmt.Errorf("range end: %w", err)
		}

		route := core.NewFormulationAndRoute(formulationOf(r.Dosage.Formulation), routeOf(r.Dosage.Route), absorptionOf(r.Dosage.Absorption))
		dosage := core.LastingDose{
			Dose:         r.Dosage.Dose,
			DoseUnit:     core.Unit(r.Dosage.Unit),
			Route:        route,
			InfusionTime: core.NewDuration(time.Duration(r.Dosage.InfusionHours * float64(time.Hour))),
			Interval:     core.NewDuration(time.Duration(r.Dosage.IntervalHours * float64(time.Hour))),
		}
		if err := history.AddTimeRange(core.NewDosageTimeRange(start, end, dosage)); err != nil {
			return nil, fmt.Errorf("add range: %w", err)
		}
	}

	windowStart, err := parseInstant(f.Window.Start)
	if err != nil {
		return nil, fmt.Errorf("window start: %w", err)
	}
	windowEnd, err := parseOptionalInstant(f.Window.End)
	if err != nil {
		return nil, fmt.Errorf("window end: %w", err)
	}

	params := make(core.ParameterList, len(f.Drug.Parameters))
	for i, p := range f.Drug.Parameters {
		params[i] = core.Parameter{Name: p.Name, Value: p.Value}
	}

	return &loadedFixture{
		History:       history,
		Model:         core.CompartmentModel(f.Drug.Model),
		Parameters:    params,
		WindowStart:   windowStart,
		WindowEnd:     windowEnd,
		PointsPerHour: f.Window.PointsPerHour,
		ToUnit:        core.Unit(f.Window.ToUnit),
	}, nil
}

func parseInstant(s string) (core.Instant, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return core.UndefinedInstant, err
	}
	return core.NewInstant(t), nil
}

func parseOptionalInstant(s string) (core.Instant, error) {
	if s == "" {
		return core.UndefinedInstant, nil
	}
	return parseInstant(s)
}

func formulationOf(s string) core.Formulation {
	switch s {
	case "oral_solution":
		return core.FormulationOralSolution
	case "parenteral_solution":
		return core.FormulationParenteralSolution
	case "capsule":
		return core.FormulationCapsule
	case "suppository":
		return core.FormulationSuppository
	default:
		return core.FormulationTablet
	}
}

func routeOf(s string) core.AdministrationRoute {
	switch s {
	case "intravenous":
		return core.RouteIntravenous
	case "subcutaneous":
		return core.RouteSubcutaneous
	case "intramuscular":
		return core.RouteIntramuscular
	case "rectal":
		return core.RouteRectal
	default:
		return core.RouteOral
	}
}

func absorptionOf(s string) core.AbsorptionModel {
	switch s {
	case "intravascular":
		return core.AbsorptionIntravascular
	case "infusion":
		return core.AbsorptionInfusion
	case "extravascular":
		return core.AbsorptionExtravascular
	default:
		return core.AbsorptionBolus
	}
}
