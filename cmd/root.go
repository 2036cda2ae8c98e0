// cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sotalya/tducore/core"
	_ "github.com/sotalya/tducore/core/calculator"
)

var (
	fixturePath string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "tducore",
	Short: "Therapeutic drug monitoring pharmacokinetic engine",
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract intakes from a dosage history fixture and predict concentrations",
	Run: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		f, err := loadFixture(fixturePath)
		if err != nil {
			logrus.WithError(err).Fatal("failed to load fixture")
		}

		var series core.IntakeSeries
		extractor := core.Extractor{}
		if err := extractor.Extract(f.History, f.WindowStart, f.WindowEnd, f.PointsPerHour, f.ToUnit, &series, core.EndofDate); err != nil {
			logrus.WithError(err).Fatal("extraction failed")
		}
		logrus.Infof("extracted %d intake(s)", len(series))

		var residuals core.Residuals
		for i, intake := range series {
			calc, err := core.NewCalculatorFunc(f.Model, intake.AbsorptionModel)
			if err != nil {
				logrus.WithError(err).Fatal("no calculator for intake")
			}
			if !calc.CheckInputs(intake, f.Parameters) {
				logrus.Fatalf("intake %d failed calculator precondition checks", i)
			}
			calc.PrepareComputations(intake, f.Parameters)

			times := make([]float64, intake.NumberOfPoints)
			step := intake.Interval.Hours() / float64(maxInt(intake.NumberOfPoints-1, 1))
			for j := range times {
				times[j] = step * float64(j)
			}
			calc.ComputeLogarithms(intake, f.Parameters, times)

			concentrations, next, err := calc.ComputeConcentrations(residuals)
			if err != nil {
				logrus.WithError(err).Fatal("computation failed")
			}
			residuals = next

			fmt.Printf("intake %d at %s: %d samples, final residual %v\n",
				i, intake.EventTime.String(), len(concentrations), residuals)
		}
	},
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	extractCmd.Flags().StringVar(&fixturePath, "fixture", "", "path to a YAML dosage history fixture")
	extractCmd.Flags().StringVar(&logLevel, "log", "info", "log level (debug, info, warn, error)")
	_ = extractCmd.MarkFlagRequired("fixture")

	rootCmd.AddCommand(extractCmd)
}
