package core

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// unitConversionConfig is the on-disk shape accepted by
// LoadUnitConversions: a flat list of (from, to, factor) entries extending
// the process-wide conversion registry. Grounded on the teacher's
// YAML-config-file idiom (its hardware/coefficient configs load the same
// way), generalized here to the unit registry spec.md §9 calls out as the
// extensibility point a drug-model library needs.
type unitConversionConfig struct {
	Conversions []struct {
		From   string  `yaml:"from"`
		To     string  `yaml:"to"`
		Factor float64 `yaml:"factor"`
	} `yaml:"conversions"`
}

// LoadUnitConversions reads a YAML file of additional unit conversion
// factors and registers each one via RegisterConversion. A drug-model
// library ships one of these alongside its parameter sets to extend the
// closed conversion table without modifying core.
func LoadUnitConversions(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load unit conversions: %w", err)
	}
	var cfg unitConversionConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return fmt.Errorf("parse unit conversions: %w", err)
	}
	for _, c := range cfg.Conversions {
		RegisterConversion(Unit(c.From), Unit(c.To), c.Factor)
	}
	return nil
}
