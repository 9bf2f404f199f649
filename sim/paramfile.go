package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadParameterFile reads a YAML mapping of parameter name to scalar value,
// e.g.
//
//	field: 81.0
//	fano: 0.12
//
// It is the file format calibration tooling uses to feed fitted constants
// back into a ParameterStore.
func LoadParameterFile(path string) (map[string]float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading parameter file: %w", err)
	}
	values, err := ParseParameterFile(raw)
	if err != nil {
		return nil, fmt.Errorf("parameter file %s: %w", path, err)
	}
	return values, nil
}

// ParseParameterFile parses YAML parameter bytes.
func ParseParameterFile(raw []byte) (map[string]float64, error) {
	var values map[string]float64
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("parsing parameters: %w", err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no parameters defined")
	}
	return values, nil
}

// ApplyParameterFile loads path and overwrites the matching parameters in
// store. Names not already present in the store fail the whole call, so a
// misspelled constant in a calibration file cannot slip through.
func ApplyParameterFile(store *ParameterStore, path string) error {
	values, err := LoadParameterFile(path)
	if err != nil {
		return err
	}
	return store.SetFrom(values)
}
