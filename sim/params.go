package sim

import (
	"fmt"
	"sort"
)

// ParameterStore is a validated mapping from parameter name to scalar
// value, shared by every stage in a pipeline. Names form a single flat
// namespace. Set can only overwrite names that already exist, so the set of
// parameters is fixed at construction; this keeps a typo in calibration
// tooling from silently growing the store.
//
// Not safe for concurrent mutation; stores are updated between simulation
// runs, not during one.
type ParameterStore struct {
	values map[string]float64
}

// NewParameterStore creates a store holding a copy of the given values.
func NewParameterStore(values map[string]float64) *ParameterStore {
	m := make(map[string]float64, len(values))
	for k, v := range values {
		m[k] = v
	}
	return &ParameterStore{values: m}
}

// DefaultParameters returns a store with the reference liquid-xenon
// constants: work function w in keV per quantum, exciton-to-ion ratio,
// Lindhard quenching factor, Fano factor, the modified Thomas-Imel
// recombination coefficients (gamma, omega, delta, q0..q3) and the drift
// field in V/cm.
func DefaultParameters() *ParameterStore {
	return NewParameterStore(map[string]float64{
		"w":            13.8e-3,
		"ex_ion_ratio": 0.1,
		"lindhard":     1.0,
		"gamma":        0.124,
		"omega":        31.0,
		"delta":        0.24,
		"q0":           1.13,
		"q1":           0.47,
		"q2":           0.041,
		"q3":           1.7,
		"field":        120.0,
		"fano":         0.059,
	})
}

// Get returns the value bound to name, or a MissingParameterError.
func (s *ParameterStore) Get(name string) (float64, error) {
	v, ok := s.values[name]
	if !ok {
		return 0, &MissingParameterError{Names: []string{name}}
	}
	return v, nil
}

// GetAll returns the values bound to names, in input order. If any name is
// absent the call fails with a MissingParameterError listing every absent
// name.
func (s *ParameterStore) GetAll(names []string) ([]float64, error) {
	if missing := s.Missing(names); len(missing) > 0 {
		return nil, &MissingParameterError{Names: missing}
	}
	out := make([]float64, len(names))
	for i, name := range names {
		out[i] = s.values[name]
	}
	return out, nil
}

// Set overwrites the value of an existing parameter. Unknown names fail
// with a MissingParameterError; Set never creates parameters.
func (s *ParameterStore) Set(name string, value float64) error {
	if _, ok := s.values[name]; !ok {
		return &MissingParameterError{Names: []string{name}}
	}
	s.values[name] = value
	return nil
}

// SetAll overwrites the values of existing parameters pairwise. The two
// slices must have equal length, and every name must already exist; either
// violation fails the whole call before any value is written.
func (s *ParameterStore) SetAll(names []string, values []float64) error {
	if missing := s.Missing(names); len(missing) > 0 {
		return &MissingParameterError{Names: missing}
	}
	if len(names) != len(values) {
		return &ShapeMismatchError{
			Reason: fmt.Sprintf("names and values must have equal length: %d != %d", len(names), len(values)),
		}
	}
	for i, name := range names {
		s.values[name] = values[i]
	}
	return nil
}

// SetFrom overwrites existing parameters from a name-to-value map. Values
// come from the map itself; unknown names fail the whole call with a
// MissingParameterError listing all of them, in sorted order.
func (s *ParameterStore) SetFrom(values map[string]float64) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	if missing := s.Missing(names); len(missing) > 0 {
		return &MissingParameterError{Names: missing}
	}
	for _, name := range names {
		s.values[name] = values[name]
	}
	return nil
}

// Exists reports whether every name is present in the store.
func (s *ParameterStore) Exists(names ...string) bool {
	return len(s.Missing(names)) == 0
}

// Missing returns the subset of names absent from the store, in input
// order. An empty result means all names exist.
func (s *ParameterStore) Missing(names []string) []string {
	var missing []string
	for _, name := range names {
		if _, ok := s.values[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// All returns a copy of the complete name-to-value mapping. Mutation goes
// through Set; writing to the returned map does not affect the store.
func (s *ParameterStore) All() map[string]float64 {
	m := make(map[string]float64, len(s.values))
	for k, v := range s.values {
		m[k] = v
	}
	return m
}
