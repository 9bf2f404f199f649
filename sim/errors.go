package sim

import (
	"fmt"
	"strings"
)

// MissingParameterError reports parameter names absent from a ParameterStore.
// Every missing name is listed, not just the first one encountered, so a
// single bind attempt surfaces the complete set of problems.
type MissingParameterError struct {
	Names []string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("parameters not found: %s", strings.Join(e.Names, ", "))
}

// ShapeMismatchError reports incompatible tensor shapes or slice lengths:
// broadcast-incompatible distribution parameters, mismatched name/value
// lists in ParameterStore.SetAll, or reference-data/axis mismatches during
// interpolation table construction.
type ShapeMismatchError struct {
	Reason string
}

func (e *ShapeMismatchError) Error() string {
	return "shape mismatch: " + e.Reason
}

// InvalidRangeError reports truncation bounds given in the wrong order.
type InvalidRangeError struct {
	Min, Max float64
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid range: vmin (%v) must be smaller than vmax (%v)", e.Min, e.Max)
}

// InsufficientReferenceDataError reports an interpolation table constructed
// with too few reference points to answer queries.
type InsufficientReferenceDataError struct {
	Reason string
}

func (e *InsufficientReferenceDataError) Error() string {
	return "insufficient reference data: " + e.Reason
}
