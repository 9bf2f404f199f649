package sim

import "fmt"

// Stage is a single named stochastic transformation in a pipeline. A stage
// declares the global parameters it needs and the signal names it reads and
// writes; the pipeline routes tensors between stages by those names.
//
// Bind copies the declared parameters out of a store into stage-local typed
// fields and replaces all bound values atomically, so a stage can be
// rebound between runs for sensitivity studies. Constructors bind
// immediately and fail fast on missing parameters.
type Stage interface {
	// Name identifies the stage inside a pipeline.
	Name() string
	// ParamNames lists the store parameters the stage binds, in order.
	ParamNames() []string
	// Inputs lists the signal names the stage consumes.
	Inputs() []string
	// Outputs lists the signal names the stage produces.
	Outputs() []string
	// Bind re-reads the declared parameters from the store. On failure the
	// previously bound values stay in effect.
	Bind(store *ParameterStore) error
	// Simulate draws one batch of output tensors from the inputs, both in
	// declared order.
	Simulate(src *Source, inputs ...*Tensor) ([]*Tensor, error)
}

// checkInputs verifies a Simulate call passes exactly the declared inputs.
func checkInputs(st Stage, inputs []*Tensor) error {
	if len(inputs) != len(st.Inputs()) {
		return &ShapeMismatchError{
			Reason: fmt.Sprintf("stage %s expects %d inputs %v, got %d",
				st.Name(), len(st.Inputs()), st.Inputs(), len(inputs)),
		}
	}
	return nil
}
