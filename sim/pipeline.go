package sim

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Edge is one declared input/output pairing of a stage, for rendering the
// pipeline as a directed multigraph.
type Edge struct {
	Input  string
	Output string
	Stage  string
}

// Pipeline is an ordered collection of stages sharing one parameter store.
// Execution order is the construction order, fixed by the pipeline
// variant's Simulate; it is never derived from signal names. The name-based
// edge list exists only for visualization and debugging.
type Pipeline struct {
	name   string
	inputs []string
	stages []Stage
	byName map[string]Stage
}

// NewPipeline assembles stages in execution order. inputs names the signals
// the caller supplies (for the reference pipeline, just "batch_size").
// Construction fails if stage names collide or if the declared call order
// is inconsistent with the declared signal names (see Validate).
func NewPipeline(name string, inputs []string, stages ...Stage) (*Pipeline, error) {
	p := &Pipeline{
		name:   name,
		inputs: append([]string(nil), inputs...),
		stages: append([]Stage(nil), stages...),
		byName: make(map[string]Stage, len(stages)),
	}
	for _, st := range stages {
		if _, dup := p.byName[st.Name()]; dup {
			return nil, fmt.Errorf("pipeline %s: duplicate stage %q", name, st.Name())
		}
		p.byName[st.Name()] = st
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Name returns the pipeline's name.
func (p *Pipeline) Name() string { return p.name }

// Stage returns the named stage, or nil if absent.
func (p *Pipeline) Stage(name string) Stage { return p.byName[name] }

// Stages returns the stages in execution order.
func (p *Pipeline) Stages() []Stage {
	return append([]Stage(nil), p.stages...)
}

// Edges returns, for every stage, the Cartesian product of its declared
// input and output signal names tagged with the stage name. The list is a
// diagnostic artifact describing what connects to what; it carries no
// scheduling authority.
func (p *Pipeline) Edges() []Edge {
	var edges []Edge
	for _, st := range p.stages {
		for _, in := range st.Inputs() {
			for _, out := range st.Outputs() {
				edges = append(edges, Edge{Input: in, Output: out, Stage: st.Name()})
			}
		}
	}
	return edges
}

// Bind rebinds every stage from the store, e.g. after calibration tooling
// updated parameter values.
func (p *Pipeline) Bind(store *ParameterStore) error {
	for _, st := range p.stages {
		if err := st.Bind(store); err != nil {
			return fmt.Errorf("binding stage %s: %w", st.Name(), err)
		}
	}
	return nil
}

// Validate checks the declared call order against the declared signal
// names: every stage input must be a pipeline input or an output of an
// earlier stage. The check catches a mis-ordered stage list at
// construction instead of at simulation time.
func (p *Pipeline) Validate() error {
	known := make(map[string]bool, len(p.inputs))
	for _, in := range p.inputs {
		known[in] = true
	}
	var unmatched []string
	for _, st := range p.stages {
		for _, in := range st.Inputs() {
			if !known[in] {
				unmatched = append(unmatched, fmt.Sprintf("%q (stage %s)", in, st.Name()))
			}
		}
		for _, out := range st.Outputs() {
			known[out] = true
		}
	}
	if len(unmatched) > 0 {
		return fmt.Errorf("pipeline %s: inputs with no earlier producer: %s",
			p.name, strings.Join(unmatched, ", "))
	}
	return nil
}

// ERmTIPipeline is the reference electronic-recoil forward simulation: a
// flat energy spectrum, Fano-fluctuated and Lindhard-quenched into quanta,
// split into ionization, recombined under the modified Thomas-Imel model.
type ERmTIPipeline struct {
	*Pipeline
}

// NewERmTIPipeline builds the reference pipeline with energies drawn
// uniformly from [lowerE, upperE) keV, binding every stage from store.
func NewERmTIPipeline(store *ParameterStore, lowerE, upperE float64) (*ERmTIPipeline, error) {
	quench, err := NewQuenchingFano(store)
	if err != nil {
		return nil, err
	}
	ion, err := NewIonization(store)
	if err != nil {
		return nil, err
	}
	mti, err := NewMTI(store)
	if err != nil {
		return nil, err
	}
	p, err := NewPipeline("ERmTI", []string{"batch_size"},
		NewEnergySpec(lowerE, upperE), quench, ion, mti, NewRecomb())
	if err != nil {
		return nil, err
	}
	return &ERmTIPipeline{Pipeline: p}, nil
}

// Simulate runs the full forward simulation for batchSize independent
// deposits and returns the photon and electron counts (Nph, Ne), each of
// length batchSize. Each stage draws from its own seed stream derived from
// src, so the run is reproducible for a fixed SimulationKey.
func (m *ERmTIPipeline) Simulate(src *Source, batchSize int) (*Tensor, *Tensor, error) {
	if batchSize <= 0 {
		return nil, nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}
	start := time.Now()

	run := func(name string, inputs ...*Tensor) ([]*Tensor, error) {
		logrus.Debugf("[%s] running stage %s", m.Name(), name)
		out, err := m.Stage(name).Simulate(src.ForStage(name), inputs...)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", name, err)
		}
		return out, nil
	}

	energy, err := run("EnergySpec", Scalar(float64(batchSize)))
	if err != nil {
		return nil, nil, err
	}
	nq, err := run("QuenchingFano", energy[0])
	if err != nil {
		return nil, nil, err
	}
	ni, err := run("Ionization", nq[0])
	if err != nil {
		return nil, nil, err
	}
	recomb, err := run("mTI", energy[0])
	if err != nil {
		return nil, nil, err
	}
	obs, err := run("Recomb", nq[0], ni[0], recomb[0])
	if err != nil {
		return nil, nil, err
	}

	logrus.Infof("[%s] simulated %d samples in %s", m.Name(), batchSize, time.Since(start))
	return obs[0], obs[1], nil
}
