package sim

import "math"

// The concrete stages below model an electronic-recoil deposit in liquid
// xenon from energy to observable quanta. Each stage holds its bound
// coefficients in plain typed fields filled by Bind.

// EnergySpec draws deposited energies (keV) from a flat spectrum on
// [lower, upper).
type EnergySpec struct {
	lower, upper float64
}

// NewEnergySpec creates the stage. It binds no parameters.
func NewEnergySpec(lower, upper float64) *EnergySpec {
	return &EnergySpec{lower: lower, upper: upper}
}

func (s *EnergySpec) Name() string               { return "EnergySpec" }
func (s *EnergySpec) ParamNames() []string       { return nil }
func (s *EnergySpec) Inputs() []string           { return []string{"batch_size"} }
func (s *EnergySpec) Outputs() []string          { return []string{"energy"} }
func (s *EnergySpec) Bind(*ParameterStore) error { return nil }

func (s *EnergySpec) Simulate(src *Source, inputs ...*Tensor) ([]*Tensor, error) {
	if err := checkInputs(s, inputs); err != nil {
		return nil, err
	}
	n := int(inputs[0].Data()[0])
	energy, err := Uniform(src, Scalar(s.lower), Scalar(s.upper), []int{n})
	if err != nil {
		return nil, err
	}
	return []*Tensor{energy}, nil
}

// QuenchingFano converts energy to total quanta Nq: the mean yield
// energy/w fluctuates with a Fano-suppressed variance, is rounded to a
// count, and is quenched by a binomial draw with the Lindhard factor.
type QuenchingFano struct {
	w, lindhard, fano float64
}

// NewQuenchingFano creates the stage and binds it from store.
func NewQuenchingFano(store *ParameterStore) (*QuenchingFano, error) {
	s := &QuenchingFano{}
	if err := s.Bind(store); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *QuenchingFano) Name() string         { return "QuenchingFano" }
func (s *QuenchingFano) ParamNames() []string { return []string{"w", "lindhard", "fano"} }
func (s *QuenchingFano) Inputs() []string     { return []string{"energy"} }
func (s *QuenchingFano) Outputs() []string    { return []string{"Nq"} }

func (s *QuenchingFano) Bind(store *ParameterStore) error {
	vals, err := store.GetAll(s.ParamNames())
	if err != nil {
		return err
	}
	s.w, s.lindhard, s.fano = vals[0], vals[1], vals[2]
	return nil
}

func (s *QuenchingFano) Simulate(src *Source, inputs ...*Tensor) ([]*Tensor, error) {
	if err := checkInputs(s, inputs); err != nil {
		return nil, err
	}
	energy := inputs[0]
	nqAvg := energy.Apply(func(e float64) float64 { return e / s.w })
	nqStd := nqAvg.Apply(func(m float64) float64 { return math.Sqrt(m * s.fano) })
	nq, err := Normal(src, nqAvg, nqStd, nil)
	if err != nil {
		return nil, err
	}
	// A downward fluctuation below zero would be a negative trial count.
	nq = nq.Apply(func(v float64) float64 { return math.Max(math.Round(v), 0) })
	quenched, err := Binomial(src, nq, Scalar(s.lindhard), nil)
	if err != nil {
		return nil, err
	}
	return []*Tensor{quenched}, nil
}

// Ionization splits total quanta into ionization quanta Ni via a binomial
// draw with success probability 1/(1+ex_ion_ratio).
type Ionization struct {
	exIonRatio float64
}

// NewIonization creates the stage and binds it from store.
func NewIonization(store *ParameterStore) (*Ionization, error) {
	s := &Ionization{}
	if err := s.Bind(store); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Ionization) Name() string         { return "Ionization" }
func (s *Ionization) ParamNames() []string { return []string{"ex_ion_ratio"} }
func (s *Ionization) Inputs() []string     { return []string{"Nq"} }
func (s *Ionization) Outputs() []string    { return []string{"Ni"} }

func (s *Ionization) Bind(store *ParameterStore) error {
	v, err := store.Get("ex_ion_ratio")
	if err != nil {
		return err
	}
	s.exIonRatio = v
	return nil
}

func (s *Ionization) Simulate(src *Source, inputs ...*Tensor) ([]*Tensor, error) {
	if err := checkInputs(s, inputs); err != nil {
		return nil, err
	}
	ni, err := Binomial(src, inputs[0], Scalar(1/(1+s.exIonRatio)), nil)
	if err != nil {
		return nil, err
	}
	return []*Tensor{ni}, nil
}

// MTI computes the recombination fraction under the modified Thomas-Imel
// box model: the mean follows the TI factor suppressed by a Fermi-Dirac
// turn-on in energy, the spread saturates exponentially, and the draw is a
// normal variate hard-clipped into [0, 1].
type MTI struct {
	w, exIonRatio              float64
	gamma, omega, delta, field float64
	q0, q1, q2, q3             float64
}

// NewMTI creates the stage and binds it from store.
func NewMTI(store *ParameterStore) (*MTI, error) {
	s := &MTI{}
	if err := s.Bind(store); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MTI) Name() string { return "mTI" }
func (s *MTI) ParamNames() []string {
	return []string{"w", "ex_ion_ratio", "gamma", "omega", "delta", "field", "q0", "q1", "q2", "q3"}
}
func (s *MTI) Inputs() []string  { return []string{"energy"} }
func (s *MTI) Outputs() []string { return []string{"recomb"} }

func (s *MTI) Bind(store *ParameterStore) error {
	vals, err := store.GetAll(s.ParamNames())
	if err != nil {
		return err
	}
	s.w, s.exIonRatio = vals[0], vals[1]
	s.gamma, s.omega, s.delta, s.field = vals[2], vals[3], vals[4], vals[5]
	s.q0, s.q1, s.q2, s.q3 = vals[6], vals[7], vals[8], vals[9]
	return nil
}

// MeanRecomb is the mean recombination fraction at energy e (keV).
func (s *MTI) MeanRecomb(e float64) float64 {
	ni := e / s.w / (1 + s.exIonRatio)
	ti := ni * s.gamma * math.Exp(-e/s.omega) * math.Pow(s.field, -s.delta) / 4
	fd := 1 / (1 + math.Exp(-(e-s.q0)/s.q1))
	if ti <= 0 {
		// limit of 1 - log(1+ti)/ti as ti -> 0
		return 0
	}
	return (1 - math.Log1p(ti)/ti) * fd
}

// StdRecomb is the recombination spread at energy e (keV).
func (s *MTI) StdRecomb(e float64) float64 {
	return s.q2 * (1 - math.Exp(-e/s.q3))
}

func (s *MTI) Simulate(src *Source, inputs ...*Tensor) ([]*Tensor, error) {
	if err := checkInputs(s, inputs); err != nil {
		return nil, err
	}
	energy := inputs[0]
	mean := energy.Apply(s.MeanRecomb)
	std := energy.Apply(s.StdRecomb)
	vmin, vmax := 0.0, 1.0
	recomb, err := TruncatedNormal(src, mean, std, nil, &vmin, &vmax)
	if err != nil {
		return nil, err
	}
	return []*Tensor{recomb}, nil
}

// Recomb turns quanta into observables: each ionization quantum survives
// recombination with probability 1-recomb to become an electron, and every
// quantum that is not a free electron ends up as a photon, so Nph+Ne == Nq
// by construction.
type Recomb struct{}

// NewRecomb creates the stage. It binds no parameters.
func NewRecomb() *Recomb { return &Recomb{} }

func (s *Recomb) Name() string               { return "Recomb" }
func (s *Recomb) ParamNames() []string       { return nil }
func (s *Recomb) Inputs() []string           { return []string{"Nq", "Ni", "recomb"} }
func (s *Recomb) Outputs() []string          { return []string{"Nph", "Ne"} }
func (s *Recomb) Bind(*ParameterStore) error { return nil }

func (s *Recomb) Simulate(src *Source, inputs ...*Tensor) ([]*Tensor, error) {
	if err := checkInputs(s, inputs); err != nil {
		return nil, err
	}
	nq, ni, recomb := inputs[0], inputs[1], inputs[2]
	survive := recomb.Apply(func(r float64) float64 { return 1 - r })
	ne, err := Binomial(src, ni, survive, nil)
	if err != nil {
		return nil, err
	}
	nph, err := nq.Sub(ne)
	if err != nil {
		return nil, err
	}
	return []*Tensor{nph, ne}, nil
}
