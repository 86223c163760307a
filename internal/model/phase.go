package model

import (
	"fmt"
	"math"
	"strconv"
)

// CalculationType is the kind of calculation a phase runs.
type CalculationType string

const (
	Plastic       CalculationType = "Plastic"
	Consolidation CalculationType = "Consolidation"
	Safety        CalculationType = "Safety"
)

// LoadingType selects how a consolidation phase ends.
type LoadingType string

const (
	StagedConstruction    LoadingType = "Staged construction"
	MinExcessPorePressure LoadingType = "Minimum excess pore pressure"
	DegreeOfConsolidation LoadingType = "Degree of consolidation"
)

// PorePressureType is how pore pressures are generated for a phase.
type PorePressureType string

const (
	Phreatic        PorePressureType = "Phreatic"
	PreviousPhase   PorePressureType = "Use pressures from previous phase"
	SteadyStateFlow PorePressureType = "Steady state groundwater flow"
)

// SolverType is the linear solver used for a phase.
type SolverType string

const (
	Picos   SolverType = "Picos (multicore iterative)"
	Pardiso SolverType = "Pardiso (multicore direct)"
	Classic SolverType = "Classic (single core iterative)"
)

// InitialPhase is the name of the root phase every plan starts from.
const InitialPhase = "InitialPhase"

// NumericalControl holds the iteration parameters of a phase that does
// not use the default iteration parameters.
type NumericalControl struct {
	MaxSteps             int  `yaml:"max_steps"`
	MaxUnloadingSteps    int  `yaml:"max_unloading_steps"`
	MaxIterations        int  `yaml:"max_iterations"`
	DesiredMinIterations int  `yaml:"desired_min_iterations"`
	DesiredMaxIterations int  `yaml:"desired_max_iterations"`
	UseLineSearch        bool `yaml:"use_line_search"`
	UseGradualError      bool `yaml:"use_gradual_error"`
}

// DefaultNumericalControl returns the application's default iteration
// parameters.
func DefaultNumericalControl() NumericalControl {
	return NumericalControl{
		MaxSteps:             1000,
		MaxUnloadingSteps:    5,
		MaxIterations:        60,
		DesiredMinIterations: 6,
		DesiredMaxIterations: 15,
	}
}

// Validate checks the iteration parameters.
func (n *NumericalControl) Validate() error {
	switch {
	case n.MaxSteps <= 0, n.MaxUnloadingSteps <= 0, n.MaxIterations <= 0:
		return &ValidationError{"step and iteration limits must be positive"}
	case n.DesiredMinIterations <= 0 || n.DesiredMinIterations > n.DesiredMaxIterations:
		return &ValidationError{fmt.Sprintf("desired iterations must satisfy 0 < min <= max, got %d/%d",
			n.DesiredMinIterations, n.DesiredMaxIterations)}
	case n.DesiredMaxIterations > n.MaxIterations:
		return &ValidationError{"desired max iterations exceeds max iterations"}
	}
	return nil
}

// Phase is one calculation phase.
type Phase struct {
	Name   string          `yaml:"name"`
	Parent string          `yaml:"start_from"`
	Type   CalculationType `yaml:"type"`

	Solver       SolverType       `yaml:"solver,omitempty"`
	PorePressure PorePressureType `yaml:"pore_pressure,omitempty"`

	ResetDisplacements bool `yaml:"reset_displacements,omitempty"`
	CavitationCutOff   bool `yaml:"cavitation_cutoff"`

	// Consolidation
	Loading      LoadingType `yaml:"loading,omitempty"`
	TimeInterval float64     `yaml:"time_interval,omitempty"` // days
	PStop        float64     `yaml:"p_stop,omitempty"`        // kPa
	Degree       float64     `yaml:"degree,omitempty"`        // %

	// Safety
	MaxSteps int `yaml:"max_steps,omitempty"`

	// Numerical is nil when default iteration parameters are used.
	Numerical *NumericalControl `yaml:"numerical,omitempty"`
}

// NewPlasticPhase returns a plastic phase with the default settings.
func NewPlasticPhase(name, parent string) Phase {
	return Phase{
		Name:             name,
		Parent:           parent,
		Type:             Plastic,
		Solver:           Picos,
		PorePressure:     Phreatic,
		CavitationCutOff: true,
	}
}

// NewConsolidationPhase returns a consolidation phase. The meaning of
// value depends on the loading type: the time interval in days, the
// minimum excess pore pressure in kPa, or the degree of consolidation
// in percent.
func NewConsolidationPhase(name, parent string, loading LoadingType, value float64) (Phase, error) {
	p := Phase{
		Name:             name,
		Parent:           parent,
		Type:             Consolidation,
		Solver:           Picos,
		PorePressure:     PreviousPhase,
		CavitationCutOff: true,
		Loading:          loading,
	}
	switch loading {
	case StagedConstruction:
		p.TimeInterval = value
	case MinExcessPorePressure:
		p.PStop = value
	case DegreeOfConsolidation:
		p.Degree = value
	default:
		return Phase{}, &ValidationError{fmt.Sprintf("phase %s: unknown loading type %q", name, loading)}
	}
	if err := p.Validate(); err != nil {
		return Phase{}, err
	}
	return p, nil
}

// NewSafetyPhase returns a safety (strength reduction) phase. With
// defaultIterations false, maxSteps replaces the default step limit.
func NewSafetyPhase(name, parent string, defaultIterations bool, maxSteps int) Phase {
	p := Phase{
		Name:               name,
		Parent:             parent,
		Type:               Safety,
		Solver:             Picos,
		PorePressure:       PreviousPhase,
		ResetDisplacements: true,
		CavitationCutOff:   true,
		MaxSteps:           100,
	}
	if !defaultIterations {
		nc := DefaultNumericalControl()
		if maxSteps > 0 {
			nc.MaxSteps = maxSteps
			p.MaxSteps = maxSteps
		}
		p.Numerical = &nc
	}
	return p
}

// Validate checks the phase settings that do not depend on other phases.
func (p *Phase) Validate() error {
	if p.Name == "" {
		return &ValidationError{"phase must have a name"}
	}
	fail := func(format string, args ...any) error {
		return &ValidationError{fmt.Sprintf("phase %s: ", p.Name) + fmt.Sprintf(format, args...)}
	}

	switch p.Solver {
	case "", Picos, Pardiso, Classic:
	default:
		return fail("unknown solver %q", p.Solver)
	}
	switch p.PorePressure {
	case "", Phreatic, PreviousPhase, SteadyStateFlow:
	default:
		return fail("unknown pore pressure type %q", p.PorePressure)
	}

	switch p.Type {
	case Plastic:
	case Consolidation:
		switch p.Loading {
		case StagedConstruction:
			if !(p.TimeInterval > 0) || math.IsInf(p.TimeInterval, 0) {
				return fail("time interval must be positive, got %g", p.TimeInterval)
			}
		case MinExcessPorePressure:
			if !(p.PStop > 0) {
				return fail("minimum excess pore pressure must be positive, got %g", p.PStop)
			}
		case DegreeOfConsolidation:
			if !(p.Degree > 0 && p.Degree <= 100) {
				return fail("degree of consolidation must be in (0, 100], got %g", p.Degree)
			}
		default:
			return fail("unknown loading type %q", p.Loading)
		}
	case Safety:
		if p.MaxSteps < 0 {
			return fail("max steps must not be negative")
		}
	default:
		return fail("unknown calculation type %q", p.Type)
	}

	if p.Numerical != nil {
		if err := p.Numerical.Validate(); err != nil {
			return fail("%v", err)
		}
	}
	return nil
}

// Plan is an ordered set of phases rooted at the initial phase.
type Plan struct {
	phases []Phase
	index  map[string]int
}

// NewPlan returns a plan holding only the initial phase.
func NewPlan() *Plan {
	initial := Phase{Name: InitialPhase, Type: Plastic, PorePressure: Phreatic}
	return &Plan{
		phases: []Phase{initial},
		index:  map[string]int{InitialPhase: 0},
	}
}

// Add appends a phase. Its parent must already be in the plan and its
// name must be new.
func (p *Plan) Add(ph Phase) error {
	if err := ph.Validate(); err != nil {
		return err
	}
	if _, ok := p.index[ph.Name]; ok {
		return &ValidationError{fmt.Sprintf("duplicate phase %s", ph.Name)}
	}
	if ph.Parent == "" {
		ph.Parent = p.phases[len(p.phases)-1].Name
	}
	if _, ok := p.index[ph.Parent]; !ok {
		return &ValidationError{fmt.Sprintf("phase %s starts from unknown phase %s", ph.Name, ph.Parent)}
	}
	p.index[ph.Name] = len(p.phases)
	p.phases = append(p.phases, ph)
	return nil
}

// AddAll adds phases in order, stopping at the first error.
func (p *Plan) AddAll(phases []Phase) error {
	for _, ph := range phases {
		if err := p.Add(ph); err != nil {
			return err
		}
	}
	return nil
}

// Phases returns the phases in insertion order, initial phase first.
func (p *Plan) Phases() []Phase {
	return append([]Phase(nil), p.phases...)
}

// Len returns the number of phases including the initial phase.
func (p *Plan) Len() int { return len(p.phases) }

// Last returns the most recently added phase.
func (p *Plan) Last() Phase { return p.phases[len(p.phases)-1] }

// Lookup returns the named phase.
func (p *Plan) Lookup(name string) (Phase, bool) {
	i, ok := p.index[name]
	if !ok {
		return Phase{}, false
	}
	return p.phases[i], true
}

// Elapsed returns the consolidation time reached at the end of the named
// phase: the sum of staged-construction time intervals along its chain
// of parents.
func (p *Plan) Elapsed(name string) (float64, error) {
	var total float64
	for name != "" {
		i, ok := p.index[name]
		if !ok {
			return 0, &ValidationError{fmt.Sprintf("unknown phase %s", name)}
		}
		ph := p.phases[i]
		if ph.Type == Consolidation && ph.Loading == StagedConstruction {
			total += ph.TimeInterval
		}
		if ph.Name == InitialPhase {
			break
		}
		name = ph.Parent
	}
	return total, nil
}

// Stage is one entry of a consolidation schedule.
type Stage struct {
	Phase   Phase
	Elapsed float64 // days since the start of the schedule
}

// ConsolidationSchedule builds n−1 chained staged-construction phases
// starting from parent. Phase i lasts step^i days and is named
// "Consolidation at <t> days". The step must exceed 1 so that the phase
// names are distinct.
func ConsolidationSchedule(parent string, step float64, n int) ([]Stage, error) {
	if !(step > 1) || math.IsInf(step, 0) {
		return nil, &ValidationError{fmt.Sprintf("schedule step must be greater than 1, got %g", step)}
	}
	if n < 2 {
		return nil, &ValidationError{fmt.Sprintf("schedule needs at least 2 points, got %d", n)}
	}

	stages := make([]Stage, 0, n-1)
	var elapsed float64
	for i := 1; i < n; i++ {
		dt := math.Pow(step, float64(i))
		name := "Consolidation at " + strconv.FormatFloat(dt, 'f', -1, 64) + " days"
		ph, err := NewConsolidationPhase(name, parent, StagedConstruction, dt)
		if err != nil {
			return nil, err
		}
		elapsed += dt
		stages = append(stages, Stage{Phase: ph, Elapsed: elapsed})
		parent = name
	}
	return stages, nil
}

// SchedulePhases returns the phases of a schedule.
func SchedulePhases(stages []Stage) []Phase {
	phases := make([]Phase, len(stages))
	for i, s := range stages {
		phases[i] = s.Phase
	}
	return phases
}
