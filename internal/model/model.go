// Package model holds the typed records of a consolidation model: soil,
// plate and anchor material sets, boreholes, consolidation layers and the
// calculation phases, together with the YAML document they are read from.
package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/geocons/internal/consolidation"
)

// ValidationError represents a model validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

// CvPoint is one entry of a depth-dependent coefficient of consolidation
// table. Depth is measured downward from the top of the layer.
type CvPoint struct {
	Depth float64 `yaml:"depth"` // m
	Cv    float64 `yaml:"cv"`    // m²/day
}

// ConsolidationLayer is a soft layer that is split into slices with
// depth-dependent permeability.
type ConsolidationLayer struct {
	Name     string    `yaml:"name"`
	Material string    `yaml:"material"`
	Top      float64   `yaml:"top"`
	Bottom   float64   `yaml:"bottom"`
	Slices   int       `yaml:"slices"`
	Cv       []CvPoint `yaml:"cv"`
}

// Thickness returns Top − Bottom.
func (l *ConsolidationLayer) Thickness() float64 {
	return l.Top - l.Bottom
}

// Validate checks the layer geometry and its cv table.
func (l *ConsolidationLayer) Validate() error {
	switch {
	case l.Name == "":
		return &ValidationError{"consolidation layer must have a name"}
	case l.Material == "":
		return &ValidationError{fmt.Sprintf("consolidation layer %s has no material", l.Name)}
	case !(l.Top > l.Bottom):
		return &ValidationError{fmt.Sprintf("consolidation layer %s: top %g must be above bottom %g", l.Name, l.Top, l.Bottom)}
	case l.Slices < 1:
		return &ValidationError{fmt.Sprintf("consolidation layer %s: slices must be at least 1", l.Name)}
	case len(l.Cv) == 0:
		return &ValidationError{fmt.Sprintf("consolidation layer %s: cv table is empty", l.Name)}
	}
	for i, p := range l.Cv {
		if !(p.Cv > 0) {
			return &ValidationError{fmt.Sprintf("consolidation layer %s: cv entry %d must be positive", l.Name, i+1)}
		}
		if p.Depth < 0 {
			return &ValidationError{fmt.Sprintf("consolidation layer %s: cv entry %d has negative depth", l.Name, i+1)}
		}
		if i > 0 && p.Depth <= l.Cv[i-1].Depth {
			return &ValidationError{fmt.Sprintf("consolidation layer %s: cv depths must be ascending", l.Name)}
		}
	}
	return nil
}

// Schedule describes a chain of staged-construction consolidation phases.
type Schedule struct {
	StartFrom string  `yaml:"start_from"`
	Step      float64 `yaml:"step"`
	Count     int     `yaml:"count"`
}

// Model is the model document.
type Model struct {
	Title     string  `yaml:"title"`
	Surcharge float64 `yaml:"surcharge"` // kPa, applied over the consolidation layers

	Materials []SoilMaterial       `yaml:"materials"`
	Plates    []PlateMaterial      `yaml:"plates,omitempty"`
	Anchors   []AnchorMaterial     `yaml:"anchors,omitempty"`
	Boreholes []Borehole           `yaml:"boreholes,omitempty"`
	Layers    []ConsolidationLayer `yaml:"consolidation_layers,omitempty"`

	Drain    *consolidation.Drain `yaml:"drain,omitempty"`
	Phases   []Phase              `yaml:"phases,omitempty"`
	Schedule *Schedule            `yaml:"schedule,omitempty"`
}

// Load reads and validates a model document.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML model document.
func Parse(data []byte) (*Model, error) {
	var m Model
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks every record and the references between them.
func (m *Model) Validate() error {
	names := make(map[string]string)
	claim := func(kind, name string) error {
		if prev, ok := names[name]; ok {
			return &ValidationError{fmt.Sprintf("%s %s: name already used by a %s", kind, name, prev)}
		}
		names[name] = kind
		return nil
	}

	for i := range m.Materials {
		if err := m.Materials[i].Validate(); err != nil {
			return err
		}
		if err := claim("soil material", m.Materials[i].Name); err != nil {
			return err
		}
	}
	for i := range m.Plates {
		if err := m.Plates[i].Validate(); err != nil {
			return err
		}
		if err := claim("plate material", m.Plates[i].Name); err != nil {
			return err
		}
	}
	for i := range m.Anchors {
		if err := m.Anchors[i].Validate(); err != nil {
			return err
		}
		if err := claim("anchor material", m.Anchors[i].Name); err != nil {
			return err
		}
	}

	if err := m.validateBoreholes(); err != nil {
		return err
	}

	for i := range m.Layers {
		l := &m.Layers[i]
		if err := l.Validate(); err != nil {
			return err
		}
		if _, ok := m.Material(l.Material); !ok {
			return &ValidationError{fmt.Sprintf("consolidation layer %s: unknown material %s", l.Name, l.Material)}
		}
	}

	if m.Surcharge < 0 {
		return &ValidationError{"surcharge must not be negative"}
	}
	if m.Drain != nil {
		if err := m.Drain.Validate(); err != nil {
			return fmt.Errorf("drain: %w", err)
		}
	}
	if _, err := m.Plan(); err != nil {
		return err
	}
	return nil
}

func (m *Model) validateBoreholes() error {
	seen := make(map[string]bool)
	for i := range m.Boreholes {
		b := &m.Boreholes[i]
		if err := b.Validate(); err != nil {
			return err
		}
		if seen[b.Name] {
			return &ValidationError{fmt.Sprintf("duplicate borehole %s", b.Name)}
		}
		seen[b.Name] = true
		for j, l := range b.Layers {
			if _, ok := m.Material(l.Material); !ok {
				return &ValidationError{fmt.Sprintf("borehole %s layer %d: unknown material %s", b.Name, j+1, l.Material)}
			}
		}
		if i > 0 && len(b.Layers) != len(m.Boreholes[0].Layers) {
			return &ValidationError{fmt.Sprintf("borehole %s has %d layers, %s has %d",
				b.Name, len(b.Layers), m.Boreholes[0].Name, len(m.Boreholes[0].Layers))}
		}
	}
	return nil
}

// Material returns the named soil material.
func (m *Model) Material(name string) (SoilMaterial, bool) {
	for _, mat := range m.Materials {
		if mat.Name == name {
			return mat, true
		}
	}
	return SoilMaterial{}, false
}

// Plan builds the phase plan: the listed phases first, then the
// consolidation schedule if one is configured.
func (m *Model) Plan() (*Plan, error) {
	plan := NewPlan()
	if err := plan.AddAll(m.Phases); err != nil {
		return nil, err
	}
	if m.Schedule != nil {
		start := m.Schedule.StartFrom
		if start == "" {
			start = plan.Last().Name
		}
		stages, err := ConsolidationSchedule(start, m.Schedule.Step, m.Schedule.Count)
		if err != nil {
			return nil, err
		}
		if err := plan.AddAll(SchedulePhases(stages)); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

// SettlementInput returns the one-dimensional settlement input of a
// consolidation layer under the model surcharge, using the effective
// unit weight of its material.
func (m *Model) SettlementInput(layer ConsolidationLayer) (consolidation.SettlementInput, error) {
	mat, ok := m.Material(layer.Material)
	if !ok {
		return consolidation.SettlementInput{}, &ValidationError{fmt.Sprintf("unknown material %s", layer.Material)}
	}
	return consolidation.SettlementInput{
		Thickness:  layer.Thickness(),
		Load:       m.Surcharge,
		UnitWeight: mat.EffectiveUnitWeight(),
		Cc:         mat.Cc,
		VoidRatio:  mat.VoidInit,
	}, nil
}
