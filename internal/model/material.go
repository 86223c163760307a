package model

import (
	"fmt"
	"math"
)

// UnitWeightWater is the unit weight of water used by the application (kN/m³).
const UnitWeightWater = 10.0

// SoilMaterial is a soil material set with every recognised field.
type SoilMaterial struct {
	Name     string       `yaml:"name"`
	Number   int          `yaml:"number,omitempty"`
	Model    SoilModel    `yaml:"soil_model"`
	Drainage DrainageType `yaml:"drainage_type"`

	// Unit weights (kN/m³)
	GammaUnsat float64 `yaml:"gamma_unsat"`
	GammaSat   float64 `yaml:"gamma_sat"`

	// Strength: (Cref, Phi) or (Cref, Cinc) depending on Drainage.Strength()
	Cref float64 `yaml:"c_ref"`
	Phi  float64 `yaml:"phi,omitempty"`   // degrees
	Cinc float64 `yaml:"c_inc,omitempty"` // kPa/m

	// Stiffness
	Nu          float64 `yaml:"nu"`
	Eref        float64 `yaml:"e_ref"`           // kPa
	Einc        float64 `yaml:"e_inc,omitempty"` // kPa/m below VerticalRef
	VerticalRef float64 `yaml:"y_ref,omitempty"` // m

	// Flow (m/day)
	PermHorizontal float64 `yaml:"perm_h"`
	PermVertical   float64 `yaml:"perm_v"`

	// Interfaces
	InterfaceStrength    InterfaceStrength `yaml:"interface_strength,omitempty"`
	Rinter               float64           `yaml:"r_inter,omitempty"`
	CrossPermeability    CrossPermeability `yaml:"cross_permeability,omitempty"`
	DrainageConductivity float64           `yaml:"drainage_conductivity,omitempty"`

	// Initial stresses
	K0Determination K0Determination `yaml:"k0_determination,omitempty"`
	K0Primary       float64         `yaml:"k0_primary,omitempty"`
	K0Secondary     float64         `yaml:"k0_secondary,omitempty"`

	// One-dimensional compression, used for hand checks of settlement
	Cc       float64 `yaml:"cc,omitempty"`
	Cs       float64 `yaml:"cs,omitempty"`
	VoidInit float64 `yaml:"e_init,omitempty"`
}

// Validate checks a soil material set.
func (m *SoilMaterial) Validate() error {
	if m.Name == "" {
		return &ValidationError{"soil material must have a name"}
	}
	fail := func(format string, args ...any) error {
		return &ValidationError{fmt.Sprintf("soil material %s: ", m.Name) + fmt.Sprintf(format, args...)}
	}

	switch {
	case !m.Model.Valid():
		return fail("unknown soil model %d", int(m.Model))
	case !m.Drainage.Valid():
		return fail("unknown drainage type %d", int(m.Drainage))
	case !m.CrossPermeability.Valid():
		return fail("unknown cross permeability %d", int(m.CrossPermeability))
	case !m.InterfaceStrength.Valid():
		return fail("unknown interface strength %d", int(m.InterfaceStrength))
	case !m.K0Determination.Valid():
		return fail("unknown K0 determination %d", int(m.K0Determination))
	case m.GammaUnsat <= 0 || m.GammaSat <= 0:
		return fail("unit weights must be positive")
	case m.Nu < 0 || m.Nu >= 0.5:
		return fail("Poisson's ratio must be in [0, 0.5), got %g", m.Nu)
	case m.Eref <= 0:
		return fail("Eref must be positive")
	case m.Einc < 0:
		return fail("Einc must not be negative")
	case m.Cref < 0:
		return fail("cref must not be negative")
	case m.PermHorizontal < 0 || m.PermVertical < 0:
		return fail("permeabilities must not be negative")
	case m.Rinter < 0 || m.Rinter > 1:
		return fail("Rinter must be in [0, 1], got %g", m.Rinter)
	case m.Cc < 0 || m.Cs < 0 || m.VoidInit < 0:
		return fail("compression parameters must not be negative")
	}

	if m.Drainage.Strength() == EffectiveStrength {
		if m.Phi < 0 || m.Phi >= 90 {
			return fail("friction angle must be in [0, 90), got %g", m.Phi)
		}
	} else if m.Cinc < 0 {
		return fail("cinc must not be negative")
	}
	return nil
}

// EffectiveUnitWeight returns γsat − γw.
func (m *SoilMaterial) EffectiveUnitWeight() float64 {
	return m.GammaSat - UnitWeightWater
}

// StiffnessAt returns the Young's modulus at elevation y:
// Eref + Einc·(yref − y) below the reference level, Eref above it.
func (m *SoilMaterial) StiffnessAt(y float64) float64 {
	if y >= m.VerticalRef || m.Einc == 0 {
		return m.Eref
	}
	return m.Eref + m.Einc*(m.VerticalRef-y)
}

// OedometerModulus converts a Young's modulus with this material's
// Poisson's ratio: Eoed = E(1−ν)/((1+ν)(1−2ν)).
func (m *SoilMaterial) OedometerModulus(e float64) float64 {
	nu := m.Nu
	return e * (1 - nu) / ((1 + nu) * (1 - 2*nu))
}

// CopyMaterial derives a new material set from src under a new name.
func CopyMaterial(src SoilMaterial, name string) SoilMaterial {
	dst := src
	dst.Name = name
	dst.Number = 0
	return dst
}

// StructuralBehaviour is the material type of plates and anchors.
type StructuralBehaviour string

const (
	Elastic       StructuralBehaviour = "Elastic"
	Elastoplastic StructuralBehaviour = "Elastoplastic"
)

// Valid reports whether b is a known behaviour; empty means Elastic.
func (b StructuralBehaviour) Valid() bool {
	return b == "" || b == Elastic || b == Elastoplastic
}

// PlateMaterial is a plate (wall, slab) material set.
type PlateMaterial struct {
	Name      string              `yaml:"name"`
	Type      StructuralBehaviour `yaml:"type,omitempty"`
	EA        float64             `yaml:"ea"` // kN/m
	EI        float64             `yaml:"ei"` // kNm²/m
	W         float64             `yaml:"w"`  // kN/m/m
	Nu        float64             `yaml:"nu"`
	MaxMoment float64             `yaml:"mp,omitempty"` // kNm/m, elastoplastic only
}

// Validate checks a plate material set.
func (p *PlateMaterial) Validate() error {
	switch {
	case p.Name == "":
		return &ValidationError{"plate material must have a name"}
	case !p.Type.Valid():
		return &ValidationError{fmt.Sprintf("plate material %s: unknown type %q", p.Name, p.Type)}
	case p.EA <= 0 || p.EI <= 0:
		return &ValidationError{fmt.Sprintf("plate material %s: EA and EI must be positive", p.Name)}
	case p.W < 0:
		return &ValidationError{fmt.Sprintf("plate material %s: weight must not be negative", p.Name)}
	case p.Nu < 0 || p.Nu >= 0.5:
		return &ValidationError{fmt.Sprintf("plate material %s: Poisson's ratio must be in [0, 0.5)", p.Name)}
	case p.Type == Elastoplastic && p.MaxMoment <= 0:
		return &ValidationError{fmt.Sprintf("plate material %s: elastoplastic plates need Mp", p.Name)}
	}
	return nil
}

// EquivalentThickness returns d = √(12·EI/EA).
func (p *PlateMaterial) EquivalentThickness() float64 {
	return math.Sqrt(12 * p.EI / p.EA)
}

// AnchorMaterial is a node-to-node anchor material set.
type AnchorMaterial struct {
	Name     string              `yaml:"name"`
	Type     StructuralBehaviour `yaml:"type,omitempty"`
	EA       float64             `yaml:"ea"`       // kN
	Lspacing float64             `yaml:"lspacing"` // m
	MaxForce float64             `yaml:"f_max,omitempty"`
}

// Validate checks an anchor material set.
func (a *AnchorMaterial) Validate() error {
	switch {
	case a.Name == "":
		return &ValidationError{"anchor material must have a name"}
	case !a.Type.Valid():
		return &ValidationError{fmt.Sprintf("anchor material %s: unknown type %q", a.Name, a.Type)}
	case a.EA <= 0:
		return &ValidationError{fmt.Sprintf("anchor material %s: EA must be positive", a.Name)}
	case a.Lspacing <= 0:
		return &ValidationError{fmt.Sprintf("anchor material %s: Lspacing must be positive", a.Name)}
	case a.Type == Elastoplastic && a.MaxForce <= 0:
		return &ValidationError{fmt.Sprintf("anchor material %s: elastoplastic anchors need f_max", a.Name)}
	}
	return nil
}

// AxialStiffnessPerMetre returns EA/Lspacing (kN/m).
func (a *AnchorMaterial) AxialStiffnessPerMetre() float64 {
	return a.EA / a.Lspacing
}
