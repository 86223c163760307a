package model

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// The integer codes below are the ones used by the modeling application's
// material sets. The tables are kept as the application defines them.

// DrainageType is the drainage behaviour code of a soil material.
type DrainageType int

const (
	Drained    DrainageType = 0
	UndrainedA DrainageType = 1
	UndrainedB DrainageType = 2
	UndrainedC DrainageType = 3
	NonPorous  DrainageType = 4
)

var drainageTypeNames = map[DrainageType]string{
	Drained:    "Drained",
	UndrainedA: "Undrained (A)",
	UndrainedB: "Undrained (B)",
	UndrainedC: "Undrained (C)",
	NonPorous:  "Non-porous",
}

func (d DrainageType) String() string {
	if name, ok := drainageTypeNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DrainageType(%d)", int(d))
}

// Valid reports whether d is a known code.
func (d DrainageType) Valid() bool {
	_, ok := drainageTypeNames[d]
	return ok
}

// StrengthParams tells which pair of strength parameters applies.
type StrengthParams int

const (
	// EffectiveStrength uses c'ref and φ'.
	EffectiveStrength StrengthParams = iota
	// UndrainedStrength uses su,ref (cref) and su,inc (cinc).
	UndrainedStrength
)

func (s StrengthParams) String() string {
	if s == UndrainedStrength {
		return "cref, cinc"
	}
	return "cref, phi"
}

// Strength returns the strength parameter pair used with this drainage
// type: Drained and Non-porous take (c'ref, φ'), the undrained types take
// (cref, cinc).
func (d DrainageType) Strength() StrengthParams {
	switch d {
	case UndrainedA, UndrainedB, UndrainedC:
		return UndrainedStrength
	default:
		return EffectiveStrength
	}
}

// SoilModel is the constitutive model code of a soil material.
type SoilModel int

const (
	LinearElastic SoilModel = 1
	MohrCoulomb   SoilModel = 2
)

var soilModelNames = map[SoilModel]string{
	LinearElastic: "Linear Elastic",
	MohrCoulomb:   "Mohr-Coulomb",
}

func (m SoilModel) String() string {
	if name, ok := soilModelNames[m]; ok {
		return name
	}
	return fmt.Sprintf("SoilModel(%d)", int(m))
}

// Valid reports whether m is a known code.
func (m SoilModel) Valid() bool {
	_, ok := soilModelNames[m]
	return ok
}

// CrossPermeability is the interface cross permeability code.
type CrossPermeability int

const (
	Impermeable     CrossPermeability = 0
	SemiImpermeable CrossPermeability = 1
	FullyPermeable  CrossPermeability = 2
)

var crossPermeabilityNames = map[CrossPermeability]string{
	Impermeable:     "Impermeable",
	SemiImpermeable: "Semi-impermeable",
	FullyPermeable:  "Fully permeable",
}

func (c CrossPermeability) String() string {
	if name, ok := crossPermeabilityNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CrossPermeability(%d)", int(c))
}

// Valid reports whether c is a known code.
func (c CrossPermeability) Valid() bool {
	_, ok := crossPermeabilityNames[c]
	return ok
}

// InterfaceStrength is the interface strength code.
type InterfaceStrength int

const (
	RigidInterface  InterfaceStrength = 0
	ManualInterface InterfaceStrength = 1
)

var interfaceStrengthNames = map[InterfaceStrength]string{
	RigidInterface:  "Rigid",
	ManualInterface: "Manual",
}

func (i InterfaceStrength) String() string {
	if name, ok := interfaceStrengthNames[i]; ok {
		return name
	}
	return fmt.Sprintf("InterfaceStrength(%d)", int(i))
}

// Valid reports whether i is a known code.
func (i InterfaceStrength) Valid() bool {
	_, ok := interfaceStrengthNames[i]
	return ok
}

// K0Determination is the code for how K0 is set.
type K0Determination int

const (
	K0Manual    K0Determination = 0
	K0Automatic K0Determination = 1
)

var k0DeterminationNames = map[K0Determination]string{
	K0Manual:    "Manual",
	K0Automatic: "Automatic",
}

func (k K0Determination) String() string {
	if name, ok := k0DeterminationNames[k]; ok {
		return name
	}
	return fmt.Sprintf("K0Determination(%d)", int(k))
}

// Valid reports whether k is a known code.
func (k K0Determination) Valid() bool {
	_, ok := k0DeterminationNames[k]
	return ok
}

// parseCode accepts either the integer code or its display name
// (case-insensitive) and returns the code.
func parseCode[T ~int](s string, names map[T]string) (T, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if _, ok := names[T(n)]; !ok {
			return 0, fmt.Errorf("unknown code %d", n)
		}
		return T(n), nil
	}
	for code, name := range names {
		if strings.EqualFold(name, s) {
			return code, nil
		}
	}
	return 0, fmt.Errorf("unknown value %q", s)
}

// ParseDrainageType parses a drainage code or name.
func ParseDrainageType(s string) (DrainageType, error) {
	d, err := parseCode(s, drainageTypeNames)
	if err != nil {
		return 0, fmt.Errorf("drainage type: %w", err)
	}
	return d, nil
}

// ParseSoilModel parses a soil model code or name.
func ParseSoilModel(s string) (SoilModel, error) {
	m, err := parseCode(s, soilModelNames)
	if err != nil {
		return 0, fmt.Errorf("soil model: %w", err)
	}
	return m, nil
}

// ParseCrossPermeability parses a cross permeability code or name.
func ParseCrossPermeability(s string) (CrossPermeability, error) {
	c, err := parseCode(s, crossPermeabilityNames)
	if err != nil {
		return 0, fmt.Errorf("cross permeability: %w", err)
	}
	return c, nil
}

func (d *DrainageType) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseDrainageType(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*d = v
	return nil
}

func (m *SoilModel) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseSoilModel(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*m = v
	return nil
}

func (c *CrossPermeability) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseCrossPermeability(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = v
	return nil
}

// ParseInterfaceStrength parses an interface strength code or name.
func ParseInterfaceStrength(s string) (InterfaceStrength, error) {
	i, err := parseCode(s, interfaceStrengthNames)
	if err != nil {
		return 0, fmt.Errorf("interface strength: %w", err)
	}
	return i, nil
}

// ParseK0Determination parses a K0 determination code or name.
func ParseK0Determination(s string) (K0Determination, error) {
	k, err := parseCode(s, k0DeterminationNames)
	if err != nil {
		return 0, fmt.Errorf("K0 determination: %w", err)
	}
	return k, nil
}

func (i *InterfaceStrength) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseInterfaceStrength(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*i = v
	return nil
}

func (k *K0Determination) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseK0Determination(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*k = v
	return nil
}
