// Package profile splits a consolidation layer into slices with
// depth-dependent stiffness and permeability. Each slice gets its own
// material set derived from the layer's base material.
package profile

import (
	"fmt"

	"gonum.org/v1/gonum/interp"

	"github.com/alexiusacademia/geocons/internal/model"
)

// Slice is one horizontal slice of a consolidation layer.
type Slice struct {
	Index  int     // 1-based
	Top    float64 // elevation (m)
	Bottom float64 // elevation (m)
	Depth  float64 // mid-slice depth below the layer top (m)

	E    float64 // Young's modulus at mid-slice (kPa)
	Eoed float64 // oedometer modulus (kPa)
	Cv   float64 // coefficient of consolidation (m²/day)
	Kv   float64 // vertical permeability (m/day)
	Kh   float64 // horizontal permeability (m/day)

	Material model.SoilMaterial
}

// Mid returns the mid-slice elevation.
func (s *Slice) Mid() float64 {
	return (s.Top + s.Bottom) / 2
}

// Profile is a sliced consolidation layer.
type Profile struct {
	Layer  string
	Base   string
	Slices []Slice
}

// Build slices layer using base as the template material. For a slice at
// elevation y and depth z below the layer top:
//
//	E    = Eref + Einc·max(0, yref − y)
//	Eoed = E(1−ν)/((1+ν)(1−2ν))
//	kv   = cv(z)·γw/Eoed
//	kh   = kv·kx/ky
//
// where cv(z) is interpolated linearly in the layer's cv table and held
// constant beyond its ends, and kx/ky is the anisotropy of the template
// (1 when the template has no vertical permeability).
func Build(layer model.ConsolidationLayer, base model.SoilMaterial) (*Profile, error) {
	if err := layer.Validate(); err != nil {
		return nil, err
	}
	if base.Nu < 0 || base.Nu >= 0.5 {
		return nil, fmt.Errorf("material %s: Poisson's ratio must be in [0, 0.5), got %g", base.Name, base.Nu)
	}
	if !(base.Eref > 0) {
		return nil, fmt.Errorf("material %s: Eref must be positive", base.Name)
	}

	cv, err := cvTable(layer.Cv)
	if err != nil {
		return nil, fmt.Errorf("consolidation layer %s: %w", layer.Name, err)
	}

	anisotropy := 1.0
	if base.PermVertical > 0 {
		anisotropy = base.PermHorizontal / base.PermVertical
	}

	h := layer.Thickness() / float64(layer.Slices)
	p := &Profile{Layer: layer.Name, Base: base.Name, Slices: make([]Slice, layer.Slices)}
	for i := range p.Slices {
		s := Slice{
			Index:  i + 1,
			Top:    layer.Top - float64(i)*h,
			Bottom: layer.Top - float64(i+1)*h,
		}
		if i == layer.Slices-1 {
			s.Bottom = layer.Bottom
		}
		s.Depth = layer.Top - s.Mid()

		s.E = base.StiffnessAt(s.Mid())
		s.Eoed = base.OedometerModulus(s.E)
		s.Cv = cv.Predict(s.Depth)
		s.Kv = s.Cv * model.UnitWeightWater / s.Eoed
		s.Kh = s.Kv * anisotropy

		mat := model.CopyMaterial(base, SliceName(base.Name, s.Index))
		mat.Eref = s.E
		mat.Einc = 0
		mat.PermVertical = s.Kv
		mat.PermHorizontal = s.Kh
		s.Material = mat

		p.Slices[i] = s
	}
	return p, nil
}

// SliceName returns the material name of slice i: <base>_<nn>.
func SliceName(base string, i int) string {
	return fmt.Sprintf("%s_%02d", base, i)
}

// Materials returns the slice materials from top to bottom.
func (p *Profile) Materials() []model.SoilMaterial {
	mats := make([]model.SoilMaterial, len(p.Slices))
	for i, s := range p.Slices {
		mats[i] = s.Material
	}
	return mats
}

// BoreholeLayers returns the slices as borehole layers, top to bottom.
func (p *Profile) BoreholeLayers() []model.BoreholeLayer {
	layers := make([]model.BoreholeLayer, len(p.Slices))
	for i, s := range p.Slices {
		layers[i] = model.BoreholeLayer{Material: s.Material.Name, Bottom: s.Bottom}
	}
	return layers
}

// BuildAll slices every consolidation layer of m.
func BuildAll(m *model.Model) ([]*Profile, error) {
	profiles := make([]*Profile, 0, len(m.Layers))
	for _, layer := range m.Layers {
		base, ok := m.Material(layer.Material)
		if !ok {
			return nil, fmt.Errorf("consolidation layer %s: unknown material %s", layer.Name, layer.Material)
		}
		p, err := Build(layer, base)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

type predictor interface {
	Predict(x float64) float64
}

type constant float64

func (c constant) Predict(float64) float64 { return float64(c) }

func cvTable(points []model.CvPoint) (predictor, error) {
	if len(points) == 1 {
		return constant(points[0].Cv), nil
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.Depth, p.Cv
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("cv table: %w", err)
	}
	return &pl, nil
}
