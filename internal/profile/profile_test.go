package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/geocons/internal/model"
)

var softClay = model.SoilMaterial{
	Name: "SoftClay", Model: model.MohrCoulomb, Drainage: model.UndrainedA,
	GammaUnsat: 15, GammaSat: 16, Cref: 10, Cinc: 1.5,
	Nu: 0.35, Eref: 1500, Einc: 200, VerticalRef: 0,
	PermHorizontal: 2e-4, PermVertical: 1e-4,
}

var clayLayer = model.ConsolidationLayer{
	Name: "Clay", Material: "SoftClay", Top: 0, Bottom: -20, Slices: 4,
	Cv: []model.CvPoint{{Depth: 0, Cv: 0.004}, {Depth: 20, Cv: 0.002}},
}

func TestBuild(t *testing.T) {
	p, err := Build(clayLayer, softClay)
	require.NoError(t, err)
	require.Len(t, p.Slices, 4)
	assert.Equal(t, "Clay", p.Layer)
	assert.Equal(t, "SoftClay", p.Base)

	oed := (1 - 0.35) / ((1 + 0.35) * (1 - 2*0.35))
	wantE := []float64{2000, 3000, 4000, 5000}
	wantCv := []float64{0.00375, 0.00325, 0.00275, 0.00225}

	for i, s := range p.Slices {
		assert.Equal(t, i+1, s.Index)
		assert.InDelta(t, -5*float64(i), s.Top, 1e-12)
		assert.InDelta(t, -5*float64(i+1), s.Bottom, 1e-12)
		assert.InDelta(t, 2.5+5*float64(i), s.Depth, 1e-12)

		assert.InDelta(t, wantE[i], s.E, 1e-9)
		assert.InDelta(t, wantE[i]*oed, s.Eoed, 1e-9)
		assert.InDelta(t, wantCv[i], s.Cv, 1e-12)
		assert.InDelta(t, wantCv[i]*model.UnitWeightWater/(wantE[i]*oed), s.Kv, 1e-15)
		assert.InDelta(t, 2*s.Kv, s.Kh, 1e-15)

		assert.Equal(t, SliceName("SoftClay", i+1), s.Material.Name)
		assert.Equal(t, s.E, s.Material.Eref)
		assert.Zero(t, s.Material.Einc)
		assert.Equal(t, s.Kv, s.Material.PermVertical)
		assert.Equal(t, s.Kh, s.Material.PermHorizontal)
		assert.Equal(t, softClay.Drainage, s.Material.Drainage)
	}

	// stiffer and less permeable with depth
	for i := 1; i < len(p.Slices); i++ {
		assert.Less(t, p.Slices[i].Kv, p.Slices[i-1].Kv)
	}
}

func TestSliceName(t *testing.T) {
	assert.Equal(t, "SoftClay_01", SliceName("SoftClay", 1))
	assert.Equal(t, "SoftClay_12", SliceName("SoftClay", 12))
}

func TestBuildClampsCvTable(t *testing.T) {
	layer := clayLayer
	layer.Cv = []model.CvPoint{{Depth: 5, Cv: 0.004}, {Depth: 10, Cv: 0.002}}

	p, err := Build(layer, softClay)
	require.NoError(t, err)
	assert.InDelta(t, 0.004, p.Slices[0].Cv, 1e-12)
	assert.InDelta(t, 0.003, p.Slices[1].Cv, 1e-12)
	assert.InDelta(t, 0.002, p.Slices[2].Cv, 1e-12)
	assert.InDelta(t, 0.002, p.Slices[3].Cv, 1e-12)

	layer.Cv = []model.CvPoint{{Depth: 0, Cv: 0.003}}
	p, err = Build(layer, softClay)
	require.NoError(t, err)
	for _, s := range p.Slices {
		assert.Equal(t, 0.003, s.Cv)
	}
}

func TestBuildIsotropicTemplate(t *testing.T) {
	mat := softClay
	mat.PermVertical = 0
	mat.Einc = 0

	p, err := Build(clayLayer, mat)
	require.NoError(t, err)
	for _, s := range p.Slices {
		assert.Equal(t, s.Kv, s.Kh)
		assert.Equal(t, 1500.0, s.E)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name     string
		layer    func(l *model.ConsolidationLayer)
		material func(m *model.SoilMaterial)
	}{
		{"top below bottom", func(l *model.ConsolidationLayer) { l.Top = -30 }, nil},
		{"no slices", func(l *model.ConsolidationLayer) { l.Slices = 0 }, nil},
		{"cv not ascending", func(l *model.ConsolidationLayer) {
			l.Cv = []model.CvPoint{{Depth: 10, Cv: 0.004}, {Depth: 5, Cv: 0.002}}
		}, nil},
		{"empty cv", func(l *model.ConsolidationLayer) { l.Cv = nil }, nil},
		{"nu at 0.5", nil, func(m *model.SoilMaterial) { m.Nu = 0.5 }},
		{"zero stiffness", nil, func(m *model.SoilMaterial) { m.Eref = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layer := clayLayer
			layer.Cv = append([]model.CvPoint(nil), clayLayer.Cv...)
			mat := softClay
			if tt.layer != nil {
				tt.layer(&layer)
			}
			if tt.material != nil {
				tt.material(&mat)
			}
			_, err := Build(layer, mat)
			assert.Error(t, err)
		})
	}
}

func TestBuildAll(t *testing.T) {
	m, err := model.Load("../model/testdata/model.yaml")
	require.NoError(t, err)

	profiles, err := BuildAll(m)
	require.NoError(t, err)
	require.Len(t, profiles, 1)

	layers := profiles[0].BoreholeLayers()
	require.Len(t, layers, 4)
	assert.Equal(t, "SoftClay_04", layers[3].Material)
	assert.Equal(t, -20.0, layers[3].Bottom)

	mats := profiles[0].Materials()
	require.Len(t, mats, 4)
	for _, mat := range mats {
		assert.NoError(t, mat.Validate())
	}
}
