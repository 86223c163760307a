package meshinfo

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/geocons/internal/geometry"
)

func TestLoadFromDirectory(t *testing.T) {
	m, err := LoadFromFile("testdata")
	require.NoError(t, err)

	assert.Len(t, m.Points, 6)
	assert.Len(t, m.Curves, 7)
	require.Len(t, m.Surfaces, 2)

	p, ok := m.Point("P3")
	require.True(t, ok)
	assert.Equal(t, geometry.Point{X: 10, Y: -4}, p.XY())

	s1, ok := m.Surface("S1")
	require.True(t, ok)
	want := []CurveRef{{ID: "C1"}, {ID: "C2"}, {ID: "C3", Reversed: true}, {ID: "C4"}}
	if diff := cmp.Diff(want, s1.Curves); diff != "" {
		t.Errorf("S1 curves mismatch (-want +got):\n%s", diff)
	}
}

func TestPolygonFollowsSignedCurveOrder(t *testing.T) {
	m, err := LoadFromFile("testdata/data.meshinfo")
	require.NoError(t, err)

	poly, err := m.Polygon("S1")
	require.NoError(t, err)

	want := []geometry.Point{{X: 0, Y: -8}, {X: 10, Y: -8}, {X: 10, Y: -4}, {X: 0, Y: -4}, {X: 0, Y: -8}}
	if diff := cmp.Diff(want, poly.Vertices); diff != "" {
		t.Errorf("S1 vertices mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, poly.Closed())
	assert.Equal(t, "S1", poly.ID)
	assert.InDelta(t, 40.0, poly.Area(), 1e-12)
	assert.Equal(t, geometry.Point{X: 5, Y: -6}, poly.Centroid())

	polys, err := m.Polygons()
	require.NoError(t, err)
	require.Len(t, polys, 2)
	assert.Equal(t, "S2", polys[1].ID)
	assert.InDelta(t, 40.0, polys[1].Area(), 1e-12)
}

func TestLocateAndWithin(t *testing.T) {
	m, err := LoadFromFile("testdata")
	require.NoError(t, err)
	polys, err := m.Polygons()
	require.NoError(t, err)

	found := Locate(polys, geometry.Point{X: 3, Y: -1})
	require.Len(t, found, 1)
	assert.Equal(t, "S2", found[0].ID)

	inside := Within(polys, geometry.Box{MinX: -1, MinY: -5, MaxX: 11, MaxY: 1}, 1e-6)
	require.Len(t, inside, 1)
	assert.Equal(t, "S2", inside[0].ID)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line int
		id   string
	}{
		{
			name: "bad coordinate",
			in:   "POINTS\nP1 = (0, x, 0)\nCURVES\nSURFACES\n",
			line: 2, id: "P1",
		},
		{
			name: "too many coordinates",
			in:   "POINTS\nP1 = (0, 1, 2, 3)\nCURVES\nSURFACES\n",
			line: 2, id: "P1",
		},
		{
			name: "missing parentheses",
			in:   "POINTS\nP1 = 0, 1, 2\nCURVES\nSURFACES\n",
			line: 2,
		},
		{
			name: "curve with one point",
			in:   "POINTS\nP1 = (0, 0, 0)\nCURVES\nC1 = (P1)\nSURFACES\n",
			line: 4, id: "C1",
		},
		{
			name: "unknown point",
			in:   "POINTS\nP1 = (0, 0, 0)\nCURVES\nC1 = (P1, P9)\nSURFACES\n",
			line: 4, id: "C1",
		},
		{
			name: "unknown curve",
			in:   "POINTS\nP1 = (0, 0, 0)\nP2 = (1, 0, 0)\nCURVES\nC1 = (P1, P2)\nSURFACES\nS1 = (C1, -C2)\n",
			line: 7, id: "S1",
		},
		{
			name: "duplicate point",
			in:   "POINTS\nP1 = (0, 0, 0)\nP1 = (1, 0, 0)\nCURVES\nSURFACES\n",
			line: 3, id: "P1",
		},
		{
			name: "empty reference",
			in:   "POINTS\nP1 = (0, 0, 0)\nCURVES\nSURFACES\nS1 = (C1, , C2)\n",
			line: 5, id: "S1",
		},
		{
			name: "missing section",
			in:   "POINTS\nP1 = (0, 0, 0)\nCURVES\n",
		},
		{
			name: "stray header inside surfaces",
			in:   "POINTS\nP1 = (0, 0)\nP2 = (1, 0)\nCURVES\nC1 = (P1, P2)\nSURFACES\nS1 = (C1, -C1)\nS\nS2 = (C1, -C1)\n",
			line: 8,
		},
		{
			name: "trailing section before surfaces",
			in:   "POINTS\nP1 = (0, 0)\nCURVES\nINTERFACE_ELEMENTS\nSURFACES\n",
			line: 4,
		},
		{
			name: "unknown section after geometry",
			in:   "POINTS\nCURVES\nSURFACES\nEND\n",
			line: 4,
		},
		{
			name: "duplicate section",
			in:   "POINTS\nP1 = (0, 0)\nCURVES\nPOINTS\nSURFACES\n",
			line: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "want ParseError, got %v", err)
			assert.Equal(t, tt.line, pe.Line)
			assert.Equal(t, tt.id, pe.ID)
		})
	}
}

func TestPolygonLoopErrors(t *testing.T) {
	const points = "POINTS\nP1 = (0, 0)\nP2 = (1, 0)\nP3 = (1, 1)\nP4 = (0, 1)\n"
	const curves = "CURVES\nC1 = (P1, P2)\nC2 = (P2, P3)\nC3 = (P3, P4)\nC4 = (P4, P1)\n"

	tests := []struct {
		name    string
		surface string
		msg     string
	}{
		{"not contiguous", "S1 = (C1, C3, C2, C4)", "starts at"},
		{"not closed", "S1 = (C1, C2, C3)", "not closed"},
		{"wrong direction", "S1 = (C1, C2, -C3, C4)", "starts at"},
		{"single curve", "S1 = (C1)", "at least 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Parse(strings.NewReader(points + curves + "SURFACES\n" + tt.surface + "\n"))
			require.NoError(t, err)

			_, err = m.Polygon("S1")
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "want ParseError, got %v", err)
			assert.Equal(t, "S1", pe.ID)
			assert.Contains(t, pe.Error(), tt.msg)
		})
	}

	m, err := Parse(strings.NewReader(points + curves + "SURFACES\n"))
	require.NoError(t, err)
	_, err = m.Polygon("S9")
	assert.Error(t, err)
}

func TestTwoDimensionalPoints(t *testing.T) {
	in := "POINTS\nA = (0, 0)\nB = (2, 0)\nC = (2, 3)\nCURVES\nAB = (A, B)\nBC = (B, C)\nCA = (C, A)\nSURFACES\nT = (AB, BC, CA)\n"
	m, err := Parse(strings.NewReader(in))
	require.NoError(t, err)

	poly, err := m.Polygon("T")
	require.NoError(t, err)
	assert.InDelta(t, 3.0, poly.Area(), 1e-12)
	assert.Len(t, poly.Vertices, 4)
}

func TestPreambleAndTrailingSections(t *testing.T) {
	in := "VERSION 3\nPROJECT Test\nPOINTS 2\nP1 = (0, 0)\nP2 = (1, 0)\n" +
		"CURVES\nC1 = (P1, P2)\nSURFACES\nS1 = (C1, -C1)\n" +
		"INTERFACE_ELEMENTS\nIE1 = (C1)\n"
	m, err := Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Len(t, m.Points, 2)
	assert.Len(t, m.Surfaces, 1)
}
