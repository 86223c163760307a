package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rect(x0, y0, x1, y1 float64) *Polygon {
	return &Polygon{Vertices: []Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}}
}

func TestPolygonAreaAndCentroid(t *testing.T) {
	tests := []struct {
		name     string
		poly     *Polygon
		area     float64
		centroid Point
	}{
		{"unit square", rect(0, 0, 1, 1), 1, Point{0.5, 0.5}},
		{"offset rectangle", rect(2, -8, 6, -3), 20, Point{4, -5.5}},
		{"clockwise", &Polygon{Vertices: []Point{{0, 0}, {0, 2}, {3, 2}, {3, 0}}}, 6, Point{1.5, 1}},
		{"closed ring", &Polygon{Vertices: []Point{{0, 0}, {4, 0}, {4, 2}, {0, 2}, {0, 0}}}, 8, Point{2, 1}},
		{"L shape", &Polygon{Vertices: []Point{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}}}, 3, Point{5.0 / 6, 5.0 / 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.area, tt.poly.Area(), 1e-12)
			c := tt.poly.Centroid()
			assert.InDelta(t, tt.centroid.X, c.X, 1e-12)
			assert.InDelta(t, tt.centroid.Y, c.Y, 1e-12)
		})
	}
}

func TestPolygonDegenerate(t *testing.T) {
	p := &Polygon{Vertices: []Point{{0, 0}, {2, 2}}}
	assert.Equal(t, 0.0, p.Area())
	assert.Equal(t, Point{1, 1}, p.Centroid())
	assert.Equal(t, Point{}, (&Polygon{}).Centroid())
}

func TestPolygonBoundsAndContainment(t *testing.T) {
	p := &Polygon{Vertices: []Point{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}}}
	assert.Equal(t, Box{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2}, p.Bounds())

	assert.True(t, p.ContainsPoint(Point{0.5, 1.5}))
	assert.True(t, p.ContainsPoint(Point{1.5, 0.5}))
	assert.False(t, p.ContainsPoint(Point{1.5, 1.5}))
	assert.False(t, p.ContainsPoint(Point{-1, 0.5}))

	assert.InDelta(t, 2.0, p.WidthAtY(0.5), 1e-12)
	assert.InDelta(t, 1.0, p.WidthAtY(1.5), 1e-12)
	assert.Equal(t, 0.0, p.WidthAtY(3))
}

func TestBoxContains(t *testing.T) {
	b := Box{MinX: 0, MinY: -8, MaxX: 1, MaxY: 0}
	assert.True(t, b.Contains(Point{0.5, -4}, 0))
	assert.True(t, b.Contains(Point{1, 0}, 0), "boundary counts as inside")
	assert.False(t, b.Contains(Point{1.01, 0}, 0))
	assert.True(t, b.Contains(Point{1.0005, 0}, 1e-3))
	assert.True(t, b.ContainsAll([]Point{{0, 0}, {1, -8}}, 0))
	assert.False(t, b.ContainsAll([]Point{{0, 0}, {2, -8}}, 0))
	assert.Equal(t, 1.0, b.Width())
	assert.Equal(t, 8.0, b.Height())
}

func TestParseBoundingBox(t *testing.T) {
	tests := []struct {
		in   string
		want Box
	}{
		{"min: (0; -8; 0) max: (1; 0; 0)", Box{MinX: 0, MinY: -8, MaxX: 1, MaxY: 0}},
		{"BoundingBox min: (-12.5; -30.25; 0) max: (40; 2.5; 0)", Box{MinX: -12.5, MinY: -30.25, MaxX: 40, MaxY: 2.5}},
		{"min: (1.5; 2) max: (3; 4)", Box{MinX: 1.5, MinY: 2, MaxX: 3, MaxY: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBoundingBox(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "min: (a; 0; 0) max: (1; 1; 0)", "min: (5; 0; 0) max: (1; 1; 0)", "(0;0) (1;1)"} {
		_, err := ParseBoundingBox(bad)
		assert.Error(t, err, bad)
	}
}
