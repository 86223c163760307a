// Package geometry provides the planar polygon primitives used to reconcile
// mesh-info surfaces with named soil polygons.
package geometry

import (
	"math"
	"sort"
)

// Point represents a 2D model coordinate (m)
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Polygon is a simple planar polygon. The ring may be given open or closed
// (last vertex repeating the first); both describe the same shape.
type Polygon struct {
	ID       string
	Vertices []Point
}

// Closed reports whether the last vertex repeats the first.
func (p *Polygon) Closed() bool {
	n := len(p.Vertices)
	return n > 1 && p.Vertices[0] == p.Vertices[n-1]
}

// Area returns the absolute polygon area using the shoelace formula.
func (p *Polygon) Area() float64 {
	area, _, _ := p.areaAndCentroid()
	return area
}

// Centroid returns the area centroid. Degenerate polygons fall back to
// the vertex average.
func (p *Polygon) Centroid() Point {
	area, cx, cy := p.areaAndCentroid()
	if area > 0 {
		return Point{X: cx, Y: cy}
	}

	var c Point
	if len(p.Vertices) == 0 {
		return c
	}
	for _, v := range p.Vertices {
		c.X += v.X
		c.Y += v.Y
	}
	c.X /= float64(len(p.Vertices))
	c.Y /= float64(len(p.Vertices))
	return c
}

// areaAndCentroid uses the shoelace formula. A repeated closing vertex
// contributes a zero-length edge and does not change the result.
func (p *Polygon) areaAndCentroid() (area, cx, cy float64) {
	n := len(p.Vertices)
	if n < 3 {
		return 0, 0, 0
	}

	var signedArea float64
	var sumX, sumY float64

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := p.Vertices[i].X*p.Vertices[j].Y - p.Vertices[j].X*p.Vertices[i].Y
		signedArea += cross
		sumX += (p.Vertices[i].X + p.Vertices[j].X) * cross
		sumY += (p.Vertices[i].Y + p.Vertices[j].Y) * cross
	}

	signedArea /= 2
	area = math.Abs(signedArea)

	if area > 0 {
		cx = sumX / (6 * signedArea)
		cy = sumY / (6 * signedArea)
	}

	return area, cx, cy
}

// Bounds returns the axis-aligned bounding box of the vertices.
func (p *Polygon) Bounds() Box {
	if len(p.Vertices) == 0 {
		return Box{}
	}
	b := Box{
		MinX: p.Vertices[0].X, MaxX: p.Vertices[0].X,
		MinY: p.Vertices[0].Y, MaxY: p.Vertices[0].Y,
	}
	for _, v := range p.Vertices[1:] {
		b.MinX = math.Min(b.MinX, v.X)
		b.MaxX = math.Max(b.MaxX, v.X)
		b.MinY = math.Min(b.MinY, v.Y)
		b.MaxY = math.Max(b.MaxY, v.Y)
	}
	return b
}

// ContainsPoint reports whether q lies inside the polygon, counting
// crossings of the horizontal line through q to the right of it.
func (p *Polygon) ContainsPoint(q Point) bool {
	xs := p.intersectionsAtY(q.Y)
	inside := false
	for _, x := range xs {
		if x > q.X {
			inside = !inside
		}
	}
	return inside
}

// WidthAtY returns the total width of the polygon cut by a horizontal
// line at elevation y.
func (p *Polygon) WidthAtY(y float64) float64 {
	intersections := p.intersectionsAtY(y)
	if len(intersections) < 2 {
		return 0
	}

	sort.Float64s(intersections)

	var total float64
	for i := 0; i+1 < len(intersections); i += 2 {
		total += intersections[i+1] - intersections[i]
	}
	return total
}

// intersectionsAtY finds all X coordinates where a horizontal line at y
// crosses the polygon edges
func (p *Polygon) intersectionsAtY(y float64) []float64 {
	var intersections []float64
	n := len(p.Vertices)

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		v1, v2 := p.Vertices[i], p.Vertices[j]

		if (v1.Y <= y && v2.Y > y) || (v2.Y <= y && v1.Y > y) {
			t := (y - v1.Y) / (v2.Y - v1.Y)
			intersections = append(intersections, v1.X+t*(v2.X-v1.X))
		}
	}

	return intersections
}
