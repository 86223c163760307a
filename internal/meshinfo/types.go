// Package meshinfo reads the geometry part of a mesh-info dump written by
// the modeling application and rebuilds the soil surfaces as polygons.
//
// The dump is organised in sections introduced by an upper-case header:
//
//	POINTS
//	P1 = (0.0, -8.0, 0.0)
//	...
//	CURVES
//	C1 = (P1, P2)
//	...
//	SURFACES
//	S1 = (C1, C2, -C3, C4)
//	INTERFACE_ELEMENTS
//	...
//
// A leading minus on a curve reference traverses that curve from its end
// point to its start point. Sections other than the three above are skipped.
package meshinfo

import (
	"fmt"

	"github.com/alexiusacademia/geocons/internal/geometry"
)

// Point is a named geometry point.
type Point struct {
	ID   string
	X, Y float64
	Z    float64
	Line int
}

// XY returns the planar coordinate of the point.
func (p Point) XY() geometry.Point {
	return geometry.Point{X: p.X, Y: p.Y}
}

// Curve is a straight curve between two named points.
type Curve struct {
	ID         string
	Start, End string
	Line       int
}

// CurveRef is a signed reference to a curve inside a surface loop.
type CurveRef struct {
	ID       string
	Reversed bool
}

func (r CurveRef) String() string {
	if r.Reversed {
		return "-" + r.ID
	}
	return r.ID
}

// Surface is a closed loop of signed curve references.
type Surface struct {
	ID     string
	Curves []CurveRef
	Line   int
}

// MeshInfo holds the parsed points, curves and surfaces in file order.
type MeshInfo struct {
	Points   []Point
	Curves   []Curve
	Surfaces []Surface

	points   map[string]int
	curves   map[string]int
	surfaces map[string]int
}

// Point looks up a point by ID.
func (m *MeshInfo) Point(id string) (Point, bool) {
	i, ok := m.points[id]
	if !ok {
		return Point{}, false
	}
	return m.Points[i], true
}

// Curve looks up a curve by ID.
func (m *MeshInfo) Curve(id string) (Curve, bool) {
	i, ok := m.curves[id]
	if !ok {
		return Curve{}, false
	}
	return m.Curves[i], true
}

// Surface looks up a surface by ID.
func (m *MeshInfo) Surface(id string) (Surface, bool) {
	i, ok := m.surfaces[id]
	if !ok {
		return Surface{}, false
	}
	return m.Surfaces[i], true
}

// ParseError identifies the offending line of a malformed dump.
type ParseError struct {
	Line    int    // 1-based line number, 0 when not tied to a line
	Section string // section the line belongs to
	ID      string // entity identifier, if it could be read
	Msg     string
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.ID != "":
		return fmt.Sprintf("meshinfo line %d (%s %s): %s", e.Line, e.Section, e.ID, e.Msg)
	case e.Line > 0:
		return fmt.Sprintf("meshinfo line %d (%s): %s", e.Line, e.Section, e.Msg)
	default:
		return "meshinfo: " + e.Msg
	}
}
