package meshinfo

import (
	"fmt"

	"github.com/alexiusacademia/geocons/internal/geometry"
)

// ends returns the start and end point IDs of a curve reference in
// traversal order.
func (m *MeshInfo) ends(ref CurveRef) (string, string) {
	c := m.Curves[m.curves[ref.ID]]
	if ref.Reversed {
		return c.End, c.Start
	}
	return c.Start, c.End
}

// Polygon assembles the closed vertex ring of a surface. The first curve
// contributes both of its end points and every following curve its end
// point, so the ring ends on the vertex it started from. Each curve must
// start where the previous one ended and the loop must close.
func (m *MeshInfo) Polygon(surfaceID string) (*geometry.Polygon, error) {
	s, ok := m.Surface(surfaceID)
	if !ok {
		return nil, fmt.Errorf("meshinfo: unknown surface %q", surfaceID)
	}
	if len(s.Curves) < 2 {
		return nil, &ParseError{Line: s.Line, Section: sectionSurfaces, ID: s.ID,
			Msg: fmt.Sprintf("a closed loop needs at least 2 curves, got %d", len(s.Curves))}
	}

	first, prev := m.ends(s.Curves[0])
	ids := []string{first, prev}

	for _, ref := range s.Curves[1:] {
		start, end := m.ends(ref)
		if start != prev {
			return nil, &ParseError{Line: s.Line, Section: sectionSurfaces, ID: s.ID,
				Msg: fmt.Sprintf("curve %s starts at %s but the loop is at %s", ref, start, prev)}
		}
		ids = append(ids, end)
		prev = end
	}

	if prev != first {
		return nil, &ParseError{Line: s.Line, Section: sectionSurfaces, ID: s.ID,
			Msg: fmt.Sprintf("loop is not closed: ends at %s, started at %s", prev, first)}
	}

	poly := &geometry.Polygon{ID: s.ID, Vertices: make([]geometry.Point, len(ids))}
	for i, pid := range ids {
		p, _ := m.Point(pid)
		poly.Vertices[i] = p.XY()
	}
	return poly, nil
}

// Polygons assembles every surface in file order.
func (m *MeshInfo) Polygons() ([]*geometry.Polygon, error) {
	polys := make([]*geometry.Polygon, 0, len(m.Surfaces))
	for _, s := range m.Surfaces {
		p, err := m.Polygon(s.ID)
		if err != nil {
			return nil, err
		}
		polys = append(polys, p)
	}
	return polys, nil
}

// Locate returns the polygons containing pt.
func Locate(polys []*geometry.Polygon, pt geometry.Point) []*geometry.Polygon {
	var found []*geometry.Polygon
	for _, p := range polys {
		if p.ContainsPoint(pt) {
			found = append(found, p)
		}
	}
	return found
}

// Within returns the polygons whose vertices all lie inside box, such as
// the soil clusters removed by an excavation stage.
func Within(polys []*geometry.Polygon, box geometry.Box, tol float64) []*geometry.Polygon {
	var found []*geometry.Polygon
	for _, p := range polys {
		if box.ContainsAll(p.Vertices, tol) {
			found = append(found, p)
		}
	}
	return found
}
