package results

import (
	"fmt"
	"io"
	"math"
	"sort"
)

// CutTolerance is how far a node may lie from the cut elevation.
const CutTolerance = 1e-6

// Node is a soil node with its vertical displacement (m).
type Node struct {
	X, Y float64
	Uy   float64
}

// SettlementPoint is a node on a cut with Uy in millimetres.
type SettlementPoint struct {
	X, Y float64
	Uy   float64 // mm
}

// Cut is a horizontal section from XMin to XMax at elevation Y.
type Cut struct {
	Name string
	XMin float64
	XMax float64
	Y    float64
}

// Validate checks the extent of the cut.
func (c Cut) Validate() error {
	if !(c.XMax > c.XMin) {
		return fmt.Errorf("cut %s: xmax %g must exceed xmin %g", c.Name, c.XMax, c.XMin)
	}
	if math.IsNaN(c.Y) || math.IsInf(c.Y, 0) {
		return fmt.Errorf("cut %s: invalid elevation", c.Name)
	}
	return nil
}

// Extract returns the nodes strictly between XMin and XMax lying on the
// cut elevation, sorted by x, with displacements converted to mm.
func (c Cut) Extract(nodes []Node) []SettlementPoint {
	var out []SettlementPoint
	for _, n := range nodes {
		if n.X <= c.XMin || n.X >= c.XMax {
			continue
		}
		if math.Abs(n.Y-c.Y) >= CutTolerance {
			continue
		}
		out = append(out, SettlementPoint{X: n.X, Y: n.Y, Uy: n.Uy * 1000})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].X < out[j].X })
	return out
}

// MaxSettlement returns the point with the largest downward displacement.
func MaxSettlement(points []SettlementPoint) (SettlementPoint, bool) {
	if len(points) == 0 {
		return SettlementPoint{}, false
	}
	best := points[0]
	for _, p := range points[1:] {
		if p.Uy < best.Uy {
			best = p
		}
	}
	return best, true
}

// ReadNodes reads soil node results from CSV with columns x, y and uy.
func ReadNodes(r io.Reader) ([]Node, error) {
	t, err := readTable(r, "x", "y", "uy")
	if err != nil {
		return nil, fmt.Errorf("node results: %w", err)
	}
	nodes := make([]Node, len(t.rows))
	for i := range t.rows {
		v, err := t.floats(i, "x", "y", "uy")
		if err != nil {
			return nil, fmt.Errorf("node results: %w", err)
		}
		nodes[i] = Node{X: v[0], Y: v[1], Uy: v[2]}
	}
	return nodes, nil
}
