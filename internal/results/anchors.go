package results

import (
	"fmt"
	"io"
	"math"
	"sort"
)

// ForceTolerance is the largest difference between the forces at the two
// ends of one anchor.
const ForceTolerance = 1e-6

// AnchorNode is one end point of a node-to-node anchor as listed in the
// node results. The two ends of an anchor are consecutive rows.
type AnchorNode struct {
	Phase string
	Name  string
	X, Y  float64
	F     float64 // axial force (kN), negative in compression
	Fmin  float64
	Fmax  float64
}

// Anchor is a node-to-node anchor with its end points ordered left to
// right.
type Anchor struct {
	Name   string
	XA, YA float64
	XB, YB float64
	F      float64
	Fmin   float64
	Fmax   float64
}

// Length returns the distance between the end points.
func (a Anchor) Length() float64 {
	return math.Hypot(a.XB-a.XA, a.YB-a.YA)
}

// PairingError reports node rows that do not form an anchor.
type PairingError struct {
	Pair   int // 1-based pair number
	Name   string
	Reason string
}

func (e *PairingError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("anchor pair %d: %s", e.Pair, e.Reason)
	}
	return fmt.Sprintf("anchor pair %d (%s): %s", e.Pair, e.Name, e.Reason)
}

// PairAnchors joins consecutive end points into anchors. The left point
// becomes end A. Both ends must carry the same force. Anchors are returned
// sorted by the elevation of end A, highest first.
func PairAnchors(nodes []AnchorNode) ([]Anchor, error) {
	if len(nodes)%2 != 0 {
		return nil, &PairingError{Pair: len(nodes)/2 + 1, Name: nodes[len(nodes)-1].Name,
			Reason: fmt.Sprintf("odd number of end points (%d)", len(nodes))}
	}

	anchors := make([]Anchor, 0, len(nodes)/2)
	for i := 0; i < len(nodes); i += 2 {
		a, b := nodes[i], nodes[i+1]
		pair := i/2 + 1
		if a.Name != b.Name {
			return nil, &PairingError{Pair: pair, Name: a.Name,
				Reason: fmt.Sprintf("end points belong to %s and %s", a.Name, b.Name)}
		}
		if math.Abs(a.F-b.F) >= ForceTolerance {
			return nil, &PairingError{Pair: pair, Name: a.Name,
				Reason: fmt.Sprintf("end forces differ: %g and %g", a.F, b.F)}
		}

		anchor := Anchor{
			Name: a.Name,
			XA:   a.X,
			YA:   a.Y,
			XB:   b.X,
			YB:   b.Y,
			F:    a.F,
			Fmin: a.Fmin,
			Fmax: a.Fmax,
		}
		if anchor.XA > anchor.XB {
			anchor.XA, anchor.XB = anchor.XB, anchor.XA
			anchor.YA, anchor.YB = anchor.YB, anchor.YA
		}
		anchors = append(anchors, anchor)
	}

	sort.SliceStable(anchors, func(i, j int) bool {
		return anchors[i].YA > anchors[j].YA
	})
	return anchors, nil
}

// PhaseAnchors holds the anchors of one phase.
type PhaseAnchors struct {
	Phase   string
	Anchors []Anchor
}

// PairAnchorsByPhase splits nodes by phase, keeping the order in which
// phases first appear, and pairs each phase separately.
func PairAnchorsByPhase(nodes []AnchorNode) ([]PhaseAnchors, error) {
	var order []string
	byPhase := make(map[string][]AnchorNode)
	for _, n := range nodes {
		if _, ok := byPhase[n.Phase]; !ok {
			order = append(order, n.Phase)
		}
		byPhase[n.Phase] = append(byPhase[n.Phase], n)
	}

	out := make([]PhaseAnchors, 0, len(order))
	for _, phase := range order {
		anchors, err := PairAnchors(byPhase[phase])
		if err != nil {
			if phase == "" {
				return nil, err
			}
			return nil, fmt.Errorf("phase %s: %w", phase, err)
		}
		out = append(out, PhaseAnchors{Phase: phase, Anchors: anchors})
	}
	return out, nil
}

// AnchorForce is the state of one anchor in one phase.
type AnchorForce struct {
	Phase string
	Anchor
}

// AnchorSeries is the force development of one anchor over the phases.
type AnchorSeries struct {
	Name   string
	Forces []AnchorForce
}

// GroupByAnchor regroups per-phase results by anchor name. Series are
// ordered by first appearance and keep the phase order.
func GroupByAnchor(phases []PhaseAnchors) []AnchorSeries {
	var series []AnchorSeries
	index := make(map[string]int)
	for _, pa := range phases {
		for _, a := range pa.Anchors {
			i, ok := index[a.Name]
			if !ok {
				i = len(series)
				index[a.Name] = i
				series = append(series, AnchorSeries{Name: a.Name})
			}
			series[i].Forces = append(series[i].Forces, AnchorForce{Phase: pa.Phase, Anchor: a})
		}
	}
	return series
}

// ReadAnchorNodes reads anchor end points from CSV with the columns
// name, x, y, F, Fmin and Fmax, and an optional phase column.
func ReadAnchorNodes(r io.Reader) ([]AnchorNode, error) {
	t, err := readTable(r, "name", "x", "y", "f", "fmin", "fmax")
	if err != nil {
		return nil, fmt.Errorf("anchor results: %w", err)
	}

	nodes := make([]AnchorNode, len(t.rows))
	for i := range t.rows {
		v, err := t.floats(i, "x", "y", "f", "fmin", "fmax")
		if err != nil {
			return nil, fmt.Errorf("anchor results: %w", err)
		}
		nodes[i] = AnchorNode{
			Name: t.str(i, "name"),
			X:    v[0],
			Y:    v[1],
			F:    v[2],
			Fmin: v[3],
			Fmax: v[4],
		}
		if t.has("phase") {
			nodes[i].Phase = t.str(i, "phase")
		}
	}
	return nodes, nil
}
