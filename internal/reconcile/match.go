// Package reconcile associates polygons rebuilt from a mesh-info dump with
// the named soil polygons of the model.
//
// A named polygon is known by its area and bounding box only. Candidates
// are narrowed in three stages until exactly one remains:
//
//  1. area equal to the reference area within a relative tolerance,
//  2. centroid inside the bounding box,
//  3. every vertex inside the bounding box.
//
// Anything other than a single survivor is an error.
package reconcile

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/alexiusacademia/geocons/internal/geometry"
)

// Stage names the narrowing step that decided a match.
type Stage string

const (
	StageArea     Stage = "area"
	StageCentroid Stage = "centroid"
	StageVertices Stage = "vertices"
)

// Target is a named soil polygon of the model.
type Target struct {
	Name string
	Area float64
	Box  geometry.Box
}

// Validate checks that the target can be matched at all.
func (t Target) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("target without name")
	}
	if !(t.Area > 0) || math.IsInf(t.Area, 0) {
		return fmt.Errorf("target %s: area must be positive, got %g", t.Name, t.Area)
	}
	if !t.Box.Valid() {
		return fmt.Errorf("target %s: invalid bounding box %s", t.Name, t.Box)
	}
	return nil
}

// Match is the polygon chosen for a target.
type Match struct {
	Name    string
	Polygon *geometry.Polygon
	Stage   Stage
}

// Options controls matching tolerances.
type Options struct {
	// AreaTolerance is the relative area difference accepted as equal.
	AreaTolerance float64
	// VertexTolerance widens the bounding box for the vertex check.
	VertexTolerance float64
}

// DefaultOptions returns the tolerances used when none are configured.
func DefaultOptions() Options {
	return Options{AreaTolerance: 1e-4, VertexTolerance: 1e-3}
}

// Matcher reconciles targets with polygons.
type Matcher struct {
	opts   Options
	logger *zap.Logger
}

// NewMatcher creates a matcher. A nil logger discards log output.
func NewMatcher(opts Options, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.AreaTolerance <= 0 {
		opts.AreaTolerance = DefaultOptions().AreaTolerance
	}
	if opts.VertexTolerance < 0 {
		opts.VertexTolerance = 0
	}
	return &Matcher{opts: opts, logger: logger}
}

// Match finds the single polygon matching target.
func (m *Matcher) Match(target Target, polys []*geometry.Polygon) (Match, error) {
	if err := target.Validate(); err != nil {
		return Match{}, err
	}

	byArea := filter(polys, func(p *geometry.Polygon) bool {
		return m.sameArea(p.Area(), target.Area)
	})
	m.logger.Debug("area filter",
		zap.String("target", target.Name),
		zap.Float64("area", target.Area),
		zap.Strings("candidates", ids(byArea)))

	switch len(byArea) {
	case 0:
		return Match{}, &NoMatchError{Name: target.Name, Stage: StageArea}
	case 1:
		return Match{Name: target.Name, Polygon: byArea[0], Stage: StageArea}, nil
	}

	byCentroid := filter(byArea, func(p *geometry.Polygon) bool {
		return target.Box.Contains(p.Centroid(), 0)
	})
	m.logger.Debug("centroid filter",
		zap.String("target", target.Name),
		zap.Strings("candidates", ids(byCentroid)))

	switch len(byCentroid) {
	case 0:
		return Match{}, &NoMatchError{Name: target.Name, Stage: StageCentroid, Candidates: ids(byArea)}
	case 1:
		return Match{Name: target.Name, Polygon: byCentroid[0], Stage: StageCentroid}, nil
	}

	byVertices := filter(byCentroid, func(p *geometry.Polygon) bool {
		return target.Box.ContainsAll(p.Vertices, m.opts.VertexTolerance)
	})
	m.logger.Debug("vertex filter",
		zap.String("target", target.Name),
		zap.Strings("candidates", ids(byVertices)))

	switch len(byVertices) {
	case 0:
		return Match{}, &NoMatchError{Name: target.Name, Stage: StageVertices, Candidates: ids(byCentroid)}
	case 1:
		return Match{Name: target.Name, Polygon: byVertices[0], Stage: StageVertices}, nil
	default:
		return Match{}, &AmbiguousMatchError{Name: target.Name, Candidates: ids(byVertices)}
	}
}

// MatchAll matches every target and checks that no polygon is claimed by
// two targets. Matches are returned in target order. When several polygons
// are contested, the error names the one claimed by the earliest target,
// with its claimants in target order.
func (m *Matcher) MatchAll(targets []Target, polys []*geometry.Polygon) ([]Match, error) {
	matches := make([]Match, 0, len(targets))
	claimed := make(map[string][]string)
	seen := make(map[string]bool)

	for _, t := range targets {
		if seen[t.Name] {
			return nil, fmt.Errorf("duplicate target %s", t.Name)
		}
		seen[t.Name] = true

		match, err := m.Match(t, polys)
		if err != nil {
			return nil, err
		}
		m.logger.Info("polygon matched",
			zap.String("target", t.Name),
			zap.String("polygon", match.Polygon.ID),
			zap.String("stage", string(match.Stage)))

		matches = append(matches, match)
		claimed[match.Polygon.ID] = append(claimed[match.Polygon.ID], t.Name)
	}

	// Report the first contested polygon in match order.
	for _, match := range matches {
		if names := claimed[match.Polygon.ID]; len(names) > 1 {
			return nil, &ConflictError{Polygon: match.Polygon.ID, Names: names}
		}
	}
	return matches, nil
}

func (m *Matcher) sameArea(a, ref float64) bool {
	return math.Abs(a-ref) <= m.opts.AreaTolerance*math.Abs(ref)
}

func filter(polys []*geometry.Polygon, keep func(*geometry.Polygon) bool) []*geometry.Polygon {
	var out []*geometry.Polygon
	for _, p := range polys {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func ids(polys []*geometry.Polygon) []string {
	out := make([]string, len(polys))
	for i, p := range polys {
		out[i] = p.ID
	}
	return out
}

// NoMatchError reports that a narrowing stage left no candidate.
type NoMatchError struct {
	Name       string
	Stage      Stage
	Candidates []string // survivors of the previous stage
}

func (e *NoMatchError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("no polygon matches %s by %s", e.Name, e.Stage)
	}
	return fmt.Sprintf("no polygon matches %s by %s (candidates: %s)",
		e.Name, e.Stage, strings.Join(e.Candidates, ", "))
}

// AmbiguousMatchError reports several polygons surviving every stage.
type AmbiguousMatchError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("ambiguous match for %s: %s", e.Name, strings.Join(e.Candidates, ", "))
}

// ConflictError reports one polygon matched by several targets.
type ConflictError struct {
	Polygon string
	Names   []string
}

func (e *ConflictError) Error() string {
	names := append([]string(nil), e.Names...)
	sort.Strings(names)
	return fmt.Sprintf("polygon %s matches several targets: %s", e.Polygon, strings.Join(names, ", "))
}
