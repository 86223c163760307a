package geometry

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Box is an axis-aligned bounding box.
type Box struct {
	MinX float64 `json:"xmin" yaml:"xmin"`
	MinY float64 `json:"ymin" yaml:"ymin"`
	MaxX float64 `json:"xmax" yaml:"xmax"`
	MaxY float64 `json:"ymax" yaml:"ymax"`
}

// Valid reports whether the box has non-negative extent.
func (b Box) Valid() bool {
	return b.MinX <= b.MaxX && b.MinY <= b.MaxY
}

// Contains reports whether p lies inside the box or on its boundary,
// widened by tol on every side.
func (b Box) Contains(p Point, tol float64) bool {
	return p.X >= b.MinX-tol && p.X <= b.MaxX+tol &&
		p.Y >= b.MinY-tol && p.Y <= b.MaxY+tol
}

// ContainsAll reports whether every point lies within the box.
func (b Box) ContainsAll(pts []Point, tol float64) bool {
	for _, p := range pts {
		if !b.Contains(p, tol) {
			return false
		}
	}
	return true
}

// Width returns MaxX-MinX.
func (b Box) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY-MinY.
func (b Box) Height() float64 { return b.MaxY - b.MinY }

func (b Box) String() string {
	return fmt.Sprintf("min: (%g; %g) max: (%g; %g)", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

var boxPattern = regexp.MustCompile(
	`min:\s*\(\s*([^;()]+);\s*([^;()]+)(?:;\s*[^;()]+)?\)\s*max:\s*\(\s*([^;()]+);\s*([^;()]+)(?:;\s*[^;()]+)?\)`)

// ParseBoundingBox reads a bounding box printed by the modeling application
// as "min: (x; y; z) max: (x; y; z)". The z component is optional and
// ignored.
func ParseBoundingBox(s string) (Box, error) {
	m := boxPattern.FindStringSubmatch(s)
	if m == nil {
		return Box{}, fmt.Errorf("bounding box %q: expected \"min: (x; y; z) max: (x; y; z)\"", s)
	}

	var v [4]float64
	for i := range v {
		f, err := strconv.ParseFloat(strings.TrimSpace(m[i+1]), 64)
		if err != nil {
			return Box{}, fmt.Errorf("bounding box %q: %w", s, err)
		}
		v[i] = f
	}

	b := Box{MinX: v[0], MinY: v[1], MaxX: v[2], MaxY: v[3]}
	if !b.Valid() {
		return Box{}, fmt.Errorf("bounding box %q: min exceeds max", s)
	}
	return b, nil
}
