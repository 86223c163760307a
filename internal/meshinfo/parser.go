package meshinfo

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// DefaultFileName is the name of the dump inside a project data folder.
const DefaultFileName = "data.meshinfo"

const (
	sectionPoints   = "POINTS"
	sectionCurves   = "CURVES"
	sectionSurfaces = "SURFACES"
)

// trailingSections may follow the geometry sections. Their content is
// not geometry and is skipped.
var trailingSections = map[string]bool{
	"INTERFACE_ELEMENTS": true,
}

func isGeometrySection(name string) bool {
	return name == sectionPoints || name == sectionCurves || name == sectionSurfaces
}

var (
	headerPattern = regexp.MustCompile(`^([A-Z][A-Z_]*)(\s+\d+)?$`)
	entryPattern  = regexp.MustCompile(`^([^\s=]+)\s*=\s*[^()]*\((.*)\)\s*;?$`)
)

// LoadFromFile parses a mesh-info dump. If path is a directory the default
// dump file inside it is read.
func LoadFromFile(path string) (*MeshInfo, error) {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		path = filepath.Join(path, DefaultFileName)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads a mesh-info dump and resolves every reference. It fails on
// the first malformed or dangling entry.
func Parse(r io.Reader) (*MeshInfo, error) {
	m := &MeshInfo{
		points:   make(map[string]int),
		curves:   make(map[string]int),
		surfaces: make(map[string]int),
	}
	seen := make(map[string]bool)

	var section string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if h := headerPattern.FindStringSubmatch(line); h != nil {
			next, err := nextSection(section, h[1], seen, lineNo)
			if err != nil {
				return nil, err
			}
			section = next
			if isGeometrySection(section) {
				seen[section] = true
			}
			continue
		}

		switch section {
		case sectionPoints:
			if err := m.parsePoint(line, lineNo); err != nil {
				return nil, err
			}
		case sectionCurves:
			if err := m.parseCurve(line, lineNo); err != nil {
				return nil, err
			}
		case sectionSurfaces:
			if err := m.parseSurface(line, lineNo); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read meshinfo: %w", err)
	}

	for _, s := range []string{sectionPoints, sectionCurves, sectionSurfaces} {
		if !seen[s] {
			return nil, &ParseError{Msg: fmt.Sprintf("missing %s section", s)}
		}
	}

	if err := m.resolve(); err != nil {
		return nil, err
	}
	return m, nil
}

// nextSection decides the section a header line opens. Headers before
// the first geometry section belong to the preamble. Once geometry has
// started, only a new geometry section or, after all three, a known
// trailing section may follow.
func nextSection(current, header string, seen map[string]bool, lineNo int) (string, error) {
	if isGeometrySection(header) {
		if seen[header] {
			return "", &ParseError{Line: lineNo, Section: header, Msg: "duplicate section"}
		}
		return header, nil
	}
	if current == "" {
		return "", nil
	}
	if trailingSections[header] && seen[sectionPoints] && seen[sectionCurves] && seen[sectionSurfaces] {
		return header, nil
	}
	return "", &ParseError{Line: lineNo, Section: current, Msg: fmt.Sprintf("unexpected section header %q", header)}
}

// splitEntry splits "<ID> = (<a>, <b>, ...)" into the ID and the trimmed
// list items.
func splitEntry(line string, lineNo int, section string) (string, []string, error) {
	match := entryPattern.FindStringSubmatch(line)
	if match == nil {
		return "", nil, &ParseError{Line: lineNo, Section: section, Msg: fmt.Sprintf("expected \"<ID> = (...)\", got %q", line)}
	}

	id := match[1]
	body := strings.TrimSpace(match[2])
	if body == "" {
		return id, nil, &ParseError{Line: lineNo, Section: section, ID: id, Msg: "empty definition"}
	}

	parts := strings.Split(body, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return id, nil, &ParseError{Line: lineNo, Section: section, ID: id, Msg: fmt.Sprintf("empty item %d", i+1)}
		}
	}
	return id, parts, nil
}

func (m *MeshInfo) parsePoint(line string, lineNo int) error {
	id, parts, err := splitEntry(line, lineNo, sectionPoints)
	if err != nil {
		return err
	}
	if len(parts) != 2 && len(parts) != 3 {
		return &ParseError{Line: lineNo, Section: sectionPoints, ID: id,
			Msg: fmt.Sprintf("expected 2 or 3 coordinates, got %d", len(parts))}
	}
	if _, dup := m.points[id]; dup {
		return &ParseError{Line: lineNo, Section: sectionPoints, ID: id, Msg: "duplicate point"}
	}

	var coords [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return &ParseError{Line: lineNo, Section: sectionPoints, ID: id,
				Msg: fmt.Sprintf("invalid coordinate %q", p)}
		}
		coords[i] = v
	}

	m.points[id] = len(m.Points)
	m.Points = append(m.Points, Point{ID: id, X: coords[0], Y: coords[1], Z: coords[2], Line: lineNo})
	return nil
}

func (m *MeshInfo) parseCurve(line string, lineNo int) error {
	id, parts, err := splitEntry(line, lineNo, sectionCurves)
	if err != nil {
		return err
	}
	if len(parts) != 2 {
		return &ParseError{Line: lineNo, Section: sectionCurves, ID: id,
			Msg: fmt.Sprintf("expected 2 point references, got %d", len(parts))}
	}
	if _, dup := m.curves[id]; dup {
		return &ParseError{Line: lineNo, Section: sectionCurves, ID: id, Msg: "duplicate curve"}
	}

	m.curves[id] = len(m.Curves)
	m.Curves = append(m.Curves, Curve{ID: id, Start: parts[0], End: parts[1], Line: lineNo})
	return nil
}

func (m *MeshInfo) parseSurface(line string, lineNo int) error {
	id, parts, err := splitEntry(line, lineNo, sectionSurfaces)
	if err != nil {
		return err
	}
	if _, dup := m.surfaces[id]; dup {
		return &ParseError{Line: lineNo, Section: sectionSurfaces, ID: id, Msg: "duplicate surface"}
	}

	refs := make([]CurveRef, len(parts))
	for i, p := range parts {
		ref := CurveRef{ID: p}
		if strings.HasPrefix(p, "-") {
			ref = CurveRef{ID: strings.TrimSpace(p[1:]), Reversed: true}
		}
		if ref.ID == "" {
			return &ParseError{Line: lineNo, Section: sectionSurfaces, ID: id,
				Msg: fmt.Sprintf("invalid curve reference %q", p)}
		}
		refs[i] = ref
	}

	m.surfaces[id] = len(m.Surfaces)
	m.Surfaces = append(m.Surfaces, Surface{ID: id, Curves: refs, Line: lineNo})
	return nil
}

// resolve checks that every curve names known points and every surface
// names known curves.
func (m *MeshInfo) resolve() error {
	for _, c := range m.Curves {
		for _, pid := range []string{c.Start, c.End} {
			if _, ok := m.points[pid]; !ok {
				return &ParseError{Line: c.Line, Section: sectionCurves, ID: c.ID,
					Msg: fmt.Sprintf("unknown point %q", pid)}
			}
		}
		if c.Start == c.End {
			return &ParseError{Line: c.Line, Section: sectionCurves, ID: c.ID,
				Msg: "curve starts and ends at the same point"}
		}
	}
	for _, s := range m.Surfaces {
		for _, ref := range s.Curves {
			if _, ok := m.curves[ref.ID]; !ok {
				return &ParseError{Line: s.Line, Section: sectionSurfaces, ID: s.ID,
					Msg: fmt.Sprintf("unknown curve %q", ref.ID)}
			}
		}
	}
	return nil
}
