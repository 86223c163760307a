package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportTimeSettlement(t *testing.T) {
	dir := t.TempDir()
	series := []Series{
		{Label: "FE", Points: []Point{{X: 0, Y: 0}, {X: 1, Y: 10}, {X: 10, Y: 80}, {X: 100, Y: 150}}},
		{Label: "Barron", Points: []Point{{X: 1, Y: 12}, {X: 10, Y: 85}, {X: 100, Y: 160}}, Dashed: true},
	}

	file := filepath.Join(dir, "plots", "curve.svg")
	require.NoError(t, ExportTimeSettlement("Soft clay", series, file))
	assertNonEmpty(t, file)

	assert.Error(t, ExportTimeSettlement("empty", nil, filepath.Join(dir, "none.png")))

	origin := filepath.Join(dir, "origin.png")
	onlyOrigin := []Series{{Label: "FE", Points: []Point{{X: 0, Y: 0}, {X: -1, Y: 5}}}}
	assert.Error(t, ExportTimeSettlement("origin only", onlyOrigin, origin))
	assert.NoFileExists(t, origin)
}

func TestExportProfileDefaultsToPNG(t *testing.T) {
	dir := t.TempDir()
	series := []Series{{Label: "Uy", Points: []Point{{X: 1, Y: -100}, {X: 3, Y: -110}, {X: 5, Y: -120}}}}

	require.NoError(t, ExportProfile("Cut", "x (m)", "Uy (mm)", series, filepath.Join(dir, "cut")))
	assertNonEmpty(t, filepath.Join(dir, "cut.png"))
}

func TestExportPhaseSeries(t *testing.T) {
	file := filepath.Join(t.TempDir(), "anchors.png")
	series := []Series{
		{Label: "Strut", Points: []Point{{X: 0, Y: -120}, {X: 1, Y: -150}}},
		{Label: "Tieback", Points: []Point{{X: 0, Y: 80}, {X: 1, Y: 95}}},
	}
	require.NoError(t, ExportPhaseSeries("Anchor forces", "F (kN)", []string{"Exc 1", "Exc 2"}, series, file))
	assertNonEmpty(t, file)
}

func TestExportShapes(t *testing.T) {
	file := filepath.Join(t.TempDir(), "mesh.png")
	shapes := []Shape{
		{Label: "S1", Outline: []Point{{0, -8}, {10, -8}, {10, -4}, {0, -4}}, LabelAt: Point{5, -6}, Highlight: true},
		{Label: "S2", Outline: []Point{{0, -4}, {10, -4}, {10, 0}, {0, 0}}, LabelAt: Point{5, -2}},
	}
	require.NoError(t, ExportShapes("Mesh polygons", shapes, file))
	assertNonEmpty(t, file)

	assert.Error(t, ExportShapes("none", nil, file))
}

func TestDrawCharts(t *testing.T) {
	out := DrawDegreeChart("U(t)", []float64{0, 0.2, 0.5, 0.8, 0.95}, 8)
	assert.Contains(t, out, "U(t)")
	assert.Contains(t, out, "100")

	out = DrawCurves("settlement", [][]float64{{0, 1, 2}, {0, 1.1, 2.1}, nil}, 5)
	assert.Contains(t, out, "settlement")

	assert.Empty(t, DrawCurve("x", nil, 5))
	assert.Empty(t, DrawCurves("x", [][]float64{nil}, 5))
	assert.Contains(t, DrawCurve("single", []float64{1, 2, 3}, 4), "single")
}

func TestDrawSummaryBox(t *testing.T) {
	box := DrawSummaryBox("Barron", []string{"U = 85.2%", "T_h = 0.677"})
	lines := strings.Split(strings.TrimRight(box, "\n"), "\n")
	require.Len(t, lines, 6)

	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)), "box line %q", l)
	}
}

func TestSeriesValues(t *testing.T) {
	s := Series{Points: []Point{{1, 2}, {3, 4}}}
	assert.Equal(t, []float64{2, 4}, s.Values())
}

func assertNonEmpty(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
