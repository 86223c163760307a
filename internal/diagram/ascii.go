package diagram

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// Point is a plotted coordinate.
type Point struct {
	X float64
	Y float64
}

// Series is a labelled polyline.
type Series struct {
	Label  string
	Points []Point
	Dashed bool
}

// Shape is a closed outline drawn with a label.
type Shape struct {
	Label     string
	Outline   []Point
	LabelAt   Point
	Highlight bool
}

// Values returns the Y values of the series.
func (s Series) Values() []float64 {
	ys := make([]float64, len(s.Points))
	for i, p := range s.Points {
		ys[i] = p.Y
	}
	return ys
}

// DrawCurve renders one series as a terminal chart of the given height.
// Points are plotted at equal spacing in the order given.
func DrawCurve(caption string, ys []float64, height int) string {
	if len(ys) == 0 {
		return ""
	}
	return asciigraph.Plot(ys,
		asciigraph.Height(height),
		asciigraph.Caption(caption),
		asciigraph.Precision(3),
	) + "\n"
}

// DrawCurves renders several series sharing the y axis.
func DrawCurves(caption string, series [][]float64, height int) string {
	var data [][]float64
	for _, s := range series {
		if len(s) > 0 {
			data = append(data, s)
		}
	}
	if len(data) == 0 {
		return ""
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Caption(caption),
		asciigraph.Precision(3),
		asciigraph.SeriesColors(asciigraph.Default, asciigraph.Red, asciigraph.Blue, asciigraph.Green),
	) + "\n"
}

// DrawDegreeChart renders a degree-of-consolidation curve bounded to
// [0, 100] percent.
func DrawDegreeChart(caption string, degrees []float64, height int) string {
	if len(degrees) == 0 {
		return ""
	}
	pct := make([]float64, len(degrees))
	for i, u := range degrees {
		pct[i] = 100 * u
	}
	return asciigraph.Plot(pct,
		asciigraph.Height(height),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(100),
		asciigraph.Caption(caption),
		asciigraph.Precision(0),
	) + "\n"
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads s with spaces to n runes.
func pad(s string, n int) string {
	if k := len([]rune(s)); k < n {
		return s + strings.Repeat(" ", n-k)
	}
	return s
}
