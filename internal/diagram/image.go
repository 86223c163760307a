package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ExportTimeSettlement exports settlement-time curves with a logarithmic
// time axis and settlement increasing downward. Points at t <= 0 cannot be
// shown on the log axis and are skipped; it is an error when that leaves
// nothing to draw.
func ExportTimeSettlement(title string, series []Series, filename string) error {
	if len(series) == 0 {
		return fmt.Errorf("no curves to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Time (days)"
	p.Y.Label.Text = "Consolidation settlement (mm)"
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Legend.Top = false
	p.Legend.Left = true

	drawn := 0
	for i, s := range series {
		var xys plotter.XYs
		for _, pt := range s.Points {
			if pt.X > 0 {
				xys = append(xys, plotter.XY{X: pt.X, Y: pt.Y})
			}
		}
		if len(xys) == 0 {
			continue
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return err
		}
		styleLine(line, i, s.Dashed)
		p.Add(line)
		p.Legend.Add(s.Label, line)
		drawn++
	}
	if drawn == 0 {
		return fmt.Errorf("no points with t > 0 to plot on a log time axis")
	}

	return save(p, 8*vg.Inch, 5*vg.Inch, filename)
}

// ExportProfile exports y-against-x series such as the settlement trough
// along a horizontal cut.
func ExportProfile(title, xLabel, yLabel string, series []Series, filename string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	for i, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		line, points, err := plotter.NewLinePoints(toXYs(s.Points))
		if err != nil {
			return err
		}
		styleLine(line, i, s.Dashed)
		points.GlyphStyle.Color = line.LineStyle.Color
		points.GlyphStyle.Radius = vg.Points(2.5)
		points.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		p.Legend.Add(s.Label, line, points)
	}

	return save(p, 8*vg.Inch, 5*vg.Inch, filename)
}

// ExportPhaseSeries exports one value per phase for several series, with
// the phase names along the x axis. Point.X of each series is the phase
// index.
func ExportPhaseSeries(title, yLabel string, phases []string, series []Series, filename string) error {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel
	p.NominalX(phases...)
	p.Add(plotter.NewGrid())

	for i, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		line, points, err := plotter.NewLinePoints(toXYs(s.Points))
		if err != nil {
			return err
		}
		styleLine(line, i, s.Dashed)
		points.GlyphStyle.Color = line.LineStyle.Color
		points.GlyphStyle.Radius = vg.Points(3)
		points.GlyphStyle.Shape = draw.TriangleGlyph{}
		p.Add(line, points)
		p.Legend.Add(s.Label, line)
	}

	return save(p, 8*vg.Inch, 5*vg.Inch, filename)
}

// ExportShapes exports closed outlines, each labelled at its label point.
// Highlighted shapes are filled.
func ExportShapes(title string, shapes []Shape, filename string) error {
	if len(shapes) == 0 {
		return fmt.Errorf("no shapes to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (m)"
	p.Y.Label.Text = "y (m)"

	var labels plotter.XYLabels
	for i, s := range shapes {
		if len(s.Outline) < 3 {
			continue
		}
		poly, err := plotter.NewPolygon(toXYs(s.Outline))
		if err != nil {
			return err
		}
		poly.LineStyle.Width = vg.Points(1)
		poly.LineStyle.Color = color.Black
		poly.Color = nil
		if s.Highlight {
			c := plotutil.Color(i)
			r, g, b, _ := c.RGBA()
			poly.Color = color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 110}
		}
		p.Add(poly)

		if s.Label != "" {
			labels.XYs = append(labels.XYs, plotter.XY{X: s.LabelAt.X, Y: s.LabelAt.Y})
			labels.Labels = append(labels.Labels, s.Label)
		}
	}

	if len(labels.Labels) > 0 {
		l, err := plotter.NewLabels(labels)
		if err != nil {
			return err
		}
		p.Add(l)
	}

	return save(p, 8*vg.Inch, 6*vg.Inch, filename)
}

func styleLine(line *plotter.Line, i int, dashed bool) {
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = plotutil.Color(i)
	if dashed {
		line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	}
}

func toXYs(pts []Point) plotter.XYs {
	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return xys
}

// save writes the plot in the format given by the file extension,
// defaulting to PNG.
func save(p *plot.Plot, width, height vg.Length, filename string) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf", ".eps", ".jpg", ".jpeg", ".tif", ".tiff":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
