package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/geocons/internal/diagram"
	"github.com/alexiusacademia/geocons/internal/geometry"
)

var meshCmd = &cobra.Command{
	Use:   "mesh",
	Short: "Mesh polygon inspection and reconciliation",
	Long: `Read the points, curves and surfaces dumped from a model's geometry
and rebuild the soil polygons.

Subcommands:
  polygons  - List the polygons with area, centroid and bounding box
  match     - Reconcile named soil clusters with the polygons

The mesh argument is either the dump file or the project data folder
containing it.`,
}

func init() {
	rootCmd.AddCommand(meshCmd)
}

// polygonShapes converts polygons to plot shapes. label gives each
// polygon's text, empty for none, and whether it is highlighted.
func polygonShapes(polys []*geometry.Polygon, label func(*geometry.Polygon) (string, bool)) []diagram.Shape {
	shapes := make([]diagram.Shape, 0, len(polys))
	for _, p := range polys {
		text, highlight := label(p)
		outline := make([]diagram.Point, len(p.Vertices))
		for i, v := range p.Vertices {
			outline[i] = diagram.Point{X: v.X, Y: v.Y}
		}
		c := p.Centroid()
		shapes = append(shapes, diagram.Shape{
			Label:     text,
			Outline:   outline,
			LabelAt:   diagram.Point{X: c.X, Y: c.Y},
			Highlight: highlight,
		})
	}
	return shapes
}

func exportShapes(title string, shapes []diagram.Shape, file string) error {
	if err := diagram.ExportShapes(title, shapes, file); err != nil {
		return fmt.Errorf("export plot: %w", err)
	}
	fmt.Printf("  Plot written to %s\n", file)
	fmt.Println()
	return nil
}
