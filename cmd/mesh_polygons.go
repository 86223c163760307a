package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/geocons/internal/geometry"
	"github.com/alexiusacademia/geocons/internal/meshinfo"
)

var (
	polygonsWithin string
	polygonsAt     []float64
	polygonsOutput string
	polygonsWidth  float64
)

var meshPolygonsCmd = &cobra.Command{
	Use:   "polygons <mesh>",
	Short: "List the polygons of a mesh dump",
	Long: `Rebuild every surface of a mesh dump as a closed polygon and list its
area, centroid and bounding box.

Examples:
  # All polygons of a project
  geocons mesh polygons project.p2dxdat

  # Polygons removed by an excavation box, plotted
  geocons mesh polygons data.meshinfo --within "min: (0; -4; 0) max: (10; 0; 0)" -o excavation.png

  # Polygons containing a point
  geocons mesh polygons data.meshinfo --at 5,-6

  # Horizontal width of every polygon at elevation -2
  geocons mesh polygons data.meshinfo --width-at -2`,
	Args: cobra.ExactArgs(1),
	RunE: runMeshPolygons,
}

func init() {
	meshCmd.AddCommand(meshPolygonsCmd)

	meshPolygonsCmd.Flags().StringVar(&polygonsWithin, "within", "", `Select polygons inside a bounding box "min: (x; y; z) max: (x; y; z)"`)
	meshPolygonsCmd.Flags().Float64SliceVar(&polygonsAt, "at", nil, "Select polygons containing the point x,y")
	meshPolygonsCmd.Flags().Float64Var(&polygonsWidth, "width-at", 0, "Add a column with the horizontal width of each polygon at this elevation")
	meshPolygonsCmd.Flags().StringVarP(&polygonsOutput, "output", "o", "", "Export a plot with the selection highlighted")
}

func runMeshPolygons(cmd *cobra.Command, args []string) error {
	mesh, err := meshinfo.LoadFromFile(args[0])
	if err != nil {
		return err
	}
	polys, err := mesh.Polygons()
	if err != nil {
		return err
	}
	logger.Debug("mesh loaded",
		zap.String("path", args[0]),
		zap.Int("points", len(mesh.Points)),
		zap.Int("curves", len(mesh.Curves)),
		zap.Int("surfaces", len(mesh.Surfaces)))

	selected, err := selectPolygons(polys)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     MESH POLYGONS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Points:\t%d\n", len(mesh.Points))
	fmt.Fprintf(w, "  Curves:\t%d\n", len(mesh.Curves))
	fmt.Fprintf(w, "  Surfaces:\t%d\n", len(mesh.Surfaces))
	w.Flush()
	fmt.Println()

	fmt.Println("POLYGONS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	withWidth := cmd.Flags().Changed("width-at")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if withWidth {
		fmt.Fprintf(w, "  Surface\tVertices\tArea (m²)\tCentroid\tBounding box\tWidth at y=%.3f (m)\t\n", polygonsWidth)
	} else {
		fmt.Fprintln(w, "  Surface\tVertices\tArea (m²)\tCentroid\tBounding box\t")
	}
	for _, p := range selected.list {
		c := p.Centroid()
		fmt.Fprintf(w, "  %s\t%d\t%.3f\t(%.3f, %.3f)\t%s\t", p.ID, len(p.Vertices)-1, p.Area(), c.X, c.Y, p.Bounds())
		if withWidth {
			fmt.Fprintf(w, "%.3f\t", p.WidthAtY(polygonsWidth))
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	fmt.Println()
	if selected.filtered {
		fmt.Printf("  %d of %d polygons selected\n", len(selected.list), len(polys))
		fmt.Println()
	}

	if polygonsOutput != "" {
		shapes := polygonShapes(polys, func(p *geometry.Polygon) (string, bool) {
			return p.ID, selected.filtered && selected.has(p.ID)
		})
		file := outputPath(polygonsOutput)
		if err := exportShapes("Mesh polygons", shapes, file); err != nil {
			return err
		}
	}
	return nil
}

type selection struct {
	list     []*geometry.Polygon
	filtered bool
}

func (s selection) has(id string) bool {
	for _, p := range s.list {
		if p.ID == id {
			return true
		}
	}
	return false
}

func selectPolygons(polys []*geometry.Polygon) (selection, error) {
	sel := selection{list: polys}
	if polygonsWithin != "" {
		box, err := geometry.ParseBoundingBox(polygonsWithin)
		if err != nil {
			return sel, err
		}
		sel.list = meshinfo.Within(sel.list, box, cfg.Matching.VertexTolerance)
		sel.filtered = true
	}
	if len(polygonsAt) > 0 {
		if len(polygonsAt) != 2 {
			return sel, fmt.Errorf("--at needs x,y, got %d values", len(polygonsAt))
		}
		sel.list = meshinfo.Locate(sel.list, geometry.Point{X: polygonsAt[0], Y: polygonsAt[1]})
		sel.filtered = true
	}
	return sel, nil
}
