package cmd

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/geocons/internal/geometry"
	"github.com/alexiusacademia/geocons/internal/meshinfo"
	"github.com/alexiusacademia/geocons/internal/reconcile"
)

var (
	matchTargets string
	matchOutput  string
)

var meshMatchCmd = &cobra.Command{
	Use:   "match <mesh>",
	Short: "Reconcile soil clusters with mesh polygons",
	Long: `Find the mesh polygon of each named soil cluster. Candidates are
narrowed in three steps, stopping as soon as one remains:

  1. area equal within the relative area tolerance
  2. centroid inside the cluster's bounding box
  3. every vertex inside the bounding box widened by the vertex tolerance

Each cluster must end with exactly one polygon and no polygon may be
claimed twice. Tolerances come from the config file.

Targets file:
  targets:
    - name: Soil_1_1
      area: 40
      bounding_box: "min: (0; -8; 0) max: (10; -4; 0)"

Examples:
  geocons mesh match data.meshinfo --targets clusters.yaml
  geocons mesh match project.p2dxdat -t clusters.yaml -o matched.svg`,
	Args: cobra.ExactArgs(1),
	RunE: runMeshMatch,
}

func init() {
	meshCmd.AddCommand(meshMatchCmd)

	meshMatchCmd.Flags().StringVarP(&matchTargets, "targets", "t", "", "Soil cluster targets (YAML) [required]")
	meshMatchCmd.Flags().StringVarP(&matchOutput, "output", "o", "", "Export a plot of the matched polygons")

	meshMatchCmd.MarkFlagRequired("targets")
}

func runMeshMatch(cmd *cobra.Command, args []string) error {
	targets, err := reconcile.LoadTargets(matchTargets)
	if err != nil {
		return err
	}
	mesh, err := meshinfo.LoadFromFile(args[0])
	if err != nil {
		return err
	}
	polys, err := mesh.Polygons()
	if err != nil {
		return err
	}

	opts := cfg.Matching.Options()
	matcher := reconcile.NewMatcher(opts, logger)
	matches, err := matcher.MatchAll(targets, polys)
	if err != nil {
		return explainMatchError(err)
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     POLYGON RECONCILIATION")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Area tolerance (relative):\t%g\n", opts.AreaTolerance)
	fmt.Fprintf(w, "  Vertex tolerance:\t%g m\n", opts.VertexTolerance)
	fmt.Fprintf(w, "  Polygons in mesh:\t%d\n", len(polys))
	w.Flush()
	fmt.Println()

	fmt.Println("MATCHES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Cluster\tPolygon\tArea (m²)\tDecided by")
	for i, m := range matches {
		fmt.Fprintf(w, "  %s\t%s\t%.3f\t%s\n", m.Name, m.Polygon.ID, targets[i].Area, m.Stage)
	}
	w.Flush()
	fmt.Println()

	fmt.Printf("  ✓ %d of %d clusters matched\n", len(matches), len(targets))
	fmt.Println()

	if matchOutput != "" {
		names := make(map[string]string, len(matches))
		for _, m := range matches {
			names[m.Polygon.ID] = m.Name
		}
		shapes := polygonShapes(polys, func(p *geometry.Polygon) (string, bool) {
			name, ok := names[p.ID]
			return name, ok
		})
		return exportShapes("Matched soil clusters", shapes, outputPath(matchOutput))
	}
	return nil
}

// explainMatchError adds a hint for the tolerance a failed match depends on.
func explainMatchError(err error) error {
	var none *reconcile.NoMatchError
	var ambiguous *reconcile.AmbiguousMatchError
	switch {
	case errors.As(err, &none) && none.Stage == reconcile.StageArea:
		return fmt.Errorf("%w (check matching.area_tolerance)", err)
	case errors.As(err, &ambiguous):
		return fmt.Errorf("%w (check matching.vertex_tolerance)", err)
	}
	return err
}
