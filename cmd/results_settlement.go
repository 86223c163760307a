package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/geocons/internal/diagram"
	"github.com/alexiusacademia/geocons/internal/results"
)

var (
	cutName   string
	cutXMin   float64
	cutXMax   float64
	cutY      float64
	cutOutput string
)

var resultsSettlementCmd = &cobra.Command{
	Use:   "settlement <nodes.csv>",
	Short: "Settlement trough along a horizontal cut",
	Long: `Extract the vertical displacement of the nodes on a horizontal cut
xmin < x < xmax at elevation y. Displacements are read in m (columns x, y,
uy) and reported in mm, sorted by x.

Examples:
  # Ground surface between the embankment toes
  geocons results settlement nodes.csv --xmin 0 --xmax 40 --y 0

  geocons results settlement nodes.csv --xmin 0 --xmax 40 --y 0 --name Surface -o trough.svg`,
	Args: cobra.ExactArgs(1),
	RunE: runResultsSettlement,
}

func init() {
	resultsCmd.AddCommand(resultsSettlementCmd)

	resultsSettlementCmd.Flags().StringVar(&cutName, "name", "Cut", "Name of the cut")
	resultsSettlementCmd.Flags().Float64Var(&cutXMin, "xmin", 0, "Left end of the cut (m) [required]")
	resultsSettlementCmd.Flags().Float64Var(&cutXMax, "xmax", 0, "Right end of the cut (m) [required]")
	resultsSettlementCmd.Flags().Float64Var(&cutY, "y", 0, "Elevation of the cut (m)")
	resultsSettlementCmd.Flags().StringVarP(&cutOutput, "output", "o", "", "Export a plot of the trough")

	resultsSettlementCmd.MarkFlagRequired("xmin")
	resultsSettlementCmd.MarkFlagRequired("xmax")
}

func runResultsSettlement(cmd *cobra.Command, args []string) error {
	cut := results.Cut{Name: cutName, XMin: cutXMin, XMax: cutXMax, Y: cutY}
	if err := cut.Validate(); err != nil {
		return err
	}

	f, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	nodes, err := results.ReadNodes(f)
	if err != nil {
		return err
	}
	points := cut.Extract(nodes)
	if len(points) == 0 {
		return fmt.Errorf("no nodes on cut %s (%g < x < %g, y = %g)", cut.Name, cut.XMin, cut.XMax, cut.Y)
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     SETTLEMENT ALONG %s\n", cut.Name)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("NODES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  x (m)\ty (m)\tUy (mm)")
	trough := diagram.Series{Label: cut.Name}
	for _, p := range points {
		fmt.Fprintf(w, "  %.3f\t%.3f\t%.1f\n", p.X, p.Y, p.Uy)
		trough.Points = append(trough.Points, diagram.Point{X: p.X, Y: p.Uy})
	}
	w.Flush()
	fmt.Println()

	fmt.Print(diagram.DrawCurve("Uy (mm) from xmin to xmax", trough.Values(), 8))
	fmt.Println()

	peak, _ := results.MaxSettlement(points)
	fmt.Print(diagram.DrawSummaryBox("MAXIMUM SETTLEMENT", []string{
		fmt.Sprintf("Uy = %.1f mm", peak.Uy),
		fmt.Sprintf("at x = %.3f m", peak.X),
		fmt.Sprintf("%d nodes on the cut", len(points)),
	}))
	fmt.Println()

	if cutOutput != "" {
		file := outputPath(cutOutput)
		if err := diagram.ExportProfile("Settlement along "+cut.Name, "x (m)", "Uy (mm)", []diagram.Series{trough}, file); err != nil {
			return fmt.Errorf("export plot: %w", err)
		}
		fmt.Printf("  Plot written to %s\n", file)
		fmt.Println()
	}
	return nil
}
