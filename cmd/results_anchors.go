package cmd

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/geocons/internal/diagram"
	"github.com/alexiusacademia/geocons/internal/results"
)

var anchorsOutput string

var resultsAnchorsCmd = &cobra.Command{
	Use:   "anchors <nodes.csv>",
	Short: "Pair anchor end nodes into anchors",
	Long: `Pair the two end nodes of every node-to-node anchor. Both nodes of an
anchor report the same name and axial force; each anchor is listed with
its left end first, from the highest anchor down.

Columns: name, x, y, F, Fmin, Fmax and optionally phase.

Examples:
  geocons results anchors anchors.csv
  geocons results anchors anchors.csv -o anchor-forces.png`,
	Args: cobra.ExactArgs(1),
	RunE: runResultsAnchors,
}

func init() {
	resultsCmd.AddCommand(resultsAnchorsCmd)

	resultsAnchorsCmd.Flags().StringVarP(&anchorsOutput, "output", "o", "", "Export a plot of the forces per phase")
}

func runResultsAnchors(cmd *cobra.Command, args []string) error {
	f, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	nodes, err := results.ReadAnchorNodes(f)
	if err != nil {
		return err
	}
	phases, err := results.PairAnchorsByPhase(nodes)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     ANCHOR FORCES")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	for _, pa := range phases {
		if pa.Phase != "" {
			fmt.Printf("PHASE %s:\n", pa.Phase)
		} else {
			fmt.Println("ANCHORS:")
		}
		fmt.Println("───────────────────────────────────────────────────────────────")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  Anchor\tA (x, y)\tB (x, y)\tLength (m)\tF (kN)\tFmin (kN)\tFmax (kN)")
		for _, a := range pa.Anchors {
			fmt.Fprintf(w, "  %s\t(%.2f, %.2f)\t(%.2f, %.2f)\t%.2f\t%.2f\t%.2f\t%.2f\n",
				a.Name, a.XA, a.YA, a.XB, a.YB, a.Length(), a.F, a.Fmin, a.Fmax)
		}
		w.Flush()
		fmt.Println()
	}

	series := results.GroupByAnchor(phases)
	if len(phases) > 1 {
		fmt.Println("FORCE DEVELOPMENT:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, s := range series {
			var peak results.AnchorForce
			for i, af := range s.Forces {
				if i == 0 || math.Abs(af.F) > math.Abs(peak.F) {
					peak = af
				}
			}
			fmt.Fprintf(w, "  %s\t%d phases\tpeak %.2f kN in %s\n", s.Name, len(s.Forces), peak.F, peak.Phase)
		}
		w.Flush()
		fmt.Println()
	}

	if anchorsOutput != "" {
		names := make([]string, len(phases))
		index := make(map[string]int, len(phases))
		for i, pa := range phases {
			names[i] = pa.Phase
			index[pa.Phase] = i
		}
		plotted := make([]diagram.Series, len(series))
		for i, s := range series {
			plotted[i].Label = s.Name
			for _, af := range s.Forces {
				plotted[i].Points = append(plotted[i].Points, diagram.Point{X: float64(index[af.Phase]), Y: af.F})
			}
		}
		file := outputPath(anchorsOutput)
		if err := diagram.ExportPhaseSeries("Anchor forces", "F (kN)", names, plotted, file); err != nil {
			return fmt.Errorf("export plot: %w", err)
		}
		fmt.Printf("  Plot written to %s\n", file)
		fmt.Println()
	}
	return nil
}

