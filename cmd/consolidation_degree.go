package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/geocons/internal/consolidation"
	"github.com/alexiusacademia/geocons/internal/diagram"
)

var (
	degreeTimes  []float64
	degreeFrom   float64
	degreeTo     float64
	degreePoints int
	degreeChart  int
)

var consolidationDegreeCmd = &cobra.Command{
	Use:   "degree",
	Short: "Barron's average degree of radial consolidation",
	Long: `Evaluate Barron's average degree of radial consolidation for a
vertical drain system under equal strain:

  U_h = 1 − exp(−8·T_h/F(n)),  T_h = c_h·t/D_e²
  F(n) = n²/(n²−1)·ln(n − (3n²−1)/(4n²)),  n = D_e/d

Times are given in days, either as a list or as a log-spaced range.

Examples:
  # Degree at 1, 10 and 100 days with the configured drain
  geocons consolidation degree --times 1,10,100

  # 25 log-spaced times between 0.1 and 1000 days
  geocons consolidation degree --ch 0.869 --dw 0.064 --de 1.133 --from 0.1 --to 1000 --points 25`,
	RunE: runConsolidationDegree,
}

func init() {
	consolidationCmd.AddCommand(consolidationDegreeCmd)

	consolidationDegreeCmd.Flags().Float64SliceVarP(&degreeTimes, "times", "t", nil, "Times (days)")
	consolidationDegreeCmd.Flags().Float64Var(&degreeFrom, "from", 0.1, "First time of a log-spaced range (days)")
	consolidationDegreeCmd.Flags().Float64Var(&degreeTo, "to", 1000, "Last time of a log-spaced range (days)")
	consolidationDegreeCmd.Flags().IntVarP(&degreePoints, "points", "n", 20, "Number of log-spaced times")
	consolidationDegreeCmd.Flags().IntVar(&degreeChart, "chart-height", 10, "Height of the terminal chart (0 to disable)")
}

func runConsolidationDegree(cmd *cobra.Command, args []string) error {
	dr, err := drainFromFlags(cmd)
	if err != nil {
		return err
	}

	days := degreeTimes
	if len(days) == 0 {
		days, err = consolidation.LogTimes(degreeFrom, degreeTo, degreePoints)
		if err != nil {
			return err
		}
	}

	curve, err := consolidation.Curve(dr, 1, days)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     BARRON RADIAL CONSOLIDATION")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	printDrain(dr)

	fmt.Println("DEGREE OF CONSOLIDATION:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  t (days)\tT_h\tU_h (%)")
	degrees := make([]float64, len(curve))
	for i, p := range curve {
		degrees[i] = p.Degree
		th := dr.TimeFactor(p.Time / consolidation.DaysPerYear)
		fmt.Fprintf(w, "  %.3f\t%.5f\t%.2f\n", p.Time, th, 100*p.Degree)
	}
	w.Flush()
	fmt.Println()

	if degreeChart > 0 {
		fmt.Print(diagram.DrawDegreeChart("U_h (%) at the listed times", degrees, degreeChart))
		fmt.Println()
	}

	var lines []string
	for _, target := range []float64{0.5, 0.9, 0.95} {
		years, err := dr.TimeToDegree(target)
		if err != nil {
			return err
		}
		lines = append(lines, fmt.Sprintf("t(U=%.0f%%) = %.1f days", 100*target, years*consolidation.DaysPerYear))
	}
	fmt.Print(diagram.DrawSummaryBox("TIME TO DEGREE", lines))
	fmt.Println()
	return nil
}
