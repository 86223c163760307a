package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/geocons/internal/consolidation"
	"github.com/alexiusacademia/geocons/internal/diagram"
	"github.com/alexiusacademia/geocons/internal/results"
	"github.com/alexiusacademia/geocons/internal/store"
)

var (
	curveUltimate float64
	curveFE       string
	curveFrom     float64
	curveTo       float64
	curvePoints   int
	curveSave     string
	curveOutput   string
)

var consolidationCurveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Settlement-time curve from Barron's solution",
	Long: `Predict the settlement-time curve U_h(t)·S∞ of a layer with vertical
drains. With --fe the prediction is evaluated at the times of a computed
curve (CSV with columns time in days and utot in m) and the two are
compared.

Examples:
  # Prediction for S∞ = 1.66 m over 0.1 to 1000 days
  geocons consolidation curve --ultimate 1.66

  # Against a computed curve, stored as a run and plotted
  geocons consolidation curve --ultimate 1.66 --fe pointA.csv --save "Point A" --output pointA.png`,
	RunE: runConsolidationCurve,
}

func init() {
	consolidationCmd.AddCommand(consolidationCurveCmd)

	consolidationCurveCmd.Flags().Float64VarP(&curveUltimate, "ultimate", "s", 0, "Ultimate settlement S∞ (m) [required]")
	consolidationCurveCmd.Flags().StringVar(&curveFE, "fe", "", "Computed settlement-time curve (CSV: time,utot)")
	consolidationCurveCmd.Flags().Float64Var(&curveFrom, "from", 0.1, "First time of the prediction (days)")
	consolidationCurveCmd.Flags().Float64Var(&curveTo, "to", 1000, "Last time of the prediction (days)")
	consolidationCurveCmd.Flags().IntVarP(&curvePoints, "points", "n", 20, "Number of log-spaced prediction times")
	consolidationCurveCmd.Flags().StringVar(&curveSave, "save", "", "Store the curve in the run catalogue under this name")
	consolidationCurveCmd.Flags().StringVarP(&curveOutput, "output", "o", "", "Export a plot (.png, .svg, .pdf)")

	consolidationCurveCmd.MarkFlagRequired("ultimate")
}

func runConsolidationCurve(cmd *cobra.Command, args []string) error {
	dr, err := drainFromFlags(cmd)
	if err != nil {
		return err
	}
	if !(curveUltimate >= 0) {
		return fmt.Errorf("ultimate settlement must not be negative, got %g", curveUltimate)
	}

	points, err := curvePointsFor(dr)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     SETTLEMENT-TIME CURVE - BARRON")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	printDrain(dr)
	fmt.Printf("  Ultimate settlement (S∞): %.4f m\n", curveUltimate)
	fmt.Println()

	fmt.Println("CURVE:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if curveFE != "" {
		fmt.Fprintln(w, "  t (days)\tComputed (mm)\tBarron (mm)\tResidual (mm)")
	} else {
		fmt.Fprintln(w, "  t (days)\tBarron (mm)")
	}
	for _, p := range points {
		if p.Measured != nil {
			c := results.Comparison{Time: p.Time, Measured: *p.Measured, Barron: p.Barron}
			fmt.Fprintf(w, "  %.3f\t%.1f\t%.1f\t%+.1f\n", c.Time, c.Measured*1000, c.Barron*1000, c.Residual()*1000)
		} else {
			fmt.Fprintf(w, "  %.3f\t%.1f\n", p.Time, p.Barron*1000)
		}
	}
	w.Flush()
	fmt.Println()

	fmt.Print(diagram.DrawCurves("settlement (mm), computed in red", curveValues(points), 10))
	fmt.Println()

	if curveOutput != "" {
		file := outputPath(curveOutput)
		if err := diagram.ExportTimeSettlement("Settlement-time curve", curveSeries(points), file); err != nil {
			return fmt.Errorf("export plot: %w", err)
		}
		fmt.Printf("  Plot written to %s\n", file)
	}

	if curveSave != "" {
		st, err := store.Open(cfg.Database.Path, logger)
		if err != nil {
			return err
		}
		defer st.Close()

		params := store.Params{Drain: dr, Ultimate: curveUltimate, Source: curveFE}
		run, err := st.SaveRun(context.Background(), curveSave, params, points)
		if err != nil {
			return err
		}
		fmt.Printf("  Saved run %s (%s)\n", run.Name, run.ID[:8])
	}
	fmt.Println()
	return nil
}

// curvePointsFor evaluates Barron's curve at the computed curve's times
// when one is given and on a log-spaced grid otherwise.
func curvePointsFor(dr consolidation.Drain) ([]store.Point, error) {
	if curveFE != "" {
		f, err := os.Open(curveFE)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		steps, err := results.ReadCurve(f)
		if err != nil {
			return nil, err
		}
		cmp, err := results.CompareWithBarron(steps, dr, curveUltimate)
		if err != nil {
			return nil, err
		}
		points := make([]store.Point, len(cmp))
		for i, c := range cmp {
			measured := c.Measured
			points[i] = store.Point{Time: c.Time, Measured: &measured, Barron: c.Barron}
		}
		return points, nil
	}

	days, err := consolidation.LogTimes(curveFrom, curveTo, curvePoints)
	if err != nil {
		return nil, err
	}
	curve, err := consolidation.Curve(dr, curveUltimate, days)
	if err != nil {
		return nil, err
	}
	points := make([]store.Point, len(curve))
	for i, c := range curve {
		points[i] = store.Point{Time: c.Time, Barron: c.Settlement}
	}
	return points, nil
}

// curveValues returns the Barron and computed settlements in mm for the
// terminal chart.
func curveValues(points []store.Point) [][]float64 {
	var measured, barron []float64
	for _, p := range points {
		if p.Measured != nil {
			measured = append(measured, *p.Measured*1000)
		}
		barron = append(barron, p.Barron*1000)
	}
	return [][]float64{barron, measured}
}

// curveSeries converts points to plot series in mm.
func curveSeries(points []store.Point) []diagram.Series {
	computed := diagram.Series{Label: "Computed"}
	barron := diagram.Series{Label: "Barron", Dashed: true}
	for _, p := range points {
		if p.Measured != nil {
			computed.Points = append(computed.Points, diagram.Point{X: p.Time, Y: *p.Measured * 1000})
		}
		barron.Points = append(barron.Points, diagram.Point{X: p.Time, Y: p.Barron * 1000})
	}
	if len(computed.Points) == 0 {
		return []diagram.Series{barron}
	}
	return []diagram.Series{computed, barron}
}
