package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/geocons/internal/consolidation"
)

var (
	// Drain geometry shared by the consolidation subcommands.
	// Unset flags fall back to the configured drain.
	drainCh float64
	drainDw float64
	drainDe float64
)

var consolidationCmd = &cobra.Command{
	Use:   "consolidation",
	Short: "Closed-form consolidation checks",
	Long: `Closed-form results used to check staged consolidation analyses.

Subcommands:
  settlement  - Ultimate one-dimensional settlement of a clay layer
  degree      - Barron's average degree of radial consolidation
  curve       - Settlement-time curve, optionally against a computed curve

Drain geometry is taken from the config file unless given with
--ch, --dw and --de. c_h is in m²/year; times are in days.`,
}

func init() {
	rootCmd.AddCommand(consolidationCmd)

	consolidationCmd.PersistentFlags().Float64Var(&drainCh, "ch", 0, "Horizontal coefficient of consolidation c_h (m²/year)")
	consolidationCmd.PersistentFlags().Float64Var(&drainDw, "dw", 0, "Equivalent drain diameter d (m)")
	consolidationCmd.PersistentFlags().Float64Var(&drainDe, "de", 0, "Diameter of the drain influence zone D_e (m)")
}

// drainFromFlags overrides the configured drain with any drain flag given.
func drainFromFlags(cmd *cobra.Command) (consolidation.Drain, error) {
	dr := cfg.Drain
	flags := cmd.Flags()
	if flags.Changed("ch") {
		dr.Ch = drainCh
	}
	if flags.Changed("dw") {
		dr.Diameter = drainDw
	}
	if flags.Changed("de") {
		dr.InfluenceDiameter = drainDe
	}
	return dr, dr.Validate()
}

func printDrain(dr consolidation.Drain) {
	fmt.Println("DRAIN GEOMETRY:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  c_h:\t%.4f m²/year\n", dr.Ch)
	fmt.Fprintf(w, "  Drain diameter (d):\t%.4f m\n", dr.Diameter)
	fmt.Fprintf(w, "  Influence diameter (D_e):\t%.4f m\n", dr.InfluenceDiameter)
	fmt.Fprintf(w, "  Spacing ratio (n = D_e/d):\t%.4f\n", dr.SpacingRatio())
	fmt.Fprintf(w, "  Geometry factor F(n):\t%.6f\n", dr.GeometryFactor())
	w.Flush()
	fmt.Println()
}

// outputPath places bare file names in the configured output directory.
func outputPath(name string) string {
	if name == "" || filepath.IsAbs(name) || filepath.Dir(name) != "." {
		return name
	}
	return filepath.Join(cfg.OutputDir, name)
}

// createFile creates path along with its parent directory.
func createFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.Create(path)
}

func writeFile(path string, data []byte) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
