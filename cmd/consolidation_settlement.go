package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/geocons/internal/consolidation"
	"github.com/alexiusacademia/geocons/internal/diagram"
	"github.com/alexiusacademia/geocons/internal/model"
)

var (
	settleThickness float64
	settleLoad      float64
	settleGamma     float64
	settleCc        float64
	settleE0        float64
	settleModel     string
)

var consolidationSettlementCmd = &cobra.Command{
	Use:   "settlement",
	Short: "Ultimate consolidation settlement of a clay layer",
	Long: `Calculate the ultimate one-dimensional consolidation settlement of a
normally consolidated clay layer under a uniform surface load:

  S = Cc/(1+e0)·(H·log10((Δσ+σb)/σb) − Δσ/γ'·log10(Δσ) + Δσ/γ'·log10(Δσ+σb))

with σb = H·γ' the effective stress at the base of the layer.

Examples:
  # 20 m of clay under 20 kPa
  geocons consolidation settlement --thickness 20 --load 20 --gamma 6 --cc 1.2 --e0 2

  # Every consolidation layer of a model
  geocons consolidation settlement --model model.yaml`,
	RunE: runConsolidationSettlement,
}

func init() {
	consolidationCmd.AddCommand(consolidationSettlementCmd)

	consolidationSettlementCmd.Flags().Float64VarP(&settleThickness, "thickness", "H", 0, "Clay layer thickness (m)")
	consolidationSettlementCmd.Flags().Float64VarP(&settleLoad, "load", "q", 0, "Surface load Δσ (kPa)")
	consolidationSettlementCmd.Flags().Float64Var(&settleGamma, "gamma", 0, "Effective unit weight γ' (kN/m³)")
	consolidationSettlementCmd.Flags().Float64Var(&settleCc, "cc", 0, "Compression index Cc")
	consolidationSettlementCmd.Flags().Float64Var(&settleE0, "e0", 0, "Initial void ratio e0")
	consolidationSettlementCmd.Flags().StringVarP(&settleModel, "model", "m", "", "Model file; evaluates each consolidation layer")

	consolidationSettlementCmd.MarkFlagsRequiredTogether("thickness", "load", "gamma", "cc", "e0")
	consolidationSettlementCmd.MarkFlagsMutuallyExclusive("model", "thickness")
	consolidationSettlementCmd.MarkFlagsOneRequired("model", "thickness")
}

func runConsolidationSettlement(cmd *cobra.Command, args []string) error {
	if settleModel != "" {
		return runModelSettlement(settleModel)
	}

	in := consolidation.SettlementInput{
		Thickness:  settleThickness,
		Load:       settleLoad,
		UnitWeight: settleGamma,
		Cc:         settleCc,
		VoidRatio:  settleE0,
	}
	s, err := consolidation.Settlement(in)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     ULTIMATE CONSOLIDATION SETTLEMENT")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("INPUT DATA:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Layer thickness (H):\t%.3f m\n", in.Thickness)
	fmt.Fprintf(w, "  Surface load (Δσ):\t%.3f kPa\n", in.Load)
	fmt.Fprintf(w, "  Effective unit weight (γ'):\t%.3f kN/m³\n", in.UnitWeight)
	fmt.Fprintf(w, "  Compression index (Cc):\t%.4f\n", in.Cc)
	fmt.Fprintf(w, "  Initial void ratio (e0):\t%.4f\n", in.VoidRatio)
	w.Flush()
	fmt.Println()

	fmt.Print(diagram.DrawSummaryBox("ULTIMATE SETTLEMENT", []string{
		fmt.Sprintf("S = %.4f m", s),
		fmt.Sprintf("  = %.1f mm", s*1000),
		fmt.Sprintf("σb = %.2f kPa", in.Thickness*in.UnitWeight),
	}))
	fmt.Println()
	return nil
}

func runModelSettlement(path string) error {
	m, err := model.Load(path)
	if err != nil {
		return err
	}
	if len(m.Layers) == 0 {
		return fmt.Errorf("model %s has no consolidation layers", path)
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     ULTIMATE SETTLEMENT - %s\n", m.Title)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	fmt.Printf("  Surcharge (Δσ): %.2f kPa\n", m.Surcharge)
	fmt.Println()

	fmt.Println("LAYERS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Layer\tMaterial\tH (m)\tγ' (kN/m³)\tCc\te0\tS (mm)")
	var total float64
	for _, l := range m.Layers {
		in, err := m.SettlementInput(l)
		if err != nil {
			return err
		}
		s, err := consolidation.Settlement(in)
		if err != nil {
			return fmt.Errorf("layer %s: %w", l.Name, err)
		}
		total += s
		fmt.Fprintf(w, "  %s\t%s\t%.2f\t%.2f\t%.3f\t%.3f\t%.1f\n",
			l.Name, l.Material, in.Thickness, in.UnitWeight, in.Cc, in.VoidRatio, s*1000)
	}
	w.Flush()
	fmt.Println()

	logger.Debug("model settlement", zap.String("model", path), zap.Float64("total_m", total))
	fmt.Printf("  Total ultimate settlement: %.1f mm\n", total*1000)
	fmt.Println()
	return nil
}
