package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/geocons/internal/model"
)

var modelCheckCmd = &cobra.Command{
	Use:   "check <model.yaml>",
	Short: "Validate a model and list its records",
	Long: `Load a model document, validate every record and cross reference,
and print the materials with their code table names, the boreholes and
the phase plan.

Examples:
  geocons model check model.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runModelCheck,
}

func init() {
	modelCmd.AddCommand(modelCheckCmd)
}

func runModelCheck(cmd *cobra.Command, args []string) error {
	m, err := model.Load(args[0])
	if err != nil {
		return err
	}
	plan, err := m.Plan()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     MODEL - %s\n", m.Title)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("SOIL MATERIALS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Name\tModel\tDrainage\tStrength\tγunsat/γsat\tE'ref (kPa)\tν'\tkx/ky (m/day)")
	for _, s := range m.Materials {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%.1f/%.1f\t%.0f\t%.2f\t%.2e/%.2e\n",
			s.Name, s.Model, s.Drainage, s.Drainage.Strength(),
			s.GammaUnsat, s.GammaSat, s.Eref, s.Nu, s.PermHorizontal, s.PermVertical)
	}
	w.Flush()
	fmt.Println()

	fmt.Println("INTERFACES AND INITIAL STRESSES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Name\tInterface strength\tRinter\tCross permeability\tK0 determination")
	for _, s := range m.Materials {
		fmt.Fprintf(w, "  %s\t%s\t%.2f\t%s\t%s\n",
			s.Name, s.InterfaceStrength, s.Rinter, s.CrossPermeability, s.K0Determination)
	}
	w.Flush()
	fmt.Println()

	if len(m.Plates) > 0 || len(m.Anchors) > 0 {
		fmt.Println("STRUCTURAL MATERIALS:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, p := range m.Plates {
			fmt.Fprintf(w, "  Plate %s\t%s\tEA %.0f kN/m\tEI %.1f kNm²/m\td_eq %.3f m\n",
				p.Name, p.Type, p.EA, p.EI, p.EquivalentThickness())
		}
		for _, a := range m.Anchors {
			fmt.Fprintf(w, "  Anchor %s\t%s\tEA %.0f kN\tLspacing %.2f m\tEA/L %.0f kN/m\n",
				a.Name, a.Type, a.EA, a.Lspacing, a.AxialStiffnessPerMetre())
		}
		w.Flush()
		fmt.Println()
	}

	if len(m.Boreholes) > 0 {
		fmt.Println("BOREHOLES:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  Borehole\tx (m)\tHead (m)\tDepth (m)\tLayer\tTop (m)\tBottom (m)\tThickness (m)")
		for _, b := range m.Boreholes {
			for i, l := range b.Layers {
				name, x, head, depth := "", "", "", ""
				if i == 0 {
					name, x, head = b.Name, fmt.Sprintf("%.2f", b.X), fmt.Sprintf("%.2f", b.Head)
					depth = fmt.Sprintf("%.2f", b.Depth())
				}
				fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%.2f\t%.2f\t%.2f\n",
					name, x, head, depth, l.Material, b.LayerTop(i), l.Bottom, b.Thickness(i))
			}
		}
		w.Flush()
		fmt.Println()
	}

	printPlan(plan)

	fmt.Println("STATUS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	fmt.Printf("  ✓ %d soil materials, %d boreholes, %d consolidation layers, %d phases\n",
		len(m.Materials), len(m.Boreholes), len(m.Layers), plan.Len())
	fmt.Println()
	return nil
}

func printPlan(plan *model.Plan) {
	fmt.Println("PHASES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Phase\tStart from\tType\tLoading\tElapsed (days)")
	for _, ph := range plan.Phases() {
		elapsed, _ := plan.Elapsed(ph.Name)
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%.1f\n", ph.Name, dash(ph.Parent), ph.Type, dash(string(ph.Loading)), elapsed)
	}
	w.Flush()
	fmt.Println()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
