package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/geocons/internal/diagram"
	"github.com/alexiusacademia/geocons/internal/model"
	"github.com/alexiusacademia/geocons/internal/profile"
)

var (
	profileYAML   string
	profileOutput string
)

var modelProfileCmd = &cobra.Command{
	Use:   "profile <model.yaml>",
	Short: "Slice consolidation layers into sub-layers",
	Long: `Split each consolidation layer of a model into equal slices. Each
slice gets a copy of the layer material with its stiffness evaluated at
mid-slice and its permeability derived from the layer's c_v table:

  E    = E'ref + E'inc·max(0, yref − y)
  Eoed = E(1−ν)/((1+ν)(1−2ν))
  kv   = cv·γw/Eoed,  kh = kv·kx/ky

Examples:
  geocons model profile model.yaml

  # Write the slice materials and borehole layers as a model fragment
  geocons model profile model.yaml --yaml slices.yaml -o permeability.png`,
	Args: cobra.ExactArgs(1),
	RunE: runModelProfile,
}

func init() {
	modelCmd.AddCommand(modelProfileCmd)

	modelProfileCmd.Flags().StringVar(&profileYAML, "yaml", "", "Write slice materials and borehole layers to a YAML file")
	modelProfileCmd.Flags().StringVarP(&profileOutput, "output", "o", "", "Export a plot of kv against elevation")
}

// profileFragment is the model fragment written by --yaml.
type profileFragment struct {
	Materials []model.SoilMaterial  `yaml:"materials"`
	Layers    []model.BoreholeLayer `yaml:"borehole_layers"`
}

func runModelProfile(cmd *cobra.Command, args []string) error {
	m, err := model.Load(args[0])
	if err != nil {
		return err
	}
	profiles, err := profile.BuildAll(m)
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		return fmt.Errorf("model %s has no consolidation layers", args[0])
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     SOIL-LAYER PROFILE - %s\n", m.Title)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	var fragment profileFragment
	var series []diagram.Series
	for _, p := range profiles {
		fmt.Printf("LAYER %s (template %s):\n", p.Layer, p.Base)
		fmt.Println("───────────────────────────────────────────────────────────────")
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "  Slice\tTop (m)\tBottom (m)\tE (kPa)\tEoed (kPa)\tcv (m²/day)\tkv (m/day)\tkh (m/day)")
		s := diagram.Series{Label: p.Layer}
		for _, sl := range p.Slices {
			fmt.Fprintf(w, "  %s\t%.2f\t%.2f\t%.0f\t%.0f\t%.3e\t%.3e\t%.3e\n",
				sl.Material.Name, sl.Top, sl.Bottom, sl.E, sl.Eoed, sl.Cv, sl.Kv, sl.Kh)
			s.Points = append(s.Points, diagram.Point{X: sl.Kv, Y: sl.Mid()})
		}
		w.Flush()
		fmt.Println()

		series = append(series, s)
		fragment.Materials = append(fragment.Materials, p.Materials()...)
		fragment.Layers = append(fragment.Layers, p.BoreholeLayers()...)
	}

	if profileYAML != "" {
		data, err := yaml.Marshal(fragment)
		if err != nil {
			return err
		}
		file := outputPath(profileYAML)
		if err := writeFile(file, data); err != nil {
			return err
		}
		fmt.Printf("  %d slice materials written to %s\n", len(fragment.Materials), file)
	}

	if profileOutput != "" {
		file := outputPath(profileOutput)
		if err := diagram.ExportProfile("Vertical permeability", "kv (m/day)", "Elevation (m)", series, file); err != nil {
			return fmt.Errorf("export plot: %w", err)
		}
		fmt.Printf("  Plot written to %s\n", file)
	}
	fmt.Println()
	return nil
}
