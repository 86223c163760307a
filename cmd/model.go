package cmd

import (
	"github.com/spf13/cobra"
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Model records, soil-layer profiles and phase schedules",
	Long: `Work with the YAML model document holding soil, plate and anchor
materials, boreholes, consolidation layers and calculation phases.

Subcommands:
  check    - Load and validate a model and list its records
  profile  - Slice consolidation layers into sub-layers
  stages   - List the consolidation stage schedule`,
}

func init() {
	rootCmd.AddCommand(modelCmd)
}
