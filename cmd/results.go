package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Post-process exported calculation results",
	Long: `Post-process node results exported from the calculation as CSV.

Subcommands:
  anchors     - Pair anchor end nodes and list forces per phase
  settlement  - Settlement trough along a horizontal cut

Column names are matched case-insensitively; lines starting with # are
skipped.`,
}

func init() {
	rootCmd.AddCommand(resultsCmd)
}

// openInput opens a results file, with "-" for standard input.
func openInput(path string) (*os.File, error) {
	if path == "-" {
		return os.Stdin, nil
	}
	return os.Open(path)
}
