package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/geocons/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of geocons",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
		fmt.Println("Go Geotechnical Consolidation Toolkit")
		fmt.Println("Barron radial consolidation with vertical drains")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
