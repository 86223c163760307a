package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexiusacademia/geocons/internal/config"
	"github.com/alexiusacademia/geocons/internal/logging"
	"github.com/alexiusacademia/geocons/internal/version"
)

var (
	// Persistent flags
	configPath string
	verbose    bool
	dbPath     string

	// Set up before any subcommand runs
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "geocons",
	Short: "Consolidation checks for staged geotechnical models",
	Long: `geocons - Go Geotechnical Consolidation Toolkit

A CLI tool that supports staged finite-element models of soft ground
improved with prefabricated vertical drains.

This tool helps geotechnical engineers:
  - Check ultimate consolidation settlement and Barron's degree of
    radial consolidation against the numerical results
  - Reconcile mesh polygons with the soil clusters of the model
  - Validate model records and slice clay layers into sub-layers
  - Post-process anchor forces and settlement troughs
  - Keep a catalogue of settlement-time runs`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, path, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if dbPath != "" {
			loaded.Database.Path = dbPath
		}
		cfg = loaded

		logger, err = logging.New(cfg.LogLevel, verbose)
		if err != nil {
			return err
		}
		if path != "" {
			logger.Debug("config loaded", zap.String("path", path))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   geocons v%-47s║\n", version.Version)
		fmt.Println("  ║   Go Geotechnical Consolidation Toolkit                   ║")
		fmt.Printf("  ║   %s ©  %-36s║\n", version.Author, version.Year)
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  Closed-form and post-processing checks for staged")
		fmt.Println("  consolidation analyses with vertical drains.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Ultimate settlement and Barron radial consolidation")
		fmt.Println("    • Mesh polygon reconciliation by area, centroid and vertices")
		fmt.Println("    • Soil-layer profiles with depth-dependent permeability")
		fmt.Println("    • Anchor force and settlement trough extraction")
		fmt.Println()
		fmt.Println("  Use 'geocons --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: search $GEOCONS_CONFIG, ./geocons.yaml, ~/.config/geocons)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Run catalogue database (overrides config)")
}
