package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/geocons/internal/diagram"
	"github.com/alexiusacademia/geocons/internal/results"
	"github.com/alexiusacademia/geocons/internal/store"
)

var (
	runsCSV    string
	runsOutput string
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Catalogue of stored settlement-time curves",
	Long: `Settlement-time curves saved with 'geocons consolidation curve --save'
are kept in a SQLite catalogue (database.path in the config, or --db).
Runs are addressed by a unique prefix of their ID.`,
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the parameters and points of a run",
	Long: `Show a stored run.

Examples:
  geocons runs show 3f2a
  geocons runs show 3f2a --csv pointA-barron.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runRunsShow,
}

var runsPlotCmd = &cobra.Command{
	Use:   "plot [id]...",
	Short: "Plot runs on a log time axis",
	Long: `Plot stored runs together, all of them when no ID is given. Each run
contributes its computed curve, if any, and Barron's prediction.

Examples:
  geocons runs plot -o all-runs.png
  geocons runs plot 3f2a 91bc -o comparison.png`,
	RunE: runRunsPlot,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd, runsShowCmd, runsPlotCmd, runsDeleteCmd)

	runsShowCmd.Flags().StringVar(&runsCSV, "csv", "", "Write Barron's curve as CSV (time,utot)")
	runsPlotCmd.Flags().StringVarP(&runsOutput, "output", "o", "runs.png", "Plot file (.png, .svg, .pdf)")
}

func openStore() (*store.Store, error) {
	return store.Open(cfg.Database.Path, logger)
}

func runRunsList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(context.Background())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs stored.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCREATED\tPOINTS")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", r.ID[:8], r.Name, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Points)
	}
	return w.Flush()
}

func loadRun(ctx context.Context, st *store.Store, prefix string) (*store.Run, error) {
	id, err := st.Resolve(ctx, prefix)
	if err != nil {
		return nil, err
	}
	return st.GetRun(ctx, id)
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := loadRun(ctx, st, args[0])
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     RUN %s\n", run.Name)
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  ID:\t%s\n", run.ID)
	fmt.Fprintf(w, "  Created:\t%s\n", run.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	if run.Params.Source != "" {
		fmt.Fprintf(w, "  Computed curve:\t%s\n", run.Params.Source)
	}
	fmt.Fprintf(w, "  Ultimate settlement (S∞):\t%.4f m\n", run.Params.Ultimate)
	w.Flush()
	fmt.Println()

	printDrain(run.Params.Drain)

	fmt.Println("POINTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  t (days)\tComputed (mm)\tBarron (mm)")
	for _, p := range run.Points {
		computed := "-"
		if p.Measured != nil {
			computed = fmt.Sprintf("%.1f", *p.Measured*1000)
		}
		fmt.Fprintf(w, "  %.3f\t%s\t%.1f\n", p.Time, computed, p.Barron*1000)
	}
	w.Flush()
	fmt.Println()

	if runsCSV != "" {
		steps := make([]results.CurveStep, len(run.Points))
		for i, p := range run.Points {
			steps[i] = results.CurveStep{Time: p.Time, Utot: p.Barron}
		}
		file := outputPath(runsCSV)
		if err := writeCurveFile(file, steps); err != nil {
			return err
		}
		fmt.Printf("  Curve written to %s\n", file)
		fmt.Println()
	}
	return nil
}

func writeCurveFile(path string, steps []results.CurveStep) error {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	if err := results.WriteCurve(f, steps); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runRunsPlot(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ids := args
	if len(ids) == 0 {
		runs, err := st.ListRuns(ctx)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			return fmt.Errorf("no runs stored")
		}
		for _, r := range runs {
			ids = append(ids, r.ID)
		}
	}

	var series []diagram.Series
	for _, prefix := range ids {
		run, err := loadRun(ctx, st, prefix)
		if err != nil {
			return err
		}
		for _, s := range curveSeries(run.Points) {
			s.Label = run.Name + " " + s.Label
			series = append(series, s)
		}
	}

	file := outputPath(runsOutput)
	if err := diagram.ExportTimeSettlement("Settlement-time curves", series, file); err != nil {
		return fmt.Errorf("export plot: %w", err)
	}
	fmt.Printf("Plot written to %s\n", file)
	return nil
}

func runRunsDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.Resolve(ctx, args[0])
	if err != nil {
		return err
	}
	if err := st.DeleteRun(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Deleted run %s\n", id[:8])
	return nil
}
