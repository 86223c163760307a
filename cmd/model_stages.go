package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/geocons/internal/consolidation"
	"github.com/alexiusacademia/geocons/internal/model"
)

var (
	stagesModel string
	stagesStart string
	stagesStep  float64
	stagesCount int
)

var modelStagesCmd = &cobra.Command{
	Use:   "stages",
	Short: "Consolidation stage schedule",
	Long: `List the chained consolidation phases of a schedule. Phase i lasts
step^i days for i = 1 .. count−1, so the analysis reaches long times in a
few phases. The degree of consolidation reached at the end of each phase
is predicted with Barron's solution for the model's (or configured) drain.

Examples:
  # Schedule of a model, appended to its phases
  geocons model stages --model model.yaml

  # Stand-alone schedule with a 10-day step
  geocons model stages --step 10 --count 5`,
	RunE: runModelStages,
}

func init() {
	modelCmd.AddCommand(modelStagesCmd)

	modelStagesCmd.Flags().StringVarP(&stagesModel, "model", "m", "", "Model file with a schedule")
	modelStagesCmd.Flags().StringVar(&stagesStart, "start-from", "Embankment", "Phase the schedule starts from")
	modelStagesCmd.Flags().Float64Var(&stagesStep, "step", 10, "Time step base (days), greater than 1")
	modelStagesCmd.Flags().IntVarP(&stagesCount, "count", "n", 5, "Number of schedule points")
}

func runModelStages(cmd *cobra.Command, args []string) error {
	dr := cfg.Drain
	var stages []model.Stage
	var plan *model.Plan

	if stagesModel != "" {
		m, err := model.Load(stagesModel)
		if err != nil {
			return err
		}
		if m.Schedule == nil {
			return fmt.Errorf("model %s has no schedule", stagesModel)
		}
		if m.Drain != nil {
			dr = *m.Drain
		}
		plan, err = m.Plan()
		if err != nil {
			return err
		}
		start := m.Schedule.StartFrom
		if start == "" {
			start = model.InitialPhase
			if len(m.Phases) > 0 {
				start = m.Phases[len(m.Phases)-1].Name
			}
		}
		stages, err = model.ConsolidationSchedule(start, m.Schedule.Step, m.Schedule.Count)
		if err != nil {
			return err
		}
	} else {
		var err error
		stages, err = model.ConsolidationSchedule(stagesStart, stagesStep, stagesCount)
		if err != nil {
			return err
		}
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     CONSOLIDATION SCHEDULE")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	if plan != nil {
		printPlan(plan)
	}

	fmt.Println("SCHEDULE:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Phase\tStart from\tInterval (days)\tElapsed (days)\tU_h (%)")
	for _, s := range stages {
		u, err := dr.Degree(s.Elapsed / consolidation.DaysPerYear)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s\t%s\t%g\t%g\t%.1f\n", s.Phase.Name, s.Phase.Parent, s.Phase.TimeInterval, s.Elapsed, 100*u)
	}
	w.Flush()
	fmt.Println()
	return nil
}
