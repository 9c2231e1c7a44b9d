package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/insurance-advisor/internal/model"
	"github.com/sells-group/insurance-advisor/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect recommendation run history",
	Long:  "Commands for listing, viewing, and summarizing stored recommendation runs.",
}

// -- runs list --

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recommendation runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")

		runs, err := st.ListRuns(ctx, store.RunFilter{
			Status: model.RunStatus(status),
			Limit:  limit,
		})
		if err != nil {
			return eris.Wrap(err, "runs list")
		}

		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "No runs found.")
			return nil
		}

		formatRunsList(os.Stdout, runs)
		return nil
	},
}

// -- runs show --

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show full details of a run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		run, err := st.GetRun(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "runs show")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	},
}

// -- runs stats --

var runsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate run statistics",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		runs, err := st.ListRuns(ctx, store.RunFilter{Limit: 10000})
		if err != nil {
			return eris.Wrap(err, "runs stats")
		}

		stats := computeRunStats(runs)
		formatRunStats(os.Stdout, stats)
		return nil
	},
}

func init() {
	runsListCmd.Flags().String("status", "", "filter by run status (queued, complete, failed)")
	runsListCmd.Flags().Int("limit", 50, "max number of runs to display")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsStatsCmd)
	rootCmd.AddCommand(runsCmd)
}

// runStats holds aggregate statistics computed from a set of runs.
type runStats struct {
	Total        int
	Complete     int
	Failed       int
	Queued       int
	WithPlans    int
	WithoutPlans int
}

// computeRunStats computes aggregate statistics from a list of runs.
func computeRunStats(runs []model.Run) runStats {
	var s runStats
	s.Total = len(runs)
	for _, r := range runs {
		switch r.Status {
		case model.RunStatusComplete:
			s.Complete++
		case model.RunStatusFailed:
			s.Failed++
		case model.RunStatusQueued:
			s.Queued++
		}
		if r.Result != nil {
			if len(r.Result.Recommendations) > 0 {
				s.WithPlans++
			} else {
				s.WithoutPlans++
			}
		}
	}
	return s
}

func formatRunStats(w io.Writer, s runStats) {
	fmt.Fprintf(w, "Total runs:      %d\n", s.Total)
	fmt.Fprintf(w, "Complete:        %d\n", s.Complete)
	fmt.Fprintf(w, "Failed:          %d\n", s.Failed)
	fmt.Fprintf(w, "Queued:          %d\n", s.Queued)
	fmt.Fprintf(w, "With plans:      %d\n", s.WithPlans)
	fmt.Fprintf(w, "No plans found:  %d\n", s.WithoutPlans)
}

func formatRunsList(w io.Writer, runs []model.Run) {
	fmt.Fprintf(w, "%-36s %-10s %4s %12s %6s %-20s\n",
		"ID", "Status", "Age", "Income", "Plans", "Created")
	fmt.Fprintln(w, "----------------------------------------------------------------------------------------------")
	for _, r := range runs {
		plans := 0
		if r.Result != nil {
			plans = len(r.Result.Recommendations)
		}
		fmt.Fprintf(w, "%-36s %-10s %4d %12s %6d %-20s\n",
			r.ID, r.Status, r.Profile.Age, formatINR(r.Profile.Income),
			plans, r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
}
