package main

import (
	"fmt"
	"time"

	"teampulse/backend"
	"teampulse/internal/metrics"
	"teampulse/internal/tui"
	"teampulse/internal/utils"

	"github.com/spf13/cobra"
)

func newDashboardCmd() *cobra.Command {
	var (
		weeks       int
		interactive bool
		plain       bool
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the weekly team metrics dashboard",
		Long: `Aggregates the local snapshot into weekly cohorts: check-in counts
and average mood, kudos given and received, pomodoros planned versus
done, and goal completion, per member per week.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp()

			snap, err := app.openSnapshot()
			if err != nil {
				return err
			}
			defer snap.Close()

			// Pull once automatically when the snapshot has never been
			// refreshed.
			if _, at, err := snap.LastRefresh(); err == nil && at.IsZero() {
				utils.Infof("snapshot is empty, refreshing first")
				if _, err := runRefresh(app); err != nil {
					return err
				}
			}

			data, err := backend.FetchAll(snap)
			if err != nil {
				return err
			}

			if weeks <= 0 {
				weeks = app.config.GetDashboardWeeks()
			}
			window := metrics.LastNWeeks(time.Now(), weeks)
			report := metrics.Aggregate(data, window)

			useTUI := app.config.UI == "tui"
			if interactive {
				useTUI = true
			}
			if plain {
				useTUI = false
			}

			if useTUI {
				return tui.RunDashboard(report)
			}
			fmt.Print(tui.RenderDashboard(report))
			return nil
		},
	}

	cmd.Flags().IntVarP(&weeks, "weeks", "w", 0, "number of weeks to show")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "force the interactive dashboard")
	cmd.Flags().BoolVar(&plain, "plain", false, "force plain text output")

	return cmd
}
