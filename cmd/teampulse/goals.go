package main

import (
	"fmt"
	"strings"

	"teampulse/backend"
	"teampulse/internal/dates"
	"teampulse/internal/ingest"
	"teampulse/internal/utils"

	"github.com/spf13/cobra"
)

func newGoalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Set and list weekly goals",
	}

	cmd.AddCommand(newGoalsAddCmd())
	cmd.AddCommand(newGoalsProgressCmd())
	cmd.AddCommand(newGoalsListCmd())

	return cmd
}

func newGoalsProgressCmd() *cobra.Command {
	var (
		progress int
		status   string
	)

	cmd := &cobra.Command{
		Use:   "progress <goal-id>",
		Short: "Update a goal's progress or status",
		Long: `Updates a goal by appending a row with the same id. Deduplication
keeps the newest row per id, so the update wins on the next read.`,
		Example: `  teampulse goals progress g-042 --progress 60
  teampulse goals progress g-042 --progress 100 --status done`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp()
			goalID := args[0]

			if progress < -1 || progress > 100 {
				return fmt.Errorf("progress must be between 0 and 100")
			}
			if status != "" {
				switch status {
				case backend.GoalPlanned, backend.GoalInProgress, backend.GoalDone, backend.GoalDropped:
				default:
					return fmt.Errorf("invalid status %q (planned, in_progress, done, dropped)", status)
				}
			}

			snap, err := app.openSnapshot()
			if err != nil {
				return err
			}
			goals, err := snap.FetchGoals()
			snap.Close()
			if err != nil {
				return err
			}

			var goal *backend.Goal
			for i := range goals {
				if goals[i].ID == goalID {
					goal = &goals[i]
					break
				}
			}
			if goal == nil {
				return fmt.Errorf("goal '%s' not found (run 'teampulse goals list' or 'teampulse refresh')", goalID)
			}

			if progress >= 0 {
				goal.Progress = progress
			}
			if status != "" {
				goal.Status = status
			} else if goal.Progress == 100 {
				goal.Status = backend.GoalDone
			} else if goal.Progress > 0 && goal.Status == backend.GoalPlanned {
				goal.Status = backend.GoalInProgress
			}

			if err := app.appendRecord(func(s backend.StatusStore) error {
				return s.AppendGoal(*goal)
			}); err != nil {
				return err
			}

			fmt.Printf("Goal %s updated: %s, %d%%\n", goalID, goal.Status, goal.Progress)
			return nil
		},
	}

	cmd.Flags().IntVarP(&progress, "progress", "p", -1, "progress percentage 0-100")
	cmd.Flags().StringVar(&status, "status", "", "new status")

	return cmd
}

func newGoalsAddCmd() *cobra.Command {
	var (
		week   string
		status string
	)

	cmd := &cobra.Command{
		Use:     "add <title...>",
		Aliases: []string{"set"},
		Short:   "Set a goal for this week",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp()

			member, err := app.member(cmd)
			if err != nil {
				return err
			}
			title := strings.Join(args, " ")

			switch status {
			case backend.GoalPlanned, backend.GoalInProgress, backend.GoalDone, backend.GoalDropped:
			default:
				return fmt.Errorf("invalid status %q (planned, in_progress, done, dropped)", status)
			}

			anchor := dates.SnapToMonday(today())
			if week != "" {
				anchor = dates.SnapToMonday(dates.NormalizeDate(week))
				if anchor == "" {
					return fmt.Errorf("unrecognized week %q", week)
				}
			}

			goal := backend.Goal{
				ID:     ingest.EnsureID(""),
				Member: member,
				Title:  title,
				Week:   anchor,
				Status: status,
			}

			if err := app.appendRecord(func(s backend.StatusStore) error {
				return s.AppendGoal(goal)
			}); err != nil {
				return err
			}

			fmt.Printf("Goal set for week of %s (id %s)\n", goal.Week, goal.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "any date inside the wanted week")
	cmd.Flags().StringVar(&status, "status", backend.GoalPlanned, "initial status")
	cmd.Flags().String("member", "", "set under this member name")

	return cmd
}

func newGoalsListCmd() *cobra.Command {
	var (
		week         string
		memberFilter string
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List goals for a week from the local snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp()

			snap, err := app.openSnapshot()
			if err != nil {
				return err
			}
			defer snap.Close()

			goals, err := snap.FetchGoals()
			if err != nil {
				return err
			}
			if len(goals) == 0 {
				return utils.ErrEmptySnapshot()
			}

			anchor := dates.SnapToMonday(today())
			if week != "" {
				anchor = dates.SnapToMonday(dates.NormalizeDate(week))
				if anchor == "" {
					return fmt.Errorf("unrecognized week %q", week)
				}
			}

			var filtered []backend.Goal
			for _, g := range goals {
				if g.Week != anchor {
					continue
				}
				if memberFilter != "" && g.Member != memberFilter {
					continue
				}
				filtered = append(filtered, g)
			}

			if asJSON {
				return utils.OutputJSON(filtered)
			}

			fmt.Printf("Week of %s\n", anchor)
			if len(filtered) == 0 {
				fmt.Println("  no goals set")
				return nil
			}
			for _, g := range filtered {
				progress := ""
				if g.Progress > 0 {
					progress = fmt.Sprintf(" (%d%%)", g.Progress)
				}
				fmt.Printf("  %-12s %-12s %s%s\n", g.Member, g.Status, g.Title, progress)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "any date inside the wanted week")
	cmd.Flags().StringVar(&memberFilter, "member", "", "only show this member")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	return cmd
}
