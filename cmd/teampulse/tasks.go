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

func newTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Plan and list weekly tasks",
	}

	cmd.AddCommand(newTasksAddCmd())
	cmd.AddCommand(newTasksDoneCmd())
	cmd.AddCommand(newTasksListCmd())

	return cmd
}

func newTasksDoneCmd() *cobra.Command {
	var donePomodoros int

	cmd := &cobra.Command{
		Use:   "done <task-id>",
		Short: "Mark a planned task as done",
		Long: `Marks a task as done by appending an updated row with the same id.
Deduplication keeps the newest row per id, so the update wins on the
next read without mutating the original row.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp()
			taskID := args[0]

			snap, err := app.openSnapshot()
			if err != nil {
				return err
			}
			tasks, err := snap.FetchTasks()
			snap.Close()
			if err != nil {
				return err
			}

			var task *backend.Task
			for i := range tasks {
				if tasks[i].ID == taskID {
					task = &tasks[i]
					break
				}
			}
			if task == nil {
				return fmt.Errorf("task '%s' not found (run 'teampulse tasks list' or 'teampulse refresh')", taskID)
			}

			task.Done = true
			task.DonePomodoros = task.PlannedPomodoros
			if donePomodoros >= 0 {
				task.DonePomodoros = donePomodoros
			}

			if err := app.appendRecord(func(s backend.StatusStore) error {
				return s.AppendTask(*task)
			}); err != nil {
				return err
			}

			fmt.Printf("Task %s marked done (%d/%d pomodoros)\n", taskID, task.DonePomodoros, task.PlannedPomodoros)
			return nil
		},
	}

	cmd.Flags().IntVarP(&donePomodoros, "pomodoros", "p", -1, "pomodoros actually spent (defaults to the plan)")

	return cmd
}

func newTasksAddCmd() *cobra.Command {
	var (
		pomodoros int
		date      string
	)

	cmd := &cobra.Command{
		Use:   "add <title...>",
		Short: "Plan a task for this week",
		Example: `  teampulse tasks add "migrate billing cron" --pomodoros 6
  teampulse tasks add "spike: queue backpressure" --date 2024-06-17`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp()

			member, err := app.member(cmd)
			if err != nil {
				return err
			}
			title := strings.Join(args, " ")

			taskDate := today()
			if date != "" {
				taskDate = dates.NormalizeDate(date)
				if taskDate == "" {
					return fmt.Errorf("unrecognized date %q", date)
				}
			}

			task := backend.Task{
				ID:               ingest.EnsureID(""),
				Member:           member,
				Title:            title,
				Date:             taskDate,
				Week:             dates.SnapToMonday(taskDate),
				PlannedPomodoros: pomodoros,
			}

			if err := app.appendRecord(func(s backend.StatusStore) error {
				return s.AppendTask(task)
			}); err != nil {
				return err
			}

			fmt.Printf("Task planned for week of %s (id %s)\n", task.Week, task.ID)
			return nil
		},
	}

	cmd.Flags().IntVarP(&pomodoros, "pomodoros", "p", 1, "planned pomodoros")
	cmd.Flags().StringVar(&date, "date", "", "task date (defaults to today)")
	cmd.Flags().String("member", "", "plan under this member name")

	return cmd
}

func newTasksListCmd() *cobra.Command {
	var (
		week         string
		memberFilter string
		asJSON       bool
		asYAML       bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks for a week from the local snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp()

			snap, err := app.openSnapshot()
			if err != nil {
				return err
			}
			defer snap.Close()

			tasks, err := snap.FetchTasks()
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				return utils.ErrEmptySnapshot()
			}

			// Default to the current week; any date inside the wanted
			// week works, it gets snapped to its Monday.
			anchor := dates.SnapToMonday(today())
			if week != "" {
				anchor = dates.SnapToMonday(dates.NormalizeDate(week))
				if anchor == "" {
					return fmt.Errorf("unrecognized week %q", week)
				}
			}

			var filtered []backend.Task
			for _, t := range tasks {
				if t.Week != anchor {
					continue
				}
				if memberFilter != "" && t.Member != memberFilter {
					continue
				}
				filtered = append(filtered, t)
			}

			if asJSON {
				return utils.OutputJSON(filtered)
			}
			if asYAML {
				return utils.OutputYAML(filtered)
			}

			fmt.Printf("Week of %s\n", anchor)
			if len(filtered) == 0 {
				fmt.Println("  no tasks planned")
				return nil
			}
			for _, t := range filtered {
				mark := " "
				if t.Done {
					mark = "x"
				}
				fmt.Printf("  [%s] %-12s %s (%d/%d pomodoros)\n",
					mark, t.Member, t.Title, t.DonePomodoros, t.PlannedPomodoros)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "any date inside the wanted week")
	cmd.Flags().StringVar(&memberFilter, "member", "", "only show this member")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "output as YAML")

	return cmd
}
