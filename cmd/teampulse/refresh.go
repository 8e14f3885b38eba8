package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"teampulse/backend/sync"
	"teampulse/internal/utils"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

func newRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Pull all records from the store into the local snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp()

			result, err := runRefresh(app)
			if err != nil {
				return err
			}
			fmt.Println(result.String())
			return nil
		},
	}
}

func runRefresh(app *App) (*sync.RefreshResult, error) {
	remote, err := app.remoteStore()
	if err != nil {
		return nil, err
	}

	snap, err := app.openSnapshot()
	if err != nil {
		return nil, err
	}
	defer snap.Close()

	return sync.NewRefresher(remote, snap).Refresh()
}

// newWatchCmd runs refresh on a cron schedule until interrupted
func newWatchCmd() *cobra.Command {
	var schedule string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh the snapshot on a schedule",
		Long: `Runs in the foreground and refreshes the local snapshot on a cron
schedule. The schedule comes from refresh_schedule in the config file
and defaults to every 15 minutes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp()

			if schedule == "" {
				schedule = app.config.GetRefreshSchedule()
			}

			remote, err := app.remoteStore()
			if err != nil {
				return err
			}
			snap, err := app.openSnapshot()
			if err != nil {
				return err
			}
			defer snap.Close()

			refresher := sync.NewRefresher(remote, snap)

			refresh := func() {
				result, err := refresher.Refresh()
				if err != nil {
					if errors.Is(err, sync.ErrRefreshInProgress) {
						utils.Debugf("refresh still running, skipping tick")
						return
					}
					utils.Errorf("refresh failed: %v", err)
					return
				}
				utils.Infof("%s", result.String())
			}

			c := cron.New()
			if _, err := c.AddFunc(schedule, refresh); err != nil {
				return fmt.Errorf("invalid schedule %q: %w", schedule, err)
			}

			// One refresh up front so the snapshot is never stale for a
			// full interval after startup.
			refresh()

			utils.Infof("watching on schedule %q, ctrl+c to stop", schedule)
			c.Start()
			defer c.Stop()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			<-sigCh

			fmt.Println("\nstopping")
			return nil
		},
	}

	cmd.Flags().StringVar(&schedule, "schedule", "", "cron schedule (overrides config)")

	return cmd
}
