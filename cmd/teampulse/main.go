package main

import (
	"fmt"
	"log"
	"time"

	"teampulse/backend"
	"teampulse/backend/fixture"
	"teampulse/backend/sheets"
	"teampulse/backend/sqlite"
	"teampulse/internal/config"
	"teampulse/internal/credentials"
	"teampulse/internal/dates"
	"teampulse/internal/utils"

	"github.com/spf13/cobra"
)

type App struct {
	config *config.Config
}

func NewApp() *App {
	return &App{config: config.GetConfig()}
}

// remoteStore returns the configured source of truth: the spreadsheet
// endpoint, or the embedded fixture data when no endpoint is set.
func (a *App) remoteStore() (backend.StatusStore, error) {
	if a.config.UsesFixture() {
		utils.Debugf("no endpoint configured, using fixture data")
		return fixture.New()
	}

	token, err := credentials.NewResolver().Resolve(a.config.APIToken)
	if err != nil {
		return nil, err
	}
	utils.Debugf("resolved API token from %s", token.Source)

	return sheets.New(sheets.Config{
		BaseURL:  a.config.Endpoint,
		APIToken: token.Value,
		Tabs: sheets.TabNames{
			Checkins: a.config.Tabs.Checkins,
			Kudos:    a.config.Tabs.Kudos,
			Replies:  a.config.Tabs.Replies,
			Tasks:    a.config.Tabs.Tasks,
			Goals:    a.config.Tabs.Goals,
		},
	}), nil
}

func (a *App) openSnapshot() (*sqlite.SnapshotStore, error) {
	return sqlite.Open(a.config.SnapshotPath)
}

// member resolves the acting member name: --member flag first, then the
// config file.
func (a *App) member(cmd *cobra.Command) (string, error) {
	if m, _ := cmd.Flags().GetString("member"); m != "" {
		return m, nil
	}
	if a.config.Member != "" {
		return a.config.Member, nil
	}
	return "", utils.ErrNoMember()
}

// today returns the current calendar date in the local timezone.
func today() string {
	return time.Now().Format(dates.CanonicalLayout)
}

// appendRecord writes a record to the remote store and mirrors it into
// the local snapshot so lists reflect it without waiting for a refresh.
func (a *App) appendRecord(write func(backend.StatusStore) error) error {
	remote, err := a.remoteStore()
	if err != nil {
		return err
	}
	if err := write(remote); err != nil {
		return err
	}

	snap, err := a.openSnapshot()
	if err != nil {
		utils.Warnf("record saved remotely but snapshot update failed: %v", err)
		return nil
	}
	defer snap.Close()
	if err := write(snap); err != nil {
		utils.Warnf("record saved remotely but snapshot update failed: %v", err)
	}
	return nil
}

func main() {
	var (
		configPath string
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:   "teampulse",
		Short: "Team status tracking from the command line",
		Long: `teampulse tracks a team's daily check-ins, kudos, task plans and
weekly goals in a shared spreadsheet, and aggregates them into a
weekly metrics dashboard.

Records are pulled into a local snapshot database; list and dashboard
commands read from the snapshot, write commands go to the spreadsheet
endpoint directly. Without a configured endpoint the tool runs against
embedded fixture data.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if configPath != "" {
				config.SetCustomConfigPath(configPath)
			}
			utils.SetVerboseMode(verbose)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file or directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newCheckinCmd())
	rootCmd.AddCommand(newKudosCmd())
	rootCmd.AddCommand(newTasksCmd())
	rootCmd.AddCommand(newGoalsCmd())
	rootCmd.AddCommand(newDashboardCmd())
	rootCmd.AddCommand(newRefreshCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newTokenCmd())
	rootCmd.AddCommand(newStatusCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

// newStatusCmd reports where data is coming from and how fresh it is
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show store and snapshot status",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp()

			if app.config.UsesFixture() {
				fmt.Println("Store:    fixture (no endpoint configured)")
			} else {
				fmt.Printf("Store:    %s\n", app.config.Endpoint)
			}

			snap, err := app.openSnapshot()
			if err != nil {
				return err
			}
			defer snap.Close()

			fmt.Printf("Snapshot: %s\n", snap.Path())

			source, at, err := snap.LastRefresh()
			if err != nil {
				return err
			}
			if at.IsZero() {
				fmt.Println("Refresh:  never (run 'teampulse refresh')")
			} else {
				fmt.Printf("Refresh:  %s from %s\n", at.Format(time.RFC3339), source)
			}

			stats, err := snap.Stats()
			if err != nil {
				return err
			}
			fmt.Printf("Records:  %s\n", stats.String())
			return nil
		},
	}
}
