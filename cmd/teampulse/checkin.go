package main

import (
	"fmt"

	"teampulse/backend"
	"teampulse/internal/dates"
	"teampulse/internal/ingest"
	"teampulse/internal/utils"

	"github.com/spf13/cobra"
)

// newCheckin assembles a check-in record ready to append. CreatedAt is
// stored already canonical; ingestion re-normalizes every date-bearing
// field on refresh, so a timestamp here would read back as a different
// value than the one mirrored into the snapshot.
func newCheckin(member, date, yesterday, todayPlan, blockers string, mood int) backend.Checkin {
	return backend.Checkin{
		ID:        ingest.EnsureID(""),
		Member:    member,
		Date:      date,
		Yesterday: yesterday,
		Today:     todayPlan,
		Blockers:  blockers,
		Mood:      mood,
		CreatedAt: today(),
	}
}

func newCheckinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Record and list daily check-ins",
	}

	cmd.AddCommand(newCheckinAddCmd())
	cmd.AddCommand(newCheckinListCmd())

	return cmd
}

func newCheckinAddCmd() *cobra.Command {
	var (
		yesterday string
		todayWork string
		blockers  string
		moodScore int
		date      string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record today's check-in",
		Example: `  teampulse checkin add --yesterday "shipped parser fix" --today "review queue" --mood 4
  teampulse checkin add --today "on-call" --blockers "waiting on staging access"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp()

			member, err := app.member(cmd)
			if err != nil {
				return err
			}
			if moodScore < 0 || moodScore > 5 {
				return fmt.Errorf("mood must be between 1 and 5 (or 0 to skip)")
			}

			checkinDate := today()
			if date != "" {
				checkinDate = dates.NormalizeDate(date)
				if checkinDate == "" {
					return fmt.Errorf("unrecognized date %q", date)
				}
			}

			checkin := newCheckin(member, checkinDate, yesterday, todayWork, blockers, moodScore)

			if err := app.appendRecord(func(s backend.StatusStore) error {
				return s.AppendCheckin(checkin)
			}); err != nil {
				return err
			}

			fmt.Printf("Checked in as %s for %s\n", member, checkinDate)
			return nil
		},
	}

	cmd.Flags().StringVar(&yesterday, "yesterday", "", "what you did yesterday")
	cmd.Flags().StringVar(&todayWork, "today", "", "what you plan to do today")
	cmd.Flags().StringVar(&blockers, "blockers", "", "anything blocking you")
	cmd.Flags().IntVar(&moodScore, "mood", 0, "mood score 1 (rough) to 5 (great)")
	cmd.Flags().StringVar(&date, "date", "", "check-in date (defaults to today)")
	cmd.Flags().String("member", "", "record under this member name")

	return cmd
}

func newCheckinListCmd() *cobra.Command {
	var (
		memberFilter string
		limit        int
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent check-ins from the local snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp()

			snap, err := app.openSnapshot()
			if err != nil {
				return err
			}
			defer snap.Close()

			checkins, err := snap.FetchCheckins()
			if err != nil {
				return err
			}
			if len(checkins) == 0 {
				return utils.ErrEmptySnapshot()
			}

			var filtered []backend.Checkin
			for _, c := range checkins {
				if memberFilter != "" && c.Member != memberFilter {
					continue
				}
				filtered = append(filtered, c)
			}
			if limit > 0 && len(filtered) > limit {
				filtered = filtered[len(filtered)-limit:]
			}

			if asJSON {
				return utils.OutputJSON(filtered)
			}

			for _, c := range filtered {
				printCheckin(c)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&memberFilter, "member", "", "only show this member")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "show at most this many check-ins")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	return cmd
}

func printCheckin(c backend.Checkin) {
	date := c.Date
	if date == "" {
		date = "????-??-??"
	}
	moodNote := ""
	if c.Mood > 0 {
		moodNote = fmt.Sprintf(" (mood %d/5)", c.Mood)
	}
	fmt.Printf("%s  %s%s\n", date, c.Member, moodNote)
	if c.Yesterday != "" {
		fmt.Printf("  yesterday: %s\n", c.Yesterday)
	}
	if c.Today != "" {
		fmt.Printf("  today:     %s\n", c.Today)
	}
	if c.Blockers != "" {
		fmt.Printf("  blockers:  %s\n", c.Blockers)
	}
}
