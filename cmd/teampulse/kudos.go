package main

import (
	"fmt"
	"strings"

	"teampulse/backend"
	"teampulse/internal/ingest"
	"teampulse/internal/utils"

	"github.com/spf13/cobra"
)

func newKudosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kudos",
		Short: "Send and browse team kudos",
	}

	cmd.AddCommand(newKudosAddCmd())
	cmd.AddCommand(newKudosReplyCmd())
	cmd.AddCommand(newKudosListCmd())

	return cmd
}

func newKudosAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <to> <message...>",
		Short: "Send a kudo to a teammate",
		Example: `  teampulse kudos add grace "thanks for the late-night deploy help"`,
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp()

			from, err := app.member(cmd)
			if err != nil {
				return err
			}
			to := args[0]
			message := strings.Join(args[1:], " ")

			kudo := backend.Kudo{
				ID:      ingest.EnsureID(""),
				From:    from,
				To:      to,
				Message: message,
				Date:    today(),
			}

			if err := app.appendRecord(func(s backend.StatusStore) error {
				return s.AppendKudo(kudo)
			}); err != nil {
				return err
			}

			fmt.Printf("Kudo sent to %s (id %s)\n", to, kudo.ID)
			return nil
		},
	}

	cmd.Flags().String("member", "", "send under this member name")
	return cmd
}

func newKudosReplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reply <kudo-id> <message...>",
		Short: "Reply to a kudo",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp()

			member, err := app.member(cmd)
			if err != nil {
				return err
			}
			kudoID := args[0]
			message := strings.Join(args[1:], " ")

			// Verify the kudo exists in the snapshot before replying.
			snap, err := app.openSnapshot()
			if err == nil {
				kudos, kerr := snap.FetchKudos()
				snap.Close()
				if kerr == nil && len(kudos) > 0 && !kudoExists(kudos, kudoID) {
					return utils.ErrKudoNotFound(kudoID)
				}
			}

			reply := backend.Reply{
				ID:      ingest.EnsureID(""),
				KudoID:  kudoID,
				Member:  member,
				Message: message,
				Date:    today(),
			}

			if err := app.appendRecord(func(s backend.StatusStore) error {
				return s.AppendReply(reply)
			}); err != nil {
				return err
			}

			fmt.Printf("Reply added to kudo %s\n", kudoID)
			return nil
		},
	}

	cmd.Flags().String("member", "", "reply under this member name")
	return cmd
}

func kudoExists(kudos []backend.Kudo, id string) bool {
	for _, k := range kudos {
		if k.ID == id {
			return true
		}
	}
	return false
}

func newKudosListCmd() *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List kudos with their replies from the local snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			app := NewApp()

			snap, err := app.openSnapshot()
			if err != nil {
				return err
			}
			defer snap.Close()

			kudos, err := snap.FetchKudos()
			if err != nil {
				return err
			}
			if len(kudos) == 0 {
				return utils.ErrEmptySnapshot()
			}
			replies, err := snap.FetchReplies()
			if err != nil {
				return err
			}

			if limit > 0 && len(kudos) > limit {
				kudos = kudos[len(kudos)-limit:]
			}

			if asJSON {
				return utils.OutputJSON(kudos)
			}

			byKudo := make(map[string][]backend.Reply)
			for _, r := range replies {
				byKudo[r.KudoID] = append(byKudo[r.KudoID], r)
			}

			for _, k := range kudos {
				fmt.Printf("%s  %s -> %s: %s  [%s]\n", k.Date, k.From, k.To, k.Message, k.ID)
				for _, r := range byKudo[k.ID] {
					fmt.Printf("    %s %s: %s\n", r.Date, r.Member, r.Message)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "show at most this many kudos")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")

	return cmd
}
