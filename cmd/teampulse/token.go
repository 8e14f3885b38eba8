package main

import (
	"fmt"
	"strings"
	"syscall"

	"teampulse/internal/config"
	"teampulse/internal/credentials"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "token",
		Aliases: []string{"credentials"},
		Short:   "Manage the spreadsheet API token",
		Long: `The API token is resolved in priority order:
  1. System keyring (most secure) - recommended
  2. TEAMPULSE_API_TOKEN environment variable (good for CI)
  3. api_token in the config file (least secure)

Examples:
  # Store the token in the keyring (interactive prompt)
  teampulse token set --prompt

  # Non-interactive
  teampulse token set <token>

  # Show where the token comes from
  teampulse token show

  # Remove the token from the keyring
  teampulse token delete`,
	}

	cmd.AddCommand(newTokenSetCmd())
	cmd.AddCommand(newTokenShowCmd())
	cmd.AddCommand(newTokenDeleteCmd())

	return cmd
}

func newTokenSetCmd() *cobra.Command {
	var prompt bool

	cmd := &cobra.Command{
		Use:   "set [token]",
		Short: "Store the API token in the system keyring",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var token string
			if prompt || len(args) == 0 {
				fmt.Print("API token: ")
				raw, err := term.ReadPassword(int(syscall.Stdin))
				fmt.Println()
				if err != nil {
					return fmt.Errorf("failed to read token: %w", err)
				}
				token = strings.TrimSpace(string(raw))
			} else {
				token = args[0]
			}

			if token == "" {
				return fmt.Errorf("token cannot be empty")
			}

			if !credentials.IsAvailable() {
				return fmt.Errorf("system keyring is not available; use the %s environment variable instead", credentials.EnvTokenVar)
			}

			if err := credentials.SetToken(token); err != nil {
				return err
			}
			fmt.Println("Token stored in system keyring")
			return nil
		},
	}

	cmd.Flags().BoolVar(&prompt, "prompt", false, "read the token interactively")

	return cmd
}

func newTokenShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show which source the API token resolves from",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetConfig()

			token, err := credentials.NewResolver().Resolve(cfg.APIToken)
			if err != nil {
				fmt.Println("No API token configured")
				return nil
			}

			fmt.Printf("Token source: %s\n", token.Source)
			fmt.Printf("Token:        %s\n", maskToken(token.Value))
			return nil
		},
	}
}

func newTokenDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete",
		Aliases: []string{"clear"},
		Short:   "Remove the API token from the system keyring",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := credentials.DeleteToken(); err != nil {
				return err
			}
			fmt.Println("Token removed from system keyring")
			return nil
		},
	}
}

// maskToken shows just enough of a token to recognize it
func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}
