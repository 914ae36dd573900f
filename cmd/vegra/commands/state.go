// ABOUTME: Commands to inspect and clear stored conversation state
// ABOUTME: Each session keeps only its last resolved intent
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewStateCmd creates the state command group
func NewStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect stored sessions",
		Long: `Inspect or clear the remembered intent of each session.

The state backend (memory, sqlite, redis, charm) comes from config.`,
	}

	cmd.AddCommand(newStateListCmd())
	cmd.AddCommand(newStateResetCmd())

	return cmd
}

func newStateListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sessions and their last intent",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			sessions, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing sessions: %w", err)
			}

			if useJSON() {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(sessions)
			}

			if len(sessions) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SESSION\tINTENT\tUPDATED")
			for _, s := range sessions {
				tag := string(s.Tag)
				if tag == "" {
					tag = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", truncate(s.ID, 40), tag, formatTime(s.UpdatedAt))
			}
			return w.Flush()
		},
	}
}

func newStateResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <session>",
		Short: "Forget a session's last intent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, err := openStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("resetting session: %w", err)
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Session %s reset\n", args[0])
			}
			return nil
		},
	}
}
