// ABOUTME: One-shot command that runs a single turn
// ABOUTME: The previous intent is kept per session id in the state store
package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harper/vegra/internal/models"
	"github.com/harper/vegra/internal/session"
	"github.com/spf13/cobra"
)

var saySession string

// sayOutput is the JSON shape of a turn
type sayOutput struct {
	Session string     `json:"session"`
	Text    string     `json:"text"`
	Exit    bool       `json:"exit"`
	Tag     models.Tag `json:"tag,omitempty"`
}

// NewSayCmd creates the say command
func NewSayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "say [utterance]",
		Short: "Run one utterance and print the reply",
		Long: `Run a single utterance through the assistant.

The resolved intent is remembered for the session so the next call
can continue it.

Examples:
  vegra say "найди рецепт борща"
  vegra say "а теперь пельменей"
  vegra say --session kitchen "который час"
  vegra say --format json "открой калькулятор"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runSay,
	}

	cmd.Flags().StringVar(&saySession, "session", "cli", "Conversation id")

	return cmd
}

func runSay(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime()
	if err != nil {
		return err
	}

	store, err := openStore(cmd.Context(), rt.cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	manager := session.NewManager(rt.assistant, store)
	result, err := manager.Turn(cmd.Context(), saySession, strings.Join(args, " "))
	if err != nil {
		return err
	}

	if useJSON() {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(sayOutput{Session: saySession, Text: result.Text, Exit: result.Exit, Tag: result.Tag})
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), result.Text)
	return err
}
