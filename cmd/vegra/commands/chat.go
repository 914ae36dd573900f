// ABOUTME: Interactive conversation loop over console speech boundaries
// ABOUTME: Holds the previous intent in memory and feeds it into every turn
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harper/vegra/internal/classifier"
	"github.com/harper/vegra/internal/core"
	"github.com/harper/vegra/internal/models"
	"github.com/harper/vegra/internal/session"
	"github.com/harper/vegra/internal/voice"
	"github.com/spf13/cobra"
)

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start a conversation",
		Long: `Start an interactive conversation.

Type one utterance per line. Say "пока" to finish.

Examples:
  vegra chat
  echo "который час" | vegra chat`,
		RunE: runChat,
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime()
	if err != nil {
		return err
	}
	if !rt.trained {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), core.NotTrainedText)
		return classifier.ErrNotTrained
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	listener := voice.NewConsoleListener(cmd.InOrStdin(), cmd.OutOrStdout(), "Вы: ")
	speaker := voice.NewConsoleSpeaker(cmd.OutOrStdout(), "Вегра: ")
	return converse(ctx, rt.assistant, listener, speaker)
}

// converse runs turns until a farewell, end of input, or cancellation
func converse(ctx context.Context, responder session.Responder, listener voice.Listener, speaker voice.Speaker) error {
	if err := speaker.Speak(core.Greeting, true); err != nil {
		return err
	}

	var previous models.Tag
	for {
		text, _, err := listener.Listen(ctx)
		if errors.Is(err, voice.ErrClosed) || ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return fmt.Errorf("listening: %w", err)
		}

		result := responder.ResolveAndRespond(ctx, text, previous)
		previous = result.Tag
		if err := speaker.Speak(result.Text, true); err != nil {
			return err
		}
		if result.Exit {
			return nil
		}
	}
}
