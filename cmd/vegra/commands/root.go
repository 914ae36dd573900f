// ABOUTME: Root command, global flags, and logger setup for the Vegra CLI
// ABOUTME: Every subcommand shares the config loaded here
package commands

import (
	"github.com/harper/vegra/internal/logger"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	quiet      bool
	format     string
	configPath string
)

const banner = `
██╗   ██╗███████╗ ██████╗ ██████╗  █████╗
██║   ██║██╔════╝██╔════╝ ██╔══██╗██╔══██╗
██║   ██║█████╗  ██║  ███╗██████╔╝███████║
╚██╗ ██╔╝██╔══╝  ██║   ██║██╔══██╗██╔══██║
 ╚████╔╝ ███████╗╚██████╔╝██║  ██║██║  ██║
  ╚═══╝  ╚══════╝ ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vegra",
		Short: "Russian-language voice assistant",
		Long: banner + `

Vegra turns short Russian utterances into actions: it opens
applications, searches the web, tells the time and date, and chats.
Rule tables catch commands first; a trained classifier handles the rest.

Run 'vegra train' once before the first conversation.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			switch {
			case verbose:
				level = "debug"
			case quiet:
				level = "error"
			}
			return logger.Initialize(level, "console")
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only log errors")
	cmd.PersistentFlags().StringVar(&format, "format", "auto", "Output format: auto, table, json")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./vegra.yaml or $XDG_CONFIG_HOME/vegra/vegra.yaml)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewSayCmd())
	cmd.AddCommand(NewTrainCmd())
	cmd.AddCommand(NewIntentsCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewStateCmd())
	cmd.AddCommand(NewSyncCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
