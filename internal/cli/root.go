// Package cli wires configuration, storage and the word source into the
// spelltutor commands.
package cli

import (
	"github.com/spf13/cobra"

	"spelltutor/internal/config"
)

// rootOptions are the flags every command shares.
type rootOptions struct {
	configPath string
	logLevel   string
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "spelltutor",
		Short: "A spelling game for kids, in your terminal",
		Long: `spelltutor is a spelling game for young learners. Pick a game mode
and a difficulty, answer ten questions and collect stars.

Available commands:
  play     - Play in this terminal
  serve    - Serve the word API and, optionally, the game over SSH
  scores   - Show the high score and the best games

Examples:
  spelltutor play --offline
  spelltutor serve --http :5000 --ssh :23234
  spelltutor scores -n 5`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotEnv()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML config (default: search ~/.config/spelltutor, ./configs)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(newPlayCmd(opts))
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newScoresCmd(opts))
	return cmd
}
