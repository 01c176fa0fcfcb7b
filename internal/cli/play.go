package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"spelltutor/internal/effects"
	"spelltutor/internal/tui"
)

type playOptions struct {
	name    string
	age     int
	offline bool
	quiet   bool
}

func newPlayCmd(root *rootOptions) *cobra.Command {
	opts := &playOptions{}

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in this terminal",
		Long: `Play spelltutor in this terminal.

Questions come from the word service at words.url unless --offline is
given, in which case the built-in (or words.catalog) word list is used.
Passing both --name and --age skips the setup screen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "player name")
	cmd.Flags().IntVar(&opts.age, "age", 0, "player age")
	cmd.Flags().BoolVar(&opts.offline, "offline", false, "use the local word list instead of the word service")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "disable sound effects")
	return cmd
}

func runPlay(ctx context.Context, root *rootOptions, opts *playOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.age < 0 {
		return fmt.Errorf("age must be positive, got %d", opts.age)
	}

	a, err := newApp(ctx, root, true)
	if err != nil {
		return err
	}
	defer a.Close()

	provider, err := a.wordProvider(opts.offline)
	if err != nil {
		return err
	}

	var audio effects.AudioPlayer = effects.NewBell(os.Stderr)
	if opts.quiet {
		audio = effects.Silent{}
	}
	sess, celebrator := a.newSession(provider, audio, a.logger)

	a.logger.Info("starting game", "offline", opts.offline, "store", a.cfg.Store.Backend)
	model := tui.NewModel(ctx, sess, celebrator, tui.Options{Name: opts.name, Age: opts.age})
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
