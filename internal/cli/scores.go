package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"spelltutor/internal/scoring"
)

func newScoresCmd(root *rootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show the high score and the best games",
		Long: `Display the stored high score and the top games from the configured store.

Examples:
  spelltutor scores
  spelltutor scores -n 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), root, false)
			if err != nil {
				return err
			}
			defer a.Close()

			high, err := a.scores.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("error reading high score: %w", err)
			}
			entries, err := a.history.Top(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("error retrieving scores: %w", err)
			}
			printScores(cmd.OutOrStdout(), high, entries)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of games to show")
	return cmd
}

func printScores(w io.Writer, high int, entries []scoring.ResultEntry) {
	fmt.Fprintln(w, "High Scores - spelltutor")
	fmt.Fprintln(w)

	if len(entries) == 0 {
		fmt.Fprintln(w, "No games recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'spelltutor play' to set the first high score!")
		return
	}

	fmt.Fprintf(w, "  %-4s  %-16s  %-6s  %-8s  %-10s  %-5s  %s\n", "Rank", "Player", "Score", "Mode", "Difficulty", "Stars", "Date")
	fmt.Fprintf(w, "  %-4s  %-16s  %-6s  %-8s  %-10s  %-5s  %s\n", "----", "------", "-----", "----", "----------", "-----", "----")
	for i, e := range entries {
		fmt.Fprintf(w, "  %-4d  %-16s  %-6d  %-8s  %-10s  %-5s  %s\n",
			i+1, truncate(e.Player, 16), e.Score, e.Mode, e.Difficulty,
			strings.Repeat("*", e.Stars), e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "High score: %d\n", high)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
