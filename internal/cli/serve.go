package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"spelltutor/internal/config"
	"spelltutor/internal/effects"
	"spelltutor/internal/tui"
	"spelltutor/internal/words"
)

type serveOptions struct {
	httpAddr string
	sshAddr  string
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the word API and, optionally, the game over SSH",
		Long: `Serve the word API the game reads its questions from.

With --ssh (or server.ssh) set, the game itself is also served over SSH;
every connection plays its own game against the in-process word list.

Endpoints:
  GET  /api/word/random?difficulty=easy|medium|hard
  GET  /api/word/letter?letter=A
  POST /api/check/spelling
  GET  /api/stats
  GET  /api/leaderboard
  GET  /health`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.httpAddr, "http", "", "HTTP listen address (default: server.http)")
	cmd.Flags().StringVar(&opts.sshAddr, "ssh", "", "SSH listen address, empty disables (default: server.ssh)")
	return cmd
}

func runServe(cmd *cobra.Command, root *rootOptions, opts *serveOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, root, false)
	if err != nil {
		return err
	}
	defer a.Close()

	httpAddr := a.cfg.Server.HTTP
	if cmd.Flags().Changed("http") {
		httpAddr = opts.httpAddr
	}
	sshAddr := a.cfg.Server.SSH
	if cmd.Flags().Changed("ssh") {
		sshAddr = opts.sshAddr
	}

	catalog, err := a.catalog()
	if err != nil {
		return err
	}
	st := catalog.Stats()
	a.logger.Info("word catalog loaded", "easy", st.Easy, "medium", st.Medium, "hard", st.Hard, "letters", st.Letters)

	g, ctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:              httpAddr,
		Handler:           words.NewServer(catalog, a.history, a.logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	g.Go(func() error {
		a.logger.Info("word API listening", "addr", httpAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.logger.Info("shutting down word API")
		return srv.Shutdown(shutdownCtx)
	})

	if sshAddr != "" {
		newModel := func(ctx context.Context, user string, bell io.Writer) tea.Model {
			logger := a.logger.With("user", user)
			sess, celebrator := a.newSession(catalog, effects.NewBell(bell), logger)
			return tui.NewModel(ctx, sess, celebrator, tui.Options{Name: user})
		}
		sshServer, err := tui.NewSSHServer(tui.SSHServerConfig{
			Address:     sshAddr,
			HostKeyPath: config.ExpandPath(a.cfg.Server.HostKey),
		}, newModel, a.logger)
		if err != nil {
			return err
		}
		g.Go(func() error { return sshServer.Run(ctx) })
	}

	return g.Wait()
}
