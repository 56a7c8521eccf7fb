package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kireistar/portfolio/internal/clipboard"
	"github.com/kireistar/portfolio/internal/config"
	"github.com/kireistar/portfolio/internal/contact"
	"github.com/kireistar/portfolio/internal/logger"
	"github.com/kireistar/portfolio/internal/store"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	envFile string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "portfolio",
		Short:         "Bintang AI portfolio site",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "Environment file loaded before reading configuration")

	cmd.AddCommand(newServeCmd(flags))
	cmd.AddCommand(newCopyEmailCmd())
	cmd.AddCommand(newPruneCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
}

func newCopyEmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy-email",
		Short: "Copy the contact address to the system clipboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			status := clipboard.NewNotifier(clipboard.System{}).Copy()
			fmt.Fprintln(cmd.OutOrStdout(), status)
			if status != clipboard.TextCopied {
				return errors.New("clipboard unavailable")
			}
			return nil
		},
	}
}

func newPruneCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Delete visitor records older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.envFile)
			if err != nil {
				return err
			}
			st, err := store.Open(cmd.Context(), cfg.DatabasePath)
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.Cleanup(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d visitor records\n", n)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func newRelay(cfg *config.Config) contact.Relay {
	if cfg.Relay.Provider == config.RelaySMTP {
		return contact.NewSMTP(contact.SMTPConfig{
			Host:     cfg.Relay.SMTPHost,
			Port:     cfg.Relay.SMTPPort,
			Username: cfg.Relay.SMTPUser,
			Password: cfg.Relay.SMTPPass,
			To:       cfg.Relay.ToEmail,
			Timeout:  cfg.Relay.Timeout,
		})
	}
	return contact.NewWeb3Forms(cfg.Relay.URL, cfg.Relay.AccessKey, cfg.Relay.Timeout)
}

func runServe(ctx context.Context, flags *rootFlags) error {
	cfg, err := config.Load(flags.envFile)
	if err != nil {
		return err
	}

	log, closer, err := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, File: cfg.Log.File})
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer closer.Close()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer st.Close()

	adm, err := newAdmin(log, st, cfg.Admin.Username, cfg.Admin.Password)
	if err != nil {
		return err
	}
	go adm.cleanup(ctx)

	srv := newServer(log, st, newRelay(cfg), adm, clockwork.NewRealClock(), cfg.SessionTTL)
	go srv.sessions.Run(ctx, time.Minute, func(n int) {
		log.Debug().Int("removed", n).Msg("swept idle sessions")
	})

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", httpServer.Addr).Str("relay", cfg.Relay.Provider).Msg("portfolio listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	return shutdown(log, httpServer)
}

func shutdown(log zerolog.Logger, srv *http.Server) error {
	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
