package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"hybridchat/internal/config"
	"hybridchat/internal/log"
	"hybridchat/internal/relay"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("relay exited")
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	v := config.New()
	cmd := &cobra.Command{
		Use:          "relay",
		Short:        "In-memory relay for hybridchat envelopes",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.BindFlags(v, cmd.Flags(), map[string]string{
				"addr":     "server.addr",
				"log-file": "server.log_file",
			}); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return errors.Wrap(err, "load config")
			}
			return serve(cmd.Context(), cfg)
		},
	}
	f := cmd.Flags()
	f.String("addr", "", "listen address (default :8080)")
	f.String("log-file", "", "also write JSON logs to this file, rotated")
	f.String("log-level", "", "log level: debug, info, warn, error")
	f.String("home", "", "directory holding config.yaml")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return errors.WithStack(err)
	}
	logger := log.New(log.WithLevel(level), log.WithComponent("relay"))
	if cfg.Server.LogFile != "" {
		logger, err = log.NewFile(log.FileConfig{Path: cfg.Server.LogFile}, log.WithLevel(level), log.WithComponent("relay"))
		if err != nil {
			return errors.Wrap(err, "open log file")
		}
		defer logger.Close()
	}
	log.SetGlobalLogger(logger)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           relay.NewServer(logger.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("relay listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrapf(err, "listen on %s", srv.Addr)
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return errors.Wrap(srv.Shutdown(shutdownCtx), "shutdown")
}
