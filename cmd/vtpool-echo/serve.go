package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/spf13/cobra"

	"github.com/giantswarm/vtpool"
	"github.com/giantswarm/vtpool/internal/echoserver"
)

func newServeCmd() *cobra.Command {
	v := newViper()
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the echo server until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("bind flags: %w", err)
			}
			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			log := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			vtpool.SetLogger(log.With("component", "vtpool"))
			return serve(cmd.Context(), cfg, log, nil)
		},
	}

	flags := cmd.Flags()
	flags.StringP(keyConfig, "c", "", "optional YAML config file")
	flags.String(keyAddr, echoserver.DefaultAddr, "TCP listen address")
	flags.String(keyName, vtpool.DefaultName, "pool name used in logs and errors")
	flags.Duration(keyJoinTimeout, vtpool.DefaultJoinTimeout, "bound on the shutdown join; 0 waits until every connection has closed")
	flags.String(keyLogLevel, "info", "log level: debug, info, warn or error")

	return cmd
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// serve runs the echo server until ctx is canceled, then stops and joins
// the pool. onReady, if set, receives the bound address once the listener
// answers.
func serve(ctx context.Context, cfg config, log *slog.Logger, onReady func(net.Addr)) error {
	pool := vtpool.New(cfg.poolOptions(log)...)
	srv := echoserver.New(echoserver.Config{Addr: cfg.Addr, Logger: log}, pool)

	if err := srv.Start(); err != nil {
		return err
	}

	addr := srv.Addr()
	if err := echoserver.WaitReady(ctx, echoserver.WaitReadyConfig{
		Addr:     addr.String(),
		Interval: echoserver.DefaultReadyInterval,
		Timeout:  echoserver.DefaultReadyTimeout,
		Logger:   log,
	}); err != nil {
		_ = srv.Stop(context.WithoutCancel(ctx))
		return err
	}
	if onReady != nil {
		onReady(addr)
	}

	<-ctx.Done()
	log.Info("shutting down", "pool", cfg.Name, "cause", context.Cause(ctx))

	// Join is bounded by the pool's join timeout, not by the canceled ctx.
	if err := srv.Stop(context.WithoutCancel(ctx)); err != nil {
		return err
	}
	stats := pool.Stats()
	log.Info("shutdown complete",
		"pool", cfg.Name,
		"submitted", stats.Submitted,
		"completed", stats.Completed,
		"late_starts", stats.LateStarts,
		"panicked", stats.Panicked,
	)
	return nil
}
