//go:build integration

// Package testutil provides shared helpers for integration test packages.
package testutil

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"testing"
	"time"

	"github.com/giantswarm/vtpool"
	"github.com/giantswarm/vtpool/internal/echoserver"
)

// shutdownTimeout bounds Stop+Join of the shared server in TestMain.
const shutdownTimeout = 30 * time.Second

// Env is the shared fixture created by SetupAndRun.
type Env struct {
	Pool   vtpool.Pool
	Server *echoserver.Server
}

// Addr returns the echo server address.
func (e *Env) Addr() string {
	return e.Server.Addr().String()
}

// SetupTestLogging configures slog based on the VTPOOL_LOG_LEVEL environment variable.
// This only affects test runs - the library itself inherits the application's logging config.
func SetupTestLogging() {
	levelStr := os.Getenv("VTPOOL_LOG_LEVEL")
	if levelStr == "" {
		levelStr = "INFO"
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))

	vtpool.SetLogger(slog.Default().With("component", "vtpool"))
}

// stop stops and joins the shared server.
func (e *Env) stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Server.Stop(ctx)
}

// RunTestMain sets up signal handling for graceful shutdown, runs all tests,
// then stops the shared server. Returns the exit code.
func RunTestMain(m *testing.M, env *Env) int {
	sigCh := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigCh:
			signal.Stop(sigCh) // Restore default handler so a second signal force-kills
			fmt.Fprintf(os.Stderr, "\nReceived %s, shutting down...\n", sig)
			if err := env.stop(); err != nil {
				fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
			}
			os.Exit(1)
		case <-done:
			return
		}
	}()

	code := m.Run()

	signal.Stop(sigCh)
	close(done)
	if err := env.stop(); err != nil {
		fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
		if code == 0 {
			code = 1
		}
	}

	return code
}

// SetupAndRun handles the standard TestMain boilerplate: flag parsing, logging
// setup, starting a shared echo server on a loopback port, waiting for it to
// answer, test execution and shutdown. The fixture is assigned to *env so
// tests can reference it. This function calls os.Exit and never returns.
func SetupAndRun(m *testing.M, env *Env, name string, opts ...vtpool.Option) {
	flag.Parse()
	SetupTestLogging()

	pool := vtpool.New(append([]vtpool.Option{vtpool.WithName(name)}, opts...)...)
	srv := echoserver.New(echoserver.Config{Addr: "127.0.0.1:0"}, pool)
	if err := srv.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "start echo server: %v\n", err)
		os.Exit(1)
	}
	*env = Env{Pool: pool, Server: srv}

	ctx, cancel := context.WithTimeout(context.Background(), echoserver.DefaultReadyTimeout)
	err := echoserver.WaitReady(ctx, echoserver.WaitReadyConfig{
		Addr:     env.Addr(),
		Interval: echoserver.DefaultReadyInterval,
		Timeout:  echoserver.DefaultReadyTimeout,
	})
	cancel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "echo server not ready: %v\n", err)
		_ = env.stop()
		os.Exit(1)
	}

	os.Exit(RunTestMain(m, env))
}
