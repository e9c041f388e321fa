package echoserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/giantswarm/vtpool/internal/sentinel"
)

// ErrIntervalNotPositive indicates a non-positive poll interval.
const ErrIntervalNotPositive = sentinel.Error("interval must be positive")

// ErrTimeoutNotPositive indicates a non-positive timeout.
const ErrTimeoutNotPositive = sentinel.Error("timeout must be positive")

// Default readiness polling parameters.
const (
	DefaultReadyInterval = 20 * time.Millisecond
	DefaultReadyTimeout  = 5 * time.Second
)

// WaitReadyConfig configures WaitReady.
type WaitReadyConfig struct {
	Addr     string        // host:port to dial
	Interval time.Duration // poll interval
	Timeout  time.Duration // overall timeout
	Logger   *slog.Logger  // optional, defaults to slog.Default()
}

// WaitReady polls until a TCP dial to cfg.Addr succeeds, the timeout elapses
// or ctx ends. Each probe connection is closed immediately.
func WaitReady(ctx context.Context, cfg WaitReadyConfig) error {
	if cfg.Addr == "" {
		return errors.New("wait ready: addr must not be empty")
	}
	if cfg.Interval <= 0 {
		return fmt.Errorf("wait for %s: %w", cfg.Addr, ErrIntervalNotPositive)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("wait for %s: %w", cfg.Addr, ErrTimeoutNotPositive)
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	var dialer net.Dialer
	// The condition runs sequentially, so attempt needs no synchronization.
	attempt := 0
	if err := wait.PollUntilContextTimeout(ctx, cfg.Interval, cfg.Timeout, true,
		func(pollCtx context.Context) (bool, error) {
			attempt++
			conn, err := dialer.DialContext(pollCtx, "tcp", cfg.Addr)
			if err != nil {
				return false, nil
			}
			_ = conn.Close()
			log.Debug("listener ready", "addr", cfg.Addr, "attempt", attempt)
			return true, nil
		}); err != nil {
		return fmt.Errorf("wait for %s after %d attempts: %w", cfg.Addr, attempt, err)
	}
	return nil
}
