package echoserver

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"github.com/giantswarm/vtpool"
	"github.com/giantswarm/vtpool/internal/sentinel"
)

// DefaultAddr is the listen address used when Config.Addr is empty.
const DefaultAddr = "127.0.0.1:7007"

// ErrAlreadyStarted is returned by Start on a server that is already
// listening.
const ErrAlreadyStarted = sentinel.Error("echo server already started")

// Config configures a Server.
type Config struct {
	// Addr is the TCP listen address. Defaults to DefaultAddr.
	Addr string

	// Logger defaults to slog.Default() with component=echoserver.
	Logger *slog.Logger
}

// Stats counts connections handed to the pool.
type Stats struct {
	Accepted uint64 // dispatched through Execute
	Rejected uint64 // refused by Execute and closed
}

// Server is a line echo server whose work runs entirely on a ThreadPool.
type Server struct {
	cfg  Config
	pool vtpool.ThreadPool
	log  *slog.Logger

	mu sync.Mutex
	ln net.Listener

	accepted atomic.Uint64
	rejected atomic.Uint64
}

// New returns a Server that will run on pool. The server owns the pool's
// lifecycle: Start starts it and Stop stops and joins it.
//
// Panics if pool is nil.
func New(cfg Config, pool vtpool.ThreadPool) *Server {
	if pool == nil {
		panic("echoserver: pool must not be nil")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default().With("component", "echoserver")
	}
	return &Server{cfg: cfg, pool: pool, log: log}
}

// Start starts the pool, binds the listener and submits the accept loop as
// a pool task. On any failure the pool is stopped again.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ln != nil {
		return ErrAlreadyStarted
	}

	if err := s.pool.Start(); err != nil {
		return fmt.Errorf("start echo server: %w", err)
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		_ = s.pool.Stop()
		return fmt.Errorf("listen on %s: %w", s.cfg.Addr, err)
	}

	if err := s.pool.Execute(s.acceptLoop(ln)); err != nil {
		_ = ln.Close()
		_ = s.pool.Stop()
		return fmt.Errorf("submit accept loop: %w", err)
	}

	s.ln = ln
	s.log.Info("echo server listening", "addr", ln.Addr().String())
	return nil
}

// Addr returns the bound listen address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Stop stops the pool, which closes the listener and every connection, and
// then joins it. ctx bounds the join only. Stop before Start is a no-op.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	started := s.ln != nil
	s.mu.Unlock()
	if !started {
		return nil
	}

	if err := s.pool.Stop(); err != nil {
		return fmt.Errorf("stop echo server: %w", err)
	}
	if err := s.pool.Join(ctx); err != nil {
		return fmt.Errorf("join echo server: %w", err)
	}
	s.log.Info("echo server stopped", "accepted", s.accepted.Load(), "rejected", s.rejected.Load())
	return nil
}

// Stats returns connection counters.
func (s *Server) Stats() Stats {
	return Stats{
		Accepted: s.accepted.Load(),
		Rejected: s.rejected.Load(),
	}
}

func (s *Server) acceptLoop(ln net.Listener) vtpool.Task {
	return func(ctx context.Context) {
		stop := context.AfterFunc(ctx, func() { _ = ln.Close() })
		defer stop()
		defer func() { _ = ln.Close() }()

		for {
			conn, err := ln.Accept()
			if err != nil {
				if ctx.Err() == nil && !errors.Is(err, net.ErrClosed) {
					s.log.Warn("accept failed", "error", err)
				}
				return
			}
			s.dispatch(conn)
		}
	}
}

// dispatch hands conn to the pool, closing it if the pool refuses.
func (s *Server) dispatch(conn net.Conn) {
	if err := s.pool.Execute(s.serveConn(conn)); err != nil {
		s.rejected.Add(1)
		s.log.Debug("connection rejected", "remote", conn.RemoteAddr().String(), "error", err)
		_ = conn.Close()
		return
	}
	s.accepted.Add(1)
}

func (s *Server) serveConn(conn net.Conn) vtpool.Task {
	return func(ctx context.Context) {
		stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
		defer stop()
		defer func() { _ = conn.Close() }()

		sc := bufio.NewScanner(conn)
		w := bufio.NewWriter(conn)
		for sc.Scan() {
			_, _ = w.Write(sc.Bytes())
			_ = w.WriteByte('\n')
			if err := w.Flush(); err != nil {
				return
			}
		}
		if err := sc.Err(); err != nil && ctx.Err() == nil && !errors.Is(err, net.ErrClosed) {
			s.log.Debug("connection read failed", "remote", conn.RemoteAddr().String(), "error", err)
		}
	}
}
