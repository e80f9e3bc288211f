// Package supervisor runs the worker's long-lived components (the job queue
// engine, the proactive scheduler) under a single signal-aware lifecycle,
// mirroring the start/shutdown-hook shape the rest of this module's ambient
// stack uses for its own servers.
package supervisor

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Component is a long-lived background process with its own Start/Stop
// lifecycle, the shape shared by queue.Engine and scheduler.Scheduler.
type Component interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Supervisor starts a fixed set of Components and runs registered shutdown
// hooks (closing pools, flushing logs) once every component has stopped.
type Supervisor struct {
	components      []Component
	shutdownHooks   []func(context.Context) error
	logger          *slog.Logger
	shutdownTimeout time.Duration
	baseCtx         context.Context
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Supervisor) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithShutdownTimeout bounds how long Run waits for components to stop and
// shutdown hooks to finish once a shutdown signal arrives. Defaults to 30s.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Supervisor) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithShutdownHook registers a cleanup function run after all components
// have stopped, in registration order (e.g. closing a pgxpool.Pool).
func WithShutdownHook(fn func(context.Context) error) Option {
	return func(s *Supervisor) {
		if fn != nil {
			s.shutdownHooks = append(s.shutdownHooks, fn)
		}
	}
}

// WithContext sets a custom base context for signal handling, useful in
// tests that need to trigger shutdown without an actual OS signal.
func WithContext(ctx context.Context) Option {
	return func(s *Supervisor) {
		if ctx != nil {
			s.baseCtx = ctx
		}
	}
}

// New builds a Supervisor that runs components in the order given and stops
// them in reverse order during shutdown.
func New(components []Component, opts ...Option) *Supervisor {
	s := &Supervisor{
		components:      components,
		shutdownTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Run starts every component, blocks until SIGINT/SIGTERM (or the base
// context is canceled), then stops components in reverse start order and
// runs shutdown hooks, all bounded by the configured shutdown timeout.
func (s *Supervisor) Run() error {
	baseCtx := s.baseCtx
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(baseCtx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	started := make([]Component, 0, len(s.components))
	for _, c := range s.components {
		if err := c.Start(ctx); err != nil {
			s.logger.Error("component failed to start", slog.Any("error", err))
			s.shutdown(started)
			return err
		}
		started = append(started, c)
	}

	s.logger.Info("worker started", slog.Int("components", len(started)))
	<-ctx.Done()

	s.logger.Info("shutdown signal received")
	return s.shutdown(started)
}

func (s *Supervisor) shutdown(started []Component) error {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer shutdownCancel()

	var errs []error

	for i := len(started) - 1; i >= 0; i-- {
		if err := started[i].Stop(shutdownCtx); err != nil {
			errs = append(errs, err)
			s.logger.Error("component failed to stop", slog.Any("error", err))
		}
	}

	for _, hook := range s.shutdownHooks {
		if err := hook(shutdownCtx); err != nil {
			errs = append(errs, err)
			s.logger.Error("shutdown hook failed", slog.Any("error", err))
		}
	}

	if len(errs) > 0 {
		s.logger.Error("shutdown completed with errors")
		return errors.Join(errs...)
	}

	s.logger.Info("shutdown completed")
	return nil
}
