package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fleetreach/commworker/pkg/central"
	"github.com/fleetreach/commworker/pkg/content"
	"github.com/fleetreach/commworker/pkg/tenant"
)

// Scheduler runs the proactive sweeps that synthesise communication_jobs
// rows from tenant DMS state, plus the reclaim-stuck-jobs recovery task.
type Scheduler struct {
	store    *central.Store
	gateway  *tenant.Gateway
	renderer *content.Renderer
	opts     *options

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
	wg      sync.WaitGroup
}

// New creates a Scheduler.
func New(store *central.Store, gateway *tenant.Gateway, renderer *content.Renderer, opts ...Option) *Scheduler {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Scheduler{store: store, gateway: gateway, renderer: renderer, opts: o}
}

// Start launches every sweep task and the reclaim-stuck-jobs task in the
// background and returns immediately. Each task runs once immediately, then
// again at its own cadence.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	s.started = true

	tasks := []struct {
		name string
		run  func(context.Context)
	}{
		{"service_reminders", s.runDailyUTC("service_reminders", s.opts.serviceReminderHourUTC, s.sweepServiceReminders)},
		{"appointment_confirmations", s.runFixedInterval("appointment_confirmations", s.opts.appointmentInterval, s.sweepAppointmentConfirmations)},
		{"invoice_reminders", s.runDailyUTC("invoice_reminders", s.opts.invoiceReminderHourUTC, s.sweepInvoiceReminders)},
		{"reclaim_stuck_jobs", s.runFixedInterval("reclaim_stuck_jobs", s.opts.stuckJobCheckInterval, s.reclaimStuckJobs)},
	}

	s.wg.Add(len(tasks))
	for _, task := range tasks {
		go func(run func(context.Context)) {
			defer s.wg.Done()
			run(runCtx)
		}(task.run)
	}

	go func() {
		s.wg.Wait()
		close(s.done)
	}()

	s.opts.logger.Info("scheduler started", slog.Int("tasks", len(tasks)))
	return nil
}

// Stop halts every task and waits for the current sweep (if any) to finish,
// bounded by ctx's deadline.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return ErrNotStarted
	}
	s.cancel()
	done := s.done
	s.started = false
	s.mu.Unlock()

	select {
	case <-done:
		s.opts.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runDailyUTC returns a task loop that fires once immediately, then at the
// next occurrence of hourUTC:00 every day, computed with robfig/cron.
func (s *Scheduler) runDailyUTC(name string, hourUTC int, sweep func(context.Context) error) func(context.Context) {
	schedule, err := cron.ParseStandard(dailyCronSpec(hourUTC))
	if err != nil {
		// dailyCronSpec already maps an out-of-range hour to midnight, so
		// this parse does not fail in practice; the fallback to midnight UTC
		// keeps a background goroutine from panicking regardless.
		schedule, _ = cron.ParseStandard(dailyCronSpec(0))
	}

	return func(ctx context.Context) {
		s.runOnce(ctx, name, sweep)
		for {
			next := schedule.Next(time.Now().UTC())
			timer := time.NewTimer(time.Until(next))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				s.runOnce(ctx, name, sweep)
			}
		}
	}
}

// runFixedInterval returns a task loop that fires once immediately, then
// every interval thereafter.
func (s *Scheduler) runFixedInterval(name string, interval time.Duration, sweep func(context.Context) error) func(context.Context) {
	return func(ctx context.Context) {
		s.runOnce(ctx, name, sweep)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.runOnce(ctx, name, sweep)
			}
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, name string, sweep func(context.Context) error) {
	if err := sweep(ctx); err != nil {
		s.opts.logger.Error("sweep failed", slog.String("task", name), slog.Any("error", err))
	}
}

func dailyCronSpec(hourUTC int) string {
	if hourUTC < 0 || hourUTC > 23 {
		hourUTC = 0
	}
	return fmt.Sprintf("0 %d * * *", hourUTC)
}
