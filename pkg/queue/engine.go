package queue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fleetreach/commworker/pkg/central"
	"github.com/fleetreach/commworker/pkg/logger"
	"github.com/fleetreach/commworker/pkg/tenant"
)

// Engine polls communication_jobs for claimable work and dispatches each
// claimed job to its registered Handler, applying the quiet-hours gate and
// the retry/fallback policy described in the design before the job reaches
// a terminal state.
type Engine struct {
	store    *central.Store
	gateway  *tenant.Gateway
	registry *Registry
	deps     DepsFactory
	opts     *options

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}

	inFlight atomic.Int64
	wg       sync.WaitGroup
}

// DepsFactory builds the per-job Deps for a resolved tenant config. Callers
// normally construct one closing over a *messenger.Registry and an
// AttachmentFetcher; see New's doc comment for the expected shape.
type DepsFactory func(cfg central.TenantConfig) (Deps, error)

// New creates an Engine. depsFactory resolves tenant-scoped senders (email,
// SMS) for each job; a typical implementation closes over a
// *messenger.Registry:
//
//	queue.New(store, gateway, registry, func(cfg central.TenantConfig) (queue.Deps, error) {
//	    email, err := messengers.EmailSender(cfg)
//	    if err != nil { return queue.Deps{}, err }
//	    sms, err := messengers.SMSSender(cfg)
//	    if err != nil { return queue.Deps{}, err }
//	    return queue.Deps{EmailSender: email, SMSSender: sms, Attachments: fetcher}, nil
//	})
func New(store *central.Store, gateway *tenant.Gateway, registry *Registry, depsFactory DepsFactory, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Engine{
		store:    store,
		gateway:  gateway,
		registry: registry,
		deps:     depsFactory,
		opts:     o,
	}
}

// Start launches the poll loop in the background and returns immediately.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return ErrAlreadyStarted
	}

	runCtx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.done = make(chan struct{})
	e.started = true

	go e.run(runCtx)

	e.opts.logger.Info("queue engine started",
		slog.Duration("poll_interval", e.opts.pollInterval),
		slog.Int("max_concurrent_jobs", e.opts.maxConcurrentJobs))
	return nil
}

// Stop halts polling and waits for in-flight handlers to finish, bounded by
// ctx's deadline.
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.Lock()
	if !e.started {
		e.mu.Unlock()
		return ErrNotStarted
	}
	e.cancel()
	done := e.done
	e.started = false
	e.mu.Unlock()

	select {
	case <-done:
		e.opts.logger.Info("queue engine stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("queue: stop: %w", ctx.Err())
	}
}

func (e *Engine) run(ctx context.Context) {
	defer close(e.done)

	ticker := time.NewTicker(e.opts.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.wg.Wait()
			return
		case <-ticker.C:
			e.pollOnce(ctx)
		}
	}
}

func (e *Engine) pollOnce(ctx context.Context) {
	available := e.opts.maxConcurrentJobs - int(e.inFlight.Load())
	if available <= 0 {
		return
	}

	jobs, err := e.store.ClaimPending(ctx, available)
	if err != nil {
		e.opts.logger.Error("claim pending jobs failed", slog.Any("error", err))
		return
	}

	for _, job := range jobs {
		e.inFlight.Add(1)
		e.wg.Add(1)
		go func(j central.Job) {
			defer e.wg.Done()
			defer e.inFlight.Add(-1)
			e.process(ctx, j)
		}(job)
	}
}

func (e *Engine) process(ctx context.Context, job central.Job) {
	ctx = logger.WithJobID(ctx, fmt.Sprintf("%d", job.ID))
	ctx = logger.WithTenantID(ctx, job.TenantID)
	jobLogger := e.opts.logger.With(slog.Int64("job_id", job.ID), slog.String("tenant_id", job.TenantID), slog.String("job_type", string(job.JobType)))

	cfg, err := e.gateway.GetTenantConfig(ctx, job.TenantID)
	if err != nil {
		e.fail(ctx, job, jobLogger, fmt.Errorf("resolve tenant config: %w", err))
		return
	}

	if !job.IsUrgent() {
		if quiet, nextAllowed := quietHoursGate(cfg.QuietHoursStart, cfg.QuietHoursEnd, time.Now()); quiet {
			if err := e.store.Reschedule(ctx, job.ID, job.RetryCount, nextAllowed, "deferred for quiet hours", central.StatusPending); err != nil {
				jobLogger.Error("defer for quiet hours failed", slog.Any("error", err))
			} else {
				jobLogger.Info("deferred for quiet hours", slog.Time("next_allowed", nextAllowed))
			}
			return
		}
	}

	handler, ok := e.registry.Get(job.JobType)
	if !ok {
		if err := e.store.MarkFailed(ctx, job.ID, ErrUnknownJobType.Error(), central.StatusFailed); err != nil {
			jobLogger.Error("mark failed failed", slog.Any("error", err))
			return
		}
		jobLogger.Error("job failed terminally", slog.Any("error", ErrUnknownJobType))
		return
	}

	deps, err := e.deps(cfg)
	if err != nil {
		e.fail(ctx, job, jobLogger, fmt.Errorf("resolve messengers: %w", err))
		return
	}
	deps.TenantConfig = cfg
	deps.Gateway = e.gateway
	deps.Logger = jobLogger

	result, err := handler(ctx, job, deps)
	if err != nil {
		e.fail(ctx, job, jobLogger, err)
		return
	}

	note := ""
	if result.Skipped {
		note = result.Reason
	}
	if err := e.store.MarkComplete(ctx, job.ID, note); err != nil {
		jobLogger.Error("mark complete failed", slog.Any("error", err))
		return
	}
	if result.Skipped {
		jobLogger.Info("job skipped", slog.String("reason", result.Reason))
	} else {
		jobLogger.Info("job completed")
	}
}

// fail applies the retry/terminal failure policy to a handler (or
// pre-dispatch) error. A job whose attempts remain below its own
// max_retries is rescheduled after the engine's fixed retry delay; a job at
// or past its ceiling goes terminal, with send_sms jobs attempting the
// SMS->email fallback described in the design before failing for good.
func (e *Engine) fail(ctx context.Context, job central.Job, log *slog.Logger, cause error) {
	attempts := job.RetryCount + 1

	if attempts < job.MaxRetries {
		processAfter := time.Now().Add(e.opts.retryDelay)
		if err := e.store.Reschedule(ctx, job.ID, attempts, processAfter, cause.Error(), central.StatusPending); err != nil {
			log.Error("reschedule retry failed", slog.Any("error", err))
			return
		}
		log.Warn("job failed, retry scheduled", slog.Any("error", cause), slog.Int("attempt", attempts), slog.Time("process_after", processAfter))
		return
	}

	if job.JobType == central.JobTypeSendSMS {
		if noFallback := e.fallbackToEmail(ctx, job, log, cause, attempts); noFallback != "" {
			if err := e.store.MarkFailed(ctx, job.ID, noFallback, central.StatusFailed); err != nil {
				log.Error("mark failed failed", slog.Any("error", err))
				return
			}
			log.Error("job failed terminally", slog.String("reason", noFallback), slog.Int("attempts", attempts))
			return
		}
		return
	}

	if err := e.store.MarkFailed(ctx, job.ID, cause.Error(), central.StatusFailed); err != nil {
		log.Error("mark failed failed", slog.Any("error", err))
		return
	}
	log.Error("job failed terminally", slog.Any("error", cause), slog.Int("attempts", attempts))
}

// fallbackToEmail attempts to queue a companion send_email job for an
// exhausted send_sms job, per the design's SMS->email fallback. Returns ""
// if it handled the terminal transition itself (success or a fallback
// attempt that itself failed); otherwise returns the literal no-fallback
// diagnostic the caller should record as the job's terminal last_error (no
// customer_id to look up, or no email on file).
func (e *Engine) fallbackToEmail(ctx context.Context, job central.Job, log *slog.Logger, cause error, attempts int) string {
	payload, err := job.DecodeSMSPayload()
	if err != nil || payload.CustomerID == "" {
		return fmt.Sprintf("SMS failed, no fallback email for customer %s", payload.CustomerID)
	}

	contact, err := e.gateway.FetchCustomerContact(ctx, job.TenantID, payload.CustomerID)
	if err != nil || contact.Email == "" {
		return fmt.Sprintf("SMS failed, no fallback email for customer %s", payload.CustomerID)
	}

	subject := payload.Subject
	if subject == "" {
		subject = "Notification"
	}

	fallbackRef := fmt.Sprintf("sms_fallback_%d", job.ID)
	_, skipped, err := e.store.InsertJob(ctx, central.InsertJobParams{
		TenantID: job.TenantID,
		JobType:  central.JobTypeSendEmail,
		Payload: central.EmailPayload{
			To:              contact.Email,
			Subject:         subject,
			Body:            payload.Body,
			CustomerID:      payload.CustomerID,
			SourceReference: fallbackRef,
			SourceJobID:     job.ID,
		},
		SourceReference: fallbackRef,
		MaxRetries:      job.MaxRetries,
	})
	if err != nil {
		log.Error("sms fallback email enqueue failed", slog.Any("error", err))
		if markErr := e.store.MarkFailed(ctx, job.ID, cause.Error(), central.StatusFailed); markErr != nil {
			log.Error("mark failed failed", slog.Any("error", markErr))
		}
		return ""
	}

	note := fmt.Sprintf("sms failed after %d attempts (%v); fallback email queued to %s", attempts, cause, contact.Email)
	if skipped {
		note = fmt.Sprintf("sms failed after %d attempts (%v); fallback email already queued", attempts, cause)
	}
	if err := e.store.MarkFailed(ctx, job.ID, note, central.StatusFailedFallbackEmail); err != nil {
		log.Error("mark failed (fallback) failed", slog.Any("error", err))
	} else {
		log.Warn("sms exhausted, fell back to email", slog.String("fallback_to", contact.Email))
	}
	return ""
}
