package queue

import (
	"context"
	"log/slog"

	"github.com/fleetreach/commworker/pkg/central"
	"github.com/fleetreach/commworker/pkg/mailer"
	"github.com/fleetreach/commworker/pkg/sms"
	"github.com/fleetreach/commworker/pkg/tenant"
)

// AttachmentFetcher resolves a storage key into bytes, consumed by
// send_email before attaching payload.attachments entries that carry a
// storage_key rather than inline bytes. A fetch failure is an ordinary
// handler error: it flows through the standard retry/failure path rather
// than a distinct error kind.
type AttachmentFetcher interface {
	Fetch(ctx context.Context, storageKey string) ([]byte, error)
}

// Deps are the capabilities a handler needs, resolved by the engine before
// dispatch. Handlers are stateless: everything they need arrives here or in
// the job itself.
type Deps struct {
	TenantConfig central.TenantConfig
	Gateway      *tenant.Gateway
	EmailSender  mailer.Sender
	SMSSender    sms.Sender
	Attachments  AttachmentFetcher
	Logger       *slog.Logger
}

// Result is a handler's success outcome. A handler may report Skipped with
// a Reason (e.g. "customer opted out") instead of treating the condition as
// an error; the job still completes, with Reason recorded as the
// completion note.
type Result struct {
	Skipped bool
	Reason  string
}

// Handler dispatches one job_type. Returning an error puts the job through
// the engine's retry/fallback path; returning a Result completes the job.
type Handler func(ctx context.Context, job central.Job, deps Deps) (Result, error)

// Registry is the job_type -> Handler dispatch table.
type Registry struct {
	handlers map[central.JobType]Handler
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[central.JobType]Handler)}
}

// Register adds or replaces the handler for jobType.
func (r *Registry) Register(jobType central.JobType, h Handler) {
	r.handlers[jobType] = h
}

// Get returns the handler for jobType, or false if none is registered.
func (r *Registry) Get(jobType central.JobType) (Handler, bool) {
	h, ok := r.handlers[jobType]
	return h, ok
}
