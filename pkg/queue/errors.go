package queue

import "errors"

var (
	// ErrAlreadyStarted is returned by Start when the engine is already running.
	ErrAlreadyStarted = errors.New("queue: engine already started")

	// ErrNotStarted is returned by Stop when the engine is not running.
	ErrNotStarted = errors.New("queue: engine not started")

	// ErrUnknownJobType is returned when a claimed job's job_type has no
	// registered handler. The job is failed immediately; this indicates a
	// deployment skew, not a transient condition worth retrying.
	ErrUnknownJobType = errors.New("queue: no handler registered for job type")

	// ErrMissingContact is the MissingContactError kind from the design:
	// a required to/from/email/phone value was absent. Treated like any
	// other handler error for retry purposes.
	ErrMissingContact = errors.New("queue: required contact datum missing")

	// ErrDoNotContact names notify_customer's authoritative opt-out outcome.
	// NotifyCustomerHandler does not return it: it reports the opt-out as a
	// skipped Result, so the job completes normally with the reason recorded.
	ErrDoNotContact = errors.New("queue: customer has opted out of contact")
)
