// Package queue implements the job queue engine: it drains
// communication_jobs while respecting concurrency limits, quiet hours,
// retry policy, and the SMS→email fallback rule.
//
// # Lifecycle
//
//	engine := queue.New(store, gateway, registry, depsFactory,
//	    queue.WithMaxConcurrentJobs(5),
//	    queue.WithPollInterval(5*time.Second),
//	)
//	if err := engine.Start(ctx); err != nil { ... }
//	defer engine.Stop(context.Background())
//
// Start launches the polling loop in a background goroutine and returns
// immediately. Stop is cooperative: it halts polling and waits (up to the
// caller's context deadline) for in-flight handlers to finish.
//
// # Handlers
//
// Handlers are a small closed set (send_email, send_sms, notify_customer)
// implemented as a dispatch table keyed by job type rather than a class
// hierarchy — see [Registry]. A handler is a stateless function with the
// contract (job, deps) -> (Result, error); the engine owns retry, deferral,
// and terminal-state bookkeeping so handlers never touch the job row.
package queue
