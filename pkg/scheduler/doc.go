// Package scheduler periodically sweeps tenant DMS databases for business
// conditions that warrant outbound contact (service due, appointment
// tomorrow, invoice past due) and enqueues deduplicated jobs for the queue
// engine to deliver.
//
// Each task owns its own trigger (a fixed interval, or a daily time-of-day
// parsed with robfig/cron) and runs once immediately on Start, then again at
// every subsequent trigger. A task's failure — for one tenant, or a claim
// against the central store — is logged and never stops the scheduler or
// another task's own cadence.
//
// Deduplication is the central store's job: every enqueue carries a
// source_reference, and pkg/central.Store.InsertJob silently skips a row
// that already has a pending, processing or complete sibling. The scheduler never inspects its
// own prior output.
package scheduler
