// Package central implements the shared store: the durable job queue
// (communication_jobs), tenant configuration (tenant_configs), and the
// default message template table (message_templates).
//
// It is the only package in this module that writes to the central
// database. The queue engine and scheduler both depend on [Store]; neither
// opens a *pgxpool.Pool directly.
//
// # Claiming work
//
// [Store.ClaimPending] is the sole entry point by which a job moves from
// pending to processing. It runs as one transaction using
// "FOR UPDATE SKIP LOCKED" so two workers polling concurrently never
// receive the same row:
//
//	jobs, err := store.ClaimPending(ctx, available)
//
// # Idempotent inserts
//
// [Store.InsertJob] is how both the scheduler and the SMS→email fallback
// path create new jobs. When a source reference is given and a pending,
// processing or complete row already exists for the same (tenant_id, job_type, source_reference),
// the insert is skipped rather than returning a duplicate-key error:
//
//	id, skipped, err := store.InsertJob(ctx, central.InsertJobParams{...})
package central
