// Package tenant hides the central-vs-tenant database split from the queue
// engine and scheduler.
//
// [Gateway] combines two process-wide, read-mostly caches: a tenant config
// cache (backed by pkg/cache, populated lazily from the central store) and
// a tenant DMS connection pool map (populated lazily via
// pkg/db.OpenTenantPool). Both publish new entries atomically so concurrent
// readers never observe a half-initialized pool — the only process-wide
// mutable state this module's core carries, per its concurrency model.
//
// Candidate finders ([Gateway.ServiceReminderCandidates],
// [Gateway.AppointmentsInConfirmationWindow], [Gateway.PastDueInvoices]) run
// parameterized, read-only queries against a tenant's DMS and perform no
// writes; the scheduler is the only caller.
package tenant
