package central

import "errors"

var (
	// ErrTenantNotFound is returned when a tenant_configs row does not exist
	// for the requested tenant_id.
	ErrTenantNotFound = errors.New("central: tenant not found")

	// ErrJobNotFound is returned when a communication_jobs row does not
	// exist for the requested id.
	ErrJobNotFound = errors.New("central: job not found")

	// ErrInsertJob wraps failures from InsertJob that are not the
	// idempotent-skip case.
	ErrInsertJob = errors.New("central: failed to insert job")

	// ErrClaimPending wraps failures from ClaimPending.
	ErrClaimPending = errors.New("central: failed to claim pending jobs")
)
