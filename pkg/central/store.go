package central

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the central database: communication_jobs, tenant_configs, and
// message_templates. All writes to these tables go through Store; nothing
// else in this module holds a *pgxpool.Pool to the central database.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps an already-opened central pool. Use db.Open with WithMigrations
// pointed at this package's Migrations embed.FS to provision the schema
// before constructing a Store.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Pool exposes the underlying pool for callers that need db.Shutdown or
// db.WithTx directly (the scheduler's dedup insert needs no transaction of
// its own beyond InsertJob's).
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

const claimPendingQuery = `
WITH claimed AS (
	SELECT id FROM communication_jobs
	WHERE status = 'pending' AND process_after <= now()
	ORDER BY created_at ASC, id ASC
	LIMIT $1
	FOR UPDATE SKIP LOCKED
)
UPDATE communication_jobs j
SET status = 'processing', updated_at = now()
FROM claimed
WHERE j.id = claimed.id
RETURNING j.id, j.tenant_id, j.job_type, j.payload, j.status, j.retry_count,
	j.max_retries, j.last_error, j.process_after, j.source_reference,
	j.created_at, j.updated_at, j.completed_at`

// ClaimPending atomically selects up to limit pending, due jobs and
// transitions them to processing in one transaction, skipping rows locked
// by other workers. limit <= 0 returns an empty slice without touching the
// store.
func (s *Store) ClaimPending(ctx context.Context, limit int) ([]Job, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.pool.Query(ctx, claimPendingQuery, limit)
	if err != nil {
		return nil, errors.Join(ErrClaimPending, err)
	}
	defer rows.Close()

	jobs, err := scanJobs(rows)
	if err != nil {
		return nil, errors.Join(ErrClaimPending, err)
	}
	return jobs, nil
}

func scanJobs(rows pgx.Rows) ([]Job, error) {
	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.TenantID, &j.JobType, &j.Payload, &j.Status,
			&j.RetryCount, &j.MaxRetries, &j.LastError, &j.ProcessAfter, &j.SourceReference,
			&j.CreatedAt, &j.UpdatedAt, &j.CompletedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// MarkComplete transitions a job to complete, setting completed_at and an
// optional note (e.g. an opt-out reason) as last_error.
func (s *Store) MarkComplete(ctx context.Context, id int64, note string) error {
	var noteArg *string
	if note != "" {
		noteArg = &note
	}
	_, err := s.pool.Exec(ctx, `
		UPDATE communication_jobs
		SET status = 'complete', completed_at = now(), last_error = $2, updated_at = now()
		WHERE id = $1`, id, noteArg)
	return err
}

// Reschedule updates retry_count, process_after, last_error, and status on
// a job. Used for both retry (status=pending, retry_count incremented) and
// quiet-hour deferral (status=pending, retry_count unchanged).
func (s *Store) Reschedule(ctx context.Context, id int64, retryCount int, processAfter time.Time, lastError string, status Status) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE communication_jobs
		SET status = $2, retry_count = $3, process_after = $4, last_error = $5, updated_at = now()
		WHERE id = $1`, id, status, retryCount, processAfter, lastError)
	return err
}

// MarkFailed applies a terminal failure transition. Callers pass
// StatusFailedFallbackEmail when a fallback companion job was created for
// the originating SMS job.
func (s *Store) MarkFailed(ctx context.Context, id int64, lastError string, status Status) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE communication_jobs
		SET status = $2, last_error = $3, updated_at = now()
		WHERE id = $1`, id, status, lastError)
	return err
}

// InsertJobParams are the arguments to InsertJob.
type InsertJobParams struct {
	TenantID        string
	JobType         JobType
	Payload         any
	ProcessAfter    time.Time // zero value means now()
	SourceReference string    // empty means no idempotency key
	MaxRetries      int       // 0 means a single failing attempt goes terminal immediately
}

// InsertJob inserts a new communication_jobs row. If SourceReference is
// non-empty and a pending, processing or complete row already exists for
// (tenant_id, job_type, source_reference), the insert is skipped and
// skipped=true is returned instead of an error — this is the sole dedup
// mechanism described in the design (callers, namely the scheduler, never
// check for prior output themselves).
func (s *Store) InsertJob(ctx context.Context, p InsertJobParams) (id int64, skipped bool, err error) {
	payload, err := json.Marshal(p.Payload)
	if err != nil {
		return 0, false, errors.Join(ErrInsertJob, err)
	}

	processAfter := p.ProcessAfter
	if processAfter.IsZero() {
		processAfter = time.Now()
	}

	var sourceRef *string
	if p.SourceReference != "" {
		sourceRef = &p.SourceReference
	}

	row := s.pool.QueryRow(ctx, `
		INSERT INTO communication_jobs
			(tenant_id, job_type, payload, status, retry_count, max_retries,
			 process_after, source_reference, created_at, updated_at)
		VALUES ($1, $2, $3, 'pending', 0, $4, $5, $6, now(), now())
		ON CONFLICT (tenant_id, job_type, source_reference)
			WHERE source_reference IS NOT NULL
			  AND status IN ('pending', 'processing', 'complete')
		DO NOTHING
		RETURNING id`,
		p.TenantID, p.JobType, payload, p.MaxRetries, processAfter, sourceRef)

	if err := row.Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, true, nil
		}
		return 0, false, errors.Join(ErrInsertJob, err)
	}
	return id, false, nil
}

// ReclaimStuckJobs returns processing rows whose updated_at is older than
// olderThan back to pending, leaving retry_count untouched (this is a
// recovery, not a failed attempt). Returns the number of rows reclaimed.
func (s *Store) ReclaimStuckJobs(ctx context.Context, olderThan time.Duration) (int64, error) {
	tag, err := s.pool.Exec(ctx, `
		UPDATE communication_jobs
		SET status = 'pending', last_error = 'reclaimed from processing: visibility timeout exceeded', updated_at = now()
		WHERE status = 'processing' AND updated_at < now() - make_interval(secs => $1)`,
		olderThan.Seconds())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// GetTenantConfig reads a single tenant_configs row. Returns ErrTenantNotFound
// if the tenant is unknown. Callers should prefer pkg/tenant's cached
// gateway over calling this directly on every reference.
func (s *Store) GetTenantConfig(ctx context.Context, tenantID string) (TenantConfig, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT tenant_id, twilio_sid, twilio_auth_token, twilio_from_number,
			COALESCE(sms_provider, 'twilio'),
			sendgrid_key, sendgrid_from,
			COALESCE(email_provider, 'resend'), resend_key, resend_from,
			quiet_hours_start, quiet_hours_end, dms_connection_string
		FROM tenant_configs WHERE tenant_id = $1`, tenantID)

	var c TenantConfig
	err := row.Scan(&c.TenantID, &c.TwilioSID, &c.TwilioAuthToken, &c.TwilioFromNumber,
		&c.SMSProvider, &c.SendgridKey, &c.SendgridFrom, &c.EmailProvider,
		&c.ResendKey, &c.ResendFrom, &c.QuietHoursStart, &c.QuietHoursEnd,
		&c.DMSConnectionString)
	if errors.Is(err, pgx.ErrNoRows) {
		return TenantConfig{}, ErrTenantNotFound
	}
	return c, err
}

// ListTenants returns every tenant_configs row. The scheduler calls this at
// the start of each sweep to enumerate tenants; it does not cache the
// result across sweeps.
func (s *Store) ListTenants(ctx context.Context) ([]TenantConfig, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT tenant_id, twilio_sid, twilio_auth_token, twilio_from_number,
			COALESCE(sms_provider, 'twilio'),
			sendgrid_key, sendgrid_from,
			COALESCE(email_provider, 'resend'), resend_key, resend_from,
			quiet_hours_start, quiet_hours_end, dms_connection_string
		FROM tenant_configs ORDER BY tenant_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []TenantConfig
	for rows.Next() {
		var c TenantConfig
		if err := rows.Scan(&c.TenantID, &c.TwilioSID, &c.TwilioAuthToken, &c.TwilioFromNumber,
			&c.SMSProvider, &c.SendgridKey, &c.SendgridFrom, &c.EmailProvider,
			&c.ResendKey, &c.ResendFrom, &c.QuietHoursStart, &c.QuietHoursEnd,
			&c.DMSConnectionString); err != nil {
			return nil, err
		}
		tenants = append(tenants, c)
	}
	return tenants, rows.Err()
}

// GetMessageTemplate reads a message_templates row by event type. found is
// false (not an error) when no row exists, since the renderer falls back to
// a bundled file template in that case.
func (s *Store) GetMessageTemplate(ctx context.Context, eventType string) (tmpl MessageTemplate, found bool, err error) {
	row := s.pool.QueryRow(ctx, `
		SELECT event_type, subject_template, body_template
		FROM message_templates WHERE event_type = $1`, eventType)

	err = row.Scan(&tmpl.EventType, &tmpl.SubjectTemplate, &tmpl.BodyTemplate)
	if errors.Is(err, pgx.ErrNoRows) {
		return MessageTemplate{}, false, nil
	}
	if err != nil {
		return MessageTemplate{}, false, err
	}
	return tmpl, true, nil
}
