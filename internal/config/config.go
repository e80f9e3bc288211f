// Package config loads the worker's process configuration from the
// environment via caarlos0/env, the same library and embedding pattern used
// throughout this module's leaf packages (pkg/db, pkg/mailer/resend,
// internal/adapter/twilio, pkg/logger). Load fails fast on a missing
// required value rather than falling back to a guessed default.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/fleetreach/commworker/internal/adapter/twilio"
	"github.com/fleetreach/commworker/pkg/db"
	"github.com/fleetreach/commworker/pkg/logger"
	"github.com/fleetreach/commworker/pkg/mailer/resend"
)

// Config is the worker process's complete configuration, assembled from the
// environment at startup.
type Config struct {
	CentralDB db.Config
	Resend    resend.Config
	Twilio    twilio.Config
	Sentry    logger.SentryConfig
	Storage   StorageConfig

	Queue     QueueConfig
	Scheduler SchedulerConfig

	// ShutdownTimeout bounds how long the supervisor waits for in-flight
	// handlers and sweeps to finish during graceful drain.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// QueueConfig configures the job queue engine (pkg/queue).
type QueueConfig struct {
	PollInterval      time.Duration `env:"POLL_INTERVAL_MS" envDefault:"5000ms"`
	MaxConcurrentJobs int           `env:"MAX_CONCURRENT_JOBS" envDefault:"5"`
	RetryDelay        time.Duration `env:"RETRY_DELAY_MINUTES" envDefault:"5m"`
	MaxRetries        int           `env:"MAX_RETRIES" envDefault:"3"`
}

// SchedulerConfig configures the proactive scheduler (pkg/scheduler).
type SchedulerConfig struct {
	ServiceReminderHourUTC   int           `env:"SERVICE_REMINDER_HOUR_UTC" envDefault:"8"`
	InvoiceReminderHourUTC   int           `env:"INVOICE_REMINDER_HOUR_UTC" envDefault:"8"`
	AppointmentInterval      time.Duration `env:"APPOINTMENT_CONFIRMATION_INTERVAL_MS" envDefault:"1h"`
	StuckJobCheckInterval    time.Duration `env:"STUCK_JOB_CHECK_INTERVAL" envDefault:"5m"`
	StuckJobVisibilityWindow time.Duration `env:"STUCK_JOB_VISIBILITY_TIMEOUT" envDefault:"15m"`
}

// StorageConfig holds the attachment object store's environment-sourced
// settings; cmd/worker maps these onto pkg/storage.Config, which carries no env
// tags of its own since it is also constructed directly by callers that
// don't source it from the process environment.
type StorageConfig struct {
	Bucket    string `env:"STORAGE_BUCKET"`
	Region    string `env:"STORAGE_REGION" envDefault:"us-east-1"`
	AccessKey string `env:"STORAGE_ACCESS_KEY"`
	SecretKey string `env:"STORAGE_SECRET_KEY"`
	Endpoint  string `env:"STORAGE_ENDPOINT"`
}

// Load parses the process environment into a Config, returning an error on
// any missing required field (CentralDB.ConnectionString) or malformed
// value.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
