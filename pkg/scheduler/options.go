package scheduler

import (
	"io"
	"log/slog"
	"time"
)

// Option configures a Scheduler.
type Option func(*options)

type options struct {
	serviceReminderHourUTC   int
	invoiceReminderHourUTC   int
	appointmentInterval      time.Duration
	stuckJobCheckInterval    time.Duration
	stuckJobVisibilityWindow time.Duration
	logger                   *slog.Logger
}

func defaultOptions() *options {
	return &options{
		serviceReminderHourUTC:   8,
		invoiceReminderHourUTC:   8,
		appointmentInterval:      time.Hour,
		stuckJobCheckInterval:    5 * time.Minute,
		stuckJobVisibilityWindow: 15 * time.Minute,
		logger:                   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithServiceReminderHourUTC sets the UTC hour (0-23) the daily service
// reminder sweep runs at. Default: 8 (SERVICE_REMINDER_HOUR_UTC).
func WithServiceReminderHourUTC(hour int) Option {
	return func(o *options) { o.serviceReminderHourUTC = hour }
}

// WithInvoiceReminderHourUTC sets the UTC hour (0-23) the daily invoice
// reminder sweep runs at. Default: 8 (INVOICE_REMINDER_HOUR_UTC).
func WithInvoiceReminderHourUTC(hour int) Option {
	return func(o *options) { o.invoiceReminderHourUTC = hour }
}

// WithAppointmentConfirmationInterval sets the fixed period between
// appointment-confirmation sweeps. Default: 1h (APPOINTMENT_CONFIRMATION_INTERVAL_MS).
func WithAppointmentConfirmationInterval(d time.Duration) Option {
	return func(o *options) { o.appointmentInterval = d }
}

// WithStuckJobCheckInterval sets how often the reclaim-stuck-jobs task runs.
// Default: 5m (STUCK_JOB_CHECK_INTERVAL).
func WithStuckJobCheckInterval(d time.Duration) Option {
	return func(o *options) { o.stuckJobCheckInterval = d }
}

// WithStuckJobVisibilityWindow sets the processing-row age beyond which the
// reclaim task returns a job to pending. Default: 15m (STUCK_JOB_VISIBILITY_TIMEOUT).
func WithStuckJobVisibilityWindow(d time.Duration) Option {
	return func(o *options) { o.stuckJobVisibilityWindow = d }
}

// WithLogger sets the scheduler's logger. Default: discard.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.logger = log }
}
