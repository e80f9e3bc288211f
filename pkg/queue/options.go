package queue

import (
	"io"
	"log/slog"
	"time"
)

// Option configures an Engine.
type Option func(*options)

type options struct {
	pollInterval      time.Duration
	maxConcurrentJobs int
	retryDelay        time.Duration
	maxRetries        int
	logger            *slog.Logger
}

func defaultOptions() *options {
	return &options{
		pollInterval:      5 * time.Second,
		maxConcurrentJobs: 5,
		retryDelay:        5 * time.Minute,
		maxRetries:        3,
		logger:            slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithPollInterval sets how often the engine ticks when it is not already
// at capacity. Default: 5s (POLL_INTERVAL_MS).
func WithPollInterval(d time.Duration) Option {
	return func(o *options) { o.pollInterval = d }
}

// WithMaxConcurrentJobs bounds in-flight handlers. Default: 5 (MAX_CONCURRENT_JOBS).
func WithMaxConcurrentJobs(n int) Option {
	return func(o *options) { o.maxConcurrentJobs = n }
}

// WithRetryDelay sets the fixed retry backoff. Default: 5m (RETRY_DELAY_MINUTES).
func WithRetryDelay(d time.Duration) Option {
	return func(o *options) { o.retryDelay = d }
}

// WithMaxRetries sets the default max_retries new jobs are stamped with, and
// the retry ceiling this engine enforces on claimed jobs whose own
// max_retries is zero. Default: 3 (MAX_RETRIES).
func WithMaxRetries(n int) Option {
	return func(o *options) { o.maxRetries = n }
}

// WithLogger sets the engine's logger. Default: discard.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.logger = log }
}
