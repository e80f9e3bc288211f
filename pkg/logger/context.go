package logger

import (
	"context"
	"log/slog"
)

type ctxKey int

const (
	tenantIDKey ctxKey = iota
	jobIDKey
)

// WithTenantID returns a context carrying a tenant ID for log correlation.
// The queue engine and scheduler attach this before invoking a handler or
// task so every log line emitted during that unit of work is attributable
// to a tenant.
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantIDKey, tenantID)
}

// WithJobID returns a context carrying a job ID for log correlation.
func WithJobID(ctx context.Context, jobID string) context.Context {
	return context.WithValue(ctx, jobIDKey, jobID)
}

// TenantIDExtractor is a [ContextExtractor] that surfaces the tenant ID
// attached by [WithTenantID].
func TenantIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id, ok := ctx.Value(tenantIDKey).(string)
	if !ok || id == "" {
		return slog.Attr{}, false
	}
	return slog.String("tenant_id", id), true
}

// JobIDExtractor is a [ContextExtractor] that surfaces the job ID attached
// by [WithJobID].
func JobIDExtractor(ctx context.Context) (slog.Attr, bool) {
	id, ok := ctx.Value(jobIDKey).(string)
	if !ok || id == "" {
		return slog.Attr{}, false
	}
	return slog.String("job_id", id), true
}
