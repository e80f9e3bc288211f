package storage

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// Sentinel errors for storage operations.
var (
	// ErrInvalidConfig indicates a required Config field is missing.
	ErrInvalidConfig = errors.New("storage: invalid configuration")

	// ErrNotFound indicates the requested key does not exist in the bucket.
	ErrNotFound = errors.New("storage: file not found")

	// ErrAccessDenied indicates the configured credentials lack access to the key.
	ErrAccessDenied = errors.New("storage: access denied")
)

// wrapS3Error wraps S3 errors with appropriate sentinel errors.
// It checks both API error codes and typed errors for comprehensive error handling.
// Note: Uses %v (not %w) for the original error to normalize error types -
// callers should use errors.Is() with sentinel errors, not errors.As() for AWS types.
func wrapS3Error(err error, fallback error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case "AccessDenied", "Forbidden":
			return fmt.Errorf("%w: %v", ErrAccessDenied, err)
		}
	}

	return fmt.Errorf("%w: %v", fallback, err)
}
