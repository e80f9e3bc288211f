package queue

import (
	"context"
	"fmt"
	"io"

	"github.com/fleetreach/commworker/pkg/storage"
)

// storageAttachmentFetcher adapts pkg/storage.Storage to AttachmentFetcher.
type storageAttachmentFetcher struct {
	store storage.Storage
}

// NewStorageAttachmentFetcher builds an AttachmentFetcher backed by an
// S3-compatible object store.
func NewStorageAttachmentFetcher(store storage.Storage) AttachmentFetcher {
	return &storageAttachmentFetcher{store: store}
}

func (f *storageAttachmentFetcher) Fetch(ctx context.Context, storageKey string) ([]byte, error) {
	rc, err := f.store.Get(ctx, storageKey)
	if err != nil {
		return nil, fmt.Errorf("queue: fetch attachment %q: %w", storageKey, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("queue: read attachment %q: %w", storageKey, err)
	}
	return data, nil
}
