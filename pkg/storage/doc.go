// Package storage provides read access to S3-compatible object storage for
// previously-stored attachments.
//
// The worker never uploads or deletes attachments itself — tenants' own
// systems stage attachment bytes at a storage key before enqueueing a job
// that references it — so this package exposes a Get-only Storage port.
// pkg/queue's attachment fetcher is the sole caller.
//
// # Basic Usage
//
//	cfg := storage.Config{
//		Bucket:    "my-bucket",
//		Region:    "us-east-1",
//		AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
//		SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
//	}
//
//	store, err := storage.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	rc, err := store.Get(ctx, storageKey)
//	if err != nil {
//		// errors.Is(err, storage.ErrNotFound)
//	}
//	defer rc.Close()
//
// # Configuration
//
//	type Config struct {
//		Bucket    string // STORAGE_BUCKET
//		AccessKey string // STORAGE_ACCESS_KEY
//		SecretKey string // STORAGE_SECRET_KEY
//		Endpoint  string // STORAGE_ENDPOINT (for MinIO/custom S3)
//		Region    string // STORAGE_REGION (default: us-east-1)
//		PathStyle bool   // path-style URLs (for MinIO); no env var, cmd/worker leaves it false
//	}
package storage
