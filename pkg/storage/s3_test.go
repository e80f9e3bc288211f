package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		cfg := Config{
			Bucket:    "test-bucket",
			AccessKey: "test-access-key",
			SecretKey: "test-secret-key",
		}

		store, err := New(cfg)
		require.NoError(t, err)
		require.NotNil(t, store)
		require.NotNil(t, store.client)
		require.Equal(t, DefaultRegion, store.cfg.Region)
	})

	t.Run("custom endpoint", func(t *testing.T) {
		t.Parallel()
		cfg := Config{
			Bucket:    "test-bucket",
			AccessKey: "test-access-key",
			SecretKey: "test-secret-key",
			Endpoint:  "http://localhost:9000",
			PathStyle: true,
		}

		store, err := New(cfg)
		require.NoError(t, err)
		require.NotNil(t, store)
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()
		cfg := Config{} // Missing required fields.

		store, err := New(cfg)
		require.Error(t, err)
		require.ErrorIs(t, err, ErrInvalidConfig)
		require.Nil(t, store)
	})
}
