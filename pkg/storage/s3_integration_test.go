//go:build integration

package storage_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"

	"github.com/fleetreach/commworker/pkg/storage"
)

// Integration test configuration for rustfs (S3-compatible storage).
// Start the test infrastructure with: docker-compose up -d
const (
	testEndpoint  = "http://localhost:9000"
	testAccessKey = "admin"
	testSecretKey = "admin123"
	testBucket    = "uploads"
	testRegion    = "us-east-1"
)

func newTestStorage(t *testing.T) *storage.S3Storage {
	t.Helper()

	s, err := storage.New(storage.Config{
		Endpoint:  testEndpoint,
		AccessKey: testAccessKey,
		SecretKey: testSecretKey,
		Bucket:    testBucket,
		Region:    testRegion,
		PathStyle: true,
	})
	require.NoError(t, err, "failed to create storage client")

	return s
}

// seedObject uploads a key directly via the AWS SDK, bypassing storage's
// Get-only port, so Get can be exercised against known fixture data.
func seedObject(t *testing.T, key string, data []byte) {
	t.Helper()

	client := s3.New(s3.Options{}, func(o *s3.Options) {
		o.Region = testRegion
		o.Credentials = credentials.NewStaticCredentialsProvider(testAccessKey, testSecretKey, "")
		o.BaseEndpoint = aws.String(testEndpoint)
		o.UsePathStyle = true
	})

	_, err := client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket: aws.String(testBucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	require.NoError(t, err, "failed to seed fixture object")

	t.Cleanup(func() {
		_, _ = client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
			Bucket: aws.String(testBucket),
			Key:    aws.String(key),
		})
	})
}

func TestS3Integration_Get(t *testing.T) {
	t.Parallel()

	s := newTestStorage(t)
	ctx := context.Background()

	t.Run("retrieve seeded file", func(t *testing.T) {
		t.Parallel()

		key := "test-fixtures/retrieve-me.txt"
		expectedData := []byte("content to retrieve")
		seedObject(t, key, expectedData)

		reader, err := s.Get(ctx, key)
		require.NoError(t, err)
		defer reader.Close()

		data, err := io.ReadAll(reader)
		require.NoError(t, err)
		require.Equal(t, expectedData, data)
	})

	t.Run("get non-existent file returns error", func(t *testing.T) {
		t.Parallel()

		_, err := s.Get(ctx, "non-existent-key-12345")
		require.Error(t, err)
		require.ErrorIs(t, err, storage.ErrNotFound)
	})
}
