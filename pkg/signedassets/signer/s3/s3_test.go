package s3

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/signed-assets/pkg/signedassets"
)

// Presigning is a local cryptographic computation: no network round trip
// happens once the client is constructed with static credentials, so these
// tests run offline.

func TestNew_Configuration(t *testing.T) {
	t.Run("EmptyBucket", func(t *testing.T) {
		_, err := New(Config{Region: "us-east-1"})
		require.Error(t, err)
		assert.ErrorIs(t, err, signedassets.ErrConfigMissing)
	})

	t.Run("EmptyRegion", func(t *testing.T) {
		_, err := New(Config{Bucket: "test-bucket"})
		require.Error(t, err)
		assert.ErrorIs(t, err, signedassets.ErrConfigMissing)
	})

	t.Run("Complete", func(t *testing.T) {
		signer, err := New(Config{
			Region:          "us-east-1",
			Bucket:          "test-bucket",
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
		})
		require.NoError(t, err)
		assert.NotNil(t, signer)
	})
}

func TestSignObjectURL_MissingCredentials(t *testing.T) {
	signer, err := New(Config{Region: "us-east-1", Bucket: "test-bucket"})
	require.NoError(t, err)

	_, err = signer.SignObjectURL(context.Background(), "photo.jpg", time.Hour)
	require.Error(t, err)
	assert.ErrorIs(t, err, signedassets.ErrCredentialsMissing)
}

func TestSignObjectURL_PresignedShape(t *testing.T) {
	signer, err := New(Config{
		Region:          "us-east-1",
		Bucket:          "test-bucket",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
	})
	require.NoError(t, err)

	out, err := signer.SignObjectURL(context.Background(), "/dir/photo.jpg", 30*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Contains(t, u.Path, "dir/photo.jpg")

	q := u.Query()
	for _, marker := range []string{
		"X-Amz-Algorithm",
		"X-Amz-Credential",
		"X-Amz-Date",
		"X-Amz-Expires",
		"X-Amz-SignedHeaders",
		"X-Amz-Signature",
	} {
		assert.NotEmpty(t, q.Get(marker), "missing %s", marker)
	}
	assert.Equal(t, "1800", q.Get("X-Amz-Expires"))
}

func TestSignObjectURL_CustomEndpoint(t *testing.T) {
	signer, err := New(Config{
		Region:          "us-east-1",
		Bucket:          "test-bucket",
		AccessKeyID:     "test-key",
		SecretAccessKey: "test-secret",
		Endpoint:        "https://minio.internal:9000",
		UsePathStyle:    true,
	})
	require.NoError(t, err)

	out, err := signer.SignObjectURL(context.Background(), "photo.jpg", time.Hour)
	require.NoError(t, err)

	u, err := url.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, "minio.internal:9000", u.Host)
	assert.Equal(t, "/test-bucket/photo.jpg", u.Path)
}
