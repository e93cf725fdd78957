package hmacsigner

import (
	"strings"
	"time"
)

// Option is a functional option for configuring a Signer
type Option func(*Signer)

// WithCredentials sets the access key ID and the HMAC secret key.
// The secret should be at least 32 bytes.
func WithCredentials(accessKeyID, secretKey string) Option {
	return func(s *Signer) {
		s.accessKeyID = accessKeyID
		s.secretKey = []byte(secretKey)
	}
}

// WithBucket sets the bucket used to derive the virtual-hosted base URL
func WithBucket(bucket string) Option {
	return func(s *Signer) {
		s.bucket = bucket
	}
}

// WithRegion sets the region embedded in the credential scope
// Default is us-east-1 if not specified
func WithRegion(region string) Option {
	return func(s *Signer) {
		s.region = region
	}
}

// WithBaseURL overrides the derived base URL entirely,
// e.g. "https://storage.internal.example.com"
func WithBaseURL(baseURL string) Option {
	return func(s *Signer) {
		s.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithClock overrides the time source, for deterministic output in tests
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		s.now = now
	}
}
