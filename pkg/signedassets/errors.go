package signedassets

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrNotConfigured indicates the rewrite pipeline is missing required
	// configuration (hosts, path prefix, or a signer) and operates as a no-op
	ErrNotConfigured = errors.New("asset signing not configured")

	// ErrCredentialsMissing indicates empty access key or secret key material
	ErrCredentialsMissing = errors.New("storage credentials missing")

	// ErrConfigMissing indicates a missing bucket or region
	ErrConfigMissing = errors.New("storage configuration missing")

	// ErrSigningFailed indicates the underlying presign call failed
	ErrSigningFailed = errors.New("signing failed")

	// ErrMalformedURL indicates a URL could not be parsed
	ErrMalformedURL = errors.New("malformed url")
)

// SignError represents an error signing a single object reference
type SignError struct {
	Key string
	Op  string
	Err error
}

func (e *SignError) Error() string {
	return fmt.Sprintf("sign operation %s failed for object key %s: %v", e.Op, e.Key, e.Err)
}

func (e *SignError) Unwrap() error {
	return e.Err
}
