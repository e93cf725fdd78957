package signedassets

import (
	"context"
	"time"
)

// URLSigner issues time-limited signed URLs for storage objects.
type URLSigner interface {
	// SignObjectURL returns an absolute URL granting temporary read access
	// to the object identified by objectKey. Implementations strip any
	// leading path separator from objectKey before signing (object keys
	// are relative, not absolute paths) and fall back to DefaultTTL when
	// ttl is not positive. A failure is reported through the error return;
	// implementations never panic.
	SignObjectURL(ctx context.Context, objectKey string, ttl time.Duration) (string, error)
}
