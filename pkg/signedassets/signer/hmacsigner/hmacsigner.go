// Package hmacsigner provides a local, deterministic URLSigner for
// development and tests. It emits the same six presign query parameters a
// SigV4 presigned URL carries, with the signature value computed as a
// plain HMAC-SHA256 over the request path and expiry. URLs it produces
// are not honored by real storage services.
package hmacsigner

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tendant/signed-assets/pkg/signedassets"
)

// Signer generates HMAC-signed URLs shaped like SigV4 presigned URLs
type Signer struct {
	accessKeyID string
	secretKey   []byte
	bucket      string
	region      string
	baseURL     string
	now         func() time.Time
}

// New creates a new Signer with the given options
func New(opts ...Option) *Signer {
	s := &Signer{
		region: "us-east-1",
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SignObjectURL implements signedassets.URLSigner. The host is the
// configured base URL, or the bucket's virtual-hosted S3 address when only
// a bucket is set.
func (s *Signer) SignObjectURL(ctx context.Context, objectKey string, ttl time.Duration) (string, error) {
	if s.accessKeyID == "" || len(s.secretKey) == 0 {
		return "", &signedassets.SignError{Key: objectKey, Op: "sign", Err: signedassets.ErrCredentialsMissing}
	}
	if s.bucket == "" && s.baseURL == "" {
		return "", &signedassets.SignError{Key: objectKey, Op: "sign", Err: signedassets.ErrConfigMissing}
	}

	key := strings.TrimLeft(objectKey, "/")
	if ttl <= 0 {
		ttl = signedassets.DefaultTTL
	}

	base := s.baseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s.bucket, s.region)
	}

	t := s.now().UTC()
	amzDate := t.Format("20060102T150405Z")
	scope := t.Format("20060102") + "/" + s.region + "/s3/aws4_request"
	expires := strconv.Itoa(int(ttl.Seconds()))
	path := "/" + key

	payload := strings.Join([]string{"GET", path, amzDate, expires}, "\n")
	mac := hmac.New(sha256.New, s.secretKey)
	mac.Write([]byte(payload))
	signature := hex.EncodeToString(mac.Sum(nil))

	q := url.Values{}
	q.Set("X-Amz-Algorithm", "AWS4-HMAC-SHA256")
	q.Set("X-Amz-Credential", s.accessKeyID+"/"+scope)
	q.Set("X-Amz-Date", amzDate)
	q.Set("X-Amz-Expires", expires)
	q.Set("X-Amz-SignedHeaders", "host")
	q.Set("X-Amz-Signature", signature)

	return base + path + "?" + q.Encode(), nil
}
