package signedassets

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileQuery_MergesOriginalParams(t *testing.T) {
	signed := "https://bucket.s3.amazonaws.com/photo.jpg?X-Amz-Signature=s&X-Amz-Expires=3600"
	original := "https://cdn.example.com/assets/uploads/photo.jpg?w=100&h=50"

	out := reconcileQuery(signed, original)

	u, err := url.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "bucket.s3.amazonaws.com", u.Host)
	assert.Equal(t, "/photo.jpg", u.Path)

	q := u.Query()
	assert.Equal(t, "s", q.Get("X-Amz-Signature"))
	assert.Equal(t, "3600", q.Get("X-Amz-Expires"))
	assert.Equal(t, "100", q.Get("w"))
	assert.Equal(t, "50", q.Get("h"))
}

func TestReconcileQuery_SignatureKeysWin(t *testing.T) {
	signed := "https://bucket.s3.amazonaws.com/photo.jpg?X-Amz-Expires=3600&X-Amz-Signature=s"
	original := "https://cdn.example.com/assets/uploads/photo.jpg?X-Amz-Expires=1&w=100"

	out := reconcileQuery(signed, original)

	u, err := url.Parse(out)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "3600", q.Get("X-Amz-Expires"))
	assert.Equal(t, "100", q.Get("w"))
}

func TestReconcileQuery_NoDuplicateKeys(t *testing.T) {
	signed := "https://bucket.s3.amazonaws.com/photo.jpg?X-Amz-Signature=s"
	original := "https://cdn.example.com/photo.jpg?w=100&w=200&X-Amz-Signature=forged"

	out := reconcileQuery(signed, original)

	_, query, _ := strings.Cut(out, "?")
	assert.Equal(t, 1, strings.Count(query, "X-Amz-Signature="))
	assert.Equal(t, 1, strings.Count(query, "w="))
	// Last-seen value wins for a repeated original key.
	assert.Contains(t, query, "w=200")
	assert.Contains(t, query, "X-Amz-Signature=s")
}

func TestReconcileQuery_OriginalOverlaysNonSignatureKeys(t *testing.T) {
	signed := "https://bucket.s3.amazonaws.com/photo.jpg?v=signer&X-Amz-Signature=s"
	original := "https://cdn.example.com/photo.jpg?v=7"

	out := reconcileQuery(signed, original)
	_, query, _ := strings.Cut(out, "?")

	// The original's value replaces the signed one but keeps the signed
	// URL's position for the key.
	assert.True(t, strings.HasPrefix(query, "v=7&"), "query %q", query)
}

func TestReconcileQuery_NormalizesEntityAmpersands(t *testing.T) {
	signed := "https://bucket.s3.amazonaws.com/photo.jpg?X-Amz-Signature=s"
	original := "https://cdn.example.com/photo.jpg?w=100&amp;h=50"

	out := reconcileQuery(signed, original)

	u, err := url.Parse(out)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "100", q.Get("w"))
	assert.Equal(t, "50", q.Get("h"))
	assert.NotContains(t, out, "amp;")
}

func TestReconcileQuery_StripsEncodedSemicolonArtifacts(t *testing.T) {
	signed := "https://bucket.s3.amazonaws.com/photo.jpg?X-Amz-Signature=s"
	original := "https://cdn.example.com/photo.jpg?w=100%3B&h=50%3b"

	out := reconcileQuery(signed, original)

	u, err := url.Parse(out)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "100", q.Get("w"))
	assert.Equal(t, "50", q.Get("h"))
}

func TestReconcileQuery_MalformedOriginalFailsClosed(t *testing.T) {
	signed := "https://bucket.s3.amazonaws.com/photo.jpg?X-Amz-Signature=s"
	original := "https://cdn.example.com/photo.jpg?w=1\x7f"

	// An unparseable original drops its query; the signed URL alone is
	// still a valid reference.
	assert.Equal(t, signed, reconcileQuery(signed, original))
}

func TestReconcileQuery_MalformedSignedReturnedVerbatim(t *testing.T) {
	out := reconcileQuery("not a url at all", "https://cdn.example.com/photo.jpg?w=1")
	assert.Equal(t, "not a url at all", out)
}

func TestReconcileQuery_OriginalWithoutQuery(t *testing.T) {
	signed := "https://bucket.s3.amazonaws.com/photo.jpg?X-Amz-Signature=s"
	original := "https://cdn.example.com/photo.jpg"

	assert.Equal(t, signed, reconcileQuery(signed, original))
}

func TestParseQueryPairs(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		pairs []queryPair
	}{
		{
			name:  "ordered",
			raw:   "b=2&a=1",
			pairs: []queryPair{{"b", "2"}, {"a", "1"}},
		},
		{
			name:  "repeated key keeps first position, last value",
			raw:   "a=1&b=2&a=3",
			pairs: []queryPair{{"a", "3"}, {"b", "2"}},
		},
		{
			name:  "decodes escapes",
			raw:   "name=a%2Fb&flag",
			pairs: []queryPair{{"name", "a/b"}, {"flag", ""}},
		},
		{
			name:  "empty segments skipped",
			raw:   "&&a=1&",
			pairs: []queryPair{{"a", "1"}},
		},
		{
			name: "empty query",
			raw:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.pairs, parseQueryPairs(tt.raw))
		})
	}
}
