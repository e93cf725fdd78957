package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendant/signed-assets/pkg/signedassets"
	"github.com/tendant/signed-assets/pkg/signedassets/api"
	"github.com/tendant/signed-assets/pkg/signedassets/signer/hmacsigner"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	signer := hmacsigner.New(
		hmacsigner.WithCredentials("AKID", "test-secret-key-test-secret-key!"),
		hmacsigner.WithBucket("bucket"),
		hmacsigner.WithClock(func() time.Time {
			return time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
		}),
	)
	svc, err := signedassets.New(
		signedassets.WithConfig(signedassets.Config{
			CDNHost:         "cdn.example.com",
			AssetPathPrefix: "/assets/uploads/",
		}),
		signedassets.WithSigner(signer),
	)
	require.NoError(t, err)

	srv := httptest.NewServer(api.NewRewriteHandler(svc).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRewriteContentEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/rewrite", api.RewriteContentRequest{
		Content: `<img src="https://cdn.example.com/assets/uploads/photo.jpg?w=100">`,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out api.RewriteContentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Contains(t, out.Content, "X-Amz-Signature=")
	assert.Contains(t, out.Content, "w=100")
	assert.Contains(t, out.Content, `<img src="`)
}

func TestRewriteContentEndpoint_NoMatches(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/rewrite", api.RewriteContentRequest{Content: "plain text"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out api.RewriteContentResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "plain text", out.Content)
}

func TestRewriteContentEndpoint_BadJSON(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/rewrite", "application/json", bytes.NewBufferString("{"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRewriteURLEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/rewrite-url", api.RewriteURLRequest{
		URL: "https://cdn.example.com/assets/uploads/photo.jpg",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out api.RewriteURLResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Contains(t, out.URL, "X-Amz-Signature=")

	resp = postJSON(t, srv.URL+"/rewrite-url", api.RewriteURLRequest{
		URL: "https://other.example.com/x",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "https://other.example.com/x", out.URL)
}

func TestRequestIDMiddleware(t *testing.T) {
	handler := api.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, api.GetRequestID(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "given")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, "given", rec.Header().Get("X-Request-Id"))
}
