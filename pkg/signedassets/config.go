package signedassets

import (
	"strings"
	"time"
)

// DefaultTTL is the validity duration applied to signed URLs when the
// configuration does not specify one.
const DefaultTTL = time.Hour

// Config describes the rewrite surface for one deployment. At least one of
// CDNHost or StorageHost must be set and AssetPathPrefix must be non-empty,
// otherwise the pipeline treats itself as unconfigured and passes content
// through unchanged.
type Config struct {
	// CDNHost is the public CDN-style domain assets are rendered under,
	// e.g. "cdn.example.com". A full base URL such as
	// "https://cdn.example.com/" is accepted and reduced to its host.
	CDNHost string

	// StorageHost is the raw storage-service domain the same assets may
	// appear under, e.g. "my-bucket.s3.us-east-1.amazonaws.com".
	StorageHost string

	// AssetPathPrefix is the path prefix uploaded assets live under,
	// e.g. "/assets/uploads/". Matches are required to fall under it.
	//
	// By default the prefix is stripped when deriving the storage object
	// key: a match on "/assets/uploads/photo.jpg" signs object key
	// "photo.jpg". Set KeepPrefixInKey when the bucket layout mirrors the
	// public path and keys retain the prefix.
	AssetPathPrefix string

	// KeepPrefixInKey retains AssetPathPrefix in derived object keys.
	KeepPrefixInKey bool

	// TTL is the validity duration for signed URLs. Zero or negative
	// values fall back to DefaultTTL.
	TTL time.Duration
}

// hosts returns the configured host names, normalized to bare lowercase
// hosts, in CDN-then-storage order with empties dropped.
func (c Config) hosts() []string {
	var hosts []string
	for _, h := range []string{c.CDNHost, c.StorageHost} {
		if h = normalizeHost(h); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

// prefix returns AssetPathPrefix with a leading slash guaranteed, or ""
// when unset.
func (c Config) prefix() string {
	p := strings.TrimSpace(c.AssetPathPrefix)
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}

// enabled reports whether the configuration is complete enough to rewrite.
func (c Config) enabled() bool {
	return len(c.hosts()) > 0 && c.prefix() != ""
}

// ttl returns the configured TTL, falling back to DefaultTTL.
func (c Config) ttl() time.Duration {
	if c.TTL <= 0 {
		return DefaultTTL
	}
	return c.TTL
}

// normalizeHost reduces a host setting to a bare lowercase host name,
// accepting values with a scheme or trailing path.
func normalizeHost(host string) string {
	h := strings.TrimSpace(strings.ToLower(host))
	for _, scheme := range []string{"https://", "http://"} {
		h = strings.TrimPrefix(h, scheme)
	}
	if i := strings.IndexAny(h, "/?"); i >= 0 {
		h = h[:i]
	}
	return h
}
