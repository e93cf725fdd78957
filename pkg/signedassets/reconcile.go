package signedassets

import (
	"net/url"
	"strings"
)

// queryPair is one decoded query parameter. Parsing keeps pairs in
// first-occurrence order with one value per key.
type queryPair struct {
	key   string
	value string
}

// reconcileQuery merges the query parameters of a freshly signed URL with
// those of the original (pre-rewrite) URL and reassembles the result on
// the signed URL's scheme, host, and path. The signed URL is authoritative
// for all path-level components and for every signature parameter; other
// original parameters overlay signed ones of the same name.
//
// If either input fails to parse, the signed URL is returned unmodified:
// it is still a usable reference on its own, so the merge degrades rather
// than produce a broken link.
func reconcileQuery(signedURL, originalURL string) string {
	su, err := url.Parse(signedURL)
	if err != nil || su.Scheme == "" || su.Host == "" {
		return signedURL
	}
	ou, err := url.Parse(originalURL)
	if err != nil {
		return signedURL
	}

	merged := mergeQueryPairs(
		parseQueryPairs(normalizeRawQuery(su.RawQuery)),
		parseQueryPairs(normalizeRawQuery(ou.RawQuery)),
	)

	base := su.Scheme + "://" + su.Host + su.EscapedPath()
	if len(merged) == 0 {
		return base
	}
	return base + "?" + encodeQueryPairs(merged)
}

// normalizeRawQuery undoes encoding artifacts introduced upstream of the
// rewrite: literal HTML-entity ampersands from HTML-escaped markup, and
// stray percent-encoded semicolons left over from malformed query
// separators.
func normalizeRawQuery(rawQuery string) string {
	return strings.NewReplacer("&amp;", "&", "%3B", "", "%3b", "").Replace(rawQuery)
}

// parseQueryPairs decodes a raw query string into ordered key/value pairs.
// Keys are unique; when a key repeats, the last-seen value wins while the
// first occurrence keeps its position. Segments that fail to decode keep
// their raw text.
func parseQueryPairs(rawQuery string) []queryPair {
	var pairs []queryPair
	index := make(map[string]int)

	for _, seg := range strings.Split(rawQuery, "&") {
		if seg == "" {
			continue
		}
		k, v, _ := strings.Cut(seg, "=")
		if dk, err := url.QueryUnescape(k); err == nil {
			k = dk
		}
		if dv, err := url.QueryUnescape(v); err == nil {
			v = dv
		}
		if k == "" {
			continue
		}
		if i, ok := index[k]; ok {
			pairs[i].value = v
			continue
		}
		index[k] = len(pairs)
		pairs = append(pairs, queryPair{key: k, value: v})
	}
	return pairs
}

// mergeQueryPairs overlays original parameters onto signed ones. Signature
// parameters carried by the signed URL must not be overwritten: a
// caller-supplied parameter colliding with a signature key would break
// signature validity, so the signed value wins for those keys.
func mergeQueryPairs(signed, original []queryPair) []queryPair {
	merged := make([]queryPair, len(signed))
	copy(merged, signed)
	index := make(map[string]int, len(merged))
	for i, p := range merged {
		index[p.key] = i
	}

	for _, p := range original {
		if i, ok := index[p.key]; ok {
			if isSignatureParam(p.key) {
				continue
			}
			merged[i].value = p.value
			continue
		}
		index[p.key] = len(merged)
		merged = append(merged, p)
	}
	return merged
}

// encodeQueryPairs rebuilds a query string deterministically, preserving
// pair order.
func encodeQueryPairs(pairs []queryPair) string {
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

// isSignatureParam reports whether key belongs to the signature's own
// parameter namespace. The whole X-Amz- prefix is reserved, not just the
// six presign markers, so session tokens and similar companions are
// protected as well.
func isSignatureParam(key string) bool {
	return len(key) >= 6 && strings.EqualFold(key[:6], "x-amz-")
}
