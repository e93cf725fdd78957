package signedassets

import (
	"fmt"
	"regexp"
	"strings"
)

// assetMatch is one matched asset reference inside a scanned fragment.
type assetMatch struct {
	full     string // the entire matched URL substring
	path     string // URL path, always beginning with the configured prefix
	rawQuery string // query string without "?", "" when absent
}

// assetMatcher finds absolute http(s) URLs whose host is exactly one of the
// configured hosts and whose path falls under the configured asset prefix.
// The compiled expression is immutable after construction, so one matcher
// is safe for concurrent use.
type assetMatcher struct {
	re     *regexp.Regexp
	prefix string
}

// newAssetMatcher compiles a matcher for the given configuration. The
// caller guarantees cfg.enabled().
func newAssetMatcher(cfg Config) (*assetMatcher, error) {
	hosts := cfg.hosts()
	quoted := make([]string, len(hosts))
	for i, h := range hosts {
		quoted[i] = regexp.QuoteMeta(h)
	}
	prefix := cfg.prefix()

	// Scheme and host match case-insensitively; the path does not. The
	// match runs greedily to the next whitespace or quote character so a
	// trailing query string is captured with the URL.
	pattern := `(?i:https?)://(?i:` + strings.Join(quoted, "|") + `)(` +
		regexp.QuoteMeta(prefix) + `[^\s"']*)`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling asset matcher: %w", err)
	}

	return &assetMatcher{re: re, prefix: prefix}, nil
}

// replaceAll rewrites every non-overlapping match in text using fn,
// preserving all non-matching content byte for byte. The scan is a single
// linear pass.
func (m *assetMatcher) replaceAll(text string, fn func(assetMatch) string) string {
	locs := m.re.FindAllStringSubmatchIndex(text, -1)
	if len(locs) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, loc := range locs {
		b.WriteString(text[last:loc[0]])
		b.WriteString(fn(m.match(text, loc)))
		last = loc[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// matchURL applies the matcher's predicate to a single URL value. The URL
// must match in its entirety; no scanning is performed.
func (m *assetMatcher) matchURL(rawURL string) (assetMatch, bool) {
	loc := m.re.FindStringSubmatchIndex(rawURL)
	if loc == nil || loc[0] != 0 || loc[1] != len(rawURL) {
		return assetMatch{}, false
	}
	return m.match(rawURL, loc), true
}

func (m *assetMatcher) match(text string, loc []int) assetMatch {
	full := text[loc[0]:loc[1]]
	path, rawQuery, _ := strings.Cut(text[loc[2]:loc[3]], "?")
	return assetMatch{full: full, path: path, rawQuery: rawQuery}
}
