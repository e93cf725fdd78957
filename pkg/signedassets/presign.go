package signedassets

import "net/url"

// The complete marker set a SigV4 presigned URL carries in its query
// string. All six must be present for a URL to count as already signed.
var presignQueryParams = []string{
	"X-Amz-Algorithm",
	"X-Amz-Credential",
	"X-Amz-Date",
	"X-Amz-Expires",
	"X-Amz-SignedHeaders",
	"X-Amz-Signature",
}

// IsPresigned reports whether rawURL already carries a complete presign
// signature parameter set. It exists to keep the rewrite idempotent:
// content that was rewritten on an earlier pass is recognized and left
// alone rather than signed a second time. Absence of any one marker, or
// of a query string entirely, yields false.
func IsPresigned(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.RawQuery == "" {
		return false
	}

	present := make(map[string]bool)
	for _, p := range parseQueryPairs(normalizeRawQuery(u.RawQuery)) {
		present[p.key] = true
	}
	for _, marker := range presignQueryParams {
		if !present[marker] {
			return false
		}
	}
	return true
}
