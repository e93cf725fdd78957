package signedassets

import "context"

// RewriteContent is a one-shot helper for callers that do not hold a
// Service: it builds a pipeline from cfg and signer and rewrites content.
// On any construction problem the input is returned unchanged.
func RewriteContent(ctx context.Context, content string, cfg Config, signer URLSigner) string {
	svc, err := New(WithConfig(cfg), WithSigner(signer))
	if err != nil {
		return content
	}
	return svc.RewriteContent(ctx, content)
}

// RewriteURL is the single-URL counterpart of RewriteContent.
func RewriteURL(ctx context.Context, rawURL string, cfg Config, signer URLSigner) string {
	svc, err := New(WithConfig(cfg), WithSigner(signer))
	if err != nil {
		return rawURL
	}
	return svc.RewriteURL(ctx, rawURL)
}
