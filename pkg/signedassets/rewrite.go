package signedassets

import (
	"context"
	"strings"
)

// service is the default Service implementation. Its fields are set during
// New and never mutated afterwards.
type service struct {
	cfg     Config
	signer  URLSigner
	matcher *assetMatcher // nil when the service is unconfigured
	hooks   Hooks
}

func (s *service) RewriteContent(ctx context.Context, content string) string {
	if s.matcher == nil {
		return content
	}
	return s.matcher.replaceAll(content, func(m assetMatch) string {
		return s.rewriteMatch(ctx, m)
	})
}

func (s *service) RewriteURL(ctx context.Context, rawURL string) string {
	if s.matcher == nil {
		return rawURL
	}
	m, ok := s.matcher.matchURL(rawURL)
	if !ok {
		return rawURL
	}
	return s.rewriteMatch(ctx, m)
}

// rewriteMatch signs one matched reference and reconciles its query
// parameters. Any failure keeps the original match: the worst outcome is
// an unsigned reference, never a broken one.
func (s *service) rewriteMatch(ctx context.Context, m assetMatch) string {
	if IsPresigned(m.full) {
		return m.full
	}

	signed, err := s.signer.SignObjectURL(ctx, s.objectKey(m.path), s.cfg.ttl())
	if err != nil {
		s.hooks.fireError(m.full, err)
		return m.full
	}

	out := reconcileQuery(signed, m.full)
	s.hooks.fireRewrite(m.full, out)
	return out
}

// objectKey derives the storage object key from a matched path. The
// configured prefix is stripped unless KeepPrefixInKey is set; the leading
// slash always is.
func (s *service) objectKey(path string) string {
	key := path
	if !s.cfg.KeepPrefixInKey {
		key = strings.TrimPrefix(key, s.cfg.prefix())
	}
	return strings.TrimPrefix(key, "/")
}
