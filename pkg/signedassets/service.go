package signedassets

import "context"

// Service rewrites asset references in rendered content. Implementations
// hold no cross-call state beyond their immutable configuration, so a
// single Service is safe for unbounded concurrent use.
type Service interface {
	// RewriteContent scans a rendered text fragment and substitutes each
	// matching asset reference with its signed equivalent. Non-matching
	// content is preserved byte for byte; references that are already
	// signed, or that fail to sign, pass through unchanged.
	RewriteContent(ctx context.Context, content string) string

	// RewriteURL applies the same treatment to a single URL value, as used
	// for structured attachment data. A URL that does not match the
	// configured hosts and prefix is returned unchanged.
	RewriteURL(ctx context.Context, rawURL string) string
}

// Option configures a Service during construction.
type Option func(*service) error

// WithConfig sets the rewrite configuration. An incomplete configuration
// is not an error; it produces a Service that passes content through
// unchanged.
func WithConfig(cfg Config) Option {
	return func(s *service) error {
		s.cfg = cfg
		return nil
	}
}

// WithSigner sets the signature issuer. A nil signer leaves the Service
// unconfigured (pass-through).
func WithSigner(signer URLSigner) Option {
	return func(s *service) error {
		s.signer = signer
		return nil
	}
}

// WithHooks registers observer callbacks for substitutions and fail-open
// events.
func WithHooks(hooks Hooks) Option {
	return func(s *service) error {
		s.hooks = hooks
		return nil
	}
}

// New creates a Service with the given options. Construction succeeds even
// when the configuration is incomplete; the resulting Service is then a
// deliberate no-op rather than an error source in the render path.
func New(opts ...Option) (Service, error) {
	svc := &service{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(svc); err != nil {
			return nil, err
		}
	}

	if svc.signer != nil && svc.cfg.enabled() {
		matcher, err := newAssetMatcher(svc.cfg)
		if err != nil {
			return nil, err
		}
		svc.matcher = matcher
	}

	return svc, nil
}
