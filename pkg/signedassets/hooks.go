package signedassets

// Hooks allow the host system to observe rewrite activity without the
// pipeline owning a logging or error-reporting transport. Hooks are
// observation-only: they cannot veto a substitution, and a hook that
// panics does not abort the pass.

// RewriteHook is called after a reference has been signed and substituted.
type RewriteHook func(original, signed string)

// ErrorHook is called each time a reference is left unchanged because
// signing or reconciliation failed for it.
type ErrorHook func(original string, err error)

// Hooks holds the observer callbacks for a Service.
type Hooks struct {
	OnRewrite []RewriteHook
	OnError   []ErrorHook
}

func (h Hooks) fireRewrite(original, signed string) {
	for _, hook := range h.OnRewrite {
		invokeHook(func() { hook(original, signed) })
	}
}

func (h Hooks) fireError(original string, err error) {
	for _, hook := range h.OnError {
		invokeHook(func() { hook(original, err) })
	}
}

func invokeHook(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}
