// Package signedassets rewrites embedded asset references inside rendered
// content so that URLs pointing at a CDN domain or the raw storage domain
// are replaced with time-limited presigned URLs granting temporary read
// access to the underlying private storage objects.
//
// The package exposes a single Service interface with two entry points:
// RewriteContent scans a rendered text fragment and substitutes every
// matching asset reference in place, while RewriteURL applies the same
// treatment to one discrete URL value (e.g. an attachment URL field).
// Signature issuance is delegated to a pluggable URLSigner; an S3-backed
// implementation and a local HMAC implementation are provided under
// subpackages.
//
// # Failure Policy
//
// Every failure is local to the reference being processed and resolves to
// leaving that reference unchanged. A missing or incomplete configuration
// turns the whole rewrite into a no-op returning its input. Nothing in
// this package panics or returns an error from a rewrite call; the host
// render path must never break because signing did.
package signedassets
