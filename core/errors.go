package core

import (
	"errors"
	"fmt"
	"time"
)

// NotFoundError reports an identifier that does not exist upstream.
// Reported, never retried.
type NotFoundError struct {
	SourceKind string
	Identifier string
}

func (e *NotFoundError) Error() string {
	if e.SourceKind != "" {
		return fmt.Sprintf("%s: %q not found upstream", e.SourceKind, e.Identifier)
	}
	return fmt.Sprintf("%q not found upstream", e.Identifier)
}

// RateLimitedError reports upstream throttling. Retried after
// backoff; RetryAfter carries the upstream hint when one was given.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
	}
	return "rate limited"
}

// TransientFetchError reports a network failure, timeout or 5xx.
// Retried with exponential backoff, bounded attempts.
type TransientFetchError struct {
	URL string
	Err error
}

func (e *TransientFetchError) Error() string {
	return fmt.Sprintf("transient fetch failure for %s: %v", e.URL, e.Err)
}

func (e *TransientFetchError) Unwrap() error { return e.Err }

// MalformedSourceError reports a document whose minimum required
// fields cannot be determined. The record is skipped, not retried.
type MalformedSourceError struct {
	Reason string
}

func (e *MalformedSourceError) Error() string {
	return "malformed source: " + e.Reason
}

// StorePathError reports a derived path that would escape the store
// root, typically from an identifier carrying traversal sequences.
type StorePathError struct {
	Path string
}

func (e *StorePathError) Error() string {
	return fmt.Sprintf("store path %q escapes the store root", e.Path)
}

// StorePermissionError wraps a write-permission failure in the store.
type StorePermissionError struct {
	Path string
	Err  error
}

func (e *StorePermissionError) Error() string {
	return fmt.Sprintf("store permission denied for %s: %v", e.Path, e.Err)
}

func (e *StorePermissionError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var t *NotFoundError
	return errors.As(err, &t)
}

// IsRateLimited reports whether err is a RateLimitedError.
func IsRateLimited(err error) bool {
	var t *RateLimitedError
	return errors.As(err, &t)
}

// IsTransient reports whether err is a TransientFetchError.
func IsTransient(err error) bool {
	var t *TransientFetchError
	return errors.As(err, &t)
}

// IsMalformed reports whether err is a MalformedSourceError.
func IsMalformed(err error) bool {
	var t *MalformedSourceError
	return errors.As(err, &t)
}

// RetryAfterHint returns the retry-after hint carried by a
// RateLimitedError, or zero when there is none.
func RetryAfterHint(err error) time.Duration {
	var t *RateLimitedError
	if errors.As(err, &t) {
		return t.RetryAfter
	}
	return 0
}
