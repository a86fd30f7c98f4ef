/*
Package errs provides the application's unified error type.

This file defines the error kinds and the mapping from each kind to its
HTTP status code, used to standardize responses across all handlers.
*/
package errs

import "net/http"

// Kind classifies an application error. Kinds are part of the wire contract:
// they determine the HTTP status and are stable across releases.
type Kind string

const (
	// KindValidation indicates missing or malformed required input.
	KindValidation Kind = "validation"

	// KindNotFound indicates the requested object key does not exist.
	KindNotFound Kind = "not_found"

	// KindUnauthorized indicates a failed shared-secret check.
	KindUnauthorized Kind = "unauthorized"

	// KindUnsupportedMedia indicates an unacceptable request Content-Type.
	KindUnsupportedMedia Kind = "unsupported_media"

	// KindRateLimited indicates the request exceeded the per-IP rate limit.
	KindRateLimited Kind = "rate_limited"

	// KindUpstreamStore wraps any failure reported by the backing store.
	KindUpstreamStore Kind = "upstream_store"

	// KindTransport indicates a client-side network failure during a transfer.
	KindTransport Kind = "transport"
)

// statusMap stores the HTTP status code corresponding to every error kind.
var statusMap = map[Kind]int{
	KindValidation:       http.StatusBadRequest,
	KindNotFound:         http.StatusNotFound,
	KindUnauthorized:     http.StatusUnauthorized,
	KindUnsupportedMedia: http.StatusUnsupportedMediaType,
	KindRateLimited:      http.StatusTooManyRequests,
	KindUpstreamStore:    http.StatusInternalServerError,
	KindTransport:        http.StatusBadGateway,
}

// statusFor returns the HTTP status for the given kind, defaulting to 500
// for kinds missing from the map.
func statusFor(kind Kind) int {
	if status, ok := statusMap[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}
