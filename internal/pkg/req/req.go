/*
Package req provides helpers for HTTP request parsing and data binding.

It encapsulates JSON and multipart form parsing with size limits, returning
application errors so handlers can reject malformed input before any store
call is made.
*/
package req

import (
	"encoding/json"
	"net/http"
	"strings"

	"rdrive/internal/pkg/errs"
)

const (
	// MaxFormMemory is the memory ceiling (32 MB) for non-file multipart
	// fields; larger file parts spill to temporary files.
	MaxFormMemory int64 = 32 << 20

	// MaxUploadBodySize caps the whole multipart upload body (100 MB),
	// enforced through http.MaxBytesReader.
	MaxUploadBodySize int64 = 100 << 20
)

// BindJSON binds the JSON request body to dst. The request must declare
// Content-Type application/json; anything else is rejected with an
// unsupported-media error before the body is read.
func BindJSON(r *http.Request, dst any) *errs.Error {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "application/json") {
		return errs.UnsupportedMedia("Content-Type must be application/json")
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return errs.Validation("Request body is not valid JSON")
	}

	if decoder.More() {
		return errs.Validation("Request body contains unexpected extra data")
	}

	return nil
}

// SetupMultipart enforces the upload body size limit and parses the
// multipart form data from the request.
func SetupMultipart(w http.ResponseWriter, r *http.Request) *errs.Error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBodySize)

	if err := r.ParseMultipartForm(MaxFormMemory); err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			return errs.Validation("Upload body exceeds the size limit")
		}

		return errs.Validation("Failed to parse multipart form data")
	}

	return nil
}
