/*
Package resp provides helpers for writing HTTP JSON responses.

Success payloads are handler-specific (listing arrays, upload acknowledgements,
presigned URL grants), so the package only standardizes the error shape:
every failure is serialized as {"error": ..., "details": ...} with the status
code taken from the error kind.
*/
package resp

import (
	"encoding/json"
	"net/http"

	"rdrive/internal/pkg/errs"
	"rdrive/internal/pkg/logx"
)

// ErrorBody is the JSON structure returned to clients on any failure.
type ErrorBody struct {
	// Error is the client-friendly failure description.
	Error string `json:"error"`

	// Details optionally carries the upstream store's own error text.
	Details string `json:"details,omitempty"`
}

// RespondJSON sets the Content-Type and sends the JSON-encoded payload.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	response, err := json.Marshal(payload)
	if err != nil {
		logx.Error(err, "Error encoding JSON response", "http_status", httpStatus)
		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(response)
}

// RespondError sends the standardized error body for the given application error.
func RespondError(w http.ResponseWriter, r *http.Request, appErr *errs.Error) {
	if appErr == nil {
		appErr = errs.Upstream(nil, "Something went wrong. Please try again.")
	}

	if appErr.Kind == errs.KindUpstreamStore {
		logx.Error(appErr, "Upstream store failure", "details", appErr.Details)
	}

	RespondJSON(w, r, appErr.Status, ErrorBody{
		Error:   appErr.Message,
		Details: appErr.Details,
	})
}
