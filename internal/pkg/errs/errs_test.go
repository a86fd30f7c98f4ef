package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatuses(t *testing.T) {
	tests := []struct {
		err        *Error
		wantKind   Kind
		wantStatus int
	}{
		{Validation("missing key"), KindValidation, http.StatusBadRequest},
		{NotFound("no such key"), KindNotFound, http.StatusNotFound},
		{Unauthorized("denied"), KindUnauthorized, http.StatusUnauthorized},
		{UnsupportedMedia("not json"), KindUnsupportedMedia, http.StatusUnsupportedMediaType},
		{RateLimited(), KindRateLimited, http.StatusTooManyRequests},
		{Upstream(nil, "store broke"), KindUpstreamStore, http.StatusInternalServerError},
		{Transport(nil, "net broke"), KindTransport, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(string(tt.wantKind), func(t *testing.T) {
			assert.Equal(t, tt.wantKind, tt.err.Kind)
			assert.Equal(t, tt.wantStatus, tt.err.Status)
		})
	}
}

func TestUpstreamCarriesCauseAsDetails(t *testing.T) {
	cause := errors.New("connection reset by peer")
	e := Upstream(cause, "Failed to fetch files")

	assert.Equal(t, "connection reset by peer", e.Details)
	assert.ErrorIs(t, e, cause)
	assert.Contains(t, e.Error(), "Failed to fetch files")
	assert.Contains(t, e.Error(), "connection reset by peer")
}

func TestMessageFormatting(t *testing.T) {
	e := Validation("field %q is required", "fileName")
	assert.Equal(t, `field "fileName" is required`, e.Message)
}
