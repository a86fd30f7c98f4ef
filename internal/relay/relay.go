/*
Package relay implements the direct-upload edge relay: a minimal endpoint
that accepts raw PUT bodies and writes them straight to the object store,
bypassing the gateway process for large transfers.

Authorization is a single shared-secret header check. The check is
fail-closed: when no secret is configured, every write is rejected. There
is exactly one rule for "no policy configured" and it is deny-by-default.
*/
package relay

import (
	"bufio"
	"crypto/subtle"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"rdrive/internal/app/storage"
	"rdrive/internal/pkg/errs"
	"rdrive/internal/pkg/logx"
	"rdrive/internal/pkg/resp"
)

// AuthHeader is the request header carrying the shared upload secret.
const AuthHeader = "X-Custom-Auth-Key"

// Deps bundles the relay's dependencies.
type Deps struct {
	Storage storage.Service

	// SecretKey is the configured shared secret. Empty means no policy is
	// configured, which denies all writes.
	SecretKey string
}

// authorized reports whether the request carries the configured secret.
// An unset secret never authorizes anything, whatever the client sends.
func (d *Deps) authorized(r *http.Request) bool {
	if d.SecretKey == "" {
		return false
	}

	supplied := r.Header.Get(AuthHeader)
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(d.SecretKey)) == 1
}

// Router sets up the relay routing table: PUT on any path writes the body
// under the path-derived key, OPTIONS answers the CORS preflight, and every
// other verb is rejected with 405 and an Allow hint. All responses carry
// the permissive CORS headers.
func Router(deps *Deps) http.Handler {
	r := chi.NewRouter()

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", AuthHeader},
		MaxAge:         86400,
	})
	r.Use(c.Handler)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logx.RequestLogger())
	r.Use(middleware.Recoverer)

	r.Put("/*", HandleUpload(deps))

	// Non-preflight OPTIONS requests are passed through by the CORS
	// middleware and still deserve an empty 204.
	r.Options("/*", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	methodNotAllowed := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", http.MethodPut)
		resp.RespondJSON(w, r, http.StatusMethodNotAllowed, resp.ErrorBody{
			Error: "Method not allowed; uploads must use PUT",
		})
	}
	r.MethodNotAllowed(methodNotAllowed)
	r.NotFound(methodNotAllowed)

	return r
}

// HandleUpload writes the raw request body to the store under the key taken
// verbatim from the URL path. Unlike the gateway upload paths, the caller
// controls the key here.
func HandleUpload(deps *Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !deps.authorized(r) {
			resp.RespondError(w, r, errs.Unauthorized("Unauthorized"))
			return
		}

		key := strings.TrimPrefix(r.URL.Path, "/")
		if key == "" {
			resp.RespondError(w, r, errs.Validation("Object key is missing from the URL path"))
			return
		}

		if r.Body == nil || r.ContentLength == 0 {
			resp.RespondError(w, r, errs.Validation("Request body is missing"))
			return
		}

		// Chunked requests arrive with ContentLength -1; peek one byte so an
		// empty chunked body is rejected instead of stored as a zero-byte
		// object.
		body := io.Reader(r.Body)
		if r.ContentLength < 0 {
			buffered := bufio.NewReader(r.Body)
			if _, err := buffered.Peek(1); err != nil {
				resp.RespondError(w, r, errs.Validation("Request body is missing"))
				return
			}
			body = buffered
		}

		contentType := r.Header.Get("Content-Type")

		if appErr := deps.Storage.Put(r.Context(), key, body, contentType); appErr != nil {
			resp.RespondError(w, r, appErr)
			return
		}

		logx.Info("Direct upload stored", "key", key, "bytes", r.ContentLength)

		resp.RespondJSON(w, r, http.StatusOK, map[string]string{
			"message": fmt.Sprintf("File %s uploaded successfully", key),
		})
	}
}
