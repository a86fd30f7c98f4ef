/*
Package handler provides the HTTP handlers and routing for the gateway.

This file implements the /files surface: bucket listing, single-object
streaming, multipart upload, and deletion. Each handler validates its input
before any store call is made and normalizes every failure through the errs
package.
*/
package handler

import (
	"io"
	"net/http"

	"rdrive/internal/app/files"
	"rdrive/internal/pkg/errs"
	"rdrive/internal/pkg/logx"
	"rdrive/internal/pkg/req"
	"rdrive/internal/pkg/resp"
)

// UploadResponse acknowledges a multipart upload with the server-assigned key
// so the client can reconcile its local state.
type UploadResponse struct {
	Success bool   `json:"success"`
	Key     string `json:"key"`
}

// DeleteResponse acknowledges a successful delete.
type DeleteResponse struct {
	Message string `json:"message"`
}

// HandleFiles serves GET /files. Without a key parameter it returns the full
// bucket listing in store order; with one it streams the object's bytes.
func HandleFiles(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("key")
		if key == "" {
			listFiles(deps, w, r)
			return
		}
		getFile(deps, w, r, key)
	}
}

// listFiles returns the complete listing. A store failure produces a
// structured error; a truncated listing is never returned silently.
func listFiles(deps *AppDeps, w http.ResponseWriter, r *http.Request) {
	objects, appErr := deps.Storage.List(r.Context())
	if appErr != nil {
		resp.RespondError(w, r, appErr)
		return
	}

	resp.RespondJSON(w, r, http.StatusOK, objects)
}

// getFile streams the object through unmodified, except for the SVG
// content-type correction: .svg keys are always served as image/svg+xml
// regardless of what the store reports.
func getFile(deps *AppDeps, w http.ResponseWriter, r *http.Request, key string) {
	body, storedType, appErr := deps.Storage.Get(r.Context(), key)
	if appErr != nil {
		resp.RespondError(w, r, appErr)
		return
	}
	defer body.Close()

	contentType := files.ApplySVGOverride(key, files.TrustedFromStore(storedType))

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		// Headers are already sent; all we can do is log the broken stream.
		logx.Error(err, "Streaming object to client failed", "key", key)
	}
}

// HandleUpload serves POST /files. It accepts a single multipart file field,
// synthesizes the object key, and returns the key on success.
func HandleUpload(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if appErr := req.SetupMultipart(w, r); appErr != nil {
			resp.RespondError(w, r, appErr)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			resp.RespondError(w, r, errs.Validation("No file provided"))
			return
		}
		defer file.Close()

		key := deps.Keys.Synthesize(header.Filename)
		contentType := header.Header.Get("Content-Type")

		if appErr := deps.Storage.Put(r.Context(), key, file, contentType); appErr != nil {
			resp.RespondError(w, r, appErr)
			return
		}

		logx.Info("File uploaded", "key", key, "size", header.Size)

		resp.RespondJSON(w, r, http.StatusOK, UploadResponse{Success: true, Key: key})
	}
}

// HandleDelete serves DELETE /files?key=K. A missing key is a validation
// error, not a store error; deleting an absent key still succeeds.
func HandleDelete(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("key")
		if key == "" {
			resp.RespondError(w, r, errs.Validation("Key is required"))
			return
		}

		if appErr := deps.Storage.Delete(r.Context(), key); appErr != nil {
			resp.RespondError(w, r, appErr)
			return
		}

		resp.RespondJSON(w, r, http.StatusOK, DeleteResponse{Message: "File deleted successfully"})
	}
}
