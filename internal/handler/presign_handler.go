/*
Package handler provides the HTTP handlers and routing for the gateway.

This file implements the pre-signed URL issuer: time-bounded upload grants
(so large transfers bypass the gateway process) and long-lived share links.
*/
package handler

import (
	"net/http"

	"rdrive/internal/app/files"
	"rdrive/internal/app/storage"
	"rdrive/internal/pkg/errs"
	"rdrive/internal/pkg/req"
	"rdrive/internal/pkg/resp"
)

// Presign operations.
const (
	OperationUpload   = "upload"
	OperationDownload = "download"
)

// PresignInput is the JSON body of POST /presigned-url.
type PresignInput struct {
	FileName  string `json:"fileName"`
	FileType  string `json:"fileType"`
	Operation string `json:"operation"`
}

// PresignResponse carries the signed URL and the target key. FileName holds
// the key the URL operates on: synthesized for uploads, caller-supplied
// verbatim for downloads.
type PresignResponse struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	FileType string `json:"fileType,omitempty"`
}

// ShareInput is the JSON body of POST /share.
type ShareInput struct {
	Key string `json:"key"`
}

// ShareResponse carries the share link.
type ShareResponse struct {
	URL string `json:"url"`
}

// HandlePresignedURL serves POST /presigned-url. Upload grants synthesize a
// fresh key under the same uniqueness rule as the multipart upload path and
// apply the SVG content-type override; download grants use the supplied name
// verbatim as the key, since the caller already knows the exact object.
// All validation happens before any signing call.
func HandlePresignedURL(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input PresignInput
		if appErr := req.BindJSON(r, &input); appErr != nil {
			resp.RespondError(w, r, appErr)
			return
		}

		if input.Operation == "" {
			input.Operation = OperationUpload
		}

		if input.FileName == "" {
			resp.RespondError(w, r, errs.Validation("fileName is required"))
			return
		}

		switch input.Operation {
		case OperationUpload:
			if input.FileType == "" {
				resp.RespondError(w, r, errs.Validation("fileType is required for upload"))
				return
			}

			key := deps.Keys.Synthesize(input.FileName)
			contentType := files.ApplySVGOverride(input.FileName, input.FileType)

			url, appErr := deps.Storage.PresignUpload(r.Context(), key, contentType, storage.UploadGrantTTL)
			if appErr != nil {
				resp.RespondError(w, r, appErr)
				return
			}

			resp.RespondJSON(w, r, http.StatusOK, PresignResponse{
				URL:      url,
				FileName: key,
				FileType: contentType,
			})

		case OperationDownload:
			url, appErr := deps.Storage.PresignDownload(r.Context(), input.FileName, storage.UploadGrantTTL)
			if appErr != nil {
				resp.RespondError(w, r, appErr)
				return
			}

			resp.RespondJSON(w, r, http.StatusOK, PresignResponse{
				URL:      url,
				FileName: input.FileName,
			})

		default:
			resp.RespondError(w, r, errs.Validation("operation must be %q or %q", OperationUpload, OperationDownload))
		}
	}
}

// HandleShare serves POST /share: a 24-hour download grant for an existing
// key. The request must declare Content-Type application/json.
func HandleShare(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input ShareInput
		if appErr := req.BindJSON(r, &input); appErr != nil {
			resp.RespondError(w, r, appErr)
			return
		}

		if input.Key == "" {
			resp.RespondError(w, r, errs.Validation("No file key provided"))
			return
		}

		url, appErr := deps.Storage.PresignDownload(r.Context(), input.Key, storage.ShareGrantTTL)
		if appErr != nil {
			resp.RespondError(w, r, appErr)
			return
		}

		resp.RespondJSON(w, r, http.StatusOK, ShareResponse{URL: url})
	}
}
