package files

import (
	"path/filepath"
	"strings"
)

// DefaultContentType is used whenever no better MIME type is known.
const DefaultContentType = "application/octet-stream"

// extToMIME maps file extensions to MIME types for extension-based
// inference. It intentionally covers only the types the UI cares about;
// everything else falls back to DefaultContentType.
var extToMIME = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".svg":  "image/svg+xml",
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".md":   "text/markdown",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".ogg":  "audio/ogg",
	".zip":  "application/zip",
	".gz":   "application/gzip",
	".json": "application/json",
}

// InferFromExtension resolves a MIME type from the key's extension alone.
// This is the listing/presentation path: bulk listings never carry a
// store-reported content type, so the extension is all there is.
func InferFromExtension(key string) string {
	ext := strings.ToLower(filepath.Ext(key))
	if mimeType, ok := extToMIME[ext]; ok {
		return mimeType
	}
	return DefaultContentType
}

// TrustedFromStore resolves the MIME type for a single-object fetch, where
// the store's own metadata is authoritative. Callers on this path must not
// fall back to extension sniffing except through ApplySVGOverride.
func TrustedFromStore(contentType string) string {
	if contentType == "" {
		return DefaultContentType
	}
	return contentType
}

// IsSVG reports whether the key names an SVG file.
func IsSVG(key string) bool {
	return strings.HasSuffix(strings.ToLower(key), ".svg")
}

// ApplySVGOverride forces image/svg+xml for .svg keys regardless of the
// resolved content type. Some stores mis-tag SVG uploads as octet-stream,
// which breaks inline rendering; this correction applies on both the
// gateway get path and the presigned upload path.
func ApplySVGOverride(key string, contentType string) string {
	if IsSVG(key) {
		return "image/svg+xml"
	}
	return contentType
}
