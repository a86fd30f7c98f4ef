/*
Package files defines the domain model for stored objects and the pure
helpers derived from it: upload key synthesis, content-type resolution,
extension-based categories and icons, and human-readable size formatting.
*/
package files

import "time"

// Object represents one object in the backing store. The key is the sole
// identity; there is no secondary index and no versioning.
type Object struct {
	// Key is the opaque, path-like object identifier, immutable once created.
	Key string `json:"Key"`

	// Size is the byte count reported by the store. Zero when the store did
	// not report a size.
	Size int64 `json:"Size"`

	// LastModified is the store-assigned modification timestamp.
	LastModified time.Time `json:"LastModified"`

	// ContentType is only reliably known when the object is fetched
	// individually; bulk listings never populate it.
	ContentType string `json:"ContentType,omitempty"`
}

// IsFolder reports whether the key looks like a folder marker rather than a
// regular object. Folders are a UI convention over key prefixes, not a store
// concept.
func (o Object) IsFolder() bool {
	if len(o.Key) > 0 && o.Key[len(o.Key)-1] == '/' {
		return true
	}
	return !containsDot(o.Key) && o.Size == 0
}

func containsDot(s string) bool {
	for _, c := range s {
		if c == '.' {
			return true
		}
	}
	return false
}
