package storage

import (
	"context"
	"io"
	"time"

	"rdrive/internal/app/files"
	"rdrive/internal/pkg/errs"
)

// Grant expiry windows. Upload grants are deliberately short; share grants
// last a day. Callers cannot override these.
const (
	UploadGrantTTL = 3600 * time.Second
	ShareGrantTTL  = 86400 * time.Second
)

// ServiceConfig holds the configuration required to connect to the object store.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// Service defines the object-level primitives of the storage adapter.
// All methods report failures as *errs.Error so handlers can pass them to
// the response layer unchanged.
type Service interface {
	// List returns every object in the bucket in store order, draining all
	// listing pages. ContentType is never populated by this call.
	List(ctx context.Context) ([]files.Object, *errs.Error)

	// Get returns the object's byte stream and the store-reported content
	// type. The caller owns closing the stream. An absent key yields a
	// not-found error.
	Get(ctx context.Context, key string) (io.ReadCloser, string, *errs.Error)

	// Put writes the body under the given key, silently overwriting any
	// pre-existing object.
	Put(ctx context.Context, key string, body io.Reader, contentType string) *errs.Error

	// Delete removes the object. Deleting an absent key is a success:
	// delete is idempotent regardless of the underlying store's behavior.
	Delete(ctx context.Context, key string) *errs.Error

	// PresignUpload produces a signed PUT URL for the key. Signing is a
	// local operation; no network call is made.
	PresignUpload(ctx context.Context, key string, contentType string, ttl time.Duration) (string, *errs.Error)

	// PresignDownload produces a signed GET URL for the key.
	PresignDownload(ctx context.Context, key string, ttl time.Duration) (string, *errs.Error)
}

// NewService is the factory function for Service. Only S3-compatible
// stores are supported.
func NewService(cfg ServiceConfig) (Service, error) {
	return newS3Client(cfg)
}
