package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"rdrive/internal/app/files"
	"rdrive/internal/pkg/errs"
	"rdrive/internal/pkg/logx"
)

// s3Client implements Service against any S3-compatible endpoint
// (Cloudflare R2 in the reference deployment).
type s3Client struct {
	cfg      ServiceConfig
	s3Client *s3.Client
	uploader *manager.Uploader
	presign  *s3.PresignClient
}

// newS3Client initializes the S3 client with static credentials, the custom
// endpoint, and path-style addressing required by S3-compatible stores.
func newS3Client(cfg ServiceConfig) (*s3Client, error) {
	sdkCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKeyID,
			cfg.S3SecretAccessKey,
			"",
		)),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object store client configuration: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		o.UsePathStyle = true
	})

	return &s3Client{
		cfg:      cfg,
		s3Client: client,
		uploader: manager.NewUploader(client),
		presign:  s3.NewPresignClient(client),
	}, nil
}

// isNotFound reports whether the store error means the key is absent.
func isNotFound(err error) bool {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NotFound"
	}

	return false
}

func (c *s3Client) List(ctx context.Context) ([]files.Object, *errs.Error) {
	objects := []files.Object{}

	paginator := s3.NewListObjectsV2Paginator(c.s3Client, &s3.ListObjectsV2Input{
		Bucket: &c.cfg.S3BucketName,
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			logx.Error(err, "Object store listing failed", "bucket", c.cfg.S3BucketName)
			return nil, errs.Upstream(err, "Failed to fetch files from the object store")
		}

		for _, obj := range page.Contents {
			o := files.Object{}
			if obj.Key != nil {
				o.Key = *obj.Key
			}
			if obj.Size != nil {
				o.Size = *obj.Size
			}
			if obj.LastModified != nil {
				o.LastModified = *obj.LastModified
			}
			objects = append(objects, o)
		}
	}

	return objects, nil
}

func (c *s3Client) Get(ctx context.Context, key string) (io.ReadCloser, string, *errs.Error) {
	resp, err := c.s3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &c.cfg.S3BucketName,
		Key:    &key,
	})
	if err != nil {
		if isNotFound(err) {
			return nil, "", errs.NotFound("File not found")
		}
		logx.Error(err, "Object store get failed", "key", key)
		return nil, "", errs.Upstream(err, "Failed to fetch file from the object store")
	}

	contentType := ""
	if resp.ContentType != nil {
		contentType = *resp.ContentType
	}

	return resp.Body, contentType, nil
}

func (c *s3Client) Put(ctx context.Context, key string, body io.Reader, contentType string) *errs.Error {
	input := &s3.PutObjectInput{
		Bucket: &c.cfg.S3BucketName,
		Key:    &key,
		Body:   body,
	}
	if contentType != "" {
		input.ContentType = &contentType
	}

	if _, err := c.uploader.Upload(ctx, input); err != nil {
		logx.Error(err, "Object store put failed", "key", key)
		return errs.Upstream(err, "Failed to store file")
	}

	return nil
}

func (c *s3Client) Delete(ctx context.Context, key string) *errs.Error {
	_, err := c.s3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &c.cfg.S3BucketName,
		Key:    &key,
	})
	if err != nil {
		// Idempotent delete: an already-absent key is a success, whatever
		// the underlying store thinks of it.
		if isNotFound(err) {
			return nil
		}
		logx.Error(err, "Object store delete failed", "key", key)
		return errs.Upstream(err, "Failed to delete file")
	}

	return nil
}

func (c *s3Client) PresignUpload(ctx context.Context, key string, contentType string, ttl time.Duration) (string, *errs.Error) {
	input := &s3.PutObjectInput{
		Bucket:      &c.cfg.S3BucketName,
		Key:         &key,
		ContentType: &contentType,
	}

	resp, err := c.presign.PresignPutObject(ctx, input, s3.WithPresignExpires(ttl))
	if err != nil {
		logx.Error(err, "Failed to generate presigned upload URL", "key", key)
		return "", errs.Upstream(err, "Failed to generate pre-signed URL")
	}

	return resp.URL, nil
}

func (c *s3Client) PresignDownload(ctx context.Context, key string, ttl time.Duration) (string, *errs.Error) {
	input := &s3.GetObjectInput{
		Bucket: &c.cfg.S3BucketName,
		Key:    &key,
	}

	resp, err := c.presign.PresignGetObject(ctx, input, s3.WithPresignExpires(ttl))
	if err != nil {
		logx.Error(err, "Failed to generate presigned download URL", "key", key)
		return "", errs.Upstream(err, "Failed to generate share link")
	}

	return resp.URL, nil
}
