package minio

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/quillpress/identity/internal/logger"
	"github.com/quillpress/identity/internal/model"
)

// ProfilePrefix is where profile documents live inside the content bucket.
const ProfilePrefix = "profiles/"

// Internal adapter interface to enable mocking without a real MinIO server.
type minioAPI interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
}

// Wrapper to adapt *minio.Client to minioAPI.
type minioClientWrapper struct{ c *minio.Client }

func (w minioClientWrapper) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return w.c.BucketExists(ctx, bucketName)
}
func (w minioClientWrapper) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return w.c.MakeBucket(ctx, bucketName, opts)
}
func (w minioClientWrapper) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	return w.c.ListObjects(ctx, bucketName, opts)
}
func (w minioClientWrapper) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	obj, err := w.c.GetObject(ctx, bucketName, objectName, opts)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

// Client reads profile documents out of a content bucket. Documents are
// markdown files with YAML frontmatter (or plain YAML files) stored under
// ProfilePrefix; the slug is the file name without its extension.
type Client struct {
	api    minioAPI
	bucket string
	logger *logger.Logger
}

// NewClient creates a profile source using a real *minio.Client instance.
func NewClient(ctx context.Context, client *minio.Client, bucket string, logger *logger.Logger) (*Client, error) {
	return NewClientWithAPI(ctx, minioClientWrapper{c: client}, bucket, logger)
}

// NewClientWithAPI allows injecting a mockable API (used in tests).
func NewClientWithAPI(ctx context.Context, api minioAPI, bucket string, logger *logger.Logger) (*Client, error) {
	c := &Client{
		api:    api,
		bucket: bucket,
		logger: logger,
	}

	if err := c.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	return c, nil
}

func (c *Client) ensureBucketExists(ctx context.Context) error {
	exists, err := c.api.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = c.api.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return nil
}

// ListProfiles returns the profile documents matching the filter in bucket
// listing order. Malformed documents are skipped with a warning; only a
// listing failure makes the whole call fail.
func (c *Client) ListProfiles(ctx context.Context, filter model.ProfileFilter) ([]model.ProfileRecord, error) {
	objects := c.api.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{
		Prefix:    ProfilePrefix,
		Recursive: true,
	})

	var records []model.ProfileRecord
	for object := range objects {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list profile documents: %w", object.Err)
		}

		slug, ok := slugFromKey(object.Key)
		if !ok {
			continue
		}

		record, err := c.readProfile(ctx, object.Key, slug)
		if err != nil {
			c.logger.Warn("content store: skipping unreadable profile document",
				"object", object.Key,
				"error", err.Error())
			continue
		}

		if filter.Handle != "" && profileHandle(record) != filter.Handle {
			continue
		}

		records = append(records, *record)
	}

	return records, nil
}

func (c *Client) readProfile(ctx context.Context, key, slug string) (*model.ProfileRecord, error) {
	obj, err := c.api.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}

	return parseProfileDocument(slug, path.Ext(key), data)
}

func slugFromKey(key string) (string, bool) {
	base := path.Base(key)
	ext := path.Ext(base)
	switch strings.ToLower(ext) {
	case ".md", ".markdown", ".yaml", ".yml":
		return strings.TrimSuffix(base, ext), true
	default:
		return "", false
	}
}

func profileHandle(record *model.ProfileRecord) string {
	if record.Metadata.Handle != "" {
		return record.Metadata.Handle
	}
	return record.Slug
}
