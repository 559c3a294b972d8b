// Package objectstore wraps an S3-compatible endpoint (LocalStack or MinIO in
// development) for product image storage.
package objectstore

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/ecommerce-admin/backend/internal/config"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

const uploadFolder = "products"

type Client struct {
	s3        *minio.Client
	bucket    string
	region    string
	publicURL string
}

func NewClient(cfg *config.Storage) (*Client, error) {

	s3, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	return &Client{
		s3:        s3,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

// ensureBucket creates the bucket on first use, matching the dev setup where
// LocalStack starts empty.
func (c *Client) ensureBucket(ctx context.Context) error {

	exists, err := c.s3.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", c.bucket, err)
	}

	if exists {
		return nil
	}

	if err := c.s3.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{Region: c.region}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", c.bucket, err)
	}

	return nil
}

// Upload stores the file under products/<uuid>.<ext> and returns its public URL.
func (c *Client) Upload(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (string, error) {

	if err := c.ensureBucket(ctx); err != nil {
		return "", err
	}

	ext := path.Ext(fileName)
	key := fmt.Sprintf("%s/%s%s", uploadFolder, uuid.NewString(), ext)

	_, err := c.s3.PutObject(ctx, c.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return fmt.Sprintf("%s/%s/%s", c.publicURL, c.bucket, key), nil
}

// Delete removes the object a previously returned URL points at.
func (c *Client) Delete(ctx context.Context, fileURL string) error {

	key, err := c.keyFromURL(fileURL)
	if err != nil {
		return err
	}

	if err := c.s3.RemoveObject(ctx, c.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	return nil
}

func (c *Client) keyFromURL(fileURL string) (string, error) {

	prefix := fmt.Sprintf("%s/%s/", c.publicURL, c.bucket)

	if !strings.HasPrefix(fileURL, prefix) {
		return "", fmt.Errorf("file url %q does not belong to bucket %s", fileURL, c.bucket)
	}

	key := strings.TrimPrefix(fileURL, prefix)
	if key == "" {
		return "", fmt.Errorf("file url %q has no object key", fileURL)
	}

	return key, nil
}

// Ping is used by the health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.s3.BucketExists(ctx, c.bucket)
	return err
}
