package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// AudioArchive stores original recordings for later reference. A nil
// archive disables archiving.
type AudioArchive interface {
	Store(ctx context.Context, r io.Reader, size int64, filename, contentType string) (string, error)
}

// MinioConfig configures the object-storage archive. An empty endpoint
// means archiving is off.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioArchive implements AudioArchive on MinIO.
type MinioArchive struct {
	client *minio.Client
	bucket string
}

// NewMinioArchive connects to MinIO and ensures the bucket exists.
func NewMinioArchive(ctx context.Context, cfg MinioConfig) (*MinioArchive, error) {
	if cfg.Bucket == "" {
		cfg.Bucket = "mscribe-audio"
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &MinioArchive{client: client, bucket: cfg.Bucket}, nil
}

// Store uploads one recording under a unique key and returns the key.
func (a *MinioArchive) Store(ctx context.Context, r io.Reader, size int64, filename, contentType string) (string, error) {
	key := fmt.Sprintf("recordings/%d-%s%s",
		time.Now().Unix(), uuid.New().String()[:8], filepath.Ext(filename))

	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := a.client.PutObject(ctx, a.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", filename, err)
	}
	return key, nil
}
