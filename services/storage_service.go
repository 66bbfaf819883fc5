package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dediosardie/dns-maynilad-vmms/config"
)

// StorageService stores uploaded files (fuel receipts, compliance documents,
// maintenance images) in an S3-compatible bucket and hands back a URL.
type StorageService struct {
	client *minio.Client
	bucket string
	secure bool
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &StorageService{
		client: client,
		bucket: cfg.MinioBucket,
		secure: cfg.MinioUseSSL,
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet. Called once at
// startup.
func (s *StorageService) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Upload stores the payload under folder/<date>/<uuid><ext> and returns a
// retrievable URL.
func (s *StorageService) Upload(ctx context.Context, folder, filename, contentType string, data []byte) (string, error) {
	objectName := fmt.Sprintf("%s/%s/%s%s",
		folder,
		time.Now().Format("2006-01-02"),
		uuid.New().String(),
		path.Ext(filename),
	)

	_, err := s.client.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectName, err)
	}

	scheme := "http"
	if s.secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.client.EndpointURL().Host, s.bucket, objectName), nil
}
