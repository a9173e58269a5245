package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"manifiesto_bot/internal/config"
	"manifiesto_bot/internal/usecase/interfaces"
)

// DocumentStorage keeps rendered manifiestos in a MinIO/S3 bucket.
type DocumentStorage struct {
	client *minio.Client
	bucket string
	region string
}

var _ interfaces.IDocumentStorage = (*DocumentStorage)(nil)

// New creates a MinIO client from the Config.
func New(cfg *config.Config) (*DocumentStorage, error) {
	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
		Region: cfg.S3Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}
	return &DocumentStorage{client: client, bucket: cfg.DocumentBucket, region: cfg.S3Region}, nil
}

// EnsureBucket creates the document bucket on first start.
func (s *DocumentStorage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return fmt.Errorf("make bucket %s: %w", s.bucket, err)
	}
	log.Printf("[storage][minio] bucket created bucket=%s", s.bucket)
	return nil
}

func (s *DocumentStorage) Upload(ctx context.Context, objectKey string, data []byte, contentType string) error {
	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), opts); err != nil {
		return fmt.Errorf("upload object %s: %w", objectKey, err)
	}
	return nil
}

// PresignURL returns a signed GET URL for objectKey valid for ttl.
func (s *DocumentStorage) PresignURL(ctx context.Context, objectKey string, ttl time.Duration) (string, error) {
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", path.Base(objectKey)))
	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectKey, ttl, params)
	if err != nil {
		return "", fmt.Errorf("presign object %s: %w", objectKey, err)
	}
	return u.String(), nil
}

// ObjectKey is where a session's document lives inside the bucket.
func ObjectKey(sessionID, documentID string) string {
	return fmt.Sprintf("manifiestos/%s/%s.pdf", sessionID, documentID)
}
