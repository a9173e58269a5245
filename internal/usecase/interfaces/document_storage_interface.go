package interfaces

import (
	"context"
	"time"
)

// IDocumentStorage keeps rendered documents (MinIO/S3).
type IDocumentStorage interface {
	Upload(ctx context.Context, objectKey string, data []byte, contentType string) error
	PresignURL(ctx context.Context, objectKey string, ttl time.Duration) (string, error)
}
