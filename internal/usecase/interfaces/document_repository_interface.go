package interfaces

import (
	"context"
	"manifiesto_bot/internal/domain/entities"
)

// IDocumentRepository abstracts Postgres persistence for generated documents.

type IDocumentRepository interface {
	Create(ctx context.Context, d entities.Document) (entities.Document, error)
	GetByID(ctx context.Context, id string) (entities.Document, error)
	ListBySessionID(ctx context.Context, sessionID string) ([]entities.Document, error)
	MarkCompleted(ctx context.Context, id, objectKey, content string) error
	MarkFailed(ctx context.Context, id, msg string) error
}
