package generation

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"manifiesto_bot/internal/domain/entities"
	"manifiesto_bot/internal/infrastructure/queue"
	"manifiesto_bot/internal/infrastructure/storage"
	"manifiesto_bot/internal/usecase/interfaces"
)

// QueueGenerator hands generation off to the worker. A request succeeds once
// the document row exists and the job is on the queue; the returned ref is the
// document id, which the API exposes under /documents.
type QueueGenerator struct {
	repo     interfaces.IDocumentRepository
	client   queue.Enqueuer
	maxRetry int
	now      func() time.Time
	newID    func() string
}

var _ interfaces.IDocumentGenerator = (*QueueGenerator)(nil)

func NewQueueGenerator(repo interfaces.IDocumentRepository, client queue.Enqueuer, maxRetry int) *QueueGenerator {
	return &QueueGenerator{
		repo:     repo,
		client:   client,
		maxRetry: maxRetry,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (g *QueueGenerator) Generate(ctx context.Context, req interfaces.GenerationRequest) (interfaces.GenerationResult, error) {
	id := g.newID()
	now := g.now().UTC()
	doc := entities.Document{
		ID:        id,
		SessionID: req.SessionID,
		Type:      entities.DocumentTypeManifiesto,
		FileName:  fileName(id),
		ObjectKey: storage.ObjectKey(req.SessionID, id),
		Status:    entities.DocumentStatusGenerating,
		Entities:  req.Values,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := g.repo.Create(ctx, doc); err != nil {
		log.Printf("[generation][queue] document create failed session_id=%s err=%v", req.SessionID, err)
		return interfaces.GenerationResult{}, fmt.Errorf("create document: %w", err)
	}

	payload := queue.GeneratePayload{
		DocumentID: id,
		SessionID:  req.SessionID,
		ObjectKey:  doc.ObjectKey,
		FileName:   doc.FileName,
		Values:     toPayloadValues(req.Values),
	}
	if err := queue.EnqueueGenerate(ctx, g.client, payload, g.maxRetry); err != nil {
		log.Printf("[generation][queue] enqueue failed session_id=%s document_id=%s err=%v", req.SessionID, id, err)
		if markErr := g.repo.MarkFailed(context.WithoutCancel(ctx), id, err.Error()); markErr != nil {
			log.Printf("[generation][queue] mark failed error document_id=%s err=%v", id, markErr)
		}
		return interfaces.GenerationResult{}, err
	}
	log.Printf("[generation][queue] enqueued session_id=%s document_id=%s", req.SessionID, id)
	return interfaces.GenerationResult{DocumentRef: id}, nil
}

func toPayloadValues(values map[entities.FieldName]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[string(k)] = v
	}
	return out
}

func fromPayloadValues(values map[string]string) map[entities.FieldName]string {
	out := make(map[entities.FieldName]string, len(values))
	for k, v := range values {
		if f, ok := entities.ParseFieldName(k); ok {
			out[f] = v
		}
	}
	return out
}
