package generation

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"manifiesto_bot/internal/domain/entities"
	"manifiesto_bot/internal/infrastructure/queue"
	"manifiesto_bot/internal/usecase/interfaces"
)

// Processor is plugged into the asynq worker loop. It renders the queued
// manifiesto, uploads it and records the outcome on the document row.
type Processor struct {
	repo     interfaces.IDocumentRepository
	store    interfaces.IDocumentStorage
	renderer *Renderer
	now      func() time.Time
	// lastAttempt reports whether asynq will give up after this run.
	lastAttempt func(ctx context.Context) bool
}

func NewProcessor(repo interfaces.IDocumentRepository, store interfaces.IDocumentStorage, renderer *Renderer) *Processor {
	return &Processor{repo: repo, store: store, renderer: renderer, now: time.Now, lastAttempt: isLastAttempt}
}

// isLastAttempt treats a context without asynq retry metadata as final.
func isLastAttempt(ctx context.Context) bool {
	retried, ok := asynq.GetRetryCount(ctx)
	if !ok {
		return true
	}
	maxRetry, ok := asynq.GetMaxRetry(ctx)
	if !ok {
		return true
	}
	return retried >= maxRetry
}

// Handler registers the generate job handler.
func (p *Processor) Handler() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.GenerateManifiestoTask, p.HandleGenerate)
	return mux
}

func (p *Processor) HandleGenerate(ctx context.Context, task *asynq.Task) error {
	payload, err := queue.ParseGeneratePayload(task)
	if err != nil {
		// Retrying cannot fix a malformed payload.
		return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
	}
	failure := func(err error) error {
		if !p.lastAttempt(ctx) {
			// The row stays generating until the retries run out.
			log.Printf("[generation][worker] attempt failed, will retry document_id=%s err=%v", payload.DocumentID, err)
			return err
		}
		log.Printf("[generation][worker] failed document_id=%s err=%v", payload.DocumentID, err)
		if markErr := p.repo.MarkFailed(ctx, payload.DocumentID, err.Error()); markErr != nil {
			log.Printf("[generation][worker] mark failed error document_id=%s err=%v", payload.DocumentID, markErr)
		}
		return err
	}

	data, err := p.renderer.Render(Sheet{
		DocumentID:  payload.DocumentID,
		SessionID:   payload.SessionID,
		Values:      fromPayloadValues(payload.Values),
		Fee:         entities.ManifestFee,
		GeneratedAt: p.now(),
	})
	if err != nil {
		return failure(err)
	}
	if err := p.store.Upload(ctx, payload.ObjectKey, data, pdfContentType); err != nil {
		return failure(err)
	}
	text, err := ExtractText(data)
	if err != nil {
		// The file is already stored; only the searchable copy is lost.
		log.Printf("[generation][worker] text extraction failed document_id=%s err=%v", payload.DocumentID, err)
		text = ""
	}
	if err := p.repo.MarkCompleted(ctx, payload.DocumentID, payload.ObjectKey, text); err != nil {
		return failure(err)
	}
	log.Printf("[generation][worker] document %s generated (%d bytes)", payload.DocumentID, len(data))
	return nil
}
