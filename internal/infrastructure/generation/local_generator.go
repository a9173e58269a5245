package generation

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"manifiesto_bot/internal/domain/entities"
	"manifiesto_bot/internal/usecase/interfaces"
)

// LocalGenerator renders synchronously into a directory. The ref is the path
// of the written file. Used by the CLI and by deployments without a worker.
type LocalGenerator struct {
	renderer *Renderer
	dir      string
	now      func() time.Time
	newID    func() string
}

var _ interfaces.IDocumentGenerator = (*LocalGenerator)(nil)

func NewLocalGenerator(renderer *Renderer, dir string) *LocalGenerator {
	return &LocalGenerator{renderer: renderer, dir: dir, now: time.Now, newID: uuid.NewString}
}

func (g *LocalGenerator) Generate(ctx context.Context, req interfaces.GenerationRequest) (interfaces.GenerationResult, error) {
	if err := ctx.Err(); err != nil {
		return interfaces.GenerationResult{}, err
	}
	id := g.newID()
	data, err := g.renderer.Render(Sheet{
		DocumentID:  id,
		SessionID:   req.SessionID,
		Values:      req.Values,
		Fee:         entities.ManifestFee,
		GeneratedAt: g.now(),
	})
	if err != nil {
		return interfaces.GenerationResult{}, err
	}

	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return interfaces.GenerationResult{}, fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(g.dir, fileName(id))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return interfaces.GenerationResult{}, fmt.Errorf("write document: %w", err)
	}
	log.Printf("[generation][local] written session_id=%s path=%s bytes=%d", req.SessionID, path, len(data))
	return interfaces.GenerationResult{DocumentRef: path}, nil
}
