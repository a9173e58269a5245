package interfaces

import (
	"context"
	"manifiesto_bot/internal/domain/entities"
)

// GenerationRequest carries the nine normalized values of a paid session.
type GenerationRequest struct {
	SessionID string
	Values    map[entities.FieldName]string
}

// GenerationResult is returned when the generator accepted the request.
type GenerationResult struct {
	DocumentRef string
}

// IDocumentGenerator is the generation delegate. Only its binary outcome
// matters to the lifecycle: a nil error is success, anything else a failure.
type IDocumentGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) (GenerationResult, error)
}
