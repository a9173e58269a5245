package interfaces

import (
	"context"
	"manifiesto_bot/internal/domain/entities"
)

// ISessionRepository stores one FormSession per conversation.
//
// Get returns a zero FormSession (empty ID) when the session does not exist;
// callers create it on first interaction.

type ISessionRepository interface {
	Get(ctx context.Context, id string) (entities.FormSession, error)
	Save(ctx context.Context, s entities.FormSession) error
}
