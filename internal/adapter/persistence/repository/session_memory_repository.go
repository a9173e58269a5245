package repository

import (
	"context"
	"sync"

	"manifiesto_bot/internal/domain/entities"
	"manifiesto_bot/internal/usecase/interfaces"
)

// SessionMemoryRepository keeps sessions in process memory. It backs local
// runs and the CLI; sessions vanish with the process.
type SessionMemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]entities.FormSession
}

var _ interfaces.ISessionRepository = (*SessionMemoryRepository)(nil)

func NewSessionMemoryRepository() *SessionMemoryRepository {
	return &SessionMemoryRepository{sessions: make(map[string]entities.FormSession)}
}

func (r *SessionMemoryRepository) Get(_ context.Context, id string) (entities.FormSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return entities.FormSession{}, nil
	}
	return cloneSession(s), nil
}

func (r *SessionMemoryRepository) Save(_ context.Context, s entities.FormSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = cloneSession(s)
	return nil
}

// cloneSession copies the field map so callers never share state with the store.
func cloneSession(s entities.FormSession) entities.FormSession {
	out := s
	out.Fields = make(map[entities.FieldName]entities.FieldState, len(s.Fields))
	for k, v := range s.Fields {
		out.Fields[k] = v
	}
	if s.PendingAmount != nil {
		amount := *s.PendingAmount
		out.PendingAmount = &amount
	}
	return out
}
