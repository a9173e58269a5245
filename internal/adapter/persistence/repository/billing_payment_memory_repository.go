package repository

import (
	"context"
	"sync"

	"manifiesto_bot/internal/domain/entities"
	"manifiesto_bot/internal/usecase/interfaces"
)

// BillingPaymentMemoryRepository keeps payments next to in-memory sessions.
type BillingPaymentMemoryRepository struct {
	mu       sync.RWMutex
	payments []entities.BillingPayment
}

var _ interfaces.IBillingPaymentRepository = (*BillingPaymentMemoryRepository)(nil)

func NewBillingPaymentMemoryRepository() *BillingPaymentMemoryRepository {
	return &BillingPaymentMemoryRepository{}
}

func (r *BillingPaymentMemoryRepository) Create(_ context.Context, p entities.BillingPayment) (entities.BillingPayment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payments = append(r.payments, p)
	return p, nil
}

func (r *BillingPaymentMemoryRepository) GetByID(_ context.Context, id string) (entities.BillingPayment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return entities.BillingPayment{}, nil
}

func (r *BillingPaymentMemoryRepository) ListBySessionID(_ context.Context, sessionID string) ([]entities.BillingPayment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entities.BillingPayment, 0)
	for i := len(r.payments) - 1; i >= 0; i-- {
		if p := r.payments[i]; p.SessionID == sessionID {
			out = append(out, p)
		}
	}
	return out, nil
}
