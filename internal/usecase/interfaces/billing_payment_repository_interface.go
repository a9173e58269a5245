package interfaces

import (
	"context"
	"manifiesto_bot/internal/domain/entities"
)

// IBillingPaymentRepository abstracts DynamoDB persistence for BillingPayment.
// ListBySessionID returns the newest payment first.

type IBillingPaymentRepository interface {
	Create(ctx context.Context, p entities.BillingPayment) (entities.BillingPayment, error)
	GetByID(ctx context.Context, id string) (entities.BillingPayment, error)
	ListBySessionID(ctx context.Context, sessionID string) ([]entities.BillingPayment, error)
}
