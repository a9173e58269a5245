package request

import (
	"strings"

	"manifiesto_bot/internal/domain/entities"
	"manifiesto_bot/internal/usecase"
)

// EntityRequest is one (field, value) pair extracted by the NLU step.
type EntityRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// TurnRequest is the payload the chat transport posts for every user message.
// Event is already classified (inform, confirm, correct, payment_confirmed,
// generate, reset).
type TurnRequest struct {
	Event    string          `json:"event" binding:"required"`
	Entities []EntityRequest `json:"entities"`
}

func (r TurnRequest) ToTurnInput(sessionID string) usecase.TurnInput {
	pairs := make([]entities.Entity, 0, len(r.Entities))
	for _, e := range r.Entities {
		pairs = append(pairs, entities.Entity{Field: e.Field, Value: e.Value})
	}
	return usecase.TurnInput{
		SessionID: sessionID,
		Event:     usecase.Event(strings.ToLower(strings.TrimSpace(r.Event))),
		Entities:  pairs,
	}
}

// PaymentConfirmRequest is the optional body of the payment delegate. Source
// only ends up in logs (e.g. "user", "pse-return").
type PaymentConfirmRequest struct {
	Source string `json:"source"`
}
