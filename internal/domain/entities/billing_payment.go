package entities

import (
	"encoding/json"
	"time"
)

// PaymentStatus represents the payment processing outcome.
//
// Payment confirmation is asserted by the user; we only record it. The type
// keeps the denied status for completeness.

type PaymentStatus string

const (
	PaymentStatusPendente PaymentStatus = "pendente"
	PaymentStatusAprovado PaymentStatus = "aprovado"
	PaymentStatusNegado   PaymentStatus = "negado"
)

// Currency of every amount handled by the service.
const Currency = "COP"

// BillingPayment is the record written when a session's payment is confirmed.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (session_id-created_at-index): session_id, sorted by created_at
//
// MercadoPago payload:
//   - MPPayloadRaw keeps the provider response (JSON) for traceability.
//   - MPPayload is the parsed representation, useful for debugging.

type BillingPayment struct {
	ID        string        `json:"id"`
	SessionID string        `json:"session_id"`
	Amount    int64         `json:"amount"`
	Date      time.Time     `json:"date"`
	Status    PaymentStatus `json:"status"`

	MPPayloadRaw json.RawMessage        `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}
