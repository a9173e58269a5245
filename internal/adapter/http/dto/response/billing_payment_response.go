package response

import (
	"manifiesto_bot/internal/domain/entities"
	"time"
)

type BillingPaymentResponse struct {
	PaymentID   string    `json:"payment_id"`
	SessionID   string    `json:"session_id"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	PaymentDate time.Time `json:"payment_date"`
	Status      string    `json:"status"`

	MPPayloadRaw string                 `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

func FromBillingPayment(p entities.BillingPayment) BillingPaymentResponse {
	return BillingPaymentResponse{
		PaymentID:    p.ID,
		SessionID:    p.SessionID,
		Amount:       p.Amount,
		Currency:     entities.Currency,
		PaymentDate:  p.Date,
		Status:       string(p.Status),
		MPPayloadRaw: string(p.MPPayloadRaw),
		MPPayload:    p.MPPayload,
	}
}

func FromBillingPayments(list []entities.BillingPayment) []BillingPaymentResponse {
	out := make([]BillingPaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromBillingPayment(p))
	}
	return out
}
