package response

import (
	"encoding/json"
	"testing"
	"time"

	"manifiesto_bot/internal/domain/entities"
)

func TestFromBillingPayment(t *testing.T) {
	now := time.Now().UTC()
	payload := map[string]interface{}{"a": "b"}
	raw := json.RawMessage(`{"id":123}`)

	p := entities.BillingPayment{
		ID:           "pay-1",
		SessionID:    "chat-1",
		Amount:       entities.ManifestFee,
		Date:         now,
		Status:       entities.PaymentStatusAprovado,
		MPPayloadRaw: raw,
		MPPayload:    payload,
	}

	res := FromBillingPayment(p)
	if res.PaymentID != "pay-1" || res.SessionID != "chat-1" {
		t.Fatalf("unexpected ids: %+v", res)
	}
	if res.Amount != 25000 || res.Currency != "COP" || res.Status != "aprovado" {
		t.Fatalf("unexpected fields: %+v", res)
	}
	if !res.PaymentDate.Equal(now) {
		t.Fatalf("unexpected date: %+v", res)
	}
	if res.MPPayloadRaw != string(raw) {
		t.Fatalf("unexpected raw payload: %s", res.MPPayloadRaw)
	}
	if res.MPPayload["a"] != "b" {
		t.Fatalf("unexpected parsed payload: %+v", res.MPPayload)
	}
	if got := FromBillingPayments([]entities.BillingPayment{p, p}); len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
}
