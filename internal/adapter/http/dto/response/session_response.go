package response

import (
	"manifiesto_bot/internal/domain/entities"
	"time"
)

type FieldResponse struct {
	Field  string  `json:"field"`
	Label  string  `json:"label"`
	Raw    *string `json:"raw,omitempty"`
	Value  *string `json:"value,omitempty"`
	Filled bool    `json:"filled"`
}

type SessionResponse struct {
	SessionID       string          `json:"session_id"`
	Stage           string          `json:"stage"`
	Fields          []FieldResponse `json:"fields"`
	Missing         []string        `json:"missing"`
	PendingAmount   *int64          `json:"pending_amount,omitempty"`
	PaymentPending  bool            `json:"payment_pending"`
	LastDocumentRef string          `json:"last_document_ref,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// FromFormSession lists fields in prompting order.
func FromFormSession(s entities.FormSession) SessionResponse {
	fields := make([]FieldResponse, 0, len(entities.FieldOrder))
	for _, f := range entities.FieldOrder {
		st := s.Fields[f]
		fields = append(fields, FieldResponse{
			Field:  string(f),
			Label:  f.Spec().Label,
			Raw:    st.Raw,
			Value:  st.Normalized,
			Filled: st.Filled(),
		})
	}
	missing := make([]string, 0)
	for _, f := range s.MissingFields() {
		missing = append(missing, string(f))
	}
	return SessionResponse{
		SessionID:       s.ID,
		Stage:           string(s.Stage),
		Fields:          fields,
		Missing:         missing,
		PendingAmount:   s.PendingAmount,
		PaymentPending:  s.PaymentPending,
		LastDocumentRef: s.LastDocumentRef,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
