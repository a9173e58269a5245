package entities

import (
	"errors"
	"fmt"
	"time"
)

// Stage is the position of a session in the manifiesto lifecycle.
//
// Forward order: collecting -> ready_for_confirmation -> awaiting_payment ->
// paid -> generated. Reset returns any stage to collecting.

type Stage string

const (
	StageCollecting           Stage = "collecting"
	StageReadyForConfirmation Stage = "ready_for_confirmation"
	StageAwaitingPayment      Stage = "awaiting_payment"
	StagePaid                 Stage = "paid"
	StageGenerated            Stage = "generated"
)

// ManifestFee is the amount charged per generated manifiesto (COP).
const ManifestFee int64 = 25000

var ErrInvalidTransition = errors.New("invalid stage transition")

// Transaction is the payment state owned by a session. Confirmation is a
// trusted user assertion; nothing here is verified against a ledger.
type Transaction struct {
	Amount  int64 `json:"amount"`
	Pending bool  `json:"pending"`
}

// FormSession is the aggregate for one conversation.
//
// Storage model (DynamoDB):
//   - PK: id
//   - expires_at: TTL attribute, the session only lives for the conversation
type FormSession struct {
	ID              string                   `json:"id"`
	Fields          map[FieldName]FieldState `json:"fields"`
	Stage           Stage                    `json:"stage"`
	PendingAmount   *int64                   `json:"pending_amount,omitempty"`
	PaymentPending  bool                     `json:"payment_pending"`
	LastDocumentRef string                   `json:"last_document_ref,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// NewFormSession returns a session in collecting with all nine fields unfilled.
func NewFormSession(id string, now time.Time) FormSession {
	return FormSession{
		ID:        id,
		Fields:    emptyFields(),
		Stage:     StageCollecting,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func emptyFields() map[FieldName]FieldState {
	fields := make(map[FieldName]FieldState, len(FieldOrder))
	for _, f := range FieldOrder {
		fields[f] = FieldState{}
	}
	return fields
}

// Normalize fills in missing field keys and the default stage, e.g. after
// loading an older item.
func (s *FormSession) Normalize() {
	if s.Fields == nil {
		s.Fields = emptyFields()
	}
	for _, f := range FieldOrder {
		if _, ok := s.Fields[f]; !ok {
			s.Fields[f] = FieldState{}
		}
	}
	if s.Stage == "" {
		s.Stage = StageCollecting
	}
}

// Complete reports whether every field is filled.
func (s FormSession) Complete() bool {
	return len(s.MissingFields()) == 0
}

// MissingFields lists unfilled fields in prompting order.
func (s FormSession) MissingFields() []FieldName {
	var out []FieldName
	for _, f := range FieldOrder {
		if !s.Fields[f].Filled() {
			out = append(out, f)
		}
	}
	return out
}

// Values returns the normalized value of every field.
func (s FormSession) Values() map[FieldName]string {
	out := make(map[FieldName]string, len(FieldOrder))
	for _, f := range FieldOrder {
		out[f] = s.Fields[f].Value()
	}
	return out
}

// Transaction returns the current payment state.
func (s FormSession) Transaction() Transaction {
	t := Transaction{Pending: s.PaymentPending}
	if s.PendingAmount != nil {
		t.Amount = *s.PendingAmount
	}
	return t
}

// Accept stores a validated value. Only collecting and ready_for_confirmation
// take field writes.
func (s *FormSession) Accept(field FieldName, raw, normalized string) error {
	if err := s.requireWritable(field); err != nil {
		return err
	}
	s.Fields[field] = FieldState{Raw: strPtr(raw), Normalized: strPtr(normalized)}
	return nil
}

// Reject records a failed validation. The field becomes unfilled even if it
// held an accepted value before, and the session falls back to collecting.
func (s *FormSession) Reject(field FieldName, raw string) error {
	if err := s.requireWritable(field); err != nil {
		return err
	}
	s.Fields[field] = FieldState{Raw: strPtr(raw)}
	if s.Stage != StageCollecting {
		s.Stage = StageCollecting
	}
	return nil
}

// TrustedUpdate writes a correction as both raw and normalized value without
// running the field validator.
func (s *FormSession) TrustedUpdate(field FieldName, value string) error {
	if s.Stage != StageReadyForConfirmation {
		return fmt.Errorf("%w: trusted update in %s", ErrInvalidTransition, s.Stage)
	}
	if !field.Valid() {
		return fmt.Errorf("unknown field %q", field)
	}
	s.Fields[field] = FieldState{Raw: strPtr(value), Normalized: strPtr(value)}
	return nil
}

// AdvanceIfComplete moves collecting to ready_for_confirmation once all nine
// fields are filled. It reports whether the stage changed.
func (s *FormSession) AdvanceIfComplete() (Stage, bool) {
	if s.Stage != StageCollecting || !s.Complete() {
		return s.Stage, false
	}
	s.Stage = StageReadyForConfirmation
	return s.Stage, true
}

// Confirm accepts the summary and opens the payment.
func (s *FormSession) Confirm() (Stage, error) {
	if s.Stage != StageReadyForConfirmation {
		return s.Stage, fmt.Errorf("%w: confirm in %s", ErrInvalidTransition, s.Stage)
	}
	if !s.Complete() {
		return s.Stage, fmt.Errorf("%w: confirm with missing fields", ErrInvalidTransition)
	}
	amount := ManifestFee
	s.PendingAmount = &amount
	s.PaymentPending = true
	s.Stage = StageAwaitingPayment
	return s.Stage, nil
}

// ConfirmPayment takes the user's assertion that the payment was made.
func (s *FormSession) ConfirmPayment() (Stage, error) {
	if s.Stage != StageAwaitingPayment {
		return s.Stage, fmt.Errorf("%w: payment in %s", ErrInvalidTransition, s.Stage)
	}
	s.PendingAmount = nil
	s.PaymentPending = false
	s.Stage = StagePaid
	return s.Stage, nil
}

// CompleteGeneration records a successful generation. Generated is transient:
// the session folds straight back into collecting with everything cleared.
func (s *FormSession) CompleteGeneration(documentRef string) (Stage, error) {
	if s.Stage != StagePaid {
		return s.Stage, fmt.Errorf("%w: generation in %s", ErrInvalidTransition, s.Stage)
	}
	s.Stage = StageGenerated
	s.Reset()
	s.LastDocumentRef = documentRef
	return s.Stage, nil
}

// Reset clears all fields and payment flags. It is idempotent.
func (s *FormSession) Reset() {
	s.Fields = emptyFields()
	s.Stage = StageCollecting
	s.PendingAmount = nil
	s.PaymentPending = false
	s.LastDocumentRef = ""
}

func (s *FormSession) requireWritable(field FieldName) error {
	if !field.Valid() {
		return fmt.Errorf("unknown field %q", field)
	}
	switch s.Stage {
	case StageCollecting, StageReadyForConfirmation:
	default:
		return fmt.Errorf("%w: field write in %s", ErrInvalidTransition, s.Stage)
	}
	if s.Fields == nil {
		s.Fields = emptyFields()
	}
	return nil
}

func strPtr(v string) *string {
	return &v
}
