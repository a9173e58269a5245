package response

import (
	"errors"

	"manifiesto_bot/internal/usecase"
)

// Outcome codes reported when a turn did not go the happy path.
const (
	OutcomeFieldRejected      = "FIELD_REJECTED"
	OutcomeUnrecognizedTarget = "UNRECOGNIZED_CORRECTION_TARGET"
	OutcomeGenerationFailed   = "GENERATION_FAILED"
	OutcomeUnhandledInput     = "UNHANDLED_INPUT"
)

type RejectionResponse struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

type TurnResponse struct {
	SessionID     string              `json:"session_id"`
	PreviousStage string              `json:"previous_stage"`
	Stage         string              `json:"stage"`
	Message       string              `json:"message"`
	Changed       []string            `json:"changed"`
	Rejections    []RejectionResponse `json:"rejections,omitempty"`
	Outcome       string              `json:"outcome,omitempty"`
	DocumentRef   string              `json:"document_ref,omitempty"`
	Session       SessionResponse     `json:"session"`
}

func FromTurnResult(r usecase.TurnResult) TurnResponse {
	changed := make([]string, 0, len(r.Changed))
	for _, f := range r.Changed {
		changed = append(changed, string(f))
	}
	var rejections []RejectionResponse
	for _, rej := range r.Rejected {
		rejections = append(rejections, RejectionResponse{Field: string(rej.Field), Reason: rej.Reason})
	}
	return TurnResponse{
		SessionID:     r.SessionID,
		PreviousStage: string(r.PreviousStage),
		Stage:         string(r.Stage),
		Message:       r.Message,
		Changed:       changed,
		Rejections:    rejections,
		Outcome:       outcomeCode(r.Outcome),
		DocumentRef:   r.DocumentRef,
		Session:       FromFormSession(r.Session),
	}
}

func outcomeCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, usecase.ErrFieldRejected):
		return OutcomeFieldRejected
	case errors.Is(err, usecase.ErrUnrecognizedCorrectionTarget):
		return OutcomeUnrecognizedTarget
	case errors.Is(err, usecase.ErrGenerationFailed):
		return OutcomeGenerationFailed
	default:
		return OutcomeUnhandledInput
	}
}
