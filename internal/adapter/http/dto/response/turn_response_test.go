package response

import (
	"fmt"
	"testing"
	"time"

	"manifiesto_bot/internal/domain/entities"
	"manifiesto_bot/internal/domain/validation"
	"manifiesto_bot/internal/usecase"
)

func TestFromTurnResult(t *testing.T) {
	s := entities.NewFormSession("chat-1", time.Now().UTC())
	if err := s.Accept(entities.FieldOrigin, " Cali ", "Cali"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Reject(entities.FieldWeight, "pesado"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := FromTurnResult(usecase.TurnResult{
		SessionID:     "chat-1",
		PreviousStage: entities.StageCollecting,
		Stage:         entities.StageCollecting,
		Message:       "hola",
		Changed:       []entities.FieldName{entities.FieldOrigin, entities.FieldWeight},
		Rejected:      []*validation.RejectionError{{Field: entities.FieldWeight, Reason: validation.ReasonWeightNotNumeric}},
		Outcome:       usecase.ErrFieldRejected,
		Session:       s,
	})

	if res.Outcome != OutcomeFieldRejected {
		t.Fatalf("unexpected outcome: %q", res.Outcome)
	}
	if len(res.Changed) != 2 || res.Changed[0] != "origin" {
		t.Fatalf("unexpected changed: %v", res.Changed)
	}
	if len(res.Rejections) != 1 || res.Rejections[0].Field != "weight" {
		t.Fatalf("unexpected rejections: %+v", res.Rejections)
	}
	if len(res.Session.Fields) != 9 || len(res.Session.Missing) != 8 {
		t.Fatalf("unexpected session snapshot: %+v", res.Session)
	}
	weight := res.Session.Fields[2]
	if weight.Field != "weight" || weight.Filled || weight.Raw == nil || *weight.Raw != "pesado" {
		t.Fatalf("unexpected weight field: %+v", weight)
	}
}

func TestOutcomeCode(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{usecase.ErrUnrecognizedCorrectionTarget, OutcomeUnrecognizedTarget},
		{fmt.Errorf("%w: boom", usecase.ErrGenerationFailed), OutcomeGenerationFailed},
		{usecase.ErrUnhandledInput, OutcomeUnhandledInput},
	}
	for _, tc := range cases {
		if got := outcomeCode(tc.err); got != tc.want {
			t.Fatalf("outcomeCode(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestFromDocumentView(t *testing.T) {
	res := FromDocumentView(usecase.DocumentView{
		Document: entities.Document{
			ID:       "doc-1",
			Status:   entities.DocumentStatusCompleted,
			Entities: map[entities.FieldName]string{entities.FieldOrigin: "Cali"},
		},
		DownloadURL: "https://minio/doc-1",
	})
	if res.DocumentID != "doc-1" || res.Status != "completed" || res.DownloadURL == "" {
		t.Fatalf("unexpected response: %+v", res)
	}
	if res.Entities["origin"] != "Cali" {
		t.Fatalf("unexpected entities: %v", res.Entities)
	}
}
