package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"manifiesto_bot/internal/adapter/persistence/repository"
	"manifiesto_bot/internal/domain/entities"
	"manifiesto_bot/internal/domain/validation"
	"manifiesto_bot/internal/usecase/interfaces"
	mock_interfaces "manifiesto_bot/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

var fixedNow = time.Date(2025, 3, 15, 9, 30, 0, 0, time.UTC)

type fakePayments struct {
	mu      sync.Mutex
	amounts []int64
	err     error
}

func (f *fakePayments) RecordConfirmed(_ context.Context, sessionID string, amount int64) (entities.BillingPayment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.amounts = append(f.amounts, amount)
	if f.err != nil {
		return entities.BillingPayment{}, f.err
	}
	return entities.BillingPayment{ID: "pay-1", SessionID: sessionID, Amount: amount}, nil
}

func (f *fakePayments) GetByID(context.Context, string) (entities.BillingPayment, error) {
	return entities.BillingPayment{}, nil
}

func (f *fakePayments) ListBySessionID(context.Context, string) ([]entities.BillingPayment, error) {
	return nil, nil
}

func newTestValidator() *validation.Validator {
	return validation.NewValidator(
		validation.WithClock(func() time.Time { return fixedNow }),
		validation.WithLocation(time.UTC),
	)
}

func newTestLifecycle(repo interfaces.ISessionRepository, gen interfaces.IDocumentGenerator, payments IBillingPaymentUseCase, policy CorrectionPolicy, opts ...LifecycleOption) *LifecycleUseCase {
	v := newTestValidator()
	opts = append([]LifecycleOption{WithNow(func() time.Time { return fixedNow })}, opts...)
	return NewLifecycleUseCase(repo, gen, payments, v, NewCorrectionResolver(v, policy), opts...)
}

func allFields() []entities.Entity {
	return []entities.Entity{
		{Field: "freight_cost", Value: "$150,000"},
		{Field: "cargo_description", Value: "cajas de café"},
		{Field: "weight", Value: "500 kg"},
		{Field: "load_date", Value: "15/03/2025"},
		{Field: "unload_date", Value: "17/03/2025"},
		{Field: "vehicle_plate", Value: "abc-123"},
		{Field: "driver_license", Value: "1032456789"},
		{Field: "origin", Value: "Medellín"},
		{Field: "destination", Value: "Bogotá"},
	}
}

const expectedSummary = "📋 Revisa los datos del manifiesto:\n\n" +
	"💰 Flete: 150000\n" +
	"📦 Carga: cajas de café\n" +
	"⚖️ Peso: 500 kg\n" +
	"📅 Cargue: 15/03/2025\n" +
	"📅 Descarga: 17/03/2025\n" +
	"🚗 Tarjeta: ABC123\n" +
	"🪪 Licencia: 1032456789\n" +
	"📍 Origen: Medellín\n" +
	"🎯 Destino: Bogotá\n\n" +
	"¿Los datos son correctos? Responde *sí* para continuar o dime qué campo quieres corregir."

func turn(t *testing.T, uc *LifecycleUseCase, in TurnInput) TurnResult {
	t.Helper()
	res, err := uc.HandleTurn(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return res
}

// readySession drives a fresh session to ready_for_confirmation.
func readySession(t *testing.T, uc *LifecycleUseCase, id string) TurnResult {
	t.Helper()
	res := turn(t, uc, TurnInput{SessionID: id, Event: EventInform, Entities: allFields()})
	if res.Stage != entities.StageReadyForConfirmation {
		t.Fatalf("expected ready_for_confirmation, got %s", res.Stage)
	}
	return res
}

func TestLifecycleUseCase_FullFlow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository.NewSessionMemoryRepository()
	gen := mock_interfaces.NewMockIDocumentGenerator(ctrl)
	payments := &fakePayments{}
	uc := newTestLifecycle(repo, gen, payments, CorrectionTrusted)

	res := readySession(t, uc, "chat-1")
	if res.PreviousStage != entities.StageCollecting {
		t.Fatalf("expected previous stage collecting, got %s", res.PreviousStage)
	}
	if res.Message != expectedSummary {
		t.Fatalf("unexpected summary:\n%s", res.Message)
	}
	if len(res.Changed) != len(entities.FieldOrder) {
		t.Fatalf("expected 9 changed fields, got %v", res.Changed)
	}

	res = turn(t, uc, TurnInput{SessionID: "chat-1", Event: EventConfirm})
	if res.Stage != entities.StageAwaitingPayment {
		t.Fatalf("expected awaiting_payment, got %s", res.Stage)
	}
	if res.Message != "💳 Para expedir el manifiesto debes pagar $25.000 COP. Avísame cuando hayas realizado el pago." {
		t.Fatalf("unexpected payment message: %q", res.Message)
	}
	if tx := res.Session.Transaction(); tx.Amount != entities.ManifestFee || !tx.Pending {
		t.Fatalf("unexpected transaction: %+v", tx)
	}

	res = turn(t, uc, TurnInput{SessionID: "chat-1", Event: EventPaymentConfirmed})
	if res.Stage != entities.StagePaid {
		t.Fatalf("expected paid, got %s", res.Stage)
	}
	if res.Message != msgPaymentReceived {
		t.Fatalf("unexpected message: %q", res.Message)
	}
	if len(payments.amounts) != 1 || payments.amounts[0] != entities.ManifestFee {
		t.Fatalf("expected one recorded payment of the fee, got %v", payments.amounts)
	}
	if tx := res.Session.Transaction(); tx.Pending || tx.Amount != 0 {
		t.Fatalf("expected payment flags cleared, got %+v", tx)
	}

	gen.EXPECT().Generate(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, req interfaces.GenerationRequest) (interfaces.GenerationResult, error) {
			if req.SessionID != "chat-1" || req.Values[entities.FieldVehiclePlate] != "ABC123" {
				t.Fatalf("unexpected generation request: %+v", req)
			}
			return interfaces.GenerationResult{DocumentRef: "doc-1"}, nil
		})

	res = turn(t, uc, TurnInput{SessionID: "chat-1", Event: EventGenerate})
	if res.Stage != entities.StageCollecting {
		t.Fatalf("expected collecting after generation, got %s", res.Stage)
	}
	if res.DocumentRef != "doc-1" || res.Session.LastDocumentRef != "doc-1" {
		t.Fatalf("expected document ref doc-1, got %+v", res)
	}
	if res.Message != "✅ Manifiesto generado. Referencia: doc-1\n\nCuando quieras puedes iniciar un nuevo manifiesto." {
		t.Fatalf("unexpected message: %q", res.Message)
	}
	if len(res.Session.MissingFields()) != len(entities.FieldOrder) {
		t.Fatalf("expected all fields cleared after generation")
	}

	stored, err := uc.GetSession(context.Background(), "chat-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Stage != entities.StageCollecting || stored.LastDocumentRef != "doc-1" {
		t.Fatalf("unexpected stored session: %+v", stored)
	}
}

func TestLifecycleUseCase_Collecting(t *testing.T) {
	t.Run("prompts for the next missing field", func(t *testing.T) {
		uc := newTestLifecycle(repository.NewSessionMemoryRepository(), nil, nil, CorrectionTrusted)

		res := turn(t, uc, TurnInput{SessionID: "c", Event: EventInform, Entities: []entities.Entity{{Field: "freight_cost", Value: "150000"}}})
		if res.Stage != entities.StageCollecting {
			t.Fatalf("expected collecting, got %s", res.Stage)
		}
		if res.Message != "📦 ¿Qué mercancía vas a transportar? (ej: cajas de café)" {
			t.Fatalf("unexpected prompt: %q", res.Message)
		}
		if res.Outcome != nil {
			t.Fatalf("expected no outcome, got %v", res.Outcome)
		}
	})

	t.Run("rejection keeps raw and reprompts the field", func(t *testing.T) {
		uc := newTestLifecycle(repository.NewSessionMemoryRepository(), nil, nil, CorrectionTrusted)

		res := turn(t, uc, TurnInput{SessionID: "c", Event: EventInform, Entities: []entities.Entity{{Field: "freight_cost", Value: "mucho"}}})
		if !errors.Is(res.Outcome, ErrFieldRejected) {
			t.Fatalf("expected ErrFieldRejected, got %v", res.Outcome)
		}
		want := "❌ El flete debe ser un valor numérico. Por ejemplo: 150000 o $150,000\n\n💰 ¿Cuál es el valor del flete? (ej: 150000 o $150,000)"
		if res.Message != want {
			t.Fatalf("unexpected message: %q", res.Message)
		}
		st := res.Session.Fields[entities.FieldFreightCost]
		if st.Filled() || st.Raw == nil || *st.Raw != "mucho" {
			t.Fatalf("unexpected field state: %+v", st)
		}
		if len(res.Rejected) != 1 || res.Rejected[0].Field != entities.FieldFreightCost {
			t.Fatalf("unexpected rejections: %+v", res.Rejected)
		}
	})

	t.Run("relative dates resolve against the clock", func(t *testing.T) {
		uc := newTestLifecycle(repository.NewSessionMemoryRepository(), nil, nil, CorrectionTrusted)

		res := turn(t, uc, TurnInput{SessionID: "c", Event: EventInform, Entities: []entities.Entity{{Field: "load_date", Value: "Mañana"}}})
		if got := res.Session.Fields[entities.FieldLoadDate].Value(); got != "16/03/2025" {
			t.Fatalf("expected 16/03/2025, got %q", got)
		}
	})

	t.Run("filled fields stay filled while collecting", func(t *testing.T) {
		uc := newTestLifecycle(repository.NewSessionMemoryRepository(), nil, nil, CorrectionTrusted)

		turn(t, uc, TurnInput{SessionID: "c", Event: EventInform, Entities: []entities.Entity{{Field: "origin", Value: "Cali"}}})
		res := turn(t, uc, TurnInput{SessionID: "c", Event: EventInform, Entities: []entities.Entity{{Field: "weight", Value: "2 toneladas"}}})
		if res.Session.Fields[entities.FieldOrigin].Value() != "Cali" {
			t.Fatalf("expected origin to remain filled")
		}
		if len(res.Session.MissingFields()) != 7 {
			t.Fatalf("expected 7 missing fields, got %v", res.Session.MissingFields())
		}
	})

	t.Run("unknown entities fall back and still create the session", func(t *testing.T) {
		repo := repository.NewSessionMemoryRepository()
		uc := newTestLifecycle(repo, nil, nil, CorrectionTrusted)

		res := turn(t, uc, TurnInput{SessionID: "c", Event: EventInform, Entities: []entities.Entity{{Field: "color", Value: "rojo"}}})
		if res.Message != msgFallback || !errors.Is(res.Outcome, ErrUnhandledInput) {
			t.Fatalf("expected fallback, got %q / %v", res.Message, res.Outcome)
		}
		stored, _ := repo.Get(context.Background(), "c")
		if stored.ID != "c" {
			t.Fatalf("expected session saved on first interaction")
		}
	})
}

func TestLifecycleUseCase_UnhandledEvents(t *testing.T) {
	repo := repository.NewSessionMemoryRepository()
	uc := newTestLifecycle(repo, nil, nil, CorrectionTrusted)

	res := turn(t, uc, TurnInput{SessionID: "c", Event: EventConfirm})
	if res.Stage != entities.StageCollecting || res.Message != msgFallback {
		t.Fatalf("expected fallback in collecting, got %s %q", res.Stage, res.Message)
	}

	readySession(t, uc, "c")
	for _, ev := range []Event{EventInform, EventGenerate, EventPaymentConfirmed, Event("smalltalk")} {
		res := turn(t, uc, TurnInput{SessionID: "c", Event: ev, Entities: []entities.Entity{{Field: "origin", Value: "Cali"}}})
		if res.Stage != entities.StageReadyForConfirmation {
			t.Fatalf("event %s changed stage to %s", ev, res.Stage)
		}
		if !errors.Is(res.Outcome, ErrUnhandledInput) || res.Message != msgFallback {
			t.Fatalf("event %s: expected fallback, got %v %q", ev, res.Outcome, res.Message)
		}
		if res.Session.Fields[entities.FieldOrigin].Value() != "Medellín" {
			t.Fatalf("event %s modified a field", ev)
		}
	}
}

func TestLifecycleUseCase_Correction(t *testing.T) {
	t.Run("trusted correction overwrites the field", func(t *testing.T) {
		uc := newTestLifecycle(repository.NewSessionMemoryRepository(), nil, nil, CorrectionTrusted)
		readySession(t, uc, "c")

		res := turn(t, uc, TurnInput{SessionID: "c", Event: EventCorrect, Entities: []entities.Entity{{Field: "origin", Value: "Bogotá"}}})
		if res.Stage != entities.StageReadyForConfirmation {
			t.Fatalf("expected ready_for_confirmation, got %s", res.Stage)
		}
		if got := res.Session.Fields[entities.FieldOrigin].Value(); got != "Bogotá" {
			t.Fatalf("expected Bogotá, got %q", got)
		}
		if !strings.HasPrefix(res.Message, "✏️ Actualicé: Origen.\n\n📋 Revisa los datos del manifiesto:") {
			t.Fatalf("unexpected message: %q", res.Message)
		}
		if !strings.Contains(res.Message, "📍 Origen: Bogotá\n") {
			t.Fatalf("expected summary to show the new origin: %q", res.Message)
		}
	})

	t.Run("trusted correction skips validation", func(t *testing.T) {
		uc := newTestLifecycle(repository.NewSessionMemoryRepository(), nil, nil, CorrectionTrusted)
		readySession(t, uc, "c")

		res := turn(t, uc, TurnInput{SessionID: "c", Event: EventCorrect, Entities: []entities.Entity{{Field: "vehicle_plate", Value: "XYZ"}}})
		if res.Stage != entities.StageReadyForConfirmation || res.Outcome != nil {
			t.Fatalf("expected trusted write, got %s %v", res.Stage, res.Outcome)
		}
		if got := res.Session.Fields[entities.FieldVehiclePlate].Value(); got != "XYZ" {
			t.Fatalf("expected XYZ stored as-is, got %q", got)
		}
	})

	t.Run("unrecognized target asks which field", func(t *testing.T) {
		uc := newTestLifecycle(repository.NewSessionMemoryRepository(), nil, nil, CorrectionTrusted)
		readySession(t, uc, "c")

		res := turn(t, uc, TurnInput{SessionID: "c", Event: EventCorrect, Entities: []entities.Entity{{Field: "color", Value: "rojo"}}})
		if !errors.Is(res.Outcome, ErrUnrecognizedCorrectionTarget) {
			t.Fatalf("expected ErrUnrecognizedCorrectionTarget, got %v", res.Outcome)
		}
		if res.Message != msgCorrectionPrompt || res.Stage != entities.StageReadyForConfirmation {
			t.Fatalf("unexpected result: %s %q", res.Stage, res.Message)
		}
	})

	t.Run("validated correction rejects and reopens collecting", func(t *testing.T) {
		uc := newTestLifecycle(repository.NewSessionMemoryRepository(), nil, nil, CorrectionValidated)
		readySession(t, uc, "c")

		res := turn(t, uc, TurnInput{SessionID: "c", Event: EventCorrect, Entities: []entities.Entity{{Field: "vehicle_plate", Value: "XYZ"}}})
		if res.Stage != entities.StageCollecting {
			t.Fatalf("expected collecting, got %s", res.Stage)
		}
		if !errors.Is(res.Outcome, ErrFieldRejected) {
			t.Fatalf("expected ErrFieldRejected, got %v", res.Outcome)
		}
		want := "❌ La placa debe tener el formato ABC123.\n\n🚗 ¿Cuál es la placa del vehículo? (ej: ABC123)"
		if res.Message != want {
			t.Fatalf("unexpected message: %q", res.Message)
		}

		res = turn(t, uc, TurnInput{SessionID: "c", Event: EventInform, Entities: []entities.Entity{{Field: "vehicle_plate", Value: "XYZ 98A"}}})
		if res.Stage != entities.StageReadyForConfirmation {
			t.Fatalf("expected ready again, got %s", res.Stage)
		}
		if got := res.Session.Fields[entities.FieldVehiclePlate].Value(); got != "XYZ98A" {
			t.Fatalf("expected XYZ98A, got %q", got)
		}
	})

	t.Run("validated correction with a later valid entry for the same field", func(t *testing.T) {
		uc := newTestLifecycle(repository.NewSessionMemoryRepository(), nil, nil, CorrectionValidated)
		readySession(t, uc, "c")

		res := turn(t, uc, TurnInput{SessionID: "c", Event: EventCorrect, Entities: []entities.Entity{
			{Field: "origin", Value: "  "},
			{Field: "origin", Value: "Cali"},
		}})
		if res.Stage != entities.StageReadyForConfirmation {
			t.Fatalf("expected ready_for_confirmation, got %s", res.Stage)
		}
		if missing := res.Session.MissingFields(); len(missing) != 0 {
			t.Fatalf("expected no missing fields, got %v", missing)
		}
		if got := res.Session.Fields[entities.FieldOrigin].Value(); got != "Cali" {
			t.Fatalf("expected Cali, got %q", got)
		}
		if !errors.Is(res.Outcome, ErrFieldRejected) {
			t.Fatalf("expected ErrFieldRejected, got %v", res.Outcome)
		}
		if !strings.HasPrefix(res.Message, "❌ El campo origen no puede estar vacío.\n\n📋 Revisa los datos del manifiesto:") {
			t.Fatalf("unexpected message: %q", res.Message)
		}
		if !strings.Contains(res.Message, "📍 Origen: Cali\n") {
			t.Fatalf("expected summary to show the new origin: %q", res.Message)
		}

		res = turn(t, uc, TurnInput{SessionID: "c", Event: EventConfirm})
		if res.Stage != entities.StageAwaitingPayment || res.Outcome != nil {
			t.Fatalf("expected awaiting_payment after confirm, got %s %v", res.Stage, res.Outcome)
		}
	})

	t.Run("validated correction accepts valid values", func(t *testing.T) {
		uc := newTestLifecycle(repository.NewSessionMemoryRepository(), nil, nil, CorrectionValidated)
		readySession(t, uc, "c")

		res := turn(t, uc, TurnInput{SessionID: "c", Event: EventCorrect, Entities: []entities.Entity{{Field: "freight_cost", Value: "$200.000"}}})
		if res.Stage != entities.StageReadyForConfirmation || res.Outcome != nil {
			t.Fatalf("unexpected result: %s %v", res.Stage, res.Outcome)
		}
		if got := res.Session.Fields[entities.FieldFreightCost].Value(); got != "200000" {
			t.Fatalf("expected 200000, got %q", got)
		}
	})
}

func TestLifecycleUseCase_Payment(t *testing.T) {
	t.Run("record failure does not block the transition", func(t *testing.T) {
		payments := &fakePayments{err: errors.New("dynamo down")}
		uc := newTestLifecycle(repository.NewSessionMemoryRepository(), nil, payments, CorrectionTrusted)
		readySession(t, uc, "c")
		turn(t, uc, TurnInput{SessionID: "c", Event: EventConfirm})

		res := turn(t, uc, TurnInput{SessionID: "c", Event: EventPaymentConfirmed})
		if res.Stage != entities.StagePaid || res.Outcome != nil {
			t.Fatalf("expected paid, got %s %v", res.Stage, res.Outcome)
		}
	})
}

func TestLifecycleUseCase_Generation(t *testing.T) {
	paidSession := func(t *testing.T, uc *LifecycleUseCase) {
		t.Helper()
		readySession(t, uc, "c")
		turn(t, uc, TurnInput{SessionID: "c", Event: EventConfirm})
		turn(t, uc, TurnInput{SessionID: "c", Event: EventPaymentConfirmed})
	}

	t.Run("failure keeps the session paid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gen := mock_interfaces.NewMockIDocumentGenerator(ctrl)
		uc := newTestLifecycle(repository.NewSessionMemoryRepository(), gen, nil, CorrectionTrusted)
		paidSession(t, uc)

		gen.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(interfaces.GenerationResult{}, errors.New("renderer down"))
		res := turn(t, uc, TurnInput{SessionID: "c", Event: EventGenerate})
		if res.Stage != entities.StagePaid {
			t.Fatalf("expected paid, got %s", res.Stage)
		}
		if !errors.Is(res.Outcome, ErrGenerationFailed) || res.Message != msgGenerationFailed {
			t.Fatalf("unexpected result: %v %q", res.Outcome, res.Message)
		}
		if res.Session.Fields[entities.FieldOrigin].Value() != "Medellín" {
			t.Fatalf("expected fields preserved")
		}

		gen.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(interfaces.GenerationResult{DocumentRef: "doc-2"}, nil)
		res = turn(t, uc, TurnInput{SessionID: "c", Event: EventGenerate})
		if res.Stage != entities.StageCollecting || res.DocumentRef != "doc-2" {
			t.Fatalf("expected retry to succeed, got %s %q", res.Stage, res.DocumentRef)
		}
	})

	t.Run("timeout counts as failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		gen := mock_interfaces.NewMockIDocumentGenerator(ctrl)
		uc := newTestLifecycle(repository.NewSessionMemoryRepository(), gen, nil, CorrectionTrusted, WithGenerationTimeout(10*time.Millisecond))
		paidSession(t, uc)

		gen.EXPECT().Generate(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, _ interfaces.GenerationRequest) (interfaces.GenerationResult, error) {
				<-ctx.Done()
				return interfaces.GenerationResult{}, ctx.Err()
			})
		res := turn(t, uc, TurnInput{SessionID: "c", Event: EventGenerate})
		if res.Stage != entities.StagePaid || !errors.Is(res.Outcome, ErrGenerationFailed) {
			t.Fatalf("expected failure in paid, got %s %v", res.Stage, res.Outcome)
		}
	})

	t.Run("missing generator counts as failure", func(t *testing.T) {
		uc := newTestLifecycle(repository.NewSessionMemoryRepository(), nil, nil, CorrectionTrusted)
		paidSession(t, uc)

		res := turn(t, uc, TurnInput{SessionID: "c", Event: EventGenerate})
		if res.Stage != entities.StagePaid || !errors.Is(res.Outcome, ErrGenerationFailed) {
			t.Fatalf("expected failure in paid, got %s %v", res.Stage, res.Outcome)
		}
	})
}

func TestLifecycleUseCase_Reset(t *testing.T) {
	uc := newTestLifecycle(repository.NewSessionMemoryRepository(), nil, nil, CorrectionTrusted)
	readySession(t, uc, "c")
	turn(t, uc, TurnInput{SessionID: "c", Event: EventConfirm})

	want := "🔄 Listo, empecemos de nuevo.\n\n💰 ¿Cuál es el valor del flete? (ej: 150000 o $150,000)"
	for i := 0; i < 2; i++ {
		res, err := uc.Reset(context.Background(), "c")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Stage != entities.StageCollecting || res.Message != want {
			t.Fatalf("reset %d: unexpected result %s %q", i, res.Stage, res.Message)
		}
		if tx := res.Session.Transaction(); tx.Pending {
			t.Fatalf("reset %d: expected payment cleared", i)
		}
		if len(res.Session.MissingFields()) != len(entities.FieldOrder) {
			t.Fatalf("reset %d: expected all fields cleared", i)
		}
	}
}

func TestLifecycleUseCase_Errors(t *testing.T) {
	t.Run("empty session id", func(t *testing.T) {
		uc := newTestLifecycle(repository.NewSessionMemoryRepository(), nil, nil, CorrectionTrusted)
		if _, err := uc.HandleTurn(context.Background(), TurnInput{SessionID: "  ", Event: EventInform}); !errors.Is(err, ErrInvalidSessionID) {
			t.Fatalf("expected ErrInvalidSessionID, got %v", err)
		}
		if _, err := uc.GetSession(context.Background(), ""); !errors.Is(err, ErrInvalidSessionID) {
			t.Fatalf("expected ErrInvalidSessionID, got %v", err)
		}
	})

	t.Run("session not found", func(t *testing.T) {
		uc := newTestLifecycle(repository.NewSessionMemoryRepository(), nil, nil, CorrectionTrusted)
		if _, err := uc.GetSession(context.Background(), "missing"); !errors.Is(err, ErrSessionNotFound) {
			t.Fatalf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("repository get error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISessionRepository(ctrl)
		uc := newTestLifecycle(repo, nil, nil, CorrectionTrusted)

		boom := errors.New("dynamo down")
		repo.EXPECT().Get(gomock.Any(), "c").Return(entities.FormSession{}, boom)
		if _, err := uc.HandleTurn(context.Background(), TurnInput{SessionID: "c", Event: EventInform}); !errors.Is(err, boom) {
			t.Fatalf("expected repository error, got %v", err)
		}
	})

	t.Run("repository save error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISessionRepository(ctrl)
		uc := newTestLifecycle(repo, nil, nil, CorrectionTrusted)

		boom := errors.New("throttled")
		repo.EXPECT().Get(gomock.Any(), "c").Return(entities.FormSession{}, nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(boom)
		_, err := uc.HandleTurn(context.Background(), TurnInput{SessionID: "c", Event: EventInform, Entities: []entities.Entity{{Field: "origin", Value: "Cali"}}})
		if !errors.Is(err, boom) {
			t.Fatalf("expected save error, got %v", err)
		}
	})

	t.Run("unchanged existing session is not saved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockISessionRepository(ctrl)
		uc := newTestLifecycle(repo, nil, nil, CorrectionTrusted)

		repo.EXPECT().Get(gomock.Any(), "c").Return(entities.NewFormSession("c", fixedNow), nil)
		res, err := uc.HandleTurn(context.Background(), TurnInput{SessionID: "c", Event: EventConfirm})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Message != msgFallback {
			t.Fatalf("expected fallback, got %q", res.Message)
		}
	})
}

func TestLifecycleUseCase_ConcurrentTurnsOnOneSession(t *testing.T) {
	uc := newTestLifecycle(repository.NewSessionMemoryRepository(), nil, nil, CorrectionTrusted)

	var wg sync.WaitGroup
	for _, e := range allFields() {
		wg.Add(1)
		go func(e entities.Entity) {
			defer wg.Done()
			if _, err := uc.HandleTurn(context.Background(), TurnInput{SessionID: "c", Event: EventInform, Entities: []entities.Entity{e}}); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}(e)
	}
	wg.Wait()

	s, err := uc.GetSession(context.Background(), "c")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Stage != entities.StageReadyForConfirmation || !s.Complete() {
		t.Fatalf("expected every turn applied, got stage %s missing %v", s.Stage, s.MissingFields())
	}
	if uc.locks.size() != 0 {
		t.Fatalf("expected lock table drained, got %d", uc.locks.size())
	}
}
