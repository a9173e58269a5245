package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"manifiesto_bot/internal/domain/entities"
	"manifiesto_bot/internal/domain/validation"
	"manifiesto_bot/internal/usecase/interfaces"
)

var (
	ErrInvalidSessionID = errors.New("invalid session_id")
	ErrSessionNotFound  = errors.New("session not found")

	// Turn outcomes. They are recovered inside the turn and reported on
	// TurnResult.Outcome, never returned as errors.
	ErrFieldRejected    = validation.ErrFieldRejected
	ErrGenerationFailed = errors.New("document generation failed")
	ErrUnhandledInput   = errors.New("input not handled in current stage")
)

const defaultGenerationTimeout = 30 * time.Second

// Event is the kind of a turn, as decided by the NLU/transport layer.
type Event string

const (
	EventInform           Event = "inform"
	EventConfirm          Event = "confirm"
	EventCorrect          Event = "correct"
	EventPaymentConfirmed Event = "payment_confirmed"
	EventGenerate         Event = "generate"
	EventReset            Event = "reset"
)

// TurnInput is everything the engine needs to process one turn.
type TurnInput struct {
	SessionID string
	Event     Event
	Entities  []entities.Entity
}

// TurnResult is the state diff of one turn plus the outgoing message.
type TurnResult struct {
	SessionID     string
	PreviousStage entities.Stage
	Stage         entities.Stage
	Message       string
	Changed       []entities.FieldName
	Rejected      []*validation.RejectionError
	Outcome       error
	DocumentRef   string
	Session       entities.FormSession
}

// ILifecycleUseCase drives a session through collection, confirmation,
// payment and generation.

type ILifecycleUseCase interface {
	HandleTurn(ctx context.Context, in TurnInput) (TurnResult, error)
	GetSession(ctx context.Context, sessionID string) (entities.FormSession, error)
	Reset(ctx context.Context, sessionID string) (TurnResult, error)
}

type LifecycleUseCase struct {
	repo      interfaces.ISessionRepository
	generator interfaces.IDocumentGenerator
	payments  IBillingPaymentUseCase
	validator *validation.Validator
	resolver  *CorrectionResolver
	locks     *sessionLocks

	now               func() time.Time
	generationTimeout time.Duration
}

var _ ILifecycleUseCase = (*LifecycleUseCase)(nil)

// LifecycleOption tunes a LifecycleUseCase.
type LifecycleOption func(*LifecycleUseCase)

func WithNow(now func() time.Time) LifecycleOption {
	return func(u *LifecycleUseCase) { u.now = now }
}

func WithGenerationTimeout(d time.Duration) LifecycleOption {
	return func(u *LifecycleUseCase) {
		if d > 0 {
			u.generationTimeout = d
		}
	}
}

func NewLifecycleUseCase(
	repo interfaces.ISessionRepository,
	generator interfaces.IDocumentGenerator,
	payments IBillingPaymentUseCase,
	validator *validation.Validator,
	resolver *CorrectionResolver,
	opts ...LifecycleOption,
) *LifecycleUseCase {
	u := &LifecycleUseCase{
		repo:              repo,
		generator:         generator,
		payments:          payments,
		validator:         validator,
		resolver:          resolver,
		locks:             newSessionLocks(),
		now:               time.Now,
		generationTimeout: defaultGenerationTimeout,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *LifecycleUseCase) HandleTurn(ctx context.Context, in TurnInput) (TurnResult, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return TurnResult{}, ErrInvalidSessionID
	}
	unlock := u.locks.lock(sessionID)
	defer unlock()

	s, created, err := u.load(ctx, sessionID)
	if err != nil {
		log.Printf("[conversation][usecase] load failed session_id=%s err=%v", sessionID, err)
		return TurnResult{}, err
	}
	log.Printf("[conversation][usecase] turn start session_id=%s stage=%s event=%s entities=%d", sessionID, s.Stage, in.Event, len(in.Entities))

	res := TurnResult{SessionID: sessionID, PreviousStage: s.Stage}
	dirty := u.dispatch(ctx, &s, in, &res)

	if dirty || created {
		s.UpdatedAt = u.now().UTC()
		if err := u.repo.Save(ctx, s); err != nil {
			log.Printf("[conversation][usecase] save failed session_id=%s err=%v", sessionID, err)
			return TurnResult{}, err
		}
	}
	res.Stage = s.Stage
	res.Session = s
	log.Printf("[conversation][usecase] turn done session_id=%s stage=%s->%s outcome=%v", sessionID, res.PreviousStage, res.Stage, res.Outcome)
	return res, nil
}

func (u *LifecycleUseCase) GetSession(ctx context.Context, sessionID string) (entities.FormSession, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return entities.FormSession{}, ErrInvalidSessionID
	}
	s, err := u.repo.Get(ctx, sessionID)
	if err != nil {
		return entities.FormSession{}, err
	}
	if s.ID == "" {
		return entities.FormSession{}, ErrSessionNotFound
	}
	s.Normalize()
	return s, nil
}

func (u *LifecycleUseCase) Reset(ctx context.Context, sessionID string) (TurnResult, error) {
	return u.HandleTurn(ctx, TurnInput{SessionID: sessionID, Event: EventReset})
}

func (u *LifecycleUseCase) load(ctx context.Context, sessionID string) (entities.FormSession, bool, error) {
	s, err := u.repo.Get(ctx, sessionID)
	if err != nil {
		return entities.FormSession{}, false, err
	}
	if s.ID == "" {
		log.Printf("[conversation][usecase] new session session_id=%s", sessionID)
		return entities.NewFormSession(sessionID, u.now().UTC()), true, nil
	}
	s.Normalize()
	return s, false, nil
}

// dispatch applies the turn to s and fills res. It reports whether s changed.
func (u *LifecycleUseCase) dispatch(ctx context.Context, s *entities.FormSession, in TurnInput, res *TurnResult) bool {
	if in.Event == EventReset {
		s.Reset()
		res.Message = msgResetDone + "\n\n" + promptMessage(entities.FieldOrder[0])
		return true
	}

	switch s.Stage {
	case entities.StageCollecting:
		if in.Event == EventInform {
			return u.collect(s, in.Entities, res)
		}
	case entities.StageReadyForConfirmation:
		switch in.Event {
		case EventConfirm:
			return u.confirm(s, res)
		case EventCorrect:
			return u.correct(s, in.Entities, res)
		}
	case entities.StageAwaitingPayment:
		if in.Event == EventPaymentConfirmed {
			return u.confirmPayment(ctx, s, res)
		}
	case entities.StagePaid:
		if in.Event == EventGenerate {
			return u.generate(ctx, s, res)
		}
	}

	res.Outcome = ErrUnhandledInput
	res.Message = msgFallback
	return false
}

func (u *LifecycleUseCase) collect(s *entities.FormSession, pairs []entities.Entity, res *TurnResult) bool {
	dirty := false
	for _, p := range pairs {
		field, ok := entities.ParseFieldName(p.Field)
		if !ok {
			continue
		}
		dirty = true
		v := u.validator.Validate(field, p.Value)
		if v.OK() {
			_ = s.Accept(field, p.Value, v.Normalized)
		} else {
			_ = s.Reject(field, p.Value)
			res.Rejected = append(res.Rejected, v.Err)
		}
		res.Changed = appendUnique(res.Changed, field)
	}
	if !dirty {
		res.Outcome = ErrUnhandledInput
		res.Message = msgFallback
		return false
	}

	if _, advanced := s.AdvanceIfComplete(); advanced {
		res.Message = summaryMessage(*s)
		return true
	}
	res.Message = u.collectingMessage(*s, res.Rejected)
	if len(res.Rejected) > 0 {
		res.Outcome = ErrFieldRejected
	}
	return true
}

// collectingMessage lists rejections and asks for the next field: the first
// rejected one that is still unfilled, otherwise the first missing one.
func (u *LifecycleUseCase) collectingMessage(s entities.FormSession, rejected []*validation.RejectionError) string {
	parts := make([]string, 0, len(rejected)+1)
	next := entities.FieldName("")
	for _, rej := range rejected {
		parts = append(parts, rejectionMessage(rej))
		if next == "" && !s.Fields[rej.Field].Filled() {
			next = rej.Field
		}
	}
	if next == "" {
		if missing := s.MissingFields(); len(missing) > 0 {
			next = missing[0]
		}
	}
	msg := strings.Join(parts, "\n")
	if next != "" {
		if msg != "" {
			msg += "\n\n"
		}
		msg += promptMessage(next)
	}
	return msg
}

func (u *LifecycleUseCase) confirm(s *entities.FormSession, res *TurnResult) bool {
	if _, err := s.Confirm(); err != nil {
		log.Printf("[conversation][usecase] confirm refused session_id=%s err=%v", s.ID, err)
		res.Outcome = ErrUnhandledInput
		res.Message = msgFallback
		return false
	}
	res.Message = paymentRequestMessage(s.Transaction().Amount)
	return true
}

func (u *LifecycleUseCase) correct(s *entities.FormSession, pairs []entities.Entity, res *TurnResult) bool {
	out, err := u.resolver.Apply(s, pairs)
	if err != nil {
		if !errors.Is(err, ErrUnrecognizedCorrectionTarget) {
			log.Printf("[conversation][usecase] correction failed session_id=%s err=%v", s.ID, err)
		}
		res.Outcome = ErrUnrecognizedCorrectionTarget
		res.Message = msgCorrectionPrompt
		return len(out.Applied) > 0
	}
	res.Changed = out.Applied
	res.Rejected = out.Rejected
	log.Printf("[conversation][usecase] correction applied session_id=%s policy=%s fields=%v", s.ID, u.resolver.Policy(), out.Applied)

	// A rejected entry may be followed by a valid one for the same field, so
	// completeness is rechecked after every correction.
	s.AdvanceIfComplete()
	if len(out.Rejected) > 0 {
		res.Outcome = ErrFieldRejected
		if s.Stage == entities.StageReadyForConfirmation {
			res.Message = rejectionLines(out.Rejected) + "\n\n" + summaryMessage(*s)
		} else {
			res.Message = u.collectingMessage(*s, out.Rejected)
		}
		return true
	}
	res.Message = correctionAppliedMessage(out.Applied, *s)
	return true
}

func (u *LifecycleUseCase) confirmPayment(ctx context.Context, s *entities.FormSession, res *TurnResult) bool {
	amount := s.Transaction().Amount
	if _, err := s.ConfirmPayment(); err != nil {
		res.Outcome = ErrUnhandledInput
		res.Message = msgFallback
		return false
	}
	if u.payments != nil {
		// The record is informative only; the user's assertion already moved
		// the session forward.
		if p, err := u.payments.RecordConfirmed(ctx, s.ID, amount); err != nil {
			log.Printf("[conversation][usecase] payment record failed session_id=%s err=%v", s.ID, err)
		} else {
			log.Printf("[conversation][usecase] payment recorded session_id=%s payment_id=%s", s.ID, p.ID)
		}
	}
	res.Message = msgPaymentReceived
	return true
}

func (u *LifecycleUseCase) generate(ctx context.Context, s *entities.FormSession, res *TurnResult) bool {
	if u.generator == nil {
		res.Outcome = fmt.Errorf("%w: generator not configured", ErrGenerationFailed)
		res.Message = msgGenerationFailed
		return false
	}

	genCtx, cancel := context.WithTimeout(ctx, u.generationTimeout)
	defer cancel()
	out, err := u.generator.Generate(genCtx, interfaces.GenerationRequest{
		SessionID: s.ID,
		Values:    s.Values(),
	})
	if err != nil {
		log.Printf("[conversation][usecase] generation failed session_id=%s err=%v", s.ID, err)
		res.Outcome = fmt.Errorf("%w: %v", ErrGenerationFailed, err)
		res.Message = msgGenerationFailed
		return false
	}

	if _, err := s.CompleteGeneration(out.DocumentRef); err != nil {
		res.Outcome = ErrUnhandledInput
		res.Message = msgFallback
		return false
	}
	log.Printf("[conversation][usecase] generation done session_id=%s document_ref=%s", s.ID, out.DocumentRef)
	res.DocumentRef = out.DocumentRef
	res.Message = fmt.Sprintf(msgGenerationSuccess, out.DocumentRef)
	return true
}

func appendUnique(list []entities.FieldName, f entities.FieldName) []entities.FieldName {
	for _, existing := range list {
		if existing == f {
			return list
		}
	}
	return append(list, f)
}
