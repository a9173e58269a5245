package usecase

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"manifiesto_bot/internal/domain/entities"
	"manifiesto_bot/internal/domain/validation"
)

var ErrUnrecognizedCorrectionTarget = errors.New("correction names no known field")

// CorrectionPolicy selects how corrections are written.
//
//   - trusted (default): the corrected text is stored as-is, no validation.
//     This is the behaviour users already rely on.
//   - validated: corrections go through the same validator as collection.
type CorrectionPolicy string

const (
	CorrectionTrusted   CorrectionPolicy = "trusted"
	CorrectionValidated CorrectionPolicy = "validated"
)

// ParseCorrectionPolicy falls back to trusted for unknown values.
func ParseCorrectionPolicy(v string) CorrectionPolicy {
	if CorrectionPolicy(strings.ToLower(strings.TrimSpace(v))) == CorrectionValidated {
		return CorrectionValidated
	}
	return CorrectionTrusted
}

// FieldUpdate is one recognised correction.
type FieldUpdate struct {
	Field entities.FieldName
	Value string
}

// CorrectionOutcome lists what a correction changed.
type CorrectionOutcome struct {
	Applied  []entities.FieldName
	Rejected []*validation.RejectionError
}

type CorrectionResolver struct {
	validator *validation.Validator
	policy    CorrectionPolicy
}

func NewCorrectionResolver(v *validation.Validator, policy CorrectionPolicy) *CorrectionResolver {
	return &CorrectionResolver{validator: v, policy: policy}
}

func (r *CorrectionResolver) Policy() CorrectionPolicy {
	return r.policy
}

// Resolve keeps the pairs whose tag is a known field, in the order received.
func (r *CorrectionResolver) Resolve(pairs []entities.Entity) []FieldUpdate {
	updates := make([]FieldUpdate, 0, len(pairs))
	for _, p := range pairs {
		f, ok := entities.ParseFieldName(p.Field)
		if !ok {
			log.Printf("[conversation][correction] ignoring unknown tag=%q", p.Field)
			continue
		}
		updates = append(updates, FieldUpdate{Field: f, Value: p.Value})
	}
	return updates
}

// Apply writes the corrections onto s. Later entries for the same field win.
// With no recognised field nothing changes and ErrUnrecognizedCorrectionTarget
// is returned.
func (r *CorrectionResolver) Apply(s *entities.FormSession, pairs []entities.Entity) (CorrectionOutcome, error) {
	var out CorrectionOutcome
	updates := r.Resolve(pairs)
	if len(updates) == 0 {
		return out, ErrUnrecognizedCorrectionTarget
	}

	seen := make(map[entities.FieldName]bool, len(updates))
	for _, u := range updates {
		if err := r.applyOne(s, u, &out); err != nil {
			return out, err
		}
		if !seen[u.Field] {
			seen[u.Field] = true
			out.Applied = append(out.Applied, u.Field)
		}
	}
	return out, nil
}

func (r *CorrectionResolver) applyOne(s *entities.FormSession, u FieldUpdate, out *CorrectionOutcome) error {
	if r.policy != CorrectionValidated {
		if err := s.TrustedUpdate(u.Field, u.Value); err != nil {
			return fmt.Errorf("trusted update %s: %w", u.Field, err)
		}
		return nil
	}

	res := r.validator.Validate(u.Field, u.Value)
	if !res.OK() {
		out.Rejected = append(out.Rejected, res.Err)
		return s.Reject(u.Field, u.Value)
	}
	return s.Accept(u.Field, u.Value, res.Normalized)
}
