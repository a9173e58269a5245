// Package validation turns free-text field input into normalized values.
//
// Validation is pure: it never touches a session and never builds user-facing
// text. Callers decide what to do with a rejection.
package validation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"manifiesto_bot/internal/domain/entities"
)

var ErrFieldRejected = errors.New("field rejected")

// Rejection reasons. Each one is tied to a single field.
const (
	ReasonFreightNotNumeric = "freight_cost must be a whole number"
	ReasonWeightNotNumeric  = "weight must be a number, optionally followed by a unit"
	ReasonLoadDateFormat    = "load_date must be hoy, mañana, DD/MM/YYYY, DD-MM-YYYY or YYYY-MM-DD"
	ReasonPlateFormat       = "vehicle_plate must be three letters, two digits and a letter or digit"
	ReasonEmpty             = "value is empty"
)

// RejectionError carries the field-specific reason of a failed validation.
type RejectionError struct {
	Field  entities.FieldName
	Reason string
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *RejectionError) Unwrap() error {
	return ErrFieldRejected
}

// Result is the outcome of validating one raw value. Exactly one of
// Normalized (when Err is nil) or Err is meaningful.
type Result struct {
	Field      entities.FieldName
	Raw        string
	Normalized string
	Err        *RejectionError
}

// OK reports whether the value was accepted.
func (r Result) OK() bool {
	return r.Err == nil
}

type ruleFunc func(v *Validator, raw string) (string, string)

var rules = map[entities.FieldName]ruleFunc{
	entities.FieldFreightCost:      (*Validator).freightCost,
	entities.FieldCargoDescription: (*Validator).nonEmpty,
	entities.FieldWeight:           (*Validator).weight,
	entities.FieldLoadDate:         (*Validator).loadDate,
	entities.FieldUnloadDate:       (*Validator).nonEmpty,
	entities.FieldVehiclePlate:     (*Validator).vehiclePlate,
	entities.FieldDriverLicense:    (*Validator).nonEmpty,
	entities.FieldOrigin:           (*Validator).nonEmpty,
	entities.FieldDestination:      (*Validator).nonEmpty,
}

// Validator applies the per-field rules. The zero value is not usable; build
// one with NewValidator.
type Validator struct {
	now      func() time.Time
	location *time.Location
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock sets the time source used for hoy and mañana.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) { v.now = now }
}

// WithLocation sets the zone in which "today" is computed.
func WithLocation(loc *time.Location) Option {
	return func(v *Validator) {
		if loc != nil {
			v.location = loc
		}
	}
}

// NewValidator builds a validator. It panics if a known field has no rule.
func NewValidator(opts ...Option) *Validator {
	for _, f := range entities.FieldOrder {
		if _, ok := rules[f]; !ok {
			panic(fmt.Sprintf("validation: no rule for field %s", f))
		}
	}
	v := &Validator{now: time.Now, location: time.Local}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate checks raw against the rule of field.
func (v *Validator) Validate(field entities.FieldName, raw string) Result {
	res := Result{Field: field, Raw: raw}
	rule, ok := rules[field]
	if !ok {
		res.Err = &RejectionError{Field: field, Reason: "unknown field"}
		return res
	}
	normalized, reason := rule(v, raw)
	if reason != "" {
		res.Err = &RejectionError{Field: field, Reason: reason}
		return res
	}
	res.Normalized = normalized
	return res
}

var freightCleaner = strings.NewReplacer("$", "", ",", "", ".", "", "'", "")

func (v *Validator) freightCost(raw string) (string, string) {
	clean := strings.TrimSpace(freightCleaner.Replace(raw))
	if clean == "" || !allDigits(clean) {
		return "", ReasonFreightNotNumeric
	}
	return clean, ""
}

// Longest first so "kilogramos" is not cut down to "ilogramos" by "kg".
var weightUnits = []string{"kilogramos", "toneladas", "kilos", "ton", "kg", "t"}

var decimalPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

func (v *Validator) weight(raw string) (string, string) {
	clean := strings.ToLower(raw)
	for _, unit := range weightUnits {
		clean = strings.ReplaceAll(clean, unit, "")
	}
	clean = strings.ReplaceAll(strings.TrimSpace(clean), ",", ".")
	if !decimalPattern.MatchString(clean) {
		return "", ReasonWeightNotNumeric
	}
	n, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return "", ReasonWeightNotNumeric
	}
	// Units are kept for display.
	return raw, ""
}

// DateLayout is the normalized form of load_date.
const DateLayout = "02/01/2006"

// Accepted in priority order. Day and month may have one or two digits.
var loadDateLayouts = []string{"2/1/2006", "2-1-2006", "2006-1-2"}

func (v *Validator) loadDate(raw string) (string, string) {
	clean := strings.TrimSpace(raw)
	today := v.today()
	switch strings.ToLower(clean) {
	case "hoy":
		return today.Format(DateLayout), ""
	case "mañana":
		return today.AddDate(0, 0, 1).Format(DateLayout), ""
	}
	for _, layout := range loadDateLayouts {
		if t, err := time.Parse(layout, clean); err == nil {
			return t.Format(DateLayout), ""
		}
	}
	return "", ReasonLoadDateFormat
}

var platePattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{2}[A-Z0-9]$`)

var plateCleaner = strings.NewReplacer("-", "", " ", "")

func (v *Validator) vehiclePlate(raw string) (string, string) {
	clean := plateCleaner.Replace(strings.ToUpper(raw))
	if !platePattern.MatchString(clean) {
		return "", ReasonPlateFormat
	}
	return clean, ""
}

func (v *Validator) nonEmpty(raw string) (string, string) {
	clean := strings.TrimSpace(raw)
	if clean == "" {
		return "", ReasonEmpty
	}
	return clean, ""
}

func (v *Validator) today() time.Time {
	now := v.now().In(v.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, v.location)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
