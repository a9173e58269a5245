package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"manifiesto_bot/internal/domain/entities"
)

func fixedValidator() *Validator {
	now := time.Date(2025, time.March, 14, 23, 30, 0, 0, time.UTC)
	return NewValidator(WithClock(func() time.Time { return now }), WithLocation(time.UTC))
}

func TestValidator_EveryFieldHasRule(t *testing.T) {
	for _, f := range entities.FieldOrder {
		if _, ok := rules[f]; !ok {
			t.Fatalf("missing rule for %s", f)
		}
	}
	if len(rules) != len(entities.FieldOrder) {
		t.Fatalf("expected %d rules, got %d", len(entities.FieldOrder), len(rules))
	}
}

func TestValidator_FreightCost(t *testing.T) {
	v := fixedValidator()

	cases := map[string]string{
		"$150,000":    "150000",
		"150000":      "150000",
		" 1.200.000 ": "1200000",
		"$2'500":      "2500",
	}
	for in, want := range cases {
		res := v.Validate(entities.FieldFreightCost, in)
		if !res.OK() || res.Normalized != want {
			t.Fatalf("input %q: expected %q, got %+v", in, want, res)
		}
	}

	for _, in := range []string{"abc", "", "$", "150 000", "12a"} {
		res := v.Validate(entities.FieldFreightCost, in)
		if res.OK() {
			t.Fatalf("input %q: expected rejection, got %q", in, res.Normalized)
		}
		if !errors.Is(res.Err, ErrFieldRejected) {
			t.Fatalf("input %q: expected ErrFieldRejected, got %v", in, res.Err)
		}
		if res.Err.Field != entities.FieldFreightCost || res.Err.Reason != ReasonFreightNotNumeric {
			t.Fatalf("unexpected rejection: %+v", res.Err)
		}
	}
}

func TestValidator_Weight(t *testing.T) {
	v := fixedValidator()

	for _, in := range []string{"500 kg", "1.5 toneladas", "1,5 ton", "700", "20 kilos", "300 Kilogramos", "2t"} {
		res := v.Validate(entities.FieldWeight, in)
		if !res.OK() {
			t.Fatalf("input %q: unexpected rejection %v", in, res.Err)
		}
		if res.Normalized != in {
			t.Fatalf("input %q: expected raw value kept, got %q", in, res.Normalized)
		}
	}

	for _, in := range []string{"kg", "", "mucho", "0x10", "inf", "1.2.3 kg"} {
		res := v.Validate(entities.FieldWeight, in)
		if res.OK() {
			t.Fatalf("input %q: expected rejection", in)
		}
	}
}

func TestValidator_LoadDate(t *testing.T) {
	v := fixedValidator()

	cases := map[string]string{
		"hoy":        "14/03/2025",
		"HOY":        "14/03/2025",
		"mañana":     "15/03/2025",
		"Mañana":     "15/03/2025",
		"20/03/2025": "20/03/2025",
		"5/3/2025":   "05/03/2025",
		"20-03-2025": "20/03/2025",
		"2025-03-21": "21/03/2025",
	}
	for in, want := range cases {
		res := v.Validate(entities.FieldLoadDate, in)
		if !res.OK() || res.Normalized != want {
			t.Fatalf("input %q: expected %q, got %+v", in, want, res)
		}
	}

	for _, in := range []string{"15/13/2024", "ayer", "", "2024/03/01", "31/02/2025"} {
		res := v.Validate(entities.FieldLoadDate, in)
		if res.OK() {
			t.Fatalf("input %q: expected rejection, got %q", in, res.Normalized)
		}
		if res.Err.Reason != ReasonLoadDateFormat {
			t.Fatalf("unexpected reason %q", res.Err.Reason)
		}
	}
}

func TestValidator_LoadDate_UsesConfiguredLocation(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	now := time.Date(2025, time.March, 15, 2, 0, 0, 0, time.UTC) // 14/03 21:00 in Bogotá
	v := NewValidator(WithClock(func() time.Time { return now }), WithLocation(bogota))

	res := v.Validate(entities.FieldLoadDate, "hoy")
	if res.Normalized != "14/03/2025" {
		t.Fatalf("expected local date 14/03/2025, got %q", res.Normalized)
	}
}

func TestValidator_VehiclePlate(t *testing.T) {
	v := fixedValidator()

	cases := map[string]string{
		"abc-123":  "ABC123",
		"ABC 12D":  "ABC12D",
		" xyz987 ": "XYZ987",
	}
	for in, want := range cases {
		res := v.Validate(entities.FieldVehiclePlate, in)
		if !res.OK() || res.Normalized != want {
			t.Fatalf("input %q: expected %q, got %+v", in, want, res)
		}
	}

	for _, in := range []string{"AB1234", "ABCD123", "ABC1234", "AB12", "123ABC", ""} {
		res := v.Validate(entities.FieldVehiclePlate, in)
		if res.OK() {
			t.Fatalf("input %q: expected rejection, got %q", in, res.Normalized)
		}
	}
}

func TestValidator_TextFields(t *testing.T) {
	v := fixedValidator()
	textFields := []entities.FieldName{
		entities.FieldCargoDescription,
		entities.FieldUnloadDate,
		entities.FieldDriverLicense,
		entities.FieldOrigin,
		entities.FieldDestination,
	}
	for _, f := range textFields {
		res := v.Validate(f, "  Bogotá  ")
		if !res.OK() || res.Normalized != "Bogotá" {
			t.Fatalf("%s: expected trimmed value, got %+v", f, res)
		}
		res = v.Validate(f, "   ")
		if res.OK() || res.Err.Reason != ReasonEmpty {
			t.Fatalf("%s: expected empty rejection, got %+v", f, res)
		}
	}
}

func TestValidator_NormalizedValuesAreTrimmed(t *testing.T) {
	v := fixedValidator()
	inputs := map[entities.FieldName]string{
		entities.FieldFreightCost:      " $150,000 ",
		entities.FieldCargoDescription: " café ",
		entities.FieldLoadDate:         " hoy ",
		entities.FieldUnloadDate:       " 20/03/2025 ",
		entities.FieldVehiclePlate:     " abc-123 ",
		entities.FieldDriverLicense:    " 1032456789 ",
		entities.FieldOrigin:           " Medellín ",
		entities.FieldDestination:      " Cali ",
	}
	for f, in := range inputs {
		res := v.Validate(f, in)
		if !res.OK() {
			t.Fatalf("%s: unexpected rejection %v", f, res.Err)
		}
		if res.Normalized == "" || strings.TrimSpace(res.Normalized) != res.Normalized {
			t.Fatalf("%s: normalized value %q is not trimmed", f, res.Normalized)
		}
	}
}

func TestValidator_UnknownField(t *testing.T) {
	v := fixedValidator()
	res := v.Validate(entities.FieldName("color"), "rojo")
	if res.OK() {
		t.Fatalf("expected rejection for unknown field")
	}
}
