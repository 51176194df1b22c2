package validation_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-siteforms/pkg/model"
	"github.com/goliatone/go-siteforms/pkg/validation"
)

var fixedNow = time.Date(2026, time.October, 16, 21, 45, 0, 0, time.Local)

func TestValidateField_Email(t *testing.T) {
	spec := model.FieldSpec{ID: "email", Kind: model.FieldKindEmail, Required: true}

	invalid := []string{"jo", "jo@x", "jo.x.com", "jo@@x.com", "jo @x.com", "jo@ x.com", "@x.com", "jo@.", "jo@x.",
		"jo\u00a0smith@x.com", "jo@ex\u2003ample.com", "jo@x.c\u3000om", "jo\u2028@x.com", "jo@x\ufeff.com", "jo\v@x.com"}
	for _, value := range invalid {
		res := validation.ValidateField(spec, value, fixedNow)
		if res.Valid {
			t.Errorf("expected %q to be invalid", value)
		}
		if res.Message != "Please enter a valid email address" {
			t.Errorf("unexpected message for %q: %q", value, res.Message)
		}
	}

	for _, value := range []string{"jo@x.com", "  jo@x.com  ", "first.last@sub.example.co"} {
		if res := validation.ValidateField(spec, value, fixedNow); !res.Valid {
			t.Errorf("expected %q to be valid, got %q", value, res.Message)
		}
	}
}

func TestValidateField_Phone(t *testing.T) {
	spec := model.FieldSpec{ID: "phone", Kind: model.FieldKindTel, Required: true}

	cases := map[string]bool{
		"(555) 123-4567":   true,
		"5551234567":       true,
		"+1 555 123 4567":  true,
		"555-1234":         false,
		"phone: 123456789": false,
	}
	for value, want := range cases {
		if got := validation.ValidateField(spec, value, fixedNow).Valid; got != want {
			t.Errorf("phone %q: want valid=%v, got %v", value, want, got)
		}
	}

	if got := validation.DigitCount("(555) 123-4567"); got != 10 {
		t.Fatalf("expected 10 digits, got %d", got)
	}
}

func TestValidateField_DateUsesCalendarDay(t *testing.T) {
	spec := model.FieldSpec{ID: "date", Kind: model.FieldKindDate, Required: true}

	cases := []struct {
		value string
		want  bool
	}{
		{value: "2026-10-15", want: false},
		{value: "2026-10-16", want: true},
		{value: "2026-10-17", want: true},
		{value: "2027-01-01", want: true},
		{value: "16/10/2026", want: false},
	}
	for _, tc := range cases {
		res := validation.ValidateField(spec, tc.value, fixedNow)
		if res.Valid != tc.want {
			t.Errorf("date %q: want valid=%v, got %v (%q)", tc.value, tc.want, res.Valid, res.Message)
		}
	}

	earlyMorning := time.Date(2026, time.October, 16, 0, 0, 1, 0, time.Local)
	if res := validation.ValidateField(spec, "2026-10-16", earlyMorning); !res.Valid {
		t.Fatalf("today must stay valid regardless of time of day")
	}
}

func TestValidateField_TextMinLengthAndRequired(t *testing.T) {
	spec := model.FieldSpec{
		ID:        "firstName",
		Kind:      model.FieldKindText,
		Required:  true,
		MinLength: 2,
		Messages: model.Messages{
			Required:  "First name is required",
			MinLength: "First name must be at least 2 characters",
		},
	}

	got := []model.ValidationResult{
		validation.ValidateField(spec, "", fixedNow),
		validation.ValidateField(spec, "   ", fixedNow),
		validation.ValidateField(spec, "A", fixedNow),
		validation.ValidateField(spec, "Al", fixedNow),
		validation.ValidateField(spec, " Zoë ", fixedNow),
	}
	want := []model.ValidationResult{
		{FieldID: "firstName", Valid: false, Message: "First name is required"},
		{FieldID: "firstName", Valid: false, Message: "First name is required"},
		{FieldID: "firstName", Valid: false, Message: "First name must be at least 2 characters"},
		{FieldID: "firstName", Valid: true},
		{FieldID: "firstName", Valid: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateField_DefaultMessages(t *testing.T) {
	res := validation.ValidateField(model.FieldSpec{ID: "notes", Kind: model.FieldKindText, Required: true}, "", fixedNow)
	if res.Valid || res.Message != "This field is required" {
		t.Fatalf("unexpected result: %+v", res)
	}

	res = validation.ValidateField(model.FieldSpec{ID: "message", Kind: model.FieldKindTextArea, MinLength: 10}, "short", fixedNow)
	if res.Valid || res.Message != "Must be at least 10 characters" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestValidateField_OptionalEmptyPasses(t *testing.T) {
	for _, kind := range model.Kinds() {
		spec := model.FieldSpec{ID: "opt", Kind: kind, MinLength: 5}
		if res := validation.ValidateField(spec, "  ", fixedNow); !res.Valid {
			t.Errorf("optional %s field should accept empty input", kind)
		}
	}
}

func TestValidateForm_EvaluatesEveryField(t *testing.T) {
	fields := []validation.FieldValue{
		{Spec: model.FieldSpec{ID: "name", Kind: model.FieldKindText, Required: true, MinLength: 2}, Value: ""},
		{Spec: model.FieldSpec{ID: "email", Kind: model.FieldKindEmail, Required: true}, Value: "nope"},
		{Spec: model.FieldSpec{ID: "subject", Kind: model.FieldKindSelect, Required: true}, Value: "general"},
	}

	result := validation.ValidateForm(fields, fixedNow)
	if result.Valid {
		t.Fatalf("expected form to be invalid")
	}
	if len(result.Results) != 3 {
		t.Fatalf("expected a result per field, got %d", len(result.Results))
	}

	wantMessages := map[string][]string{
		"name":  {"This field is required"},
		"email": {"Please enter a valid email address"},
	}
	if diff := cmp.Diff(wantMessages, result.Messages()); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	if got := len(result.Failed()); got != 2 {
		t.Fatalf("expected 2 failures, got %d", got)
	}

	reversed := []validation.FieldValue{fields[2], fields[1], fields[0]}
	if validation.ValidateForm(reversed, fixedNow).Valid != result.Valid {
		t.Fatalf("field order must not change the outcome")
	}
}

func TestValidateForm_AllValid(t *testing.T) {
	result := validation.ValidateForm([]validation.FieldValue{
		{Spec: model.FieldSpec{ID: "email", Kind: model.FieldKindEmail, Required: true}, Value: "jo@x.com"},
	}, fixedNow)
	if !result.Valid || result.Messages() != nil {
		t.Fatalf("expected a clean pass, got %+v", result)
	}
}

func TestMinDate(t *testing.T) {
	if got := validation.MinDate(fixedNow); got != "2026-10-16" {
		t.Fatalf("unexpected min date %q", got)
	}
}

func TestRegisterValidators(t *testing.T) {
	v, err := validation.NewValidator(func() time.Time { return fixedNow })
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	type booking struct {
		Email string `validate:"required,site_email"`
		Phone string `validate:"site_phone"`
		Date  string `validate:"site_date"`
	}

	if err := v.Struct(booking{Email: "jo@x.com", Phone: "5551234567", Date: "2026-10-16"}); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}
	if err := v.Struct(booking{Email: "jo@x.com"}); err != nil {
		t.Fatalf("empty optional tags should pass, got %v", err)
	}
	if err := v.Struct(booking{Email: "jo@x", Phone: "555-1234", Date: "2026-10-15"}); err == nil {
		t.Fatalf("expected validation failure")
	}
}
