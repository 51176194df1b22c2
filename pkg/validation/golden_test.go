package validation_test

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-siteforms/pkg/testsupport"
	"github.com/goliatone/go-siteforms/pkg/validation"
)

func TestValidateForm_ReservationGolden(t *testing.T) {
	values := map[string]string{
		"firstName": " A ",
		"lastName":  "Lovelace",
		"email":     "ada@example",
		"phone":     "(555) 123-4567",
		"date":      "2026-10-15",
		"time":      "19:00",
		"guests":    "7+",
	}
	form := testsupport.Form(t, "reservationForm")
	fields := make([]validation.FieldValue, 0, len(form.Fields))
	for _, field := range form.Fields {
		fields = append(fields, validation.FieldValue{Spec: field, Value: values[field.ID]})
	}
	got := validation.ValidateForm(fields, testsupport.Clock(20)())

	path := filepath.Join("testdata", "reservation_rejected.json")
	if testsupport.WriteMaybeGolden(t, path, got) {
		return
	}
	var want validation.FormResult
	testsupport.LoadGoldenJSON(t, path, &want)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}
