package formspec

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-siteforms/pkg/model"
)

func TestDefault_LoadsEmbeddedForms(t *testing.T) {
	store, err := Default()
	if err != nil {
		t.Fatalf("load embedded forms: %v", err)
	}

	if diff := cmp.Diff([]string{"contactForm", "reservationForm"}, store.IDs()); diff != "" {
		t.Fatalf("form ids mismatch (-want +got):\n%s", diff)
	}

	reservation, err := store.Form("reservationForm")
	if err != nil {
		t.Fatalf("reservation form: %v", err)
	}
	var ids []string
	for _, field := range reservation.Fields {
		ids = append(ids, field.ID)
	}
	wantIDs := []string{"firstName", "lastName", "email", "phone", "date", "time", "guests", "specialRequests"}
	if diff := cmp.Diff(wantIDs, ids); diff != "" {
		t.Fatalf("reservation fields mismatch (-want +got):\n%s", diff)
	}
	if reservation.SuccessID != "successMessage" || reservation.ResetID != "makeAnother" {
		t.Fatalf("unexpected panel ids: %+v", reservation)
	}

	first, _ := reservation.Field("firstName")
	if first.MinLength != 2 || !first.Required || first.Messages.Required != "First name is required" {
		t.Fatalf("unexpected firstName spec: %+v", first)
	}

	contact, err := store.Form("contactForm")
	if err != nil {
		t.Fatalf("contact form: %v", err)
	}
	message, ok := contact.Field("message")
	if !ok || message.Kind != model.FieldKindTextArea || message.MinLength != 10 {
		t.Fatalf("unexpected message spec: %+v", message)
	}
}

func TestStore_FormReturnsCopies(t *testing.T) {
	store, err := Default()
	if err != nil {
		t.Fatalf("load embedded forms: %v", err)
	}
	form, _ := store.Form("contactForm")
	form.Fields[0].ID = "mutated"

	again, _ := store.Form("contactForm")
	if again.Fields[0].ID != "contactName" {
		t.Fatalf("store leaked a mutable reference")
	}
}

func TestStore_UnknownForm(t *testing.T) {
	store, _ := LoadFS(nil)
	if !store.Empty() {
		t.Fatalf("expected empty store")
	}
	if _, err := store.Form("nope"); !errors.Is(err, ErrUnknownForm) {
		t.Fatalf("expected ErrUnknownForm, got %v", err)
	}
}

func TestLoadFS_JSONAndSanitizing(t *testing.T) {
	files := fstest.MapFS{
		"newsletter.json": {Data: []byte(`{
  "forms": [{
    "id": "newsletterForm",
    "successId": "newsletterSuccess",
    "resetId": "newsletterAgain",
    "title": "<b>Join</b> us<script>alert(1)</script>",
    "fields": [
      {"id": "subscriberEmail", "kind": "EMAIL", "required": true, "label": "<i>Email</i> & more"}
    ]
  }]
}`)},
		"README.md": {Data: []byte("ignored")},
	}

	store, err := LoadFS(files)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	form, err := store.Form("newsletterForm")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	if form.Title != "Join us" {
		t.Fatalf("expected sanitized title, got %q", form.Title)
	}
	field := form.Fields[0]
	if field.Kind != model.FieldKindEmail {
		t.Fatalf("expected kind to be normalised, got %q", field.Kind)
	}
	if field.Label != "Email & more" {
		t.Fatalf("unexpected label %q", field.Label)
	}
	if form.Source != "newsletter.json" {
		t.Fatalf("unexpected source %q", form.Source)
	}
}

func TestLoadFS_RejectsInvalidDefinitions(t *testing.T) {
	cases := map[string]struct {
		body string
		want string
	}{
		"unknown kind": {
			body: "forms:\n  - id: f\n    successId: s\n    resetId: r\n    fields:\n      - id: a\n        kind: colour\n",
			want: "Kind: oneof",
		},
		"missing success": {
			body: "forms:\n  - id: f\n    resetId: r\n    fields:\n      - id: a\n        kind: text\n",
			want: "SuccessID: required",
		},
		"no fields": {
			body: "forms:\n  - id: f\n    successId: s\n    resetId: r\n",
			want: "Fields: required",
		},
		"duplicate field": {
			body: "forms:\n  - id: f\n    successId: s\n    resetId: r\n    fields:\n      - id: a\n        kind: text\n      - id: a\n        kind: email\n",
			want: `duplicate field "a"`,
		},
		"select without options": {
			body: "forms:\n  - id: f\n    successId: s\n    resetId: r\n    fields:\n      - id: a\n        kind: select\n",
			want: "has no options",
		},
		"negative min length": {
			body: "forms:\n  - id: f\n    successId: s\n    resetId: r\n    fields:\n      - id: a\n        kind: text\n        minLength: -1\n",
			want: "MinLength: gte",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFS(fstest.MapFS{"form.yaml": {Data: []byte(tc.body)}})
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadFS_DuplicateFormAcrossFiles(t *testing.T) {
	body := []byte("forms:\n  - id: f\n    successId: s\n    resetId: r\n    fields:\n      - id: a\n        kind: text\n")
	_, err := LoadFS(fstest.MapFS{
		"a.yaml": {Data: body},
		"b.yml":  {Data: body},
	})
	if err == nil || !strings.Contains(err.Error(), `duplicate form "f"`) {
		t.Fatalf("expected duplicate form error, got %v", err)
	}
}
