package render

import (
	"strings"

	"github.com/goliatone/go-siteforms/pkg/dom"
	"github.com/goliatone/go-siteforms/pkg/model"
)

// MessageSeparator joins multiple messages written into one error slot.
const MessageSeparator = " "

// Results writes each result into the document: failing fields get their
// message and the error class, passing fields have both cleared. Running it
// twice with the same results leaves the document unchanged. Fields whose
// input or error slot is missing are skipped silently.
func Results(doc dom.Document, results []model.ValidationResult) {
	for _, res := range results {
		if res.Valid {
			ClearField(doc, res.FieldID)
			continue
		}
		ShowError(doc, res.FieldID, res.Message)
	}
}

// ShowError marks fieldID as errored and writes the messages into its slot.
func ShowError(doc dom.Document, fieldID string, messages ...string) {
	if slot, ok := dom.Lookup(doc, fieldID+model.ErrorSuffix); ok {
		slot.SetText(strings.Join(normalizeMessages(messages), MessageSeparator))
	}
	if input, ok := dom.Lookup(doc, fieldID); ok {
		input.AddClass(model.ErrorClass)
	}
}

// ClearField removes the error class from fieldID and empties its slot.
func ClearField(doc dom.Document, fieldID string) {
	if slot, ok := dom.Lookup(doc, fieldID+model.ErrorSuffix); ok {
		slot.SetText("")
	}
	if input, ok := dom.Lookup(doc, fieldID); ok {
		input.RemoveClass(model.ErrorClass)
	}
}

// ClearErrors resets the feedback of every field in fields.
func ClearErrors(doc dom.Document, fields []model.FieldSpec) {
	for _, field := range fields {
		ClearField(doc, field.ID)
	}
}

// HasError reports whether fieldID currently carries the error class.
func HasError(doc dom.Document, fieldID string) bool {
	input, ok := dom.Lookup(doc, fieldID)
	return ok && input.HasClass(model.ErrorClass)
}

// MergeMessages concatenates and normalises message slices, trimming
// whitespace and removing duplicates while preserving order.
func MergeMessages(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
