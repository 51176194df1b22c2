package formspec

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-siteforms/pkg/model"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips every tag from raw and returns plain text. Entities the
// policy escapes are decoded again so templates can apply their own escaping.
func sanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := textSanitizer().Sanitize(trimmed)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

func sanitizeForm(form *model.FormSpec) {
	form.Title = sanitizeText(form.Title)
	form.SubmitLabel = sanitizeText(form.SubmitLabel)
	form.Success.Title = sanitizeText(form.Success.Title)
	form.Success.Body = sanitizeText(form.Success.Body)
	form.Success.ResetLabel = sanitizeText(form.Success.ResetLabel)
	for i := range form.Fields {
		field := &form.Fields[i]
		field.Label = sanitizeText(field.Label)
		field.Help = sanitizeText(field.Help)
		field.Placeholder = sanitizeText(field.Placeholder)
		field.Messages.Required = sanitizeText(field.Messages.Required)
		field.Messages.MinLength = sanitizeText(field.Messages.MinLength)
		field.Messages.Invalid = sanitizeText(field.Messages.Invalid)
		for j := range field.Options {
			field.Options[j].Label = sanitizeText(field.Options[j].Label)
		}
	}
}
