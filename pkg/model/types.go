package model

import (
	"fmt"
	"strings"
)

// FieldKind drives the kind-specific predicate applied to a field value. It
// mirrors the HTML `type` attribute of the bound input where one exists.
type FieldKind string

const (
	FieldKindText     FieldKind = "text"
	FieldKindEmail    FieldKind = "email"
	FieldKindTel      FieldKind = "tel"
	FieldKindDate     FieldKind = "date"
	FieldKindTime     FieldKind = "time"
	FieldKindSelect   FieldKind = "select"
	FieldKindTextArea FieldKind = "textarea"
)

// Kinds lists every supported field kind in declaration order.
func Kinds() []FieldKind {
	return []FieldKind{
		FieldKindText,
		FieldKindEmail,
		FieldKindTel,
		FieldKindDate,
		FieldKindTime,
		FieldKindSelect,
		FieldKindTextArea,
	}
}

// InputType reports the HTML input type used when rendering the kind. Select
// and textarea kinds render dedicated elements and return an empty string.
func (k FieldKind) InputType() string {
	switch k {
	case FieldKindSelect, FieldKindTextArea:
		return ""
	case "":
		return string(FieldKindText)
	default:
		return string(k)
	}
}

// ErrorSuffix is appended to a field id to form the id of its error slot.
const ErrorSuffix = "Error"

// ErrorClass is toggled on an input element while its last validation failed.
const ErrorClass = "error"

// Option is a single choice offered by a select field.
type Option struct {
	Value string `json:"value" yaml:"value" validate:"required"`
	Label string `json:"label" yaml:"label"`
}

// Messages overrides the default failure messages for a field.
type Messages struct {
	Required  string `json:"required,omitempty" yaml:"required,omitempty"`
	MinLength string `json:"minLength,omitempty" yaml:"minLength,omitempty"`
	Invalid   string `json:"invalid,omitempty" yaml:"invalid,omitempty"`
}

// FieldSpec declares one validated field of a form.
type FieldSpec struct {
	ID          string    `json:"id" yaml:"id" validate:"required"`
	Kind        FieldKind `json:"kind" yaml:"kind" validate:"required,oneof=text email tel date time select textarea"`
	Label       string    `json:"label,omitempty" yaml:"label,omitempty"`
	Help        string    `json:"help,omitempty" yaml:"help,omitempty"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`
	MinLength   int       `json:"minLength,omitempty" yaml:"minLength,omitempty" validate:"gte=0"`
	Options     []Option  `json:"options,omitempty" yaml:"options,omitempty" validate:"dive"`
	Messages    Messages  `json:"messages,omitempty" yaml:"messages,omitempty"`
}

// ErrorID returns the id of the sibling element that carries the field's
// failure message.
func (f FieldSpec) ErrorID() string {
	return f.ID + ErrorSuffix
}

// RequiredMessage resolves the message shown when a required field is empty.
func (f FieldSpec) RequiredMessage() string {
	if msg := strings.TrimSpace(f.Messages.Required); msg != "" {
		return msg
	}
	return "This field is required"
}

// MinLengthMessage resolves the message shown when the value is too short.
func (f FieldSpec) MinLengthMessage() string {
	if msg := strings.TrimSpace(f.Messages.MinLength); msg != "" {
		return msg
	}
	return fmt.Sprintf("Must be at least %d characters", f.MinLength)
}

// InvalidMessage resolves the message shown when the kind-specific rule fails.
func (f FieldSpec) InvalidMessage() string {
	if msg := strings.TrimSpace(f.Messages.Invalid); msg != "" {
		return msg
	}
	switch f.Kind {
	case FieldKindEmail:
		return "Please enter a valid email address"
	case FieldKindTel:
		return "Please enter a valid phone number"
	case FieldKindDate:
		return "Please select a future date"
	default:
		return "Please enter a valid value"
	}
}

// SuccessPanel describes the content of the panel shown after a valid submit.
type SuccessPanel struct {
	Title      string `json:"title,omitempty" yaml:"title,omitempty"`
	Body       string `json:"body,omitempty" yaml:"body,omitempty"`
	ResetLabel string `json:"resetLabel,omitempty" yaml:"resetLabel,omitempty"`
}

// FormSpec declares a form, its success panel and the reset control that
// flips the form back to its input panel.
type FormSpec struct {
	ID          string       `json:"id" yaml:"id" validate:"required"`
	Title       string       `json:"title,omitempty" yaml:"title,omitempty"`
	SuccessID   string       `json:"successId" yaml:"successId" validate:"required,nefield=ID"`
	ResetID     string       `json:"resetId" yaml:"resetId" validate:"required"`
	SubmitLabel string       `json:"submitLabel,omitempty" yaml:"submitLabel,omitempty"`
	Success     SuccessPanel `json:"success,omitempty" yaml:"success,omitempty"`
	Fields      []FieldSpec  `json:"fields" yaml:"fields" validate:"required,min=1,dive"`
	Source      string       `json:"-" yaml:"-"`
}

// Field looks up a field by id.
func (f FormSpec) Field(id string) (FieldSpec, bool) {
	for _, field := range f.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return FieldSpec{}, false
}

// ValidationResult is the outcome of one predicate check. Message is empty
// when Valid is true.
type ValidationResult struct {
	FieldID string `json:"fieldId"`
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
}

// Panel identifies which of a form's two exclusive panels is visible.
type Panel int

const (
	PanelInput Panel = iota
	PanelSuccess
)

func (p Panel) String() string {
	switch p {
	case PanelSuccess:
		return "success"
	default:
		return "input"
	}
}
