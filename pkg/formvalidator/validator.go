// Package formvalidator binds the field predicates to a document. A
// FormValidator is built per form and owns that form's field specs and
// element handles; nothing is shared between instances. Handlers are plain
// methods (OnSubmit, OnBlur, OnInput, OnReset) so they can be driven by any
// dom.Events implementation or called directly.
package formvalidator

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-siteforms/pkg/dom"
	"github.com/goliatone/go-siteforms/pkg/model"
	"github.com/goliatone/go-siteforms/pkg/render"
	"github.com/goliatone/go-siteforms/pkg/validation"
)

// FormValidator validates one form against the live document and renders
// per-field feedback. It flips between the input panel and the success panel.
type FormValidator struct {
	form    model.FormSpec
	doc     dom.Document
	cfg     config
	logger  *zap.Logger
	formEl  dom.Element
	success dom.Element
	state   model.Panel
}

// New builds a validator for form. The form element must exist in doc; the
// success panel and individual fields may be absent.
func New(form model.FormSpec, doc dom.Document, opts ...Option) (*FormValidator, error) {
	if len(form.Fields) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoFields, form.ID)
	}
	formEl, ok := dom.Lookup(doc, form.ID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingForm, form.ID)
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	v := &FormValidator{
		form:   form,
		doc:    doc,
		cfg:    cfg,
		logger: cfg.logger.With(zap.String("form", form.ID)),
		formEl: formEl,
		state:  model.PanelInput,
	}
	if success, ok := dom.Lookup(doc, form.SuccessID); ok {
		v.success = success
	}
	return v, nil
}

// Form returns the definition the validator was built from.
func (v *FormValidator) Form() model.FormSpec {
	return v.form
}

// State reports which panel is currently visible.
func (v *FormValidator) State() model.Panel {
	return v.state
}

// Init prepares the document: date inputs get a min attribute of today so the
// native picker hides past days, and the input panel is shown.
func (v *FormValidator) Init() {
	minDate := validation.MinDate(v.cfg.clock())
	for _, field := range v.form.Fields {
		if field.Kind != model.FieldKindDate {
			continue
		}
		if input, ok := dom.Lookup(v.doc, field.ID); ok {
			input.SetAttribute("min", minDate)
		}
	}
	v.showInput()
}

// Bind registers the validator's handlers. Reset is bound to clicks on the
// form's reset control.
func (v *FormValidator) Bind(events dom.Events) {
	if events == nil {
		return
	}
	events.OnSubmit(v.form.ID, func() { v.OnSubmit() })
	for _, field := range v.form.Fields {
		if _, ok := dom.Lookup(v.doc, field.ID); !ok {
			continue
		}
		id := field.ID
		events.OnBlur(id, func() { _, _ = v.OnBlur(id) })
		events.OnInput(id, func() { _ = v.OnInput(id) })
	}
	if v.form.ResetID != "" {
		events.OnClick(v.form.ResetID, v.OnReset)
	}
}

// Values reads the current value of every rendered field.
func (v *FormValidator) Values() map[string]string {
	out := make(map[string]string, len(v.form.Fields))
	for _, field := range v.form.Fields {
		if input, ok := dom.Lookup(v.doc, field.ID); ok {
			out[field.ID] = input.Value()
		}
	}
	return out
}

// Check validates the current values without touching the document.
func (v *FormValidator) Check() validation.FormResult {
	return validation.ValidateForm(v.fieldValues(), v.cfg.clock())
}

// OnSubmit clears previous feedback, validates every field and renders the
// results. A valid form is swapped for its success panel; an invalid one
// stays visible with its errors.
func (v *FormValidator) OnSubmit() validation.FormResult {
	render.ClearErrors(v.doc, v.form.Fields)

	result := v.Check()
	render.Results(v.doc, result.Results)

	if !result.Valid {
		v.logger.Debug("submit rejected",
			zap.Bool("valid", false),
			zap.Int("failed", len(result.Failed())),
		)
		return result
	}

	v.showSuccess()
	v.logger.Debug("submit accepted", zap.Bool("valid", true))
	return result
}

// OnBlur validates a single field and renders only its result.
func (v *FormValidator) OnBlur(fieldID string) (model.ValidationResult, error) {
	field, ok := v.form.Field(fieldID)
	if !ok {
		return model.ValidationResult{}, fmt.Errorf("%w: %q", ErrUnknownField, fieldID)
	}

	value := ""
	if input, ok := dom.Lookup(v.doc, fieldID); ok {
		value = input.Value()
	}
	res := validation.ValidateField(field, value, v.cfg.clock())
	render.Results(v.doc, []model.ValidationResult{res})

	v.logger.Debug("field checked", zap.String("field", fieldID), zap.Bool("valid", res.Valid))
	return res, nil
}

// OnInput clears a field's feedback as soon as the user edits it. The value
// is not re-validated; that happens on the next blur or submit.
func (v *FormValidator) OnInput(fieldID string) error {
	if _, ok := v.form.Field(fieldID); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, fieldID)
	}
	if render.HasError(v.doc, fieldID) {
		render.ClearField(v.doc, fieldID)
	}
	return nil
}

// OnReset empties every field, clears feedback and returns to the input
// panel.
func (v *FormValidator) OnReset() {
	for _, field := range v.form.Fields {
		if input, ok := dom.Lookup(v.doc, field.ID); ok {
			input.SetValue("")
		}
	}
	render.ClearErrors(v.doc, v.form.Fields)
	v.showInput()
	v.formEl.ScrollIntoView(v.cfg.resetBlock)
	v.logger.Debug("form reset")
}

func (v *FormValidator) fieldValues() []validation.FieldValue {
	out := make([]validation.FieldValue, 0, len(v.form.Fields))
	for _, field := range v.form.Fields {
		input, ok := dom.Lookup(v.doc, field.ID)
		if !ok {
			continue
		}
		out = append(out, validation.FieldValue{Spec: field, Value: input.Value()})
	}
	return out
}

func (v *FormValidator) showInput() {
	v.formEl.Show()
	if v.success != nil {
		v.success.Hide()
	}
	v.state = model.PanelInput
}

func (v *FormValidator) showSuccess() {
	v.formEl.Hide()
	if v.success != nil {
		v.success.Show()
		v.success.SetStyle("animation", "fadeIn 0.5s ease")
		v.success.ScrollIntoView(v.cfg.successBlock)
	}
	v.state = model.PanelSuccess
}
