package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-siteforms/pkg/model"
)

// Transformer mutates a form before it is rendered. Implementations can
// rewrite copy, reorder fields or tighten rules.
type Transformer interface {
	Transform(ctx context.Context, form *model.FormSpec) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *model.FormSpec) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *model.FormSpec) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// Chain runs transformers in order and stops at the first error.
func Chain(transformers ...Transformer) Transformer {
	return TransformerFunc(func(ctx context.Context, form *model.FormSpec) error {
		for _, t := range transformers {
			if t == nil {
				continue
			}
			if err := t.Transform(ctx, form); err != nil {
				return err
			}
		}
		return nil
	})
}

// PresetTransformer applies declarative copy overrides loaded from a YAML or
// JSON document keyed by form id:
//
//	forms:
//	  contactForm:
//	    title: Get in Touch
//	    fields:
//	      contactName:
//	        label: Full name
//	        messages: {required: Tell us your name}
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Forms map[string]formPatch `yaml:"forms" json:"forms"`
}

type formPatch struct {
	Title       string                `yaml:"title" json:"title"`
	SubmitLabel string                `yaml:"submitLabel" json:"submitLabel"`
	Success     *model.SuccessPanel   `yaml:"success" json:"success"`
	Fields      map[string]fieldPatch `yaml:"fields" json:"fields"`
}

type fieldPatch struct {
	Label       string         `yaml:"label" json:"label"`
	Help        string         `yaml:"help" json:"help"`
	Placeholder string         `yaml:"placeholder" json:"placeholder"`
	MinLength   *int           `yaml:"minLength" json:"minLength"`
	Required    *bool          `yaml:"required" json:"required"`
	Messages    model.Messages `yaml:"messages" json:"messages"`
}

// NewPresetTransformer constructs a transformer from raw YAML or JSON bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	for id, patch := range document.Forms {
		for fieldID, fp := range patch.Fields {
			if fp.MinLength != nil && *fp.MinLength < 0 {
				return nil, fmt.Errorf("preset transformer: %s.%s: minLength must be >= 0", id, fieldID)
			}
		}
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the patches for form.ID; forms without a patch pass
// through unchanged.
func (t *PresetTransformer) Transform(ctx context.Context, form *model.FormSpec) error {
	if form == nil {
		return errors.New("preset transformer: form is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	patch, ok := t.document.Forms[form.ID]
	if !ok {
		return nil
	}

	if patch.Title != "" {
		form.Title = patch.Title
	}
	if patch.SubmitLabel != "" {
		form.SubmitLabel = patch.SubmitLabel
	}
	if patch.Success != nil {
		applySuccessPatch(&form.Success, *patch.Success)
	}

	for id, fp := range patch.Fields {
		idx := fieldIndex(form.Fields, id)
		if idx < 0 {
			return fmt.Errorf("preset transformer: field %q not found in %q", id, form.ID)
		}
		applyFieldPatch(&form.Fields[idx], fp)
	}
	return nil
}

func applySuccessPatch(panel *model.SuccessPanel, patch model.SuccessPanel) {
	if patch.Title != "" {
		panel.Title = patch.Title
	}
	if patch.Body != "" {
		panel.Body = patch.Body
	}
	if patch.ResetLabel != "" {
		panel.ResetLabel = patch.ResetLabel
	}
}

func applyFieldPatch(field *model.FieldSpec, patch fieldPatch) {
	if patch.Label != "" {
		field.Label = patch.Label
	}
	if patch.Help != "" {
		field.Help = patch.Help
	}
	if patch.Placeholder != "" {
		field.Placeholder = patch.Placeholder
	}
	if patch.MinLength != nil {
		field.MinLength = *patch.MinLength
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}
	if patch.Messages.Required != "" {
		field.Messages.Required = patch.Messages.Required
	}
	if patch.Messages.MinLength != "" {
		field.Messages.MinLength = patch.Messages.MinLength
	}
	if patch.Messages.Invalid != "" {
		field.Messages.Invalid = patch.Messages.Invalid
	}
}

func fieldIndex(fields []model.FieldSpec, id string) int {
	id = strings.TrimSpace(id)
	for i := range fields {
		if fields[i].ID == id {
			return i
		}
	}
	return -1
}
