package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-siteforms/pkg/model"
	"github.com/goliatone/go-siteforms/pkg/render"
	rendertemplate "github.com/goliatone/go-siteforms/pkg/render/template"
	gotemplate "github.com/goliatone/go-siteforms/pkg/render/template/gotemplate"
)

const (
	formsTemplate = "templates/forms.tmpl"
	pageTemplate  = "templates/page.tmpl"
)

// Page describes the document RenderPage wraps the forms in.
type Page struct {
	Title      string
	Stylesheet string
	Script     string
}

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer emits plain HTML forms whose element ids match what the
// client-side validator binds to: every field is followed by its error slot
// and every form by its hidden success panel.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithPreload(),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, forms []model.FormSpec, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	views := make([]map[string]any, 0, len(forms))
	for _, form := range forms {
		views = append(views, formView(form, opts))
	}

	result, err := r.templates.RenderTemplate(formsTemplate, map[string]any{
		"forms": views,
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

// RenderPage renders forms and wraps them in a standalone HTML document.
func (r *Renderer) RenderPage(ctx context.Context, page Page, forms []model.FormSpec, opts render.RenderOptions) ([]byte, error) {
	body, err := r.Render(ctx, forms, opts)
	if err != nil {
		return nil, err
	}
	title := page.Title
	if title == "" && len(forms) > 0 {
		title = forms[0].Title
	}
	result, err := r.templates.RenderTemplate(pageTemplate, map[string]any{
		"title":      title,
		"stylesheet": page.Stylesheet,
		"script":     page.Script,
		"body":       string(body),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render page: %w", err)
	}
	return []byte(result), nil
}

func formView(form model.FormSpec, opts render.RenderOptions) map[string]any {
	fields := make([]map[string]any, 0, len(form.Fields))
	for _, field := range form.Fields {
		fields = append(fields, fieldView(field, opts))
	}
	return map[string]any{
		"id":           form.ID,
		"title":        form.Title,
		"submitLabel":  form.SubmitLabel,
		"successId":    form.SuccessID,
		"successTitle": form.Success.Title,
		"successBody":  form.Success.Body,
		"resetId":      form.ResetID,
		"resetLabel":   form.Success.ResetLabel,
		"fields":       fields,
	}
}

func fieldView(field model.FieldSpec, opts render.RenderOptions) map[string]any {
	tag := "input"
	switch field.Kind {
	case model.FieldKindSelect:
		tag = "select"
	case model.FieldKindTextArea:
		tag = "textarea"
	}

	label := field.Label
	if label == "" {
		label = field.ID
	}

	messages := render.MergeMessages(opts.Errors[field.ID])
	options := make([]map[string]any, 0, len(field.Options))
	for _, opt := range field.Options {
		options = append(options, map[string]any{"value": opt.Value, "label": opt.Label})
	}

	view := map[string]any{
		"id":          field.ID,
		"errorId":     field.ErrorID(),
		"tag":         tag,
		"inputType":   field.Kind.InputType(),
		"label":       label,
		"placeholder": field.Placeholder,
		"required":    field.Required,
		"minLength":   minLength(field.MinLength),
		"value":       opts.Values[field.ID],
		"options":     options,
		"hasError":    len(messages) > 0,
		"error":       strings.Join(messages, render.MessageSeparator),
	}
	if field.Kind == model.FieldKindDate && opts.MinDate != "" {
		view["min"] = opts.MinDate
	}
	return view
}

// minLength is rendered as a string; numbers lose their integer form on the
// way into the template context.
func minLength(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}
