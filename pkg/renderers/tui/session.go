package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-siteforms/pkg/dom/memdom"
	"github.com/goliatone/go-siteforms/pkg/formvalidator"
	"github.com/goliatone/go-siteforms/pkg/model"
	"github.com/goliatone/go-siteforms/pkg/validation"
)

const skipOption = "(none)"

// Session fills one form from the terminal. Answers are written into an
// in-memory document laid out like the page, and the form's validator runs
// against it exactly as it does in the browser: failing fields are reported
// from their error slots and prompted again until the submit succeeds.
type Session struct {
	form      model.FormSpec
	cfg       config
	doc       *memdom.Document
	validator *formvalidator.FormValidator
	pending   map[string][]string
}

// NewSession prepares a session for form. Without WithPromptDriver the
// survey terminal driver is used.
func NewSession(form model.FormSpec, opts ...Option) (*Session, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return newSession(form, cfg)
}

func newSession(form model.FormSpec, cfg config) (*Session, error) {
	if cfg.driver == nil {
		cfg.driver = NewSurveyDriver()
	}
	doc := layout(form)
	v, err := formvalidator.New(form, doc,
		formvalidator.WithClock(cfg.clock),
		formvalidator.WithLogger(cfg.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}
	v.Init()
	return &Session{
		form:      form,
		cfg:       cfg,
		doc:       doc,
		validator: v,
	}, nil
}

// Prefill seeds answers and messages shown before the first prompt of each
// field. Unknown field ids are ignored.
func (s *Session) Prefill(values map[string]string, errs map[string][]string) {
	for id, value := range values {
		if node := s.doc.Node(id); node != nil {
			node.SetValue(value)
		}
	}
	if len(errs) > 0 {
		s.pending = make(map[string][]string, len(errs))
		for id, msgs := range errs {
			s.pending[id] = append([]string(nil), msgs...)
		}
	}
}

// Document exposes the backing document, mostly for tests.
func (s *Session) Document() *memdom.Document {
	return s.doc
}

// Run prompts until the form validates and returns the submitted values.
func (s *Session) Run(ctx context.Context) (map[string]string, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	logger := s.cfg.logger.With(zap.String("form", s.form.ID))

	fields := s.form.Fields
	for round := 1; ; round++ {
		for _, field := range fields {
			for _, msg := range s.pending[field.ID] {
				_ = s.cfg.driver.Info(ctx, s.cfg.theme.ErrorPrefix+displayLabel(field)+": "+msg)
			}
			value, err := s.prompt(ctx, field)
			if err != nil {
				return nil, err
			}
			s.doc.Node(field.ID).SetValue(value)
		}
		s.pending = nil

		result := s.validator.OnSubmit()
		if result.Valid {
			logger.Debug("form accepted", zap.Int("rounds", round))
			s.announceSuccess(ctx)
			return s.values()
		}

		failed := result.Failed()
		logger.Debug("form rejected", zap.Int("round", round), zap.Int("failed", len(failed)))
		fields = make([]model.FieldSpec, 0, len(failed))
		for _, res := range failed {
			field, _ := s.form.Field(res.FieldID)
			_ = s.cfg.driver.Info(ctx, s.cfg.theme.ErrorPrefix+displayLabel(field)+": "+s.slotText(field))
			fields = append(fields, field)
		}
	}
}

func (s *Session) prompt(ctx context.Context, field model.FieldSpec) (string, error) {
	current := s.doc.Node(field.ID).Value()
	check := s.checker(field)

	switch field.Kind {
	case model.FieldKindSelect:
		return s.promptSelect(ctx, field, current)
	case model.FieldKindTextArea:
		return s.cfg.driver.TextArea(ctx, TextAreaConfig{
			Message:   displayLabel(field),
			Default:   current,
			Help:      field.Help,
			Validator: check,
		})
	default:
		return s.cfg.driver.Input(ctx, InputConfig{
			Message:   displayLabel(field),
			Default:   current,
			Help:      s.help(field),
			Validator: check,
		})
	}
}

func (s *Session) promptSelect(ctx context.Context, field model.FieldSpec, current string) (string, error) {
	labels := make([]string, 0, len(field.Options)+1)
	values := make([]string, 0, len(field.Options)+1)
	if !field.Required {
		labels = append(labels, skipOption)
		values = append(values, "")
	}
	for _, opt := range field.Options {
		label := opt.Label
		if label == "" {
			label = opt.Value
		}
		labels = append(labels, label)
		values = append(values, opt.Value)
	}

	selected := -1
	for i, value := range values {
		if value == current {
			selected = i
			break
		}
	}
	idx, err := s.cfg.driver.Select(ctx, SelectConfig{
		Message:      displayLabel(field),
		Options:      labels,
		DefaultIndex: selected,
		Help:         field.Help,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(values) {
		return "", nil
	}
	return values[idx], nil
}

// checker rejects answers at the prompt with the same message the form
// would show on blur.
func (s *Session) checker(field model.FieldSpec) func(string) error {
	return func(value string) error {
		res := validation.ValidateField(field, value, s.cfg.clock())
		if res.Valid {
			return nil
		}
		return errors.New(res.Message)
	}
}

func (s *Session) help(field model.FieldSpec) string {
	if field.Kind != model.FieldKindDate {
		return field.Help
	}
	hint := "YYYY-MM-DD, on or after " + validation.MinDate(s.cfg.clock())
	if field.Help == "" {
		return hint
	}
	return field.Help + " (" + hint + ")"
}

func (s *Session) slotText(field model.FieldSpec) string {
	if slot := s.doc.Node(field.ErrorID()); slot != nil && slot.Text() != "" {
		return slot.Text()
	}
	return field.InvalidMessage()
}

func (s *Session) announceSuccess(ctx context.Context) {
	title := strings.TrimSpace(s.form.Success.Title)
	if title == "" {
		title = "Submitted"
	}
	_ = s.cfg.driver.Info(ctx, s.cfg.theme.InfoPrefix+title)
	if body := strings.TrimSpace(s.form.Success.Body); body != "" {
		_ = s.cfg.driver.Info(ctx, s.cfg.theme.InfoPrefix+body)
	}
}

func (s *Session) values() (map[string]string, error) {
	values := s.validator.Values()
	if s.cfg.transformer == nil {
		return values, nil
	}
	out, err := s.cfg.transformer(values)
	if err != nil {
		return nil, fmt.Errorf("tui: submit transformer: %w", err)
	}
	return out, nil
}

// layout mirrors the page structure the validator expects: each control
// followed by its error slot, then the hidden success panel with its reset
// control.
func layout(form model.FormSpec) *memdom.Document {
	doc := memdom.New()
	formNode := doc.Add(nil, "form", form.ID)
	for _, field := range form.Fields {
		group := formNode.Add("div", "").WithClass("form-group")
		tag := "input"
		switch field.Kind {
		case model.FieldKindSelect:
			tag = "select"
		case model.FieldKindTextArea:
			tag = "textarea"
		}
		input := group.Add(tag, field.ID)
		if typ := field.Kind.InputType(); typ != "" {
			input.WithAttr("type", typ)
		}
		group.Add("span", field.ErrorID()).WithClass("error-message")
	}
	panel := doc.Add(nil, "div", form.SuccessID).WithClass("success-message")
	if form.ResetID != "" {
		panel.Add("button", form.ResetID)
	}
	return doc
}

func displayLabel(field model.FieldSpec) string {
	if field.Label != "" {
		return field.Label
	}
	return field.ID
}
