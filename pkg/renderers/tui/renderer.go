package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-siteforms/pkg/model"
	"github.com/goliatone/go-siteforms/pkg/render"
)

// Renderer implements render.Renderer for terminal-driven sessions: it fills
// the single form it is given and returns the submitted values serialized in
// the configured output format.
type Renderer struct {
	cfg config
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	cfg := defaultConfig()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.driver == nil {
		cfg.driver = NewSurveyDriver()
	}
	return &Renderer{cfg: cfg}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return r.cfg.format.ContentType()
}

// Render runs a session for the one form in forms. Values in opts pre-fill
// the prompts and Errors are shown before the matching prompt.
func (r *Renderer) Render(ctx context.Context, forms []model.FormSpec, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, fmt.Errorf("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(forms) != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrFormCount, len(forms))
	}

	session, err := newSession(forms[0], r.cfg)
	if err != nil {
		return nil, err
	}
	session.Prefill(opts.Values, opts.Errors)

	values, err := session.Run(ctx)
	if err != nil {
		return nil, err
	}
	return Serialize(r.cfg.format, forms[0], values)
}

// Serialize encodes values in format. Pretty text follows the form's field
// order; the other formats sort by key.
func Serialize(format OutputFormat, form model.FormSpec, values map[string]string) ([]byte, error) {
	switch format {
	case OutputFormatFormURLEncoded:
		encoded := url.Values{}
		for key, value := range values {
			encoded.Set(key, value)
		}
		return []byte(encoded.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, field := range form.Fields {
			value, ok := values[field.ID]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "%s=%s\n", field.ID, value)
		}
		return []byte(b.String()), nil
	default:
		return json.Marshal(values)
	}
}
