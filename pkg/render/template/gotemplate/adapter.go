// Package gotemplate implements template.TemplateRenderer with pongo2
// templates read from an fs.FS.
package gotemplate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-siteforms/pkg/render/template"
)

const defaultExtension = ".tpl"

// Option configures an Engine.
type Option func(*Engine)

// WithFS sets the template source. It is required.
func WithFS(files fs.FS) Option {
	return func(e *Engine) {
		e.files = files
	}
}

// WithExtension sets the suffix appended to template names that lack it.
func WithExtension(ext string) Option {
	return func(e *Engine) {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		e.ext = ext
	}
}

// WithGlobalData merges values into the context of every render.
func WithGlobalData(data map[string]any) Option {
	return func(e *Engine) {
		for key, value := range data {
			if key = strings.TrimSpace(key); key != "" {
				e.globals[key] = value
			}
		}
	}
}

// WithPreload parses every template carrying the extension when the engine
// is built, so syntax errors surface from New.
func WithPreload() Option {
	return func(e *Engine) {
		e.preload = true
	}
}

// Engine renders pongo2 templates. Parsed templates are cached by path.
type Engine struct {
	files   fs.FS
	ext     string
	globals map[string]any
	preload bool

	set   *pongo2.TemplateSet
	mu    sync.Mutex
	cache map[string]*pongo2.Template
}

var _ template.TemplateRenderer = (*Engine)(nil)

var registerFilters sync.Once

// New builds an Engine.
func New(options ...Option) (*Engine, error) {
	e := &Engine{
		ext:     defaultExtension,
		globals: map[string]any{},
		cache:   map[string]*pongo2.Template{},
	}
	for _, opt := range options {
		if opt != nil {
			opt(e)
		}
	}
	if e.files == nil {
		return nil, errors.New("gotemplate: template fs is required")
	}

	registerFilters.Do(func() {
		if !pongo2.FilterExists("trim") {
			_ = pongo2.RegisterFilter("trim", filterTrim)
		}
	})

	e.set = pongo2.NewSet("siteforms", pongo2.NewFSLoader(e.files))
	if err := e.GlobalContext(e.globals); err != nil {
		return nil, err
	}
	if e.preload {
		if err := e.parseAll(); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// RenderTemplate executes the template at name, adding the extension when
// name does not already end with it.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if !strings.HasSuffix(name, e.ext) {
		name += e.ext
	}
	tmpl, err := e.lookup(name)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, data, out)
}

// RenderString parses content and executes it once. The result is not cached.
func (e *Engine) RenderString(content string, data any, out ...io.Writer) (string, error) {
	tmpl, err := e.set.FromString(content)
	if err != nil {
		return "", fmt.Errorf("gotemplate: parse inline template: %w", err)
	}
	return e.execute(tmpl, data, out)
}

// GlobalContext merges data into the values every template can read.
func (e *Engine) GlobalContext(data any) error {
	ctx, err := toContext(data)
	if err != nil {
		return fmt.Errorf("gotemplate: global data: %w", err)
	}
	if len(ctx) == 0 {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.set.Globals == nil {
		e.set.Globals = pongo2.Context{}
	}
	e.set.Globals.Update(ctx)
	return nil
}

func (e *Engine) lookup(path string) (*pongo2.Template, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.cache[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("gotemplate: load %q: %w", path, err)
	}
	e.cache[path] = tmpl
	return tmpl, nil
}

func (e *Engine) parseAll() error {
	return fs.WalkDir(e.files, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, e.ext) {
			return nil
		}
		_, err = e.lookup(path)
		return err
	})
}

func (e *Engine) execute(tmpl *pongo2.Template, data any, out []io.Writer) (string, error) {
	ctx, err := toContext(data)
	if err != nil {
		return "", fmt.Errorf("gotemplate: render data: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("gotemplate: execute: %w", err)
	}
	for _, w := range out {
		if _, err := w.Write(buf.Bytes()); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// toContext turns data into a pongo2 context. Maps keep their keys; any
// other value, and any nested struct, goes through JSON so templates see
// json tag names. Numbers inside structs therefore arrive as float64.
func toContext(data any) (pongo2.Context, error) {
	var top map[string]any
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		top = v
	case map[string]any:
		top = v
	default:
		if err := roundTrip(v, &top); err != nil {
			return nil, err
		}
	}

	ctx := make(pongo2.Context, len(top))
	for key, value := range top {
		if key = strings.TrimSpace(key); key == "" {
			continue
		}
		switch value.(type) {
		case nil, string, bool, int, int64, float64, map[string]any, []any:
			ctx[key] = value
		default:
			var plain any
			if err := roundTrip(value, &plain); err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			ctx[key] = plain
		}
	}
	return ctx, nil
}

func roundTrip(in, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}
