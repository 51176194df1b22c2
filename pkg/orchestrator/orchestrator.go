package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/goliatone/go-siteforms/pkg/formspec"
	"github.com/goliatone/go-siteforms/pkg/model"
	"github.com/goliatone/go-siteforms/pkg/render"
	"github.com/goliatone/go-siteforms/pkg/renderers/vanilla"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithStore injects a pre-loaded form store.
func WithStore(store *formspec.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithFormsFS loads form definitions from fsys instead of the embedded set.
func WithFormsFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.formsFS = fsys
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers a Transformer that runs on every form before it
// is rendered.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates store lookup, transformation and rendering. It
// applies defaults (embedded forms, vanilla renderer) while remaining open to
// dependency injection.
type Orchestrator struct {
	store           *formspec.Store
	formsFS         fs.FS
	registry        *render.Registry
	defaultRenderer string
	transformer     Transformer
	logger          *zap.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes what to render.
type Request struct {
	// Forms lists form ids in output order. Empty means every form in the
	// store.
	Forms []string

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RenderOptions carries prefilled values, errors and the date floor.
	RenderOptions render.RenderOptions
}

// Store exposes the resolved form store.
func (o *Orchestrator) Store() (*formspec.Store, error) {
	if o.initialiseErr != nil {
		return nil, o.initialiseErr
	}
	return o.store, nil
}

// Forms resolves ids against the store and applies the transformer.
func (o *Orchestrator) Forms(ctx context.Context, ids []string) ([]model.FormSpec, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		ids = o.store.IDs()
	}
	if len(ids) == 0 {
		return nil, errors.New("orchestrator: no forms available")
	}

	forms := make([]model.FormSpec, 0, len(ids))
	for _, id := range ids {
		form, err := o.store.Form(id)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
		if o.transformer != nil {
			if err := o.transformer.Transform(ctx, &form); err != nil {
				return nil, fmt.Errorf("orchestrator: transform form %q: %w", id, err)
			}
		}
		forms = append(forms, form)
	}
	return forms, nil
}

// Generate resolves the requested forms and renders them.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	forms, err := o.Forms(ctx, req.Forms)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, forms, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	o.logger.Debug("forms rendered",
		zap.String("renderer", renderer.Name()),
		zap.Int("forms", len(forms)),
		zap.Int("bytes", len(output)),
	)
	return output, nil
}

// rendererFor resolves an explicit name strictly. An empty name picks the
// default renderer, then the first registered one.
func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if name != "" {
		renderer, err := o.registry.Get(name)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: %w", err)
		}
		return renderer, nil
	}
	if renderer, err := o.registry.Get(o.defaultRenderer); err == nil {
		return renderer, nil
	}
	renderer, ok := o.registry.First()
	if !ok {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	o.logger.Debug("default renderer not registered",
		zap.String("default", o.defaultRenderer),
		zap.String("using", renderer.Name()),
	)
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.store == nil {
		var (
			store *formspec.Store
			err   error
		)
		if o.formsFS != nil {
			store, err = formspec.LoadFS(o.formsFS)
		} else {
			store, err = formspec.Default()
		}
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load forms: %w", err)
			return
		}
		o.store = store
	}

	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		if err := o.registry.Register(renderer); err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: register default renderer: %w", err)
			return
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
