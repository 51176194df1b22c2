package siteforms

import (
	"context"

	"github.com/goliatone/go-siteforms/pkg/orchestrator"
	"github.com/goliatone/go-siteforms/pkg/render"
)

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// Transformer aliases orchestrator.Transformer for callers patching form copy.
type Transformer = orchestrator.Transformer

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML renders the named forms (every embedded form when none are
// given) with the vanilla renderer. It is the simplest entry point for
// callers that just want markup.
func GenerateHTML(ctx context.Context, opts RenderOptions, formIDs []string, options ...orchestrator.Option) ([]byte, error) {
	gen := orchestrator.New(options...)
	return gen.Generate(ctx, orchestrator.Request{
		Forms:         formIDs,
		Renderer:      "vanilla",
		RenderOptions: opts,
	})
}

// WithTransformer forwards a form transformer to the orchestrator.
func WithTransformer(t Transformer) orchestrator.Option {
	return orchestrator.WithTransformer(t)
}
