package render

import (
	"context"

	"github.com/goliatone/go-siteforms/pkg/model"
)

// Renderer converts form definitions into a byte representation (HTML, text,
// etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, forms []model.FormSpec, options RenderOptions) ([]byte, error)
}
