package siteforms

import (
	"io/fs"

	"github.com/goliatone/go-siteforms/pkg/formspec"
	"github.com/goliatone/go-siteforms/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// EmbeddedForms exposes the bundled reservation and contact definitions.
func EmbeddedForms() fs.FS {
	return formspec.EmbeddedFS()
}
