// Package template defines the template engine seam used by the HTML
// renderers. The gotemplate subpackage provides the pongo2-backed default.
package template
