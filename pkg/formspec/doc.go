// Package formspec loads the declarative form definitions (fields, kinds,
// required flags, minimum lengths and messages) that drive validation and
// rendering. Definitions are JSON or YAML files read from an fs.FS; the
// reservation and contact forms ship embedded. Every definition is checked
// with validator/v10 struct tags and its display text is passed through a
// strict HTML sanitizer before it reaches a renderer.
package formspec
