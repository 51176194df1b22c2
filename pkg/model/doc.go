// Package model defines the declarative form description shared by the
// validator, the DOM glue and the renderers. A FormSpec lists ordered
// FieldSpecs; each field carries its kind (which selects the predicate
// applied to its value), whether it is required, an optional minimum length
// and overridable failure messages. Field ids double as DOM ids: the input
// element uses the id verbatim and its error slot uses the id plus
// ErrorSuffix. ValidationResult values are ephemeral and recomputed on every
// pass; nothing in this package is persisted.
package model
