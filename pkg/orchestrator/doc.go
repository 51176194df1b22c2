// Package orchestrator wires the form store, optional copy transformers and
// the renderer registry into a single Generate call for consumers that just
// want markup (or a terminal session) for one or more site forms.
package orchestrator
