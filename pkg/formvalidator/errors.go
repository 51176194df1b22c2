package formvalidator

import "errors"

var (
	// ErrMissingForm is returned when the form element is not in the document.
	ErrMissingForm = errors.New("formvalidator: form element not found")
	// ErrNoFields is returned for a form definition without fields.
	ErrNoFields = errors.New("formvalidator: form declares no fields")
	// ErrUnknownField is returned for a field id the form does not declare.
	ErrUnknownField = errors.New("formvalidator: unknown field")
)
