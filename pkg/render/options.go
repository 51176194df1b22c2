package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without mutating the form definitions.
type RenderOptions struct {
	// Values pre-populates rendered controls keyed by field id.
	Values map[string]string
	// Errors surfaces feedback keyed by field id. Renderers write the messages
	// into the field's error slot and mark the control with the error class,
	// the same state the client-side validator produces.
	Errors map[string][]string
	// MinDate seeds the min attribute of date inputs (YYYY-MM-DD). Leave
	// empty to omit it.
	MinDate string
}
