package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrFormCount is returned when Render is asked for anything other than a
	// single form; a terminal session fills one form at a time.
	ErrFormCount = errors.New("tui: exactly one form per session")
)
