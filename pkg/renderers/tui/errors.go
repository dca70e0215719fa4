package tui

import "errors"

var (
	// ErrAborted signals the user interrupted a prompt (Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoPicker is returned when a path control is browsed without a picker.
	ErrNoPicker = errors.New("tui: no picker configured")
)
