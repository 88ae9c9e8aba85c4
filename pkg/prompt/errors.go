package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g. Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNilWidget is returned when there is nothing to fill.
	ErrNilWidget = errors.New("prompt: root widget is required")
)
