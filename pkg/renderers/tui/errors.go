package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrMissingStrategy is returned when a custom-skeleton field carries no
	// render strategy.
	ErrMissingStrategy = errors.New("tui: skeleton field missing render strategy")
)
