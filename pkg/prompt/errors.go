package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrTooManyAttempts is returned when values are still invalid after the
	// configured number of rounds.
	ErrTooManyAttempts = errors.New("prompt: too many invalid attempts")
)
