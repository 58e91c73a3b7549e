package engine

import "errors"

var (
	// ErrNegativeDuration indicates a negative timing in Config.
	ErrNegativeDuration = errors.New("duration must not be negative")
	// ErrUnknownMode indicates a mode other than scroll or section.
	ErrUnknownMode = errors.New("unknown engine mode")
)
