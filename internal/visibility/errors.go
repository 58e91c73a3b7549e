package visibility

import "errors"

var (
	// ErrInvalidRootMargin indicates a root margin that is not a 1-4 value px/% shorthand.
	ErrInvalidRootMargin = errors.New("invalid root margin")
	// ErrInvalidThreshold indicates a sampling threshold outside [0,1].
	ErrInvalidThreshold = errors.New("intersection threshold must be within [0,1]")
	// ErrUnknownSection indicates bounds were supplied for an unregistered section.
	ErrUnknownSection = errors.New("unknown section")
)
