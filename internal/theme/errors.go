package theme

import (
	"errors"
	"fmt"
)

// Sentinel errors for theme configuration validation.
var (
	// ErrNoThresholds indicates an empty threshold map.
	ErrNoThresholds = errors.New("at least one threshold is required")
	// ErrMissingOrigin indicates the first threshold does not sit at progress 0.
	ErrMissingOrigin = errors.New("first threshold must have progress 0")
	// ErrUnsortedThresholds indicates thresholds are not strictly ascending.
	ErrUnsortedThresholds = errors.New("threshold progress values must be strictly ascending")
	// ErrProgressRange indicates a threshold progress outside [0,1].
	ErrProgressRange = errors.New("threshold progress must be within [0,1]")
	// ErrEmptyTheme indicates a threshold or section without a theme.
	ErrEmptyTheme = errors.New("theme must not be empty")
	// ErrEmptySectionID indicates a section without an ID.
	ErrEmptySectionID = errors.New("section id must not be empty")
	// ErrDuplicateSection indicates two sections share an ID.
	ErrDuplicateSection = errors.New("duplicate section id")
)

// ConfigurationError reports a malformed construction-time configuration.
// It is fatal for the component being built; callers that must keep
// rendering fall back to a static theme instead.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("theme: invalid configuration: %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// IsConfigurationError reports whether err is or wraps a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}
