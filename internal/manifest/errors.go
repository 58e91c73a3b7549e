package manifest

import "errors"

// Sentinel errors for manifest loading and validation.
var (
	// ErrNoManifest indicates the manifest file does not exist.
	ErrNoManifest = errors.New("manifest not found")
	// ErrDuplicateTheme indicates two [[themes]] entries share a name.
	ErrDuplicateTheme = errors.New("duplicate theme name")
	// ErrUndeclaredTheme indicates a threshold or section references a theme not in [[themes]].
	ErrUndeclaredTheme = errors.New("theme not declared in [[themes]]")
	// ErrInvalidColor indicates a palette color that is not a hex color.
	ErrInvalidColor = errors.New("invalid hex color")
	// ErrNegativeHeight indicates a section with a negative height.
	ErrNegativeHeight = errors.New("section height must not be negative")
)
