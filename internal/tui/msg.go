package tui

import (
	"time"

	"github.com/papapumpkin/parallax/internal/manifest"
)

// MsgFrame is one animation frame.
type MsgFrame struct {
	Time time.Time
}

// MsgManifestChanged is sent when the watched manifest is reloaded.
type MsgManifestChanged struct {
	Manifest *manifest.Manifest
	Err      error
}
