package hysteresis

import "errors"

// ErrBufferRange indicates a hysteresis buffer outside [0, MaxBuffer).
var ErrBufferRange = errors.New("hysteresis buffer must be within [0, 0.5)")
