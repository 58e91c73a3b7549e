package transition

import "math"

// Easing maps linear progress in [0,1] to eased progress in [0,1].
type Easing func(p float64) float64

// EaseInOutQuad accelerates through the first half and decelerates through
// the second.
func EaseInOutQuad(p float64) float64 {
	p = clamp01(p)
	if p < 0.5 {
		return 2 * p * p
	}
	return 1 - math.Pow(-2*p+2, 2)/2
}

// Linear is the identity easing.
func Linear(p float64) float64 { return clamp01(p) }

func clamp01(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return math.Min(math.Max(p, 0), 1)
}
