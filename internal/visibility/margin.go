package visibility

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultRootMargin shrinks the observed band by 20% at the top and bottom so
// sections crossing the vertical center win dominance.
const DefaultRootMargin = "-20% 0px -20% 0px"

// Length is a CSS-style length in pixels or a percentage of the root box.
type Length struct {
	Value   float64
	Percent bool
}

// Resolve converts l into pixels relative to a root dimension of ref.
func (l Length) Resolve(ref float64) float64 {
	if l.Percent {
		return l.Value / 100 * ref
	}
	return l.Value
}

func (l Length) String() string {
	if l.Percent {
		return strconv.FormatFloat(l.Value, 'f', -1, 64) + "%"
	}
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + "px"
}

// RootMargin grows (positive) or shrinks (negative) the observed viewport box.
type RootMargin struct {
	Top, Right, Bottom, Left Length
}

func (m RootMargin) String() string {
	return strings.Join([]string{m.Top.String(), m.Right.String(), m.Bottom.String(), m.Left.String()}, " ")
}

// ParseRootMargin parses the one-to-four value CSS margin shorthand, where
// every value is a px length, a percentage, or a bare zero.
func ParseRootMargin(s string) (RootMargin, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 4 {
		return RootMargin{}, fmt.Errorf("%w: %q", ErrInvalidRootMargin, s)
	}
	vals := make([]Length, len(fields))
	for i, f := range fields {
		l, err := parseLength(f)
		if err != nil {
			return RootMargin{}, fmt.Errorf("%w: %q: %v", ErrInvalidRootMargin, s, err)
		}
		vals[i] = l
	}

	switch len(vals) {
	case 1:
		return RootMargin{vals[0], vals[0], vals[0], vals[0]}, nil
	case 2:
		return RootMargin{vals[0], vals[1], vals[0], vals[1]}, nil
	case 3:
		return RootMargin{vals[0], vals[1], vals[2], vals[1]}, nil
	default:
		return RootMargin{vals[0], vals[1], vals[2], vals[3]}, nil
	}
}

func parseLength(f string) (Length, error) {
	switch {
	case strings.HasSuffix(f, "%"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(f, "%"), 64)
		if err != nil {
			return Length{}, err
		}
		return Length{Value: v, Percent: true}, nil
	case strings.HasSuffix(f, "px"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(f, "px"), 64)
		if err != nil {
			return Length{}, err
		}
		return Length{Value: v}, nil
	case f == "0":
		return Length{}, nil
	default:
		return Length{}, fmt.Errorf("unsupported unit in %q", f)
	}
}
