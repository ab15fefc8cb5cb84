package layout

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	cerrors "github.com/ossinsight/composer/pkg/errors"
)

// Spacing is a CSS-shorthand edge value used for padding.
//
// The zero value means "no spacing". Use [Uniform] for the same value on all
// four edges and [Shorthand] for the 2, 3 and 4 value forms:
//
//	Shorthand(v, h)          // top/bottom = v, left/right = h
//	Shorthand(t, h, b)       // left/right = h
//	Shorthand(t, r, b, l)
//
// Any other number of values is rejected by [ResolveSpacing].
type Spacing struct {
	values  []float64
	uniform bool
	set     bool
}

// Uniform returns a Spacing applying n to every edge.
func Uniform(n float64) Spacing {
	return Spacing{values: []float64{n}, uniform: true, set: true}
}

// Shorthand returns a Spacing from 2, 3 or 4 edge values in CSS order.
// The values are copied.
func Shorthand(values ...float64) Spacing {
	return Spacing{values: slices.Clone(values), set: true}
}

// IsZero reports whether s is the absent spacing.
func (s Spacing) IsZero() bool { return !s.set }

// Values returns a copy of the raw values. A uniform spacing has one value.
func (s Spacing) Values() []float64 { return slices.Clone(s.values) }

// String renders s the way it would be written in a layout document.
func (s Spacing) String() string {
	if !s.set {
		return "0"
	}
	if s.uniform {
		return formatNumber(s.values[0])
	}
	parts := make([]string, len(s.values))
	for i, v := range s.values {
		parts[i] = formatNumber(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Insets are the four resolved edge offsets of a [Spacing].
type Insets struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Horizontal returns Left + Right.
func (in Insets) Horizontal() float64 { return in.Left + in.Right }

// Vertical returns Top + Bottom.
func (in Insets) Vertical() float64 { return in.Top + in.Bottom }

// ResolveSpacing expands s into explicit edge offsets.
//
// The absent spacing resolves to all zeros. A tuple with a length other than
// 2, 3 or 4 and any negative or NaN value are structural errors with code
// INVALID_SPACING.
func ResolveSpacing(s Spacing) (Insets, error) {
	if !s.set {
		return Insets{}, nil
	}

	v := s.values
	var in Insets
	switch {
	case s.uniform:
		in = Insets{Top: v[0], Right: v[0], Bottom: v[0], Left: v[0]}
	case len(v) == 2:
		in = Insets{Top: v[0], Right: v[1], Bottom: v[0], Left: v[1]}
	case len(v) == 3:
		in = Insets{Top: v[0], Right: v[1], Bottom: v[2], Left: v[1]}
	case len(v) == 4:
		in = Insets{Top: v[0], Right: v[1], Bottom: v[2], Left: v[3]}
	default:
		return Insets{}, cerrors.New(cerrors.ErrCodeInvalidSpacing,
			"invalid spacing %s: got %d values, want a number or 2, 3 or 4 values", s, len(v))
	}

	for _, e := range []float64{in.Top, in.Right, in.Bottom, in.Left} {
		if math.IsNaN(e) || e < 0 {
			return Insets{}, cerrors.New(cerrors.ErrCodeInvalidSpacing,
				"invalid spacing %s: edges must be non-negative numbers", s)
		}
	}
	return in, nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

var _ fmt.Stringer = Spacing{}
