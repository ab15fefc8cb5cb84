package layout

import "fmt"

type sizeKind uint8

const (
	sizeAuto sizeKind = iota
	sizeFixed
	sizeFlexible
)

// SizeMode is how a node claims space along its parent's main axis: either
// a fixed number of logical pixels or a flexible weight.
//
// The zero value is flexible with an implicit weight of 1. Because a node
// holds a single SizeMode, setting a fixed size clears any weight and vice
// versa.
type SizeMode struct {
	kind  sizeKind
	value float64
}

// Fixed returns a SizeMode of px logical pixels.
func Fixed(px float64) SizeMode { return SizeMode{kind: sizeFixed, value: px} }

// Flexible returns a SizeMode sharing leftover space with the given weight.
func Flexible(weight float64) SizeMode { return SizeMode{kind: sizeFlexible, value: weight} }

// Size returns the declared fixed size and whether one is set. A node
// without a fixed size reports (0, false).
func (m SizeMode) Size() (float64, bool) {
	if m.kind != sizeFixed {
		return 0, false
	}
	return m.value, true
}

// Grow returns the declared flexible weight and whether one is set.
// A node with neither a size nor a weight reports (0, false).
func (m SizeMode) Grow() (float64, bool) {
	if m.kind != sizeFlexible {
		return 0, false
	}
	return m.value, true
}

// fixedPixels reports the size a parent must reserve for the node. Only a
// fixed size greater than zero counts; anything else is sized as flexible.
func (m SizeMode) fixedPixels() (float64, bool) {
	if m.kind == sizeFixed && m.value > 0 {
		return m.value, true
	}
	return 0, false
}

// weight is the share used when distributing leftover space. Non-positive
// and unset weights count as 1.
func (m SizeMode) weight() float64 {
	if m.kind == sizeFlexible && m.value > 0 {
		return m.value
	}
	return 1
}

// String returns the builder call that produces m.
func (m SizeMode) String() string {
	switch m.kind {
	case sizeFixed:
		return fmt.Sprintf("fix(%s)", formatNumber(m.value))
	case sizeFlexible:
		return fmt.Sprintf("flex(%s)", formatNumber(m.value))
	default:
		return "auto"
	}
}
