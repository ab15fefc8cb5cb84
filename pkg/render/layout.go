package render

import "github.com/ossinsight/composer/pkg/layout"

// Layout is a computed layout ready for rendering.
type Layout struct {
	Width    float64          `json:"width"`
	Height   float64          `json:"height"`
	Widgets  []layout.Placed  `json:"widgets"`
	Warnings []layout.Warning `json:"warnings"`
}

// Frame returns the canvas as a rectangle at the origin.
func (l Layout) Frame() layout.Rect {
	return layout.Rect{Width: l.Width, Height: l.Height}
}

// Collapsed returns the widgets that ended up with no visible area, usually
// flexible children of an overflowing container.
func (l Layout) Collapsed() []layout.Placed {
	var out []layout.Placed
	for _, w := range l.Widgets {
		if w.Width <= 0 || w.Height <= 0 {
			out = append(out, w)
		}
	}
	return out
}
