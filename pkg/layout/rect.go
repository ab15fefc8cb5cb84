package layout

// Rect is an axis-aligned rectangle in logical pixels.
// Top grows downwards, as on a canvas.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the horizontal end of the rectangle.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the vertical end of the rectangle.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// CenterX returns the horizontal center point of the rectangle.
func (r Rect) CenterX() float64 { return r.Left + r.Width/2 }

// CenterY returns the vertical center point of the rectangle.
func (r Rect) CenterY() float64 { return r.Top + r.Height/2 }

// Inset shrinks r by the given edge offsets. The result may have a negative
// extent when the insets exceed r; nothing is clamped.
func (r Rect) Inset(in Insets) Rect {
	return Rect{
		Left:   r.Left + in.Left,
		Top:    r.Top + in.Top,
		Width:  r.Width - in.Horizontal(),
		Height: r.Height - in.Vertical(),
	}
}

// Scale multiplies every coordinate by f. Sinks use it to turn logical
// pixels into device pixels.
func (r Rect) Scale(f float64) Rect {
	return Rect{Left: r.Left * f, Top: r.Top * f, Width: r.Width * f, Height: r.Height * f}
}

// Placed is a widget resolved to an absolute rectangle.
//
// The JSON form uses the key names the rendering layer expects for a
// composed item.
type Placed struct {
	ID         string         `json:"widget"`
	Parameters map[string]any `json:"parameters"`
	Data       any            `json:"data"`
	Left       float64        `json:"left"`
	Top        float64        `json:"top"`
	Width      float64        `json:"width"`
	Height     float64        `json:"height"`
}

// Rect returns the placed rectangle.
func (p Placed) Rect() Rect {
	return Rect{Left: p.Left, Top: p.Top, Width: p.Width, Height: p.Height}
}
