package sink

import (
	"encoding/json"

	"github.com/ossinsight/composer/pkg/layout"
	"github.com/ossinsight/composer/pkg/render"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	scale   float64
	compact bool
	id      string
}

// WithJSONScale multiplies every coordinate by s, converting logical pixels
// to device pixels.
func WithJSONScale(s float64) JSONOption { return func(r *jsonRenderer) { r.scale = s } }

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

// WithJSONID records an identifier for the computation in the output.
func WithJSONID(id string) JSONOption { return func(r *jsonRenderer) { r.id = id } }

type jsonOutput struct {
	ID       string           `json:"id,omitempty"`
	Width    float64          `json:"width"`
	Height   float64          `json:"height"`
	Widgets  []layout.Placed  `json:"widgets"`
	Warnings []layout.Warning `json:"warnings"`
}

// RenderJSON exports the placed widgets as compose items:
//
//	{"width": 432, "height": 272, "widgets": [{"widget": "builtin:label", "left": 24, ...}], "warnings": []}
//
// Widgets keep their pre-order; parameters and data are emitted as given.
func RenderJSON(l render.Layout, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		ID:       r.id,
		Width:    l.Width * r.scale,
		Height:   l.Height * r.scale,
		Widgets:  make([]layout.Placed, 0, len(l.Widgets)),
		Warnings: l.Warnings,
	}
	if out.Warnings == nil {
		out.Warnings = []layout.Warning{}
	}
	for _, w := range l.Widgets {
		if r.scale != 1 {
			rect := w.Rect().Scale(r.scale)
			w.Left, w.Top, w.Width, w.Height = rect.Left, rect.Top, rect.Width, rect.Height
		}
		out.Widgets = append(out.Widgets, w)
	}

	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}
