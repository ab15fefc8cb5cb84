// Package compose holds the building blocks shared by composed widget
// visualizations: the builtin widget identifiers, the card frame every
// composition sits in, and the default canvas.
//
// A composition is an ordinary [layout] tree:
//
//	card := compose.Card("Top Repositories", "",
//	    compose.NonEmpty(repos, func(repos []Repo) layout.Element {
//	        rows := make([]layout.Element, len(repos))
//	        for i, r := range repos {
//	            rows[i] = compose.Label(r.Name)
//	        }
//	        return layout.Vertical(rows...)
//	    }),
//	)
//	placed, err := compose.Compose(ctx, card)
package compose

import (
	"context"

	"github.com/ossinsight/composer/pkg/layout"
)

// Builtin widgets understood by the rendering layer.
const (
	HeadingWidget        = "builtin:card-heading"
	LabelWidget          = "builtin:label"
	AvatarLabelWidget    = "builtin:avatar-label"
	AvatarProgressWidget = "builtin:avatar-progress"
	EmptyWidget          = "builtin:empty"
)

// Card geometry.
const (
	CanvasWidth   = 432.0
	CanvasHeight  = 272.0
	HeadingHeight = 48.0
	CardPadding   = 24.0
)

// Canvas is the frame a composed widget is rendered in.
var Canvas = layout.Rect{Width: CanvasWidth, Height: CanvasHeight}

// Card stacks a heading above body. The bottom padding is slightly smaller
// than the sides since charts carry their own vertical padding. An empty
// subtitle is sent as a single space so the heading keeps its subtitle line.
func Card(title, subtitle string, body ...layout.Element) layout.Builder {
	if subtitle == "" {
		subtitle = " "
	}
	params := map[string]any{"title": title, "subtitle": subtitle}
	children := append([]layout.Element{
		layout.Widget(HeadingWidget, nil, params).Fix(HeadingHeight),
	}, body...)
	return layout.Vertical(children...).
		Padding(layout.Shorthand(0, CardPadding, CardPadding-4))
}

// Label is a text widget.
func Label(text string) layout.Builder {
	return layout.Widget(LabelWidget, nil, map[string]any{"label": text})
}

// AvatarLabel is a label with the avatar of a GitHub user or organization.
func AvatarLabel(login, text string) layout.Builder {
	return layout.Widget(AvatarLabelWidget, nil, map[string]any{
		"label":  text,
		"imgSrc": "https://github.com/" + login + ".png",
		"size":   24,
	})
}

// AvatarProgress is a labelled progress bar of value against maxVal.
func AvatarProgress(text string, value, maxVal float64) layout.Builder {
	return layout.Widget(AvatarProgressWidget, nil, map[string]any{
		"label":  text,
		"value":  value,
		"maxVal": maxVal,
	})
}

// NonEmpty returns fn(data), or an empty-state placeholder when data has no
// elements.
func NonEmpty[T any](data []T, fn func([]T) layout.Element) layout.Element {
	if len(data) == 0 {
		return layout.Widget(EmptyWidget, nil, map[string]any{"label": "No data"})
	}
	return fn(data)
}

// Compose lays e out on the default widget canvas.
func Compose(ctx context.Context, e layout.Element, opts ...layout.Option) ([]layout.Placed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return layout.Compute(e, Canvas, opts...)
}
