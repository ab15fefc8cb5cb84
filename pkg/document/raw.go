package document

import (
	"encoding/json"
	"fmt"
	"math"

	cerrors "github.com/ossinsight/composer/pkg/errors"
	"github.com/ossinsight/composer/pkg/layout"
)

// Numbers are decoded as any: TOML and YAML hand out integers and floats as
// different types, and padding may be a number or a list.

type rawDocument struct {
	Canvas *rawCanvas `toml:"canvas" json:"canvas" yaml:"canvas"`
	Root   *rawNode   `toml:"root" json:"root" yaml:"root"`
}

type rawCanvas struct {
	Width  any `toml:"width" json:"width" yaml:"width"`
	Height any `toml:"height" json:"height" yaml:"height"`
}

type rawNode struct {
	Layout     string         `toml:"layout" json:"layout" yaml:"layout"`
	Widget     string         `toml:"widget" json:"widget,omitempty" yaml:"widget,omitempty"`
	Padding    any            `toml:"padding" json:"padding,omitempty" yaml:"padding,omitempty"`
	Gap        any            `toml:"gap" json:"gap,omitempty" yaml:"gap,omitempty"`
	Size       any            `toml:"size" json:"size,omitempty" yaml:"size,omitempty"`
	Grow       any            `toml:"grow" json:"grow,omitempty" yaml:"grow,omitempty"`
	Parameters map[string]any `toml:"parameters" json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Data       any            `toml:"data" json:"data,omitempty" yaml:"data,omitempty"`
	Children   []rawNode      `toml:"children" json:"children,omitempty" yaml:"children,omitempty"`
}

func (d rawDocument) build() (*Document, error) {
	canvas := Canvas{Width: DefaultWidth, Height: DefaultHeight}
	if d.Canvas != nil {
		if err := setDimension(&canvas.Width, d.Canvas.Width, "canvas width"); err != nil {
			return nil, err
		}
		if err := setDimension(&canvas.Height, d.Canvas.Height, "canvas height"); err != nil {
			return nil, err
		}
	}
	if d.Root == nil {
		return nil, cerrors.New(cerrors.ErrCodeInvalidDocument, "document has no root node")
	}
	root, err := d.Root.build(layout.RootPath)
	if err != nil {
		return nil, err
	}
	return &Document{Canvas: canvas, Root: root}, nil
}

func setDimension(dst *float64, v any, name string) error {
	if v == nil {
		return nil
	}
	f, ok := toFloat(v)
	if !ok {
		return cerrors.New(cerrors.ErrCodeInvalidDocument, "%s must be a number, got %T", name, v)
	}
	if err := cerrors.ValidateDimension(name, f); err != nil {
		return err
	}
	*dst = f
	return nil
}

func (r rawNode) build(path string) (layout.Node, error) {
	kind, err := r.kind(path)
	if err != nil {
		return layout.Node{}, err
	}

	n := layout.Node{Kind: kind}
	if n.Padding, err = spacing(r.Padding, path); err != nil {
		return layout.Node{}, err
	}
	if n.Size, err = r.sizeMode(path); err != nil {
		return layout.Node{}, err
	}
	if r.Gap != nil {
		if err := setDimension(&n.Gap, r.Gap, "gap"); err != nil {
			return layout.Node{}, fmt.Errorf("node %s: %w", path, err)
		}
	}

	if kind == layout.KindWidget {
		if err := cerrors.ValidateWidgetID(r.Widget); err != nil {
			return layout.Node{}, fmt.Errorf("node %s: %w", path, err)
		}
		if len(r.Children) > 0 {
			return layout.Node{}, cerrors.New(cerrors.ErrCodeInvalidDocument,
				"node %s: widget %q cannot have children", path, r.Widget)
		}
		n.ID = r.Widget
		n.Parameters = r.Parameters
		n.Data = r.Data
		return n, nil
	}

	if r.Widget != "" || r.Parameters != nil || r.Data != nil {
		return layout.Node{}, cerrors.New(cerrors.ErrCodeInvalidDocument,
			"node %s: %s container cannot carry widget, parameters or data", path, kind)
	}
	n.Children = make([]layout.Node, len(r.Children))
	for i, child := range r.Children {
		if n.Children[i], err = child.build(layout.ChildPath(path, i)); err != nil {
			return layout.Node{}, err
		}
	}
	return n, nil
}

func (r rawNode) kind(path string) (layout.Kind, error) {
	if r.Layout == "" {
		if r.Widget != "" {
			return layout.KindWidget, nil
		}
		return layout.KindUnknown, cerrors.New(cerrors.ErrCodeInvalidDocument,
			"node %s: missing layout (vertical, horizontal or widget)", path)
	}
	kind, ok := layout.ParseKind(r.Layout)
	if !ok {
		return layout.KindUnknown, cerrors.New(cerrors.ErrCodeInvalidDocument,
			"node %s: unknown layout %q (want vertical, horizontal or widget)", path, r.Layout)
	}
	return kind, nil
}

func (r rawNode) sizeMode(path string) (layout.SizeMode, error) {
	if r.Size != nil && r.Grow != nil {
		return layout.SizeMode{}, cerrors.New(cerrors.ErrCodeInvalidDocument,
			"node %s: size and grow are mutually exclusive", path)
	}
	switch {
	case r.Size != nil:
		var px float64
		if err := setDimension(&px, r.Size, "size"); err != nil {
			return layout.SizeMode{}, fmt.Errorf("node %s: %w", path, err)
		}
		return layout.Fixed(px), nil
	case r.Grow != nil:
		w, ok := toFloat(r.Grow)
		if !ok {
			return layout.SizeMode{}, cerrors.New(cerrors.ErrCodeInvalidDocument,
				"node %s: grow must be a number, got %T", path, r.Grow)
		}
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return layout.SizeMode{}, cerrors.New(cerrors.ErrCodeInvalidSize,
				"node %s: grow must be finite", path)
		}
		return layout.Flexible(w), nil
	}
	return layout.SizeMode{}, nil
}

func spacing(v any, path string) (layout.Spacing, error) {
	var s layout.Spacing
	switch p := v.(type) {
	case nil:
		return s, nil
	case []any:
		values := make([]float64, len(p))
		for i, e := range p {
			f, ok := toFloat(e)
			if !ok {
				return s, cerrors.New(cerrors.ErrCodeInvalidSpacing,
					"node %s: padding[%d] must be a number, got %T", path, i, e)
			}
			values[i] = f
		}
		s = layout.Shorthand(values...)
	default:
		f, ok := toFloat(p)
		if !ok {
			return s, cerrors.New(cerrors.ErrCodeInvalidSpacing,
				"node %s: padding must be a number or a list, got %T", path, v)
		}
		s = layout.Uniform(f)
	}
	if _, err := layout.ResolveSpacing(s); err != nil {
		return s, fmt.Errorf("node %s: %w", path, err)
	}
	return s, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
