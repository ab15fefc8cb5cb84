package layout

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// WarningKind classifies a recoverable layout problem.
type WarningKind string

const (
	// WarnOverflow means a container had no space left for its flexible
	// children, which were collapsed to zero size.
	WarnOverflow WarningKind = "overflow"
	// WarnUnknownKind means a node had an unrecognized kind and produced no
	// output.
	WarnUnknownKind WarningKind = "unknown_kind"
)

// Warning describes a degraded part of a layout. The rest of the layout is
// unaffected.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Path    string      `json:"path"`
	Message string      `json:"message"`
	// Remaining is the main-axis space left after fixed children and gaps,
	// zero or negative for overflow warnings.
	Remaining float64 `json:"remaining,omitempty"`
}

// String formats w for logs and terminal output.
func (w Warning) String() string {
	return fmt.Sprintf("%s at %s: %s", w.Kind, w.Path, w.Message)
}

// Option configures [Compute].
type Option func(*engine)

// WithLogger sends warnings to l. The default logger discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithWarningHandler calls fn for every warning, synchronously and in
// traversal order.
func WithWarningHandler(fn func(Warning)) Option {
	return func(e *engine) { e.onWarning = fn }
}

type engine struct {
	logger    *log.Logger
	onWarning func(Warning)
}

// Compute lays out the tree rooted at e inside frame and returns the placed
// widgets in pre-order.
//
// Compute does not modify the tree. It fails only on structural problems (an
// invalid [Spacing]); the returned error carries the INVALID_SPACING code and
// the path of the offending node. Overflow and unknown kinds are reported as
// [Warning] values and never stop the computation.
func Compute(e Element, frame Rect, opts ...Option) ([]Placed, error) {
	eng := engine{logger: log.NewWithOptions(io.Discard, log.Options{})}
	for _, opt := range opts {
		opt(&eng)
	}

	out := make([]Placed, 0)
	if err := eng.place(e.Build(), frame, RootPath, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *engine) place(n Node, r Rect, path string, out *[]Placed) error {
	switch n.Kind {
	case KindWidget:
		return e.placeWidget(n, r, path, out)
	case KindVertical, KindHorizontal:
		return e.placeContainer(n, r, path, out)
	default:
		e.warn(Warning{
			Kind:    WarnUnknownKind,
			Path:    path,
			Message: fmt.Sprintf("unknown layout kind %s", n.Kind),
		})
		return nil
	}
}

func (e *engine) placeWidget(n Node, r Rect, path string, out *[]Placed) error {
	pad, err := ResolveSpacing(n.Padding)
	if err != nil {
		return fmt.Errorf("node %s: %w", path, err)
	}
	inner := r.Inset(pad)
	*out = append(*out, Placed{
		ID:         n.ID,
		Parameters: n.Parameters,
		Data:       n.Data,
		Left:       inner.Left,
		Top:        inner.Top,
		Width:      inner.Width,
		Height:     inner.Height,
	})
	return nil
}

func (e *engine) placeContainer(n Node, r Rect, path string, out *[]Placed) error {
	pad, err := ResolveSpacing(n.Padding)
	if err != nil {
		return fmt.Errorf("node %s: %w", path, err)
	}

	vertical := n.Kind == KindVertical
	inner := r.Inset(pad)
	count := len(n.Children)

	mainExtent := inner.Width
	if vertical {
		mainExtent = inner.Height
	}
	remaining := mainExtent - n.Gap*float64(count-1)

	// Fixed children keep their size; everything else shares what is left.
	sizes := make([]float64, count)
	var flexible []int
	var totalWeight float64
	for i, child := range n.Children {
		if px, ok := child.Size.fixedPixels(); ok {
			sizes[i] = px
			remaining -= px
			continue
		}
		flexible = append(flexible, i)
		totalWeight += child.Size.weight()
	}

	if len(flexible) > 0 {
		if remaining > 0 {
			for _, i := range flexible {
				sizes[i] = n.Children[i].Size.weight() / totalWeight * remaining
			}
		} else {
			e.warn(Warning{
				Kind:      WarnOverflow,
				Path:      path,
				Message:   fmt.Sprintf("no space left for %d flexible children", len(flexible)),
				Remaining: remaining,
			})
		}
	}

	var offset float64
	for i, child := range n.Children {
		step := offset + n.Gap*float64(i)
		var cr Rect
		if vertical {
			cr = Rect{Left: inner.Left, Top: inner.Top + step, Width: inner.Width, Height: sizes[i]}
		} else {
			cr = Rect{Left: inner.Left + step, Top: inner.Top, Width: sizes[i], Height: inner.Height}
		}
		if err := e.place(child, cr, ChildPath(path, i), out); err != nil {
			return err
		}
		offset += sizes[i]
	}
	return nil
}

func (e *engine) warn(w Warning) {
	e.logger.Warn(w.Message, "kind", w.Kind, "path", w.Path)
	if e.onWarning != nil {
		e.onWarning(w)
	}
}
