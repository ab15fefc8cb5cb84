// Package layout arranges a declarative tree of widgets and containers into
// absolute rectangles on a fixed canvas.
//
// # Overview
//
// A layout is a tree of [Node] values. Containers ([KindVertical] and
// [KindHorizontal]) sequence their children along a main axis; widgets
// ([KindWidget]) are leaves that name something the rendering layer knows how
// to draw. Every node may carry padding, a gap between children, and a
// [SizeMode] that is either a fixed number of logical pixels or a flexible
// weight.
//
// [Compute] resolves a tree against a root [Rect] and returns the widgets as
// a flat, pre-ordered list of [Placed] rectangles:
//
//	tree := layout.Vertical(
//	    layout.Widget("builtin:card-heading", nil, map[string]any{"title": "Stars"}).Fix(48),
//	    layout.Horizontal(
//	        layout.Widget("builtin:label", nil, nil).Flex(0.3),
//	        layout.Widget("builtin:label", nil, nil).Flex(1),
//	    ),
//	).Padding(layout.Shorthand(0, 24, 20))
//
//	placed, err := layout.Compute(tree, layout.Rect{Width: 432, Height: 272})
//
// # Sizing
//
// Along a container's main axis, children with a fixed size greater than zero
// keep that size. The space left over (after padding and gaps) is split among
// the remaining children in proportion to their weights, without rounding.
// When nothing is left over, flexible children collapse to zero and a
// [WarnOverflow] warning is raised; fixed children are never shrunk, so the
// total may exceed the container. Along the cross axis every child receives
// the full inner extent of its container.
//
// # Errors and warnings
//
// A malformed [Spacing] aborts the computation with an error carrying the
// INVALID_SPACING code and the path of the offending node. Overflow and
// unknown node kinds only degrade the output; they are reported through
// [WithWarningHandler] and the logger passed with [WithLogger].
//
// # Concurrency
//
// [Builder] values are immutable and [Compute] never writes into the tree,
// so a finished tree can be laid out from several goroutines at once.
package layout
