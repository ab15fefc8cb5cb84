package layout

// Builder wraps a [Node] with chainable setters.
//
// Builders are values: every method returns a modified copy and leaves the
// receiver untouched, so a builder can be reused or shared between several
// parents without aliasing surprises.
//
//	header := layout.Widget("builtin:card-heading", nil, params).Fix(48)
//	body := layout.Horizontal(a, b).Gap(8)
//	card := layout.Vertical(header, body).Padding(layout.Uniform(24))
type Builder struct {
	node Node
}

// Vertical returns a container laying children out top to bottom.
func Vertical(children ...Element) Builder {
	return container(KindVertical, children)
}

// Horizontal returns a container laying children out left to right.
func Horizontal(children ...Element) Builder {
	return container(KindHorizontal, children)
}

// Widget returns a leaf for the widget id. data and parameters are passed
// through to the placed output unchanged.
func Widget(id string, data any, parameters map[string]any) Builder {
	return Builder{node: Node{
		Kind:       KindWidget,
		ID:         id,
		Data:       data,
		Parameters: parameters,
	}}
}

// Wrap returns a Builder around an existing node.
func Wrap(e Element) Builder {
	return Builder{node: e.Build()}
}

func container(kind Kind, children []Element) Builder {
	nodes := make([]Node, len(children))
	for i, c := range children {
		nodes[i] = c.Build()
	}
	return Builder{node: Node{Kind: kind, Children: nodes}}
}

// Fix gives the node a fixed main-axis size and clears any flexible weight.
func (b Builder) Fix(size float64) Builder {
	b.node.Size = Fixed(size)
	return b
}

// Flex makes the node flexible with the given weight and clears any fixed
// size. Flex() is Flex(1); extra arguments are ignored.
func (b Builder) Flex(grow ...float64) Builder {
	weight := 1.0
	if len(grow) > 0 {
		weight = grow[0]
	}
	b.node.Size = Flexible(weight)
	return b
}

// Gap sets the space between consecutive children.
func (b Builder) Gap(size float64) Builder {
	b.node.Gap = size
	return b
}

// Padding sets the node's padding. The value is validated when the tree is
// laid out, not here.
func (b Builder) Padding(s Spacing) Builder {
	b.node.Padding = s
	return b
}

// Build returns the wrapped node.
func (b Builder) Build() Node { return b.node }
