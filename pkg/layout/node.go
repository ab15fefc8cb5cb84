package layout

import (
	"strconv"
)

// Kind discriminates the variants of a [Node].
type Kind uint8

const (
	// KindUnknown is the zero Kind. The engine skips such nodes with a warning.
	KindUnknown Kind = iota
	// KindVertical flows children top to bottom.
	KindVertical
	// KindHorizontal flows children left to right.
	KindHorizontal
	// KindWidget is a leaf placed by the rendering layer.
	KindWidget
)

var kindNames = map[Kind]string{
	KindVertical:   "vertical",
	KindHorizontal: "horizontal",
	KindWidget:     "widget",
}

// String returns the document name of k ("vertical", "horizontal", "widget").
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown(" + strconv.Itoa(int(k)) + ")"
}

// IsContainer reports whether nodes of kind k have children.
func (k Kind) IsContainer() bool {
	return k == KindVertical || k == KindHorizontal
}

// ParseKind maps a document name to its Kind.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return KindUnknown, false
}

// Node is one element of a layout tree.
//
// Children is only meaningful for containers; ID, Data and Parameters only
// for widgets. Data and Parameters are opaque to the engine and are handed to
// the rendering layer untouched.
type Node struct {
	Kind     Kind
	Padding  Spacing
	Gap      float64
	Size     SizeMode
	Children []Node

	ID         string
	Data       any
	Parameters map[string]any
}

// Element is anything that can stand in for a node: a [Node] itself or a
// [Builder] wrapping one.
type Element interface {
	Build() Node
}

// Build returns n, so that a Node satisfies [Element].
func (n Node) Build() Node { return n }

// RootPath is the path of the node handed to [Compute] or [Node.Walk].
const RootPath = "root"

// ChildPath returns the path of the i-th child of the node at parent.
func ChildPath(parent string, i int) string {
	return parent + "/" + strconv.Itoa(i)
}

// Walk calls fn for n and its descendants in pre-order (a container before
// its children, children in declaration order). Paths start at [RootPath].
// Returning false from fn skips the children of that node.
func (n Node) Walk(fn func(path string, n Node) bool) {
	n.walk(RootPath, fn)
}

func (n Node) walk(path string, fn func(string, Node) bool) {
	if !fn(path, n) {
		return
	}
	for i, child := range n.Children {
		child.walk(ChildPath(path, i), fn)
	}
}

// Count returns the number of container and widget nodes in the tree rooted
// at n. Unknown kinds are not counted.
func (n Node) Count() (containers, widgets int) {
	n.Walk(func(_ string, n Node) bool {
		switch {
		case n.Kind.IsContainer():
			containers++
		case n.Kind == KindWidget:
			widgets++
		}
		return true
	})
	return containers, widgets
}
