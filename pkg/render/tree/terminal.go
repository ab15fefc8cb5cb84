package tree

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltree "github.com/charmbracelet/lipgloss/tree"

	"github.com/ossinsight/composer/pkg/layout"
)

// Styles controls the colors of [Render].
type Styles struct {
	Container lipgloss.Style
	Widget    lipgloss.Style
	Detail    lipgloss.Style
	Unknown   lipgloss.Style
	Branch    lipgloss.Style
}

// DefaultStyles matches the CLI color scheme.
func DefaultStyles() Styles {
	return Styles{
		Container: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Widget:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
		Detail:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Unknown:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Branch:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Render draws the tree rooted at n with box-drawing branches.
func Render(n layout.Node) string {
	return RenderStyled(n, DefaultStyles())
}

// RenderStyled is [Render] with explicit styles.
func RenderStyled(n layout.Node, s Styles) string {
	return build(n, s).String()
}

func build(n layout.Node, s Styles) *ltree.Tree {
	t := ltree.Root(label(n, s)).
		Enumerator(ltree.RoundedEnumerator).
		EnumeratorStyle(s.Branch)
	for _, child := range n.Children {
		if child.Kind.IsContainer() && len(child.Children) > 0 {
			t.Child(build(child, s))
			continue
		}
		t.Child(label(child, s))
	}
	return t
}

func label(n layout.Node, s Styles) string {
	var name string
	switch {
	case n.Kind.IsContainer():
		name = s.Container.Render(title(n))
		if len(n.Children) == 0 {
			name += s.Detail.Render(" (empty)")
		}
	case n.Kind == layout.KindWidget:
		name = s.Widget.Render(title(n))
	default:
		name = s.Unknown.Render(title(n))
	}
	if parts := describe(n); len(parts) > 0 {
		name += " " + s.Detail.Render(strings.Join(parts, ", "))
	}
	return name
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
