package layout

import "testing"

func TestFixThenFlex(t *testing.T) {
	n := Widget("a", nil, nil).Fix(50).Flex(1).Build()

	if size, ok := n.Size.Size(); ok || size != 0 {
		t.Errorf("Size() = %v, %v, want 0, false", size, ok)
	}
	grow, ok := n.Size.Grow()
	if !ok || grow != 1 {
		t.Errorf("Grow() = %v, %v, want 1, true", grow, ok)
	}
}

func TestFlexThenFix(t *testing.T) {
	n := Widget("a", nil, nil).Flex(2).Fix(50).Build()

	size, ok := n.Size.Size()
	if !ok || size != 50 {
		t.Errorf("Size() = %v, %v, want 50, true", size, ok)
	}
	if grow, ok := n.Size.Grow(); ok || grow != 0 {
		t.Errorf("Grow() = %v, %v, want 0, false", grow, ok)
	}
}

func TestFlexDefaultWeight(t *testing.T) {
	grow, ok := Widget("a", nil, nil).Flex().Build().Size.Grow()
	if !ok || grow != 1 {
		t.Errorf("Flex() grow = %v, %v, want 1, true", grow, ok)
	}
}

func TestConstructorDefaults(t *testing.T) {
	tests := []struct {
		name string
		node Node
		kind Kind
	}{
		{"vertical", Vertical().Build(), KindVertical},
		{"horizontal", Horizontal().Build(), KindHorizontal},
		{"widget", Widget("w", nil, nil).Build(), KindWidget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.node.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.node.Kind, tt.kind)
			}
			if !tt.node.Padding.IsZero() {
				t.Errorf("Padding = %s, want absent", tt.node.Padding)
			}
			if tt.node.Gap != 0 {
				t.Errorf("Gap = %v, want 0", tt.node.Gap)
			}
			if _, ok := tt.node.Size.Size(); ok {
				t.Error("Size should be unset")
			}
			if _, ok := tt.node.Size.Grow(); ok {
				t.Error("Grow should be unset")
			}
		})
	}
}

func TestConstructorsUnwrapBuildersAndNodes(t *testing.T) {
	raw := Node{Kind: KindWidget, ID: "raw"}
	wrapped := Widget("wrapped", nil, nil).Fix(10)

	n := Vertical(raw, wrapped).Build()
	if len(n.Children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(n.Children))
	}
	if n.Children[0].ID != "raw" || n.Children[1].ID != "wrapped" {
		t.Errorf("children = %q, %q", n.Children[0].ID, n.Children[1].ID)
	}
	if size, _ := n.Children[1].Size.Size(); size != 10 {
		t.Errorf("wrapped child size = %v, want 10", size)
	}
}

func TestBuilderIsImmutable(t *testing.T) {
	base := Widget("a", nil, nil)
	fixed := base.Fix(40)
	padded := base.Padding(Uniform(4)).Gap(2)

	if _, ok := base.Build().Size.Size(); ok {
		t.Error("Fix must not change the receiver")
	}
	if !base.Build().Padding.IsZero() || base.Build().Gap != 0 {
		t.Error("Padding/Gap must not change the receiver")
	}
	if _, ok := padded.Build().Size.Size(); ok {
		t.Error("siblings derived from the same builder must not share size")
	}
	if size, _ := fixed.Build().Size.Size(); size != 40 {
		t.Errorf("fixed size = %v, want 40", size)
	}
}

func TestSharedSubtree(t *testing.T) {
	shared := Horizontal(Widget("x", nil, nil), Widget("y", nil, nil))
	a := Vertical(shared.Fix(20))
	b := Vertical(shared.Flex(3))

	sa, _ := a.Build().Children[0].Size.Size()
	gb, _ := b.Build().Children[0].Size.Grow()
	if sa != 20 || gb != 3 {
		t.Errorf("shared subtree sizes = %v, %v, want 20, 3", sa, gb)
	}
}

func TestConstructorCopiesChildren(t *testing.T) {
	children := []Element{Widget("a", nil, nil), Widget("b", nil, nil)}
	n := Horizontal(children...)
	children[0] = Widget("changed", nil, nil)

	if got := n.Build().Children[0].ID; got != "a" {
		t.Errorf("first child = %q, want %q", got, "a")
	}
}

func TestWrap(t *testing.T) {
	n := Node{Kind: KindVertical, Gap: 3}
	b := Wrap(n).Padding(Uniform(1))
	if b.Build().Gap != 3 {
		t.Errorf("Gap = %v, want 3", b.Build().Gap)
	}
	if !n.Padding.IsZero() {
		t.Error("Wrap must not change the original node")
	}
}

func TestSizeModeString(t *testing.T) {
	tests := []struct {
		mode SizeMode
		want string
	}{
		{SizeMode{}, "auto"},
		{Fixed(48), "fix(48)"},
		{Flexible(0.3), "flex(0.3)"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
