package layout

import (
	"bytes"
	"math"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	cerrors "github.com/ossinsight/composer/pkg/errors"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < eps }

func assertRect(t *testing.T, p Placed, want Rect) {
	t.Helper()
	got := p.Rect()
	if !approx(got.Left, want.Left) || !approx(got.Top, want.Top) ||
		!approx(got.Width, want.Width) || !approx(got.Height, want.Height) {
		t.Errorf("%s: rect = %+v, want %+v", p.ID, got, want)
	}
}

func collectWarnings(ws *[]Warning) Option {
	return WithWarningHandler(func(w Warning) { *ws = append(*ws, w) })
}

func TestCompute_EndToEnd(t *testing.T) {
	tree := Vertical(
		Widget("a", nil, nil).Fix(50),
		Widget("b", nil, nil).Flex(1),
	)

	placed, err := Compute(tree, Rect{Width: 200, Height: 150})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if len(placed) != 2 {
		t.Fatalf("len(placed) = %d, want 2", len(placed))
	}
	if placed[0].ID != "a" || placed[1].ID != "b" {
		t.Errorf("order = %q, %q, want a, b", placed[0].ID, placed[1].ID)
	}
	assertRect(t, placed[0], Rect{Left: 0, Top: 0, Width: 200, Height: 50})
	assertRect(t, placed[1], Rect{Left: 0, Top: 50, Width: 200, Height: 100})
}

func TestCompute_ProportionalDistribution(t *testing.T) {
	tree := Vertical(
		Widget("one", nil, nil).Flex(1),
		Widget("two", nil, nil).Flex(2),
	)

	placed, err := Compute(tree, Rect{Width: 100, Height: 300})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	assertRect(t, placed[0], Rect{Left: 0, Top: 0, Width: 100, Height: 100})
	assertRect(t, placed[1], Rect{Left: 0, Top: 100, Width: 100, Height: 200})
}

func TestCompute_FixedChildrenFit(t *testing.T) {
	tree := Vertical(
		Widget("a", nil, nil).Fix(50),
		Widget("b", nil, nil).Fix(80),
		Widget("c", nil, nil).Fix(30),
	).Gap(10)

	var warnings []Warning
	placed, err := Compute(tree, Rect{Width: 120, Height: 300}, collectWarnings(&warnings))
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	wantHeights := []float64{50, 80, 30}
	wantTops := []float64{0, 60, 150}
	var span float64
	for i, p := range placed {
		if !approx(p.Height, wantHeights[i]) {
			t.Errorf("%s height = %v, want %v", p.ID, p.Height, wantHeights[i])
		}
		if !approx(p.Top, wantTops[i]) {
			t.Errorf("%s top = %v, want %v", p.ID, p.Top, wantTops[i])
		}
		span += p.Height
	}
	span += 10 * float64(len(placed)-1)
	if span > 300 {
		t.Errorf("main-axis span = %v, exceeds container 300", span)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestCompute_OverflowWithoutFlexible(t *testing.T) {
	tree := Horizontal(
		Widget("a", nil, nil).Fix(60),
		Widget("b", nil, nil).Fix(60),
	)

	var warnings []Warning
	placed, err := Compute(tree, Rect{Width: 100, Height: 40}, collectWarnings(&warnings))
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	assertRect(t, placed[0], Rect{Left: 0, Top: 0, Width: 60, Height: 40})
	assertRect(t, placed[1], Rect{Left: 60, Top: 0, Width: 60, Height: 40})
	if len(warnings) != 0 {
		t.Errorf("fixed overflow should not warn, got %v", warnings)
	}
}

func TestCompute_OverflowWithFlexible(t *testing.T) {
	tree := Horizontal(
		Widget("fixed", nil, nil).Fix(120),
		Widget("flex", nil, nil),
	)

	var warnings []Warning
	placed, err := Compute(tree, Rect{Width: 100, Height: 40}, collectWarnings(&warnings))
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	assertRect(t, placed[0], Rect{Left: 0, Top: 0, Width: 120, Height: 40})
	assertRect(t, placed[1], Rect{Left: 120, Top: 0, Width: 0, Height: 40})

	if len(warnings) != 1 {
		t.Fatalf("len(warnings) = %d, want 1", len(warnings))
	}
	w := warnings[0]
	if w.Kind != WarnOverflow {
		t.Errorf("Kind = %v, want %v", w.Kind, WarnOverflow)
	}
	if w.Path != RootPath {
		t.Errorf("Path = %q, want %q", w.Path, RootPath)
	}
	if !approx(w.Remaining, -20) {
		t.Errorf("Remaining = %v, want -20", w.Remaining)
	}
}

func TestCompute_ExactFitCollapsesFlexible(t *testing.T) {
	tree := Vertical(
		Widget("a", nil, nil).Fix(100),
		Widget("b", nil, nil).Flex(),
	)

	var warnings []Warning
	placed, err := Compute(tree, Rect{Width: 10, Height: 100}, collectWarnings(&warnings))
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if placed[1].Height != 0 {
		t.Errorf("flexible height = %v, want 0", placed[1].Height)
	}
	if len(warnings) != 1 || warnings[0].Kind != WarnOverflow {
		t.Errorf("warnings = %v, want one overflow", warnings)
	}
}

func TestCompute_PaddingAndGap(t *testing.T) {
	tree := Horizontal(
		Widget("a", nil, nil),
		Widget("b", nil, nil),
		Widget("c", nil, nil),
	).Padding(Shorthand(10, 20)).Gap(5)

	placed, err := Compute(tree, Rect{Left: 5, Top: 5, Width: 200, Height: 100})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	// inner: left 25, top 15, width 160, height 80; 150 shared by three.
	assertRect(t, placed[0], Rect{Left: 25, Top: 15, Width: 50, Height: 80})
	assertRect(t, placed[1], Rect{Left: 80, Top: 15, Width: 50, Height: 80})
	assertRect(t, placed[2], Rect{Left: 135, Top: 15, Width: 50, Height: 80})
}

func TestCompute_WidgetPadding(t *testing.T) {
	tree := Widget("w", nil, nil).Padding(Uniform(4))

	placed, err := Compute(tree, Rect{Left: 10, Top: 10, Width: 100, Height: 50})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	assertRect(t, placed[0], Rect{Left: 14, Top: 14, Width: 92, Height: 42})
}

func TestCompute_CrossAxisFill(t *testing.T) {
	tree := Vertical(
		Widget("a", nil, nil).Fix(10),
		Horizontal(Widget("b", nil, nil), Widget("c", nil, nil)),
	).Padding(Shorthand(0, 8))

	placed, err := Compute(tree, Rect{Width: 116, Height: 50})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	assertRect(t, placed[0], Rect{Left: 8, Top: 0, Width: 100, Height: 10})
	assertRect(t, placed[1], Rect{Left: 8, Top: 10, Width: 50, Height: 40})
	assertRect(t, placed[2], Rect{Left: 58, Top: 10, Width: 50, Height: 40})
}

func TestCompute_NonPositiveWeights(t *testing.T) {
	tree := Horizontal(
		Widget("zero", nil, nil).Flex(0),
		Widget("negative", nil, nil).Flex(-2),
		Widget("two", nil, nil).Flex(2),
	)

	placed, err := Compute(tree, Rect{Width: 400, Height: 10})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	want := []float64{100, 100, 200}
	for i, p := range placed {
		if !approx(p.Width, want[i]) {
			t.Errorf("%s width = %v, want %v", p.ID, p.Width, want[i])
		}
	}
}

func TestCompute_NonPositiveFixedIsFlexible(t *testing.T) {
	tree := Horizontal(
		Widget("zero", nil, nil).Fix(0),
		Widget("negative", nil, nil).Fix(-5),
		Widget("flex", nil, nil),
	)

	placed, err := Compute(tree, Rect{Width: 90, Height: 10})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	for _, p := range placed {
		if !approx(p.Width, 30) {
			t.Errorf("%s width = %v, want 30", p.ID, p.Width)
		}
	}
}

func TestCompute_AllFixedLeavesSlack(t *testing.T) {
	tree := Vertical(
		Widget("a", nil, nil).Fix(10),
		Widget("b", nil, nil).Fix(20),
	)

	var warnings []Warning
	placed, err := Compute(tree, Rect{Width: 10, Height: 100}, collectWarnings(&warnings))
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	assertRect(t, placed[1], Rect{Left: 0, Top: 10, Width: 10, Height: 20})
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestCompute_ZeroChildren(t *testing.T) {
	tree := Vertical().Padding(Uniform(5)).Gap(10)

	var warnings []Warning
	placed, err := Compute(tree, Rect{Width: 100, Height: 100}, collectWarnings(&warnings))
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if placed == nil || len(placed) != 0 {
		t.Errorf("placed = %v, want empty non-nil slice", placed)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestCompute_UnknownKind(t *testing.T) {
	tree := Vertical(
		Node{Kind: Kind(42)},
		Widget("b", nil, nil),
	)

	var warnings []Warning
	placed, err := Compute(tree, Rect{Width: 10, Height: 100}, collectWarnings(&warnings))
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if len(placed) != 1 || placed[0].ID != "b" {
		t.Fatalf("placed = %+v, want only b", placed)
	}
	// The unknown node still occupies its flexible share.
	assertRect(t, placed[0], Rect{Left: 0, Top: 50, Width: 10, Height: 50})

	if len(warnings) != 1 {
		t.Fatalf("len(warnings) = %d, want 1", len(warnings))
	}
	if warnings[0].Kind != WarnUnknownKind || warnings[0].Path != "root/0" {
		t.Errorf("warning = %+v, want unknown_kind at root/0", warnings[0])
	}
}

func TestCompute_UnknownRoot(t *testing.T) {
	placed, err := Compute(Node{}, Rect{Width: 10, Height: 10})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if len(placed) != 0 {
		t.Errorf("placed = %v, want empty", placed)
	}
}

func TestCompute_InvalidSpacing(t *testing.T) {
	tree := Vertical(
		Widget("ok", nil, nil),
		Horizontal(
			Widget("bad", nil, nil).Padding(Shorthand(1, 2, 3, 4, 5)),
		),
	)

	placed, err := Compute(tree, Rect{Width: 100, Height: 100})
	if err == nil {
		t.Fatal("Compute() should fail on invalid spacing")
	}
	if placed != nil {
		t.Errorf("placed = %v, want nil on error", placed)
	}
	if !cerrors.Is(err, cerrors.ErrCodeInvalidSpacing) {
		t.Errorf("error code = %v, want %v", cerrors.GetCode(err), cerrors.ErrCodeInvalidSpacing)
	}
	if !strings.Contains(err.Error(), "root/1/0") {
		t.Errorf("error %q should name node root/1/0", err)
	}
}

func TestCompute_PreOrder(t *testing.T) {
	tree := Vertical(
		Horizontal(Widget("a", nil, nil), Vertical(Widget("b", nil, nil), Widget("c", nil, nil))),
		Widget("d", nil, nil),
	)

	placed, err := Compute(tree, Rect{Width: 100, Height: 100})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	var ids []string
	for _, p := range placed {
		ids = append(ids, p.ID)
	}
	if got := strings.Join(ids, ","); got != "a,b,c,d" {
		t.Errorf("order = %s, want a,b,c,d", got)
	}
}

func TestCompute_PassesPayloadThrough(t *testing.T) {
	params := map[string]any{"title": "Stars", "size": 24}
	data := []int{1, 2, 3}

	placed, err := Compute(Widget("w", data, params), Rect{Width: 1, Height: 1})
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if reflect.ValueOf(placed[0].Parameters).Pointer() != reflect.ValueOf(params).Pointer() {
		t.Error("Parameters should be the caller's map, not a copy")
	}
	if !reflect.DeepEqual(placed[0].Data, data) {
		t.Errorf("Data = %v, want %v", placed[0].Data, data)
	}
}

func TestCompute_DoesNotMutateTree(t *testing.T) {
	tree := Horizontal(Widget("a", nil, nil), Widget("b", nil, nil).Fix(20)).Build()

	if _, err := Compute(tree, Rect{Width: 100, Height: 10}); err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if _, ok := tree.Children[0].Size.Size(); ok {
		t.Error("Compute must not write resolved sizes into the tree")
	}
}

func TestCompute_Deterministic(t *testing.T) {
	tree := Vertical(
		Widget("h", nil, nil).Fix(48),
		Horizontal(
			Widget("l", nil, nil).Flex(0.3),
			Widget("m", nil, nil).Flex(1),
			Widget("r", nil, nil),
		).Flex(0.1),
		Vertical(Widget("x", nil, nil), Widget("y", nil, nil)).Gap(3),
	).Padding(Shorthand(0, 24, 20))

	frame := Rect{Width: 432, Height: 272}
	first, err := Compute(tree, frame)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	second, err := Compute(tree, frame)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Compute is not deterministic:\n%v\n%v", first, second)
	}
}

func TestCompute_Concurrent(t *testing.T) {
	tree := Vertical(
		Widget("a", nil, nil).Fix(10),
		Horizontal(Widget("b", nil, nil), Widget("c", nil, nil).Flex(2)),
	).Build()
	frame := Rect{Width: 300, Height: 100}

	want, err := Compute(tree, frame)
	if err != nil {
		t.Fatalf("Compute() error: %v", err)
	}

	var wg sync.WaitGroup
	results := make([][]Placed, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = Compute(tree, frame)
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if !reflect.DeepEqual(got, want) {
			t.Errorf("goroutine %d: got %v, want %v", i, got, want)
		}
	}
}

func TestCompute_LogsWarnings(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.WarnLevel})

	tree := Horizontal(Widget("a", nil, nil).Fix(200), Widget("b", nil, nil))
	if _, err := Compute(tree, Rect{Width: 100, Height: 10}, WithLogger(logger)); err != nil {
		t.Fatalf("Compute() error: %v", err)
	}
	if !strings.Contains(buf.String(), "overflow") {
		t.Errorf("log output %q should mention overflow", buf.String())
	}
}

func TestWarningString(t *testing.T) {
	w := Warning{Kind: WarnOverflow, Path: "root/2", Message: "no space left for 1 flexible children"}
	want := "overflow at root/2: no space left for 1 flexible children"
	if got := w.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
