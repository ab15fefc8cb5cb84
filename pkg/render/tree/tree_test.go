package tree

import (
	"bytes"
	"context"
	"strings"
	"testing"

	cerrors "github.com/ossinsight/composer/pkg/errors"
	"github.com/ossinsight/composer/pkg/layout"
	"github.com/ossinsight/composer/pkg/render"
)

func testTree() layout.Node {
	return layout.Vertical(
		layout.Widget("builtin:card-heading", nil, nil).Fix(48),
		layout.Horizontal(
			layout.Widget("builtin:label", nil, nil).Flex(0.3),
			layout.Widget("builtin:avatar-progress", nil, nil),
		).Gap(16),
		layout.Vertical(),
	).Padding(layout.Shorthand(0, 24, 20)).Build()
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testTree(), Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("unexpected DOT header: %q", dot[:20])
	}
	for _, want := range []string{
		`n0 [label="vertical"`,
		`n1 [label="builtin:card-heading"`,
		`n2 [label="horizontal"`,
		"n0 -> n1;",
		"n0 -> n2;",
		"n2 -> n3;",
		"n2 -> n4;",
		"n0 -> n5;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "padding") {
		t.Error("plain labels should not include details")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testTree(), Options{Detailed: true})

	for _, want := range []string{
		`label="vertical\npadding [0, 24, 20]"`,
		`label="builtin:card-heading\nfix(48)"`,
		`label="horizontal\ngap 16"`,
		`label="builtin:label\nflex(0.3)"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %s\n%s", want, dot)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(testTree(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Error("viewBox should be normalized")
	}
	if !strings.Contains(string(svg), "builtin:card-heading") {
		t.Error("SVG should contain node labels")
	}
}

func TestRenderSVGInvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("RenderSVG() should fail on malformed DOT")
	}
}

func TestRenderRaster(t *testing.T) {
	ctx := context.Background()
	src := ToDOT(testTree(), Options{})

	png, pngErr := RenderPNG(ctx, src, 2)
	pdf, pdfErr := RenderPDF(ctx, src)

	if !render.CanConvert() {
		for name, err := range map[string]error{"RenderPNG": pngErr, "RenderPDF": pdfErr} {
			if !cerrors.Is(err, cerrors.ErrCodeUnsupported) {
				t.Errorf("%s() error = %v, want UNSUPPORTED", name, err)
			}
		}
		return
	}

	if pngErr != nil {
		t.Fatalf("RenderPNG() error: %v", pngErr)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("RenderPNG() output is not a PNG")
	}
	if pdfErr != nil {
		t.Fatalf("RenderPDF() error: %v", pdfErr)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("RenderPDF() output is not a PDF")
	}
}

func TestParentPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"root", ""},
		{"root/0", "root"},
		{"root/1/0", "root/1"},
	}

	for _, tt := range tests {
		if got := parentPath(tt.path); got != tt.want {
			t.Errorf("parentPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); string(got) != string(plain) {
		t.Error("SVG without viewBox should be returned as is")
	}
}

func TestRender(t *testing.T) {
	out := Render(testTree())

	for _, want := range []string{
		"vertical",
		"padding [0, 24, 20]",
		"builtin:card-heading",
		"fix(48)",
		"horizontal",
		"gap 16",
		"builtin:avatar-progress",
		"(empty)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Render() missing %q\n%s", want, out)
		}
	}
	if lines := strings.Count(strings.TrimRight(out, "\n"), "\n") + 1; lines != 6 {
		t.Errorf("Render() has %d lines, want 6\n%s", lines, out)
	}
}

func TestRenderUnknownKind(t *testing.T) {
	out := Render(layout.Vertical(layout.Node{Kind: layout.Kind(9)}).Build())
	if !strings.Contains(out, "unknown(9)") {
		t.Errorf("Render() = %q, want unknown kind listed", out)
	}
}
