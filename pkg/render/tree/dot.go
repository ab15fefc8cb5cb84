package tree

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/ossinsight/composer/pkg/layout"
	"github.com/ossinsight/composer/pkg/render"
)

// Options configures tree diagram rendering.
type Options struct {
	// Detailed adds padding, gap and size mode to node labels.
	// When false, only the widget id or container kind is shown.
	Detailed bool
}

// ToDOT converts a layout tree to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG], [RenderPDF], or [RenderPNG].
//
// Containers are drawn dashed, widgets filled; unknown kinds are grey.
// Children appear left to right in declaration order.
func ToDOT(root layout.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ordering=out;\n")
	buf.WriteString("\n")

	ids := make(map[string]string)
	var edges []string
	root.Walk(func(path string, n layout.Node) bool {
		id := "n" + strconv.Itoa(len(ids))
		ids[path] = id
		fmt.Fprintf(&buf, "  %s [%s];\n", id, strings.Join(fmtAttrs(n, fmtLabel(n, opts.Detailed)), ", "))
		if parent, ok := ids[parentPath(path)]; ok {
			edges = append(edges, fmt.Sprintf("  %s -> %s;\n", parent, id))
		}
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n layout.Node, detailed bool) string {
	label := title(n)
	if !detailed {
		return label
	}
	if parts := describe(n); len(parts) > 0 {
		label += "\n" + strings.Join(parts, "\n")
	}
	return label
}

func fmtAttrs(n layout.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch {
	case n.Kind.IsContainer():
		attrs = append(attrs, "style=\"rounded,dashed\"")
	case n.Kind == layout.KindWidget:
		attrs = append(attrs, "fillcolor=\"#e8f0fe\"")
	default:
		attrs = append(attrs, "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based svg tag with one sized in
// pixels from the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion at the given scale.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(ctx, svg, scale)
}

// describe summarizes the sizing attributes of n: padding, gap and size mode.
func describe(n layout.Node) []string {
	var parts []string
	if !n.Padding.IsZero() {
		parts = append(parts, "padding "+n.Padding.String())
	}
	if n.Gap != 0 {
		parts = append(parts, "gap "+formatNumber(n.Gap))
	}
	if _, fixed := n.Size.Size(); fixed {
		parts = append(parts, n.Size.String())
	} else if _, flex := n.Size.Grow(); flex {
		parts = append(parts, n.Size.String())
	}
	return parts
}

// title is the primary label of n: the widget id or the container kind.
func title(n layout.Node) string {
	if n.Kind == layout.KindWidget {
		return n.ID
	}
	return n.Kind.String()
}

func parentPath(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return ""
}
