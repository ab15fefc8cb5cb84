package sink

import (
	"bytes"
	"fmt"
	"hash/fnv"

	"github.com/ossinsight/composer/pkg/layout"
	"github.com/ossinsight/composer/pkg/render"
)

// palette is indexed by a hash of the widget id so that the same widget has
// the same color in every preview.
var palette = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2",
	"#59a14f", "#edc948", "#b07aa1", "#ff9da7",
}

const (
	canvasFill   = "#fafafa"
	canvasStroke = "#d0d0d0"
	warningColor = "#c0392b"
	textColor    = "#333333"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale    float64
	titles   bool
	warnings bool
}

// WithScale sets the device pixel ratio. The viewBox stays in logical pixels;
// only the intrinsic size of the image grows.
func WithScale(s float64) SVGOption { return func(r *svgRenderer) { r.scale = s } }

// WithTitles adds the widget's title or label parameter under its id.
func WithTitles() SVGOption { return func(r *svgRenderer) { r.titles = true } }

// WithWarnings lists layout warnings at the bottom of the canvas.
func WithWarnings() SVGOption { return func(r *svgRenderer) { r.warnings = true } }

// RenderSVG draws a wireframe of l.
//
// Collapsed widgets (zero width or height) are drawn as a dashed marker on
// their position so that overflow stays visible.
func RenderSVG(l render.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		r.scale = 1
	}

	w, h := formatFloat(l.Width), formatFloat(l.Height)
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		w, h, formatFloat(l.Width*r.scale), formatFloat(l.Height*r.scale))
	fmt.Fprintf(&buf, `  <rect class="canvas" width="%s" height="%s" fill="%s" stroke="%s"/>`+"\n",
		w, h, canvasFill, canvasStroke)

	for i, p := range l.Widgets {
		r.renderWidget(&buf, i, p)
	}
	if r.warnings {
		renderWarnings(&buf, l)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderWidget(buf *bytes.Buffer, i int, p layout.Placed) {
	color := colorFor(p.ID)
	fmt.Fprintf(buf, `  <g class="widget" data-widget="%s" data-index="%d">`+"\n", escapeXML(p.ID), i)
	defer buf.WriteString("  </g>\n")

	if p.Width <= 0 || p.Height <= 0 {
		fmt.Fprintf(buf, `    <line class="collapsed" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-dasharray="4 2"/>`+"\n",
			formatFloat(p.Left), formatFloat(p.Top),
			formatFloat(p.Left+max(p.Width, 0)), formatFloat(p.Top+max(p.Height, 0)), warningColor)
		return
	}

	fmt.Fprintf(buf, `    <rect x="%s" y="%s" width="%s" height="%s" rx="4" fill="%s" fill-opacity="0.15" stroke="%s"/>`+"\n",
		formatFloat(p.Left), formatFloat(p.Top), formatFloat(p.Width), formatFloat(p.Height), color, color)

	rect := p.Rect()
	size := fontSize(p.Width, p.Height, len(p.ID))
	label := truncateLabel(p.ID, p.Width, size)
	cy := rect.CenterY()

	title := ""
	if r.titles {
		title = titleOf(p.Parameters)
	}
	if title != "" {
		cy -= size * 0.6
	}
	fmt.Fprintf(buf, `    <text x="%s" y="%s" font-family="monospace" font-size="%s" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		formatFloat(rect.CenterX()), formatFloat(cy), formatFloat(size), textColor, escapeXML(label))
	if title != "" {
		sub := size * 0.85
		fmt.Fprintf(buf, `    <text class="title" x="%s" y="%s" font-family="sans-serif" font-size="%s" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
			formatFloat(rect.CenterX()), formatFloat(cy+size*1.2), formatFloat(sub), textColor,
			escapeXML(truncateLabel(title, p.Width, sub)))
	}
}

func renderWarnings(buf *bytes.Buffer, l render.Layout) {
	const lineHeight = 12.0
	y := l.Height - lineHeight*float64(len(l.Warnings)) + lineHeight/2
	for _, w := range l.Warnings {
		fmt.Fprintf(buf, `  <text class="warning" x="4" y="%s" font-family="sans-serif" font-size="10" fill="%s" dominant-baseline="central">%s</text>`+"\n",
			formatFloat(y), warningColor, escapeXML(w.String()))
		y += lineHeight
	}
}

// titleOf picks the human-readable text builtin widgets carry.
func titleOf(params map[string]any) string {
	for _, key := range []string{"title", "label"} {
		if s, ok := params[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func colorFor(id string) string {
	h := fnv.New32a()
	h.Write([]byte(id))
	return palette[h.Sum32()%uint32(len(palette))]
}
