// Package render turns computed layouts into artifacts.
//
// # Overview
//
// A [Layout] is the output of one computation: the canvas size, the placed
// widgets and any warnings. The subpackages render it:
//
//   - [sink]: JSON compose items and SVG wireframe previews
//   - [tree]: the node tree itself, as a Graphviz diagram or terminal tree
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg).
//
//	svg := sink.RenderSVG(l)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0) // 2x scale
package render
