// Package sink renders computed layouts to output formats.
//
// [RenderJSON] produces the compose items consumed by the widget rendering
// layer. [RenderSVG] produces a wireframe preview: one box per widget,
// labelled with the widget id, useful to check a composition before the real
// widgets exist.
//
// Both are pure functions of the layout and are safe to call concurrently.
package sink
