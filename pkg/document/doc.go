// Package document reads declarative layout documents.
//
// A document describes a canvas and a layout tree in TOML, JSON or YAML:
//
//	[canvas]
//	width = 432
//	height = 272
//
//	[root]
//	layout = "vertical"
//	padding = [0, 24, 20]
//
//	  [[root.children]]
//	  layout = "widget"
//	  widget = "builtin:card-heading"
//	  size = 48
//
// Every node has a layout ("vertical", "horizontal" or "widget"). Containers
// take padding, gap and children; any node takes either a fixed size or a
// grow weight, never both. Widgets name the widget to render and may carry
// free-form parameters and data that are passed through to the output
// untouched.
//
// Decoding validates the whole tree up front, so a [Document] that loads
// without error can always be laid out. Validation errors carry the codes of
// [github.com/ossinsight/composer/pkg/errors] and the path of the offending
// node ("root/1/0").
package document
