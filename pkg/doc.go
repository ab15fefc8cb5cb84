// Package pkg provides the core libraries for composer widget layouts.
//
// # Overview
//
// Composer turns a declarative tree of containers and widgets into absolute
// rectangles. The pkg directory is organized into these areas:
//
//  1. [layout] - The layout engine (spacing, sizing, builders, computation)
//  2. [compose] - Card building blocks and builtin widget identifiers
//  3. [document] - Layout documents in TOML, JSON and YAML
//  4. [pipeline] - Orchestration (document → layout → artifacts)
//  5. [render] - Output sinks: layout JSON, SVG wireframes, tree diagrams
//  6. [errors] - Coded errors shared by every package
//  7. [observability] - Hooks for layout, render and HTTP events
//
// # Architecture
//
// The typical data flow:
//
//	Layout document (.toml, .json, .yaml) or Go builder
//	         ↓
//	    [document] package (decode + validate into a layout.Node tree)
//	         ↓
//	    [layout] package (resolve sizes against the canvas)
//	         ↓
//	    [render/sink] and [render/tree] packages
//	         ↓
//	    JSON/SVG/PNG/PDF/DOT output
//
// # Quick Start
//
// Compose a card in Go and compute it:
//
//	import (
//	    "github.com/ossinsight/composer/pkg/compose"
//	    "github.com/ossinsight/composer/pkg/layout"
//	)
//
//	card := compose.Card("Stars", "",
//	    layout.Horizontal(
//	        compose.Label("Repo").Flex(1),
//	        compose.Label("Stars").Flex(3),
//	    ).Fix(24),
//	)
//	placed, err := compose.Compose(ctx, card)
//
// Or load a document and run the whole pipeline:
//
//	doc, err := document.Load("card.toml")
//	runner := pipeline.NewRunner(logger)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatJSON},
//	})
//
// [layout]: https://pkg.go.dev/github.com/ossinsight/composer/pkg/layout
// [compose]: https://pkg.go.dev/github.com/ossinsight/composer/pkg/compose
// [document]: https://pkg.go.dev/github.com/ossinsight/composer/pkg/document
// [pipeline]: https://pkg.go.dev/github.com/ossinsight/composer/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/ossinsight/composer/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/ossinsight/composer/pkg/render/sink
// [render/tree]: https://pkg.go.dev/github.com/ossinsight/composer/pkg/render/tree
// [errors]: https://pkg.go.dev/github.com/ossinsight/composer/pkg/errors
// [observability]: https://pkg.go.dev/github.com/ossinsight/composer/pkg/observability
package pkg
