package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/ossinsight/composer/pkg/layout"
	"github.com/ossinsight/composer/pkg/observability"
	"github.com/ossinsight/composer/pkg/render"
	"github.com/ossinsight/composer/pkg/render/sink"
	"github.com/ossinsight/composer/pkg/render/tree"
)

// Render generates output artifacts in the requested formats. root is the
// tree l was computed from; it is only needed for the DOT format.
func (r *Runner) Render(ctx context.Context, l render.Layout, root layout.Node, opts Options) (map[string][]byte, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, err := renderFormats(ctx, l, root, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

func renderFormats(ctx context.Context, l render.Layout, root layout.Node, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	// PNG and PDF are converted from the same preview.
	var svg []byte
	preview := func() []byte {
		if svg == nil {
			svg = sink.RenderSVG(l, svgOptions(opts)...)
		}
		return svg
	}

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = preview()
		case FormatPNG:
			data, err = render.ToPNG(ctx, preview(), opts.Scale)
		case FormatPDF:
			data, err = render.ToPDF(ctx, preview())
		case FormatJSON:
			data, err = sink.RenderJSON(l, jsonOptions(opts)...)
		case FormatDOT:
			data = []byte(tree.ToDOT(root, tree.Options{Detailed: opts.Detailed}))
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
		opts.Logger.Debug("rendered artifact", "format", format, "bytes", len(data))
	}

	return artifacts, nil
}

func svgOptions(opts Options) []sink.SVGOption {
	var out []sink.SVGOption
	if opts.Titles {
		out = append(out, sink.WithTitles())
	}
	if opts.Warnings {
		out = append(out, sink.WithWarnings())
	}
	return out
}

func jsonOptions(opts Options) []sink.JSONOption {
	var out []sink.JSONOption
	if opts.ID != "" {
		out = append(out, sink.WithJSONID(opts.ID))
	}
	return out
}
