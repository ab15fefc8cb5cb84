package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ossinsight/composer/pkg/document"
	cerrors "github.com/ossinsight/composer/pkg/errors"
	"github.com/ossinsight/composer/pkg/pipeline"
	"github.com/ossinsight/composer/pkg/render"
)

// renderCommand creates the render command for generating layout previews.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		flags      layoutFlags
		scale      float64
		titles     bool
		warnings   bool
		detailed   bool
	)

	cmd := &cobra.Command{
		Use:   "render [document]",
		Short: "Render a layout document to preview files",
		Long: `Render a layout document to preview files.

Formats:
  svg   wireframe of every placed widget
  png   rasterized wireframe (requires rsvg-convert)
  pdf   wireframe as PDF (requires rsvg-convert)
  json  computed layout, same as the layout command
  dot   the document's layout tree in Graphviz DOT

Multiple formats are comma-separated. Each output is written next to the
input unless --output is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			flags.apply(&opts)
			if cmd.Flags().Changed("format") {
				opts.Formats = pipeline.ParseFormats(formatsStr)
			}
			if cmd.Flags().Changed("scale") {
				opts.Scale = scale
			}
			opts.Titles = opts.Titles || titles
			opts.Warnings = warnings
			opts.Detailed = detailed
			return c.runRender(cmd.Context(), args[0], output, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): "+strings.Join(pipeline.FormatNames(), ", ")+" (default: svg)")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "PNG rasterization scale")
	cmd.Flags().BoolVar(&titles, "titles", false, "show widget titles in previews")
	cmd.Flags().BoolVar(&warnings, "warnings", false, "list layout warnings in previews")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "add sizing details to DOT labels")
	flags.register(cmd)

	return cmd
}

// runRender computes the document and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input, output string, opts pipeline.Options) error {
	if err := opts.ValidateForRender(); err != nil {
		return err
	}
	if opts.NeedsConverter() && !render.CanConvert() {
		return cerrors.New(cerrors.ErrCodeUnsupported, "png and pdf output require rsvg-convert on PATH")
	}

	doc, err := document.Load(input)
	if err != nil {
		return err
	}

	var spinner *Spinner
	if opts.NeedsConverter() {
		spinner = newSpinnerWithContext(ctx, "Rendering "+strings.Join(opts.Formats, ", ")+"...")
		spinner.Start()
	}

	result, err := c.newRunner().Execute(ctx, doc, opts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		printError("Render failed")
		return err
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, input, output)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", doc.Source)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Layout)
	printWarnings(result.Layout.Warnings)
	c.Logger.Debug("render stats",
		"containers", result.Stats.ContainerCount,
		"layout", result.Stats.LayoutTime,
		"render", result.Stats.RenderTime)

	return nil
}

// writeArtifacts writes each artifact and returns the paths in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := artifactPath(input, output, format, len(formats) == 1)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create output directory: %w", err)
			}
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// artifactPath picks the output file for format. A single format writes to
// output verbatim; otherwise output is a base path.
func artifactPath(input, output, format string, single bool) string {
	if output != "" && single {
		return output
	}
	base := basePath(input)
	if output != "" {
		base = basePath(output)
	}
	return base + artifactExt(format)
}

func artifactExt(format string) string {
	if format == pipeline.FormatJSON {
		return ".layout.json"
	}
	return "." + format
}
