package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ossinsight/composer/pkg/document"
	"github.com/ossinsight/composer/pkg/pipeline"
	"github.com/ossinsight/composer/pkg/render"
	"github.com/ossinsight/composer/pkg/render/sink"
)

// layoutFlags are the canvas overrides shared by commands that compute a
// layout.
type layoutFlags struct {
	width  float64
	height float64
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", 0, "canvas width (default: document canvas)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "canvas height (default: document canvas)")
}

// apply overrides the config file canvas with any flags given.
func (f *layoutFlags) apply(opts *pipeline.Options) {
	if f.width > 0 {
		opts.Width = f.width
	}
	if f.height > 0 {
		opts.Height = f.height
	}
}

// layoutCommand creates the layout command for computing widget geometry.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		compact bool
		flags   layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [document]",
		Short: "Compute widget positions for a layout document",
		Long: `Compute widget positions for a layout document.

The layout command reads a document (.toml, .json or .yaml), resolves its
layout tree against the canvas, and writes a layout.json file with the
rectangle of every widget in document order.

Widgets that do not fit are collapsed to zero size and reported as warnings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			flags.apply(&opts)
			return c.runLayout(cmd.Context(), args[0], output, compact, opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&compact, "compact", false, "write compact JSON")
	flags.register(cmd)

	return cmd
}

// runLayout loads the document, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, output string, compact bool, opts pipeline.Options) error {
	doc, l, err := c.computeFile(ctx, input, opts)
	if err != nil {
		return err
	}

	var jsonOpts []sink.JSONOption
	if compact {
		jsonOpts = append(jsonOpts, sink.WithJSONCompact())
	}
	data, err := sink.RenderJSON(l, jsonOpts...)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath(input) + ".layout.json"
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(l)
	printWarnings(l.Warnings)
	printNewline()
	printNextStep("Preview", appName+" render "+doc.Source)

	return nil
}

// computeFile loads a document and computes its layout.
func (c *CLI) computeFile(ctx context.Context, input string, opts pipeline.Options) (*document.Document, render.Layout, error) {
	doc, err := document.Load(input)
	if err != nil {
		return nil, render.Layout{}, err
	}

	prog := newProgress(loggerFromContext(ctx))
	l, err := c.newRunner().ComputeDocument(ctx, doc, opts)
	if err != nil {
		return nil, render.Layout{}, fmt.Errorf("compute %s: %w", input, err)
	}
	prog.done(fmt.Sprintf("Computed %d widgets", len(l.Widgets)))

	return doc, l, nil
}

// basePath strips the extension from a document path.
func basePath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}
