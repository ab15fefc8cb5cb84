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
	"github.com/ossinsight/composer/pkg/render/tree"
)

// treeCommand prints a document's layout tree.
func (c *CLI) treeCommand() *cobra.Command {
	var (
		dot      bool
		output   string
		scale    float64
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "tree [document]",
		Short: "Show the layout tree of a document",
		Long: `Show the layout tree of a document.

By default the tree is printed to the terminal with each node's kind, size,
padding and gap. Use --dot to print Graphviz DOT instead, or --output to
render the tree diagram to a file. The diagram format follows the file
extension: .svg, .png or .pdf (png and pdf require rsvg-convert).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTree(cmd.Context(), args[0], dot, output, scale, detailed)
		},
	}

	cmd.Flags().BoolVar(&dot, "dot", false, "print Graphviz DOT")
	cmd.Flags().StringVarP(&output, "output", "o", "", "render the tree diagram to this file (.svg, .png, .pdf)")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "PNG rasterization scale")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "add sizing details to DOT labels")

	return cmd
}

func (c *CLI) runTree(ctx context.Context, input string, dot bool, output string, scale float64, detailed bool) error {
	doc, err := document.Load(input)
	if err != nil {
		return err
	}

	containers, widgets := doc.Root.Count()
	c.Logger.Debug("loaded document", "source", doc.Source, "containers", containers, "widgets", widgets)

	src := tree.ToDOT(doc.Root, tree.Options{Detailed: detailed})
	switch {
	case output != "":
		data, err := renderTree(ctx, src, output, scale)
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		printSuccess("Rendered layout tree")
		printFile(output)
	case dot:
		fmt.Print(src)
	default:
		fmt.Println(tree.Render(doc.Root))
		printKeyValue("containers", fmt.Sprint(containers))
		printKeyValue("widgets", fmt.Sprint(widgets))
	}
	return nil
}

// renderTree renders DOT in the format named by the output extension.
func renderTree(ctx context.Context, src, output string, scale float64) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".svg":
		data, err = tree.RenderSVG(ctx, src)
	case ".png":
		data, err = tree.RenderPNG(ctx, src, scale)
	case ".pdf":
		data, err = tree.RenderPDF(ctx, src)
	default:
		return nil, cerrors.New(cerrors.ErrCodeInvalidFormat,
			"unsupported tree output %q (want .svg, .png or .pdf)", output)
	}
	if err != nil {
		return nil, fmt.Errorf("render tree: %w", err)
	}
	return data, nil
}
