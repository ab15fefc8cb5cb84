package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ossinsight/composer/pkg/compose"
	"github.com/ossinsight/composer/pkg/layout"
	"github.com/ossinsight/composer/pkg/pipeline"
	"github.com/ossinsight/composer/pkg/render/sink"
)

// repoChanges is a row of the demo card.
type repoChanges struct {
	repo      string
	additions float64
	deletions float64
}

var demoRepos = []repoChanges{
	{"torvalds/linux", 4120, 1870},
	{"golang/go", 3180, 2210},
	{"kubernetes/kubernetes", 2070, 940},
	{"rust-lang/rust", 960, 410},
}

// demoCard builds the sample card: a heading, a column header row, and one
// row per repository with its avatar, its total changes and an
// additions/deletions bar. Without data the body is an empty state.
func demoCard(rows []repoChanges) layout.Element {
	header := layout.Horizontal(
		compose.Label("Repo").Flex(0.3),
		compose.Label("Lines of Code Changed").Flex(1),
		compose.Label("Add/Delete"),
	).Flex(0.1)

	return compose.Card("Which Repositories Have the Most Frequent Code Changes?", "",
		header,
		compose.NonEmpty(rows, func(rows []repoChanges) layout.Element {
			children := make([]layout.Element, len(rows))
			for i, r := range rows {
				owner, name, _ := strings.Cut(r.repo, "/")
				children[i] = layout.Horizontal(
					compose.AvatarLabel(owner, name).Flex(0.3),
					compose.Label(fmt.Sprint(r.additions+r.deletions)).Flex(0.3),
					compose.AvatarProgress(fmt.Sprintf("+%g", r.additions), r.additions, r.additions+r.deletions).Flex(0.4),
				)
			}
			return layout.Horizontal(layout.Vertical(children...).Flex(0.7))
		}),
	)
}

// demoCommand lays out a built-in card composed in Go.
func (c *CLI) demoCommand() *cobra.Command {
	var (
		output string
		empty  bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Lay out the built-in sample card",
		Long: `Lay out the built-in sample card.

The demo card is composed with the compose package: a heading, a column
header row, and a row per repository with an avatar label, a change count and
an additions/deletions bar, on the default 432x272 widget canvas. Use --empty
to see the empty-state placeholder.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := demoRepos
			if empty {
				rows = nil
			}
			return c.runDemo(cmd.Context(), rows, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "also write an SVG preview to this file")
	cmd.Flags().BoolVar(&empty, "empty", false, "lay out the card without data")

	return cmd
}

func (c *CLI) runDemo(ctx context.Context, rows []repoChanges, output string) error {
	opts := pipeline.Options{Logger: c.Logger}
	l, err := c.newRunner().Compute(ctx, demoCard(rows), compose.Canvas, "demo", opts)
	if err != nil {
		return err
	}

	fmt.Println(widgetTable(l.Widgets))
	printStats(l)
	printWarnings(l.Warnings)

	if output != "" {
		if err := os.WriteFile(output, sink.RenderSVG(l, sink.WithTitles()), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		printFile(output)
	}
	return nil
}
