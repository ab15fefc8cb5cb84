package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ossinsight/composer/pkg/layout"
	"github.com/ossinsight/composer/pkg/render"
)

// inspectCommand lays out a document and browses the result.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain bool
		flags layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "inspect [document]",
		Short: "Browse the computed widgets of a document",
		Long: `Browse the computed widgets of a document.

Opens an interactive table of placed widgets. Select a row to see its
parameters. Collapsed widgets are highlighted and warnings are listed below
the table. Use --plain to print the table without the interactive view.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.pipelineOptions()
			flags.apply(&opts)
			_, l, err := c.computeFile(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			if plain {
				fmt.Println(widgetTable(l.Widgets))
				printStats(l)
				printWarnings(l.Warnings)
				return nil
			}
			return runInspector(cmd.Context(), l)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the widget table and exit")
	flags.register(cmd)

	return cmd
}

func runInspector(ctx context.Context, l render.Layout) error {
	_, err := tea.NewProgram(newInspectModel(l), tea.WithContext(ctx)).Run()
	return err
}

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listDetailStyle = lipgloss.NewStyle().Foreground(colorGray).PaddingLeft(2)
)

// =============================================================================
// inspectModel - Interactive widget browser
// =============================================================================

// inspectModel is the bubbletea model for browsing placed widgets.
type inspectModel struct {
	layout render.Layout
	cursor int
	offset int
	height int
	// detail toggles the parameter view for the selected widget.
	detail bool
}

func newInspectModel(l render.Layout) inspectModel {
	return inspectModel{layout: l, height: 15}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.layout.Widgets)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter", " ":
			m.detail = !m.detail
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-10, 5)
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Layout %sx%s", formatNumber(m.layout.Width), formatNumber(m.layout.Height))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	if len(m.layout.Widgets) == 0 {
		b.WriteString(listDimStyle.Render("  no widgets"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(m.offset+m.height, len(m.layout.Widgets))
	visible := m.layout.Widgets[m.offset:end]
	rows := widgetRows(visible)
	for i := range rows {
		if m.offset+i == m.cursor {
			rows[i][0] = "▸"
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers(widgetHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleTableHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			idx := m.offset + row
			if idx >= len(m.layout.Widgets) {
				return base
			}
			if isCollapsed(m.layout.Widgets[idx]) {
				base = base.Foreground(colorYellow)
			} else if col >= 2 {
				base = base.Foreground(colorGray)
			}
			if idx == m.cursor {
				return base.Bold(true).Foreground(colorCyan)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.layout.Widgets))))
	b.WriteString("\n")

	if m.detail {
		b.WriteString("\n")
		b.WriteString(widgetDetail(m.layout.Widgets[m.cursor]))
	}

	if len(m.layout.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range m.layout.Warnings {
			b.WriteString(StyleWarning.Render(iconWarning + " " + w.String()))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// widgetDetail lists a widget's parameters in key order.
func widgetDetail(p layout.Placed) string {
	var b strings.Builder
	b.WriteString(StyleValue.Render(p.ID))
	b.WriteString("\n")

	keys := make([]string, 0, len(p.Parameters))
	for k := range p.Parameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if len(keys) == 0 {
		b.WriteString(listDetailStyle.Render("no parameters"))
		b.WriteString("\n")
	}
	for _, k := range keys {
		b.WriteString(listDetailStyle.Render(fmt.Sprintf("%s = %v", k, p.Parameters[k])))
		b.WriteString("\n")
	}
	if p.Data != nil {
		b.WriteString(listDetailStyle.Render(fmt.Sprintf("data: %T", p.Data)))
		b.WriteString("\n")
	}
	return b.String()
}
