package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/objscope/objscope/pkg/inspect"
)

// newBrowseCmd creates the browse command for interactive tree exploration.
func newBrowseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Explore a value interactively in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return runBrowse(cmd.Context(), input)
		},
	}
	return cmd
}

func runBrowse(ctx context.Context, input string) error {
	logger := loggerFromContext(ctx)

	v := demoValue()
	if input != "" {
		loaded, err := loadValue(input)
		if err != nil {
			return err
		}
		v = loaded
		logger.Debugf("Browsing %s", input)
	}

	factory := inspect.NewFactory(inspect.NewRegistry())
	root, err := factory.New(v)
	if err != nil {
		return err
	}

	m := NewBrowseModel(root)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// BrowseModel - Interactive tree exploration
// =============================================================================

// browseRow is one visible line of the flattened tree.
type browseRow struct {
	node  *inspect.Node
	depth int
}

// BrowseModel is the bubbletea model for interactive tree browsing.
//
// Children are enumerated lazily on first expansion and cached by node id,
// since each enumeration registers fresh child nodes.
type BrowseModel struct {
	Root   *inspect.Node
	Cursor int
	Height int
	Offset int

	rows     []browseRow
	expanded map[string]bool
	children map[string][]*inspect.Node
}

// NewBrowseModel creates a browse model with only the root visible.
func NewBrowseModel(root *inspect.Node) BrowseModel {
	m := BrowseModel{
		Root:     root,
		Height:   20,
		expanded: map[string]bool{},
		children: map[string][]*inspect.Node{},
	}
	m.rows = m.flatten(root, 0, nil)
	return m
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter", " ":
			m.toggle(m.rows[m.Cursor].node)
			m.rows = m.flatten(m.Root, 0, nil)
			if m.Cursor >= len(m.rows) {
				m.Cursor = len(m.rows) - 1
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 5
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("objscope"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ navigate  ⏎ expand/collapse  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := m.Offset; i < end; i++ {
		row := m.rows[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		marker := "  "
		if !row.node.IsLeaf() {
			if m.expanded[row.node.ID] {
				marker = "- "
			} else {
				marker = "+ "
			}
		}

		line := cursor + strings.Repeat("  ", row.depth) + marker + row.node.Label()
		b.WriteString(m.styleLine(row.node, line, i == m.Cursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))))

	return b.String()
}

func (m BrowseModel) styleLine(n *inspect.Node, line string, current bool) string {
	switch {
	case current:
		return StyleTitle.Render(line)
	case n.Kind == inspect.KindException || n.Kind == inspect.KindTruncated:
		return StyleError.Render(line)
	case n.Kind == inspect.KindSubsection:
		return StyleDim.Render(line)
	default:
		return StyleValue.Render(line)
	}
}

// toggle flips the expansion state of n, enumerating children on first use.
func (m *BrowseModel) toggle(n *inspect.Node) {
	if n.IsLeaf() {
		return
	}
	if m.expanded[n.ID] {
		delete(m.expanded, n.ID)
		return
	}
	if _, ok := m.children[n.ID]; !ok {
		m.children[n.ID] = n.Children()
	}
	m.expanded[n.ID] = true
}

// flatten produces the visible rows in depth-first order.
func (m BrowseModel) flatten(n *inspect.Node, depth int, acc []browseRow) []browseRow {
	acc = append(acc, browseRow{node: n, depth: depth})
	if !m.expanded[n.ID] {
		return acc
	}
	for _, c := range m.children[n.ID] {
		acc = m.flatten(c, depth+1, acc)
	}
	return acc
}
