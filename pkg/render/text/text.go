// Package text renders an inspection tree as styled terminal output.
package text

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/objscope/objscope/pkg/inspect"
	"github.com/objscope/objscope/pkg/observability"
)

// Color palette, matching the CLI status output.
var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorWhite = lipgloss.Color("255")
	colorDim   = lipgloss.Color("240")
)

var (
	styleValue      = lipgloss.NewStyle().Foreground(colorWhite)
	styleName       = lipgloss.NewStyle().Foreground(colorCyan)
	styleSubsection = lipgloss.NewStyle().Foreground(colorDim).Bold(true)
	styleError      = lipgloss.NewStyle().Foreground(colorRed)
	styleMarker     = lipgloss.NewStyle().Foreground(colorGreen)
	styleDim        = lipgloss.NewStyle().Foreground(colorDim)
)

// Options configures text rendering.
type Options struct {
	// MaxDepth bounds the rendered depth; 0 uses DefaultDepth.
	MaxDepth int

	// Plain disables lipgloss styling for pipes and tests.
	Plain bool
}

// DefaultDepth is the rendered depth when Options.MaxDepth is zero.
// Terminal output is eager, so the budget is much smaller than the
// factory's construction budget.
const DefaultDepth = 4

// Render walks the tree from root and returns an indented listing.
func Render(root *inspect.Node, opts Options) string {
	ctx := context.Background()
	start := time.Now()
	observability.Render().OnRenderStart(ctx, "text")

	depth := opts.MaxDepth
	if depth <= 0 {
		depth = DefaultDepth
	}

	var b strings.Builder
	renderNode(&b, root, 0, depth, opts.Plain)
	out := b.String()

	observability.Render().OnRenderComplete(ctx, "text", len(out), time.Since(start), nil)
	return out
}

func renderNode(b *strings.Builder, n *inspect.Node, depth, maxDepth int, plain bool) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(line(n, plain))
	b.WriteString("\n")

	if n.IsLeaf() || depth >= maxDepth {
		return
	}
	for _, c := range n.Children() {
		renderNode(b, c, depth+1, maxDepth, plain)
	}
}

func line(n *inspect.Node, plain bool) string {
	marker := "- "
	if !n.IsLeaf() {
		marker = "> "
	}
	label := n.Label()

	if plain {
		return marker + label
	}

	switch n.Kind {
	case inspect.KindSubsection:
		return styleDim.Render(marker) + styleSubsection.Render(label)
	case inspect.KindException, inspect.KindTruncated:
		return styleDim.Render(marker) + styleError.Render(label)
	case inspect.KindKeyVal:
		return styleMarker.Render(marker) + styleValue.Render(label)
	default:
		if name := n.Name; name != "" {
			rest := strings.TrimPrefix(label, name+": ")
			return styleMarker.Render(marker) + styleName.Render(name+": ") + styleValue.Render(rest)
		}
		return styleMarker.Render(marker) + styleValue.Render(label)
	}
}
