// Package dot exports inspection trees as Graphviz DOT and renders them to SVG.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/objscope/objscope/pkg/inspect"
	"github.com/objscope/objscope/pkg/observability"
)

// Options configures DOT export.
type Options struct {
	// MaxDepth bounds the exported depth; 0 uses DefaultDepth.
	MaxDepth int
}

// DefaultDepth is the exported depth when Options.MaxDepth is zero.
const DefaultDepth = 4

// ToDOT converts an inspection tree to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
//
// Subsection nodes are drawn with dashed outlines and grey fill to
// distinguish groupings from values.
func ToDOT(root *inspect.Node, opts Options) string {
	ctx := context.Background()
	start := time.Now()
	observability.Render().OnRenderStart(ctx, "dot")

	depth := opts.MaxDepth
	if depth <= 0 {
		depth = DefaultDepth
	}

	var buf bytes.Buffer
	buf.WriteString("digraph inspection {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	writeNode(&buf, root, 0, depth)
	buf.WriteString("}\n")

	out := buf.String()
	observability.Render().OnRenderComplete(ctx, "dot", len(out), time.Since(start), nil)
	return out
}

func writeNode(buf *bytes.Buffer, n *inspect.Node, depth, maxDepth int) {
	fmt.Fprintf(buf, "  %q [%s];\n", n.ID, nodeAttrs(n))

	if n.IsLeaf() || depth >= maxDepth {
		return
	}
	for _, c := range n.Children() {
		writeNode(buf, c, depth+1, maxDepth)
		fmt.Fprintf(buf, "  %q -> %q;\n", n.ID, c.ID)
	}
}

func nodeAttrs(n *inspect.Node) string {
	attrs := fmt.Sprintf("label=%q", n.Label())
	if n.Kind == inspect.KindSubsection {
		attrs += `, style="rounded,filled,dashed", fillcolor=lightgrey`
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
