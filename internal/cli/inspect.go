package cli

import (
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/objscope/objscope/pkg/cache"
	"github.com/objscope/objscope/pkg/errors"
	"github.com/objscope/objscope/pkg/inspect"
	"github.com/objscope/objscope/pkg/render/dot"
	"github.com/objscope/objscope/pkg/render/text"
)

// Output formats for the inspect command.
const (
	formatHTML = "html" // self-contained pre-expanded page
	formatText = "text" // styled terminal listing
	formatDOT  = "dot"  // Graphviz DOT source
	formatSVG  = "svg"  // DOT rendered through Graphviz
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	output  string // output file path; empty means stdout
	format  string // output format: html, text, dot, svg
	depth   int    // expansion depth for eager sinks
	noCache bool   // bypass the SVG artifact cache
}

// newInspectCmd creates the inspect command for rendering a JSON value.
func newInspectCmd() *cobra.Command {
	opts := inspectOpts{
		format: formatText,
		depth:  text.DefaultDepth,
	}

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Render a JSON value as an inspection tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return runInspect(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: text (default), html, dot, svg")
	cmd.Flags().IntVarP(&opts.depth, "depth", "d", opts.depth, "expansion depth")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the SVG artifact cache")

	return cmd
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{formatHTML: true, formatText: true, formatDOT: true, formatSVG: true}

// validateFormat checks that the requested format is supported.
func validateFormat(f string) error {
	if !validFormats[f] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'text', 'html', 'dot', or 'svg')", f)
	}
	return nil
}

// runInspect loads the value from input, builds its tree, and renders it to
// the requested format.
func runInspect(ctx context.Context, input string, opts *inspectOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Inspecting %s", input)

	v, err := loadValue(input)
	if err != nil {
		return err
	}

	reg := inspect.NewRegistry()
	factory := inspect.NewFactory(reg)

	p := newProgress(logger)
	root, err := factory.New(v)
	if err != nil {
		return err
	}

	data, err := renderValue(ctx, root, opts)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Rendered %s with %d nodes", opts.format, reg.Len()))

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}
	if opts.output != "" {
		printSuccess("Wrote %s", opts.format)
		printFile(opts.output)
	}
	return nil
}

// renderValue dispatches to the sink for the requested format.
func renderValue(ctx context.Context, root *inspect.Node, opts *inspectOpts) ([]byte, error) {
	switch opts.format {
	case formatText:
		return []byte(text.Render(root, text.Options{MaxDepth: opts.depth})), nil
	case formatHTML:
		return []byte(staticPage(root, opts.depth)), nil
	case formatDOT:
		return []byte(dot.ToDOT(root, dot.Options{MaxDepth: opts.depth})), nil
	case formatSVG:
		return renderSVG(ctx, dot.ToDOT(root, dot.Options{MaxDepth: opts.depth}), opts.noCache)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", opts.format)
	}
}

// renderSVG renders DOT to SVG through Graphviz, caching the artifact under
// the content hash of the DOT source. The WebAssembly Graphviz build is slow
// for large trees, and the output depends only on its input, so cached
// entries never expire.
func renderSVG(ctx context.Context, dotSrc string, noCache bool) ([]byte, error) {
	logger := loggerFromContext(ctx)

	var store cache.Cache = cache.NewNullCache()
	if !noCache {
		fc, err := cache.NewFileCache("")
		if err != nil {
			logger.Debugf("Artifact cache unavailable: %v", err)
		} else {
			store = fc
		}
	}
	defer store.Close()

	key := cache.Hash([]byte(dotSrc))
	if data, ok, err := store.Get(ctx, key); err == nil && ok {
		logger.Debug("SVG cache hit", "key", key[:8])
		return data, nil
	}

	logger.Debug("Rendering SVG via Graphviz")
	data, err := dot.RenderSVG(dotSrc)
	if err != nil {
		return nil, err
	}
	if err := store.Set(ctx, key, data, 0); err != nil {
		logger.Debugf("Caching SVG failed: %v", err)
	}
	return data, nil
}

// staticShell wraps a pre-expanded fragment in a standalone page. No script
// is needed since every node is already expanded.
const staticShell = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>objscope %s</title>
<style>
body { font-family: monospace; margin: 1em 2em; }
ul.collapsible { list-style: none; padding-left: 1.2em; }
.caret::before { content: "\25BE"; display: inline-block; width: 1em; }
.caret-invisible::before { visibility: hidden; }
.key-main { color: #268bd2; }
.null { color: #93a1a1; }
.number { color: #2aa198; }
.boolean { color: #b58900; }
.string { color: #859900; }
.error { color: #dc322f; }
.preview { color: #6c71c4; }
.content-version-long { display: none; }
</style>
</head>
<body>
%s
</body>
</html>
`

func staticPage(root *inspect.Node, depth int) string {
	title := strings.TrimSpace(root.Label())
	if len(title) > 40 {
		title = title[:40]
	}
	return fmt.Sprintf(staticShell, html.EscapeString(title), inspect.StaticHTML(root, depth))
}

// openOutput opens path for writing, or stdout when path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

// nopCloser wraps stdout so callers can Close it unconditionally.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
