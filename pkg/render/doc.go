// Package render provides the output sinks for inspection trees.
//
// # Overview
//
// The inspector core produces HTML fragments on demand; the subpackages here
// render a whole tree eagerly for non-browser consumers:
//
//   - [text]: styled terminal output
//   - [dot]: Graphviz DOT export and SVG rendering
//
// Both sinks walk a tree from its root node to a bounded depth, so they are
// safe to point at cyclic object graphs.
//
// [text]: github.com/objscope/objscope/pkg/render/text
// [dot]: github.com/objscope/objscope/pkg/render/dot
package render
