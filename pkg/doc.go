// Package pkg provides the core libraries for objscope value inspection.
//
// # Overview
//
// Objscope turns arbitrary Go values into expandable inspection trees. The
// pkg directory is organized into five main areas:
//
//  1. [inspect] - Domain logic (node variants, factory dispatch, registry, HTML fragments)
//  2. [arrayspec] - Array shape/dtype descriptors and typing aliases
//  3. [render] - Eager sinks (terminal text, Graphviz DOT/SVG)
//  4. [server] - HTTP fragment server with lazy expansion
//  5. [cache] - Content-addressed caching of rendered artifacts
//
// Supporting packages: [errors] for structured error codes, [observability]
// for optional instrumentation hooks, [buildinfo] for ldflags-injected
// version metadata.
//
// # Architecture
//
// The typical data flow through objscope:
//
//	Go value
//	     ↓
//	[inspect] factory (ordered variant dispatch)
//	     ↓
//	[inspect] node tree + registry (id → node)
//	     ↓
//	header/inner HTML fragments, or [render] sinks
//	     ↓
//	HTML page / terminal listing / DOT / SVG
//
// # Quick Start
//
//	reg := inspect.NewRegistry()
//	factory := inspect.NewFactory(reg)
//	root, err := factory.New(myValue)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(root.HeaderHTML())
package pkg
