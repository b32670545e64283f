// Package inspect renders arbitrary Go values as expandable HTML trees.
//
// A tree is built lazily: constructing a node registers it under a unique id
// and renders only its one-line header. When the client expands a node, the
// id is resolved through the [Registry] and the node renders its inner
// fragment, creating child nodes on demand.
//
// # Node Variants
//
// The [Factory] resolves each value to one variant via an ordered match
// table: builtin scalar, function, set, mapping, sequence, class
// (reflect.Type), array ([arrayspec.Array]), exception wrapper, and the
// generic object fallback. Generic objects enumerate their attributes
// through the configurable extractor (default [attrs.Get]) and bucket them
// into inline values, [[Methods]], [[Private]], and [[Special attributes]]
// subsections.
//
// # Usage
//
//	reg := inspect.NewRegistry()
//	factory := inspect.NewFactory(reg)
//
//	root, _ := factory.New(myValue)
//	page := root.HeaderHTML() // always-visible line
//
//	// Later, when the client asks to expand a node:
//	n, err := reg.Lookup(id)
//	if err != nil {
//	    // unknown id
//	}
//	fragment := n.InnerHTML()
//
// Nodes persist in their registry for the lifetime of the process unless the
// registry was bounded with [WithCapacity].
package inspect
