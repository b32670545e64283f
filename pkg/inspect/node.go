package inspect

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/objscope/objscope/pkg/inspect/attrs"
)

// =============================================================================
// Kind - Closed Node Variant Tags
// =============================================================================

// Kind identifies the rendering variant of a node. The set is closed; the
// factory resolves a value to exactly one kind via an ordered match table.
type Kind int

// Node variants, mutually exclusive.
const (
	KindBuiltin Kind = iota // scalars: numbers, bools, strings, bytes, nil
	KindFunc                // functions and bound methods
	KindSet                 // struct{}-valued maps
	KindMapping             // any other map
	KindSequence            // slices and arrays
	KindClass               // reflect.Type values
	KindArray               // arrayspec.Array values
	KindException           // attrs.ErrWrapper values, always leaves
	KindObject              // generic fallback, matches everything

	// Synthetic variants never produced by value dispatch.
	KindSubsection // grouping node ([[Methods]], [[mro]], ...)
	KindKeyVal     // one (key, value) entry of a collection
	KindTruncated  // depth-budget marker leaf
)

// String returns the variant name used in logs and observability events.
func (k Kind) String() string {
	switch k {
	case KindBuiltin:
		return "builtin"
	case KindFunc:
		return "function"
	case KindSet:
		return "set"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindClass:
		return "class"
	case KindArray:
		return "array"
	case KindException:
		return "exception"
	case KindObject:
		return "object"
	case KindSubsection:
		return "subsection"
	case KindKeyVal:
		return "keyval"
	case KindTruncated:
		return "truncated"
	default:
		return "unknown"
	}
}

// =============================================================================
// Node
// =============================================================================

// Node is one unit of the rendered tree: a displayable value, one collection
// entry, or a synthetic grouping. Behavior varies by Kind through the
// capability table rather than through subtypes.
//
// Every node is registered under its ID before being returned to any caller,
// so a client can always resolve the id back to the node.
type Node struct {
	ID    string
	Kind  Kind
	Name  string // display name; empty marks the tree root
	Value any    // backing value; nil for subsections

	key   any     // KindKeyVal: the entry key
	subs  []*Node // KindSubsection: explicit child list
	depth int
	f     *Factory
}

// IsRoot reports whether the node is top-level (constructed without a name).
func (n *Node) IsRoot() bool {
	return n.Name == "" && n.Kind != KindSubsection && n.Kind != KindKeyVal
}

// IsLeaf reports whether the node cannot be expanded.
func (n *Node) IsLeaf() bool { return n.cap().isLeaf(n) }

// Children returns the expandable child nodes, nil for leaves.
// Children are created on demand and registered as a side effect.
func (n *Node) Children() []*Node {
	if n.IsLeaf() {
		return nil
	}
	return n.cap().children(n)
}

// Key returns the entry key of a KindKeyVal node, nil otherwise.
func (n *Node) Key() any { return n.key }

// HeaderHTML returns the always-visible one-line fragment for the node.
func (n *Node) HeaderHTML() string { return n.cap().header(n) }

// InnerHTML returns the fragment shown when the node is expanded: the child
// headers wrapped in a collapsible container. Leaves return the empty string.
func (n *Node) InnerHTML() string {
	if n.IsLeaf() {
		return ""
	}
	kids := n.Children()
	items := make([]string, len(kids))
	for i, c := range kids {
		items[i] = c.HeaderHTML()
	}
	return ul(items)
}

// Label returns a plain-text one-line description for terminal sinks.
func (n *Node) Label() string {
	switch n.Kind {
	case KindSubsection:
		return "[[" + n.Name + "]]"
	case KindKeyVal:
		return plainRepr(n.key) + ": " + plainRepr(n.Value)
	case KindTruncated:
		return "... (depth limit)"
	default:
		if n.IsRoot() {
			return plainRepr(n.Value)
		}
		return n.Name + ": " + plainRepr(n.Value)
	}
}

// =============================================================================
// Capability Table
// =============================================================================

// capability holds the per-variant behavior: header rendering, child
// enumeration, and leaf-ness. Variants without an entry use the generic
// object behavior.
type capability struct {
	header   func(*Node) string
	children func(*Node) []*Node
	isLeaf   func(*Node) bool
}

// The tables are filled in init: their entries reference header functions
// that read the tables back through cap(), which a package-level composite
// literal initializer would turn into an initialization cycle.
var (
	defaultCapability capability
	capabilities      map[Kind]capability
)

func init() {
	defaultCapability = capability{
		header:   objectHeader,
		children: objectChildren,
		isLeaf:   func(*Node) bool { return false },
	}

	capabilities = map[Kind]capability{
		KindBuiltin: {
			header:   objectHeader,
			children: objectChildren,
			// Builtins can only be expanded at the tree root.
			isLeaf: func(n *Node) bool { return !n.IsRoot() },
		},
		KindSet:      {header: objectHeader, children: setChildren, isLeaf: never},
		KindMapping:  {header: objectHeader, children: mappingChildren, isLeaf: never},
		KindSequence: {header: objectHeader, children: sequenceChildren, isLeaf: never},
		KindClass:    {header: objectHeader, children: classChildren, isLeaf: never},
		KindException: {
			header:   objectHeader,
			children: func(*Node) []*Node { return nil },
			isLeaf:   func(*Node) bool { return true },
		},
		KindSubsection: {header: subsectionHeader, children: subsectionChildren, isLeaf: never},
		KindKeyVal:     {header: keyValHeader, children: keyValChildren, isLeaf: never},
		KindTruncated: {
			header:   truncatedHeader,
			children: func(*Node) []*Node { return nil },
			isLeaf:   func(*Node) bool { return true },
		},
	}
}

func never(*Node) bool { return false }

func (n *Node) cap() capability {
	if c, ok := capabilities[n.Kind]; ok {
		return c
	}
	return defaultCapability
}

// =============================================================================
// Header Rendering
// =============================================================================

// objectHeader renders "<name>: <typed repr>"; the name prefix is omitted at
// the tree root.
func objectHeader(n *Node) string {
	prefix := ""
	if !n.IsRoot() {
		prefix = escape(n.Name) + ": "
	}
	return li(n.ID, !n.IsLeaf(), span(classKeyMain, prefix+typedRepr(n.Value)))
}

func subsectionHeader(n *Node) string {
	return li(n.ID, true, span(classPreview, "[["+escape(n.Name)+"]]"))
}

func keyValHeader(n *Node) string {
	return li(n.ID, true, typedRepr(n.key)+": "+typedRepr(n.Value))
}

func truncatedHeader(n *Node) string {
	return li(n.ID, false, span(classPreview, "... (depth limit)"))
}

// =============================================================================
// Child Enumeration
// =============================================================================

// objectChildren enumerates attributes via the factory's extractor and
// partitions them, by name, into four buckets: inline values, [[Methods]],
// [[Private]], and [[Special attributes]]. Empty buckets produce no
// subsection.
func objectChildren(n *Node) []*Node {
	return bucketize(n, n.f.extract(n.Value))
}

func bucketize(n *Node, items []attrs.Attr) []*Node {
	var vals, fns, private, special []*Node

	for _, a := range items {
		c := n.f.child(a.Value, a.Name, n.depth+1)
		switch {
		case strings.HasPrefix(a.Name, "__") && strings.HasSuffix(a.Name, "__"):
			special = append(special, c)
		case strings.HasPrefix(a.Name, "_"):
			private = append(private, c)
		case c.Kind == KindFunc:
			fns = append(fns, c)
		default:
			vals = append(vals, c)
		}
	}

	out := vals
	if len(fns) > 0 {
		out = append(out, n.f.subsection("Methods", fns, n.depth+1))
	}
	if len(private) > 0 {
		out = append(out, n.f.subsection("Private", private, n.depth+1))
	}
	if len(special) > 0 {
		out = append(out, n.f.subsection("Special attributes", special, n.depth+1))
	}
	return out
}

// mappingChildren yields one key/value node per entry, keys sorted by their
// formatted form since Go map iteration order is randomized, followed by the
// generic object children.
func mappingChildren(n *Node) []*Node {
	rv := reflect.ValueOf(n.Value)
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})

	out := make([]*Node, 0, len(keys))
	for _, k := range keys {
		out = append(out, n.f.keyVal(k.Interface(), rv.MapIndex(k).Interface(), n.depth+1))
	}
	return append(out, objectChildren(n)...)
}

// sequenceChildren yields one key/value node per element keyed by its index.
func sequenceChildren(n *Node) []*Node {
	rv := reflect.ValueOf(n.Value)
	out := make([]*Node, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out = append(out, n.f.keyVal(i, rv.Index(i).Interface(), n.depth+1))
	}
	return append(out, objectChildren(n)...)
}

// setChildren yields one key/value node per element, keyed by an identity
// token since set elements carry no usable key of their own.
func setChildren(n *Node) []*Node {
	rv := reflect.ValueOf(n.Value)
	elems := rv.MapKeys()

	type entry struct {
		token string
		value any
	}
	entries := make([]entry, 0, len(elems))
	for _, e := range elems {
		v := e.Interface()
		entries = append(entries, entry{token: identityToken(v), value: v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].token < entries[j].token })

	out := make([]*Node, 0, len(entries))
	for _, e := range entries {
		out = append(out, n.f.keyVal(e.token, e.value, n.depth+1))
	}
	return append(out, objectChildren(n)...)
}

// classChildren describes a reflect.Type: its fields and methods bucketed
// like object attributes, plus an [[mro]] subsection listing the embedded
// type ancestry (the closest Go analogue to method-resolution order).
func classChildren(n *Node) []*Node {
	t := n.Value.(reflect.Type)

	var items []attrs.Attr
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := f.Name
			if !f.IsExported() {
				name = "_" + f.Name
			}
			items = append(items, attrs.Attr{Name: name, Value: f.Type})
		}
	}
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		var v any = m.Type.String()
		if m.Func.IsValid() {
			v = m.Func.Interface()
		}
		items = append(items, attrs.Attr{Name: m.Name, Value: v})
	}
	items = append(items,
		attrs.Attr{Name: "__type__", Value: t.String()},
		attrs.Attr{Name: "__kind__", Value: t.Kind().String()},
	)
	if pkg := t.PkgPath(); pkg != "" {
		items = append(items, attrs.Attr{Name: "__pkg__", Value: pkg})
	}

	out := bucketize(n, items)

	var ancestors []*Node
	for _, at := range ancestry(t) {
		ancestors = append(ancestors, n.f.child(at, "", n.depth+1))
	}
	return append(out, n.f.subsection("mro", ancestors, n.depth+1))
}

func subsectionChildren(n *Node) []*Node { return n.subs }

// keyValChildren delegates to the value's own node.
func keyValChildren(n *Node) []*Node {
	return n.f.child(n.Value, "", n.depth).Children()
}

// =============================================================================
// Helpers
// =============================================================================

// identityToken derives a short stable token for values that have no natural
// key, e.g. set elements.
func identityToken(v any) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%#v", v)))
	return hex.EncodeToString(sum[:])[:8]
}

// ancestry returns t followed by its embedded (anonymous) field types,
// breadth-first, each type listed once.
func ancestry(t reflect.Type) []reflect.Type {
	out := []reflect.Type{t}
	seen := map[reflect.Type]bool{t: true}
	queue := []reflect.Type{t}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		base := cur
		for base.Kind() == reflect.Pointer {
			base = base.Elem()
		}
		if base.Kind() != reflect.Struct {
			continue
		}
		for i := 0; i < base.NumField(); i++ {
			f := base.Field(i)
			if !f.Anonymous || seen[f.Type] {
				continue
			}
			seen[f.Type] = true
			out = append(out, f.Type)
			queue = append(queue, f.Type)
		}
	}
	return out
}
