package inspect

import (
	"reflect"

	"github.com/objscope/objscope/pkg/arrayspec"
	"github.com/objscope/objscope/pkg/errors"
	"github.com/objscope/objscope/pkg/inspect/attrs"
)

// DefaultMaxDepth bounds tree construction for cyclic or pathologically deep
// object graphs. Exceeding the budget yields a truncation leaf, not a crash.
const DefaultMaxDepth = 32

// Extractor enumerates the inspectable attributes of a value. The default is
// [attrs.Get]; tests and embedders can substitute their own enumeration.
type Extractor func(v any) []attrs.Attr

// Factory builds nodes, resolving each value to its most specific variant.
type Factory struct {
	reg      *Registry
	maxDepth int
	extract  Extractor
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithMaxDepth overrides the depth budget for child enumeration.
func WithMaxDepth(n int) FactoryOption {
	return func(f *Factory) { f.maxDepth = n }
}

// WithExtractor substitutes the attribute extractor.
func WithExtractor(fn Extractor) FactoryOption {
	return func(f *Factory) {
		if fn != nil {
			f.extract = fn
		}
	}
}

// NewFactory creates a factory registering nodes in reg.
// A nil reg uses the process-wide default registry.
func NewFactory(reg *Registry, opts ...FactoryOption) *Factory {
	if reg == nil {
		reg = Default()
	}
	f := &Factory{
		reg:      reg,
		maxDepth: DefaultMaxDepth,
		extract:  func(v any) []attrs.Attr { return attrs.Get(v) },
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// defaultFactory backs the package-level constructors.
var defaultFactory = NewFactory(defaultRegistry)

// New builds a root node for v in the default registry.
func New(v any) (*Node, error) { return defaultFactory.New(v) }

// NewNamed builds a named (non-root) node for v in the default registry.
func NewNamed(v any, name string) (*Node, error) { return defaultFactory.NewNamed(v, name) }

// New builds a root node for v.
func (f *Factory) New(v any) (*Node, error) { return f.NewNamed(v, "") }

// NewNamed builds a node for v with a display name. An empty name marks the
// tree root. The node is registered before it is returned.
func (f *Factory) NewNamed(v any, name string) (*Node, error) {
	return f.newAt(v, name, 0)
}

// Registry returns the registry nodes are stored in.
func (f *Factory) Registry() *Registry { return f.reg }

func (f *Factory) newAt(v any, name string, depth int) (*Node, error) {
	kind, err := match(v)
	if err != nil {
		return nil, err
	}
	n := &Node{Kind: kind, Name: name, Value: v, depth: depth, f: f}
	n.ID = f.reg.register(n)
	return n, nil
}

// child builds a child node during tree traversal. The depth budget and the
// (unreachable) dispatch failure both degrade into renderable leaves so that
// traversal itself never fails.
func (f *Factory) child(v any, name string, depth int) *Node {
	if depth > f.maxDepth {
		n := &Node{Kind: KindTruncated, Name: name, depth: depth, f: f}
		n.ID = f.reg.register(n)
		return n
	}
	n, err := f.newAt(v, name, depth)
	if err != nil {
		n = &Node{Kind: KindException, Name: name, Value: attrs.Wrap(err), depth: depth, f: f}
		n.ID = f.reg.register(n)
	}
	return n
}

// subsection builds a synthetic grouping node with an explicit child list.
func (f *Factory) subsection(name string, children []*Node, depth int) *Node {
	n := &Node{Kind: KindSubsection, Name: name, subs: children, depth: depth, f: f}
	n.ID = f.reg.register(n)
	return n
}

// keyVal builds a node for one (key, value) entry of a collection.
func (f *Factory) keyVal(key, value any, depth int) *Node {
	n := &Node{Kind: KindKeyVal, key: key, Value: value, depth: depth, f: f}
	n.ID = f.reg.register(n)
	return n
}

// =============================================================================
// Variant Dispatch
// =============================================================================

// variant pairs a kind with its type predicate.
type variant struct {
	kind  Kind
	match func(v any) bool
}

// variants is the ordered match table. Predicates overlap (every value
// matches the final fallback), so resolution is most-specific-first: sets
// precede mappings because a Go set is a struct{}-valued map, and the
// object fallback comes last.
var variants = []variant{
	{KindBuiltin, isBuiltin},
	{KindFunc, isFunc},
	{KindSet, isSet},
	{KindMapping, isMapping},
	{KindSequence, isSequence},
	{KindClass, isClass},
	{KindArray, isArray},
	{KindException, isException},
	{KindObject, func(any) bool { return true }},
}

// match resolves a value to its node kind. The error path is unreachable
// while the table ends with the catch-all; it exists so that removing the
// fallback surfaces a TYPE_MISMATCH instead of silent misbehavior.
func match(v any) (Kind, error) {
	for _, va := range variants {
		if va.match(v) {
			return va.kind, nil
		}
	}
	return KindObject, errors.New(errors.ErrCodeTypeMismatch, "no node variant matches %T", v)
}

var emptyStruct = reflect.TypeOf(struct{}{})

func isBuiltin(v any) bool {
	if v == nil {
		return true
	}
	if _, ok := v.(ellipsisSentinel); ok {
		return true
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return true
	case reflect.Slice:
		return reflect.TypeOf(v).Elem().Kind() == reflect.Uint8
	}
	return false
}

func isFunc(v any) bool {
	return v != nil && reflect.ValueOf(v).Kind() == reflect.Func
}

func isSet(v any) bool {
	if v == nil {
		return false
	}
	t := reflect.TypeOf(v)
	return t.Kind() == reflect.Map && t.Elem() == emptyStruct
}

func isMapping(v any) bool {
	return v != nil && reflect.ValueOf(v).Kind() == reflect.Map
}

func isSequence(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

func isClass(v any) bool {
	_, ok := v.(reflect.Type)
	return ok
}

func isArray(v any) bool {
	_, ok := v.(arrayspec.Array)
	return ok
}

func isException(v any) bool {
	if _, ok := v.(attrs.ErrWrapper); ok {
		return true
	}
	_, ok := v.(*attrs.ErrWrapper)
	return ok
}
