package inspect

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/objscope/objscope/pkg/errors"
	"github.com/objscope/objscope/pkg/observability"
)

// Registry maps generated node ids to live nodes so a client-side expansion
// event can be routed back to the node that should render its inner fragment.
//
// Nodes are registered at construction and never removed: the hosting client
// cannot signal when a node stops being referenced, so unbounded growth is
// the documented default trade-off. Long-running servers can opt into
// least-recently-created eviction with [WithCapacity].
//
// Lookups may arrive concurrently from HTTP handlers, so access is guarded
// by an RWMutex even though a single interactive session is the common case.
type Registry struct {
	mu       sync.RWMutex
	nodes    map[string]*Node
	order    []string // registration order, used for capacity eviction
	capacity int      // 0 means unbounded
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithCapacity bounds the registry to n nodes. When full, the
// least-recently-created node is evicted and its id becomes invalid;
// a client holding a stale id will receive a not-found error.
func WithCapacity(n int) RegistryOption {
	return func(r *Registry) { r.capacity = n }
}

// NewRegistry creates an empty node registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{nodes: make(map[string]*Node)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// defaultRegistry backs the package-level convenience constructors.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry used by [New] and [NewNamed].
func Default() *Registry { return defaultRegistry }

// register assigns a fresh unique id, stores the node, and returns the id.
// Every node is inserted before it is returned to any caller.
func (r *Registry) register(n *Node) string {
	id := uuid.NewString()

	r.mu.Lock()
	if r.capacity > 0 && len(r.order) >= r.capacity {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.nodes, oldest)
		observability.Registry().OnEvict(context.Background(), oldest)
	}
	r.nodes[id] = n
	r.order = append(r.order, id)
	r.mu.Unlock()

	observability.Registry().OnRegister(context.Background(), n.Kind.String())
	return id
}

// Lookup returns the node previously registered under id.
// Unknown ids fail with errors.ErrCodeNodeNotFound.
func (r *Registry) Lookup(id string) (*Node, error) {
	r.mu.RLock()
	n, ok := r.nodes[id]
	r.mu.RUnlock()

	if !ok {
		observability.Registry().OnLookupMiss(context.Background(), id)
		return nil, errors.New(errors.ErrCodeNodeNotFound, "no node with id %s", id)
	}
	observability.Registry().OnLookupHit(context.Background(), n.Kind.String())
	return n, nil
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.nodes)
}
