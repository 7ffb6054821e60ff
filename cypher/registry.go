package cypher

import "sync"

// Registry caches one Engine per transactional endpoint. Lookup-or-create is
// a single atomic operation, so concurrent first access to the same endpoint
// from multiple goroutines yields exactly one engine instance.
type Registry struct {
	mu      sync.Mutex
	engines map[string]*Engine
	opts    Options
}

// NewRegistry creates a registry whose engines share the given options. If
// opts is nil, default options are used.
func NewRegistry(opts *Options) *Registry {
	var normalized Options
	if opts == nil {
		normalized = DefaultOptions()
	} else {
		normalized = opts.normalized()
	}
	return &Registry{
		engines: make(map[string]*Engine),
		opts:    normalized,
	}
}

// Engine returns the engine for the given transactional endpoint, creating
// it on first access. Repeated lookups of the same endpoint return the same
// instance.
func (r *Registry) Engine(transactionURI string) *Engine {
	r.mu.Lock()
	defer r.mu.Unlock()

	if engine, ok := r.engines[transactionURI]; ok {
		return engine
	}
	engine := NewEngine(transactionURI, &r.opts)
	r.engines[transactionURI] = engine
	return engine
}

// defaultRegistry backs the package-level process-wide engine cache.
var defaultRegistry = NewRegistry(nil)

// ForURI returns the process-wide engine for the given transactional
// endpoint.
func ForURI(transactionURI string) *Engine {
	return defaultRegistry.Engine(transactionURI)
}
