package cypher

import (
	"github.com/graphbound/cypher-driver/graph"
	"github.com/graphbound/cypher-driver/rest"
	"go.uber.org/zap"
)

// Options configures engines and the transactions they open.
type Options struct {
	// Resolver resolves endpoint URIs into resources. If nil, an HTTP
	// resolver with default options is used.
	Resolver rest.Resolver

	// Hydrator converts raw row values into typed domain values when
	// hydration is requested. If nil, graph.Hydrate is used.
	Hydrator graph.Hydrator

	// Logger receives transaction lifecycle logging. If nil, logging is
	// disabled.
	Logger *zap.Logger
}

// DefaultOptions returns Options with default values.
func DefaultOptions() Options {
	return Options{
		Resolver: rest.NewClient(nil),
		Hydrator: graph.Hydrate,
		Logger:   zap.NewNop(),
	}
}

// normalized fills the zero fields of opts with defaults.
func (o Options) normalized() Options {
	if o.Resolver == nil {
		o.Resolver = rest.NewClient(nil)
	}
	if o.Hydrator == nil {
		o.Hydrator = graph.Hydrate
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}
