// Package mock provides scriptable rest.Resource and rest.Resolver
// implementations for testing without a server.
package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/graphbound/cypher-driver/rest"
)

// Resource implements rest.Resource with scripted responses and full call
// history.
type Resource struct {
	uri string

	mu        sync.Mutex
	responses []*rest.Response
	postErr   error
	deleteErr error

	postCalls   atomic.Int32
	deleteCalls atomic.Int32
	postHistory [][]byte
}

// NewResource creates a mock resource at the given URI.
func NewResource(uri string) *Resource {
	return &Resource{uri: uri}
}

// WithResponse appends a scripted response, consumed one per Post in order.
func (r *Resource) WithResponse(resp *rest.Response) *Resource {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses = append(r.responses, resp)
	return r
}

// WithJSONResponse appends a scripted response built from a status code, an
// optional Location header and a JSON body.
func (r *Resource) WithJSONResponse(status int, location, body string) *Resource {
	return r.WithResponse(&rest.Response{
		Status:   status,
		Location: location,
		Content:  json.RawMessage(body),
	})
}

// WithPostError configures Post to fail with err.
func (r *Resource) WithPostError(err error) *Resource {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.postErr = err
	return r
}

// WithDeleteError configures Delete to fail with err.
func (r *Resource) WithDeleteError(err error) *Resource {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteErr = err
	return r
}

// URI implements rest.Resource.
func (r *Resource) URI() string {
	return r.uri
}

// Post implements rest.Resource. The body is recorded as marshaled JSON and
// the next scripted response is returned.
func (r *Resource) Post(ctx context.Context, body any) (*rest.Response, error) {
	r.postCalls.Add(1)

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.postHistory = append(r.postHistory, encoded)

	if r.postErr != nil {
		return nil, r.postErr
	}
	if len(r.responses) == 0 {
		return nil, fmt.Errorf("mock resource %s: no scripted response for POST", r.uri)
	}

	resp := r.responses[0]
	r.responses = r.responses[1:]
	return resp, nil
}

// Delete implements rest.Resource.
func (r *Resource) Delete(ctx context.Context) error {
	r.deleteCalls.Add(1)

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deleteErr
}

// PostCallCount returns the number of times Post was called.
func (r *Resource) PostCallCount() int {
	return int(r.postCalls.Load())
}

// DeleteCallCount returns the number of times Delete was called.
func (r *Resource) DeleteCallCount() int {
	return int(r.deleteCalls.Load())
}

// PostHistory returns the marshaled bodies of every Post, in call order.
func (r *Resource) PostHistory() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	history := make([][]byte, len(r.postHistory))
	copy(history, r.postHistory)
	return history
}

// LastPostBody returns the body of the most recent Post, or nil if none.
func (r *Resource) LastPostBody() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.postHistory) == 0 {
		return nil
	}
	return r.postHistory[len(r.postHistory)-1]
}

// Resolver implements rest.Resolver over a set of mock resources. Unknown
// URIs resolve to fresh empty mocks so endpoint learning can be observed.
type Resolver struct {
	mu        sync.Mutex
	resources map[string]*Resource
	requested []string
}

// NewResolver creates an empty mock resolver.
func NewResolver() *Resolver {
	return &Resolver{resources: make(map[string]*Resource)}
}

// Add registers a mock resource under its URI.
func (r *Resolver) Add(res *Resource) *Resolver {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resources[res.uri] = res
	return r
}

// Resource implements rest.Resolver.
func (r *Resolver) Resource(uri string) rest.Resource {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requested = append(r.requested, uri)
	if res, ok := r.resources[uri]; ok {
		return res
	}
	res := NewResource(uri)
	r.resources[uri] = res
	return res
}

// Get returns the mock resource registered at uri, or nil.
func (r *Resolver) Get(uri string) *Resource {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resources[uri]
}

// Requested returns every URI passed to Resource, in call order.
func (r *Resolver) Requested() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.requested))
	copy(out, r.requested)
	return out
}
