// Package rest defines the REST resource abstraction the driver core posts
// statement batches through, plus an HTTP implementation of it.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
)

// Resource is a single addressable server endpoint.
type Resource interface {
	// URI returns the absolute URI of the resource.
	URI() string

	// Post sends a JSON body to the resource and returns the decoded
	// exchange.
	Post(ctx context.Context, body any) (*Response, error)

	// Delete issues a DELETE against the resource.
	Delete(ctx context.Context) error
}

// Resolver turns a URI into a Resource. Driver components learn new
// endpoints from server responses and resolve them through this interface.
type Resolver interface {
	Resource(uri string) Resource
}

// Response is the outcome of one POST exchange.
type Response struct {
	// Status is the HTTP status code of the exchange.
	Status int

	// Location is the endpoint the server directed subsequent calls to,
	// empty if the response carried none.
	Location string

	// Content is the raw JSON response body.
	Content json.RawMessage
}

// StatusError reports a non-success exchange whose body carried no decodable
// JSON payload.
type StatusError struct {
	Status int
	URI    string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("HTTP %d from %s: %s", e.Status, e.URI, e.Body)
	}
	return fmt.Sprintf("HTTP %d from %s", e.Status, e.URI)
}
