package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ClientOptions configures the HTTP binding.
type ClientOptions struct {
	// HTTPClient is the underlying HTTP client. If nil, a client with
	// Timeout applied is created.
	HTTPClient *http.Client

	// Timeout bounds each exchange when no HTTPClient is supplied.
	// Default: 30s.
	Timeout time.Duration

	// Username and Password enable basic authentication when both are
	// non-empty.
	Username string
	Password string

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Logger receives per-exchange debug logging. If nil, logging is
	// disabled.
	Logger *zap.Logger
}

// DefaultClientOptions returns ClientOptions with default values.
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		Timeout:   30 * time.Second,
		UserAgent: "cypher-driver/" + Version,
	}
}

// Version is the driver version reported in the User-Agent header.
const Version = "1.0.0"

// Client resolves URIs into HTTP-backed resources. It is safe for concurrent
// use; the underlying http.Client pools connections.
type Client struct {
	http *http.Client
	opts ClientOptions
	log  *zap.Logger
}

// NewClient creates a new HTTP resource resolver. If opts is nil, default
// options are used.
func NewClient(opts *ClientOptions) *Client {
	if opts == nil {
		defaults := DefaultClientOptions()
		opts = &defaults
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "cypher-driver/" + Version
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{http: hc, opts: *opts, log: log}
}

// Resource returns the resource at the given absolute URI.
func (c *Client) Resource(uri string) Resource {
	return &httpResource{client: c, uri: uri}
}

type httpResource struct {
	client *Client
	uri    string
}

func (r *httpResource) URI() string {
	return r.uri
}

// Post sends body as JSON and returns the decoded exchange. Responses whose
// body parses as JSON are returned regardless of status code, so protocol
// errors reported inside the payload stay visible to the caller; anything
// else with a failure status becomes a StatusError.
func (r *httpResource) Post(ctx context.Context, body any) (*Response, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.uri, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	r.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := r.client.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	r.client.log.Debug("post",
		zap.String("uri", r.uri),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(content)),
		zap.Duration("elapsed", time.Since(start)))

	if !json.Valid(content) {
		if resp.StatusCode >= http.StatusBadRequest {
			return nil, &StatusError{Status: resp.StatusCode, URI: r.uri, Body: snippet(content)}
		}
		content = nil
	}

	return &Response{
		Status:   resp.StatusCode,
		Location: resp.Header.Get("Location"),
		Content:  content,
	}, nil
}

// Delete issues a DELETE against the resource. A failure status is reported
// as a StatusError.
func (r *httpResource) Delete(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, r.uri, nil)
	if err != nil {
		return err
	}
	r.setHeaders(req)

	resp, err := r.client.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	content, _ := io.ReadAll(resp.Body)

	r.client.log.Debug("delete",
		zap.String("uri", r.uri),
		zap.Int("status", resp.StatusCode))

	if resp.StatusCode >= http.StatusBadRequest {
		return &StatusError{Status: resp.StatusCode, URI: r.uri, Body: snippet(content)}
	}
	return nil
}

func (r *httpResource) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", r.client.opts.UserAgent)
	if r.client.opts.Username != "" && r.client.opts.Password != "" {
		req.SetBasicAuth(r.client.opts.Username, r.client.opts.Password)
	}
}

// snippet trims a response body for error reporting.
func snippet(body []byte) string {
	const max = 200
	if len(body) > max {
		body = body[:max]
	}
	return string(bytes.TrimSpace(body))
}
