package cypher

import (
	"context"

	"go.uber.org/zap"
)

// Engine is the convenience facade for a single transactional endpoint. Each
// one-shot operation opens a fresh transaction, executes exactly one
// statement and commits. Engines are cheap and safe to share; independent
// transactions opened from one engine do not interfere.
type Engine struct {
	uri  string
	opts Options
	log  *zap.Logger
}

// NewEngine creates an engine for the given transactional endpoint. If opts
// is nil, default options are used. Most callers should obtain engines
// through a Registry instead, which guarantees one engine per endpoint.
func NewEngine(transactionURI string, opts *Options) *Engine {
	var normalized Options
	if opts == nil {
		normalized = DefaultOptions()
	} else {
		normalized = opts.normalized()
	}
	return &Engine{uri: transactionURI, opts: normalized, log: normalized.Logger}
}

// URI returns the transactional endpoint the engine targets.
func (e *Engine) URI() string {
	return e.uri
}

// Begin opens a new transaction for multi-statement use.
func (e *Engine) Begin() *Transaction {
	return NewTransaction(e.uri, &e.opts)
}

// Run executes a single statement and commits, ignoring any return value.
func (e *Engine) Run(ctx context.Context, statement string, parameters map[string]any) error {
	tx := e.Begin()
	if _, err := tx.Execute(statement, parameters); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Execute executes a single statement in its own transaction and returns the
// populated result.
func (e *Engine) Execute(ctx context.Context, statement string, parameters map[string]any) (*Result, error) {
	tx := e.Begin()
	result, err := tx.Execute(statement, parameters)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

// Evaluate executes a single statement and returns the value from the first
// column of the first record, or nil when the result is empty.
func (e *Engine) Evaluate(ctx context.Context, statement string, parameters map[string]any) (any, error) {
	result, err := e.Execute(ctx, statement, parameters)
	if err != nil {
		return nil, err
	}
	return result.Value()
}

// Stream executes a single statement and returns a record stream that
// decodes the response incrementally rather than buffering hydrated records
// up front.
func (e *Engine) Stream(ctx context.Context, statement string, parameters map[string]any) (*RecordStream, error) {
	tx := e.Begin()
	result, err := tx.Execute(statement, parameters)
	if err != nil {
		return nil, err
	}
	if err := tx.post(ctx, true, false); err != nil {
		return nil, err
	}
	return NewRecordStream(result, e.opts.Hydrator)
}
