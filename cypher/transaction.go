package cypher

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/graphbound/cypher-driver/graph"
	"github.com/graphbound/cypher-driver/rest"
)

// Transaction is a transient server-side conversation that executes one or
// more statement batches. It is opened against a begin endpoint, advanced
// any number of times, then committed or rolled back exactly once. A
// transaction is a single linear conversation: once finished it cannot be
// reused, and a failed commit or rollback still finishes it.
//
// A Transaction is not safe for concurrent use; callers interleaving queue
// mutation and posting from multiple goroutines must synchronize externally.
type Transaction struct {
	id       string
	log      *zap.Logger
	resolver rest.Resolver
	hydrator graph.Hydrator

	begin       rest.Resource
	beginCommit rest.Resource
	execute     rest.Resource
	commit      rest.Resource

	mu         sync.Mutex
	statements []*Statement
	results    []*Result
	finished   bool
	expires    string
}

// NewTransaction opens a transaction against the given begin endpoint. If
// opts is nil, default options are used.
func NewTransaction(uri string, opts *Options) *Transaction {
	var normalized Options
	if opts == nil {
		normalized = DefaultOptions()
	} else {
		normalized = opts.normalized()
	}

	t := &Transaction{
		id:          uuid.NewString(),
		log:         normalized.Logger,
		resolver:    normalized.Resolver,
		hydrator:    normalized.Hydrator,
		begin:       normalized.Resolver.Resource(uri),
		beginCommit: normalized.Resolver.Resource(uri + "/commit"),
	}
	t.log.Debug("begin", zap.String("tx", t.id), zap.String("uri", uri))
	return t
}

// ID returns the client-side correlation id of the transaction.
func (t *Transaction) ID() string {
	return t.id
}

// ServerID returns the server-assigned transaction id, parsed from the
// execute endpoint. It is unknown until the first post has completed.
func (t *Transaction) ServerID() (int64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.execute == nil {
		return 0, false
	}
	uri := t.execute.URI()
	id, err := strconv.ParseInt(uri[strings.LastIndexByte(uri, '/')+1:], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Finished reports whether the transaction has been committed or rolled
// back.
func (t *Transaction) Finished() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.finished
}

// Expires returns the server-reported expiry timestamp of the transaction,
// empty until a response has carried one.
func (t *Transaction) Expires() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expires
}

// Execute queues a statement for execution and returns its placeholder
// Result immediately. The Result is populated when the transaction next
// posts.
func (t *Transaction) Execute(statement string, parameters map[string]any) (*Result, error) {
	return t.ExecuteStatement(NewStatement(statement, nil), parameters)
}

// ExecuteStatement queues a statement that carries its own parameter set,
// merged with the call-site parameters. Call-site values take precedence on
// key collision. Parameter values exposing a graph identity are collapsed to
// that identity, and presubstitution markers are resolved before queuing.
func (t *Transaction) ExecuteStatement(stmt *Statement, parameters map[string]any) (*Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finished {
		return nil, &FinishedError{TransactionID: t.id, Operation: "execute"}
	}

	merged := map[string]any{}
	addParameters(merged, stmt.Parameters)
	addParameters(merged, parameters)

	text, bound, err := Presubstitute(stmt.Statement, merged)
	if err != nil {
		return nil, err
	}

	t.statements = append(t.statements, &Statement{
		Statement:          text,
		Parameters:         bound,
		ResultDataContents: []string{rawDataContent},
	})
	result := newResult()
	t.results = append(t.results, result)

	t.log.Debug("append",
		zap.String("tx", t.id),
		zap.Uint64("statement", Fingerprint(text)),
		zap.Int("parameters", len(bound)))
	return result, nil
}

// addParameters merges src into dst, collapsing any value that carries a
// server-side graph identity to that identity. The check is a capability
// check, so future entity kinds compose without changes here.
func addParameters(dst, src map[string]any) {
	for k, v := range src {
		if entity, ok := v.(graph.Identified); ok {
			v = entity.GraphID()
		}
		dst[k] = v
	}
}

// Create queues a node-creation statement for a labeled node with the given
// properties.
func (t *Transaction) Create(labels []string, properties map[string]any) (*Result, error) {
	if properties == nil {
		properties = map[string]any{}
	}
	return t.Execute("CREATE (a:«l» $p) RETURN a", map[string]any{
		"l": labels,
		"p": properties,
	})
}

// Relate queues a statement that ensures a typed relationship between two
// node references. The start reference resolves to the last node of a
// node-producing source and the end reference to the first node of one.
func (t *Transaction) Relate(start any, relationshipType string, end any, properties map[string]any) (*Result, error) {
	startNode, err := resolveNode(start, "start", pickLast)
	if err != nil {
		return nil, err
	}
	endNode, err := resolveNode(end, "end", pickFirst)
	if err != nil {
		return nil, err
	}
	if properties == nil {
		properties = map[string]any{}
	}
	return t.Execute(
		"MATCH (a) WHERE id(a) = $x MATCH (b) WHERE id(b) = $y "+
			"CREATE UNIQUE (a)-[r:«t» $p]->(b) RETURN r",
		map[string]any{
			"x": startNode.ID,
			"y": endNode.ID,
			"t": relationshipType,
			"p": properties,
		})
}

func pickFirst(nodes []*graph.Node) *graph.Node { return nodes[0] }
func pickLast(nodes []*graph.Node) *graph.Node  { return nodes[len(nodes)-1] }

// resolveNode resolves a relate endpoint reference to a concrete node.
func resolveNode(ref any, endpoint string, pick func([]*graph.Node) *graph.Node) (*graph.Node, error) {
	source, ok := ref.(graph.NodeSource)
	if !ok {
		return nil, &ReferenceResolutionError{Endpoint: endpoint, Value: ref}
	}
	nodes := source.Nodes()
	if len(nodes) == 0 {
		return nil, &ReferenceResolutionError{Endpoint: endpoint, Value: ref}
	}
	return pick(nodes), nil
}

// Process sends all pending statements to the server for execution, leaving
// the transaction open for further statements. Together with Execute it
// batches any number of statements into a single HTTP request.
func (t *Transaction) Process(ctx context.Context) error {
	return t.post(ctx, false, true)
}

// Commit sends all pending statements to the server for execution and
// commits the transaction.
func (t *Transaction) Commit(ctx context.Context) error {
	return t.post(ctx, true, true)
}

// Rollback discards the pending statement queue and rolls back the
// transaction, issuing a delete against the execute endpoint when one has
// been learned. The transaction is finished afterwards even when the delete
// fails.
func (t *Transaction) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finished {
		return &FinishedError{TransactionID: t.id, Operation: "rollback"}
	}
	t.log.Debug("rollback", zap.String("tx", t.id))

	var err error
	if t.execute != nil {
		err = t.execute.Delete(ctx)
	}
	t.finished = true
	t.statements = nil
	return err
}

// post sends the current statement queue as one ordered batch. Committing
// marks the transaction finished before the network call resolves, so even a
// failed commit ends the conversation. Responses populate the pending
// results strictly in submission order.
func (t *Transaction) post(ctx context.Context, commit, hydrate bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finished {
		return &FinishedError{TransactionID: t.id, Operation: "post"}
	}

	var resource rest.Resource
	if commit {
		t.log.Debug("commit", zap.String("tx", t.id), zap.Int("statements", len(t.statements)))
		resource = t.commit
		if resource == nil {
			resource = t.beginCommit
		}
		t.finished = true
	} else {
		t.log.Debug("process", zap.String("tx", t.id), zap.Int("statements", len(t.statements)))
		resource = t.execute
		if resource == nil {
			resource = t.begin
		}
	}

	resp, err := resource.Post(ctx, statementsPayload{Statements: t.statements})
	if err != nil {
		return err
	}

	if resp.Location != "" {
		t.execute = t.resolver.Resource(resp.Location)
	}

	var decoded txResponse
	if len(resp.Content) > 0 {
		if err := json.Unmarshal(resp.Content, &decoded); err != nil {
			return fmt.Errorf("malformed transaction response: %w", err)
		}
	}
	t.statements = nil

	if decoded.Commit != "" {
		t.commit = t.resolver.Resource(decoded.Commit)
	}
	if decoded.Transaction != nil {
		t.expires = decoded.Transaction.Expires
	}
	if len(decoded.Errors) > 0 {
		return hydrateServerError(decoded.Errors[0])
	}

	for _, block := range decoded.Results {
		if len(t.results) == 0 {
			return fmt.Errorf("server returned more result blocks than pending statements")
		}
		result := t.results[0]
		t.results = t.results[1:]

		if hydrate {
			producer := NewRecordProducer(block.Columns)
			records := make([]Record, 0, len(block.Data))
			for _, row := range block.Data {
				values, err := decodeRow(row.Rest)
				if err != nil {
					return err
				}
				for i := range values {
					values[i] = t.hydrator(values[i])
				}
				records = append(records, producer.Produce(values))
			}
			result.process(block.Columns, records)
		} else {
			rows := make([][]json.RawMessage, len(block.Data))
			for i, row := range block.Data {
				rows[i] = row.Rest
			}
			result.processRaw(block.Columns, rows)
		}
	}
	return nil
}
