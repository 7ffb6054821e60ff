package cypher

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphbound/cypher-driver/graph"
	"github.com/graphbound/cypher-driver/rest/mock"
)

func TestRegistryReturnsSameEngine(t *testing.T) {
	registry := NewRegistry(nil)

	e1 := registry.Engine(testBeginURI)
	e2 := registry.Engine(testBeginURI)
	other := registry.Engine("http://elsewhere:7474/db/data/transaction")

	require.Same(t, e1, e2)
	require.NotSame(t, e1, other)
	require.Equal(t, testBeginURI, e1.URI())
}

func TestRegistryConcurrentFirstAccess(t *testing.T) {
	registry := NewRegistry(nil)

	const workers = 16
	engines := make([]*Engine, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			engines[i] = registry.Engine(testBeginURI)
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		require.Same(t, engines[0], engines[i])
	}
}

func TestForURI(t *testing.T) {
	require.Same(t, ForURI(testBeginURI), ForURI(testBeginURI))
}

func newTestEngine(t *testing.T, resolver *mock.Resolver) *Engine {
	t.Helper()
	return NewEngine(testBeginURI, &Options{Resolver: resolver})
}

func TestEngineEvaluate(t *testing.T) {
	resolver := mock.NewResolver().Add(
		mock.NewResource(testBeginCommitURI).WithJSONResponse(
			http.StatusOK, "",
			`{"results": [{"columns": ["x"], "data": [{"rest": [5]}]}], "errors": []}`,
		),
	)

	value, err := newTestEngine(t, resolver).Evaluate(
		context.Background(), "RETURN $x", map[string]any{"x": 5})
	require.NoError(t, err)
	require.Equal(t, float64(5), value)
}

func TestEngineEvaluateEmptyResult(t *testing.T) {
	resolver := mock.NewResolver().Add(
		mock.NewResource(testBeginCommitURI).WithJSONResponse(
			http.StatusOK, "",
			`{"results": [{"columns": ["n"], "data": []}], "errors": []}`,
		),
	)

	value, err := newTestEngine(t, resolver).Evaluate(context.Background(), "MATCH (n) RETURN n LIMIT 1", nil)
	require.NoError(t, err)
	require.Nil(t, value)
}

func TestEngineRun(t *testing.T) {
	beginCommit := mock.NewResource(testBeginCommitURI).WithJSONResponse(
		http.StatusOK, "",
		`{"results": [{"columns": [], "data": []}], "errors": []}`,
	)
	resolver := mock.NewResolver().Add(beginCommit)

	err := newTestEngine(t, resolver).Run(context.Background(), "CREATE (a)", nil)
	require.NoError(t, err)
	require.Equal(t, 1, beginCommit.PostCallCount())
}

func TestEngineExecute(t *testing.T) {
	resolver := mock.NewResolver().Add(
		mock.NewResource(testBeginCommitURI).WithJSONResponse(
			http.StatusOK, "",
			`{"results": [{"columns": ["a", "b"], "data": [{"rest": [1, 2]}]}], "errors": []}`,
		),
	)

	result, err := newTestEngine(t, resolver).Execute(context.Background(), "RETURN 1, 2", nil)
	require.NoError(t, err)
	require.True(t, result.Processed())

	record, err := result.Record(0)
	require.NoError(t, err)
	require.Equal(t, float64(2), record.GetByIndex(1))
}

func TestEngineStream(t *testing.T) {
	resolver := mock.NewResolver().Add(
		mock.NewResource(testBeginCommitURI).WithJSONResponse(
			http.StatusOK, "",
			`{"results": [{"columns": ["n"], "data": [
				{"rest": [{"self": "http://localhost:7474/db/data/node/1", "data": {}}]},
				{"rest": [{"self": "http://localhost:7474/db/data/node/2", "data": {}}]}
			]}], "errors": []}`,
		),
	)

	stream, err := newTestEngine(t, resolver).Stream(context.Background(), "MATCH (n) RETURN n", nil)
	require.NoError(t, err)
	defer stream.Close()

	require.Equal(t, []string{"n"}, stream.Columns())

	var ids []int64
	for stream.Next() {
		node, ok := stream.Record().GetByIndex(0).(*graph.Node)
		require.True(t, ok, "expected hydrated node")
		ids = append(ids, node.ID)
	}
	require.NoError(t, stream.Err())
	require.Equal(t, []int64{1, 2}, ids)
}

func TestEngineBeginIndependentTransactions(t *testing.T) {
	engine := newTestEngine(t, mock.NewResolver())

	tx1 := engine.Begin()
	tx2 := engine.Begin()
	require.NotSame(t, tx1, tx2)

	_, err := tx1.Execute("RETURN 1", nil)
	require.NoError(t, err)

	// tx2 has its own queue and result set.
	require.NoError(t, tx2.Rollback(context.Background()))
	require.False(t, tx1.Finished())
}
