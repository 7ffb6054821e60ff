package cypher

import (
	"encoding/json"
	"testing"

	"github.com/graphbound/cypher-driver/graph"
)

func rawResult(t *testing.T, keys []string, rows ...string) *Result {
	t.Helper()

	raw := make([][]json.RawMessage, 0, len(rows))
	for _, row := range rows {
		var cells []json.RawMessage
		if err := json.Unmarshal([]byte(row), &cells); err != nil {
			t.Fatalf("bad test row %q: %v", row, err)
		}
		raw = append(raw, cells)
	}
	result := newResult()
	result.processRaw(keys, raw)
	return result
}

func TestRecordStreamColumnsKnownUpfront(t *testing.T) {
	result := rawResult(t, []string{"a", "b"})

	stream, err := NewRecordStream(result, nil)
	if err != nil {
		t.Fatalf("NewRecordStream() error = %v", err)
	}

	columns := stream.Columns()
	if len(columns) != 2 || columns[0] != "a" || columns[1] != "b" {
		t.Errorf("unexpected columns %v", columns)
	}
}

func TestRecordStreamDecodesIncrementally(t *testing.T) {
	result := rawResult(t, []string{"n"},
		`[1]`,
		`[2]`,
		`[3]`,
	)

	stream, err := NewRecordStream(result, nil)
	if err != nil {
		t.Fatalf("NewRecordStream() error = %v", err)
	}

	var values []any
	for stream.Next() {
		values = append(values, stream.Record().GetByIndex(0))
	}
	if err := stream.Err(); err != nil {
		t.Fatalf("stream error: %v", err)
	}

	expected := []any{float64(1), float64(2), float64(3)}
	if len(values) != len(expected) {
		t.Fatalf("got %d records, want %d", len(values), len(expected))
	}
	for i := range expected {
		if values[i] != expected[i] {
			t.Errorf("record %d = %v, want %v", i, values[i], expected[i])
		}
	}

	// Exhausted: further calls stay false.
	if stream.Next() {
		t.Error("exhausted stream should not advance")
	}
}

func TestRecordStreamHydratesValues(t *testing.T) {
	result := rawResult(t, []string{"n"},
		`[{"self": "http://localhost:7474/db/data/node/42", "data": {"name": "Alice"}}]`,
	)

	stream, err := NewRecordStream(result, graph.Hydrate)
	if err != nil {
		t.Fatalf("NewRecordStream() error = %v", err)
	}

	if !stream.Next() {
		t.Fatal("expected one record")
	}
	node, ok := stream.Record().GetByIndex(0).(*graph.Node)
	if !ok {
		t.Fatalf("expected hydrated node, got %T", stream.Record().GetByIndex(0))
	}
	if node.ID != 42 || node.Properties["name"] != "Alice" {
		t.Errorf("unexpected node %+v", node)
	}
}

func TestRecordStreamNotProcessedResult(t *testing.T) {
	if _, err := NewRecordStream(newResult(), nil); err == nil {
		t.Fatal("expected error for unprocessed result")
	}
}

func TestRecordStreamClose(t *testing.T) {
	result := rawResult(t, []string{"n"}, `[1]`, `[2]`)

	stream, err := NewRecordStream(result, nil)
	if err != nil {
		t.Fatalf("NewRecordStream() error = %v", err)
	}

	if !stream.Next() {
		t.Fatal("expected first record")
	}
	if err := stream.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if stream.Next() {
		t.Error("closed stream should not advance")
	}
}

func TestRecordStreamOverHydratedResult(t *testing.T) {
	producer := NewRecordProducer([]string{"n"})
	result := newResult()
	result.process([]string{"n"}, []Record{producer.Produce([]any{"x"})})

	stream, err := NewRecordStream(result, nil)
	if err != nil {
		t.Fatalf("NewRecordStream() error = %v", err)
	}
	if !stream.Next() {
		t.Fatal("expected one record")
	}
	if got := stream.Record().GetByIndex(0); got != "x" {
		t.Errorf("unexpected value %v", got)
	}
	if stream.Next() {
		t.Error("expected exhaustion after one record")
	}
}
