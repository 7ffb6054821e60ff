package cypher

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestResultGuardsBeforeProcessing(t *testing.T) {
	result := newResult()

	if result.Processed() {
		t.Fatal("fresh result should not be processed")
	}

	var notProcessed *NotProcessedError

	if _, err := result.Keys(); !errors.As(err, &notProcessed) {
		t.Errorf("Keys() error = %v, want NotProcessedError", err)
	}
	if _, err := result.Len(); !errors.As(err, &notProcessed) {
		t.Errorf("Len() error = %v, want NotProcessedError", err)
	}
	if _, err := result.Record(0); !errors.As(err, &notProcessed) {
		t.Errorf("Record() error = %v, want NotProcessedError", err)
	}
	if _, err := result.Records(); !errors.As(err, &notProcessed) {
		t.Errorf("Records() error = %v, want NotProcessedError", err)
	}
	if _, err := result.Value(); !errors.As(err, &notProcessed) {
		t.Errorf("Value() error = %v, want NotProcessedError", err)
	}
}

func TestResultAfterProcessing(t *testing.T) {
	producer := NewRecordProducer([]string{"a", "b"})
	result := newResult()
	result.process([]string{"a", "b"}, []Record{
		producer.Produce([]any{1, 2}),
		producer.Produce([]any{3, 4}),
	})

	keys, err := result.Keys()
	if err != nil || len(keys) != 2 {
		t.Fatalf("Keys() = %v, %v", keys, err)
	}

	n, err := result.Len()
	if err != nil || n != 2 {
		t.Fatalf("Len() = %d, %v", n, err)
	}

	record, err := result.Record(1)
	if err != nil {
		t.Fatalf("Record(1) error = %v", err)
	}
	if got := record.GetByIndex(0); got != 3 {
		t.Errorf("Record(1)[0] = %v, want 3", got)
	}

	if _, err := result.Record(2); err == nil {
		t.Error("expected out-of-range error")
	}
}

func TestResultValueContract(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		rows     [][]any
		expected any
		isRecord bool
	}{
		{"empty result", []string{"x"}, nil, nil, false},
		{"single column single row", []string{"x"}, [][]any{{5}}, 5, false},
		{"multi column single row", []string{"a", "b"}, [][]any{{1, 2}}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			producer := NewRecordProducer(tt.keys)
			records := make([]Record, 0, len(tt.rows))
			for _, row := range tt.rows {
				records = append(records, producer.Produce(row))
			}
			result := newResult()
			result.process(tt.keys, records)

			value, err := result.Value()
			if err != nil {
				t.Fatalf("Value() error = %v", err)
			}
			if tt.isRecord {
				record, ok := value.(Record)
				if !ok {
					t.Fatalf("expected whole record, got %T", value)
				}
				if !record.EqualValues(tt.rows[0]) {
					t.Errorf("unexpected record %v", record)
				}
				return
			}
			if value != tt.expected {
				t.Errorf("Value() = %v, want %v", value, tt.expected)
			}
		})
	}
}

func TestResultRawMaterialization(t *testing.T) {
	result := newResult()
	result.processRaw([]string{"a", "b"}, [][]json.RawMessage{
		{json.RawMessage(`1`), json.RawMessage(`"x"`)},
	})

	records, err := result.Records()
	if err != nil {
		t.Fatalf("Records() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if got := records[0].GetByIndex(0); got != float64(1) {
		t.Errorf("raw integer should decode as float64(1), got %v (%T)", got, got)
	}
	if got, _ := records[0].Get("b"); got != "x" {
		t.Errorf("expected b=x, got %v", got)
	}
}
