package cypher

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Result is the outcome of one queued statement. It is created as a
// placeholder when the statement is queued and populated exactly once when
// the owning transaction posts; every read before that fails with
// NotProcessedError. After population it is an immutable, index-addressable
// sequence of records.
type Result struct {
	mu        sync.Mutex
	keys      []string
	records   []Record
	raw       [][]json.RawMessage
	processed bool
}

func newResult() *Result {
	return &Result{}
}

// Processed reports whether the result has been populated.
func (r *Result) Processed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.processed
}

// process populates the result with hydrated records. Called exactly once by
// the owning transaction.
func (r *Result) process(keys []string, records []Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = keys
	r.records = records
	r.processed = true
}

// processRaw populates the result with raw, not-yet-decoded row payloads.
// Rows are materialized into records, without entity hydration, on first
// read.
func (r *Result) processRaw(keys []string, rows [][]json.RawMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = keys
	r.raw = rows
	r.processed = true
}

// Keys returns the ordered column names of the result.
func (r *Result) Keys() ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.processed {
		return nil, &NotProcessedError{}
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out, nil
}

// Len returns the number of records in the result.
func (r *Result) Len() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.processed {
		return 0, &NotProcessedError{}
	}
	if err := r.materialize(); err != nil {
		return 0, err
	}
	return len(r.records), nil
}

// Record returns the record at the given zero-based index.
func (r *Result) Record(i int) (Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.processed {
		return Record{}, &NotProcessedError{}
	}
	if err := r.materialize(); err != nil {
		return Record{}, err
	}
	if i < 0 || i >= len(r.records) {
		return Record{}, fmt.Errorf("record index %d out of range [0, %d)", i, len(r.records))
	}
	return r.records[i], nil
}

// Records returns every record of the result in order.
func (r *Result) Records() ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.processed {
		return nil, &NotProcessedError{}
	}
	if err := r.materialize(); err != nil {
		return nil, err
	}
	out := make([]Record, len(r.records))
	copy(out, r.records)
	return out, nil
}

// Value returns nil for an empty result, the single value when the first
// record has exactly one column, and otherwise the whole first record. This
// is the contract for single-value queries.
func (r *Result) Value() (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.processed {
		return nil, &NotProcessedError{}
	}
	if err := r.materialize(); err != nil {
		return nil, err
	}
	if len(r.records) == 0 {
		return nil, nil
	}
	record := r.records[0]
	switch record.Len() {
	case 0:
		return nil, nil
	case 1:
		return record.GetByIndex(0), nil
	default:
		return record, nil
	}
}

// materialize decodes raw rows into records. Must be called with r.mu held.
func (r *Result) materialize() error {
	if r.raw == nil {
		return nil
	}
	producer := NewRecordProducer(r.keys)
	records := make([]Record, 0, len(r.raw))
	for _, row := range r.raw {
		values, err := decodeRow(row)
		if err != nil {
			return err
		}
		records = append(records, producer.Produce(values))
	}
	r.records = records
	r.raw = nil
	return nil
}

// rawRows hands the undecoded payload to a record stream. Must only be
// called on a raw-processed result.
func (r *Result) rawRows() ([][]json.RawMessage, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.processed || r.raw == nil {
		return nil, false
	}
	return r.raw, true
}
