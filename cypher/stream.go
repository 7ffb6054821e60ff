package cypher

import (
	"encoding/json"

	"github.com/graphbound/cypher-driver/graph"
)

// RecordStream is a one-shot, forward-only accessor over a single
// already-received result payload. The column list is known as soon as the
// stream is constructed; record decoding and hydration happen one record per
// consumption step. Once exhausted the stream cannot be restarted.
//
// Usage follows the scanner idiom:
//
//	for stream.Next() {
//		record := stream.Record()
//		...
//	}
//	if err := stream.Err(); err != nil {
//		...
//	}
type RecordStream struct {
	columns  []string
	producer *RecordProducer
	hydrator graph.Hydrator

	raw     [][]json.RawMessage
	decoded []Record
	pos     int

	current Record
	err     error
	closed  bool
}

// NewRecordStream builds a stream over a processed result. Results populated
// with raw rows are decoded lazily; results populated with hydrated records
// are streamed as-is.
func NewRecordStream(result *Result, hydrator graph.Hydrator) (*RecordStream, error) {
	keys, err := result.Keys()
	if err != nil {
		return nil, err
	}
	if hydrator == nil {
		hydrator = graph.Hydrate
	}

	s := &RecordStream{
		columns:  keys,
		producer: NewRecordProducer(keys),
		hydrator: hydrator,
	}
	if rows, ok := result.rawRows(); ok {
		s.raw = rows
		return s, nil
	}
	records, err := result.Records()
	if err != nil {
		return nil, err
	}
	s.decoded = records
	return s, nil
}

// Columns returns the column names of the stream.
func (s *RecordStream) Columns() []string {
	out := make([]string, len(s.columns))
	copy(out, s.columns)
	return out
}

// Next advances to the next record, decoding and hydrating it on demand.
// It returns false when the stream is exhausted, closed, or a decode error
// occurred; Err distinguishes the failure case.
func (s *RecordStream) Next() bool {
	if s.closed || s.err != nil {
		return false
	}

	if s.raw != nil {
		if s.pos >= len(s.raw) {
			return false
		}
		values, err := decodeRow(s.raw[s.pos])
		if err != nil {
			s.err = err
			return false
		}
		for i := range values {
			values[i] = s.hydrator(values[i])
		}
		s.current = s.producer.Produce(values)
		s.pos++
		return true
	}

	if s.pos >= len(s.decoded) {
		return false
	}
	s.current = s.decoded[s.pos]
	s.pos++
	return true
}

// Record returns the record produced by the last successful Next.
func (s *RecordStream) Record() Record {
	return s.current
}

// Err returns the first error encountered while decoding, if any.
func (s *RecordStream) Err() error {
	return s.err
}

// Close releases the remaining payload. Subsequent Next calls return false.
func (s *RecordStream) Close() error {
	s.closed = true
	s.raw = nil
	s.decoded = nil
	return nil
}
