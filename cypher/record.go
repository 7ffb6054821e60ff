package cypher

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/graphbound/cypher-driver/graph"
)

// reservedColumnPrefix marks internal/system columns that are filtered out
// of the record shape.
const reservedColumnPrefix = "_"

// RecordProducer is the shared schema of one result set. Built once from the
// column-name list, it defines the record arity, the ordered column names
// and the name-to-position mapping, and stamps value rows into records.
// Every record of one Result or RecordStream shares one producer.
type RecordProducer struct {
	columns   []string
	positions []int
	index     map[string]int
}

// NewRecordProducer builds a producer from a column-name list, filtering out
// reserved columns while remembering the original position of each kept
// column.
func NewRecordProducer(columns []string) *RecordProducer {
	p := &RecordProducer{index: make(map[string]int)}
	for pos, column := range columns {
		if strings.HasPrefix(column, reservedColumnPrefix) {
			continue
		}
		p.index[column] = len(p.columns)
		p.columns = append(p.columns, column)
		p.positions = append(p.positions, pos)
	}
	return p
}

// Columns returns the ordered column names of the record shape.
func (p *RecordProducer) Columns() []string {
	out := make([]string, len(p.columns))
	copy(out, p.columns)
	return out
}

// Len returns the record arity.
func (p *RecordProducer) Len() int {
	return len(p.columns)
}

// Produce stamps a row of values into a record. Values are selected by the
// original position of each kept column, so reserved columns in the raw row
// do not shift the mapping.
func (p *RecordProducer) Produce(values []any) Record {
	selected := make([]any, len(p.positions))
	for i, pos := range p.positions {
		if pos < len(values) {
			selected[i] = values[pos]
		}
	}
	return Record{producer: p, values: selected}
}

func (p *RecordProducer) String() string {
	return fmt.Sprintf("RecordProducer(columns=%v)", p.columns)
}

// Record is one immutable row of a result, addressable by zero-based
// position or by column name.
type Record struct {
	producer *RecordProducer
	values   []any
}

// Keys returns the ordered column names of the record.
func (r Record) Keys() []string {
	if r.producer == nil {
		return nil
	}
	return r.producer.Columns()
}

// Values returns the ordered values of the record.
func (r Record) Values() []any {
	out := make([]any, len(r.values))
	copy(out, r.values)
	return out
}

// Len returns the number of values in the record.
func (r Record) Len() int {
	return len(r.values)
}

// GetByIndex returns the value at the given zero-based position, or nil when
// the position is out of range.
func (r Record) GetByIndex(i int) any {
	if i < 0 || i >= len(r.values) {
		return nil
	}
	return r.values[i]
}

// Get returns the value for the given column name. The second return is
// false when the record has no such column.
func (r Record) Get(name string) (any, bool) {
	if r.producer == nil {
		return nil, false
	}
	i, ok := r.producer.index[name]
	if !ok {
		return nil, false
	}
	return r.values[i], true
}

// Equal reports whether two records carry equal name-to-value mappings.
func (r Record) Equal(other Record) bool {
	if r.producer == nil || other.producer == nil {
		return r.EqualValues(other.values)
	}
	if len(r.producer.columns) != len(other.producer.columns) {
		return false
	}
	for _, name := range r.producer.columns {
		mine, _ := r.Get(name)
		theirs, ok := other.Get(name)
		if !ok || !reflect.DeepEqual(mine, theirs) {
			return false
		}
	}
	return true
}

// EqualValues reports positional equality against a plain ordered sequence,
// the fallback when named comparison is not meaningful.
func (r Record) EqualValues(values []any) bool {
	if len(r.values) != len(values) {
		return false
	}
	for i := range r.values {
		if !reflect.DeepEqual(r.values[i], values[i]) {
			return false
		}
	}
	return true
}

// Nodes yields every node-typed value of the record, making a record usable
// as a relate endpoint source.
func (r Record) Nodes() []*graph.Node {
	var nodes []*graph.Node
	for _, value := range r.values {
		if node, ok := value.(*graph.Node); ok {
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func (r Record) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, name := range r.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", name, r.values[i])
	}
	b.WriteByte(')')
	return b.String()
}
