// Package cypher implements a client-side execution engine for a graph
// database's statement-oriented transactional HTTP protocol. Statements are
// queued on a Transaction, batched into single HTTP requests, and their
// tabular JSON responses are converted into typed records addressable by
// position or column name, either buffered (Result) or decoded incrementally
// (RecordStream).
package cypher
