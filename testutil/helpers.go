// Package testutil provides helpers for integration tests that run against a
// live transactional endpoint.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/graphbound/cypher-driver/cypher"
)

var testLabelCounter uint64

// NewTestEngine creates an engine bound to the endpoint named by the
// CYPHER_TEST_URI environment variable. Tests are skipped when it is unset.
//
// Example:
//
//	export CYPHER_TEST_URI="http://localhost:7474/db/data/transaction"
//	engine := testutil.NewTestEngine(t)
func NewTestEngine(t *testing.T) *cypher.Engine {
	t.Helper()

	uri := os.Getenv("CYPHER_TEST_URI")
	if uri == "" {
		t.Skip("CYPHER_TEST_URI not set, skipping integration test")
		return nil
	}

	return cypher.ForURI(uri)
}

// TestLabel generates a unique node label so concurrent test runs do not
// collide. Format: <prefix>_<timestamp>_<counter>.
func TestLabel(prefix string) string {
	if prefix == "" {
		prefix = "Test"
	}
	n := atomic.AddUint64(&testLabelCounter, 1)
	return fmt.Sprintf("%s_%d_%d", prefix, time.Now().Unix(), n)
}

// WithTimeout creates a context with a timeout for tests. The default is
// 10 seconds.
func WithTimeout(t *testing.T, timeout ...time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()

	duration := 10 * time.Second
	if len(timeout) > 0 {
		duration = timeout[0]
	}
	return context.WithTimeout(context.Background(), duration)
}

// Rollback discards a transaction at the end of a test, logging rather than
// failing when the transaction already finished.
func Rollback(t *testing.T, tx *cypher.Transaction) {
	t.Helper()

	if tx.Finished() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := tx.Rollback(ctx); err != nil {
		t.Logf("warning: rollback failed: %v", err)
	}
}
