package cypher

import "github.com/cespare/xxhash"

// Fingerprint returns a stable 64-bit fingerprint of a statement's text.
// Log entries carry fingerprints instead of full query text so repeated
// statements can be correlated without flooding the log.
func Fingerprint(statement string) uint64 {
	return xxhash.Sum64String(statement)
}
