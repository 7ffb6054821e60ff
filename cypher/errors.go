package cypher

import (
	"fmt"
	"strings"
)

// FinishedError reports a queue or post operation attempted on a transaction
// whose lifecycle has already ended.
type FinishedError struct {
	TransactionID string
	Operation     string
}

// Error implements the error interface.
func (e *FinishedError) Error() string {
	return fmt.Sprintf("E_TX_FINISHED: transaction has already finished, cannot %s (TX: %s)",
		e.Operation, e.TransactionID)
}

// NotProcessedError reports a read of a Result before its owning transaction
// has posted.
type NotProcessedError struct{}

// Error implements the error interface.
func (e *NotProcessedError) Error() string {
	return "E_RESULT_NOT_PROCESSED: result has not yet been processed"
}

// PresubstitutionError reports a presubstitution marker whose key is absent
// from the supplied parameters.
type PresubstitutionError struct {
	Key string
}

// Error implements the error interface.
func (e *PresubstitutionError) Error() string {
	return fmt.Sprintf("E_PRESUB_MISSING_PARAMETER: expected a presubstitution parameter named %q", e.Key)
}

// ReferenceResolutionError reports a relate endpoint reference that cannot
// be resolved to a concrete node.
type ReferenceResolutionError struct {
	Endpoint string
	Value    any
}

// Error implements the error interface.
func (e *ReferenceResolutionError) Error() string {
	return fmt.Sprintf("E_NO_SUCH_NODE: cannot resolve a %s node from %v", e.Endpoint, e.Value)
}

// StatementError is a server-reported failure of one statement.
type StatementError struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *StatementError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// TransactionError is a server-reported failure of the transaction itself,
// such as an expired or rolled-back server-side transaction.
type TransactionError struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// hydrateServerError builds the domain error for the first error entry of a
// response. Codes in the Transaction classification become TransactionError,
// everything else is a statement-level failure.
func hydrateServerError(raw serverError) error {
	if strings.Contains(raw.Code, ".Transaction.") {
		return &TransactionError{Code: raw.Code, Message: raw.Message}
	}
	return &StatementError{Code: raw.Code, Message: raw.Message}
}
