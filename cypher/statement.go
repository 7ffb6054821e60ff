package cypher

import "encoding/json"

// rawDataContent is the fixed directive requesting raw, non-hydrated row
// content from the server.
const rawDataContent = "REST"

// Statement is one query text plus its bound parameters, queued for
// execution. Field order is significant for the wire encoding.
type Statement struct {
	Statement          string         `json:"statement"`
	Parameters         map[string]any `json:"parameters"`
	ResultDataContents []string       `json:"resultDataContents"`
}

// NewStatement creates a statement carrying its own parameter set.
func NewStatement(text string, parameters map[string]any) *Statement {
	if parameters == nil {
		parameters = map[string]any{}
	}
	return &Statement{
		Statement:          text,
		Parameters:         parameters,
		ResultDataContents: []string{rawDataContent},
	}
}

// statementsPayload is the body of one batch POST. Statement order is
// preserved and is the result-matching order.
type statementsPayload struct {
	Statements []*Statement `json:"statements"`
}

// txResponse is the decoded body of one batch exchange.
type txResponse struct {
	Commit      string            `json:"commit"`
	Transaction *txInfo           `json:"transaction"`
	Results     []statementResult `json:"results"`
	Errors      []serverError     `json:"errors"`
}

type txInfo struct {
	Expires string `json:"expires"`
}

// statementResult is the per-statement table of one response, in input
// order.
type statementResult struct {
	Columns []string    `json:"columns"`
	Data    []resultRow `json:"data"`
}

// resultRow carries one row's raw REST-shaped column values.
type resultRow struct {
	Rest []json.RawMessage `json:"rest"`
}

type serverError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// decodeRow unmarshals a raw row into untyped column values.
func decodeRow(raw []json.RawMessage) ([]any, error) {
	values := make([]any, len(raw))
	for i, cell := range raw {
		if err := json.Unmarshal(cell, &values[i]); err != nil {
			return nil, err
		}
	}
	return values, nil
}
