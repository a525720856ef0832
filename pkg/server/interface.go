/*
Package server implements msgpack IPC for search-bar autocompletion.

The protocol uses binary msgpack encoding over stdin/stdout and supports
completion requests, catalog management ops, and health checks. Messages are
processed synchronously with timing info included in responses.

# IPC

Clients send structured messages via stdin and receive responses through
stdout. Each message carries an ID field echoed back in the response.

Completion requests carry the query text and byte cursor position:

	{"id": "req_001", "q": "http_method:G", "cur": 13, "l": 10}

The server responds with merged suggestions in completer order, plus the
popup advice for the cursor position:

	{"id": "req_001", "s": [{"n": "GET", "v": "GET", "cap": "GET", "sc": 300, "m": "300 hits"}], "c": 1, "t": 145, "show": true}

Catalog management mutates the in-memory field and query stores:

	{"id": "cat_001", "action": "set_fields", "fields": [...]}
	{"id": "cat_002", "action": "set_active_query", "query_id": "q1"}
	{"id": "cat_003", "action": "add_values", "values": {"http_method": {"GET": 300}}}
	{"id": "cat_004", "action": "get_info"}

Error responses carry the request ID, a message and a status code.
*/
package server

// Request is the single incoming message shape. A non-empty action selects a
// catalog op, cmd "health" a health check; everything else is a completion
// request.
type Request struct {
	ID          string                    `msgpack:"id"`
	Cmd         string                    `msgpack:"cmd,omitempty"`
	Query       string                    `msgpack:"q,omitempty"`
	Cursor      int                       `msgpack:"cur,omitempty"`
	Limit       int                       `msgpack:"l,omitempty"`
	Action      string                    `msgpack:"action,omitempty"`
	Fields      []CatalogField            `msgpack:"fields,omitempty"`
	ActiveQuery string                    `msgpack:"query_id,omitempty"`
	Values      map[string]map[string]int `msgpack:"values,omitempty"`
}

// Suggestion - one merged completion entry
type Suggestion struct {
	Name    string `msgpack:"n"`
	Value   string `msgpack:"v"`
	Caption string `msgpack:"cap"`
	Score   int    `msgpack:"sc"`
	Meta    string `msgpack:"m,omitempty"`
}

// CompleteResponse - completion response
type CompleteResponse struct {
	ID          string       `msgpack:"id"`
	Suggestions []Suggestion `msgpack:"s"`
	Count       int          `msgpack:"c"`
	TimeTaken   int64        `msgpack:"t"`
	ShowPopup   bool         `msgpack:"show"`
}

// CatalogField - one field mapping in a set_fields request
type CatalogField struct {
	Name       string   `msgpack:"name"`
	Type       string   `msgpack:"type"`
	Properties []string `msgpack:"properties,omitempty"`
	Queries    []string `msgpack:"queries,omitempty"`
}

// CatalogResponse - catalog operation response
type CatalogResponse struct {
	ID          string `msgpack:"id"`
	Status      string `msgpack:"status"`
	Error       string `msgpack:"error,omitempty"`
	FieldCount  int    `msgpack:"field_count,omitempty"`
	ValueFields int    `msgpack:"value_fields,omitempty"`
	ActiveQuery string `msgpack:"active_query,omitempty"`
}

// HealthResponse - health check response
type HealthResponse struct {
	ID     string `msgpack:"id"`
	Status string `msgpack:"status"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
