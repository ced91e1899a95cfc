/*
Package server implements msgpack IPC for pgalyzer queries.

The server loads one document up front and answers queries about it using
msgpack serialization over stdin/stdout. Messages are a plain stream of
msgpack values, one request in and one response out, processed
synchronously with timing info included in responses.

# IPC

On start the server writes a single ready message:

	{"status": "ready"}

Every request carries an ID and an action; the other fields depend on the action:

	{"id": "req_001", "action": "next", "w": "little", "n": 3}
	{"id": "req_002", "action": "ngrams", "n": 2, "l": 10}
	{"id": "req_003", "action": "concordance", "w": "lamb", "ns": 4}
	{"id": "req_004", "action": "complete", "p": "li", "l": 5}

Ranked answers list words with their count and rank:

	{"id": "req_001", "s": [{"w": "lamb", "f": 4, "r": 1}], "c": 1, "t": 12}

Concordance answers list windows instead:

	{"id": "req_003", "cw": [{"b": "had a little", "a": "its fleece"}], "c": 1, "t": 30}

Failures carry a message and an HTTP-like code (400, 404, 500):

	{"id": "req_005", "e": "\"zebra\" has no next word", "c": 404}

Times are in microseconds. The loop ends cleanly when the input stream does.

# Actions

ngrams, words, complete: ranked entries, capped at the configured max_limit.
next, previous: ranked neighbors of "w".
concordance: context windows around "w"; display: the same windows rendered as text.
stats: document sizes. health: {"status": "ok"}.
*/
package server

// Request is a single query
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"`
	Word   string `msgpack:"w,omitempty"`
	Prefix string `msgpack:"p,omitempty"`
	N      *int   `msgpack:"n,omitempty"`  // n-gram size or neighbor count
	Size   *int   `msgpack:"ns,omitempty"` // neighborhood size
	Limit  int    `msgpack:"l,omitempty"`
}

// Result is one ranked word, n-gram or neighbor
type Result struct {
	Text  string `msgpack:"w"`
	Count int    `msgpack:"f"`
	Rank  uint16 `msgpack:"r"`
}

// WindowResult is one concordance window
type WindowResult struct {
	Before string `msgpack:"b"`
	After  string `msgpack:"a"`
}

// Response is the answer to a successful request. Only the payload
// matching the action is set.
// An error reply decodes into it as well, with Error set and Count
// holding the code.
type Response struct {
	ID        string         `msgpack:"id"`
	Results   []Result       `msgpack:"s,omitempty"`
	Windows   []WindowResult `msgpack:"cw,omitempty"`
	Display   string         `msgpack:"d,omitempty"`
	Stats     map[string]int `msgpack:"st,omitempty"`
	Error     string         `msgpack:"e,omitempty"`
	Count     int            `msgpack:"c"`
	TimeTaken int64          `msgpack:"t"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

// Status is the ready and health message
type Status struct {
	Status string `msgpack:"status"`
}
