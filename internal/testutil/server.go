// Package testutil provides test helpers for boardnotifier: a mock HTTP
// server standing in for the Notion and WhatsApp APIs, and fixture loading.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// Request is a request received by the mock server.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// DecodeBody unmarshals the JSON request body into v.
func (r Request) DecodeBody(v any) error {
	return json.Unmarshal(r.Body, v)
}

// MockServer is a test HTTP server that serves canned JSON responses routed
// by method and path substring. Every request is recorded.
type MockServer struct {
	Server *httptest.Server

	mu       sync.Mutex
	handlers []handler
	requests []Request
}

type handler struct {
	method        string
	pathSubstring string
	respond       func(http.ResponseWriter, Request)
}

// NewMockServer creates a new mock server, closed automatically via t.Cleanup.
func NewMockServer(t *testing.T) *MockServer {
	t.Helper()

	ms := &MockServer{}

	ms.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "bad request body", http.StatusBadRequest)
			return
		}
		req := Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   body,
		}

		ms.mu.Lock()
		ms.requests = append(ms.requests, req)
		handlers := append([]handler(nil), ms.handlers...)
		ms.mu.Unlock()

		// Later registrations win so tests can override shared setup.
		for i := len(handlers) - 1; i >= 0; i-- {
			h := handlers[i]
			if h.method == r.Method && strings.Contains(r.URL.Path, h.pathSubstring) {
				h.respond(w, req)
				return
			}
		}

		http.Error(w, "no handler matched request", http.StatusNotFound)
	}))

	t.Cleanup(ms.Server.Close)
	return ms
}

// URL returns the mock server's base URL.
func (ms *MockServer) URL() string {
	return ms.Server.URL
}

// Handle registers a handler for requests with the given method whose path
// contains pathSubstring.
func (ms *MockServer) Handle(method, pathSubstring string, respond func(http.ResponseWriter, Request)) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.handlers = append(ms.handlers, handler{method: method, pathSubstring: pathSubstring, respond: respond})
}

// HandleJSON registers a handler that always responds with statusCode and
// the JSON encoding of responseBody. A []byte or json.RawMessage body is
// written as is.
func (ms *MockServer) HandleJSON(method, pathSubstring string, statusCode int, responseBody any) {
	data := mustJSON(responseBody)
	ms.Handle(method, pathSubstring, func(w http.ResponseWriter, _ Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_, _ = w.Write(data)
	})
}

// HandleSequence registers a handler that responds 200 with each body in
// turn. After the last body it keeps repeating it.
func (ms *MockServer) HandleSequence(method, pathSubstring string, bodies ...any) {
	encoded := make([][]byte, len(bodies))
	for i, b := range bodies {
		encoded[i] = mustJSON(b)
	}
	var mu sync.Mutex
	next := 0
	ms.Handle(method, pathSubstring, func(w http.ResponseWriter, _ Request) {
		mu.Lock()
		data := encoded[next]
		if next < len(encoded)-1 {
			next++
		}
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	})
}

// Requests returns every request received so far.
func (ms *MockServer) Requests() []Request {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]Request(nil), ms.requests...)
}

// RequestsTo returns the received requests whose path contains pathSubstring.
func (ms *MockServer) RequestsTo(pathSubstring string) []Request {
	var out []Request
	for _, r := range ms.Requests() {
		if strings.Contains(r.Path, pathSubstring) {
			out = append(out, r)
		}
	}
	return out
}

func mustJSON(v any) []byte {
	switch b := v.(type) {
	case []byte:
		return b
	case json.RawMessage:
		return b
	}
	data, err := json.Marshal(v)
	if err != nil {
		panic("testutil: failed to marshal response: " + err.Error())
	}
	return data
}
