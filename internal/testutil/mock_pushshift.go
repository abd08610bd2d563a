// Package testutil provides testing utilities for the PushShift client.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
)

// MockPushShift is a scriptable mock PushShift API server.
//
// Listing endpoints are scripted as a sequence of response bodies served in
// order; once a script runs out the endpoint serves empty pages. The /meta
// endpoint advertises RateLimitPerMinute like the real API.
type MockPushShift struct {
	server   *httptest.Server
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	pages    map[string][]string
	served   map[string]int
	requests map[string]int
	queries  map[string][]url.Values

	// RateLimitPerMinute is returned by the /meta endpoint.
	RateLimitPerMinute float64
}

// NewMockPushShift creates a new mock PushShift server.
func NewMockPushShift() *MockPushShift {
	mock := &MockPushShift{
		handlers:           make(map[string]http.HandlerFunc),
		pages:              make(map[string][]string),
		served:             make(map[string]int),
		requests:           make(map[string]int),
		queries:            make(map[string][]url.Values),
		RateLimitPerMinute: 120,
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		mock.mu.Lock()
		mock.requests[path]++
		mock.queries[path] = append(mock.queries[path], r.URL.Query())
		handler, hasHandler := mock.handlers[path]
		mock.mu.Unlock()

		if hasHandler {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockPushShift) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockPushShift) Close() {
	m.server.Close()
}

// SetHandler sets a custom handler for a specific path.
func (m *MockPushShift) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// ScriptPages scripts the response bodies a listing endpoint serves, in
// order. Each body should be a complete JSON envelope (see PageBody).
func (m *MockPushShift) ScriptPages(path string, bodies ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[path] = bodies
	m.served[path] = 0
}

// Requests returns how many requests a path has received.
func (m *MockPushShift) Requests(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[path]
}

// Queries returns the query parameters of every request to a path, in
// arrival order.
func (m *MockPushShift) Queries(path string) []url.Values {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]url.Values(nil), m.queries[path]...)
}

// defaultHandler serves /meta, scripted pages, and 404 for the rest.
func (m *MockPushShift) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if r.URL.Path == "/meta" {
		m.mu.Lock()
		quota := m.RateLimitPerMinute
		m.mu.Unlock()
		fmt.Fprintf(w, `{"server_ratelimit_per_minute": %g}`, quota)
		return
	}

	m.mu.Lock()
	script, scripted := m.pages[r.URL.Path]
	idx := m.served[r.URL.Path]
	if scripted && idx < len(script) {
		m.served[r.URL.Path]++
	}
	m.mu.Unlock()

	if !scripted {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error": "not found"}`)
		return
	}

	if idx >= len(script) {
		fmt.Fprint(w, `{"data": []}`)
		return
	}
	fmt.Fprint(w, script[idx])
}

// PageBody wraps item JSON objects into a PushShift response envelope.
func PageBody(items ...string) string {
	return fmt.Sprintf(`{"data": [%s]}`, strings.Join(items, ", "))
}

// PostJSON builds a submission record as served by PushShift.
func PostJSON(id string, created int64) string {
	return fmt.Sprintf(`{
		"id": %q,
		"score": 10,
		"permalink": "/r/golang/comments/%s/",
		"created_utc": %d,
		"author": "gopher",
		"subreddit": "golang",
		"subreddit_id": "t5_2rc7j",
		"title": "post %s",
		"url": "https://example.com/%s",
		"full_link": "https://reddit.com/r/golang/comments/%s/"
	}`, id, id, created, id, id, id)
}

// CommentJSON builds a comment record as served by PushShift.
func CommentJSON(id string, created int64) string {
	return fmt.Sprintf(`{
		"id": %q,
		"score": 3,
		"created_utc": %d,
		"author": "gopher",
		"subreddit": "golang",
		"subreddit_id": "t5_2rc7j",
		"body": "comment %s",
		"parent_id": "t3_parent"
	}`, id, created, id)
}
