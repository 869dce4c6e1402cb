// Package testutil provides testing utilities for the QuickPin client.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
)

// SubmittedPayload is one captured profile-submission request body.
type SubmittedPayload struct {
	Profiles []map[string]string `json:"profiles"`
	Stub     bool                `json:"stub"`
}

// MockQuickPin is a configurable mock QuickPin server for testing. It serves
// the authentication, profile, and search endpoints with canned behavior and
// records what it received.
type MockQuickPin struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc

	// Canned behavior for the default handlers.
	Token string

	// Tracking
	RequestCount      int
	AuthRequestCount  int
	ProfilePayloads   []SubmittedPayload
	LastRequestHeader http.Header
	LastQuery         map[string][]string
}

// NewMockQuickPin creates a new mock QuickPin server with working default
// handlers for all three endpoints.
func NewMockQuickPin() *MockQuickPin {
	mock := &MockQuickPin{
		handlers: make(map[string]http.HandlerFunc),
		Token:    "1|test-token",
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastRequestHeader = r.Header.Clone()
		mock.LastQuery = r.URL.Query()
		if r.URL.Path == "/api/authentication/" {
			mock.AuthRequestCount++
		}
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockQuickPin) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockQuickPin) Close() {
	m.server.Close()
}

// Reset clears all tracking state.
func (m *MockQuickPin) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.AuthRequestCount = 0
	m.ProfilePayloads = nil
	m.LastRequestHeader = nil
	m.LastQuery = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockQuickPin) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// FailAfter makes the profile endpoint fail with the given status once n
// successful submissions have been served.
func (m *MockQuickPin) FailAfter(n int, status int) {
	var served int
	var mu sync.Mutex
	m.SetHandler("/api/profile/", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		served++
		failNow := served > n
		mu.Unlock()

		if failNow {
			w.WriteHeader(status)
			w.Write([]byte(`{"error": "boom"}`))
			return
		}
		m.recordProfilePayload(r)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "profiles accepted"}`))
	})
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockQuickPin) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetAuthRequestCount returns the number of authentication requests.
func (m *MockQuickPin) GetAuthRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.AuthRequestCount
}

// GetProfilePayloads returns the captured profile submission payloads in
// arrival order.
func (m *MockQuickPin) GetProfilePayloads() []SubmittedPayload {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]SubmittedPayload(nil), m.ProfilePayloads...)
}

func (m *MockQuickPin) recordProfilePayload(r *http.Request) {
	var payload SubmittedPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return
	}
	m.mu.Lock()
	m.ProfilePayloads = append(m.ProfilePayloads, payload)
	m.mu.Unlock()
}

// defaultHandler provides default QuickPin-like responses.
func (m *MockQuickPin) defaultHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.URL.Path {
	case "/api/authentication/":
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.Email == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "invalid credentials"}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"token": m.Token})

	case "/api/profile/":
		if r.Header.Get("X-Auth") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "authentication required"}`))
			return
		}
		m.recordProfilePayload(r)
		w.Write([]byte(`{"message": "profiles accepted"}`))

	case "/api/search/":
		if r.Header.Get("X-Auth") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error": "authentication required"}`))
			return
		}
		w.Write([]byte(`{"results": [], "total_count": 0}`))

	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "not found"}`))
	}
}
