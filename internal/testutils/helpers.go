package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/aretw0/stepflow/pkg/domain"
)

// Messages returned by Backend.
const (
	StatusMessage  = "API status"
	ExecuteMessage = "Flow executed"
)

// Backend mimics the execution API: GET /status and POST /execute.
type Backend struct {
	URL string
	srv *httptest.Server

	mu           sync.Mutex
	statusCode   int
	executeCode  int
	lastRequest  *domain.ExecutionRequest
	lastHeaders  http.Header
	executeCalls int
}

// NewBackend starts a Backend answering with the given codes.
// It is closed when the test ends.
func NewBackend(t *testing.T, statusCode, executeCode int) *Backend {
	t.Helper()

	b := &Backend{statusCode: statusCode, executeCode: executeCode}
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)
	b.URL = srv.URL
	b.srv = srv
	return b
}

// Close shuts the server down, so later calls fail at the transport level.
func (b *Backend) Close() {
	b.srv.Close()
}

func (b *Backend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /status", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		code := b.statusCode
		b.lastHeaders = r.Header.Clone()
		b.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(domain.APIResponse{Message: StatusMessage})
	})
	mux.HandleFunc("POST /execute", func(w http.ResponseWriter, r *http.Request) {
		var req domain.ExecutionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		b.mu.Lock()
		code := b.executeCode
		b.lastRequest = &req
		b.lastHeaders = r.Header.Clone()
		b.executeCalls++
		b.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(domain.APIResponse{Message: ExecuteMessage, Details: "steps received"})
	})
	return mux
}

// SetStatusCode changes the answer of GET /status.
func (b *Backend) SetStatusCode(code int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.statusCode = code
}

// LastRequest returns the last decoded POST /execute body, or nil.
func (b *Backend) LastRequest() *domain.ExecutionRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastRequest
}

// LastHeaders returns the headers of the last request.
func (b *Backend) LastHeaders() http.Header {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastHeaders
}

// ExecuteCalls counts POST /execute requests.
func (b *Backend) ExecuteCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.executeCalls
}
