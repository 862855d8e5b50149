package tmdb

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// fakeTMDB serves canned JSON bodies keyed by request path and records the
// requests it saw.
type fakeTMDB struct {
	mu       sync.Mutex
	bodies   map[string]string
	requests []*http.Request
}

func newFakeTMDB(t *testing.T, bodies map[string]string) (*fakeTMDB, *Client) {
	t.Helper()
	fake := &fakeTMDB{bodies: bodies}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	client := NewClient("test-key", WithBaseURL(server.URL), WithHTTPClient(server.Client()), WithRateLimiter(nil))
	return fake, client
}

func (f *fakeTMDB) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r)
	body, ok := f.bodies[r.URL.Path]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func (f *fakeTMDB) lastRequest() *http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return nil
	}
	return f.requests[len(f.requests)-1]
}
