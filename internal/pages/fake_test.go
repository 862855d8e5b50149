package pages

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/lepinkainen/movieway/internal/sportsdb"
	"github.com/lepinkainen/movieway/internal/tmdb"
)

// fakeTMDB answers canned JSON per path. Paths listed in failing answer 500,
// unknown paths answer 404.
type fakeTMDB struct {
	mu      sync.Mutex
	bodies  map[string]string
	failing map[string]bool
	seen    []*url.URL
}

func newAssembler(t *testing.T, fake *fakeTMDB, opts ...Option) *Assembler {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	client := tmdb.NewClient("test-key",
		tmdb.WithBaseURL(server.URL),
		tmdb.WithHTTPClient(server.Client()),
		tmdb.WithRateLimiter(nil),
	)
	return NewAssembler(client, opts...)
}

func (f *fakeTMDB) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.seen = append(f.seen, r.URL)
	body, ok := f.bodies[r.URL.Path]
	fail := f.failing[r.URL.Path]
	f.mu.Unlock()

	switch {
	case fail:
		http.Error(w, `{"status_message":"boom"}`, http.StatusInternalServerError)
	case !ok:
		http.Error(w, `{"status_code":34}`, http.StatusNotFound)
	default:
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func (f *fakeTMDB) calls(path string) []*url.URL {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*url.URL
	for _, u := range f.seen {
		if u.Path == path {
			out = append(out, u)
		}
	}
	return out
}

func (f *fakeTMDB) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seen)
}

type fakeFixtures struct {
	events []sportsdb.Event
	err    error
}

func (f fakeFixtures) NextLeagueEvents(ctx context.Context, leagueID string) ([]sportsdb.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

var errFixtures = errors.New("sportsdb down")

func homeBodies() map[string]string {
	return map[string]string{
		"/movie/popular":     `{"results":[{"id":1,"title":"A"},{"id":2,"title":"B"},{"id":3,"title":"C"},{"id":4,"title":"D"},{"id":5,"title":"E"},{"id":6,"title":"F"},{"id":7,"title":"G"}]}`,
		"/tv/popular":        `{"results":[{"id":10,"name":"Dark","first_air_date":"2017-12-01"}]}`,
		"/tv/airing_today":   `{"results":[{"id":11,"name":"Today"}]}`,
		"/movie/now_playing": `{"results":[{"id":12,"title":"Now"}]}`,
		"/tv/on_the_air":     `{"results":[{"id":13,"name":"On Air"}]}`,
		"/movie/top_rated": `{"results":[
			{"id":20,"title":"Low","vote_average":7.2},
			{"id":21,"title":"First Best","vote_average":8.9,"backdrop_path":"/best.jpg"},
			{"id":22,"title":"Second Best","vote_average":8.9},
			{"id":23,"title":"Lowest","vote_average":5.0}
		]}`,
		"/tv/top_rated":      `{"results":[{"id":30,"name":"Top Show","vote_average":9.1}]}`,
		"/movie/upcoming":    `{"results":[{"id":40,"title":"Soon","backdrop_path":"/soon.jpg"},{"id":41,"title":"No Trailer","poster_path":"/p.jpg"}]}`,
		"/movie/40/videos":   `{"results":[{"key":"teaser","site":"YouTube","type":"Teaser"},{"key":"official","site":"YouTube","type":"Trailer","official":true}]}`,
		"/movie/41/videos":   `{"results":[{"key":"vimeo","site":"Vimeo","type":"Trailer"}]}`,
	}
}
