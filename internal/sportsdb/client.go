// Package sportsdb fetches upcoming fixtures from TheSportsDB v1 API.
package sportsdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lepinkainen/movieway/internal/ratelimit"
)

const (
	defaultBaseURL = "https://www.thesportsdb.com/api/v1/json"
	// Public test key.
	defaultAPIKey = "123"
	// TheSportsDB free tier allows 30 requests per minute.
	defaultRatePerSecond = 1
)

// ErrRateLimited is returned when no request token is available. The client
// never queues.
var ErrRateLimited = errors.New("sportsdb: rate limited")

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Event is an upcoming fixture.
type Event struct {
	ID        string `json:"idEvent"`
	Name      string `json:"strEvent"`
	HomeTeam  string `json:"strHomeTeam"`
	AwayTeam  string `json:"strAwayTeam"`
	League    string `json:"strLeague"`
	Date      string `json:"dateEvent"`
	Time      string `json:"strTime"`
	Venue     string `json:"strVenue"`
	Thumbnail string `json:"strThumb"`
}

// Client is a TheSportsDB client.
type Client struct {
	apiKey      string
	baseURL     string
	httpClient  HTTPDoer
	rateLimiter *ratelimit.Limiter
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// NewClient creates a client. An empty apiKey uses the public test key.
func NewClient(apiKey string, opts ...Option) *Client {
	if apiKey == "" {
		apiKey = defaultAPIKey
	}
	client := &Client{
		apiKey:      apiKey,
		baseURL:     defaultBaseURL,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		rateLimiter: ratelimit.New("TheSportsDB", defaultRatePerSecond),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// WithBaseURL sets a custom base URL.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithRateLimiter sets the rate limiter. A nil limiter disables limiting.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		client.rateLimiter = limiter
	}
}

// NextLeagueEvents returns the next fixtures of a league. A league with no
// scheduled events yields an empty slice.
func (c *Client) NextLeagueEvents(ctx context.Context, leagueID string) ([]Event, error) {
	if !c.rateLimiter.Allow() {
		return nil, fmt.Errorf("%w by %s limiter", ErrRateLimited, c.rateLimiter.Name())
	}

	endpoint := fmt.Sprintf("%s/%s/eventsnextleague.php?id=%s",
		c.baseURL, url.PathEscape(c.apiKey), url.QueryEscape(leagueID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sportsdb: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("sportsdb: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var response struct {
		Events []Event `json:"events"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("sportsdb: decode response: %w", err)
	}
	if response.Events == nil {
		return []Event{}, nil
	}
	return response.Events, nil
}
