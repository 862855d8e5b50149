// Package tmdb provides a client for TheMovieDB API.
package tmdb

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/lepinkainen/movieway/internal/ratelimit"
)

const (
	defaultBaseURL       = "https://api.themoviedb.org/3"
	defaultImageBaseURL  = "https://image.tmdb.org/t/p"
	defaultLanguage      = "tr-TR"
	defaultRegion        = "TR"
	defaultMaxAttempts   = 1
	defaultRatePerSecond = 20
)

var (
	// ErrInvalidMediaType is returned when an unsupported media type is provided.
	ErrInvalidMediaType = errors.New("invalid media type")
	// ErrNotFound is matched by errors.Is when TMDB answers 404.
	ErrNotFound = errors.New("tmdb: resource not found")
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a TMDB API client. It holds no response cache; every call hits
// the API.
type Client struct {
	apiKey        string
	baseURL       string
	imageBaseURL  string
	language      string
	region        string
	httpClient    HTTPDoer
	rateLimiter   *ratelimit.Limiter
	retryAttempts int
}

// NewClient creates a new TMDB API client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:        apiKey,
		baseURL:       defaultBaseURL,
		imageBaseURL:  defaultImageBaseURL,
		language:      defaultLanguage,
		region:        defaultRegion,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		rateLimiter:   ratelimit.New("TMDB", defaultRatePerSecond),
		retryAttempts: defaultMaxAttempts,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithTimeout replaces the HTTP client with one using the given timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		if timeout > 0 {
			client.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithBaseURL sets a custom base URL for the TMDB API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithImageBaseURL sets a custom base URL for TMDB images.
func WithImageBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.imageBaseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithLanguage sets the language sent with every request.
func WithLanguage(lang string) Option {
	return func(client *Client) {
		if lang != "" {
			client.language = lang
		}
	}
}

// WithRegion sets the watch provider region.
func WithRegion(region string) Option {
	return func(client *Client) {
		if region != "" {
			client.region = strings.ToUpper(region)
		}
	}
}

// WithRetryAttempts sets the number of attempts for failed requests.
func WithRetryAttempts(attempts int) Option {
	return func(client *Client) {
		if attempts > 0 {
			client.retryAttempts = attempts
		}
	}
}

// WithRateLimiter sets the rate limiter. A nil limiter disables limiting.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		client.rateLimiter = limiter
	}
}

