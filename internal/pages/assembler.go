// Package pages gathers the data each site route renders. Required provider
// calls run concurrently and fail the page together; optional enrichment
// degrades to an empty result.
package pages

import (
	"context"
	"errors"
	"time"

	"github.com/lepinkainen/movieway/internal/catalog"
	"github.com/lepinkainen/movieway/internal/sportsdb"
	"github.com/lepinkainen/movieway/internal/tmdb"
)

const (
	defaultGuideConcurrency = 4
	defaultSectionSize      = 8
	defaultMoviesPerSection = 6
	trailerCandidates       = 10
	castSize                = 8
	guideTopPerGenre        = 3
	guideMinVoteCount       = 100
	defaultFixturesTimeout  = 2 * time.Second
)

// ErrNotFound is returned when a requested title does not exist.
var ErrNotFound = errors.New("page not found")

// Provider is the subset of the TMDB client the assembler uses.
type Provider interface {
	List(ctx context.Context, mediaType, list string, page int) (*tmdb.Page, error)
	Discover(ctx context.Context, mediaType string, opts tmdb.DiscoverOptions) (*tmdb.Page, error)
	SearchMovies(ctx context.Context, query string, page int) (*tmdb.Page, error)
	Genres(ctx context.Context, mediaType string) ([]tmdb.Genre, error)
	Details(ctx context.Context, mediaType string, id int) (*tmdb.Details, error)
	Credits(ctx context.Context, mediaType string, id int) (*tmdb.Credits, error)
	Videos(ctx context.Context, mediaType string, id int) ([]tmdb.Video, error)
	Keywords(ctx context.Context, mediaType string, id int) ([]tmdb.Keyword, error)
	ExternalIDs(ctx context.Context, mediaType string, id int) (*tmdb.ExternalIDs, error)
	WatchProviders(ctx context.Context, mediaType string, id int) (tmdb.RegionProviders, error)
}

// FixtureSource supplies upcoming sports fixtures for the home page.
type FixtureSource interface {
	NextLeagueEvents(ctx context.Context, leagueID string) ([]sportsdb.Event, error)
}

// Outcome is the result of an optional fetch. OK is false when the fetch
// failed or was skipped; Value is then the zero value.
type Outcome[T any] struct {
	Value T
	OK    bool
}

// Succeeded wraps a successful optional result.
func Succeeded[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v, OK: true}
}

// Failed returns an empty optional result.
func Failed[T any]() Outcome[T] {
	return Outcome[T]{}
}

// Assembler builds page data from the providers.
type Assembler struct {
	provider         Provider
	fixtures         FixtureSource
	leagueID         string
	fixturesTimeout  time.Duration
	catalog          *catalog.Catalog
	guideConcurrency int
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithFixtures enables the home page sports fixtures for a league.
func WithFixtures(source FixtureSource, leagueID string) Option {
	return func(a *Assembler) {
		a.fixtures = source
		a.leagueID = leagueID
	}
}

// WithFixturesTimeout bounds how long the home page waits for fixtures.
func WithFixturesTimeout(d time.Duration) Option {
	return func(a *Assembler) {
		if d > 0 {
			a.fixturesTimeout = d
		}
	}
}

// WithCatalog replaces the embedded static catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(a *Assembler) {
		if c != nil {
			a.catalog = c
		}
	}
}

// WithGuideConcurrency bounds the per-genre guide requests in flight.
func WithGuideConcurrency(n int) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.guideConcurrency = n
		}
	}
}

// NewAssembler creates an Assembler over provider.
func NewAssembler(provider Provider, opts ...Option) *Assembler {
	a := &Assembler{
		provider:         provider,
		catalog:          catalog.Default(),
		guideConcurrency: defaultGuideConcurrency,
		fixturesTimeout:  defaultFixturesTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

