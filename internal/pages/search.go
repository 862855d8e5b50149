package pages

import (
	"context"
	"strings"

	"github.com/lepinkainen/movieway/internal/tmdb"
)

// Search is the data of the search page. Result is nil for an empty query
// or when nothing matched.
type Search struct {
	Query     string
	Result    *Card
	Others    []Card
	Providers tmdb.RegionProviders
}

// Searched reports whether a query was submitted.
func (s *Search) Searched() bool {
	return s.Query != ""
}

// Search looks up movies and fetches the watch providers of the first hit.
func (a *Assembler) Search(ctx context.Context, query string) (*Search, error) {
	query = strings.TrimSpace(query)
	page := &Search{Query: query}
	if query == "" {
		return page, nil
	}

	results, err := a.provider.SearchMovies(ctx, query, 1)
	if err != nil {
		return nil, err
	}
	if len(results.Results) == 0 {
		return page, nil
	}

	first := results.Results[0]
	providers, err := a.provider.WatchProviders(ctx, tmdb.MediaMovie, first.ID)
	if err != nil {
		return nil, err
	}

	hit := cardOf(tmdb.MediaMovie, first)
	page.Result = &hit
	page.Others = cards(tmdb.MediaMovie, results.Results[1:], defaultSectionSize)
	page.Providers = providers
	return page, nil
}
