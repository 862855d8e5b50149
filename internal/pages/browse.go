package pages

import (
	"context"

	"github.com/lepinkainen/movieway/internal/catalog"
	"github.com/lepinkainen/movieway/internal/tmdb"
	"golang.org/x/sync/errgroup"
)

// Browse is the data of the genre-filtered /movies grid.
type Browse struct {
	MediaType  string
	GenreID    int
	GenreName  string
	Page       int
	TotalPages int
	Genres     []catalog.Genre
	Items      []Card
}

// NormalizeMediaType maps anything but "tv" to movie.
func NormalizeMediaType(raw string) string {
	if raw == tmdb.MediaTV {
		return tmdb.MediaTV
	}
	return tmdb.MediaMovie
}

// Browse lists one page of a media type, filtered by genre when genreID is
// positive and by popularity otherwise.
func (a *Assembler) Browse(ctx context.Context, mediaType string, genreID, page int) (*Browse, error) {
	mediaType = NormalizeMediaType(mediaType)
	if page < 1 {
		page = 1
	}
	if genreID < 0 {
		genreID = 0
	}

	var (
		result *tmdb.Page
		err    error
	)
	if genreID > 0 {
		result, err = a.provider.Discover(ctx, mediaType, tmdb.DiscoverOptions{GenreID: genreID, Page: page})
	} else {
		result, err = a.provider.List(ctx, mediaType, tmdb.ListPopular, page)
	}
	if err != nil {
		return nil, err
	}

	browse := &Browse{
		MediaType:  mediaType,
		GenreID:    genreID,
		Page:       page,
		TotalPages: result.TotalPages,
		Genres:     a.catalog.GenresFor(mediaType),
		Items:      cards(mediaType, result.Results, 0),
	}
	if name, ok := a.catalog.GenreName(mediaType, genreID); ok {
		browse.GenreName = name
	}
	return browse, nil
}

// Pair is a movie grid next to a TV grid.
type Pair struct {
	Movies []Card
	TV     []Card
}

// New returns movies now in cinemas and shows airing today.
func (a *Assembler) New(ctx context.Context) (*Pair, error) {
	return a.pair(ctx, tmdb.ListNowPlaying, tmdb.ListAiringToday)
}

// Popular returns popular movies and shows.
func (a *Assembler) Popular(ctx context.Context) (*Pair, error) {
	return a.pair(ctx, tmdb.ListPopular, tmdb.ListPopular)
}

func (a *Assembler) pair(ctx context.Context, movieList, tvList string) (*Pair, error) {
	var movies, tv *tmdb.Page

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		movies, err = a.provider.List(gctx, tmdb.MediaMovie, movieList, 1)
		return err
	})
	g.Go(func() (err error) {
		tv, err = a.provider.List(gctx, tmdb.MediaTV, tvList, 1)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Pair{
		Movies: cards(tmdb.MediaMovie, movies.Results, 0),
		TV:     cards(tmdb.MediaTV, tv.Results, 0),
	}, nil
}

// Lists returns the curated lists. It makes no provider calls.
func (a *Assembler) Lists() []catalog.List {
	return a.catalog.Lists
}
