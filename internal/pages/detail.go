package pages

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/lepinkainen/movieway/internal/tmdb"
	"golang.org/x/sync/errgroup"
)

// Detail is the data of a movie or TV detail page.
type Detail struct {
	MediaType   string
	Details     *tmdb.Details
	Title       string
	Year        string
	Rating      string
	Runtime     string
	Genres      string
	Director    string
	Writer      string
	Cast        []tmdb.CastMember
	Trailer     *tmdb.Video
	Keywords    []tmdb.Keyword
	ExternalIDs tmdb.ExternalIDs
	Providers   tmdb.RegionProviders
}

// ParseID parses a route id. Anything but a positive integer is ErrNotFound.
func ParseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", ErrNotFound, raw)
	}
	return id, nil
}

// Detail fetches a title and its sub-resources concurrently. All six calls
// are required.
func (a *Assembler) Detail(ctx context.Context, mediaType, rawID string) (*Detail, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return nil, err
	}

	var (
		details   *tmdb.Details
		credits   *tmdb.Credits
		videos    []tmdb.Video
		keywords  []tmdb.Keyword
		external  *tmdb.ExternalIDs
		providers tmdb.RegionProviders
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		details, err = a.provider.Details(gctx, mediaType, id)
		return err
	})
	g.Go(func() (err error) {
		credits, err = a.provider.Credits(gctx, mediaType, id)
		return err
	})
	g.Go(func() (err error) {
		videos, err = a.provider.Videos(gctx, mediaType, id)
		return err
	})
	g.Go(func() (err error) {
		keywords, err = a.provider.Keywords(gctx, mediaType, id)
		return err
	})
	g.Go(func() (err error) {
		external, err = a.provider.ExternalIDs(gctx, mediaType, id)
		return err
	})
	g.Go(func() (err error) {
		providers, err = a.provider.WatchProviders(gctx, mediaType, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, notFound(err, mediaType, id)
	}

	page := &Detail{
		MediaType:   mediaType,
		Details:     details,
		Title:       details.DisplayTitle(),
		Year:        Year(details.Date()),
		Rating:      Rating(details.VoteAverage),
		Runtime:     Runtime(details.RuntimeMinutes()),
		Genres:      genreNames(details.Genres),
		Director:    crewByJob(credits.Crew, "Director"),
		Writer:      crewByJob(credits.Crew, "Writer", "Screenplay"),
		Cast:        credits.Cast,
		Keywords:    keywords,
		ExternalIDs: *external,
		Providers:   providers,
	}
	if len(page.Cast) > castSize {
		page.Cast = page.Cast[:castSize]
	}
	if trailer, ok := PickTrailer(videos); ok {
		page.Trailer = &trailer
	}
	return page, nil
}

func notFound(err error, mediaType string, id int) error {
	if errors.Is(err, tmdb.ErrNotFound) {
		return fmt.Errorf("%w: %s %d: %w", ErrNotFound, mediaType, id, err)
	}
	return err
}
