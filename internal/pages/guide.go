package pages

import (
	"context"

	"github.com/lepinkainen/movieway/internal/catalog"
	"github.com/lepinkainen/movieway/internal/tmdb"
	"golang.org/x/sync/errgroup"
)

// GuideGenre is a genre with its best rated movies.
type GuideGenre struct {
	Genre tmdb.Genre
	Top   []Card
}

// Guide is the data of the platforms and genres guide.
type Guide struct {
	Platforms []catalog.Platform
	Genres    []GuideGenre
}

// Guide fetches the movie genres and, for each, the top rated movies with
// enough votes. Per-genre requests run with bounded concurrency and keep the
// genre order.
func (a *Assembler) Guide(ctx context.Context) (*Guide, error) {
	genres, err := a.provider.Genres(ctx, tmdb.MediaMovie)
	if err != nil {
		return nil, err
	}

	result := make([]GuideGenre, len(genres))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.guideConcurrency)
	for i, genre := range genres {
		g.Go(func() error {
			page, err := a.provider.Discover(gctx, tmdb.MediaMovie, tmdb.DiscoverOptions{
				GenreID:      genre.ID,
				SortBy:       "vote_average.desc",
				MinVoteCount: guideMinVoteCount,
			})
			if err != nil {
				return err
			}
			result[i] = GuideGenre{Genre: genre, Top: cards(tmdb.MediaMovie, page.Results, guideTopPerGenre)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Guide{Platforms: a.catalog.Platforms.Guide, Genres: result}, nil
}
