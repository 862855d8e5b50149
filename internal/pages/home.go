package pages

import (
	"context"
	"log/slog"

	"github.com/lepinkainen/movieway/internal/catalog"
	"github.com/lepinkainen/movieway/internal/sportsdb"
	"github.com/lepinkainen/movieway/internal/tmdb"
	"golang.org/x/sync/errgroup"
)

// Trailer is one entry of the home page trailer carousel.
type Trailer struct {
	MovieID    int
	MovieTitle string
	ImagePath  string
	Key        string
	Name       string
}

// Home is the data of the landing page.
type Home struct {
	Hero           *Card
	PopularMovies  []Card
	PopularTV      []Card
	AiringToday    []Card
	NowPlaying     []Card
	OnTheAir       []Card
	TopRatedMovies []Card
	TopRatedTV     []Card
	Trailers       []Trailer
	Fixtures       []sportsdb.Event
	Platforms      []catalog.Platform
}

type listRequest struct {
	mediaType string
	list      string
	target    *[]tmdb.Media
}

// Home fetches the seven home lists concurrently. Any list failing fails the
// page. Trailers and fixtures are optional and come back empty on failure.
func (a *Assembler) Home(ctx context.Context, moviesPerSection int) (*Home, error) {
	if moviesPerSection <= 0 {
		moviesPerSection = defaultMoviesPerSection
	}

	var (
		popularMovies, popularTV, airingToday, nowPlaying []tmdb.Media
		onTheAir, topRatedMovies, topRatedTV              []tmdb.Media
		trailers                                          Outcome[[]Trailer]
		fixtures                                          Outcome[[]sportsdb.Event]
	)

	requests := []listRequest{
		{tmdb.MediaMovie, tmdb.ListPopular, &popularMovies},
		{tmdb.MediaTV, tmdb.ListPopular, &popularTV},
		{tmdb.MediaTV, tmdb.ListAiringToday, &airingToday},
		{tmdb.MediaMovie, tmdb.ListNowPlaying, &nowPlaying},
		{tmdb.MediaTV, tmdb.ListOnTheAir, &onTheAir},
		{tmdb.MediaMovie, tmdb.ListTopRated, &topRatedMovies},
		{tmdb.MediaTV, tmdb.ListTopRated, &topRatedTV},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, req := range requests {
		g.Go(func() error {
			page, err := a.provider.List(gctx, req.mediaType, req.list, 1)
			if err != nil {
				return err
			}
			*req.target = page.Results
			return nil
		})
	}
	g.Go(func() error {
		trailers = a.trailers(gctx)
		return nil
	})
	g.Go(func() error {
		fixtures = a.upcomingFixtures(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	home := &Home{
		PopularMovies:  cards(tmdb.MediaMovie, popularMovies, moviesPerSection),
		PopularTV:      cards(tmdb.MediaTV, popularTV, defaultSectionSize),
		AiringToday:    cards(tmdb.MediaTV, airingToday, defaultSectionSize),
		NowPlaying:     cards(tmdb.MediaMovie, nowPlaying, defaultSectionSize),
		OnTheAir:       cards(tmdb.MediaTV, onTheAir, defaultSectionSize),
		TopRatedMovies: cards(tmdb.MediaMovie, topRatedMovies, defaultSectionSize),
		TopRatedTV:     cards(tmdb.MediaTV, topRatedTV, defaultSectionSize),
		Trailers:       trailers.Value,
		Fixtures:       fixtures.Value,
		Platforms:      a.catalog.Platforms.Home,
	}
	if best, ok := HighestRated(topRatedMovies); ok {
		hero := cardOf(tmdb.MediaMovie, best)
		home.Hero = &hero
	}

	return home, nil
}

// trailers picks a trailer for each of the first upcoming movies. Any failed
// request drops the whole carousel.
func (a *Assembler) trailers(ctx context.Context) Outcome[[]Trailer] {
	upcoming, err := a.provider.List(ctx, tmdb.MediaMovie, tmdb.ListUpcoming, 1)
	if err != nil {
		slog.Debug("Trailer enrichment skipped", "error", err)
		return Failed[[]Trailer]()
	}

	movies := upcoming.Results
	if len(movies) > trailerCandidates {
		movies = movies[:trailerCandidates]
	}

	videos := make([][]tmdb.Video, len(movies))
	g, gctx := errgroup.WithContext(ctx)
	for i, movie := range movies {
		g.Go(func() error {
			v, err := a.provider.Videos(gctx, tmdb.MediaMovie, movie.ID)
			if err != nil {
				return err
			}
			videos[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		slog.Debug("Trailer enrichment skipped", "error", err)
		return Failed[[]Trailer]()
	}

	result := make([]Trailer, 0, len(movies))
	for i, movie := range movies {
		video, ok := PickTrailer(videos[i])
		if !ok {
			continue
		}
		image := movie.BackdropPath
		if image == "" {
			image = movie.PosterPath
		}
		result = append(result, Trailer{
			MovieID:    movie.ID,
			MovieTitle: movie.DisplayTitle(),
			ImagePath:  image,
			Key:        video.Key,
			Name:       video.Name,
		})
	}
	return Succeeded(result)
}

func (a *Assembler) upcomingFixtures(ctx context.Context) Outcome[[]sportsdb.Event] {
	if a.fixtures == nil || a.leagueID == "" {
		return Failed[[]sportsdb.Event]()
	}
	ctx, cancel := context.WithTimeout(ctx, a.fixturesTimeout)
	defer cancel()

	events, err := a.fixtures.NextLeagueEvents(ctx, a.leagueID)
	if err != nil {
		slog.Debug("Sports fixtures skipped", "league", a.leagueID, "error", err)
		return Failed[[]sportsdb.Event]()
	}
	return Succeeded(events)
}
