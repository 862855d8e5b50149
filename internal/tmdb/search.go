package tmdb

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Lists served under /{media}/{list}.
const (
	ListPopular     = "popular"
	ListTopRated    = "top_rated"
	ListNowPlaying  = "now_playing"
	ListUpcoming    = "upcoming"
	ListAiringToday = "airing_today"
	ListOnTheAir    = "on_the_air"
)

var errEmptyQuery = errors.New("tmdb: empty search query")

// DiscoverOptions filters a discover request. Zero values are omitted.
type DiscoverOptions struct {
	GenreID      int
	Page         int
	SortBy       string
	MinVoteCount int
}

func validMediaType(mediaType string) error {
	if mediaType != MediaMovie && mediaType != MediaTV {
		return fmt.Errorf("%w: %q", ErrInvalidMediaType, mediaType)
	}
	return nil
}

func pageParams(page int) url.Values {
	params := url.Values{}
	if page < 1 {
		page = 1
	}
	params.Set("page", strconv.Itoa(page))
	return params
}

// List fetches a named list such as movie/popular or tv/airing_today.
func (c *Client) List(ctx context.Context, mediaType, list string, page int) (*Page, error) {
	if err := validMediaType(mediaType); err != nil {
		return nil, err
	}

	var response Page
	if err := c.getJSON(ctx, c.endpoint(mediaType+"/"+list, pageParams(page)), &response); err != nil {
		return nil, fmt.Errorf("tmdb %s/%s: %w", mediaType, list, err)
	}
	return &response, nil
}

// Discover runs a discover query.
func (c *Client) Discover(ctx context.Context, mediaType string, opts DiscoverOptions) (*Page, error) {
	if err := validMediaType(mediaType); err != nil {
		return nil, err
	}

	params := pageParams(opts.Page)
	if opts.GenreID > 0 {
		params.Set("with_genres", strconv.Itoa(opts.GenreID))
	}
	if opts.SortBy != "" {
		params.Set("sort_by", opts.SortBy)
	}
	if opts.MinVoteCount > 0 {
		params.Set("vote_count.gte", strconv.Itoa(opts.MinVoteCount))
	}

	var response Page
	if err := c.getJSON(ctx, c.endpoint("discover/"+mediaType, params), &response); err != nil {
		return nil, fmt.Errorf("tmdb discover/%s: %w", mediaType, err)
	}
	return &response, nil
}

// SearchMovies performs a movie search. Results are left in API order.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errEmptyQuery
	}

	params := pageParams(page)
	params.Set("query", query)
	params.Set("include_adult", "false")

	var response Page
	if err := c.getJSON(ctx, c.endpoint("search/movie", params), &response); err != nil {
		return nil, fmt.Errorf("tmdb search/movie: %w", err)
	}
	return &response, nil
}
