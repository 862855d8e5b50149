package tmdb

import (
	"context"
	"fmt"
)

func resourcePath(mediaType string, id int, sub string) (string, error) {
	if err := validMediaType(mediaType); err != nil {
		return "", err
	}
	if sub == "" {
		return fmt.Sprintf("%s/%d", mediaType, id), nil
	}
	return fmt.Sprintf("%s/%d/%s", mediaType, id, sub), nil
}

func (c *Client) getResource(ctx context.Context, mediaType string, id int, sub string, target any) error {
	path, err := resourcePath(mediaType, id, sub)
	if err != nil {
		return err
	}
	if err := c.getJSON(ctx, c.endpoint(path, nil), target); err != nil {
		return fmt.Errorf("tmdb %s: %w", path, err)
	}
	return nil
}

// Details fetches the full record of a movie or TV show.
func (c *Client) Details(ctx context.Context, mediaType string, id int) (*Details, error) {
	var details Details
	if err := c.getResource(ctx, mediaType, id, "", &details); err != nil {
		return nil, err
	}
	details.MediaType = mediaType
	return &details, nil
}

// Credits fetches cast and crew.
func (c *Client) Credits(ctx context.Context, mediaType string, id int) (*Credits, error) {
	var credits Credits
	if err := c.getResource(ctx, mediaType, id, "credits", &credits); err != nil {
		return nil, err
	}
	return &credits, nil
}

// Videos fetches trailers and other clips.
func (c *Client) Videos(ctx context.Context, mediaType string, id int) ([]Video, error) {
	var response struct {
		Results []Video `json:"results"`
	}
	if err := c.getResource(ctx, mediaType, id, "videos", &response); err != nil {
		return nil, err
	}
	return response.Results, nil
}

// Keywords fetches keywords. Movies return them under "keywords", TV shows
// under "results".
func (c *Client) Keywords(ctx context.Context, mediaType string, id int) ([]Keyword, error) {
	var response struct {
		Keywords []Keyword `json:"keywords"`
		Results  []Keyword `json:"results"`
	}
	if err := c.getResource(ctx, mediaType, id, "keywords", &response); err != nil {
		return nil, err
	}
	if len(response.Keywords) > 0 {
		return response.Keywords, nil
	}
	return response.Results, nil
}

// ExternalIDs fetches IMDb and social ids.
func (c *Client) ExternalIDs(ctx context.Context, mediaType string, id int) (*ExternalIDs, error) {
	var ids ExternalIDs
	if err := c.getResource(ctx, mediaType, id, "external_ids", &ids); err != nil {
		return nil, err
	}
	return &ids, nil
}

// WatchProviders fetches the services offering the title in the client's
// region. A region with no entry yields an empty RegionProviders.
func (c *Client) WatchProviders(ctx context.Context, mediaType string, id int) (RegionProviders, error) {
	var response struct {
		Results map[string]RegionProviders `json:"results"`
	}
	if err := c.getResource(ctx, mediaType, id, "watch/providers", &response); err != nil {
		return RegionProviders{}, err
	}
	return response.Results[c.region], nil
}
