package tmdb

import (
	"context"
	"fmt"
)

// Genres fetches the official genre list for a media type.
func (c *Client) Genres(ctx context.Context, mediaType string) ([]Genre, error) {
	if err := validMediaType(mediaType); err != nil {
		return nil, err
	}

	var response struct {
		Genres []Genre `json:"genres"`
	}
	if err := c.getJSON(ctx, c.endpoint("genre/"+mediaType+"/list", nil), &response); err != nil {
		return nil, fmt.Errorf("tmdb genre/%s/list: %w", mediaType, err)
	}
	return response.Genres, nil
}
