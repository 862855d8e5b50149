package tmdb

import "strings"

// Image sizes used by the site.
const (
	SizeThumb    = "w92"
	SizeSmall    = "w300"
	SizePoster   = "w500"
	SizeLogo     = "w45"
	SizeProfile  = "w185"
	SizeOriginal = "original"
)

// ImageURL builds a CDN URL for an image path. An empty path yields "".
func (c *Client) ImageURL(size, path string) string {
	return ImageURL(c.imageBaseURL, size, path)
}

// ImageURL joins base, size and path.
func ImageURL(base, size, path string) string {
	if path == "" {
		return ""
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimSuffix(base, "/") + "/" + size + path
}
