// Package catalog holds the static data shipped with the site: genre filter
// chips, curated lists and streaming platform logos.
package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Genre is a TMDB genre id with its display name.
type Genre struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

// List is a curated list shown on /lists. Image is a TMDB image path.
type List struct {
	Title string `yaml:"title"`
	Count int    `yaml:"count"`
	Image string `yaml:"image"`
}

// Platform is a streaming service logo served from the public directory.
type Platform struct {
	Name  string `yaml:"name"`
	Logo  string `yaml:"logo"`
	Boxed bool   `yaml:"boxed"`
}

// Catalog is the parsed catalog.yaml.
type Catalog struct {
	MovieGenres []Genre `yaml:"movie_genres"`
	TVGenres    []Genre `yaml:"tv_genres"`
	Lists       []List  `yaml:"lists"`
	Platforms   struct {
		Home  []Platform `yaml:"home"`
		Guide []Platform `yaml:"guide"`
	} `yaml:"platforms"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Parse decodes a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return &c, nil
}

// Default returns the embedded catalog. It panics if the embedded file is
// malformed, which the package tests guard against.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(catalogYAML)
		if err != nil {
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// GenresFor returns the filter genres for a media type ("tv" or anything else
// for movies).
func (c *Catalog) GenresFor(mediaType string) []Genre {
	if mediaType == "tv" {
		return c.TVGenres
	}
	return c.MovieGenres
}

// GenreName looks up a genre name for the media type.
func (c *Catalog) GenreName(mediaType string, id int) (string, bool) {
	for _, g := range c.GenresFor(mediaType) {
		if g.ID == id {
			return g.Name, true
		}
	}
	return "", false
}
