package pages

import (
	"fmt"
	"strings"

	"github.com/lepinkainen/movieway/internal/tmdb"
)

// Card is the display shape of one list entry.
type Card struct {
	ID           int
	MediaType    string
	Title        string
	Year         string
	Rating       string
	Overview     string
	PosterPath   string
	BackdropPath string
}

func cardOf(mediaType string, m tmdb.Media) Card {
	if m.MediaType != "" {
		mediaType = m.MediaType
	}
	return Card{
		ID:           m.ID,
		MediaType:    mediaType,
		Title:        m.DisplayTitle(),
		Year:         Year(m.Date()),
		Rating:       Rating(m.VoteAverage),
		Overview:     m.Overview,
		PosterPath:   m.PosterPath,
		BackdropPath: m.BackdropPath,
	}
}

// cards converts at most limit entries. A non-positive limit keeps all.
func cards(mediaType string, list []tmdb.Media, limit int) []Card {
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	out := make([]Card, 0, len(list))
	for _, m := range list {
		out = append(out, cardOf(mediaType, m))
	}
	return out
}

// HighestRated returns the entry with the greatest rating. An absent rating
// counts as 0 and ties keep the first occurrence. ok is false when no entry
// rates above 0.
func HighestRated(list []tmdb.Media) (tmdb.Media, bool) {
	best := -1
	bestRating := 0.0
	for i, m := range list {
		if r := m.Rating(); r > bestRating {
			best, bestRating = i, r
		}
	}
	if best < 0 {
		return tmdb.Media{}, false
	}
	return list[best], true
}

// PickTrailer prefers an official YouTube trailer, then any YouTube trailer,
// then any YouTube video.
func PickTrailer(videos []tmdb.Video) (tmdb.Video, bool) {
	matchers := []func(tmdb.Video) bool{
		func(v tmdb.Video) bool { return v.Site == "YouTube" && v.Type == "Trailer" && v.Official },
		func(v tmdb.Video) bool { return v.Site == "YouTube" && v.Type == "Trailer" },
		func(v tmdb.Video) bool { return v.Site == "YouTube" },
	}
	for _, match := range matchers {
		for _, v := range videos {
			if match(v) {
				return v, true
			}
		}
	}
	return tmdb.Video{}, false
}

// Year returns the first four characters of a date.
func Year(date string) string {
	runes := []rune(date)
	if len(runes) > 4 {
		return string(runes[:4])
	}
	return date
}

// Rating formats a rating with one decimal. Absent or zero renders "-".
func Rating(r *float64) string {
	if r == nil || *r == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", *r)
}

// Runtime formats minutes as "2 sa 19 dk". Zero renders "".
func Runtime(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	return fmt.Sprintf("%d sa %d dk", minutes/60, minutes%60)
}

func genreNames(genres []tmdb.Genre) string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}

func crewByJob(crew []tmdb.CrewMember, jobs ...string) string {
	for _, c := range crew {
		for _, job := range jobs {
			if c.Job == job {
				return c.Name
			}
		}
	}
	return ""
}
