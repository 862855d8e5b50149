package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/lepinkainen/movieway/internal/catalog"
	"github.com/lepinkainen/movieway/internal/pages"
	"github.com/lepinkainen/movieway/internal/settings"
	"github.com/lepinkainen/movieway/internal/sportsdb"
	"github.com/lepinkainen/movieway/internal/tmdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(Options{ImageBaseURL: "https://img.test/t/p", SiteURL: "https://movieway.test/"})
	require.NoError(t, err)
	return r
}

func renderDoc(t *testing.T, name string, page Page) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, newRenderer(t).Render(&buf, name, page))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestNewParsesEveryPage(t *testing.T) {
	r := newRenderer(t)
	for _, name := range append(append([]string{}, sitePages...), adminPages...) {
		assert.Contains(t, r.pages, name)
	}
}

func TestRenderUnknownPage(t *testing.T) {
	var buf bytes.Buffer
	err := newRenderer(t).Render(&buf, "missing", Page{})
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestRenderHeadDefaults(t *testing.T) {
	doc := renderDoc(t, PageLists, Page{Path: "/lists", Site: settings.ViewOf(nil), Data: catalog.Default().Lists})

	assert.Equal(t, "Movieway", doc.Find("title").Text())
	content, _ := doc.Find(`meta[property="og:url"]`).Attr("content")
	assert.Equal(t, "https://movieway.test/lists", content)
	assert.Equal(t, 10, doc.Find(".mw-list").Length())
	src, _ := doc.Find(".mw-list img").First().Attr("src")
	assert.Equal(t, "https://img.test/t/p/w500/8YFL5QQVPy3AgrEQxNYVSgiPEbe.jpg", src)
}

func TestAnnouncementPlacement(t *testing.T) {
	homeOnly := settings.ViewOf(settings.Document{
		"announcement": map[string]any{"enabled": true, "text": "Yeni sezon!"},
	})
	allPages := settings.ViewOf(settings.Document{
		"announcement": map[string]any{"enabled": true, "text": "Yeni sezon!", "showAllPages": true},
	})

	tests := []struct {
		name string
		view settings.View
		home bool
		want bool
	}{
		{"home page", homeOnly, true, true},
		{"inner page", homeOnly, false, false},
		{"inner page with show all", allPages, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := renderDoc(t, PageNotFound, Page{Site: tt.view, Home: tt.home})
			assert.Equal(t, tt.want, doc.Find("#announcement").Length() == 1)
		})
	}
}

func TestBannersFollowSettings(t *testing.T) {
	view := settings.ViewOf(settings.Document{
		"ads": map[string]any{
			"topBanner":    map[string]any{"enabled": true, "code": `<div class="ad-slot">top</div>`, "height": "100px"},
			"bottomBanner": map[string]any{"enabled": false, "code": `<div class="ad-slot">bottom</div>`},
		},
	})

	doc := renderDoc(t, PageNotFound, Page{Site: view})

	top := doc.Find("#top-banner")
	require.Equal(t, 1, top.Length())
	assert.Equal(t, "top", top.Find(".ad-slot").Text())
	style, _ := top.Attr("style")
	assert.Contains(t, style, "height:100px")
	assert.Contains(t, style, "#f0f0f0")
	assert.Equal(t, 0, doc.Find("#bottom-banner").Length())

	view.AdsEnabled = false
	view.TopBanner.Visible = false
	doc = renderDoc(t, PageNotFound, Page{Site: view})
	assert.Equal(t, 0, doc.Find(".mw-banner").Length())
}

func TestRenderHome(t *testing.T) {
	home := &pages.Home{
		Hero:           &pages.Card{ID: 278, MediaType: "movie", Title: "Esaretin Bedeli", Rating: "8.7", BackdropPath: "/hero.jpg"},
		PopularMovies:  []pages.Card{{ID: 1, MediaType: "movie", Title: "Dune", Year: "2021", Rating: "7.8", PosterPath: "/dune.jpg"}},
		PopularTV:      []pages.Card{{ID: 2, MediaType: "tv", Title: "Dark"}},
		Trailers:       []pages.Trailer{{MovieID: 40, MovieTitle: "Soon", Key: "abc", ImagePath: "/soon.jpg"}},
		Fixtures:       []sportsdb.Event{{HomeTeam: "Galatasaray", AwayTeam: "Fenerbahce", Date: "2024-05-19"}},
		Platforms:      catalog.Default().Platforms.Home,
		TopRatedMovies: nil,
	}

	doc := renderDoc(t, PageHome, Page{Home: true, Site: settings.ViewOf(nil), Data: home})

	style, _ := doc.Find("#hero").Attr("style")
	assert.Contains(t, style, "https://img.test/t/p/original/hero.jpg")
	assert.Equal(t, "Esaretin Bedeli", doc.Find("#highest-rated h2").Text())

	card := doc.Find("#popular-movies .mw-card")
	require.Equal(t, 1, card.Length())
	href, _ := card.Attr("href")
	assert.Equal(t, "/movie/1", href)
	assert.Equal(t, "2021", card.Find(".mw-year").Text())

	tvHref, _ := doc.Find("#popular-tv .mw-card").Attr("href")
	assert.Equal(t, "/tv/2", tvHref)

	trailerHref, _ := doc.Find("#trailers .mw-trailer").Attr("href")
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", trailerHref)
	assert.Contains(t, doc.Find("#fixtures").Text(), "Galatasaray - Fenerbahce")
	assert.Equal(t, 8, doc.Find(".jw-platform-logo-item").Length())
	assert.Equal(t, 1, doc.Find("#top-rated-movies .mw-empty").Length())
}

func TestRenderHomeEmptyCarouselAndNoHero(t *testing.T) {
	doc := renderDoc(t, PageHome, Page{Home: true, Site: settings.ViewOf(nil), Data: &pages.Home{}})

	assert.Equal(t, 0, doc.Find(".mw-trailer").Length())
	assert.Equal(t, 1, doc.Find("#trailers .mw-empty").Length())
	assert.Equal(t, 0, doc.Find("#highest-rated").Length())
	assert.Equal(t, 0, doc.Find("#fixtures").Length())
	style, _ := doc.Find("#hero").Attr("style")
	assert.Contains(t, style, defaultHeroImage)
}

func TestRenderDetail(t *testing.T) {
	rating := 8.4
	detail := &pages.Detail{
		MediaType: "movie",
		Details: &tmdb.Details{
			Media:  tmdb.Media{ID: 550, Title: "Fight Club", VoteAverage: &rating},
			Budget: 63000000,
		},
		Title:       "Fight Club",
		Year:        "1999",
		Rating:      "8.4",
		Runtime:     "2 sa 19 dk",
		Genres:      "Dram",
		Director:    "David Fincher",
		Cast:        []tmdb.CastMember{{Name: "Edward Norton", Character: "Narrator"}},
		Trailer:     &tmdb.Video{Key: "xyz", Name: "Fragman"},
		Keywords:    []tmdb.Keyword{{Name: "dual identity"}},
		ExternalIDs: tmdb.ExternalIDs{IMDBID: "tt0137523"},
		Providers:   tmdb.RegionProviders{Flatrate: []tmdb.Provider{{Name: "Netflix", LogoPath: "/n.jpg"}}},
	}

	doc := renderDoc(t, PageDetail, Page{Site: settings.ViewOf(nil), Data: detail})

	assert.Contains(t, doc.Find("h1").Text(), "Fight Club")
	assert.Equal(t, "2 sa 19 dk", doc.Find(".mw-runtime").Text())
	assert.Equal(t, "David Fincher", doc.Find(".mw-director").Text())
	assert.Equal(t, "-", doc.Find(".mw-writer").Text())
	assert.Contains(t, doc.Find(".mw-money").Text(), "$63,000,000")
	assert.Contains(t, doc.Find(".mw-money").Text(), "Hasılat: -")
	imdb, _ := doc.Find(`.mw-links a`).Attr("href")
	assert.Equal(t, "https://www.imdb.com/title/tt0137523", imdb)
	logo, _ := doc.Find(".mw-provider").Attr("src")
	assert.Equal(t, "https://img.test/t/p/w45/n.jpg", logo)
	assert.Equal(t, 1, doc.Find(".mw-actor").Length())
	assert.Equal(t, 1, doc.Find(".mw-trailer-link").Length())
}

func TestRenderSearchStates(t *testing.T) {
	form := renderDoc(t, PageSearch, Page{Site: settings.ViewOf(nil), Data: &pages.Search{}})
	assert.Equal(t, 1, form.Find(".mw-hint").Length())

	empty := renderDoc(t, PageSearch, Page{Site: settings.ViewOf(nil), Data: &pages.Search{Query: "zzz"}})
	assert.Contains(t, empty.Find(".mw-no-results").Text(), "zzz")

	hit := renderDoc(t, PageSearch, Page{Site: settings.ViewOf(nil), Data: &pages.Search{
		Query:  "matrix",
		Result: &pages.Card{ID: 603, MediaType: "movie", Title: "Matrix"},
	}})
	href, _ := hit.Find(".mw-search-hit h1 a").Attr("href")
	assert.Equal(t, "/movie/603", href)
	assert.Equal(t, 1, hit.Find(".mw-providers .mw-empty").Length())
}

func TestRenderBrowseChipsAndPager(t *testing.T) {
	browse := &pages.Browse{
		MediaType:  "tv",
		GenreID:    18,
		GenreName:  "Dram",
		Page:       2,
		TotalPages: 3,
		Genres:     catalog.Default().TVGenres,
		Items:      []pages.Card{{ID: 1396, MediaType: "tv", Title: "Breaking Bad", Year: "2008"}},
	}

	doc := renderDoc(t, PageBrowse, Page{Site: settings.ViewOf(nil), Data: browse})

	active := doc.Find(".mw-chip.active")
	require.Equal(t, 1, active.Length())
	assert.Equal(t, "Dram", active.Text())
	prev, _ := doc.Find(".mw-prev").Attr("href")
	next, _ := doc.Find(".mw-next").Attr("href")
	assert.Equal(t, "/movies?type=tv&genre=18&page=1", prev)
	assert.Equal(t, "/movies?type=tv&genre=18&page=3", next)
	assert.True(t, strings.Contains(doc.Find("h1").Text(), "Tüm Diziler"))
}

func TestRenderGuide(t *testing.T) {
	guide := &pages.Guide{
		Platforms: catalog.Default().Platforms.Guide,
		Genres: []pages.GuideGenre{
			{Genre: tmdb.Genre{ID: 28, Name: "Aksiyon"}, Top: []pages.Card{{ID: 1, Title: "One", Rating: "8.1"}}},
			{Genre: tmdb.Genre{ID: 18, Name: "Dram"}},
		},
	}

	doc := renderDoc(t, PageGuide, Page{Site: settings.ViewOf(nil), Data: guide})

	assert.Equal(t, 7, doc.Find(".mw-platform").Length())
	assert.Equal(t, 2, doc.Find(".mw-guide-genre").Length())
	assert.Equal(t, "Aksiyon", doc.Find(".mw-guide-genre summary").First().Text())
	assert.Equal(t, 1, doc.Find(`.mw-guide-genre[data-genre="18"] .mw-empty`).Length())
}

func TestRenderAdminAndLogin(t *testing.T) {
	view := settings.ViewOf(settings.Document{
		"site":     map[string]any{"title": "Sinema"},
		"ads":      map[string]any{"enabled": false, "topBanner": map[string]any{"enabled": true}},
		"advanced": map[string]any{"lastUpdated": "2024-05-01T12:00:00.000Z"},
	})

	admin := renderDoc(t, PageAdmin, Page{Title: "Admin", Site: view, Data: Admin{Username: "admin", Password: "secret"}})
	assert.Equal(t, 4, admin.Find("form.mw-settings").Length())
	assert.Equal(t, "2024-05-01T12:00:00.000Z", admin.Find("#last-updated").Text())
	title, _ := admin.Find(`form[data-section="site"] input[name="title"]`).Attr("value")
	assert.Equal(t, "Sinema", title)
	_, topChecked := admin.Find(`input[name="topBanner.enabled"]`).Attr("checked")
	assert.True(t, topChecked)
	_, adsChecked := admin.Find(`form[data-section="ads"] input[name="enabled"]`).Attr("checked")
	assert.False(t, adsChecked)
	user, _ := admin.Find(".mw-admin-panel").Attr("data-username")
	assert.Equal(t, "admin", user)

	login := renderDoc(t, PageLogin, Page{Title: "Admin Girişi", Site: view})
	assert.Equal(t, 1, login.Find("#login-form").Length())
	assert.Equal(t, 0, login.Find(".mw-admin-panel").Length())
}
