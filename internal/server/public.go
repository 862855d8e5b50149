package server

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lepinkainen/movieway/internal/pages"
	"github.com/lepinkainen/movieway/internal/render"
	"github.com/lepinkainen/movieway/internal/settings"
	"github.com/lepinkainen/movieway/internal/tmdb"
)

// PublicHandler serves the site pages.
type PublicHandler struct {
	pages     *pages.Assembler
	settings  *settings.Store
	renderer  *render.Renderer
	publicDir string
}

// NewPublicHandler creates a handler for the site pages.
func NewPublicHandler(assembler *pages.Assembler, store *settings.Store, renderer *render.Renderer, publicDir string) *PublicHandler {
	return &PublicHandler{
		pages:     assembler,
		settings:  store,
		renderer:  renderer,
		publicDir: publicDir,
	}
}

// Home renders the landing page.
func (h *PublicHandler) Home(c *gin.Context) {
	site := siteView(h.settings)
	home, err := h.pages.Home(c.Request.Context(), site.MoviesPerSection)
	if err != nil {
		h.fail(c, site, err)
		return
	}

	page := render.Page{
		Title:       site.SiteTitle + " - Yasal İzleme Platformları Film Rehberi",
		Description: site.SiteDescription,
		Path:        "/",
		Home:        true,
		Site:        site,
		Data:        home,
	}
	if home.Hero != nil && home.Hero.BackdropPath != "" {
		page.Image = h.renderer.ImageURL(tmdb.SizeOriginal, home.Hero.BackdropPath)
	}
	h.render(c, http.StatusOK, render.PageHome, page)
}

// Movie renders a movie detail page.
func (h *PublicHandler) Movie(c *gin.Context) {
	h.detail(c, tmdb.MediaMovie)
}

// TV renders a TV show detail page.
func (h *PublicHandler) TV(c *gin.Context) {
	h.detail(c, tmdb.MediaTV)
}

func (h *PublicHandler) detail(c *gin.Context, mediaType string) {
	site := siteView(h.settings)
	detail, err := h.pages.Detail(c.Request.Context(), mediaType, c.Param("id"))
	if err != nil {
		h.fail(c, site, err)
		return
	}

	page := render.Page{
		Title:       fmt.Sprintf("%s - %s", detail.Title, site.SiteTitle),
		Description: detail.Details.Overview,
		Path:        fmt.Sprintf("/%s/%d", mediaType, detail.Details.ID),
		Site:        site,
		Data:        detail,
	}
	if detail.Details.PosterPath != "" {
		page.Image = h.renderer.ImageURL(tmdb.SizePoster, detail.Details.PosterPath)
	}
	h.render(c, http.StatusOK, render.PageDetail, page)
}

// Search renders the movie search form and its result.
func (h *PublicHandler) Search(c *gin.Context) {
	site := siteView(h.settings)
	result, err := h.pages.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		h.fail(c, site, err)
		return
	}

	h.render(c, http.StatusOK, render.PageSearch, render.Page{
		Title: "Arama Sonucu - " + site.SiteTitle,
		Path:  "/search",
		Site:  site,
		Data:  result,
	})
}

// Browse renders the genre filtered /movies grid.
func (h *PublicHandler) Browse(c *gin.Context) {
	site := siteView(h.settings)
	genreID, _ := strconv.Atoi(c.Query("genre"))
	pageNum, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	browse, err := h.pages.Browse(c.Request.Context(), c.Query("type"), genreID, pageNum)
	if err != nil {
		h.fail(c, site, err)
		return
	}

	heading := "Tüm Filmler"
	if browse.MediaType == tmdb.MediaTV {
		heading = "Tüm Diziler"
	}
	h.render(c, http.StatusOK, render.PageBrowse, render.Page{
		Title: heading + " - " + site.SiteTitle,
		Path:  "/movies",
		Site:  site,
		Data:  browse,
	})
}

// New renders the now playing and airing today page.
func (h *PublicHandler) New(c *gin.Context) {
	site := siteView(h.settings)
	pair, err := h.pages.New(c.Request.Context())
	if err != nil {
		h.fail(c, site, err)
		return
	}
	h.render(c, http.StatusOK, render.PagePair, render.Page{
		Title: "Yeni Çıkanlar - " + site.SiteTitle,
		Path:  "/yeni",
		Site:  site,
		Data:  pair,
	})
}

// Popular renders the popular movies and shows page.
func (h *PublicHandler) Popular(c *gin.Context) {
	site := siteView(h.settings)
	pair, err := h.pages.Popular(c.Request.Context())
	if err != nil {
		h.fail(c, site, err)
		return
	}
	h.render(c, http.StatusOK, render.PagePair, render.Page{
		Title: "Popüler - " + site.SiteTitle,
		Path:  "/populer",
		Site:  site,
		Data:  pair,
	})
}

// Guide renders the per genre top rated guide.
func (h *PublicHandler) Guide(c *gin.Context) {
	site := siteView(h.settings)
	guide, err := h.pages.Guide(c.Request.Context())
	if err != nil {
		h.fail(c, site, err)
		return
	}
	h.render(c, http.StatusOK, render.PageGuide, render.Page{
		Title: "Guide - " + site.SiteTitle,
		Path:  "/guide",
		Site:  site,
		Data:  guide,
	})
}

// Lists renders the curated catalog lists.
func (h *PublicHandler) Lists(c *gin.Context) {
	site := siteView(h.settings)
	h.render(c, http.StatusOK, render.PageLists, render.Page{
		Title: "Listeler - " + site.SiteTitle,
		Path:  "/lists",
		Site:  site,
		Data:  h.pages.Lists(),
	})
}

// Static serves files from the public directory and falls back to the
// not found page.
func (h *PublicHandler) Static(c *gin.Context) {
	method := c.Request.Method
	if h.publicDir != "" && (method == http.MethodGet || method == http.MethodHead) {
		fs := gin.Dir(h.publicDir, false)
		name := path.Clean("/" + c.Request.URL.Path)
		if f, err := fs.Open(name); err == nil {
			stat, statErr := f.Stat()
			_ = f.Close()
			if statErr == nil && !stat.IsDir() {
				c.FileFromFS(name, fs)
				return
			}
		}
	}

	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bulunamadı"})
		return
	}
	h.notFound(c, siteView(h.settings))
}

func (h *PublicHandler) notFound(c *gin.Context, site settings.View) {
	h.render(c, http.StatusNotFound, render.PageNotFound, render.Page{
		Title: "Sayfa bulunamadı - " + site.SiteTitle,
		Path:  c.Request.URL.Path,
		Site:  site,
	})
}

// fail maps an assembly error to the not found or the generic error page.
func (h *PublicHandler) fail(c *gin.Context, site settings.View, err error) {
	if errors.Is(err, pages.ErrNotFound) {
		h.notFound(c, site)
		return
	}

	slog.Error("Failed to assemble page", "path", c.Request.URL.Path, "error", err)
	h.render(c, http.StatusInternalServerError, render.PageError, render.Page{
		Title: "Hata - " + site.SiteTitle,
		Path:  c.Request.URL.Path,
		Site:  site,
	})
}

func (h *PublicHandler) render(c *gin.Context, status int, name string, page render.Page) {
	writeHTML(c, h.renderer, status, name, page)
}

// writeHTML sets the status only after the template has executed.
func writeHTML(c *gin.Context, renderer *render.Renderer, status int, name string, page render.Page) {
	var buf bytes.Buffer
	if err := renderer.Render(&buf, name, page); err != nil {
		slog.Error("Failed to render page", "page", name, "error", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// siteView reads the settings document for one request. A read failure
// falls back to the defaults.
func siteView(store *settings.Store) settings.View {
	doc, err := store.Read()
	if err != nil {
		slog.Debug("Using default settings", "error", err)
		return settings.ViewOf(nil)
	}
	return settings.ViewOf(doc)
}
