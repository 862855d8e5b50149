// Package render turns page data into complete HTML documents using the
// embedded html/template set.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/lepinkainen/movieway/internal/settings"
	"github.com/lepinkainen/movieway/internal/tmdb"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page template names.
const (
	PageHome     = "home"
	PageDetail   = "detail"
	PageSearch   = "search"
	PageBrowse   = "browse"
	PagePair     = "pair"
	PageGuide    = "guide"
	PageLists    = "lists"
	PageNotFound = "notfound"
	PageError    = "error"
	PageAdmin    = "admin"
	PageLogin    = "login"
)

var (
	sitePages  = []string{PageHome, PageDetail, PageSearch, PageBrowse, PagePair, PageGuide, PageLists, PageNotFound, PageError}
	adminPages = []string{PageAdmin, PageLogin}
)

const defaultHeroImage = "/8YFL5QQVPy3AgrEQxNYVSgiPEbe.jpg"

// Page is what every template receives: head metadata, the site settings
// view and the page specific data.
type Page struct {
	Title       string
	Description string
	Path        string
	Image       string
	Home        bool
	Site        settings.View
	Data        any
}

// Options configures a Renderer.
type Options struct {
	ImageBaseURL string
	SiteURL      string
}

// Renderer executes page templates.
type Renderer struct {
	pages        map[string]*template.Template
	imageBaseURL string
	siteURL      string
}

// New parses every embedded template.
func New(opts Options) (*Renderer, error) {
	r := &Renderer{
		pages:        make(map[string]*template.Template),
		imageBaseURL: opts.ImageBaseURL,
		siteURL:      strings.TrimSuffix(opts.SiteURL, "/"),
	}
	if r.imageBaseURL == "" {
		r.imageBaseURL = "https://image.tmdb.org/t/p"
	}

	for _, name := range sitePages {
		if err := r.parse(name, "templates/layout.html", "templates/partials.html", "templates/"+name+".html"); err != nil {
			return nil, err
		}
	}
	for _, name := range adminPages {
		if err := r.parse(name, "templates/admin_layout.html", "templates/"+name+".html"); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Renderer) parse(name string, files ...string) error {
	tmpl, err := template.New(name).Funcs(r.funcs()).ParseFS(templateFS, files...)
	if err != nil {
		return fmt.Errorf("failed to parse %s template: %w", name, err)
	}
	r.pages[name] = tmpl
	return nil
}

// Render writes the named page. Output is buffered so a failing template
// never leaves a partial document.
func (r *Renderer) Render(w io.Writer, name string, page Page) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page template %q", name)
	}
	if page.Title == "" {
		page.Title = page.Site.SiteTitle
	}
	if page.Description == "" {
		page.Description = page.Site.SiteDescription
	}
	if page.Image == "" {
		page.Image = "/favicon.ico"
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"img": func(size, path string) string {
			return tmdb.ImageURL(r.imageBaseURL, size, path)
		},
		"heroImage": func(path string) string {
			if path == "" {
				path = defaultHeroImage
			}
			return tmdb.ImageURL(r.imageBaseURL, tmdb.SizeOriginal, path)
		},
		"canonical": func(path string) string {
			return r.siteURL + path
		},
		// Banner and announcement snippets are admin authored HTML.
		"trusted": func(s string) template.HTML {
			return template.HTML(s)
		},
		"money": func(v int64) string {
			if v <= 0 {
				return "-"
			}
			return "$" + humanize.Comma(v)
		},
		"dash": func(s string) string {
			if s == "" {
				return "-"
			}
			return s
		},
		"add": func(a, b int) int { return a + b },
		"dict": dict,
	}
}

func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict: odd number of arguments")
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}

// Admin is the data of the admin panel. The credentials are echoed back so
// the panel script can call the settings API.
type Admin struct {
	Username string
	Password string
}

// ImageURL builds a CDN URL with the renderer's image base.
func (r *Renderer) ImageURL(size, path string) string {
	return tmdb.ImageURL(r.imageBaseURL, size, path)
}
