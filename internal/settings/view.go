package settings

import (
	"strconv"
	"strings"
)

const (
	defaultSiteTitle        = "Movieway"
	defaultSiteDescription  = "Yasal izleme platformlarındaki filmleri kolayca keşfedin."
	defaultMoviesPerSection = 6
	defaultBannerBackground = "#f0f0f0"
	defaultBannerRadius     = "8px"
)

// Banner is one ad placement. Enabled is the banner's own toggle; Visible
// also honours the ads master switch and requires a snippet.
type Banner struct {
	Enabled         bool
	Visible         bool
	Code            string
	Width           string
	Height          string
	BackgroundColor string
	BorderRadius    string
}

// View is the defaulted, typed projection of a Document used by templates.
type View struct {
	SiteTitle       string
	SiteDescription string

	AnnouncementEnabled  bool
	AnnouncementText     string
	AnnouncementAllPages bool

	MoviesPerSection int

	AdsEnabled    bool
	AdSenseCode   string
	TopBanner     Banner
	BottomBanner  Banner
	SidebarBanner Banner

	LastUpdated string
}

// ShowAdSense reports whether the AdSense snippet belongs in the page head.
func (v View) ShowAdSense() bool {
	return v.AdsEnabled && v.AdSenseCode != ""
}

// ShowAnnouncement reports whether the announcement bar belongs on the page.
func (v View) ShowAnnouncement(home bool) bool {
	if !v.AnnouncementEnabled || v.AnnouncementText == "" {
		return false
	}
	return home || v.AnnouncementAllPages
}

// ViewOf projects doc onto a View. Missing, empty or mistyped values take
// their defaults, so a nil document yields the default site.
func ViewOf(doc Document) View {
	site := section(doc, "site")
	announcement := section(doc, "announcement")
	homepage := section(doc, "homepage")
	ads := section(doc, "ads")
	advanced := section(doc, "advanced")

	// A missing master switch leaves the per-banner toggles in charge.
	adsEnabled := true
	if v, ok := ads["enabled"]; ok {
		adsEnabled = truthy(v)
	}

	perSection := intOr(homepage["moviesPerSection"], defaultMoviesPerSection)
	if perSection <= 0 {
		perSection = defaultMoviesPerSection
	}

	return View{
		SiteTitle:       stringOr(site["title"], defaultSiteTitle),
		SiteDescription: stringOr(site["description"], defaultSiteDescription),

		AnnouncementEnabled:  truthy(announcement["enabled"]),
		AnnouncementText:     stringOr(announcement["text"], ""),
		AnnouncementAllPages: truthy(announcement["showAllPages"]),

		MoviesPerSection: perSection,

		AdsEnabled:    adsEnabled,
		AdSenseCode:   stringOr(ads["adSenseCode"], ""),
		TopBanner:     banner(ads, "topBanner", adsEnabled, "", "90px"),
		BottomBanner:  banner(ads, "bottomBanner", adsEnabled, "", "120px"),
		SidebarBanner: banner(ads, "sidebarBanner", adsEnabled, "200px", "300px"),

		LastUpdated: stringOr(advanced["lastUpdated"], ""),
	}
}

func banner(ads map[string]any, name string, adsEnabled bool, width, height string) Banner {
	b := section(ads, name)
	enabled := truthy(b["enabled"])
	code := stringOr(b["code"], "")
	return Banner{
		Enabled:         enabled,
		Visible:         adsEnabled && enabled && code != "",
		Code:            code,
		Width:           stringOr(b["width"], width),
		Height:          stringOr(b["height"], height),
		BackgroundColor: stringOr(b["backgroundColor"], defaultBannerBackground),
		BorderRadius:    stringOr(b["borderRadius"], defaultBannerRadius),
	}
}

func section(m map[string]any, name string) map[string]any {
	if m == nil {
		return nil
	}
	s, _ := m[name].(map[string]any)
	return s
}

func stringOr(v any, def string) string {
	s, ok := v.(string)
	if !ok || s == "" {
		return def
	}
	return s
}

// truthy accepts booleans and the string forms the admin form posts.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "on", "1", "yes":
			return true
		}
	case float64:
		return t != 0
	}
	return false
}

func intOr(v any, def int) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n
		}
	}
	return def
}
