package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewOfNilDocumentUsesDefaults(t *testing.T) {
	v := ViewOf(nil)

	assert.Equal(t, "Movieway", v.SiteTitle)
	assert.Equal(t, defaultSiteDescription, v.SiteDescription)
	assert.Equal(t, 6, v.MoviesPerSection)
	assert.False(t, v.AnnouncementEnabled)
	assert.False(t, v.TopBanner.Enabled)
	assert.Equal(t, "90px", v.TopBanner.Height)
	assert.Equal(t, "120px", v.BottomBanner.Height)
	assert.Equal(t, "200px", v.SidebarBanner.Width)
	assert.Equal(t, "300px", v.SidebarBanner.Height)
	assert.Equal(t, "#f0f0f0", v.BottomBanner.BackgroundColor)
	assert.Equal(t, "8px", v.SidebarBanner.BorderRadius)
	assert.Empty(t, v.LastUpdated)
}

func TestViewOfReadsDocument(t *testing.T) {
	doc := Document{
		"site":         map[string]any{"title": "Sinema", "description": ""},
		"announcement": map[string]any{"enabled": "on", "text": "Merhaba"},
		"homepage":     map[string]any{"moviesPerSection": "10"},
		"ads": map[string]any{
			"topBanner":    map[string]any{"enabled": true, "code": "<div>ad</div>", "height": "100px"},
			"bottomBanner": map[string]any{"enabled": false, "code": "<div>b</div>"},
		},
		"advanced": map[string]any{"lastUpdated": "2024-05-01T12:00:00.000Z"},
	}

	v := ViewOf(doc)

	assert.Equal(t, "Sinema", v.SiteTitle)
	assert.Equal(t, defaultSiteDescription, v.SiteDescription, "empty strings fall back")
	assert.True(t, v.AnnouncementEnabled)
	assert.Equal(t, "Merhaba", v.AnnouncementText)
	assert.Equal(t, 10, v.MoviesPerSection)
	assert.True(t, v.TopBanner.Enabled)
	assert.True(t, v.TopBanner.Visible)
	assert.Equal(t, "<div>ad</div>", v.TopBanner.Code)
	assert.Equal(t, "100px", v.TopBanner.Height)
	assert.False(t, v.BottomBanner.Enabled)
	assert.False(t, v.BottomBanner.Visible)
	assert.True(t, v.AdsEnabled)
	assert.Equal(t, "2024-05-01T12:00:00.000Z", v.LastUpdated)
}

func TestViewOfAdsMasterSwitch(t *testing.T) {
	doc := Document{
		"ads": map[string]any{
			"enabled":   false,
			"topBanner": map[string]any{"enabled": true, "code": "x"},
		},
	}

	v := ViewOf(doc)
	assert.True(t, v.TopBanner.Enabled)
	assert.False(t, v.TopBanner.Visible)
	assert.False(t, v.AdsEnabled)
}

func TestViewOfAdSenseCode(t *testing.T) {
	on := Document{"ads": map[string]any{"adSenseCode": "<script>ads</script>"}}
	off := Document{"ads": map[string]any{"enabled": false, "adSenseCode": "<script>ads</script>"}}

	assert.True(t, ViewOf(on).ShowAdSense())
	assert.False(t, ViewOf(off).ShowAdSense())
	assert.Equal(t, "<script>ads</script>", ViewOf(off).AdSenseCode)
}

func TestViewOfIgnoresBadMoviesPerSection(t *testing.T) {
	for _, value := range []any{float64(0), float64(-2), "abc", true} {
		v := ViewOf(Document{"homepage": map[string]any{"moviesPerSection": value}})
		assert.Equal(t, 6, v.MoviesPerSection, "value %v", value)
	}
}

func TestShowAnnouncement(t *testing.T) {
	testCases := []struct {
		name string
		view View
		home bool
		want bool
	}{
		{name: "disabled", view: View{AnnouncementText: "x"}, home: true, want: false},
		{name: "empty text", view: View{AnnouncementEnabled: true}, home: true, want: false},
		{name: "home page", view: View{AnnouncementEnabled: true, AnnouncementText: "x"}, home: true, want: true},
		{name: "other page", view: View{AnnouncementEnabled: true, AnnouncementText: "x"}, home: false, want: false},
		{name: "all pages", view: View{AnnouncementEnabled: true, AnnouncementText: "x", AnnouncementAllPages: true}, home: false, want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.view.ShowAnnouncement(tc.home))
		})
	}
}
