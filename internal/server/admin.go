package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lepinkainen/movieway/internal/history"
	"github.com/lepinkainen/movieway/internal/render"
	"github.com/lepinkainen/movieway/internal/settings"
)

// AdminHandler serves the admin panel and the settings API.
type AdminHandler struct {
	settings *settings.Store
	history  HistoryLister
	renderer *render.Renderer
	creds    Credentials
}

// NewAdminHandler creates a handler for the admin panel and API. history may
// be nil.
func NewAdminHandler(store *settings.Store, hist HistoryLister, renderer *render.Renderer, creds Credentials) *AdminHandler {
	return &AdminHandler{
		settings: store,
		history:  hist,
		renderer: renderer,
		creds:    creds,
	}
}

// Panel renders the admin panel for a matching credential pair and the login
// form for anything else.
func (h *AdminHandler) Panel(c *gin.Context) {
	site := siteView(h.settings)
	username := c.Query("username")
	password := c.Query("password")

	if !h.creds.Match(username, password) {
		writeHTML(c, h.renderer, http.StatusOK, render.PageLogin, render.Page{
			Title: "Admin Girişi - " + site.SiteTitle,
			Path:  "/admin",
			Site:  site,
		})
		return
	}

	writeHTML(c, h.renderer, http.StatusOK, render.PageAdmin, render.Page{
		Title: "Admin Panel - " + site.SiteTitle,
		Path:  "/admin",
		Site:  site,
		Data:  render.Admin{Username: username, Password: password},
	})
}

// GetSettings returns the raw settings document.
func (h *AdminHandler) GetSettings(c *gin.Context) {
	doc, err := h.settings.Read()
	if err != nil {
		slog.Warn("Failed to read settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ayarlar okunamadı"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// SaveSettings replaces the whole settings document.
func (h *AdminHandler) SaveSettings(c *gin.Context) {
	var doc settings.Document
	if err := c.ShouldBindJSON(&doc); err != nil || doc == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Geçersiz JSON"})
		return
	}

	if err := h.settings.WriteFull(c.Request.Context(), doc); err != nil {
		slog.Error("Failed to save settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ayarlar kaydedilemedi"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Ayarlar kaydedildi"})
}

// PatchSection merges the request body into one settings section.
func (h *AdminHandler) PatchSection(c *gin.Context) {
	section := c.Param("section")

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil || fields == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Geçersiz JSON"})
		return
	}

	err := h.settings.PatchSection(c.Request.Context(), section, fields)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true, "message": section + " ayarları kaydedildi"})
	case errors.Is(err, settings.ErrInvalidSection):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Geçersiz bölüm"})
	case errors.Is(err, settings.ErrNotFound):
		slog.Warn("Failed to read settings for patch", "section", section, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ayarlar okunamadı"})
	default:
		slog.Error("Failed to save settings section", "section", section, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ayarlar kaydedilemedi"})
	}
}

// History lists recorded settings revisions, newest first.
func (h *AdminHandler) History(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Ayar geçmişi devre dışı"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(history.DefaultListLimit)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Geçersiz limit"})
		return
	}

	revisions, err := h.history.List(c.Request.Context(), limit)
	if err != nil {
		slog.Error("Failed to list settings history", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ayar geçmişi okunamadı"})
		return
	}
	if revisions == nil {
		revisions = []history.Revision{}
	}

	c.JSON(http.StatusOK, gin.H{"revisions": revisions})
}
