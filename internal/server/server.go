// Package server wires the HTTP routes of the site and the admin API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lepinkainen/movieway/internal/history"
	"github.com/lepinkainen/movieway/internal/pages"
	"github.com/lepinkainen/movieway/internal/render"
	"github.com/lepinkainen/movieway/internal/settings"
)

const shutdownTimeout = 10 * time.Second

// HistoryLister lists recorded settings revisions.
type HistoryLister interface {
	List(ctx context.Context, limit int) ([]history.Revision, error)
}

// Deps are the collaborators the router needs. History may be nil.
type Deps struct {
	Settings       *settings.Store
	History        HistoryLister
	Pages          *pages.Assembler
	Renderer       *render.Renderer
	Admin          Credentials
	PublicDir      string
	AllowedOrigins []string
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(), SecurityHeaders())

	publicHandler := NewPublicHandler(deps.Pages, deps.Settings, deps.Renderer, deps.PublicDir)
	adminHandler := NewAdminHandler(deps.Settings, deps.History, deps.Renderer, deps.Admin)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Site pages
	r.GET("/", publicHandler.Home)
	r.GET("/movie/:id", publicHandler.Movie)
	r.GET("/tv/:id", publicHandler.TV)
	r.GET("/search", publicHandler.Search)
	r.GET("/movies", publicHandler.Browse)
	r.GET("/yeni", publicHandler.New)
	r.GET("/populer", publicHandler.Popular)
	r.GET("/guide", publicHandler.Guide)
	r.GET("/lists", publicHandler.Lists)
	r.GET("/admin", adminHandler.Panel)

	// Settings API
	api := r.Group("/api")
	if len(deps.AllowedOrigins) > 0 {
		api.Use(cors.New(cors.Config{
			AllowOrigins: deps.AllowedOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}))
		api.OPTIONS("/*path", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	}
	admin := api.Group("/admin", AdminAuth(deps.Admin))
	{
		admin.GET("/settings", adminHandler.GetSettings)
		admin.POST("/settings", adminHandler.SaveSettings)
		admin.GET("/settings/history", adminHandler.History)
		admin.POST("/settings/:section", adminHandler.PatchSection)
	}

	r.NoRoute(publicHandler.Static)

	return r
}

// Run serves handler on addr until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
