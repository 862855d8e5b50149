package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/lepinkainen/movieway/internal/catalog"
	"github.com/lepinkainen/movieway/internal/config"
	"github.com/lepinkainen/movieway/internal/fileutil"
	"github.com/lepinkainen/movieway/internal/history"
	"github.com/lepinkainen/movieway/internal/pages"
	"github.com/lepinkainen/movieway/internal/ratelimit"
	"github.com/lepinkainen/movieway/internal/render"
	"github.com/lepinkainen/movieway/internal/server"
	"github.com/lepinkainen/movieway/internal/settings"
	"github.com/lepinkainen/movieway/internal/sportsdb"
	"github.com/lepinkainen/movieway/internal/tmdb"
)

var runServer = server.Run

// ServeCmd represents the serve command
type ServeCmd struct {
	Addr      string `help:"Listen address (default :3000)"`
	PublicDir string `help:"Directory of static files served for unknown paths"`
}

func (s *ServeCmd) Run() error {
	cfg := config.Load()

	handler, cleanup, err := buildHandler(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runServer(ctx, cfg.ListenAddr, handler)
}

// buildHandler wires every collaborator of the router from cfg.
func buildHandler(cfg config.Config) (http.Handler, func(), error) {
	store, hist, err := openSettings(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if hist != nil {
			if err := hist.Close(); err != nil {
				slog.Warn("Failed to close history database", "error", err)
			}
		}
	}

	if err := seedSettings(store); err != nil {
		cleanup()
		return nil, nil, err
	}

	if cfg.TMDBAPIKey == "" {
		slog.Warn("TMDB API key is not set, provider requests will fail (set TMDB_API_KEY)")
	}
	provider := tmdb.NewClient(cfg.TMDBAPIKey,
		tmdb.WithBaseURL(cfg.TMDBBaseURL),
		tmdb.WithImageBaseURL(cfg.TMDBImageBaseURL),
		tmdb.WithLanguage(cfg.TMDBLanguage),
		tmdb.WithRegion(cfg.TMDBRegion),
		tmdb.WithTimeout(cfg.TMDBTimeout),
		tmdb.WithRetryAttempts(cfg.TMDBRetries),
		tmdb.WithRateLimiter(ratelimit.New("TMDB", cfg.TMDBRatePerSecond)),
	)
	fixtures := sportsdb.NewClient(cfg.SportsDBAPIKey, sportsdb.WithBaseURL(cfg.SportsDBBaseURL))

	renderer, err := render.New(render.Options{
		ImageBaseURL: cfg.TMDBImageBaseURL,
		SiteURL:      cfg.SiteURL,
	})
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	deps := server.Deps{
		Settings: store,
		Pages: pages.NewAssembler(provider,
			pages.WithCatalog(catalog.Default()),
			pages.WithFixtures(fixtures, cfg.SportsDBLeagueID),
		),
		Renderer:       renderer,
		Admin:          server.Credentials{Username: cfg.AdminUsername, Password: cfg.AdminPassword},
		PublicDir:      cfg.PublicDir,
		AllowedOrigins: cfg.AllowedOrigins,
	}
	if hist != nil {
		deps.History = hist
	}

	return server.NewRouter(deps), cleanup, nil
}

// openSettings opens the settings store and, when configured, the revision
// history it records into.
func openSettings(cfg config.Config) (*settings.Store, *history.SQLiteStore, error) {
	if cfg.HistoryDBFile == "" {
		return settings.NewStore(cfg.SettingsFile), nil, nil
	}

	hist, err := history.Open(cfg.HistoryDBFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open settings history: %w", err)
	}
	return settings.NewStore(cfg.SettingsFile, settings.WithRecorder(hist)), hist, nil
}

// seedSettings writes the default document when no settings file exists yet.
// An existing but unreadable file is left alone.
func seedSettings(store *settings.Store) error {
	if fileutil.FileExists(store.Path()) {
		return nil
	}
	slog.Info("Settings file not found, writing defaults", "path", store.Path())
	if err := store.WriteFull(context.Background(), settings.DefaultDocument()); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}
	return nil
}
