// Package config exposes the viper-backed runtime configuration.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config is the resolved runtime configuration.
type Config struct {
	ListenAddr     string
	PublicDir      string
	AllowedOrigins []string
	SiteURL        string

	SettingsFile  string
	HistoryDBFile string

	TMDBAPIKey        string
	TMDBBaseURL       string
	TMDBImageBaseURL  string
	TMDBLanguage      string
	TMDBRegion        string
	TMDBRatePerSecond int
	TMDBRetries       int
	TMDBTimeout       time.Duration

	SportsDBAPIKey   string
	SportsDBBaseURL  string
	SportsDBLeagueID string

	AdminUsername string
	AdminPassword string

	LogLevel string
}

// SetDefaults registers the default value of every configuration key.
func SetDefaults() {
	viper.SetDefault("server.addr", ":3000")
	viper.SetDefault("server.public_dir", "./public")
	viper.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})
	viper.SetDefault("site.url", "https://movieway.com")

	viper.SetDefault("settings.file", "./admin-settings.json")
	viper.SetDefault("history.dbfile", "")

	viper.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	viper.SetDefault("tmdb.image_base_url", "https://image.tmdb.org/t/p")
	viper.SetDefault("tmdb.language", "tr-TR")
	viper.SetDefault("tmdb.region", "TR")
	viper.SetDefault("tmdb.rate_per_second", 20)
	viper.SetDefault("tmdb.retries", 1)
	viper.SetDefault("tmdb.timeout", "10s")

	// TheSportsDB public test key and the Turkish Super Lig.
	viper.SetDefault("sportsdb.api_key", "123")
	viper.SetDefault("sportsdb.base_url", "https://www.thesportsdb.com/api/v1/json")
	viper.SetDefault("sportsdb.league_id", "4406")

	viper.SetDefault("admin.username", "admin")
	viper.SetDefault("admin.password", "movieway2024")

	viper.SetDefault("log.level", "info")
}

// Load reads the current viper state into a Config.
func Load() Config {
	timeout := viper.GetDuration("tmdb.timeout")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return Config{
		ListenAddr:     viper.GetString("server.addr"),
		PublicDir:      viper.GetString("server.public_dir"),
		AllowedOrigins: viper.GetStringSlice("server.allowed_origins"),
		SiteURL:        viper.GetString("site.url"),

		SettingsFile:  viper.GetString("settings.file"),
		HistoryDBFile: viper.GetString("history.dbfile"),

		TMDBAPIKey:        viper.GetString("tmdb.api_key"),
		TMDBBaseURL:       viper.GetString("tmdb.base_url"),
		TMDBImageBaseURL:  viper.GetString("tmdb.image_base_url"),
		TMDBLanguage:      viper.GetString("tmdb.language"),
		TMDBRegion:        viper.GetString("tmdb.region"),
		TMDBRatePerSecond: viper.GetInt("tmdb.rate_per_second"),
		TMDBRetries:       viper.GetInt("tmdb.retries"),
		TMDBTimeout:       timeout,

		SportsDBAPIKey:   viper.GetString("sportsdb.api_key"),
		SportsDBBaseURL:  viper.GetString("sportsdb.base_url"),
		SportsDBLeagueID: viper.GetString("sportsdb.league_id"),

		AdminUsername: viper.GetString("admin.username"),
		AdminPassword: viper.GetString("admin.password"),

		LogLevel: viper.GetString("log.level"),
	}
}
