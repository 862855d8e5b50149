package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/movieway/internal/config"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"
)

// CLI represents the complete command structure for the movieway application
type CLI struct {
	// Global flags
	LogLevel     string `help:"Log level (debug, info, warn, error)"`
	SettingsFile string `help:"Path to the admin settings JSON file"`
	HistoryDB    string `help:"Path to the settings history SQLite file"`

	Serve    ServeCmd    `cmd:"" help:"Run the movieway web server"`
	Settings SettingsCmd `cmd:"" help:"Inspect and edit the admin settings"`
}

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string]string{
	"tmdb.api_key":     "TMDB_API_KEY",
	"sportsdb.api_key": "SPORTSDB_API_KEY",
	"admin.username":   "ADMIN_USERNAME",
	"admin.password":   "ADMIN_PASSWORD",
	"server.addr":      "MOVIEWAY_ADDR",
	"log.level":        "LOG_LEVEL",
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging("info")
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("movieway"),
		kong.Description("Movie and TV discovery site over TMDB with an admin settings panel."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)
	initLogging(viper.GetString("log.level"))

	if err := ctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	config.SetDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			slog.Error("Failed to bind environment variable", "key", key, "error", err)
		}
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Debug("Config file not found, using defaults and environment")
			return
		}
		slog.Error("Fatal error config file", "error", err)
		os.Exit(1)
	}
}

func updateGlobalConfig(cli *CLI) {
	if cli.LogLevel != "" {
		viper.Set("log.level", cli.LogLevel)
	}
	if cli.SettingsFile != "" {
		viper.Set("settings.file", cli.SettingsFile)
	}
	if cli.HistoryDB != "" {
		viper.Set("history.dbfile", cli.HistoryDB)
	}
	if cli.Serve.Addr != "" {
		viper.Set("server.addr", cli.Serve.Addr)
	}
	if cli.Serve.PublicDir != "" {
		viper.Set("server.public_dir", cli.Serve.PublicDir)
	}
}

func initLogging(level string) {
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: parseLevel(level),
	})

	slog.SetDefault(slog.New(handler))
}

// parseLevel maps a level name to slog, defaulting to info.
func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}
