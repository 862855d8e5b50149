package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadDefaults(t *testing.T) {
	resetViper(t)
	SetDefaults()

	cfg := Load()

	assert.Equal(t, ":3000", cfg.ListenAddr)
	assert.Equal(t, "./admin-settings.json", cfg.SettingsFile)
	assert.Equal(t, "tr-TR", cfg.TMDBLanguage)
	assert.Equal(t, "TR", cfg.TMDBRegion)
	assert.Equal(t, 1, cfg.TMDBRetries)
	assert.Equal(t, 10*time.Second, cfg.TMDBTimeout)
	assert.Equal(t, "4406", cfg.SportsDBLeagueID)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, "movieway2024", cfg.AdminPassword)
	assert.Empty(t, cfg.HistoryDBFile)
}

func TestLoadOverrides(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value any
		check func(t *testing.T, cfg Config)
	}{
		{
			name:  "listen address",
			key:   "server.addr",
			value: ":8080",
			check: func(t *testing.T, cfg Config) { assert.Equal(t, ":8080", cfg.ListenAddr) },
		},
		{
			name:  "tmdb timeout",
			key:   "tmdb.timeout",
			value: "3s",
			check: func(t *testing.T, cfg Config) { assert.Equal(t, 3*time.Second, cfg.TMDBTimeout) },
		},
		{
			name:  "invalid timeout falls back",
			key:   "tmdb.timeout",
			value: "-1s",
			check: func(t *testing.T, cfg Config) { assert.Equal(t, 10*time.Second, cfg.TMDBTimeout) },
		},
		{
			name:  "admin password",
			key:   "admin.password",
			value: "hunter2",
			check: func(t *testing.T, cfg Config) { assert.Equal(t, "hunter2", cfg.AdminPassword) },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resetViper(t)
			SetDefaults()
			viper.Set(tc.key, tc.value)

			tc.check(t, Load())
		})
	}
}
