package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))
	return dir
}

func TestLoadConfig(t *testing.T) {
	dir := writeEnv(t, `
SERVER_ADDRESS=127.0.0.1:9000
LOCATIONS_FILE=/data/locations.json
CITY_TOP_N=25
STRICT_JOIN=true
LOG_LEVEL=debug
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.ServerAddress)
	assert.Equal(t, "/data/locations.json", cfg.LocationsFile)
	assert.Equal(t, 25, cfg.CityTopN)
	assert.True(t, cfg.StrictJoin)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())

	// untouched keys keep their defaults
	assert.Equal(t, "utf-8", cfg.FileEncoding)
	assert.Equal(t, "data/gestational_limits.json", cfg.GestationalFile)
	assert.Equal(t, SourceFile, cfg.LocationSource)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.ServerAddress)
	assert.Equal(t, 20, cfg.CityTopN)
	assert.False(t, cfg.StrictJoin)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	dir := writeEnv(t, "CITY_TOP_N=25\n")
	t.Setenv("CITY_TOP_N", "5")
	t.Setenv("LOCATION_SOURCE", "Postgres")
	t.Setenv("DB_SOURCE", "postgres://localhost/clinics")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.CityTopN)
	assert.Equal(t, SourcePostgres, cfg.LocationSource)
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{CityTopN: 20, LocationSource: SourceFile, LogLevel: "info"}

	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "zero top n", mutate: func(c *Config) { c.CityTopN = 0 }, expectError: true},
		{name: "unknown source", mutate: func(c *Config) { c.LocationSource = "s3" }, expectError: true},
		{name: "postgres without dsn", mutate: func(c *Config) { c.LocationSource = SourcePostgres }, expectError: true},
		{name: "postgres with dsn", mutate: func(c *Config) {
			c.LocationSource = SourcePostgres
			c.DBSource = "postgres://localhost/clinics"
		}},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
