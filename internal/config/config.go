package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Location sources accepted by LOCATION_SOURCE.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	ServerAddress    string `mapstructure:"SERVER_ADDRESS"`
	DBSource         string `mapstructure:"DB_SOURCE"`
	LocationsFile    string `mapstructure:"LOCATIONS_FILE"`
	GestationalFile  string `mapstructure:"GESTATIONAL_FILE"`
	StateAbbrevsFile string `mapstructure:"STATE_ABBREVS_FILE"`
	FileEncoding     string `mapstructure:"FILE_ENCODING"`
	CityTopN         int    `mapstructure:"CITY_TOP_N"`
	StrictJoin       bool   `mapstructure:"STRICT_JOIN"`
	LocationSource   string `mapstructure:"LOCATION_SOURCE"`
	LogLevel         string `mapstructure:"LOG_LEVEL"`
}

var defaults = map[string]any{
	"SERVER_ADDRESS":     "0.0.0.0:8080",
	"DB_SOURCE":          "",
	"LOCATIONS_FILE":     "data/locations.json",
	"GESTATIONAL_FILE":   "data/gestational_limits.json",
	"STATE_ABBREVS_FILE": "data/state_abbrevs.csv",
	"FILE_ENCODING":      "utf-8",
	"CITY_TOP_N":         20,
	"STRICT_JOIN":        false,
	"LOCATION_SOURCE":    SourceFile,
	"LOG_LEVEL":          "info",
}

// LoadConfig reads app.env from path, then lets .env and the process
// environment override it. A missing app.env is not an error.
func LoadConfig(path string) (Config, error) {
	var config Config

	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: failed to read config: %w", err)
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: failed to decode config: %w", err)
	}

	config.LocationSource = strings.ToLower(strings.TrimSpace(config.LocationSource))
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// Validate checks the values that would otherwise fail late at request time.
func (c Config) Validate() error {
	if c.CityTopN <= 0 {
		return fmt.Errorf("config: CITY_TOP_N must be positive, got %d", c.CityTopN)
	}

	switch c.LocationSource {
	case SourceFile:
	case SourcePostgres:
		if c.DBSource == "" {
			return fmt.Errorf("config: DB_SOURCE is required when LOCATION_SOURCE is %q", SourcePostgres)
		}
	default:
		return fmt.Errorf("config: unknown LOCATION_SOURCE %q", c.LocationSource)
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: invalid LOG_LEVEL: %w", err)
	}
	return nil
}

// Level returns the configured zerolog level, defaulting to info.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
