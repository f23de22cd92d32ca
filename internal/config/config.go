// Package config loads cmsdash settings from defaults, an optional .env
// file, an optional config.yaml and CMSDASH_* environment variables, in
// increasing order of precedence.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. CMSDASH_DB_PATH.
	EnvPrefix = "CMSDASH"

	// DataDir is created under the user's home directory.
	DataDir = ".cmsdash"
)

// Config is the resolved application configuration.
type Config struct {
	DBPath    string
	LogLevel  string
	LogFormat string
	Calendar  CalendarConfig
}

// CalendarConfig controls agenda aggregation.
type CalendarConfig struct {
	ICSSources  []string
	Timezone    string
	HorizonDays int
}

// LoadOptions points Load at non-default files. Empty fields use
// <home>/.cmsdash/config.yaml and ./.env.
type LoadOptions struct {
	HomeDir    string
	ConfigFile string
	EnvFile    string
}

// Load resolves the configuration.
func Load(opts LoadOptions) (*Config, error) {
	home := opts.HomeDir
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		home = h
	}

	// load .env if it exists (ignore if it does not)
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking %s: %w", envFile, err)
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("db_path", filepath.Join(home, DataDir, "cmsdash.db"))
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("calendar.ics_sources", []string{})
	v.SetDefault("calendar.timezone", "UTC")
	v.SetDefault("calendar.horizon_days", 30)

	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = filepath.Join(home, DataDir, "config.yaml")
	}
	if _, err := os.Stat(configFile); err == nil {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", configFile, err)
		}
	} else if opts.ConfigFile != "" {
		return nil, fmt.Errorf("config file %s: %w", configFile, err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		DBPath:    v.GetString("db_path"),
		LogLevel:  strings.ToLower(v.GetString("log_level")),
		LogFormat: strings.ToLower(v.GetString("log_format")),
		Calendar: CalendarConfig{
			ICSSources:  v.GetStringSlice("calendar.ics_sources"),
			Timezone:    v.GetString("calendar.timezone"),
			HorizonDays: v.GetInt("calendar.horizon_days"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	if _, err := time.LoadLocation(c.Calendar.Timezone); err != nil {
		return fmt.Errorf("calendar.timezone: %w", err)
	}
	if c.Calendar.HorizonDays <= 0 {
		return fmt.Errorf("calendar.horizon_days must be positive, got %d", c.Calendar.HorizonDays)
	}
	return nil
}

// Location returns the configured calendar time zone. Load has already
// checked that it resolves.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Calendar.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// NewLogger builds the slog logger described by the config.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := parseLevel(c.LogLevel)
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log_level %q", s)
	}
}
