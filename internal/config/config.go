// ABOUTME: Centralized configuration for the talk recommender
// ABOUTME: Loads an optional TOML file, then environment variables, then validates
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/harper/talk-recommender/internal/storage/sqlite"
	"github.com/pelletier/go-toml/v2"
)

// MaxCount bounds every configured result count
const MaxCount = 1000

// Config holds all configuration for the recommender
type Config struct {
	// Corpus settings
	TranscriptsPath string `toml:"transcripts"`
	MetadataPath    string `toml:"metadata"`
	DBPath          string `toml:"db"`
	Source          string `toml:"source"`
	Duplicates      string `toml:"duplicates"`

	// Query settings
	DefaultCount int `toml:"default_count"`
	ExploreCount int `toml:"explore_count"`

	// Logging settings
	LogFormat string `toml:"log_format"`
	LogLevel  string `toml:"log_level"`

	// File is the config file that was read, empty when none existed
	File string `toml:"-"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		TranscriptsPath: "data/transcripts.csv",
		MetadataPath:    "data/ted_main.csv",
		DBPath:          sqlite.DefaultDBPath(),
		Source:          "csv",
		Duplicates:      "reject",
		DefaultCount:    5,
		ExploreCount:    10,
		LogFormat:       "console",
		LogLevel:        "info",
	}
}

// Load reads configuration from the file named by TALKS_CONFIG (or the
// default location) and environment variables
func Load() (*Config, error) {
	return LoadFrom(os.Getenv("TALKS_CONFIG"))
}

// LoadFrom reads configuration from path, falling back to DefaultConfigPath
// when path is empty. A missing default file is not an error; a missing
// explicit file is.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if err := cfg.decodeFile(path, explicit); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	return cfg, cfg.Validate()
}

func (c *Config) decodeFile(path string, required bool) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := toml.NewDecoder(file).DisallowUnknownFields().Decode(c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	c.File = path
	return nil
}

func (c *Config) applyEnv() {
	c.TranscriptsPath = getEnv("TALKS_TRANSCRIPTS", c.TranscriptsPath)
	c.MetadataPath = getEnv("TALKS_METADATA", c.MetadataPath)
	c.DBPath = getEnv("TALKS_DB", c.DBPath)
	c.Source = strings.ToLower(getEnv("TALKS_SOURCE", c.Source))
	c.Duplicates = strings.ToLower(getEnv("TALKS_DUPLICATES", c.Duplicates))
	c.DefaultCount = getEnvInt("TALKS_DEFAULT_COUNT", c.DefaultCount)
	c.ExploreCount = getEnvInt("TALKS_EXPLORE_COUNT", c.ExploreCount)
	c.LogFormat = strings.ToLower(getEnv("TALKS_LOG_FORMAT", c.LogFormat))
	c.LogLevel = strings.ToLower(getEnv("TALKS_LOG_LEVEL", c.LogLevel))
}

func (c *Config) Validate() error {
	if c.DefaultCount < 0 || c.DefaultCount > MaxCount {
		return fmt.Errorf("TALKS_DEFAULT_COUNT must be 0-%d, got %d", MaxCount, c.DefaultCount)
	}
	if c.ExploreCount < 0 || c.ExploreCount > MaxCount {
		return fmt.Errorf("TALKS_EXPLORE_COUNT must be 0-%d, got %d", MaxCount, c.ExploreCount)
	}
	if err := oneOf("TALKS_SOURCE", c.Source, "csv", "sqlite"); err != nil {
		return err
	}
	if err := oneOf("TALKS_DUPLICATES", c.Duplicates, "reject", "keep-first"); err != nil {
		return err
	}
	if err := oneOf("TALKS_LOG_FORMAT", c.LogFormat, "console", "json"); err != nil {
		return err
	}
	if err := oneOf("TALKS_LOG_LEVEL", c.LogLevel, "debug", "info", "warn", "error"); err != nil {
		return err
	}
	if c.Source == "csv" && c.TranscriptsPath == "" {
		return errors.New("TALKS_TRANSCRIPTS is required when TALKS_SOURCE is csv")
	}
	if c.Source == "sqlite" && c.DBPath == "" {
		return errors.New("TALKS_DB is required when TALKS_SOURCE is sqlite")
	}
	return nil
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/talks/config.toml, falling back
// to the platform config directory when the variable is unset
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = xdg.ConfigHome
	}
	return filepath.Join(configHome, "talks", "config.toml")
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s, got %q", key, strings.Join(allowed, ", "), value)
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}
