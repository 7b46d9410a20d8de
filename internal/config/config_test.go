// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies file decoding, environment overrides and validation
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
)

func isolate(t *testing.T) string {
	t.Helper()
	os.Clearenv()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.TranscriptsPath != "data/transcripts.csv" {
		t.Errorf("TranscriptsPath = %s, want data/transcripts.csv", cfg.TranscriptsPath)
	}
	if cfg.MetadataPath != "data/ted_main.csv" {
		t.Errorf("MetadataPath = %s, want data/ted_main.csv", cfg.MetadataPath)
	}
	if want := filepath.Join(dir, "data", "talks", "talks.db"); cfg.DBPath != want {
		t.Errorf("DBPath = %s, want %s", cfg.DBPath, want)
	}
	if cfg.Source != "csv" {
		t.Errorf("Source = %s, want csv", cfg.Source)
	}
	if cfg.Duplicates != "reject" {
		t.Errorf("Duplicates = %s, want reject", cfg.Duplicates)
	}
	if cfg.DefaultCount != 5 {
		t.Errorf("DefaultCount = %d, want 5", cfg.DefaultCount)
	}
	if cfg.ExploreCount != 10 {
		t.Errorf("ExploreCount = %d, want 10", cfg.ExploreCount)
	}
	if cfg.LogFormat != "console" || cfg.LogLevel != "info" {
		t.Errorf("logging = %s/%s, want console/info", cfg.LogFormat, cfg.LogLevel)
	}
	if cfg.File != "" {
		t.Errorf("File = %s, want empty", cfg.File)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	isolate(t)
	os.Setenv("TALKS_TRANSCRIPTS", "/tmp/t.csv")
	os.Setenv("TALKS_METADATA", "/tmp/m.csv")
	os.Setenv("TALKS_DB", "/tmp/talks.db")
	os.Setenv("TALKS_SOURCE", "SQLite")
	os.Setenv("TALKS_DUPLICATES", "keep-first")
	os.Setenv("TALKS_DEFAULT_COUNT", "7")
	os.Setenv("TALKS_EXPLORE_COUNT", "20")
	os.Setenv("TALKS_LOG_FORMAT", "json")
	os.Setenv("TALKS_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.TranscriptsPath != "/tmp/t.csv" {
		t.Errorf("TranscriptsPath = %s, want /tmp/t.csv", cfg.TranscriptsPath)
	}
	if cfg.MetadataPath != "/tmp/m.csv" {
		t.Errorf("MetadataPath = %s, want /tmp/m.csv", cfg.MetadataPath)
	}
	if cfg.DBPath != "/tmp/talks.db" {
		t.Errorf("DBPath = %s, want /tmp/talks.db", cfg.DBPath)
	}
	if cfg.Source != "sqlite" {
		t.Errorf("Source = %s, want sqlite", cfg.Source)
	}
	if cfg.Duplicates != "keep-first" {
		t.Errorf("Duplicates = %s, want keep-first", cfg.Duplicates)
	}
	if cfg.DefaultCount != 7 || cfg.ExploreCount != 20 {
		t.Errorf("counts = %d/%d, want 7/20", cfg.DefaultCount, cfg.ExploreCount)
	}
	if cfg.LogFormat != "json" || cfg.LogLevel != "debug" {
		t.Errorf("logging = %s/%s, want json/debug", cfg.LogFormat, cfg.LogLevel)
	}
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	writeFile(t, DefaultConfigPath(), `
transcripts = "corpus/transcripts.csv"
default_count = 3
log_level = "warn"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.TranscriptsPath != "corpus/transcripts.csv" {
		t.Errorf("TranscriptsPath = %s, want corpus/transcripts.csv", cfg.TranscriptsPath)
	}
	if cfg.DefaultCount != 3 {
		t.Errorf("DefaultCount = %d, want 3", cfg.DefaultCount)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %s, want warn", cfg.LogLevel)
	}
	if cfg.ExploreCount != 10 {
		t.Errorf("ExploreCount = %d, want default 10", cfg.ExploreCount)
	}
	if want := filepath.Join(dir, "config", "talks", "config.toml"); cfg.File != want {
		t.Errorf("File = %s, want %s", cfg.File, want)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, "default_count = 3\nsource = \"csv\"\n")
	os.Setenv("TALKS_CONFIG", path)
	os.Setenv("TALKS_DEFAULT_COUNT", "9")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.DefaultCount != 9 {
		t.Errorf("DefaultCount = %d, want 9", cfg.DefaultCount)
	}
	if cfg.File != path {
		t.Errorf("File = %s, want %s", cfg.File, path)
	}
}

func TestLoadFrom_Errors(t *testing.T) {
	dir := isolate(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown key", "colour = \"blue\"\n", "parse config"},
		{"bad syntax", "default_count = \n", "parse config"},
		{"bad value", "default_count = 5000\n", "TALKS_DEFAULT_COUNT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".toml")
			writeFile(t, path, tt.body)
			_, err := LoadFrom(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadFrom() error = %v, want containing %q", err, tt.want)
			}
		})
	}

	if _, err := LoadFrom(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadFrom() should fail for a missing explicit file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero counts", func(c *Config) { c.DefaultCount = 0; c.ExploreCount = 0 }, true},
		{"negative default count", func(c *Config) { c.DefaultCount = -1 }, false},
		{"huge explore count", func(c *Config) { c.ExploreCount = MaxCount + 1 }, false},
		{"bad source", func(c *Config) { c.Source = "s3" }, false},
		{"bad duplicates", func(c *Config) { c.Duplicates = "merge" }, false},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, false},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, false},
		{"csv without transcripts", func(c *Config) { c.TranscriptsPath = "" }, false},
		{"sqlite without db", func(c *Config) { c.Source = "sqlite"; c.DBPath = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		defaultVal int
		want       int
	}{
		{"empty uses default", "", 5, 5},
		{"valid", "12", 5, 12},
		{"invalid falls back", "twelve", 5, 5},
		{"negative", "-3", 5, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			if tt.value != "" {
				os.Setenv("TEST_INT", tt.value)
			}
			got := getEnvInt("TEST_INT", tt.defaultVal)
			if got != tt.want {
				t.Errorf("getEnvInt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/srv/config")
	if got := DefaultConfigPath(); got != "/srv/config/talks/config.toml" {
		t.Errorf("DefaultConfigPath() = %s, want /srv/config/talks/config.toml", got)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	if want := filepath.Join(xdg.ConfigHome, "talks", "config.toml"); DefaultConfigPath() != want {
		t.Errorf("DefaultConfigPath() = %s, want %s", DefaultConfigPath(), want)
	}
}
