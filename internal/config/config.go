// Package config resolves runtime settings from defaults, a TOML file and
// TODOTREE_* environment variables. Command-line flags are applied last by
// the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// EnvConfigPath names an explicit config file.
	EnvConfigPath     = "TODOTREE_CONFIG"
	DefaultConfigFile = "todotree.toml"
)

type Config struct {
	DBPath            string   `toml:"db_path"`
	LogPath           string   `toml:"log_path"`
	LogLevel          string   `toml:"log_level"`
	RowHeight         int      `toml:"row_height"`
	SchedulerBuffer   int      `toml:"scheduler_buffer"`
	InspectorQuickAdd bool     `toml:"inspector_quick_add"`
	ExcludedAssetExts []string `toml:"excluded_asset_exts"`
}

func Default() Config {
	return Config{
		DBPath:            "todotree.db",
		LogPath:           "todotree.log",
		LogLevel:          "info",
		RowHeight:         1,
		SchedulerBuffer:   64,
		InspectorQuickAdd: true,
		ExcludedAssetExts: []string{".meta"},
	}
}

// Load resolves the config: defaults, then the file named by
// $TODOTREE_CONFIG (which must exist) or ./todotree.toml (if present), then
// the environment. It returns the file used, or "" when none was read.
func Load() (Config, string, error) {
	cfg := Default()

	path, explicit := filePath()
	if path != "" {
		if err := LoadFile(&cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, "", err
			}
			path = ""
		}
	}

	cfg = FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	return cfg, path, nil
}

func filePath() (string, bool) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, true
	}
	return DefaultConfigFile, false
}

// LoadFile overlays the TOML file at path onto cfg. Keys absent from the
// file keep their current values.
func LoadFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config file %s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// FromEnv overlays TODOTREE_* variables onto base. Malformed or
// non-positive numbers are ignored.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("TODOTREE_DB"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("TODOTREE_LOG_FILE"); ok {
		cfg.LogPath = v
	}
	if v, ok := getEnvString("TODOTREE_LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := getEnvInt("TODOTREE_ROW_HEIGHT"); ok && v > 0 {
		cfg.RowHeight = v
	}
	if v, ok := getEnvInt("TODOTREE_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvBool("TODOTREE_INSPECTOR_QUICK_ADD"); ok {
		cfg.InspectorQuickAdd = v
	}
	if v, ok := getEnvString("TODOTREE_EXCLUDED_ASSET_EXTS"); ok {
		cfg.ExcludedAssetExts = splitAndTrim(v, ",")
	}
	return cfg
}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "fatal": true}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("config: db path is empty")
	}
	if c.RowHeight <= 0 {
		return fmt.Errorf("config: row height must be positive, got %d", c.RowHeight)
	}
	if c.SchedulerBuffer <= 0 {
		return fmt.Errorf("config: scheduler buffer must be positive, got %d", c.SchedulerBuffer)
	}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	return nil
}

// AcceptsAsset reports whether path may seed a group: quick add is on and
// the extension is not excluded.
func (c Config) AcceptsAsset(path string) bool {
	if !c.InspectorQuickAdd || strings.TrimSpace(path) == "" {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, excluded := range c.ExcludedAssetExts {
		if ext != "" && ext == strings.ToLower(excluded) {
			return false
		}
	}
	return true
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}

func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
