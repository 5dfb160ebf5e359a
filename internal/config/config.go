package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "vitrine"

type Config struct {
	LibrarySources []string `koanf:"library_sources" toml:"library_sources"` // directories to index
	Exclude        []string `koanf:"exclude" toml:"exclude"`                 // glob patterns relative to a source

	MaxSelection  int      `koanf:"max_selection" toml:"max_selection"`   // capacity when --max is not given
	MediaTypes    []string `koanf:"media_types" toml:"media_types"`       // default type filter, empty means all
	ImageProtocol string   `koanf:"image_protocol" toml:"image_protocol"` // "auto", "kitty", "sixel", or "none"
	Notifications bool     `koanf:"notifications" toml:"notifications"`   // desktop toasts on capacity rejections
	IndexPath     string   `koanf:"index_path" toml:"index_path,omitempty"`

	Grid GridConfig `koanf:"grid" toml:"grid"`
	Log  LogConfig  `koanf:"log" toml:"log"`
}

// GridConfig holds gallery layout settings.
type GridConfig struct {
	CellWidth  int `koanf:"cell_width" toml:"cell_width"`   // columns per cell including spacing (default: 22)
	CellHeight int `koanf:"cell_height" toml:"cell_height"` // rows per cell including label (default: 10)
}

// LogConfig holds log file settings.
type LogConfig struct {
	Level  string `koanf:"level" toml:"level"`   // "debug", "info", "warn", "error"
	Format string `koanf:"format" toml:"format"` // "text" or "json"
	File   string `koanf:"file" toml:"file,omitempty"`
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		MaxSelection:  1,
		ImageProtocol: "auto",
		Grid:          GridConfig{CellWidth: 22, CellHeight: 10},
		Log:           LogConfig{Level: "info", Format: "text"},
	}
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom loads the given files in order, later files overriding earlier
// ones. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	for i, src := range cfg.LibrarySources {
		cfg.LibrarySources[i] = filepath.Clean(expandPath(src))
	}
	cfg.IndexPath = expandPath(cfg.IndexPath)
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.ImageProtocol = strings.ToLower(strings.TrimSpace(cfg.ImageProtocol))

	return cfg, nil
}

// UserConfigPath is the per-user config file.
func UserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/vitrine/config.toml
	if p, err := UserConfigPath(); err == nil {
		paths = append(paths, p)
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// HasLibrary returns true if at least one source directory is configured.
func (c *Config) HasLibrary() bool {
	return len(c.LibrarySources) > 0
}

// GetGridConfig returns the grid configuration with defaults applied.
func (c *Config) GetGridConfig() GridConfig {
	cfg := c.Grid
	if cfg.CellWidth < 8 {
		cfg.CellWidth = 22
	}
	if cfg.CellHeight < 4 {
		cfg.CellHeight = 10
	}
	return cfg
}
