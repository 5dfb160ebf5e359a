package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// ErrExists is returned by WriteDefault when the file is already there.
var ErrExists = errors.New("config file already exists")

// Marshal encodes cfg as TOML.
func Marshal(cfg *Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

// WriteDefault writes the default configuration, with sources as library
// sources, to path. It refuses to overwrite unless force is set.
func WriteDefault(path string, sources []string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}
	cfg := Default()
	cfg.LibrarySources = sources
	if cfg.LibrarySources == nil {
		cfg.LibrarySources = []string{}
	}
	cfg.Exclude = []string{"**/.thumbnails/**"}
	cfg.MediaTypes = []string{}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
