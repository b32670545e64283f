package server

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/objscope/objscope/pkg/errors"
)

// Config holds the fragment server settings.
type Config struct {
	// Addr is the listen address, e.g. ":8420".
	Addr string `toml:"addr"`

	// MaxDepth is the tree construction budget passed to the factory.
	MaxDepth int `toml:"max_depth"`

	// Capacity bounds the node registry; 0 keeps it unbounded.
	Capacity int `toml:"capacity"`
}

// DefaultConfig returns the server defaults used when no file is given.
func DefaultConfig() Config {
	return Config{
		Addr:     ":8420",
		MaxDepth: 32,
	}
}

// LoadConfig reads a TOML config file, layering it over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return cfg, nil
}
