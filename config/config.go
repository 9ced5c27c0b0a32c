// Package config loads java2py.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultFile is read when no configuration file is named explicitly.
const DefaultFile = "java2py.toml"

const DefaultDebounce = 500 * time.Millisecond

type Config struct {
	SourceDir      string   `toml:"source_dir" validate:"required,dir"`
	Package        string   `toml:"package" validate:"required,package"`
	Outfile        string   `toml:"outfile"`
	Strict         bool     `toml:"strict"`
	Template       string   `toml:"template" validate:"omitempty,file"`
	DefaultImports []string `toml:"default_imports" validate:"dive,import"`
	Exclude        []string `toml:"exclude"`
	Watch          Watch    `toml:"watch"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce" validate:"gte=0"`
}

func Default() *Config {
	return &Config{
		DefaultImports: []string{"java.lang.*"},
		Watch: Watch{
			Debounce: DefaultDebounce,
		},
	}
}

// Load reads the TOML file at path over the defaults. Unknown keys are an
// error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = DefaultDebounce
	}
	return cfg, nil
}

// LoadOptional is Load for a path that may be empty, in which case
// DefaultFile is tried. A missing DefaultFile yields the defaults.
func LoadOptional(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	cfg, err := Load(DefaultFile)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}
