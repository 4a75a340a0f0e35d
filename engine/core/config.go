package core

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config for the engine run. Zero values fall back to the documented
// defaults via Normalize.
type Config struct {
	Title      string     `toml:"title"`
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	VSync      bool       `toml:"vsync"`
	ClearColor [4]float32 `toml:"clear_color"`
}

// Normalize fills unset fields with defaults: 1280x720, vsync on.
func (c Config) Normalize() Config {
	if c.Title == "" {
		c.Title = "kiln"
	}
	if c.Width <= 0 {
		c.Width = 1280
	}
	if c.Height <= 0 {
		c.Height = 720
	}
	return c
}

// LoadConfig reads a TOML config file. A missing file is not an error; the
// defaults are returned instead.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg.Normalize(), nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg.Normalize(), nil
}
