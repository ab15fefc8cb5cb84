// Package config loads the optional composer configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/composer/config.toml
// (~/.config/composer/config.toml when XDG_CONFIG_HOME is unset):
//
//	log_level = "info"
//
//	[canvas]
//	width = 432
//	height = 272
//
//	[render]
//	formats = ["svg", "json"]
//	scale = 2
//	labels = true
//
//	[server]
//	addr = ":8080"
//	max_body_bytes = 1048576
//
// Command-line flags override file values, which override [Default].
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	cerrors "github.com/ossinsight/composer/pkg/errors"
	"github.com/ossinsight/composer/pkg/pipeline"
)

const appName = "composer"

// Config is the decoded configuration file.
type Config struct {
	LogLevel string       `toml:"log_level"`
	Canvas   CanvasConfig `toml:"canvas"`
	Render   RenderConfig `toml:"render"`
	Server   ServerConfig `toml:"server"`
}

// CanvasConfig overrides the canvas of every document. Zero keeps the
// document's own canvas.
type CanvasConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// RenderConfig sets render defaults.
type RenderConfig struct {
	Formats []string `toml:"formats"`
	Scale   float64  `toml:"scale"`
	Labels  bool     `toml:"labels"`
}

// ServerConfig configures `composer serve`.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// Defaults for values the file may omit.
const (
	DefaultAddr         = ":8080"
	DefaultMaxBodyBytes = 1 << 20
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Render: RenderConfig{
			Formats: []string{pipeline.FormatSVG},
			Scale:   pipeline.DefaultScale,
		},
		Server: ServerConfig{
			Addr:         DefaultAddr,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
	}
}

// Path returns the default config file location using the XDG convention.
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at path on top of [Default]. An empty path
// means the default location, where a missing file is not an error; an
// explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if explicit {
				return cfg, cerrors.New(cerrors.ErrCodeFileNotFound, "config file not found: %s", path)
			}
			return cfg, nil
		}
		return cfg, cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return cfg, cerrors.New(cerrors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(names, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if err := cerrors.ValidateDimension("canvas width", c.Canvas.Width); err != nil {
		return err
	}
	if err := cerrors.ValidateDimension("canvas height", c.Canvas.Height); err != nil {
		return err
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return err
	}
	if c.Render.Scale < 0 {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "render scale cannot be negative (got %g)", c.Render.Scale)
	}
	if c.Server.MaxBodyBytes < 0 {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "server max_body_bytes cannot be negative")
	}
	return nil
}

// Level parses LogLevel. An empty value means info.
func (c Config) Level() (log.Level, error) {
	if c.LogLevel == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "invalid log_level %q", c.LogLevel)
	}
	return lvl, nil
}

// PipelineOptions converts the file values into pipeline options.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Width:   c.Canvas.Width,
		Height:  c.Canvas.Height,
		Formats: append([]string(nil), c.Render.Formats...),
		Scale:   c.Render.Scale,
		Titles:  c.Render.Labels,
	}
}
