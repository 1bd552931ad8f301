// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package engine implements the GPU-facing half of the
// renderer: shaders and their uniforms, materials, vertex
// buffers, textures, lights and drawable meshes.
//
// Nothing in this package is safe for concurrent use.
// A single goroutine is expected to create resources,
// update scene state and render, in that order, every
// frame.
package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gviegas/ares/driver"
	"github.com/gviegas/ares/engine/internal/ctxt"
)

// Config is used to configure the engine.
type Config struct {
	// Name (or part of the name) of the driver to use.
	// The match is case insensitive.
	//
	// Default is "" (any registered driver).
	Driver string `toml:"driver" yaml:"driver"`

	// Color used to clear the framebuffer every frame.
	//
	// Default is transparent black.
	ClearColor [4]float32 `toml:"clear_color" yaml:"clear_color"`

	// Minimum level of log messages.
	// One of "debug", "info", "warn" or "error".
	//
	// Default is "info".
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Driver:     "",
		ClearColor: [4]float32{0, 0, 0, 0},
		LogLevel:   "info",
	}
}

var cfg Config

// Configure replaces the engine's configuration
// with config.
func Configure(config *Config) { cfg = *config }

// CurrentConfig returns the engine's configuration.
func CurrentConfig() Config { return cfg }

func init() {
	config := DefaultConfig()
	Configure(&config)
}

const cfgPrefix = "config: "

// DecodeConfig decodes a Config from r.
// format is either "toml" or "yaml" ("yml" is accepted
// as well). Fields that are absent from the input keep
// their default values. Unknown fields are an error.
func DecodeConfig(r io.Reader, format string) (Config, error) {
	config := DefaultConfig()
	err := DecodeInto(r, format, &config)
	return config, err
}

// DecodeInto decodes r into v, which must be a pointer
// to a struct with toml/yaml tags.
// It is exported so that programs can embed Config
// in their own configuration.
func DecodeInto(r io.Reader, format string, v any) error {
	switch strings.ToLower(format) {
	case "toml":
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf(cfgPrefix+"toml: %w", err)
		}
	case "yaml", "yml":
		b, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		if len(bytes.TrimSpace(b)) == 0 {
			return nil
		}
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf(cfgPrefix+"yaml: %w", err)
		}
	default:
		return errors.New(cfgPrefix + "unknown format " + format)
	}
	return nil
}

// Level returns the slog.Level described by c.LogLevel.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// Open loads the driver named by the current
// configuration and returns its GPU.
// Drivers that render through a window system need a
// current context before Open is called.
// It replaces any GPU previously opened.
func Open() (driver.GPU, error) {
	if err := ctxt.Load(cfg.Driver); err != nil {
		return nil, err
	}
	slog.Info("driver opened", "name", ctxt.Driver().Name(), "limits", ctxt.Limits())
	return ctxt.GPU(), nil
}

// Close closes the driver loaded by Open.
func Close() { ctxt.Close() }
