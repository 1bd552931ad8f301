// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/gviegas/ares/control"
	"github.com/gviegas/ares/engine"
)

// Config is the viewer's configuration.
type Config struct {
	Engine     engine.Config     `toml:"engine" yaml:"engine"`
	Window     WindowConfig      `toml:"window" yaml:"window"`
	Camera     CameraConfig      `toml:"camera" yaml:"camera"`
	Controller control.FPSConfig `toml:"controller" yaml:"controller"`
}

// WindowConfig configures the viewer's window.
type WindowConfig struct {
	Width  int    `toml:"width" yaml:"width"`
	Height int    `toml:"height" yaml:"height"`
	Title  string `toml:"title" yaml:"title"`
}

// CameraConfig configures the camera created by the
// viewer when a scene does not define one.
type CameraConfig struct {
	Position [3]float32 `toml:"position" yaml:"position"`
	YFov     float32    `toml:"yfov" yaml:"yfov"`
	ZNear    float32    `toml:"znear" yaml:"znear"`
	ZFar     float32    `toml:"zfar" yaml:"zfar"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Engine: engine.Config{
			ClearColor: [4]float32{0.1, 0.1, 0.12, 1},
			LogLevel:   "info",
		},
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			Title:  "aresview",
		},
		Camera: CameraConfig{
			Position: [3]float32{0, 1, 5},
			YFov:     1.05,
			ZNear:    0.01,
			ZFar:     1000,
		},
		Controller: control.DefaultFPSConfig(),
	}
}

// defaultConfigPath is read when no -config is given.
// It is fine for it not to exist.
const defaultConfigPath = "~/.config/aresview/config.toml"

// LoadConfig reads the configuration file at path.
// The format is taken from the file extension.
// If path is empty, the default path is tried and
// DefaultConfig is returned if nothing is there.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	optional := path == ""
	if optional {
		path = defaultConfigPath
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return config, err
	}
	f, err := os.Open(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return config, err
	}
	defer f.Close()
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if err := engine.DecodeInto(f, format, &config); err != nil {
		return config, err
	}
	return config, config.validate()
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.New("config: invalid window size")
	}
	if c.Camera.YFov <= 0 || c.Camera.ZNear <= 0 {
		return errors.New("config: invalid camera")
	}
	return nil
}

// aspect returns the aspect ratio of the window.
func (c *Config) aspect() float32 {
	return float32(c.Window.Width) / float32(c.Window.Height)
}
