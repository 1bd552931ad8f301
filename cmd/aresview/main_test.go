// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/ares/wsi"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "config.toml", `
[engine]
driver = "trace"
clear_color = [0.5, 0.5, 0.5, 1.0]
log_level = "debug"

[window]
width = 640
height = 480

[controller]
speed = 0.1
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	def := DefaultConfig()
	assert.Equal(t, "trace", cfg.Engine.Driver)
	assert.Equal(t, [4]float32{0.5, 0.5, 0.5, 1}, cfg.Engine.ClearColor)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 480, cfg.Window.Height)
	assert.Equal(t, def.Window.Title, cfg.Window.Title)
	assert.Equal(t, def.Camera, cfg.Camera)
	assert.Equal(t, float32(0.1), cfg.Controller.Speed)
	assert.Equal(t, def.Controller.YawScale, cfg.Controller.YawScale)
	assert.InDelta(t, 640.0/480.0, cfg.aspect(), 1e-6)

	path = writeFile(t, "config.yaml", `
window:
  title: view
camera:
  position: [1, 2, 3]
  yfov: 0.9
  znear: 0.1
  zfar: 0
`)
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "view", cfg.Window.Title)
	assert.Equal(t, [3]float32{1, 2, 3}, cfg.Camera.Position)
	assert.Equal(t, float32(0), cfg.Camera.ZFar)

	_, err = LoadConfig(writeFile(t, "bad.toml", "[window]\nwidth = -1\n"))
	assert.Error(t, err)
	_, err = LoadConfig(writeFile(t, "unknown.yaml", "colour: red\n"))
	assert.Error(t, err)
	_, err = LoadConfig(writeFile(t, "config.ini", "width=1\n"))
	assert.Error(t, err)
	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func runHeadless(t *testing.T, path string, n int) {
	t.Helper()
	cfg := writeFile(t, "config.toml", "[engine]\nlog_level = \"error\"\n")
	oldCfg, oldHeadless, oldFrames := *configPath, *headless, *frames
	*configPath, *headless, *frames = cfg, true, n
	defer func() { *configPath, *headless, *frames = oldCfg, oldHeadless, oldFrames }()

	require.NoError(t, run(path))
	assert.Empty(t, wsi.Windows())
}

func TestRunDemo(t *testing.T) {
	runHeadless(t, "", 3)
}

func TestRunGLTF(t *testing.T) {
	runHeadless(t, "../../gltf/testdata/cube.gltf", 2)
}

func TestRunMissingFile(t *testing.T) {
	cfg := writeFile(t, "config.toml", "")
	oldCfg, oldHeadless, oldFrames := *configPath, *headless, *frames
	*configPath, *headless = cfg, true
	defer func() { *configPath, *headless, *frames = oldCfg, oldHeadless, oldFrames }()

	assert.Error(t, run("testdata/missing.gltf"))
	assert.Empty(t, wsi.Windows())
}
