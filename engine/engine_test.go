// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/ares/driver/trace"
)

func TestConfig(t *testing.T) {
	def := DefaultConfig()
	if c := CurrentConfig(); c != def {
		t.Fatalf("CurrentConfig:\nhave %v\nwant %v", c, def)
	}

	c, err := DecodeConfig(strings.NewReader(`
driver = "trace"
clear_color = [0.5, 0.25, 0.0, 1.0]
`), "toml")
	require.NoError(t, err)
	assert.Equal(t, "trace", c.Driver)
	assert.Equal(t, [4]float32{0.5, 0.25, 0, 1}, c.ClearColor)
	assert.Equal(t, def.LogLevel, c.LogLevel, "absent field must keep default")

	c, err = DecodeConfig(strings.NewReader("log_level: debug\n"), "yml")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, c.Level())
	assert.Equal(t, def.ClearColor, c.ClearColor)

	c, err = DecodeConfig(strings.NewReader(""), "yaml")
	require.NoError(t, err)
	assert.Equal(t, def, c)

	_, err = DecodeConfig(strings.NewReader(`unknown = 1`), "toml")
	assert.Error(t, err)
	_, err = DecodeConfig(strings.NewReader("unknown: 1\n"), "yaml")
	assert.Error(t, err)
	_, err = DecodeConfig(strings.NewReader(""), "json")
	assert.Error(t, err)

	c = Config{LogLevel: "nonsense"}
	assert.Equal(t, slog.LevelInfo, c.Level())
}

func TestOpen(t *testing.T) {
	prev := CurrentConfig()
	defer Configure(&prev)

	c := DefaultConfig()
	c.Driver = "TrAcE"
	Configure(&c)
	gpu, err := Open()
	require.NoError(t, err)
	assert.IsType(t, &trace.GPU{}, gpu)
	assert.Equal(t, "trace", gpu.Driver().Name())
	Close()

	c.Driver = "no such driver"
	Configure(&c)
	_, err = Open()
	assert.Error(t, err)
}
