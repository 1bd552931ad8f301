// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package trace

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/ares/driver"
)

func TestRegister(t *testing.T) {
	var found bool
	for _, d := range driver.Drivers() {
		if d.Name() == "trace" {
			found = true
			g1, err := d.Open()
			require.NoError(t, err)
			g2, err := d.Open()
			require.NoError(t, err)
			assert.Same(t, g1, g2, "Driver.Open must return the same GPU")
			assert.Equal(t, d, g1.Driver())
			d.Close()
		}
	}
	assert.True(t, found, "trace driver not registered")
}

func TestProgram(t *testing.T) {
	g := New()
	vs, err := g.NewShaderCode(driver.SVertex, "void main() {}")
	require.NoError(t, err)
	fs, err := g.NewShaderCode(driver.SFragment, "void main() {}")
	require.NoError(t, err)

	_, err = g.NewProgram(fs, vs)
	assert.ErrorIs(t, err, driver.ErrLink)

	p, err := g.NewProgram(vs, fs)
	require.NoError(t, err)
	g.Inactive["u_unused"] = true
	assert.Equal(t, 0, p.AttribLocation("POSITION"))
	assert.Equal(t, 1, p.UniformLocation("u_mvp"))
	assert.Equal(t, 0, p.AttribLocation("POSITION"))
	assert.Equal(t, -1, p.UniformLocation("u_unused"))

	g.Uniform1f(1, 2)
	err = g.Err()
	assert.ErrorIs(t, err, driver.ErrFatal, "uniform without program")
	assert.NoError(t, g.Err(), "Err must clear the error")

	g.UseProgram(p)
	g.Uniform1f(1, 2)
	v, ok := p.(*Program).Uniform("u_mvp")
	assert.True(t, ok)
	assert.Equal(t, float32(2), v)
	assert.NoError(t, g.Err())

	p.Destroy()
	assert.Nil(t, g.Program())
	p.Destroy()
	assert.Error(t, g.Err())
}

func TestCompileFailure(t *testing.T) {
	g := New()
	bad := errors.New("syntax error")
	g.FailCompile = func(stage driver.Stage, src string) error {
		if src == "bad" {
			return bad
		}
		return nil
	}
	_, err := g.NewShaderCode(driver.SFragment, "bad")
	assert.ErrorIs(t, err, driver.ErrCompile)
	assert.ErrorIs(t, err, bad)
	_, err = g.NewShaderCode(driver.SFragment, "good")
	assert.NoError(t, err)
}

func TestDraw(t *testing.T) {
	g := New()
	vs, _ := g.NewShaderCode(driver.SVertex, "")
	fs, _ := g.NewShaderCode(driver.SFragment, "")
	p, _ := g.NewProgram(vs, fs)

	g.Draw(driver.TTriangle, 0, 3)
	assert.Error(t, g.Err(), "draw without program")

	ib, err := g.NewBuffer(driver.BIndex, make([]byte, 12))
	require.NoError(t, err)
	g.UseProgram(p)
	g.DrawIndexed(driver.TTriangle, 6, driver.Index16, 0)
	assert.Error(t, g.Err(), "no index buffer bound")

	g.BindBuffer(driver.BVertex, ib)
	assert.Error(t, g.Err(), "buffer bound to wrong target")

	g.BindBuffer(driver.BIndex, ib)
	g.DrawIndexed(driver.TTriangle, 6, driver.Index16, 0)
	assert.NoError(t, g.Err())
	g.DrawIndexed(driver.TTriangle, 6, driver.Index16, 2)
	assert.Error(t, g.Err(), "index range exceeds buffer")

	g.Reset()
	g.Draw(driver.TTriStrip, 0, 4)
	require.Len(t, g.Calls(), 1)
	assert.Equal(t, "Draw(4, 0, 4)", g.Calls()[0].String())
}

func TestTexture(t *testing.T) {
	g := New()
	_, err := g.NewTexture(&driver.TexParam{PixelFmt: driver.RGBA8un, Width: 2, Height: 2, Data: make([]byte, 15)})
	assert.Error(t, err)
	tex, err := g.NewTexture(&driver.TexParam{PixelFmt: driver.RGBA8un, Width: 2, Height: 2, Data: make([]byte, 16)})
	require.NoError(t, err)
	assert.Equal(t, 2, tex.Width())

	g.ActiveTexture(3, tex)
	assert.Same(t, tex, g.TextureAt(3))
	g.ActiveTexture(3, nil)
	assert.Nil(t, g.TextureAt(3))
	g.ActiveTexture(8, tex)
	assert.Error(t, g.Err())
}
