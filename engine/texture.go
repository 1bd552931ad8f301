// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"errors"
	"image"

	"golang.org/x/image/draw"

	"github.com/gviegas/ares/driver"
)

const texPrefix = "texture: "

func newTexErr(reason string) error { return errors.New(texPrefix + reason) }

// Texture is a 2D texture with its own sampling state.
type Texture struct {
	gpu driver.GPU
	tex driver.Texture
}

// DefaultSampling is the sampling state used when
// the source of a texture does not specify one.
var DefaultSampling = driver.Sampling{
	Min:    driver.FLinear,
	Mag:    driver.FLinear,
	Mipmap: driver.FLinear,
	AddrU:  driver.AWrap,
	AddrV:  driver.AWrap,
}

// NewTexture creates a new texture from img.
// img is converted to 8-bit RGBA. Images that exceed
// the GPU's maximum texture size are scaled down
// preserving the aspect ratio.
func NewTexture(gpu driver.GPU, img image.Image, spln driver.Sampling) (*Texture, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, newTexErr("empty image")
	}
	w, h := b.Dx(), b.Dy()
	if max2D := gpu.Limits().MaxImage2D; max2D > 0 && (w > max2D || h > max2D) {
		if w >= h {
			w, h = max2D, max(1, h*max2D/w)
		} else {
			w, h = max(1, w*max2D/h), max2D
		}
	}
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*w || w != b.Dx() || h != b.Dy() {
		rgba = image.NewRGBA(image.Rect(0, 0, w, h))
		if w != b.Dx() || h != b.Dy() {
			draw.ApproxBiLinear.Scale(rgba, rgba.Bounds(), img, b, draw.Src, nil)
		} else {
			draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
		}
	}
	return NewTextureData(gpu, &driver.TexParam{
		PixelFmt: driver.RGBA8un,
		Width:    w,
		Height:   h,
		Data:     rgba.Pix[:4*w*h],
		Sampling: spln,
	})
}

// NewTextureData creates a new texture from raw
// pixel data.
func NewTextureData(gpu driver.GPU, param *driver.TexParam) (*Texture, error) {
	if param.Width <= 0 || param.Height <= 0 {
		return nil, newTexErr("invalid size")
	}
	if len(param.Data) != param.Width*param.Height*param.PixelFmt.Size() {
		return nil, newTexErr("data size mismatch")
	}
	tex, err := gpu.NewTexture(param)
	if err != nil {
		return nil, err
	}
	return &Texture{gpu, tex}, nil
}

// Width returns the width of t.
func (t *Texture) Width() int { return t.tex.Width() }

// Height returns the height of t.
func (t *Texture) Height() int { return t.tex.Height() }

// Activate binds t to the given texture unit.
func (t *Texture) Activate(unit int) { t.gpu.ActiveTexture(unit, t.tex) }

// Deactivate unbinds the texture bound to unit.
func (t *Texture) Deactivate(unit int) { t.gpu.ActiveTexture(unit, nil) }

// Destroy destroys t.
func (t *Texture) Destroy() {
	if t.tex != nil {
		t.tex.Destroy()
		t.tex = nil
	}
}
