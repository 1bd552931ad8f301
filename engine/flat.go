// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/gviegas/ares/linear"
)

// FlatColor defines properties of the flat color
// material model: unlit geometry of a single color.
type FlatColor struct {
	Color [4]float32
}

func (p *FlatColor) validate() error {
	return validateColor(p.Color[:], "FlatColor.Color")
}

type flatColor struct {
	mvp   *Uniform[linear.M4]
	color *Uniform[linear.V4]
	prop  FlatColor
}

func (f *flatColor) upload(mv, proj, _ *linear.M4, _ []LightView) {
	var mvp linear.M4
	mvp.Mul(proj, mv)
	f.mvp.Set(mvp)
	f.color.Set(f.prop.Color)
}

// NewFlatColor creates a new material using the flat
// color model.
func NewFlatColor(c *ShaderCache, prop *FlatColor) (*Material, error) {
	if err := prop.validate(); err != nil {
		return nil, err
	}
	return newMaterial(c, flatColorVert, flatColorFrag, func(s *Shader) (*flatColor, error) {
		u := uniforms{shd: s}
		f := &flatColor{
			mvp:   addTo[linear.M4](&u, "u_mvp"),
			color: addTo[linear.V4](&u, "u_color"),
			prop:  *prop,
		}
		return f, u.err
	})
}

// FlatTex defines properties of the flat texture
// material model: unlit geometry sampled from a
// single texture using TexCoord0.
type FlatTex struct {
	Texture *Texture
}

func (p *FlatTex) validate() error {
	if p.Texture == nil {
		return newMatErr("nil FlatTex.Texture")
	}
	return nil
}

// Texture units used by the flat texture model.
const flatTexUnit = 0

type flatTex struct {
	mvp  *Uniform[linear.M4]
	tex  *Uniform[int32]
	prop FlatTex
}

func (f *flatTex) upload(mv, proj, _ *linear.M4, _ []LightView) {
	var mvp linear.M4
	mvp.Mul(proj, mv)
	f.mvp.Set(mvp)
	f.tex.Set(flatTexUnit)
	f.prop.Texture.Activate(flatTexUnit)
}

// NewFlatTex creates a new material using the flat
// texture model.
func NewFlatTex(c *ShaderCache, prop *FlatTex) (*Material, error) {
	if err := prop.validate(); err != nil {
		return nil, err
	}
	return newMaterial(c, flatTexVert, flatTexFrag, func(s *Shader) (*flatTex, error) {
		u := uniforms{shd: s}
		f := &flatTex{
			mvp:  addTo[linear.M4](&u, "u_mvp"),
			tex:  addTo[int32](&u, "u_tex"),
			prop: *prop,
		}
		return f, u.err
	})
}
