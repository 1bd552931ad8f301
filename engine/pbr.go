// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/gviegas/ares/linear"
)

// BaseColor is the material's base color.
type BaseColor struct {
	Texture *Texture
	Factor  [4]float32
}

// MetalRough is the material's metallic-roughness.
// Metalness is sampled from the blue channel and
// roughness from the green channel of Texture.
type MetalRough struct {
	Texture   *Texture
	Metalness float32
	Roughness float32
}

// NormalMap is the material's normal map.
type NormalMap struct {
	Texture *Texture
	Scale   float32
}

// OcclusionMap is the material's occlusion map.
type OcclusionMap struct {
	Texture  *Texture
	Strength float32
}

// EmissiveMap is the material's emissive map.
type EmissiveMap struct {
	Texture *Texture
	Factor  [3]float32
}

// PBR defines properties of the physically-based
// material model.
// Every texture is optional; the shader falls back
// to the constant factors when one is absent.
type PBR struct {
	BaseColor  BaseColor
	MetalRough MetalRough
	Normal     NormalMap
	Occlusion  OcclusionMap
	Emissive   EmissiveMap
}

// Parameter validation for NewPBR.

func (p *BaseColor) validate() error {
	return validateColor(p.Factor[:], "BaseColor.Factor")
}

func (p *MetalRough) validate() error {
	if p.Metalness < 0 || p.Metalness > 1 {
		return newMatErr("MetalRough.Metalness outside [0.0, 1.0] interval")
	}
	if p.Roughness < 0 || p.Roughness > 1 {
		return newMatErr("MetalRough.Roughness outside [0.0, 1.0] interval")
	}
	return nil
}

func (p *NormalMap) validate() error {
	if p.Scale < 0 {
		return newMatErr("NormalMap.Scale less than 0.0")
	}
	return nil
}

func (p *OcclusionMap) validate() error {
	if p.Strength < 0 || p.Strength > 1 {
		return newMatErr("OcclusionMap.Strength outside [0.0, 1.0] interval")
	}
	return nil
}

func (p *EmissiveMap) validate() error {
	return validateColor(p.Factor[:], "EmissiveMap.Factor")
}

func (p *PBR) validate() error {
	if err := p.BaseColor.validate(); err != nil {
		return err
	}
	if err := p.MetalRough.validate(); err != nil {
		return err
	}
	if err := p.Normal.validate(); err != nil {
		return err
	}
	if err := p.Occlusion.validate(); err != nil {
		return err
	}
	return p.Emissive.validate()
}

// Texture slots of the PBR model.
// A slot's index is also its texture unit.
const (
	pbrBaseColor = iota
	pbrEmissive
	pbrNormal
	pbrOcclusion
	pbrMetalRough
	pbrSlots
)

var pbrSlotNames = [pbrSlots]struct{ tex, has string }{
	pbrBaseColor:  {"u_baseColorTex", "u_hasBaseColorTex"},
	pbrEmissive:   {"u_emissiveTex", "u_hasEmissiveTex"},
	pbrNormal:     {"u_normalTex", "u_hasNormalTex"},
	pbrOcclusion:  {"u_occlusionTex", "u_hasOcclusionTex"},
	pbrMetalRough: {"u_metalRoughnessTex", "u_hasMetalRoughnessTex"},
}

type pbr struct {
	transform
	baseColor   *Uniform[linear.V4]
	emissive    *Uniform[linear.V3]
	metallic    *Uniform[float32]
	roughness   *Uniform[float32]
	normScale   *Uniform[float32]
	occStrength *Uniform[float32]
	tex         [pbrSlots]*Uniform[int32]
	has         [pbrSlots]*Uniform[int32]
	textures    [pbrSlots]*Texture
	prop        PBR
}

func (p *pbr) upload(mv, proj, norm *linear.M4, lights []LightView) {
	p.transform.upload(mv, proj, norm, lights)
	p.baseColor.Set(p.prop.BaseColor.Factor)
	p.emissive.Set(p.prop.Emissive.Factor)
	p.metallic.Set(p.prop.MetalRough.Metalness)
	p.roughness.Set(p.prop.MetalRough.Roughness)
	p.normScale.Set(p.prop.Normal.Scale)
	p.occStrength.Set(p.prop.Occlusion.Strength)
	for i, t := range p.textures {
		p.tex[i].Set(int32(i))
		if t == nil {
			p.has[i].Set(0)
			continue
		}
		p.has[i].Set(1)
		t.Activate(i)
	}
}

// NewPBR creates a new material using the PBR model.
func NewPBR(c *ShaderCache, prop *PBR) (*Material, error) {
	if err := prop.validate(); err != nil {
		return nil, err
	}
	return newMaterial(c, pbrVert, pbrFrag, func(s *Shader) (*pbr, error) {
		u := uniforms{shd: s}
		p := &pbr{prop: *prop}
		p.transform.register(&u)
		p.baseColor = addTo[linear.V4](&u, "u_baseColorFactor")
		p.emissive = addTo[linear.V3](&u, "u_emissiveFactor")
		p.metallic = addTo[float32](&u, "u_metallicFactor")
		p.roughness = addTo[float32](&u, "u_roughnessFactor")
		p.normScale = addTo[float32](&u, "u_normalScale")
		p.occStrength = addTo[float32](&u, "u_occlusionStrength")
		for i, n := range pbrSlotNames {
			p.tex[i] = addTo[int32](&u, n.tex)
			p.has[i] = addTo[int32](&u, n.has)
		}
		p.textures = [pbrSlots]*Texture{
			pbrBaseColor:  prop.BaseColor.Texture,
			pbrEmissive:   prop.Emissive.Texture,
			pbrNormal:     prop.Normal.Texture,
			pbrOcclusion:  prop.Occlusion.Texture,
			pbrMetalRough: prop.MetalRough.Texture,
		}
		return p, u.err
	})
}
