// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/gviegas/ares/linear"
)

// Phong defines properties of the Phong material model
// with constant colors.
// Ka, Kd and Ks weight the ambient, diffuse and specular
// terms, respectively.
type Phong struct {
	Ka, Kd, Ks float32
	Shininess  float32
	Ambient    [3]float32
	Diffuse    [3]float32
	Specular   [3]float32
}

func (p *Phong) validate() error {
	if p.Ka < 0 || p.Kd < 0 || p.Ks < 0 {
		return newMatErr("negative Phong coefficient")
	}
	if p.Shininess < 0 {
		return newMatErr("Phong.Shininess less than 0.0")
	}
	if err := validateColor(p.Ambient[:], "Phong.Ambient"); err != nil {
		return err
	}
	if err := validateColor(p.Diffuse[:], "Phong.Diffuse"); err != nil {
		return err
	}
	return validateColor(p.Specular[:], "Phong.Specular")
}

type phong struct {
	transform
	ka, kd, ks, shininess      *Uniform[float32]
	ambient, diffuse, specular *Uniform[linear.V3]
	prop                       Phong
}

func (p *phong) upload(mv, proj, norm *linear.M4, lights []LightView) {
	p.transform.upload(mv, proj, norm, lights)
	p.ka.Set(p.prop.Ka)
	p.kd.Set(p.prop.Kd)
	p.ks.Set(p.prop.Ks)
	p.shininess.Set(p.prop.Shininess)
	p.ambient.Set(p.prop.Ambient)
	p.diffuse.Set(p.prop.Diffuse)
	p.specular.Set(p.prop.Specular)
}

// NewPhong creates a new material using the Phong
// model.
func NewPhong(c *ShaderCache, prop *Phong) (*Material, error) {
	if err := prop.validate(); err != nil {
		return nil, err
	}
	return newMaterial(c, phongVert, phongFrag, func(s *Shader) (*phong, error) {
		u := uniforms{shd: s}
		p := &phong{prop: *prop}
		p.transform.register(&u)
		p.ka = addTo[float32](&u, "u_ka")
		p.kd = addTo[float32](&u, "u_kd")
		p.ks = addTo[float32](&u, "u_ks")
		p.shininess = addTo[float32](&u, "u_shininess")
		p.ambient = addTo[linear.V3](&u, "u_ambientColor")
		p.diffuse = addTo[linear.V3](&u, "u_diffuseColor")
		p.specular = addTo[linear.V3](&u, "u_specularColor")
		return p, u.err
	})
}

// NormalMapped defines properties of the normal-mapped
// material model. Both textures are required.
// The normal texture stores tangent-space normals.
type NormalMapped struct {
	Diffuse *Texture
	Normal  *Texture
}

func (p *NormalMapped) validate() error {
	if p.Diffuse == nil {
		return newMatErr("nil NormalMapped.Diffuse")
	}
	if p.Normal == nil {
		return newMatErr("nil NormalMapped.Normal")
	}
	return nil
}

// Texture units used by the normal-mapped model.
const (
	normalMappedDiffuseUnit = iota
	normalMappedNormalUnit
)

type normalMapped struct {
	transform
	diffuse, normal *Uniform[int32]
	prop            NormalMapped
}

func (n *normalMapped) upload(mv, proj, norm *linear.M4, lights []LightView) {
	n.transform.upload(mv, proj, norm, lights)
	n.diffuse.Set(normalMappedDiffuseUnit)
	n.normal.Set(normalMappedNormalUnit)
	n.prop.Diffuse.Activate(normalMappedDiffuseUnit)
	n.prop.Normal.Activate(normalMappedNormalUnit)
}

// NewNormalMapped creates a new material using the
// normal-mapped model.
func NewNormalMapped(c *ShaderCache, prop *NormalMapped) (*Material, error) {
	if err := prop.validate(); err != nil {
		return nil, err
	}
	return newMaterial(c, normalMapVert, normalMapFrag, func(s *Shader) (*normalMapped, error) {
		u := uniforms{shd: s}
		n := &normalMapped{prop: *prop}
		n.transform.register(&u)
		n.diffuse = addTo[int32](&u, "u_diffuseTex")
		n.normal = addTo[int32](&u, "u_normalTex")
		return n, u.err
	})
}
