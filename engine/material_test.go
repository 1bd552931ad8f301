// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/ares/driver/trace"
	"github.com/gviegas/ares/linear"
)

func identities() (mv, proj, norm linear.M4) {
	mv.I()
	proj.I()
	norm.I()
	return
}

func uniformOf(t *testing.T, m *Material, name string) any {
	t.Helper()
	v, ok := m.Shader().Program().(*trace.Program).Uniform(name)
	require.True(t, ok, "uniform %s not set", name)
	return v
}

func TestMaterialShared(t *testing.T) {
	gpu := trace.New()
	c := NewShaderCache(gpu)

	red, err := NewFlatColor(c, &FlatColor{Color: [4]float32{1, 0, 0, 1}})
	require.NoError(t, err)
	blue, err := NewFlatColor(c, &FlatColor{Color: [4]float32{0, 0, 1, 1}})
	require.NoError(t, err)
	assert.Same(t, red.Shader(), blue.Shader())
	assert.Equal(t, 1, c.Len())

	mv, proj, norm := identities()
	red.Setup(nil, &mv, &proj, &norm, nil)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, uniformOf(t, red, "u_color"))
	blue.Setup(nil, &mv, &proj, &norm, nil)
	assert.Equal(t, [4]float32{0, 0, 1, 1}, uniformOf(t, blue, "u_color"))
	blue.Deactivate(nil)
	assert.NoError(t, gpu.Err())

	_, err = NewPhong(c, &Phong{Ka: 1, Kd: 1, Ks: 1, Shininess: 8})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestMaterialValidation(t *testing.T) {
	gpu := trace.New()
	c := NewShaderCache(gpu)

	_, err := NewFlatColor(nil, &FlatColor{})
	assert.Error(t, err)
	_, err = NewFlatColor(c, &FlatColor{Color: [4]float32{2, 0, 0, 1}})
	assert.Error(t, err)
	_, err = NewFlatTex(c, &FlatTex{})
	assert.Error(t, err)
	_, err = NewPhong(c, &Phong{Ka: -1})
	assert.Error(t, err)
	_, err = NewNormalMapped(c, &NormalMapped{Diffuse: newTestTexture(t, gpu)})
	assert.Error(t, err)
	_, err = NewNormalMapped(c, &NormalMapped{Normal: newTestTexture(t, gpu)})
	assert.Error(t, err)
	_, err = NewPBR(c, &PBR{MetalRough: MetalRough{Roughness: 1.5}})
	assert.Error(t, err)
	_, err = NewPBR(c, &PBR{Occlusion: OcclusionMap{Strength: -1}})
	assert.Error(t, err)
	assert.Equal(t, 0, c.Len(), "invalid properties must not compile shaders")

	// A uniform that the program lacks fails creation.
	gpu.Inactive["u_color"] = true
	_, err = NewFlatColor(c, &FlatColor{})
	assert.Error(t, err)
}

func TestMaterialTextures(t *testing.T) {
	gpu := trace.New()
	c := NewShaderCache(gpu)
	diff := newTestTexture(t, gpu)
	norm := newTestTexture(t, gpu)

	m, err := NewNormalMapped(c, &NormalMapped{Diffuse: diff, Normal: norm})
	require.NoError(t, err)
	mv, proj, nx := identities()
	m.Setup(nil, &mv, &proj, &nx, []LightView{{Position: linear.V3{1, 2, 3}}})
	assert.Same(t, diff.tex, gpu.TextureAt(0))
	assert.Same(t, norm.tex, gpu.TextureAt(1))
	assert.Equal(t, int32(0), uniformOf(t, m, "u_diffuseTex"))
	assert.Equal(t, int32(1), uniformOf(t, m, "u_normalTex"))
	assert.Equal(t, [3]float32{1, 2, 3}, uniformOf(t, m, "u_lightPos"))

	f, err := NewFlatTex(c, &FlatTex{Texture: norm})
	require.NoError(t, err)
	f.Setup(nil, &mv, &proj, &nx, nil)
	assert.Same(t, norm.tex, gpu.TextureAt(0))
	assert.Equal(t, int32(0), uniformOf(t, f, "u_tex"))
	assert.NoError(t, gpu.Err())
}

func TestMaterialNoLights(t *testing.T) {
	gpu := trace.New()
	m, err := NewPhong(NewShaderCache(gpu), &Phong{Kd: 1, Diffuse: [3]float32{1, 1, 1}})
	require.NoError(t, err)

	mv, proj, norm := identities()
	mv.Translate(0, 0, -5)
	m.Setup(nil, &mv, &proj, &norm, nil)
	_, ok := m.Shader().Program().(*trace.Program).Uniform("u_lightPos")
	assert.False(t, ok, "light position must not be set without lights")
	assert.Equal(t, [3]float32{1, 1, 1}, uniformOf(t, m, "u_diffuseColor"))
	mvx := uniformOf(t, m, "u_mvMx").([16]float32)
	assert.Equal(t, float32(-5), mvx[14])

	m.Setup(nil, &mv, &proj, &norm, []LightView{{Position: linear.V3{0, 4, 0}}, {Position: linear.V3{9, 9, 9}}})
	assert.Equal(t, [3]float32{0, 4, 0}, uniformOf(t, m, "u_lightPos"), "only the first light is used")
	_, ok = m.Shader().Program().(*trace.Program).Uniform("u_lightColor")
	assert.False(t, ok, "light color must not be set without a Light")
}

func TestMaterialLightColor(t *testing.T) {
	gpu := trace.New()
	c := NewShaderCache(gpu)
	tex := newTestTexture(t, gpu)
	phong, err := NewPhong(c, &Phong{Kd: 1, Diffuse: [3]float32{1, 1, 1}})
	require.NoError(t, err)
	nmap, err := NewNormalMapped(c, &NormalMapped{Diffuse: tex, Normal: tex})
	require.NoError(t, err)
	pbr, err := NewPBR(c, &PBR{BaseColor: BaseColor{Factor: [4]float32{1, 1, 1, 1}}})
	require.NoError(t, err)

	first := (&PointLight{Intensity: 2, R: 1, G: 0.5, B: 0.25}).Light()
	second := (&DistantLight{Direction: linear.V3{0, 0, -1}, Intensity: 1, R: 1, G: 1, B: 1}).Light()
	lights := []LightView{{Light: &first}, {Light: &second}}
	mv, proj, norm := identities()
	for _, m := range []*Material{phong, nmap, pbr} {
		m.Setup(nil, &mv, &proj, &norm, lights)
		assert.Equal(t, [3]float32{2, 1, 0.5}, uniformOf(t, m, "u_lightColor"))
		m.Deactivate(nil)
	}
}

func TestPBR(t *testing.T) {
	gpu := trace.New()
	base := newTestTexture(t, gpu)
	occ := newTestTexture(t, gpu)
	m, err := NewPBR(NewShaderCache(gpu), &PBR{
		BaseColor:  BaseColor{Texture: base, Factor: [4]float32{1, 1, 1, 1}},
		MetalRough: MetalRough{Metalness: 0.25, Roughness: 0.75},
		Occlusion:  OcclusionMap{Texture: occ, Strength: 1},
		Normal:     NormalMap{Scale: 1},
	})
	require.NoError(t, err)

	mv, proj, norm := identities()
	m.Setup(nil, &mv, &proj, &norm, nil)
	assert.Equal(t, int32(1), uniformOf(t, m, "u_hasBaseColorTex"))
	assert.Equal(t, int32(1), uniformOf(t, m, "u_hasOcclusionTex"))
	assert.Equal(t, int32(0), uniformOf(t, m, "u_hasNormalTex"))
	assert.Equal(t, int32(0), uniformOf(t, m, "u_hasEmissiveTex"))
	assert.Equal(t, int32(0), uniformOf(t, m, "u_hasMetalRoughnessTex"))
	assert.Equal(t, float32(0.75), uniformOf(t, m, "u_roughnessFactor"))
	assert.Equal(t, float32(0.25), uniformOf(t, m, "u_metallicFactor"))
	assert.Same(t, base.tex, gpu.TextureAt(pbrBaseColor))
	assert.Same(t, occ.tex, gpu.TextureAt(pbrOcclusion))
	assert.Nil(t, gpu.TextureAt(pbrNormal))
	assert.Equal(t, 2, gpu.Count("ActiveTexture"))
	assert.NoError(t, gpu.Err())
}
