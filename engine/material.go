// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"errors"

	"github.com/gviegas/ares/linear"
)

const matPrefix = "material: "

func newMatErr(reason string) error { return errors.New(matPrefix + reason) }

// Material defines the material properties to be applied
// to geometry during rendering.
// Each material uses one shading model, chosen by the
// New* function that created it.
type Material struct {
	shd   *Shader
	model shading
}

// shading is implemented once per shading model.
// upload sets the model's uniforms and activates its
// textures. The model's shader is current when upload
// is called.
type shading interface {
	upload(mv, proj, norm *linear.M4, lights []LightView)
}

// Setup activates the material's shader, binds the vertex
// attributes described by attrs and uploads the
// per-draw uniforms.
// Shading models that use lighting consider only
// lights[0]; if lights is empty, light uniforms are
// left untouched.
func (m *Material) Setup(attrs []*AttribData, mv, proj, norm *linear.M4, lights []LightView) {
	m.shd.Activate(attrs)
	m.model.upload(mv, proj, norm, lights)
}

// Deactivate unbinds attrs and the material's shader.
func (m *Material) Deactivate(attrs []*AttribData) { m.shd.Deactivate(attrs) }

// Shader returns the shader used by m.
// Materials created from the same ShaderCache using the
// same shading model share a *Shader.
func (m *Material) Shader() *Shader { return m.shd }

// newMaterial gets the shader for the given sources
// from c and calls register to create the model.
func newMaterial[S shading](c *ShaderCache, vert, frag string, register func(*Shader) (S, error)) (*Material, error) {
	if c == nil {
		return nil, newMatErr("nil ShaderCache")
	}
	shd, err := c.Get(vert, frag)
	if err != nil {
		return nil, err
	}
	model, err := register(shd)
	if err != nil {
		return nil, err
	}
	return &Material{shd, model}, nil
}

// uniforms is used to register a sequence of uniforms,
// stopping at the first failure.
type uniforms struct {
	shd *Shader
	err error
}

func addTo[T UniformValue](u *uniforms, name string) *Uniform[T] {
	if u.err != nil {
		return nil
	}
	var x *Uniform[T]
	x, u.err = AddUniform[T](u.shd, name)
	return x
}

// transform holds the uniforms shared by lit models.
type transform struct {
	mv, p, norm *Uniform[linear.M4]
	lightPos    *Uniform[linear.V3]
	lightColor  *Uniform[linear.V3]
}

func (t *transform) register(u *uniforms) {
	t.mv = addTo[linear.M4](u, "u_mvMx")
	t.p = addTo[linear.M4](u, "u_pMx")
	t.norm = addTo[linear.M4](u, "u_normMx")
	t.lightPos = addTo[linear.V3](u, "u_lightPos")
	t.lightColor = addTo[linear.V3](u, "u_lightColor")
}

func (t *transform) upload(mv, proj, norm *linear.M4, lights []LightView) {
	t.mv.Set(*mv)
	t.p.Set(*proj)
	t.norm.Set(*norm)
	if len(lights) == 0 {
		return
	}
	t.lightPos.Set(lights[0].Position)
	if l := lights[0].Light; l != nil {
		t.lightColor.Set(lightColor(l))
	}
}

// lightColor returns the color of l scaled by its
// intensity.
// Direction, range and cone angles are not shaded.
func lightColor(l *Light) linear.V3 {
	var c linear.V3
	r, g, b := l.Color()
	c.Scale(l.Intensity(), &linear.V3{r, g, b})
	return c
}

func validateColor(c []float32, what string) error {
	for _, x := range c {
		if x < 0 || x > 1 {
			return newMatErr(what + " outside [0.0, 1.0] interval")
		}
	}
	return nil
}
