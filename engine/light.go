// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/chewxy/math32"

	"github.com/gviegas/ares/linear"
)

// LightType is the type of light sources.
type LightType int

// Light types.
const (
	DistantLightType LightType = iota
	PointLightType
	SpotLightType
)

// Light defines a light source.
// A light has no position of its own; it is placed in
// the world by the scene node that carries it.
// The zero value for Light is not valid; one must
// call DistantLight.Light, PointLight.Light or
// SpotLight.Light to create an initialized Light.
// Lit materials shade with the light's color scaled by
// its intensity. Direction, range and cone angles are
// kept for the scene's use but not shaded.
type Light struct {
	typ       LightType
	direction linear.V3
	intensity float32
	rng       float32
	color     linear.V3
	// Cone angles are stored as the scale/offset
	// used for angular attenuation.
	// Ignored if typ is not SpotLightType.
	angScale  float32
	angOffset float32
	cosOuter  float32
}

// Type returns the type of l.
func (l *Light) Type() LightType { return l.typ }

// SetDirection sets the direction of l.
// It does not normalize d.
// Only applies to distant and spot lights.
func (l *Light) SetDirection(d *linear.V3) { l.direction = *d }

// Direction returns the direction of l.
// Only applies to distant and spot lights.
func (l *Light) Direction() linear.V3 { return l.direction }

// SetIntensity sets the intensity of l.
func (l *Light) SetIntensity(i float32) { l.intensity = max(0, i) }

// Intensity returns the intensity of l.
func (l *Light) Intensity() float32 { return l.intensity }

// SetRange sets the falloff range of l.
// Only applies to point and spot lights.
func (l *Light) SetRange(r float32) { l.rng = r }

// Range returns the falloff range of l.
// Only applies to point and spot lights.
func (l *Light) Range() float32 { return l.rng }

// SetColor sets the RGB color of l.
func (l *Light) SetColor(r, g, b float32) { l.color = linear.V3{r, g, b} }

// Color returns the RGB color of l.
func (l *Light) Color() (r, g, b float32) {
	r, g, b = l.color[0], l.color[1], l.color[2]
	return
}

// SetConeAngles sets the inner/outer cone angles of l.
// Cone angles that exceed math.Pi/2, or that are less
// than zero, will be clamped. The inner angle will be
// adjusted such that it is less than the outer angle.
// Only applies to spot lights.
func (l *Light) SetConeAngles(inner, outer float32) {
	var (
		i    = max(0, min(inner, math32.Pi/2-1e-3))
		o    = max(i+1e-3, min(outer, math32.Pi/2))
		cosi = math32.Cos(i)
		coso = math32.Cos(o)
	)
	l.angScale = 1 / (cosi - coso)
	l.angOffset = l.angScale * -coso
	l.cosOuter = coso
}

// ConeAngles returns the inner/outer cone angles of l.
// Note that it returns the clamped angles (see the doc
// for Light.SetConeAngles).
// Only applies to spot lights.
func (l *Light) ConeAngles() (inner, outer float32) {
	cosi := (1 / l.angScale) + l.cosOuter
	inner = math32.Acos(cosi)
	outer = math32.Acos(l.cosOuter)
	return
}

// DistantLight is a directional light.
// The light is emitted in the given Direction.
// It behaves as if located infinitely far way.
// Intensity is the illuminance in lux.
type DistantLight struct {
	Direction linear.V3
	Intensity float32
	R, G, B   float32
}

// Light creates the light source described by t.
// t.Direction must have length 1.
// t.R/G/B must be in the range [0, 1].
func (t *DistantLight) Light() (light Light) {
	light.typ = DistantLightType
	light.SetIntensity(t.Intensity)
	light.SetColor(t.R, t.G, t.B)
	light.SetDirection(&t.Direction)
	return
}

// PointLight is an omnidirectional, positional light.
// The light is emitted in all directions from the
// position of its node.
// Range determines the area affected by the light.
// Intensity is the luminous intensity in candela.
type PointLight struct {
	Range     float32
	Intensity float32
	R, G, B   float32
}

// Light creates the light source described by t.
// t.R/G/B must be in the range [0, 1].
// t.Range may be set to 0 or less to indicate an
// infinite range.
func (t *PointLight) Light() (light Light) {
	light.typ = PointLightType
	light.SetIntensity(t.Intensity)
	light.SetRange(t.Range)
	light.SetColor(t.R, t.G, t.B)
	return
}

// SpotLight is a directional, positional light.
// The light is emitted in a cone in the given Direction
// from the position of its node.
// InnerAngle and OuterAngle (in radians), alongside
// Range, determine the area affected by the light.
// Intensity is the luminous intensity in candela.
type SpotLight struct {
	Direction  linear.V3
	InnerAngle float32
	OuterAngle float32
	Range      float32
	Intensity  float32
	R, G, B    float32
}

// Light creates the light source described by t.
// t.Direction must have length 1.
// t.R/G/B must be in the range [0, 1].
// t.Range may be set to 0 or less to indicate an
// infinite range.
// The cone angles will be adjusted as per
// Light.SetConeAngles.
func (t *SpotLight) Light() (light Light) {
	light.typ = SpotLightType
	light.SetIntensity(t.Intensity)
	light.SetRange(t.Range)
	light.SetColor(t.R, t.G, t.B)
	light.SetConeAngles(t.InnerAngle, t.OuterAngle)
	light.SetDirection(&t.Direction)
	return
}

// LightView is a light paired with its position in
// view space for the frame being rendered.
type LightView struct {
	Light    *Light
	Position linear.V3
}
