// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"

	"github.com/gviegas/ares/linear"
)

func TestDistantLight(t *testing.T) {
	l := (&DistantLight{
		Direction: linear.V3{0, -1, 0},
		Intensity: 3,
		R:         1,
		G:         0.5,
		B:         0.25,
	}).Light()
	assert.Equal(t, DistantLightType, l.Type())
	assert.Equal(t, linear.V3{0, -1, 0}, l.Direction())
	assert.Equal(t, float32(3), l.Intensity())
	r, g, b := l.Color()
	assert.Equal(t, [3]float32{1, 0.5, 0.25}, [3]float32{r, g, b})

	l.SetIntensity(-1)
	assert.Equal(t, float32(0), l.Intensity())
}

func TestPointLight(t *testing.T) {
	l := (&PointLight{Range: 10, Intensity: 2, R: 1, G: 1, B: 1}).Light()
	assert.Equal(t, PointLightType, l.Type())
	assert.Equal(t, float32(10), l.Range())
	assert.Equal(t, float32(2), l.Intensity())
	assert.Equal(t, linear.V3{}, l.Direction())
}

func TestSpotLight(t *testing.T) {
	l := (&SpotLight{
		Direction:  linear.V3{0, 0, -1},
		InnerAngle: 0.2,
		OuterAngle: 0.6,
		Range:      5,
		Intensity:  1,
	}).Light()
	assert.Equal(t, SpotLightType, l.Type())
	inner, outer := l.ConeAngles()
	assert.InDelta(t, 0.2, inner, 1e-3)
	assert.InDelta(t, 0.6, outer, 1e-3)

	// Out of range angles are clamped.
	l.SetConeAngles(-1, math32.Pi)
	inner, outer = l.ConeAngles()
	assert.InDelta(t, 0, inner, 1e-3)
	assert.InDelta(t, math32.Pi/2, outer, 1e-3)

	l.SetConeAngles(1, 0.5)
	inner, outer = l.ConeAngles()
	assert.Less(t, inner, outer)
}
