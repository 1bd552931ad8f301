// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"github.com/chewxy/math32"

	"github.com/gviegas/ares/linear"
)

// Camera is the interface that camera types
// implement.
type Camera interface {
	// Projection returns the projection matrix.
	Projection() linear.M4
}

// Perspective is a perspective camera.
type Perspective struct {
	aspect, yfov float32
	znear, zfar  float32
	proj         linear.M4
}

// NewPerspective creates a new perspective camera.
// yfov is in radians.
// If zfar is less than or equal to zero, the
// projection has an infinite far plane.
func NewPerspective(aspect, yfov, znear, zfar float32) *Perspective {
	p := &Perspective{aspect: aspect, yfov: yfov, znear: znear, zfar: zfar}
	p.update()
	return p
}

func (p *Perspective) update() {
	t := math32.Tan(p.yfov / 2)
	p.proj = linear.M4{}
	p.proj[0][0] = 1 / (p.aspect * t)
	p.proj[1][1] = 1 / t
	p.proj[2][3] = -1
	if p.zfar > 0 {
		p.proj[2][2] = (p.zfar + p.znear) / (p.znear - p.zfar)
		p.proj[3][2] = 2 * p.zfar * p.znear / (p.znear - p.zfar)
	} else {
		p.proj[2][2] = -1
		p.proj[3][2] = -2 * p.znear
	}
}

// Projection implements Camera.
func (p *Perspective) Projection() linear.M4 { return p.proj }

// SetAspect sets the aspect ratio.
func (p *Perspective) SetAspect(aspect float32) { p.aspect = aspect; p.update() }

// SetYFov sets the vertical field of view.
func (p *Perspective) SetYFov(yfov float32) { p.yfov = yfov; p.update() }

// SetZNear sets the distance of the near plane.
func (p *Perspective) SetZNear(znear float32) { p.znear = znear; p.update() }

// SetZFar sets the distance of the far plane.
func (p *Perspective) SetZFar(zfar float32) { p.zfar = zfar; p.update() }

// Aspect returns the aspect ratio.
func (p *Perspective) Aspect() float32 { return p.aspect }

// YFov returns the vertical field of view.
func (p *Perspective) YFov() float32 { return p.yfov }

// ZNear returns the distance of the near plane.
func (p *Perspective) ZNear() float32 { return p.znear }

// ZFar returns the distance of the far plane.
func (p *Perspective) ZFar() float32 { return p.zfar }

// Orthographic is an orthographic camera.
type Orthographic struct {
	xmag, ymag  float32
	znear, zfar float32
	proj        linear.M4
}

// NewOrthographic creates a new orthographic camera.
// xmag and ymag are half the width and height of
// the view volume.
func NewOrthographic(xmag, ymag, znear, zfar float32) *Orthographic {
	o := &Orthographic{xmag: xmag, ymag: ymag, znear: znear, zfar: zfar}
	o.update()
	return o
}

func (o *Orthographic) update() {
	o.proj = linear.M4{}
	o.proj[0][0] = 1 / o.xmag
	o.proj[1][1] = 1 / o.ymag
	o.proj[2][2] = 2 / (o.znear - o.zfar)
	o.proj[3][2] = (o.zfar + o.znear) / (o.znear - o.zfar)
	o.proj[3][3] = 1
}

// Projection implements Camera.
func (o *Orthographic) Projection() linear.M4 { return o.proj }

// SetMag sets the horizontal and vertical magnification.
func (o *Orthographic) SetMag(xmag, ymag float32) {
	o.xmag, o.ymag = xmag, ymag
	o.update()
}

// SetClip sets the distances of the near and far planes.
func (o *Orthographic) SetClip(znear, zfar float32) {
	o.znear, o.zfar = znear, zfar
	o.update()
}
