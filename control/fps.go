// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package control provides node controllers driven by
// input events.
package control

import (
	"errors"

	"github.com/chewxy/math32"

	"github.com/gviegas/ares/event"
	"github.com/gviegas/ares/linear"
	"github.com/gviegas/ares/scene"
)

// FPSConfig configures an FPS controller.
// Zero fields are replaced by their defaults.
type FPSConfig struct {
	// Distance moved per Process call while a
	// movement key is held.
	//
	// Default is 0.05.
	Speed float32 `toml:"speed" yaml:"speed"`

	// Horizontal pointer distance that yaws by π
	// radians.
	//
	// Default is 1000.
	YawScale float32 `toml:"yaw_scale" yaml:"yaw_scale"`

	// Vertical pointer distance that pitches by π
	// radians.
	//
	// Default is 400.
	PitchScale float32 `toml:"pitch_scale" yaml:"pitch_scale"`
}

// DefaultFPSConfig returns the default configuration.
func DefaultFPSConfig() FPSConfig {
	return FPSConfig{Speed: 0.05, YawScale: 1000, PitchScale: 400}
}

// FPS is a first-person controller.
// W/S move the node along its local Z axis and A/D
// along its local X axis, keeping its height.
// Pointer motion yaws and pitches the node; pitch is
// clamped to [-π/2, π/2].
type FPS struct {
	d    *event.Dispatcher
	sub  event.Subscription
	node *scene.Node
	cfg  FPSConfig

	fwd, back, left, right bool

	primed       bool
	lastX, lastY float32
	nextX, nextY float32
	pitch, yaw   float32
}

// NewFPS creates a controller for node that consumes
// key and touch events from d.
func NewFPS(d *event.Dispatcher, node *scene.Node, cfg *FPSConfig) (*FPS, error) {
	if d == nil || node == nil {
		return nil, errors.New("control: nil Dispatcher or Node")
	}
	c := &FPS{d: d, node: node, cfg: DefaultFPSConfig()}
	if cfg != nil {
		if cfg.Speed != 0 {
			c.cfg.Speed = cfg.Speed
		}
		if cfg.YawScale != 0 {
			c.cfg.YawScale = cfg.YawScale
		}
		if cfg.PitchScale != 0 {
			c.cfg.PitchScale = cfg.PitchScale
		}
	}
	c.sub = d.Subscribe(event.AllKey|event.AllTouch, c.handle)
	return c, nil
}

// Node returns the controlled node.
func (c *FPS) Node() *scene.Node { return c.node }

func (c *FPS) handle(e event.Event) {
	switch e := e.(type) {
	case event.KeyEvent:
		pressed := e.Kind == event.KeyPress
		switch e.Key {
		case event.KeyW:
			c.fwd = pressed
		case event.KeyA:
			c.left = pressed
		case event.KeyS:
			c.back = pressed
		case event.KeyD:
			c.right = pressed
		}
	case event.TouchEvent:
		if e.Kind != event.TouchMove {
			return
		}
		if !c.primed {
			c.lastX, c.lastY = e.X, e.Y
			c.primed = true
		}
		c.nextX, c.nextY = e.X, e.Y
	}
}

// Process updates the node's transform from the
// input received since the last call.
// It is meant to be called once per frame.
func (c *FPS) Process() {
	local := c.node.Local()
	t := local.Translation()

	dx := c.nextX - c.lastX
	dy := c.nextY - c.lastY
	c.lastX, c.lastY = c.nextX, c.nextY
	c.pitch -= dy / c.cfg.PitchScale * math32.Pi
	c.pitch = max(-math32.Pi/2, min(c.pitch, math32.Pi/2))
	c.yaw -= dx / c.cfg.YawScale * math32.Pi

	var m, r linear.M4
	m.RotateX(c.pitch)
	r.RotateY(c.yaw)
	m.Apply(&r)
	r.Translate(t[0], t[1], t[2])
	m.Apply(&r)

	var x, z float32
	if c.fwd {
		z -= c.cfg.Speed
	}
	if c.back {
		z += c.cfg.Speed
	}
	if c.left {
		x -= c.cfg.Speed
	}
	if c.right {
		x += c.cfg.Speed
	}
	m.TranslateLocalXZ(x, z)
	c.node.SetTransform(&m)
}

// Close stops the controller from receiving events.
func (c *FPS) Close() { c.d.Unsubscribe(c.sub) }
