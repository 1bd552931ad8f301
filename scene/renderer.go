// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"errors"
	"log/slog"

	"github.com/gviegas/ares/driver"
	"github.com/gviegas/ares/engine"
	"github.com/gviegas/ares/linear"
)

var (
	ErrNilScene = newErr("nil Scene")
	ErrNoCamera = newErr("no active camera")
	ErrNilNode  = newErr("nil node in scene graph")
)

// Renderer renders scenes using a driver.GPU.
// It is not safe for concurrent use, and a scene must
// not be changed while it is being rendered.
type Renderer struct {
	gpu    driver.GPU
	clear  [4]float32
	lights map[*Node]linear.V3
	views  []engine.LightView
	log    *slog.Logger
}

// NewRenderer creates a new renderer.
// The clear color is taken from engine.CurrentConfig.
func NewRenderer(gpu driver.GPU) (*Renderer, error) {
	if gpu == nil {
		return nil, errors.New(prefix + "nil driver.GPU")
	}
	return &Renderer{
		gpu:    gpu,
		clear:  engine.CurrentConfig().ClearColor,
		lights: make(map[*Node]linear.V3),
		log:    slog.Default(),
	}, nil
}

// SetClearColor sets the color used to clear the
// framebuffer.
func (r *Renderer) SetClearColor(c [4]float32) { r.clear = c }

// ClearColor returns the color used to clear the
// framebuffer.
func (r *Renderer) ClearColor() [4]float32 { return r.clear }

// SetLogger sets the logger used by r.
func (r *Renderer) SetLogger(l *slog.Logger) { r.log = l }

// LightPosition returns the view-space position of
// the light node n computed by the last call to Render.
func (r *Renderer) LightPosition(n *Node) (linear.V3, bool) {
	p, ok := r.lights[n]
	return p, ok
}

// Render renders s.
// If the device of the scene's drawing context is not
// open, it does nothing and returns nil.
func (r *Renderer) Render(s *Scene) error {
	switch {
	case s == nil:
		return ErrNilScene
	case s.ctx == nil:
		return ErrNilContext
	case !s.ctx.IsDeviceOpen():
		return nil
	}
	if err := s.Activate(); err != nil {
		return err
	}
	if s.cam == nil || s.cam.cam == nil {
		return ErrNoCamera
	}

	view := s.cam.World()
	view.Invert(&view)
	proj := s.cam.cam.Projection()

	if err := r.computeLights(s, &view); err != nil {
		return err
	}

	r.gpu.SetRaster(driver.RasterState{Clockwise: false, Cull: driver.CBack})
	r.gpu.SetDepth(driver.DSState{DepthTest: true, DepthCmp: driver.CLessEqual})
	r.gpu.Clear(driver.ClearColor|driver.ClearDepth, driver.ClearValue{Color: r.clear, Depth: 1})

	var ident linear.M4
	ident.I()
	meshes, err := r.drawNode(s.root, &ident, &view, &proj)
	if err != nil {
		return err
	}
	r.log.Debug("frame rendered", "scene", s.name, "meshes", meshes, "lights", len(r.views))
	return s.ctx.Draw()
}

// computeLights stores the view-space position of every
// light node of s, in depth-first order.
// It fails with ErrNilNode if the graph has nil nodes,
// in which case nothing is drawn.
func (r *Renderer) computeLights(s *Scene, view *linear.M4) error {
	clear(r.lights)
	r.views = r.views[:0]
	var visit func(n *Node, parent *linear.M4) error
	visit = func(n *Node, parent *linear.M4) error {
		if n == nil {
			return ErrNilNode
		}
		var world linear.M4
		world.Mul(parent, &n.local)
		if n.typ == LightNode {
			var mv linear.M4
			mv.Mul(view, &world)
			var p linear.V4
			p.Mul(&mv, &linear.V4{0, 0, 0, 1})
			pos := linear.V3{p[0] / p[3], p[1] / p[3], p[2] / p[3]}
			r.lights[n] = pos
			r.views = append(r.views, engine.LightView{Light: n.light, Position: pos})
		}
		for _, sub := range n.sub {
			if err := visit(sub, &world); err != nil {
				return err
			}
		}
		return nil
	}
	var ident linear.M4
	ident.I()
	return visit(s.root, &ident)
}

// drawNode draws n and its descendants.
// It returns the number of meshes drawn.
func (r *Renderer) drawNode(n *Node, parent, view, proj *linear.M4) (int, error) {
	if n == nil {
		return 0, ErrNilNode
	}
	var world linear.M4
	world.Mul(parent, &n.local)
	cnt := 0
	if n.typ == MeshNode && n.mesh != nil {
		var mv, norm linear.M4
		mv.Mul(view, &world)
		norm = world
		norm.Invert(&norm)
		norm.Transpose(&norm)
		if err := n.mesh.Draw(&mv, proj, &norm, r.views); err != nil {
			return cnt, err
		}
		cnt++
	}
	for _, sub := range n.sub {
		x, err := r.drawNode(sub, &world, view, proj)
		cnt += x
		if err != nil {
			return cnt, err
		}
	}
	return cnt, nil
}
