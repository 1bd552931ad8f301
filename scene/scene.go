// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package scene provides functionality for creating and
// rendering scene graphs.
package scene

import (
	"errors"
	"fmt"

	"github.com/gviegas/ares/engine"
)

const prefix = "scene: "

func newErr(reason string) error { return errors.New(prefix + reason) }

var (
	ErrNilContext    = newErr("nil DrawingContext")
	ErrNilParent     = newErr("nil or foreign parent node")
	ErrDuplicateName = newErr("duplicate node name")
	ErrNotCamera     = newErr("not a camera node of this scene")
)

// DrawingContext is the interface of the platform
// context that a scene renders into.
type DrawingContext interface {
	// IsDeviceOpen reports whether the device can
	// be drawn to.
	IsDeviceOpen() bool

	// Activate makes the context current.
	Activate() error

	// Deactivate releases the context.
	Deactivate() error

	// Draw presents the rendered frame.
	Draw() error
}

// Scene defines a scene graph.
type Scene struct {
	name  string
	ctx   DrawingContext
	root  *Node
	cam   *Node
	names map[string]*Node
}

// New creates a new scene that renders into ctx.
// The scene starts with an empty root node.
func New(name string, ctx DrawingContext) (*Scene, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	s := &Scene{
		name:  name,
		ctx:   ctx,
		root:  newNode("", EmptyNode),
		names: make(map[string]*Node),
	}
	s.root.scene = s
	return s, nil
}

// Name returns the scene's name.
func (s *Scene) Name() string { return s.name }

// Context returns the scene's drawing context.
func (s *Scene) Context() DrawingContext { return s.ctx }

// Root returns the scene's root node.
func (s *Scene) Root() *Node { return s.root }

// insert adds n as the last descendant of parent.
// Non-empty names must be unique within s.
func (s *Scene) insert(n, parent *Node) (*Node, error) {
	if parent == nil || parent.scene != s {
		return nil, ErrNilParent
	}
	if n.name != "" {
		if _, ok := s.names[n.name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, n.name)
		}
		s.names[n.name] = n
	}
	n.scene = s
	n.parent = parent
	parent.sub = append(parent.sub, n)
	return n, nil
}

// CreateNode creates an empty node as a descendant
// of parent.
func (s *Scene) CreateNode(name string, parent *Node) (*Node, error) {
	return s.insert(newNode(name, EmptyNode), parent)
}

// CreateMeshNode creates a mesh node as a descendant
// of parent.
func (s *Scene) CreateMeshNode(name string, parent *Node, mesh *engine.Mesh) (*Node, error) {
	if mesh == nil {
		return nil, newErr("nil engine.Mesh")
	}
	n := newNode(name, MeshNode)
	n.mesh = mesh
	return s.insert(n, parent)
}

// CreateCameraNode creates a camera node as a
// descendant of parent.
func (s *Scene) CreateCameraNode(name string, parent *Node, cam Camera) (*Node, error) {
	if cam == nil {
		return nil, newErr("nil Camera")
	}
	n := newNode(name, CameraNode)
	n.cam = cam
	return s.insert(n, parent)
}

// CreateLightNode creates a light node as a
// descendant of parent.
func (s *Scene) CreateLightNode(name string, parent *Node, light *engine.Light) (*Node, error) {
	if light == nil {
		return nil, newErr("nil engine.Light")
	}
	n := newNode(name, LightNode)
	n.light = light
	return s.insert(n, parent)
}

// Node returns the node with the given name, or nil
// if there is no such node.
func (s *Scene) Node(name string) *Node { return s.names[name] }

// SetActiveCamera sets the camera node used for
// rendering.
func (s *Scene) SetActiveCamera(n *Node) error {
	if n == nil || n.typ != CameraNode || n.scene != s {
		return ErrNotCamera
	}
	s.cam = n
	return nil
}

// ActiveCamera returns the active camera node, or nil
// if none was set.
func (s *Scene) ActiveCamera() *Node { return s.cam }

// Walk calls f for every node of s in depth-first
// order, ancestors first and siblings in insertion
// order. It stops when f returns false.
// Nil nodes are skipped.
func (s *Scene) Walk(f func(*Node) bool) {
	var walk func(*Node) bool
	walk = func(n *Node) bool {
		if n == nil {
			return true
		}
		if !f(n) {
			return false
		}
		for _, sub := range n.sub {
			if !walk(sub) {
				return false
			}
		}
		return true
	}
	walk(s.root)
}

// LightNodes returns every light node of s in
// depth-first order.
func (s *Scene) LightNodes() []*Node {
	var ls []*Node
	s.Walk(func(n *Node) bool {
		if n.typ == LightNode {
			ls = append(ls, n)
		}
		return true
	})
	return ls
}

// Activate activates the drawing context.
func (s *Scene) Activate() error { return s.ctx.Activate() }

// Deactivate deactivates the drawing context.
func (s *Scene) Deactivate() error { return s.ctx.Deactivate() }
