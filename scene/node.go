// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"github.com/gviegas/ares/engine"
	"github.com/gviegas/ares/linear"
)

// NodeType is the type of a node.
type NodeType int

// Node types.
const (
	EmptyNode NodeType = iota
	MeshNode
	CameraNode
	LightNode
)

// String implements fmt.Stringer.
func (t NodeType) String() string {
	switch t {
	case EmptyNode:
		return "EmptyNode"
	case MeshNode:
		return "MeshNode"
	case CameraNode:
		return "CameraNode"
	case LightNode:
		return "LightNode"
	}
	return "NodeType(?)"
}

// Node represents a single node in a scene graph.
// Nodes have at most one immediate ancestor and
// an arbitrary number of immediate descendants.
// A node owns its descendants; the reference to
// its ancestor is a back-pointer that remains valid
// for the lifetime of the scene, since nodes are
// never removed.
//
// Nodes are created through the factory methods of
// Scene.
type Node struct {
	name  string
	typ   NodeType
	scene *Scene

	pos   linear.V3
	rot   linear.Q
	scl   linear.V3
	local linear.M4

	parent *Node
	sub    []*Node

	mesh  *engine.Mesh
	cam   Camera
	light *engine.Light
}

func newNode(name string, typ NodeType) *Node {
	n := &Node{name: name, typ: typ}
	n.rot.I()
	n.scl = linear.V3{1, 1, 1}
	n.local.I()
	return n
}

// Name returns the node's name.
func (n *Node) Name() string { return n.name }

// Type returns the node's type.
func (n *Node) Type() NodeType { return n.typ }

// Scene returns the scene that n belongs to.
func (n *Node) Scene() *Scene { return n.scene }

// Parent returns the node's immediate ancestor.
// It is nil for a scene's root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the node's immediate
// descendants, in insertion order.
func (n *Node) Children() []*Node { return append([]*Node(nil), n.sub...) }

// Mesh returns the mesh of a MeshNode.
func (n *Node) Mesh() *engine.Mesh { return n.mesh }

// Camera returns the camera of a CameraNode.
func (n *Node) Camera() Camera { return n.cam }

// Light returns the light of a LightNode.
func (n *Node) Light() *engine.Light { return n.light }

// compose recomputes the local transform from
// position, rotation and scale.
// The scale is applied first, then the rotation and
// then the translation.
func (n *Node) compose() {
	var m linear.M4
	n.local.Scale(n.scl[0], n.scl[1], n.scl[2])
	m.RotateQ(&n.rot)
	n.local.Apply(&m)
	m.Translate(n.pos[0], n.pos[1], n.pos[2])
	n.local.Apply(&m)
}

// SetPosition sets the node's position.
func (n *Node) SetPosition(x, y, z float32) {
	n.pos = linear.V3{x, y, z}
	n.compose()
}

// Position returns the node's position.
func (n *Node) Position() linear.V3 { return n.pos }

// SetRotationEuler sets the node's rotation from
// Euler angles, in radians.
func (n *Node) SetRotationEuler(x, y, z float32) {
	n.rot.Euler(x, y, z)
	n.compose()
}

// SetRotation sets the node's rotation.
func (n *Node) SetRotation(q *linear.Q) {
	n.rot = *q
	n.compose()
}

// Rotation returns the node's rotation.
func (n *Node) Rotation() linear.Q { return n.rot }

// SetScale sets the node's scale factors.
func (n *Node) SetScale(x, y, z float32) {
	n.scl = linear.V3{x, y, z}
	n.compose()
}

// ScaleFactors returns the node's scale factors.
func (n *Node) ScaleFactors() linear.V3 { return n.scl }

// SetTransform replaces the local transform with m.
// Position, rotation and scale are not updated and
// thus will not reflect the new transform. A later
// call to SetPosition, SetRotation, SetRotationEuler
// or SetScale recomposes the local transform from
// these stale values, discarding m.
func (n *Node) SetTransform(m *linear.M4) { n.local = *m }

// Local returns the node's local transform.
func (n *Node) Local() linear.M4 { return n.local }

// World returns the node's world transform.
// It is computed from the root every call.
func (n *Node) World() linear.M4 {
	if n.parent == nil {
		return n.local
	}
	w := n.parent.World()
	w.Mul(&w, &n.local)
	return w
}
