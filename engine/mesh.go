// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/gviegas/ares/linear"
)

// Mesh is a collection of primitives sharing a
// coordinate space.
// Each primitive defines the data for a draw call.
type Mesh struct {
	name  string
	prims []*Primitive
}

// NewMesh creates a new mesh.
func NewMesh(name string, prims ...*Primitive) *Mesh {
	return &Mesh{name, append([]*Primitive(nil), prims...)}
}

// Name returns the mesh's name.
func (m *Mesh) Name() string { return m.name }

// Len returns the number of primitives in m.
func (m *Mesh) Len() int { return len(m.prims) }

// Primitives returns the primitives of m in draw order.
// It must not be modified.
func (m *Mesh) Primitives() []*Primitive { return m.prims }

// Add appends primitives to m.
func (m *Mesh) Add(prims ...*Primitive) { m.prims = append(m.prims, prims...) }

// Draw draws every primitive of m in order.
// It stops at the first failure.
func (m *Mesh) Draw(mv, proj, norm *linear.M4, lights []LightView) error {
	for _, p := range m.prims {
		if err := p.Draw(mv, proj, norm, lights); err != nil {
			return err
		}
	}
	return nil
}
