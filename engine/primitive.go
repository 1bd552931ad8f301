// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"errors"

	"github.com/gviegas/ares/driver"
	"github.com/gviegas/ares/linear"
)

const primPrefix = "primitive: "

func newPrimErr(reason string) error { return errors.New(primPrefix + reason) }

// Topology is the type of primitive topology.
type Topology int

// Topologies.
const (
	TriangleList Topology = iota
	TriangleStrip
	TriangleFan
)

func (t Topology) driverTopology() (driver.Topology, bool) {
	switch t {
	case TriangleList:
		return driver.TTriangle, true
	case TriangleStrip:
		return driver.TTriStrip, true
	case TriangleFan:
		return driver.TTriFan, true
	}
	return 0, false
}

// String implements fmt.Stringer.
func (t Topology) String() string {
	switch t {
	case TriangleList:
		return "TriangleList"
	case TriangleStrip:
		return "TriangleStrip"
	case TriangleFan:
		return "TriangleFan"
	}
	return "Topology(?)"
}

// Primitive is the data for a single draw call.
type Primitive struct {
	attrs []*AttribData
	topo  Topology
	count int
	mat   *Material
	index *AttribData
}

// NewPrimitive creates a new primitive.
// count is the number of vertices to draw, or the number
// of indices if index is not nil. index, when present,
// must refer to a buffer created with driver.BIndex.
func NewPrimitive(attrs []*AttribData, topo Topology, count int, mat *Material, index *AttribData) (*Primitive, error) {
	if mat == nil {
		return nil, newPrimErr("nil Material")
	}
	if _, ok := topo.driverTopology(); !ok {
		return nil, newPrimErr("invalid Topology")
	}
	if count < 0 {
		return nil, newPrimErr("negative count")
	}
	if index != nil {
		if index.Buffer == nil {
			return nil, newPrimErr("index data has nil Buffer")
		}
		if _, err := index.indexFmt(); err != nil {
			return nil, err
		}
	}
	return &Primitive{
		attrs: append([]*AttribData(nil), attrs...),
		topo:  topo,
		count: count,
		mat:   mat,
		index: index,
	}, nil
}

// Attribs returns the vertex attributes of p.
// It must not be modified.
func (p *Primitive) Attribs() []*AttribData { return p.attrs }

// Topology returns the topology of p.
func (p *Primitive) Topology() Topology { return p.topo }

// Count returns the vertex (or index) count of p.
func (p *Primitive) Count() int { return p.count }

// Material returns the material of p.
func (p *Primitive) Material() *Material { return p.mat }

// Index returns the index data of p, or nil if p is
// not indexed.
func (p *Primitive) Index() *AttribData { return p.index }

// Draw sets up the material and issues the draw call.
// Any error recorded by the GPU during the call is
// returned.
func (p *Primitive) Draw(mv, proj, norm *linear.M4, lights []LightView) error {
	gpu := p.mat.shd.gpu
	topo, _ := p.topo.driverTopology()
	p.mat.Setup(p.attrs, mv, proj, norm, lights)
	if p.index != nil {
		ifmt, _ := p.index.indexFmt()
		p.index.Buffer.Bind()
		gpu.DrawIndexed(topo, p.count, ifmt, p.index.Offset)
		p.index.Buffer.Unbind()
	} else {
		gpu.Draw(topo, 0, p.count)
	}
	p.mat.Deactivate(p.attrs)
	return gpu.Err()
}
