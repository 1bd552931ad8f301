// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"errors"
	"fmt"

	qgltf "github.com/qmuntal/gltf"
)

func newErr(reason string) error {
	return errors.New("gltf: " + reason)
}

// ErrInvalid is returned (wrapped) when a document
// references an object that does not exist or uses
// a value that cannot be imported.
var ErrInvalid = newErr("invalid document")

func invalid(format string, a ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, a...)...)
}

func inRange(i, n int) bool { return i >= 0 && i < n }

func checkIndex(i *int, n int, what string) error {
	if i != nil && !inRange(*i, n) {
		return invalid("%s index %d out of range", what, *i)
	}
	return nil
}

// check checks that the object indices of doc are
// valid, and that the objects used for rendering
// can be imported.
// Accessors are only checked if a primitive uses
// them.
// It does not validate the contents of buffers.
func check(doc *qgltf.Document) error {
	if err := checkIndex(doc.Scene, len(doc.Scenes), "Document.Scene"); err != nil {
		return err
	}
	for i, s := range doc.Scenes {
		for _, n := range s.Nodes {
			if !inRange(n, len(doc.Nodes)) {
				return invalid("Scenes[%d].Nodes index %d out of range", i, n)
			}
		}
	}
	for i, n := range doc.Nodes {
		if err := checkNode(doc, i, n); err != nil {
			return err
		}
	}
	for i, v := range doc.BufferViews {
		if !inRange(v.Buffer, len(doc.Buffers)) {
			return invalid("BufferViews[%d].Buffer index %d out of range", i, v.Buffer)
		}
		b := doc.Buffers[v.Buffer]
		if int(v.ByteOffset)+int(v.ByteLength) > len(b.Data) {
			return invalid("BufferViews[%d] exceeds buffer data", i)
		}
	}
	for i, m := range doc.Meshes {
		for j, p := range m.Primitives {
			if err := checkPrimitive(doc, i, j, p); err != nil {
				return err
			}
		}
	}
	for i, t := range doc.Textures {
		src, ok := textureSource(t)
		if !ok || !inRange(src, len(doc.Images)) {
			return invalid("Textures[%d] has no valid source", i)
		}
		if err := checkIndex(t.Sampler, len(doc.Samplers), "Texture.Sampler"); err != nil {
			return err
		}
	}
	for i, im := range doc.Images {
		if im.URI == "" && im.BufferView == nil {
			return invalid("Images[%d] has neither uri nor bufferView", i)
		}
		if err := checkIndex(im.BufferView, len(doc.BufferViews), "Image.BufferView"); err != nil {
			return err
		}
	}
	for i, c := range doc.Cameras {
		if c.Perspective == nil && c.Orthographic == nil {
			return invalid("Cameras[%d] has no projection", i)
		}
	}
	return nil
}

func checkNode(doc *qgltf.Document, i int, n *qgltf.Node) error {
	for _, c := range n.Children {
		if !inRange(c, len(doc.Nodes)) || c == i {
			return invalid("Nodes[%d].Children index %d invalid", i, c)
		}
	}
	if err := checkIndex(n.Mesh, len(doc.Meshes), "Node.Mesh"); err != nil {
		return err
	}
	return checkIndex(n.Camera, len(doc.Cameras), "Node.Camera")
}

func checkAccessor(doc *qgltf.Document, i int, a *qgltf.Accessor) error {
	if a.BufferView == nil {
		return invalid("Accessors[%d] has no bufferView", i)
	}
	if err := checkIndex(a.BufferView, len(doc.BufferViews), "Accessor.BufferView"); err != nil {
		return err
	}
	if a.Count < 1 {
		return invalid("Accessors[%d].Count less than 1", i)
	}
	if a.Sparse != nil {
		return invalid("Accessors[%d] is sparse", i)
	}
	switch a.ComponentType {
	case qgltf.ComponentFloat, qgltf.ComponentByte, qgltf.ComponentUbyte,
		qgltf.ComponentShort, qgltf.ComponentUshort, qgltf.ComponentUint:
	default:
		return invalid("Accessors[%d].ComponentType not supported", i)
	}
	switch a.Type {
	case qgltf.AccessorScalar, qgltf.AccessorVec2, qgltf.AccessorVec3, qgltf.AccessorVec4:
	default:
		return invalid("Accessors[%d].Type not supported", i)
	}
	return nil
}

func checkPrimitive(doc *qgltf.Document, i, j int, p *qgltf.Primitive) error {
	if _, ok := p.Attributes[qgltf.POSITION]; !ok {
		return invalid("Meshes[%d].Primitives[%d] has no POSITION", i, j)
	}
	for name, a := range p.Attributes {
		if !inRange(a, len(doc.Accessors)) {
			return invalid("Meshes[%d].Primitives[%d].Attributes[%s] index %d out of range", i, j, name, a)
		}
		if err := checkAccessor(doc, a, doc.Accessors[a]); err != nil {
			return err
		}
	}
	if err := checkIndex(p.Indices, len(doc.Accessors), "Primitive.Indices"); err != nil {
		return err
	}
	if p.Indices != nil {
		if err := checkAccessor(doc, *p.Indices, doc.Accessors[*p.Indices]); err != nil {
			return err
		}
		switch doc.Accessors[*p.Indices].ComponentType {
		case qgltf.ComponentUbyte, qgltf.ComponentUshort, qgltf.ComponentUint:
		default:
			return invalid("Meshes[%d].Primitives[%d] has invalid index type", i, j)
		}
	}
	return checkIndex(p.Material, len(doc.Materials), "Primitive.Material")
}
