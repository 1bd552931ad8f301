// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"encoding/binary"
	"math"

	"github.com/gviegas/ares/driver"
	"github.com/gviegas/ares/engine"
	"github.com/gviegas/ares/scene"
)

// cubeFaces lists the normal and the four corners
// (counter-clockwise) of each face of a unit cube.
var cubeFaces = [6]struct {
	n [3]float32
	v [4][3]float32
}{
	{[3]float32{1, 0, 0}, [4][3]float32{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}}},
	{[3]float32{-1, 0, 0}, [4][3]float32{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}},
	{[3]float32{0, 1, 0}, [4][3]float32{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}}},
	{[3]float32{0, -1, 0}, [4][3]float32{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}},
	{[3]float32{0, 0, 1}, [4][3]float32{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
	{[3]float32{0, 0, -1}, [4][3]float32{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}},
}

func appendF32(b []byte, fs ...float32) []byte {
	for _, f := range fs {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
	}
	return b
}

// cubeMesh creates an indexed cube whose vertices
// interleave position and normal.
func cubeMesh(cache *engine.ShaderCache) (*engine.Mesh, []*engine.Buffer, error) {
	var verts, idx []byte
	for i, f := range cubeFaces {
		for _, v := range f.v {
			verts = appendF32(verts, v[0], v[1], v[2], f.n[0], f.n[1], f.n[2])
		}
		b := uint16(i * 4)
		for _, j := range [6]uint16{b, b + 1, b + 2, b, b + 2, b + 3} {
			idx = binary.LittleEndian.AppendUint16(idx, j)
		}
	}
	gpu := cache.GPU()
	vbuf, err := engine.NewBuffer(gpu, driver.BVertex, verts)
	if err != nil {
		return nil, nil, err
	}
	ibuf, err := engine.NewBuffer(gpu, driver.BIndex, idx)
	if err != nil {
		vbuf.Destroy()
		return nil, nil, err
	}
	bufs := []*engine.Buffer{vbuf, ibuf}
	mat, err := engine.NewPhong(cache, &engine.Phong{
		Ka:        0.2,
		Kd:        0.8,
		Ks:        0.5,
		Shininess: 32,
		Ambient:   [3]float32{1, 1, 1},
		Diffuse:   [3]float32{0.8, 0.3, 0.2},
		Specular:  [3]float32{1, 1, 1},
	})
	if err != nil {
		destroyBuffers(bufs)
		return nil, nil, err
	}
	const stride = 24
	attrs := []*engine.AttribData{
		{Name: engine.Position, Buffer: vbuf, Size: 3, Type: driver.Float32, Stride: stride},
		{Name: engine.Normal, Buffer: vbuf, Size: 3, Type: driver.Float32, Stride: stride, Offset: 12},
	}
	index := &engine.AttribData{Buffer: ibuf, Size: 1, Type: driver.UInt16}
	prim, err := engine.NewPrimitive(attrs, engine.TriangleList, len(idx)/2, mat, index)
	if err != nil {
		destroyBuffers(bufs)
		return nil, nil, err
	}
	return engine.NewMesh("cube", prim), bufs, nil
}

func destroyBuffers(bufs []*engine.Buffer) {
	for _, b := range bufs {
		b.Destroy()
	}
}

// demoScene creates the scene shown when no file is
// given: a lit cube in front of the camera.
func demoScene(cache *engine.ShaderCache, ctx scene.DrawingContext) (*scene.Scene, []*engine.Buffer, error) {
	mesh, bufs, err := cubeMesh(cache)
	if err != nil {
		return nil, nil, err
	}
	s, err := scene.New("demo", ctx)
	if err != nil {
		destroyBuffers(bufs)
		return nil, nil, err
	}
	cube, err := s.CreateMeshNode("cube", s.Root(), mesh)
	if err == nil {
		cube.SetRotationEuler(0.4, 0.6, 0)
		light := (&engine.PointLight{Intensity: 1, R: 1, G: 1, B: 1}).Light()
		var n *scene.Node
		if n, err = s.CreateLightNode("light", s.Root(), &light); err == nil {
			n.SetPosition(3, 4, 5)
		}
	}
	if err != nil {
		destroyBuffers(bufs)
		return nil, nil, err
	}
	return s, bufs, nil
}
