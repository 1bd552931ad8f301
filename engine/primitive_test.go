// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/ares/driver"
	"github.com/gviegas/ares/driver/trace"
)

func newTestMaterial(t *testing.T, gpu driver.GPU) *Material {
	t.Helper()
	m, err := NewFlatColor(NewShaderCache(gpu), &FlatColor{Color: [4]float32{1, 1, 1, 1}})
	require.NoError(t, err)
	return m
}

func TestPrimitive(t *testing.T) {
	gpu := trace.New()
	mat := newTestMaterial(t, gpu)
	vbuf, err := NewBuffer(gpu, driver.BVertex, make([]byte, 4*3*4))
	require.NoError(t, err)
	attrs := []*AttribData{{Name: Position, Buffer: vbuf, Size: 3, Type: driver.Float32}}

	_, err = NewPrimitive(attrs, TriangleList, 3, nil, nil)
	assert.Error(t, err, "nil material")
	_, err = NewPrimitive(attrs, Topology(-1), 3, mat, nil)
	assert.Error(t, err, "invalid topology")

	p, err := NewPrimitive(attrs, TriangleStrip, 4, mat, nil)
	require.NoError(t, err)
	mv, proj, norm := identities()
	gpu.Reset()
	require.NoError(t, p.Draw(&mv, &proj, &norm, nil))
	calls := gpu.Calls()
	assert.Equal(t, 1, gpu.Count("Draw"))
	assert.Equal(t, 0, gpu.Count("DrawIndexed"))
	assert.Equal(t, "UseProgram", calls[0].Name, "material setup must precede the draw")
	assert.Equal(t, "UseProgram(0)", calls[len(calls)-1].String(), "material deactivation must follow the draw")
	for _, c := range calls {
		if c.Name == "Draw" {
			assert.Equal(t, "Draw(4, 0, 4)", c.String())
		}
	}
}

func TestPrimitiveIndexed(t *testing.T) {
	gpu := trace.New()
	mat := newTestMaterial(t, gpu)
	vbuf, err := NewBuffer(gpu, driver.BVertex, make([]byte, 4*3*4))
	require.NoError(t, err)
	idx := make([]byte, 12)
	for i, x := range []uint16{0, 1, 2, 2, 1, 3} {
		binary.LittleEndian.PutUint16(idx[i*2:], x)
	}
	ibuf, err := NewBuffer(gpu, driver.BIndex, idx)
	require.NoError(t, err)
	attrs := []*AttribData{{Name: Position, Buffer: vbuf, Size: 3, Type: driver.Float32}}

	_, err = NewPrimitive(attrs, TriangleList, 6, mat, &AttribData{Buffer: ibuf, Type: driver.Float32})
	assert.Error(t, err, "invalid index type")
	_, err = NewPrimitive(attrs, TriangleList, 6, mat, &AttribData{Type: driver.UInt16})
	assert.Error(t, err, "nil index buffer")

	p, err := NewPrimitive(attrs, TriangleList, 6, mat, &AttribData{Buffer: ibuf, Type: driver.UInt16})
	require.NoError(t, err)
	mv, proj, norm := identities()
	require.NoError(t, p.Draw(&mv, &proj, &norm, nil))
	assert.Equal(t, 1, gpu.Count("DrawIndexed"))
	assert.Equal(t, 0, gpu.Count("Draw"))
	assert.Nil(t, gpu.Bound(driver.BIndex))

	// Index range exceeding the buffer.
	p, err = NewPrimitive(attrs, TriangleList, 12, mat, &AttribData{Buffer: ibuf, Type: driver.UInt16})
	require.NoError(t, err)
	assert.ErrorIs(t, p.Draw(&mv, &proj, &norm, nil), driver.ErrFatal)
}

func TestMesh(t *testing.T) {
	gpu := trace.New()
	mat := newTestMaterial(t, gpu)
	p1, err := NewPrimitive(nil, TriangleList, 3, mat, nil)
	require.NoError(t, err)
	p2, err := NewPrimitive(nil, TriangleFan, 5, mat, nil)
	require.NoError(t, err)

	m := NewMesh("quad", p1)
	m.Add(p2)
	assert.Equal(t, "quad", m.Name())
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []*Primitive{p1, p2}, m.Primitives())

	mv, proj, norm := identities()
	require.NoError(t, m.Draw(&mv, &proj, &norm, nil))
	var draws []string
	for _, c := range gpu.Calls() {
		if c.Name == "Draw" {
			draws = append(draws, c.String())
		}
	}
	assert.Equal(t, []string{"Draw(3, 0, 3)", "Draw(5, 0, 5)"}, draws, "primitives must draw in order")

	gpu.Fail("lost context")
	assert.Error(t, m.Draw(&mv, &proj, &norm, nil))
}
