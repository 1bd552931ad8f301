// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"errors"

	"github.com/gviegas/ares/driver"
)

// Vertex attribute names.
// Shaders declare their inputs using these names.
const (
	Position  = "POSITION"
	Normal    = "NORMAL"
	Tangent   = "TANGENT"
	TexCoord0 = "TEXCOORD_0"
	Color0    = "COLOR_0"
)

// Buffer is a GPU buffer holding vertex or index data.
type Buffer struct {
	gpu driver.GPU
	buf driver.Buffer
}

// NewBuffer creates a new buffer containing a copy
// of data.
func NewBuffer(gpu driver.GPU, target driver.BufTarget, data []byte) (*Buffer, error) {
	if len(data) == 0 {
		return nil, errors.New("buffer: empty data")
	}
	buf, err := gpu.NewBuffer(target, data)
	if err != nil {
		return nil, err
	}
	return &Buffer{gpu, buf}, nil
}

// Target returns the binding target of b.
func (b *Buffer) Target() driver.BufTarget { return b.buf.Target() }

// Len returns the size of b in bytes.
func (b *Buffer) Len() int { return b.buf.Len() }

// Bind binds b to its target.
func (b *Buffer) Bind() { b.gpu.BindBuffer(b.buf.Target(), b.buf) }

// Unbind unbinds whatever buffer is bound to the
// target of b.
func (b *Buffer) Unbind() { b.gpu.BindBuffer(b.buf.Target(), nil) }

// Destroy destroys b.
func (b *Buffer) Destroy() {
	if b.buf != nil {
		b.buf.Destroy()
		b.buf = nil
	}
}

// AttribData describes how a vertex attribute (or the
// index data of a Primitive) is laid out in a Buffer.
type AttribData struct {
	// Name of the attribute, such as Position.
	// It is ignored for index data.
	Name       string
	Buffer     *Buffer
	Size       int
	Type       driver.CompType
	Normalized bool
	// Stride of 0 means tightly packed.
	Stride int
	// Offset in bytes from the start of Buffer.
	Offset int
}

// indexFmt returns the driver.IndexFmt of index data.
func (a *AttribData) indexFmt() (driver.IndexFmt, error) {
	switch a.Type {
	case driver.UInt8:
		return driver.Index8, nil
	case driver.UInt16:
		return driver.Index16, nil
	case driver.UInt32:
		return driver.Index32, nil
	}
	return 0, errors.New("buffer: invalid index type")
}
