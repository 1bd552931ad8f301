// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package driver

// GPU is the interface that defines the GPU commands and
// resources available to a renderer.
// Commands take effect immediately and in order.
// Command methods do not return errors; failures are
// recorded and later reported by Err.
type GPU interface {
	// Driver returns the Driver that owns the GPU.
	Driver() Driver

	// NewShaderCode compiles shader source code for
	// the given stage.
	// Compilation failures are reported as errors
	// that wrap ErrCompile.
	NewShaderCode(stage Stage, src string) (ShaderCode, error)

	// NewProgram links a vertex and a fragment shader
	// code into a program.
	// Link failures are reported as errors that
	// wrap ErrLink.
	NewProgram(vert, frag ShaderCode) (Program, error)

	// NewBuffer creates a new buffer containing a copy
	// of data.
	NewBuffer(target BufTarget, data []byte) (Buffer, error)

	// NewTexture creates a new 2D texture.
	NewTexture(param *TexParam) (Texture, error)

	// UseProgram sets the program used by draw commands.
	// A nil prog unsets the current program.
	UseProgram(prog Program)

	// BindBuffer binds buf to target.
	// A nil buf unbinds the buffer currently bound.
	BindBuffer(target BufTarget, buf Buffer)

	// EnableAttrib enables the vertex attribute at loc.
	EnableAttrib(loc int)

	// DisableAttrib disables the vertex attribute at loc.
	DisableAttrib(loc int)

	// AttribPointer describes how the vertex attribute at
	// loc is fetched from the buffer bound to BVertex.
	AttribPointer(loc, size int, typ CompType, norm bool, stride, off int)

	// Uniform1i sets an int (or sampler) uniform.
	Uniform1i(loc int, v int32)

	// Uniform1f sets a float uniform.
	Uniform1f(loc int, v float32)

	// Uniform3f sets a vec3 uniform.
	Uniform3f(loc int, v [3]float32)

	// Uniform4f sets a vec4 uniform.
	Uniform4f(loc int, v [4]float32)

	// UniformMat4 sets a column-major mat4 uniform.
	UniformMat4(loc int, v *[16]float32)

	// ActiveTexture binds tex to the given texture unit.
	// A nil tex unbinds the texture currently bound.
	ActiveTexture(unit int, tex Texture)

	// SetRaster sets the rasterization state.
	SetRaster(rs RasterState)

	// SetDepth sets the depth test state.
	SetDepth(ds DSState)

	// Clear clears the buffers selected by mask.
	Clear(mask ClearMask, cv ClearValue)

	// Draw draws count vertices starting at first.
	Draw(topo Topology, first, count int)

	// DrawIndexed draws count vertices using indices
	// from the buffer bound to BIndex, starting off
	// bytes into it.
	DrawIndexed(topo Topology, count int, format IndexFmt, off int)

	// Err returns the first error recorded since the last
	// call to Err, or nil if no error occurred.
	// Non-nil errors wrap ErrFatal.
	Err() error

	// Limits returns the implementation limits.
	Limits() Limits
}

// Destroyer is the interface that wraps the Destroy
// method.
// Destroy releases the underlying resource.
// It must be called exactly once, when the resource
// is no longer in use.
type Destroyer interface {
	Destroy()
}

// Stage is the type of programmable stages.
type Stage int

// Programmable stages.
const (
	SVertex Stage = iota
	SFragment
)

// ShaderCode is the interface that defines a compiled
// shader stage.
type ShaderCode interface {
	Destroyer
	Stage() Stage
}

// Program is the interface that defines a linked GPU
// program.
type Program interface {
	Destroyer

	// AttribLocation returns the location of the named
	// vertex attribute, or -1 if it is not active.
	AttribLocation(name string) int

	// UniformLocation returns the location of the named
	// uniform, or -1 if it is not active.
	UniformLocation(name string) int
}

// BufTarget is the type of buffer binding targets.
type BufTarget int

// Buffer targets.
const (
	BVertex BufTarget = iota
	BIndex
)

// Buffer is the interface that defines a GPU buffer.
type Buffer interface {
	Destroyer
	Target() BufTarget
	Len() int
}

// CompType is the type of vertex components.
type CompType int

// Component types.
const (
	Int8 CompType = iota
	UInt8
	Int16
	UInt16
	UInt32
	Float32
)

// Size returns the size in bytes of t.
func (t CompType) Size() int {
	switch t {
	case Int8, UInt8:
		return 1
	case Int16, UInt16:
		return 2
	case UInt32, Float32:
		return 4
	}
	panic("undefined CompType constant")
}

// Topology is the type of primitive topologies,
// which determines how vertex data is assembled.
type Topology int

// Primitive topologies.
const (
	TPoint Topology = iota
	TLine
	TLnStrip
	TTriangle
	TTriStrip
	TTriFan
)

// IndexFmt describes the format of index buffer data.
type IndexFmt int

// Index formats.
const (
	Index8  IndexFmt = 1
	Index16 IndexFmt = 2
	Index32 IndexFmt = 4
)

// CullMode is the type of cull modes, which
// determines primitive culling based on triangle
// facing direction.
type CullMode int

// Cull modes.
const (
	CNone CullMode = iota
	CFront
	CBack
)

// RasterState defines the rasterization state.
type RasterState struct {
	// Winding order of front faces is either
	// clockwise or counter-clockwise.
	Clockwise bool
	Cull      CullMode
}

// CmpFunc is the type of comparison functions.
type CmpFunc int

// Comparison functions.
const (
	CNever CmpFunc = iota
	CLess
	CEqual
	CLessEqual
	CGreater
	CNotEqual
	CGreaterEqual
	CAlways
)

// DSState defines the depth state.
type DSState struct {
	// DepthTest enables the depth test.
	DepthTest bool
	DepthCmp  CmpFunc
}

// ClearMask is the type of clear masks.
type ClearMask int

// Clear masks.
const (
	ClearColor ClearMask = 1 << iota
	ClearDepth
)

// ClearValue defines the values to clear buffers with.
type ClearValue struct {
	Color [4]float32
	Depth float32
}

// PixelFmt describes the format of texture data.
type PixelFmt int

// Pixel formats.
const (
	RGBA8un PixelFmt = iota
	RGB8un
)

// Size returns the size in bytes of a single pixel.
func (f PixelFmt) Size() int {
	switch f {
	case RGBA8un:
		return 4
	case RGB8un:
		return 3
	}
	panic("undefined PixelFmt constant")
}

// Filter is the type of sampler filters.
type Filter int

// Filters.
const (
	FNearest Filter = iota
	FLinear
	// FNoMipmap forces mip level 0 to be used.
	// It is only valid as the mip filter.
	FNoMipmap
)

// AddrMode is the type of sampler address modes.
type AddrMode int

// Address modes.
const (
	AWrap AddrMode = iota
	AMirror
	AClamp
)

// Sampling describes texture sampling state.
type Sampling struct {
	Min    Filter
	Mag    Filter
	Mipmap Filter
	AddrU  AddrMode
	AddrV  AddrMode
}

// TexParam describes the parameters of a new texture.
// Data must contain Width*Height pixels of the given
// format, tightly packed and with the first row at the
// start.
type TexParam struct {
	PixelFmt PixelFmt
	Width    int
	Height   int
	Data     []byte
	Sampling
}

// Texture is the interface that defines a 2D texture.
type Texture interface {
	Destroyer
	Width() int
	Height() int
}

// Limits describes implementation limits.
type Limits struct {
	// Maximum width and height of textures.
	MaxImage2D int
	// Maximum number of texture units usable
	// by the fragment stage.
	MaxTexUnit int
	// Maximum number of vertex attributes.
	MaxVertexIn int
}
