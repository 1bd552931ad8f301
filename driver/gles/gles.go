// Copyright 2024 Gustavo C. Viegas. All rights reserved.

//go:build glfw

// Package gles implements driver.GPU using OpenGL ES 2.
// Open must be called with a current GL context, which
// is typically provided by package wsi.
//
// Importing this package registers a driver named
// "gles2".
package gles

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v3.1/gles2"

	"github.com/gviegas/ares/driver"
)

const prefix = "gles: "

// Driver implements driver.Driver.
type Driver struct {
	gpu *GPU
}

func init() {
	driver.Register(&Driver{})
}

// Open initializes the driver.
// The GL function pointers are loaded from the context
// current at the time of the first call.
func (d *Driver) Open() (driver.GPU, error) {
	if d.gpu != nil {
		return d.gpu, nil
	}
	if err := gl.Init(); err != nil {
		return nil, errors.Join(driver.ErrNotInstalled, err)
	}
	g := &GPU{drv: d}
	var v int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &v)
	g.limits.MaxImage2D = int(v)
	gl.GetIntegerv(gl.MAX_TEXTURE_IMAGE_UNITS, &v)
	g.limits.MaxTexUnit = int(v)
	gl.GetIntegerv(gl.MAX_VERTEX_ATTRIBS, &v)
	g.limits.MaxVertexIn = int(v)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	d.gpu = g
	return g, nil
}

// Name returns "gles2".
func (*Driver) Name() string { return "gles2" }

// Close deinitializes the driver.
func (d *Driver) Close() { d.gpu = nil }

// GPU implements driver.GPU.
type GPU struct {
	drv    *Driver
	limits driver.Limits
}

// Driver returns the driver that owns g.
func (g *GPU) Driver() driver.Driver { return g.drv }

// Limits returns the implementation limits.
func (g *GPU) Limits() driver.Limits { return g.limits }

// Err returns the oldest pending GL error.
// Remaining error flags are drained.
func (g *GPU) Err() error {
	code := gl.GetError()
	if code == gl.NO_ERROR {
		return nil
	}
	for gl.GetError() != gl.NO_ERROR {
	}
	return fmt.Errorf("%w: "+prefix+"GL error 0x%04x", driver.ErrFatal, code)
}

type shaderCode struct {
	id    uint32
	stage driver.Stage
}

func (c *shaderCode) Stage() driver.Stage { return c.stage }
func (c *shaderCode) Destroy()            { gl.DeleteShader(c.id) }

// NewShaderCode compiles src.
func (g *GPU) NewShaderCode(stage driver.Stage, src string) (driver.ShaderCode, error) {
	var typ uint32
	switch stage {
	case driver.SVertex:
		typ = gl.VERTEX_SHADER
	case driver.SFragment:
		typ = gl.FRAGMENT_SHADER
	default:
		return nil, fmt.Errorf("%w: "+prefix+"undefined stage", driver.ErrCompile)
	}
	id := gl.CreateShader(typ)
	if id == 0 {
		return nil, g.Err()
	}
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(id, 1, csrc, nil)
	free()
	gl.CompileShader(id)
	var status int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &n)
		log := infoLog(n, func(p *uint8) { gl.GetShaderInfoLog(id, n, nil, p) })
		gl.DeleteShader(id)
		return nil, fmt.Errorf("%w: %s", driver.ErrCompile, log)
	}
	return &shaderCode{id, stage}, nil
}

func infoLog(n int32, get func(*uint8)) string {
	if n <= 0 {
		return "(no info log)"
	}
	b := make([]byte, n)
	get(&b[0])
	return strings.TrimRight(string(b), "\x00\n")
}

type program struct {
	id uint32
}

func (p *program) Destroy() { gl.DeleteProgram(p.id) }

func (p *program) AttribLocation(name string) int {
	return int(gl.GetAttribLocation(p.id, gl.Str(name+"\x00")))
}

func (p *program) UniformLocation(name string) int {
	return int(gl.GetUniformLocation(p.id, gl.Str(name+"\x00")))
}

// NewProgram links vert and frag.
func (g *GPU) NewProgram(vert, frag driver.ShaderCode) (driver.Program, error) {
	vs, ok1 := vert.(*shaderCode)
	fs, ok2 := frag.(*shaderCode)
	if !ok1 || !ok2 || vs.stage != driver.SVertex || fs.stage != driver.SFragment {
		return nil, fmt.Errorf("%w: "+prefix+"invalid shader codes", driver.ErrLink)
	}
	id := gl.CreateProgram()
	if id == 0 {
		return nil, g.Err()
	}
	gl.AttachShader(id, vs.id)
	gl.AttachShader(id, fs.id)
	gl.LinkProgram(id)
	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &n)
		log := infoLog(n, func(p *uint8) { gl.GetProgramInfoLog(id, n, nil, p) })
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("%w: %s", driver.ErrLink, log)
	}
	return &program{id}, nil
}

var bufTargets = [...]uint32{
	driver.BVertex: gl.ARRAY_BUFFER,
	driver.BIndex:  gl.ELEMENT_ARRAY_BUFFER,
}

type buffer struct {
	id     uint32
	target driver.BufTarget
	n      int
}

func (b *buffer) Target() driver.BufTarget { return b.target }
func (b *buffer) Len() int                 { return b.n }
func (b *buffer) Destroy()                 { gl.DeleteBuffers(1, &b.id) }

// NewBuffer creates a new buffer.
func (g *GPU) NewBuffer(target driver.BufTarget, data []byte) (driver.Buffer, error) {
	if target < 0 || int(target) >= len(bufTargets) {
		return nil, errors.New(prefix + "undefined buffer target")
	}
	b := &buffer{target: target, n: len(data)}
	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(bufTargets[target], b.id)
	var p unsafe.Pointer
	if len(data) > 0 {
		p = gl.Ptr(data)
	}
	gl.BufferData(bufTargets[target], len(data), p, gl.STATIC_DRAW)
	gl.BindBuffer(bufTargets[target], 0)
	if err := g.Err(); err != nil {
		gl.DeleteBuffers(1, &b.id)
		return nil, errors.Join(driver.ErrNoDeviceMemory, err)
	}
	return b, nil
}

type texture struct {
	id            uint32
	width, height int
}

func (t *texture) Width() int  { return t.width }
func (t *texture) Height() int { return t.height }
func (t *texture) Destroy()    { gl.DeleteTextures(1, &t.id) }

func filter(f, mip driver.Filter) int32 {
	switch mip {
	case driver.FNearest:
		if f == driver.FNearest {
			return gl.NEAREST_MIPMAP_NEAREST
		}
		return gl.LINEAR_MIPMAP_NEAREST
	case driver.FLinear:
		if f == driver.FNearest {
			return gl.NEAREST_MIPMAP_LINEAR
		}
		return gl.LINEAR_MIPMAP_LINEAR
	}
	if f == driver.FNearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}

func addrMode(a driver.AddrMode) int32 {
	switch a {
	case driver.AMirror:
		return gl.MIRRORED_REPEAT
	case driver.AClamp:
		return gl.CLAMP_TO_EDGE
	}
	return gl.REPEAT
}

// NewTexture creates a new texture.
func (g *GPU) NewTexture(param *driver.TexParam) (driver.Texture, error) {
	if param.Width <= 0 || param.Height <= 0 ||
		param.Width > g.limits.MaxImage2D || param.Height > g.limits.MaxImage2D {
		return nil, errors.New(prefix + "invalid texture size")
	}
	if len(param.Data) != param.Width*param.Height*param.PixelFmt.Size() {
		return nil, errors.New(prefix + "texture data size mismatch")
	}
	var format uint32 = gl.RGBA
	if param.PixelFmt == driver.RGB8un {
		format = gl.RGB
	}
	t := &texture{width: param.Width, height: param.Height}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(format), int32(param.Width), int32(param.Height), 0, format, gl.UNSIGNED_BYTE, gl.Ptr(param.Data))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, filter(param.Min, param.Mipmap))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, filter(param.Mag, driver.FNoMipmap))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, addrMode(param.AddrU))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, addrMode(param.AddrV))
	if param.Mipmap != driver.FNoMipmap {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if err := g.Err(); err != nil {
		gl.DeleteTextures(1, &t.id)
		return nil, errors.Join(driver.ErrNoDeviceMemory, err)
	}
	return t, nil
}
