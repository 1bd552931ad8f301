// Copyright 2024 Gustavo C. Viegas. All rights reserved.

//go:build glfw

package gles

import (
	gl "github.com/go-gl/gl/v3.1/gles2"

	"github.com/gviegas/ares/driver"
)

// UseProgram sets the current program.
func (*GPU) UseProgram(prog driver.Program) {
	if prog == nil {
		gl.UseProgram(0)
		return
	}
	gl.UseProgram(prog.(*program).id)
}

// BindBuffer binds buf to target.
func (*GPU) BindBuffer(target driver.BufTarget, buf driver.Buffer) {
	if buf == nil {
		gl.BindBuffer(bufTargets[target], 0)
		return
	}
	gl.BindBuffer(bufTargets[target], buf.(*buffer).id)
}

// EnableAttrib enables a vertex attribute.
func (*GPU) EnableAttrib(loc int) { gl.EnableVertexAttribArray(uint32(loc)) }

// DisableAttrib disables a vertex attribute.
func (*GPU) DisableAttrib(loc int) { gl.DisableVertexAttribArray(uint32(loc)) }

var compTypes = [...]uint32{
	driver.Int8:    gl.BYTE,
	driver.UInt8:   gl.UNSIGNED_BYTE,
	driver.Int16:   gl.SHORT,
	driver.UInt16:  gl.UNSIGNED_SHORT,
	driver.UInt32:  gl.UNSIGNED_INT,
	driver.Float32: gl.FLOAT,
}

// AttribPointer describes a vertex attribute.
func (*GPU) AttribPointer(loc, size int, typ driver.CompType, norm bool, stride, off int) {
	gl.VertexAttribPointer(uint32(loc), int32(size), compTypes[typ], norm, int32(stride), gl.PtrOffset(off))
}

// Uniform1i sets an int uniform.
func (*GPU) Uniform1i(loc int, v int32) { gl.Uniform1i(int32(loc), v) }

// Uniform1f sets a float uniform.
func (*GPU) Uniform1f(loc int, v float32) { gl.Uniform1f(int32(loc), v) }

// Uniform3f sets a vec3 uniform.
func (*GPU) Uniform3f(loc int, v [3]float32) { gl.Uniform3f(int32(loc), v[0], v[1], v[2]) }

// Uniform4f sets a vec4 uniform.
func (*GPU) Uniform4f(loc int, v [4]float32) { gl.Uniform4f(int32(loc), v[0], v[1], v[2], v[3]) }

// UniformMat4 sets a mat4 uniform.
func (*GPU) UniformMat4(loc int, v *[16]float32) { gl.UniformMatrix4fv(int32(loc), 1, false, &v[0]) }

// ActiveTexture binds tex to unit.
func (*GPU) ActiveTexture(unit int, tex driver.Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	if tex == nil {
		gl.BindTexture(gl.TEXTURE_2D, 0)
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, tex.(*texture).id)
}

// SetRaster sets the rasterization state.
func (*GPU) SetRaster(rs driver.RasterState) {
	switch rs.Cull {
	case driver.CNone:
		gl.Disable(gl.CULL_FACE)
	case driver.CFront:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	case driver.CBack:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}
	if rs.Clockwise {
		gl.FrontFace(gl.CW)
	} else {
		gl.FrontFace(gl.CCW)
	}
}

var cmpFuncs = [...]uint32{
	driver.CNever:        gl.NEVER,
	driver.CLess:         gl.LESS,
	driver.CEqual:        gl.EQUAL,
	driver.CLessEqual:    gl.LEQUAL,
	driver.CGreater:      gl.GREATER,
	driver.CNotEqual:     gl.NOTEQUAL,
	driver.CGreaterEqual: gl.GEQUAL,
	driver.CAlways:       gl.ALWAYS,
}

// SetDepth sets the depth state.
func (*GPU) SetDepth(ds driver.DSState) {
	if !ds.DepthTest {
		gl.Disable(gl.DEPTH_TEST)
		return
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(cmpFuncs[ds.DepthCmp])
}

// Clear clears buffers.
func (*GPU) Clear(mask driver.ClearMask, cv driver.ClearValue) {
	var bits uint32
	if mask&driver.ClearColor != 0 {
		gl.ClearColor(cv.Color[0], cv.Color[1], cv.Color[2], cv.Color[3])
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&driver.ClearDepth != 0 {
		gl.ClearDepthf(cv.Depth)
		bits |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(bits)
}

var topologies = [...]uint32{
	driver.TPoint:    gl.POINTS,
	driver.TLine:     gl.LINES,
	driver.TLnStrip:  gl.LINE_STRIP,
	driver.TTriangle: gl.TRIANGLES,
	driver.TTriStrip: gl.TRIANGLE_STRIP,
	driver.TTriFan:   gl.TRIANGLE_FAN,
}

// Draw draws non-indexed primitives.
func (*GPU) Draw(topo driver.Topology, first, count int) {
	gl.DrawArrays(topologies[topo], int32(first), int32(count))
}

// DrawIndexed draws indexed primitives.
func (*GPU) DrawIndexed(topo driver.Topology, count int, format driver.IndexFmt, off int) {
	var typ uint32
	switch format {
	case driver.Index8:
		typ = gl.UNSIGNED_BYTE
	case driver.Index16:
		typ = gl.UNSIGNED_SHORT
	default:
		typ = gl.UNSIGNED_INT
	}
	gl.DrawElements(topologies[topo], int32(count), typ, gl.PtrOffset(off))
}
