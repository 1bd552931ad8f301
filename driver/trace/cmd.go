// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package trace

import (
	"fmt"

	"github.com/gviegas/ares/driver"
)

// UseProgram sets the current program.
func (g *GPU) UseProgram(prog driver.Program) {
	if prog == nil {
		g.prog = nil
		g.record("UseProgram", 0)
		return
	}
	p, ok := prog.(*Program)
	if !ok || p.dead {
		g.fail("invalid program")
		return
	}
	g.prog = p
	g.record("UseProgram", p.id)
}

// BindBuffer binds buf to target.
func (g *GPU) BindBuffer(target driver.BufTarget, buf driver.Buffer) {
	if target != driver.BVertex && target != driver.BIndex {
		g.fail("undefined buffer target")
		return
	}
	if buf == nil {
		g.bufs[target] = nil
		g.record("BindBuffer", target, 0)
		return
	}
	b, ok := buf.(*Buffer)
	switch {
	case !ok || b.dead:
		g.fail("invalid buffer")
		return
	case b.target != target:
		g.fail("buffer bound to wrong target")
		return
	}
	g.bufs[target] = b
	g.record("BindBuffer", target, b.id)
}

// EnableAttrib enables a vertex attribute.
func (g *GPU) EnableAttrib(loc int) {
	if loc < 0 {
		g.fail("negative attribute location")
		return
	}
	g.attribs[loc] = true
	g.record("EnableAttrib", loc)
}

// DisableAttrib disables a vertex attribute.
func (g *GPU) DisableAttrib(loc int) {
	if loc < 0 {
		g.fail("negative attribute location")
		return
	}
	delete(g.attribs, loc)
	g.record("DisableAttrib", loc)
}

// AttribPointer describes a vertex attribute.
func (g *GPU) AttribPointer(loc, size int, typ driver.CompType, norm bool, stride, off int) {
	switch {
	case g.bufs[driver.BVertex] == nil:
		g.fail("no vertex buffer bound")
		return
	case size < 1 || size > 4:
		g.fail("invalid attribute size")
		return
	}
	g.record("AttribPointer", loc, size, typ, norm, stride, off)
}

func (g *GPU) uniform(name string, loc int, v any) {
	if g.prog == nil {
		g.fail(name + " without program")
		return
	}
	g.record(name, loc, v)
	if loc >= 0 {
		g.prog.uniforms[loc] = v
	}
}

// Uniform1i sets an int uniform.
func (g *GPU) Uniform1i(loc int, v int32) { g.uniform("Uniform1i", loc, v) }

// Uniform1f sets a float uniform.
func (g *GPU) Uniform1f(loc int, v float32) { g.uniform("Uniform1f", loc, v) }

// Uniform3f sets a vec3 uniform.
func (g *GPU) Uniform3f(loc int, v [3]float32) { g.uniform("Uniform3f", loc, v) }

// Uniform4f sets a vec4 uniform.
func (g *GPU) Uniform4f(loc int, v [4]float32) { g.uniform("Uniform4f", loc, v) }

// UniformMat4 sets a mat4 uniform.
func (g *GPU) UniformMat4(loc int, v *[16]float32) { g.uniform("UniformMat4", loc, *v) }

// ActiveTexture binds tex to unit.
func (g *GPU) ActiveTexture(unit int, tex driver.Texture) {
	if unit < 0 || unit >= g.Limits().MaxTexUnit {
		g.fail(fmt.Sprintf("texture unit %d out of range", unit))
		return
	}
	if tex == nil {
		delete(g.units, unit)
		g.record("ActiveTexture", unit, 0)
		return
	}
	t, ok := tex.(*Texture)
	if !ok || t.dead {
		g.fail("invalid texture")
		return
	}
	g.units[unit] = t
	g.record("ActiveTexture", unit, t.id)
}

// SetRaster sets the rasterization state.
func (g *GPU) SetRaster(rs driver.RasterState) {
	g.raster = rs
	g.record("SetRaster", rs)
}

// SetDepth sets the depth state.
func (g *GPU) SetDepth(ds driver.DSState) {
	g.depth = ds
	g.record("SetDepth", ds)
}

// Clear clears buffers.
func (g *GPU) Clear(mask driver.ClearMask, cv driver.ClearValue) {
	g.record("Clear", mask, cv)
}

func (g *GPU) validateDraw(topo driver.Topology, count int) bool {
	switch {
	case g.prog == nil:
		g.fail("draw without program")
	case topo < driver.TPoint || topo > driver.TTriFan:
		g.fail("undefined topology")
	case count < 0:
		g.fail("negative draw count")
	default:
		return true
	}
	return false
}

// Draw draws non-indexed primitives.
func (g *GPU) Draw(topo driver.Topology, first, count int) {
	if g.validateDraw(topo, count) {
		g.record("Draw", topo, first, count)
	}
}

// DrawIndexed draws indexed primitives.
func (g *GPU) DrawIndexed(topo driver.Topology, count int, format driver.IndexFmt, off int) {
	if !g.validateDraw(topo, count) {
		return
	}
	ib := g.bufs[driver.BIndex]
	if ib == nil {
		g.fail("no index buffer bound")
		return
	}
	if off+count*int(format) > len(ib.data) {
		g.fail("index range exceeds buffer")
		return
	}
	g.record("DrawIndexed", topo, count, format, off)
}

// State accessors.

// Program returns the current program.
func (g *GPU) Program() *Program { return g.prog }

// Bound returns the buffer bound to target.
func (g *GPU) Bound(target driver.BufTarget) *Buffer { return g.bufs[target] }

// Enabled returns whether the attribute at loc is
// enabled.
func (g *GPU) Enabled(loc int) bool { return g.attribs[loc] }

// TextureAt returns the texture bound to unit.
func (g *GPU) TextureAt(unit int) *Texture { return g.units[unit] }

// Raster returns the rasterization state.
func (g *GPU) Raster() driver.RasterState { return g.raster }

// Depth returns the depth state.
func (g *GPU) Depth() driver.DSState { return g.depth }

// Fail records an error to be returned by Err.
// It is meant to simulate driver failures.
func (g *GPU) Fail(reason string) { g.fail(reason) }
