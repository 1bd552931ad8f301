// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/gviegas/ares/driver"
)

const shdPrefix = "shader: "

func newShdErr(reason string) error { return errors.New(shdPrefix + reason) }

// ErrUniformType means that a uniform name was registered
// again with a different type.
var ErrUniformType = newShdErr("uniform already registered with a different type")

// ShaderCache interns compiled shaders.
// Each distinct source text is compiled once per stage,
// and each distinct vertex/fragment pair is linked once.
// Entries are never evicted; Destroy releases all of
// them at once.
//
// A ShaderCache must be created explicitly and shared by
// reference among material constructors. It is not safe
// for concurrent use.
type ShaderCache struct {
	gpu   driver.GPU
	codes map[codeKey]driver.ShaderCode
	progs map[progKey]*Shader
}

type codeKey struct {
	stage driver.Stage
	sum   [sha256.Size]byte
}

type progKey struct {
	vert, frag [sha256.Size]byte
}

// NewShaderCache creates an empty cache that compiles
// shaders using gpu.
func NewShaderCache(gpu driver.GPU) *ShaderCache {
	if gpu == nil {
		panic("engine.NewShaderCache: nil driver.GPU")
	}
	return &ShaderCache{
		gpu:   gpu,
		codes: make(map[codeKey]driver.ShaderCode),
		progs: make(map[progKey]*Shader),
	}
}

// GPU returns the driver.GPU that c uses.
func (c *ShaderCache) GPU() driver.GPU { return c.gpu }

// Len returns the number of linked programs in c.
func (c *ShaderCache) Len() int { return len(c.progs) }

func (c *ShaderCache) code(stage driver.Stage, src string, sum [sha256.Size]byte) (driver.ShaderCode, error) {
	key := codeKey{stage, sum}
	if sc, ok := c.codes[key]; ok {
		return sc, nil
	}
	sc, err := c.gpu.NewShaderCode(stage, src)
	if err != nil {
		return nil, err
	}
	c.codes[key] = sc
	return sc, nil
}

// Get returns the Shader linked from the given vertex and
// fragment sources, compiling and linking it if this is
// the first request for this pair.
// Byte-identical sources always yield the same *Shader.
func (c *ShaderCache) Get(vert, frag string) (*Shader, error) {
	key := progKey{sha256.Sum256([]byte(vert)), sha256.Sum256([]byte(frag))}
	if s, ok := c.progs[key]; ok {
		return s, nil
	}
	vs, err := c.code(driver.SVertex, vert, key.vert)
	if err != nil {
		return nil, fmt.Errorf(shdPrefix+"vertex: %w", err)
	}
	fs, err := c.code(driver.SFragment, frag, key.frag)
	if err != nil {
		return nil, fmt.Errorf(shdPrefix+"fragment: %w", err)
	}
	prog, err := c.gpu.NewProgram(vs, fs)
	if err != nil {
		return nil, fmt.Errorf(shdPrefix+"%w", err)
	}
	s := &Shader{
		gpu:      c.gpu,
		prog:     prog,
		attribs:  make(map[string]int),
		uniforms: make(map[string]any),
	}
	c.progs[key] = s
	return s, nil
}

// Destroy releases every program and shader code in c.
// Materials created from c must not be used afterwards.
func (c *ShaderCache) Destroy() {
	for k, s := range c.progs {
		s.prog.Destroy()
		s.prog = nil
		delete(c.progs, k)
	}
	for k, sc := range c.codes {
		sc.Destroy()
		delete(c.codes, k)
	}
}

// Shader is a linked GPU program together with the
// uniforms registered on it and the attribute locations
// it was queried for.
type Shader struct {
	gpu      driver.GPU
	prog     driver.Program
	attribs  map[string]int
	uniforms map[string]any
}

// Program returns the underlying driver.Program.
func (s *Shader) Program() driver.Program { return s.prog }

// AttribLocation returns the location of the named
// vertex attribute, or -1 if the program does not use it.
// Locations are queried once and cached.
func (s *Shader) AttribLocation(name string) int {
	loc, ok := s.attribs[name]
	if !ok {
		loc = s.prog.AttribLocation(name)
		s.attribs[name] = loc
	}
	return loc
}

// Activate makes s the current program and binds the
// vertex attributes described by attrs.
// Attributes that s does not use are skipped.
func (s *Shader) Activate(attrs []*AttribData) {
	s.gpu.UseProgram(s.prog)
	for _, a := range attrs {
		loc := s.AttribLocation(a.Name)
		if loc < 0 || a.Buffer == nil {
			continue
		}
		a.Buffer.Bind()
		s.gpu.EnableAttrib(loc)
		s.gpu.AttribPointer(loc, a.Size, a.Type, a.Normalized, a.Stride, a.Offset)
	}
}

// Deactivate undoes Activate.
func (s *Shader) Deactivate(attrs []*AttribData) {
	for _, a := range attrs {
		loc := s.AttribLocation(a.Name)
		if loc < 0 || a.Buffer == nil {
			continue
		}
		s.gpu.DisableAttrib(loc)
		a.Buffer.Unbind()
	}
	s.gpu.UseProgram(nil)
}
