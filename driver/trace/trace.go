// Copyright 2024 Gustavo C. Viegas. All rights reserved.

// Package trace implements a headless driver.GPU that
// records every command it receives.
// It validates resource usage the way a real driver
// would and keeps enough state for callers to inspect
// what was bound and drawn.
//
// Importing this package registers a driver named "trace".
package trace

import (
	"fmt"
	"strings"

	"github.com/gviegas/ares/driver"
)

const prefix = "trace: "

func newErr(reason string) error {
	return fmt.Errorf("%w: "+prefix+"%s", driver.ErrFatal, reason)
}

// Driver implements driver.Driver.
type Driver struct {
	gpu *GPU
}

func init() {
	driver.Register(&Driver{})
}

// Open initializes the driver.
func (d *Driver) Open() (driver.GPU, error) {
	if d.gpu == nil {
		d.gpu = New()
		d.gpu.drv = d
	}
	return d.gpu, nil
}

// Name returns "trace".
func (*Driver) Name() string { return "trace" }

// Close deinitializes the driver.
func (d *Driver) Close() { d.gpu = nil }

// Call is a recorded GPU command.
type Call struct {
	Name string
	Args []any
}

// String implements fmt.Stringer.
func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = fmt.Sprint(a)
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

// GPU implements driver.GPU.
type GPU struct {
	drv   *Driver
	calls []Call
	err   error
	id    int

	// FailCompile, if not nil, is called for every shader
	// code compiled. A non-nil return fails compilation.
	FailCompile func(stage driver.Stage, src string) error

	// Inactive contains attribute and uniform names that
	// programs report as not active (location -1).
	Inactive map[string]bool

	prog    *Program
	bufs    [2]*Buffer
	attribs map[int]bool
	units   map[int]*Texture
	raster  driver.RasterState
	depth   driver.DSState
}

// New creates a new GPU that is not owned by a
// registered driver.
func New() *GPU {
	return &GPU{
		Inactive: make(map[string]bool),
		attribs:  make(map[int]bool),
		units:    make(map[int]*Texture),
	}
}

func (g *GPU) record(name string, args ...any) {
	g.calls = append(g.calls, Call{name, args})
}

func (g *GPU) fail(reason string) {
	if g.err == nil {
		g.err = newErr(reason)
	}
}

func (g *GPU) nextID() int {
	g.id++
	return g.id
}

// Calls returns a copy of the recorded commands.
func (g *GPU) Calls() []Call {
	c := make([]Call, len(g.calls))
	copy(c, g.calls)
	return c
}

// Names returns the names of the recorded commands,
// in order.
func (g *GPU) Names() []string {
	s := make([]string, len(g.calls))
	for i := range g.calls {
		s[i] = g.calls[i].Name
	}
	return s
}

// Count returns how many commands named name were
// recorded.
func (g *GPU) Count(name string) (n int) {
	for i := range g.calls {
		if g.calls[i].Name == name {
			n++
		}
	}
	return
}

// Reset discards the recorded commands.
// It does not change any state.
func (g *GPU) Reset() { g.calls = g.calls[:0] }

// Driver returns the driver that owns g.
// It is nil if g was created by New.
func (g *GPU) Driver() driver.Driver {
	if g.drv == nil {
		return nil
	}
	return g.drv
}

// Err returns the first error recorded since the last
// call to Err.
func (g *GPU) Err() error {
	err := g.err
	g.err = nil
	return err
}

// Limits returns the implementation limits.
func (*GPU) Limits() driver.Limits {
	return driver.Limits{
		MaxImage2D:  4096,
		MaxTexUnit:  8,
		MaxVertexIn: 16,
	}
}

// ShaderCode implements driver.ShaderCode.
type ShaderCode struct {
	gpu   *GPU
	id    int
	stage driver.Stage
	src   string
	dead  bool
}

// NewShaderCode compiles src.
func (g *GPU) NewShaderCode(stage driver.Stage, src string) (driver.ShaderCode, error) {
	switch stage {
	case driver.SVertex, driver.SFragment:
	default:
		return nil, fmt.Errorf("%w: "+prefix+"undefined stage", driver.ErrCompile)
	}
	if g.FailCompile != nil {
		if err := g.FailCompile(stage, src); err != nil {
			return nil, fmt.Errorf("%w: %w", driver.ErrCompile, err)
		}
	}
	c := &ShaderCode{gpu: g, id: g.nextID(), stage: stage, src: src}
	g.record("NewShaderCode", c.id, stage)
	return c, nil
}

// Stage returns the stage of c.
func (c *ShaderCode) Stage() driver.Stage { return c.stage }

// ID returns the identifier of c.
func (c *ShaderCode) ID() int { return c.id }

// Destroy destroys c.
func (c *ShaderCode) Destroy() {
	if c.dead {
		c.gpu.fail("shader code destroyed twice")
		return
	}
	c.dead = true
	c.gpu.record("DestroyShaderCode", c.id)
}

// Program implements driver.Program.
type Program struct {
	gpu      *GPU
	id       int
	locs     map[string]int
	uniforms map[int]any
	dead     bool
}

// NewProgram links vert and frag.
func (g *GPU) NewProgram(vert, frag driver.ShaderCode) (driver.Program, error) {
	vs, ok1 := vert.(*ShaderCode)
	fs, ok2 := frag.(*ShaderCode)
	switch {
	case !ok1 || !ok2:
		return nil, fmt.Errorf("%w: "+prefix+"foreign shader code", driver.ErrLink)
	case vs.stage != driver.SVertex || fs.stage != driver.SFragment:
		return nil, fmt.Errorf("%w: "+prefix+"stage mismatch", driver.ErrLink)
	case vs.dead || fs.dead:
		return nil, fmt.Errorf("%w: "+prefix+"destroyed shader code", driver.ErrLink)
	}
	p := &Program{
		gpu:      g,
		id:       g.nextID(),
		locs:     make(map[string]int),
		uniforms: make(map[int]any),
	}
	g.record("NewProgram", p.id, vs.id, fs.id)
	return p, nil
}

// location assigns locations in query order.
// Attributes and uniforms share the name space.
func (p *Program) location(name string) int {
	if p.gpu.Inactive[name] {
		return -1
	}
	if loc, ok := p.locs[name]; ok {
		return loc
	}
	loc := len(p.locs)
	p.locs[name] = loc
	return loc
}

// AttribLocation returns the location of an attribute.
func (p *Program) AttribLocation(name string) int { return p.location(name) }

// UniformLocation returns the location of a uniform.
func (p *Program) UniformLocation(name string) int { return p.location(name) }

// ID returns the identifier of p.
func (p *Program) ID() int { return p.id }

// Uniform returns the last value set to the named
// uniform while p was in use.
func (p *Program) Uniform(name string) (any, bool) {
	loc, ok := p.locs[name]
	if !ok {
		return nil, false
	}
	v, ok := p.uniforms[loc]
	return v, ok
}

// Destroy destroys p.
func (p *Program) Destroy() {
	if p.dead {
		p.gpu.fail("program destroyed twice")
		return
	}
	p.dead = true
	if p.gpu.prog == p {
		p.gpu.prog = nil
	}
	p.gpu.record("DestroyProgram", p.id)
}

// Buffer implements driver.Buffer.
type Buffer struct {
	gpu    *GPU
	id     int
	target driver.BufTarget
	data   []byte
	dead   bool
}

// NewBuffer creates a new buffer.
func (g *GPU) NewBuffer(target driver.BufTarget, data []byte) (driver.Buffer, error) {
	switch target {
	case driver.BVertex, driver.BIndex:
	default:
		return nil, newErr("undefined buffer target")
	}
	b := &Buffer{gpu: g, id: g.nextID(), target: target, data: append([]byte(nil), data...)}
	g.record("NewBuffer", b.id, target, len(data))
	return b, nil
}

// Target returns the target of b.
func (b *Buffer) Target() driver.BufTarget { return b.target }

// Len returns the size of b in bytes.
func (b *Buffer) Len() int { return len(b.data) }

// ID returns the identifier of b.
func (b *Buffer) ID() int { return b.id }

// Bytes returns the contents of b.
func (b *Buffer) Bytes() []byte { return b.data }

// Destroy destroys b.
func (b *Buffer) Destroy() {
	if b.dead {
		b.gpu.fail("buffer destroyed twice")
		return
	}
	b.dead = true
	b.gpu.record("DestroyBuffer", b.id)
}

// Texture implements driver.Texture.
type Texture struct {
	gpu   *GPU
	id    int
	param driver.TexParam
	dead  bool
}

// NewTexture creates a new texture.
func (g *GPU) NewTexture(param *driver.TexParam) (driver.Texture, error) {
	if param.Width <= 0 || param.Height <= 0 {
		return nil, newErr("invalid texture size")
	}
	if n := param.Width * param.Height * param.PixelFmt.Size(); len(param.Data) != n {
		return nil, newErr(fmt.Sprintf("texture data has %d bytes, want %d", len(param.Data), n))
	}
	t := &Texture{gpu: g, id: g.nextID(), param: *param}
	g.record("NewTexture", t.id, param.Width, param.Height)
	return t, nil
}

// Width returns the width of t.
func (t *Texture) Width() int { return t.param.Width }

// Height returns the height of t.
func (t *Texture) Height() int { return t.param.Height }

// ID returns the identifier of t.
func (t *Texture) ID() int { return t.id }

// Sampling returns the sampling state of t.
func (t *Texture) Sampling() driver.Sampling { return t.param.Sampling }

// Destroy destroys t.
func (t *Texture) Destroy() {
	if t.dead {
		t.gpu.fail("texture destroyed twice")
		return
	}
	t.dead = true
	t.gpu.record("DestroyTexture", t.id)
}
