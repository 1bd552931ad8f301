// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"fmt"

	"github.com/gviegas/ares/driver"
	"github.com/gviegas/ares/linear"
)

// UniformValue is the set of types that a Uniform
// can hold.
// int32 is also used for sampler (texture unit) uniforms.
type UniformValue interface {
	int32 | float32 | linear.V3 | linear.V4 | linear.M4
}

// Uniform is a named shader input of type T.
type Uniform[T UniformValue] struct {
	gpu   driver.GPU
	name  string
	loc   int
	value T
}

// AddUniform registers the named uniform on s.
// Registering a name that s already has returns the
// existing *Uniform if T matches, and an error wrapping
// ErrUniformType otherwise.
// It also fails if the program has no such uniform.
func AddUniform[T UniformValue](s *Shader, name string) (*Uniform[T], error) {
	if u, ok := s.uniforms[name]; ok {
		if u, ok := u.(*Uniform[T]); ok {
			return u, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrUniformType, name)
	}
	loc := s.prog.UniformLocation(name)
	if loc < 0 {
		return nil, newShdErr("invalid uniform " + name)
	}
	u := &Uniform[T]{gpu: s.gpu, name: name, loc: loc}
	s.uniforms[name] = u
	return u, nil
}

// Name returns the uniform's name.
func (u *Uniform[T]) Name() string { return u.name }

// Location returns the uniform's location.
func (u *Uniform[T]) Location() int { return u.loc }

// Value returns the last value set.
func (u *Uniform[T]) Value() T { return u.value }

// Set sets the uniform's value and commits it to the
// program currently in use.
func (u *Uniform[T]) Set(v T) {
	u.value = v
	switch v := any(&u.value).(type) {
	case *int32:
		u.gpu.Uniform1i(u.loc, *v)
	case *float32:
		u.gpu.Uniform1f(u.loc, *v)
	case *linear.V3:
		u.gpu.Uniform3f(u.loc, *v)
	case *linear.V4:
		u.gpu.Uniform4f(u.loc, *v)
	case *linear.M4:
		var f [16]float32
		for i := range v {
			copy(f[i*4:], v[i][:])
		}
		u.gpu.UniformMat4(u.loc, &f)
	}
}
