// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package engine

import (
	_ "embed"
)

// GLSL ES 1.00 sources of the built-in shading models.

var (
	//go:embed shaders/flat_color.vert
	flatColorVert string
	//go:embed shaders/flat_color.frag
	flatColorFrag string

	//go:embed shaders/flat_tex.vert
	flatTexVert string
	//go:embed shaders/flat_tex.frag
	flatTexFrag string

	//go:embed shaders/phong.vert
	phongVert string
	//go:embed shaders/phong.frag
	phongFrag string

	//go:embed shaders/normal_map.vert
	normalMapVert string
	//go:embed shaders/normal_map.frag
	normalMapFrag string

	//go:embed shaders/pbr.vert
	pbrVert string
	//go:embed shaders/pbr.frag
	pbrFrag string
)
