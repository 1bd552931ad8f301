// Copyright 2022 Gustavo C. Viegas. All rights reserved.

//go:build !glfw

package wsi

func init() { initDummy() }
