// Copyright 2024 Gustavo C. Viegas. All rights reserved.

//go:build glfw

package main

import (
	_ "github.com/gviegas/ares/driver/gles"
)
