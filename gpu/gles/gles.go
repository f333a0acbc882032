// SPDX-License-Identifier: Unlicense OR MIT

// Package gles links the OpenGL ES 3 backend. Import it for its side
// effect and create devices with gpu.OpenGL{}.
package gles

import (
	_ "neocogi.org/gpu/internal/opengl"
)
