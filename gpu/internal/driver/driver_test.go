// SPDX-License-Identifier: Unlicense OR MIT

package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestElementCount(t *testing.T) {
	for _, tc := range []struct {
		p    Primitive
		n    int
		want int
	}{
		{Points, 5, 5},
		{Lines, 5, 10},
		{LineStrip, 5, 6},
		{Triangles, 5, 15},
		{TriangleStrip, 5, 7},
	} {
		assert.Equal(t, tc.want, tc.p.ElementCount(tc.n), "primitive %d", tc.p)
	}
}

func TestFormats(t *testing.T) {
	assert.Equal(t, 4, RGBA8.PixelSize())
	assert.Equal(t, 12, RGB32F.PixelSize())
	assert.Equal(t, 8, D32S8.PixelSize())
	assert.True(t, D24S8.IsDepth())
	assert.True(t, D24S8.HasStencil())
	assert.False(t, D32.HasStencil())
	assert.Equal(t, SurfaceUInt, RGBA32U.SurfaceType())
	assert.Equal(t, SurfaceFloat, RGBA8.SurfaceType())
	assert.Panics(t, func() { PixelFormat(200).PixelSize() })

	assert.Equal(t, 3, Short3.Components())
	assert.Equal(t, 6, Short3.Size())
	assert.Equal(t, 64, Float4x4.Size())
	assert.True(t, UInt2.IsInteger())
	assert.False(t, Float.IsInteger())
	assert.True(t, Byte4.IsNormalized())
	assert.Equal(t, 36, UniformFloat3x3.Size())
	assert.Equal(t, 0, IndexNone.Size())
	assert.Equal(t, 4, IndexUInt32.Size())
}

func TestNewDevice(t *testing.T) {
	_, err := NewDevice(Custom{})
	assert.Error(t, err)
	old := NewOpenGLDevice
	defer func() { NewOpenGLDevice = old }()
	NewOpenGLDevice = nil
	_, err = NewDevice(OpenGL{})
	assert.EqualError(t, err, "driver: no driver available for the API driver.OpenGL")
}

func TestShaderError(t *testing.T) {
	err := &ShaderError{Stage: "link", Log: "missing main"}
	assert.Equal(t, "link shader: missing main", err.Error())
}
