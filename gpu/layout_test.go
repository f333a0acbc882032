// SPDX-License-Identifier: Unlicense OR MIT

package gpu_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neocogi.org/gpu"
)

type meshVertex struct {
	Position [3]float32
	Color    [4]uint8
	UV       [2]float32
	scratch  int
	Skip     float32 `gpu:"-"`
}

func TestLayoutOf(t *testing.T) {
	l, err := gpu.LayoutOf(&meshVertex{})
	require.NoError(t, err)
	assert.Equal(t, []gpu.VertexAttribute{
		{Format: gpu.Float3, Offset: 0},
		{Format: gpu.Byte4, Offset: 12},
		{Format: gpu.Float2, Offset: 16},
	}, l.Attributes)
	assert.Equal(t, 40, l.Stride)
	assert.Equal(t, []string{"aposition", "acolor", "auv"}, gpu.AttributeNames(meshVertex{}, "a"))

	type instance struct {
		Model mgl32.Mat4
		ID    uint32
	}
	l = gpu.MustLayoutOf(instance{})
	assert.Equal(t, []gpu.VertexAttribute{{Format: gpu.Float4x4}, {Format: gpu.UInt, Offset: 64}}, l.Attributes)

	_, err = gpu.LayoutOf(struct{ F float64 }{})
	assert.Error(t, err)
	_, err = gpu.LayoutOf(3)
	assert.Error(t, err)
	assert.Panics(t, func() { gpu.MustLayoutOf("vertex") })
}

func TestUniformsOf(t *testing.T) {
	type uniforms struct {
		MVP    mgl32.Mat4 `gpu:"uMVP"`
		Lights [4][4]float32
		Normal mgl32.Mat3
		Mode   int32
	}
	us, err := gpu.UniformsOf(uniforms{})
	require.NoError(t, err)
	assert.Equal(t, []gpu.UniformDesc{
		{Name: "uMVP", Type: gpu.UniformFloat4x4, Count: 1, Offset: 0},
		{Name: "Lights", Type: gpu.UniformFloat4, Count: 4, Offset: 64},
		{Name: "Normal", Type: gpu.UniformFloat3x3, Count: 1, Offset: 128},
		{Name: "Mode", Type: gpu.UniformInt, Count: 1, Offset: 164},
	}, us)
	assert.Equal(t, []string{"uMVP", "Lights", "Normal", "Mode"}, gpu.UniformNames(us))

	_, err = gpu.UniformsOf(struct{ B bool }{})
	assert.Error(t, err)
}

func TestBytes(t *testing.T) {
	b := gpu.Bytes([]uint16{1, 0x0203})
	assert.Equal(t, 4, len(b))
	assert.Equal(t, uint16(0x0203), binary.LittleEndian.Uint16(b[2:]))

	f := float32(1.5)
	b = gpu.Bytes(&f)
	assert.Equal(t, math.Float32bits(1.5), binary.LittleEndian.Uint32(b))
	// Views alias the value.
	f = 2
	assert.Equal(t, math.Float32bits(2), binary.LittleEndian.Uint32(b))

	b = gpu.Bytes(mgl32.Ident4())
	assert.Len(t, b, 64)
	assert.Nil(t, gpu.Bytes([]float32(nil)))
	assert.Nil(t, gpu.Bytes((*float32)(nil)))
}
