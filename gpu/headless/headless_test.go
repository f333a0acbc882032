// SPDX-License-Identifier: Unlicense OR MIT

package headless

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neocogi.org/gpu"
)

func newTestWindow(t *testing.T) *Window {
	t.Helper()
	w, err := NewWindow(64, 32)
	if err != nil {
		t.Skipf("no OpenGL ES context: %v", err)
	}
	t.Cleanup(w.Release)
	return w
}

func TestCaps(t *testing.T) {
	w := newTestWindow(t)
	assert.Equal(t, image.Pt(64, 32), w.Size())
	caps := w.Device().Caps()
	assert.True(t, caps.BottomLeftOrigin)
	assert.Positive(t, caps.MaxSurfaceDim)
	assert.LessOrEqual(t, caps.MaxSurfaceDim, 4096)
	assert.NotEmpty(t, caps.Version)
}

func TestClearAndDraw(t *testing.T) {
	w := newTestWindow(t)
	d := w.Device()
	p := gpu.NewPass(gpu.PassDesc{Width: 64, Height: 32, Color: gpu.ClearAll(color.RGBA{A: 0xff}), Depth: gpu.ClearDepth(1)})
	require.NoError(t, d.SubmitPass(p))

	q, err := d.NewScreenQuad()
	require.NoError(t, err)
	defer q.Release()
	tex, err := d.NewTexture(gpu.TextureDesc{Width: 1, Height: 1, Format: gpu.RGBA8, Pixels: []byte{0, 0xff, 0, 0xff}})
	require.NoError(t, err)
	p = gpu.NewPass(gpu.PassDesc{Width: 64, Height: 32})
	p.Viewport(0, 0, 64, 16)
	require.NoError(t, q.Draw(p, tex))
	require.NoError(t, d.SubmitPass(p))
	// The pending pass keeps the texture alive.
	tex.Release()

	require.NoError(t, d.Flush())
	st := d.Stats()
	assert.Equal(t, 2, st.Executed)
	assert.Zero(t, st.Dropped)
	assert.Zero(t, st.Live[gpu.KindTexture])
}

func TestFramebufferPass(t *testing.T) {
	w := newTestWindow(t)
	d := w.Device()
	fb, err := d.NewColorNormalDepthFramebuffer(32, 32)
	require.NoError(t, err)
	defer fb.Release()
	p := gpu.NewPass(gpu.PassDesc{Width: 32, Height: 32, Framebuffer: fb, Color: gpu.ClearAll(color.RGBA{R: 0xff, A: 0xff}), Depth: gpu.ClearDepth(1)})
	require.NoError(t, d.SubmitPass(p))
	require.NoError(t, d.Flush())
}
