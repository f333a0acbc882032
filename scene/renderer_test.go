// SPDX-License-Identifier: Unlicense OR MIT

package scene_test

import (
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neocogi.org/gpu"
	"neocogi.org/gpu/gputest"
	"neocogi.org/scene"
)

var skipCreate = []string{"NewBuffer", "NewTexture", "NewRenderTarget", "NewShader", "NewPipeline", "NewFramebuffer", "Release"}

func newRenderer(t *testing.T) (*gpu.Device, *gputest.Backend, *scene.MeshRenderer) {
	t.Helper()
	b := gputest.New()
	d, err := gpu.NewDevice(gputest.API(b))
	require.NoError(t, err)
	r, err := scene.NewMeshRenderer(d)
	require.NoError(t, err)
	return d, b, r
}

func draws(b *gputest.Backend) []string {
	var ds []string
	for _, c := range b.Calls() {
		if c.Op == "Draw" {
			ds = append(ds, c.Detail)
		}
	}
	return ds
}

func TestMeshRendererDraw(t *testing.T) {
	d, b, r := newRenderer(t)
	defer d.Close()
	defer r.Release()

	m := scene.Cube(mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{1, 1, 1}, color.RGBA{G: 0xff, A: 0xff})
	m.Append(scene.GridXZ(mgl32.Vec3{}, 4, 4))
	g, err := r.Upload(m)
	require.NoError(t, err)
	defer g.Release()

	p := gpu.NewPass(gpu.PassDesc{Width: 32, Height: 32, Color: gpu.ClearAll(color.RGBA{A: 0xff}), Depth: gpu.ClearDepth(1)})
	require.NoError(t, r.Draw(p, g, mgl32.Ident4()))
	require.NoError(t, d.SubmitPass(p))
	require.NoError(t, d.Flush())

	assert.Equal(t, []string{"BeginPass", "Draw", "Draw", "EndPass"}, b.Ops(skipCreate...))
	assert.Equal(t, []string{"first=0 count=36 instances=1", "first=0 count=20 instances=1"}, draws(b))
}

func TestDrawMeshReleasesBuffers(t *testing.T) {
	d, b, r := newRenderer(t)
	defer d.Close()
	defer r.Release()
	live := len(b.Live())

	p := gpu.NewPass(gpu.PassDesc{Width: 8, Height: 8})
	require.NoError(t, r.DrawMesh(p, scene.Axes(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}), mgl32.Ident4()))
	// The pending pass keeps the released buffers.
	assert.Equal(t, live+2, len(b.Live()))
	require.NoError(t, r.DrawMesh(p, scene.Mesh{}, mgl32.Ident4()))

	require.NoError(t, d.SubmitPass(p))
	require.NoError(t, d.Flush())
	assert.Len(t, draws(b), 2)
	assert.Equal(t, live, len(b.Live()))
}

func TestUploadSkipsEmptyLists(t *testing.T) {
	d, b, r := newRenderer(t)
	defer d.Close()
	defer r.Release()
	live := len(b.Live())

	g, err := r.Upload(scene.GridXY(mgl32.Vec3{}, 1, 1))
	require.NoError(t, err)
	assert.Equal(t, live+1, len(b.Live()))
	g.Release()
	g.Release()
}

func TestDrawCached(t *testing.T) {
	d, b, r := newRenderer(t)
	defer d.Close()
	defer r.Release()
	live := len(b.Live())

	builds := 0
	grid := func() scene.Mesh {
		builds++
		return scene.GridXZ(mgl32.Vec3{}, 2, 2)
	}
	for i := 0; i < 3; i++ {
		p := gpu.NewPass(gpu.PassDesc{Width: 8, Height: 8})
		require.NoError(t, r.DrawCached(p, "grid", grid, mgl32.Ident4()))
		require.NoError(t, d.SubmitPass(p))
		r.EndFrame()
	}
	require.NoError(t, d.Flush())
	assert.Equal(t, 1, builds)
	assert.Len(t, draws(b), 3)
	assert.Equal(t, live+1, len(b.Live()))

	// A frame without the grid evicts it.
	r.EndFrame()
	require.NoError(t, d.Flush())
	assert.Equal(t, live, len(b.Live()))
}
