// SPDX-License-Identifier: Unlicense OR MIT

package ui

import (
	"image"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"neocogi.org/scene"
)

func TestView3D(t *testing.T) {
	c := NewContext(testFont{})
	v := scene.NewView3D(scene.NewCamera(mgl32.Vec3{}, 10, 1), image.Pt(1, 1))
	var (
		rect image.Rectangle
		res  Res
	)
	body := func() {
		c.LayoutRow(100, -1)
		rect, res = c.View3D(v, 0)
	}
	frame(c, body)
	assert.Equal(t, image.Rect(5, 5, 295, 105), rect)
	assert.Equal(t, rect.Size(), v.Size())

	// Dragging with the left button orbits.
	click(c, 150, 50, body)
	assert.True(t, res.Has(ResActive))
	c.InputMouseMove(170, 50)
	frame(c, body)
	assert.True(t, res.Has(ResChange))
	assert.Equal(t, scene.Orbit, v.Mode())
	assert.Equal(t, mgl32.Vec3{}, v.Camera().Target)
	assert.InDelta(t, 10, v.Camera().Eye().Len(), 1e-3)
	c.InputMouseUp(170, 50, MouseLeft)
	frame(c, body)
	assert.False(t, res.Has(ResActive))

	// Dragging with the right button pans.
	c.InputMouseDown(170, 50, MouseRight)
	frame(c, body)
	c.InputMouseMove(190, 60)
	frame(c, body)
	assert.True(t, res.Has(ResChange))
	assert.Equal(t, scene.Pan, v.Mode())
	assert.NotEqual(t, mgl32.Vec3{}, v.Camera().Target)
	c.InputMouseUp(190, 60, MouseRight)
	frame(c, body)

	// Scrolling zooms and doesn't scroll the window.
	c.InputScroll(0, 50)
	frame(c, body)
	assert.True(t, res.Has(ResChange))
	assert.InDelta(t, 15, v.Camera().Distance, 1e-4)
	assert.Zero(t, c.Container("test").Scroll)
}

func TestView3DNoInteract(t *testing.T) {
	c := NewContext(testFont{})
	v := scene.NewView3D(scene.NewCamera(mgl32.Vec3{}, 10, 1), image.Pt(1, 1))
	var res Res
	body := func() {
		c.LayoutRow(100, -1)
		_, res = c.View3D(v, OptNoInteract)
	}
	click(c, 150, 50, body)
	c.InputMouseMove(170, 50)
	frame(c, body)
	assert.Zero(t, res)
	assert.Equal(t, float32(10), v.Camera().Distance)
	assert.Equal(t, image.Pt(290, 100), v.Size())
}
