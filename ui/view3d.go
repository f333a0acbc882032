// SPDX-License-Identifier: Unlicense OR MIT

package ui

import (
	"image"

	"neocogi.org/f32"
	"neocogi.org/scene"
)

// zoomScale is the fraction of the camera distance zoomed per pixel
// of scroll.
const zoomScale = 0.01

// View3D reserves the next cell for v and navigates v with the
// mouse: dragging with the left button orbits, dragging with another
// button pans and scrolling zooms. The scene itself is drawn by the
// caller into the returned rectangle.
//
// View3D returns ResActive while a drag is in progress and ResChange
// when the camera moved.
func (c *Context) View3D(v *scene.View3D, opt Option) (image.Rectangle, Res) {
	id := c.PtrID(v)
	r := c.LayoutNext()
	if r.Size() != v.Size() {
		v.Resize(r.Size())
	}
	c.UpdateControl(id, r, opt)
	if opt&OptNoFrame == 0 {
		c.DrawBox(expand(r, 1), c.Style.Colors[ColorBorder])
	}
	if opt&OptNoInteract != 0 {
		return r, 0
	}
	var res Res
	rel := c.mousePos.Sub(r.Min)
	s := scene.PointerState{
		Pos:    f32.Pt(float32(rel.X), float32(rel.Y)),
		Button: scene.ButtonReleased,
	}
	if c.focus == id && c.mouseDown != 0 {
		res |= ResActive
		s.Button = scene.ButtonPressed
		s.Pressure = 1
		mode := scene.Orbit
		if c.mouseDown&MouseLeft == 0 {
			mode = scene.Pan
		}
		v.SetMode(mode)
	}
	if _, ok := v.HandlePointer(s); ok {
		res |= ResChange
	}
	if d := c.scrollDelta.Y; d != 0 && c.MouseOver(r) {
		cam := v.Camera()
		s.Button = scene.ButtonScroll
		s.Scroll = float32(d) * zoomScale * cam.Distance
		if _, ok := v.HandlePointer(s); ok {
			res |= ResChange
		}
		// The view consumes the scroll.
		c.scrollDelta.Y = 0
	}
	return r, res
}
