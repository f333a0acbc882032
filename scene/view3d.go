// SPDX-License-Identifier: Unlicense OR MIT

package scene

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// NavigationMode selects what a pointer drag does to a View3D.
type NavigationMode uint8

const (
	Orbit NavigationMode = iota
	Pan
)

// View3D navigates a camera with pointer input over a view of a
// given size in pixels.
type View3D struct {
	camera  Camera
	mode    NavigationMode
	size    image.Point
	pointer Pointer
	pvm     mgl32.Mat4
}

// NewView3D returns a view of size looking through cam.
func NewView3D(cam Camera, size image.Point) *View3D {
	v := &View3D{camera: cam, pointer: NewPointer()}
	v.Resize(size)
	return v
}

// Resize sets the view size and the camera aspect ratio.
func (v *View3D) Resize(size image.Point) {
	v.size = size
	if size.X > 0 && size.Y > 0 {
		v.camera.Aspect = float32(size.X) / float32(size.Y)
	}
	v.update()
}

func (v *View3D) Size() image.Point {
	return v.size
}

func (v *View3D) Mode() NavigationMode {
	return v.mode
}

// SetMode changes the navigation mode. Changing it forgets the
// pointer history, so a drag doesn't carry over.
func (v *View3D) SetMode(m NavigationMode) {
	if m != v.mode {
		v.mode = m
		v.pointer = NewPointer()
	}
}

// HandlePointer feeds a pointer sample to the view. It returns the
// pointer event and whether the view consumed it.
func (v *View3D) HandlePointer(s PointerState) (Event, bool) {
	e := v.pointer.Update(s)
	handled := true
	switch {
	case e.Kind == EventDrag && v.mode == Orbit:
		v.camera.Orbit(v.size, e.From, e.To)
	case e.Kind == EventDrag && v.mode == Pan:
		v.camera.Pan(v.size, e.From, e.To)
	case e.Kind == EventScroll:
		v.camera.Zoom(e.Scroll)
		v.pointer.ResetButton()
	default:
		handled = false
	}
	v.update()
	return e, handled
}

func (v *View3D) update() {
	v.pvm = v.camera.ViewProjection()
}

// Camera returns the view camera.
func (v *View3D) Camera() Camera {
	return v.camera
}

// SetCamera replaces the camera, keeping the view aspect ratio.
func (v *View3D) SetCamera(c Camera) {
	v.camera = c
	v.Resize(v.size)
}

// PVM returns the projection view matrix of the camera.
func (v *View3D) PVM() mgl32.Mat4 {
	return v.pvm
}
