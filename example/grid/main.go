// SPDX-License-Identifier: Unlicense OR MIT

package main

// Shows a grid and the coordinate axes. Drag with the left button to
// orbit, with another button to pan and scroll to zoom.

import (
	"flag"
	"image/color"
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"neocogi.org/app"
	"neocogi.org/f32"
	"neocogi.org/scene"
)

var configPath = flag.String("config", "", "configuration file (.toml or .yaml)")

// zoomStep is the fraction of the camera distance zoomed per wheel
// line.
const zoomStep = 0.1

type gridView struct {
	renderer *scene.MeshRenderer
	mesh     *scene.GPUMesh
	view     *scene.View3D
	pressed  bool
}

func main() {
	flag.Parse()
	var g *gridView
	err := app.Main(*configPath, func(f *app.Frame) error {
		if g == nil {
			var err error
			if g, err = newGridView(f); err != nil {
				return err
			}
			f.Window.OnExit(g.release)
		}
		return g.frame(f)
	})
	if err != nil {
		log.Fatal(err)
	}
}

func newGridView(f *app.Frame) (*gridView, error) {
	r, err := scene.NewMeshRenderer(f.Device)
	if err != nil {
		return nil, err
	}
	m := scene.GridXZ(mgl32.Vec3{}, 20, 20)
	m.Append(scene.Axes(mgl32.Vec3{}, mgl32.Vec3{2, 0, 0}, mgl32.Vec3{0, 2, 0}, mgl32.Vec3{0, 0, 2}))
	m.Append(scene.Cube(mgl32.Vec3{2, 0, 2}, mgl32.Vec3{3, 1, 3}, color.RGBA{R: 0xc0, G: 0x80, B: 0x30, A: 0xff}))
	mesh, err := r.Upload(m)
	if err != nil {
		r.Release()
		return nil, err
	}
	cam := scene.NewCamera(mgl32.Vec3{}, 15, 1)
	cam.Rotation = mgl32.QuatRotate(-0.5, mgl32.Vec3{1, 0, 0})
	return &gridView{
		renderer: r,
		mesh:     mesh,
		view:     scene.NewView3D(cam, f.Size),
	}, nil
}

func (g *gridView) frame(f *app.Frame) error {
	if f.Size != g.view.Size() {
		g.view.Resize(f.Size)
	}
	for _, e := range f.Events {
		g.handle(e)
	}
	p := f.Pass()
	p.Viewport(0, 0, f.Size.X, f.Size.Y)
	if err := g.renderer.Draw(p, g.mesh, g.view.PVM()); err != nil {
		return err
	}
	return f.Device.SubmitPass(p)
}

func (g *gridView) handle(e app.Event) {
	s := scene.PointerState{
		Pos:    f32.Pt(float32(e.Pos.X), float32(e.Pos.Y)),
		Button: scene.ButtonReleased,
	}
	switch e.Kind {
	case app.EventButton:
		g.pressed = e.Action == glfw.Press
		if g.pressed {
			mode := scene.Pan
			if e.Button == glfw.MouseButtonLeft {
				mode = scene.Orbit
			}
			g.view.SetMode(mode)
		}
	case app.EventMove:
	case app.EventScroll:
		cam := g.view.Camera()
		s.Button = scene.ButtonScroll
		s.Scroll = float32(-e.ScrollY) * zoomStep * cam.Distance
		g.view.HandlePointer(s)
		return
	default:
		return
	}
	if g.pressed {
		s.Button = scene.ButtonPressed
		s.Pressure = 1
	}
	g.view.HandlePointer(s)
}

func (g *gridView) release() {
	g.mesh.Release()
	g.renderer.Release()
}
