// SPDX-License-Identifier: Unlicense OR MIT

package main

// A set of demo windows and a 3D viewport built with package ui.

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"neocogi.org/app"
	"neocogi.org/gpu"
	"neocogi.org/scene"
	"neocogi.org/ui"
)

var configPath = flag.String("config", "", "configuration file (.toml or .yaml)")

type demo struct {
	ctx      *ui.Context
	renderer *ui.Renderer
	meshes   *scene.MeshRenderer
	grid     *scene.GPUMesh
	view     *scene.View3D
	viewRect image.Rectangle
	queue    gpu.Queue

	bg       [3]float32
	logBuf   strings.Builder
	logInput string
	checks   [3]bool
	number   float32
}

func main() {
	flag.Parse()
	var d *demo
	err := app.Main(*configPath, func(f *app.Frame) error {
		if d == nil {
			var err error
			if d, err = newDemo(f); err != nil {
				return err
			}
			f.Window.OnExit(d.release)
		}
		return d.frame(f)
	})
	if err != nil {
		log.Fatal(err)
	}
}

func newDemo(f *app.Frame) (*demo, error) {
	atlas, err := ui.GoRegularAtlas(14)
	if err != nil {
		return nil, err
	}
	r, err := ui.NewRenderer(f.Device, atlas)
	if err != nil {
		return nil, err
	}
	meshes, err := scene.NewMeshRenderer(f.Device)
	if err != nil {
		r.Release()
		return nil, err
	}
	m := scene.GridXZ(mgl32.Vec3{}, 10, 10)
	m.Append(scene.Axes(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}))
	m.Append(scene.Sphere(mgl32.Vec3{2, 1, -2}, 0.8, 2, color.RGBA{R: 0x40, G: 0x90, B: 0xe0, A: 0xff}))
	grid, err := meshes.Upload(m)
	if err != nil {
		meshes.Release()
		r.Release()
		return nil, err
	}
	cam := scene.NewCamera(mgl32.Vec3{}, 12, 1)
	cam.Rotation = mgl32.QuatRotate(-0.6, mgl32.Vec3{1, 0, 0})
	c := f.Config.Clear()
	return &demo{
		ctx:      ui.NewContext(atlas),
		renderer: r,
		meshes:   meshes,
		grid:     grid,
		view:     scene.NewView3D(cam, image.Pt(1, 1)),
		bg:       [3]float32{float32(c.R), float32(c.G), float32(c.B)},
		checks:   [3]bool{true, false, true},
		number:   1,
	}, nil
}

func (d *demo) release() {
	d.grid.Release()
	d.meshes.Release()
	d.renderer.Release()
}

func (d *demo) frame(f *app.Frame) error {
	app.Feed(d.ctx, f.Events)
	d.ctx.Begin()
	d.testWindow()
	d.logWindow()
	d.styleWindow()
	d.viewWindow()
	d.ctx.End()

	d.renderer.Background = color.RGBA{R: uint8(d.bg[0]), G: uint8(d.bg[1]), B: uint8(d.bg[2]), A: 0xff}
	p, err := d.renderer.Frame(d.ctx, nil, f.Size.X, f.Size.Y)
	if err != nil {
		return err
	}
	d.queue.Add(p)
	if !d.viewRect.Empty() {
		sp, err := d.scenePass(f.Size)
		if err != nil {
			return err
		}
		d.queue.Add(sp)
	}
	d.meshes.EndFrame()
	return f.Device.Submit(&d.queue)
}

// scenePass draws the scene over the viewport rectangle, after the
// user interface.
func (d *demo) scenePass(size image.Point) (*gpu.Pass, error) {
	p := gpu.NewPass(gpu.PassDesc{Width: size.X, Height: size.Y, Depth: gpu.ClearDepth(1)})
	r := d.viewRect
	p.Viewport(r.Min.X, size.Y-r.Max.Y, r.Dx(), r.Dy())
	p.Scissor(r.Min.X, size.Y-r.Max.Y, r.Dx(), r.Dy())
	pvm := d.view.PVM()
	if err := d.meshes.Draw(p, d.grid, pvm); err != nil {
		return nil, err
	}
	// The target marker moves with panning; stale ones are evicted by
	// EndFrame.
	t := d.view.Camera().Target
	key := fmt.Sprintf("target %.3f %.3f %.3f", t.X(), t.Y(), t.Z())
	marker := func() scene.Mesh {
		return scene.Sphere(t, 0.1, 1, color.RGBA{R: 0xff, G: 0xc0, A: 0xff})
	}
	if err := d.meshes.DrawCached(p, key, marker, pvm); err != nil {
		return nil, err
	}
	p.Scissor(0, 0, size.X, size.Y)
	return p, nil
}

func (d *demo) log(format string, args ...any) {
	if d.logBuf.Len() > 0 {
		d.logBuf.WriteByte('\n')
	}
	fmt.Fprintf(&d.logBuf, format, args...)
}

func (d *demo) testWindow() {
	c := d.ctx
	if !c.BeginWindow("Demo Window", image.Rect(40, 40, 340, 490), 0).Has(ui.ResActive) {
		return
	}
	defer c.EndWindow()
	win := c.CurrentContainer()
	win.Rect.Max.X = win.Rect.Min.X + max(win.Rect.Dx(), 240)
	win.Rect.Max.Y = win.Rect.Min.Y + max(win.Rect.Dy(), 300)

	if c.Header("Window Info", 0).Has(ui.ResActive) {
		c.LayoutRow(0, 54, -1)
		c.Label("Position:")
		c.Label(fmt.Sprintf("%d, %d", win.Rect.Min.X, win.Rect.Min.Y))
		c.Label("Size:")
		c.Label(fmt.Sprintf("%d, %d", win.Rect.Dx(), win.Rect.Dy()))
	}

	if c.Header("Test Buttons", ui.OptExpanded).Has(ui.ResActive) {
		c.LayoutRow(0, 86, -110, -1)
		c.Label("Test buttons 1:")
		if c.Button("Button 1") {
			d.log("Pressed button 1")
		}
		if c.Button("Button 2") {
			d.log("Pressed button 2")
		}
		c.Label("Test buttons 2:")
		if c.Button("Button 3") {
			d.log("Pressed button 3")
		}
		if c.Button("Popup") {
			c.OpenPopup("Test Popup")
		}
		if c.BeginPopup("Test Popup").Has(ui.ResActive) {
			c.Button("Hello")
			c.Button("World")
			c.EndPopup()
		}
	}

	if c.Header("Tree and Text", ui.OptExpanded).Has(ui.ResActive) {
		c.LayoutRow(0, 140, -1)
		c.LayoutBeginColumn()
		if c.BeginTreeNode("Test 1", 0).Has(ui.ResActive) {
			if c.BeginTreeNode("Test 1a", 0).Has(ui.ResActive) {
				c.Label("Hello")
				c.Label("world")
				c.EndTreeNode()
			}
			if c.BeginTreeNode("Test 1b", 0).Has(ui.ResActive) {
				if c.Button("Button 1") {
					d.log("Pressed tree button 1")
				}
				c.EndTreeNode()
			}
			c.EndTreeNode()
		}
		if c.BeginTreeNode("Test 2", 0).Has(ui.ResActive) {
			c.LayoutRow(0, 54, 54)
			for i := range d.checks {
				c.PushID(fmt.Sprint(i))
				c.Checkbox(fmt.Sprintf("Check %d", i+1), &d.checks[i])
				c.PopID()
			}
			c.EndTreeNode()
		}
		c.LayoutEndColumn()

		c.LayoutBeginColumn()
		c.LayoutRow(0, -1)
		c.Text("Lorem ipsum dolor sit amet, consectetur adipiscing elit. " +
			"Maecenas lacinia, sem eu lacinia molestie, mi risus faucibus " +
			"ipsum, eu varius magna felis a nulla.")
		c.LayoutEndColumn()
	}

	if c.Header("Background Color", ui.OptExpanded).Has(ui.ResActive) {
		c.LayoutRow(74, -78, -1)
		c.LayoutBeginColumn()
		c.LayoutRow(0, 46, -1)
		for i, name := range []string{"Red:", "Green:", "Blue:"} {
			c.Label(name)
			c.Slider(&d.bg[i], 0, 255)
		}
		c.LayoutEndColumn()
		r := c.LayoutNext()
		col := color.RGBA{R: uint8(d.bg[0]), G: uint8(d.bg[1]), B: uint8(d.bg[2]), A: 0xff}
		c.DrawRect(r, col)
		c.DrawControlText(fmt.Sprintf("#%02X%02X%02X", col.R, col.G, col.B), r, ui.ColorText, ui.OptAlignCenter)
	}

	if c.Header("Number", 0).Has(ui.ResActive) {
		c.LayoutRow(0, 80, -1)
		c.Label("Drag me:")
		if c.Number(&d.number, 0.1).Has(ui.ResChange) {
			d.log("Number changed to %.2f", d.number)
		}
	}
}

func (d *demo) logWindow() {
	c := d.ctx
	if !c.BeginWindow("Log Window", image.Rect(350, 40, 650, 240), 0).Has(ui.ResActive) {
		return
	}
	defer c.EndWindow()
	c.LayoutRow(-25, -1)
	c.BeginPanel("Log Output", 0)
	panel := c.CurrentContainer()
	c.LayoutRow(0, -1)
	c.Text(d.logBuf.String())
	c.EndPanel()
	// Keep the newest entries in view.
	panel.Scroll.Y = panel.ContentSize.Y

	submitted := false
	c.LayoutRow(0, -70, -1)
	if c.Textbox(&d.logInput).Has(ui.ResSubmit) {
		c.SetFocus(c.LastID())
		submitted = true
	}
	if c.Button("Submit") {
		submitted = true
	}
	if submitted && d.logInput != "" {
		d.log("%s", d.logInput)
		d.logInput = ""
	}
}

var colorNames = [...]string{
	ui.ColorText:        "text:",
	ui.ColorBorder:      "border:",
	ui.ColorWindowBG:    "windowbg:",
	ui.ColorTitleBG:     "titlebg:",
	ui.ColorTitleText:   "titletext:",
	ui.ColorPanelBG:     "panelbg:",
	ui.ColorButton:      "button:",
	ui.ColorButtonHover: "buttonhover:",
	ui.ColorButtonFocus: "buttonfocus:",
	ui.ColorBase:        "base:",
	ui.ColorBaseHover:   "basehover:",
	ui.ColorBaseFocus:   "basefocus:",
	ui.ColorScrollBase:  "scrollbase:",
	ui.ColorScrollThumb: "scrollthumb:",
}

func (d *demo) styleWindow() {
	c := d.ctx
	if !c.BeginWindow("Style Editor", image.Rect(350, 250, 650, 490), 0).Has(ui.ResActive) {
		return
	}
	defer c.EndWindow()
	sw := c.CurrentContainer().Body.Dx() * 14 / 100
	c.LayoutRow(0, 80, sw, sw, sw, sw, -1)
	for i, name := range colorNames {
		col := &c.Style.Colors[i]
		c.Label(name)
		for j, ch := range []*uint8{&col.R, &col.G, &col.B, &col.A} {
			c.PushID(fmt.Sprintf("%d.%d", i, j))
			v := float32(*ch)
			if c.SliderEx(&v, 0, 255, 1, "%.0f", ui.OptAlignCenter).Has(ui.ResChange) {
				*ch = uint8(v)
			}
			c.PopID()
		}
		c.DrawRect(c.LayoutNext(), *col)
	}
}

func (d *demo) viewWindow() {
	c := d.ctx
	d.viewRect = image.Rectangle{}
	if !c.BeginWindow("3D View", image.Rect(660, 40, 1060, 400), 0).Has(ui.ResActive) {
		return
	}
	defer c.EndWindow()
	c.LayoutRow(-1, -1)
	r, res := c.View3D(d.view, 0)
	if res.Has(ui.ResActive) && c.MousePressed() != 0 {
		eye := d.view.Camera().Eye()
		d.log("Camera at %.1f, %.1f, %.1f", eye.X(), eye.Y(), eye.Z())
	}
	d.viewRect = r.Intersect(c.ClipRect())
}
