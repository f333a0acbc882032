// SPDX-License-Identifier: Unlicense OR MIT

package main

// Shows the Dear ImGui demo window, painted with package gpu.

import (
	"flag"
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"
	ig "github.com/inkyblackness/imgui-go/v4"

	"neocogi.org/app"
	"neocogi.org/ui/imgui"
)

var configPath = flag.String("config", "", "configuration file (.toml or .yaml)")

var keys = map[int]glfw.Key{
	ig.KeyTab:        glfw.KeyTab,
	ig.KeyLeftArrow:  glfw.KeyLeft,
	ig.KeyRightArrow: glfw.KeyRight,
	ig.KeyUpArrow:    glfw.KeyUp,
	ig.KeyDownArrow:  glfw.KeyDown,
	ig.KeyPageUp:     glfw.KeyPageUp,
	ig.KeyPageDown:   glfw.KeyPageDown,
	ig.KeyHome:       glfw.KeyHome,
	ig.KeyEnd:        glfw.KeyEnd,
	ig.KeyInsert:     glfw.KeyInsert,
	ig.KeyDelete:     glfw.KeyDelete,
	ig.KeyBackspace:  glfw.KeyBackspace,
	ig.KeySpace:      glfw.KeySpace,
	ig.KeyEnter:      glfw.KeyEnter,
	ig.KeyEscape:     glfw.KeyEscape,
	ig.KeyA:          glfw.KeyA,
	ig.KeyC:          glfw.KeyC,
	ig.KeyV:          glfw.KeyV,
	ig.KeyX:          glfw.KeyX,
	ig.KeyY:          glfw.KeyY,
	ig.KeyZ:          glfw.KeyZ,
}

type gui struct {
	ctx     *ig.Context
	io      ig.IO
	painter *imgui.Painter
	// pressed holds the buttons pressed since the last frame, so
	// clicks shorter than a frame are seen.
	pressed, down [3]bool
	showDemo      bool
}

func main() {
	flag.Parse()
	var g *gui
	err := app.Main(*configPath, func(f *app.Frame) error {
		if g == nil {
			var err error
			if g, err = newGUI(f); err != nil {
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

func newGUI(f *app.Frame) (*gui, error) {
	ctx := ig.CreateContext(nil)
	io := ig.CurrentIO()
	io.SetIniFilename("")
	for k, native := range keys {
		io.KeyMap(k, int(native))
	}
	p, err := imgui.NewPainter(f.Device, io.Fonts())
	if err != nil {
		ctx.Destroy()
		return nil, err
	}
	return &gui{ctx: ctx, io: io, painter: p, showDemo: true}, nil
}

func (g *gui) release() {
	g.painter.Release()
	g.ctx.Destroy()
}

func (g *gui) feed(events []app.Event) {
	for _, e := range events {
		switch e.Kind {
		case app.EventMove:
			g.io.SetMousePosition(ig.Vec2{X: float32(e.Pos.X), Y: float32(e.Pos.Y)})
		case app.EventButton:
			b := int(e.Button)
			if b >= len(g.down) {
				break
			}
			g.down[b] = e.Action == glfw.Press
			if g.down[b] {
				g.pressed[b] = true
			}
		case app.EventScroll:
			g.io.AddMouseWheelDelta(float32(e.ScrollX), float32(e.ScrollY))
		case app.EventKey:
			switch e.Action {
			case glfw.Press:
				g.io.KeyPress(int(e.Key))
			case glfw.Release:
				g.io.KeyRelease(int(e.Key))
			}
		case app.EventChar:
			g.io.AddInputCharacters(string(e.Char))
		}
	}
	for i := range g.down {
		g.io.SetMouseButtonDown(i, g.down[i] || g.pressed[i])
		g.pressed[i] = false
	}
	g.io.KeyShift(int(glfw.KeyLeftShift), int(glfw.KeyRightShift))
	g.io.KeyCtrl(int(glfw.KeyLeftControl), int(glfw.KeyRightControl))
	g.io.KeyAlt(int(glfw.KeyLeftAlt), int(glfw.KeyRightAlt))
	g.io.KeySuper(int(glfw.KeyLeftSuper), int(glfw.KeyRightSuper))
}

func (g *gui) frame(f *app.Frame) error {
	w, h := float32(f.Size.X), float32(f.Size.Y)
	g.io.SetDisplaySize(ig.Vec2{X: w, Y: h})
	if f.Delta > 0 {
		g.io.SetDeltaTime(float32(f.Delta.Seconds()))
	}
	g.feed(f.Events)

	ig.NewFrame()
	if g.showDemo {
		ig.ShowDemoWindow(&g.showDemo)
	}
	ig.Render()

	p := f.Pass()
	if err := g.painter.Record(p, ig.RenderedDrawData(), w, h); err != nil {
		return err
	}
	return f.Device.SubmitPass(p)
}
