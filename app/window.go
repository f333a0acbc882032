// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"
	"image"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"neocogi.org/gpu"
	_ "neocogi.org/gpu/gles"
)

func init() {
	// glfw must be called from the main thread.
	runtime.LockOSThread()
}

// Window is a glfw window with an OpenGL ES 3 context and the device
// rendering to it. The context is current on the device thread, so
// the window methods must be called from the main goroutine and
// buffer swaps go through the device.
type Window struct {
	glw    *glfw.Window
	dev    *gpu.Device
	cfg    Config
	events []Event
	reload chan Config
	onExit []func()
}

// NewWindow initializes glfw and opens a window configured by cfg.
func NewWindow(cfg Config) (*Window, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("app: glfw init: %w", err)
	}
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextCreationAPI, glfw.EGLContextAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 0)
	glfw.WindowHint(glfw.Samples, cfg.MSAA)
	glfw.WindowHint(glfw.Resizable, glfwBool(cfg.Resizable))
	glw, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("app: create window: %w", err)
	}
	w := &Window{
		glw:    glw,
		cfg:    cfg,
		reload: make(chan Config, 1),
	}
	w.dev, err = gpu.NewDevice(gpu.OpenGL{}, gpu.WithContext(w))
	if err != nil {
		glw.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("app: %w", err)
	}
	if err := w.setVSync(cfg.VSync); err != nil {
		w.Destroy()
		return nil, err
	}
	w.register()
	gpu.Logger().Info("app: window created", "title", cfg.Title, "size", image.Pt(cfg.Width, cfg.Height))
	return w, nil
}

var _ gpu.Context = (*Window)(nil)

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// MakeCurrent implements gpu.Context.
func (w *Window) MakeCurrent() error {
	w.glw.MakeContextCurrent()
	return nil
}

// ReleaseCurrent implements gpu.Context.
func (w *Window) ReleaseCurrent() {
	glfw.DetachCurrentContext()
}

// Device returns the device rendering to the window.
func (w *Window) Device() *gpu.Device {
	return w.dev
}

// Config returns the current configuration.
func (w *Window) Config() Config {
	return w.cfg
}

// Reload queues cfg to replace the window configuration before the
// next frame. It is safe to call from any goroutine; a pending
// configuration is replaced.
func (w *Window) Reload(cfg Config) {
	for {
		select {
		case w.reload <- cfg:
			return
		default:
		}
		select {
		case <-w.reload:
		default:
		}
	}
}

func (w *Window) apply(cfg Config) error {
	old := w.cfg
	w.cfg = cfg
	if cfg.Title != old.Title {
		w.glw.SetTitle(cfg.Title)
	}
	if cfg.Width != old.Width || cfg.Height != old.Height {
		w.glw.SetSize(cfg.Width, cfg.Height)
	}
	if cfg.LogLevel != old.LogLevel {
		InstallLogger(NewLogger(cfg, logOutput))
	}
	if cfg.VSync != old.VSync {
		return w.setVSync(cfg.VSync)
	}
	return nil
}

func (w *Window) setVSync(on bool) error {
	interval := 0
	if on {
		interval = 1
	}
	return w.dev.Do(func() error {
		glfw.SwapInterval(interval)
		return nil
	})
}

// FramebufferSize returns the size of the window in pixels.
func (w *Window) FramebufferSize() image.Point {
	width, height := w.glw.GetFramebufferSize()
	return image.Pt(width, height)
}

// toPixels converts window coordinates to framebuffer pixels.
func (w *Window) toPixels(x, y float64) image.Point {
	ww, wh := w.glw.GetSize()
	fw, fh := w.glw.GetFramebufferSize()
	if ww > 0 && wh > 0 {
		x *= float64(fw) / float64(ww)
		y *= float64(fh) / float64(wh)
	}
	return image.Pt(int(x), int(y))
}

func (w *Window) cursor() image.Point {
	return w.toPixels(w.glw.GetCursorPos())
}

func (w *Window) register() {
	w.glw.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.events = append(w.events, Event{Kind: EventMove, Pos: w.toPixels(x, y)})
	})
	w.glw.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, a glfw.Action, mods glfw.ModifierKey) {
		w.events = append(w.events, Event{Kind: EventButton, Pos: w.cursor(), Button: b, Action: a, Mods: mods})
	})
	w.glw.SetScrollCallback(func(_ *glfw.Window, x, y float64) {
		w.events = append(w.events, Event{Kind: EventScroll, Pos: w.cursor(), ScrollX: x, ScrollY: y})
	})
	w.glw.SetKeyCallback(func(_ *glfw.Window, k glfw.Key, _ int, a glfw.Action, mods glfw.ModifierKey) {
		w.events = append(w.events, Event{Kind: EventKey, Pos: w.cursor(), Key: k, Action: a, Mods: mods})
	})
	w.glw.SetCharCallback(func(_ *glfw.Window, r rune) {
		w.events = append(w.events, Event{Kind: EventChar, Char: r})
	})
	w.glw.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.events = append(w.events, Event{Kind: EventResize, Size: image.Pt(width, height)})
	})
}

// poll processes pending window events and returns them. The
// returned slice is valid until the next call.
func (w *Window) poll() []Event {
	w.events = w.events[:0]
	glfw.PollEvents()
	return w.events
}

// wait blocks until an event arrives, such as the restore of a
// minimized window.
func (w *Window) wait() {
	glfw.WaitEvents()
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool {
	return w.glw.ShouldClose()
}

// Close asks the frame loop to stop after the current frame.
func (w *Window) Close() {
	w.glw.SetShouldClose(true)
}

// present swaps the buffers on the device thread.
func (w *Window) present() error {
	return w.dev.Do(func() error {
		w.glw.SwapBuffers()
		return nil
	})
}

// OnExit registers f to run before the device is closed, for
// releasing the resources created by frames. Functions run in
// reverse order of registration.
func (w *Window) OnExit(f func()) {
	w.onExit = append(w.onExit, f)
}

// Destroy closes the device, the window and glfw.
func (w *Window) Destroy() {
	for i := len(w.onExit) - 1; i >= 0; i-- {
		w.onExit[i]()
	}
	if err := w.dev.Close(); err != nil {
		gpu.Logger().Warn("app: close device", "err", err)
	}
	w.glw.Destroy()
	glfw.Terminate()
}
