// SPDX-License-Identifier: Unlicense OR MIT

// Package headless implements offscreen OpenGL ES contexts for
// rendering without a visible window.
package headless

import (
	"fmt"
	"image"
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"

	"neocogi.org/gpu"
	_ "neocogi.org/gpu/gles"
)

// Window is a hidden window whose default framebuffer is the render
// target of its device.
type Window struct {
	size image.Point
	glw  *glfw.Window
	dev  *gpu.Device
}

var (
	initOnce sync.Once
	initErr  error
)

// NewWindow creates a hidden window of the given size and an OpenGL
// device rendering to it.
func NewWindow(width, height int) (*Window, error) {
	initOnce.Do(func() {
		initErr = glfw.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("headless: %w", initErr)
	}
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLESAPI)
	glfw.WindowHint(glfw.ContextCreationAPI, glfw.EGLContextAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 0)
	glw, err := glfw.CreateWindow(width, height, "headless", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("headless: %w", err)
	}
	w := &Window{size: image.Pt(width, height), glw: glw}
	dev, err := gpu.NewDevice(gpu.OpenGL{}, gpu.WithContext(w))
	if err != nil {
		glw.Destroy()
		return nil, err
	}
	w.dev = dev
	return w, nil
}

func (w *Window) MakeCurrent() error {
	w.glw.MakeContextCurrent()
	return nil
}

func (w *Window) ReleaseCurrent() {
	glfw.DetachCurrentContext()
}

// Device returns the device of the window.
func (w *Window) Device() *gpu.Device {
	return w.dev
}

// Size returns the window size.
func (w *Window) Size() image.Point {
	return w.size
}

// Release closes the device and destroys the window.
func (w *Window) Release() {
	if w.dev != nil {
		w.dev.Close()
		w.dev = nil
	}
	if w.glw != nil {
		w.glw.Destroy()
		w.glw = nil
	}
}
