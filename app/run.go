// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"context"
	"fmt"
	"image"
	"os"
	"time"

	"neocogi.org/gpu"
)

// logOutput receives the records of the loggers built by Run.
var logOutput = os.Stderr

// Frame is the state handed to the frame function of Run.
type Frame struct {
	Window *Window
	Device *gpu.Device
	// Size is the framebuffer size in pixels.
	Size   image.Point
	Events []Event
	Config Config
	// Time is the time since Run started; Delta the time since the
	// previous frame.
	Time, Delta time.Duration
}

// Pass returns a pass over the default framebuffer that clears color
// to the configured clear color and depth to 1.
func (f *Frame) Pass() *gpu.Pass {
	return gpu.NewPass(gpu.PassDesc{
		Width:  f.Size.X,
		Height: f.Size.Y,
		Color:  gpu.ClearAll(f.Config.Clear()),
		Depth:  gpu.ClearDepth(1),
	})
}

// Run opens a window configured by cfg and calls frame once per
// displayed frame until the window is closed or frame fails. The
// passes frame submits are flushed before the buffers are swapped.
// Run must be called from the main goroutine.
func Run(cfg Config, frame func(*Frame) error) error {
	return run(cfg, nil, frame)
}

// Main runs frame like Run with the configuration loaded from the
// file at path, or DefaultConfig if path is empty. Changes to the
// file are applied while running.
func Main(path string, frame func(*Frame) error) error {
	if path == "" {
		return Run(DefaultConfig(), frame)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}
	return run(cfg, func(ctx context.Context, w *Window) {
		if err := WatchConfig(ctx, path, w.Reload); err != nil {
			gpu.Logger().Warn("app: config not watched", "err", err)
		}
	}, frame)
}

func run(cfg Config, watch func(context.Context, *Window), frame func(*Frame) error) error {
	InstallLogger(NewLogger(cfg, logOutput))
	w, err := NewWindow(cfg)
	if err != nil {
		return err
	}
	defer w.Destroy()
	if watch != nil {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go watch(ctx, w)
	}
	start := time.Now()
	last := start
	for !w.ShouldClose() {
		select {
		case c := <-w.reload:
			if err := w.apply(c); err != nil {
				return err
			}
		default:
		}
		events := w.poll()
		now := time.Now()
		f := &Frame{
			Window: w,
			Device: w.dev,
			Size:   w.FramebufferSize(),
			Events: events,
			Config: w.cfg,
			Time:   now.Sub(start),
			Delta:  now.Sub(last),
		}
		last = now
		if f.Size.X <= 0 || f.Size.Y <= 0 {
			w.wait()
			continue
		}
		if err := frame(f); err != nil {
			return fmt.Errorf("app: frame: %w", err)
		}
		if err := w.dev.Flush(); err != nil {
			return fmt.Errorf("app: flush: %w", err)
		}
		if err := w.present(); err != nil {
			return fmt.Errorf("app: present: %w", err)
		}
	}
	return nil
}
