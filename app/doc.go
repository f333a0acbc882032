// SPDX-License-Identifier: Unlicense OR MIT

/*
Package app opens a glfw window with an OpenGL ES 3 context and runs
a frame loop rendering to it through a gpu.Device.

A typical program loads its configuration and renders each frame
into a pass over the default framebuffer:

	func main() {
		err := app.Main(*configPath, func(f *app.Frame) error {
			pass := f.Pass()
			// Record draws.
			return f.Device.SubmitPass(pass)
		})
		if err != nil {
			log.Fatal(err)
		}
	}

Configuration files are TOML or YAML, selected by extension:

	title = "grid"
	width = 1024
	height = 768
	vsync = true
	clear_color = [32, 32, 40, 255]
	log_level = "debug"

Run must be called from the main goroutine; the package locks it to
the main OS thread during initialization.
*/
package app
