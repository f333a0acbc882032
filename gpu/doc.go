// SPDX-License-Identifier: Unlicense OR MIT

/*
Package gpu is a pass based rendering layer over OpenGL ES 3.

A Device creates shared resources: buffers, textures, render
targets, shaders, pipelines and framebuffers. Every handle counts
references. A handle stays valid while its owner or any pending pass
refers to it, and its backend object is destroyed once the last
reference is gone.

Work is recorded into a Pass. A pass has an update phase, for buffer
and texture uploads, and a draw phase. Recording validates and copies
the arguments, so the caller may reuse its slices immediately. When
the device is flushed, the updates of a pass complete before its
first draw and passes execute in the order they were submitted:

	q := new(gpu.Queue)
	p := gpu.NewPass(gpu.PassDesc{Width: w, Height: h, Color: gpu.ClearAll(bg)})
	p.UpdateBuffer(vertices, 0, gpu.Bytes(verts))
	p.Draw(pipe, gpu.Bindings{VertexBuffers: []*gpu.Buffer{vertices}}, gpu.Bytes(&uniforms), n, 1)
	q.Add(p)
	err := dev.Render(q)

The Device serializes backend access with a mutex. Resources may be
created and passes submitted from any goroutine; a graphics context
bound to one OS thread is supported with WithContext.

The OpenGL ES backend is linked in by importing neocogi.org/gpu/gles.
*/
package gpu
