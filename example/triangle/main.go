// SPDX-License-Identifier: Unlicense OR MIT

package main

// Draws a colored triangle with a single pass per frame.

import (
	"flag"
	"log"

	"neocogi.org/app"
	"neocogi.org/gpu"
)

type vertex struct {
	Position [2]float32
	Color    [4]uint8
}

const vertexSrc = `#version 300 es
in vec2 position;
in lowp vec4 color;
out lowp vec4 vColor;

void main() {
	gl_Position = vec4(position, 0.0, 1.0);
	vColor = color;
}
`

const fragmentSrc = `#version 300 es
precision mediump float;
in lowp vec4 vColor;
out lowp vec4 fragColor;

void main() {
	fragColor = vColor;
}
`

var configPath = flag.String("config", "", "configuration file (.toml or .yaml)")

func main() {
	flag.Parse()
	var tri *triangle
	err := app.Main(*configPath, func(f *app.Frame) error {
		if tri == nil {
			t, err := newTriangle(f.Device)
			if err != nil {
				return err
			}
			tri = t
			f.Window.OnExit(tri.release)
		}
		p := f.Pass()
		if err := p.Draw(tri.pipe, gpu.Bindings{VertexBuffers: []*gpu.Buffer{tri.vbuf}}, nil, 1, 1); err != nil {
			return err
		}
		return f.Device.SubmitPass(p)
	})
	if err != nil {
		log.Fatal(err)
	}
}

type triangle struct {
	pipe *gpu.Pipeline
	vbuf *gpu.Buffer
}

func newTriangle(d *gpu.Device) (*triangle, error) {
	vertices := []vertex{
		{Position: [2]float32{0, 0.5}, Color: [4]uint8{0xff, 0, 0, 0xff}},
		{Position: [2]float32{-0.5, -0.5}, Color: [4]uint8{0, 0xff, 0, 0xff}},
		{Position: [2]float32{0.5, -0.5}, Color: [4]uint8{0, 0, 0xff, 0xff}},
	}
	vbuf, err := d.NewBuffer(gpu.BufferDesc{Kind: gpu.VertexBuffer, Usage: gpu.Static, Data: gpu.Bytes(vertices)})
	if err != nil {
		return nil, err
	}
	sh, err := d.NewShader(gpu.ShaderDesc{
		VertexSource:   vertexSrc,
		FragmentSource: fragmentSrc,
		Attributes:     [][]string{gpu.AttributeNames(vertex{}, "")},
	})
	if err != nil {
		vbuf.Release()
		return nil, err
	}
	defer sh.Release()
	pipe, err := d.NewPipeline(gpu.PipelineDesc{
		Shader:    sh,
		Primitive: gpu.Triangles,
		Buffers:   []gpu.VertexBufferLayout{gpu.MustLayoutOf(vertex{})},
	})
	if err != nil {
		vbuf.Release()
		return nil, err
	}
	return &triangle{pipe: pipe, vbuf: vbuf}, nil
}

func (t *triangle) release() {
	t.pipe.Release()
	t.vbuf.Release()
}
