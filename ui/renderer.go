// SPDX-License-Identifier: Unlicense OR MIT

package ui

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"neocogi.org/gpu"
)

const (
	initialVertices = 4096
	initialIndices  = initialVertices / 4 * 6
)

type vertex struct {
	Position [2]float32
	UV       [2]float32
	Color    [4]uint8
}

type uniforms struct {
	Transform mgl32.Mat4 `gpu:"transform"`
}

const vertexSrc = `#version 300 es
uniform mat4 transform;
in vec2 position;
in vec2 uv;
in vec4 color;
out vec2 vUV;
out vec4 vColor;

void main() {
	gl_Position = transform * vec4(position, 0.0, 1.0);
	vUV = uv;
	vColor = color;
}
`

const fragmentSrc = `#version 300 es
precision mediump float;
uniform sampler2D atlas;
in vec2 vUV;
in vec4 vColor;
out vec4 fragColor;

void main() {
	fragColor = vec4(vColor.rgb, vColor.a * texture(atlas, vUV).r);
}
`

// drawRange is a run of indices sharing a clip rectangle.
type drawRange struct {
	clip         image.Rectangle
	first, count int
}

// Renderer turns the commands of a Context into a pass. The vertices
// of a frame are uploaded once, in the update phase of the pass, and
// drawn by one indexed draw per clip rectangle.
type Renderer struct {
	// Background clears the target unless Keep is set.
	Background color.RGBA
	Keep       bool

	dev   *gpu.Device
	atlas *Atlas
	tex   *gpu.Texture
	pipe  *gpu.Pipeline
	vbuf  *gpu.Buffer
	ibuf  *gpu.Buffer

	vertices []vertex
	indices  []uint32
	draws    []drawRange
}

// NewRenderer uploads atlas and creates the pipeline of a renderer.
func NewRenderer(dev *gpu.Device, atlas *Atlas) (*Renderer, error) {
	r := &Renderer{
		Background: color.RGBA{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
		dev:        dev,
		atlas:      atlas,
	}
	if err := r.init(); err != nil {
		r.Release()
		return nil, fmt.Errorf("ui: new renderer: %w", err)
	}
	return r, nil
}

func (r *Renderer) init() error {
	sz := r.atlas.Size()
	var err error
	r.tex, err = r.dev.NewTexture(gpu.TextureDesc{
		Width:     sz.X,
		Height:    sz.Y,
		Format:    gpu.R8,
		MinFilter: gpu.Nearest,
		MagFilter: gpu.Nearest,
		Wrap:      gpu.ClampToEdge,
		Pixels:    r.atlas.Image.Pix,
	})
	if err != nil {
		return err
	}
	us := gpu.MustUniformsOf(uniforms{})
	sh, err := r.dev.NewShader(gpu.ShaderDesc{
		VertexSource:     vertexSrc,
		FragmentSource:   fragmentSrc,
		Attributes:       [][]string{gpu.AttributeNames(vertex{}, "")},
		Uniforms:         gpu.UniformNames(us),
		FragmentTextures: []string{"atlas"},
	})
	if err != nil {
		return err
	}
	defer sh.Release()
	r.pipe, err = r.dev.NewPipeline(gpu.PipelineDesc{
		Shader:    sh,
		Primitive: gpu.Triangles,
		Buffers:   []gpu.VertexBufferLayout{gpu.MustLayoutOf(vertex{})},
		Uniforms:  us,
		IndexType: gpu.IndexUInt32,
		Blend: gpu.BlendState{
			Op:       gpu.BlendAdd,
			SrcRGB:   gpu.BlendFactorSrcAlpha,
			DstRGB:   gpu.BlendFactorOneMinusSrcAlpha,
			SrcAlpha: gpu.BlendFactorOne,
			DstAlpha: gpu.BlendFactorZero,
		},
	})
	if err != nil {
		return err
	}
	return r.reserve(initialVertices, initialIndices)
}

// reserve grows the buffers to hold at least nv vertices and ni
// indices.
func (r *Renderer) reserve(nv, ni int) error {
	if vsz := nv * vertexSize; r.vbuf == nil || r.vbuf.Size() < vsz {
		if r.vbuf != nil {
			vsz = max(vsz, 2*r.vbuf.Size())
			r.vbuf.Release()
			r.vbuf = nil
		}
		b, err := r.dev.NewBuffer(gpu.BufferDesc{Kind: gpu.VertexBuffer, Usage: gpu.Streamed, Size: vsz})
		if err != nil {
			return err
		}
		r.vbuf = b
		gpu.Logger().Debug("ui: vertex buffer grown", "size", vsz)
	}
	if isz := ni * 4; r.ibuf == nil || r.ibuf.Size() < isz {
		if r.ibuf != nil {
			isz = max(isz, 2*r.ibuf.Size())
			r.ibuf.Release()
			r.ibuf = nil
		}
		b, err := r.dev.NewBuffer(gpu.BufferDesc{Kind: gpu.IndexBuffer, Usage: gpu.Streamed, Size: isz})
		if err != nil {
			return err
		}
		r.ibuf = b
		gpu.Logger().Debug("ui: index buffer grown", "size", isz)
	}
	return nil
}

var vertexSize = gpu.MustLayoutOf(vertex{}).Stride

// Frame records the last frame of ctx into a new pass targeting fb,
// or the default framebuffer if fb is nil, of size width x height.
func (r *Renderer) Frame(ctx *Context, fb *gpu.Framebuffer, width, height int) (*gpu.Pass, error) {
	desc := gpu.PassDesc{Width: width, Height: height, Framebuffer: fb}
	if !r.Keep {
		desc.Color[0] = gpu.ClearColor(r.Background)
		desc.Depth = gpu.ClearDepth(1)
	}
	p := gpu.NewPass(desc)
	if err := r.Record(p, ctx, width, height); err != nil {
		return nil, err
	}
	return p, nil
}

// Record appends the updates and draws of the last frame of ctx to
// p, a pass over a target of size width x height.
func (r *Renderer) Record(p *gpu.Pass, ctx *Context, width, height int) error {
	r.build(ctx.Commands(), image.Rect(0, 0, width, height))
	if len(r.indices) == 0 {
		return nil
	}
	if err := r.reserve(len(r.vertices), len(r.indices)); err != nil {
		return fmt.Errorf("ui: frame: %w", err)
	}
	if err := p.UpdateBuffer(r.vbuf, 0, gpu.Bytes(r.vertices)); err != nil {
		return fmt.Errorf("ui: frame: %w", err)
	}
	if err := p.UpdateBuffer(r.ibuf, 0, gpu.Bytes(r.indices)); err != nil {
		return fmt.Errorf("ui: frame: %w", err)
	}
	u := uniforms{Transform: mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)}
	ub := gpu.Bytes(&u)
	flip := r.dev.Caps().BottomLeftOrigin
	p.Viewport(0, 0, width, height)
	for _, d := range r.draws {
		if d.count == 0 {
			continue
		}
		c := d.clip
		y := c.Min.Y
		if flip {
			y = height - c.Max.Y
		}
		p.Scissor(c.Min.X, y, c.Dx(), c.Dy())
		err := p.DrawRange(gpu.DrawCommand{
			Pipeline: r.pipe,
			Bindings: gpu.Bindings{
				VertexBuffers:    []*gpu.Buffer{r.vbuf},
				IndexBuffer:      r.ibuf,
				FragmentTextures: []*gpu.Texture{r.tex},
			},
			Uniforms:   ub,
			First:      d.first,
			Primitives: d.count / 3,
		})
		if err != nil {
			return fmt.Errorf("ui: frame: %w", err)
		}
	}
	p.Scissor(0, 0, width, height)
	return nil
}

func (r *Renderer) build(cmds []Command, screen image.Rectangle) {
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	r.draws = append(r.draws[:0], drawRange{clip: screen})
	white := r.atlas.White().Inset(1)
	for _, cmd := range cmds {
		switch cmd.Type {
		case CommandClip:
			clip := intersect(cmd.Rect, screen)
			last := &r.draws[len(r.draws)-1]
			if last.count == 0 {
				last.clip = clip
			} else {
				r.draws = append(r.draws, drawRange{clip: clip, first: len(r.indices)})
			}
		case CommandRect:
			r.quad(cmd.Rect, white, cmd.Color)
		case CommandText:
			pos := cmd.Rect.Min
			for _, ch := range cmd.Text {
				src := r.atlas.Glyph(ch)
				r.quad(image.Rectangle{Min: pos, Max: pos.Add(src.Size())}, src, cmd.Color)
				pos.X += src.Dx()
			}
		case CommandIcon:
			src := r.atlas.Icon(cmd.Icon)
			off := cmd.Rect.Size().Sub(src.Size()).Div(2)
			pos := cmd.Rect.Min.Add(off)
			r.quad(image.Rectangle{Min: pos, Max: pos.Add(src.Size())}, src, cmd.Color)
		}
	}
}

func (r *Renderer) quad(dst, src image.Rectangle, col color.RGBA) {
	sz := r.atlas.Size()
	w, h := float32(sz.X), float32(sz.Y)
	u0, v0 := float32(src.Min.X)/w, float32(src.Min.Y)/h
	u1, v1 := float32(src.Max.X)/w, float32(src.Max.Y)/h
	x0, y0 := float32(dst.Min.X), float32(dst.Min.Y)
	x1, y1 := float32(dst.Max.X), float32(dst.Max.Y)
	c := [4]uint8{col.R, col.G, col.B, col.A}
	base := uint32(len(r.vertices))
	r.vertices = append(r.vertices,
		vertex{Position: [2]float32{x0, y0}, UV: [2]float32{u0, v0}, Color: c},
		vertex{Position: [2]float32{x1, y0}, UV: [2]float32{u1, v0}, Color: c},
		vertex{Position: [2]float32{x1, y1}, UV: [2]float32{u1, v1}, Color: c},
		vertex{Position: [2]float32{x0, y1}, UV: [2]float32{u0, v1}, Color: c},
	)
	r.indices = append(r.indices, base, base+1, base+2, base+2, base+3, base)
	r.draws[len(r.draws)-1].count += 6
}

// Release drops the resources of the renderer.
func (r *Renderer) Release() {
	if r.tex != nil {
		r.tex.Release()
		r.tex = nil
	}
	if r.pipe != nil {
		r.pipe.Release()
		r.pipe = nil
	}
	if r.vbuf != nil {
		r.vbuf.Release()
		r.vbuf = nil
	}
	if r.ibuf != nil {
		r.ibuf.Release()
		r.ibuf = nil
	}
}
