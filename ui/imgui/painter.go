// SPDX-License-Identifier: Unlicense OR MIT

// Package imgui paints Dear ImGui draw data with package gpu.
package imgui

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	ig "github.com/inkyblackness/imgui-go/v4"
	"golang.org/x/exp/constraints"

	"neocogi.org/gpu"
)

// drawVert mirrors ImDrawVert.
type drawVert struct {
	Pos [2]float32
	UV  [2]float32
	Col [4]uint8
}

type uniforms struct {
	ProjMtx mgl32.Mat4 `gpu:"projMtx"`
}

const vertexSrc = `#version 300 es
uniform mat4 projMtx;
in vec2 pos;
in vec2 uv;
in vec4 col;
out vec2 fragUV;
out vec4 fragColor;

void main() {
	fragUV = uv;
	fragColor = col;
	gl_Position = projMtx * vec4(pos, 0.0, 1.0);
}
`

const fragmentSrc = `#version 300 es
precision mediump float;
uniform sampler2D tex;
in vec2 fragUV;
in vec4 fragColor;
out vec4 outColor;

void main() {
	outColor = vec4(fragColor.rgb, fragColor.a * texture(tex, fragUV).r);
}
`

// ErrVertexLayout is returned when the ImGui vertex layout differs
// from the painter's.
var ErrVertexLayout = errors.New("imgui: unsupported vertex layout")

// Painter records ImGui frames into passes. The vertices and indices
// of all draw lists are uploaded once per frame; indices are rebased
// so that a single vertex buffer serves every list.
type Painter struct {
	dev      *gpu.Device
	pipe     *gpu.Pipeline
	font     *gpu.Texture
	vbuf     *gpu.Buffer
	ibuf     *gpu.Buffer
	textures map[ig.TextureID]*gpu.Texture
	nextID   ig.TextureID

	vertices []byte
	indices  []uint32
}

// NewPainter uploads the font atlas of fonts, assigning it a texture
// id, and creates the painter pipeline.
func NewPainter(dev *gpu.Device, fonts ig.FontAtlas) (*Painter, error) {
	size, pos, uv, col := ig.VertexBufferLayout()
	l := gpu.MustLayoutOf(drawVert{})
	if size != l.Stride || pos != 0 || uv != 8 || col != 16 {
		return nil, fmt.Errorf("%w: size %d offsets %d %d %d", ErrVertexLayout, size, pos, uv, col)
	}
	p := &Painter{dev: dev, textures: make(map[ig.TextureID]*gpu.Texture)}
	if err := p.init(fonts); err != nil {
		p.Release()
		return nil, fmt.Errorf("imgui: new painter: %w", err)
	}
	return p, nil
}

func (p *Painter) init(fonts ig.FontAtlas) error {
	img := fonts.TextureDataAlpha8()
	pix := unsafe.Slice((*byte)(img.Pixels), img.Width*img.Height)
	var err error
	p.font, err = p.dev.NewTexture(gpu.TextureDesc{
		Width:     img.Width,
		Height:    img.Height,
		Format:    gpu.R8,
		MinFilter: gpu.Linear,
		MagFilter: gpu.Linear,
		Wrap:      gpu.ClampToEdge,
		Pixels:    pix,
	})
	if err != nil {
		return err
	}
	fonts.SetTextureID(p.Register(p.font))

	us := gpu.MustUniformsOf(uniforms{})
	sh, err := p.dev.NewShader(gpu.ShaderDesc{
		VertexSource:     vertexSrc,
		FragmentSource:   fragmentSrc,
		Attributes:       [][]string{gpu.AttributeNames(drawVert{}, "")},
		Uniforms:         gpu.UniformNames(us),
		FragmentTextures: []string{"tex"},
	})
	if err != nil {
		return err
	}
	defer sh.Release()
	p.pipe, err = p.dev.NewPipeline(gpu.PipelineDesc{
		Shader:    sh,
		Primitive: gpu.Triangles,
		Buffers:   []gpu.VertexBufferLayout{gpu.MustLayoutOf(drawVert{})},
		Uniforms:  us,
		IndexType: gpu.IndexUInt32,
		Blend: gpu.BlendState{
			Op:       gpu.BlendAdd,
			SrcRGB:   gpu.BlendFactorSrcAlpha,
			DstRGB:   gpu.BlendFactorOneMinusSrcAlpha,
			SrcAlpha: gpu.BlendFactorOne,
			DstAlpha: gpu.BlendFactorOneMinusSrcAlpha,
		},
	})
	return err
}

// Register makes t drawable by ImGui image widgets under the returned
// id. The painter retains t until Release.
func (p *Painter) Register(t *gpu.Texture) ig.TextureID {
	p.nextID++
	t.Retain()
	p.textures[p.nextID] = t
	return p.nextID
}

// rebase appends the indices of src offset by base to dst.
func rebase[T constraints.Unsigned](dst []uint32, src []T, base uint32) []uint32 {
	for _, i := range src {
		dst = append(dst, uint32(i)+base)
	}
	return dst
}

// command is a draw of count indices from first.
type command struct {
	tex          *gpu.Texture
	clip         ig.Vec4
	first, count int
}

// Frame records data into a new pass drawing over the default
// framebuffer of size fbWidth x fbHeight. The ImGui display size is
// displayWidth x displayHeight; clip rectangles are scaled to the
// framebuffer.
func (p *Painter) Frame(data ig.DrawData, displayWidth, displayHeight float32, fbWidth, fbHeight int) (*gpu.Pass, error) {
	pass := gpu.NewPass(gpu.PassDesc{Width: fbWidth, Height: fbHeight})
	if err := p.Record(pass, data, displayWidth, displayHeight); err != nil {
		return nil, err
	}
	return pass, nil
}

// Record appends the updates and draws of data to pass.
func (p *Painter) Record(pass *gpu.Pass, data ig.DrawData, displayWidth, displayHeight float32) error {
	desc := pass.Desc()
	if !data.Valid() || desc.Width <= 0 || desc.Height <= 0 || displayWidth <= 0 || displayHeight <= 0 {
		return nil
	}
	data.ScaleClipRects(ig.Vec2{
		X: float32(desc.Width) / displayWidth,
		Y: float32(desc.Height) / displayHeight,
	})
	cmds, err := p.build(data)
	if err != nil {
		return fmt.Errorf("imgui: frame: %w", err)
	}
	if len(cmds) == 0 {
		return nil
	}
	if err := p.reserve(len(p.vertices), 4*len(p.indices)); err != nil {
		return fmt.Errorf("imgui: frame: %w", err)
	}
	if err := pass.UpdateBuffer(p.vbuf, 0, p.vertices); err != nil {
		return fmt.Errorf("imgui: frame: %w", err)
	}
	if err := pass.UpdateBuffer(p.ibuf, 0, gpu.Bytes(p.indices)); err != nil {
		return fmt.Errorf("imgui: frame: %w", err)
	}
	u := gpu.Bytes(&uniforms{ProjMtx: mgl32.Ortho(0, displayWidth, displayHeight, 0, -1, 1)})
	flip := p.dev.Caps().BottomLeftOrigin
	pass.Viewport(0, 0, desc.Width, desc.Height)
	for _, c := range cmds {
		x, y := int(c.clip.X), int(c.clip.Y)
		w, h := int(c.clip.Z-c.clip.X), int(c.clip.W-c.clip.Y)
		if w <= 0 || h <= 0 {
			continue
		}
		if flip {
			y = desc.Height - int(c.clip.W)
		}
		pass.Scissor(x, y, w, h)
		err := pass.DrawRange(gpu.DrawCommand{
			Pipeline: p.pipe,
			Bindings: gpu.Bindings{
				VertexBuffers:    []*gpu.Buffer{p.vbuf},
				IndexBuffer:      p.ibuf,
				FragmentTextures: []*gpu.Texture{c.tex},
			},
			Uniforms:   u,
			First:      c.first,
			Primitives: c.count / 3,
		})
		if err != nil {
			return fmt.Errorf("imgui: frame: %w", err)
		}
	}
	pass.Scissor(0, 0, desc.Width, desc.Height)
	return nil
}

func (p *Painter) build(data ig.DrawData) ([]command, error) {
	p.vertices = p.vertices[:0]
	p.indices = p.indices[:0]
	var cmds []command
	idxSize := ig.IndexBufferLayout()
	vertSize := len(gpu.Bytes([]drawVert{{}}))
	for _, list := range data.CommandLists() {
		base := uint32(len(p.vertices) / vertSize)
		vptr, vsize := list.VertexBuffer()
		p.vertices = append(p.vertices, unsafe.Slice((*byte)(vptr), vsize)...)
		iptr, isize := list.IndexBuffer()
		first := len(p.indices)
		switch idxSize {
		case 2:
			p.indices = rebase(p.indices, unsafe.Slice((*uint16)(iptr), isize/2), base)
		case 4:
			p.indices = rebase(p.indices, unsafe.Slice((*uint32)(iptr), isize/4), base)
		default:
			return nil, fmt.Errorf("unsupported index size %d", idxSize)
		}
		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				continue
			}
			n := cmd.ElementCount()
			tex, ok := p.textures[cmd.TextureID()]
			if !ok {
				return nil, fmt.Errorf("unknown texture id %d", cmd.TextureID())
			}
			cmds = append(cmds, command{tex: tex, clip: cmd.ClipRect(), first: first, count: n})
			first += n
		}
	}
	return cmds, nil
}

// reserve grows the buffers to at least vsize and isize bytes.
func (p *Painter) reserve(vsize, isize int) error {
	grow := func(b **gpu.Buffer, kind gpu.BufferKind, size int) error {
		if *b != nil && (*b).Size() >= size {
			return nil
		}
		if *b != nil {
			size = max(size, 2*(*b).Size())
			(*b).Release()
			*b = nil
		}
		nb, err := p.dev.NewBuffer(gpu.BufferDesc{Kind: kind, Usage: gpu.Streamed, Size: size})
		if err != nil {
			return err
		}
		*b = nb
		gpu.Logger().Debug("imgui: buffer grown", "kind", kind, "size", size)
		return nil
	}
	if err := grow(&p.vbuf, gpu.VertexBuffer, vsize); err != nil {
		return err
	}
	return grow(&p.ibuf, gpu.IndexBuffer, isize)
}

// Release drops the resources of the painter and the registered
// textures.
func (p *Painter) Release() {
	for id, t := range p.textures {
		t.Release()
		delete(p.textures, id)
	}
	if p.font != nil {
		p.font.Release()
		p.font = nil
	}
	if p.pipe != nil {
		p.pipe.Release()
		p.pipe = nil
	}
	if p.vbuf != nil {
		p.vbuf.Release()
		p.vbuf = nil
	}
	if p.ibuf != nil {
		p.ibuf.Release()
		p.ibuf = nil
	}
}
