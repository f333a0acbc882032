// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"
)

// NewColorDepthFramebuffer creates a framebuffer with an RGBA8
// color texture and a D32 depth render target. The framebuffer holds
// the only references to its attachments.
func (d *Device) NewColorDepthFramebuffer(width, height int) (*Framebuffer, error) {
	return d.newGBuffer(width, height, RGBA8)
}

// NewColorNormalDepthFramebuffer is like NewColorDepthFramebuffer with
// an additional RGBA32F texture for normals at color attachment 1.
func (d *Device) NewColorNormalDepthFramebuffer(width, height int) (*Framebuffer, error) {
	return d.newGBuffer(width, height, RGBA8, RGBA32F)
}

func (d *Device) newGBuffer(width, height int, formats ...PixelFormat) (*Framebuffer, error) {
	var desc FramebufferDesc
	var owned []interface{ Release() }
	defer func() {
		for _, r := range owned {
			r.Release()
		}
	}()
	for i, f := range formats {
		t, err := d.NewTexture(TextureDesc{
			Width:     width,
			Height:    height,
			Format:    f,
			MinFilter: Linear,
			MagFilter: Linear,
			Wrap:      ClampToEdge,
		})
		if err != nil {
			return nil, err
		}
		owned = append(owned, t)
		desc.Color[i] = TextureAttachment(t)
	}
	rt, err := d.NewRenderTarget(RenderTargetDesc{Width: width, Height: height, Format: D32})
	if err != nil {
		return nil, err
	}
	owned = append(owned, rt)
	desc.Depth = RenderTargetAttachment(rt)
	return d.NewFramebuffer(desc)
}

type quadVertex struct {
	Position [2]float32
	UV       [2]float32
}

const quadVertexSrc = `#version 300 es
precision highp float;
in vec2 position;
in vec2 uv;
out highp vec2 vUV;

void main() {
	gl_Position = vec4(position, 0.0, 1.0);
	vUV = uv;
}
`

const quadUIntFragmentSrc = `#version 300 es
precision highp float;
precision highp usampler2D;
in highp vec2 vUV;
uniform usampler2D uTexture;
out vec4 fragColor;

void main() {
	uvec4 texel = texture(uTexture, vUV);
	fragColor = vec4(texel) / 255.0;
}
`

const quadFloatFragmentSrc = `#version 300 es
precision highp float;
in highp vec2 vUV;
uniform sampler2D uTexture;
out vec4 fragColor;

void main() {
	fragColor = texture(uTexture, vUV);
}
`

// ScreenQuad draws a texture over the whole target of a pass.
type ScreenQuad struct {
	vertices *Buffer
	indices  *Buffer
	// pipes is indexed by SurfaceType.
	pipes [2]*Pipeline
}

// NewScreenQuad creates the buffers and pipelines of a ScreenQuad.
func (d *Device) NewScreenQuad() (*ScreenQuad, error) {
	q := new(ScreenQuad)
	fail := func(err error) (*ScreenQuad, error) {
		q.Release()
		return nil, fmt.Errorf("gpu: new screen quad: %w", err)
	}
	verts := []quadVertex{
		{Position: [2]float32{-1, -1}, UV: [2]float32{0, 0}},
		{Position: [2]float32{1, -1}, UV: [2]float32{1, 0}},
		{Position: [2]float32{1, 1}, UV: [2]float32{1, 1}},
		{Position: [2]float32{-1, 1}, UV: [2]float32{0, 1}},
	}
	var err error
	q.vertices, err = d.NewBuffer(BufferDesc{Kind: VertexBuffer, Usage: Static, Data: Bytes(verts)})
	if err != nil {
		return fail(err)
	}
	q.indices, err = d.NewBuffer(BufferDesc{Kind: IndexBuffer, Usage: Static, Data: Bytes([]uint32{0, 1, 2, 2, 3, 0})})
	if err != nil {
		return fail(err)
	}
	srcs := [...]string{SurfaceUInt: quadUIntFragmentSrc, SurfaceFloat: quadFloatFragmentSrc}
	for st, src := range srcs {
		q.pipes[st], err = d.newQuadPipeline(src)
		if err != nil {
			return fail(err)
		}
	}
	return q, nil
}

func (d *Device) newQuadPipeline(fragment string) (*Pipeline, error) {
	sh, err := d.NewShader(ShaderDesc{
		VertexSource:     quadVertexSrc,
		FragmentSource:   fragment,
		Attributes:       [][]string{AttributeNames(quadVertex{}, "")},
		FragmentTextures: []string{"uTexture"},
	})
	if err != nil {
		return nil, err
	}
	// The pipeline holds its own reference to the shader.
	defer sh.Release()
	return d.NewPipeline(PipelineDesc{
		Shader:      sh,
		Primitive:   Triangles,
		Buffers:     []VertexBufferLayout{MustLayoutOf(quadVertex{})},
		IndexType:   IndexUInt32,
		FaceWinding: CCW,
		CullMode:    CullWinding,
	})
}

// Draw records a draw of t into p, selecting the shader matching the
// surface type of t.
func (q *ScreenQuad) Draw(p *Pass, t *Texture) error {
	if t.desc.Format.IsDepth() {
		return fmt.Errorf("gpu: screen quad: %w: depth texture", ErrBindings)
	}
	return p.Draw(q.pipes[t.desc.Format.SurfaceType()], Bindings{
		VertexBuffers:    []*Buffer{q.vertices},
		IndexBuffer:      q.indices,
		FragmentTextures: []*Texture{t},
	}, nil, 2, 1)
}

// Release drops the references held by q.
func (q *ScreenQuad) Release() {
	for _, p := range q.pipes {
		if p != nil {
			p.Release()
		}
	}
	if q.vertices != nil {
		q.vertices.Release()
	}
	if q.indices != nil {
		q.indices.Release()
	}
	*q = ScreenQuad{}
}
