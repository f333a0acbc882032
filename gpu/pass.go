// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"
	"image"
	"image/color"
)

// PassDesc describes the target of a pass and how its surfaces are
// initialized.
type PassDesc struct {
	Width, Height int
	// Framebuffer is nil for the default framebuffer.
	Framebuffer *Framebuffer
	Color       [4]ColorAction
	Depth       DepthAction
}

// Pass records the resource updates and draw commands of one
// rendering unit. When executed, every update of the pass completes
// before its first draw.
//
// A Pass is not safe for concurrent use. Submitting a pass moves its
// commands to the device and leaves the pass empty and reusable.
type Pass struct {
	desc    PassDesc
	updates []update
	draws   []command
	refs    refSet
}

// Bindings lists the resources read by a draw.
type Bindings struct {
	VertexBuffers    []*Buffer
	IndexBuffer      *Buffer
	VertexTextures   []*Texture
	FragmentTextures []*Texture
}

// DrawCommand is a draw of Primitives primitives starting at the
// First index (or vertex, for pipelines without indices).
type DrawCommand struct {
	Pipeline   *Pipeline
	Bindings   Bindings
	Uniforms   []byte
	First      int
	Primitives int
	// Instances is the instance count; zero means one.
	Instances int
}

type updateOp uint8

const (
	opUpdateBuffer updateOp = iota
	opUpdateTexture
)

type update struct {
	op     updateOp
	buf    *Buffer
	tex    *Texture
	offset int
	data   []byte
}

type commandOp uint8

const (
	opViewport commandOp = iota
	opScissor
	opDraw
)

type command struct {
	op   commandOp
	rect image.Rectangle
	draw DrawCommand
}

// NewPass returns an empty pass.
func NewPass(desc PassDesc) *Pass {
	return &Pass{desc: desc}
}

// ClearColor is the action clearing a color attachment to c.
func ClearColor(c color.RGBA) ColorAction {
	return ColorAction{Clear: true, Color: c}
}

// ClearDepth is the action clearing the depth attachment to d.
func ClearDepth(d float32) DepthAction {
	return DepthAction{Clear: true, Depth: d}
}

// ClearAll returns actions clearing every color attachment to c.
func ClearAll(c color.RGBA) [4]ColorAction {
	a := ClearColor(c)
	return [4]ColorAction{a, a, a, a}
}

var (
	// KeepColor preserves the previous content of a color attachment.
	KeepColor = ColorAction{}
	// KeepDepth preserves the previous content of the depth attachment.
	KeepDepth = DepthAction{}
)

// Desc returns the target and load actions of the pass.
func (p *Pass) Desc() PassDesc {
	return p.desc
}

// SetDesc replaces the target of the pass.
func (p *Pass) SetDesc(desc PassDesc) {
	p.desc = desc
}

// Len returns the number of recorded updates and draw phase commands.
func (p *Pass) Len() (updates, draws int) {
	return len(p.updates), len(p.draws)
}

// UpdateBuffer records the replacement of len(data) bytes of b at
// offset. The data is copied.
func (p *Pass) UpdateBuffer(b *Buffer, offset int, data []byte) error {
	if err := b.checkUpdate(offset, data); err != nil {
		return fmt.Errorf("gpu: update buffer: %w", err)
	}
	if err := p.refs.add(&b.resource); err != nil {
		return fmt.Errorf("gpu: update buffer: %w", err)
	}
	p.updates = append(p.updates, update{
		op:     opUpdateBuffer,
		buf:    b,
		offset: offset,
		data:   append([]byte(nil), data...),
	})
	return nil
}

// UpdateTexture records the replacement of the full image of t. The
// pixels are copied.
func (p *Pass) UpdateTexture(t *Texture, pixels []byte) error {
	if want := t.PayloadSize(); len(pixels) != want {
		return fmt.Errorf("gpu: update texture %d: %d bytes, want %d: %w", t.id, len(pixels), want, ErrPayloadSize)
	}
	if err := p.refs.add(&t.resource); err != nil {
		return fmt.Errorf("gpu: update texture: %w", err)
	}
	p.updates = append(p.updates, update{
		op:   opUpdateTexture,
		tex:  t,
		data: append([]byte(nil), pixels...),
	})
	return nil
}

// Viewport records a viewport change for the following draws.
func (p *Pass) Viewport(x, y, width, height int) {
	p.draws = append(p.draws, command{op: opViewport, rect: image.Rect(x, y, x+width, y+height)})
}

// Scissor records a scissor change for the following draws.
func (p *Pass) Scissor(x, y, width, height int) {
	p.draws = append(p.draws, command{op: opScissor, rect: image.Rect(x, y, x+width, y+height)})
}

// Draw records a draw of prims primitives from the start of the
// bound buffers.
func (p *Pass) Draw(pipe *Pipeline, b Bindings, uniforms []byte, prims, instances int) error {
	return p.DrawRange(DrawCommand{
		Pipeline:   pipe,
		Bindings:   b,
		Uniforms:   uniforms,
		Primitives: prims,
		Instances:  instances,
	})
}

// DrawRange validates and records a draw. The bindings and uniforms
// are copied.
func (p *Pass) DrawRange(c DrawCommand) error {
	if err := validateDraw(&c); err != nil {
		return fmt.Errorf("gpu: draw: %w", err)
	}
	var rs refSet
	add := func(r *resource) error {
		if err := rs.add(r); err != nil {
			rs.releaseAll()
			return fmt.Errorf("gpu: draw: %w", err)
		}
		return nil
	}
	if err := add(&c.Pipeline.resource); err != nil {
		return err
	}
	b := c.Bindings
	for _, vb := range b.VertexBuffers {
		if err := add(&vb.resource); err != nil {
			return err
		}
	}
	if b.IndexBuffer != nil {
		if err := add(&b.IndexBuffer.resource); err != nil {
			return err
		}
	}
	for _, t := range b.VertexTextures {
		if err := add(&t.resource); err != nil {
			return err
		}
	}
	for _, t := range b.FragmentTextures {
		if err := add(&t.resource); err != nil {
			return err
		}
	}
	p.refs = append(p.refs, rs...)
	c.Bindings = Bindings{
		VertexBuffers:    append([]*Buffer(nil), b.VertexBuffers...),
		IndexBuffer:      b.IndexBuffer,
		VertexTextures:   append([]*Texture(nil), b.VertexTextures...),
		FragmentTextures: append([]*Texture(nil), b.FragmentTextures...),
	}
	c.Uniforms = append([]byte(nil), c.Uniforms...)
	if c.Instances == 0 {
		c.Instances = 1
	}
	p.draws = append(p.draws, command{op: opDraw, draw: c})
	return nil
}

func validateDraw(c *DrawCommand) error {
	pipe := c.Pipeline
	if pipe == nil {
		return fmt.Errorf("%w: nil pipeline", ErrBindings)
	}
	if c.First < 0 || c.Primitives < 0 || c.Instances < 0 {
		return fmt.Errorf("%w: first %d primitives %d instances %d", ErrInvalidDesc, c.First, c.Primitives, c.Instances)
	}
	pd := &pipe.desc
	b := &c.Bindings
	if len(b.VertexBuffers) != len(pd.Buffers) {
		return fmt.Errorf("%w: %d vertex buffers for %d layouts", ErrBindings, len(b.VertexBuffers), len(pd.Buffers))
	}
	count := pd.Primitive.ElementCount(c.Primitives)
	for i, vb := range b.VertexBuffers {
		if vb == nil || vb.typ != VertexBuffer {
			return fmt.Errorf("%w: binding %d is not a vertex buffer", ErrBindings, i)
		}
		if vb.dev != pipe.dev {
			return ErrWrongDevice
		}
		l := pd.Buffers[i]
		if b.IndexBuffer == nil && l.Divisor == 0 && (c.First+count)*l.Stride > vb.size {
			return fmt.Errorf("vertex buffer %d: %d vertices from %d: %w", i, count, c.First, ErrOutOfBounds)
		}
	}
	switch {
	case b.IndexBuffer == nil && pd.IndexType != IndexNone:
		return fmt.Errorf("%w: no index buffer bound", ErrIndexType)
	case b.IndexBuffer != nil && pd.IndexType == IndexNone:
		return fmt.Errorf("%w: pipeline has no index type", ErrIndexType)
	case b.IndexBuffer != nil:
		ib := b.IndexBuffer
		if ib.typ != IndexBuffer {
			return fmt.Errorf("%w: index binding is not an index buffer", ErrBindings)
		}
		if ib.dev != pipe.dev {
			return ErrWrongDevice
		}
		if (c.First+count)*pd.IndexType.Size() > ib.size {
			return fmt.Errorf("index buffer: %d indices from %d: %w", count, c.First, ErrOutOfBounds)
		}
	}
	sd := &pd.Shader.desc
	if len(b.VertexTextures) != len(sd.VertexTextures) || len(b.FragmentTextures) != len(sd.FragmentTextures) {
		return fmt.Errorf("%w: %d+%d textures for %d+%d samplers", ErrBindings,
			len(b.VertexTextures), len(b.FragmentTextures), len(sd.VertexTextures), len(sd.FragmentTextures))
	}
	for _, t := range append(b.VertexTextures[:len(b.VertexTextures):len(b.VertexTextures)], b.FragmentTextures...) {
		if t == nil {
			return fmt.Errorf("%w: nil texture", ErrBindings)
		}
		if t.dev != pipe.dev {
			return ErrWrongDevice
		}
	}
	if len(c.Uniforms) < pipe.uniformSize {
		return fmt.Errorf("%d bytes, want %d: %w", len(c.Uniforms), pipe.uniformSize, ErrUniformSize)
	}
	return nil
}

// Append moves the commands of other to the end of the update and
// draw phases of p. other is left empty. Appending p to itself does
// nothing.
func (p *Pass) Append(other *Pass) {
	if other == p {
		return
	}
	p.updates = append(p.updates, other.updates...)
	p.draws = append(p.draws, other.draws...)
	p.refs = append(p.refs, other.refs...)
	other.updates = nil
	other.draws = nil
	other.refs = nil
}

// Reset drops every recorded command and the references they hold.
func (p *Pass) Reset() {
	p.refs.releaseAll()
	p.updates = p.updates[:0]
	p.draws = p.draws[:0]
}

// take moves the recorded commands out of p.
func (p *Pass) take() (updates []update, draws []command, refs refSet) {
	updates, draws, refs = p.updates, p.draws, p.refs
	p.updates, p.draws, p.refs = nil, nil, nil
	return
}
