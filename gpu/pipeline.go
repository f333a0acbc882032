// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"

	"neocogi.org/gpu/internal/driver"
)

// PipelineDesc describes the shader, vertex input and fixed function
// state of a pipeline.
type PipelineDesc struct {
	Shader    *Shader
	Primitive Primitive
	// Buffers describes the layout of every vertex buffer bound
	// to draws with the pipeline.
	Buffers []VertexBufferLayout
	// Uniforms describes the uniform data passed to draws, in the
	// order of the shader's uniform names.
	Uniforms    []UniformDesc
	IndexType   IndexType
	FaceWinding FaceWinding
	CullMode    CullMode
	DepthTest   bool
	DepthWrite  bool
	Blend       BlendState
	// PolygonOffset is nil for no offset.
	PolygonOffset *PolygonOffset
}

// Pipeline is a shared handle to the fixed function state and
// shader of draws. It holds a reference to its shader.
type Pipeline struct {
	resource
	desc        PipelineDesc
	uniformSize int
	obj         driver.Pipeline
}

// NewPipeline validates desc against its shader and creates a
// pipeline.
func (d *Device) NewPipeline(desc PipelineDesc) (*Pipeline, error) {
	if desc.Shader == nil {
		return nil, fmt.Errorf("%w: pipeline without shader", ErrInvalidDesc)
	}
	if desc.Shader.dev != d {
		return nil, ErrWrongDevice
	}
	desc.Buffers = append([]VertexBufferLayout(nil), desc.Buffers...)
	desc.Uniforms = append([]UniformDesc(nil), desc.Uniforms...)
	if err := validatePipeline(&desc); err != nil {
		return nil, err
	}
	p := &Pipeline{desc: desc, uniformSize: uniformSize(desc.Uniforms)}
	var deps refSet
	if err := deps.add(&desc.Shader.resource); err != nil {
		return nil, fmt.Errorf("gpu: new pipeline: %w", err)
	}
	err := d.exec(func() error {
		obj, err := d.backend.NewPipeline(driver.PipelineDesc{
			Shader:        desc.Shader.obj,
			Primitive:     desc.Primitive,
			Buffers:       desc.Buffers,
			Uniforms:      desc.Uniforms,
			IndexType:     desc.IndexType,
			FaceWinding:   desc.FaceWinding,
			CullMode:      desc.CullMode,
			DepthTest:     desc.DepthTest,
			DepthWrite:    desc.DepthWrite,
			Blend:         desc.Blend,
			PolygonOffset: desc.PolygonOffset,
		})
		if err != nil {
			return err
		}
		p.obj = obj
		d.track(&p.resource, KindPipeline, func() {
			obj.Release()
			deps.releaseAll()
		})
		return nil
	})
	if err != nil {
		deps.releaseAll()
		return nil, fmt.Errorf("gpu: new pipeline: %w", err)
	}
	return p, nil
}

func validatePipeline(desc *PipelineDesc) error {
	sd := desc.Shader.desc
	if desc.Primitive > TriangleStrip || desc.IndexType > IndexUInt32 || desc.Blend.Op > BlendReverseSubtract {
		return fmt.Errorf("%w: pipeline enums out of range", ErrInvalidDesc)
	}
	if len(sd.Attributes) != len(desc.Buffers) {
		return fmt.Errorf("%w: %d buffer layouts for %d shader attribute lists", ErrInvalidDesc, len(desc.Buffers), len(sd.Attributes))
	}
	for i := range desc.Buffers {
		l := &desc.Buffers[i]
		if len(l.Attributes) != len(sd.Attributes[i]) {
			return fmt.Errorf("%w: buffer %d has %d attributes, shader declares %d", ErrInvalidDesc, i, len(l.Attributes), len(sd.Attributes[i]))
		}
		end := 0
		for _, a := range l.Attributes {
			if a.Format > Float4x4 || a.Offset < 0 {
				return fmt.Errorf("%w: buffer %d attribute format %d offset %d", ErrInvalidDesc, i, a.Format, a.Offset)
			}
			if e := a.Offset + a.Format.Size(); e > end {
				end = e
			}
		}
		if l.Stride == 0 {
			l.Stride = end
		}
		if l.Stride < end || l.Divisor < 0 {
			return fmt.Errorf("%w: buffer %d stride %d divisor %d", ErrInvalidDesc, i, l.Stride, l.Divisor)
		}
	}
	if len(sd.Uniforms) != len(desc.Uniforms) {
		return fmt.Errorf("%w: %d uniforms for %d shader uniforms", ErrInvalidDesc, len(desc.Uniforms), len(sd.Uniforms))
	}
	for i := range desc.Uniforms {
		u := &desc.Uniforms[i]
		if u.Count == 0 {
			u.Count = 1
		}
		if u.Type > UniformFloat4x4 || u.Count < 0 || u.Offset < 0 {
			return fmt.Errorf("%w: uniform %q", ErrInvalidDesc, u.Name)
		}
	}
	return nil
}

func uniformSize(us []UniformDesc) int {
	size := 0
	for _, u := range us {
		if e := u.Offset + u.Type.Size()*u.Count; e > size {
			size = e
		}
	}
	return size
}

// Desc returns the descriptor the pipeline was created with.
func (p *Pipeline) Desc() PipelineDesc {
	return p.desc
}

// UniformSize returns the minimum size of the uniform data of
// draws with the pipeline.
func (p *Pipeline) UniformSize() int {
	return p.uniformSize
}
