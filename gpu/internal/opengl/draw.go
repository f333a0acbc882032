// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"errors"
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v3.1/gles2"

	"neocogi.org/gpu/internal/driver"
)

func (b *Backend) BeginPass(desc driver.PassDesc) error {
	if b.inPass {
		return errors.New("opengl: BeginPass inside a pass")
	}
	b.inPass = true
	var fbo *gpuFramebuffer
	if desc.Framebuffer != nil {
		fbo = desc.Framebuffer.(*gpuFramebuffer)
		b.glstate.bindFramebuffer(fbo.obj)
	} else {
		b.glstate.bindFramebuffer(0)
	}
	w, h := int32(desc.Width), int32(desc.Height)
	b.glstate.setViewport(0, 0, w, h)
	b.glstate.setScissor(0, 0, w, h)
	// Depth clears honor the depth mask.
	if desc.Depth.Clear {
		b.glstate.setDepthMask(true)
	}
	if fbo == nil {
		clearDefault(desc)
	} else {
		fbo.clear(desc)
	}
	return glErr()
}

// clearDefault clears the default framebuffer, which has a single
// fixed point color buffer.
func clearDefault(desc driver.PassDesc) {
	var bits uint32
	if a := desc.Color[0]; a.Clear {
		c := floatColor(a)
		gl.ClearColor(c[0], c[1], c[2], c[3])
		bits |= gl.COLOR_BUFFER_BIT
	}
	if desc.Depth.Clear {
		gl.ClearDepthf(desc.Depth.Depth)
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if bits != 0 {
		gl.Clear(bits)
	}
}

func (f *gpuFramebuffer) clear(desc driver.PassDesc) {
	for i, a := range desc.Color {
		att := f.color[i]
		if !a.Clear || !att.Valid() {
			continue
		}
		if att.Format.SurfaceType() == driver.SurfaceUInt {
			c := [4]uint32{uint32(a.Color.R), uint32(a.Color.G), uint32(a.Color.B), uint32(a.Color.A)}
			gl.ClearBufferuiv(gl.COLOR, int32(i), &c[0])
		} else {
			c := floatColor(a)
			gl.ClearBufferfv(gl.COLOR, int32(i), &c[0])
		}
	}
	if desc.Depth.Clear && f.depth.Valid() {
		if f.depth.Format.HasStencil() {
			gl.ClearBufferfi(gl.DEPTH_STENCIL, 0, desc.Depth.Depth, 0)
		} else {
			d := desc.Depth.Depth
			gl.ClearBufferfv(gl.DEPTH, 0, &d)
		}
	}
}

func floatColor(a driver.ColorAction) [4]float32 {
	c := a.Color
	return [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
}

func (b *Backend) Viewport(x, y, width, height int) {
	b.glstate.setViewport(int32(x), int32(y), int32(width), int32(height))
}

func (b *Backend) Scissor(x, y, width, height int) {
	b.glstate.setScissor(int32(x), int32(y), int32(width), int32(height))
}

func (b *Backend) EndPass() error {
	if !b.inPass {
		return errors.New("opengl: EndPass outside a pass")
	}
	b.inPass = false
	return glErr()
}

func (b *Backend) Draw(d driver.DrawDesc) error {
	if !b.inPass {
		return errors.New("opengl: Draw outside a pass")
	}
	p := d.Pipeline.(*gpuPipeline)
	sh := p.shader
	pd := &p.desc
	b.glstate.useProgram(sh.obj)
	b.setFixedFunction(pd)
	b.setupVertexArrays(pd, sh, d.VertexBuffers)
	setUniforms(pd.Uniforms, sh.uniforms, d.Uniforms)
	if len(d.VertexTextures)+len(d.FragmentTextures) != sh.textures {
		return fmt.Errorf("opengl: %d textures for %d samplers", len(d.VertexTextures)+len(d.FragmentTextures), sh.textures)
	}
	unit := 0
	for _, t := range d.VertexTextures {
		b.glstate.bindTexture(unit, t.(*gpuTexture).obj)
		unit++
	}
	for _, t := range d.FragmentTextures {
		b.glstate.bindTexture(unit, t.(*gpuTexture).obj)
		unit++
	}
	mode := toGLDrawMode(pd.Primitive)
	if d.IndexBuffer != nil {
		if pd.IndexType == driver.IndexNone {
			return errors.New("opengl: index buffer bound to a pipeline without index type")
		}
		ib := d.IndexBuffer.(*gpuBuffer)
		b.glstate.bindBuffer(gl.ELEMENT_ARRAY_BUFFER, ib.obj)
		off := d.First * pd.IndexType.Size()
		gl.DrawElementsInstanced(mode, int32(d.Count), toIndexType(pd.IndexType), gl.PtrOffset(off), int32(d.Instances))
	} else {
		if pd.IndexType != driver.IndexNone {
			return errors.New("opengl: no index buffer bound to an indexed pipeline")
		}
		gl.DrawArraysInstanced(mode, int32(d.First), int32(d.Count), int32(d.Instances))
	}
	return glErr()
}

func (b *Backend) setFixedFunction(pd *driver.PipelineDesc) {
	s := &b.glstate
	s.setCull(pd.CullMode == driver.CullWinding, cullFace(pd.FaceWinding))
	s.setDepthTest(pd.DepthTest)
	s.setDepthMask(pd.DepthWrite)
	if bl := pd.Blend; bl.Op == driver.BlendNone {
		s.setBlend(false)
	} else {
		s.setBlend(true)
		s.setBlendFuncSeparate(toGLBlendFactor(bl.SrcRGB), toGLBlendFactor(bl.DstRGB), toGLBlendFactor(bl.SrcAlpha), toGLBlendFactor(bl.DstAlpha))
		eq := toGLBlendEquation(bl.Op)
		s.setBlendEquationSeparate(eq, eq)
	}
	if po := pd.PolygonOffset; po != nil {
		s.setPolygonOffset(po.Factor, po.Units)
	} else {
		s.setPolygonOffset(0, 0)
	}
}

func (b *Backend) setupVertexArrays(pd *driver.PipelineDesc, sh *gpuShader, bufs []driver.Buffer) {
	clear(b.attribs)
	for l, layout := range pd.Buffers {
		vb := bufs[l].(*gpuBuffer)
		b.glstate.bindBuffer(gl.ARRAY_BUFFER, vb.obj)
		for i, a := range layout.Attributes {
			loc := sh.attribs[l][i]
			if loc < 0 {
				continue
			}
			cols, size := vertexColumns(a.Format)
			typ := toVertexType(a.Format)
			for c := 0; c < cols; c++ {
				idx := uint32(loc) + uint32(c)
				off := gl.PtrOffset(a.Offset + c*size*a.Format.ComponentSize())
				b.glstate.setVertexAttribArray(idx, true)
				b.attribs[idx] = true
				if a.Format.IsInteger() {
					gl.VertexAttribIPointer(idx, int32(size), typ, int32(layout.Stride), off)
				} else {
					gl.VertexAttribPointer(idx, int32(size), typ, a.Format.IsNormalized(), int32(layout.Stride), off)
				}
				gl.VertexAttribDivisor(idx, uint32(layout.Divisor))
			}
		}
	}
	b.glstate.disableAttribsExcept(b.attribs)
}

// setUniforms uploads the uniforms described by descs from data.
// Uniforms missing from the program have location -1 and are
// skipped.
func setUniforms(descs []driver.UniformDesc, locs []int32, data []byte) {
	for i, u := range descs {
		loc := locs[i]
		if loc < 0 {
			continue
		}
		n := int32(u.Count)
		p := unsafe.Pointer(&data[u.Offset])
		f, ui, si := (*float32)(p), (*uint32)(p), (*int32)(p)
		switch u.Type {
		case driver.UniformUInt:
			gl.Uniform1uiv(loc, n, ui)
		case driver.UniformUInt2:
			gl.Uniform2uiv(loc, n, ui)
		case driver.UniformUInt3:
			gl.Uniform3uiv(loc, n, ui)
		case driver.UniformUInt4:
			gl.Uniform4uiv(loc, n, ui)
		case driver.UniformInt:
			gl.Uniform1iv(loc, n, si)
		case driver.UniformInt2:
			gl.Uniform2iv(loc, n, si)
		case driver.UniformInt3:
			gl.Uniform3iv(loc, n, si)
		case driver.UniformInt4:
			gl.Uniform4iv(loc, n, si)
		case driver.UniformFloat:
			gl.Uniform1fv(loc, n, f)
		case driver.UniformFloat2:
			gl.Uniform2fv(loc, n, f)
		case driver.UniformFloat3:
			gl.Uniform3fv(loc, n, f)
		case driver.UniformFloat4:
			gl.Uniform4fv(loc, n, f)
		case driver.UniformFloat2x2:
			gl.UniformMatrix2fv(loc, n, false, f)
		case driver.UniformFloat3x3:
			gl.UniformMatrix3fv(loc, n, false, f)
		case driver.UniformFloat4x4:
			gl.UniformMatrix4fv(loc, n, false, f)
		default:
			panic("unsupported uniform type")
		}
	}
}
