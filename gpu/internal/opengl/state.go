// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	gl "github.com/go-gl/gl/v3.1/gles2"
)

// maxTextureUnits bounds the texture units tracked by glState.
const maxTextureUnits = 16

// glState caches the GL state set by the backend to skip
// redundant calls.
type glState struct {
	prog      uint32
	vertArray uint32
	arrayBuf  uint32
	elemBuf   uint32
	drawFBO   uint32
	renderBuf uint32
	texUnits  struct {
		active uint32
		binds  [maxTextureUnits]uint32
	}
	// attribs holds the enabled vertex attribute arrays.
	attribs   map[uint32]bool
	depthTest bool
	depthMask bool
	cull      struct {
		enable bool
		face   uint32
	}
	blend struct {
		enable         bool
		srcRGB, dstRGB uint32
		srcA, dstA     uint32
		eqRGB, eqA     uint32
	}
	polygonOffset [2]float32
	viewport      [4]int32
	scissor       [4]int32
}

// reset forgets the cached state after the context state was
// changed outside the backend.
func (s *glState) reset() {
	*s = glState{attribs: make(map[uint32]bool)}
	s.depthMask = true
	s.cull.face = gl.BACK
	s.texUnits.active = gl.TEXTURE0
	s.blend.srcRGB, s.blend.srcA = gl.ONE, gl.ONE
	s.blend.dstRGB, s.blend.dstA = gl.ZERO, gl.ZERO
	s.blend.eqRGB, s.blend.eqA = gl.FUNC_ADD, gl.FUNC_ADD
}

func (s *glState) useProgram(p uint32) {
	if p != s.prog {
		gl.UseProgram(p)
		s.prog = p
	}
}

func (s *glState) bindVertexArray(a uint32) {
	if a != s.vertArray {
		gl.BindVertexArray(a)
		s.vertArray = a
	}
}

func (s *glState) bindBuffer(target uint32, buf uint32) {
	switch target {
	case gl.ARRAY_BUFFER:
		if buf == s.arrayBuf {
			return
		}
		s.arrayBuf = buf
	case gl.ELEMENT_ARRAY_BUFFER:
		if buf == s.elemBuf {
			return
		}
		s.elemBuf = buf
	}
	gl.BindBuffer(target, buf)
}

func (s *glState) bindFramebuffer(fbo uint32) {
	if fbo != s.drawFBO {
		gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
		s.drawFBO = fbo
	}
}

func (s *glState) bindRenderbuffer(r uint32) {
	if r != s.renderBuf {
		gl.BindRenderbuffer(gl.RENDERBUFFER, r)
		s.renderBuf = r
	}
}

func (s *glState) activeTexture(unit uint32) {
	if unit != s.texUnits.active {
		gl.ActiveTexture(unit)
		s.texUnits.active = unit
	}
}

func (s *glState) bindTexture(unit int, t uint32) {
	s.activeTexture(gl.TEXTURE0 + uint32(unit))
	if t != s.texUnits.binds[unit] {
		gl.BindTexture(gl.TEXTURE_2D, t)
		s.texUnits.binds[unit] = t
	}
}

func (s *glState) setVertexAttribArray(idx uint32, enabled bool) {
	if s.attribs[idx] == enabled {
		return
	}
	if enabled {
		gl.EnableVertexAttribArray(idx)
		s.attribs[idx] = true
	} else {
		gl.DisableVertexAttribArray(idx)
		delete(s.attribs, idx)
	}
}

// disableAttribsExcept disables the enabled attribute arrays not in
// keep.
func (s *glState) disableAttribsExcept(keep map[uint32]bool) {
	for idx := range s.attribs {
		if !keep[idx] {
			gl.DisableVertexAttribArray(idx)
			delete(s.attribs, idx)
		}
	}
}

func (s *glState) deleteBuffer(b uint32) {
	gl.DeleteBuffers(1, &b)
	if b == s.arrayBuf {
		s.arrayBuf = 0
	}
	if b == s.elemBuf {
		s.elemBuf = 0
	}
}

func (s *glState) deleteTexture(t uint32) {
	gl.DeleteTextures(1, &t)
	binds := &s.texUnits.binds
	for i, obj := range binds {
		if t == obj {
			binds[i] = 0
		}
	}
}

func (s *glState) deleteRenderbuffer(r uint32) {
	gl.DeleteRenderbuffers(1, &r)
	if r == s.renderBuf {
		s.renderBuf = 0
	}
}

func (s *glState) deleteFramebuffer(fbo uint32) {
	gl.DeleteFramebuffers(1, &fbo)
	if fbo == s.drawFBO {
		s.drawFBO = 0
	}
}

func (s *glState) deleteProgram(p uint32) {
	gl.DeleteProgram(p)
	if p == s.prog {
		s.prog = 0
	}
}

func (s *glState) setViewport(x, y, width, height int32) {
	view := [4]int32{x, y, width, height}
	if view != s.viewport {
		gl.Viewport(x, y, width, height)
		s.viewport = view
	}
}

func (s *glState) setScissor(x, y, width, height int32) {
	sc := [4]int32{x, y, width, height}
	if sc != s.scissor {
		gl.Scissor(x, y, width, height)
		s.scissor = sc
	}
}

func (s *glState) setDepthTest(enable bool) {
	if enable != s.depthTest {
		toggle(gl.DEPTH_TEST, enable)
		s.depthTest = enable
	}
}

func (s *glState) setDepthMask(enable bool) {
	if enable != s.depthMask {
		gl.DepthMask(enable)
		s.depthMask = enable
	}
}

func (s *glState) setCull(enable bool, face uint32) {
	if enable != s.cull.enable {
		toggle(gl.CULL_FACE, enable)
		s.cull.enable = enable
	}
	if enable && face != s.cull.face {
		gl.CullFace(face)
		s.cull.face = face
	}
}

func (s *glState) setBlend(enable bool) {
	if enable != s.blend.enable {
		toggle(gl.BLEND, enable)
		s.blend.enable = enable
	}
}

func (s *glState) setBlendFuncSeparate(srcRGB, dstRGB, srcA, dstA uint32) {
	b := &s.blend
	if srcRGB != b.srcRGB || dstRGB != b.dstRGB || srcA != b.srcA || dstA != b.dstA {
		b.srcRGB, b.dstRGB, b.srcA, b.dstA = srcRGB, dstRGB, srcA, dstA
		gl.BlendFuncSeparate(srcRGB, dstRGB, srcA, dstA)
	}
}

func (s *glState) setBlendEquationSeparate(rgb, a uint32) {
	if rgb != s.blend.eqRGB || a != s.blend.eqA {
		s.blend.eqRGB, s.blend.eqA = rgb, a
		gl.BlendEquationSeparate(rgb, a)
	}
}

func (s *glState) setPolygonOffset(factor, units float32) {
	po := [2]float32{factor, units}
	if po != s.polygonOffset {
		if po == ([2]float32{}) {
			gl.Disable(gl.POLYGON_OFFSET_FILL)
		} else {
			gl.Enable(gl.POLYGON_OFFSET_FILL)
		}
		gl.PolygonOffset(factor, units)
		s.polygonOffset = po
	}
}

func toggle(c uint32, enable bool) {
	if enable {
		gl.Enable(c)
	} else {
		gl.Disable(c)
	}
}
