// SPDX-License-Identifier: Unlicense OR MIT

// Package opengl implements the OpenGL ES 3 backend.
package opengl

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v3.1/gles2"

	"neocogi.org/gpu/internal/driver"
)

// Backend implements driver.Device.
type Backend struct {
	glstate glState
	glver   [2]int
	feats   driver.Caps

	// vertArray is bound for the lifetime of the backend. All
	// attribute state lives in it.
	vertArray uint32

	inPass bool
	// attribs is the set of attribute arrays used by the current
	// draw, reused across draws.
	attribs map[uint32]bool
}

type gpuBuffer struct {
	backend *Backend
	obj     uint32
	target  uint32
	usage   uint32
	size    int
}

type gpuTexture struct {
	backend *Backend
	obj     uint32
	triple  textureTriple
	width   int
	height  int
	mipmaps bool
}

type gpuRenderTarget struct {
	backend *Backend
	obj     uint32
}

type gpuShader struct {
	backend *Backend
	obj     uint32
	// attribs holds the attribute locations per vertex buffer,
	// -1 for attributes unused by the program.
	attribs  [][]int32
	uniforms []int32
	textures int
}

type gpuPipeline struct {
	backend *Backend
	shader  *gpuShader
	desc    driver.PipelineDesc
}

type gpuFramebuffer struct {
	backend *Backend
	obj     uint32
	color   [4]driver.Attachment
	depth   driver.Attachment
}

func init() {
	driver.NewOpenGLDevice = newOpenGLDevice
}

// maxSurfaceLimit caps the surface size regardless of the driver
// limits.
const maxSurfaceLimit = 4096

// maxSurfaceDim returns the largest dimension usable for both
// textures and render targets.
func maxSurfaceDim(maxTexture, maxRenderbuffer int) int {
	return min(maxSurfaceLimit, maxTexture, maxRenderbuffer)
}

func newOpenGLDevice(api driver.OpenGL) (driver.Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("opengl: %w", err)
	}
	glVer := gl.GoStr(gl.GetString(gl.VERSION))
	ver, err := ParseGLVersion(glVer)
	if err != nil {
		return nil, err
	}
	if ver[0] < 3 {
		return nil, fmt.Errorf("opengl: %s: %w", glVer, driver.ErrUnsupported)
	}
	b := &Backend{
		glver:   ver,
		attribs: make(map[uint32]bool),
	}
	b.feats.BottomLeftOrigin = true
	b.feats.Version = glVer
	b.feats.Vendor = gl.GoStr(gl.GetString(gl.VENDOR))
	b.feats.Renderer = gl.GoStr(gl.GetString(gl.RENDERER))
	var maxTex, maxRB int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxTex)
	gl.GetIntegerv(gl.MAX_RENDERBUFFER_SIZE, &maxRB)
	b.feats.MaxSurfaceDim = maxSurfaceDim(int(maxTex), int(maxRB))
	b.glstate.reset()
	gl.GenVertexArrays(1, &b.vertArray)
	b.glstate.bindVertexArray(b.vertArray)
	gl.Enable(gl.SCISSOR_TEST)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	if err := glErr(); err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}

func glErr() error {
	if st := gl.GetError(); st != gl.NO_ERROR {
		return fmt.Errorf("glGetError: %#x", st)
	}
	return nil
}

func (b *Backend) Caps() driver.Caps {
	return b.feats
}

func (b *Backend) Release() {
	if b.vertArray != 0 {
		gl.DeleteVertexArrays(1, &b.vertArray)
	}
	*b = Backend{}
}

func (b *Backend) NewBuffer(desc driver.BufferDesc) (driver.Buffer, error) {
	glErr()
	buf := &gpuBuffer{
		backend: b,
		target:  toBufferTarget(desc.Kind),
		usage:   toBufferUsage(desc.Usage),
		size:    desc.Size,
	}
	gl.GenBuffers(1, &buf.obj)
	b.glstate.bindBuffer(buf.target, buf.obj)
	if len(desc.Data) == desc.Size {
		gl.BufferData(buf.target, desc.Size, gl.Ptr(desc.Data), buf.usage)
	} else {
		gl.BufferData(buf.target, desc.Size, nil, buf.usage)
		if len(desc.Data) > 0 {
			gl.BufferSubData(buf.target, 0, len(desc.Data), gl.Ptr(desc.Data))
		}
	}
	b.unbindPixelBuffer(buf)
	if err := glErr(); err != nil {
		buf.Release()
		return nil, err
	}
	return buf, nil
}

// unbindPixelBuffer unbinds buf if it is a pixel buffer, because
// a bound unpack buffer redirects texture uploads.
func (b *Backend) unbindPixelBuffer(buf *gpuBuffer) {
	if buf.target == gl.PIXEL_UNPACK_BUFFER {
		gl.BindBuffer(gl.PIXEL_UNPACK_BUFFER, 0)
	}
}

func (b *Backend) UpdateBuffer(buffer driver.Buffer, offset int, data []byte) error {
	buf := buffer.(*gpuBuffer)
	if len(data) == 0 {
		return nil
	}
	if offset < 0 || offset+len(data) > buf.size {
		return fmt.Errorf("opengl: buffer update [%d,%d) out of size %d", offset, offset+len(data), buf.size)
	}
	b.glstate.bindBuffer(buf.target, buf.obj)
	if offset == 0 && len(data) == buf.size {
		// Orphan the storage to avoid stalling on draws in flight.
		gl.BufferData(buf.target, buf.size, nil, buf.usage)
	}
	gl.BufferSubData(buf.target, offset, len(data), gl.Ptr(data))
	b.unbindPixelBuffer(buf)
	return glErr()
}

func (buf *gpuBuffer) Release() {
	buf.backend.glstate.deleteBuffer(buf.obj)
}

func (b *Backend) NewTexture(desc driver.TextureDesc) (driver.Texture, error) {
	wrap, err := toTexWrap(desc.Wrap)
	if err != nil {
		return nil, err
	}
	glErr()
	tex := &gpuTexture{
		backend: b,
		triple:  tripleFor(desc.Format),
		width:   desc.Width,
		height:  desc.Height,
		mipmaps: desc.MipMaps > 0,
	}
	gl.GenTextures(1, &tex.obj)
	b.glstate.bindTexture(0, tex.obj)
	var pixels unsafe.Pointer
	if len(desc.Pixels) > 0 {
		pixels = gl.Ptr(desc.Pixels)
	}
	t := tex.triple
	gl.TexImage2D(gl.TEXTURE_2D, 0, t.internalFormat, int32(desc.Width), int32(desc.Height), 0, t.format, t.typ, pixels)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)
	minFilter, magFilter := int32(gl.NEAREST), int32(gl.NEAREST)
	if desc.Format.IsFiltered() {
		minFilter, magFilter = toTexFilter(desc.MinFilter), toTexFilter(desc.MagFilter)
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilter)
	if tex.mipmaps {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, int32(desc.MipMaps))
		if pixels != nil {
			gl.GenerateMipmap(gl.TEXTURE_2D)
		}
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, 0)
	}
	if err := glErr(); err != nil {
		tex.Release()
		return nil, err
	}
	return tex, nil
}

func (b *Backend) UpdateTexture(texture driver.Texture, pixels []byte) error {
	tex := texture.(*gpuTexture)
	if len(pixels) == 0 {
		return nil
	}
	b.glstate.bindTexture(0, tex.obj)
	t := tex.triple
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(tex.width), int32(tex.height), t.format, t.typ, gl.Ptr(pixels))
	if tex.mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
	}
	return glErr()
}

func (t *gpuTexture) Release() {
	t.backend.glstate.deleteTexture(t.obj)
}

func (b *Backend) NewRenderTarget(desc driver.RenderTargetDesc) (driver.RenderTarget, error) {
	glErr()
	rt := &gpuRenderTarget{backend: b}
	gl.GenRenderbuffers(1, &rt.obj)
	b.glstate.bindRenderbuffer(rt.obj)
	format := uint32(tripleFor(desc.Format).internalFormat)
	if desc.SampleCount > 1 {
		gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, int32(desc.SampleCount), format, int32(desc.Width), int32(desc.Height))
	} else {
		gl.RenderbufferStorage(gl.RENDERBUFFER, format, int32(desc.Width), int32(desc.Height))
	}
	if err := glErr(); err != nil {
		rt.Release()
		return nil, err
	}
	return rt, nil
}

func (rt *gpuRenderTarget) Release() {
	rt.backend.glstate.deleteRenderbuffer(rt.obj)
}

func (b *Backend) NewShader(desc driver.ShaderDesc) (driver.Shader, error) {
	glErr()
	prog, err := createProgram(desc.VertexSource, desc.FragmentSource)
	if err != nil {
		return nil, err
	}
	sh := &gpuShader{backend: b, obj: prog}
	for _, names := range desc.Attributes {
		locs := make([]int32, len(names))
		for i, n := range names {
			locs[i] = gl.GetAttribLocation(prog, gl.Str(n+"\x00"))
		}
		sh.attribs = append(sh.attribs, locs)
	}
	for _, n := range desc.Uniforms {
		sh.uniforms = append(sh.uniforms, gl.GetUniformLocation(prog, gl.Str(n+"\x00")))
	}
	// Samplers use fixed units: vertex textures first, then
	// fragment textures.
	b.glstate.useProgram(prog)
	unit := int32(0)
	for _, n := range append(desc.VertexTextures[:len(desc.VertexTextures):len(desc.VertexTextures)], desc.FragmentTextures...) {
		if loc := gl.GetUniformLocation(prog, gl.Str(n+"\x00")); loc >= 0 {
			gl.Uniform1i(loc, unit)
		}
		unit++
	}
	sh.textures = int(unit)
	if sh.textures > maxTextureUnits {
		sh.Release()
		return nil, fmt.Errorf("opengl: %d samplers: %w", sh.textures, driver.ErrUnsupported)
	}
	if err := glErr(); err != nil {
		sh.Release()
		return nil, err
	}
	return sh, nil
}

func (s *gpuShader) Release() {
	s.backend.glstate.deleteProgram(s.obj)
}

func createProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := createShader(gl.VERTEX_SHADER, "vertex", vsSrc)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vs)
	fs, err := createShader(gl.FRAGMENT_SHADER, "fragment", fsSrc)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fs)
	prog := gl.CreateProgram()
	if prog == 0 {
		return 0, errors.New("glCreateProgram failed")
	}
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)
	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &n)
		log := make([]byte, n+1)
		gl.GetProgramInfoLog(prog, n, nil, &log[0])
		gl.DeleteProgram(prog)
		return 0, &driver.ShaderError{Stage: "link", Log: cString(log)}
	}
	return prog, nil
}

func createShader(typ uint32, stage, src string) (uint32, error) {
	sh := gl.CreateShader(typ)
	if sh == 0 {
		return 0, errors.New("glCreateShader failed")
	}
	csrc, free := gl.Strs(src + "\x00")
	gl.ShaderSource(sh, 1, csrc, nil)
	free()
	gl.CompileShader(sh)
	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &n)
		log := make([]byte, n+1)
		gl.GetShaderInfoLog(sh, n, nil, &log[0])
		gl.DeleteShader(sh)
		return 0, &driver.ShaderError{Stage: stage, Log: cString(log)}
	}
	return sh, nil
}

// cString converts a NUL-terminated C string to a Go string.
func cString(s []byte) string {
	if i := strings.IndexByte(string(s), 0); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(string(s))
}

func (b *Backend) NewPipeline(desc driver.PipelineDesc) (driver.Pipeline, error) {
	sh := desc.Shader.(*gpuShader)
	if len(sh.attribs) != len(desc.Buffers) || len(sh.uniforms) != len(desc.Uniforms) {
		return nil, errors.New("opengl: pipeline layout does not match shader")
	}
	if desc.Blend.Op != driver.BlendNone {
		// Validate the factors before the first draw.
		toGLBlendEquation(desc.Blend.Op)
		toGLBlendFactor(desc.Blend.SrcRGB)
		toGLBlendFactor(desc.Blend.DstRGB)
		toGLBlendFactor(desc.Blend.SrcAlpha)
		toGLBlendFactor(desc.Blend.DstAlpha)
	}
	return &gpuPipeline{backend: b, shader: sh, desc: desc}, nil
}

func (p *gpuPipeline) Release() {}

func (b *Backend) NewFramebuffer(desc driver.FramebufferDesc) (driver.Framebuffer, error) {
	glErr()
	fbo := &gpuFramebuffer{backend: b, color: desc.Color, depth: desc.Depth}
	gl.GenFramebuffers(1, &fbo.obj)
	b.glstate.bindFramebuffer(fbo.obj)
	defer b.glstate.bindFramebuffer(0)
	var drawBufs [4]uint32
	for i, a := range desc.Color {
		drawBufs[i] = gl.NONE
		if a.Valid() {
			drawBufs[i] = gl.COLOR_ATTACHMENT0 + uint32(i)
			attach(drawBufs[i], a)
		}
	}
	if desc.Depth.Valid() {
		attach(depthAttachment(desc.Depth.Format), desc.Depth)
	}
	gl.DrawBuffers(4, &drawBufs[0])
	if st := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); st != gl.FRAMEBUFFER_COMPLETE {
		fbo.Release()
		return nil, fmt.Errorf("incomplete framebuffer, status = 0x%x, err = %d", st, gl.GetError())
	}
	if err := glErr(); err != nil {
		fbo.Release()
		return nil, err
	}
	return fbo, nil
}

func attach(point uint32, a driver.Attachment) {
	if t, ok := a.Texture.(*gpuTexture); ok {
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, point, gl.TEXTURE_2D, t.obj, 0)
		return
	}
	rt := a.RenderTarget.(*gpuRenderTarget)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, point, gl.RENDERBUFFER, rt.obj)
}

func (f *gpuFramebuffer) Release() {
	f.backend.glstate.deleteFramebuffer(f.obj)
}
