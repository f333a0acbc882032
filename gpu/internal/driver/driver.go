// SPDX-License-Identifier: Unlicense OR MIT

package driver

import (
	"errors"
	"fmt"
	"image/color"
)

// Device represents the abstraction of an underlying GPU
// API such as OpenGL ES. A Device is not safe for concurrent
// use; package gpu serializes access to it.
type Device interface {
	Caps() Caps
	NewBuffer(desc BufferDesc) (Buffer, error)
	NewTexture(desc TextureDesc) (Texture, error)
	NewRenderTarget(desc RenderTargetDesc) (RenderTarget, error)
	NewShader(desc ShaderDesc) (Shader, error)
	NewPipeline(desc PipelineDesc) (Pipeline, error)
	NewFramebuffer(desc FramebufferDesc) (Framebuffer, error)

	UpdateBuffer(b Buffer, offset int, data []byte) error
	UpdateTexture(t Texture, pixels []byte) error

	BeginPass(desc PassDesc) error
	Viewport(x, y, width, height int)
	Scissor(x, y, width, height int)
	Draw(d DrawDesc) error
	EndPass() error

	Release()
}

type Buffer interface {
	Release()
}

type Texture interface {
	Release()
}

type RenderTarget interface {
	Release()
}

type Shader interface {
	Release()
}

type Pipeline interface {
	Release()
}

type Framebuffer interface {
	Release()
}

type Caps struct {
	// MaxSurfaceDim is the largest width or height of a texture or
	// render target.
	MaxSurfaceDim int
	// BottomLeftOrigin is true if the driver has the origin in the lower left
	// corner. The OpenGL driver returns true.
	BottomLeftOrigin bool
	Vendor           string
	Renderer         string
	Version          string
}

type BufferDesc struct {
	Kind  BufferKind
	Usage Usage
	Size  int
	// Data is the initial content. It is required for static buffers.
	Data []byte
}

type TextureDesc struct {
	Width, Height int
	Format        PixelFormat
	Wrap          WrapMode
	MinFilter     Filter
	MagFilter     Filter
	MipMaps       int
	Pixels        []byte
}

type RenderTargetDesc struct {
	Width, Height int
	Format        PixelFormat
	SampleCount   int
}

type ShaderDesc struct {
	VertexSource   string
	FragmentSource string
	// Attributes lists the attribute names of every vertex buffer.
	Attributes       [][]string
	Uniforms         []string
	VertexTextures   []string
	FragmentTextures []string
}

type PipelineDesc struct {
	Shader        Shader
	Primitive     Primitive
	Buffers       []VertexBufferLayout
	Uniforms      []UniformDesc
	IndexType     IndexType
	FaceWinding   FaceWinding
	CullMode      CullMode
	DepthTest     bool
	DepthWrite    bool
	Blend         BlendState
	PolygonOffset *PolygonOffset
}

type VertexBufferLayout struct {
	Attributes []VertexAttribute
	Stride     int
	Divisor    int
}

// VertexAttribute describes a vertex attribute as laid out in a Buffer.
type VertexAttribute struct {
	Format VertexFormat
	Offset int
}

type UniformDesc struct {
	Name   string
	Type   UniformType
	Count  int
	Offset int
}

type BlendState struct {
	Op       BlendOp
	SrcRGB   BlendFactor
	SrcAlpha BlendFactor
	DstRGB   BlendFactor
	DstAlpha BlendFactor
}

type PolygonOffset struct {
	Factor, Units float32
}

// Attachment is a framebuffer surface; exactly one of
// Texture and RenderTarget is set for a used attachment.
type Attachment struct {
	Texture      Texture
	RenderTarget RenderTarget
	Format       PixelFormat
}

type FramebufferDesc struct {
	Color         [4]Attachment
	Depth         Attachment
	Width, Height int
}

type ColorAction struct {
	Clear bool
	Color color.RGBA
}

type DepthAction struct {
	Clear bool
	Depth float32
}

type PassDesc struct {
	Width, Height int
	// Framebuffer is nil for the default framebuffer.
	Framebuffer Framebuffer
	Color       [4]ColorAction
	Depth       DepthAction
}

type DrawDesc struct {
	Pipeline         Pipeline
	VertexBuffers    []Buffer
	IndexBuffer      Buffer
	VertexTextures   []Texture
	FragmentTextures []Texture
	Uniforms         []byte
	// First is the first index (indexed draws) or vertex.
	First     int
	Count     int
	Instances int
}

type BufferKind uint8

type Usage uint8

type PixelFormat uint8

type SurfaceType uint8

type Filter uint8

type WrapMode uint8

type VertexFormat uint8

type UniformType uint8

type IndexType uint8

type Primitive uint8

type FaceWinding uint8

type CullMode uint8

type BlendOp uint8

type BlendFactor uint8

const (
	VertexBuffer BufferKind = iota
	IndexBuffer
	PixelBuffer
)

const (
	Static Usage = iota
	Dynamic
	Streamed
)

const (
	RGB8U PixelFormat = iota
	RGBA8U
	R8U
	RGB32U
	RGBA32U
	R32U

	RGB32F
	RGBA32F
	R32F

	D16
	D32
	D24S8
	D32S8

	RGB8
	RGBA8
	R8
)

const (
	SurfaceUInt SurfaceType = iota
	SurfaceFloat
)

const (
	Nearest Filter = iota
	Linear
	NearestMipmapNearest
	NearestMipmapLinear
	LinearMipmapNearest
	LinearMipmapLinear
)

const (
	Repeat WrapMode = iota
	ClampToEdge
	ClampToBorder
	MirroredRepeat
)

const (
	Byte VertexFormat = iota
	Byte2
	Byte3
	Byte4

	SByte
	SByte2
	SByte3
	SByte4

	Short
	Short2
	Short3
	Short4

	Int
	Int2
	Int3
	Int4

	UInt
	UInt2
	UInt3
	UInt4

	Float
	Float2
	Float3
	Float4

	Float2x2
	Float3x3
	Float4x4
)

const (
	UniformUInt UniformType = iota
	UniformUInt2
	UniformUInt3
	UniformUInt4
	UniformInt
	UniformInt2
	UniformInt3
	UniformInt4
	UniformFloat
	UniformFloat2
	UniformFloat3
	UniformFloat4
	UniformFloat2x2
	UniformFloat3x3
	UniformFloat4x4
)

const (
	IndexNone IndexType = iota
	IndexUInt16
	IndexUInt32
)

const (
	Points Primitive = iota
	Lines
	LineStrip
	Triangles
	TriangleStrip
)

const (
	CCW FaceWinding = iota
	CW
)

const (
	CullNone CullMode = iota
	CullWinding
)

const (
	BlendNone BlendOp = iota
	BlendAdd
	BlendSubtract
	BlendReverseSubtract
)

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne

	BlendFactorSrcColor
	BlendFactorOneMinusSrcColor
	BlendFactorSrcAlpha
	BlendFactorOneMinusSrcAlpha

	BlendFactorDstColor
	BlendFactorOneMinusDstColor
	BlendFactorDstAlpha
	BlendFactorOneMinusDstAlpha

	BlendFactorSrcAlphaSaturate
	BlendFactorConstantColor
	BlendFactorOneMinusConstantColor
	BlendFactorConstantAlpha
	BlendFactorOneMinusConstantAlpha
)

var ErrUnsupported = errors.New("unsupported by the driver")

// ShaderError reports a failed shader compilation or link.
type ShaderError struct {
	// Stage is "vertex", "fragment" or "link".
	Stage string
	Log   string
}

func (e *ShaderError) Error() string {
	return fmt.Sprintf("%s shader: %s", e.Stage, e.Log)
}

// PixelSize returns the size in bytes of one pixel.
func (f PixelFormat) PixelSize() int {
	switch f {
	case R8U, R8:
		return 1
	case D16:
		return 2
	case RGB8U, RGB8:
		return 3
	case RGBA8U, RGBA8, R32U, R32F, D32, D24S8:
		return 4
	case D32S8:
		return 8
	case RGB32U, RGB32F:
		return 12
	case RGBA32U, RGBA32F:
		return 16
	default:
		panic("unknown pixel format")
	}
}

func (f PixelFormat) IsDepth() bool {
	switch f {
	case D16, D32, D24S8, D32S8:
		return true
	}
	return false
}

func (f PixelFormat) HasStencil() bool {
	return f == D24S8 || f == D32S8
}

// IsFiltered reports whether textures of the format honor
// their min and mag filters. Other formats sample nearest.
func (f PixelFormat) IsFiltered() bool {
	return f == RGB8 || f == RGBA8 || f == R8
}

// SurfaceType reports how the format is cleared and sampled.
func (f PixelFormat) SurfaceType() SurfaceType {
	switch f {
	case RGB8U, RGBA8U, R8U, RGB32U, RGBA32U, R32U:
		return SurfaceUInt
	default:
		return SurfaceFloat
	}
}

// Components returns the number of scalar components.
func (f VertexFormat) Components() int {
	switch f {
	case Byte, SByte, Short, Int, UInt, Float:
		return 1
	case Byte2, SByte2, Short2, Int2, UInt2, Float2:
		return 2
	case Byte3, SByte3, Short3, Int3, UInt3, Float3:
		return 3
	case Byte4, SByte4, Short4, Int4, UInt4, Float4, Float2x2:
		return 4
	case Float3x3:
		return 9
	case Float4x4:
		return 16
	default:
		panic("unknown vertex format")
	}
}

// ComponentSize returns the size in bytes of one component.
func (f VertexFormat) ComponentSize() int {
	switch {
	case f <= SByte4:
		return 1
	case f <= Short4:
		return 2
	default:
		return 4
	}
}

func (f VertexFormat) Size() int {
	return f.Components() * f.ComponentSize()
}

// IsInteger reports whether the format is fed to the shader
// as integers instead of (normalized) floats.
func (f VertexFormat) IsInteger() bool {
	return f >= Int && f <= UInt4
}

// IsNormalized reports whether the 8 and 16 bit formats are
// normalized to [0, 1] or [-1, 1].
func (f VertexFormat) IsNormalized() bool {
	return f <= Short4
}

func (t UniformType) Components() int {
	switch t {
	case UniformUInt, UniformInt, UniformFloat:
		return 1
	case UniformUInt2, UniformInt2, UniformFloat2:
		return 2
	case UniformUInt3, UniformInt3, UniformFloat3:
		return 3
	case UniformUInt4, UniformInt4, UniformFloat4, UniformFloat2x2:
		return 4
	case UniformFloat3x3:
		return 9
	case UniformFloat4x4:
		return 16
	default:
		panic("unknown uniform type")
	}
}

// Size returns the size in bytes of one element.
func (t UniformType) Size() int {
	return t.Components() * 4
}

// Size returns the size in bytes of one index.
func (t IndexType) Size() int {
	switch t {
	case IndexUInt16:
		return 2
	case IndexUInt32:
		return 4
	default:
		return 0
	}
}

// ElementCount converts a primitive count to the number of
// vertices or indices consumed.
func (p Primitive) ElementCount(prims int) int {
	switch p {
	case Points:
		return prims
	case Lines:
		return 2 * prims
	case LineStrip:
		return prims + 1
	case Triangles:
		return 3 * prims
	case TriangleStrip:
		return prims + 2
	default:
		panic("unknown primitive")
	}
}

func (a Attachment) Valid() bool {
	return a.Texture != nil || a.RenderTarget != nil
}
