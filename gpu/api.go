// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import "neocogi.org/gpu/internal/driver"

// An API carries the necessary GPU API specific resources to create a Device.
// There is an API type for each supported GPU API such as OpenGL ES.
type API = driver.API

// OpenGL denotes the OpenGL ES 3 API. The backend is linked in by
// importing package neocogi.org/gpu/gles.
type OpenGL = driver.OpenGL

// Caps describes the limits of a Device.
type Caps = driver.Caps

type (
	BufferKind   = driver.BufferKind
	Usage        = driver.Usage
	PixelFormat  = driver.PixelFormat
	SurfaceType  = driver.SurfaceType
	Filter       = driver.Filter
	WrapMode     = driver.WrapMode
	VertexFormat = driver.VertexFormat
	UniformType  = driver.UniformType
	IndexType    = driver.IndexType
	Primitive    = driver.Primitive
	FaceWinding  = driver.FaceWinding
	CullMode     = driver.CullMode
	BlendOp      = driver.BlendOp
	BlendFactor  = driver.BlendFactor

	VertexBufferLayout = driver.VertexBufferLayout
	VertexAttribute    = driver.VertexAttribute
	UniformDesc        = driver.UniformDesc
	BlendState         = driver.BlendState
	PolygonOffset      = driver.PolygonOffset
	ColorAction        = driver.ColorAction
	DepthAction        = driver.DepthAction
)

const (
	VertexBuffer = driver.VertexBuffer
	IndexBuffer  = driver.IndexBuffer
	PixelBuffer  = driver.PixelBuffer
)

const (
	Static   = driver.Static
	Dynamic  = driver.Dynamic
	Streamed = driver.Streamed
)

const (
	RGB8U   = driver.RGB8U
	RGBA8U  = driver.RGBA8U
	R8U     = driver.R8U
	RGB32U  = driver.RGB32U
	RGBA32U = driver.RGBA32U
	R32U    = driver.R32U
	RGB32F  = driver.RGB32F
	RGBA32F = driver.RGBA32F
	R32F    = driver.R32F
	D16     = driver.D16
	D32     = driver.D32
	D24S8   = driver.D24S8
	D32S8   = driver.D32S8
	RGB8    = driver.RGB8
	RGBA8   = driver.RGBA8
	R8      = driver.R8

	SurfaceUInt  = driver.SurfaceUInt
	SurfaceFloat = driver.SurfaceFloat
)

const (
	Nearest              = driver.Nearest
	Linear               = driver.Linear
	NearestMipmapNearest = driver.NearestMipmapNearest
	NearestMipmapLinear  = driver.NearestMipmapLinear
	LinearMipmapNearest  = driver.LinearMipmapNearest
	LinearMipmapLinear   = driver.LinearMipmapLinear

	Repeat         = driver.Repeat
	ClampToEdge    = driver.ClampToEdge
	ClampToBorder  = driver.ClampToBorder
	MirroredRepeat = driver.MirroredRepeat
)

const (
	Byte     = driver.Byte
	Byte2    = driver.Byte2
	Byte3    = driver.Byte3
	Byte4    = driver.Byte4
	SByte    = driver.SByte
	SByte2   = driver.SByte2
	SByte3   = driver.SByte3
	SByte4   = driver.SByte4
	Short    = driver.Short
	Short2   = driver.Short2
	Short3   = driver.Short3
	Short4   = driver.Short4
	Int      = driver.Int
	Int2     = driver.Int2
	Int3     = driver.Int3
	Int4     = driver.Int4
	UInt     = driver.UInt
	UInt2    = driver.UInt2
	UInt3    = driver.UInt3
	UInt4    = driver.UInt4
	Float    = driver.Float
	Float2   = driver.Float2
	Float3   = driver.Float3
	Float4   = driver.Float4
	Float2x2 = driver.Float2x2
	Float3x3 = driver.Float3x3
	Float4x4 = driver.Float4x4
)

const (
	UniformUInt     = driver.UniformUInt
	UniformUInt2    = driver.UniformUInt2
	UniformUInt3    = driver.UniformUInt3
	UniformUInt4    = driver.UniformUInt4
	UniformInt      = driver.UniformInt
	UniformInt2     = driver.UniformInt2
	UniformInt3     = driver.UniformInt3
	UniformInt4     = driver.UniformInt4
	UniformFloat    = driver.UniformFloat
	UniformFloat2   = driver.UniformFloat2
	UniformFloat3   = driver.UniformFloat3
	UniformFloat4   = driver.UniformFloat4
	UniformFloat2x2 = driver.UniformFloat2x2
	UniformFloat3x3 = driver.UniformFloat3x3
	UniformFloat4x4 = driver.UniformFloat4x4
)

const (
	IndexNone   = driver.IndexNone
	IndexUInt16 = driver.IndexUInt16
	IndexUInt32 = driver.IndexUInt32

	Points        = driver.Points
	Lines         = driver.Lines
	LineStrip     = driver.LineStrip
	Triangles     = driver.Triangles
	TriangleStrip = driver.TriangleStrip

	CCW         = driver.CCW
	CW          = driver.CW
	CullNone    = driver.CullNone
	CullWinding = driver.CullWinding
)

const (
	BlendNone            = driver.BlendNone
	BlendAdd             = driver.BlendAdd
	BlendSubtract        = driver.BlendSubtract
	BlendReverseSubtract = driver.BlendReverseSubtract

	BlendFactorZero                  = driver.BlendFactorZero
	BlendFactorOne                   = driver.BlendFactorOne
	BlendFactorSrcColor              = driver.BlendFactorSrcColor
	BlendFactorOneMinusSrcColor      = driver.BlendFactorOneMinusSrcColor
	BlendFactorSrcAlpha              = driver.BlendFactorSrcAlpha
	BlendFactorOneMinusSrcAlpha      = driver.BlendFactorOneMinusSrcAlpha
	BlendFactorDstColor              = driver.BlendFactorDstColor
	BlendFactorOneMinusDstColor      = driver.BlendFactorOneMinusDstColor
	BlendFactorDstAlpha              = driver.BlendFactorDstAlpha
	BlendFactorOneMinusDstAlpha      = driver.BlendFactorOneMinusDstAlpha
	BlendFactorSrcAlphaSaturate      = driver.BlendFactorSrcAlphaSaturate
	BlendFactorConstantColor         = driver.BlendFactorConstantColor
	BlendFactorOneMinusConstantColor = driver.BlendFactorOneMinusConstantColor
	BlendFactorConstantAlpha         = driver.BlendFactorConstantAlpha
	BlendFactorOneMinusConstantAlpha = driver.BlendFactorOneMinusConstantAlpha
)

// DefaultBlend returns premultiplied alpha blending with op.
func DefaultBlend(op BlendOp) BlendState {
	return BlendState{
		Op:       op,
		SrcRGB:   BlendFactorOne,
		SrcAlpha: BlendFactorOne,
		DstRGB:   BlendFactorOneMinusSrcAlpha,
		DstAlpha: BlendFactorOneMinusSrcAlpha,
	}
}

// AlphaBlend returns non-premultiplied alpha blending.
func AlphaBlend() BlendState {
	return BlendState{
		Op:       BlendAdd,
		SrcRGB:   BlendFactorSrcAlpha,
		SrcAlpha: BlendFactorOne,
		DstRGB:   BlendFactorOneMinusSrcAlpha,
		DstAlpha: BlendFactorOneMinusSrcAlpha,
	}
}
