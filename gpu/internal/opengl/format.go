// SPDX-License-Identifier: Unlicense OR MIT

package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v3.1/gles2"

	"neocogi.org/gpu/internal/driver"
)

// textureTriple holds the type settings for
// a TexImage2D call.
type textureTriple struct {
	internalFormat int32
	format         uint32
	typ            uint32
}

func tripleFor(f driver.PixelFormat) textureTriple {
	switch f {
	case driver.RGB8U:
		return textureTriple{gl.RGB8UI, gl.RGB_INTEGER, gl.UNSIGNED_BYTE}
	case driver.RGBA8U:
		return textureTriple{gl.RGBA8UI, gl.RGBA_INTEGER, gl.UNSIGNED_BYTE}
	case driver.R8U:
		return textureTriple{gl.R8UI, gl.RED_INTEGER, gl.UNSIGNED_BYTE}
	case driver.RGB32U:
		return textureTriple{gl.RGB32UI, gl.RGB_INTEGER, gl.UNSIGNED_INT}
	case driver.RGBA32U:
		return textureTriple{gl.RGBA32UI, gl.RGBA_INTEGER, gl.UNSIGNED_INT}
	case driver.R32U:
		return textureTriple{gl.R32UI, gl.RED_INTEGER, gl.UNSIGNED_INT}
	case driver.RGB32F:
		return textureTriple{gl.RGB32F, gl.RGB, gl.FLOAT}
	case driver.RGBA32F:
		return textureTriple{gl.RGBA32F, gl.RGBA, gl.FLOAT}
	case driver.R32F:
		return textureTriple{gl.R32F, gl.RED, gl.FLOAT}
	case driver.D16:
		return textureTriple{gl.DEPTH_COMPONENT16, gl.DEPTH_COMPONENT, gl.UNSIGNED_SHORT}
	case driver.D32:
		return textureTriple{gl.DEPTH_COMPONENT32F, gl.DEPTH_COMPONENT, gl.FLOAT}
	case driver.D24S8:
		return textureTriple{gl.DEPTH24_STENCIL8, gl.DEPTH_STENCIL, gl.UNSIGNED_INT_24_8}
	case driver.D32S8:
		return textureTriple{gl.DEPTH32F_STENCIL8, gl.DEPTH_STENCIL, gl.FLOAT_32_UNSIGNED_INT_24_8_REV}
	case driver.RGB8:
		return textureTriple{gl.RGB8, gl.RGB, gl.UNSIGNED_BYTE}
	case driver.RGBA8:
		return textureTriple{gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE}
	case driver.R8:
		return textureTriple{gl.R8, gl.RED, gl.UNSIGNED_BYTE}
	default:
		panic("unsupported pixel format")
	}
}

// depthAttachment returns the attachment point of a depth format.
func depthAttachment(f driver.PixelFormat) uint32 {
	if f.HasStencil() {
		return gl.DEPTH_STENCIL_ATTACHMENT
	}
	return gl.DEPTH_ATTACHMENT
}

func toTexFilter(f driver.Filter) int32 {
	switch f {
	case driver.Nearest:
		return gl.NEAREST
	case driver.Linear:
		return gl.LINEAR
	case driver.NearestMipmapNearest:
		return gl.NEAREST_MIPMAP_NEAREST
	case driver.NearestMipmapLinear:
		return gl.NEAREST_MIPMAP_LINEAR
	case driver.LinearMipmapNearest:
		return gl.LINEAR_MIPMAP_NEAREST
	case driver.LinearMipmapLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	default:
		panic("unsupported texture filter")
	}
}

func toTexWrap(w driver.WrapMode) (int32, error) {
	switch w {
	case driver.Repeat:
		return gl.REPEAT, nil
	case driver.ClampToEdge:
		return gl.CLAMP_TO_EDGE, nil
	case driver.MirroredRepeat:
		return gl.MIRRORED_REPEAT, nil
	default:
		return 0, fmt.Errorf("wrap mode %d: %w", w, driver.ErrUnsupported)
	}
}

func toBufferTarget(k driver.BufferKind) uint32 {
	switch k {
	case driver.VertexBuffer:
		return gl.ARRAY_BUFFER
	case driver.IndexBuffer:
		return gl.ELEMENT_ARRAY_BUFFER
	case driver.PixelBuffer:
		return gl.PIXEL_UNPACK_BUFFER
	default:
		panic("unsupported buffer kind")
	}
}

func toBufferUsage(u driver.Usage) uint32 {
	switch u {
	case driver.Static:
		return gl.STATIC_DRAW
	case driver.Dynamic:
		return gl.DYNAMIC_DRAW
	case driver.Streamed:
		return gl.STREAM_DRAW
	default:
		panic("unsupported buffer usage")
	}
}

// toVertexType returns the component type of a vertex format.
func toVertexType(f driver.VertexFormat) uint32 {
	switch {
	case f <= driver.Byte4:
		return gl.UNSIGNED_BYTE
	case f <= driver.SByte4:
		return gl.BYTE
	case f <= driver.Short4:
		return gl.SHORT
	case f <= driver.Int4:
		return gl.INT
	case f <= driver.UInt4:
		return gl.UNSIGNED_INT
	default:
		return gl.FLOAT
	}
}

// vertexColumns returns the number of attribute locations used by f
// and the component count of each.
func vertexColumns(f driver.VertexFormat) (cols, size int) {
	switch f {
	case driver.Float2x2:
		return 2, 2
	case driver.Float3x3:
		return 3, 3
	case driver.Float4x4:
		return 4, 4
	default:
		return 1, f.Components()
	}
}

func toGLDrawMode(p driver.Primitive) uint32 {
	switch p {
	case driver.Points:
		return gl.POINTS
	case driver.Lines:
		return gl.LINES
	case driver.LineStrip:
		return gl.LINE_STRIP
	case driver.Triangles:
		return gl.TRIANGLES
	case driver.TriangleStrip:
		return gl.TRIANGLE_STRIP
	default:
		panic("unsupported draw mode")
	}
}

func toIndexType(t driver.IndexType) uint32 {
	switch t {
	case driver.IndexUInt16:
		return gl.UNSIGNED_SHORT
	case driver.IndexUInt32:
		return gl.UNSIGNED_INT
	default:
		panic("no index type")
	}
}

func toGLBlendFactor(f driver.BlendFactor) uint32 {
	switch f {
	case driver.BlendFactorZero:
		return gl.ZERO
	case driver.BlendFactorOne:
		return gl.ONE
	case driver.BlendFactorSrcColor:
		return gl.SRC_COLOR
	case driver.BlendFactorOneMinusSrcColor:
		return gl.ONE_MINUS_SRC_COLOR
	case driver.BlendFactorSrcAlpha:
		return gl.SRC_ALPHA
	case driver.BlendFactorOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case driver.BlendFactorDstColor:
		return gl.DST_COLOR
	case driver.BlendFactorOneMinusDstColor:
		return gl.ONE_MINUS_DST_COLOR
	case driver.BlendFactorDstAlpha:
		return gl.DST_ALPHA
	case driver.BlendFactorOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	case driver.BlendFactorSrcAlphaSaturate:
		return gl.SRC_ALPHA_SATURATE
	case driver.BlendFactorConstantColor:
		return gl.CONSTANT_COLOR
	case driver.BlendFactorOneMinusConstantColor:
		return gl.ONE_MINUS_CONSTANT_COLOR
	case driver.BlendFactorConstantAlpha:
		return gl.CONSTANT_ALPHA
	case driver.BlendFactorOneMinusConstantAlpha:
		return gl.ONE_MINUS_CONSTANT_ALPHA
	default:
		panic("unsupported blend factor")
	}
}

func toGLBlendEquation(op driver.BlendOp) uint32 {
	switch op {
	case driver.BlendAdd:
		return gl.FUNC_ADD
	case driver.BlendSubtract:
		return gl.FUNC_SUBTRACT
	case driver.BlendReverseSubtract:
		return gl.FUNC_REVERSE_SUBTRACT
	default:
		panic("unsupported blend op")
	}
}

// cullFace returns the face culled for front faces with winding w.
func cullFace(w driver.FaceWinding) uint32 {
	if w == driver.CW {
		return gl.FRONT
	}
	return gl.BACK
}

func ParseGLVersion(glVer string) ([2]int, error) {
	var ver [2]int
	if _, err := fmt.Sscanf(glVer, "OpenGL ES %d.%d", &ver[0], &ver[1]); err == nil {
		return ver, nil
	} else if _, err := fmt.Sscanf(glVer, "%d.%d", &ver[0], &ver[1]); err == nil {
		return ver, nil
	}
	return ver, fmt.Errorf("failed to parse OpenGL ES version (%s)", glVer)
}
