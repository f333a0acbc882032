// SPDX-License-Identifier: Unlicense OR MIT

package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"neocogi.org/gpu"
)

const meshVertexSrc = `#version 300 es
in vec3 position;
in lowp vec4 color;
uniform mat4 pvm;
out lowp vec4 vColor;

void main() {
	gl_Position = pvm * vec4(position, 1.0);
	vColor = color;
}
`

const meshFragmentSrc = `#version 300 es
precision mediump float;
in lowp vec4 vColor;
layout(location = 0) out lowp vec4 fragColor;

void main() {
	fragColor = vColor;
}
`

type meshUniforms struct {
	PVM mgl32.Mat4 `gpu:"pvm"`
}

// MeshRenderer draws meshes with depth testing: lines as wire
// frames, triangles as solids.
type MeshRenderer struct {
	wire  *gpu.Pipeline
	solid *gpu.Pipeline
	dev   *gpu.Device
	// cache holds the meshes of DrawCached by key.
	cache *gpu.Cache[string, *GPUMesh]
}

// GPUMesh is a mesh uploaded to static buffers.
type GPUMesh struct {
	lines, tris   *gpu.Buffer
	nLines, nTris int
}

func NewMeshRenderer(dev *gpu.Device) (*MeshRenderer, error) {
	us := gpu.MustUniformsOf(meshUniforms{})
	sh, err := dev.NewShader(gpu.ShaderDesc{
		VertexSource:   meshVertexSrc,
		FragmentSource: meshFragmentSrc,
		Attributes:     [][]string{gpu.AttributeNames(Vertex{}, "")},
		Uniforms:       gpu.UniformNames(us),
	})
	if err != nil {
		return nil, fmt.Errorf("scene: new mesh renderer: %w", err)
	}
	defer sh.Release()
	desc := gpu.PipelineDesc{
		Shader:      sh,
		Buffers:     []gpu.VertexBufferLayout{gpu.MustLayoutOf(Vertex{})},
		Uniforms:    us,
		FaceWinding: gpu.CCW,
		CullMode:    gpu.CullNone,
		DepthTest:   true,
		DepthWrite:  true,
	}
	r := &MeshRenderer{dev: dev, cache: gpu.NewCache[string, *GPUMesh]()}
	desc.Primitive = gpu.Lines
	if r.wire, err = dev.NewPipeline(desc); err != nil {
		return nil, fmt.Errorf("scene: new mesh renderer: %w", err)
	}
	desc.Primitive = gpu.Triangles
	if r.solid, err = dev.NewPipeline(desc); err != nil {
		r.wire.Release()
		return nil, fmt.Errorf("scene: new mesh renderer: %w", err)
	}
	return r, nil
}

// Upload copies m to static device buffers.
func (r *MeshRenderer) Upload(m Mesh) (*GPUMesh, error) {
	g := &GPUMesh{nLines: len(m.Lines) / 2, nTris: len(m.Triangles) / 3}
	var err error
	if g.nLines > 0 {
		g.lines, err = r.dev.NewBuffer(gpu.BufferDesc{Kind: gpu.VertexBuffer, Usage: gpu.Static, Data: gpu.Bytes(m.Lines[:2*g.nLines])})
		if err != nil {
			return nil, fmt.Errorf("scene: upload mesh: %w", err)
		}
	}
	if g.nTris > 0 {
		g.tris, err = r.dev.NewBuffer(gpu.BufferDesc{Kind: gpu.VertexBuffer, Usage: gpu.Static, Data: gpu.Bytes(m.Triangles[:3*g.nTris])})
		if err != nil {
			g.Release()
			return nil, fmt.Errorf("scene: upload mesh: %w", err)
		}
	}
	gpu.Logger().Debug("scene: mesh uploaded", "lines", g.nLines, "triangles", g.nTris)
	return g, nil
}

// Draw records the draws of g in p with the projection view matrix
// pvm.
func (r *MeshRenderer) Draw(p *gpu.Pass, g *GPUMesh, pvm mgl32.Mat4) error {
	u := gpu.Bytes(&meshUniforms{PVM: pvm})
	if g.nTris > 0 {
		err := p.Draw(r.solid, gpu.Bindings{VertexBuffers: []*gpu.Buffer{g.tris}}, u, g.nTris, 1)
		if err != nil {
			return fmt.Errorf("scene: draw mesh: %w", err)
		}
	}
	if g.nLines > 0 {
		err := p.Draw(r.wire, gpu.Bindings{VertexBuffers: []*gpu.Buffer{g.lines}}, u, g.nLines, 1)
		if err != nil {
			return fmt.Errorf("scene: draw mesh: %w", err)
		}
	}
	return nil
}

// DrawMesh uploads m to buffers owned by p and records its draws.
// The buffers are destroyed once p executed.
func (r *MeshRenderer) DrawMesh(p *gpu.Pass, m Mesh, pvm mgl32.Mat4) error {
	if m.Empty() {
		return nil
	}
	g, err := r.Upload(m)
	if err != nil {
		return err
	}
	defer g.Release()
	return r.Draw(p, g, pvm)
}

// DrawCached is like Draw for the mesh built by build, uploaded once
// and kept under key while it is drawn every frame. A key not drawn
// between two calls to EndFrame loses its mesh.
func (r *MeshRenderer) DrawCached(p *gpu.Pass, key string, build func() Mesh, pvm mgl32.Mat4) error {
	g, ok := r.cache.Get(key)
	if !ok {
		var err error
		g, err = r.Upload(build())
		if err != nil {
			return err
		}
		r.cache.Put(key, g)
	}
	return r.Draw(p, g, pvm)
}

// EndFrame releases the cached meshes not drawn since the previous
// call.
func (r *MeshRenderer) EndFrame() {
	r.cache.Frame()
}

// Release drops the buffers of g.
func (g *GPUMesh) Release() {
	if g.lines != nil {
		g.lines.Release()
		g.lines = nil
	}
	if g.tris != nil {
		g.tris.Release()
		g.tris = nil
	}
}

func (r *MeshRenderer) Release() {
	r.cache.Release()
	r.wire.Release()
	r.solid.Release()
}
