// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"

	"neocogi.org/gpu/internal/driver"
)

// ShaderDesc describes a program from GLSL ES 3.00 sources.
// Attribute locations are assigned in order across the attribute
// lists of every vertex buffer. Uniforms are vertex stage uniforms.
type ShaderDesc = driver.ShaderDesc

// Shader is a shared handle to a linked shader program.
type Shader struct {
	resource
	desc ShaderDesc
	obj  driver.Shader
}

// NewShader compiles and links a shader. Compilation failures are
// reported as *ShaderError.
func (d *Device) NewShader(desc ShaderDesc) (*Shader, error) {
	if desc.VertexSource == "" || desc.FragmentSource == "" {
		return nil, fmt.Errorf("%w: missing shader source", ErrInvalidDesc)
	}
	s := &Shader{desc: desc}
	err := d.exec(func() error {
		obj, err := d.backend.NewShader(desc)
		if err != nil {
			return err
		}
		s.obj = obj
		d.track(&s.resource, KindShader, func() { obj.Release() })
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: new shader: %w", err)
	}
	return s, nil
}

// Desc returns the sources and names the shader was created with.
func (s *Shader) Desc() ShaderDesc {
	return s.desc
}
