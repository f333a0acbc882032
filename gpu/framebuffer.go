// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"

	"neocogi.org/gpu/internal/driver"
)

// Attachment is a framebuffer surface, either a texture or a render
// target. The zero Attachment is unused.
type Attachment struct {
	tex *Texture
	rt  *RenderTarget
}

// FramebufferDesc describes up to four color attachments and a
// depth (or depth-stencil) attachment of equal size.
type FramebufferDesc struct {
	Color [4]Attachment
	Depth Attachment
}

// Framebuffer is a shared handle to a set of render surfaces. It
// holds references to its attachments.
type Framebuffer struct {
	resource
	desc          FramebufferDesc
	width, height int
	obj           driver.Framebuffer
}

// TextureAttachment attaches a texture to a framebuffer.
func TextureAttachment(t *Texture) Attachment {
	return Attachment{tex: t}
}

// RenderTargetAttachment attaches a render target to a framebuffer.
func RenderTargetAttachment(rt *RenderTarget) Attachment {
	return Attachment{rt: rt}
}

// IsZero reports whether nothing is attached.
func (a Attachment) IsZero() bool {
	return a.tex == nil && a.rt == nil
}

// Texture returns the attached texture, or nil.
func (a Attachment) Texture() *Texture {
	return a.tex
}

// RenderTarget returns the attached render target, or nil.
func (a Attachment) RenderTarget() *RenderTarget {
	return a.rt
}

// Format returns the pixel format of the attached surface. The
// attachment must not be zero.
func (a Attachment) Format() PixelFormat {
	if a.tex != nil {
		return a.tex.desc.Format
	}
	return a.rt.desc.Format
}

func (a Attachment) size() (int, int) {
	if a.tex != nil {
		return a.tex.desc.Width, a.tex.desc.Height
	}
	return a.rt.desc.Width, a.rt.desc.Height
}

func (a Attachment) res() *resource {
	if a.tex != nil {
		return &a.tex.resource
	}
	return &a.rt.resource
}

func (a Attachment) toDriver() driver.Attachment {
	switch {
	case a.tex != nil:
		return driver.Attachment{Texture: a.tex.obj, Format: a.tex.desc.Format}
	case a.rt != nil:
		return driver.Attachment{RenderTarget: a.rt.obj, Format: a.rt.desc.Format}
	default:
		return driver.Attachment{}
	}
}

// NewFramebuffer creates a framebuffer from desc.
func (d *Device) NewFramebuffer(desc FramebufferDesc) (*Framebuffer, error) {
	fb := &Framebuffer{desc: desc}
	var deps refSet
	fail := func(err error) (*Framebuffer, error) {
		deps.releaseAll()
		return nil, fmt.Errorf("gpu: new framebuffer: %w", err)
	}
	ddesc := driver.FramebufferDesc{}
	check := func(a Attachment) error {
		r := a.res()
		if r.dev != d {
			return ErrWrongDevice
		}
		w, h := a.size()
		if fb.width == 0 {
			fb.width, fb.height = w, h
		} else if w != fb.width || h != fb.height {
			return fmt.Errorf("%w: attachment size %dx%d, want %dx%d", ErrInvalidDesc, w, h, fb.width, fb.height)
		}
		return deps.add(r)
	}
	for i, a := range desc.Color {
		if a.IsZero() {
			continue
		}
		if a.Format().IsDepth() {
			return fail(fmt.Errorf("%w: depth format on color attachment %d", ErrInvalidDesc, i))
		}
		if err := check(a); err != nil {
			return fail(err)
		}
		ddesc.Color[i] = a.toDriver()
	}
	if !desc.Depth.IsZero() {
		if !desc.Depth.Format().IsDepth() {
			return fail(fmt.Errorf("%w: color format on depth attachment", ErrInvalidDesc))
		}
		if err := check(desc.Depth); err != nil {
			return fail(err)
		}
		ddesc.Depth = desc.Depth.toDriver()
	}
	if len(deps) == 0 {
		return fail(fmt.Errorf("%w: framebuffer without attachments", ErrInvalidDesc))
	}
	ddesc.Width, ddesc.Height = fb.width, fb.height
	err := d.exec(func() error {
		obj, err := d.backend.NewFramebuffer(ddesc)
		if err != nil {
			return err
		}
		fb.obj = obj
		d.track(&fb.resource, KindFramebuffer, func() {
			obj.Release()
			deps.releaseAll()
		})
		return nil
	})
	if err != nil {
		return fail(err)
	}
	return fb, nil
}

// Desc returns the attachments of the framebuffer.
func (fb *Framebuffer) Desc() FramebufferDesc {
	return fb.desc
}

// Width and Height return the size shared by the attachments.
func (fb *Framebuffer) Width() int  { return fb.width }
func (fb *Framebuffer) Height() int { return fb.height }
