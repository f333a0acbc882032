// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"

	"neocogi.org/gpu/internal/driver"
)

// TextureDesc describes a sampled 2D texture. Pixels, if set, must
// hold exactly Width*Height pixels of Format.
type TextureDesc = driver.TextureDesc

// RenderTargetDesc describes a surface that can be rendered to but
// not sampled.
type RenderTargetDesc = driver.RenderTargetDesc

// Texture is a shared handle to a 2D texture.
type Texture struct {
	resource
	desc TextureDesc
	obj  driver.Texture
}

// RenderTarget is a shared handle to a render target.
type RenderTarget struct {
	resource
	desc RenderTargetDesc
	obj  driver.RenderTarget
}

// NewTexture creates a texture, uploading desc.Pixels if present.
func (d *Device) NewTexture(desc TextureDesc) (*Texture, error) {
	if err := d.validateSurface(desc.Width, desc.Height, desc.Format); err != nil {
		return nil, err
	}
	if desc.MipMaps < 0 {
		return nil, fmt.Errorf("%w: %d mip maps", ErrInvalidDesc, desc.MipMaps)
	}
	if desc.Pixels != nil {
		if want := desc.Width * desc.Height * desc.Format.PixelSize(); len(desc.Pixels) != want {
			return nil, fmt.Errorf("gpu: new texture: %d bytes, want %d: %w", len(desc.Pixels), want, ErrPayloadSize)
		}
	}
	t := &Texture{desc: desc}
	t.desc.Pixels = nil
	err := d.exec(func() error {
		obj, err := d.backend.NewTexture(desc)
		if err != nil {
			return err
		}
		t.obj = obj
		d.track(&t.resource, KindTexture, func() { obj.Release() })
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: new texture: %w", err)
	}
	return t, nil
}

// NewRenderTarget creates a render target.
func (d *Device) NewRenderTarget(desc RenderTargetDesc) (*RenderTarget, error) {
	if err := d.validateSurface(desc.Width, desc.Height, desc.Format); err != nil {
		return nil, err
	}
	if desc.SampleCount < 0 {
		return nil, fmt.Errorf("%w: sample count %d", ErrInvalidDesc, desc.SampleCount)
	}
	rt := &RenderTarget{desc: desc}
	err := d.exec(func() error {
		obj, err := d.backend.NewRenderTarget(desc)
		if err != nil {
			return err
		}
		rt.obj = obj
		d.track(&rt.resource, KindRenderTarget, func() { obj.Release() })
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: new render target: %w", err)
	}
	return rt, nil
}

func (d *Device) validateSurface(w, h int, f PixelFormat) error {
	if f > R8 {
		return fmt.Errorf("%w: pixel format %d", ErrInvalidDesc, f)
	}
	limit := d.caps.MaxSurfaceDim
	if w <= 0 || h <= 0 || (limit > 0 && (w > limit || h > limit)) {
		return fmt.Errorf("%w: surface size %dx%d (max %d)", ErrInvalidDesc, w, h, limit)
	}
	return nil
}

// Desc returns the texture descriptor without pixel data.
func (t *Texture) Desc() TextureDesc {
	return t.desc
}

// Width and Height return the texture size in pixels.
func (t *Texture) Width() int  { return t.desc.Width }
func (t *Texture) Height() int { return t.desc.Height }

// PayloadSize returns the number of bytes of a full update.
func (t *Texture) PayloadSize() int {
	return t.desc.Width * t.desc.Height * t.desc.Format.PixelSize()
}

// Desc returns the descriptor the render target was created with.
func (rt *RenderTarget) Desc() RenderTargetDesc {
	return rt.desc
}
