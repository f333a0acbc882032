// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"

	"neocogi.org/gpu/internal/driver"
)

// BufferDesc describes a device buffer. Static buffers take their
// content from Data and cannot be updated. Dynamic and Streamed
// buffers are updated through passes.
type BufferDesc = driver.BufferDesc

// Buffer is a shared handle to a device buffer.
type Buffer struct {
	resource
	typ   BufferKind
	usage Usage
	size  int
	obj   driver.Buffer
}

// NewBuffer creates a device buffer. The returned handle holds one
// reference owned by the caller.
func (d *Device) NewBuffer(desc BufferDesc) (*Buffer, error) {
	if err := validateBuffer(&desc); err != nil {
		return nil, err
	}
	b := &Buffer{typ: desc.Kind, usage: desc.Usage, size: desc.Size}
	err := d.exec(func() error {
		obj, err := d.backend.NewBuffer(desc)
		if err != nil {
			return err
		}
		b.obj = obj
		d.track(&b.resource, KindBuffer, func() { obj.Release() })
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: new buffer: %w", err)
	}
	return b, nil
}

func validateBuffer(desc *BufferDesc) error {
	if desc.Kind > PixelBuffer || desc.Usage > Streamed {
		return fmt.Errorf("%w: buffer kind %d usage %d", ErrInvalidDesc, desc.Kind, desc.Usage)
	}
	if desc.Size == 0 {
		desc.Size = len(desc.Data)
	}
	switch {
	case desc.Size <= 0:
		return fmt.Errorf("%w: buffer size %d", ErrInvalidDesc, desc.Size)
	case desc.Usage == Static && len(desc.Data) == 0:
		return fmt.Errorf("%w: static buffer without data", ErrInvalidDesc)
	case len(desc.Data) > desc.Size:
		return fmt.Errorf("%w: %d bytes of data for a %d bytes buffer", ErrOutOfBounds, len(desc.Data), desc.Size)
	}
	return nil
}

// BufferKind returns whether the buffer holds vertices, indices or pixels.
func (b *Buffer) BufferKind() BufferKind {
	return b.typ
}

// Usage returns how often the buffer content is expected to change.
func (b *Buffer) Usage() Usage {
	return b.usage
}

// Size returns the buffer size in bytes.
func (b *Buffer) Size() int {
	return b.size
}

// checkUpdate validates an update of len(data) bytes at offset.
func (b *Buffer) checkUpdate(offset int, data []byte) error {
	if b.usage == Static {
		return fmt.Errorf("buffer %d: %w", b.id, ErrStaticBuffer)
	}
	if offset < 0 || offset+len(data) > b.size {
		return fmt.Errorf("buffer %d: %d bytes at offset %d, size %d: %w", b.id, len(data), offset, b.size, ErrOutOfBounds)
	}
	return nil
}
