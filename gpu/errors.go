// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"errors"
	"fmt"

	"neocogi.org/gpu/internal/driver"
)

var (
	// ErrClosed is returned by operations on a closed Device.
	ErrClosed = errors.New("gpu: device closed")
	// ErrReleased is returned when a command references a resource
	// whose last reference was dropped.
	ErrReleased     = errors.New("gpu: resource released")
	ErrStaticBuffer = errors.New("gpu: static buffers cannot be updated")
	ErrOutOfBounds  = errors.New("gpu: range exceeds buffer size")
	ErrPayloadSize  = errors.New("gpu: payload size mismatch")
	// ErrIndexType is returned when the presence of an index buffer
	// doesn't match the index type of the pipeline.
	ErrIndexType   = errors.New("gpu: index buffer does not match pipeline index type")
	ErrUniformSize = errors.New("gpu: uniform data smaller than the pipeline layout")
	ErrInvalidDesc = errors.New("gpu: invalid descriptor")
	ErrBindings    = errors.New("gpu: bindings do not match pipeline")
	ErrWrongDevice = errors.New("gpu: resource belongs to another device")
	// ErrUnsupported is returned for features the backend lacks.
	ErrUnsupported = driver.ErrUnsupported
)

// ShaderError reports a failed shader compilation or link.
type ShaderError = driver.ShaderError

// PassError reports the failure of a pass during Flush. Passes
// following the failed pass were dropped.
type PassError struct {
	// Index is the position of the pass among the passes of the Flush.
	Index   int
	Dropped int
	Err     error
}

func (e *PassError) Error() string {
	return fmt.Sprintf("gpu: pass %d failed (%d dropped): %v", e.Index, e.Dropped, e.Err)
}

func (e *PassError) Unwrap() error {
	return e.Err
}
