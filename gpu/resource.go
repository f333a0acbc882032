// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"
	"sync/atomic"
)

// ResourceKind identifies the type of a resource.
type ResourceKind uint8

const (
	KindBuffer ResourceKind = iota
	KindTexture
	KindRenderTarget
	KindShader
	KindPipeline
	KindFramebuffer

	numKinds
)

// resource is the shared header of every resource handle. It
// counts references; the resource is queued for destruction when
// the count drops to zero.
type resource struct {
	dev  *Device
	kind ResourceKind
	id   uint64
	refs atomic.Int32
	// destroy releases the backend object and the dependencies.
	// It is called with the device lock held.
	destroy func()
}

func (r *resource) init(d *Device, kind ResourceKind, destroy func()) {
	r.dev = d
	r.kind = kind
	r.id = d.nextID.Add(1)
	r.refs.Store(1)
	r.destroy = destroy
}

// Kind returns the resource kind.
func (r *resource) Kind() ResourceKind {
	return r.kind
}

// ID returns an identifier unique among the resources of the
// device that created the resource.
func (r *resource) ID() uint64 {
	return r.id
}

// Retain adds a reference to the resource. Every Retain must be
// matched by a Release.
func (r *resource) Retain() {
	if r.dev.closed.Load() {
		return
	}
	if r.refs.Add(1) <= 1 {
		panic(fmt.Errorf("gpu: retain of released %v %d", r.kind, r.id))
	}
}

// Release drops a reference to the resource. The backend object is
// destroyed when the last reference is gone and no pending pass
// refers to it. Release never blocks on the device.
func (r *resource) Release() {
	if r.dev.closed.Load() {
		return
	}
	switch n := r.refs.Add(-1); {
	case n < 0:
		panic(fmt.Errorf("gpu: release of released %v %d", r.kind, r.id))
	case n == 0:
		r.dev.reclaim(r)
	}
}

// tryRetain adds a reference unless the resource is already
// released.
func (r *resource) tryRetain() bool {
	for {
		n := r.refs.Load()
		if n <= 0 {
			return false
		}
		if r.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

func (r *resource) alive() bool {
	return r.refs.Load() > 0
}

// RefCount returns the current number of references.
func (r *resource) RefCount() int {
	return int(r.refs.Load())
}

func (k ResourceKind) String() string {
	switch k {
	case KindBuffer:
		return "buffer"
	case KindTexture:
		return "texture"
	case KindRenderTarget:
		return "render target"
	case KindShader:
		return "shader"
	case KindPipeline:
		return "pipeline"
	case KindFramebuffer:
		return "framebuffer"
	default:
		return fmt.Sprintf("ResourceKind(%d)", uint8(k))
	}
}

// refSet is a set of retained resources, released together.
type refSet []*resource

func (rs *refSet) add(r *resource) error {
	if !r.tryRetain() {
		return fmt.Errorf("%v %d: %w", r.kind, r.id, ErrReleased)
	}
	*rs = append(*rs, r)
	return nil
}

func (rs *refSet) releaseAll() {
	for _, r := range *rs {
		r.Release()
	}
	*rs = (*rs)[:0]
}
