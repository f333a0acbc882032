// SPDX-License-Identifier: Unlicense OR MIT

// Package gputest implements a recording backend for testing code
// built on package gpu without a graphics context.
package gputest

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"neocogi.org/gpu/internal/driver"
)

// Call is a recorded backend call.
type Call struct {
	Op string
	// ID is the id of the object created, updated, released or, for
	// Draw, the pipeline. It is zero for other calls.
	ID     int
	Detail string
}

func (c Call) String() string {
	if c.Detail == "" {
		return fmt.Sprintf("%s %d", c.Op, c.ID)
	}
	return fmt.Sprintf("%s %d %s", c.Op, c.ID, c.Detail)
}

// Backend records the calls made by a gpu.Device. It is safe for
// concurrent use so tests can inspect it while a device runs.
type Backend struct {
	mu      sync.Mutex
	caps    driver.Caps
	calls   []Call
	nextID  int
	fail    map[string][]error
	live    map[int]*object
	inPass  bool
	release bool
}

type object struct {
	b    *Backend
	id   int
	kind string
	data []byte
}

// ErrInjected is the default error of FailNext.
var ErrInjected = errors.New("gputest: injected failure")

// New returns an empty recording backend.
func New() *Backend {
	return &Backend{
		caps: driver.Caps{
			MaxSurfaceDim:    4096,
			BottomLeftOrigin: true,
			Vendor:           "neocogi",
			Renderer:         "gputest",
			Version:          "OpenGL ES 3.0 gputest",
		},
		fail: make(map[string][]error),
		live: make(map[int]*object),
	}
}

// API returns the API creating devices on b.
func API(b *Backend) driver.API {
	return driver.Custom{Device: b}
}

// FailNext makes the next call of op fail with err, or ErrInjected
// if err is nil. Failures queue up per op.
func (b *Backend) FailNext(op string, err error) {
	if err == nil {
		err = ErrInjected
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fail[op] = append(b.fail[op], err)
}

// Calls returns a copy of the recorded calls.
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// Ops returns the operation names of the recorded calls, skipping
// the operations in skip.
func (b *Backend) Ops(skip ...string) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var ops []string
loop:
	for _, c := range b.calls {
		for _, s := range skip {
			if c.Op == s {
				continue loop
			}
		}
		ops = append(ops, c.Op)
	}
	return ops
}

// Reset forgets the recorded calls.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = b.calls[:0]
}

// Live returns the ids of the objects not yet released, sorted.
func (b *Backend) Live() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]int, 0, len(b.live))
	for id := range b.live {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Data returns a copy of the contents of the live buffer or texture
// id.
func (b *Backend) Data(id int) []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	o := b.live[id]
	if o == nil {
		return nil
	}
	return append([]byte(nil), o.data...)
}

// Released reports whether the device released the backend.
func (b *Backend) Released() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.release
}

func (b *Backend) record(op string, id int, format string, args ...any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if errs := b.fail[op]; len(errs) > 0 {
		b.fail[op] = errs[1:]
		return errs[0]
	}
	b.calls = append(b.calls, Call{Op: op, ID: id, Detail: fmt.Sprintf(format, args...)})
	return nil
}

func (b *Backend) create(op, kind string, data []byte, format string, args ...any) (*object, error) {
	b.mu.Lock()
	b.nextID++
	o := &object{b: b, id: b.nextID, kind: kind, data: data}
	b.mu.Unlock()
	if err := b.record(op, o.id, format, args...); err != nil {
		return nil, err
	}
	b.mu.Lock()
	b.live[o.id] = o
	b.mu.Unlock()
	return o, nil
}

func (o *object) Release() {
	o.b.mu.Lock()
	delete(o.b.live, o.id)
	o.b.calls = append(o.b.calls, Call{Op: "Release", ID: o.id, Detail: o.kind})
	o.b.mu.Unlock()
}

func (b *Backend) Caps() driver.Caps {
	return b.caps
}

func (b *Backend) NewBuffer(desc driver.BufferDesc) (driver.Buffer, error) {
	data := make([]byte, desc.Size)
	copy(data, desc.Data)
	return b.create("NewBuffer", "buffer", data, "kind=%d usage=%d size=%d", desc.Kind, desc.Usage, desc.Size)
}

func (b *Backend) NewTexture(desc driver.TextureDesc) (driver.Texture, error) {
	data := make([]byte, desc.Width*desc.Height*desc.Format.PixelSize())
	copy(data, desc.Pixels)
	return b.create("NewTexture", "texture", data, "%dx%d format=%d", desc.Width, desc.Height, desc.Format)
}

func (b *Backend) NewRenderTarget(desc driver.RenderTargetDesc) (driver.RenderTarget, error) {
	return b.create("NewRenderTarget", "render target", nil, "%dx%d format=%d", desc.Width, desc.Height, desc.Format)
}

func (b *Backend) NewShader(desc driver.ShaderDesc) (driver.Shader, error) {
	return b.create("NewShader", "shader", nil, "attributes=%v", desc.Attributes)
}

func (b *Backend) NewPipeline(desc driver.PipelineDesc) (driver.Pipeline, error) {
	return b.create("NewPipeline", "pipeline", nil, "shader=%d", idOf(desc.Shader))
}

func (b *Backend) NewFramebuffer(desc driver.FramebufferDesc) (driver.Framebuffer, error) {
	return b.create("NewFramebuffer", "framebuffer", nil, "%dx%d", desc.Width, desc.Height)
}

func (b *Backend) UpdateBuffer(buf driver.Buffer, offset int, data []byte) error {
	o := buf.(*object)
	if err := b.record("UpdateBuffer", o.id, "offset=%d size=%d", offset, len(data)); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.inPass {
		return errors.New("gputest: update inside a pass")
	}
	copy(o.data[offset:], data)
	return nil
}

func (b *Backend) UpdateTexture(t driver.Texture, pixels []byte) error {
	o := t.(*object)
	if err := b.record("UpdateTexture", o.id, "size=%d", len(pixels)); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.inPass {
		return errors.New("gputest: update inside a pass")
	}
	copy(o.data, pixels)
	return nil
}

func (b *Backend) BeginPass(desc driver.PassDesc) error {
	if err := b.record("BeginPass", idOf(desc.Framebuffer), "%dx%d clear=%v", desc.Width, desc.Height, desc.Color[0].Clear); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.inPass {
		return errors.New("gputest: nested pass")
	}
	b.inPass = true
	return nil
}

func (b *Backend) Viewport(x, y, width, height int) {
	b.record("Viewport", 0, "%d,%d %dx%d", x, y, width, height)
}

func (b *Backend) Scissor(x, y, width, height int) {
	b.record("Scissor", 0, "%d,%d %dx%d", x, y, width, height)
}

func (b *Backend) Draw(d driver.DrawDesc) error {
	if err := b.record("Draw", idOf(d.Pipeline), "first=%d count=%d instances=%d", d.First, d.Count, d.Instances); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.inPass {
		return errors.New("gputest: draw outside a pass")
	}
	return nil
}

func (b *Backend) EndPass() error {
	err := b.record("EndPass", 0, "")
	b.mu.Lock()
	b.inPass = false
	b.mu.Unlock()
	return err
}

func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.release = true
	b.calls = append(b.calls, Call{Op: "ReleaseDevice"})
}

func idOf(v any) int {
	if o, ok := v.(*object); ok && o != nil {
		return o.id
	}
	return 0
}
