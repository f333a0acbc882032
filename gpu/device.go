// SPDX-License-Identifier: Unlicense OR MIT

package gpu

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"

	"neocogi.org/gpu/internal/driver"
)

// Device owns a GPU backend. Every backend access is serialized by a
// mutex, so a Device may be shared by goroutines creating resources
// and submitting passes. Submitted passes execute in submission
// order when the device is flushed.
type Device struct {
	mu      sync.Mutex
	backend driver.Device
	thread  *thread
	caps    Caps
	log     *slog.Logger

	nextID atomic.Uint64
	closed atomic.Bool

	// gcMu protects garbage, the resources whose last reference
	// was released. They are destroyed with mu held.
	gcMu    sync.Mutex
	garbage []*resource

	live    map[uint64]*resource
	pending []*pendingPass
	stats   Stats
}

// Stats is a snapshot of the device bookkeeping.
type Stats struct {
	Live      map[ResourceKind]int
	Pending   int
	Executed  int
	Dropped   int
	Reclaimed int
}

// Option configures a Device.
type Option func(*options)

type options struct {
	logger *slog.Logger
	ctx    Context
}

type pendingPass struct {
	desc    PassDesc
	updates []update
	draws   []command
	refs    refSet
}

// WithLogger makes the device log to l instead of the package
// logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithContext runs every backend call on a dedicated goroutine,
// locked to its OS thread, on which ctx is current. Without it the
// backend is called from the goroutine calling the Device and the
// graphics context must be current there.
func WithContext(ctx Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

// NewDevice creates a device for api.
func NewDevice(api API, opts ...Option) (*Device, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	d := &Device{
		log:  o.logger,
		live: make(map[uint64]*resource),
	}
	if o.ctx != nil {
		t, err := startThread(o.ctx)
		if err != nil {
			return nil, fmt.Errorf("gpu: new device: %w", err)
		}
		d.thread = t
	}
	err := d.run(func() error {
		b, err := driver.NewDevice(api)
		if err != nil {
			return err
		}
		d.backend = b
		d.caps = b.Caps()
		return nil
	})
	if err != nil {
		if d.thread != nil {
			d.thread.stop()
		}
		return nil, fmt.Errorf("gpu: new device: %w", err)
	}
	d.logger().Info("gpu: device created",
		"renderer", d.caps.Renderer,
		"version", d.caps.Version,
		"max_surface", d.caps.MaxSurfaceDim)
	return d, nil
}

func (d *Device) logger() *slog.Logger {
	if d.log != nil {
		return d.log
	}
	return Logger()
}

// Caps returns the device limits.
func (d *Device) Caps() Caps {
	return d.caps
}

// run calls f on the backend thread.
func (d *Device) run(f func() error) error {
	if d.thread != nil {
		return d.thread.do(f)
	}
	return f()
}

// exec locks the device, destroys released resources and runs f on
// the backend thread.
func (d *Device) exec(f func() error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed.Load() {
		return ErrClosed
	}
	return d.run(func() error {
		d.collect()
		return f()
	})
}

// Do runs f with the device locked, on the thread owning the
// graphics context. It is used for operations outside the device
// such as presenting a frame.
func (d *Device) Do(f func() error) error {
	return d.exec(f)
}

// track registers a new resource. Called with mu held.
func (d *Device) track(r *resource, kind ResourceKind, destroy func()) {
	r.init(d, kind, destroy)
	d.live[r.id] = r
	d.logger().Debug("gpu: resource created", "kind", kind, "id", r.id)
}

// reclaim queues r for destruction. It doesn't take mu.
func (d *Device) reclaim(r *resource) {
	d.gcMu.Lock()
	d.garbage = append(d.garbage, r)
	d.gcMu.Unlock()
}

// collect destroys queued resources, including dependencies
// released by the destroyed resources. Called with mu held.
func (d *Device) collect() {
	for {
		d.gcMu.Lock()
		g := d.garbage
		d.garbage = nil
		d.gcMu.Unlock()
		if len(g) == 0 {
			return
		}
		for _, r := range g {
			r.destroy()
			delete(d.live, r.id)
			d.stats.Reclaimed++
			d.logger().Debug("gpu: resource destroyed", "kind", r.kind, "id", r.id)
		}
	}
}

// SubmitPass submits a single pass. See Submit.
func (d *Device) SubmitPass(p *Pass) error {
	return d.Submit(&Queue{passes: []*Pass{p}})
}

// Submit moves the passes of q to the end of the pending list and
// empties q. The passes remain usable for recording the next frame.
// Either every pass is submitted or, on error, none.
func (d *Device) Submit(q *Queue) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed.Load() {
		return ErrClosed
	}
	var fbs refSet
	for i, p := range q.passes {
		if err := d.checkPass(p, &fbs); err != nil {
			fbs.releaseAll()
			return fmt.Errorf("gpu: submit pass %d: %w", i, err)
		}
	}
	fbi := 0
	for _, p := range q.passes {
		pp := &pendingPass{desc: p.desc}
		pp.updates, pp.draws, pp.refs = p.take()
		if p.desc.Framebuffer != nil {
			pp.refs = append(pp.refs, fbs[fbi])
			fbi++
		}
		d.pending = append(d.pending, pp)
	}
	q.passes = q.passes[:0]
	return nil
}

func (d *Device) checkPass(p *Pass, fbs *refSet) error {
	if p.desc.Width <= 0 || p.desc.Height <= 0 {
		return fmt.Errorf("%w: pass size %dx%d", ErrInvalidDesc, p.desc.Width, p.desc.Height)
	}
	for _, r := range p.refs {
		if r.dev != d {
			return ErrWrongDevice
		}
	}
	if fb := p.desc.Framebuffer; fb != nil {
		if fb.dev != d {
			return ErrWrongDevice
		}
		return fbs.add(&fb.resource)
	}
	return nil
}

// Flush executes the pending passes in submission order. Within a
// pass every update runs before the first draw. If a pass fails,
// its remaining commands and all later passes are dropped and a
// *PassError is returned. The references held by executed and
// dropped passes are released.
func (d *Device) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed.Load() {
		return ErrClosed
	}
	passes := d.pending
	d.pending = nil
	return d.run(func() error {
		d.collect()
		defer d.collect()
		for i, p := range passes {
			err := d.execute(p)
			p.refs.releaseAll()
			if err == nil {
				d.stats.Executed++
				continue
			}
			rest := passes[i+1:]
			for _, r := range rest {
				r.refs.releaseAll()
			}
			d.stats.Dropped += len(rest)
			d.logger().Error("gpu: pass failed", "index", i, "dropped", len(rest), "err", err)
			return &PassError{Index: i, Dropped: len(rest), Err: err}
		}
		return nil
	})
}

// Render submits q and flushes the device.
func (d *Device) Render(q *Queue) error {
	if err := d.Submit(q); err != nil {
		return err
	}
	return d.Flush()
}

func (d *Device) execute(p *pendingPass) error {
	for i, u := range p.updates {
		var err error
		switch u.op {
		case opUpdateBuffer:
			err = d.backend.UpdateBuffer(u.buf.obj, u.offset, u.data)
		case opUpdateTexture:
			err = d.backend.UpdateTexture(u.tex.obj, u.data)
		}
		if err != nil {
			return fmt.Errorf("update %d: %w", i, err)
		}
	}
	desc := driver.PassDesc{
		Width:  p.desc.Width,
		Height: p.desc.Height,
		Color:  p.desc.Color,
		Depth:  p.desc.Depth,
	}
	if fb := p.desc.Framebuffer; fb != nil {
		desc.Framebuffer = fb.obj
	}
	if err := d.backend.BeginPass(desc); err != nil {
		return fmt.Errorf("begin pass: %w", err)
	}
	for i, c := range p.draws {
		switch c.op {
		case opViewport:
			d.backend.Viewport(c.rect.Min.X, c.rect.Min.Y, c.rect.Dx(), c.rect.Dy())
		case opScissor:
			d.backend.Scissor(c.rect.Min.X, c.rect.Min.Y, c.rect.Dx(), c.rect.Dy())
		case opDraw:
			if err := d.backend.Draw(drawDesc(c.draw)); err != nil {
				d.backend.EndPass()
				return fmt.Errorf("draw %d: %w", i, err)
			}
		}
	}
	if err := d.backend.EndPass(); err != nil {
		return fmt.Errorf("end pass: %w", err)
	}
	d.logger().Debug("gpu: pass executed", "updates", len(p.updates), "commands", len(p.draws))
	return nil
}

func drawDesc(c DrawCommand) driver.DrawDesc {
	b := c.Bindings
	dd := driver.DrawDesc{
		Pipeline:  c.Pipeline.obj,
		Uniforms:  c.Uniforms,
		First:     c.First,
		Count:     c.Pipeline.desc.Primitive.ElementCount(c.Primitives),
		Instances: c.Instances,
	}
	for _, vb := range b.VertexBuffers {
		dd.VertexBuffers = append(dd.VertexBuffers, vb.obj)
	}
	if b.IndexBuffer != nil {
		dd.IndexBuffer = b.IndexBuffer.obj
	}
	for _, t := range b.VertexTextures {
		dd.VertexTextures = append(dd.VertexTextures, t.obj)
	}
	for _, t := range b.FragmentTextures {
		dd.FragmentTextures = append(dd.FragmentTextures, t.obj)
	}
	return dd
}

// Stats returns a snapshot of the device bookkeeping.
func (d *Device) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.stats
	s.Live = make(map[ResourceKind]int)
	for _, r := range d.live {
		s.Live[r.kind]++
	}
	s.Pending = len(d.pending)
	return s
}

// Close drops pending passes, destroys every resource and releases
// the backend. Resources still referenced are logged as leaks.
// Afterwards every operation returns ErrClosed and releasing
// handles has no effect.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed.Load() {
		return ErrClosed
	}
	err := d.run(func() error {
		if n := len(d.pending); n > 0 {
			d.logger().Warn("gpu: dropping pending passes", "count", n)
			for _, p := range d.pending {
				p.refs.releaseAll()
			}
			d.stats.Dropped += n
			d.pending = nil
		}
		d.collect()
		d.closed.Store(true)
		leaked := make([]*resource, 0, len(d.live))
		for _, r := range d.live {
			leaked = append(leaked, r)
		}
		// Destroy dependents before their dependencies.
		sort.Slice(leaked, func(i, j int) bool {
			return leaked[i].id > leaked[j].id
		})
		for _, r := range leaked {
			d.logger().Warn("gpu: leaked resource", "kind", r.kind, "id", r.id, "refs", r.refs.Load())
			r.destroy()
			delete(d.live, r.id)
		}
		d.backend.Release()
		return nil
	})
	d.closed.Store(true)
	if d.thread != nil {
		d.thread.stop()
	}
	d.logger().Info("gpu: device closed")
	return err
}
