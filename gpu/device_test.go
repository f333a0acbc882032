// SPDX-License-Identifier: Unlicense OR MIT

package gpu_test

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neocogi.org/gpu"
	"neocogi.org/gpu/gputest"
)

type vertex struct {
	Pos [2]float32
}

func newDevice(t *testing.T) (*gpu.Device, *gputest.Backend) {
	t.Helper()
	b := gputest.New()
	d, err := gpu.NewDevice(gputest.API(b))
	require.NoError(t, err)
	return d, b
}

type triangle struct {
	pipe *gpu.Pipeline
	vb   *gpu.Buffer
}

func newTriangle(t *testing.T, d *gpu.Device, idx gpu.IndexType) triangle {
	t.Helper()
	sh, err := d.NewShader(gpu.ShaderDesc{
		VertexSource:   "vs",
		FragmentSource: "fs",
		Attributes:     [][]string{gpu.AttributeNames(vertex{}, "")},
	})
	require.NoError(t, err)
	defer sh.Release()
	pipe, err := d.NewPipeline(gpu.PipelineDesc{
		Shader:    sh,
		Primitive: gpu.Triangles,
		Buffers:   []gpu.VertexBufferLayout{gpu.MustLayoutOf(vertex{})},
		IndexType: idx,
	})
	require.NoError(t, err)
	vb, err := d.NewBuffer(gpu.BufferDesc{Kind: gpu.VertexBuffer, Usage: gpu.Dynamic, Size: 3 * 8})
	require.NoError(t, err)
	return triangle{pipe: pipe, vb: vb}
}

func (tr triangle) bindings() gpu.Bindings {
	return gpu.Bindings{VertexBuffers: []*gpu.Buffer{tr.vb}}
}

func (tr triangle) release() {
	tr.pipe.Release()
	tr.vb.Release()
}

func passDesc(w, h int) gpu.PassDesc {
	return gpu.PassDesc{Width: w, Height: h, Color: gpu.ClearAll(color.RGBA{A: 0xff})}
}

var skipCreate = []string{"NewBuffer", "NewTexture", "NewRenderTarget", "NewShader", "NewPipeline", "NewFramebuffer", "Release"}

func TestUpdatesRunBeforeDraws(t *testing.T) {
	d, b := newDevice(t)
	defer d.Close()
	tr := newTriangle(t, d, gpu.IndexNone)
	defer tr.release()

	p := gpu.NewPass(passDesc(64, 64))
	require.NoError(t, p.Draw(tr.pipe, tr.bindings(), nil, 1, 0))
	verts := []vertex{{Pos: [2]float32{0, 1}}, {Pos: [2]float32{-1, -1}}, {Pos: [2]float32{1, -1}}}
	require.NoError(t, p.UpdateBuffer(tr.vb, 0, gpu.Bytes(verts)))
	// Recording copies the data.
	verts[0].Pos[1] = 42
	p.Viewport(0, 0, 64, 64)
	require.NoError(t, p.Draw(tr.pipe, tr.bindings(), nil, 1, 2))

	require.NoError(t, d.SubmitPass(p))
	require.NoError(t, d.Flush())

	assert.Equal(t, []string{"UpdateBuffer", "BeginPass", "Draw", "Viewport", "Draw", "EndPass"}, b.Ops(skipCreate...))
	want := gpu.Bytes([]vertex{{Pos: [2]float32{0, 1}}, {Pos: [2]float32{-1, -1}}, {Pos: [2]float32{1, -1}}})
	assert.Equal(t, want, b.Data(int(tr.vb.ID())))

	var draws []gputest.Call
	for _, c := range b.Calls() {
		if c.Op == "Draw" {
			draws = append(draws, c)
		}
	}
	require.Len(t, draws, 2)
	assert.Equal(t, "first=0 count=3 instances=1", draws[0].Detail)
	assert.Equal(t, "first=0 count=3 instances=2", draws[1].Detail)
}

func TestAppendToSelf(t *testing.T) {
	d, b := newDevice(t)
	defer d.Close()
	tr := newTriangle(t, d, gpu.IndexNone)

	p := gpu.NewPass(passDesc(8, 8))
	require.NoError(t, p.UpdateBuffer(tr.vb, 0, make([]byte, 8)))
	require.NoError(t, p.Draw(tr.pipe, tr.bindings(), nil, 1, 1))
	p.Append(p)
	updates, draws := p.Len()
	assert.Equal(t, 1, updates)
	assert.Equal(t, 1, draws)

	// The pass still holds its references; once it executed every
	// object is reclaimed.
	tr.release()
	require.NoError(t, d.SubmitPass(p))
	require.NoError(t, d.Flush())
	assert.Equal(t, []string{"UpdateBuffer", "BeginPass", "Draw", "EndPass"}, b.Ops(skipCreate...))
	assert.Empty(t, b.Live())
}

func TestPassesRunInSubmissionOrder(t *testing.T) {
	d, b := newDevice(t)
	defer d.Close()

	q := new(gpu.Queue)
	q.Add(gpu.NewPass(passDesc(1, 1)), gpu.NewPass(passDesc(2, 2)))
	require.NoError(t, d.Submit(q))
	assert.Equal(t, 0, q.Len())
	require.NoError(t, d.SubmitPass(gpu.NewPass(passDesc(3, 3))))
	assert.Equal(t, 3, d.Stats().Pending)
	require.NoError(t, d.Flush())

	var sizes []string
	for _, c := range b.Calls() {
		if c.Op == "BeginPass" {
			sizes = append(sizes, c.Detail)
		}
	}
	assert.Equal(t, []string{"1x1 clear=true", "2x2 clear=true", "3x3 clear=true"}, sizes)
	assert.Equal(t, 3, d.Stats().Executed)
}

func TestPendingPassKeepsResources(t *testing.T) {
	d, b := newDevice(t)
	defer d.Close()
	tr := newTriangle(t, d, gpu.IndexNone)

	p := gpu.NewPass(passDesc(8, 8))
	require.NoError(t, p.Draw(tr.pipe, tr.bindings(), nil, 1, 1))
	require.NoError(t, d.SubmitPass(p))
	tr.release()

	// Creating a resource collects garbage; the pending pass keeps
	// the released handles alive.
	extra, err := d.NewBuffer(gpu.BufferDesc{Kind: gpu.IndexBuffer, Usage: gpu.Streamed, Size: 4})
	require.NoError(t, err)
	defer extra.Release()
	assert.Contains(t, b.Live(), int(tr.vb.ID()))
	assert.Equal(t, 1, d.Stats().Live[gpu.KindPipeline])

	require.NoError(t, d.Flush())
	assert.Equal(t, []string{"BeginPass", "Draw", "EndPass"}, b.Ops(skipCreate...))
	assert.NotContains(t, b.Live(), int(tr.vb.ID()))
	s := d.Stats()
	assert.Zero(t, s.Live[gpu.KindPipeline])
	assert.Zero(t, s.Live[gpu.KindShader])
	assert.Equal(t, 1, s.Live[gpu.KindBuffer])
	assert.Equal(t, 3, s.Reclaimed)
}

func TestRecordReleasedResource(t *testing.T) {
	d, _ := newDevice(t)
	defer d.Close()
	buf, err := d.NewBuffer(gpu.BufferDesc{Kind: gpu.VertexBuffer, Usage: gpu.Dynamic, Size: 16})
	require.NoError(t, err)
	buf.Release()

	p := gpu.NewPass(passDesc(1, 1))
	err = p.UpdateBuffer(buf, 0, make([]byte, 4))
	assert.ErrorIs(t, err, gpu.ErrReleased)
	assert.Panics(t, buf.Release)
}

func TestBufferUpdateValidation(t *testing.T) {
	d, _ := newDevice(t)
	defer d.Close()
	static, err := d.NewBuffer(gpu.BufferDesc{Kind: gpu.VertexBuffer, Usage: gpu.Static, Data: make([]byte, 8)})
	require.NoError(t, err)
	defer static.Release()
	assert.Equal(t, 8, static.Size())
	dyn, err := d.NewBuffer(gpu.BufferDesc{Kind: gpu.VertexBuffer, Usage: gpu.Dynamic, Size: 8})
	require.NoError(t, err)
	defer dyn.Release()

	p := gpu.NewPass(passDesc(1, 1))
	assert.ErrorIs(t, p.UpdateBuffer(static, 0, make([]byte, 4)), gpu.ErrStaticBuffer)
	assert.ErrorIs(t, p.UpdateBuffer(dyn, 6, make([]byte, 4)), gpu.ErrOutOfBounds)
	assert.ErrorIs(t, p.UpdateBuffer(dyn, -1, nil), gpu.ErrOutOfBounds)
	assert.NoError(t, p.UpdateBuffer(dyn, 4, make([]byte, 4)))
	n, _ := p.Len()
	assert.Equal(t, 1, n)
	p.Reset()

	_, err = d.NewBuffer(gpu.BufferDesc{Kind: gpu.VertexBuffer, Usage: gpu.Static, Size: 8})
	assert.ErrorIs(t, err, gpu.ErrInvalidDesc)
	_, err = d.NewBuffer(gpu.BufferDesc{Kind: gpu.VertexBuffer, Usage: gpu.Dynamic, Size: 2, Data: make([]byte, 4)})
	assert.ErrorIs(t, err, gpu.ErrOutOfBounds)
}

func TestTextureUpdateValidation(t *testing.T) {
	d, b := newDevice(t)
	defer d.Close()
	_, err := d.NewTexture(gpu.TextureDesc{Width: 2, Height: 2, Format: gpu.RGBA8, Pixels: make([]byte, 3)})
	assert.ErrorIs(t, err, gpu.ErrPayloadSize)
	_, err = d.NewTexture(gpu.TextureDesc{Width: 8192, Height: 2, Format: gpu.RGBA8})
	assert.ErrorIs(t, err, gpu.ErrInvalidDesc)

	tex, err := d.NewTexture(gpu.TextureDesc{Width: 2, Height: 2, Format: gpu.R8})
	require.NoError(t, err)
	defer tex.Release()
	p := gpu.NewPass(passDesc(1, 1))
	assert.ErrorIs(t, p.UpdateTexture(tex, make([]byte, 16)), gpu.ErrPayloadSize)
	require.NoError(t, p.UpdateTexture(tex, []byte{1, 2, 3, 4}))
	require.NoError(t, d.Render(&gpu.Queue{}))
	q := new(gpu.Queue)
	q.Add(p)
	require.NoError(t, d.Render(q))
	assert.Equal(t, []byte{1, 2, 3, 4}, b.Data(int(tex.ID())))
}

func TestDrawValidation(t *testing.T) {
	d, _ := newDevice(t)
	defer d.Close()
	tr := newTriangle(t, d, gpu.IndexNone)
	defer tr.release()
	indexed := newTriangle(t, d, gpu.IndexUInt16)
	defer indexed.release()
	ib, err := d.NewBuffer(gpu.BufferDesc{Kind: gpu.IndexBuffer, Usage: gpu.Static, Data: gpu.Bytes([]uint16{0, 1, 2})})
	require.NoError(t, err)
	defer ib.Release()

	p := gpu.NewPass(passDesc(1, 1))
	assert.ErrorIs(t, p.Draw(tr.pipe, tr.bindings(), nil, 2, 1), gpu.ErrOutOfBounds)
	assert.ErrorIs(t, p.Draw(tr.pipe, gpu.Bindings{}, nil, 1, 1), gpu.ErrBindings)
	assert.ErrorIs(t, p.Draw(indexed.pipe, indexed.bindings(), nil, 1, 1), gpu.ErrIndexType)
	withIndex := tr.bindings()
	withIndex.IndexBuffer = ib
	assert.ErrorIs(t, p.Draw(tr.pipe, withIndex, nil, 1, 1), gpu.ErrIndexType)

	b := indexed.bindings()
	b.IndexBuffer = ib
	assert.NoError(t, p.Draw(indexed.pipe, b, nil, 1, 1))
	assert.ErrorIs(t, p.DrawRange(gpu.DrawCommand{Pipeline: indexed.pipe, Bindings: b, First: 1, Primitives: 1}), gpu.ErrOutOfBounds)
	_, n := p.Len()
	assert.Equal(t, 1, n)
	p.Reset()
}

func TestUniformValidation(t *testing.T) {
	d, _ := newDevice(t)
	defer d.Close()
	type uniforms struct {
		MVP   [16]float32 `gpu:"uMVP"`
		Color [4]float32  `gpu:"uColor"`
	}
	us := gpu.MustUniformsOf(uniforms{})
	sh, err := d.NewShader(gpu.ShaderDesc{
		VertexSource:   "vs",
		FragmentSource: "fs",
		Attributes:     [][]string{{"pos"}},
		Uniforms:       gpu.UniformNames(us),
	})
	require.NoError(t, err)
	defer sh.Release()

	_, err = d.NewPipeline(gpu.PipelineDesc{Shader: sh, Buffers: []gpu.VertexBufferLayout{gpu.MustLayoutOf(vertex{})}})
	assert.ErrorIs(t, err, gpu.ErrInvalidDesc)
	pipe, err := d.NewPipeline(gpu.PipelineDesc{
		Shader:    sh,
		Primitive: gpu.Points,
		Buffers:   []gpu.VertexBufferLayout{gpu.MustLayoutOf(vertex{})},
		Uniforms:  us,
	})
	require.NoError(t, err)
	defer pipe.Release()
	assert.Equal(t, 80, pipe.UniformSize())

	vb, err := d.NewBuffer(gpu.BufferDesc{Kind: gpu.VertexBuffer, Usage: gpu.Dynamic, Size: 8})
	require.NoError(t, err)
	defer vb.Release()
	p := gpu.NewPass(passDesc(1, 1))
	bind := gpu.Bindings{VertexBuffers: []*gpu.Buffer{vb}}
	assert.ErrorIs(t, p.Draw(pipe, bind, make([]byte, 64), 1, 1), gpu.ErrUniformSize)
	assert.NoError(t, p.Draw(pipe, bind, gpu.Bytes(&uniforms{}), 1, 1))
	p.Reset()
}

func TestFailedPassDropsTheRest(t *testing.T) {
	d, b := newDevice(t)
	defer d.Close()
	tr := newTriangle(t, d, gpu.IndexNone)

	q := new(gpu.Queue)
	for i := 0; i < 3; i++ {
		p := gpu.NewPass(passDesc(4, 4))
		require.NoError(t, p.Draw(tr.pipe, tr.bindings(), nil, 1, 1))
		q.Add(p)
	}
	tr.release()
	require.NoError(t, d.Submit(q))

	b.Reset()
	b.FailNext("Draw", nil)
	b.FailNext("Draw", nil)
	err := d.Flush()
	var perr *gpu.PassError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 0, perr.Index)
	assert.Equal(t, 2, perr.Dropped)
	assert.ErrorIs(t, err, gputest.ErrInjected)
	assert.Equal(t, []string{"BeginPass", "EndPass"}, b.Ops(skipCreate...))

	s := d.Stats()
	assert.Equal(t, 2, s.Dropped)
	assert.Zero(t, s.Pending)
	assert.Zero(t, s.Live[gpu.KindPipeline])
	assert.Zero(t, s.Live[gpu.KindBuffer])

	// The next flush starts clean.
	require.NoError(t, d.SubmitPass(gpu.NewPass(passDesc(1, 1))))
	assert.NoError(t, d.Flush())
}

func TestSubmitIsAllOrNothing(t *testing.T) {
	d, _ := newDevice(t)
	defer d.Close()
	good := gpu.NewPass(passDesc(1, 1))
	good.Viewport(0, 0, 1, 1)
	q := new(gpu.Queue)
	q.Add(good, gpu.NewPass(gpu.PassDesc{}))
	err := d.Submit(q)
	assert.ErrorIs(t, err, gpu.ErrInvalidDesc)
	assert.Zero(t, d.Stats().Pending)
	_, n := good.Len()
	assert.Equal(t, 1, n)
	assert.Equal(t, 2, q.Len())
	q.Reset()
	assert.Zero(t, q.Len())
}

func TestFramebufferPass(t *testing.T) {
	d, b := newDevice(t)
	defer d.Close()
	fb, err := d.NewColorNormalDepthFramebuffer(32, 16)
	require.NoError(t, err)
	assert.Equal(t, 32, fb.Width())
	assert.Equal(t, gpu.RGBA32F, fb.Desc().Color[1].Format())
	assert.Equal(t, gpu.D32, fb.Desc().Depth.Format())
	s := d.Stats()
	assert.Equal(t, 2, s.Live[gpu.KindTexture])
	assert.Equal(t, 1, s.Live[gpu.KindRenderTarget])

	p := gpu.NewPass(gpu.PassDesc{Width: 32, Height: 16, Framebuffer: fb, Depth: gpu.ClearDepth(1)})
	require.NoError(t, d.SubmitPass(p))
	fb.Release()
	require.NoError(t, d.Flush())

	var begin gputest.Call
	for _, c := range b.Calls() {
		if c.Op == "BeginPass" {
			begin = c
		}
	}
	assert.Equal(t, int(fb.ID()), begin.ID)
	s = d.Stats()
	assert.Zero(t, s.Live[gpu.KindFramebuffer])
	assert.Zero(t, s.Live[gpu.KindTexture])
	assert.Zero(t, s.Live[gpu.KindRenderTarget])
}

func TestFramebufferValidation(t *testing.T) {
	d, _ := newDevice(t)
	defer d.Close()
	a, err := d.NewTexture(gpu.TextureDesc{Width: 4, Height: 4, Format: gpu.RGBA8})
	require.NoError(t, err)
	defer a.Release()
	c, err := d.NewTexture(gpu.TextureDesc{Width: 8, Height: 4, Format: gpu.RGBA8})
	require.NoError(t, err)
	defer c.Release()
	depth, err := d.NewRenderTarget(gpu.RenderTargetDesc{Width: 4, Height: 4, Format: gpu.D24S8})
	require.NoError(t, err)
	defer depth.Release()

	_, err = d.NewFramebuffer(gpu.FramebufferDesc{})
	assert.ErrorIs(t, err, gpu.ErrInvalidDesc)
	_, err = d.NewFramebuffer(gpu.FramebufferDesc{Color: [4]gpu.Attachment{gpu.TextureAttachment(a), gpu.TextureAttachment(c)}})
	assert.ErrorIs(t, err, gpu.ErrInvalidDesc)
	_, err = d.NewFramebuffer(gpu.FramebufferDesc{Depth: gpu.TextureAttachment(a)})
	assert.ErrorIs(t, err, gpu.ErrInvalidDesc)
	_, err = d.NewFramebuffer(gpu.FramebufferDesc{Color: [4]gpu.Attachment{gpu.RenderTargetAttachment(depth)}})
	assert.ErrorIs(t, err, gpu.ErrInvalidDesc)
	assert.Equal(t, 1, a.RefCount())

	fb, err := d.NewFramebuffer(gpu.FramebufferDesc{
		Color: [4]gpu.Attachment{gpu.TextureAttachment(a)},
		Depth: gpu.RenderTargetAttachment(depth),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, a.RefCount())
	fb.Release()
	require.NoError(t, d.Flush())
	assert.Equal(t, 1, a.RefCount())
}

func TestScreenQuad(t *testing.T) {
	d, b := newDevice(t)
	defer d.Close()
	sq, err := d.NewScreenQuad()
	require.NoError(t, err)
	defer sq.Release()
	tex, err := d.NewTexture(gpu.TextureDesc{Width: 2, Height: 2, Format: gpu.RGBA8U})
	require.NoError(t, err)
	defer tex.Release()
	depth, err := d.NewTexture(gpu.TextureDesc{Width: 2, Height: 2, Format: gpu.D16})
	require.NoError(t, err)
	defer depth.Release()

	p := gpu.NewPass(passDesc(2, 2))
	assert.ErrorIs(t, sq.Draw(p, depth), gpu.ErrBindings)
	require.NoError(t, sq.Draw(p, tex))
	require.NoError(t, d.SubmitPass(p))
	require.NoError(t, d.Flush())
	var draw gputest.Call
	for _, c := range b.Calls() {
		if c.Op == "Draw" {
			draw = c
		}
	}
	assert.Equal(t, "first=0 count=6 instances=1", draw.Detail)
}

func TestShaderError(t *testing.T) {
	d, b := newDevice(t)
	defer d.Close()
	b.FailNext("NewShader", &gpu.ShaderError{Stage: "fragment", Log: "syntax error"})
	_, err := d.NewShader(gpu.ShaderDesc{VertexSource: "vs", FragmentSource: "fs"})
	var serr *gpu.ShaderError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "fragment", serr.Stage)
	assert.Contains(t, err.Error(), "fragment shader: syntax error")

	_, err = d.NewShader(gpu.ShaderDesc{VertexSource: "vs"})
	assert.ErrorIs(t, err, gpu.ErrInvalidDesc)
}

func TestClose(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	b := gputest.New()
	d, err := gpu.NewDevice(gputest.API(b), gpu.WithLogger(log))
	require.NoError(t, err)
	tr := newTriangle(t, d, gpu.IndexNone)
	p := gpu.NewPass(passDesc(1, 1))
	require.NoError(t, p.Draw(tr.pipe, tr.bindings(), nil, 1, 1))
	require.NoError(t, d.SubmitPass(p))

	require.NoError(t, d.Close())
	assert.True(t, b.Released())
	assert.Empty(t, b.Live())
	assert.Equal(t, 1, d.Stats().Dropped)
	assert.Contains(t, buf.String(), "gpu: device created")
	assert.Contains(t, buf.String(), "gpu: leaked resource")
	assert.Contains(t, buf.String(), "gpu: dropping pending passes")

	// Handles outlive the device harmlessly.
	tr.release()
	tr.vb.Retain()
	_, err = d.NewBuffer(gpu.BufferDesc{Kind: gpu.VertexBuffer, Usage: gpu.Dynamic, Size: 4})
	assert.ErrorIs(t, err, gpu.ErrClosed)
	assert.ErrorIs(t, d.Flush(), gpu.ErrClosed)
	assert.ErrorIs(t, d.SubmitPass(gpu.NewPass(passDesc(1, 1))), gpu.ErrClosed)
	assert.ErrorIs(t, d.Close(), gpu.ErrClosed)
}

func TestPackageLogger(t *testing.T) {
	var buf bytes.Buffer
	gpu.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer gpu.SetLogger(nil)
	d, _ := newDevice(t)
	d.Close()
	assert.Contains(t, buf.String(), "renderer=gputest")
	assert.Contains(t, buf.String(), "gpu: device closed")

	gpu.SetLogger(nil)
	assert.False(t, gpu.Logger().Enabled(context.Background(), slog.LevelError))
}

type fakeContext struct {
	mu       sync.Mutex
	current  int
	released int
}

func (c *fakeContext) MakeCurrent() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current++
	return nil
}

func (c *fakeContext) ReleaseCurrent() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.released++
}

type failingContext struct{}

var errNoContext = errors.New("no context")

func (failingContext) MakeCurrent() error { return errNoContext }
func (failingContext) ReleaseCurrent()    {}

func TestContextThread(t *testing.T) {
	ctx := new(fakeContext)
	d, err := gpu.NewDevice(gputest.API(gputest.New()), gpu.WithContext(ctx))
	require.NoError(t, err)
	buf, err := d.NewBuffer(gpu.BufferDesc{Kind: gpu.VertexBuffer, Usage: gpu.Dynamic, Size: 4})
	require.NoError(t, err)
	buf.Release()
	ran := false
	require.NoError(t, d.Do(func() error {
		ran = true
		return nil
	}))
	assert.True(t, ran)
	require.NoError(t, d.Close())
	assert.Equal(t, 1, ctx.current)
	assert.Equal(t, 1, ctx.released)

	_, err = gpu.NewDevice(gputest.API(gputest.New()), gpu.WithContext(failingContext{}))
	assert.ErrorIs(t, err, errNoContext)
}

func TestConcurrentSubmit(t *testing.T) {
	d, b := newDevice(t)
	defer d.Close()
	tr := newTriangle(t, d, gpu.IndexNone)
	defer tr.release()

	const workers, frames = 4, 25
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := gpu.NewPass(passDesc(4, 4))
			for i := 0; i < frames; i++ {
				if err := p.Draw(tr.pipe, tr.bindings(), nil, 1, 1); err != nil {
					t.Error(err)
					return
				}
				if err := d.SubmitPass(p); err != nil {
					t.Error(err)
					return
				}
				if i%5 == 0 {
					if err := d.Flush(); err != nil {
						t.Error(err)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	require.NoError(t, d.Flush())
	assert.Equal(t, workers*frames, d.Stats().Executed)
	draws := 0
	for _, op := range b.Ops() {
		if op == "Draw" {
			draws++
		}
	}
	assert.Equal(t, workers*frames, draws)
	assert.Equal(t, 1, tr.vb.RefCount())
}

func TestNoBackend(t *testing.T) {
	_, err := gpu.NewDevice(gpu.OpenGL{})
	assert.Error(t, err)
}
