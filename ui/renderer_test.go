// SPDX-License-Identifier: Unlicense OR MIT

package ui

import (
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neocogi.org/gpu"
	"neocogi.org/gpu/gputest"
)

func TestRendererRanges(t *testing.T) {
	r := &Renderer{atlas: DefaultAtlas()}
	red := color.RGBA{R: 0xff, A: 0xff}
	clip1 := image.Rect(10, 20, 110, 70)
	cmds := []Command{
		{Type: CommandRect, Rect: image.Rect(0, 0, 10, 10), Color: red},
		{Type: CommandClip, Rect: clip1},
		{Type: CommandRect, Rect: image.Rect(20, 20, 30, 30), Color: red},
		{Type: CommandText, Rect: image.Rect(40, 40, 54, 53), Text: "ab", Color: red},
		{Type: CommandClip, Rect: image.Rect(0, 0, 5, 5)},
		{Type: CommandClip, Rect: image.Rect(300, 200, 400, 300)},
		{Type: CommandIcon, Rect: image.Rect(300, 200, 324, 224), Icon: IconClose, Color: red},
	}
	screen := image.Rect(0, 0, 320, 240)
	r.build(cmds, screen)

	want := []drawRange{
		{clip: screen, first: 0, count: 6},
		{clip: clip1, first: 6, count: 18},
		{clip: image.Rect(300, 200, 320, 240), first: 24, count: 6},
	}
	assert.Equal(t, want, r.draws)
	require.Len(t, r.vertices, 20)
	require.Len(t, r.indices, 30)
	assert.Equal(t, []uint32{4, 5, 6, 6, 7, 4}, r.indices[6:12])

	v := r.vertices[0]
	assert.Equal(t, [2]float32{0, 0}, v.Position)
	assert.Equal(t, [4]uint8{0xff, 0, 0, 0xff}, v.Color)
	// Rectangles sample the inside of the white block.
	sz := r.atlas.Size()
	white := r.atlas.White().Inset(1)
	assert.Equal(t, [2]float32{float32(white.Min.X) / float32(sz.X), float32(white.Min.Y) / float32(sz.Y)}, v.UV)

	// Glyphs advance by their cell width.
	assert.Equal(t, [2]float32{40, 40}, r.vertices[8].Position)
	assert.Equal(t, [2]float32{47, 40}, r.vertices[12].Position)
	assert.Equal(t, [2]float32{54, 53}, r.vertices[14].Position)

	// Icons are centered in their rectangle.
	assert.Equal(t, [2]float32{304, 204}, r.vertices[16].Position)
}

func TestRendererFrame(t *testing.T) {
	b := gputest.New()
	d, err := gpu.NewDevice(gputest.API(b))
	require.NoError(t, err)
	defer d.Close()
	r, err := NewRenderer(d, DefaultAtlas())
	require.NoError(t, err)
	defer r.Release()

	c := NewContext(r.atlas)
	frame(c, func() {
		c.Button("ok")
	})
	p, err := r.Frame(c, nil, 320, 240)
	require.NoError(t, err)
	require.NoError(t, d.SubmitPass(p))
	require.NoError(t, d.Flush())

	skip := []string{"NewBuffer", "NewTexture", "NewShader", "NewPipeline", "Release"}
	assert.Equal(t, []string{"UpdateBuffer", "UpdateBuffer", "BeginPass", "Viewport", "Scissor", "Draw", "Scissor", "EndPass"}, b.Ops(skip...))
	var details []string
	for _, call := range b.Calls() {
		switch call.Op {
		case "BeginPass", "Scissor", "Draw":
			details = append(details, call.Detail)
		}
	}
	assert.Equal(t, []string{
		"320x240 clear=true",
		"0,0 320x240",
		fmt.Sprintf("first=0 count=%d instances=1", len(r.indices)),
		"0,0 320x240",
	}, details)
	assert.Equal(t, gpu.Bytes(r.indices), b.Data(int(r.ibuf.ID()))[:4*len(r.indices)])
}

func TestRendererScissorFlip(t *testing.T) {
	b := gputest.New()
	d, err := gpu.NewDevice(gputest.API(b))
	require.NoError(t, err)
	defer d.Close()
	r, err := NewRenderer(d, DefaultAtlas())
	require.NoError(t, err)
	defer r.Release()
	r.Keep = true

	c := NewContext(r.atlas)
	c.Begin()
	if c.BeginWindow("w", image.Rect(10, 20, 110, 70), OptNoTitle|OptNoScroll).Has(ResActive) {
		c.SetClip(image.Rect(10, 20, 110, 70))
		c.DrawRect(image.Rect(10, 20, 20, 30), color.RGBA{A: 0xff})
		c.EndWindow()
	}
	c.End()

	p, err := r.Frame(c, nil, 320, 240)
	require.NoError(t, err)
	require.NoError(t, d.SubmitPass(p))
	require.NoError(t, d.Flush())
	var scissors []string
	for _, call := range b.Calls() {
		switch call.Op {
		case "BeginPass", "Scissor":
			scissors = append(scissors, call.Detail)
		}
	}
	assert.Equal(t, []string{"320x240 clear=false", "0,0 320x240", "10,170 100x50", "0,0 320x240"}, scissors)
}

func TestRendererGrowsBuffers(t *testing.T) {
	b := gputest.New()
	d, err := gpu.NewDevice(gputest.API(b))
	require.NoError(t, err)
	defer d.Close()
	r, err := NewRenderer(d, DefaultAtlas())
	require.NoError(t, err)
	defer r.Release()
	size := r.vbuf.Size()

	c := NewContext(r.atlas)
	c.Begin()
	if c.BeginWindow("w", image.Rect(0, 0, 320, 240), OptNoTitle|OptNoScroll).Has(ResActive) {
		for i := 0; i < initialVertices; i++ {
			c.DrawRect(image.Rect(0, 0, 1, 1), color.RGBA{A: 0xff})
		}
		c.EndWindow()
	}
	c.End()
	p, err := r.Frame(c, nil, 320, 240)
	require.NoError(t, err)
	assert.Greater(t, r.vbuf.Size(), size)
	assert.GreaterOrEqual(t, r.ibuf.Size(), 4*len(r.indices))
	require.NoError(t, d.SubmitPass(p))
	require.NoError(t, d.Flush())
}
