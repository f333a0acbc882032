// SPDX-License-Identifier: Unlicense OR MIT

package f32

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectangle(t *testing.T) {
	r := Rect(4, 3, 0, 1)
	assert.Equal(t, Rectangle{Min: Pt(0, 1), Max: Pt(4, 3)}, r)
	assert.Equal(t, Pt(4, 2), r.Size())
	assert.False(t, r.Empty())

	s := Rect(2, 0, 6, 2)
	assert.Equal(t, Rect(2, 1, 4, 2), r.Intersect(s))
	assert.Equal(t, Rect(0, 0, 6, 3), r.Union(s))
	assert.True(t, Rect(3, 3, 6, 6).Intersect(r).Empty())

	assert.Equal(t, Rect(1, 2, 5, 4), r.Add(Pt(1, 1)))
	assert.Equal(t, r, r.Add(Pt(1, 1)).Sub(Pt(1, 1)))
	assert.Equal(t, Rect(0, 2, 8, 6), r.Scale(2, 2))
}

func TestPoint(t *testing.T) {
	p := Pt(3, 4)
	assert.Equal(t, float32(5), p.Len())
	assert.Equal(t, Pt(1.5, 2), p.Div(2))
	assert.Equal(t, image.Pt(3, 4), Pt(2.6, 4.4).Round())

	r := Rect(0, 0, 3, 4)
	assert.True(t, Pt(0, 0).In(r))
	assert.False(t, p.In(r), "Max is exclusive")
}

func TestImageConversion(t *testing.T) {
	ir := image.Rect(1, 2, 3, 4)
	r := FromImage(ir)
	assert.Equal(t, Rect(1, 2, 3, 4), r)
	assert.Equal(t, Pt(1, 2), FromImagePoint(ir.Min))
	c := r.Corners()
	assert.Equal(t, [4]Point{Pt(1, 2), Pt(3, 2), Pt(3, 4), Pt(1, 4)}, c)
}
