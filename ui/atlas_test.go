// SPDX-License-Identifier: Unlicense OR MIT

package ui

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coverage(img *image.Alpha, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.AlphaAt(x, y).A != 0 {
				n++
			}
		}
	}
	return n
}

func TestDefaultAtlas(t *testing.T) {
	a := DefaultAtlas()
	assert.Equal(t, 13, a.LineHeight())
	assert.Equal(t, 21, a.TextWidth("abc"))
	assert.Equal(t, image.Pt(7, 13), a.Glyph('A').Size())
	assert.Equal(t, a.Glyph('?'), a.Glyph('é'))
	assert.Equal(t, a.Glyph('?'), a.Glyph('\n'))
	assert.Equal(t, atlasWidth, a.Size().X)

	bounds := a.Image.Bounds()
	cells := []image.Rectangle{a.White()}
	for r := rune(firstRune); r <= lastRune; r++ {
		cells = append(cells, a.Glyph(r))
	}
	for i := IconClose; i < iconCount; i++ {
		cells = append(cells, a.Icon(i))
		assert.NotZero(t, coverage(a.Image, a.Icon(i)), "icon %d", i)
	}
	for i, c := range cells {
		assert.True(t, c.In(bounds), "cell %v", c)
		for _, o := range cells[i+1:] {
			assert.False(t, c.Overlaps(o), "%v overlaps %v", c, o)
		}
	}
	w := a.White()
	assert.Equal(t, w.Dx()*w.Dy(), coverage(a.Image, w))
	assert.NotZero(t, coverage(a.Image, a.Glyph('A')))
	assert.Zero(t, coverage(a.Image, a.Glyph(' ')))
}

func TestGoRegularAtlas(t *testing.T) {
	a, err := GoRegularAtlas(14)
	require.NoError(t, err)
	assert.Greater(t, a.LineHeight(), 10)
	assert.Less(t, a.TextWidth("iiii"), a.TextWidth("WWWW"))
	assert.NotZero(t, coverage(a.Image, a.Glyph('W')))
}
