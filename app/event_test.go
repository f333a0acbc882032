// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"image"
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"

	"neocogi.org/ui"
)

type font struct{}

func (font) TextWidth(s string) int { return 8 * len(s) }
func (font) LineHeight() int        { return 10 }

func TestKeyOf(t *testing.T) {
	tests := []struct {
		key  glfw.Key
		want ui.Key
		ok   bool
	}{
		{glfw.KeyLeftShift, ui.KeyShift, true},
		{glfw.KeyRightControl, ui.KeyCtrl, true},
		{glfw.KeyLeftAlt, ui.KeyAlt, true},
		{glfw.KeyBackspace, ui.KeyBackspace, true},
		{glfw.KeyKPEnter, ui.KeyReturn, true},
		{glfw.KeyA, 0, false},
	}
	for _, test := range tests {
		k, ok := KeyOf(test.key)
		assert.Equal(t, test.want, k)
		assert.Equal(t, test.ok, ok)
	}
}

func TestButtonOf(t *testing.T) {
	b, ok := ButtonOf(glfw.MouseButtonMiddle)
	assert.True(t, ok)
	assert.Equal(t, ui.MouseMiddle, b)
	_, ok = ButtonOf(glfw.MouseButton4)
	assert.False(t, ok)
}

func TestFeed(t *testing.T) {
	c := ui.NewContext(font{})
	Feed(c, []Event{
		{Kind: EventMove, Pos: image.Pt(10, 20)},
		{Kind: EventButton, Pos: image.Pt(11, 21), Button: glfw.MouseButtonRight, Action: glfw.Press},
		{Kind: EventButton, Pos: image.Pt(11, 21), Button: glfw.MouseButton5, Action: glfw.Press},
		{Kind: EventScroll, ScrollY: 1},
		{Kind: EventKey, Key: glfw.KeyLeftShift, Action: glfw.Press},
		{Kind: EventChar, Char: 'é'},
		{Kind: EventResize, Size: image.Pt(100, 100)},
	})
	assert.Equal(t, image.Pt(11, 21), c.MousePos())
	assert.Equal(t, ui.MouseRight, c.MouseDown())
	assert.Equal(t, image.Pt(0, -scrollLine), c.ScrollDelta())

	Feed(c, []Event{{Kind: EventButton, Pos: image.Pt(12, 22), Button: glfw.MouseButtonRight, Action: glfw.Release}})
	assert.Zero(t, c.MouseDown())
	assert.Equal(t, ui.MouseRight, c.MousePressed())
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "scroll", EventScroll.String())
	assert.Panics(t, func() { _ = EventKind(99).String() })
}
