// SPDX-License-Identifier: Unlicense OR MIT

package ui

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestButton(t *testing.T) {
	c := NewContext(testFont{})
	var presses []bool
	body := func() {
		presses = append(presses, c.Button("ok"))
	}
	click(c, 20, 10, body)
	assert.Equal(t, []bool{false, false, true}, presses)
	assert.NotZero(t, c.Focus())

	frame(c, body)
	c.InputMouseUp(20, 10, MouseLeft)
	frame(c, body)
	assert.Equal(t, []bool{false, false, true, false, false}, presses)
	assert.Zero(t, c.Focus())

	// Buttons draw their label centered.
	texts := commandsOf(c, CommandText)
	assert.Equal(t, "ok", texts[0].Text)
	assert.Equal(t, 5+(78-16)/2, texts[0].Rect.Min.X)
}

func TestButtonOutsideHoverRoot(t *testing.T) {
	c := NewContext(testFont{})
	pressed := false
	c.InputMouseMove(400, 10)
	for i := 0; i < 3; i++ {
		frame(c, func() {
			// A cell outside of the window.
			c.LayoutSetNext(xywh(390, 0, 50, 20), false)
			pressed = pressed || c.Button("far")
		})
		c.InputMouseDown(400, 10, MouseLeft)
	}
	assert.False(t, pressed)
}

func TestCheckbox(t *testing.T) {
	c := NewContext(testFont{})
	state := false
	var res Res
	body := func() {
		res = c.Checkbox("check", &state)
	}
	click(c, 10, 10, body)
	assert.True(t, state)
	assert.True(t, res.Has(ResChange))
	assert.NotEmpty(t, commandsOf(c, CommandIcon))

	frame(c, body)
	assert.True(t, state)
	assert.Zero(t, res)
}

func TestTextbox(t *testing.T) {
	c := NewContext(testFont{})
	buf := "ab"
	var res Res
	body := func() {
		res = c.Textbox(&buf)
	}
	click(c, 20, 10, body)
	c.InputMouseUp(20, 10, MouseLeft)
	frame(c, body)
	// Textboxes keep the focus after the button is released.
	assert.NotZero(t, c.Focus())

	c.InputText("cé")
	frame(c, body)
	assert.Equal(t, "abcé", buf)
	assert.True(t, res.Has(ResChange))

	c.InputKeyDown(KeyBackspace)
	frame(c, body)
	assert.Equal(t, "abc", buf)
	c.InputKeyUp(KeyBackspace)
	frame(c, body)
	assert.Equal(t, "abc", buf)
	assert.Zero(t, res)

	c.InputKeyDown(KeyReturn)
	frame(c, body)
	assert.True(t, res.Has(ResSubmit))
	assert.Zero(t, c.Focus())

	// Without focus, typing does nothing.
	c.InputText("x")
	frame(c, body)
	assert.Equal(t, "abc", buf)
}

func TestSlider(t *testing.T) {
	c := NewContext(testFont{})
	v := float32(10)
	var res Res
	body := func() {
		c.LayoutRow(0, 200)
		res = c.Slider(&v, 0, 100)
	}
	frame(c, body)
	assert.Equal(t, float32(10), v)
	assert.Equal(t, "10.00", commandsOf(c, CommandText)[0].Text)

	click(c, 105, 10, body)
	assert.Equal(t, float32(50), v)
	assert.True(t, res.Has(ResChange))

	// Dragging past the end clamps.
	c.InputMouseMove(400, 10)
	frame(c, body)
	assert.Equal(t, float32(100), v)
	c.InputMouseUp(400, 10, MouseLeft)
	frame(c, body)
	assert.Equal(t, float32(100), v)
	assert.Zero(t, res)
}

func TestSliderStep(t *testing.T) {
	c := NewContext(testFont{})
	v := float32(0)
	body := func() {
		c.LayoutRow(0, 200)
		c.SliderEx(&v, 0, 10, 2.5, "%.1f", 0)
	}
	// 37/200 of the range is 1.85, rounded to the nearest step.
	click(c, 42, 10, body)
	assert.Equal(t, float32(2.5), v)
}

func TestSliderEmptyRange(t *testing.T) {
	c := NewContext(testFont{})
	v := float32(3)
	var base image.Rectangle
	body := func() {
		c.LayoutRow(0, 200)
		c.Slider(&v, 5, 5)
		base = c.LastRect()
	}
	click(c, 105, 10, body)
	c.InputMouseMove(150, 10)
	frame(c, body)
	assert.Equal(t, float32(5), v)
	// The thumb stays at the start of the slider.
	for _, cmd := range commandsOf(c, CommandRect) {
		if cmd.Rect.Overlaps(base) && cmd.Rect.Dy() <= base.Dy()+2 {
			assert.GreaterOrEqual(t, cmd.Rect.Min.X, base.Min.X-1, cmd.Rect)
			assert.LessOrEqual(t, cmd.Rect.Max.X, base.Max.X+1, cmd.Rect)
		}
	}
}

func TestNumberDrag(t *testing.T) {
	c := NewContext(testFont{})
	v := float32(1)
	body := func() {
		c.Number(&v, 0.5)
	}
	click(c, 20, 10, body)
	c.InputMouseMove(30, 10)
	frame(c, body)
	assert.Equal(t, float32(6), v)
}

func TestNumberTextEdit(t *testing.T) {
	c := NewContext(testFont{})
	v := float32(50)
	body := func() {
		c.LayoutRow(0, 200)
		c.Slider(&v, 0, 100)
	}
	c.InputKeyDown(KeyShift)
	click(c, 20, 10, body)
	c.InputMouseUp(20, 10, MouseLeft)
	c.InputKeyUp(KeyShift)
	frame(c, body)
	// The value is edited as text and not changed by the click.
	assert.Equal(t, float32(50), v)
	assert.Equal(t, "50", commandsOf(c, CommandText)[0].Text)

	for i := 0; i < 2; i++ {
		c.InputKeyDown(KeyBackspace)
		frame(c, body)
	}
	c.InputText("7")
	c.InputKeyDown(KeyReturn)
	frame(c, body)
	assert.Equal(t, float32(7), v)

	// Back to the slider.
	frame(c, body)
	assert.Equal(t, "7.00", commandsOf(c, CommandText)[0].Text)
}

func TestNumberInvalidText(t *testing.T) {
	c := NewContext(testFont{})
	v := float32(3)
	body := func() {
		c.Number(&v, 1)
	}
	c.InputKeyDown(KeyShift)
	click(c, 20, 10, body)
	c.InputMouseUp(20, 10, MouseLeft)
	c.InputKeyUp(KeyShift)
	c.InputText("x")
	c.InputKeyDown(KeyReturn)
	frame(c, body)
	assert.Equal(t, float32(3), v)
}

func TestHeader(t *testing.T) {
	c := NewContext(testFont{})
	var res Res
	body := func() {
		res = c.Header("section", 0)
	}
	frame(c, body)
	assert.False(t, res.Has(ResActive))
	assert.Equal(t, IconCollapsed, commandsOf(c, CommandIcon)[0].Icon)

	click(c, 100, 10, body)
	// The click takes effect in the next frame.
	assert.False(t, res.Has(ResActive))
	frame(c, body)
	assert.True(t, res.Has(ResActive))
	assert.Equal(t, IconExpanded, commandsOf(c, CommandIcon)[0].Icon)

	c.InputMouseUp(100, 10, MouseLeft)
	frame(c, body)
	c.InputMouseDown(100, 10, MouseLeft)
	frame(c, body)
	frame(c, body)
	assert.False(t, res.Has(ResActive))
}

func TestTreeNode(t *testing.T) {
	c := NewContext(testFont{})
	var indent int
	var open Res
	body := func() {
		open = c.BeginTreeNode("node", OptExpanded)
		if open.Has(ResActive) {
			indent = c.Indent()
			c.Label("child")
			c.EndTreeNode()
		}
	}
	frame(c, body)
	assert.True(t, open.Has(ResActive))
	assert.Equal(t, c.Style.Indent, indent)
	labels := commandsOf(c, CommandText)
	assert.Equal(t, "child", labels[len(labels)-1].Text)
	assert.Equal(t, 5+c.Style.Indent+c.Style.Padding, labels[len(labels)-1].Rect.Min.X)

	// Collapsing an initially expanded node.
	click(c, 100, 10, body)
	frame(c, body)
	assert.False(t, open.Has(ResActive))
}
