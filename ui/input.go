// SPDX-License-Identifier: Unlicense OR MIT

package ui

import "image"

// MouseButton is a set of mouse buttons.
type MouseButton uint8

const (
	MouseLeft MouseButton = 1 << iota
	MouseRight
	MouseMiddle
)

// Key is a set of keys with a meaning to the widgets.
type Key uint8

const (
	KeyShift Key = 1 << iota
	KeyCtrl
	KeyAlt
	KeyBackspace
	KeyReturn
)

// InputMouseMove moves the mouse to (x, y).
func (c *Context) InputMouseMove(x, y int) {
	c.mousePos = image.Pt(x, y)
}

// InputMouseDown moves the mouse and presses btn.
func (c *Context) InputMouseDown(x, y int, btn MouseButton) {
	c.InputMouseMove(x, y)
	c.mouseDown |= btn
	c.mousePressed |= btn
}

// InputMouseUp moves the mouse and releases btn.
func (c *Context) InputMouseUp(x, y int, btn MouseButton) {
	c.InputMouseMove(x, y)
	c.mouseDown &^= btn
}

// InputScroll adds a scroll offset in pixels.
func (c *Context) InputScroll(x, y int) {
	c.scrollDelta = c.scrollDelta.Add(image.Pt(x, y))
}

func (c *Context) InputKeyDown(k Key) {
	c.keyPressed |= k
	c.keyDown |= k
}

func (c *Context) InputKeyUp(k Key) {
	c.keyDown &^= k
}

// InputText appends typed text.
func (c *Context) InputText(s string) {
	c.inputText.WriteString(s)
}

// MousePos returns the mouse position.
func (c *Context) MousePos() image.Point {
	return c.mousePos
}

// MouseDown returns the pressed buttons.
func (c *Context) MouseDown() MouseButton {
	return c.mouseDown
}

// MousePressed returns the buttons pressed since the last frame.
func (c *Context) MousePressed() MouseButton {
	return c.mousePressed
}

// ScrollDelta returns the scroll offset of the frame.
func (c *Context) ScrollDelta() image.Point {
	return c.scrollDelta
}
