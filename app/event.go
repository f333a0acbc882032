// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"fmt"
	"image"

	"github.com/go-gl/glfw/v3.3/glfw"

	"neocogi.org/ui"
)

// EventKind is the kind of an Event.
type EventKind uint8

const (
	EventMove EventKind = iota
	EventButton
	EventScroll
	EventKey
	EventChar
	EventResize
)

func (k EventKind) String() string {
	switch k {
	case EventMove:
		return "move"
	case EventButton:
		return "button"
	case EventScroll:
		return "scroll"
	case EventKey:
		return "key"
	case EventChar:
		return "char"
	case EventResize:
		return "resize"
	}
	panic(fmt.Sprintf("app: unknown event kind %d", k))
}

// Event is a window input event. Positions and sizes are in
// framebuffer pixels.
type Event struct {
	Kind EventKind
	// Pos is the pointer position for every kind but EventResize
	// and EventChar.
	Pos    image.Point
	Button glfw.MouseButton
	Key    glfw.Key
	// Action is Press or Release for buttons and Press, Repeat or
	// Release for keys.
	Action glfw.Action
	Mods   glfw.ModifierKey
	// ScrollX and ScrollY are wheel offsets in lines; positive Y
	// scrolls up.
	ScrollX, ScrollY float64
	Char             rune
	Size             image.Point
}

// scrollLine is the ui scroll distance of one wheel line.
const scrollLine = 30

// KeyOf maps a glfw key to the ui key it stands for.
func KeyOf(k glfw.Key) (ui.Key, bool) {
	switch k {
	case glfw.KeyLeftShift, glfw.KeyRightShift:
		return ui.KeyShift, true
	case glfw.KeyLeftControl, glfw.KeyRightControl:
		return ui.KeyCtrl, true
	case glfw.KeyLeftAlt, glfw.KeyRightAlt:
		return ui.KeyAlt, true
	case glfw.KeyBackspace:
		return ui.KeyBackspace, true
	case glfw.KeyEnter, glfw.KeyKPEnter:
		return ui.KeyReturn, true
	}
	return 0, false
}

// ButtonOf maps a glfw mouse button to the ui button.
func ButtonOf(b glfw.MouseButton) (ui.MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return ui.MouseLeft, true
	case glfw.MouseButtonRight:
		return ui.MouseRight, true
	case glfw.MouseButtonMiddle:
		return ui.MouseMiddle, true
	}
	return 0, false
}

// Feed forwards events to the input of c.
func Feed(c *ui.Context, events []Event) {
	for _, e := range events {
		switch e.Kind {
		case EventMove:
			c.InputMouseMove(e.Pos.X, e.Pos.Y)
		case EventButton:
			b, ok := ButtonOf(e.Button)
			if !ok {
				break
			}
			if e.Action == glfw.Release {
				c.InputMouseUp(e.Pos.X, e.Pos.Y, b)
			} else {
				c.InputMouseDown(e.Pos.X, e.Pos.Y, b)
			}
		case EventScroll:
			c.InputScroll(int(-e.ScrollX*scrollLine), int(-e.ScrollY*scrollLine))
		case EventKey:
			k, ok := KeyOf(e.Key)
			if !ok {
				break
			}
			switch e.Action {
			case glfw.Press, glfw.Repeat:
				c.InputKeyDown(k)
			case glfw.Release:
				c.InputKeyUp(k)
			}
		case EventChar:
			c.InputText(string(e.Char))
		}
	}
}
