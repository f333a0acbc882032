// SPDX-License-Identifier: Unlicense OR MIT

package scene

import "neocogi.org/f32"

// ButtonState is the state of the pointer button driving a view.
type ButtonState uint8

const (
	ButtonNone ButtonState = iota
	ButtonPressed
	ButtonReleased
	// ButtonScroll reports a scroll step. It is transient: the
	// button state reverts to ButtonNone after it.
	ButtonScroll
)

// PointerState is a pointer sample.
type PointerState struct {
	Pos    f32.Point
	Button ButtonState
	// Pressure is the pressure of a pressed button.
	Pressure float32
	// Scroll is the offset of a ButtonScroll sample.
	Scroll float32
}

type EventKind uint8

const (
	EventNone EventKind = iota
	EventMove
	EventClick
	EventDrag
	EventRelease
	EventScroll
)

func (k EventKind) String() string {
	switch k {
	case EventNone:
		return "none"
	case EventMove:
		return "move"
	case EventClick:
		return "click"
	case EventDrag:
		return "drag"
	case EventRelease:
		return "release"
	case EventScroll:
		return "scroll"
	default:
		return "unknown"
	}
}

// Event is the pointer gesture between two samples.
type Event struct {
	Kind     EventKind
	From, To f32.Point
	Pressure float32
	Scroll   float32
}

// Pointer derives events from the last two pointer samples.
type Pointer struct {
	prev, cur PointerState
}

// NewPointer returns a pointer outside any view with no button
// state.
func NewPointer() Pointer {
	off := PointerState{Pos: f32.Pt(-1, -1)}
	return Pointer{prev: off, cur: off}
}

// Update adds a sample and returns the resulting event.
func (p *Pointer) Update(s PointerState) Event {
	p.prev = p.cur
	p.cur = s
	return p.Event()
}

// Event returns the event of the last two samples.
func (p *Pointer) Event() Event {
	prev, cur := p.prev, p.cur
	e := Event{From: prev.Pos, To: cur.Pos, Pressure: cur.Pressure}
	switch {
	case cur.Button == ButtonScroll:
		e.Kind = EventScroll
		e.Scroll = cur.Scroll
	case prev.Button == ButtonReleased && cur.Button == ButtonReleased:
		if prev.Pos != cur.Pos {
			e.Kind = EventMove
		}
	case prev.Button == ButtonReleased && cur.Button == ButtonPressed:
		e.Kind = EventClick
	case prev.Button == ButtonPressed && cur.Button == ButtonPressed:
		e.Kind = EventDrag
	case prev.Button == ButtonPressed && cur.Button == ButtonReleased:
		e.Kind = EventRelease
	}
	return e
}

// ResetButton forgets the button state of the last sample.
func (p *Pointer) ResetButton() {
	p.cur.Button = ButtonNone
}
