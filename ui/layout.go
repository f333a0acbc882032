// SPDX-License-Identifier: Unlicense OR MIT

package ui

import "image"

type nextType uint8

const (
	nextNone nextType = iota
	nextRelative
	nextAbsolute
)

// layout places widgets in rows of cells inside body.
type layout struct {
	body      image.Rectangle
	next      image.Rectangle
	position  image.Point
	size      image.Point
	max       image.Point
	widths    []int
	itemIndex int
	nextRow   int
	nextType  nextType
	indent    int
}

func (c *Context) layout() *layout {
	return &c.layoutStack[len(c.layoutStack)-1]
}

func (c *Context) pushLayout(body image.Rectangle, scroll image.Point) {
	c.layoutStack = append(c.layoutStack, layout{
		body: body.Sub(scroll),
		max:  image.Pt(-0x1000000, -0x1000000),
	})
	c.LayoutRow(0, 0)
}

// LayoutRow starts a row of cells with the given widths. A zero
// width or height uses the style size, a negative one extends to the
// body edge minus its absolute value. Without widths the row has a
// single cell of the width set by LayoutWidth.
func (c *Context) LayoutRow(height int, widths ...int) {
	l := c.layout()
	l.widths = append(l.widths[:0], widths...)
	c.row(height)
}

func (c *Context) row(height int) {
	l := c.layout()
	l.position = image.Pt(l.indent, l.nextRow)
	l.size.Y = height
	l.itemIndex = 0
}

// LayoutWidth sets the cell width of rows without widths.
func (c *Context) LayoutWidth(w int) {
	c.layout().size.X = w
}

// LayoutHeight sets the height of the current row.
func (c *Context) LayoutHeight(h int) {
	c.layout().size.Y = h
}

// LayoutSetNext places the next cell at r, relative to the layout
// body and advancing the row if relative, in absolute coordinates
// otherwise.
func (c *Context) LayoutSetNext(r image.Rectangle, relative bool) {
	l := c.layout()
	l.next = r
	l.nextType = nextAbsolute
	if relative {
		l.nextType = nextRelative
	}
}

// LayoutBeginColumn starts a nested layout in the next cell.
func (c *Context) LayoutBeginColumn() {
	c.pushLayout(c.LayoutNext(), image.Point{})
}

// LayoutEndColumn ends the nested layout and advances the enclosing
// one past it.
func (c *Context) LayoutEndColumn() {
	b := c.layoutStack[len(c.layoutStack)-1]
	c.layoutStack = c.layoutStack[:len(c.layoutStack)-1]
	a := c.layout()
	a.position.X = max(a.position.X, b.position.X+b.body.Min.X-a.body.Min.X)
	a.nextRow = max(a.nextRow, b.nextRow+b.body.Min.Y-a.body.Min.Y)
	a.max.X = max(a.max.X, b.max.X)
	a.max.Y = max(a.max.Y, b.max.Y)
}

// LayoutNext returns the rectangle of the next cell.
func (c *Context) LayoutNext() image.Rectangle {
	l := c.layout()
	st := &c.Style
	var x, y, w, h int
	if l.nextType != nextNone {
		typ := l.nextType
		l.nextType = nextNone
		if typ == nextAbsolute {
			c.lastRect = l.next
			return l.next
		}
		x, y, w, h = l.next.Min.X, l.next.Min.Y, l.next.Dx(), l.next.Dy()
	} else {
		if l.itemIndex == len(l.widths) {
			c.row(l.size.Y)
		}
		x, y = l.position.X, l.position.Y
		w = l.size.X
		if len(l.widths) > 0 {
			w = l.widths[l.itemIndex]
		}
		h = l.size.Y
		if w == 0 {
			w = st.Size.X + st.Padding*2
		}
		if h == 0 {
			h = st.Size.Y + st.Padding*2
		}
		if w < 0 {
			w += l.body.Dx() - x + 1
		}
		if h < 0 {
			h += l.body.Dy() - y + 1
		}
		l.itemIndex++
	}
	l.position.X += w + st.Spacing
	l.nextRow = max(l.nextRow, y+h+st.Spacing)
	x += l.body.Min.X
	y += l.body.Min.Y
	l.max.X = max(l.max.X, x+w)
	l.max.Y = max(l.max.Y, y+h)
	c.lastRect = xywh(x, y, w, h)
	return c.lastRect
}

// LastRect returns the rectangle of the last cell.
func (c *Context) LastRect() image.Rectangle {
	return c.lastRect
}

// Indent returns the indentation of the current layout.
func (c *Context) Indent() int {
	return c.layout().indent
}
