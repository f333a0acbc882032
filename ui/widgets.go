// SPDX-License-Identifier: Unlicense OR MIT

package ui

import (
	"encoding/binary"
	"fmt"
	"image"
	"strconv"
	"unicode/utf8"

	"github.com/chewxy/math32"
)

// Text draws text word wrapped to the width of the layout.
func (c *Context) Text(text string) {
	col := c.Style.Colors[ColorText]
	c.LayoutBeginColumn()
	c.LayoutRow(c.font.LineHeight(), -1)
	p := 0
	for {
		r := c.LayoutNext()
		w := 0
		start, end := p, p
		for {
			word := p
			for p < len(text) && text[p] != ' ' && text[p] != '\n' {
				p++
			}
			w += c.font.TextWidth(text[word:p])
			if w > r.Dx() && end != start {
				break
			}
			if p < len(text) {
				w += c.font.TextWidth(text[p : p+1])
			}
			end = p
			p++
			if end >= len(text) || text[end] == '\n' {
				break
			}
		}
		c.DrawText(text[start:end], r.Min, col)
		p = end + 1
		if end >= len(text) {
			break
		}
	}
	c.LayoutEndColumn()
}

// Label draws a single line of text in the next cell.
func (c *Context) Label(text string) {
	c.DrawControlText(text, c.LayoutNext(), ColorText, 0)
}

// Button draws a button and reports whether it was pressed.
func (c *Context) Button(label string) bool {
	return c.ButtonEx(label, IconNone, OptAlignCenter).Has(ResSubmit)
}

// ButtonEx draws a button with a label or an icon.
func (c *Context) ButtonEx(label string, icon Icon, opt Option) Res {
	var res Res
	var id ID
	if label != "" {
		id = c.ID(label)
	} else {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(icon))
		id = c.idOf(b[:])
	}
	r := c.LayoutNext()
	c.UpdateControl(id, r, opt)
	if c.mousePressed == MouseLeft && c.focus == id {
		res |= ResSubmit
	}
	c.DrawControlFrame(id, r, ColorButton, opt)
	if label != "" {
		c.DrawControlText(label, r, ColorText, opt)
	}
	if icon != IconNone {
		c.DrawIcon(icon, r, c.Style.Colors[ColorText])
	}
	return res
}

// Checkbox draws a checkbox toggling state.
func (c *Context) Checkbox(label string, state *bool) Res {
	var res Res
	id := c.PtrID(state)
	r := c.LayoutNext()
	box := xywh(r.Min.X, r.Min.Y, r.Dy(), r.Dy())
	c.UpdateControl(id, r, 0)
	if c.mousePressed == MouseLeft && c.focus == id {
		res |= ResChange
		*state = !*state
	}
	c.DrawControlFrame(id, box, ColorBase, 0)
	if *state {
		c.DrawIcon(IconCheck, box, c.Style.Colors[ColorText])
	}
	r.Min.X += box.Dx()
	c.DrawControlText(label, r, ColorText, 0)
	return res
}

// TextboxRaw edits buf in the rectangle r as widget id.
func (c *Context) TextboxRaw(buf *string, id ID, r image.Rectangle, opt Option) Res {
	var res Res
	c.UpdateControl(id, r, opt|OptHoldFocus)
	if c.focus == id {
		if c.inputText.Len() > 0 {
			*buf += c.inputText.String()
			res |= ResChange
		}
		if c.keyPressed&KeyBackspace != 0 && len(*buf) > 0 {
			_, n := utf8.DecodeLastRuneInString(*buf)
			*buf = (*buf)[:len(*buf)-n]
			res |= ResChange
		}
		if c.keyPressed&KeyReturn != 0 {
			c.SetFocus(0)
			res |= ResSubmit
		}
	}
	c.DrawControlFrame(id, r, ColorBase, opt)
	if c.focus == id {
		col := c.Style.Colors[ColorText]
		tw := c.font.TextWidth(*buf)
		th := c.font.LineHeight()
		ofx := r.Dx() - c.Style.Padding - tw - 1
		tx := r.Min.X + min(ofx, c.Style.Padding)
		ty := r.Min.Y + (r.Dy()-th)/2
		c.PushClipRect(r)
		c.DrawText(*buf, image.Pt(tx, ty), col)
		c.DrawRect(xywh(tx+tw, ty, 1, th), col)
		c.PopClipRect()
	} else {
		c.DrawControlText(*buf, r, ColorText, opt)
	}
	return res
}

// Textbox draws a single line text editor of buf.
func (c *Context) Textbox(buf *string) Res {
	return c.TextboxEx(buf, 0)
}

func (c *Context) TextboxEx(buf *string, opt Option) Res {
	id := c.PtrID(buf)
	return c.TextboxRaw(buf, id, c.LayoutNext(), opt)
}

// numberTextbox edits value as text after a shift click. It reports
// whether the widget is in text mode.
func (c *Context) numberTextbox(value *float32, r image.Rectangle, id ID) bool {
	if c.mousePressed == MouseLeft && c.keyDown&KeyShift != 0 && c.hover == id {
		c.numberEdit = id
		c.numberEditBuf = strconv.FormatFloat(float64(*value), 'g', 3, 32)
	}
	if c.numberEdit != id {
		return false
	}
	res := c.TextboxRaw(&c.numberEditBuf, id, r, 0)
	if res&ResSubmit == 0 && c.focus == id {
		return true
	}
	// Invalid input keeps the value.
	if v, err := strconv.ParseFloat(c.numberEditBuf, 32); err == nil {
		*value = float32(v)
	}
	c.numberEdit = 0
	return false
}

// Slider draws a slider for value between low and high.
func (c *Context) Slider(value *float32, low, high float32) Res {
	return c.SliderEx(value, low, high, 0, "%.2f", OptAlignCenter)
}

// SliderEx is like Slider with a step, a value format and options.
// A shift click edits the value as text.
func (c *Context) SliderEx(value *float32, low, high, step float32, format string, opt Option) Res {
	var res Res
	last := *value
	v := last
	id := c.PtrID(value)
	base := c.LayoutNext()
	if c.numberTextbox(&v, base, id) {
		return res
	}
	c.UpdateControl(id, base, opt)
	span := high - low
	if c.focus == id && (c.mouseDown|c.mousePressed) == MouseLeft && span > 0 && base.Dx() > 0 {
		v = low + float32(c.mousePos.X-base.Min.X)*span/float32(base.Dx())
		if step != 0 {
			v = math32.Floor((v+step/2)/step) * step
		}
	}
	v = min(max(v, low), high)
	*value = v
	if last != v {
		res |= ResChange
	}
	c.DrawControlFrame(id, base, ColorBase, opt)
	w := c.Style.ThumbSize
	x := 0
	if span > 0 {
		x = int((v - low) * float32(max(base.Dx()-w, 0)) / span)
	}
	thumb := xywh(base.Min.X+x, base.Min.Y, w, base.Dy())
	c.DrawControlFrame(id, thumb, ColorButton, opt)
	c.DrawControlText(fmt.Sprintf(format, v), base, ColorText, opt)
	return res
}

// Number draws a value changed by dragging.
func (c *Context) Number(value *float32, step float32) Res {
	return c.NumberEx(value, step, "%.2f", OptAlignCenter)
}

// NumberEx is like Number with a value format and options. A shift
// click edits the value as text.
func (c *Context) NumberEx(value *float32, step float32, format string, opt Option) Res {
	var res Res
	id := c.PtrID(value)
	base := c.LayoutNext()
	last := *value
	if c.numberTextbox(value, base, id) {
		return res
	}
	c.UpdateControl(id, base, opt)
	if c.focus == id && c.mouseDown == MouseLeft {
		*value += float32(c.mouseDelta.X) * step
	}
	if *value != last {
		res |= ResChange
	}
	c.DrawControlFrame(id, base, ColorBase, opt)
	c.DrawControlText(fmt.Sprintf(format, *value), base, ColorText, opt)
	return res
}

func (c *Context) header(label string, treeNode bool, opt Option) Res {
	id := c.ID(label)
	idx := c.treeNodePool.get(id)
	c.LayoutRow(0, -1)
	active := idx >= 0
	expanded := active
	if opt&OptExpanded != 0 {
		expanded = !active
	}
	r := c.LayoutNext()
	c.UpdateControl(id, r, 0)
	if c.mousePressed == MouseLeft && c.focus == id {
		active = !active
	}
	switch {
	case idx >= 0 && active:
		c.treeNodePool.update(c.frame, idx)
	case idx >= 0:
		c.treeNodePool.remove(idx)
	case active:
		c.treeNodePool.init(c.frame, id)
	}
	if treeNode {
		if c.hover == id {
			c.drawFrame(r, ColorButtonHover)
		}
	} else {
		c.DrawControlFrame(id, r, ColorButton, 0)
	}
	icon := IconCollapsed
	if expanded {
		icon = IconExpanded
	}
	c.DrawIcon(icon, xywh(r.Min.X, r.Min.Y, r.Dy(), r.Dy()), c.Style.Colors[ColorText])
	r.Min.X += r.Dy() - c.Style.Padding
	c.DrawControlText(label, r, ColorText, 0)
	if expanded {
		return ResActive
	}
	return 0
}

// Header draws a collapsible header. It returns ResActive while
// expanded.
func (c *Context) Header(label string, opt Option) Res {
	return c.header(label, false, opt)
}

// BeginTreeNode draws a collapsible tree node. While it returns
// ResActive, the following widgets are indented and EndTreeNode must
// be called.
func (c *Context) BeginTreeNode(label string, opt Option) Res {
	res := c.header(label, true, opt)
	if res.Has(ResActive) {
		c.layout().indent += c.Style.Indent
		c.idStack = append(c.idStack, c.lastID)
	}
	return res
}

func (c *Context) EndTreeNode() {
	c.layout().indent -= c.Style.Indent
	c.PopID()
}
