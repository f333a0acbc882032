// SPDX-License-Identifier: Unlicense OR MIT

package ui

import "image"

const (
	minWindowWidth  = 96
	minWindowHeight = 64
)

func (c *Context) scrollbars(cnt *Container, body *image.Rectangle) {
	sz := c.Style.ScrollbarSize
	cs := cnt.ContentSize.Add(image.Pt(c.Style.Padding*2, c.Style.Padding*2))
	c.PushClipRect(*body)
	// Reserve room for the bars.
	if cs.Y > cnt.Body.Dy() {
		body.Max.X -= sz
	}
	if cs.X > cnt.Body.Dx() {
		body.Max.Y -= sz
	}
	c.scrollbarY(cnt, *body, cs)
	c.scrollbarX(cnt, *body, cs)
	c.PopClipRect()
}

func (c *Context) scrollbarY(cnt *Container, b image.Rectangle, cs image.Point) {
	maxScroll := cs.Y - b.Dy()
	if maxScroll <= 0 || b.Dy() <= 0 {
		cnt.Scroll.Y = 0
		return
	}
	id := c.ID("!scrollbary")
	base := xywh(b.Max.X, b.Min.Y, c.Style.ScrollbarSize, b.Dy())
	c.UpdateControl(id, base, 0)
	if c.focus == id && c.mouseDown == MouseLeft {
		cnt.Scroll.Y += c.mouseDelta.Y * cs.Y / base.Dy()
	}
	cnt.Scroll.Y = min(max(cnt.Scroll.Y, 0), maxScroll)
	c.drawFrame(base, ColorScrollBase)
	h := max(c.Style.ThumbSize, base.Dy()*b.Dy()/cs.Y)
	y := base.Min.Y + cnt.Scroll.Y*(base.Dy()-h)/maxScroll
	c.drawFrame(xywh(base.Min.X, y, base.Dx(), h), ColorScrollThumb)
	if c.MouseOver(b) {
		c.scrollTarget = cnt
	}
}

func (c *Context) scrollbarX(cnt *Container, b image.Rectangle, cs image.Point) {
	maxScroll := cs.X - b.Dx()
	if maxScroll <= 0 || b.Dx() <= 0 {
		cnt.Scroll.X = 0
		return
	}
	id := c.ID("!scrollbarx")
	base := xywh(b.Min.X, b.Max.Y, b.Dx(), c.Style.ScrollbarSize)
	c.UpdateControl(id, base, 0)
	if c.focus == id && c.mouseDown == MouseLeft {
		cnt.Scroll.X += c.mouseDelta.X * cs.X / base.Dx()
	}
	cnt.Scroll.X = min(max(cnt.Scroll.X, 0), maxScroll)
	c.drawFrame(base, ColorScrollBase)
	w := max(c.Style.ThumbSize, base.Dx()*b.Dx()/cs.X)
	x := base.Min.X + cnt.Scroll.X*(base.Dx()-w)/maxScroll
	c.drawFrame(xywh(x, base.Min.Y, w, base.Dy()), ColorScrollThumb)
	if c.MouseOver(b) {
		c.scrollTarget = cnt
	}
}

func (c *Context) pushContainerBody(cnt *Container, body image.Rectangle, opt Option) {
	if opt&OptNoScroll == 0 {
		c.scrollbars(cnt, &body)
	}
	c.pushLayout(expand(body, -c.Style.Padding), cnt.Scroll)
	cnt.Body = body
}

// BeginWindow opens the window title, initially at r. The window
// contents follow until EndWindow, which must be called only if
// BeginWindow returned ResActive.
func (c *Context) BeginWindow(title string, r image.Rectangle, opt Option) Res {
	id := c.ID(title)
	cnt := c.container(id, opt)
	if cnt == nil || !cnt.Open {
		return 0
	}
	c.idStack = append(c.idStack, id)
	if cnt.Rect.Dx() == 0 {
		cnt.Rect = r
	}
	c.beginRootContainer(cnt)
	rect := cnt.Rect
	body := rect
	if opt&OptNoFrame == 0 {
		c.drawFrame(rect, ColorWindowBG)
	}
	if opt&OptNoTitle == 0 {
		tr := rect
		tr.Max.Y = tr.Min.Y + c.Style.TitleHeight
		c.drawFrame(tr, ColorTitleBG)

		tid := c.ID("!title")
		c.UpdateControl(tid, tr, opt)
		c.DrawControlText(title, tr, ColorTitleText, opt)
		if tid == c.focus && c.mouseDown == MouseLeft {
			cnt.Rect = cnt.Rect.Add(c.mouseDelta)
		}
		body.Min.Y += tr.Dy()

		if opt&OptNoClose == 0 {
			cid := c.ID("!close")
			cr := xywh(tr.Max.X-tr.Dy(), tr.Min.Y, tr.Dy(), tr.Dy())
			c.DrawIcon(IconClose, cr, c.Style.Colors[ColorTitleText])
			c.UpdateControl(cid, cr, opt)
			if c.mousePressed == MouseLeft && cid == c.focus {
				cnt.Open = false
			}
		}
	}
	c.pushContainerBody(cnt, body, opt)
	if opt&OptNoResize == 0 {
		sz := c.Style.TitleHeight
		rid := c.ID("!resize")
		rr := xywh(rect.Max.X-sz, rect.Max.Y-sz, sz, sz)
		c.UpdateControl(rid, rr, opt)
		if rid == c.focus && c.mouseDown == MouseLeft {
			cnt.Rect.Max.X = cnt.Rect.Min.X + max(minWindowWidth, cnt.Rect.Dx()+c.mouseDelta.X)
			cnt.Rect.Max.Y = cnt.Rect.Min.Y + max(minWindowHeight, cnt.Rect.Dy()+c.mouseDelta.Y)
		}
	}
	if opt&OptAutoSize != 0 {
		b := c.layout().body
		cnt.Rect.Max.X = cnt.Rect.Min.X + cnt.ContentSize.X + (cnt.Rect.Dx() - b.Dx())
		cnt.Rect.Max.Y = cnt.Rect.Min.Y + cnt.ContentSize.Y + (cnt.Rect.Dy() - b.Dy())
	}
	// Popups close on a click elsewhere.
	if opt&OptPopup != 0 && c.mousePressed != 0 && c.hoverRoot != cnt {
		cnt.Open = false
	}
	c.PushClipRect(cnt.Body)
	return ResActive
}

func (c *Context) EndWindow() {
	c.PopClipRect()
	c.endRootContainer()
}

// OpenPopup opens the popup name at the mouse position.
func (c *Context) OpenPopup(name string) {
	cnt := c.Container(name)
	c.hoverRoot = cnt
	c.nextHoverRoot = cnt
	cnt.Rect = xywh(c.mousePos.X, c.mousePos.Y, 1, 1)
	cnt.Open = true
	c.BringToFront(cnt)
}

// BeginPopup is like BeginWindow for a popup opened by OpenPopup.
func (c *Context) BeginPopup(name string) Res {
	opt := OptPopup | OptAutoSize | OptNoResize | OptNoScroll | OptNoTitle | OptClosed
	return c.BeginWindow(name, image.Rectangle{}, opt)
}

func (c *Context) EndPopup() {
	c.EndWindow()
}

// BeginPanel opens a scrollable sub container in the next cell. It
// must be closed by EndPanel.
func (c *Context) BeginPanel(name string, opt Option) {
	c.PushID(name)
	cnt := c.container(c.lastID, opt)
	cnt.Rect = c.LayoutNext()
	if opt&OptNoFrame == 0 {
		c.drawFrame(cnt.Rect, ColorPanelBG)
	}
	c.containerStack = append(c.containerStack, cnt)
	c.pushContainerBody(cnt, cnt.Rect, opt)
	c.PushClipRect(cnt.Body)
}

func (c *Context) EndPanel() {
	c.PopClipRect()
	c.popContainer()
}
