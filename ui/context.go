// SPDX-License-Identifier: Unlicense OR MIT

package ui

import (
	"encoding/binary"
	"image"
	"image/color"
	"reflect"
	"strings"

	"golang.org/x/exp/slices"
)

// ID identifies a widget or container across frames. IDs are hashes
// of the widget label or state address, seeded by the enclosing ID
// scope.
type ID uint32

// Option flags alter the behavior of widgets and containers.
type Option uint32

const (
	OptAlignCenter Option = 1 << iota
	OptAlignRight
	OptNoInteract
	OptNoFrame
	OptNoResize
	OptNoScroll
	OptNoClose
	OptNoTitle
	OptHoldFocus
	OptAutoSize
	OptPopup
	OptClosed
	OptExpanded
)

// Res flags report widget interaction.
type Res uint8

const (
	// ResActive is set by open windows and expanded headers.
	ResActive Res = 1 << iota
	// ResSubmit is set when a button was pressed or a textbox
	// confirmed.
	ResSubmit
	// ResChange is set when a widget changed its value.
	ResChange
)

// Has reports whether all flags of f are set in r.
func (r Res) Has(f Res) bool {
	return r&f == f
}

// Clip is the visibility of a rectangle inside the clip rectangle.
type Clip uint8

const (
	// ClipNone means fully visible.
	ClipNone Clip = iota
	ClipPart
	ClipAll
)

const (
	containerPoolSize = 48
	treeNodePoolSize  = 48

	hashInitial = 2166136261
	hashPrime   = 16777619
)

// unclipped covers any reasonable screen.
var unclipped = image.Rect(0, 0, 0x1000000, 0x1000000)

// Font measures text drawn by a Context.
type Font interface {
	// TextWidth returns the width of s in pixels.
	TextWidth(s string) int
	// LineHeight returns the height of a line of text.
	LineHeight() int
}

// Container is a window, popup or panel. The state of a container
// persists across frames while it is used.
type Container struct {
	Rect        image.Rectangle
	Body        image.Rectangle
	ContentSize image.Point
	Scroll      image.Point
	ZIndex      int
	Open        bool

	root bool
	cmds []Command
}

// Context holds the state of an immediate mode user interface. A
// frame is built between Begin and End by calling widget methods;
// End produces the draw commands of the frame in Commands.
//
// A Context is not safe for concurrent use.
type Context struct {
	Style Style
	font  Font

	hover        ID
	focus        ID
	lastID       ID
	lastRect     image.Rectangle
	lastZIndex   int
	updatedFocus bool
	frame        int

	hoverRoot     *Container
	nextHoverRoot *Container
	scrollTarget  *Container

	numberEdit    ID
	numberEditBuf string

	commands       []Command
	roots          []*Container
	rootStack      []*Container
	containerStack []*Container
	clipStack      []image.Rectangle
	idStack        []ID
	layoutStack    []layout

	containerPool pool
	containers    [containerPoolSize]Container
	treeNodePool  pool

	mousePos     image.Point
	lastMousePos image.Point
	mouseDelta   image.Point
	scrollDelta  image.Point
	mouseDown    MouseButton
	mousePressed MouseButton
	keyDown      Key
	keyPressed   Key
	inputText    strings.Builder
}

// NewContext returns a context measuring text with font.
func NewContext(font Font) *Context {
	return &Context{
		Style:         DefaultStyle(),
		font:          font,
		containerPool: newPool(containerPoolSize),
		treeNodePool:  newPool(treeNodePoolSize),
	}
}

// Font returns the font of the context.
func (c *Context) Font() Font {
	return c.font
}

// Begin starts a frame.
func (c *Context) Begin() {
	c.commands = c.commands[:0]
	c.roots = c.roots[:0]
	c.scrollTarget = nil
	c.hoverRoot = c.nextHoverRoot
	c.nextHoverRoot = nil
	c.mouseDelta = c.mousePos.Sub(c.lastMousePos)
	c.frame++
}

// End finishes a frame and orders its commands by container depth.
// It panics if a Push or Begin call of the frame was not balanced.
func (c *Context) End() {
	switch {
	case len(c.containerStack) > 0:
		panic("ui: unbalanced container stack")
	case len(c.clipStack) > 0:
		panic("ui: unbalanced clip stack")
	case len(c.idStack) > 0:
		panic("ui: unbalanced id stack")
	case len(c.layoutStack) > 0:
		panic("ui: unbalanced layout stack")
	}
	if c.scrollTarget != nil {
		c.scrollTarget.Scroll = c.scrollTarget.Scroll.Add(c.scrollDelta)
	}
	if !c.updatedFocus {
		c.focus = 0
	}
	c.updatedFocus = false
	if c.mousePressed != 0 && c.nextHoverRoot != nil &&
		c.nextHoverRoot.ZIndex < c.lastZIndex && c.nextHoverRoot.ZIndex >= 0 {
		c.BringToFront(c.nextHoverRoot)
	}
	c.keyPressed = 0
	c.inputText.Reset()
	c.mousePressed = 0
	c.scrollDelta = image.Point{}
	c.lastMousePos = c.mousePos

	slices.SortStableFunc(c.roots, func(a, b *Container) int {
		return a.ZIndex - b.ZIndex
	})
	for _, r := range c.roots {
		c.commands = append(c.commands, r.cmds...)
	}
}

// Commands returns the draw commands of the last frame, back to
// front. The slice is reused by the next frame.
func (c *Context) Commands() []Command {
	return c.commands
}

// Hover returns the hovered widget.
func (c *Context) Hover() ID {
	return c.hover
}

// Focus returns the focused widget.
func (c *Context) Focus() ID {
	return c.focus
}

// SetFocus focuses the widget id.
func (c *Context) SetFocus(id ID) {
	c.focus = id
	c.updatedFocus = true
}

func hash(h ID, data []byte) ID {
	for _, b := range data {
		h = (h ^ ID(b)) * hashPrime
	}
	return h
}

func (c *Context) idOf(data []byte) ID {
	h := ID(hashInitial)
	if n := len(c.idStack); n > 0 {
		h = c.idStack[n-1]
	}
	id := hash(h, data)
	c.lastID = id
	return id
}

// LastID returns the id computed last, usually the id of the last
// widget.
func (c *Context) LastID() ID {
	return c.lastID
}

// ID returns the id of name in the current id scope.
func (c *Context) ID(name string) ID {
	return c.idOf([]byte(name))
}

// PtrID returns the id of the pointer p in the current id scope.
// Widgets bound to a value use the value address as id.
func (c *Context) PtrID(p any) ID {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(reflect.ValueOf(p).Pointer()))
	return c.idOf(b[:])
}

// PushID opens an id scope seeded by name.
func (c *Context) PushID(name string) {
	c.idStack = append(c.idStack, c.ID(name))
}

// PopID closes the scope opened by the last PushID.
func (c *Context) PopID() {
	c.idStack = c.idStack[:len(c.idStack)-1]
}

// PushClipRect restricts drawing to r inside the current clip
// rectangle.
func (c *Context) PushClipRect(r image.Rectangle) {
	c.clipStack = append(c.clipStack, intersect(r, c.ClipRect()))
}

func (c *Context) PopClipRect() {
	c.clipStack = c.clipStack[:len(c.clipStack)-1]
}

// ClipRect returns the current clip rectangle.
func (c *Context) ClipRect() image.Rectangle {
	if len(c.clipStack) == 0 {
		return unclipped
	}
	return c.clipStack[len(c.clipStack)-1]
}

// CheckClip returns how much of r the clip rectangle hides.
func (c *Context) CheckClip(r image.Rectangle) Clip {
	cr := c.ClipRect()
	if r.Min.X > cr.Max.X || r.Max.X < cr.Min.X || r.Min.Y > cr.Max.Y || r.Max.Y < cr.Min.Y {
		return ClipAll
	}
	if r.Min.X >= cr.Min.X && r.Max.X <= cr.Max.X && r.Min.Y >= cr.Min.Y && r.Max.Y <= cr.Max.Y {
		return ClipNone
	}
	return ClipPart
}

// CurrentContainer returns the innermost open container.
func (c *Context) CurrentContainer() *Container {
	return c.containerStack[len(c.containerStack)-1]
}

// Container returns the container name, creating it if needed.
func (c *Context) Container(name string) *Container {
	return c.container(c.ID(name), 0)
}

func (c *Context) container(id ID, opt Option) *Container {
	if idx := c.containerPool.get(id); idx >= 0 {
		if c.containers[idx].Open || opt&OptClosed == 0 {
			c.containerPool.update(c.frame, idx)
		}
		return &c.containers[idx]
	}
	if opt&OptClosed != 0 {
		return nil
	}
	idx := c.containerPool.init(c.frame, id)
	cnt := &c.containers[idx]
	*cnt = Container{Open: true, cmds: cnt.cmds[:0]}
	c.BringToFront(cnt)
	return cnt
}

// BringToFront moves cnt above the other containers.
func (c *Context) BringToFront(cnt *Container) {
	c.lastZIndex++
	cnt.ZIndex = c.lastZIndex
}

func (c *Context) beginRootContainer(cnt *Container) {
	c.containerStack = append(c.containerStack, cnt)
	c.roots = append(c.roots, cnt)
	c.rootStack = append(c.rootStack, cnt)
	cnt.root = true
	cnt.cmds = cnt.cmds[:0]
	if c.mousePos.In(cnt.Rect) && (c.nextHoverRoot == nil || cnt.ZIndex > c.nextHoverRoot.ZIndex) {
		c.nextHoverRoot = cnt
	}
	c.clipStack = append(c.clipStack, unclipped)
}

func (c *Context) endRootContainer() {
	c.rootStack = c.rootStack[:len(c.rootStack)-1]
	c.PopClipRect()
	c.popContainer()
}

func (c *Context) popContainer() {
	cnt := c.CurrentContainer()
	l := c.layout()
	cnt.ContentSize = l.max.Sub(l.body.Min)
	c.containerStack = c.containerStack[:len(c.containerStack)-1]
	c.layoutStack = c.layoutStack[:len(c.layoutStack)-1]
	c.PopID()
}

func (c *Context) inHoverRoot() bool {
	for i := len(c.containerStack) - 1; i >= 0; i-- {
		cnt := c.containerStack[i]
		if cnt == c.hoverRoot {
			return true
		}
		// Only the root containers carry commands.
		if cnt.root {
			break
		}
	}
	return false
}

// MouseOver reports whether the mouse is over the visible part of r
// in the hovered root container.
func (c *Context) MouseOver(r image.Rectangle) bool {
	return c.mousePos.In(r) && c.mousePos.In(c.ClipRect()) && c.inHoverRoot()
}

// UpdateControl updates the hover and focus state of the widget id
// covering r.
func (c *Context) UpdateControl(id ID, r image.Rectangle, opt Option) {
	over := c.MouseOver(r)
	if c.focus == id {
		c.updatedFocus = true
	}
	if opt&OptNoInteract != 0 {
		return
	}
	if over && c.mouseDown == 0 {
		c.hover = id
	}
	if c.focus == id {
		if c.mousePressed != 0 && !over {
			c.SetFocus(0)
		}
		if c.mouseDown == 0 && opt&OptHoldFocus == 0 {
			c.SetFocus(0)
		}
	}
	if c.hover == id {
		if c.mousePressed != 0 {
			c.SetFocus(id)
		} else if !over {
			c.hover = 0
		}
	}
}

func (c *Context) push(cmd Command) {
	if len(c.rootStack) == 0 {
		panic("ui: drawing outside a window")
	}
	r := c.rootStack[len(c.rootStack)-1]
	r.cmds = append(r.cmds, cmd)
}

// SetClip records a clip command.
func (c *Context) SetClip(r image.Rectangle) {
	c.push(Command{Type: CommandClip, Rect: r})
}

// DrawRect fills the visible part of r.
func (c *Context) DrawRect(r image.Rectangle, col color.RGBA) {
	r = intersect(r, c.ClipRect())
	if r.Dx() > 0 && r.Dy() > 0 {
		c.push(Command{Type: CommandRect, Rect: r, Color: col})
	}
}

// DrawBox outlines r with a one pixel border.
func (c *Context) DrawBox(r image.Rectangle, col color.RGBA) {
	x, y, w, h := r.Min.X, r.Min.Y, r.Dx(), r.Dy()
	c.DrawRect(xywh(x+1, y, w-2, 1), col)
	c.DrawRect(xywh(x+1, y+h-1, w-2, 1), col)
	c.DrawRect(xywh(x, y, 1, h), col)
	c.DrawRect(xywh(x+w-1, y, 1, h), col)
}

// DrawText draws str with its top left corner at pos.
func (c *Context) DrawText(str string, pos image.Point, col color.RGBA) {
	if str == "" {
		return
	}
	r := xywh(pos.X, pos.Y, c.font.TextWidth(str), c.font.LineHeight())
	clip := c.CheckClip(r)
	if clip == ClipAll {
		return
	}
	if clip == ClipPart {
		c.SetClip(c.ClipRect())
	}
	c.push(Command{Type: CommandText, Rect: r, Text: str, Color: col})
	if clip != ClipNone {
		c.SetClip(unclipped)
	}
}

// DrawIcon draws icon centered in r.
func (c *Context) DrawIcon(icon Icon, r image.Rectangle, col color.RGBA) {
	clip := c.CheckClip(r)
	if clip == ClipAll {
		return
	}
	if clip == ClipPart {
		c.SetClip(c.ClipRect())
	}
	c.push(Command{Type: CommandIcon, Rect: r, Icon: icon, Color: col})
	if clip != ClipNone {
		c.SetClip(unclipped)
	}
}

// drawFrame draws a widget background with a border.
func (c *Context) drawFrame(r image.Rectangle, id ColorID) {
	c.DrawRect(r, c.Style.Colors[id])
	if id == ColorScrollBase || id == ColorScrollThumb || id == ColorTitleBG {
		return
	}
	if b := c.Style.Colors[ColorBorder]; b.A != 0 {
		c.DrawBox(expand(r, 1), b)
	}
}

// DrawControlFrame draws the frame of widget id with the hover and
// focus variants of color id.
func (c *Context) DrawControlFrame(id ID, r image.Rectangle, col ColorID, opt Option) {
	if opt&OptNoFrame != 0 {
		return
	}
	switch id {
	case c.focus:
		col += 2
	case c.hover:
		col++
	}
	c.drawFrame(r, col)
}

// DrawControlText draws str aligned inside r.
func (c *Context) DrawControlText(str string, r image.Rectangle, col ColorID, opt Option) {
	tw := c.font.TextWidth(str)
	c.PushClipRect(r)
	pos := image.Pt(0, r.Min.Y+(r.Dy()-c.font.LineHeight())/2)
	switch {
	case opt&OptAlignCenter != 0:
		pos.X = r.Min.X + (r.Dx()-tw)/2
	case opt&OptAlignRight != 0:
		pos.X = r.Max.X - tw - c.Style.Padding
	default:
		pos.X = r.Min.X + c.Style.Padding
	}
	c.DrawText(str, pos, c.Style.Colors[col])
	c.PopClipRect()
}

// pool tracks the last frame its ids were used in, so that stale
// slots are reused first.
type pool struct {
	ids        []ID
	lastUpdate []int
}

func newPool(n int) pool {
	return pool{ids: make([]ID, n), lastUpdate: make([]int, n)}
}

func (p *pool) get(id ID) int {
	for i, v := range p.ids {
		if v == id {
			return i
		}
	}
	return -1
}

func (p *pool) init(frame int, id ID) int {
	n, f := -1, frame
	for i, u := range p.lastUpdate {
		if u < f {
			f, n = u, i
		}
	}
	if n < 0 {
		panic("ui: pool is full")
	}
	p.ids[n] = id
	p.update(frame, n)
	return n
}

func (p *pool) update(frame, idx int) {
	p.lastUpdate[idx] = frame
}

func (p *pool) remove(idx int) {
	p.ids[idx] = 0
	p.lastUpdate[idx] = 0
}

func xywh(x, y, w, h int) image.Rectangle {
	return image.Rectangle{Min: image.Pt(x, y), Max: image.Pt(x+w, y+h)}
}

func expand(r image.Rectangle, n int) image.Rectangle {
	return image.Rectangle{Min: r.Min.Sub(image.Pt(n, n)), Max: r.Max.Add(image.Pt(n, n))}
}

// intersect is like image.Rectangle.Intersect, but an empty result
// keeps its position.
func intersect(a, b image.Rectangle) image.Rectangle {
	x1, y1 := max(a.Min.X, b.Min.X), max(a.Min.Y, b.Min.Y)
	x2, y2 := min(a.Max.X, b.Max.X), min(a.Max.Y, b.Max.Y)
	return image.Rectangle{Min: image.Pt(x1, y1), Max: image.Pt(max(x1, x2), max(y1, y2))}
}
