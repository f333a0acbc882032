// SPDX-License-Identifier: Unlicense OR MIT

package ui

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const (
	atlasWidth = 256
	iconSize   = 16
	firstRune  = 32
	lastRune   = 126
)

// Atlas is an alpha texture holding the glyphs of a font for the
// printable ASCII runes, the icons and a white block for filled
// rectangles. Atlas implements Font.
type Atlas struct {
	Image      *image.Alpha
	lineHeight int
	glyphs     [lastRune - firstRune + 1]image.Rectangle
	icons      [iconCount]image.Rectangle
	white      image.Rectangle
}

// DefaultAtlas returns an atlas of the 7x13 basic font.
func DefaultAtlas() *Atlas {
	a, err := NewAtlas(basicfont.Face7x13)
	if err != nil {
		panic(err)
	}
	return a
}

// GoRegularAtlas returns an atlas of the Go Regular font at size
// points and 72 DPI.
func GoRegularAtlas(size float64) (*Atlas, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("ui: parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("ui: font face: %w", err)
	}
	defer face.Close()
	return NewAtlas(face)
}

// NewAtlas rasterizes face into a new atlas. Every glyph occupies a
// cell of its advance width and the line height.
func NewAtlas(face font.Face) (*Atlas, error) {
	m := face.Metrics()
	a := &Atlas{lineHeight: (m.Ascent + m.Descent).Ceil()}
	if a.lineHeight <= 0 {
		return nil, fmt.Errorf("ui: font with line height %d", a.lineHeight)
	}
	ascent := m.Ascent.Ceil()

	// Icons and the white block fill the first row.
	x := 0
	for i := IconClose; i < iconCount; i++ {
		a.icons[i] = image.Rect(x, 0, x+iconSize, iconSize)
		x += iconSize + 1
	}
	a.white = image.Rect(x, 0, x+3, 3)

	x, y := 0, iconSize+1
	for r := rune(firstRune); r <= lastRune; r++ {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			adv, _ = face.GlyphAdvance('?')
		}
		w := max(adv.Round(), 1)
		if x+w > atlasWidth {
			x = 0
			y += a.lineHeight + 1
		}
		a.glyphs[r-firstRune] = image.Rect(x, y, x+w, y+a.lineHeight)
		x += w + 1
	}
	a.Image = image.NewAlpha(image.Rect(0, 0, atlasWidth, y+a.lineHeight))

	draw.Draw(a.Image, a.white, image.Opaque, image.Point{}, draw.Src)
	for i := IconClose; i < iconCount; i++ {
		drawIcon(a.Image, i, a.icons[i])
	}
	for r := rune(firstRune); r <= lastRune; r++ {
		cell := a.glyphs[r-firstRune]
		dot := fixed.P(cell.Min.X, cell.Min.Y+ascent)
		dr, mask, mp, _, ok := face.Glyph(dot, r)
		if !ok {
			continue
		}
		// Parts of glyphs outside their cell are dropped.
		clipped := dr.Intersect(cell)
		if clipped.Empty() {
			continue
		}
		draw.DrawMask(a.Image, clipped, image.Opaque, image.Point{}, mask, mp.Add(clipped.Min.Sub(dr.Min)), draw.Over)
	}
	return a, nil
}

var iconShapes = [iconCount][][][2]float32{
	IconClose: {
		{{3, 4.4}, {4.4, 3}, {13, 11.6}, {11.6, 13}},
		{{11.6, 3}, {13, 4.4}, {4.4, 13}, {3, 11.6}},
	},
	IconCheck: {
		{{3, 8.5}, {4.5, 7}, {7, 9.5}, {11.5, 4}, {13, 5.5}, {7, 12.5}},
	},
	IconCollapsed: {
		{{6, 4}, {11, 8}, {6, 12}},
	},
	IconExpanded: {
		{{4, 6}, {12, 6}, {8, 11}},
	},
}

func drawIcon(dst draw.Image, icon Icon, r image.Rectangle) {
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	for _, poly := range iconShapes[icon] {
		z.MoveTo(poly[0][0], poly[0][1])
		for _, p := range poly[1:] {
			z.LineTo(p[0], p[1])
		}
		z.ClosePath()
	}
	z.Draw(dst, r, image.Opaque, image.Point{})
}

// Glyph returns the atlas cell of r. Runes outside the atlas map to
// '?'.
func (a *Atlas) Glyph(r rune) image.Rectangle {
	if r < firstRune || r > lastRune {
		r = '?'
	}
	return a.glyphs[r-firstRune]
}

// Icon returns the atlas cell of icon.
func (a *Atlas) Icon(icon Icon) image.Rectangle {
	return a.icons[icon]
}

// White returns a fully opaque area.
func (a *Atlas) White() image.Rectangle {
	return a.white
}

func (a *Atlas) LineHeight() int {
	return a.lineHeight
}

func (a *Atlas) TextWidth(s string) int {
	w := 0
	for _, r := range s {
		w += a.Glyph(r).Dx()
	}
	return w
}

// Size returns the atlas image size.
func (a *Atlas) Size() image.Point {
	return a.Image.Rect.Size()
}
