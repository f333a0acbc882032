// SPDX-License-Identifier: Unlicense OR MIT

package ui

import (
	"image"
	"image/color"
)

// ColorID indexes Style.Colors.
type ColorID int

const (
	ColorText ColorID = iota
	ColorBorder
	ColorWindowBG
	ColorTitleBG
	ColorTitleText
	ColorPanelBG
	ColorButton
	ColorButtonHover
	ColorButtonFocus
	ColorBase
	ColorBaseHover
	ColorBaseFocus
	ColorScrollBase
	ColorScrollThumb
	colorCount
)

// Icon identifies an icon of the atlas.
type Icon int

const (
	IconNone Icon = iota
	IconClose
	IconCheck
	IconCollapsed
	IconExpanded
	iconCount
)

// Style holds the metrics and colors of the widgets.
type Style struct {
	// Size is the default widget size.
	Size          image.Point
	Padding       int
	Spacing       int
	Indent        int
	TitleHeight   int
	ScrollbarSize int
	ThumbSize     int
	Colors        [colorCount]color.RGBA
}

// DefaultStyle returns the default dark style.
func DefaultStyle() Style {
	return Style{
		Size:          image.Pt(68, 10),
		Padding:       5,
		Spacing:       4,
		Indent:        24,
		TitleHeight:   24,
		ScrollbarSize: 12,
		ThumbSize:     8,
		Colors: [colorCount]color.RGBA{
			ColorText:        {230, 230, 230, 255},
			ColorBorder:      {25, 25, 25, 255},
			ColorWindowBG:    {50, 50, 50, 255},
			ColorTitleBG:     {25, 25, 25, 255},
			ColorTitleText:   {240, 240, 240, 255},
			ColorPanelBG:     {0, 0, 0, 0},
			ColorButton:      {75, 75, 75, 255},
			ColorButtonHover: {95, 95, 95, 255},
			ColorButtonFocus: {115, 115, 115, 255},
			ColorBase:        {30, 30, 30, 255},
			ColorBaseHover:   {35, 35, 35, 255},
			ColorBaseFocus:   {40, 40, 40, 255},
			ColorScrollBase:  {43, 43, 43, 255},
			ColorScrollThumb: {30, 30, 30, 255},
		},
	}
}

// Color returns the color id of s.
func (s *Style) Color(id ColorID) color.RGBA {
	return s.Colors[id]
}
