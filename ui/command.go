// SPDX-License-Identifier: Unlicense OR MIT

package ui

import (
	"image"
	"image/color"
)

type CommandType uint8

const (
	// CommandClip sets the clip rectangle of the following commands.
	CommandClip CommandType = iota
	CommandRect
	// CommandText draws Text with its top left corner at Rect.Min.
	CommandText
	CommandIcon
)

// Command is a drawing operation produced by a frame.
type Command struct {
	Type  CommandType
	Rect  image.Rectangle
	Color color.RGBA
	Text  string
	Icon  Icon
}

func (t CommandType) String() string {
	switch t {
	case CommandClip:
		return "clip"
	case CommandRect:
		return "rect"
	case CommandText:
		return "text"
	case CommandIcon:
		return "icon"
	default:
		return "unknown"
	}
}
