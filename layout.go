// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stereo

import (
	"fmt"
	"image"

	"github.com/gogpu/stereo/kms"
)

// Eye selects one half of a stereo pair.
type Eye int

const (
	LeftEye Eye = iota
	RightEye
)

func (e Eye) String() string {
	if e == LeftEye {
		return "left"
	}
	return "right"
}

// Layout places the two eye images inside the scan-out buffer.
//
// Coordinates follow the rendering API: the origin is the lower-left
// corner of the buffer. The left eye sits at (0, LeftEyeY) and the right
// eye at (RightEyeX, 0); both are EyeWidth x EyeHeight pixels.
//
// VirtualEye* is the size the eye image has on screen. It differs from
// Eye* when the display rescales half-resolution eyes, and is what
// projection aspect ratios are computed from.
type Layout struct {
	Format Format

	BufferWidth  int
	BufferHeight int

	EyeWidth  int
	EyeHeight int

	VirtualEyeWidth  int
	VirtualEyeHeight int

	RightEyeX int
	LeftEyeY  int
}

// ComputeLayout derives the buffer layout for a mode. It panics for
// formats without a layout; SelectMode never returns such a mode.
func ComputeLayout(m kms.ModeInfo) Layout {
	w, h := int(m.HDisplay), int(m.VDisplay)
	l := Layout{Format: FormatOf(&m)}

	switch l.Format {
	case FormatNone:
		l.BufferWidth, l.BufferHeight = w, h
		l.EyeWidth, l.EyeHeight = w, h
		l.VirtualEyeWidth, l.VirtualEyeHeight = w, h
		// Off the buffer: only the left eye is visible.
		l.RightEyeX = w

	case FormatSideBySideHalf:
		l.BufferWidth, l.BufferHeight = w, h
		l.EyeWidth, l.EyeHeight = w/2, h
		l.VirtualEyeWidth, l.VirtualEyeHeight = w, h
		l.RightEyeX = l.EyeWidth

	case FormatSideBySideFull:
		l.BufferWidth, l.BufferHeight = w*2, h
		l.EyeWidth, l.EyeHeight = w, h
		l.VirtualEyeWidth, l.VirtualEyeHeight = w, h
		l.RightEyeX = l.EyeWidth

	case FormatTopAndBottom:
		l.BufferWidth, l.BufferHeight = w, h
		l.EyeWidth, l.EyeHeight = w, h/2
		l.VirtualEyeWidth, l.VirtualEyeHeight = w, h
		l.LeftEyeY = l.EyeHeight

	case FormatFramePacking:
		// The frames are separated by the vertical blanking interval.
		vtotal := int(m.VTotal)
		l.BufferWidth, l.BufferHeight = w, vtotal+h
		l.EyeWidth, l.EyeHeight = w, h
		l.VirtualEyeWidth, l.VirtualEyeHeight = w, h
		l.LeftEyeY = vtotal

	default:
		panic(fmt.Sprintf("stereo: no layout for %v", l.Format))
	}
	return l
}

// EyeRect returns the pixel rectangle of one eye.
func (l Layout) EyeRect(eye Eye) image.Rectangle {
	var origin image.Point
	if eye == LeftEye {
		origin.Y = l.LeftEyeY
	} else {
		origin.X = l.RightEyeX
	}
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(l.EyeWidth, l.EyeHeight))}
}

// Bounds returns the buffer rectangle.
func (l Layout) Bounds() image.Rectangle {
	return image.Rect(0, 0, l.BufferWidth, l.BufferHeight)
}

// Visible reports whether the eye lands inside the buffer. Only the right
// eye of FormatNone does not.
func (l Layout) Visible(eye Eye) bool {
	return l.EyeRect(eye).In(l.Bounds())
}

// Viewport returns the viewport for one eye.
func (l Layout) Viewport(eye Eye) Viewport {
	r := l.EyeRect(eye)
	return Viewport{
		X:      int32(r.Min.X),
		Y:      int32(r.Min.Y),
		Width:  int32(r.Dx()),
		Height: int32(r.Dy()),
	}
}

// Viewport is a rendering viewport in buffer pixels.
type Viewport struct {
	X, Y          int32
	Width, Height int32
}
