// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stereo

// Camera describes the stereo viewer. Both eyes converge on the
// fixation point; objects at that distance appear at screen depth.
type Camera struct {
	EyeSeparation float32
	FixationPoint float32
	Near          float32
	Far           float32
}

// DefaultCamera returns the camera used when Options leaves it zero.
func DefaultCamera() Camera {
	return Camera{
		EyeSeparation: 0.5,
		FixationPoint: 40,
		Near:          1,
		Far:           1024,
	}
}

// Projection is an off-axis perspective frustum plus the horizontal view
// translation of one eye.
type Projection struct {
	Left, Right float32
	Bottom, Top float32
	Near, Far   float32

	// EyeOffset translates the view along x before drawing.
	EyeOffset float32
}

// EyeView is everything a renderer needs to draw one eye.
type EyeView struct {
	Eye        Eye
	Viewport   Viewport
	Projection Projection
}

// Projection returns the frustum of one eye for a layout. The aspect ratio
// comes from the virtual eye size, so half-resolution formats are drawn
// squeezed and stretched back by the display.
func (c Camera) Projection(l Layout, eye Eye) Projection {
	asp := float32(l.VirtualEyeHeight) / float32(l.VirtualEyeWidth)
	w := c.FixationPoint / 5
	left := -5 * ((w - 0.5*c.EyeSeparation) / c.FixationPoint)
	right := 5 * ((w + 0.5*c.EyeSeparation) / c.FixationPoint)

	p := Projection{Bottom: -asp, Top: asp, Near: c.Near, Far: c.Far}
	if eye == LeftEye {
		p.Left, p.Right = left, right
		p.EyeOffset = 0.5 * c.EyeSeparation
	} else {
		p.Left, p.Right = -right, -left
		p.EyeOffset = -0.5 * c.EyeSeparation
	}
	return p
}

// Views returns the left and right eye views for a layout, in draw order.
func (c Camera) Views(l Layout) [2]EyeView {
	var v [2]EyeView
	for i, eye := range [...]Eye{LeftEye, RightEye} {
		v[i] = EyeView{
			Eye:        eye,
			Viewport:   l.Viewport(eye),
			Projection: c.Projection(l, eye),
		}
	}
	return v
}
