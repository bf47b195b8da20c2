// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gears

import (
	"fmt"
	"time"
)

// Animation constants.
const (
	// DegreesPerSecond is the rotation speed of the large gear.
	DegreesPerSecond = 70

	// angleWrap keeps the angle small enough for float32 precision.
	angleWrap = 3600

	// ReportInterval is how often the frame rate is reported.
	ReportInterval = 5 * time.Second
)

// Initial view rotation in degrees about x, y and z.
var initialViewRotation = [3]float32{50, 30, 0}

// FPSReport summarises frames drawn over one reporting interval.
type FPSReport struct {
	Frames  int
	Elapsed time.Duration
}

// FPS returns the average frame rate of the interval.
func (r FPSReport) FPS() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Elapsed.Seconds()
}

func (r FPSReport) String() string {
	return fmt.Sprintf("%d frames in %3.1f seconds = %6.3f FPS", r.Frames, r.Elapsed.Seconds(), r.FPS())
}

// Animation holds the frame timing state. The zero value starts on the
// first Advance.
type Animation struct {
	start      time.Time
	last       time.Time
	reportAt   time.Time
	frames     int
	angle      float32
	viewRotate [3]float32
}

// NewAnimation returns an animation at angle zero with the initial view
// rotation.
func NewAnimation() *Animation {
	return &Animation{viewRotate: initialViewRotation}
}

// Angle returns the rotation of the large gear in degrees.
func (a *Animation) Angle() float32 { return a.angle }

// ViewRotation returns the scene rotation in degrees about x, y and z.
func (a *Animation) ViewRotation() [3]float32 { return a.viewRotate }

// Advance moves the animation to now. It returns a report and true once
// per ReportInterval.
func (a *Animation) Advance(now time.Time) (FPSReport, bool) {
	if a.start.IsZero() {
		a.start = now
		a.last = now
		a.reportAt = now
		if a.viewRotate == ([3]float32{}) {
			a.viewRotate = initialViewRotation
		}
	}

	dt := now.Sub(a.last).Seconds()
	a.last = now
	a.angle += float32(DegreesPerSecond * dt)
	if a.angle > angleWrap {
		a.angle -= angleWrap
	}
	a.viewRotate[1] = a.angle / 2

	a.frames++
	if elapsed := now.Sub(a.reportAt); elapsed >= ReportInterval {
		r := FPSReport{Frames: a.frames, Elapsed: elapsed}
		a.frames = 0
		a.reportAt = now
		return r, true
	}
	return FPSReport{}, false
}
