// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stereo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gogpu/stereo/kms"
	"golang.org/x/sys/unix"
)

// countingRenderer cancels the run after a fixed number of frames.
type countingRenderer struct {
	stopAfter int
	cancel    context.CancelFunc
	onFrame   func(frame int)

	layout  Layout
	initErr error
	frames  int
	eyes    []EyeView
	closed  bool
}

func (r *countingRenderer) Init(l Layout) error {
	r.layout = l
	return r.initErr
}

func (r *countingRenderer) BeginFrame(time.Time) {
	r.frames++
	if r.onFrame != nil {
		r.onFrame(r.frames)
	}
	if r.frames == r.stopAfter {
		r.cancel()
	}
}

func (r *countingRenderer) DrawEye(v EyeView) { r.eyes = append(r.eyes, v) }
func (r *countingRenderer) Close()            { r.closed = true }

func newTestPipeline(t *testing.T) (*fakeDisplay, *fakePlatform, *Pipeline) {
	t.Helper()
	d := newFakeDisplay()
	p := newFakePlatform()
	pl, err := NewPipeline(d, Options{Platform: p})
	if err != nil {
		t.Fatalf("NewPipeline() = %v", err)
	}
	t.Cleanup(func() { _ = pl.Close() })
	return d, p, pl
}

func TestPipelineRun(t *testing.T) {
	d, _, pl := newTestPipeline(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := &countingRenderer{stopAfter: 4, cancel: cancel}

	if err := pl.Run(ctx, r); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	// Cancellation is seen at the top of the next frame, so the frame in
	// progress is still presented.
	if r.frames != 4 || pl.Context().Frames() != 4 {
		t.Errorf("frames rendered = %d, presented = %d; want 4, 4", r.frames, pl.Context().Frames())
	}
	if len(r.eyes) != 8 {
		t.Fatalf("DrawEye called %d times, want 8", len(r.eyes))
	}
	if r.eyes[0].Eye != LeftEye || r.eyes[1].Eye != RightEye {
		t.Errorf("eye order = %v, %v", r.eyes[0].Eye, r.eyes[1].Eye)
	}
	if r.layout != pl.Layout() {
		t.Error("renderer initialised with a different layout")
	}
	if !r.closed {
		t.Error("renderer not closed")
	}
	if d.flips != 3 {
		t.Errorf("flips = %d, want 3", d.flips)
	}
	if pl.Camera() != DefaultCamera() {
		t.Errorf("Camera() = %+v, want default", pl.Camera())
	}
}

func TestPipelineRunSkipsDroppedFrames(t *testing.T) {
	d, _, pl := newTestPipeline(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := &countingRenderer{
		stopAfter: 5,
		cancel:    cancel,
		onFrame: func(frame int) {
			if frame == 3 {
				d.addFBErr = &kms.Error{Op: "add fb", Errno: unix.ENOMEM}
			} else {
				d.addFBErr = nil
			}
		},
	}
	if err := pl.Run(ctx, r); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if r.frames != 5 || pl.Context().Frames() != 4 {
		t.Errorf("frames rendered = %d, presented = %d; want 5, 4", r.frames, pl.Context().Frames())
	}
}

func TestPipelineRunStopsOnFatal(t *testing.T) {
	d, _, pl := newTestPipeline(t)
	ctx := context.Background()
	r := &countingRenderer{
		onFrame: func(frame int) {
			if frame == 3 {
				d.pageFlipErr = &kms.Error{Op: "page flip", Errno: unix.EINVAL}
			}
		},
	}
	err := pl.Run(ctx, r)
	if !errors.Is(err, ErrFatalPresent) {
		t.Fatalf("Run() = %v, want ErrFatalPresent", err)
	}
	if r.frames != 3 || !r.closed {
		t.Errorf("frames = %d, closed = %v; want 3, true", r.frames, r.closed)
	}
	if err := pl.Close(); err != nil {
		t.Errorf("Close() = %v", err)
	}
	if len(d.setCRTC) != 2 {
		t.Errorf("SetCRTC called %d times, want set + restore", len(d.setCRTC))
	}
}

func TestPipelineRunInitError(t *testing.T) {
	_, _, pl := newTestPipeline(t)
	boom := errors.New("no shaders")
	r := &countingRenderer{initErr: boom}
	if err := pl.Run(context.Background(), r); !errors.Is(err, boom) {
		t.Errorf("Run() = %v, want init error", err)
	}
	if r.frames != 0 {
		t.Error("frames rendered after init failure")
	}
}

func TestPipelineCancelledBeforeFirstFrame(t *testing.T) {
	d, _, pl := newTestPipeline(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &countingRenderer{}
	if err := pl.Run(ctx, r); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if r.frames != 0 || len(d.setCRTC) != 0 {
		t.Errorf("frames = %d, mode sets = %d; want 0, 0", r.frames, len(d.setCRTC))
	}
}

func TestPipelineClose(t *testing.T) {
	d, p, pl := newTestPipeline(t)
	for range 2 {
		if err := pl.Close(); err != nil {
			t.Fatalf("Close() = %v", err)
		}
	}
	if d.closed != 1 {
		t.Errorf("display closed %d times, want 1", d.closed)
	}
	if p.current {
		t.Error("context still current after Close")
	}
	if err := pl.Run(context.Background(), &countingRenderer{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Run() after Close = %v, want ErrClosed", err)
	}
}

func TestNewPipelineErrors(t *testing.T) {
	t.Run("no platform", func(t *testing.T) {
		if _, err := NewPipeline(newFakeDisplay(), Options{}); err == nil {
			t.Error("NewPipeline() without platform succeeded")
		}
	})
	t.Run("format filter", func(t *testing.T) {
		f := FormatTopAndBottom
		_, err := NewPipeline(newFakeDisplay(), Options{Platform: newFakePlatform(), Format: &f})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("NewPipeline() = %v, want ErrNotFound", err)
		}
	})
	t.Run("context stage", func(t *testing.T) {
		p := newFakePlatform()
		p.failOn["CreateContext"] = errors.New("no ES2")
		_, err := NewPipeline(newFakeDisplay(), Options{Platform: p})
		var se *StageError
		if !errors.As(err, &se) || se.Stage != StageContext {
			t.Errorf("NewPipeline() = %v, want context stage error", err)
		}
	})
	t.Run("custom camera", func(t *testing.T) {
		cam := Camera{EyeSeparation: 1, FixationPoint: 10, Near: 0.5, Far: 100}
		pl, err := NewPipeline(newFakeDisplay(), Options{Platform: newFakePlatform(), Camera: cam})
		if err != nil {
			t.Fatal(err)
		}
		defer pl.Close()
		if pl.Camera() != cam {
			t.Errorf("Camera() = %+v, want %+v", pl.Camera(), cam)
		}
	})
}
