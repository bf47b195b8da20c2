// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stereo

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// FrameRenderer draws the scene. The pipeline calls BeginFrame once per
// frame and DrawEye once per eye, left first, with the context current.
type FrameRenderer interface {
	// Init creates renderer resources for a layout.
	Init(l Layout) error
	// BeginFrame advances animation state and clears the buffer.
	BeginFrame(now time.Time)
	// DrawEye draws one eye into its viewport.
	DrawEye(v EyeView)
	// Close releases renderer resources.
	Close()
}

// Options configures Open.
type Options struct {
	// DevicePath is the card node. Empty means DefaultDevicePath.
	DevicePath string

	// ConnectorID selects the output. Zero means the first usable one.
	ConnectorID uint32

	// Format restricts mode selection to one transmission format.
	// Nil means the best format available.
	Format *Format

	// Platform creates buffers and rendering contexts. Required.
	Platform Platform

	// Camera is the stereo viewer. The zero value means DefaultCamera.
	Camera Camera
}

// Pipeline owns a configured Device and its presentation context.
//
// A Pipeline must be used from one OS thread: the rendering context is
// current on the thread that created it.
type Pipeline struct {
	device  *Device
	context *Context
	camera  Camera
	closed  bool
}

// Open opens the card at opts.DevicePath and builds a pipeline on it.
func Open(opts Options) (*Pipeline, error) {
	card, err := OpenDevice(opts.DevicePath)
	if err != nil {
		return nil, err
	}
	p, err := NewPipeline(card, opts)
	if err != nil {
		_ = card.Close()
		return nil, err
	}
	return p, nil
}

// NewPipeline selects an output on d and creates the presentation context.
// On success the pipeline owns d; on failure d is left open.
func NewPipeline(d Display, opts Options) (*Pipeline, error) {
	if opts.Platform == nil {
		return nil, errors.New("stereo: Options.Platform is required")
	}
	cam := opts.Camera
	if cam == (Camera{}) {
		cam = DefaultCamera()
	}

	dev, err := NewDevice(d, opts.ConnectorID, opts.Format)
	if err != nil {
		return nil, err
	}
	ctx, err := NewContext(dev, opts.Platform)
	if err != nil {
		return nil, err
	}
	return &Pipeline{device: dev, context: ctx, camera: cam}, nil
}

// Device returns the configured output.
func (p *Pipeline) Device() *Device { return p.device }

// Context returns the presentation context.
func (p *Pipeline) Context() *Context { return p.context }

// Layout returns the buffer layout.
func (p *Pipeline) Layout() Layout { return p.device.layout }

// Camera returns the stereo camera.
func (p *Pipeline) Camera() Camera { return p.camera }

// Run renders and presents frames until ctx is done. Cancellation is
// checked between frames only, so an in-flight present always completes.
// Dropped frames are skipped; any other present error stops the run.
// Run returns nil when ctx ends the loop.
func (p *Pipeline) Run(ctx context.Context, r FrameRenderer) error {
	if p.closed {
		return ErrClosed
	}
	l := p.device.layout
	if err := r.Init(l); err != nil {
		return fmt.Errorf("stereo: init renderer: %w", err)
	}
	defer r.Close()

	views := p.camera.Views(l)
	dropped := 0
	for {
		if ctx.Err() != nil {
			if dropped > 0 {
				Logger().Info("stereo: render loop stopped", "frames", p.context.Frames(), "dropped", dropped)
			}
			return nil
		}

		r.BeginFrame(time.Now())
		for _, v := range views {
			r.DrawEye(v)
		}

		if err := p.context.Present(); err != nil {
			if errors.Is(err, ErrFrameDropped) {
				dropped++
				continue
			}
			return err
		}
	}
}

// Close tears down the presentation context, restores the output and
// closes the card. Close is idempotent.
func (p *Pipeline) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	return p.device.Close()
}
